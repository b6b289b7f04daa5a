package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pdc/internal/api"
	"pdc/internal/history"
	"pdc/internal/log"
)

var (
	generateType  string
	generateScene string
	generateAsync bool
	generateOut   string
)

var generateCmd = &cobra.Command{
	Use:   "generate [text...]",
	Short: "Generate a diagram from free text",
	Long: `Generate a Mermaid diagram from a natural language description.

With --async the request is submitted as a backend task and polled until it
finishes. The resulting Mermaid source is printed to stdout or written to the
--out file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateType, "type", "t", "flow",
		"diagram type: flow, sequence, state, cmic_report")
	generateCmd.Flags().StringVar(&generateScene, "scene", "",
		"business scene hint passed to the backend")
	generateCmd.Flags().BoolVar(&generateAsync, "async", false,
		"submit as a backend task and poll for completion")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "",
		"write the Mermaid source to this file instead of stdout")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	req := api.DiagramRequest{
		DiagramType: api.DiagramType(generateType),
		Text:        strings.Join(args, " "),
		Scene:       generateScene,
	}

	var mermaidSrc string
	if generateAsync {
		mermaidSrc, err = generateViaTask(cmd, client, req)
	} else {
		var resp api.DiagramResponse
		resp, err = client.GenerateDiagram(cmd.Context(), req)
		mermaidSrc = resp.Mermaid
	}
	if err != nil {
		return err
	}

	if store := openHistory(); store != nil {
		rec := &history.Record{
			Kind:        history.KindDiagram,
			DiagramType: string(req.DiagramType),
			Prompt:      req.Text,
			Source:      mermaidSrc,
		}
		if saveErr := store.Save(rec); saveErr != nil {
			log.ErrorErr(log.CatDB, "Failed to save run", saveErr)
		}
		_ = store.Close()
	}

	if generateOut != "" {
		return os.WriteFile(generateOut, []byte(mermaidSrc), 0o644)
	}
	fmt.Fprintln(cmd.OutOrStdout(), mermaidSrc)
	return nil
}

// generateViaTask submits the diagram as an async task and polls until it
// reaches a terminal state, reporting transitions on stderr.
func generateViaTask(cmd *cobra.Command, client *api.Client, req api.DiagramRequest) (string, error) {
	ctx := cmd.Context()

	submitted, err := client.SubmitDiagramTask(ctx, req)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "task %s submitted\n", submitted.TaskID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	lastState := ""
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}

		status, err := client.TaskStatus(ctx, submitted.TaskID)
		if err != nil {
			return "", err
		}
		if status.State != lastState {
			lastState = status.State
			fmt.Fprintf(cmd.ErrOrStderr(), "task %s: %s\n", submitted.TaskID, status.State)
		}

		switch status.State {
		case "succeeded", "completed", "done":
			src, _ := status.Result["mermaid"].(string)
			if src == "" {
				return "", fmt.Errorf("task %s finished without mermaid output", submitted.TaskID)
			}
			return src, nil
		case "failed", "error":
			if msg, ok := status.Result["error"].(string); ok && msg != "" {
				return "", fmt.Errorf("task %s failed: %s", submitted.TaskID, msg)
			}
			return "", fmt.Errorf("task %s failed", submitted.TaskID)
		}
	}
}
