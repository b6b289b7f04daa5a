package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pdc/internal/api"
	"pdc/internal/history"
	"pdc/internal/log"
	"pdc/internal/ui/markdown"
)

var (
	integrationSwagger string
	integrationPlain   bool
)

var integrationCmd = &cobra.Command{
	Use:   "integration [text...]",
	Short: "Generate an API integration plan",
	Long: `Generate an integration plan as Markdown, optionally grounded on a
swagger/OpenAPI document supplied with --swagger.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIntegration,
}

func init() {
	integrationCmd.Flags().StringVar(&integrationSwagger, "swagger", "",
		"path to a swagger/OpenAPI document to ground the plan on")
	integrationCmd.Flags().BoolVar(&integrationPlain, "plain", false,
		"print raw markdown without terminal styling")
	rootCmd.AddCommand(integrationCmd)
}

func runIntegration(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	req := api.IntegrationRequest{Text: strings.Join(args, " ")}
	if integrationSwagger != "" {
		data, err := os.ReadFile(integrationSwagger)
		if err != nil {
			return fmt.Errorf("reading swagger file: %w", err)
		}
		req.SwaggerText = string(data)
	}

	resp, err := client.GenerateIntegration(cmd.Context(), req)
	if err != nil {
		return err
	}

	if store := openHistory(); store != nil {
		rec := &history.Record{
			Kind:   history.KindIntegration,
			Prompt: req.Text,
			Source: resp.Markdown,
		}
		if saveErr := store.Save(rec); saveErr != nil {
			log.ErrorErr(log.CatDB, "Failed to save run", saveErr)
		}
		_ = store.Close()
	}

	if integrationPlain {
		fmt.Fprintln(cmd.OutOrStdout(), resp.Markdown)
		return nil
	}

	renderer, err := markdown.New(100, cfg.UI.MarkdownStyle)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), resp.Markdown)
		return nil
	}
	styled, err := renderer.Render(resp.Markdown)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), resp.Markdown)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), styled)
	return nil
}
