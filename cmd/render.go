package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pdc/internal/log"
	"pdc/internal/mermaid"
	"pdc/internal/watcher"
)

var (
	renderOut   string
	renderID    string
	renderWatch bool
	renderCheck bool
)

var renderCmd = &cobra.Command{
	Use:   "render <file.mmd>",
	Short: "Render Mermaid source to SVG locally",
	Long: `Validate a Mermaid file and render it to SVG with the mermaid CLI.

With --watch the file is re-rendered whenever it changes; editor save events
are debounced so a burst of writes produces one render. With --check the file
is only validated, nothing is rendered.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "",
		"output SVG file (default: input with .svg extension)")
	renderCmd.Flags().StringVar(&renderID, "id", "",
		"id attribute for the produced SVG element")
	renderCmd.Flags().BoolVarP(&renderWatch, "watch", "w", false,
		"re-render whenever the input file changes")
	renderCmd.Flags().BoolVar(&renderCheck, "check", false,
		"validate only, do not render")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	input := args[0]

	if renderCheck {
		source, err := os.ReadFile(input)
		if err != nil {
			return err
		}
		if err := mermaid.Validate(string(source)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", input)
		return nil
	}

	out := renderOut
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
	}

	adapter := mermaid.NewAdapter(mermaid.NewCLIEngine(cfg.Render.Binary))

	renderOnce := func() error {
		source, err := os.ReadFile(input)
		if err != nil {
			return err
		}
		svg, err := adapter.Render(cmd.Context(), renderID, string(source))
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, []byte(svg), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "rendered %s -> %s\n", input, out)
		return nil
	}

	if err := renderOnce(); err != nil {
		if !renderWatch {
			return err
		}
		// In watch mode a broken first render is not fatal; the next save
		// gets another chance.
		fmt.Fprintf(cmd.ErrOrStderr(), "render failed: %v\n", err)
	}
	if !renderWatch {
		return nil
	}

	wcfg := watcher.DefaultConfig(input)
	if cfg.Render.DebounceMs > 0 {
		wcfg.DebounceDur = time.Duration(cfg.Render.DebounceMs) * time.Millisecond
	}
	w, err := watcher.New(wcfg)
	if err != nil {
		return fmt.Errorf("watching %s: %w", input, err)
	}
	defer func() { _ = w.Stop() }()

	changes, err := w.Start()
	if err != nil {
		return fmt.Errorf("watching %s: %w", input, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s\n", input)

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			log.Debug(log.CatWatcher, "Source changed, re-rendering", "path", input)
			if err := renderOnce(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "render failed: %v\n", err)
			}
		}
	}
}
