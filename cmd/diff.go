package cmd

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff <run-id> <run-id>",
	Short: "Diff the generated source of two history runs",
	Long: `Show a colored diff between the generated sources of two stored runs,
useful for comparing how prompt or strategy changes affected the output.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openHistory()
		if store == nil {
			return fmt.Errorf("run history is disabled")
		}
		defer func() { _ = store.Close() }()

		a, err := store.Get(args[0])
		if err != nil {
			return fmt.Errorf("run %s: %w", args[0], err)
		}
		b, err := store.Get(args[1])
		if err != nil {
			return fmt.Errorf("run %s: %w", args[1], err)
		}

		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(a.Source, b.Source, true)
		diffs = dmp.DiffCleanupSemantic(diffs)

		if len(diffs) == 1 && diffs[0].Type == diffmatchpatch.DiffEqual {
			fmt.Fprintln(cmd.OutOrStdout(), "runs are identical")
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), dmp.DiffPrettyText(diffs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
