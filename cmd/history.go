package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	historyBusiness string
	historyLimit    int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse locally stored generation runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openHistory()
		if store == nil {
			return fmt.Errorf("run history is disabled")
		}
		defer func() { _ = store.Close() }()

		records, err := store.List(historyBusiness, historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no runs")
			return nil
		}
		for _, rec := range records {
			prompt := rec.Prompt
			if len(prompt) > 48 {
				prompt = prompt[:48] + "…"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-5d %-12s %-14s %s  %s\n",
				rec.ID, rec.Kind, rec.BusinessID,
				rec.CreatedAt.Format("2006-01-02 15:04"), prompt)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one run's generated source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openHistory()
		if store == nil {
			return fmt.Errorf("run history is disabled")
		}
		defer func() { _ = store.Close() }()

		rec, err := store.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rec.Source)
		return nil
	},
}

func init() {
	historyListCmd.Flags().StringVar(&historyBusiness, "business", "",
		"only list runs for this business")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20,
		"maximum runs to list")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
