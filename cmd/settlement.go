package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"pdc/internal/api"
	"pdc/internal/history"
	"pdc/internal/log"
)

var (
	settlementMonth string
	settlementData  string
	settlementJSON  bool
)

var settlementCmd = &cobra.Command{
	Use:   "settlement",
	Short: "Settlement report helpers",
}

var settlementMetricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Compute settlement metrics from tabular data",
	Long: `Send settlement rows to the backend and print the computed metrics.

The --data file holds a JSON array of row objects; rows are passed through to
the backend untouched.`,
	RunE: runSettlementMetrics,
}

func init() {
	settlementMetricsCmd.Flags().StringVarP(&settlementMonth, "month", "m", "",
		"settlement month, e.g. 2026-08")
	settlementMetricsCmd.Flags().StringVarP(&settlementData, "data", "d", "",
		"JSON file with an array of row objects (required)")
	settlementMetricsCmd.Flags().BoolVar(&settlementJSON, "json", false,
		"print the raw JSON response")
	_ = settlementMetricsCmd.MarkFlagRequired("data")

	settlementCmd.AddCommand(settlementMetricsCmd)
	rootCmd.AddCommand(settlementCmd)
}

func runSettlementMetrics(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(settlementData)
	if err != nil {
		return fmt.Errorf("reading data file: %w", err)
	}
	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("parsing data file: %w", err)
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.SettlementMetrics(cmd.Context(), api.SettlementMetricsRequest{
		Month: settlementMonth,
		Rows:  rows,
	})
	if err != nil {
		return err
	}

	if store := openHistory(); store != nil {
		src, _ := json.Marshal(resp.Metrics)
		rec := &history.Record{
			Kind:   history.KindSettlement,
			Prompt: settlementMonth,
			Source: string(src),
		}
		if saveErr := store.Save(rec); saveErr != nil {
			log.ErrorErr(log.CatDB, "Failed to save run", saveErr)
		}
		_ = store.Close()
	}

	if settlementJSON {
		out, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	if resp.Month != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "month: %s\n", resp.Month)
	}
	names := make([]string, 0, len(resp.Metrics))
	for name := range resp.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "%-24s %g\n", name, resp.Metrics[name])
	}
	return nil
}
