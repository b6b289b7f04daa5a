package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Backend database health",
}

var dbPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check backend database connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		resp, err := client.DBPing(cmd.Context())
		if err != nil {
			return err
		}
		if !resp.OK {
			fmt.Fprintf(cmd.OutOrStdout(), "db: unhealthy (%s): %s\n", resp.Dialect, resp.Error)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "db: ok  dialect=%s database=%s latency=%dms\n",
			resp.Dialect, resp.Database, resp.LatencyMS)
		return nil
	},
}

func init() {
	dbCmd.AddCommand(dbPingCmd)
	rootCmd.AddCommand(dbCmd)
}
