package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Inspect backend tasks",
}

var taskStatusCmd = &cobra.Command{
	Use:   "status <task-id>",
	Short: "Show the state of an async task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		status, err := client.TaskStatus(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "task %s: %s\n", status.TaskID, status.State)
		if len(status.Result) > 0 {
			out, _ := json.MarshalIndent(status.Result, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
		}
		return nil
	},
}

func init() {
	taskCmd.AddCommand(taskStatusCmd)
	rootCmd.AddCommand(taskCmd)
}
