package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var artifactsLimit int

var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "Browse stored generation artifacts",
}

var artifactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent artifacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		artifacts, err := client.ListArtifacts(cmd.Context(), artifactsLimit)
		if err != nil {
			return err
		}
		if len(artifacts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no artifacts")
			return nil
		}
		for _, a := range artifacts {
			fmt.Fprintf(cmd.OutOrStdout(), "%-36s  %-12s  %-10s  %s\n",
				a.ID, a.Kind, a.Status, a.CreatedAt)
		}
		return nil
	},
}

var artifactsGetCmd = &cobra.Command{
	Use:   "get <artifact-id>",
	Short: "Show one artifact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		artifact, err := client.GetArtifact(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out, _ := json.MarshalIndent(artifact, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	artifactsListCmd.Flags().IntVarP(&artifactsLimit, "limit", "n", 50,
		"maximum artifacts to list")
	artifactsCmd.AddCommand(artifactsListCmd)
	artifactsCmd.AddCommand(artifactsGetCmd)
	rootCmd.AddCommand(artifactsCmd)
}
