package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pdc/internal/api"
)

var (
	llmMode    string
	llmModel   string
	llmBaseURL string
	llmAPIKey  string
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect and switch the backend LLM provider",
}

var llmPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check LLM provider health",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		resp, err := client.LLMPing(cmd.Context())
		if err != nil {
			return err
		}
		if !resp.OK {
			fmt.Fprintf(cmd.OutOrStdout(), "llm: unhealthy (%s/%s): %s\n",
				resp.Provider, resp.Mode, resp.Error)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "llm: ok  provider=%s mode=%s model=%s latency=%dms\n",
			resp.Provider, resp.Mode, resp.Model, resp.LatencyMS)
		return nil
	},
}

var llmConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active LLM configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		conf, err := client.LLMConfig(cmd.Context())
		if err != nil {
			return err
		}
		printLLMConfig(cmd, conf)
		return nil
	},
}

var llmConfigSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Switch the LLM provider at runtime",
	Long: `Switch the backend LLM provider. The API key, when given, is sent to
the backend and never stored locally.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		conf, err := client.SetLLMConfig(cmd.Context(), api.SetLLMConfigRequest{
			Mode:    llmMode,
			Model:   llmModel,
			BaseURL: llmBaseURL,
			APIKey:  llmAPIKey,
		})
		if err != nil {
			return err
		}
		printLLMConfig(cmd, conf)
		return nil
	},
}

func printLLMConfig(cmd *cobra.Command, conf api.LLMConfig) {
	fmt.Fprintf(cmd.OutOrStdout(), "mode:      %s\n", conf.Mode)
	if conf.Model != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "model:     %s\n", conf.Model)
	}
	if conf.BaseURL != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "base_url:  %s\n", conf.BaseURL)
	}
	if conf.APIStyle != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "api_style: %s\n", conf.APIStyle)
	}
}

func init() {
	llmConfigSetCmd.Flags().StringVar(&llmMode, "mode", "",
		"provider mode: mock, openai_compat, ollama (required)")
	llmConfigSetCmd.Flags().StringVar(&llmModel, "model", "", "model name")
	llmConfigSetCmd.Flags().StringVar(&llmBaseURL, "base-url", "", "provider base URL")
	llmConfigSetCmd.Flags().StringVar(&llmAPIKey, "api-key", "", "provider API key")
	_ = llmConfigSetCmd.MarkFlagRequired("mode")

	llmConfigCmd.AddCommand(llmConfigSetCmd)
	llmCmd.AddCommand(llmPingCmd)
	llmCmd.AddCommand(llmConfigCmd)
	rootCmd.AddCommand(llmCmd)
}
