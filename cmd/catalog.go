package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pdc/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate the generation catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List businesses with their templates and strategies",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "catalog version %s\n\n", reg.Version())
		for _, biz := range reg.Businesses() {
			fmt.Fprintf(out, "%s (%s)\n", biz.Label, biz.BusinessID)
			templates, _ := reg.ListTemplates(biz.BusinessID)
			for _, t := range templates {
				marker := " "
				if t.TemplateID == biz.Defaults.TemplateID {
					marker = "*"
				}
				fmt.Fprintf(out, "  %s template  %-28s %s (%s)\n", marker, t.TemplateID, t.Label, t.GraphType)
			}
			strategies, _ := reg.ListStrategies(biz.BusinessID)
			for _, s := range strategies {
				marker := " "
				if s.StrategyID == biz.Defaults.StrategyID {
					marker = "*"
				}
				fmt.Fprintf(out, "  %s strategy  %-28s %s (%s)\n", marker, s.StrategyID, s.Label, s.PipelineKind)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a catalog file",
	Long: `Validate a catalog file and list every violation found. Without an
argument the configured catalog is validated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.CatalogPath
		if len(args) == 1 {
			path = args[0]
		}

		if path == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "built-in catalog: valid")
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading catalog: %w", err)
		}
		var raw catalog.Config
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing catalog: %w", err)
		}

		if violations := catalog.Validate(raw); len(violations) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d violation(s)\n", path, len(violations))
			for _, v := range violations {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", v)
			}
			return fmt.Errorf("catalog invalid")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", path)
		return nil
	},
}

var catalogResolveCmd = &cobra.Command{
	Use:   "resolve <business-id>",
	Short: "Show the default template/strategy/profile for a business",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		res, err := reg.Resolve(args[0])
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				known := make([]string, 0)
				for _, b := range reg.Businesses() {
					known = append(known, b.BusinessID)
				}
				return fmt.Errorf("%w (known businesses: %s)", err, strings.Join(known, ", "))
			}
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "business:  %s (%s)\n", res.Business.Label, res.Business.BusinessID)
		fmt.Fprintf(out, "template:  %s (%s, graph=%s)\n",
			res.DefaultTemplate.Label, res.DefaultTemplate.TemplateID, res.DefaultTemplate.GraphType)
		fmt.Fprintf(out, "strategy:  %s (%s, pipeline=%s, format=%s)\n",
			res.DefaultStrategy.Label, res.DefaultStrategy.StrategyID,
			res.DefaultStrategy.PipelineKind, res.DefaultStrategy.LLMOutputFormat)
		fmt.Fprintf(out, "profile:   %s (%s)\n",
			res.DefaultProfile.Label, res.DefaultProfile.OutputProfileID)
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogResolveCmd)
	rootCmd.AddCommand(catalogCmd)
}
