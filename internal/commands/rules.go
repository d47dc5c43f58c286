package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bankscope-dev/bankscope/internal/classify"
)

func newRulesCommand() *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Categorization rule operations",
	}
	rulesCmd.AddCommand(newRulesShowCommand())
	return rulesCmd
}

func newRulesShowCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective categorization rules as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			rules := classify.DefaultRules()
			if cfg.Rules.File != "" {
				rules, err = classify.LoadRules(cfg.Rules.File)
				if err != nil {
					return err
				}
			}

			out := make(map[string][]string, len(rules))
			for cat, patterns := range rules {
				out[string(cat)] = patterns
			}
			data, err := yaml.Marshal(out)
			if err != nil {
				return fmt.Errorf("marshaling rules: %w", err)
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default bankscope.yaml if present)")
	return cmd
}
