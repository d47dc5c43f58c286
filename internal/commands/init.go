package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bankscope-dev/bankscope/internal/classify"
	"github.com/bankscope-dev/bankscope/internal/config"
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a bankscope workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(absDir)
		},
	}
	return cmd
}

func runInit(dir string) error {
	for _, d := range []string{"rules", "reports"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Seed the default categorization rules so they can be edited in place.
	rulesPath := filepath.Join(dir, "rules", "categorization-rules.yaml")
	if err := classify.SaveRules(rulesPath, classify.DefaultRules()); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}

	cfg := config.Default()
	cfg.Rules.File = filepath.Join("rules", "categorization-rules.yaml")
	cfg.Output.Dir = "reports"
	if err := config.Save(filepath.Join(dir, configFileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Initialized bankscope workspace at %s\n", dir)
	return nil
}
