package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/bankscope-dev/bankscope/internal/buildinfo"
	"github.com/bankscope-dev/bankscope/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "bankscope",
		Short:   "Bank statement categorization and financial analysis",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newRulesCommand())

	return rootCmd
}

// configFileName is the workspace configuration file.
const configFileName = "bankscope.yaml"

// loadConfig reads the config at path, or the workspace default. A missing
// file is not an error; defaults apply.
func loadConfig(path string) (*config.Config, error) {
	explicit := path != ""
	if !explicit {
		path = configFileName
	}
	cfg, err := config.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}
