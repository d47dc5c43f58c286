package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankscope-dev/bankscope/internal/classify"
	"github.com/bankscope-dev/bankscope/internal/config"
	"github.com/bankscope-dev/bankscope/internal/model"
)

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir))

	// Config exists and points at the seeded rules file.
	cfg, err := config.Load(filepath.Join(dir, configFileName))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("rules", "categorization-rules.yaml"), cfg.Rules.File)
	assert.Equal(t, "reports", cfg.Output.Dir)

	// Seeded rules parse back into the default table.
	rules, err := classify.LoadRules(filepath.Join(dir, "rules", "categorization-rules.yaml"))
	require.NoError(t, err)
	assert.Equal(t, classify.DefaultRules(), rules)
	assert.NotEmpty(t, rules[model.CategorySale])

	info, err := os.Stat(filepath.Join(dir, "reports"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadConfigDefaultsWhenAbsent(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, os.Chdir(t.TempDir()))

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfigExplicitMissingFails(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
