package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	content := `input: data/survey.csv
output_dir: results
alpha: 0.01
schema:
  store: branch
  overall: satisfaction
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "data/survey.csv", cfg.Input)
	assert.Equal(t, "results", cfg.OutputDir)
	assert.Equal(t, 0.01, cfg.Alpha)
	// Overrides merge over the defaults.
	assert.Equal(t, "branch", cfg.Schema.Store)
	assert.Equal(t, "satisfaction", cfg.Schema.Overall)
	assert.Equal(t, "gender", cfg.Schema.Gender)
	assert.True(t, cfg.Charts)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	bad := cfg
	bad.Alpha = 1.5
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Input = ""
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.OutputDir = ""
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.MinPerStore = 1
	assert.Error(t, bad.Validate())
}
