package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("PSYKI_OUTPUT_DIR", "")
	t.Setenv("PSYKI_DB_PATH", "")
	t.Setenv("PSYKI_LOG_LEVEL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	assert.Equal(t, 200, cfg.Generator.Main.NumEntries)
	assert.Equal(t, 0.93, cfg.Generator.Main.HighAcc)
	assert.Equal(t, 0.4, cfg.Generator.Main.LowAcc)
	assert.Equal(t, 14, cfg.Generator.Main.LowAccCount)
	assert.Equal(t, 20, cfg.TestPhase.NumEntries)
	assert.Equal(t, 3.8, cfg.Extractor.Reference)
	assert.Equal(t, "dPrimeTeam", cfg.Extractor.Field)
}

func TestLoad_PartialFileKeepsOtherDefaults(t *testing.T) {
	t.Setenv("PSYKI_OUTPUT_DIR", "")
	t.Setenv("PSYKI_DB_PATH", "")
	t.Setenv("PSYKI_LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
generator:
  output_dir: out
  main:
    low_acc_count: 20
    divergence_values: [-0.05, 0.05]
extractor:
  reference: 4.1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Generator.OutputDir)
	assert.Equal(t, 20, cfg.Generator.Main.LowAccCount)
	assert.Equal(t, 200, cfg.Generator.Main.NumEntries)
	assert.Equal(t, []float64{-0.05, 0.05}, cfg.Generator.Main.DivergenceValues)
	assert.Equal(t, 4.1, cfg.Extractor.Reference)
	assert.Equal(t, 199, cfg.Extractor.Index)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generator: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PSYKI_OUTPUT_DIR", "/tmp/trials")
	t.Setenv("PSYKI_DB_PATH", "/tmp/runs.db")
	t.Setenv("PSYKI_LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/trials", cfg.Generator.OutputDir)
	assert.Equal(t, "/tmp/runs.db", cfg.History.DatabasePath)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("PSYKI_OUTPUT_DIR", "")
	t.Setenv("PSYKI_DB_PATH", "")
	t.Setenv("PSYKI_LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := DefaultConfig()
	cfg.Generator.Seed = 1234
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
