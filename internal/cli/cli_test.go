package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdouB/psyki/internal/models"
	"github.com/AbdouB/psyki/internal/trials"
)

// testEnv is an isolated config + database for one test
type testEnv struct {
	dir        string
	configPath string
}

func newTestEnv(t *testing.T, historyEnabled bool) *testEnv {
	t.Helper()
	t.Setenv("PSYKI_OUTPUT_DIR", "")
	t.Setenv("PSYKI_DB_PATH", "")
	t.Setenv("PSYKI_LOG_LEVEL", "")

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`
generator:
  output_dir: %s
history:
  enabled: %t
  database_path: %s
logging:
  level: error
`, filepath.Join(dir, "lib"), historyEnabled, filepath.Join(dir, "runs.db"))
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	return &testEnv{dir: dir, configPath: configPath}
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	a := newApp()
	cmd := a.rootCmd()
	defer a.teardown()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", e.configPath))
	err := cmd.Execute()
	return out.String(), err
}

func (e *testEnv) writeResults(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, "results.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const nestedResults = `{
  "participant1.json": [
    {"index": 198, "dPrimeTeam": 9.9},
    {"index": 199, "dPrimeTeam": 3.0, "dPrimeHuman": 1.2}
  ],
  "batch": {
    "participant2.json": {"trials": [{"index": 199, "dPrimeTeam": 5.0}]},
    "deeper": {"x": {"y": [[{"index": 199, "dPrimeTeam": 4.0}]]}}
  }
}`

func TestExtract_EndToEnd(t *testing.T) {
	env := newTestEnv(t, true)
	path := env.writeResults(t, nestedResults)

	out, err := env.run(t, "extract", path)
	require.NoError(t, err)

	var result ExtractResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, []float64{3.0, 5.0, 4.0}, result.Values)
	require.NotNil(t, result.Summary)
	assert.Equal(t, 4.0, result.Summary.Median)
	assert.Equal(t, 3, result.Summary.Count)

	require.NotNil(t, result.Chart)
	require.Len(t, result.Chart.Bars, 2)
	assert.Equal(t, 4.0, result.Chart.Bars[0].Value)
	assert.Equal(t, 3.8, result.Chart.Bars[1].Value)
	assert.Equal(t, "Median dPrimeTeam vs Reference Value (3.8)", result.Chart.Title)
}

func TestExtract_Text(t *testing.T) {
	env := newTestEnv(t, false)
	path := env.writeResults(t, nestedResults)

	out, err := env.run(t, "extract", path, "--text")
	require.NoError(t, err)
	assert.Contains(t, out, "Median of dPrimeTeam (index 199): 4.0000")
	assert.Contains(t, out, "Reference (3.8)")
	assert.Contains(t, out, "4.00")

	out, err = env.run(t, "extract", path, "--text", "--no-chart")
	require.NoError(t, err)
	assert.Equal(t, "Median of dPrimeTeam (index 199): 4.0000\n", out)
}

func TestExtract_CustomFieldAndReference(t *testing.T) {
	env := newTestEnv(t, false)
	path := env.writeResults(t, nestedResults)

	out, err := env.run(t, "extract", path, "--field", "dPrimeHuman", "--reference", "2")
	require.NoError(t, err)

	var result ExtractResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, []float64{1.2}, result.Values)
	assert.Equal(t, 2.0, result.Reference)
	assert.Equal(t, "Reference (2)", result.Chart.Bars[1].Label)
}

func TestExtract_NoPath(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := env.run(t, "extract")
	require.NoError(t, err)
	assert.Equal(t, extractUsage+"\n", out)
}

func TestExtract_NoMatches(t *testing.T) {
	env := newTestEnv(t, false)
	path := env.writeResults(t, `[{"index": 5, "dPrimeTeam": 1.0}, {"index": 199, "dPrimeTeem": 2.0}]`)

	out, err := env.run(t, "extract", path, "--text")
	require.NoError(t, err)
	assert.Contains(t, out, "No dPrimeTeam values found where index == 199.")
	assert.Contains(t, out, "Did you mean: dPrimeTeem")
	assert.NotContains(t, out, "Reference")

	out, err = env.run(t, "extract", path)
	require.NoError(t, err)
	var result ExtractResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "no_matches", result.Status)
	assert.Empty(t, result.Values)
	assert.Nil(t, result.Chart)
}

func TestExtract_BadInput(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := env.run(t, "extract", filepath.Join(env.dir, "missing.json"))
	assert.Error(t, err)

	path := env.writeResults(t, `{"index": 199,`)
	_, err = env.run(t, "extract", path)
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := env.run(t, "generate", "--seed", "42")
	require.NoError(t, err)

	var result GenerateResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, uint64(42), result.Seed)
	assert.Equal(t, 200, result.MainTrials)
	assert.Equal(t, 20, result.TestTrials)
	assert.Equal(t, 14, result.LowAccTrials)
	assert.Equal(t, []int{50, 100, 150}, result.BreakTrials)

	data, err := os.ReadFile(filepath.Join(env.dir, "lib", trials.MainFileName))
	require.NoError(t, err)
	var main []models.Trial
	require.NoError(t, json.Unmarshal(data, &main))
	assert.Len(t, main, 200)

	data, err = os.ReadFile(filepath.Join(env.dir, "lib", trials.TestFileName))
	require.NoError(t, err)
	var test []models.TestTrial
	require.NoError(t, json.Unmarshal(data, &test))
	assert.Len(t, test, 20)

	// Same seed, same files
	first := string(data)
	_, err = env.run(t, "generate", "--seed", "42")
	require.NoError(t, err)
	data, err = os.ReadFile(filepath.Join(env.dir, "lib", trials.TestFileName))
	require.NoError(t, err)
	assert.Equal(t, first, string(data))
}

func TestGenerate_FlagsAndValidation(t *testing.T) {
	env := newTestEnv(t, false)
	outDir := filepath.Join(env.dir, "custom")

	out, err := env.run(t, "generate", "--out", outDir, "--entries", "100", "--low-count", "7",
		"--test-entries", "5", "--divergence=-0.05,0.05", "--seed", "1")
	require.NoError(t, err)

	var result GenerateResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 100, result.MainTrials)
	assert.Equal(t, 7, result.LowAccTrials)
	assert.Equal(t, 5, result.TestTrials)
	assert.Equal(t, []int{50}, result.BreakTrials)

	data, err := os.ReadFile(filepath.Join(outDir, trials.MainFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"divergence"`)

	_, err = env.run(t, "generate", "--low-acc", "1.5")
	assert.ErrorIs(t, err, trials.ErrInvalidConfig)
}

func TestHistory(t *testing.T) {
	env := newTestEnv(t, true)
	path := env.writeResults(t, nestedResults)

	_, err := env.run(t, "generate", "--seed", "7")
	require.NoError(t, err)
	_, err = env.run(t, "extract", path)
	require.NoError(t, err)

	out, err := env.run(t, "history")
	require.NoError(t, err)
	var runs []*models.Run
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 2)

	out, err = env.run(t, "history", "--kind", "extract")
	require.NoError(t, err)
	runs = nil
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, models.RunKindExtract, runs[0].Kind)
	assert.Equal(t, 4.0, runs[0].Summary["median"])

	out, err = env.run(t, "history", "--text", "--kind", "extract", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "extract")
	assert.Contains(t, out, "median=4")

	_, err = env.run(t, "history", "--kind", "bogus")
	assert.Error(t, err)
}

func TestHistory_Disabled(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := env.run(t, "history")
	assert.ErrorIs(t, err, errHistoryDisabled)
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := env.run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "psyki version dev\n", out)
}

func TestOutputError(t *testing.T) {
	var buf bytes.Buffer
	a := newApp()
	a.outputError(&buf, fmt.Errorf("boom"))
	assert.JSONEq(t, `{"status":"error","error":"boom"}`, buf.String())

	buf.Reset()
	a.outputText = true
	a.outputError(&buf, fmt.Errorf("boom"))
	assert.Equal(t, "Error: boom\n", buf.String())
}
