package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/sfatrie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig(scenario string) Config {
	cfg := DefaultConfig()
	cfg.Scenario = scenario
	cfg.Series = 500
	cfg.Length = 64
	cfg.RawLength = 3000
	cfg.Window = 64
	cfg.Queries = 5
	cfg.K = 3
	return cfg
}

func TestRunBenchmark(t *testing.T) {
	ctx := context.Background()

	for _, scenario := range []string{ScenarioWhole, ScenarioSubsequence, ScenarioRange} {
		for _, transform := range []string{"sfa", "sax"} {
			t.Run(scenario+"/"+transform, func(t *testing.T) {
				cfg := smallConfig(scenario)
				cfg.Transform = transform
				require.NoError(t, cfg.Validate())

				report, err := runBenchmark(ctx, cfg, sfatrie.NoopLogger())
				require.NoError(t, err)
				assert.True(t, report.Passed())
				assert.LessOrEqual(t, report.MaxDistanceError, cfg.Tolerance)
				assert.Greater(t, report.ExaminedFraction, 0.0)
				assert.LessOrEqual(t, report.ExaminedFraction, 1.0)

				var buf bytes.Buffer
				report.Print(&buf)
				assert.Contains(t, buf.String(), "PASS")
				assert.Contains(t, buf.String(), scenario)
			})
		}
	}
}

func TestBenchCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scenario: range
series: 300
length: 32
queries: 3
word_length: 6
`), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"bench", "--config", path, "--log-level", "error"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		configPath = ""
		logLevel = "warn"
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "result")
	assert.Contains(t, out.String(), "PASS")
}
