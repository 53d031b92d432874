package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "warning", cfg.Log.Level)
	assert.Equal(t, "nais-io", cfg.BigQuery.ProjectID)
	assert.Equal(t, "cbr_rates", cfg.BigQuery.Dataset)
	assert.Equal(t, "daily_rates", cfg.BigQuery.RatesTable)
	assert.Equal(t, "europe-north1", cfg.BigQuery.Location)
}

func TestNew_Environment(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PROJECT_ID", "my-project")
	t.Setenv("RATES_TABLE", "rates")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "my-project", cfg.BigQuery.ProjectID)
	assert.Equal(t, "rates", cfg.BigQuery.RatesTable)
}

func TestNew_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BIGQUERY_DATASET=from_dotenv\n"), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Cleanup(func() { os.Unsetenv("BIGQUERY_DATASET") })

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "from_dotenv", cfg.BigQuery.Dataset)
}
