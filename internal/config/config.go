package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Log configuration
type Log struct {
	// Format Customize the log format. Can be "text" or "json".
	Format string `envconfig:"LOG_FORMAT" default:"text"`

	// Level The log level. Warnings and errors only by default, so a terminal only sees the result.
	Level string `envconfig:"LOG_LEVEL" default:"warning"`
}

// BigQuery configuration, used by the rate export job
type BigQuery struct {
	// ProjectID is the name of the project containing the dataset
	ProjectID string `envconfig:"PROJECT_ID" default:"nais-io"`

	// Dataset is the name of the dataset containing the rates table
	Dataset string `envconfig:"BIGQUERY_DATASET" default:"cbr_rates"`

	// RatesTable is the name of the table containing daily rates
	RatesTable string `envconfig:"RATES_TABLE" default:"daily_rates"`

	// Location is the BigQuery location of the dataset
	Location string `envconfig:"BIGQUERY_LOCATION" default:"europe-north1"`
}

// Config is the configuration for the application
type Config struct {
	BigQuery BigQuery
	Log      Log
}

// New reads the configuration from the environment. A .env file in the
// working directory is loaded first if present; it never overrides variables
// that are already set.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
