package config

import (
	"os"
	"strconv"
	"strings"

	"goeda/internal/analysis"
	"goeda/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Schema SchemaConfig
	Paths  PathConfig
	Output OutputConfig
}

// SchemaConfig holds the column roles and binning settings
type SchemaConfig struct {
	LabelColumn     string
	FeatureColumns  []string
	ExcludedColumns []string
	BinCount        int
	QuantileColumns []string
}

// PathConfig holds the input file locations
type PathConfig struct {
	TrainFile string
	TestFile  string
}

// OutputConfig holds export destinations
type OutputConfig struct {
	Dir string
}

// Load reads configuration from environment variables and validates it.
// Every value has a default; the survival schema applies when nothing is
// set, so a bare environment still produces a usable configuration.
func Load() (*Config, error) {
	config := &Config{
		Schema: loadSchemaConfig(),
		Paths:  loadPathConfig(),
		Output: loadOutputConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func loadSchemaConfig() SchemaConfig {
	defaults := analysis.DefaultConfig()
	return SchemaConfig{
		LabelColumn:     getEnvOrDefault("LABEL_COLUMN", defaults.LabelColumn),
		FeatureColumns:  getEnvListOrDefault("FEATURE_COLUMNS", defaults.FeatureColumns),
		ExcludedColumns: getEnvListOrDefault("EXCLUDED_COLUMNS", defaults.ExcludedColumns),
		BinCount:        getEnvIntOrDefault("BIN_COUNT", 0),
		QuantileColumns: getEnvListOrDefault("QUANTILE_COLUMNS", nil),
	}
}

func loadPathConfig() PathConfig {
	return PathConfig{
		TrainFile: getEnvOrDefault("TRAIN_FILE", ""),
		TestFile:  getEnvOrDefault("TEST_FILE", ""),
	}
}

func loadOutputConfig() OutputConfig {
	return OutputConfig{
		Dir: getEnvOrDefault("OUTPUT_DIR", "output"),
	}
}

func validateConfig(config *Config) error {
	if config.Schema.LabelColumn == "" {
		return errors.ConfigInvalid("label column cannot be empty")
	}
	if config.Schema.BinCount < 0 {
		return errors.ConfigInvalid("bin count cannot be negative")
	}
	for _, col := range config.Schema.ExcludedColumns {
		if col == config.Schema.LabelColumn {
			return errors.ConfigInvalid("label column cannot be excluded")
		}
	}
	return nil
}

// AnalysisConfig maps the loaded schema onto the engine's static
// configuration
func (c *Config) AnalysisConfig() analysis.Config {
	return analysis.Config{
		LabelColumn:     c.Schema.LabelColumn,
		FeatureColumns:  c.Schema.FeatureColumns,
		ExcludedColumns: c.Schema.ExcludedColumns,
	}
}

// RunOptions maps the loaded schema onto the engine's per-run options
func (c *Config) RunOptions() analysis.Options {
	return analysis.Options{
		BinCount:        c.Schema.BinCount,
		QuantileColumns: c.Schema.QuantileColumns,
	}
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvListOrDefault parses a comma-separated list, trimming whitespace
// and dropping empty items
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
