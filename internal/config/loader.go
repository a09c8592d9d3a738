package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified file path.
// It supports YAML files and performs environment variable substitution.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Read the config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Unmarshal into config struct
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Perform environment variable substitution
	substituteEnvVars(cfg)

	return cfg, nil
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	substituteEnvVars(cfg)

	return cfg, nil
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func substituteEnvVars(cfg *Config) {
	substituteDataset(&cfg.Reference)
	substituteDataset(&cfg.Current)

	cfg.Report.Output = expandEnvVar(cfg.Report.Output)
	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)
}

func substituteDataset(ds *DatasetConfig) {
	ds.Path = expandEnvVar(ds.Path)
	ds.Host = expandEnvVar(ds.Host)
	ds.User = expandEnvVar(ds.User)
	ds.Password = expandEnvVar(ds.Password)
	ds.Database = expandEnvVar(ds.Database)
	ds.Endpoint = expandEnvVar(ds.Endpoint)
	ds.AccessKey = expandEnvVar(ds.AccessKey)
	ds.SecretKey = expandEnvVar(ds.SecretKey)
	ds.Bucket = expandEnvVar(ds.Bucket)
	ds.Key = expandEnvVar(ds.Key)
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		// Return original if env var not found
		return match
	})
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-zero/non-empty values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat string, threshold float64, minSampleSize, workers int, refPath, curPath, format, output string, noColor bool) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if threshold > 0 {
		c.Drift.Threshold = threshold
	}
	if minSampleSize > 0 {
		c.Drift.MinSampleSize = minSampleSize
	}
	if workers > 0 {
		c.Drift.Workers = workers
	}
	if refPath != "" {
		c.Reference.Path = refPath
		if c.Reference.Type == "" {
			c.Reference.Type = typeFromPath(refPath)
		}
	}
	if curPath != "" {
		c.Current.Path = curPath
		if c.Current.Type == "" {
			c.Current.Type = typeFromPath(curPath)
		}
	}
	if format != "" {
		c.Report.Format = format
	}
	if output != "" {
		c.Report.Output = output
	}
	if noColor {
		c.Report.Color = false
	}
}

// typeFromPath infers a file-backed source type from the path extension.
func typeFromPath(path string) string {
	switch {
	case strings.HasSuffix(path, ".parquet"):
		return "parquet"
	default:
		return "csv"
	}
}
