// Package config provides configuration loading and validation for the API server.
// It uses koanf to merge environment variables with optional file overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration values for the API server.
type Config struct {
	// Server settings
	Port int    `koanf:"port"`
	Env  string `koanf:"env"`

	// MongoDB
	MongoURI    string `koanf:"mongodb_uri"`
	MongoDBName string `koanf:"mongodb_db_name"`

	// Gamification
	VotePoints int64 `koanf:"vote_points"`

	// Proximity search
	DefaultRadiusKM float64 `koanf:"default_radius_km"`

	// Tracing
	TracingEnabled      bool    `koanf:"tracing_enabled"`
	TracingExporterType string  `koanf:"tracing_exporter_type"`
	TracingOTLPEndpoint string  `koanf:"tracing_otlp_endpoint"`
	TracingSamplingRate float64 `koanf:"tracing_sampling_rate"`
	TracingInsecure     bool    `koanf:"tracing_insecure"`
}

// Configuration validation errors.
var (
	ErrMissingMongoURI    = errors.New("MONGODB_URI is required")
	ErrMissingMongoDBName = errors.New("MONGODB_DB_NAME is required")
	ErrInvalidPort        = errors.New("PORT must be a valid integer")
	ErrInvalidVotePoints  = errors.New("VOTE_POINTS must be positive")
	ErrInvalidRadius      = errors.New("DEFAULT_RADIUS_KM must be positive")
)

// Default values for non-secret configuration.
const (
	DefaultPort            = 8080
	DefaultEnv             = "development"
	DefaultDBName          = "praca"
	DefaultVotePoints      = 10
	DefaultRadiusKM        = 5.0
	DefaultTracingSampling = 0.1
)

// Load reads configuration from environment variables and an optional config file.
// Environment variables take precedence over file values.
// Returns the loaded config and a slice of validation errors (empty if valid).
// If a config file path is provided and the file cannot be loaded, an error is returned.
func Load(configFilePath string) (*Config, []error) {
	k := koanf.New(".")
	var loadErrs []error

	// File values load first so env vars can override them.
	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, []error{fmt.Errorf("failed to load config file %s: %w", configFilePath, err)}
		}
	}

	port, portErr := getEnvIntOrDefaultMulti([]string{"PRACA_PORT", "PORT"}, k.Int("port"), DefaultPort)
	if portErr != nil {
		loadErrs = append(loadErrs, portErr)
	}

	votePoints, vpErr := getEnvIntOrDefault("VOTE_POINTS", int(k.Int64("vote_points")), DefaultVotePoints)
	if vpErr != nil {
		loadErrs = append(loadErrs, fmt.Errorf("%w: %v", ErrInvalidVotePoints, vpErr))
	}

	radius, radiusErr := getEnvFloatOrDefault("DEFAULT_RADIUS_KM", k.Float64("default_radius_km"), DefaultRadiusKM)
	if radiusErr != nil {
		loadErrs = append(loadErrs, fmt.Errorf("%w: %v", ErrInvalidRadius, radiusErr))
	}

	samplingRate, samplingErr := getEnvFloatOrDefault("TRACING_SAMPLING_RATE", k.Float64("tracing_sampling_rate"), DefaultTracingSampling)
	if samplingErr != nil {
		loadErrs = append(loadErrs, samplingErr)
	}

	cfg := &Config{
		Port:                port,
		Env:                 getEnvOrDefaultMulti([]string{"PRACA_ENV", "ENV", "GO_ENV"}, k.String("env"), DefaultEnv),
		MongoURI:            getEnvOrKoanf("MONGODB_URI", k, "mongodb_uri"),
		MongoDBName:         getEnvOrDefault("MONGODB_DB_NAME", k.String("mongodb_db_name"), DefaultDBName),
		VotePoints:          int64(votePoints),
		DefaultRadiusKM:     radius,
		TracingEnabled:      getEnvBool("TRACING_ENABLED", k.Bool("tracing_enabled")),
		TracingExporterType: getEnvOrDefault("TRACING_EXPORTER_TYPE", k.String("tracing_exporter_type"), "otlp-http"),
		TracingOTLPEndpoint: getEnvOrKoanf("TRACING_OTLP_ENDPOINT", k, "tracing_otlp_endpoint"),
		TracingSamplingRate: samplingRate,
		TracingInsecure:     getEnvBool("TRACING_INSECURE", k.Bool("tracing_insecure")),
	}

	errs := cfg.Validate()
	errs = append(loadErrs, errs...)

	return cfg, errs
}

// IsProduction reports whether the server runs with the production profile.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// getEnvOrKoanf returns the environment variable value if set, otherwise the koanf value.
func getEnvOrKoanf(envKey string, k *koanf.Koanf, koanfKey string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	return k.String(koanfKey)
}

// getEnvOrDefault returns the environment variable value if set, otherwise the koanf value, or default.
func getEnvOrDefault(envKey string, koanfVal string, defaultVal string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	if koanfVal != "" {
		return koanfVal
	}
	return defaultVal
}

// getEnvOrDefaultMulti tries multiple environment variable keys in order.
// Returns the first non-empty value found, otherwise the koanf value, or default.
func getEnvOrDefaultMulti(envKeys []string, koanfVal string, defaultVal string) string {
	for _, key := range envKeys {
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	if koanfVal != "" {
		return koanfVal
	}
	return defaultVal
}

// getEnvBool reads a boolean environment variable, falling back to the
// koanf value. Env vars take precedence.
func getEnvBool(envKey string, koanfVal bool) bool {
	val := os.Getenv(envKey)
	if val == "" {
		return koanfVal
	}
	switch strings.ToLower(val) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return koanfVal
}

// getEnvIntOrDefault returns the environment variable as int if set, otherwise the koanf value, or default.
// Returns an error if the environment variable is set but cannot be parsed as an integer.
func getEnvIntOrDefault(envKey string, koanfVal int, defaultVal int) (int, error) {
	if val := os.Getenv(envKey); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("%s must be a valid integer: %w", envKey, err)
		}
		return i, nil
	}
	if koanfVal != 0 {
		return koanfVal, nil
	}
	return defaultVal, nil
}

// getEnvIntOrDefaultMulti tries multiple environment variable keys in order.
// Returns the first valid integer value found, otherwise the koanf value, or default.
// Returns an error if any environment variable is set but cannot be parsed as an integer.
func getEnvIntOrDefaultMulti(envKeys []string, koanfVal int, defaultVal int) (int, error) {
	for _, key := range envKeys {
		if val := os.Getenv(key); val != "" {
			i, err := strconv.Atoi(val)
			if err != nil {
				return 0, fmt.Errorf("%s must be a valid integer: %w", key, ErrInvalidPort)
			}
			return i, nil
		}
	}
	if koanfVal != 0 {
		return koanfVal, nil
	}
	return defaultVal, nil
}

// getEnvFloatOrDefault returns the environment variable as float64 if set, otherwise the koanf value, or default.
// Returns an error if the environment variable is set but cannot be parsed as a float.
func getEnvFloatOrDefault(envKey string, koanfVal float64, defaultVal float64) (float64, error) {
	if val := os.Getenv(envKey); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("%s must be a valid float: %w", envKey, err)
		}
		return f, nil
	}
	if koanfVal != 0 {
		return koanfVal, nil
	}
	return defaultVal, nil
}

// Validate checks that all required configuration values are present.
// Returns a slice of validation errors (empty if valid).
func (c *Config) Validate() []error {
	var errs []error

	if c.MongoURI == "" {
		errs = append(errs, ErrMissingMongoURI)
	}
	if c.MongoDBName == "" {
		errs = append(errs, ErrMissingMongoDBName)
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, ErrInvalidPort)
	}
	if c.VotePoints <= 0 {
		errs = append(errs, ErrInvalidVotePoints)
	}
	if c.DefaultRadiusKM <= 0 {
		errs = append(errs, ErrInvalidRadius)
	}

	return errs
}

// LogSummary returns a summary of the configuration suitable for logging.
// Credentials embedded in the Mongo URI are masked.
func (c *Config) LogSummary() map[string]string {
	return map[string]string{
		"port":              fmt.Sprintf("%d", c.Port),
		"env":               c.Env,
		"mongodb_uri":       maskMongoURI(c.MongoURI),
		"mongodb_db_name":   c.MongoDBName,
		"vote_points":       fmt.Sprintf("%d", c.VotePoints),
		"default_radius_km": fmt.Sprintf("%g", c.DefaultRadiusKM),
		"tracing_enabled":   fmt.Sprintf("%t", c.TracingEnabled),
		"tracing_exporter":  c.TracingExporterType,
		"tracing_endpoint":  c.TracingOTLPEndpoint,
	}
}

// maskMongoURI masks the password in a MongoDB connection string.
func maskMongoURI(s string) string {
	if s == "" {
		return "<not set>"
	}

	schemeEnd := strings.Index(s, "://")
	if schemeEnd == -1 {
		return "****"
	}

	rest := s[schemeEnd+3:]
	atIndex := strings.Index(rest, "@")
	if atIndex == -1 {
		return s // No credentials in URI
	}

	colonIndex := strings.Index(rest[:atIndex], ":")
	if colonIndex == -1 {
		return s // No password (only username)
	}

	return s[:schemeEnd+3] + rest[:colonIndex] + ":****" + rest[atIndex:]
}
