// Package config loads application configuration from command-line flags,
// environment variables and .env files.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Online  OnlineConfig
	Storage StorageConfig
	Server  ServerConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// OnlineConfig configures the online beatmap API client.
type OnlineConfig struct {
	BaseURL           string        // default: https://osu.ppy.sh
	AccessToken       string        // Optional bearer token
	RequestsPerSecond float64       // default: 1
	Burst             int           // default: 3
	Timeout           time.Duration // default: 30s
}

// StorageConfig holds on-disk locations.
type StorageConfig struct {
	BasePath      string // default: ~/BeatmapServer/data
	LibraryPath   string // default: {base}/library
	RulesetDBPath string // default: {base}/rulesets.db
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        // default: 8080
	ReadTimeout  time.Duration // default: 15s
	WriteTimeout time.Duration // default: 15s
	IdleTimeout  time.Duration // default: 60s
	// Inbound requests allowed per client per second (default: 20, 0 disables).
	RequestsPerSecond float64
	// Origins allowed to call the API from a browser (default: *).
	AllowedOrigins []string
	MetricsEnabled bool // default: true
}

// LoadConfig loads configuration from os.Args with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load is LoadConfig over an explicit argument list.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("beatmap-server", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")

	onlineURL := fs.String("online-url", "", "Base URL of the online beatmap API")
	onlineToken := fs.String("online-token", "", "Bearer token for the online beatmap API")
	onlineRPS := fs.String("online-rps", "", "Outbound requests per second (default: 1)")
	onlineBurst := fs.String("online-burst", "", "Outbound request burst (default: 3)")
	onlineTimeout := fs.String("online-timeout", "", "Outbound request timeout (default: 30s)")

	dataPath := fs.String("data-path", "", "Base path for stored data")
	libraryPath := fs.String("library-path", "", "Path of the beatmap set library database")
	rulesetDBPath := fs.String("ruleset-db", "", "Path of the ruleset database")

	serverPort := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	serverRPS := fs.String("server-rps", "", "Inbound requests per second per client (default: 20)")
	corsOrigins := fs.String("cors-origins", "", "Comma separated origins allowed by CORS (default: *)")
	metricsEnabled := fs.String("metrics", "", "Serve Prometheus metrics on /metrics (default: true)")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Missing .env files are fine; existing env vars win over the file.
	_ = godotenv.Load(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Online: OnlineConfig{
			BaseURL:     getConfigValue(*onlineURL, "ONLINE_BASE_URL", "https://osu.ppy.sh"),
			AccessToken: getConfigValue(*onlineToken, "ONLINE_ACCESS_TOKEN", ""),
		},
		Storage: StorageConfig{
			BasePath:      getConfigValue(*dataPath, "DATA_PATH", ""),
			LibraryPath:   getConfigValue(*libraryPath, "LIBRARY_PATH", ""),
			RulesetDBPath: getConfigValue(*rulesetDBPath, "RULESET_DB_PATH", ""),
		},
		Server: ServerConfig{
			Port:           getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			AllowedOrigins: splitList(getConfigValue(*corsOrigins, "CORS_ALLOWED_ORIGINS", "*")),
		},
	}

	var err error
	if cfg.Online.RequestsPerSecond, err = getFloatConfigValue(*onlineRPS, "ONLINE_RPS", 1); err != nil {
		return nil, err
	}
	if cfg.Online.Burst, err = getIntConfigValue(*onlineBurst, "ONLINE_BURST", 3); err != nil {
		return nil, err
	}
	if cfg.Server.RequestsPerSecond, err = getFloatConfigValue(*serverRPS, "SERVER_RPS", 20); err != nil {
		return nil, err
	}

	if cfg.Server.MetricsEnabled, err = getBoolConfigValue(*metricsEnabled, "METRICS_ENABLED", true); err != nil {
		return nil, err
	}

	durations := []struct {
		dst      *time.Duration
		flag     string
		envKey   string
		fallback string
	}{
		{&cfg.Online.Timeout, *onlineTimeout, "ONLINE_TIMEOUT", "30s"},
		{&cfg.Server.ReadTimeout, *readTimeout, "SERVER_READ_TIMEOUT", "15s"},
		{&cfg.Server.WriteTimeout, *writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"},
		{&cfg.Server.IdleTimeout, *idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"},
	}
	for _, d := range durations {
		if *d.dst, err = getDurationConfigValue(d.flag, d.envKey, d.fallback); err != nil {
			return nil, err
		}
	}

	if err := cfg.expandStoragePaths(); err != nil {
		return nil, fmt.Errorf("invalid storage path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Online.BaseURL == "" {
		return errors.New("online base URL is required")
	}
	u, err := url.Parse(c.Online.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid online base URL: %q", c.Online.BaseURL)
	}
	if c.Online.RequestsPerSecond <= 0 {
		return fmt.Errorf("online requests per second must be positive, got %v", c.Online.RequestsPerSecond)
	}
	if c.Online.Burst <= 0 {
		return fmt.Errorf("online burst must be positive, got %d", c.Online.Burst)
	}
	if c.Server.RequestsPerSecond < 0 {
		return fmt.Errorf("server requests per second cannot be negative, got %v", c.Server.RequestsPerSecond)
	}

	if c.Storage.BasePath == "" {
		return errors.New("storage base path cannot be empty after expansion")
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty, defaultPath is returned as is.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandStoragePaths resolves the base path and derives the database
// locations from it when they are not set.
func (c *Config) expandStoragePaths() error {
	defaultBase := ""
	if c.Storage.BasePath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		defaultBase = filepath.Join(homeDir, "BeatmapServer", "data")
	}

	base, err := expandPath(c.Storage.BasePath, defaultBase)
	if err != nil {
		return err
	}
	c.Storage.BasePath = base

	if c.Storage.LibraryPath, err = expandPath(c.Storage.LibraryPath, filepath.Join(base, "library")); err != nil {
		return err
	}
	if c.Storage.RulesetDBPath, err = expandPath(c.Storage.RulesetDBPath, filepath.Join(base, "rulesets.db")); err != nil {
		return err
	}
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) (int, error) {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(strValue)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, strValue, err)
	}
	return v, nil
}

// getFloatConfigValue returns a float from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) (float64, error) {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(strValue, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, strValue, err)
	}
	return v, nil
}

// getDurationConfigValue returns a duration from flag, env var, or default.
func getDurationConfigValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	strValue := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(strValue)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, strValue, err)
	}
	return d, nil
}

// getBoolConfigValue returns a bool from flag, env var, or default.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) (bool, error) {
	raw := getConfigValue(flagValue, envKey, "")
	if raw == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", envKey, raw, err)
	}
	return b, nil
}

// splitList splits a comma separated value, dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
