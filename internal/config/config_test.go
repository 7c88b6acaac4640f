package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Online: OnlineConfig{
			BaseURL:           "https://osu.ppy.sh",
			RequestsPerSecond: 1,
			Burst:             3,
			Timeout:           30 * time.Second,
		},
		Storage: StorageConfig{BasePath: "/some/path"},
		Server:  ServerConfig{Port: "8080", RequestsPerSecond: 20},
	}
}

// loadArgs points the loader at a missing .env file so the working
// directory cannot leak into tests.
func loadArgs(t *testing.T, args ...string) []string {
	t.Helper()
	return append([]string{"-env-file", filepath.Join(t.TempDir(), "missing.env")}, args...)
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"DEBUG", true}, // case insensitive
		{"trace", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_Online(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.Online.BaseURL = "" }},
		{"relative base url", func(c *Config) { c.Online.BaseURL = "osu.ppy.sh" }},
		{"zero rps", func(c *Config) { c.Online.RequestsPerSecond = 0 }},
		{"negative burst", func(c *Config) { c.Online.Burst = -1 }},
		{"negative server rps", func(c *Config) { c.Server.RequestsPerSecond = -1 }},
		{"empty storage path", func(c *Config) { c.Storage.BasePath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(loadArgs(t))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "https://osu.ppy.sh", cfg.Online.BaseURL)
	assert.InDelta(t, 1.0, cfg.Online.RequestsPerSecond, 1e-9)
	assert.Equal(t, 3, cfg.Online.Burst)
	assert.Equal(t, 30*time.Second, cfg.Online.Timeout)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Server.MetricsEnabled)

	base := filepath.Join(home, "BeatmapServer", "data")
	assert.Equal(t, base, cfg.Storage.BasePath)
	assert.Equal(t, filepath.Join(base, "library"), cfg.Storage.LibraryPath)
	assert.Equal(t, filepath.Join(base, "rulesets.db"), cfg.Storage.RulesetDBPath)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("ONLINE_BURST", "5")
	t.Setenv("DATA_PATH", dir)

	cfg, err := Load(loadArgs(t, "-port", "9100", "-online-timeout", "5s"))
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Online.Burst)
	assert.Equal(t, 5*time.Second, cfg.Online.Timeout)
	assert.Equal(t, dir, cfg.Storage.BasePath)
	assert.Equal(t, filepath.Join(dir, "library"), cfg.Storage.LibraryPath)
}

func TestLoad_ExplicitStoragePaths(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(loadArgs(t,
		"-data-path", dir,
		"-library-path", filepath.Join(dir, "elsewhere"),
		"-ruleset-db", filepath.Join(dir, "r.db"),
	))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "elsewhere"), cfg.Storage.LibraryPath)
	assert.Equal(t, filepath.Join(dir, "r.db"), cfg.Storage.RulesetDBPath)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"bad duration", []string{"-read-timeout", "soon"}},
		{"bad burst", []string{"-online-burst", "many"}},
		{"bad rps", []string{"-online-rps", "fast"}},
		{"bad metrics flag", []string{"-metrics", "sometimes"}},
		{"bad environment", []string{"-env", "test"}},
		{"unknown flag", []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(loadArgs(t, append([]string{"-data-path", dir}, tt.args...)...))
			assert.Error(t, err)
		})
	}
}

func TestLoad_ServerOptions(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := Load(loadArgs(t, "-data-path", t.TempDir(), "-metrics", "false"))
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Server.MetricsEnabled)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte(`# test file
ONLINE_ACCESS_TOKEN="from-file"
LOG_LEVEL=debug
`), 0o600))

	t.Setenv("LOG_LEVEL", "warn")
	t.Cleanup(func() { _ = os.Unsetenv("ONLINE_ACCESS_TOKEN") })

	cfg, err := Load([]string{"-env-file", envPath, "-data-path", dir})
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Online.AccessToken)
	assert.Equal(t, "warn", cfg.Logger.Level, "existing env vars win over the file")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/default", got)

	got, err = expandPath("~/beatmaps", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "beatmaps"), got)

	got, err = expandPath("/abs/../path", "")
	require.NoError(t, err)
	assert.Equal(t, "/path", got)

	got, err = expandPath("relative", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("TEST_CONFIG_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "TEST_CONFIG_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "TEST_CONFIG_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "TEST_CONFIG_KEY_UNSET", "default"))
}
