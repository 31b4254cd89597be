package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// inEmptyDir runs the test from a directory without config.yaml.
func inEmptyDir(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")
	origDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	require.NoError(t, os.Chdir(t.TempDir()))
}

// unsetenv removes a variable for the test. An empty value would still
// count as set.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

const validYAML = `
server:
  port: 9090
  allowed_origins: ["https://tamilbible.example"]
  rate_limit_requests: 60
bible:
  source: SQLite
  sqlite_path: ./bible.db
  notes_path: ./notes.json
youversion:
  bible_id: "1234"
cache:
  backend: redis
  redis_addr: "cache:6379"
  ttl: 1h
log:
  level: debug
  format: text
`

func TestLoad_YAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://tamilbible.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 60, cfg.Server.RateLimitRequests)
	assert.Equal(t, 20, cfg.Server.RateLimitBurst, "default should fill unset field")
	assert.Equal(t, SourceSQLite, cfg.Bible.Source, "source is lower-cased")
	assert.Equal(t, "./bible.db", cfg.Bible.SQLitePath)
	assert.Equal(t, "1234", cfg.YouVersion.BibleID)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_NoFile_Defaults(t *testing.T) {
	inEmptyDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceLocal, cfg.Bible.Source)
	assert.Equal(t, "./public/local-bible", cfg.Bible.CorpusDir)
	assert.Equal(t, "339", cfg.YouVersion.BibleID)
	assert.Equal(t, "https://api.youversion.com/v1", cfg.YouVersion.BaseURL)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.False(t, cfg.Server.TLS.Enabled())
}

func TestLoad_AppKeyAliases(t *testing.T) {
	inEmptyDir(t)
	unsetenv(t, "YVP_APP_KEY")
	t.Setenv("YOUVERSION_APP_KEY", "from-alias")
	t.Setenv("YVP_BIBLE_ID", "42")
	unsetenv(t, "YOUVERSION_BIBLE_ID")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-alias", cfg.YouVersion.AppKey)
	assert.Equal(t, "42", cfg.YouVersion.BibleID)
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "log:\n  format: text\n")
	t.Setenv("CONFIG_PATH", "")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Log.Format)

	_, err = LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func validConfig() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		Bible:  BibleConfig{Source: "local", CorpusDir: "./corpus"},
		Cache:  CacheConfig{Backend: "memory"},
		Log:    LogConfig{Level: "info", Format: "json"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, false},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, false},
		{"negative rate limit", func(c *Config) { c.Server.RateLimitRequests = -1 }, false},
		{"tls cert only", func(c *Config) { c.Server.TLS.CertFile = "cert.pem" }, false},
		{"tls both", func(c *Config) { c.Server.TLS = TLSConfig{CertFile: "c", KeyFile: "k"} }, true},
		{"unknown source", func(c *Config) { c.Bible.Source = "ftp" }, false},
		{"yvp source", func(c *Config) { c.Bible.Source = "YVP" }, true},
		{"sqlite without path", func(c *Config) { c.Bible.Source = "sqlite" }, false},
		{"local without corpus", func(c *Config) { c.Bible.CorpusDir = "" }, false},
		{"local with url only", func(c *Config) { c.Bible.CorpusDir = ""; c.Bible.CorpusURL = "https://x" }, true},
		{"unknown cache", func(c *Config) { c.Cache.Backend = "memcached" }, false},
		{"redis without addr", func(c *Config) { c.Cache.Backend = "redis" }, false},
		{"cache disabled", func(c *Config) { c.Cache.Backend = "none" }, true},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Second }, false},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
