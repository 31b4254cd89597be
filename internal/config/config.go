// Package config loads the server and CLI configuration from a YAML file
// and the environment.
package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Bible      BibleConfig      `yaml:"bible"`
	YouVersion YouVersionConfig `yaml:"youversion"`
	Cache      CacheConfig      `yaml:"cache"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host              string        `yaml:"host"                env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port              int           `yaml:"port"                env:"SERVER_PORT,PORT"        env-default:"8080"`
	AllowedOrigins    []string      `yaml:"allowed_origins"     env:"CORS_ALLOWED_ORIGINS"`
	RateLimitRequests int           `yaml:"rate_limit_requests" env:"RATE_LIMIT_REQUESTS"     env-default:"120"`
	RateLimitBurst    int           `yaml:"rate_limit_burst"    env:"RATE_LIMIT_BURST"        env-default:"20"`
	ReadTimeout       time.Duration `yaml:"read_timeout"        env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout      time.Duration `yaml:"write_timeout"       env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"    env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	TLS               TLSConfig     `yaml:"tls"`
}

// TLSConfig enables HTTPS when both files are set.
type TLSConfig struct {
	CertFile string `yaml:"cert_file" env:"TLS_CERT_FILE"`
	KeyFile  string `yaml:"key_file"  env:"TLS_KEY_FILE"`
}

// Enabled reports whether TLS is configured.
func (t TLSConfig) Enabled() bool {
	return t.CertFile != "" && t.KeyFile != ""
}

// BibleConfig selects and locates the corpus.
type BibleConfig struct {
	Source      string `yaml:"source"       env:"BIBLE_SOURCE"      env-default:"local"`
	CorpusDir   string `yaml:"corpus_dir"   env:"BIBLE_CORPUS_DIR"  env-default:"./public/local-bible"`
	CorpusURL   string `yaml:"corpus_url"   env:"BIBLE_CORPUS_URL"`
	SQLitePath  string `yaml:"sqlite_path"  env:"BIBLE_SQLITE_PATH"`
	NotesPath   string `yaml:"notes_path"   env:"BIBLE_NOTES_PATH"`
	ArticlesDir string `yaml:"articles_dir" env:"ARTICLES_DIR"      env-default:"./content/articles"`
}

// YouVersionConfig configures the remote provider.
type YouVersionConfig struct {
	AppKey  string `yaml:"app_key"  env:"YVP_APP_KEY,YOUVERSION_APP_KEY"`
	BibleID string `yaml:"bible_id" env:"YOUVERSION_BIBLE_ID,YVP_BIBLE_ID" env-default:"339"`
	BaseURL string `yaml:"base_url" env:"YOUVERSION_BASE_URL"              env-default:"https://api.youversion.com/v1"`
}

// CacheConfig selects the verse cache.
type CacheConfig struct {
	Backend       string        `yaml:"backend"        env:"CACHE_BACKEND"  env-default:"memory"`
	TTL           time.Duration `yaml:"ttl"            env:"CACHE_TTL"      env-default:"24h"`
	RedisAddr     string        `yaml:"redis_addr"     env:"REDIS_ADDR"     env-default:"localhost:6379"`
	RedisPassword string        `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db"       env:"REDIS_DB"       env-default:"0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
