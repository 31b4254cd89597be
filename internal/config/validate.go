package config

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/tamilbible/internal/logging"
)

// Sources a lookup may name.
const (
	SourceLocal      = "local"
	SourceSQLite     = "sqlite"
	SourceYouVersion = "youversion"
	SourceYVP        = "yvp"
)

// Validate checks the loaded configuration and normalizes case-insensitive
// fields. Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535 (got %d)", c.Server.Port)
	}
	if c.Server.RateLimitRequests < 0 || c.Server.RateLimitBurst < 0 {
		return fmt.Errorf("server rate limits must be >= 0")
	}
	if (c.Server.TLS.CertFile == "") != (c.Server.TLS.KeyFile == "") {
		return fmt.Errorf("server.tls needs both cert_file and key_file")
	}

	if err := c.Bible.validate(); err != nil {
		return fmt.Errorf("bible: %w", err)
	}

	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	switch c.Cache.Backend {
	case "memory", "none":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("cache.backend must be memory, redis or none (got %q)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be >= 0 (got %v)", c.Cache.TTL)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}

	return nil
}

func (b *BibleConfig) validate() error {
	b.Source = strings.ToLower(strings.TrimSpace(b.Source))
	switch b.Source {
	case SourceLocal, SourceYouVersion, SourceYVP:
	case SourceSQLite:
		if b.SQLitePath == "" {
			return fmt.Errorf("sqlite_path is required when source is sqlite")
		}
	default:
		return fmt.Errorf("unknown source %q", b.Source)
	}
	if b.CorpusDir == "" && b.CorpusURL == "" && b.Source == SourceLocal {
		return fmt.Errorf("corpus_dir or corpus_url is required when source is local")
	}
	return nil
}
