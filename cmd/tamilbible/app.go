package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/FocuswithJustin/tamilbible/core/books"
	"github.com/FocuswithJustin/tamilbible/core/notes"
	"github.com/FocuswithJustin/tamilbible/core/ref"
	"github.com/FocuswithJustin/tamilbible/internal/config"
	"github.com/FocuswithJustin/tamilbible/internal/corpus"
	"github.com/FocuswithJustin/tamilbible/internal/locator"
	"github.com/FocuswithJustin/tamilbible/internal/logging"
	"github.com/FocuswithJustin/tamilbible/internal/versecache"
	"github.com/FocuswithJustin/tamilbible/internal/youversion"
)

// app holds the wired services for one command.
type app struct {
	cfg      *config.Config
	registry *books.Registry
	resolver *ref.Resolver
	service  *locator.Service
	closers  []func() error
}

func newApp(cfg *config.Config) *app {
	registry := books.Canonical()
	return &app{
		cfg:      cfg,
		registry: registry,
		resolver: ref.NewResolver(registry),
	}
}

// Close releases stores and cache clients in reverse order.
func (a *app) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// localStore opens the file or HTTP corpus. It returns nil when neither is
// configured.
func (a *app) localStore() corpus.Store {
	b := a.cfg.Bible
	switch {
	case b.CorpusURL != "":
		return corpus.NewHTTPStore(b.CorpusURL, nil)
	case b.CorpusDir != "":
		return corpus.OpenDir(b.CorpusDir)
	}
	return nil
}

// booksDir is where the precache manifest finds book documents.
func (a *app) booksDir() string {
	return filepath.Join(a.cfg.Bible.CorpusDir, corpus.BooksDir)
}

// verseCache builds the configured cache. A nil result disables caching.
func (a *app) verseCache(ctx context.Context) (versecache.Cache, error) {
	c := a.cfg.Cache
	switch c.Backend {
	case "none":
		return nil, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
		rc := versecache.NewRedis(client, c.TTL)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rc.Ping(pingCtx); err != nil {
			client.Close()
			return nil, fmt.Errorf("verse cache: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		logging.Info("verse cache ready", "backend", "redis", "addr", c.RedisAddr, "ttl", c.TTL.String())
		return rc, nil
	default:
		logging.Info("verse cache ready", "backend", "memory", "ttl", c.TTL.String())
		return versecache.NewMemory(c.TTL), nil
	}
}

// Service registers every provider the configuration allows: the file or
// HTTP corpus as local, a SQLite corpus as sqlite, and the remote API as
// youversion (alias yvp).
func (a *app) Service(ctx context.Context) (*locator.Service, error) {
	if a.service != nil {
		return a.service, nil
	}

	cache, err := a.verseCache(ctx)
	if err != nil {
		return nil, err
	}
	svc := locator.NewService(a.resolver, a.cfg.Bible.Source, cache)

	if store := a.localStore(); store != nil {
		svc.Register(config.SourceLocal, locator.New(a.registry, store, config.SourceLocal))
	}

	if path := a.cfg.Bible.SQLitePath; path != "" {
		store, err := corpus.OpenSQLite(path)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		svc.Register(config.SourceSQLite, locator.New(a.registry, store, config.SourceSQLite))
	}

	yv := a.cfg.YouVersion
	client := youversion.New(youversion.Config{
		BaseURL: yv.BaseURL,
		AppKey:  yv.AppKey,
		BibleID: yv.BibleID,
	})
	svc.Register(config.SourceYouVersion, locator.NewRemote(client, config.SourceYouVersion), config.SourceYVP)
	if yv.AppKey == "" {
		logging.Warn("remote source has no app key", "source", config.SourceYouVersion)
	}

	a.service = svc
	return svc, nil
}

// Notes loads the configured study notes, or an empty index.
func (a *app) Notes(path string) (*notes.Index, error) {
	if path == "" {
		path = a.cfg.Bible.NotesPath
	}
	if path == "" {
		return notes.Build(nil, a.resolver), nil
	}
	list, err := notes.Load(path)
	if err != nil {
		return nil, err
	}
	idx := notes.Build(list, a.resolver)
	logging.Info("study notes loaded", "path", path, "notes", idx.Len(), "skipped", idx.Skipped())
	return idx, nil
}
