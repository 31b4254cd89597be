package locator

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	bterrors "github.com/FocuswithJustin/tamilbible/core/errors"
	"github.com/FocuswithJustin/tamilbible/core/passage"
	"github.com/FocuswithJustin/tamilbible/core/ref"
	"github.com/FocuswithJustin/tamilbible/internal/logging"
	"github.com/FocuswithJustin/tamilbible/internal/versecache"
)

// ErrInvalidReference is returned when a lookup has no passage identifier
// and its citation does not resolve.
var ErrInvalidReference = fmt.Errorf("invalid reference: %w", bterrors.ErrInvalidInput)

// Query is what a provider is asked for.
type Query struct {
	PassageID string
	Reference string
	BibleID   string
}

// Provider returns passage text from one source.
type Provider interface {
	Passage(ctx context.Context, q Query) (*Passage, error)
}

// bibleScoped is implemented by providers that serve several translations
// and have a default one.
type bibleScoped interface {
	BibleID() string
}

// Passage implements Provider.
func (l *Locator) Passage(ctx context.Context, q Query) (*Passage, error) {
	return l.Lookup(ctx, q.PassageID, q.Reference)
}

// Request is a lookup as callers phrase it: a passage identifier or a
// citation, plus an optional source and translation.
type Request struct {
	Passage string `json:"passage,omitempty"`
	Ref     string `json:"ref,omitempty"`
	Source  string `json:"source,omitempty"`
	BibleID string `json:"bibleId,omitempty"`
}

// Service routes lookups to named providers and caches what they return.
type Service struct {
	resolver      *ref.Resolver
	defaultSource string
	cache         versecache.Cache

	mu        sync.RWMutex
	providers map[string]Provider
	aliases   map[string]string
}

// NewService creates a service. A nil cache disables caching.
func NewService(resolver *ref.Resolver, defaultSource string, cache versecache.Cache) *Service {
	return &Service{
		resolver:      resolver,
		defaultSource: strings.ToLower(defaultSource),
		cache:         cache,
		providers:     make(map[string]Provider),
		aliases:       make(map[string]string),
	}
}

// Register adds a provider under name and any aliases.
func (s *Service) Register(name string, p Provider, aliases ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name = strings.ToLower(name)
	s.providers[name] = p
	for _, a := range aliases {
		s.aliases[strings.ToLower(a)] = name
	}
}

// Sources lists registered provider names.
func (s *Service) Sources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.providers))
	for name := range s.providers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DefaultSource returns the source used when a request names none.
func (s *Service) DefaultSource() string {
	return s.defaultSource
}

// Resolver returns the citation resolver.
func (s *Service) Resolver() *ref.Resolver {
	return s.resolver
}

func (s *Service) provider(source string) (string, Provider, error) {
	source = strings.ToLower(strings.TrimSpace(source))
	if source == "" {
		source = s.defaultSource
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if name, ok := s.aliases[source]; ok {
		source = name
	}
	p, ok := s.providers[source]
	if !ok {
		return "", nil, bterrors.NewUnsupported("source", source)
	}
	return source, p, nil
}

// Lookup finds the passage a request names. Without a passage identifier
// the citation is resolved and its canonical reference is used. A
// caller-supplied citation always becomes the result's reference.
func (s *Service) Lookup(ctx context.Context, req Request) (*Passage, error) {
	start := time.Now()

	passageID := strings.TrimSpace(req.Passage)
	reference := strings.TrimSpace(req.Ref)
	if passageID == "" {
		r := s.resolver.Resolve(reference)
		if r == nil {
			return nil, ErrInvalidReference
		}
		passageID = r.PassageID
		reference = r.Reference
	}

	source, p, err := s.provider(req.Source)
	if err != nil {
		return nil, err
	}

	id, err := passage.Parse(passageID)
	if err != nil {
		return nil, err
	}
	if _, ok := s.resolver.Registry().ByCode(id.Book); !ok {
		return nil, fmt.Errorf("%w: %q", passage.ErrUnknownBook, id.Book)
	}

	bibleID := ""
	if scoped, ok := p.(bibleScoped); ok {
		bibleID = strings.TrimSpace(req.BibleID)
		if bibleID == "" {
			bibleID = scoped.BibleID()
		}
	}

	result, cached, err := s.fetch(ctx, source, p, Query{PassageID: passageID, BibleID: bibleID})
	logging.PassageLookup(ctx, passageID, source, cached, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if reference != "" {
		result.Reference = reference
	}
	return result, nil
}

func (s *Service) fetch(ctx context.Context, source string, p Provider, q Query) (*Passage, bool, error) {
	key := versecache.Key(source, q.BibleID, q.PassageID)
	if s.cache != nil {
		e, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			logging.WarnContext(ctx, "verse cache read failed", "key", key, "error", err.Error())
		} else if ok {
			return &Passage{ID: e.ID, Reference: e.Reference, Content: e.Content, Source: e.Source}, true, nil
		}
	}

	result, err := p.Passage(ctx, q)
	if err != nil {
		return nil, false, err
	}
	if result.Source == "" {
		result.Source = source
	}

	if s.cache != nil {
		e := versecache.Entry{ID: result.ID, Content: result.Content, Reference: result.Reference, Source: result.Source}
		if err := s.cache.Set(ctx, key, e); err != nil {
			logging.WarnContext(ctx, "verse cache write failed", "key", key, "error", err.Error())
		}
	}
	return result, false, nil
}
