package locator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/FocuswithJustin/tamilbible/core/books"
	bterrors "github.com/FocuswithJustin/tamilbible/core/errors"
	"github.com/FocuswithJustin/tamilbible/core/passage"
	"github.com/FocuswithJustin/tamilbible/core/ref"
	"github.com/FocuswithJustin/tamilbible/internal/versecache"
	"github.com/FocuswithJustin/tamilbible/internal/youversion"
)

// fakeRemote is a bible-scoped provider that records its queries.
type fakeRemote struct {
	mu      sync.Mutex
	queries []Query
	err     error
}

func (f *fakeRemote) BibleID() string { return "339" }

func (f *fakeRemote) Passage(ctx context.Context, q Query) (*Passage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return &Passage{ID: q.PassageID, Reference: "Remote " + q.PassageID, Content: "remote text"}, nil
}

func newTestService(t *testing.T) (*Service, *fakeRemote, *versecache.Memory) {
	t.Helper()
	l, _ := newTestLocator()
	remote := &fakeRemote{}
	mem := versecache.NewMemory(0)
	s := NewService(ref.NewResolver(books.Canonical()), "local", mem)
	s.Register("local", l)
	s.Register("youversion", remote, "yvp")
	return s, remote, mem
}

func TestServiceLookupByCitation(t *testing.T) {
	s, _, _ := newTestService(t)
	p, err := s.Lookup(context.Background(), Request{Ref: "Gen 1:3-5"})
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if p.ID != "GEN.1.3-5" || p.Content != "v3 v4 v5" {
		t.Errorf("Passage = %+v", p)
	}
	if p.Reference != "Genesis 1:3-5" {
		t.Errorf("Reference = %q, want canonical reference", p.Reference)
	}
}

func TestServiceCallerReferenceWins(t *testing.T) {
	s, _, _ := newTestService(t)

	p, err := s.Lookup(context.Background(), Request{Passage: "GEN.1.1", Ref: "ஆதி 1:1"})
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if p.Reference != "ஆதி 1:1" {
		t.Errorf("Reference = %q", p.Reference)
	}

	// The cached entry keeps the generated reference.
	p, err = s.Lookup(context.Background(), Request{Passage: "GEN.1.1"})
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if p.Reference != "ஆதியாகமம் 1:1" {
		t.Errorf("cached Reference = %q", p.Reference)
	}
}

func TestServiceErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"no passage no ref", Request{}, ErrInvalidReference},
		{"unresolvable ref", Request{Ref: "Not A Book 1:1"}, ErrInvalidReference},
		{"unknown source", Request{Passage: "GEN.1.1", Source: "ftp"}, bterrors.ErrUnsupported},
		{"bad format remote", Request{Passage: "GEN.1", Source: "yvp"}, passage.ErrInvalidFormat},
		{"unknown book remote", Request{Passage: "ABC.1.1", Source: "youversion"}, passage.ErrUnknownBook},
		{"not found", Request{Passage: "GEN.1.99"}, bterrors.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, remote, _ := newTestService(t)
			_, err := s.Lookup(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Lookup(%+v) error = %v, want %v", tt.req, err, tt.wantErr)
			}
			if len(remote.queries) != 0 {
				t.Errorf("remote called for a rejected request: %v", remote.queries)
			}
		})
	}
}

func TestServiceRemoteAliasAndCache(t *testing.T) {
	s, remote, mem := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		p, err := s.Lookup(ctx, Request{Passage: "JHN.3.16", Source: "YVP"})
		if err != nil {
			t.Fatalf("Lookup %d failed: %v", i, err)
		}
		if p.Content != "remote text" || p.Source != "youversion" {
			t.Errorf("Passage = %+v", p)
		}
	}
	if len(remote.queries) != 1 {
		t.Fatalf("remote called %d times, want 1", len(remote.queries))
	}
	if q := remote.queries[0]; q.BibleID != "339" || q.Reference != "" {
		t.Errorf("query = %+v", q)
	}
	if _, ok, _ := mem.Get(ctx, "youversion:339:JHN.3.16"); !ok {
		t.Error("expected entry under youversion:339:JHN.3.16")
	}

	if _, err := s.Lookup(ctx, Request{Passage: "JHN.3.16", Source: "yvp", BibleID: "111"}); err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(remote.queries) != 2 || remote.queries[1].BibleID != "111" {
		t.Errorf("translation should key the cache separately: %v", remote.queries)
	}
}

func TestServiceFailuresAreNotCached(t *testing.T) {
	s, remote, mem := newTestService(t)
	remote.err = bterrors.NewUpstream("passage", "JHN.3.16", errors.New("502"))

	_, err := s.Lookup(context.Background(), Request{Passage: "JHN.3.16", Source: "youversion"})
	if !bterrors.IsUpstream(err) {
		t.Fatalf("error = %v, want upstream", err)
	}
	if mem.Len() != 0 {
		t.Error("failure was cached")
	}
}

func TestServiceSources(t *testing.T) {
	s, _, _ := newTestService(t)
	got := s.Sources()
	if len(got) != 2 || got[0] != "local" || got[1] != "youversion" {
		t.Errorf("Sources = %v", got)
	}
	if s.DefaultSource() != "local" {
		t.Errorf("DefaultSource = %q", s.DefaultSource())
	}
}

func TestRemoteProvider(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		want    Passage
	}{
		{
			name: "full answer",
			body: `{"id":"JHN.3.16","content":"text","reference":"John 3:16"}`,
			want: Passage{ID: "JHN.3.16", Reference: "John 3:16", Content: "text", Source: "youversion"},
		},
		{
			name: "missing id and reference",
			body: `{"content":"text"}`,
			want: Passage{ID: "JHN.3.16", Reference: "JHN.3.16", Content: "text", Source: "youversion"},
		},
		{
			name:    "empty content",
			body:    `{"id":"JHN.3.16","content":""}`,
			wantErr: bterrors.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			r := NewRemote(youversion.New(youversion.Config{BaseURL: srv.URL, AppKey: "k"}), "youversion")
			if r.BibleID() != youversion.DefaultBibleID {
				t.Errorf("BibleID = %q", r.BibleID())
			}
			p, err := r.Passage(context.Background(), Query{PassageID: "JHN.3.16"})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Passage failed: %v", err)
			}
			if *p != tt.want {
				t.Errorf("Passage = %+v, want %+v", *p, tt.want)
			}
		})
	}
}
