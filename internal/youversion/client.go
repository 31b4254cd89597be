// Package youversion fetches passages from the YouVersion platform API.
package youversion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	bterrors "github.com/FocuswithJustin/tamilbible/core/errors"
)

const (
	// DefaultBaseURL is the public API root.
	DefaultBaseURL = "https://api.youversion.com/v1"
	// DefaultBibleID is the translation used when none is configured.
	DefaultBibleID = "339"
	// AppKeyHeader carries the application key.
	AppKeyHeader = "x-yvp-app-key"
)

// ErrMissingAppKey is returned when the client has no application key.
var ErrMissingAppKey = errors.New("missing YVP_APP_KEY")

// Passage is the API's passage body.
type Passage struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Reference string `json:"reference"`
}

// Config configures a Client.
type Config struct {
	BaseURL string
	AppKey  string
	BibleID string
	Client  *http.Client
}

// Client calls the passages endpoint.
type Client struct {
	base    string
	appKey  string
	bibleID string
	http    *http.Client
}

// New creates a client, filling in defaults for empty fields.
func New(cfg Config) *Client {
	c := &Client{
		base:    strings.TrimRight(cfg.BaseURL, "/"),
		appKey:  cfg.AppKey,
		bibleID: cfg.BibleID,
		http:    cfg.Client,
	}
	if c.base == "" {
		c.base = DefaultBaseURL
	}
	if c.bibleID == "" {
		c.bibleID = DefaultBibleID
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	return c
}

// BibleID returns the translation used when a call names none.
func (c *Client) BibleID() string {
	return c.bibleID
}

// Passage fetches one passage. An empty bibleID means the default. A
// missing key is a local load error; anything the service does wrong is an
// upstream load error.
func (c *Client) Passage(ctx context.Context, bibleID, passageID string) (*Passage, error) {
	if c.appKey == "" {
		return nil, bterrors.NewLoad("passage", passageID, ErrMissingAppKey)
	}
	if bibleID == "" {
		bibleID = c.bibleID
	}

	u := c.base + "/bibles/" + url.PathEscape(bibleID) + "/passages/" + url.PathEscape(passageID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, bterrors.NewLoad("passage", passageID, err)
	}
	req.Header.Set(AppKeyHeader, c.appKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, bterrors.NewUpstream("passage", passageID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = "failed to fetch verse"
		}
		return nil, bterrors.NewUpstream("passage", passageID, fmt.Errorf("%s: %s", resp.Status, msg))
	}

	var p Passage
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, bterrors.NewUpstream("passage", passageID, fmt.Errorf("decode response: %w", err))
	}
	return &p, nil
}
