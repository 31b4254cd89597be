package locator

import (
	"context"
	"strings"

	bterrors "github.com/FocuswithJustin/tamilbible/core/errors"
	"github.com/FocuswithJustin/tamilbible/internal/youversion"
)

// Remote serves passages from the YouVersion API.
type Remote struct {
	client *youversion.Client
	source string
}

// NewRemote wraps a YouVersion client. source names it in results.
func NewRemote(client *youversion.Client, source string) *Remote {
	return &Remote{client: client, source: source}
}

// BibleID returns the client's default translation.
func (r *Remote) BibleID() string {
	return r.client.BibleID()
}

// Passage fetches the passage. An answer without content is NotFound.
func (r *Remote) Passage(ctx context.Context, q Query) (*Passage, error) {
	p, err := r.client.Passage(ctx, q.BibleID, q.PassageID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Content) == "" {
		return nil, bterrors.NewNotFound("verse", q.PassageID)
	}

	out := &Passage{
		ID:        p.ID,
		Reference: p.Reference,
		Content:   p.Content,
		Source:    r.source,
	}
	if out.ID == "" {
		out.ID = q.PassageID
	}
	if out.Reference == "" {
		out.Reference = q.Reference
	}
	if out.Reference == "" {
		out.Reference = q.PassageID
	}
	return out, nil
}
