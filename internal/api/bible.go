package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	bterrors "github.com/FocuswithJustin/tamilbible/core/errors"
	"github.com/FocuswithJustin/tamilbible/core/passage"
	"github.com/FocuswithJustin/tamilbible/internal/locator"
	"github.com/FocuswithJustin/tamilbible/internal/server"
)

// LookupResponse is the /api/bible body. Over a websocket it also carries
// the client's RequestID.
type LookupResponse struct {
	RequestID string `json:"requestId,omitempty"`
	OK        bool   `json:"ok"`
	ID        string `json:"id,omitempty"`
	Content   string `json:"content,omitempty"`
	Reference string `json:"reference,omitempty"`
	Error     string `json:"error,omitempty"`
}

// lookupStatus maps a lookup error to its HTTP status and client message.
func lookupStatus(err error) (int, string) {
	switch {
	case errors.Is(err, locator.ErrInvalidReference):
		return http.StatusBadRequest, "Invalid reference"
	case errors.Is(err, passage.ErrInvalidFormat):
		return http.StatusBadRequest, "Invalid passage format"
	case errors.Is(err, passage.ErrUnknownBook):
		return http.StatusBadRequest, "Unknown book code"
	case errors.Is(err, bterrors.ErrUnsupported):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, bterrors.ErrNotFound):
		return http.StatusNotFound, "Verse not found"
	case bterrors.IsUpstream(err):
		return http.StatusBadGateway, err.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

// lookup runs req and builds the response body and status.
func (s *Server) lookup(ctx context.Context, req locator.Request) (LookupResponse, int) {
	p, err := s.deps.Service.Lookup(ctx, req)
	if err != nil {
		status, msg := lookupStatus(err)
		return LookupResponse{OK: false, Error: msg}, status
	}
	return LookupResponse{OK: true, ID: p.ID, Content: p.Content, Reference: p.Reference}, http.StatusOK
}

func (s *Server) handleBible(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, http.StatusMethodNotAllowed, LookupResponse{Error: "Only GET is allowed"})
		return
	}

	q := r.URL.Query()
	resp, status := s.lookup(r.Context(), locator.Request{
		Passage: q.Get("passage"),
		Ref:     q.Get("ref"),
		Source:  q.Get("source"),
		BibleID: q.Get("bibleId"),
	})

	body, err := json.Marshal(resp)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, LookupResponse{Error: "encode response"})
		return
	}
	body = append(body, '\n')
	if status != http.StatusOK {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write(body)
		return
	}
	server.WriteCacheable(w, r, "application/json", status, body)
}
