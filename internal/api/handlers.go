package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/FocuswithJustin/tamilbible/core/annotate"
	"github.com/FocuswithJustin/tamilbible/core/notes"
	"github.com/FocuswithJustin/tamilbible/internal/logging"
	"github.com/FocuswithJustin/tamilbible/internal/precache"
	"github.com/FocuswithJustin/tamilbible/internal/server"
)

// maxAnnotateBody bounds POST /api/annotate bodies.
const maxAnnotateBody = 1 << 20

// APIResponse is the standard API response wrapper.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Meta    *APIMeta  `json:"meta,omitempty"`
}

// APIError represents an API error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	Total     int    `json:"total,omitempty"`
	Timestamp string `json:"timestamp"`
}

// HealthInfo is the health check response.
type HealthInfo struct {
	Status        string   `json:"status"`
	Version       string   `json:"version"`
	Uptime        string   `json:"uptime"`
	DefaultSource string   `json:"default_source"`
	Sources       []string `json:"sources"`
	Notes         int      `json:"notes"`
	Clients       int      `json:"websocket_clients"`
}

// BookInfo describes a registry book.
type BookInfo struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Tamil   string   `json:"tamil,omitempty"`
	Aliases []string `json:"aliases"`
}

// AnnotateRequest is the POST /api/annotate body. Exactly one of Text
// (plain text) or HTML (a fragment) is set.
type AnnotateRequest struct {
	Text string `json:"text,omitempty"`
	HTML string `json:"html,omitempty"`
}

// AnnotateResult is the annotated HTML.
type AnnotateResult struct {
	HTML string `json:"html"`
}

// NoteInfo is a note as served, with its text annotated.
type NoteInfo struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title,omitempty"`
	HTML      string `json:"html"`
	Image     string `json:"image,omitempty"`
	Position  string `json:"position"`
	PassageID string `json:"passageId"`
	Reference string `json:"reference"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"name":    "Tamil Bible API",
		"version": s.deps.Version,
		"endpoints": []string{
			"GET /health",
			"GET /api/bible?passage=&ref=&source=&bibleId=",
			"GET /api/resolve?ref=",
			"POST /api/annotate",
			"GET /api/notes?passage=",
			"GET /api/books",
			"GET /api/pwa-precache",
			"WS /ws",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	info := HealthInfo{
		Status:        "healthy",
		Version:       s.deps.Version,
		Uptime:        time.Since(s.started).Round(time.Second).String(),
		DefaultSource: s.deps.Service.DefaultSource(),
		Sources:       s.deps.Service.Sources(),
	}
	if s.deps.Notes != nil {
		info.Notes = s.deps.Notes.Len()
	}
	if s.hub != nil {
		info.Clients = s.hub.Count()
	}
	respond(w, http.StatusOK, info)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	citation := strings.TrimSpace(r.URL.Query().Get("ref"))
	if citation == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "ref is required")
		return
	}
	resolved := s.deps.Service.Resolver().Resolve(citation)
	if resolved == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Citation not recognized")
		return
	}
	respond(w, http.StatusOK, resolved)
}

func (s *Server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	if !server.IsJSON(r.Header.Get("Content-Type")) {
		respondError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Content-Type must be application/json")
		return
	}

	var req AnnotateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAnnotateBody))
	if err := dec.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body")
		return
	}
	if (req.Text == "") == (req.HTML == "") {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Set exactly one of text or html")
		return
	}

	resolver := s.deps.Service.Resolver()
	if req.Text != "" {
		respond(w, http.StatusOK, AnnotateResult{HTML: annotate.Text(req.Text, resolver)})
		return
	}
	out, err := annotate.HTML(req.HTML, resolver)
	if err != nil {
		logging.WarnContext(r.Context(), "annotate failed", "error", err)
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Could not parse html")
		return
	}
	respond(w, http.StatusOK, AnnotateResult{HTML: out})
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	passageID := strings.TrimSpace(q.Get("passage"))
	if passageID == "" {
		if resolved := s.deps.Service.Resolver().Resolve(q.Get("ref")); resolved != nil {
			passageID = resolved.PassageID
		}
	}
	if passageID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "passage or a valid ref is required")
		return
	}

	var entries []notes.Entry
	if s.deps.Notes != nil {
		entries = s.deps.Notes.Lookup(passageID)
	}
	resolver := s.deps.Service.Resolver()
	out := make([]NoteInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, NoteInfo{
			ID:        e.ID,
			Title:     e.Title,
			HTML:      annotate.Text(e.Text, resolver),
			Image:     e.Image,
			Position:  e.Position,
			PassageID: e.PassageID,
			Reference: e.Reference,
		})
	}
	respondList(w, out, len(out))
}

func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	defs := s.deps.Registry.Books()
	out := make([]BookInfo, 0, len(defs))
	for _, b := range defs {
		out = append(out, BookInfo{
			Code:    b.Code,
			Name:    b.Name,
			Tamil:   b.TamilName(),
			Aliases: b.Aliases,
		})
	}
	body, err := json.Marshal(APIResponse{Success: true, Data: out, Meta: &APIMeta{Total: len(out)}})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to encode books")
		return
	}
	server.WriteCacheable(w, r, "application/json", http.StatusOK, body)
}

func (s *Server) handlePrecache(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	m := precache.Build(s.deps.ArticlesDir, s.deps.BooksDir)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if err := precache.Write(w, m); err != nil {
		logging.WarnContext(r.Context(), "write precache manifest", "error", err)
	}
}

// allowMethod answers 405 unless r uses one of methods.
func allowMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only "+strings.Join(methods, " and ")+" is allowed")
	return false
}

func respond(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, APIResponse{
		Success: true,
		Data:    data,
		Meta:    &APIMeta{Timestamp: timestamp()},
	})
}

func respondList(w http.ResponseWriter, data any, total int) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Meta:    &APIMeta{Total: total, Timestamp: timestamp()},
	})
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
		Meta: &APIMeta{Timestamp: timestamp()},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("encode response", "error", err)
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
