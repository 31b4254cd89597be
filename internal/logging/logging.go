// Package logging configures the process-wide slog logger and provides the
// structured events the server and the lookup pipeline emit.
//
// Request ids travel in the context. Any record logged with a context that
// carries one gets a request_id attribute.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

type ctxKey struct{}

// Format is a log output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

var logger *slog.Logger

func init() {
	InitLogger(slog.LevelInfo, FormatJSON)
}

// ParseLevel maps a config string to a level. The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// ParseFormat maps a config string to a Format. The empty string is JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatText:
		return f, nil
	}
	return FormatJSON, fmt.Errorf("unknown log format %q", s)
}

// requestIDHandler adds the context's request id to every record.
type requestIDHandler struct {
	slog.Handler
}

func (h requestIDHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := GetRequestID(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h requestIDHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return requestIDHandler{h.Handler.WithAttrs(attrs)}
}

func (h requestIDHandler) WithGroup(name string) slog.Handler {
	return requestIDHandler{h.Handler.WithGroup(name)}
}

// New builds a logger writing to w with RFC 3339 timestamps.
func New(w io.Writer, level slog.Level, format Format) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var h slog.Handler = slog.NewJSONHandler(w, opts)
	if format == FormatText {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(requestIDHandler{h})
}

// InitLogger installs a stderr logger, keeping stdout free for command
// output.
func InitLogger(level slog.Level, format Format) {
	SetLogger(New(os.Stderr, level, format))
}

// SetLogger replaces the process-wide logger.
func SetLogger(l *slog.Logger) {
	logger = l
	slog.SetDefault(l)
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// GetRequestID returns the context's request id, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func Info(msg string, args ...any)  { logger.Info(msg, args...) }
func Warn(msg string, args ...any)  { logger.Warn(msg, args...) }
func Error(msg string, args ...any) { logger.Error(msg, args...) }

func WarnContext(ctx context.Context, msg string, args ...any) {
	logger.WarnContext(ctx, msg, args...)
}

// CorpusLoad records one corpus document load. Failures are warnings since
// the next lookup retries them.
func CorpusLoad(resource, key string, d time.Duration, err error) {
	if err != nil {
		logger.Warn("corpus_load_failed",
			"resource", resource, "key", key, "duration_ms", d.Milliseconds(), "error", err.Error())
		return
	}
	logger.Info("corpus_load", "resource", resource, "key", key, "duration_ms", d.Milliseconds())
}

// PassageLookup records a lookup at debug level.
func PassageLookup(ctx context.Context, passageID, source string, cached bool, d time.Duration, err error) {
	attrs := []any{
		"passage_id", passageID,
		"source", source,
		"cached", cached,
		"duration_ms", d.Milliseconds(),
	}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}
	logger.DebugContext(ctx, "passage_lookup", attrs...)
}

func WebSocketEvent(event string, clients int, args ...any) {
	logger.Info("websocket_event", append([]any{"event", event, "client_count", clients}, args...)...)
}

func ServerStartup(kind, protocol string, port int, args ...any) {
	logger.Info("server_startup", append([]any{"server_type", kind, "protocol", protocol, "port", port}, args...)...)
}

// SecurityEvent is logged at warn level so it survives a quiet log level.
func SecurityEvent(event, component string, args ...any) {
	logger.Warn("security_event", append([]any{"event", event, "component", component}, args...)...)
}
