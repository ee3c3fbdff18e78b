package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/hashgraph-online/desktop-bridge/internal/errkind"
	"github.com/hashgraph-online/desktop-bridge/internal/metrics"
)

// Type categorizes a user-facing notification.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

// Notification is a single user-facing message: an approval outcome, a
// failed execution, an already-executed duplicate.
type Notification struct {
	Type    Type
	Title   string
	Message string
	Fields  map[string]string
}

// FromError builds an error notification from a tagged error, using the
// error-kind display mapping.
func FromError(err error) Notification {
	kind := errkind.Classify(err)
	return Notification{
		Type:    TypeError,
		Title:   errkind.UserTitle(kind),
		Message: errkind.UserMessage(kind),
		Fields:  map[string]string{"detail": err.Error()},
	}
}

// Notifier is the interface for delivering notifications to the user.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// Fanout delivers each notification to every configured sink.
type Fanout struct {
	sinks  []Notifier
	logger *slog.Logger
}

func NewFanout(logger *slog.Logger, sinks ...Notifier) *Fanout {
	return &Fanout{
		sinks:  sinks,
		logger: logger.With("component", "notifier"),
	}
}

// Send dispatches to all sinks; the first sink error is returned after all
// sinks have been attempted.
func (f *Fanout) Send(ctx context.Context, n Notification) error {
	var firstErr error
	for _, s := range f.sinks {
		if err := s.Send(ctx, n); err != nil {
			f.logger.Warn("notification send failed",
				"sink", sinkName(s),
				"type", n.Type,
				"error", err,
			)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		metrics.NotificationsSent.WithLabelValues(string(n.Type)).Inc()
	}
	return firstErr
}

func sinkName(n Notifier) string {
	switch n.(type) {
	case *WebhookNotifier:
		return "webhook"
	case *LogNotifier:
		return "log"
	default:
		return "unknown"
	}
}

// WebhookNotifier posts notifications to an HTTP endpoint, typically the
// desktop shell's notification ingress.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *WebhookNotifier) Send(ctx context.Context, n Notification) error {
	payload := map[string]any{
		"type":    string(n.Type),
		"title":   n.Title,
		"message": n.Message,
		"fields":  n.Fields,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// LogNotifier writes notifications to the structured log. Used when no
// webhook is configured so outcomes remain observable.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notification")}
}

func (l *LogNotifier) Send(_ context.Context, n Notification) error {
	level := slog.LevelInfo
	switch n.Type {
	case TypeWarning:
		level = slog.LevelWarn
	case TypeError:
		level = slog.LevelError
	}
	attrs := []any{"title", n.Title, "message", n.Message}
	for k, v := range n.Fields {
		attrs = append(attrs, k, v)
	}
	l.logger.Log(context.Background(), level, "user notification", attrs...)
	return nil
}

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Send(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

// Sent returns a copy of everything recorded so far.
func (r *Recorder) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.sent))
	copy(out, r.sent)
	return out
}
