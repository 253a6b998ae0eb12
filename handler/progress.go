package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"brieftube/auth"

	"golang.org/x/exp/slog"
)

// ProgressSubscriber produces status messages for a session until ctx ends.
type ProgressSubscriber interface {
	Subscribe(ctx context.Context, session string) <-chan string
}

// ProgressAPI streams pipeline status over server-sent events. The stream
// never terminates on its own, only when the client disconnects.
type ProgressAPI struct {
	tracker  ProgressSubscriber
	sessions *auth.Sessions
	logger   *slog.Logger
}

func NewProgressAPI(tracker ProgressSubscriber, sessions *auth.Sessions, logger *slog.Logger) *ProgressAPI {
	return &ProgressAPI{
		tracker:  tracker,
		sessions: sessions,
		logger:   logger,
	}
}

func (p *ProgressAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		Error(w, http.StatusMethodNotAllowed, "Invalid request method")
		return
	}

	session, err := p.sessions.FromRequest(r)
	if err != nil {
		Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		Error(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	messages := p.tracker.Subscribe(r.Context(), session.ID)
	for message := range messages {
		frame, err := json.Marshal(struct {
			Message string `json:"message"`
		}{
			Message: message,
		})
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", frame)
		flusher.Flush()
	}
}
