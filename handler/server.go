package handler

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"brieftube/auth"
	"brieftube/progress"
	"brieftube/storage"

	"golang.org/x/exp/slog"
)

type Server struct {
	apis   map[string]http.Handler
	logger *slog.Logger
}

func NewServer(runner PipelineRunner, tracker *progress.Tracker, summaryRepo storage.SummaryRepository, vectorRepo storage.VectorRepository, sessions *auth.Sessions, logger *slog.Logger) *Server {
	return &Server{
		apis: map[string]http.Handler{
			"generate-summary": NewSummaryAPI(runner, sessions, logger),
			"progress":         NewProgressAPI(tracker, sessions, logger),
			"video-summaries":  NewPages(summaryRepo, vectorRepo, sessions, logger),
		},
		logger: logger,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	originalPath := r.URL.Path

	head, tail := ShiftPath(r.URL.Path)
	if len(head) == 0 {
		Index(w)
		s.logger.Info("request served", slog.String("path", originalPath))
		return
	}

	api, ok := s.apis[head]
	if !ok {
		Error(w, http.StatusNotFound, fmt.Sprintf("%s is not a valid path", originalPath))
		return
	}

	r.URL.Path = tail
	api.ServeHTTP(w, r)
	s.logger.Info("request served", slog.String("path", originalPath))
}

// ShiftPath splits off the first component of p, which will be cleaned of
// relative components before processing. head will never contain a slash and
// tail will always be a rooted path without trailing slash.
// See https://blog.merovius.de/posts/2017-06-18-how-not-to-use-an-http-router/
func ShiftPath(p string) (string, string) {
	p = path.Clean("/" + p)

	i := strings.Index(p[1:], "/") + 1
	if i <= 0 {
		return p[1:], "/"
	}
	return p[1:i], p[i:]
}
