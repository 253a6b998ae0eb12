package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"brieftube/auth"
	"brieftube/pipeline"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type PipelineRunner interface {
	Run(ctx context.Context, owner uuid.UUID, rawLink, session string) (string, error)
}

// SummaryAPI handles POST /generate-summary. One request is one pipeline
// run, the response blocks until the run is done.
type SummaryAPI struct {
	runner   PipelineRunner
	sessions *auth.Sessions
	logger   *slog.Logger
}

func NewSummaryAPI(runner PipelineRunner, sessions *auth.Sessions, logger *slog.Logger) *SummaryAPI {
	return &SummaryAPI{
		runner:   runner,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *SummaryAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		Error(w, http.StatusMethodNotAllowed, "Invalid request method")
		return
	}

	session, err := s.sessions.FromRequest(r)
	if err != nil {
		Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var body struct {
		Link *string `json:"link"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Link == nil {
		Error(w, http.StatusBadRequest, "Invalid data sent")
		return
	}

	content, err := s.runner.Run(r.Context(), session.Owner, *body.Link, session.ID)
	if err != nil {
		s.logger.Error("pipeline run failed", slog.String("owner", session.Owner.String()), slog.String("error", err.Error()))
		status, message := mapPipelineErr(err)
		Error(w, status, message)
		return
	}

	JSON(w, http.StatusOK, struct {
		Content string `json:"content"`
	}{
		Content: content,
	})
}

func mapPipelineErr(err error) (int, string) {
	switch {
	case errors.Is(err, pipeline.ErrBadRequest):
		return http.StatusBadRequest, "Invalid data sent"
	case errors.Is(err, pipeline.ErrInvalidURL):
		return http.StatusBadRequest, "Invalid YouTube URL"
	case errors.Is(err, pipeline.ErrMediaUnavailable):
		return http.StatusBadRequest, "Could not access video. Please check the URL."
	case errors.Is(err, pipeline.ErrDownload):
		return http.StatusBadRequest, "Error: could not download audio"
	case errors.Is(err, pipeline.ErrUpload):
		return http.StatusBadRequest, "Error: could not upload audio"
	case errors.Is(err, pipeline.ErrTranscription):
		return http.StatusBadRequest, "Error: could not transcribe audio"
	case errors.Is(err, pipeline.ErrEmptyResult):
		return http.StatusInternalServerError, "Failed to process video"
	case errors.Is(err, pipeline.ErrPersistence):
		return http.StatusInternalServerError, "Error: could not save summary"
	default:
		return http.StatusInternalServerError, "Failed to process video"
	}
}
