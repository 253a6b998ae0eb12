package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"brieftube/auth"
	"brieftube/handler"
	"brieftube/pipeline"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type fakeRunner struct {
	summary string
	err     error
	owner   uuid.UUID
	rawLink string
	session string
	calls   int
}

func (f *fakeRunner) Run(_ context.Context, owner uuid.UUID, rawLink, session string) (string, error) {
	f.calls++
	f.owner = owner
	f.rawLink = rawLink
	f.session = session
	if f.err != nil {
		return "", f.err
	}
	return f.summary, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr))
}

func sessionCookie(t *testing.T, sessions *auth.Sessions, owner uuid.UUID, sessionID string) *http.Cookie {
	t.Helper()
	value, err := sessions.Issue(owner, sessionID, time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.CookieName, Value: value}
}

func TestSummaryAPI(t *testing.T) {
	sessions := auth.NewSessions("test-signing-key")
	owner := uuid.New()

	t.Run("method not allowed", func(t *testing.T) {
		api := handler.NewSummaryAPI(&fakeRunner{}, sessions, testLogger())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		api.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.JSONEq(t, `{"error": "Invalid request method"}`, rec.Body.String())
	})

	t.Run("no session", func(t *testing.T) {
		api := handler.NewSummaryAPI(&fakeRunner{}, sessions, testLogger())
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"link": "https://youtu.be/abc123"}`))
		rec := httptest.NewRecorder()

		api.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		runner := &fakeRunner{}
		api := handler.NewSummaryAPI(runner, sessions, testLogger())
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
		req.AddCookie(sessionCookie(t, sessions, owner, "session-1"))
		rec := httptest.NewRecorder()

		api.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error": "Invalid data sent"}`, rec.Body.String())
		assert.Zero(t, runner.calls)
	})

	t.Run("missing link field", func(t *testing.T) {
		runner := &fakeRunner{}
		api := handler.NewSummaryAPI(runner, sessions, testLogger())
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"other": "field"}`))
		req.AddCookie(sessionCookie(t, sessions, owner, "session-1"))
		rec := httptest.NewRecorder()

		api.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error": "Invalid data sent"}`, rec.Body.String())
		assert.Zero(t, runner.calls)
	})

	t.Run("success with encoded link", func(t *testing.T) {
		runner := &fakeRunner{summary: "a paragraph summary"}
		api := handler.NewSummaryAPI(runner, sessions, testLogger())
		body := `{"link": "https%3A%2F%2Fwww.youtube.com%2Fwatch%3Fv%3Dabc123"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.AddCookie(sessionCookie(t, sessions, owner, "session-1"))
		rec := httptest.NewRecorder()

		api.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"content": "a paragraph summary"}`, rec.Body.String())
		assert.Equal(t, owner, runner.owner)
		assert.Equal(t, "https%3A%2F%2Fwww.youtube.com%2Fwatch%3Fv%3Dabc123", runner.rawLink)
		assert.Equal(t, "session-1", runner.session)
	})

	t.Run("error mapping", func(t *testing.T) {
		for _, tc := range []struct {
			err     error
			status  int
			message string
		}{
			{pipeline.ErrBadRequest, http.StatusBadRequest, "Invalid data sent"},
			{pipeline.ErrInvalidURL, http.StatusBadRequest, "Invalid YouTube URL"},
			{pipeline.ErrMediaUnavailable, http.StatusBadRequest, "Could not access video. Please check the URL."},
			{pipeline.ErrDownload, http.StatusBadRequest, "Error: could not download audio"},
			{pipeline.ErrUpload, http.StatusBadRequest, "Error: could not upload audio"},
			{pipeline.ErrTranscription, http.StatusBadRequest, "Error: could not transcribe audio"},
			{pipeline.ErrEmptyResult, http.StatusInternalServerError, "Failed to process video"},
			{pipeline.ErrPersistence, http.StatusInternalServerError, "Error: could not save summary"},
		} {
			t.Run(tc.err.Error(), func(t *testing.T) {
				api := handler.NewSummaryAPI(&fakeRunner{err: fmt.Errorf("%w: details", tc.err)}, sessions, testLogger())
				req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"link": "https://vimeo.com/123"}`))
				req.AddCookie(sessionCookie(t, sessions, owner, "session-1"))
				rec := httptest.NewRecorder()

				api.ServeHTTP(rec, req)

				assert.Equal(t, tc.status, rec.Code)
				assert.JSONEq(t, fmt.Sprintf(`{"error": %q}`, tc.message), rec.Body.String())
			})
		}
	})
}
