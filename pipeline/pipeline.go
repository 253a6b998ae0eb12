package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"brieftube/model"
	"brieftube/resolver"
	"brieftube/staging"
	"brieftube/transcribe"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// One sentinel per failure kind, the handler maps these to HTTP statuses.
var (
	ErrBadRequest       = errors.New("invalid request data")
	ErrInvalidURL       = errors.New("invalid youtube url")
	ErrMediaUnavailable = errors.New("could not access video")
	ErrDownload         = errors.New("audio download failed")
	ErrUpload           = errors.New("audio upload failed")
	ErrTranscription    = errors.New("transcription failed")
	ErrEmptyResult      = errors.New("transcript or summary is empty")
	ErrPersistence      = errors.New("could not save summary")
)

// ProgressSetter receives a status message at each phase transition.
type ProgressSetter interface {
	Set(session, message string)
}

type SummaryStore interface {
	Save(summary *model.VideoSummary) error
}

type VectorStore interface {
	Save(ctx context.Context, summary *model.VideoSummary) error
}

// Runner sequences one pipeline run: validate, resolve title, download
// audio, stage it, transcribe and summarize, persist. Steps are strictly
// sequential, a failure aborts the rest and nothing partial is persisted.
type Runner struct {
	titles            resolver.TitleResolver
	audio             resolver.AudioDownloader
	stager            staging.Stager
	transcriber       transcribe.Transcriber
	summaryRepo       SummaryStore
	vectorRepo        VectorStore
	progress          ProgressSetter
	audioDir          string
	transcribeTimeout time.Duration
	logger            *slog.Logger
}

func NewRunner(titles resolver.TitleResolver, audio resolver.AudioDownloader, stager staging.Stager, transcriber transcribe.Transcriber, summaryRepo SummaryStore, vectorRepo VectorStore, progress ProgressSetter, audioDir string, transcribeTimeout time.Duration, logger *slog.Logger) *Runner {
	return &Runner{
		titles:            titles,
		audio:             audio,
		stager:            stager,
		transcriber:       transcriber,
		summaryRepo:       summaryRepo,
		vectorRepo:        vectorRepo,
		progress:          progress,
		audioDir:          audioDir,
		transcribeTimeout: transcribeTimeout,
		logger:            logger,
	}
}

// Run executes one pipeline run for the given owner. rawLink is the
// URL-encoded link as submitted. Returns the generated summary text.
func (r *Runner) Run(ctx context.Context, owner uuid.UUID, rawLink, session string) (string, error) {
	r.progress.Set(session, "Processing YouTube link...")
	// PathUnescape keeps a literal + intact, so the stored link matches
	// what was submitted.
	link, err := url.PathUnescape(strings.TrimSpace(rawLink))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if link == "" {
		return "", fmt.Errorf("%w: empty link", ErrBadRequest)
	}
	if err := resolver.Validate(link); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	r.logger.Info("processing youtube link", slog.String("link", link))

	r.progress.Set(session, "Fetching video title...")
	title, err := r.titles.Title(ctx, link)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMediaUnavailable, err)
	}
	if title == "" {
		return "", fmt.Errorf("%w: empty title", ErrMediaUnavailable)
	}

	r.progress.Set(session, "Downloading audio file...")
	audioPath, err := r.audio.DownloadAudio(ctx, link, r.audioDir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}

	staged := false
	defer func() {
		if !staged {
			os.Remove(audioPath)
		}
	}()

	audioRef, cleanup, err := r.stager.Stage(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	staged = true
	defer cleanup()

	r.progress.Set(session, "Converting audio to text...")
	tctx, cancel := context.WithTimeout(ctx, r.transcribeTimeout)
	defer cancel()
	result, err := r.transcriber.Process(tctx, audioRef)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	if result.Transcript == "" || result.Summary == "" {
		return "", ErrEmptyResult
	}
	r.progress.Set(session, "Processing completed, generating summary...")

	r.progress.Set(session, "Saving summary to database...")
	summary := &model.VideoSummary{
		ID:          uuid.New(),
		OwnerID:     owner,
		Title:       model.ClampTitle(title),
		SourceLink:  link,
		SummaryText: result.Summary,
		CreatedAt:   time.Now(),
	}
	if err := r.summaryRepo.Save(summary); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if r.vectorRepo != nil {
		if err := r.vectorRepo.Save(ctx, summary); err != nil {
			r.logger.Error("failed to index summary", slog.String("id", summary.ID.String()), slog.String("error", err.Error()))
		}
	}

	r.progress.Set(session, "Summary generated successfully!")
	r.logger.Info("summary generated", slog.String("id", summary.ID.String()), slog.String("owner", owner.String()))

	return result.Summary, nil
}
