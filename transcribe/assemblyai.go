package transcribe

import (
	"context"
	"fmt"
	"os"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
)

// AssemblyAI submits staged audio for transcription. With no fallback
// summarizer configured it requests the provider's own summarization
// (informative model, paragraph type). The service fetches remote URLs
// itself, local files are uploaded from a reader.
type AssemblyAI struct {
	client    *aai.Client
	summarize Summarizer
}

func NewAssemblyAI(apiKey string, summarize Summarizer) *AssemblyAI {
	return &AssemblyAI{
		client:    aai.NewClient(apiKey),
		summarize: summarize,
	}
}

func (a *AssemblyAI) Process(ctx context.Context, audioRef string) (Result, error) {
	params := a.transcriptParams()

	var transcript aai.Transcript
	var err error
	if isRemote(audioRef) {
		transcript, err = a.client.Transcripts.TranscribeFromURL(ctx, audioRef, params)
	} else {
		var f *os.File
		f, err = os.Open(audioRef)
		if err != nil {
			return Result{}, fmt.Errorf("could not open audio file: %w", err)
		}
		defer f.Close()
		transcript, err = a.client.Transcripts.TranscribeFromReader(ctx, f, params)
	}
	if err != nil {
		return Result{}, fmt.Errorf("transcription failed: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		return Result{}, fmt.Errorf("transcription failed: %s", deref(transcript.Error))
	}

	result := Result{
		Transcript: deref(transcript.Text),
		Summary:    deref(transcript.Summary),
	}

	if a.summarize != nil && result.Transcript != "" {
		summary, err := a.summarize.Summarize(ctx, result.Transcript)
		if err != nil {
			return Result{}, fmt.Errorf("summarization failed: %w", err)
		}
		result.Summary = summary
	}

	return result, nil
}

// transcriptParams requests provider-side summarization only when no
// fallback summarizer will produce the summary afterwards.
func (a *AssemblyAI) transcriptParams() *aai.TranscriptOptionalParams {
	params := &aai.TranscriptOptionalParams{}
	if a.summarize == nil {
		params.Summarization = aai.Bool(true)
		params.SummaryModel = aai.SummaryModel("informative")
		params.SummaryType = aai.SummaryType("paragraph")
	}

	return params
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
