package transcribe

import "context"

type Result struct {
	Transcript string
	Summary    string
}

// Transcriber turns a staged audio reference (remote URL or local path) into
// a transcript and a paragraph summary. Blocks until the remote job is done.
type Transcriber interface {
	Process(ctx context.Context, audioRef string) (Result, error)
}

// Summarizer generates a summary from a transcript. Used when the
// transcription provider is not asked for a native summary.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}
