package staging

import "context"

// Stager makes a downloaded audio file addressable to the transcription
// service. The reference is either a public URL or the local path itself.
// The returned cleanup runs when the pipeline run ends, success or failure.
type Stager interface {
	Stage(ctx context.Context, localPath string) (ref string, cleanup func(), err error)
}
