package staging

import (
	"context"
	"os"
)

// Local exposes the downloaded file by its path, no upload involved. Unless
// Keep is set, the file is removed when the run ends.
type Local struct {
	Keep bool
}

func NewLocal(keep bool) *Local {
	return &Local{Keep: keep}
}

func (l *Local) Stage(_ context.Context, localPath string) (string, func(), error) {
	if l.Keep {
		return localPath, func() {}, nil
	}

	return localPath, func() { os.Remove(localPath) }, nil
}
