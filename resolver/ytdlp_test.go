package resolver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"brieftube/resolver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	out  string
	err  error
	name string
	args []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	f.name = name
	f.args = args
	return f.out, f.err
}

func TestYtdlpTitle(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		runner := &fakeRunner{out: "Some Video Title\n"}
		ytdlp := resolver.NewYtdlp("yt-dlp", runner)

		title, err := ytdlp.Title(context.Background(), "https://www.youtube.com/watch?v=abc123")

		require.NoError(t, err)
		assert.Equal(t, "Some Video Title", title)
		assert.Equal(t, "yt-dlp", runner.name)
		assert.Contains(t, runner.args, "--skip-download")
		assert.Contains(t, runner.args, "--user-agent")
		assert.Contains(t, runner.args, "https://www.youtube.com/watch?v=abc123")
	})

	t.Run("failure", func(t *testing.T) {
		runner := &fakeRunner{err: errors.New("extraction blocked")}
		ytdlp := resolver.NewYtdlp("yt-dlp", runner)

		_, err := ytdlp.Title(context.Background(), "https://www.youtube.com/watch?v=abc123")

		assert.Error(t, err)
	})
}

func TestYtdlpDownloadAudio(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		dir := t.TempDir()
		audioPath := filepath.Join(dir, "abc123.mp3")
		require.NoError(t, os.WriteFile(audioPath, []byte("audio"), 0644))

		runner := &fakeRunner{out: audioPath + "\n"}
		ytdlp := resolver.NewYtdlp("yt-dlp", runner)

		path, err := ytdlp.DownloadAudio(context.Background(), "https://www.youtube.com/watch?v=abc123", dir)

		require.NoError(t, err)
		assert.Equal(t, audioPath, path)
		assert.Contains(t, runner.args, "bestaudio/best")
		assert.Contains(t, runner.args, "mp3")
		assert.Contains(t, runner.args, "192K")
	})

	t.Run("reported file does not exist", func(t *testing.T) {
		dir := t.TempDir()
		runner := &fakeRunner{out: filepath.Join(dir, "missing.mp3")}
		ytdlp := resolver.NewYtdlp("yt-dlp", runner)

		_, err := ytdlp.DownloadAudio(context.Background(), "https://www.youtube.com/watch?v=abc123", dir)

		assert.ErrorContains(t, err, "not found")
	})

	t.Run("command failure", func(t *testing.T) {
		runner := &fakeRunner{err: errors.New("network down")}
		ytdlp := resolver.NewYtdlp("yt-dlp", runner)

		_, err := ytdlp.DownloadAudio(context.Background(), "https://www.youtube.com/watch?v=abc123", t.TempDir())

		assert.Error(t, err)
	})
}
