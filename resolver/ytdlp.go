package resolver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Request signature yt-dlp presents to the platform. Without it, metadata
// lookups trip bot detection on some networks.
var browserHeaders = []string{
	"--user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"--add-header", "Accept: text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"--add-header", "Accept-Language: en-us,en;q=0.5",
}

// Ytdlp resolves titles and downloads audio by shelling out to yt-dlp.
type Ytdlp struct {
	bin    string
	runner CommandRunner
}

func NewYtdlp(bin string, runner CommandRunner) *Ytdlp {
	return &Ytdlp{
		bin:    bin,
		runner: runner,
	}
}

func (y *Ytdlp) Title(ctx context.Context, link string) (string, error) {
	args := append([]string{}, browserHeaders...)
	args = append(args,
		"--quiet",
		"--no-warnings",
		"--no-playlist",
		"--skip-download",
		"--print", "title",
		link,
	)

	out, err := y.runner.Run(ctx, y.bin, args...)
	if err != nil {
		return "", fmt.Errorf("could not fetch title: %w", err)
	}
	title, _, _ := strings.Cut(strings.TrimSpace(out), "\n")

	return title, nil
}

// DownloadAudio fetches the best available audio stream, transcoded to mp3 at
// 192k, into dir. The file is named after the platform video id. Returns the
// path of the written file.
func (y *Ytdlp) DownloadAudio(ctx context.Context, link, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create audio dir: %w", err)
	}

	args := append([]string{}, browserHeaders...)
	args = append(args,
		"--quiet",
		"--no-warnings",
		"--no-playlist",
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "192K",
		"-o", filepath.Join(dir, "%(id)s.%(ext)s"),
		"--no-simulate",
		"--print", "after_move:filepath",
		link,
	)

	out, err := y.runner.Run(ctx, y.bin, args...)
	if err != nil {
		return "", fmt.Errorf("could not download audio: %w", err)
	}
	path, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	if path == "" {
		return "", fmt.Errorf("yt-dlp did not report an output file for %q", link)
	}

	// a download that produced no file is a failure, not an empty result
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("audio file not found at %s: %w", path, err)
	}

	return path, nil
}
