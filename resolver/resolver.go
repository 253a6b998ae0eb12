package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrNotYouTube = errors.New("not a youtube url")

var allowedHosts = map[string]bool{
	"youtube.com":       true,
	"www.youtube.com":   true,
	"m.youtube.com":     true,
	"music.youtube.com": true,
	"youtu.be":          true,
}

type TitleResolver interface {
	Title(ctx context.Context, link string) (string, error)
}

type AudioDownloader interface {
	DownloadAudio(ctx context.Context, link, dir string) (string, error)
}

// Validate checks the link against the accepted host list. It must pass
// before anything touches the network.
func Validate(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotYouTube, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", ErrNotYouTube, u.Scheme)
	}
	host := strings.ToLower(u.Hostname())
	if !allowedHosts[host] {
		return fmt.Errorf("%w: host %q", ErrNotYouTube, host)
	}

	return nil
}

// VideoID extracts the platform video identifier from an accepted link.
func VideoID(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", err
	}
	host := strings.ToLower(u.Hostname())
	if host == "youtu.be" {
		if id := strings.Trim(u.Path, "/"); id != "" {
			return id, nil
		}
		return "", fmt.Errorf("no video id in %q", link)
	}
	if id := u.Query().Get("v"); id != "" {
		return id, nil
	}
	for _, prefix := range []string{"/shorts/", "/live/", "/embed/"} {
		if strings.HasPrefix(u.Path, prefix) {
			if id := strings.Trim(strings.TrimPrefix(u.Path, prefix), "/"); id != "" {
				return id, nil
			}
		}
	}

	return "", fmt.Errorf("no video id in %q", link)
}
