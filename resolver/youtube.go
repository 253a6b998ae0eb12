package resolver

import (
	"context"
	"fmt"

	"google.golang.org/api/youtube/v3"
)

// DataAPI resolves titles through the YouTube Data API. An alternative to the
// yt-dlp lookup for deployments that have an API key.
type DataAPI struct {
	client *youtube.Service
}

func NewDataAPI(client *youtube.Service) *DataAPI {
	return &DataAPI{client: client}
}

func (d *DataAPI) Title(ctx context.Context, link string) (string, error) {
	id, err := VideoID(link)
	if err != nil {
		return "", err
	}

	call := d.client.Videos.
		List([]string{"snippet"}).
		Id(id).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("could not fetch video metadata: %w", err)
	}
	if len(response.Items) == 0 {
		return "", fmt.Errorf("no metadata for video %q", id)
	}

	return response.Items[0].Snippet.Title, nil
}
