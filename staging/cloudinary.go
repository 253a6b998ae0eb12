package staging

import (
	"context"
	"fmt"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const uploadFolder = "youtube_audio"

// Cloudinary uploads staged audio to the object store and hands back a
// publicly dereferenceable URL. After a successful upload the store owns the
// bytes and the local temp file is removed.
type Cloudinary struct {
	client *cloudinary.Cloudinary
}

func NewCloudinary(cloudName, apiKey, apiSecret string) (*Cloudinary, error) {
	client, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("could not create cloudinary client: %w", err)
	}

	return &Cloudinary{client: client}, nil
}

func (c *Cloudinary) Stage(ctx context.Context, localPath string) (string, func(), error) {
	result, err := c.client.Upload.Upload(ctx, localPath, uploader.UploadParams{
		Folder:       uploadFolder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", nil, fmt.Errorf("could not upload audio: %w", err)
	}
	if result.SecureURL == "" {
		return "", nil, fmt.Errorf("upload of %s returned no url", localPath)
	}

	os.Remove(localPath)

	return result.SecureURL, func() {}, nil
}
