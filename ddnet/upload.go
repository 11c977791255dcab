// Package ddnet talks to the external map hosting service: the asset upload
// endpoint and the local thumbnail generator.
package ddnet

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// AssetType selects the upload endpoint's asset kind.
type AssetType string

const (
	AssetMap        AssetType = "map"
	AssetLog        AssetType = "log"
	AssetAttachment AssetType = "attachment"
	AssetAvatar     AssetType = "avatar"
	AssetEmoji      AssetType = "emoji"
)

// nameField returns the form field the endpoint expects the asset name in.
func (a AssetType) nameField() (string, bool) {
	switch a {
	case AssetMap:
		return "map_name", true
	case AssetLog:
		return "channel_name", true
	case AssetAttachment, AssetAvatar, AssetEmoji:
		return "asset_name", true
	}
	return "", false
}

const tokenHeader = "X-DDNet-Token"

// UploadClient posts assets to the upload endpoint. A non-200 response is a
// soft failure: it is returned as the status code, not as an error, so the
// caller can surface it as a reaction and move on.
type UploadClient struct {
	url    string
	token  string
	client *http.Client
}

func NewUploadClient(url, token string, timeout time.Duration) *UploadClient {
	return &UploadClient{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: timeout},
	}
}

// Timeout returns the client's per-request timeout.
func (c *UploadClient) Timeout() time.Duration {
	return c.client.Timeout
}

// Upload sends a single asset and returns the response status code. An error
// is returned only when the request itself could not be performed.
func (c *UploadClient) Upload(ctx context.Context, asset AssetType, file io.Reader, name string) (int, error) {
	field, ok := asset.nameField()
	if !ok {
		return 0, fmt.Errorf("ddnet: %q is not a valid asset type", asset)
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("asset_type", string(asset)); err != nil {
		return 0, err
	}
	if err := form.WriteField(field, name); err != nil {
		return 0, err
	}
	part, err := form.CreateFormFile("file", name)
	if err != nil {
		return 0, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return 0, err
	}
	if err := form.Close(); err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set(tokenHeader, c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Error().
			Str("asset_type", string(asset)).
			Str("name", name).
			Int("status", resp.StatusCode).
			Str("response", string(text)).
			Msg("upload failed")
	}

	return resp.StatusCode, nil
}
