package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/fanhub/fanhub-terminal/pkg/models"
)

const PathUpload = "/api/upload"

// Upload submits one image for moderation. The uploader field is written
// before the image part because the backend reads the parts in that order.
// A non-2xx reply returns the decoded body together with a *StatusError.
func (c *Client) Upload(ctx context.Context, uploader, filename string, image io.Reader) (*models.ActionResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("uploader", uploader); err != nil {
		return nil, fmt.Errorf("failed to write uploader field: %w", err)
	}

	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, PathUpload, false, &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload reply: %w", err)
	}

	var result models.ActionResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode upload reply (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &result, &StatusError{
			Method:     http.MethodPost,
			Path:       PathUpload,
			StatusCode: resp.StatusCode,
			Body:       result.Error,
		}
	}

	return &result, nil
}
