package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fanhub/fanhub-terminal/pkg/api"
	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// Status texts shown after a submission
const (
	StatusNoFile  = "Choose a file first"
	StatusSuccess = "Uploaded — pending moderation"
	StatusFailed  = "Upload failed"
)

// DefaultUploader is credited when no name is given
const DefaultUploader = "anonymous"

// Uploader sends one image to the backend
type Uploader interface {
	Upload(ctx context.Context, uploader, filename string, image io.Reader) (*models.ActionResult, error)
}

// Request is one submission of the upload form
type Request struct {
	Path     string
	Uploader string
}

// Result is the outcome of a submission
type Result struct {
	Path   string `json:"path" yaml:"path"`
	Status string `json:"status" yaml:"status"`
	OK     bool   `json:"ok" yaml:"ok"`
	Err    error  `json:"-" yaml:"-"`
}

// Submit uploads the file named by req. Without a file nothing is sent.
func Submit(ctx context.Context, up Uploader, req Request) Result {
	res := Result{Path: req.Path}
	if req.Path == "" {
		res.Status = StatusNoFile
		return res
	}

	uploader := req.Uploader
	if uploader == "" {
		uploader = DefaultUploader
	}

	f, err := os.Open(req.Path)
	if err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("failed to open %s: %w", req.Path, err)
		return res
	}
	defer f.Close()

	reply, err := up.Upload(ctx, uploader, filepath.Base(req.Path), f)
	if err != nil {
		res.Err = err
		res.Status = StatusFailed

		var statusErr *api.StatusError
		if errors.As(err, &statusErr) && reply != nil && reply.Error != "" {
			res.Status = reply.Error
		}
		slog.Warn("upload failed", "path", req.Path, "error", err)
		return res
	}

	res.OK = true
	res.Status = StatusSuccess
	return res
}

// SubmitAll uploads paths one after another, reporting progress to rep
func SubmitAll(ctx context.Context, up Uploader, uploader string, paths []string, rep Reporter) []Result {
	if rep == nil {
		rep = NopReporter{}
	}

	results := make([]Result, 0, len(paths))
	rep.Start(len(paths))
	for i, p := range paths {
		if ctx.Err() != nil {
			break
		}
		res := Submit(ctx, up, Request{Path: p, Uploader: uploader})
		results = append(results, res)
		rep.Update(i+1, filepath.Base(p)+": "+res.Status)
	}
	rep.Finish()
	return results
}
