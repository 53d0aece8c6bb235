package gallery

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/alitto/pond/v2"
)

// Prober checks which image sources answer, standing in for the browser's
// per-image load event. Readiness is cosmetic and never gates display.
type Prober struct {
	client  *http.Client
	workers int
}

// NewProber creates a prober that checks up to workers sources at once
func NewProber(client *http.Client, workers int) *Prober {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if workers <= 0 {
		workers = 1
	}
	return &Prober{
		client:  client,
		workers: workers,
	}
}

// Probe returns the sources that answered with a 2xx status, in the order
// given, each at most once
func (p *Prober) Probe(ctx context.Context, sources []string) []string {
	unique := make([]string, 0, len(sources))
	seen := make(map[string]bool, len(sources))
	for _, src := range sources {
		if src == "" || seen[src] {
			continue
		}
		seen[src] = true
		unique = append(unique, src)
	}
	if len(unique) == 0 {
		return nil
	}

	ready := make([]bool, len(unique))
	pool := pond.NewPool(p.workers, pond.WithContext(ctx))
	for i, src := range unique {
		i, src := i, src
		pool.Submit(func() {
			ready[i] = p.check(ctx, src)
		})
	}
	_ = pool.Stop().Wait()

	out := make([]string, 0, len(unique))
	for i, ok := range ready {
		if ok {
			out = append(out, unique[i])
		}
	}
	return out
}

func (p *Prober) check(ctx context.Context, src string) bool {
	ok, status := p.request(ctx, http.MethodHead, src)
	if !ok && status == http.StatusMethodNotAllowed {
		ok, _ = p.request(ctx, http.MethodGet, src)
	}
	return ok
}

func (p *Prober) request(ctx context.Context, method, src string) (bool, int) {
	req, err := http.NewRequestWithContext(ctx, method, src, nil)
	if err != nil {
		slog.Debug("image probe skipped", "src", src, "error", err)
		return false, 0
	}
	if method == http.MethodGet {
		req.Header.Set("Range", "bytes=0-0")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		slog.Debug("image probe failed", "src", src, "error", err)
		return false, 0
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<10))

	return resp.StatusCode >= 200 && resp.StatusCode <= 299, resp.StatusCode
}
