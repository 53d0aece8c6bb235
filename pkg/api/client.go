package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fanhub/fanhub-terminal/pkg/models"
)

const (
	// AdminTokenHeader carries the admin token alongside the query parameter
	AdminTokenHeader = "X-Admin-Token"
	requestIDHeader  = "X-Request-ID"
	maxErrorBody     = 4 << 10
)

// ErrUnauthorized is matched by StatusErrors for 401 and 403 replies
var ErrUnauthorized = errors.New("unauthorized")

// StatusError is returned when the backend answers with a non-2xx status
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// Client talks to the fan site's REST backend
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	adminToken string
	userAgent  string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout sets the per-request timeout of the default http.Client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithAdminToken sets the token sent to admin endpoints
func WithAdminToken(token string) Option {
	return func(c *Client) {
		c.adminToken = token
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a client rooted at baseURL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:   u,
		http:      &http.Client{Timeout: 10 * time.Second},
		userAgent: "fanhub-terminal",
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the backend root this client talks to
func (c *Client) BaseURL() string {
	return strings.TrimRight(c.baseURL.String(), "/")
}

// ResolveURL turns a site-relative path such as /uploads/approved/x.jpg into
// an absolute URL. Absolute URLs are returned unchanged.
func (c *Client) ResolveURL(ref string) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil || u.IsAbs() {
		return ref
	}
	return c.baseURL.ResolveReference(u).String()
}

// Collection fetches the images of the given collection
func (c *Client) Collection(ctx context.Context, kind models.CollectionKind) ([]models.ImageRecord, error) {
	var list models.ImageList
	if err := c.getJSON(ctx, "/api/"+string(kind), false, &list); err != nil {
		return nil, err
	}
	if list.Images == nil {
		list.Images = []models.ImageRecord{}
	}
	return list.Images, nil
}

// Gallery fetches /api/gallery
func (c *Client) Gallery(ctx context.Context) ([]models.ImageRecord, error) {
	return c.Collection(ctx, models.CollectionGallery)
}

// Jenna fetches /api/jenna
func (c *Client) Jenna(ctx context.Context) ([]models.ImageRecord, error) {
	return c.Collection(ctx, models.CollectionJenna)
}

// Invite fetches the Discord invite statistics
func (c *Client) Invite(ctx context.Context) (*models.InviteStats, error) {
	var stats models.InviteStats
	if err := c.getJSON(ctx, "/api/invite", false, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Channels fetches the public channel list
func (c *Client) Channels(ctx context.Context) ([]models.Channel, error) {
	var list models.ChannelList
	if err := c.getJSON(ctx, "/api/channels", false, &list); err != nil {
		return nil, err
	}
	return list.Channels, nil
}

// Site fetches the current banner and profile picture
func (c *Client) Site(ctx context.Context) (*models.SiteAssets, error) {
	var assets models.SiteAssets
	if err := c.getJSON(ctx, "/api/site", false, &assets); err != nil {
		return nil, err
	}
	return &assets, nil
}

// Join records a join click. The reply body is ignored.
func (c *Client) Join(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/join", false, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp, http.MethodPost, "/api/join")
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, admin bool, out interface{}) error {
	resp, err := c.do(ctx, http.MethodGet, path, admin, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp, http.MethodGet, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, admin bool, body interface{}) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", path, err)
	}
	return c.do(ctx, http.MethodPost, path, admin, bytes.NewReader(payload), "application/json")
}

func (c *Client) do(ctx context.Context, method, path string, admin bool, body io.Reader, contentType string) (*http.Response, error) {
	target := c.endpoint(path, admin)

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s: %w", method, path, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if admin && c.adminToken != "" {
		req.Header.Set(AdminTokenHeader, c.adminToken)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Debug("request failed", "method", method, "path", path, "requestID", requestID, "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	slog.Debug("request complete", "method", method, "path", path, "status", resp.StatusCode, "requestID", requestID, "elapsed", time.Since(start))
	return resp, nil
}

func (c *Client) endpoint(path string, admin bool) string {
	u := c.baseURL.ResolveReference(&url.URL{Path: strings.TrimLeft(path, "/")})
	if admin && c.adminToken != "" {
		q := u.Query()
		q.Set("token", c.adminToken)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func statusError(resp *http.Response, method, path string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
