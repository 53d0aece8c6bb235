package invite

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// DefaultURL is the public Discord invite
const DefaultURL = "https://discord.gg/XbR2fgFv"

// Texts shown by the invite widget
const (
	TextUnavailable = "Unavailable"
	TextFetching    = "Fetching..."
	TextAPI         = "Invite API"
	TextAPICached   = "Invite API (cached)"
	TextNoUpdate    = "Last updated: —"
)

// Source looks up the invite statistics
type Source interface {
	Invite(ctx context.Context) (*models.InviteStats, error)
}

// Display holds the text of every field of the invite widget
type Display struct {
	Members     string `json:"members" yaml:"members"`
	Online      string `json:"online" yaml:"online"`
	Server      string `json:"server,omitempty" yaml:"server,omitempty"`
	Source      string `json:"source" yaml:"source"`
	LastUpdated string `json:"last_updated" yaml:"last_updated"`
	Available   bool   `json:"available" yaml:"available"`
}

// Unavailable is the degraded display left after the final failed attempt
func Unavailable() Display {
	return Display{
		Members:     TextUnavailable,
		Online:      "",
		Source:      TextUnavailable,
		LastUpdated: TextNoUpdate,
	}
}

// Fetching is the display while a request is in flight. Earlier counts stay.
func (d Display) Fetching() Display {
	d.Source = TextFetching
	return d
}

// Format turns a successful lookup into display text. A zero member count
// shows a dash; a zero online count hides the field.
func Format(stats *models.InviteStats, now time.Time) Display {
	d := Display{
		Members:   "— members",
		Source:    TextAPI,
		Available: true,
	}
	if stats == nil {
		d.LastUpdated = "Last updated: " + clockText(now)
		return d
	}

	if stats.ApproximateMemberCount != 0 {
		d.Members = humanize.Comma(stats.ApproximateMemberCount) + " members"
	}
	if stats.ApproximatePresenceCount != 0 {
		d.Online = humanize.Comma(stats.ApproximatePresenceCount) + " online"
	}
	if stats.Guild != nil {
		d.Server = stats.Guild.Name
	}
	if stats.Cached {
		d.Source = TextAPICached
	}

	updated := now
	if stats.FetchedAt != 0 {
		updated = time.Unix(stats.FetchedAt, 0)
	}
	d.LastUpdated = "Last updated: " + clockText(updated)
	return d
}

func clockText(t time.Time) string {
	return t.Local().Format("3:04:05 PM")
}

// Fetcher looks up invite stats with a fixed-delay retry
type Fetcher struct {
	source  Source
	retries int
	delay   time.Duration
	sleep   func(ctx context.Context, d time.Duration) error
	now     func() time.Time
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithRetries sets how many extra attempts follow a failure
func WithRetries(n int) Option {
	return func(f *Fetcher) {
		if n >= 0 {
			f.retries = n
		}
	}
}

// WithRetryDelay sets the pause before each retry
func WithRetryDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		if d >= 0 {
			f.delay = d
		}
	}
}

// WithSleep replaces the pause between attempts
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(f *Fetcher) {
		if sleep != nil {
			f.sleep = sleep
		}
	}
}

// WithClock replaces the clock used for "Last updated"
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) {
		if now != nil {
			f.now = now
		}
	}
}

// NewFetcher returns a fetcher that retries once after one second
func NewFetcher(source Source, opts ...Option) *Fetcher {
	f := &Fetcher{
		source:  source,
		retries: 1,
		delay:   time.Second,
		sleep:   sleepContext,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch looks up the stats. After the last failed attempt it returns the
// unavailable display along with the final error.
func (f *Fetcher) Fetch(ctx context.Context) (Display, error) {
	var lastErr error
	for attempt := 0; attempt <= f.retries; attempt++ {
		if attempt > 0 {
			if err := f.sleep(ctx, f.delay); err != nil {
				lastErr = err
				break
			}
		}

		stats, err := f.source.Invite(ctx)
		if err == nil {
			return Format(stats, f.now()), nil
		}
		lastErr = err
		slog.Warn("invite stats unavailable", "attempt", attempt+1, "error", err)
	}

	return Unavailable(), fmt.Errorf("failed to fetch invite stats: %w", lastErr)
}

// Watch fetches immediately and then every interval until ctx ends,
// passing each result to fn
func (f *Fetcher) Watch(ctx context.Context, interval time.Duration, fn func(Display, error)) {
	if interval <= 0 {
		interval = time.Minute
	}

	fn(f.Fetch(ctx))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(f.Fetch(ctx))
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
