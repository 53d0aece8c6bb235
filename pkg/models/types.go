package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// CollectionKind identifies one of the site's image collections
type CollectionKind string

const (
	CollectionGallery CollectionKind = "gallery"
	CollectionJenna   CollectionKind = "jenna"
)

// ImageRecord is a single image entry as served by /api/gallery or /api/jenna
type ImageRecord struct {
	URL        string    `json:"url" yaml:"url"`
	Uploader   string    `json:"uploader,omitempty" yaml:"uploader,omitempty"`
	Filename   string    `json:"filename,omitempty" yaml:"filename,omitempty"`
	Alt        string    `json:"alt,omitempty" yaml:"alt,omitempty"`
	UploadedAt Timestamp `json:"uploaded_at,omitempty" yaml:"uploaded_at,omitempty"`
}

// ImageList is the envelope returned by the collection endpoints
type ImageList struct {
	Images []ImageRecord `json:"images"`
}

// Guild carries the server fields of an invite lookup
type Guild struct {
	Name string `json:"name" yaml:"name"`
}

// InviteStats is the payload of /api/invite
type InviteStats struct {
	ApproximateMemberCount   int64  `json:"approximate_member_count" yaml:"approximate_member_count"`
	ApproximatePresenceCount int64  `json:"approximate_presence_count" yaml:"approximate_presence_count"`
	Guild                    *Guild `json:"guild,omitempty" yaml:"guild,omitempty"`
	Cached                   bool   `json:"cached" yaml:"cached"`
	FetchedAt                int64  `json:"fetched_at,omitempty" yaml:"fetched_at,omitempty"`
}

// Channel is one entry of /api/channels
type Channel struct {
	Emoji string `json:"emoji,omitempty" yaml:"emoji,omitempty"`
	Name  string `json:"name" yaml:"name"`
	URL   string `json:"url" yaml:"url"`
	Desc  string `json:"desc,omitempty" yaml:"desc,omitempty"`
}

// ChannelList is the envelope of /api/channels
type ChannelList struct {
	Channels []Channel `json:"channels"`
}

// SiteAssets holds the banner and profile picture URLs from /api/site
type SiteAssets struct {
	Banner string `json:"banner" yaml:"banner"`
	PFP    string `json:"pfp" yaml:"pfp"`
}

// PendingUpload is an upload awaiting (or past) moderation
type PendingUpload struct {
	ID         string `json:"id" yaml:"id"`
	Filename   string `json:"filename" yaml:"filename"`
	Uploader   string `json:"uploader" yaml:"uploader"`
	UploadedAt string `json:"uploaded_at" yaml:"uploaded_at"`
}

// AdminUploads is the payload of /api/admin/uploads
type AdminUploads struct {
	Pending  []PendingUpload `json:"pending" yaml:"pending"`
	Approved []PendingUpload `json:"approved" yaml:"approved"`
}

// ActionResult is the generic reply of POST endpoints
type ActionResult struct {
	Status  string `json:"status,omitempty" yaml:"status,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`
	Count   int    `json:"count,omitempty" yaml:"count,omitempty"`
}

// Timestamp accepts either a JSON number (milliseconds since the epoch) or a
// date string. Strings without an offset are read as local time. A value
// that cannot be parsed decodes to the zero time so one bad record never
// fails the whole listing.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] != '"' {
		ms, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			slog.Debug("ignoring uploaded_at", "value", string(data), "error", err)
			return nil
		}
		t.Time = epochMillis(ms)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		slog.Debug("ignoring uploaded_at", "value", string(data), "error", err)
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		slog.Debug("ignoring uploaded_at", "value", s, "error", err)
		return nil
	}
	t.Time = parsed
	return nil
}

func epochMillis(ms float64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(int64(ms))
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

func (t Timestamp) MarshalYAML() (interface{}, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Format(time.RFC3339), nil
}

// ParseTimestamp parses the date strings the backend emits
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		return epochMillis(ms), nil
	}
	if d, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return d, nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
