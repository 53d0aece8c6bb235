package testhelpers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// ReceivedUpload records one multipart submission
type ReceivedUpload struct {
	Uploader  string
	Filename  string
	Size      int
	PartOrder []string
}

// RecordedAction records the decoded body of an admin POST
type RecordedAction struct {
	Path string
	Body map[string]interface{}
}

// Backend is an in-process stand-in for the fan site API
type Backend struct {
	Server *httptest.Server

	mu         sync.Mutex
	gallery    []models.ImageRecord
	jenna      []models.ImageRecord
	invite     models.InviteStats
	channels   []models.Channel
	site       models.SiteAssets
	pending    []models.PendingUpload
	approved   []models.PendingUpload
	adminToken string
	failures   map[string]int
	rawReplies map[string]string
	hits       map[string]int
	uploads    []ReceivedUpload
	actions    []RecordedAction
}

// NewBackend starts a backend seeded with fixture data and registers its
// shutdown with t.Cleanup
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		gallery:    GalleryFixture(),
		jenna:      JennaFixture(),
		invite:     models.InviteStats{ApproximateMemberCount: 12345, ApproximatePresenceCount: 678, Guild: &models.Guild{Name: "Jenna Ortega Fan Server"}, FetchedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC).Unix()},
		channels:   ChannelFixture(),
		site:       models.SiteAssets{Banner: "/uploads/approved/banner.jpg", PFP: "/uploads/approved/pfp.png"},
		pending:    []models.PendingUpload{{ID: "p1.jpg", Filename: "p1.jpg", Uploader: "anonymous", UploadedAt: "2024-01-15T10:30:00"}},
		approved:   []models.PendingUpload{{ID: "a1.jpg", Filename: "a1.jpg", Uploader: "approved_user", UploadedAt: "2024-01-14T09:00:00"}},
		adminToken: "devtoken",
		failures:   make(map[string]int),
		rawReplies: make(map[string]string),
		hits:       make(map[string]int),
	}

	b.Server = httptest.NewServer(b.router())
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the backend root
func (b *Backend) URL() string {
	return b.Server.URL
}

// AdminToken returns the token admin endpoints accept
func (b *Backend) AdminToken() string {
	return b.adminToken
}

// FailNext makes the next n requests to path answer 500
func (b *Backend) FailNext(path string, n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[path] = n
}

// ReplyRaw makes every request to path answer 200 with body verbatim
func (b *Backend) ReplyRaw(path, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rawReplies[path] = body
}

// Hits returns how many requests reached path
func (b *Backend) Hits(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[path]
}

// SetGallery replaces the gallery collection
func (b *Backend) SetGallery(images []models.ImageRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gallery = images
}

// SetJenna replaces the jenna collection
func (b *Backend) SetJenna(images []models.ImageRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jenna = images
}

// SetInvite replaces the invite payload
func (b *Backend) SetInvite(stats models.InviteStats) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.invite = stats
}

// Uploads returns the submissions received so far
func (b *Backend) Uploads() []ReceivedUpload {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]ReceivedUpload(nil), b.uploads...)
}

// Actions returns the admin POST bodies received so far
func (b *Backend) Actions() []RecordedAction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]RecordedAction(nil), b.actions...)
}

// Site returns the current site assets
func (b *Backend) Site() models.SiteAssets {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.site
}

// Channels returns the current channel list
func (b *Backend) Channels() []models.Channel {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Channel(nil), b.channels...)
}

// Pending returns the pending uploads
func (b *Backend) Pending() []models.PendingUpload {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.PendingUpload(nil), b.pending...)
}

func (b *Backend) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(b.scripted)

	r.Get("/api/invite", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, b.invite)
	})
	r.Get("/api/gallery", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, models.ImageList{Images: b.gallery})
	})
	r.Get("/api/jenna", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, models.ImageList{Images: b.jenna})
	})
	r.Get("/api/channels", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, models.ChannelList{Channels: b.channels})
	})
	r.Get("/api/site", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, b.site)
	})
	r.Post("/api/join", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.ActionResult{Status: "success", Message: "Join recorded"})
	})
	r.Post("/api/upload", b.handleUpload)

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(b.requireToken)
		r.Get("/uploads", func(w http.ResponseWriter, r *http.Request) {
			b.mu.Lock()
			defer b.mu.Unlock()
			writeJSON(w, http.StatusOK, models.AdminUploads{Pending: b.pending, Approved: b.approved})
		})
		r.Post("/approve", b.handleApprove)
		r.Post("/reject", b.handleReject)
		r.Post("/set_asset", b.handleSetAsset)
		r.Post("/add_jenna", b.handleAddJenna)
		r.Post("/collect_jenna_images", b.handleCollect)
		r.Post("/collect", b.handleCollect)
		r.Post("/channels", b.handleChannels)
	})

	return r
}

func (b *Backend) scripted(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits[r.URL.Path]++
		remaining := b.failures[r.URL.Path]
		if remaining > 0 {
			b.failures[r.URL.Path] = remaining - 1
		}
		raw, hasRaw := b.rawReplies[r.URL.Path]
		b.mu.Unlock()

		if remaining > 0 {
			writeJSON(w, http.StatusInternalServerError, models.ActionResult{Error: "scripted failure"})
			return
		}
		if hasRaw {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, raw)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			token = r.Header.Get("X-Admin-Token")
		}
		if token != b.adminToken {
			writeJSON(w, http.StatusUnauthorized, models.ActionResult{Error: "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) handleUpload(w http.ResponseWriter, r *http.Request) {
	mr, err := r.MultipartReader()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ActionResult{Error: "Invalid upload"})
		return
	}

	var received ReceivedUpload
	received.Uploader = "anonymous"
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.ActionResult{Error: "Invalid upload"})
			return
		}
		received.PartOrder = append(received.PartOrder, part.FormName())
		data, _ := io.ReadAll(part)
		switch part.FormName() {
		case "uploader":
			received.Uploader = string(data)
		case "image":
			received.Filename = part.FileName()
			received.Size = len(data)
		}
	}

	if received.Filename == "" {
		writeJSON(w, http.StatusBadRequest, models.ActionResult{Error: "No file provided"})
		return
	}

	b.mu.Lock()
	b.uploads = append(b.uploads, received)
	b.pending = append(b.pending, models.PendingUpload{ID: received.Filename, Filename: received.Filename, Uploader: received.Uploader})
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, models.ActionResult{Status: "success", Message: "Upload successful"})
}

func (b *Backend) decodeAction(w http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ActionResult{Error: "invalid body"})
		return nil, false
	}
	b.mu.Lock()
	b.actions = append(b.actions, RecordedAction{Path: r.URL.Path, Body: body})
	b.mu.Unlock()
	return body, true
}

func (b *Backend) handleApprove(w http.ResponseWriter, r *http.Request) {
	body, ok := b.decodeAction(w, r)
	if !ok {
		return
	}
	id, _ := body["id"].(string)
	if id == "" {
		writeJSON(w, http.StatusBadRequest, models.ActionResult{Error: "No filename provided"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, p := range b.pending {
		if p.ID == id {
			b.pending = append(b.pending[:i], b.pending[i+1:]...)
			b.approved = append(b.approved, p)
			writeJSON(w, http.StatusOK, models.ActionResult{Status: "success", Message: "Image approved"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, models.ActionResult{Error: "File not found"})
}

func (b *Backend) handleReject(w http.ResponseWriter, r *http.Request) {
	body, ok := b.decodeAction(w, r)
	if !ok {
		return
	}
	id, _ := body["id"].(string)

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, p := range b.pending {
		if p.ID == id {
			b.pending = append(b.pending[:i], b.pending[i+1:]...)
			writeJSON(w, http.StatusOK, models.ActionResult{Status: "success", Message: "Image rejected"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, models.ActionResult{Error: "File not found"})
}

func (b *Backend) handleSetAsset(w http.ResponseWriter, r *http.Request) {
	body, ok := b.decodeAction(w, r)
	if !ok {
		return
	}
	assetType, _ := body["type"].(string)
	url, _ := body["url"].(string)
	if assetType == "" || url == "" {
		writeJSON(w, http.StatusBadRequest, models.ActionResult{Error: "Missing type or url"})
		return
	}

	b.mu.Lock()
	switch assetType {
	case "banner":
		b.site.Banner = url
	case "pfp":
		b.site.PFP = url
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, models.ActionResult{Status: "success", Message: assetType + " updated"})
}

func (b *Backend) handleAddJenna(w http.ResponseWriter, r *http.Request) {
	body, ok := b.decodeAction(w, r)
	if !ok {
		return
	}
	filename, _ := body["filename"].(string)
	if filename == "" {
		writeJSON(w, http.StatusBadRequest, models.ActionResult{Error: "No filename provided"})
		return
	}

	url := "/uploads/approved/" + filename
	b.mu.Lock()
	b.jenna = append(b.jenna, models.ImageRecord{URL: url, Alt: filename})
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, models.ActionResult{Status: "success", Message: "Image added to Jenna page", URL: url})
}

func (b *Backend) handleCollect(w http.ResponseWriter, r *http.Request) {
	if _, ok := b.decodeAction(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, models.ActionResult{Status: "ok", Message: "Images collected successfully", Count: 5})
}

func (b *Backend) handleChannels(w http.ResponseWriter, r *http.Request) {
	body, ok := b.decodeAction(w, r)
	if !ok {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch body["action"] {
	case "add":
		raw, _ := body["channel"].(map[string]interface{})
		if raw == nil {
			break
		}
		ch := models.Channel{}
		ch.Emoji, _ = raw["emoji"].(string)
		ch.Name, _ = raw["name"].(string)
		ch.URL, _ = raw["url"].(string)
		b.channels = append(b.channels, ch)
		writeJSON(w, http.StatusOK, models.ActionResult{Status: "success", Message: "Channel added"})
		return
	case "delete":
		name, _ := body["name"].(string)
		if name == "" {
			break
		}
		for i, ch := range b.channels {
			if ch.Name == name {
				b.channels = append(b.channels[:i], b.channels[i+1:]...)
				break
			}
		}
		writeJSON(w, http.StatusOK, models.ActionResult{Status: "success", Message: "Channel deleted"})
		return
	}

	writeJSON(w, http.StatusBadRequest, models.ActionResult{Error: "Invalid action"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
