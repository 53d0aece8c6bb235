package admin

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fanhub/fanhub-terminal/pkg/api"
	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// Status texts of the moderation panel
const (
	StatusUnauthorized  = "Unauthorized or error"
	StatusPanelFailed   = "Failed to load admin panel"
	StatusActionFailed  = "failed"
	StatusAddedToJenna  = "Added to Jenna page"
	StatusAddFailed     = "Failed to add"
	StatusCollected     = "Images collected successfully!"
	StatusCollectFailed = "Collection failed"
	StatusCollecting    = "Collecting images..."
	assetUpdatedPrefix  = "Updated site "
	collectOK           = "ok"
)

// Asset types accepted by set_asset
const (
	AssetBanner = "banner"
	AssetPFP    = "pfp"
)

// Backend is the slice of the API client the panel drives
type Backend interface {
	AdminUploads(ctx context.Context) (*models.AdminUploads, error)
	AdminChannels(ctx context.Context) ([]models.Channel, error)
	Approve(ctx context.Context, id string) (*models.ActionResult, error)
	Reject(ctx context.Context, id string) (*models.ActionResult, error)
	SetAsset(ctx context.Context, assetType, url string) (*models.ActionResult, error)
	AddJenna(ctx context.Context, filename string) (*models.ActionResult, error)
	CollectJennaImages(ctx context.Context) (*models.ActionResult, error)
	Collect(ctx context.Context) (*models.ActionResult, error)
	AddChannel(ctx context.Context, ch models.Channel) (*models.ActionResult, error)
	DeleteChannel(ctx context.Context, name string) (*models.ActionResult, error)
}

// Listing is the moderation queue as shown on the panel. Status is empty on
// success and a placeholder otherwise.
type Listing struct {
	Pending  []models.PendingUpload `json:"pending" yaml:"pending"`
	Approved []models.PendingUpload `json:"approved" yaml:"approved"`
	Status   string                 `json:"status,omitempty" yaml:"status,omitempty"`
}

// Panel runs moderation actions with the admin token already configured on
// the backend client
type Panel struct {
	backend Backend
}

// NewPanel creates a panel over backend
func NewPanel(backend Backend) *Panel {
	return &Panel{backend: backend}
}

// Uploads lists pending and approved uploads. A rejected token or other
// non-2xx reply shows the unauthorized placeholder.
func (p *Panel) Uploads(ctx context.Context) (Listing, error) {
	uploads, err := p.backend.AdminUploads(ctx)
	if err != nil {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) {
			return Listing{Status: StatusUnauthorized}, err
		}
		return Listing{Status: StatusPanelFailed}, err
	}

	listing := Listing{
		Pending:  uploads.Pending,
		Approved: uploads.Approved,
	}
	if listing.Pending == nil {
		listing.Pending = []models.PendingUpload{}
	}
	if listing.Approved == nil {
		listing.Approved = []models.PendingUpload{}
	}
	return listing, nil
}

// Channels lists the channels for management
func (p *Panel) Channels(ctx context.Context) ([]models.Channel, error) {
	return p.backend.AdminChannels(ctx)
}

// Approve moves a pending upload into the approved set
func (p *Panel) Approve(ctx context.Context, id string) models.ActionResult {
	return collapse("approve", func() (*models.ActionResult, error) {
		return p.backend.Approve(ctx, id)
	})
}

// Reject deletes a pending upload
func (p *Panel) Reject(ctx context.Context, id string) models.ActionResult {
	return collapse("reject", func() (*models.ActionResult, error) {
		return p.backend.Reject(ctx, id)
	})
}

// SetAsset makes an approved file the site banner or profile picture and
// returns the confirmation text
func (p *Panel) SetAsset(ctx context.Context, assetType, filename string) (models.ActionResult, string) {
	res := collapse("set_asset", func() (*models.ActionResult, error) {
		return p.backend.SetAsset(ctx, assetType, api.ApprovedUploadPath(filename))
	})
	return res, assetUpdatedPrefix + assetType
}

// AddJenna copies an approved file into the jenna collection
func (p *Panel) AddJenna(ctx context.Context, filename string) (models.ActionResult, string) {
	res := collapse("add_jenna", func() (*models.ActionResult, error) {
		return p.backend.AddJenna(ctx, filename)
	})
	if res.URL != "" {
		return res, StatusAddedToJenna
	}
	return res, StatusAddFailed
}

// CollectJenna asks the backend to gather new jenna images
func (p *Panel) CollectJenna(ctx context.Context) (models.ActionResult, string) {
	res := collapse("collect_jenna_images", func() (*models.ActionResult, error) {
		return p.backend.CollectJennaImages(ctx)
	})
	return res, CollectText(res)
}

// Collect runs the general collection job
func (p *Panel) Collect(ctx context.Context) (models.ActionResult, string) {
	res := collapse("collect", func() (*models.ActionResult, error) {
		return p.backend.Collect(ctx)
	})
	return res, CollectText(res)
}

// AddChannel appends a channel
func (p *Panel) AddChannel(ctx context.Context, ch models.Channel) models.ActionResult {
	return collapse("channels add", func() (*models.ActionResult, error) {
		return p.backend.AddChannel(ctx, ch)
	})
}

// DeleteChannel removes the channel called name
func (p *Panel) DeleteChannel(ctx context.Context, name string) models.ActionResult {
	return collapse("channels delete", func() (*models.ActionResult, error) {
		return p.backend.DeleteChannel(ctx, name)
	})
}

// CollectText is the status line after a collect request
func CollectText(res models.ActionResult) string {
	if res.Status == collectOK {
		return StatusCollected
	}
	if res.Error != "" {
		return res.Error
	}
	return StatusCollectFailed
}

// Failed reports whether an action reply carries an error
func Failed(res models.ActionResult) bool {
	return res.Error != ""
}

// collapse turns any failure to reach the backend into {error:"failed"}
func collapse(action string, call func() (*models.ActionResult, error)) models.ActionResult {
	res, err := call()
	if err != nil || res == nil {
		slog.Warn("admin action failed", "action", action, "error", err)
		return models.ActionResult{Error: StatusActionFailed}
	}
	return *res
}
