package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// Admin endpoint paths
const (
	PathAdminUploads      = "/api/admin/uploads"
	PathAdminApprove      = "/api/admin/approve"
	PathAdminReject       = "/api/admin/reject"
	PathAdminSetAsset     = "/api/admin/set_asset"
	PathAdminAddJenna     = "/api/admin/add_jenna"
	PathAdminCollectJenna = "/api/admin/collect_jenna_images"
	PathAdminCollect      = "/api/admin/collect"
	PathAdminChannels     = "/api/admin/channels"
	approvedUploadsRoot   = "/uploads/approved/"
	pendingUploadsRoot    = "/uploads/pending/"
)

// ApprovedUploadPath is the site path an approved upload is served from
func ApprovedUploadPath(filename string) string {
	return approvedUploadsRoot + filename
}

// PendingUploadPath is the site path a pending upload is served from
func PendingUploadPath(filename string) string {
	return pendingUploadsRoot + filename
}

// AdminUploads lists pending and approved uploads
func (c *Client) AdminUploads(ctx context.Context) (*models.AdminUploads, error) {
	var uploads models.AdminUploads
	if err := c.getJSON(ctx, PathAdminUploads, true, &uploads); err != nil {
		return nil, err
	}
	return &uploads, nil
}

// AdminChannels fetches the channel list with the admin token attached
func (c *Client) AdminChannels(ctx context.Context) ([]models.Channel, error) {
	var list models.ChannelList
	if err := c.getJSON(ctx, "/api/channels", true, &list); err != nil {
		return nil, err
	}
	return list.Channels, nil
}

// AdminAction posts body to an admin endpoint and decodes the reply whatever
// its status. Only transport and decode failures are returned as errors.
func (c *Client) AdminAction(ctx context.Context, path string, body interface{}) (*models.ActionResult, error) {
	resp, err := c.postJSON(ctx, path, true, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result models.ActionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode %s reply (status %d): %w", path, resp.StatusCode, err)
	}

	if (resp.StatusCode < 200 || resp.StatusCode > 299) && result.Error == "" {
		result.Error = http.StatusText(resp.StatusCode)
	}
	return &result, nil
}

// Approve moves a pending upload into the approved set
func (c *Client) Approve(ctx context.Context, id string) (*models.ActionResult, error) {
	return c.AdminAction(ctx, PathAdminApprove, map[string]string{"id": id})
}

// Reject discards a pending upload
func (c *Client) Reject(ctx context.Context, id string) (*models.ActionResult, error) {
	return c.AdminAction(ctx, PathAdminReject, map[string]string{"id": id})
}

// SetAsset points the site banner or pfp at url
func (c *Client) SetAsset(ctx context.Context, assetType, url string) (*models.ActionResult, error) {
	return c.AdminAction(ctx, PathAdminSetAsset, map[string]string{"type": assetType, "url": url})
}

// AddJenna adds an approved upload to the jenna collection
func (c *Client) AddJenna(ctx context.Context, filename string) (*models.ActionResult, error) {
	return c.AdminAction(ctx, PathAdminAddJenna, map[string]string{"filename": filename})
}

// CollectJennaImages asks the backend to gather new jenna images
func (c *Client) CollectJennaImages(ctx context.Context) (*models.ActionResult, error) {
	return c.AdminAction(ctx, PathAdminCollectJenna, struct{}{})
}

// Collect triggers the general photo collection job
func (c *Client) Collect(ctx context.Context) (*models.ActionResult, error) {
	return c.AdminAction(ctx, PathAdminCollect, struct{}{})
}

type channelAction struct {
	Action  string          `json:"action"`
	Name    string          `json:"name,omitempty"`
	Channel *models.Channel `json:"channel,omitempty"`
}

// AddChannel registers a channel
func (c *Client) AddChannel(ctx context.Context, ch models.Channel) (*models.ActionResult, error) {
	return c.AdminAction(ctx, PathAdminChannels, channelAction{Action: "add", Channel: &ch})
}

// DeleteChannel removes a channel by name
func (c *Client) DeleteChannel(ctx context.Context, name string) (*models.ActionResult, error) {
	return c.AdminAction(ctx, PathAdminChannels, channelAction{Action: "delete", Name: name})
}
