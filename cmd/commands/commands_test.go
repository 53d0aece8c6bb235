package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanhub/fanhub-terminal/internal/cli"
	"github.com/fanhub/fanhub-terminal/pkg/admin"
	"github.com/fanhub/fanhub-terminal/pkg/files"
	"github.com/fanhub/fanhub-terminal/pkg/gallery"
	"github.com/fanhub/fanhub-terminal/pkg/invite"
	"github.com/fanhub/fanhub-terminal/pkg/testhelpers"
	"github.com/fanhub/fanhub-terminal/pkg/upload"
)

type result struct {
	out    string
	errOut string
	err    error
}

// execute runs the command tree against backend with settings kept in a
// temporary directory
func execute(t *testing.T, backend *testhelpers.Backend, args ...string) result {
	t.Helper()

	files.SetBaseDir(t.TempDir())
	t.Cleanup(func() { files.SetBaseDir("") })

	root := &cobra.Command{Use: "fanhub", SilenceUsage: true, SilenceErrors: true}
	RegisterGlobalFlags(root)
	AddCommands(root)

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	cli.SetOutput(&out, &errOut)
	t.Cleanup(func() { cli.SetOutput(nil, nil) })

	if backend != nil {
		args = append(args, "--base-url", backend.URL())
	}
	root.SetArgs(args)

	err := root.Execute()
	return result{out: out.String(), errOut: errOut.String(), err: err}
}

func decode(t *testing.T, data string, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(data), v), data)
}

func TestGalleryCommand(t *testing.T) {
	backend := testhelpers.NewBackend(t)

	res := execute(t, backend, "gallery")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "artlover99")
	assert.Contains(t, res.out, "sketch-draw-01.png")
	assert.Contains(t, res.out, "5 of 5 gallery images (all)")
}

func TestGalleryCommand_Filtered(t *testing.T) {
	backend := testhelpers.NewBackend(t)

	res := execute(t, backend, "gallery", "fan-art", "-o", "json")
	require.NoError(t, res.err)

	var got CollectionResult
	decode(t, res.out, &got)
	assert.Equal(t, "fan-art", got.Category)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, 5, got.Total)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "artlover99", got.Items[0].Label)
	assert.Equal(t, "sketch-draw-01.png", got.Items[1].Label)
	assert.Equal(t, "https://images.example.com/photo-1.jpg", got.Items[0].URL)
}

func TestGalleryCommand_InvalidCategory(t *testing.T) {
	backend := testhelpers.NewBackend(t)

	res := execute(t, backend, "gallery", "landscapes", "-o", "json")
	require.NoError(t, res.err)
	assert.Contains(t, res.errOut, "invalid gallery category: landscapes")

	var got CollectionResult
	decode(t, res.out, &got)
	assert.Equal(t, "landscapes", got.Category)
	assert.Equal(t, 5, got.Count)
	assert.Equal(t, 5, got.Total)
}

func TestGalleryCommand_LoadFailure(t *testing.T) {
	backend := testhelpers.NewBackend(t)
	backend.FailNext("/api/gallery", 1)

	res := execute(t, backend, "gallery")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "Could not load gallery")
}

func TestJennaCommand_URLs(t *testing.T) {
	backend := testhelpers.NewBackend(t)

	res := execute(t, backend, "jenna", "casual", "--urls")
	require.NoError(t, res.err)
	assert.Equal(t, "https://images.example.com/street/daily.jpg\n", res.out)
}

func TestExportCommand(t *testing.T) {
	backend := testhelpers.NewBackend(t)
	out := filepath.Join(t.TempDir(), "site", "gallery.html")

	res := execute(t, backend, "export", "gallery", "--category", "memes", "--file", out)
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Exported 1 images")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "<title>Fan Gallery</title>")
	assert.Contains(t, html, `loading="lazy"`)
	assert.Contains(t, html, "photo-2.jpg")
	assert.NotContains(t, html, "photo-1.jpg")
}

func TestExportCommand_Markdown(t *testing.T) {
	backend := testhelpers.NewBackend(t)

	res := execute(t, backend, "export", "jenna", "-c", "events", "--markdown")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.out, "Filter: events\n\n1. "), res.out)
	assert.Contains(t, res.out, "interview.jpg")
	assert.NotContains(t, res.out, "premiere.jpg")
	assert.NotContains(t, res.out, "2. ")
}

func TestExportCommand_Invalid(t *testing.T) {
	res := execute(t, nil, "export", "memes")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "invalid collection")

}

func TestExportCommand_UnknownCategoryExportsAll(t *testing.T) {
	backend := testhelpers.NewBackend(t)

	res := execute(t, backend, "export", "jenna", "--category", "fan-art", "--markdown")
	require.NoError(t, res.err)
	assert.Contains(t, res.errOut, "invalid jenna category: fan-art")
	assert.Contains(t, res.out, "interview.jpg")
	assert.Contains(t, res.out, "premiere.jpg")
}

func TestStatsCommand(t *testing.T) {
	backend := testhelpers.NewBackend(t)
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC).Local()
	statsNow = func() time.Time { return now }
	t.Cleanup(func() { statsNow = time.Now })

	res := execute(t, backend, "stats", "-o", "json")
	require.NoError(t, res.err)

	var got gallery.Stats
	decode(t, res.out, &got)
	assert.Equal(t, "5", got.GalleryCount)
	assert.Equal(t, "5", got.JennaCount)
	assert.Equal(t, 1, got.TodayCount)
	assert.Equal(t, gallery.CollectedText(now), got.LastCollect)
	assert.Equal(t, 1, backend.Hits("/api/gallery"))
	assert.Equal(t, 1, backend.Hits("/api/jenna"))
}

func TestStatsCommand_Failure(t *testing.T) {
	backend := testhelpers.NewBackend(t)
	backend.FailNext("/api/jenna", 1)

	res := execute(t, backend, "stats")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "failed to load jenna images")
}

func TestInviteCommand(t *testing.T) {
	backend := testhelpers.NewBackend(t)

	res := execute(t, backend, "invite")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Jenna Ortega Fan Server")
	assert.Contains(t, res.out, "12,345 members · 678 online")
	assert.Contains(t, res.out, invite.TextAPI)
}

func TestInviteCommand_Unavailable(t *testing.T) {
	t.Setenv("FANHUB_INVITE_RETRY_DELAY_MS", "1")
	backend := testhelpers.NewBackend(t)
	backend.FailNext("/api/invite", 2)

	res := execute(t, backend, "invite", "-o", "json")
	require.Error(t, res.err)
	assert.Equal(t, 2, backend.Hits("/api/invite"))

	var got invite.Display
	decode(t, res.out, &got)
	assert.Equal(t, invite.TextUnavailable, got.Members)
	assert.Empty(t, got.Online)
	assert.Equal(t, invite.TextNoUpdate, got.LastUpdated)
}

func TestJoinCommand(t *testing.T) {
	backend := testhelpers.NewBackend(t)
	var opened string
	joinOpener = func(url string) error {
		opened = url
		return nil
	}
	t.Cleanup(func() { joinOpener = nil })

	res := execute(t, backend, "join")
	require.NoError(t, res.err)
	assert.Equal(t, invite.DefaultURL, opened)
	assert.Equal(t, 1, backend.Hits("/api/join"))
}

func TestJoinCommand_RecordFails(t *testing.T) {
	backend := testhelpers.NewBackend(t)
	backend.FailNext("/api/join", 1)
	var opened string
	joinOpener = func(url string) error {
		opened = url
		return nil
	}
	t.Cleanup(func() { joinOpener = nil })

	res := execute(t, backend, "join")
	require.NoError(t, res.err)
	assert.Equal(t, invite.DefaultURL, opened)
}

func TestCopyInviteCommand(t *testing.T) {
	var copied string
	copyWriter = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { copyWriter = nil })

	res := execute(t, nil, "copy-invite")
	require.NoError(t, res.err)
	assert.Equal(t, invite.DefaultURL, copied)
	assert.Contains(t, res.out, invite.TextCopied)
}

func TestChannelsCommand(t *testing.T) {
	backend := testhelpers.NewBackend(t)

	res := execute(t, backend, "channels", "--preview", "-o", "json")
	require.NoError(t, res.err)

	var got ChannelsResult
	decode(t, res.out, &got)
	assert.Equal(t, 8, got.Count)
	assert.Equal(t, 9, got.Total)
	assert.Equal(t, "#chat", got.Channels[0].Name)

	res = execute(t, backend, "channels", "--preview")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "#spam")
	assert.NotContains(t, res.out, "#selfie")
	assert.Contains(t, res.out, "8 of 9 channels")
}

func TestSiteCommand(t *testing.T) {
	backend := testhelpers.NewBackend(t)

	res := execute(t, backend, "site", "-o", "json")
	require.NoError(t, res.err)

	var got struct {
		Banner string `json:"banner"`
		PFP    string `json:"pfp"`
	}
	decode(t, res.out, &got)
	assert.Equal(t, backend.URL()+"/uploads/approved/banner.jpg", got.Banner)
	assert.Equal(t, backend.URL()+"/uploads/approved/pfp.png", got.PFP)
}

func writeImages(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("image:"+name), 0644))
	}
	return dir
}

func TestUploadCommand(t *testing.T) {
	backend := testhelpers.NewBackend(t)
	dir := writeImages(t, "a.png", "nested/b.png", "c-draft.png", "notes.txt")

	res := execute(t, backend, "upload", filepath.Join(dir, "**", "*.png"), "--exclude", "*-draft.png", "--uploader", "tester", "-o", "json")
	require.NoError(t, res.err)

	var got UploadResult
	decode(t, res.out, &got)
	assert.Equal(t, 2, got.Succeeded)
	assert.Equal(t, 0, got.Failed)

	uploads := backend.Uploads()
	require.Len(t, uploads, 2)
	for _, u := range uploads {
		assert.Equal(t, "tester", u.Uploader)
		assert.Equal(t, []string{"uploader", "image"}, u.PartOrder)
	}
}

func TestUploadCommand_NoFile(t *testing.T) {
	backend := testhelpers.NewBackend(t)

	res := execute(t, backend, "upload")
	require.Error(t, res.err)
	assert.Equal(t, upload.StatusNoFile, res.err.Error())
	assert.Equal(t, 0, backend.Hits("/api/upload"))
}

func TestUploadCommand_DryRun(t *testing.T) {
	backend := testhelpers.NewBackend(t)
	dir := writeImages(t, "a.png", "b.png")

	res := execute(t, backend, "upload", filepath.Join(dir, "*.png"), "--dry-run")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, filepath.Join(dir, "a.png"))
	assert.Contains(t, res.out, filepath.Join(dir, "b.png"))
	assert.Contains(t, res.out, "11 B")
	assert.Contains(t, res.out, "2 files, 22 B")
	assert.Equal(t, 0, backend.Hits("/api/upload"))
}

func TestUploadCommand_ServerError(t *testing.T) {
	backend := testhelpers.NewBackend(t)
	backend.FailNext("/api/upload", 1)
	dir := writeImages(t, "a.png")

	res := execute(t, backend, "upload", filepath.Join(dir, "a.png"))
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "1 of 1 uploads failed")
}

func TestThemeCommand(t *testing.T) {
	saved := hasDarkBackground
	hasDarkBackground = func() bool { return true }
	t.Cleanup(func() { hasDarkBackground = saved })

	files.SetBaseDir(t.TempDir())
	t.Cleanup(func() { files.SetBaseDir("") })

	run := func(args ...string) result {
		root := &cobra.Command{Use: "fanhub", SilenceUsage: true, SilenceErrors: true}
		RegisterGlobalFlags(root)
		AddCommands(root)
		var out, errOut bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&errOut)
		cli.SetOutput(&out, &errOut)
		root.SetArgs(args)
		err := root.Execute()
		return result{out: out.String(), errOut: errOut.String(), err: err}
	}
	t.Cleanup(func() { cli.SetOutput(nil, nil) })

	res := run("theme")
	require.NoError(t, res.err)
	assert.Equal(t, "dark\n", res.out)

	require.NoError(t, run("theme", "light").err)
	assert.Equal(t, "light\n", run("theme").out)

	res = run("theme", "toggle")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Theme set to dark")

	settings, err := files.ReadSettings()
	require.NoError(t, err)
	assert.Equal(t, "dark", settings.Theme)

	res = run("theme", "sepia")
	require.Error(t, res.err)
}

func TestConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	res := execute(t, nil, "config", "init", "--config", path, "--base-url", "https://fans.example.com")
	require.NoError(t, res.err)
	assert.FileExists(t, path)

	res = execute(t, nil, "config", "init", "--config", path)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "already exists")

	res = execute(t, nil, "config", "show", "--config", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "base_url: https://fans.example.com")
	assert.Contains(t, res.out, "admin_token: de****en")
	assert.Contains(t, res.errOut, "development default")
}

func TestAdminUploadsCommand(t *testing.T) {
	backend := testhelpers.NewBackend(t)

	res := execute(t, backend, "admin", "uploads", "-o", "json")
	require.NoError(t, res.err)

	var got admin.Listing
	decode(t, res.out, &got)
	require.Len(t, got.Pending, 1)
	assert.Equal(t, "p1.jpg", got.Pending[0].ID)
	require.Len(t, got.Approved, 1)
	assert.Equal(t, "a1.jpg", got.Approved[0].Filename)

	res = execute(t, backend, "admin", "uploads", "--token", "wrong")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), admin.StatusUnauthorized)
}

func TestAdminModerationCommands(t *testing.T) {
	backend := testhelpers.NewBackend(t)

	res := execute(t, backend, "admin", "approve", "p1.jpg")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Approved p1.jpg")
	assert.Empty(t, backend.Pending())

	res = execute(t, backend, "admin", "reject", "missing.jpg", "--yes")
	require.Error(t, res.err)
	assert.Equal(t, admin.StatusActionFailed, res.err.Error())

	res = execute(t, backend, "admin", "set-asset", "banner", "a1.jpg")
	require.NoError(t, res.err)
	assert.Equal(t, "/uploads/approved/a1.jpg", backend.Site().Banner)

	res = execute(t, backend, "admin", "set-asset", "cover", "a1.jpg")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "invalid asset type")

	res = execute(t, backend, "admin", "add-jenna", "a1.jpg")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, admin.StatusAddedToJenna)
}

func TestAdminCollectCommands(t *testing.T) {
	backend := testhelpers.NewBackend(t)

	res := execute(t, backend, "admin", "collect")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, admin.StatusCollected)

	backend.FailNext("/api/admin/collect_jenna_images", 1)
	res = execute(t, backend, "admin", "collect-jenna")
	require.Error(t, res.err)
	assert.Equal(t, admin.StatusActionFailed, res.err.Error())
}

func TestAdminChannelsCommands(t *testing.T) {
	backend := testhelpers.NewBackend(t)

	res := execute(t, backend, "admin", "channels", "add", "#art", "--emoji", "🎨", "--url", "https://discord.com/channels/1/art")
	require.NoError(t, res.err)
	require.Len(t, backend.Channels(), 10)
	assert.Equal(t, "#art", backend.Channels()[9].Name)

	res = execute(t, backend, "admin", "channels", "delete", "#spam", "--yes")
	require.NoError(t, res.err)
	assert.Len(t, backend.Channels(), 9)

	res = execute(t, backend, "admin", "channels")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "#art")
	assert.NotContains(t, res.out, "#spam")

	res = execute(t, backend, "admin", "channels", "add", "  ")
	require.Error(t, res.err)
}

func TestOutputFlagValidation(t *testing.T) {
	res := execute(t, nil, "theme", "-o", "xml")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "invalid output format")
}
