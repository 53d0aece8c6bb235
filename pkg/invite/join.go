package invite

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
)

// Copy feedback texts
const (
	TextCopied     = "Copied!"
	TextCopyFailed = "Copy failed — try selecting and copying the link"
)

// Joiner records a join click on the backend
type Joiner interface {
	Join(ctx context.Context) error
}

// OpenBrowser opens url with the platform's default handler
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// Launcher performs the join and copy actions for one invite URL
type Launcher struct {
	URL string

	joiner Joiner
	open   func(string) error
	copy   func(string) error
}

// NewLauncher creates a launcher for url, defaulting to the public invite
func NewLauncher(url string, joiner Joiner) *Launcher {
	if url == "" {
		url = DefaultURL
	}
	return &Launcher{
		URL:    url,
		joiner: joiner,
		open:   OpenBrowser,
		copy:   clipboard.WriteAll,
	}
}

// SetOpener replaces the browser launcher
func (l *Launcher) SetOpener(fn func(string) error) {
	l.open = fn
}

// SetCopier replaces the clipboard writer
func (l *Launcher) SetCopier(fn func(string) error) {
	l.copy = fn
}

// Join records the join and opens the invite. A failed record is only
// logged; the invite opens regardless.
func (l *Launcher) Join(ctx context.Context) error {
	if l.joiner != nil {
		if err := l.joiner.Join(ctx); err != nil {
			slog.Warn("join record failed", "error", err)
		}
	}

	if err := l.open(l.URL); err != nil {
		return fmt.Errorf("failed to open invite: %w", err)
	}
	return nil
}

// Copy puts the invite URL on the clipboard
func (l *Launcher) Copy() error {
	if err := l.copy(l.URL); err != nil {
		return fmt.Errorf("copy failed, try selecting and copying the link: %w", err)
	}
	return nil
}
