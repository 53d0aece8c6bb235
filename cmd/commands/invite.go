package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/fanhub/fanhub-terminal/internal/cli"
	"github.com/fanhub/fanhub-terminal/pkg/invite"
)

var (
	inviteWatch    bool
	inviteInterval time.Duration
)

// NewInviteCommand creates the invite command
func NewInviteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Show the server's member and online counts",
		Long: `Show the invite widget: member count, online count, server name and
where the numbers came from.

A failed lookup is retried once. If it still fails the widget shows
"Unavailable" and the command exits with an error.

Examples:
  # Show the counts once
  fanhub invite

  # Keep refreshing every minute until interrupted
  fanhub invite --watch

  # Refresh every 10 seconds
  fanhub invite --watch --interval 10s`,
		Args: cobra.NoArgs,
		RunE: runInvite,
	}

	cmd.Flags().BoolVarP(&inviteWatch, "watch", "w", false, "Keep refreshing until interrupted")
	cmd.Flags().DurationVar(&inviteInterval, "interval", 0, "Refresh interval for --watch (default from config)")

	return cmd
}

func runInvite(cmd *cobra.Command, args []string) error {
	cc, err := commandContext(cmd)
	if err != nil {
		return err
	}
	fetcher, err := cc.InviteFetcher()
	if err != nil {
		return err
	}

	ctx, cancel := cli.SignalContext(cmd.Context())
	defer cancel()

	w := cmd.OutOrStdout()
	format := outputFormat(cmd)

	if !inviteWatch {
		display, fetchErr := fetcher.Fetch(ctx)
		if err := printInvite(w, format, display); err != nil {
			return err
		}
		return fetchErr
	}

	interval := inviteInterval
	if interval <= 0 {
		interval = cc.Config.InviteRefresh()
	}
	fetcher.Watch(ctx, interval, func(display invite.Display, err error) {
		if err != nil && !errors.Is(err, context.Canceled) {
			cli.PrintWarning("%v", err)
		}
		if err := printInvite(w, format, display); err != nil {
			cli.PrintError("%v", err)
		}
	})
	return nil
}

func printInvite(w io.Writer, format string, d invite.Display) error {
	if format != string(cli.FormatText) {
		return cli.OutputResults(w, format, d)
	}

	if d.Server != "" {
		fmt.Fprintln(w, d.Server)
	}
	if d.Online != "" {
		fmt.Fprintf(w, "%s · %s\n", d.Members, d.Online)
	} else {
		fmt.Fprintln(w, d.Members)
	}
	fmt.Fprintf(w, "%s · %s\n", d.Source, d.LastUpdated)
	return nil
}

// NewJoinCommand creates the join command
func NewJoinCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join",
		Short: "Record a join and open the invite in your browser",
		Long: `Tell the site someone is joining, then open the Discord invite in the
default browser. The invite opens even if the site cannot be reached.

Examples:
  fanhub join`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := commandContext(cmd)
			if err != nil {
				return err
			}
			launcher, err := cc.Launcher()
			if err != nil {
				return err
			}
			if joinOpener != nil {
				launcher.SetOpener(joinOpener)
			}

			if err := launcher.Join(cmd.Context()); err != nil {
				cli.PrintInfo("Invite: %s", launcher.URL)
				return err
			}
			cli.PrintSuccess("Opened %s", launcher.URL)
			return nil
		},
	}

	return cmd
}

// NewCopyInviteCommand creates the copy-invite command
func NewCopyInviteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "copy-invite",
		Short:   "Copy the invite link to the clipboard",
		Aliases: []string{"copy"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := commandContext(cmd)
			if err != nil {
				return err
			}
			launcher, err := cc.Launcher()
			if err != nil {
				return err
			}
			if copyWriter != nil {
				launcher.SetCopier(copyWriter)
			}

			if err := launcher.Copy(); err != nil {
				cli.PrintError(invite.TextCopyFailed)
				fmt.Fprintln(cmd.OutOrStdout(), launcher.URL)
				return err
			}
			cli.PrintSuccess("%s %s", invite.TextCopied, launcher.URL)
			return nil
		},
	}

	return cmd
}

// Browser and clipboard hooks, replaced in tests
var (
	joinOpener func(string) error
	copyWriter func(string) error
)
