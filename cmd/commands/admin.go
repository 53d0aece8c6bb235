package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fanhub/fanhub-terminal/internal/cli"
	"github.com/fanhub/fanhub-terminal/pkg/admin"
	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// NewAdminCommand creates the admin command and its subcommands
func NewAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Moderate uploads and manage the site",
		Long: `Moderation and site management. Every subcommand needs the admin token,
set with admin_token in the config file, FANHUB_ADMIN_TOKEN or --token.

Subcommands that take an upload pick one interactively when it is left
out.

Examples:
  # See what is waiting for moderation
  fanhub admin uploads

  # Approve an upload, choosing it from a list
  fanhub admin approve

  # Reject without a confirmation prompt
  fanhub admin reject p1.jpg --yes

  # Make an approved upload the banner
  fanhub admin set-asset banner a1.jpg

  # Run the image collection job
  fanhub admin collect`,
	}

	cmd.AddCommand(
		newAdminUploadsCommand(),
		newAdminApproveCommand(),
		newAdminRejectCommand(),
		newAdminSetAssetCommand(),
		newAdminAddJennaCommand(),
		newAdminCollectCommand(),
		newAdminCollectJennaCommand(),
		newAdminChannelsCommand(),
	)
	return cmd
}

// adminPanel returns the panel and a context cancelled on interrupt
func adminPanel(cmd *cobra.Command) (*admin.Panel, context.Context, context.CancelFunc, error) {
	cc, err := commandContext(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	panel, err := cc.Panel()
	if err != nil {
		return nil, nil, nil, err
	}
	ctx, cancel := cli.SignalContext(cmd.Context())
	return panel, ctx, cancel, nil
}

// reportAction prints an action reply, turning an error reply into a
// command error
func reportAction(cmd *cobra.Command, res models.ActionResult, success string) error {
	format := outputFormat(cmd)
	if format != string(cli.FormatText) {
		if err := cli.OutputResults(cmd.OutOrStdout(), format, res); err != nil {
			return err
		}
	}

	if admin.Failed(res) {
		return errors.New(res.Error)
	}
	if format == string(cli.FormatText) {
		cli.PrintSuccess("%s", success)
	}
	return nil
}

// pickUpload returns the upload named by args, or asks for one from the
// listing
func pickUpload(ctx context.Context, panel *admin.Panel, args []string, approved bool, label string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}

	listing, err := panel.Uploads(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", listing.Status, err)
	}
	queue := listing.Pending
	if approved {
		queue = listing.Approved
	}
	picked, err := admin.SelectUpload(label, queue)
	if err != nil {
		return "", err
	}
	if approved {
		return picked.Filename, nil
	}
	return picked.ID, nil
}

func newAdminUploadsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "uploads",
		Short: "List pending and approved uploads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, ctx, cancel, err := adminPanel(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			listing, err := panel.Uploads(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", listing.Status, err)
			}

			w := cmd.OutOrStdout()
			format := outputFormat(cmd)
			if format != string(cli.FormatText) {
				return cli.OutputResults(w, format, listing)
			}

			printUploads(w, "Pending", listing.Pending)
			fmt.Fprintln(w)
			printUploads(w, "Approved", listing.Approved)
			return nil
		},
	}
}

func printUploads(w io.Writer, title string, uploads []models.PendingUpload) {
	fmt.Fprintf(w, "%s (%d)\n", title, len(uploads))
	if len(uploads) == 0 {
		return
	}
	table := cli.NewTableFormatter(w)
	table.Header("ID", "FILENAME", "UPLOADER", "UPLOADED")
	for _, u := range uploads {
		table.Row(u.ID, u.Filename, u.Uploader, cli.OrDash(u.UploadedAt))
	}
	table.Flush()
}

func newAdminApproveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "approve [id]",
		Short: "Approve a pending upload",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, ctx, cancel, err := adminPanel(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			id, err := pickUpload(ctx, panel, args, false, "Approve which upload?")
			if err != nil {
				return err
			}
			return reportAction(cmd, panel.Approve(ctx, id), "Approved "+id)
		},
	}
}

func newAdminRejectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reject [id]",
		Short: "Reject and delete a pending upload",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, ctx, cancel, err := adminPanel(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			id, err := pickUpload(ctx, panel, args, false, "Reject which upload?")
			if err != nil {
				return err
			}

			ok, err := cli.Confirm(fmt.Sprintf("Reject %s? The file will be deleted", id), false)
			if err != nil {
				return err
			}
			if !ok {
				cli.PrintInfo("Reject cancelled")
				return nil
			}
			return reportAction(cmd, panel.Reject(ctx, id), "Rejected "+id)
		},
	}
}

func newAdminSetAssetCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "set-asset [banner|pfp] [filename]",
		Short:     "Make an approved upload the site banner or profile picture",
		Args:      cobra.MaximumNArgs(2),
		ValidArgs: []string{admin.AssetBanner, admin.AssetPFP},
		RunE: func(cmd *cobra.Command, args []string) error {
			var assetType string
			if len(args) > 0 {
				assetType = args[0]
			} else {
				choice, err := admin.SelectAsset()
				if err != nil {
					return err
				}
				assetType = choice
			}
			if err := cli.ValidateAssetType(assetType); err != nil {
				return err
			}

			panel, ctx, cancel, err := adminPanel(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			filename, err := pickUpload(ctx, panel, args[min(len(args), 1):], true, "Use which image?")
			if err != nil {
				return err
			}
			res, text := panel.SetAsset(ctx, assetType, filename)
			return reportAction(cmd, res, text)
		},
	}
}

func newAdminAddJennaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-jenna [filename]",
		Short: "Copy an approved upload into the Jenna collection",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, ctx, cancel, err := adminPanel(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			filename, err := pickUpload(ctx, panel, args, true, "Add which image?")
			if err != nil {
				return err
			}
			res, text := panel.AddJenna(ctx, filename)
			if text == admin.StatusAddFailed && !admin.Failed(res) {
				res.Error = text
			}
			return reportAction(cmd, res, text)
		},
	}
}

func newAdminCollectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "collect",
		Short: "Run the image collection job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, ctx, cancel, err := adminPanel(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			cli.PrintInfo(admin.StatusCollecting)
			res, text := panel.Collect(ctx)
			return reportCollect(cmd, res, text)
		},
	}
}

func newAdminCollectJennaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "collect-jenna",
		Short: "Gather new images for the Jenna collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, ctx, cancel, err := adminPanel(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			cli.PrintInfo(admin.StatusCollecting)
			res, text := panel.CollectJenna(ctx)
			return reportCollect(cmd, res, text)
		},
	}
}

func reportCollect(cmd *cobra.Command, res models.ActionResult, text string) error {
	if text != admin.StatusCollected && !admin.Failed(res) {
		res.Error = text
	}
	return reportAction(cmd, res, text)
}

var (
	channelEmoji string
	channelURL   string
	channelDesc  string
)

func newAdminChannelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channels",
		Short: "List, add or delete channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, ctx, cancel, err := adminPanel(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			chs, err := panel.Channels(ctx)
			if err != nil {
				return fmt.Errorf("failed to load channels: %w", err)
			}

			w := cmd.OutOrStdout()
			format := outputFormat(cmd)
			if format != string(cli.FormatText) {
				return cli.OutputResults(w, format, ChannelsResult{Channels: chs, Count: len(chs), Total: len(chs)})
			}

			table := cli.NewTableFormatter(w)
			table.Header("NAME", "EMOJI", "URL")
			for _, ch := range chs {
				table.Row(ch.Name, ch.Emoji, cli.OrDash(ch.URL))
			}
			table.Flush()
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a channel",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateChannelName(args[0])
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, ctx, cancel, err := adminPanel(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			ch := models.Channel{Name: args[0], Emoji: channelEmoji, URL: channelURL, Desc: channelDesc}
			return reportAction(cmd, panel.AddChannel(ctx, ch), "Added "+ch.Name)
		},
	}
	add.Flags().StringVar(&channelEmoji, "emoji", "", "Emoji shown before the name")
	add.Flags().StringVar(&channelURL, "url", "", "Link to the channel")
	add.Flags().StringVar(&channelDesc, "desc", "", "Short description")

	del := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a channel",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateChannelName(args[0])
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := cli.Confirm(fmt.Sprintf("Delete channel %s?", args[0]), false)
			if err != nil {
				return err
			}
			if !ok {
				cli.PrintInfo("Delete cancelled")
				return nil
			}

			panel, ctx, cancel, err := adminPanel(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			return reportAction(cmd, panel.DeleteChannel(ctx, args[0]), "Deleted "+args[0])
		},
	}

	cmd.AddCommand(add, del)
	return cmd
}
