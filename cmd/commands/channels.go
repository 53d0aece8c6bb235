package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fanhub/fanhub-terminal/internal/cli"
	"github.com/fanhub/fanhub-terminal/pkg/channels"
	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// ChannelsResult represents the output structure for the channels command
type ChannelsResult struct {
	Channels []models.Channel `json:"channels" yaml:"channels"`
	Count    int              `json:"count" yaml:"count"`
	Total    int              `json:"total" yaml:"total"`
}

var (
	channelsPreview bool
	channelsWidth   int
)

// NewChannelsCommand creates the channels command
func NewChannelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channels",
		Short: "List the server's channels",
		Long: `List the server's channels with their descriptions and links.

Examples:
  # Every channel
  fanhub channels

  # Only the channels shown on the home page preview
  fanhub channels --preview

  # As YAML
  fanhub channels -o yaml`,
		Args: cobra.NoArgs,
		RunE: runChannels,
	}

	cmd.Flags().BoolVarP(&channelsPreview, "preview", "p", false, fmt.Sprintf("Show only the first %d channels", channels.PreviewSize))
	cmd.Flags().IntVar(&channelsWidth, "width", 80, "Wrap descriptions at this width")

	return cmd
}

func runChannels(cmd *cobra.Command, args []string) error {
	cc, err := commandContext(cmd)
	if err != nil {
		return err
	}
	client, err := cc.Client()
	if err != nil {
		return err
	}

	ctx, cancel := cli.SignalContext(cmd.Context())
	defer cancel()

	all, err := client.Channels(ctx)
	if err != nil {
		return fmt.Errorf("failed to load channels: %w", err)
	}

	shown := all
	if channelsPreview {
		shown = channels.Preview(all)
	}
	result := ChannelsResult{Channels: shown, Count: len(shown), Total: len(all)}

	w := cmd.OutOrStdout()
	format := outputFormat(cmd)
	if format != string(cli.FormatText) {
		return cli.OutputResults(w, format, result)
	}

	if len(shown) == 0 {
		cli.PrintInfo("No channels yet")
		return nil
	}
	fmt.Fprint(w, channels.RenderList(shown, channelsWidth))
	if result.Count < result.Total {
		fmt.Fprintf(w, "\n%d of %d channels\n", result.Count, result.Total)
	}
	return nil
}
