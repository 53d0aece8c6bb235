package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fanhub/fanhub-terminal/internal/cli"
	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// NewSiteCommand creates the site command
func NewSiteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Show the site banner and profile picture",
		Long: `Show the URLs of the site's current banner and profile picture.

Examples:
  fanhub site
  fanhub site -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			assets, err := client.Site(ctx)
			if err != nil {
				return fmt.Errorf("failed to load site assets: %w", err)
			}
			resolved := models.SiteAssets{
				Banner: client.ResolveURL(assets.Banner),
				PFP:    client.ResolveURL(assets.PFP),
			}

			w := cmd.OutOrStdout()
			format := outputFormat(cmd)
			if format != string(cli.FormatText) {
				return cli.OutputResults(w, format, resolved)
			}

			table := cli.NewTableFormatter(w)
			table.Header("ASSET", "URL")
			table.Row("Banner", cli.OrDash(resolved.Banner))
			table.Row("PFP", cli.OrDash(resolved.PFP))
			table.Flush()
			return nil
		},
	}

	return cmd
}
