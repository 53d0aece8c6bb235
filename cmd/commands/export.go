package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fanhub/fanhub-terminal/internal/cli"
	"github.com/fanhub/fanhub-terminal/pkg/api"
	"github.com/fanhub/fanhub-terminal/pkg/export"
	"github.com/fanhub/fanhub-terminal/pkg/gallery"
	"github.com/fanhub/fanhub-terminal/pkg/models"
)

var (
	exportCategory string
	exportToFile   string
	exportMarkdown bool
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [gallery|jenna]",
		Short: "Export a collection as a standalone HTML page",
		Long: `Render a collection, optionally filtered, as an HTML page of
lazily loaded images that link to their full-size source.

By default the page is written to <collection>.html in the current
directory. Use --markdown to print the intermediate markdown instead.

Examples:
  # Export the gallery
  fanhub export

  # Export Jenna's red carpet looks to a chosen file
  fanhub export jenna --category red-carpet --file red-carpet.html

  # Print the markdown to stdout
  fanhub export gallery --category memes --markdown`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"gallery", "jenna"},
		RunE:      runExport,
	}

	cmd.Flags().StringVarP(&exportCategory, "category", "c", gallery.CategoryAll, "Filter category")
	cmd.Flags().StringVarP(&exportToFile, "file", "f", "", "Output file (default <collection>.html)")
	cmd.Flags().BoolVar(&exportMarkdown, "markdown", false, "Print markdown to stdout instead of writing HTML")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	kind, err := cli.ParseCollection(name)
	if err != nil {
		return err
	}
	category := strings.ToLower(exportCategory)
	warnUnknownCategory(kind, category)

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

	page := export.NewPage(exportTitle(kind))
	if category != gallery.CategoryAll {
		page.Subtitle = "Filter: " + category
	}

	section := gallery.NewSection(gallery.NewStore(kind, resolvingSource{client}), page, nil)
	if err := section.Load(ctx); err != nil {
		return fmt.Errorf("failed to export %s: %w", kind, err)
	}
	section.SetFilter(category)

	if exportMarkdown {
		_, err := fmt.Fprint(cmd.OutOrStdout(), page.Markdown())
		return err
	}

	out := exportToFile
	if out == "" {
		out = string(kind) + ".html"
	}
	if err := page.WriteFile(out); err != nil {
		return err
	}

	cli.PrintSuccess("Exported %s images to %s", cli.FormatCount(len(page.Items())), out)
	return nil
}

func exportTitle(kind models.CollectionKind) string {
	if kind == models.CollectionJenna {
		return "Jenna Ortega"
	}
	return "Fan Gallery"
}

// resolvingSource makes site-relative image URLs absolute so an exported
// page works outside the site
type resolvingSource struct {
	client *api.Client
}

func (s resolvingSource) Collection(ctx context.Context, kind models.CollectionKind) ([]models.ImageRecord, error) {
	records, err := s.client.Collection(ctx, kind)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].URL = s.client.ResolveURL(records[i].URL)
	}
	return records, nil
}
