package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fanhub/fanhub-terminal/internal/cli"
	"github.com/fanhub/fanhub-terminal/pkg/gallery"
	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// CollectionResult represents the output structure for gallery and jenna
type CollectionResult struct {
	Collection models.CollectionKind `json:"collection" yaml:"collection"`
	Category   string                `json:"category" yaml:"category"`
	Items      []CollectionItem      `json:"items" yaml:"items"`
	Count      int                   `json:"count" yaml:"count"`
	Total      int                   `json:"total" yaml:"total"`
}

// CollectionItem is one image in the listing
type CollectionItem struct {
	Label      string `json:"label" yaml:"label"`
	URL        string `json:"url" yaml:"url"`
	Alt        string `json:"alt" yaml:"alt"`
	UploadedAt string `json:"uploaded_at,omitempty" yaml:"uploaded_at,omitempty"`
}

var collectionURLsOnly bool

// NewGalleryCommand creates the gallery command
func NewGalleryCommand() *cobra.Command {
	return newCollectionCommand(models.CollectionGallery, `List the fan gallery, optionally filtered by category.
Gallery uploads are classified by uploader name, or by filename when the
uploader is missing.

Examples:
  # List the whole gallery
  fanhub gallery

  # Only fan art
  fanhub gallery fan-art

  # Print only image URLs
  fanhub gallery memes --urls

  # Output as JSON
  fanhub gallery -o json`)
}

// NewJennaCommand creates the jenna command
func NewJennaCommand() *cobra.Command {
	return newCollectionCommand(models.CollectionJenna, `List the Jenna collection, optionally filtered by category.
Jenna images are classified by their URL.

Examples:
  # List every Jenna image
  fanhub jenna

  # Only red carpet looks
  fanhub jenna red-carpet -o yaml`)
}

// categoryHelp lists kind's categories with the keywords they match
func categoryHelp(kind models.CollectionKind) string {
	var b strings.Builder
	b.WriteString("Categories:\n")
	fmt.Fprintf(&b, "  %-14s - Everything (default)\n", gallery.CategoryAll)
	for _, r := range gallery.Rules(kind) {
		desc := "Everything"
		if !r.MatchAll {
			desc = "Matches " + strings.Join(r.Keywords, ", ")
		}
		fmt.Fprintf(&b, "  %-14s - %s\n", r.Category, desc)
	}
	return b.String()
}

// warnUnknownCategory notes a category outside the filter table; the
// filter then shows the whole collection
func warnUnknownCategory(kind models.CollectionKind, category string) {
	if err := cli.ValidateCategory(kind, category); err != nil {
		cli.PrintWarning("%v, showing all images", err)
	}
}

func newCollectionCommand(kind models.CollectionKind, long string) *cobra.Command {
	cmd := &cobra.Command{
		Use:       string(kind) + " [category]",
		Short:     fmt.Sprintf("List the %s collection", kind),
		Long:      strings.Replace(long, "\n\nExamples:", "\n\n"+categoryHelp(kind)+"\nExamples:", 1),
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: gallery.Categories(kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := gallery.CategoryAll
			if len(args) > 0 {
				category = strings.ToLower(args[0])
			}
			warnUnknownCategory(kind, category)
			return runCollection(cmd, kind, category)
		},
	}

	cmd.Flags().BoolVar(&collectionURLsOnly, "urls", false, "Print only image URLs")

	return cmd
}

func runCollection(cmd *cobra.Command, kind models.CollectionKind, category string) error {
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

	records, err := client.Collection(ctx, kind)
	if err != nil {
		return fmt.Errorf("%s: %w", strings.TrimSuffix(gallery.FailureMessage(kind), "."), err)
	}

	filtered := gallery.Filter(kind, records, category)
	result := CollectionResult{
		Collection: kind,
		Category:   category,
		Items:      make([]CollectionItem, 0, len(filtered)),
		Count:      len(filtered),
		Total:      len(records),
	}
	for i, item := range gallery.Items(kind, filtered) {
		ci := CollectionItem{
			Label: item.Label,
			URL:   client.ResolveURL(item.Source),
			Alt:   item.Alt,
		}
		if t := filtered[i].UploadedAt; !t.IsZero() {
			ci.UploadedAt = t.Local().Format("2006-01-02 15:04")
		}
		result.Items = append(result.Items, ci)
	}

	w := cmd.OutOrStdout()
	format := outputFormat(cmd)
	if format != string(cli.FormatText) {
		return cli.OutputResults(w, format, result)
	}

	if collectionURLsOnly {
		for _, item := range result.Items {
			fmt.Fprintln(w, item.URL)
		}
		return nil
	}

	if result.Count == 0 {
		cli.PrintInfo("No %s images match %q", kind, category)
		return nil
	}

	table := cli.NewTableFormatter(w)
	table.Header("#", "LABEL", "UPLOADED", "URL")
	for i, item := range result.Items {
		table.Row(strconv.Itoa(i+1), cli.TruncateString(item.Label, 30), cli.OrDash(item.UploadedAt), item.URL)
	}
	table.Flush()

	fmt.Fprintf(w, "\n%s of %s %s images (%s)\n", cli.FormatCount(result.Count), cli.FormatCount(result.Total), kind, category)
	return nil
}
