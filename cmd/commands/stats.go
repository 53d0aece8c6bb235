package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fanhub/fanhub-terminal/internal/cli"
	"github.com/fanhub/fanhub-terminal/pkg/gallery"
	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// statsNow is replaced in tests
var statsNow = time.Now

// NewStatsCommand creates the stats command
func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show collection totals and today's uploads",
		Long: `Fetch both collections and show the counters from the site header:
the gallery total, how many gallery images were uploaded today (local
time), the Jenna total and when the numbers were collected.

Examples:
  fanhub stats
  fanhub stats -o json`,
		Args: cobra.NoArgs,
		RunE: runStats,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
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

	var galleryRecords, jennaRecords []models.ImageRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := client.Gallery(gctx)
		if err != nil {
			return fmt.Errorf("failed to load gallery: %w", err)
		}
		galleryRecords = records
		return nil
	})
	g.Go(func() error {
		records, err := client.Jenna(gctx)
		if err != nil {
			return fmt.Errorf("failed to load jenna images: %w", err)
		}
		jennaRecords = records
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	stats := gallery.Snapshot(galleryRecords, jennaRecords, statsNow())

	w := cmd.OutOrStdout()
	format := outputFormat(cmd)
	if format != string(cli.FormatText) {
		return cli.OutputResults(w, format, stats)
	}

	table := cli.NewTableFormatter(w)
	table.Header("COUNTER", "VALUE")
	table.Row("Gallery", stats.GalleryCount)
	table.Row("Today", fmt.Sprintf("%d", stats.TodayCount))
	table.Row("Jenna", stats.JennaCount)
	table.Row("Last collect", stats.LastCollect)
	table.Flush()
	return nil
}
