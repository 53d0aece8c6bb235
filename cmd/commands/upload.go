package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fanhub/fanhub-terminal/internal/cli"
	"github.com/fanhub/fanhub-terminal/pkg/upload"
)

// UploadResult represents the output structure for the upload command
type UploadResult struct {
	Results   []upload.Result `json:"results" yaml:"results"`
	Succeeded int             `json:"succeeded" yaml:"succeeded"`
	Failed    int             `json:"failed" yaml:"failed"`
}

var (
	uploadUploader string
	uploadExclude  []string
	uploadDryRun   bool
)

// NewUploadCommand creates the upload command
func NewUploadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file|glob>...",
		Short: "Submit images to the fan gallery",
		Long: `Submit one or more images to the fan gallery. Uploads wait for a
moderator before they appear.

Arguments may be glob patterns, including "**" to match nested
directories. Quote patterns so the shell leaves them alone.

Examples:
  # Upload one image as "anonymous"
  fanhub upload sketch.png

  # Upload a folder of fan art under your name
  fanhub upload 'art/**/*.{png,jpg}' --uploader artlover99

  # Skip drafts
  fanhub upload 'art/*.png' --exclude '*-draft.png'

  # List what would be uploaded
  fanhub upload 'art/**/*.png' --dry-run`,
		RunE: runUpload,
	}

	cmd.Flags().StringVarP(&uploadUploader, "uploader", "u", "", "Name to credit (default \"anonymous\")")
	cmd.Flags().StringSliceVarP(&uploadExclude, "exclude", "x", nil, "Glob patterns to skip")
	cmd.Flags().BoolVar(&uploadDryRun, "dry-run", false, "List the files without uploading")

	return cmd
}

func runUpload(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New(upload.StatusNoFile)
	}

	paths, err := upload.Expand(args)
	if err != nil {
		return err
	}
	if len(uploadExclude) > 0 {
		kept := paths[:0]
		for _, p := range paths {
			if !upload.Match(uploadExclude, p) {
				kept = append(kept, p)
			}
		}
		paths = kept
	}
	if len(paths) == 0 {
		return errors.New(upload.StatusNoFile)
	}
	for _, p := range paths {
		if err := cli.ValidateFilePath(p); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	if uploadDryRun {
		table := cli.NewTableFormatter(w)
		table.Header("FILE", "SIZE")
		var total int64
		for _, p := range paths {
			info, err := os.Stat(p)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", p, err)
			}
			total += info.Size()
			table.Row(p, cli.FormatBytes(info.Size()))
		}
		table.Flush()
		fmt.Fprintf(w, "\n%d files, %s\n", len(paths), cli.FormatBytes(total))
		return nil
	}

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

	var reporter upload.Reporter = upload.NopReporter{}
	if len(paths) > 1 {
		reporter = upload.NewReporter(cmd.ErrOrStderr())
	}
	results := upload.SubmitAll(ctx, client, uploadUploader, paths, reporter)

	summary := UploadResult{Results: results}
	for _, r := range results {
		if r.OK {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	format := outputFormat(cmd)
	if format != string(cli.FormatText) {
		if err := cli.OutputResults(w, format, summary); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.OK {
				cli.PrintSuccess("%s: %s", r.Path, r.Status)
			} else {
				cli.PrintError("%s: %s", r.Path, r.Status)
			}
		}
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", summary.Failed, len(results))
	}
	return nil
}
