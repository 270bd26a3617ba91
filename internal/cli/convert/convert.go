// Package convert implements the 'mdimage convert' command.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/zeebo/xxh3"

	"github.com/mdimage/mdimage/internal/cli/helpers"
	"github.com/mdimage/mdimage/internal/config"
	"github.com/mdimage/mdimage/internal/constants"
	mderrors "github.com/mdimage/mdimage/internal/errors"
	"github.com/mdimage/mdimage/internal/extract"
	"github.com/mdimage/mdimage/internal/memdump"
	"github.com/mdimage/mdimage/internal/safe"
)

var supportedFormats = []helpers.OutputFormat{
	helpers.FormatTable,
	helpers.FormatJSON,
	helpers.FormatYAML,
}

// Report summarizes a finished conversion.
type Report struct {
	RunID        string `header:"Run" json:"run_id" yaml:"run_id"`
	Input        string `header:"Input" json:"input" yaml:"input"`
	Output       string `header:"Output" json:"output" yaml:"output"`
	Lines        int    `header:"Lines" json:"lines" yaml:"lines"`
	Bytes        int    `header:"Bytes" json:"bytes" yaml:"bytes"`
	BytesPerLine int    `header:"Bytes/line" json:"bytes_per_line" yaml:"bytes_per_line"`
	Start        string `header:"Start" json:"start" yaml:"start"`
	End          string `header:"End" json:"end" yaml:"end"`
	XXH3         string `header:"XXH3" json:"xxh3" yaml:"xxh3"`
	Extracted    string `header:"Extracted" json:"extracted,omitempty" yaml:"extracted,omitempty"`
}

// Options configures a conversion.
type Options struct {
	Config   *config.Config
	LogFile  string
	Progress bool
	Logger   zerolog.Logger
	// Stderr receives the progress bar.
	Stderr io.Writer
}

// NewConvertCmd creates the convert command.
func NewConvertCmd() *cobra.Command {
	var (
		format     string
		noProgress bool
	)

	cmd := &cobra.Command{
		Use:   "convert <logfile>",
		Short: "Rebuild a binary image from a memory dump log",
		Long: `Rebuild a binary image from the console log of a U-Boot memory display
command ("md.b 0x<addr> 0x<len>").

Everything up to the command echo (and the line after it) is skipped, as is
the final prompt line. Each remaining line must look like

  80000000: 27 05 19 56 a5 c1 3b 5a 5f 2b 1c 8e 00 1d 3e 40    '..V..;Z_+....>@

Addresses must be contiguous, every line must carry --bytes-per-line bytes
and the hex and ASCII columns must agree across the whole log. The first bad
line aborts the conversion; no image is written.

With --extract the image is handed to binwalk afterwards.`,
		Example: `  mdimage convert boot.log
  mdimage convert boot.log -o flash.bin --extract
  mdimage convert boot.log -l 32 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := helpers.ValidateFormat(format, supportedFormats); err != nil {
				return err
			}

			cfg, src, err := helpers.LoadConfig(cmd)
			if err != nil {
				return err
			}

			logger := helpers.NewLogger(cmd, cfg, "convert")
			logger.Debug().
				Str("file", src.File).
				Strs("env", src.Env).
				Strs("flags", src.Flags).
				Msg("Configuration loaded")

			progress := !noProgress
			if f, ok := cmd.ErrOrStderr().(*os.File); !ok || !helpers.IsTerminal(f) {
				progress = false
			}

			report, err := Run(cmd.Context(), Options{
				Config:   cfg,
				LogFile:  args[0],
				Progress: progress,
				Logger:   logger,
				Stderr:   cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}

			formatter, err := helpers.NewFormatter(helpers.OutputFormat(format))
			if err != nil {
				return err
			}
			if format == string(helpers.FormatTable) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), helpers.HeadingStyle.Render("Image reconstructed"))
			}
			return formatter.Format(report, cmd.OutOrStdout())
		},
	}

	helpers.AddBytesPerLineFlag(cmd)
	cmd.Flags().StringP(config.FlagOutput, "o", constants.DefaultOutputFile, "File to store the image")
	cmd.Flags().StringSlice(config.FlagMarker, nil, "Command echo that starts the dump (repeatable, default \"md 0x\", \"md.b 0x\")")
	cmd.Flags().Int64(config.FlagMaxLogSize, constants.DefaultMaxLogSize, "Largest accepted log file in bytes")
	cmd.Flags().Bool(config.FlagExtract, false, "Run a signature scan and extract embedded files")
	cmd.Flags().String(config.FlagExtractBinary, constants.DefaultExtractBinary, "Signature scanner executable")
	cmd.Flags().String(config.FlagExtractDir, "", "Directory for extracted files")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Do not draw a progress bar")
	helpers.AddFormatFlag(cmd, &format, helpers.FormatTable, supportedFormats)

	return cmd
}

// Run reads opts.LogFile, reconstructs the image, writes it to the configured
// output and optionally extracts it. Nothing is written when the log is
// rejected.
func Run(ctx context.Context, opts Options) (*Report, error) {
	cfg := opts.Config
	runID := uuid.New().String()
	logger := opts.Logger.With().Str("run_id", runID).Logger()

	f, err := safe.OpenFile(opts.LogFile, &safe.ReadOptions{MaxSize: cfg.MaxLogSize})
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	defer mderrors.DeferClose(logger, f, "failed to close log file")

	lines, err := memdump.ReadLines(f)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("log", opts.LogFile).
		Int("lines", len(lines)).
		Int("bytes_per_line", cfg.BytesPerLine).
		Msg("Repairing image")

	stderr := opts.Stderr
	if stderr == nil {
		stderr = io.Discard
	}
	bar := helpers.NewProgress(stderr, "Repairing image", opts.Progress)

	img, err := memdump.Reconstruct(lines, memdump.Options{
		BytesPerLine: cfg.BytesPerLine,
		Markers:      cfg.Markers,
		Logger:       logger,
		OnProgress:   bar.Update,
	})
	bar.Done()
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct image from %s: %w", opts.LogFile, err)
	}

	if err := safe.WriteFileAtomic(cfg.Output, img.Data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write image: %w", err)
	}

	report := &Report{
		RunID:        runID,
		Input:        opts.LogFile,
		Output:       cfg.Output,
		Lines:        img.Lines,
		Bytes:        len(img.Data),
		BytesPerLine: img.BytesPerLine,
		Start:        fmt.Sprintf("0x%08x", img.Start),
		End:          fmt.Sprintf("0x%08x", img.End),
		XXH3:         fmt.Sprintf("%016x", xxh3.Hash(img.Data)),
	}

	logger.Info().
		Str("output", cfg.Output).
		Int("bytes", report.Bytes).
		Str("xxh3", report.XXH3).
		Msg("Image written")

	if cfg.Extract.Enabled {
		logger.Info().Str("scanner", cfg.Extract.Binary).Msg("Extracting")
		res, err := extract.New(extract.Config{
			Binary: cfg.Extract.Binary,
			Dir:    cfg.Extract.Dir,
		}, logger).Run(ctx, cfg.Output)
		if err != nil {
			return nil, mderrors.WithHint(
				fmt.Errorf("image written to %s but extraction failed: %w", cfg.Output, err),
				"install binwalk or rerun without --extract")
		}
		report.Extracted = res.Dir
	}

	return report, nil
}
