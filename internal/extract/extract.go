// Package extract hands a reconstructed image to an external signature
// scanner (binwalk) that carves embedded files out of it.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Config configures the scanner invocation.
type Config struct {
	// Binary is the scanner executable, looked up in PATH when not absolute.
	Binary string
	// Dir is the output directory. Empty means the scanner default, which is
	// next to the image.
	Dir string
}

// Result describes a finished scan.
type Result struct {
	Dir    string
	Output string
}

// Extractor runs the scanner. The scanner's own console output is captured
// instead of being interleaved with ours.
type Extractor struct {
	cfg    Config
	logger zerolog.Logger
}

// New creates an Extractor.
func New(cfg Config, logger zerolog.Logger) *Extractor {
	return &Extractor{
		cfg:    cfg,
		logger: logger.With().Str("component", "extract").Logger(),
	}
}

// Available reports whether the scanner binary can be found.
func (e *Extractor) Available() (string, error) {
	path, err := exec.LookPath(e.cfg.Binary)
	if err != nil {
		return "", fmt.Errorf("signature scanner %q not found: %w", e.cfg.Binary, err)
	}
	return path, nil
}

// Args returns the scanner arguments for imagePath.
func (e *Extractor) Args(imagePath string) []string {
	args := []string{"--signature", "--extract", "--quiet"}
	if e.cfg.Dir != "" {
		args = append(args, "--directory", e.cfg.Dir)
	}
	return append(args, imagePath)
}

// Run scans and extracts imagePath. Cancelling ctx kills the scanner.
func (e *Extractor) Run(ctx context.Context, imagePath string) (*Result, error) {
	binary, err := e.Available()
	if err != nil {
		return nil, err
	}

	if e.cfg.Dir != "" {
		//nolint:gosec // G301: Extracted trees need standard permissions for traversal
		if err := os.MkdirAll(e.cfg.Dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create extraction directory: %w", err)
		}
	}

	args := e.Args(imagePath)
	e.logger.Debug().
		Str("binary", binary).
		Strs("args", args).
		Msg("Running signature scanner")

	var out bytes.Buffer
	// #nosec G204 -- binary comes from configuration, image path from the user.
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("signature scan cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("signature scan failed: %w: %s", err, lastLine(out.String()))
	}

	dir := e.cfg.Dir
	if dir == "" {
		dir = defaultDir(imagePath)
	}

	e.logger.Debug().
		Str("dir", dir).
		Int("output_bytes", out.Len()).
		Msg("Signature scan finished")

	return &Result{Dir: dir, Output: out.String()}, nil
}

// defaultDir is where binwalk puts extractions when no directory is given:
// _<image name>.extracted next to the image.
func defaultDir(imagePath string) string {
	return filepath.Join(filepath.Dir(imagePath), "_"+filepath.Base(imagePath)+".extracted")
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
