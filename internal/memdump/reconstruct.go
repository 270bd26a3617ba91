// Package memdump rebuilds a binary memory image from the console log of a
// bootloader memory display command (U-Boot "md").
//
// Every data line is checked against the ones before it: addresses must
// advance by exactly one line width, each line must carry exactly one line
// width of bytes, and a byte value must always be rendered with the same
// ASCII character. The first violation aborts the reconstruction.
package memdump

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// DefaultBytesPerLine is the line width printed by "md.b".
	DefaultBytesPerLine = 16

	// MaxBytesPerLine bounds the line width so that a full dump line fits
	// in the ReadLines buffer.
	MaxBytesPerLine = 4096

	maxLineLength = 1024 * 1024
)

// Options configures a reconstruction pass.
type Options struct {
	// BytesPerLine is both the payload size and the address stride of a line.
	BytesPerLine int
	// Markers identify the command echo line. Nil means DefaultMarkers.
	Markers []string
	// Logger receives debug tracing.
	Logger zerolog.Logger
	// OnProgress, if set, is called after each accepted data line.
	OnProgress func(done, total int)
}

// DefaultOptions returns options for a 16 byte wide "md.b" dump.
func DefaultOptions() Options {
	return Options{
		BytesPerLine: DefaultBytesPerLine,
		Markers:      DefaultMarkers,
		Logger:       zerolog.Nop(),
	}
}

// Image is a reconstructed memory image.
type Image struct {
	// Start is the address of the first byte.
	Start uint32
	// End is the address one past the last byte, i.e. the final address cursor.
	End          uint64
	Lines        int
	BytesPerLine int
	Data         []byte
}

// Reconstructor holds the cross-line state of one pass: the next expected
// address and the byte-to-character map. It is not safe for concurrent use.
type Reconstructor struct {
	bytesPerLine int
	next         *uint64
	chars        *CharMap
	lines        int
}

// NewReconstructor returns a Reconstructor for lines of bytesPerLine bytes.
func NewReconstructor(bytesPerLine int) (*Reconstructor, error) {
	if bytesPerLine <= 0 || bytesPerLine > MaxBytesPerLine {
		return nil, fmt.Errorf("bytes per line must be between 1 and %d, got %d", MaxBytesPerLine, bytesPerLine)
	}
	return &Reconstructor{
		bytesPerLine: bytesPerLine,
		chars:        NewCharMap(),
	}, nil
}

// Feed decodes the next data line and advances the address cursor. On error
// the cursor and character map are left as they were.
func (r *Reconstructor) Feed(line string) (Chunk, error) {
	chunk, err := DecodeLine(line, r.next, r.bytesPerLine, r.chars)
	if err != nil {
		if perr, ok := err.(*ParseError); ok {
			perr.Line = r.lines + 1
		}
		return Chunk{}, err
	}
	next := uint64(chunk.Address) + uint64(r.bytesPerLine)
	r.next = &next
	r.lines++
	return chunk, nil
}

// Next returns the address the next line must start at. ok is false before
// the first line has been accepted.
func (r *Reconstructor) Next() (addr uint64, ok bool) {
	if r.next == nil {
		return 0, false
	}
	return *r.next, true
}

// CharMap returns the byte-to-character map built so far.
func (r *Reconstructor) CharMap() *CharMap {
	return r.chars
}

// Lines returns the number of accepted lines.
func (r *Reconstructor) Lines() int {
	return r.lines
}

// Reconstruct strips the console header from lines and decodes the rest in
// order. No image is returned if any line is rejected.
func Reconstruct(lines []string, opts Options) (*Image, error) {
	r, err := NewReconstructor(opts.BytesPerLine)
	if err != nil {
		return nil, err
	}

	markers := opts.Markers
	if markers == nil {
		markers = DefaultMarkers
	}
	data := StripHeader(lines, markers)
	opts.Logger.Debug().
		Int("input_lines", len(lines)).
		Int("data_lines", len(data)).
		Msg("Stripped console header")

	img := &Image{
		BytesPerLine: opts.BytesPerLine,
		Data:         make([]byte, 0, len(data)*opts.BytesPerLine),
	}
	for i, line := range data {
		chunk, err := r.Feed(line)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			img.Start = chunk.Address
		}
		img.Data = append(img.Data, chunk.Data...)
		if opts.OnProgress != nil {
			opts.OnProgress(i+1, len(data))
		}
	}

	img.Lines = r.Lines()
	if next, ok := r.Next(); ok {
		img.End = next
	}
	return img, nil
}

// ReadLines splits a log into lines without their line terminators. Carriage
// returns left by serial console captures are removed.
func ReadLines(rd io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	return lines, nil
}
