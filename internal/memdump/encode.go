package memdump

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// RenderASCII is the character U-Boot prints for b in the ASCII column.
func RenderASCII(b byte) rune {
	if b >= 0x20 && b <= 0x7e {
		return rune(b)
	}
	return '.'
}

// EncodeOptions controls the layout produced by Encode.
type EncodeOptions struct {
	BytesPerLine int
	// Header wraps the data lines in a console transcript (prompt, command
	// echo, blank line and trailing prompt) that StripHeader removes again.
	Header bool
	Prompt string
}

// Encode writes data as a memory display starting at addr. len(data) must be
// a multiple of opts.BytesPerLine.
func Encode(w io.Writer, addr uint32, data []byte, opts EncodeOptions) error {
	n := opts.BytesPerLine
	if n <= 0 {
		return fmt.Errorf("bytes per line must be positive, got %d", n)
	}
	if len(data)%n != 0 {
		return fmt.Errorf("data length %d is not a multiple of %d", len(data), n)
	}
	if uint64(addr)+uint64(len(data)) > 1<<32 {
		return fmt.Errorf("data overflows 32-bit address space at 0x%08x", addr)
	}
	prompt := opts.Prompt
	if prompt == "" {
		prompt = "=>"
	}

	bw := bufio.NewWriter(w)
	if opts.Header {
		_, _ = fmt.Fprintf(bw, "%s\n%s md.b 0x%08x 0x%x\n\n", prompt, prompt, addr, len(data))
	}

	var sb strings.Builder
	for off := 0; off < len(data); off += n {
		sb.Reset()
		fmt.Fprintf(&sb, "%08x:", addr+uint32(off))
		for _, b := range data[off : off+n] {
			fmt.Fprintf(&sb, " %02x", b)
		}
		sb.WriteString(asciiSeparator)
		for _, b := range data[off : off+n] {
			sb.WriteRune(RenderASCII(b))
		}
		sb.WriteByte('\n')
		if _, err := bw.WriteString(sb.String()); err != nil {
			return err
		}
	}

	if opts.Header {
		_, _ = fmt.Fprintf(bw, "%s\n", prompt)
	}
	return bw.Flush()
}
