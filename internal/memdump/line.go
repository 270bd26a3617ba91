package memdump

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// asciiSeparator splits the hex column from the ASCII column.
	asciiSeparator = "    "
	addressDigits  = 8
)

// Chunk is the decoded payload of one dump line.
type Chunk struct {
	Address uint32
	Data    []byte
}

// DecodeLine parses one dump line (without its newline) of the form
//
//	AAAAAAAA: bb bb ... bb    cccc...
//
// If expected is non-nil the line address must equal it. The hex column must
// hold exactly bytesPerLine bytes and every byte must agree with the ASCII
// rendering recorded in chars. chars is updated only when the line is
// accepted. A nil chars checks the line against itself only.
func DecodeLine(line string, expected *uint64, bytesPerLine int, chars *CharMap) (Chunk, error) {
	if chars == nil {
		chars = NewCharMap()
	}

	data, ascii, ok := strings.Cut(line, asciiSeparator)
	if !ok {
		return Chunk{}, newParseError(KindMalformedLine, line, "no separator between hex and ascii data")
	}

	addrTok, hexTok, ok := splitAddress(data)
	if !ok {
		return Chunk{}, newParseError(KindMalformedLine, line, "no hex data after address")
	}

	addr, err := parseAddress(addrTok)
	if err != nil {
		return Chunk{}, newParseError(KindMalformedLine, line, "%v", err)
	}

	if expected != nil && uint64(addr) != *expected {
		return Chunk{}, newParseError(KindAddressDiscontinuity, line,
			"unexpected address 0x%08x, want 0x%08x", addr, *expected)
	}

	payload, err := decodeHex(hexTok)
	if err != nil {
		return Chunk{}, newParseError(KindMalformedLine, line, "invalid hex data: %v", err)
	}
	if len(payload) != bytesPerLine {
		return Chunk{}, newParseError(KindWrongByteCount, line,
			"unexpected number of bytes %d, want %d", len(payload), bytesPerLine)
	}

	if b, got, prev, ok := chars.apply(payload, []rune(ascii)); !ok {
		return Chunk{}, newParseError(KindHexASCIIMismatch, line,
			"byte 0x%02x rendered as %q, previously %q", b, got, prev)
	}

	return Chunk{Address: addr, Data: payload}, nil
}

// splitAddress splits the data column on its first whitespace run.
func splitAddress(data string) (string, string, bool) {
	data = strings.TrimLeft(data, " \t")
	i := strings.IndexAny(data, " \t")
	if i < 0 {
		return "", "", false
	}
	rest := strings.TrimLeft(data[i:], " \t")
	if rest == "" {
		return "", "", false
	}
	return data[:i], rest, true
}

// decodeHex decodes whitespace separated groups of hex pairs. A group with an
// odd number of digits means a separator landed inside a byte.
func decodeHex(tok string) ([]byte, error) {
	var payload []byte
	for _, field := range strings.Fields(tok) {
		if len(field)%2 != 0 {
			return nil, fmt.Errorf("%q is not a whole number of bytes", field)
		}
		b, err := hex.DecodeString(field)
		if err != nil {
			return nil, err
		}
		payload = append(payload, b...)
	}
	return payload, nil
}

func parseAddress(tok string) (uint32, error) {
	if len(tok) != addressDigits+1 || tok[addressDigits] != ':' {
		return 0, fmt.Errorf("invalid address field %q", tok)
	}
	raw, err := hex.DecodeString(tok[:addressDigits])
	if err != nil {
		return 0, fmt.Errorf("invalid address field %q", tok)
	}
	return binary.BigEndian.Uint32(raw), nil
}
