package memdump

import "strings"

// DefaultMarkers are the command echoes that precede a U-Boot memory display.
var DefaultMarkers = []string{"md 0x", "md.b 0x"}

// StripHeader removes the console preamble in front of the dump. The first
// line containing one of markers (a literal substring match) is the command
// echo: it is dropped together with every line before it, the line right
// after it, and the last line of the input, which is the prompt printed when
// the command returns. When no marker is present the lines are returned
// unchanged. The result is not validated.
func StripHeader(lines []string, markers []string) []string {
	idx := markerIndex(lines, markers)
	if idx < 0 {
		return lines
	}
	data := dropLeading(lines, idx+1) // preamble and command echo
	data = dropLeading(data, 1)       // line echoed after the command
	return dropTrailer(data)
}

func markerIndex(lines []string, markers []string) int {
	for i, line := range lines {
		for _, m := range markers {
			if m != "" && strings.Contains(line, m) {
				return i
			}
		}
	}
	return -1
}

func dropLeading(lines []string, n int) []string {
	if n >= len(lines) {
		return nil
	}
	return lines[n:]
}

func dropTrailer(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	return lines[:len(lines)-1]
}
