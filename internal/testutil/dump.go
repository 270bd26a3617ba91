package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mdimage/mdimage/internal/memdump"
)

// WriteDumpLog renders data as a console transcript of "md.b" and writes it
// to a file in a fresh temporary directory. It returns the log path.
func WriteDumpLog(t *testing.T, addr uint32, data []byte, bytesPerLine int) string {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("U-Boot 2023.04 (Apr 01 2023 - 00:00:00 +0000)\n")
	if err := memdump.Encode(&buf, addr, data, memdump.EncodeOptions{
		BytesPerLine: bytesPerLine,
		Header:       true,
	}); err != nil {
		t.Fatalf("failed to encode dump: %v", err)
	}

	path := filepath.Join(t.TempDir(), "dump.log")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// WriteFile writes content to name in a fresh temporary directory.
func WriteFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
