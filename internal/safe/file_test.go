package safe

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestReadFile(t *testing.T) {
	t.Run("reads regular file", func(t *testing.T) {
		tmpDir := t.TempDir()
		src := filepath.Join(tmpDir, "dump.log")
		content := []byte("00001000: 41    A\n")

		if err := os.WriteFile(src, content, 0o644); err != nil {
			t.Fatal(err)
		}

		got, err := ReadFile(src, nil)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}

		if string(got) != string(content) {
			t.Errorf("got %q, want %q", got, content)
		}
	})

	t.Run("rejects symlink by default", func(t *testing.T) {
		tmpDir := t.TempDir()
		src := filepath.Join(tmpDir, "dump.log")
		link := filepath.Join(tmpDir, "link.log")

		if err := os.WriteFile(src, []byte("test"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.Symlink(src, link); err != nil {
			t.Fatal(err)
		}

		if _, err := ReadFile(link, nil); err == nil {
			t.Fatal("expected error for symlink, got nil")
		}
	})

	t.Run("allows symlink when enabled", func(t *testing.T) {
		tmpDir := t.TempDir()
		src := filepath.Join(tmpDir, "dump.log")
		link := filepath.Join(tmpDir, "link.log")

		if err := os.WriteFile(src, []byte("test"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.Symlink(src, link); err != nil {
			t.Fatal(err)
		}

		got, err := ReadFile(link, &ReadOptions{AllowSymlinks: true})
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if string(got) != "test" {
			t.Errorf("got %q, want %q", got, "test")
		}
	})

	t.Run("rejects file exceeding max size", func(t *testing.T) {
		tmpDir := t.TempDir()
		src := filepath.Join(tmpDir, "dump.log")

		if err := os.WriteFile(src, make([]byte, 1024), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := ReadFile(src, &ReadOptions{MaxSize: 512}); err == nil {
			t.Fatal("expected error for oversized file, got nil")
		}
	})

	t.Run("rejects directory", func(t *testing.T) {
		if _, err := ReadFile(t.TempDir(), nil); err == nil {
			t.Fatal("expected error for directory, got nil")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.log"), nil); !os.IsNotExist(err) {
			t.Fatalf("expected not-exist error, got %v", err)
		}
	})
}

func TestOpenFile(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "dump.log")
	if err := os.WriteFile(src, []byte("line\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := OpenFile(src, nil)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer f.Close()

	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "line\n" {
		t.Errorf("got %q", got)
	}

	if _, err := OpenFile(src, &ReadOptions{MaxSize: 2}); err == nil {
		t.Fatal("expected error for oversized file, got nil")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	t.Run("writes and replaces", func(t *testing.T) {
		tmpDir := t.TempDir()
		dst := filepath.Join(tmpDir, "output.bin")

		if err := os.WriteFile(dst, []byte("old content"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := WriteFileAtomic(dst, []byte{0xde, 0xad}, 0o600); err != nil {
			t.Fatalf("WriteFileAtomic failed: %v", err)
		}

		got, err := os.ReadFile(dst)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "\xde\xad" {
			t.Errorf("got %x", got)
		}

		info, err := os.Stat(dst)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("got permissions %o, want %o", perm, 0o600)
		}

		entries, err := os.ReadDir(tmpDir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("expected only the output file, found %d entries", len(entries))
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		dst := filepath.Join(t.TempDir(), "missing", "output.bin")
		if err := WriteFileAtomic(dst, []byte{1}, 0); err == nil {
			t.Fatal("expected error for missing directory, got nil")
		}
	})
}
