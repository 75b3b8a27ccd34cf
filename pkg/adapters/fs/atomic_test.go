package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("Creates New File", func(t *testing.T) {
		dir := t.TempDir()
		filename := filepath.Join(dir, "notes.json")

		if err := writeFileAtomic(filename, []byte(`[]`), 0o644); err != nil {
			t.Fatalf("writeFileAtomic failed: %v", err)
		}

		got, err := os.ReadFile(filename)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if string(got) != `[]` {
			t.Errorf("expected content '[]', got %q", got)
		}
	})

	t.Run("Replaces Existing File", func(t *testing.T) {
		dir := t.TempDir()
		filename := filepath.Join(dir, "notes.json")
		if err := os.WriteFile(filename, []byte("old snapshot"), 0o644); err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		if err := writeFileAtomic(filename, []byte("new snapshot"), 0o644); err != nil {
			t.Fatalf("writeFileAtomic failed: %v", err)
		}

		got, _ := os.ReadFile(filename)
		if string(got) != "new snapshot" {
			t.Errorf("expected 'new snapshot', got %q", got)
		}
	})

	t.Run("Leaves No Temp Files", func(t *testing.T) {
		dir := t.TempDir()
		for i := 0; i < 3; i++ {
			if err := writeFileAtomic(filepath.Join(dir, "notes.json"), []byte("x"), 0o600); err != nil {
				t.Fatalf("write %d failed: %v", i, err)
			}
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), TempFilePrefix) {
				t.Errorf("temp file left behind: %s", e.Name())
			}
		}
		if len(entries) != 1 {
			t.Errorf("expected exactly one file, got %d", len(entries))
		}
	})

	t.Run("Fails if Directory Missing", func(t *testing.T) {
		dir := t.TempDir()
		err := writeFileAtomic(filepath.Join(dir, "missing", "notes.json"), []byte("x"), 0o644)
		if err == nil {
			t.Error("expected error when directory is missing, got nil")
		}
	})
}
