package discover

import (
	"os"
	"path/filepath"
	"testing"
)

func writeGir(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("<repository/>"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFilesPicksHighestVersionWithinOneDirectory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeGir(t, dir, "Gtk-3.0.gir")
	writeGir(t, dir, "Gtk-4.0.gir")

	entries, err := Files([]string{dir})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one resolved entry for Gtk, got %d: %+v", len(entries), entries)
	}
	if entries[0].Version != "4.0" {
		t.Errorf("got version %q, want 4.0", entries[0].Version)
	}
}

func TestFilesEarlierDirectoryWinsRegardlessOfVersion(t *testing.T) {
	t.Parallel()
	first := t.TempDir()
	second := t.TempDir()
	writeGir(t, first, "Gtk-3.0.gir")
	writeGir(t, second, "Gtk-4.0.gir")

	entries, err := Files([]string{first, second})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(entries) != 1 || entries[0].Version != "3.0" {
		t.Fatalf("expected the first directory's 3.0 to win, got %+v", entries)
	}
}

func TestFilesHonorsGirignore(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeGir(t, dir, "Gtk-4.0.gir")
	writeGir(t, dir, "Excluded-1.0.gir")
	if err := os.WriteFile(filepath.Join(dir, ".girignore"), []byte("Excluded-1.0.gir\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := Files([]string{dir})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	for _, e := range entries {
		if e.Namespace == "Excluded" {
			t.Error("expected Excluded namespace to be ignored via .girignore")
		}
	}
}
