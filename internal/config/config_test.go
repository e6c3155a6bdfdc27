package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFileAppliesDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "girsurface.yaml")
	if err := os.WriteFile(path, []byte("out_dir: build/types\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.OutDir != "build/types" {
		t.Errorf("got OutDir %q, want build/types", c.OutDir)
	}
	if c.Environment != "gjs" {
		t.Errorf("expected default environment gjs, got %q", c.Environment)
	}
	if len(c.GIRDirectories) == 0 {
		t.Error("expected a default GIR search path")
	}
	if c.Inheritance {
		t.Error("expected the interface-plus-constructor decomposition to default off")
	}
}

func TestLoadFromFileMissingFile(t *testing.T) {
	t.Parallel()
	if _, err := LoadFromFile("/nonexistent/girsurface.yaml"); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
