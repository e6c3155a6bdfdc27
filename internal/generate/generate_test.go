package generate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/girsurface/girsurface/internal/config"
	"github.com/girsurface/girsurface/internal/emit"
)

const gobjectGIR = `<?xml version="1.0"?>
<repository version="1.2">
  <namespace name="GObject" version="2.0">
    <class name="Object"/>
  </namespace>
</repository>`

const gtkGIR = `<?xml version="1.0"?>
<repository version="1.2">
  <include name="GObject" version="2.0"/>
  <namespace name="Gtk" version="4.0">
    <class name="Widget" parent="GObject.Object">
      <property name="visible" writable="1"/>
    </class>
  </namespace>
</repository>`

func writeGirFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestRunEmitsOneFilePerModule(t *testing.T) {
	t.Parallel()
	girDir := t.TempDir()
	outDir := t.TempDir()
	writeGirFile(t, girDir, "GObject-2.0.gir", gobjectGIR)
	writeGirFile(t, girDir, "Gtk-4.0.gir", gtkGIR)

	cfg := &config.Config{
		Environment:    "gjs",
		GIRDirectories: []string{girDir},
		OutDir:         outDir,
	}

	summary, err := Run(Options{Cfg: cfg, Overrides: emit.Overrides{}})
	require.NoError(t, err)
	require.Equal(t, 2, summary.ModulesEmitted)

	gtkOut, err := os.ReadFile(filepath.Join(outDir, "Gtk-4.0.d.ts"))
	require.NoError(t, err)
	require.Contains(t, string(gtkOut), "export class Widget")

	gtkStub, err := os.ReadFile(filepath.Join(outDir, "Gtk-4.0.js"))
	require.NoError(t, err)
	require.Contains(t, string(gtkStub), "imports.gi.Gtk")
}

func TestRunHonorsBuildTypeAndInheritanceConfig(t *testing.T) {
	t.Parallel()
	girDir := t.TempDir()
	outDir := t.TempDir()
	writeGirFile(t, girDir, "GObject-2.0.gir", gobjectGIR)
	writeGirFile(t, girDir, "Gtk-4.0.gir", gtkGIR)

	cfg := &config.Config{
		Environment:    "gjs",
		BuildType:      "types",
		Inheritance:    true,
		GIRDirectories: []string{girDir},
		OutDir:         outDir,
	}

	_, err := Run(Options{Cfg: cfg, Overrides: emit.Overrides{}})
	require.NoError(t, err)

	gtkOut, err := os.ReadFile(filepath.Join(outDir, "Gtk-4.0.d.ts"))
	require.NoError(t, err)
	require.Contains(t, string(gtkOut), "declare namespace Gtk {")
	require.Contains(t, string(gtkOut), "export interface Widget")
	require.Contains(t, string(gtkOut), "export const Widget: {")
}

func TestRunNoGirDocumentsIsAnError(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{
		Environment:    "gjs",
		GIRDirectories: []string{t.TempDir()},
		OutDir:         t.TempDir(),
	}
	_, err := Run(Options{Cfg: cfg})
	require.Error(t, err)
}
