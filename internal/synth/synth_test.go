package synth

import (
	"strings"
	"testing"

	"github.com/girsurface/girsurface/internal/girxml"
	"github.com/girsurface/girsurface/internal/inheritance"
	"github.com/girsurface/girsurface/internal/loadmodule"
	"github.com/girsurface/girsurface/internal/model"
	"github.com/girsurface/girsurface/internal/symtab"
	"github.com/girsurface/girsurface/internal/typeresolve"
)

const sampleGIR = `<?xml version="1.0"?>
<repository version="1.2">
  <include name="GObject" version="2.0"/>
  <namespace name="Gtk" version="4.0">
    <class name="Widget" parent="GObject.Object">
      <property name="visible" writable="1"/>
      <method name="show">
        <return-value><type name="none"/></return-value>
      </method>
    </class>
    <class name="Button" parent="Gtk.Widget">
      <method name="activate">
        <return-value><type name="none"/></return-value>
      </method>
    </class>
  </namespace>
</repository>`

func buildDeps(t *testing.T) (*model.Module, Deps) {
	t.Helper()
	repo, err := girxml.ParseReader(strings.NewReader(sampleGIR))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	table := symtab.New()
	mod, _ := loadmodule.BuildModule(repo, table)

	var classes []*model.Declaration
	for _, d := range mod.Decls {
		if d.Class != nil {
			classes = append(classes, d)
		}
	}
	idx, _ := inheritance.Build(table, classes)
	resolver := typeresolve.New(table, "gjs")
	resolver.SetLocalModule("Gtk")

	return mod, Deps{Table: table, Index: idx, Resolver: resolver, RootQN: "GObject.Object"}
}

func TestBuildClassViewIncludesOwnMembers(t *testing.T) {
	t.Parallel()
	_, deps := buildDeps(t)
	decl := deps.Table.Lookup("Gtk.Button")

	view := BuildClassView(decl, deps)

	var joined strings.Builder
	for _, f := range view.Fragments {
		joined.WriteString(f.Code)
		joined.WriteString("\n")
	}
	if !strings.Contains(joined.String(), "activate") {
		t.Errorf("expected Button's own activate method in the view, got:\n%s", joined.String())
	}
}

func TestBuildClassViewButtonGetsSignalHelpers(t *testing.T) {
	t.Parallel()
	_, deps := buildDeps(t)
	decl := deps.Table.Lookup("Gtk.Button")

	view := BuildClassView(decl, deps)

	var joined strings.Builder
	for _, f := range view.Fragments {
		joined.WriteString(f.Code)
	}
	if !strings.Contains(joined.String(), "connect(sigName: string") {
		t.Errorf("expected signal-helper connect() for a root-object descendant, got:\n%s", joined.String())
	}
}

func TestBuildClassViewInheritsVisibleProperty(t *testing.T) {
	t.Parallel()
	_, deps := buildDeps(t)
	decl := deps.Table.Lookup("Gtk.Button")

	view := BuildClassView(decl, deps)

	var joined strings.Builder
	for _, f := range view.Fragments {
		joined.WriteString(f.Code)
	}
	if !strings.Contains(joined.String(), "visible") {
		t.Errorf("expected Button to inherit Widget's visible property, got:\n%s", joined.String())
	}
}
