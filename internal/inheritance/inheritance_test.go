package inheritance

import (
	"testing"

	"github.com/girsurface/girsurface/internal/model"
	"github.com/girsurface/girsurface/internal/symtab"
)

func buildIndex(t *testing.T, classes ...*model.ClassDeclaration) (*Index, *symtab.Table) {
	t.Helper()
	table := symtab.New()
	var decls []*model.Declaration
	for _, c := range classes {
		d := &model.Declaration{Kind: model.KindClass, Class: c}
		if c.IsInterface {
			d.Kind = model.KindInterface
		}
		table.Insert(c.QualifiedName, d)
		decls = append(decls, d)
	}
	idx, _ := Build(table, decls)
	return idx, table
}

func TestClosureWalkLinearChain(t *testing.T) {
	t.Parallel()
	base := &model.ClassDeclaration{QualifiedName: "Gtk.Base"}
	mid := &model.ClassDeclaration{QualifiedName: "Gtk.Mid", Parent: "Gtk.Base"}
	leaf := &model.ClassDeclaration{QualifiedName: "Gtk.Leaf", Parent: "Gtk.Mid"}
	idx, _ := buildIndex(t, base, mid, leaf)

	var ancestors []string
	idx.ClosureWalk("Gtk.Leaf", func(a string) { ancestors = append(ancestors, a) })

	want := []string{"Gtk.Mid", "Gtk.Base"}
	if len(ancestors) != len(want) {
		t.Fatalf("got %v, want %v", ancestors, want)
	}
	for i := range want {
		if ancestors[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, ancestors[i], want[i])
		}
	}
}

func TestClosureWalkUnresolvedParentFallsBackToRootObject(t *testing.T) {
	t.Parallel()
	orphan := &model.ClassDeclaration{QualifiedName: "Gtk.Orphan", Parent: "Gtk.Nonexistent"}
	idx, diags := buildIndex(t, orphan)
	_ = diags

	var ancestors []string
	idx.ClosureWalk("Gtk.Orphan", func(a string) { ancestors = append(ancestors, a) })
	if len(ancestors) != 1 || ancestors[0] != RootObjectQualifiedName {
		t.Errorf("got %v, want fallback to %s", ancestors, RootObjectQualifiedName)
	}
}

func TestForEachInterfaceVisitsPrerequisites(t *testing.T) {
	t.Parallel()
	base := &model.ClassDeclaration{QualifiedName: "Gtk.IBase", IsInterface: true}
	derived := &model.ClassDeclaration{QualifiedName: "Gtk.IDerived", IsInterface: true, Implements: []string{"Gtk.IBase"}}
	cls := &model.ClassDeclaration{QualifiedName: "Gtk.Impl", Implements: []string{"Gtk.IDerived"}}
	idx, _ := buildIndex(t, base, derived, cls)

	visited := map[string]bool{}
	idx.ForEachInterface("Gtk.Impl", true, func(iface string) { visited[iface] = true })

	if !visited["Gtk.IDerived"] || !visited["Gtk.IBase"] {
		t.Errorf("expected both interfaces visited, got %v", visited)
	}
}
