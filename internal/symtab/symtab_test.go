package symtab

import (
	"testing"

	"github.com/girsurface/girsurface/internal/model"
)

func TestInsertKeepsFirst(t *testing.T) {
	t.Parallel()

	table := New()
	modA := &model.Module{Namespace: "Gtk", Version: "4.0", PackageName: "Gtk-4.0"}
	modB := &model.Module{Namespace: "Gtk", Version: "3.0", PackageName: "Gtk-3.0"}

	first := &model.Declaration{Kind: model.KindClass, SimpleName: "Widget", Owner: modA}
	second := &model.Declaration{Kind: model.KindClass, SimpleName: "Widget", Owner: modB}

	table.Insert("Gtk.Widget", first)
	table.Insert("Gtk.Widget", second)

	got := table.Lookup("Gtk.Widget")
	if got != first {
		t.Fatalf("expected the first inserted declaration to win")
	}

	conflicts := table.Conflicts()
	if len(conflicts) != 1 {
		t.Fatalf("expected exactly one recorded conflict, got %d", len(conflicts))
	}
	if conflicts[0].Kept != modA || conflicts[0].Rejected != modB {
		t.Errorf("conflict recorded the wrong winner/loser")
	}
}

func TestLookupMiss(t *testing.T) {
	t.Parallel()
	table := New()
	if table.Lookup("Gtk.NoSuchType") != nil {
		t.Error("expected nil for an unregistered qualified name")
	}
	if table.Len() != 0 {
		t.Errorf("expected empty table, got Len() = %d", table.Len())
	}
}
