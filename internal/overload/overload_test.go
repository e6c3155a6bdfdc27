package overload

import (
	"testing"

	"github.com/girsurface/girsurface/internal/model"
)

func render(m model.Member) string {
	return m.Name + "()"
}

func TestCanonicalizeStripsNamedParams(t *testing.T) {
	t.Parallel()
	got := Canonicalize("foo(name: string, count?: number)")
	want := "foo(: string, ?: number)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSignaturesMatch(t *testing.T) {
	t.Parallel()
	a := "connect(name: string, cb: Function): number"
	b := "connect(sigName: string, callback: Function): number"
	if !SignaturesMatch(a, b) {
		t.Error("expected signatures with only differing param names to match")
	}
	c := "connect(name: string): void"
	if SignaturesMatch(a, c) {
		t.Error("expected differing return types not to match")
	}
}

func TestReconcileDropsIdenticalInheritedCopy(t *testing.T) {
	t.Parallel()
	methods := []model.Member{{Name: "show"}}
	fnMap := Inherited{"show": {"Gtk.Widget": {Name: "show"}}}
	renderer := func(m model.Member) string { return "show(): void" }

	fragments, claimed := Reconcile("Gtk.Button", false, methods, fnMap, map[string]struct{}{}, renderer)
	if _, ok := claimed["show"]; !ok {
		t.Error("expected show to be claimed")
	}
	if len(fragments) != 1 {
		t.Errorf("expected exactly one fragment (no false-overload commentary), got %d: %+v", len(fragments), fragments)
	}
}

func TestReconcileFlagsFalseOverload(t *testing.T) {
	t.Parallel()
	methods := []model.Member{{Name: "get_value"}}
	fnMap := Inherited{"get_value": {"Gtk.Base": {Name: "get_value"}}}
	calls := 0
	renderer := func(m model.Member) string {
		calls++
		if m.Name == "get_value" && calls == 1 {
			return "get_value(): string"
		}
		return "get_value(): number"
	}

	fragments, _ := Reconcile("Gtk.Derived", false, methods, fnMap, map[string]struct{}{}, renderer)
	if len(fragments) != 2 {
		t.Fatalf("expected direct fragment plus false-overload commentary, got %d: %+v", len(fragments), fragments)
	}
	if fragments[1].Comment == "" {
		t.Error("expected the inherited copy to carry explanatory commentary")
	}
}

func TestReconcileSkipsPropertyClash(t *testing.T) {
	t.Parallel()
	methods := []model.Member{{Name: "visible"}}
	renderer := func(m model.Member) string { return m.Name + "()" }
	fragments, claimed := Reconcile("Gtk.Widget", false, methods, Inherited{}, map[string]struct{}{"visible": {}}, renderer)
	if len(fragments) != 1 || fragments[0].Code != "" {
		t.Errorf("expected a comment-only skip fragment, got %+v", fragments)
	}
	if _, ok := claimed["visible"]; ok {
		t.Error("a skipped method must not be claimed")
	}
}

func TestReconcileForcedClashOnSignalHelperName(t *testing.T) {
	t.Parallel()
	fnMap := Inherited{"connect": {"Gtk.Base": {Name: "connect"}}}
	fragments, claimed := Reconcile("Gtk.Widget", false, nil, fnMap, map[string]struct{}{}, render)
	if len(fragments) != 1 {
		t.Fatalf("expected the reserved name to be forced into commentary even with one distinct copy, got %+v", fragments)
	}
	if _, ok := claimed["connect"]; !ok {
		t.Error("expected connect claimed")
	}
}
