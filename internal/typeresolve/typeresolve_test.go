package typeresolve

import (
	"testing"

	"github.com/girsurface/girsurface/internal/model"
	"github.com/girsurface/girsurface/internal/symtab"
)

func newResolver(t *testing.T) *Resolver {
	t.Helper()
	table := symtab.New()
	table.Insert("Gtk.Widget", &model.Declaration{Kind: model.KindClass, SimpleName: "Widget"})
	r := New(table, "gjs")
	r.SetLocalModule("Gtk")
	return r
}

func TestResolvePlainPrimitive(t *testing.T) {
	t.Parallel()
	r := newResolver(t)
	got, diags := r.Resolve(model.TypeRef{Shape: model.ShapePlain, Primitive: "gboolean"}, "Gtk", false)
	if got != "boolean" || len(diags) != 0 {
		t.Errorf("got %q, diags %v", got, diags)
	}
}

func TestResolveArrayOfGuint8UsesByteArrayOverride(t *testing.T) {
	t.Parallel()
	r := newResolver(t)
	ref := model.TypeRef{
		Shape:   model.ShapeArray,
		Element: &model.TypeRef{Shape: model.ShapePlain, Primitive: "guint8"},
	}
	got, _ := r.Resolve(ref, "Gtk", false)
	if got != "Uint8Array" {
		t.Errorf("got %q, want Uint8Array (no extra [] suffix)", got)
	}
}

func TestResolveArrayOfGintUsesGenericSuffix(t *testing.T) {
	t.Parallel()
	r := newResolver(t)
	ref := model.TypeRef{
		Shape:   model.ShapeArray,
		Element: &model.TypeRef{Shape: model.ShapePlain, Primitive: "gint"},
	}
	got, _ := r.Resolve(ref, "Gtk", false)
	if got != "number[]" {
		t.Errorf("got %q, want number[]", got)
	}
}

func TestResolveNullableSuffix(t *testing.T) {
	t.Parallel()
	r := newResolver(t)
	ref := model.TypeRef{Shape: model.ShapePlain, Named: "Widget", Nullable: true}
	got, _ := r.Resolve(ref, "Gtk", false)
	if got != "Widget | null" {
		t.Errorf("got %q, want %q", got, "Widget | null")
	}
}

func TestResolveLocalPrefixStripped(t *testing.T) {
	t.Parallel()
	r := newResolver(t)
	ref := model.TypeRef{Shape: model.ShapePlain, Named: "Gtk.Widget"}
	got, _ := r.Resolve(ref, "Gtk", false)
	if got != "Widget" {
		t.Errorf("got %q, want local-stripped %q", got, "Widget")
	}
}

func TestResolveUnresolvedNamedProducesTopTypeAndDiagnostic(t *testing.T) {
	t.Parallel()
	r := newResolver(t)
	ref := model.TypeRef{Shape: model.ShapePlain, Named: "Missing"}
	got, diags := r.Resolve(ref, "Gtk", false)
	if got != TopType {
		t.Errorf("got %q, want top type %q", got, TopType)
	}
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(diags))
	}
}

func TestResolveCallbackSynthesis(t *testing.T) {
	t.Parallel()
	r := newResolver(t)
	ref := model.TypeRef{
		Shape: model.ShapeCallbackType,
		Callback: &model.CallableSignature{
			Parameters: []model.Parameter{{Name: "value", Type: model.TypeRef{Shape: model.ShapePlain, Primitive: "gint"}}},
			Return:     model.TypeRef{Shape: model.ShapePlain, Primitive: "none"},
		},
	}
	got, _ := r.Resolve(ref, "Gtk", false)
	want := "(value: number) => void"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveNullableCallbackIsParenthesized(t *testing.T) {
	t.Parallel()
	r := newResolver(t)
	ref := model.TypeRef{
		Shape:    model.ShapeCallbackType,
		Nullable: true,
		Callback: &model.CallableSignature{
			Parameters: []model.Parameter{{Name: "value", Type: model.TypeRef{Shape: model.ShapePlain, Primitive: "gint"}}},
			Return:     model.TypeRef{Shape: model.ShapePlain, Primitive: "none"},
		},
	}
	got, _ := r.Resolve(ref, "Gtk", false)
	want := "((value: number) => void) | null"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveArrayOfCallbacksIsParenthesized(t *testing.T) {
	t.Parallel()
	r := newResolver(t)
	ref := model.TypeRef{
		Shape: model.ShapeArray,
		Element: &model.TypeRef{
			Shape: model.ShapeCallbackType,
			Callback: &model.CallableSignature{
				Parameters: []model.Parameter{{Name: "value", Type: model.TypeRef{Shape: model.ShapePlain, Primitive: "gint"}}},
				Return:     model.TypeRef{Shape: model.ShapePlain, Primitive: "none"},
			},
		},
	}
	got, _ := r.Resolve(ref, "Gtk", false)
	want := "((value: number) => void)[]"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
