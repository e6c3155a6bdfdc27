package synth

import (
	"testing"

	"github.com/girsurface/girsurface/internal/model"
	"github.com/girsurface/girsurface/internal/symtab"
	"github.com/girsurface/girsurface/internal/typeresolve"
)

func newResolver() *typeresolve.Resolver {
	r := typeresolve.New(symtab.New(), "gjs")
	r.SetLocalModule("Gtk")
	return r
}

func numParam(name string, nullable bool) model.Parameter {
	return model.Parameter{
		Name:      name,
		Direction: model.DirIn,
		Nullable:  nullable,
		Type:      model.TypeRef{Shape: model.ShapePlain, Primitive: "gint"},
	}
}

func TestResolveSignatureTrailingNullableIsOptional(t *testing.T) {
	t.Parallel()
	sig := model.CallableSignature{
		Parameters: []model.Parameter{numParam("a", false), numParam("b", true)},
		Return:     model.TypeRef{Shape: model.ShapePlain, Primitive: "none"},
	}
	rendered, _ := ResolveSignature(sig, "Gtk", newResolver())
	if rendered.Params[1].Optional != true {
		t.Error("expected trailing nullable param to be optional")
	}
	if rendered.Params[0].Optional {
		t.Error("leading non-nullable param must not be optional")
	}
}

func TestResolveSignatureNullableBeforeRequiredIsNotOptional(t *testing.T) {
	t.Parallel()
	sig := model.CallableSignature{
		Parameters: []model.Parameter{numParam("a", true), numParam("b", false)},
		Return:     model.TypeRef{Shape: model.ShapePlain, Primitive: "none"},
	}
	rendered, _ := ResolveSignature(sig, "Gtk", newResolver())
	if rendered.Params[0].Optional {
		t.Error("a nullable param followed by a required one must not be promoted to optional")
	}
}

func TestResolveSignatureSingleVoidOutBecomesReturn(t *testing.T) {
	t.Parallel()
	sig := model.CallableSignature{
		Parameters: []model.Parameter{{Name: "result", Direction: model.DirOut, Type: model.TypeRef{Shape: model.ShapePlain, Primitive: "gint"}}},
		Return:     model.TypeRef{Shape: model.ShapePlain, Primitive: "none"},
	}
	rendered, _ := ResolveSignature(sig, "Gtk", newResolver())
	if rendered.Return != "number" {
		t.Errorf("got %q, want %q", rendered.Return, "number")
	}
	if len(rendered.Params) != 0 {
		t.Errorf("out-only parameter must not remain in the 'in' list, got %+v", rendered.Params)
	}
}

func TestResolveSignatureMultipleOutsPackIntoTuple(t *testing.T) {
	t.Parallel()
	sig := model.CallableSignature{
		Parameters: []model.Parameter{
			{Name: "x", Direction: model.DirOut, Type: model.TypeRef{Shape: model.ShapePlain, Primitive: "gint"}},
			{Name: "y", Direction: model.DirOut, Type: model.TypeRef{Shape: model.ShapePlain, Primitive: "gint"}},
		},
		Return: model.TypeRef{Shape: model.ShapePlain, Primitive: "gboolean"},
	}
	rendered, _ := ResolveSignature(sig, "Gtk", newResolver())
	want := "[boolean, number, number]"
	if rendered.Return != want {
		t.Errorf("got %q, want %q", rendered.Return, want)
	}
}

func TestResolveSignatureEscapesReservedParamName(t *testing.T) {
	t.Parallel()
	sig := model.CallableSignature{
		Parameters: []model.Parameter{numParam("new", false)},
		Return:     model.TypeRef{Shape: model.ShapePlain, Primitive: "none"},
	}
	rendered, _ := ResolveSignature(sig, "Gtk", newResolver())
	if rendered.Params[0].Name != "new_" {
		t.Errorf("got %q, want %q", rendered.Params[0].Name, "new_")
	}
}

func TestRenderParamList(t *testing.T) {
	t.Parallel()
	sig := RenderedSignature{Params: []RenderedParam{{Name: "value", Type: "number", Optional: true}}}
	got := RenderParamList(sig)
	want := "(value?: number)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
