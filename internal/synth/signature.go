// signature.go computes the per-member derived signature shape: which
// parameters are promoted to optional, which are pulled out as "out"
// parameters, and how a method's effective return type is built once outs
// are folded in (§4.5).
package synth

import (
	"fmt"

	"github.com/girsurface/girsurface/internal/model"
	"github.com/girsurface/girsurface/internal/nameformat"
	"github.com/girsurface/girsurface/internal/typeresolve"
)

// RenderedParam is one parameter ready for text emission: name, resolved
// type, and whether it is optional.
type RenderedParam struct {
	Name     string
	Type     string
	Optional bool
}

// RenderedSignature is a fully lowered signature: the "in" parameter list
// in source order (with optionality computed) and the effective return
// expression (return type, or a positional tuple of outs + return when
// outs exist).
type RenderedSignature struct {
	Params []RenderedParam
	Return string
}

// ResolveSignature lowers sig using resolver, computing optionality
// (§4.5: "nullable and no subsequent non-nullable, non-out parameter
// exists in the same signature") and out-parameter packing ("when return
// is void and exactly one out exists, the out becomes the return;
// otherwise outs are packed with the non-void return into a positional
// tuple, return first").
func ResolveSignature(sig model.CallableSignature, namespace string, resolver *typeresolve.Resolver) (RenderedSignature, []typeresolve.Diagnostic) {
	var diags []typeresolve.Diagnostic

	var ins []int
	var outs []int
	for i, p := range sig.Parameters {
		if p.Direction == model.DirOut {
			outs = append(outs, i)
		} else {
			ins = append(ins, i)
		}
	}

	var rendered []RenderedParam
	for rank, idx := range ins {
		p := sig.Parameters[idx]
		t, d := resolver.Resolve(p.Type, namespace, false)
		diags = append(diags, d...)
		opt := p.IsNullableAnnotated() && noSubsequentRequiredIn(sig.Parameters, ins, rank)
		rendered = append(rendered, RenderedParam{Name: nameformat.ParamName(p.Name), Type: t, Optional: opt})
	}

	retType, d := resolver.Resolve(sig.Return, namespace, true)
	diags = append(diags, d...)
	voidReturn := sig.Return.Shape == model.ShapePlain && sig.Return.Primitive == "none"

	var returnExpr string
	switch {
	case len(outs) == 0:
		returnExpr = retType
	case len(outs) == 1 && voidReturn:
		t, d := resolver.Resolve(sig.Parameters[outs[0]].Type, namespace, true)
		diags = append(diags, d...)
		returnExpr = t
	default:
		parts := []string{}
		if !voidReturn {
			parts = append(parts, retType)
		}
		for _, idx := range outs {
			t, d := resolver.Resolve(sig.Parameters[idx].Type, namespace, true)
			diags = append(diags, d...)
			parts = append(parts, t)
		}
		returnExpr = tuple(parts)
	}

	return RenderedSignature{Params: rendered, Return: returnExpr}, diags
}

// noSubsequentRequiredIn reports whether, among the "in"/"inout"
// parameters at ins[rank+1:], none is a non-nullable parameter — i.e.
// whether promoting ins[rank] to optional is still legal (§4.5, §8
// scenario 3).
func noSubsequentRequiredIn(params []model.Parameter, ins []int, rank int) bool {
	for _, idx := range ins[rank+1:] {
		if !params[idx].IsNullableAnnotated() {
			return false
		}
	}
	return true
}

func tuple(parts []string) string {
	out := "["
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out + "]"
}

// RenderParamList renders a RenderedSignature's parameter list as source
// text, the form OverloadReconciler's signature comparison canonicalizes.
func RenderParamList(sig RenderedSignature) string {
	out := "("
	for i, p := range sig.Params {
		if i > 0 {
			out += ", "
		}
		mark := ":"
		if p.Optional {
			mark = "?:"
		}
		out += fmt.Sprintf("%s%s %s", p.Name, mark, p.Type)
	}
	return out + ")"
}
