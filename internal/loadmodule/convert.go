// convert.go turns girxml's dumb struct tree into model.Declaration
// values. This is mechanical GIR→model mapping — no name transforms, no
// type lowering, no inheritance reasoning — those all happen downstream
// in internal/nameformat, internal/typeresolve, and internal/inheritance.
// introspectable handling lives here because it is a structural filter on
// what enters the SymbolTable at all (§4.3: "only introspectable
// constructs are inserted").
package loadmodule

import (
	"strconv"

	"github.com/girsurface/girsurface/internal/girxml"
	"github.com/girsurface/girsurface/internal/model"
)

// introspectable interprets a GIR introspectable attribute: absent
// defaults to true, "0" is the only false value (§6 External Interfaces).
func introspectable(attr string) bool {
	return attr != "0"
}

func boolAttr(attr string) bool {
	v, err := strconv.ParseBool(attr)
	return err == nil && v
}

func convertType(t *girxml.Type, a *girxml.Array) model.TypeRef {
	if a != nil {
		length := -1
		hasLength := false
		if a.Length != "" {
			if n, err := strconv.Atoi(a.Length); err == nil {
				length = n
				hasLength = true
			}
		}
		var elem model.TypeRef
		if a.Type != nil {
			elem = convertType(a.Type, nil)
		}
		return model.TypeRef{
			Shape:          model.ShapeArray,
			Element:        &elem,
			LengthParamIdx: length,
			HasLengthParam: hasLength,
			CType:          a.CType,
		}
	}
	if t == nil {
		return model.TypeRef{Shape: model.ShapePlain, Primitive: "none"}
	}
	ref := model.TypeRef{Shape: model.ShapePlain, CType: t.CType}
	if t.Name == "" {
		ref.Primitive = "none"
		return ref
	}
	ref.Named = t.Name
	return ref
}

func convertParam(p girxml.Parameter) model.Parameter {
	closure, destroy, length := -1, -1, -1
	if p.Closure != "" {
		if n, err := strconv.Atoi(p.Closure); err == nil {
			closure = n
		}
	}
	if p.Destroy != "" {
		if n, err := strconv.Atoi(p.Destroy); err == nil {
			destroy = n
		}
	}
	if p.Array != nil && p.Array.Length != "" {
		if n, err := strconv.Atoi(p.Array.Length); err == nil {
			length = n
		}
	}

	dir := model.DirIn
	switch p.Direction {
	case "out":
		dir = model.DirOut
	case "inout":
		dir = model.DirInout
	}

	return model.Parameter{
		Name:         p.Name,
		Direction:    dir,
		Nullable:     boolAttr(p.Nullable),
		AllowNone:    boolAttr(p.AllowNone),
		Optional:     boolAttr(p.Optional),
		ClosureIndex: closure,
		DestroyIndex: destroy,
		LengthIndex:  length,
		Type:         convertType(p.Type, p.Array),
	}
}

func convertSignature(params *girxml.Parameters, ret *girxml.ReturnVal) model.CallableSignature {
	sig := model.CallableSignature{OutArrayLengthIdx: -1}
	if params != nil {
		for _, p := range params.Parameters {
			sig.Parameters = append(sig.Parameters, convertParam(p))
		}
	}
	if ret != nil {
		sig.Return = convertType(ret.Type, ret.Array)
		sig.ReturnNullable = boolAttr(ret.Nullable)
		if ret.Array != nil && ret.Array.Length != "" {
			if n, err := strconv.Atoi(ret.Array.Length); err == nil {
				sig.OutArrayLengthIdx = n
			}
		}
	}
	return sig
}

func convertCallable(fn girxml.Function) model.Member {
	return model.Member{
		Name: fn.Name,
		Signature: func() model.CallableSignature {
			s := convertSignature(fn.Parameters, fn.ReturnValue)
			s.ShadowedBy = fn.ShadowedBy
			s.Shadows = fn.Shadows
			s.CIdentifier = fn.CIdentifier
			s.Introspectable = introspectable(fn.Introspectable)
			return s
		}(),
	}
}

func convertField(f girxml.Field) model.Field {
	return model.Field{
		Name:           f.Name,
		Type:           convertType(f.Type, f.Array),
		Private:        boolAttr(f.Private),
		Introspectable: introspectable(f.Introspectable),
	}
}

func convertProperty(p girxml.Property) model.Property {
	return model.Property{
		Name:           p.Name,
		Type:           convertType(p.Type, p.Array),
		Writable:       p.Writable == "" || boolAttr(p.Writable),
		ConstructOnly:  boolAttr(p.ConstructOnly),
		Private:        boolAttr(p.Private),
		Introspectable: introspectable(p.Introspectable),
	}
}

func convertSignal(s girxml.Signal) model.Signal {
	return model.Signal{
		Name:           s.Name,
		Signature:      convertSignature(s.Parameters, s.ReturnValue),
		Introspectable: introspectable(s.Introspectable),
	}
}
