// Package typeresolve implements TypeResolver (C2): lowering a GIR type
// reference to a target-surface type expression, following the
// first-match-wins resolution order of §4.2. Grounded on the teacher's
// internal/lang.Language configuration pattern — a small table of
// per-namespace overrides consulted before falling through to structural
// rules — generalized from "per source language" to "per GIR namespace
// and C-type suffix".
package typeresolve

import (
	"fmt"

	"github.com/girsurface/girsurface/internal/model"
	"github.com/girsurface/girsurface/internal/nameformat"
	"github.com/girsurface/girsurface/internal/symtab"
)

// TopType is the fallback target-surface type emitted when resolution
// fails outright (§4.2 step 7).
const TopType = "any"

// CTypeKey identifies one entry of the per-namespace C-type map (§4.2
// step 2): the raw c:type string plus whether the reference is in an
// output position.
type CTypeKey struct {
	Namespace string
	CType     string
	Out       bool
}

// NamedKey identifies one entry of the named-type override map (§4.2 step
// 5): a fully-qualified GIR name plus direction sensitivity.
type NamedKey struct {
	QualifiedName string
	Out           bool
}

// Resolver carries the override tables consulted before the structural
// fallback rules, plus the SymbolTable used for step 6. The override
// tables model the "polymorphic built-ins that differ by read/write"
// primitive mappings (e.g. GIR's utf8 is a different target type on
// input vs. as a return value in some environments) and the handful of
// array-specific and plain-type shortcuts real GIR corpora need (e.g.
// guint8 arrays as a byte-string type rather than number[]).
type Resolver struct {
	symtab *symtab.Table

	cTypeMap    map[CTypeKey]string
	arrayPlain  map[string]string // element primitive/named -> array-shaped override
	plainMap    map[string]string // element primitive/named -> plain override
	namedMap    map[NamedKey]string

	localModule string // namespace of the module currently being resolved, for step 6's local-prefix strip
}

// New returns a Resolver with the built-in primitive tables appropriate
// for the given environment ("gjs" or "node", §6) and seeded with the
// given SymbolTable.
func New(table *symtab.Table, environment string) *Resolver {
	r := &Resolver{
		symtab:   table,
		cTypeMap: map[CTypeKey]string{},
		arrayPlain: map[string]string{
			"guint8": "Uint8Array",
			"gint8":  "Int8Array",
		},
		plainMap: map[string]string{
			"none":     "void",
			"gboolean": "boolean",
			"gint":     "number",
			"guint":    "number",
			"gint8":    "number",
			"guint8":   "number",
			"gint16":   "number",
			"guint16":  "number",
			"gint32":   "number",
			"guint32":  "number",
			"gint64":   "number",
			"guint64":  "number",
			"gfloat":   "number",
			"gdouble":  "number",
			"glong":    "number",
			"gulong":   "number",
			"gssize":   "number",
			"gsize":    "number",
			"utf8":     "string",
			"filename": "string",
			"gpointer": TopType,
			"GType":    "number",
		},
		// The root object module's type-handle alias is not emitted, so
		// references to it resolve to the handle's number representation.
		namedMap: map[NamedKey]string{
			{QualifiedName: "GObject.Type", Out: false}: "number",
			{QualifiedName: "GObject.Type", Out: true}:  "number",
		},
	}
	if environment == "node" {
		r.plainMap["utf8"] = "string"
		r.plainMap["filename"] = "Buffer | string"
	}
	return r
}

// SetLocalModule tells the resolver which namespace is being emitted, so
// step 6 can strip the local-module prefix from same-module references.
func (r *Resolver) SetLocalModule(namespace string) {
	r.localModule = namespace
}

// Diagnostic is one non-fatal resolution event (§7 unresolved-type).
type Diagnostic struct {
	Message string
}

// Resolve lowers ref to a target-surface type expression. out toggles
// which table is consulted for direction-sensitive entries (true for
// return positions). namespace is the owning module's namespace, used to
// qualify bare named references before the SymbolTable lookup.
//
// Resolution order exactly follows §4.2: callback synthesis, per-namespace
// C-type map, array-specific plain-type map, plain-type map, named-type
// map, SymbolTable qualification, top-type fallback.
func (r *Resolver) Resolve(ref model.TypeRef, namespace string, out bool) (string, []Diagnostic) {
	expr, suppressArraySuffix, isCallback, diags := r.resolveInner(ref, namespace, out)
	suf := r.suffix(ref, suppressArraySuffix)
	if suf != "" && isCallback {
		expr = "(" + expr + ")"
	}
	return expr + suf, diags
}

// resolveInner returns the resolved expression, whether the array suffix
// should be suppressed (true only for step 3's array-specific mapping,
// which already denotes the array shape itself), whether the expression
// is a synthesized callback type in need of parenthesization before any
// array/nullable suffix is appended, and any diagnostics.
func (r *Resolver) resolveInner(ref model.TypeRef, namespace string, out bool) (string, bool, bool, []Diagnostic) {
	// Step 1: callback synthesis.
	if ref.Shape == model.ShapeCallbackType && ref.Callback != nil {
		return r.synthesizeCallback(*ref.Callback, namespace), false, true, nil
	}

	elem := ref
	isArrayShape := ref.Shape == model.ShapeArray || ref.Shape == model.ShapeList
	if isArrayShape && ref.Element != nil {
		elem = *ref.Element
	}

	// An array/list of inline callbacks — step 1 applied to the element
	// instead of the outer ref, since the outer ref's own Shape is
	// Array/List, not ShapeCallbackType.
	if isArrayShape && elem.Shape == model.ShapeCallbackType && elem.Callback != nil {
		return r.synthesizeCallback(*elem.Callback, namespace), false, true, nil
	}

	// Step 2: per-namespace C-type map (checked against the outer ref's
	// raw c:type, not the element's — the map keys on the wire type).
	if ref.CType != "" {
		if v, ok := r.cTypeMap[CTypeKey{Namespace: namespace, CType: ref.CType, Out: out}]; ok {
			return v, false, false, nil
		}
	}

	// Step 3: array-specific plain-type mapping — the mapped type already
	// denotes the array shape, so the generic "[]" suffix is suppressed.
	if isArrayShape {
		key := elem.Primitive
		if key == "" {
			key = elem.Named
		}
		if v, ok := r.arrayPlain[key]; ok {
			return v, true, false, nil
		}
	}

	// Step 4: plain-type mapping (on the element when array/list-shaped,
	// with the array+nullable suffix applied by the caller).
	key := elem.Primitive
	if key == "" {
		key = elem.Named
	}
	if key != "" {
		if v, ok := r.plainMap[key]; ok {
			return v, false, false, nil
		}
	}

	// Step 5: named-type mapping, direction-sensitive.
	if elem.Named != "" {
		if v, ok := r.namedMap[NamedKey{QualifiedName: elem.Named, Out: out}]; ok {
			return v, false, false, nil
		}
	}

	// Step 6: qualify and consult the SymbolTable.
	if elem.Named != "" {
		qname := elem.Named
		if !hasDot(qname) {
			qname = namespace + "." + qname
		}
		if decl := r.symtab.Lookup(qname); decl != nil {
			return r.stripLocalPrefix(qname), false, false, nil
		}
		return TopType, false, false, []Diagnostic{{Message: fmt.Sprintf("unresolved type %q referenced from %s", qname, namespace)}}
	}

	// Primitive with no table entry at all (shouldn't happen for a
	// well-formed GIR document, but §4.2 step 7 covers it).
	if key != "" {
		return TopType, false, false, []Diagnostic{{Message: fmt.Sprintf("unresolved primitive %q referenced from %s", key, namespace)}}
	}
	return TopType, false, false, nil
}

// stripLocalPrefix removes "<namespace>." from qname when namespace
// matches the module currently being emitted (§4.2 step 6).
func (r *Resolver) stripLocalPrefix(qname string) string {
	prefix := r.localModule + "."
	if r.localModule != "" && len(qname) > len(prefix) && qname[:len(prefix)] == prefix {
		return qname[len(prefix):]
	}
	return qname
}

// suffix computes the array/nullable suffix per §4.2: "[]" iff
// array/list-shaped (unless suppressed by step 3's array-specific
// mapping), " | null" iff nullable-annotated, array before nullable.
func (r *Resolver) suffix(ref model.TypeRef, suppressArraySuffix bool) string {
	s := ""
	if !suppressArraySuffix && (ref.Shape == model.ShapeArray || ref.Shape == model.ShapeList) {
		s += "[]"
	}
	if ref.Nullable {
		s += " | null"
	}
	return s
}

// synthesizeCallback builds a function-type expression from a callback's
// parameters and return type (§4.2 step 1). Parenthesization (needed when
// an array or nullable suffix follows) is the caller's responsibility,
// since this function does not know the enclosing TypeRef's shape.
func (r *Resolver) synthesizeCallback(sig model.CallableSignature, namespace string) string {
	expr := "(" + r.paramList(sig, namespace) + ") => "
	ret, _ := r.Resolve(sig.Return, namespace, true)
	return expr + ret
}

func (r *Resolver) paramList(sig model.CallableSignature, namespace string) string {
	out := ""
	for i, p := range sig.Parameters {
		if i > 0 {
			out += ", "
		}
		t, _ := r.Resolve(p.Type, namespace, false)
		out += nameformat.ParamName(p.Name) + ": " + t
	}
	return out
}

// StripPublicPrefix qualifies qname for display in an extends/implements
// clause, stripping the local-module prefix exactly as step 6 does for an
// ordinary type reference. The from argument is accepted for call-site
// symmetry with other qualification helpers but is not consulted — the
// local module is always the one SetLocalModule last recorded.
func (r *Resolver) StripPublicPrefix(qname string, from string) string {
	return r.stripLocalPrefix(qname)
}

// AddCTypeOverride registers a per-namespace C-type map entry (§4.2 step
// 2). Exposed so callers loading a per-project override file can extend
// the built-in tables without touching Resolver internals.
func (r *Resolver) AddCTypeOverride(key CTypeKey, expr string) {
	r.cTypeMap[key] = expr
}

// AddNamedOverride registers a named-type override (§4.2 step 5).
func (r *Resolver) AddNamedOverride(key NamedKey, expr string) {
	r.namedMap[key] = expr
}

func hasDot(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return true
		}
	}
	return false
}
