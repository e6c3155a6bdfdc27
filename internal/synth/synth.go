// Package synth implements MemberSynthesizer (C5): produces the ordered
// member fragments for one class view — construct-props carrier, fields,
// properties, instance methods, virtual methods, signals, signal
// helpers, then the constructor/static-methods carrier — delegating
// collision resolution among inherited members to internal/overload
// whenever a method or virtual-method set is assembled. Signals are
// rendered directly, without reconciliation.
package synth

import (
	"fmt"
	"sort"

	"github.com/girsurface/girsurface/internal/inheritance"
	"github.com/girsurface/girsurface/internal/model"
	"github.com/girsurface/girsurface/internal/nameformat"
	"github.com/girsurface/girsurface/internal/overload"
	"github.com/girsurface/girsurface/internal/symtab"
	"github.com/girsurface/girsurface/internal/typeresolve"
)

// Fragment is one emitted line-or-block, with an optional preceding
// comment, matching overload.Fragment's shape so the two compose without
// conversion boilerplate at call sites.
type Fragment = overload.Fragment

// LocalNames is the per-class-view scratch set (§3's LocalNameSet):
// identifiers already claimed in this emission, shared across fields,
// properties, and the overload reconciler so later stages see earlier
// claims.
type LocalNames struct {
	claimed map[string]struct{}
}

// NewLocalNames returns an empty LocalNameSet.
func NewLocalNames() *LocalNames {
	return &LocalNames{claimed: make(map[string]struct{})}
}

// Claim registers name if not already present, reporting whether this
// call was the one that claimed it.
func (l *LocalNames) Claim(name string) bool {
	if _, ok := l.claimed[name]; ok {
		return false
	}
	l.claimed[name] = struct{}{}
	return true
}

// Has reports whether name is already claimed.
func (l *LocalNames) Has(name string) bool {
	_, ok := l.claimed[name]
	return ok
}

// View is the complete ordered output for one class/interface emission.
// StaticFrom is the index into Fragments where the constructor/static
// carrier begins — everything before it is an instance member, everything
// from it onward is static — so a caller decomposing a class into an
// interface-plus-constructor pair (§4.7, when inheritance decomposition
// is requested) knows where to split without re-deriving membership.
type View struct {
	Fragments   []Fragment
	StaticFrom  int
	Diagnostics []string
}

// Deps bundles the read-only collaborators a class view needs: the
// SymbolTable (to look up ancestor ClassDeclarations), the
// InheritanceIndex (to walk the closure), and a TypeResolver (shared
// across the whole namespace emission, per §5).
type Deps struct {
	Table    *symtab.Table
	Index    *inheritance.Index
	Resolver *typeresolve.Resolver
	RootQN   string // qualified name of the root object class, e.g. "GObject.Object"
}

// BuildClassView assembles the full ordered fragment list for decl,
// which must carry a ClassDeclaration (class or interface).
func BuildClassView(decl *model.Declaration, deps Deps) *View {
	cd := decl.Class
	namespace := model.NamespaceOf(cd.QualifiedName)
	v := &View{}
	names := NewLocalNames()

	ancestors := collectAncestors(cd, deps)
	derivesFromRoot := !cd.IsInterface && reachesRoot(cd.QualifiedName, deps)

	// construct-props carrier + ordinary properties.
	ownProps, constructProps := splitProperties(cd.Properties)
	inheritedProps := collectInheritedProperties(ancestors, deps, names, cd.Properties)

	if len(constructProps) > 0 {
		v.Fragments = append(v.Fragments, Fragment{Code: renderConstructPropsCarrier(cd, constructProps, namespace, deps)})
	}
	for _, p := range ownProps {
		names.Claim(p.Name)
	}
	v.Fragments = append(v.Fragments, renderProperties(ownProps, namespace, deps)...)
	v.Fragments = append(v.Fragments, renderProperties(inheritedProps, namespace, deps)...)

	allPropertyNames := map[string]struct{}{}
	for _, p := range ownProps {
		allPropertyNames[p.Name] = struct{}{}
	}
	for _, p := range inheritedProps {
		allPropertyNames[p.Name] = struct{}{}
	}

	// fields: only emitted when not colliding with an already-claimed name.
	for _, f := range cd.Fields {
		if f.Private || !f.Introspectable {
			continue
		}
		if !names.Claim(f.Name) {
			v.Diagnostics = append(v.Diagnostics, fmt.Sprintf("%s: field %q skipped, name already claimed", cd.QualifiedName, f.Name))
			continue
		}
		t, diags := deps.Resolver.Resolve(f.Type, namespace, false)
		appendTypeDiags(v, diags)
		v.Fragments = append(v.Fragments, Fragment{Code: fmt.Sprintf("%s: %s;", nameformat.FieldName(f.Name), t)})
	}

	v.Fragments = append(v.Fragments, renderProperties(ownProps, namespace, deps)...)
	v.Fragments = append(v.Fragments, renderProperties(inheritedProps, namespace, deps)...)

	isRoot := cd.QualifiedName == deps.RootQN

	// instance methods, with shadowing applied and duplicates reconciled.
	methods, methodDiags := dropShadowed(cd.Methods)
	v.Diagnostics = append(v.Diagnostics, methodDiags...)
	fnMap := buildFnMap(ancestors, deps, func(m model.ClassDeclaration) []model.Member { return m.Methods })
	render := methodRenderer(deps)
	fragments, claimed := overload.Reconcile(cd.QualifiedName, isRoot, methods, fnMap, allPropertyNames, render)
	v.Fragments = append(v.Fragments, fragments...)
	for name := range claimed {
		names.Claim(name)
	}

	// class-methods via GType struct, appended to the static carrier below;
	// they are not checked against names already claimed in this view.
	staticFromGType := findGTypeStructMethods(cd.QualifiedName, deps)

	// virtual methods: vfunc_ prefix, reconciled the same way.
	vmethods, vmethodDiags := dropShadowed(cd.VirtualMethods)
	v.Diagnostics = append(v.Diagnostics, vmethodDiags...)
	vfnMap := buildFnMap(ancestors, deps, func(m model.ClassDeclaration) []model.Member { return m.VirtualMethods })
	vrender := vfuncRenderer(deps)
	vfragments, vclaimed := overload.Reconcile(cd.QualifiedName, isRoot, vmethods, vfnMap, allPropertyNames, vrender)
	v.Fragments = append(v.Fragments, vfragments...)
	for name := range vclaimed {
		names.Claim("vfunc_" + name)
	}

	// signals + signal helpers.
	v.Fragments = append(v.Fragments, renderSignals(cd.Signals, namespace, deps)...)
	if derivesFromRoot {
		v.Fragments = append(v.Fragments, renderSignalHelpers(cd, allPropertyNames, ancestors, deps)...)
	}

	// constructor / static-methods carrier.
	v.StaticFrom = len(v.Fragments)
	v.Fragments = append(v.Fragments, renderConstructors(cd, namespace, deps)...)
	v.Fragments = append(v.Fragments, renderStaticFuncs(append(cloneMembers(cd.StaticFuncs), staticFromGType...), namespace, deps)...)

	return v
}

func appendTypeDiags(v *View, diags []typeresolve.Diagnostic) {
	for _, d := range diags {
		v.Diagnostics = append(v.Diagnostics, d.Message)
	}
}

func cloneMembers(m []model.Member) []model.Member {
	out := make([]model.Member, len(m))
	copy(out, m)
	return out
}

// ancestorEntry is one resolved ancestor or implemented interface, with
// its own ClassDeclaration for member collection.
type ancestorEntry struct {
	QualifiedName string
	Decl          *model.ClassDeclaration
	IsInterface   bool
}

func collectAncestors(cd *model.ClassDeclaration, deps Deps) []ancestorEntry {
	var out []ancestorEntry
	seen := map[string]struct{}{}
	add := func(qn string, isIface bool) {
		if _, ok := seen[qn]; ok {
			return
		}
		decl := deps.Table.Lookup(qn)
		if decl == nil || decl.Class == nil {
			return
		}
		seen[qn] = struct{}{}
		out = append(out, ancestorEntry{QualifiedName: qn, Decl: decl.Class, IsInterface: isIface})
	}
	deps.Index.ClosureWalk(cd.QualifiedName, func(ancestor string) { add(ancestor, false) })
	deps.Index.ForEachInterface(cd.QualifiedName, true, func(iface string) { add(iface, true) })
	return out
}

// reachesRoot walks the parent chain, independent of whether the
// SymbolTable carries a Declaration for each ancestor — the root object
// class itself is frequently outside the module currently being
// emitted, so collectAncestors's table-filtered list cannot be used to
// answer this question.
func reachesRoot(qname string, deps Deps) bool {
	if qname == deps.RootQN {
		return true
	}
	found := false
	deps.Index.ClosureWalk(qname, func(ancestor string) {
		if ancestor == deps.RootQN {
			found = true
		}
	})
	return found
}

func buildFnMap(ancestors []ancestorEntry, deps Deps, pick func(model.ClassDeclaration) []model.Member) overload.Inherited {
	fnMap := overload.Inherited{}
	for _, a := range ancestors {
		for _, m := range pick(*a.Decl) {
			if !m.Signature.Introspectable {
				continue
			}
			if fnMap[m.Name] == nil {
				fnMap[m.Name] = map[string]model.Member{}
			}
			fnMap[m.Name][a.QualifiedName] = m
		}
	}
	return fnMap
}

// dropShadowed removes members whose ShadowedBy names another member in
// the same list, and applies a Shadows override to the emitted name
// (§4.5).
func dropShadowed(members []model.Member) ([]model.Member, []string) {
	var diags []string
	shadowedNames := map[string]struct{}{}
	for _, m := range members {
		if m.Signature.ShadowedBy != "" {
			shadowedNames[m.Name] = struct{}{}
		}
	}
	var out []model.Member
	for _, m := range members {
		if _, dropped := shadowedNames[m.Name]; dropped {
			diags = append(diags, fmt.Sprintf("%s: dropped in favor of its shadowed-by replacement", m.Name))
			continue
		}
		if m.Signature.Shadows != "" {
			m.Name = m.Signature.Shadows
		}
		out = append(out, m)
	}
	return out, diags
}

func methodRenderer(deps Deps) overload.Renderer {
	return func(m model.Member) string {
		ns := model.NamespaceOf(m.OwnerClass)
		rendered, _ := ResolveSignature(m.Signature, ns, deps.Resolver)
		return fmt.Sprintf("%s%s: %s", nameformat.FunctionName(m.Name), RenderParamList(rendered), rendered.Return)
	}
}

func vfuncRenderer(deps Deps) overload.Renderer {
	return func(m model.Member) string {
		ns := model.NamespaceOf(m.OwnerClass)
		rendered, _ := ResolveSignature(m.Signature, ns, deps.Resolver)
		return fmt.Sprintf("vfunc_%s%s: %s", nameformat.FunctionName(m.Name), RenderParamList(rendered), rendered.Return)
	}
}

func splitProperties(props []model.Property) (ordinary, construct []model.Property) {
	for _, p := range props {
		if p.Private || !p.Introspectable {
			continue
		}
		if p.ConstructOnly {
			construct = append(construct, p)
			continue
		}
		ordinary = append(ordinary, p)
	}
	return
}

func collectInheritedProperties(ancestors []ancestorEntry, deps Deps, names *LocalNames, ownProps []model.Property) []model.Property {
	ownNames := map[string]struct{}{}
	for _, p := range ownProps {
		ownNames[p.Name] = struct{}{}
	}
	seen := map[string]struct{}{}
	var out []model.Property
	for _, a := range ancestors {
		for _, p := range a.Decl.Properties {
			if p.Private || !p.Introspectable || p.ConstructOnly {
				continue
			}
			if _, dup := ownNames[p.Name]; dup {
				continue
			}
			if _, dup := seen[p.Name]; dup {
				continue
			}
			seen[p.Name] = struct{}{}
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func renderProperties(props []model.Property, namespace string, deps Deps) []Fragment {
	var out []Fragment
	for _, p := range props {
		t, diags := deps.Resolver.Resolve(p.Type, namespace, false)
		_ = diags
		name := nameformat.PropertyName(p.Name, true)
		marker := ""
		if !p.Writable {
			marker = " // read-only"
		}
		out = append(out, Fragment{Code: fmt.Sprintf("%s: %s;%s", name, t, marker)})
	}
	return out
}

func renderConstructPropsCarrier(cd *model.ClassDeclaration, props []model.Property, namespace string, deps Deps) string {
	body := ""
	for i, p := range props {
		if i > 0 {
			body += " "
		}
		t, _ := deps.Resolver.Resolve(p.Type, namespace, false)
		body += fmt.Sprintf("%s?: %s;", nameformat.PropertyName(p.Name, true), t)
	}
	return fmt.Sprintf("interface %s_ConstructProps { %s }", cd.SimpleName, body)
}

func renderSignals(signals []model.Signal, namespace string, deps Deps) []Fragment {
	var out []Fragment
	for _, s := range signals {
		rendered, diags := ResolveSignature(s.Signature, namespace, deps.Resolver)
		_ = diags
		out = append(out, Fragment{Code: fmt.Sprintf("// signal %q%s: %s", nameformat.SignalName(s.Name), RenderParamList(rendered), rendered.Return)})
	}
	return out
}

func renderSignalHelpers(cd *model.ClassDeclaration, propertyNames map[string]struct{}, ancestors []ancestorEntry, deps Deps) []Fragment {
	var out []Fragment
	for name := range propertyNames {
		out = append(out, Fragment{Code: fmt.Sprintf("connect(sigName: \"notify::%s\", callback: (...args: any[]) => void): number;", nameformat.PropertyName(name, false))})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	helpers := []Fragment{
		{Code: "connect(sigName: string, callback: (...args: any[]) => void): number;"},
		{Code: "connect_after(sigName: string, callback: (...args: any[]) => void): number;"},
		{Code: "emit(sigName: string, ...args: any[]): void;"},
		{Code: "disconnect(id: number): void;"},
	}
	return append(out, helpers...)
}

func renderConstructors(cd *model.ClassDeclaration, namespace string, deps Deps) []Fragment {
	var out []Fragment
	for _, ctor := range cd.Constructors {
		rendered, diags := ResolveSignature(ctor.Signature, namespace, deps.Resolver)
		_ = diags
		out = append(out, Fragment{Code: fmt.Sprintf("static %s%s: %s;", nameformat.FunctionName(ctor.Name), RenderParamList(rendered), cd.SimpleName)})
		if ctor.Name == "new" {
			out = append(out, Fragment{Code: fmt.Sprintf("new %s: %s;", RenderParamList(rendered), cd.SimpleName)})
		}
	}
	return out
}

func renderStaticFuncs(funcs []model.Member, namespace string, deps Deps) []Fragment {
	var out []Fragment
	for _, fn := range funcs {
		rendered, diags := ResolveSignature(fn.Signature, namespace, deps.Resolver)
		_ = diags
		out = append(out, Fragment{Code: fmt.Sprintf("static %s%s: %s;", nameformat.FunctionName(fn.Name), RenderParamList(rendered), rendered.Return)})
	}
	return out
}

// findGTypeStructMethods locates the same-namespace record whose
// glib:is-gtype-struct-for equals classQN and returns its methods as
// static class methods (§4.5, §8 scenario 5).
func findGTypeStructMethods(classQN string, deps Deps) []model.Member {
	namespace := model.NamespaceOf(classQN)
	mod := deps.Table.Lookup(classQN)
	if mod == nil || mod.Owner == nil {
		return nil
	}
	var out []model.Member
	for _, d := range mod.Owner.Decls {
		if d.Kind != model.KindRecord || d.Record == nil {
			continue
		}
		if d.Record.IsGTypeStructFor == "" {
			continue
		}
		target := d.Record.IsGTypeStructFor
		if model.NamespaceOf(target) == target { // bare name, qualify against same namespace
			target = namespace + "." + target
		}
		if target != classQN {
			continue
		}
		for _, m := range d.Record.Methods {
			m.OwnerClass = classQN
			out = append(out, m)
		}
	}
	return out
}
