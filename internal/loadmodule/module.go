// Package loadmodule sits between discovery and the SymbolTable/
// InheritanceIndex populate phase: it turns one parsed GIR document into a
// model.Module plus its Declarations, inserts introspectable constructs
// into the SymbolTable (§4.3), and resolves <include> edges into the
// Module dependency graph (§3's Module entity, transitively-closed
// dependency set).
package loadmodule

import (
	"fmt"

	"github.com/girsurface/girsurface/internal/girxml"
	"github.com/girsurface/girsurface/internal/model"
	"github.com/girsurface/girsurface/internal/symtab"
)

// BuildModule converts a parsed GIR document into a model.Module and
// populates table with every introspectable construct the namespace
// declares. It does not resolve <include> edges — that is Link's job,
// once every module in a run has been built — but it returns the raw
// include list alongside the module so the caller can hand it to Link.
func BuildModule(repo *girxml.Repository, table *symtab.Table) (*model.Module, []Include) {
	ns := repo.Namespace
	mod := &model.Module{
		Namespace:   ns.Name,
		Version:     ns.Version,
		PackageName: ns.Name + "-" + ns.Version,
		Closure:     make(map[string]*model.Module),
	}

	add := func(kind model.DeclKind, simpleName string, introspect bool, build func(*model.Declaration)) {
		if !introspect {
			return
		}
		decl := &model.Declaration{
			Kind:           kind,
			SimpleName:     simpleName,
			Owner:          mod,
			Introspectable: true,
		}
		build(decl)
		mod.Decls = append(mod.Decls, decl)
		table.Insert(mod.QualifiedName(simpleName), decl)
	}

	for _, e := range ns.Enumerations {
		e := e
		add(model.KindEnumeration, e.Name, introspectable(e.Introspectable), func(d *model.Declaration) {
			d.Enum = &model.EnumDeclaration{Members: convertEnumMembers(e.Members)}
		})
	}
	for _, e := range ns.Bitfields {
		e := e
		add(model.KindBitfield, e.Name, introspectable(e.Introspectable), func(d *model.Declaration) {
			d.Enum = &model.EnumDeclaration{Members: convertEnumMembers(e.Members), IsBitfield: true}
		})
	}
	for _, c := range ns.Constants {
		c := c
		add(model.KindConstant, c.Name, introspectable(c.Introspectable), func(d *model.Declaration) {
			d.Constant = &model.ConstantDeclaration{Type: convertType(c.Type, c.Array), Value: c.Value}
		})
	}
	for _, a := range ns.Aliases {
		a := a
		add(model.KindAlias, a.Name, introspectable(a.Introspectable), func(d *model.Declaration) {
			d.Alias = &model.AliasDeclaration{Target: convertType(a.Type, a.Array)}
		})
	}
	for _, cb := range ns.Callbacks {
		cb := cb
		add(model.KindCallback, cb.Name, introspectable(cb.Introspectable), func(d *model.Declaration) {
			sig := convertSignature(cb.Parameters, cb.ReturnValue)
			d.Callback = &model.CallbackDeclaration{Signature: sig}
		})
	}
	for _, fn := range ns.Functions {
		fn := fn
		add(model.KindFunction, fn.Name, introspectable(fn.Introspectable), func(d *model.Declaration) {
			sig := convertSignature(fn.Parameters, fn.ReturnValue)
			sig.ShadowedBy = fn.ShadowedBy
			sig.Shadows = fn.Shadows
			sig.CIdentifier = fn.CIdentifier
			d.Function = &model.FunctionDeclaration{Signature: sig}
		})
	}
	for _, r := range ns.Records {
		r := r
		add(model.KindRecord, r.Name, introspectable(r.Introspectable), func(d *model.Declaration) {
			d.Record = buildRecord(r)
		})
	}
	for _, u := range ns.Unions {
		u := u
		add(model.KindUnion, u.Name, introspectable(u.Introspectable), func(d *model.Declaration) {
			rec := buildRecordFromUnion(u)
			d.Record = rec
		})
	}
	for _, c := range ns.Classes {
		c := c
		qualifiedParent := c.Parent
		add(model.KindClass, c.Name, introspectable(c.Introspectable), func(d *model.Declaration) {
			d.Class = buildClass(mod, c, qualifiedParent)
		})
	}
	for _, i := range ns.Interfaces {
		i := i
		add(model.KindInterface, i.Name, introspectable(i.Introspectable), func(d *model.Declaration) {
			d.Class = buildInterface(mod, i)
		})
	}

	var includes []Include
	for _, inc := range repo.Includes {
		includes = append(includes, Include{Name: inc.Name, Version: inc.Version})
	}
	return mod, includes
}

// Include is a raw <include> edge, namespace + version, prior to
// resolution against the discovered module set.
type Include struct {
	Name    string
	Version string
}

func convertEnumMembers(members []girxml.Member) []model.EnumMember {
	out := make([]model.EnumMember, 0, len(members))
	for _, m := range members {
		out = append(out, model.EnumMember{
			RawName:     m.Name,
			Value:       m.Value,
			CIdentifier: m.CIdentifier,
			GLibNick:    m.GLibNick,
		})
	}
	return out
}

func buildRecord(r girxml.Record) *model.RecordDeclaration {
	rec := &model.RecordDeclaration{IsGTypeStructFor: r.GLibIsGTypeStruct}
	for _, f := range r.Fields {
		rec.Fields = append(rec.Fields, convertField(f))
	}
	for _, m := range r.Methods {
		rec.Methods = append(rec.Methods, convertCallable(m))
	}
	for _, c := range r.Constructors {
		rec.Constructors = append(rec.Constructors, convertCallable(c))
	}
	return rec
}

func buildRecordFromUnion(u girxml.Union) *model.RecordDeclaration {
	rec := &model.RecordDeclaration{IsUnion: true}
	for _, f := range u.Fields {
		rec.Fields = append(rec.Fields, convertField(f))
	}
	for _, m := range u.Methods {
		rec.Methods = append(rec.Methods, convertCallable(m))
	}
	return rec
}

func buildClass(mod *model.Module, c girxml.Class, parentRaw string) *model.ClassDeclaration {
	cd := &model.ClassDeclaration{
		SimpleName:       c.Name,
		QualifiedName:    mod.QualifiedName(c.Name),
		Parent:           qualifyIfBare(mod, parentRaw),
		IsGTypeStructFor: c.GLibIsGTypeStruct,
		Abstract:         boolAttr(c.Abstract),
	}
	for _, impl := range c.Implements {
		cd.Implements = append(cd.Implements, qualifyIfBare(mod, impl.Name))
	}
	for _, f := range c.Fields {
		cd.Fields = append(cd.Fields, convertField(f))
	}
	for _, p := range c.Properties {
		cd.Properties = append(cd.Properties, convertProperty(p))
	}
	for _, m := range c.Methods {
		if !introspectable(m.Introspectable) {
			continue
		}
		cd.Methods = append(cd.Methods, toMember(cd.QualifiedName, m, false))
	}
	for _, v := range c.VirtualMethods {
		if !introspectable(v.Introspectable) {
			continue
		}
		cd.VirtualMethods = append(cd.VirtualMethods, toMember(cd.QualifiedName, v, true))
	}
	for _, ctor := range c.Constructors {
		if !introspectable(ctor.Introspectable) {
			continue
		}
		cd.Constructors = append(cd.Constructors, toMember(cd.QualifiedName, ctor, false))
	}
	for _, fn := range c.Functions {
		if !introspectable(fn.Introspectable) {
			continue
		}
		cd.StaticFuncs = append(cd.StaticFuncs, toMember(cd.QualifiedName, fn, false))
	}
	for _, s := range c.Signals {
		if !introspectable(s.Introspectable) {
			continue
		}
		cd.Signals = append(cd.Signals, convertSignal(s))
	}
	return cd
}

func buildInterface(mod *model.Module, i girxml.Interface) *model.ClassDeclaration {
	cd := &model.ClassDeclaration{
		SimpleName:    i.Name,
		QualifiedName: mod.QualifiedName(i.Name),
		IsInterface:   true,
	}
	for _, pre := range i.Prerequisites {
		cd.Implements = append(cd.Implements, qualifyIfBare(mod, pre.Name))
	}
	for _, p := range i.Properties {
		cd.Properties = append(cd.Properties, convertProperty(p))
	}
	for _, m := range i.Methods {
		if !introspectable(m.Introspectable) {
			continue
		}
		cd.Methods = append(cd.Methods, toMember(cd.QualifiedName, m, false))
	}
	for _, v := range i.VirtualMethods {
		if !introspectable(v.Introspectable) {
			continue
		}
		cd.VirtualMethods = append(cd.VirtualMethods, toMember(cd.QualifiedName, v, true))
	}
	for _, s := range i.Signals {
		if !introspectable(s.Introspectable) {
			continue
		}
		cd.Signals = append(cd.Signals, convertSignal(s))
	}
	return cd
}

func toMember(owner string, fn girxml.Function, isVirtual bool) model.Member {
	m := convertCallable(fn)
	m.OwnerClass = owner
	m.IsVirtual = isVirtual
	return m
}

// qualifyIfBare qualifies a name with mod's namespace when it carries no
// "." already — GIR local references inside a namespace omit the
// namespace prefix (§4.2 step 6).
func qualifyIfBare(mod *model.Module, name string) string {
	if name == "" {
		return ""
	}
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			return name
		}
	}
	return mod.QualifiedName(name)
}

// Error returned by Link when a module's <include> cannot be resolved
// against the discovered module set (§7 dependency-not-found, non-fatal —
// this constructor is used by callers that escalate it for this
// particular edge, per SPEC_FULL §3.2's include-cycle exception).
func ErrUnresolvedInclude(namespace, version string) error {
	return fmt.Errorf("unresolved include: %s-%s", namespace, version)
}
