// Package emit implements NamespaceEmitter (C7): the outermost stage
// that sequences a whole module's declarations into one emitted document
// — header, imports, enums/bitfields, constants, module functions,
// callbacks, interfaces, classes, records/unions, aliases — driving
// internal/synth for every class/interface body and internal/typeresolve
// directly for the leaf declaration kinds. Grounded on the teacher's
// internal/toon.Encode: one pass building a string via strings.Builder,
// no templating library, matching Design Note §9's "string building over
// a templating engine" guidance.
package emit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/girsurface/girsurface/internal/inheritance"
	"github.com/girsurface/girsurface/internal/model"
	"github.com/girsurface/girsurface/internal/nameformat"
	"github.com/girsurface/girsurface/internal/symtab"
	"github.com/girsurface/girsurface/internal/synth"
	"github.com/girsurface/girsurface/internal/typeresolve"
)

// Overrides is the per-module template-override collaborator (§4.7): a
// verbatim fragment of target-surface source inserted between the
// interface and class sections of the named module, if present.
type Overrides map[string]string

// Renderer is the pretty-printer/template external collaborator §3.4
// describes: the core calls it through this interface for the runtime
// stub and the per-module override concatenation and never inspects its
// internals, so a caller may supply a different Renderer (one backed by
// a real template engine) without touching the rest of this package.
type Renderer interface {
	Render(templateName string, bindings map[string]string) (string, error)
}

// defaultRenderer builds output via plain string concatenation, the
// demonstrated idiom for this package (see the package doc) rather than
// a templating library.
type defaultRenderer struct{}

func (defaultRenderer) Render(templateName string, bindings map[string]string) (string, error) {
	switch templateName {
	case "runtime-stub":
		return renderRuntimeStub(bindings), nil
	case "override":
		return bindings["content"], nil
	default:
		return "", fmt.Errorf("emit: no template named %q", templateName)
	}
}

// renderRuntimeStub builds the module's runtime glue file (§6 "a
// templated file containing the module's runtime glue"): a GJS
// imports.gi re-export, or a node-gtk require() call when targeting
// node.
func renderRuntimeStub(bindings map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// Generated runtime glue for %s.\n", bindings["packageName"])
	if bindings["environment"] == "node" {
		fmt.Fprintf(&b, "module.exports = require(\"node-gtk\").require(%q, %q);\n", bindings["namespace"], bindings["version"])
	} else {
		fmt.Fprintf(&b, "export default imports.gi.%s;\n", bindings["namespace"])
	}
	return b.String()
}

// Result is one module's emitted documents plus the diagnostics raised
// while building them: the target-surface declaration file (Source) and
// the runtime stub file (Stub), per §6's "one target-surface declaration
// file, plus one runtime stub file."
type Result struct {
	Namespace   string
	Source      string
	Stub        string
	Diagnostics []string
}

// Options configures one emission run.
type Options struct {
	Table       *symtab.Table
	Index       *inheritance.Index
	Resolver    *typeresolve.Resolver
	RootQN      string
	Overrides   Overrides
	Renderer    Renderer
	Environment string // propagated into the runtime stub's bindings
	BuildType   string // "types" wraps the declarations in a declare namespace block; "lib" does not
	Decompose   bool   // §4.7: true switches classes to the interface-plus-constructor decomposition
}

// Emit renders mod's full document. mod's own Decls, in their original
// GIR declaration order within each construct kind, are grouped into the
// fixed section sequence of §4.7.
func Emit(mod *model.Module, opts Options) Result {
	opts.Resolver.SetLocalModule(mod.Namespace)
	if opts.Renderer == nil {
		opts.Renderer = defaultRenderer{}
	}
	var b strings.Builder
	var decls strings.Builder
	var diags []string

	writeHeader(&b, mod)
	writeImports(&b, mod, opts.RootQN)

	var enums, bitfields, constants, fns, callbacks, ifaces, classes, records, unions, aliases []*model.Declaration
	for _, d := range mod.Decls {
		switch d.Kind {
		case model.KindEnumeration:
			enums = append(enums, d)
		case model.KindBitfield:
			bitfields = append(bitfields, d)
		case model.KindConstant:
			constants = append(constants, d)
		case model.KindFunction:
			fns = append(fns, d)
		case model.KindCallback:
			callbacks = append(callbacks, d)
		case model.KindInterface:
			ifaces = append(ifaces, d)
		case model.KindClass:
			classes = append(classes, d)
		case model.KindRecord:
			records = append(records, d)
		case model.KindUnion:
			unions = append(unions, d)
		case model.KindAlias:
			aliases = append(aliases, d)
		}
	}

	for _, d := range enums {
		writeEnum(&decls, d.SimpleName, d.Enum, &diags, d.QualifiedName)
	}
	for _, d := range bitfields {
		writeEnum(&decls, d.SimpleName, d.Enum, &diags, d.QualifiedName)
	}
	for _, d := range constants {
		writeConstant(&decls, d, opts.Resolver, mod.Namespace)
	}
	for _, d := range fns {
		writeFunction(&decls, d, opts.Resolver, mod.Namespace)
	}
	for _, d := range callbacks {
		writeCallback(&decls, d, opts.Resolver, mod.Namespace)
	}
	for _, d := range ifaces {
		writeClassLike(&decls, d, opts, &diags)
	}
	if override, ok := opts.Overrides[mod.Namespace]; ok {
		rendered, err := opts.Renderer.Render("override", map[string]string{"content": override})
		if err != nil {
			diags = append(diags, err.Error())
		} else {
			decls.WriteString("\n// --- begin module override ---\n")
			decls.WriteString(rendered)
			decls.WriteString("\n// --- end module override ---\n")
		}
	}
	for _, d := range classes {
		writeClassLike(&decls, d, opts, &diags)
	}
	for _, d := range records {
		writeRecord(&decls, d, opts, &diags)
	}
	for _, d := range unions {
		writeRecord(&decls, d, opts, &diags)
	}
	for _, d := range aliases {
		if mod.IsRootObjectModule() && d.SimpleName == "Type" {
			// §4.7: the root object module's own type-handle alias is
			// suppressed — every other module's references to it resolve
			// through the named-type override instead of a redeclared alias.
			continue
		}
		writeAlias(&decls, d, opts.Resolver, mod.Namespace)
	}

	if opts.BuildType == "types" {
		fmt.Fprintf(&b, "declare namespace %s {\n", mod.Namespace)
		indentInto(&b, decls.String())
		b.WriteString("}\n")
	} else {
		b.WriteString(decls.String())
	}

	stub, err := opts.Renderer.Render("runtime-stub", map[string]string{
		"namespace":   mod.Namespace,
		"version":     mod.Version,
		"packageName": mod.PackageName,
		"environment": opts.Environment,
	})
	if err != nil {
		diags = append(diags, err.Error())
	}

	return Result{Namespace: mod.Namespace, Source: b.String(), Stub: stub, Diagnostics: diags}
}

// indentInto writes s into b with every line indented two spaces, for
// nesting the declaration body inside a declare namespace block.
func indentInto(b *strings.Builder, s string) {
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		if line == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func writeHeader(b *strings.Builder, mod *model.Module) {
	fmt.Fprintf(b, "// Generated declarations for %s.\n\n", mod.PackageName)
}

func writeImports(b *strings.Builder, mod *model.Module, rootQN string) {
	rootNamespace := model.NamespaceOf(rootQN)
	imported := map[string]struct{}{}
	if mod.Namespace != rootNamespace {
		fmt.Fprintf(b, "import * as %s from \"%s\";\n", rootNamespace, rootNamespace)
		imported[rootNamespace] = struct{}{}
	}
	names := make([]string, 0, len(mod.Directs))
	for _, dep := range mod.Directs {
		names = append(names, dep.Namespace)
	}
	sort.Strings(names)
	for _, ns := range names {
		if ns == mod.Namespace {
			continue
		}
		if _, ok := imported[ns]; ok {
			continue
		}
		imported[ns] = struct{}{}
		fmt.Fprintf(b, "import * as %s from \"%s\";\n", ns, ns)
	}
	b.WriteString("\n")
}

func writeEnum(b *strings.Builder, name string, ed *model.EnumDeclaration, diags *[]string, qname string) {
	kind := "enum"
	fmt.Fprintf(b, "export %s %s {\n", kind, name)
	for _, m := range ed.Members {
		if nameformat.StartsWithDigit(m.RawName) {
			*diags = append(*diags, fmt.Sprintf("%s: enum member %q needs a numeric-prefix escape", qname, m.RawName))
			fmt.Fprintf(b, "  // %s, — invalid, starts with a number\n", m.RawName)
			continue
		}
		fmt.Fprintf(b, "  %s,\n", nameformat.EnumValueName(m.RawName))
	}
	b.WriteString("}\n\n")
}

func writeConstant(b *strings.Builder, d *model.Declaration, resolver *typeresolve.Resolver, namespace string) {
	t, _ := resolver.Resolve(d.Constant.Type, namespace, false)
	fmt.Fprintf(b, "export const %s: %s;\n", nameformat.ConstantName(d.SimpleName), t)
}

func writeFunction(b *strings.Builder, d *model.Declaration, resolver *typeresolve.Resolver, namespace string) {
	rendered, _ := synth.ResolveSignature(d.Function.Signature, namespace, resolver)
	fmt.Fprintf(b, "export function %s%s: %s;\n", nameformat.FunctionName(d.SimpleName), synth.RenderParamList(rendered), rendered.Return)
}

func writeCallback(b *strings.Builder, d *model.Declaration, resolver *typeresolve.Resolver, namespace string) {
	rendered, _ := synth.ResolveSignature(d.Callback.Signature, namespace, resolver)
	fmt.Fprintf(b, "export type %s = %s => %s;\n", nameformat.TypeName(d.SimpleName), synth.RenderParamList(rendered), rendered.Return)
}

func writeAlias(b *strings.Builder, d *model.Declaration, resolver *typeresolve.Resolver, namespace string) {
	t, _ := resolver.Resolve(d.Alias.Target, namespace, false)
	fmt.Fprintf(b, "export type %s = %s;\n", nameformat.TypeName(d.SimpleName), t)
}

func writeClassLike(b *strings.Builder, d *model.Declaration, opts Options, diags *[]string) {
	deps := synth.Deps{Table: opts.Table, Index: opts.Index, Resolver: opts.Resolver, RootQN: opts.RootQN}
	view := synth.BuildClassView(d, deps)
	*diags = append(*diags, view.Diagnostics...)

	if opts.Decompose && !d.Class.IsInterface {
		writeDecomposedClass(b, d, view, opts)
		return
	}

	keyword := "class"
	extends := ""
	if d.Class.IsInterface {
		keyword = "interface"
	} else if d.Class.Parent != "" {
		extends = " extends " + opts.Resolver.StripPublicPrefix(d.Class.Parent, d.Class.QualifiedName)
	}
	implementsClause := ""
	if len(d.Class.Implements) > 0 && !d.Class.IsInterface {
		implementsClause = " implements " + joinNames(d.Class.Implements, opts.Resolver, d.Class.QualifiedName)
	} else if len(d.Class.Implements) > 0 {
		extends = " extends " + joinNames(d.Class.Implements, opts.Resolver, d.Class.QualifiedName)
	}

	fmt.Fprintf(b, "export %s %s%s%s {\n", keyword, nameformat.TypeName(d.SimpleName), extends, implementsClause)
	for _, frag := range view.Fragments {
		if frag.Comment != "" {
			fmt.Fprintf(b, "  // %s\n", frag.Comment)
		}
		if frag.Code != "" {
			fmt.Fprintf(b, "  %s\n", frag.Code)
		}
	}
	b.WriteString("}\n\n")
}

// writeDecomposedClass renders a class as the interface-plus-constructor
// pair of §4.7 ("inheritance: bool switches classes to the
// interface-plus-constructor decomposition"): an interface carrying every
// instance member, extending the parent class and any implemented
// interfaces (a TypeScript interface may only extend, never implement),
// plus a const binding typed as an object literal carrying the
// constructor signature and every static member.
func writeDecomposedClass(b *strings.Builder, d *model.Declaration, view *synth.View, opts Options) {
	cd := d.Class
	name := nameformat.TypeName(d.SimpleName)

	var extendsNames []string
	if cd.Parent != "" {
		extendsNames = append(extendsNames, opts.Resolver.StripPublicPrefix(cd.Parent, cd.QualifiedName))
	}
	for _, impl := range cd.Implements {
		extendsNames = append(extendsNames, opts.Resolver.StripPublicPrefix(impl, cd.QualifiedName))
	}
	extends := ""
	if len(extendsNames) > 0 {
		extends = " extends " + strings.Join(extendsNames, ", ")
	}

	fmt.Fprintf(b, "export interface %s%s {\n", name, extends)
	for _, frag := range view.Fragments[:view.StaticFrom] {
		if frag.Comment != "" {
			fmt.Fprintf(b, "  // %s\n", frag.Comment)
		}
		if frag.Code != "" {
			fmt.Fprintf(b, "  %s\n", frag.Code)
		}
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "export const %s: {\n", name)
	for _, frag := range view.Fragments[view.StaticFrom:] {
		code := strings.TrimPrefix(frag.Code, "static ")
		if frag.Comment != "" {
			fmt.Fprintf(b, "  // %s\n", frag.Comment)
		}
		if code != "" {
			fmt.Fprintf(b, "  %s\n", code)
		}
	}
	b.WriteString("};\n\n")
}

func joinNames(qnames []string, resolver *typeresolve.Resolver, from string) string {
	out := make([]string, len(qnames))
	for i, qn := range qnames {
		out[i] = resolver.StripPublicPrefix(qn, from)
	}
	return strings.Join(out, ", ")
}

func writeRecord(b *strings.Builder, d *model.Declaration, opts Options, diags *[]string) {
	rec := d.Record
	fmt.Fprintf(b, "export class %s {\n", nameformat.TypeName(d.SimpleName))
	for _, f := range rec.Fields {
		if f.Private || !f.Introspectable {
			continue
		}
		t, dd := opts.Resolver.Resolve(f.Type, model.NamespaceOf(d.QualifiedName), false)
		for _, dg := range dd {
			*diags = append(*diags, dg.Message)
		}
		fmt.Fprintf(b, "  %s: %s;\n", nameformat.FieldName(f.Name), t)
	}
	for _, ctor := range rec.Constructors {
		rendered, _ := synth.ResolveSignature(ctor.Signature, model.NamespaceOf(d.QualifiedName), opts.Resolver)
		fmt.Fprintf(b, "  static %s%s: %s;\n", nameformat.FunctionName(ctor.Name), synth.RenderParamList(rendered), d.SimpleName)
	}
	for _, m := range rec.Methods {
		rendered, _ := synth.ResolveSignature(m.Signature, model.NamespaceOf(d.QualifiedName), opts.Resolver)
		fmt.Fprintf(b, "  %s%s: %s;\n", nameformat.FunctionName(m.Name), synth.RenderParamList(rendered), rendered.Return)
	}
	b.WriteString("}\n\n")
}
