// Package inheritance implements InheritanceIndex (C4): parent-and-
// interface adjacency plus the closure walkers the member synthesizer and
// overload reconciler drive. The parent-chain walk is an iterative loop
// with an explicit depth counter; the interface walk recurses with a depth
// argument. Both are bounded by MaxRecursion and guard revisits through a
// diamond with a visited set, per the teacher's own seen-set dedup idiom
// in internal/graph.go's BuildCallGraph, generalized from "already-edged"
// to "already-visited".
package inheritance

import (
	"fmt"

	"github.com/girsurface/girsurface/internal/model"
	"github.com/girsurface/girsurface/internal/symtab"
)

// MaxRecursion bounds the inheritance/prerequisite walk depth (§4.4, §5).
const MaxRecursion = 100

// RootObjectQualifiedName is the fallback superclass used when a parent
// reference cannot be resolved through the SymbolTable (§3 invariant).
const RootObjectQualifiedName = "GObject.Object"

// Edge is one adjacency entry: a parent or implemented-interface
// qualified name, in declaration order.
type Edge struct {
	QualifiedName string
	IsInterface   bool
}

// Index is the populated, read-only (after Build) adjacency map.
type Index struct {
	adjacency map[string][]Edge
	symtab    *symtab.Table
}

// Diagnostic is a non-fatal event raised while walking or building the
// index (§7 circular-inheritance, recursion-depth-exceeded,
// dependency-not-found's "unresolved" variant).
type Diagnostic struct {
	Message string
}

// Build populates an Index from the given Class/Interface declarations,
// resolving each parent and implements/prerequisite reference through
// table; declarations without a Class payload are skipped. It must run after SymbolTable population completes
// and before any emission begins (§3, §5).
func Build(table *symtab.Table, classes []*model.Declaration) (*Index, []Diagnostic) {
	idx := &Index{adjacency: make(map[string][]Edge), symtab: table}
	var diags []Diagnostic

	for _, decl := range classes {
		if decl.Class == nil {
			continue
		}
		cd := decl.Class
		var edges []Edge

		if !cd.IsInterface && cd.Parent != "" {
			if table.Lookup(cd.Parent) == nil {
				diags = append(diags, Diagnostic{
					Message: fmt.Sprintf("%s: parent %q unresolved, falling back to %s", cd.QualifiedName, cd.Parent, RootObjectQualifiedName),
				})
				edges = append(edges, Edge{QualifiedName: RootObjectQualifiedName})
			} else {
				edges = append(edges, Edge{QualifiedName: cd.Parent})
			}
		}
		for _, iface := range cd.Implements {
			target := table.Lookup(iface)
			if target == nil {
				diags = append(diags, Diagnostic{
					Message: fmt.Sprintf("%s: implements/prerequisite %q unresolved", cd.QualifiedName, iface),
				})
				continue
			}
			// An interface may require a concrete class as a prerequisite;
			// that edge is recorded as a non-interface edge.
			edges = append(edges, Edge{QualifiedName: iface, IsInterface: target.Kind != model.KindClass})
		}
		idx.adjacency[cd.QualifiedName] = edges
	}
	return idx, diags
}

// ClosureWalk performs a depth-first walk up the parent chain starting
// at qname, calling visit for every ancestor (not including qname
// itself). Bounded by MaxRecursion; a parent equal to the starting
// qualified name halts the walk with a cycle diagnostic (§4.4, §8
// scenario 6).
func (idx *Index) ClosureWalk(qname string, visit func(ancestor string)) []Diagnostic {
	var diags []Diagnostic
	visited := map[string]struct{}{}
	current := qname
	for depth := 0; depth < MaxRecursion; depth++ {
		parent := idx.parentOf(current)
		if parent == "" {
			return diags
		}
		if parent == qname {
			diags = append(diags, Diagnostic{Message: fmt.Sprintf("Circular dependency found: %s", qname)})
			return diags
		}
		if _, seen := visited[parent]; seen {
			return diags
		}
		visited[parent] = struct{}{}
		visit(parent)
		current = parent
	}
	diags = append(diags, Diagnostic{Message: fmt.Sprintf("%s: recursion depth exceeded walking parent chain", qname)})
	return diags
}

// parentOf returns the single non-interface edge for qname, or "".
func (idx *Index) parentOf(qname string) string {
	for _, e := range idx.adjacency[qname] {
		if !e.IsInterface {
			return e.QualifiedName
		}
	}
	return ""
}

// ForEachInterface visits every interface implemented by qname, then
// recurses through each interface's own prerequisites. When
// recurseObjects is true, an object-class prerequisite (encountered as a
// non-interface edge on an interface — GIR interfaces may require a
// concrete class) is visited together with its parent chain; when
// false, such prerequisites are skipped (§4.4).
func (idx *Index) ForEachInterface(qname string, recurseObjects bool, visit func(iface string)) []Diagnostic {
	var diags []Diagnostic
	visited := map[string]struct{}{}
	idx.walkInterfaces(qname, recurseObjects, visited, visit, 0, &diags)
	return diags
}

func (idx *Index) walkInterfaces(qname string, recurseObjects bool, visited map[string]struct{}, visit func(string), depth int, diags *[]Diagnostic) {
	if depth >= MaxRecursion {
		*diags = append(*diags, Diagnostic{Message: fmt.Sprintf("%s: recursion depth exceeded walking interfaces", qname)})
		return
	}
	for _, e := range idx.adjacency[qname] {
		if !e.IsInterface {
			// At depth 0 this is qname's own parent; deeper, qname is an
			// interface and this is one of its object-class prerequisites.
			if depth > 0 && recurseObjects {
				idx.walkObjectPrerequisite(e.QualifiedName, visited, visit, depth+1, diags)
			}
			continue
		}
		if _, seen := visited[e.QualifiedName]; seen {
			continue
		}
		visited[e.QualifiedName] = struct{}{}
		visit(e.QualifiedName)
		// An interface's own prerequisites are recorded as edges on that
		// interface's adjacency entry.
		idx.walkInterfaces(e.QualifiedName, recurseObjects, visited, visit, depth+1, diags)
	}
}

func (idx *Index) walkObjectPrerequisite(qname string, visited map[string]struct{}, visit func(string), depth int, diags *[]Diagnostic) {
	if depth >= MaxRecursion {
		*diags = append(*diags, Diagnostic{Message: fmt.Sprintf("%s: recursion depth exceeded walking object prerequisite", qname)})
		return
	}
	current := qname
	for depth < MaxRecursion {
		if _, seen := visited[current]; seen {
			return
		}
		visited[current] = struct{}{}
		visit(current)
		parent := idx.parentOf(current)
		if parent == "" || parent == qname {
			return
		}
		current = parent
		depth++
	}
}
