// Package symtab implements SymbolTable (C3): the cross-module mapping
// from fully-qualified name to Declaration. Grounded on the defines-index
// pattern in the teacher's internal/graph/graph.go (map[string]map[string
// ]struct{} built by one pass over every file's tags) generalized to a
// single global map with a keep-first duplicate policy, per §9's Open
// Question resolution.
package symtab

import (
	"sync"

	"github.com/girsurface/girsurface/internal/model"
)

// Conflict records a duplicate-symbol insertion attempt: the name, the
// module that won (kept first), and the module that lost.
type Conflict struct {
	QualifiedName string
	Kept          *model.Module
	Rejected      *model.Module
}

// Table is the global, process-wide SymbolTable. It is built during the
// populate phase and becomes read-only for the emission phase (§5); the
// mutex exists only to make that discipline safe to violate accidentally
// in tests, not because concurrent population is part of the design.
type Table struct {
	mu        sync.RWMutex
	decls     map[string]*model.Declaration
	conflicts []Conflict
}

// New returns an empty SymbolTable.
func New() *Table {
	return &Table{decls: make(map[string]*model.Declaration)}
}

// Insert adds decl under qname. If qname is already present, the
// existing entry is kept, the new one is rejected, and the rejection is
// recorded as a Conflict for the caller to turn into a diagnostic (§3
// invariant, §7 duplicate-symbol).
func (t *Table) Insert(qname string, decl *model.Declaration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if existing, ok := t.decls[qname]; ok {
		t.conflicts = append(t.conflicts, Conflict{
			QualifiedName: qname,
			Kept:          existing.Owner,
			Rejected:      decl.Owner,
		})
		return
	}
	decl.QualifiedName = qname
	t.decls[qname] = decl
}

// Lookup returns the Declaration registered under qname, or nil.
func (t *Table) Lookup(qname string) *model.Declaration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.decls[qname]
}

// Conflicts returns every duplicate-symbol rejection recorded so far, in
// insertion order.
func (t *Table) Conflicts() []Conflict {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Conflict, len(t.conflicts))
	copy(out, t.conflicts)
	return out
}

// Len returns the number of distinct qualified names registered.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.decls)
}
