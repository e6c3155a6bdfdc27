package loadmodule

import (
	"fmt"

	"github.com/girsurface/girsurface/internal/model"
)

// Link resolves every module's raw <include> list against the full set of
// loaded modules (keyed by "<namespace>-<version>" — the same key used
// for Module.PackageName), populating Directs in <include> order and the
// transitively-closed Closure (§3's Module entity).
//
// A namespace pair that includes each other directly or transitively is a
// structural cycle distinct from the inheritance cycle of §4.4/§8
// scenario 6 (SPEC_FULL §3.2) — both modules in the cycle are reported via
// unresolved and dropped from the returned ready set; everything not
// touched by a cycle links normally.
func Link(modules []*model.Module, includes map[*model.Module][]Include) (ready []*model.Module, unresolved map[*model.Module]error) {
	byKey := make(map[string]*model.Module, len(modules))
	for _, m := range modules {
		byKey[m.PackageName] = m
	}

	unresolved = make(map[*model.Module]error)

	for _, m := range modules {
		for _, inc := range includes[m] {
			key := inc.Name + "-" + inc.Version
			dep, ok := byKey[key]
			if !ok {
				unresolved[m] = ErrUnresolvedInclude(inc.Name, inc.Version)
				continue
			}
			m.Directs = append(m.Directs, dep)
		}
	}

	cyclic := make(map[*model.Module]bool)
	for _, m := range modules {
		if detectCycle(m, m, make(map[*model.Module]bool)) {
			cyclic[m] = true
		}
	}
	for m := range cyclic {
		unresolved[m] = fmt.Errorf("circular include involving %s", m.PackageName)
	}

	for _, m := range modules {
		if cyclic[m] {
			continue
		}
		m.Closure = closureOf(m, cyclic)
		ready = append(ready, m)
	}
	return ready, unresolved
}

func detectCycle(start, current *model.Module, visited map[*model.Module]bool) bool {
	for _, dep := range current.Directs {
		if dep == start {
			return true
		}
		if visited[dep] {
			continue
		}
		visited[dep] = true
		if detectCycle(start, dep, visited) {
			return true
		}
	}
	return false
}

func closureOf(m *model.Module, cyclic map[*model.Module]bool) map[string]*model.Module {
	closure := make(map[string]*model.Module)
	stack := append([]*model.Module{}, m.Directs...)
	for len(stack) > 0 {
		dep := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cyclic[dep] {
			continue
		}
		key := dep.PackageName
		if _, seen := closure[key]; seen {
			continue
		}
		closure[key] = dep
		stack = append(stack, dep.Directs...)
	}
	return closure
}
