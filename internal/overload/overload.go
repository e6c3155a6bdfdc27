// Package overload implements OverloadReconciler (C6): collating
// inherited members against a class's own direct methods, detecting
// signature clashes, and emitting the shadow declarations and
// commentary fragments a colliding name needs. The canonicalization
// tokenizer follows Design Note §9 literally — "implementable as a small
// tokenizer; do not attempt to parse the full target-surface grammar" —
// so, unlike every other component, this one is deliberately built on
// the standard library's strings/regexp rather than reaching for a
// third-party parser: the spec's own design note rules out the one thing
// a parsing library would buy here (a real grammar), and the stripping
// rules are a two-line regex contract, the teacher's own level of
// machinery for transforms like CollapseWhitespace in internal/lang.
package overload

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/girsurface/girsurface/internal/model"
)

var (
	blockComment = regexp.MustCompile(`/\*.*?\*/`)
	namedParam   = regexp.MustCompile(`\b[A-Za-z_$][A-Za-z0-9_$]*(\??):`)
)

// Canonicalize reduces a rendered parameter-list fragment to the
// comparison form of §4.6: strip block comments, then rewrite every
// "name:" token to ":" and every "name?:" token to "?:".
func Canonicalize(signature string) string {
	s := blockComment.ReplaceAllString(signature, "")
	return namedParam.ReplaceAllString(s, "$1:")
}

// SignaturesMatch reports whether two rendered parameter-list fragments
// are identical after canonicalization.
func SignaturesMatch(a, b string) bool {
	return Canonicalize(a) == Canonicalize(b)
}

// reservedSignalHelpers are the forced-clash names of §4.6 step 2.
var reservedSignalHelpers = map[string]struct{}{
	"connect":       {},
	"connect_after": {},
	"emit":          {},
	"disconnect":    {},
}

// Fragment is one piece of emitted output: either a plain declaration or
// a declaration preceded by explanatory commentary. Emitters write
// Comment (if non-empty) as a line comment before Code.
type Fragment struct {
	Comment string
	Code    string
}

// Renderer renders one Member's declaration text, used by the reconciler
// to materialize both direct and inherited fragments without depending on
// internal/synth (which depends on this package, not the reverse).
type Renderer func(m model.Member) string

// Inherited holds, for one method name, every inherited copy keyed by the
// declaring class's qualified name — the fnMap of §4.6.
type Inherited map[string]map[string]model.Member // name -> ownerClass -> Member

// Reconcile runs the §4.6 algorithm for one class view. className is the
// qualified name of the class being emitted; rootObject is true when
// className is itself the root object class (disables the forced-clash
// rule for signal helpers). propertyNames is the set of inherited
// property names methods may not shadow.
func Reconcile(className string, rootObject bool, methods []model.Member, fnMap Inherited, propertyNames map[string]struct{}, render Renderer) ([]Fragment, map[string]struct{}) {
	localNames := map[string]struct{}{}
	var out []Fragment

	for _, m := range methods {
		if _, clash := propertyNames[m.Name]; clash {
			out = append(out, Fragment{Comment: fmt.Sprintf("%s: skipped, clashes with inherited property", m.Name)})
			continue
		}

		rendered := render(m)
		out = append(out, Fragment{Code: rendered})
		localNames[m.Name] = struct{}{}

		copies := fnMap[m.Name]
		if len(copies) > 0 {
			for _, owner := range sortedKeys(copies) {
				inherited := copies[owner]
				if SignaturesMatch(rendered, render(inherited)) {
					continue
				}
				out = append(out, Fragment{
					Comment: fmt.Sprintf("false overload: %s also declared by %s with a different signature", m.Name, owner),
					Code:    render(inherited),
				})
			}
			delete(fnMap, m.Name)
		}
	}

	for _, name := range sortedKeys(fnMap) {
		localNames[name] = struct{}{}
		copies := fnMap[name]

		_, forcedClash := reservedSignalHelpers[name]
		forcedClash = forcedClash && !rootObject

		distinct := distinctBySignature(copies, render)
		if len(distinct) < 2 && !forcedClash {
			continue
		}

		for _, owner := range sortedKeys(distinct) {
			m := distinct[owner]
			note := fmt.Sprintf("use %s.prototype.%s.call()", owner, name)
			if m.IsVirtual {
				note = fmt.Sprintf("%s: do not override %s's inherited virtual method", name, owner)
			} else {
				note = fmt.Sprintf("%s: inherited from %s, %s", name, owner, note)
			}
			out = append(out, Fragment{Comment: note, Code: render(m)})
		}
	}

	return out, localNames
}

// distinctBySignature dedupes copies by canonicalized rendered signature,
// keeping the first owner encountered (in sorted order, for determinism)
// for each distinct shape.
func distinctBySignature(copies map[string]model.Member, render Renderer) map[string]model.Member {
	seen := map[string]string{} // canonical signature -> owner kept
	out := map[string]model.Member{}
	for _, owner := range sortedKeys(copies) {
		m := copies[owner]
		canon := Canonicalize(render(m))
		if _, dup := seen[canon]; dup {
			continue
		}
		seen[canon] = owner
		out[owner] = m
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
