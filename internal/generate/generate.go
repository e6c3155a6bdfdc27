// Package generate is the orchestrator wiring every pipeline stage end
// to end: discovery, GIR parsing, module construction, the populate
// phase (SymbolTable + InheritanceIndex), and emission. Grounded on the
// teacher's main.go run(args, stdout, stderr) error shape — a single
// testable entry point the CLI layer's cobra commands call into rather
// than embedding this logic in RunE closures directly.
package generate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/girsurface/girsurface/internal/config"
	"github.com/girsurface/girsurface/internal/diag"
	"github.com/girsurface/girsurface/internal/discover"
	"github.com/girsurface/girsurface/internal/emit"
	"github.com/girsurface/girsurface/internal/girxml"
	"github.com/girsurface/girsurface/internal/inheritance"
	"github.com/girsurface/girsurface/internal/loadmodule"
	"github.com/girsurface/girsurface/internal/model"
	"github.com/girsurface/girsurface/internal/symtab"
	"github.com/girsurface/girsurface/internal/typeresolve"
)

// RootObjectQualifiedName mirrors inheritance.RootObjectQualifiedName —
// kept here too so callers that only import generate don't need a second
// import just to name it.
const RootObjectQualifiedName = inheritance.RootObjectQualifiedName

// Summary is the per-run report §4 SUPPLEMENTED FEATURES calls for: a
// count of modules emitted and every non-fatal diagnostic raised across
// every stage, keyed by the namespace that raised it; inheritance-index
// diagnostics are keyed "<inheritance>" and documents skipped for having
// no namespace are keyed "<parse>".
type Summary struct {
	ModulesEmitted int
	Conflicts      []symtab.Conflict
	Diagnostics    map[string][]string // namespace -> messages
}

// Options configures one generate run, the union of what the CLI's
// generate/watch subcommands and the list-namespaces subcommand need.
type Options struct {
	Cfg       *config.Config
	Overrides emit.Overrides
	Namespace string // when set, restricts discovery+emission to this one namespace
}

// Run executes the full pipeline once and writes one ".d.ts"-equivalent
// document per emitted module under opts.Cfg.OutDir.
func Run(opts Options) (*Summary, error) {
	entries, err := discover.Files(opts.Cfg.GIRDirectories)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	if opts.Namespace != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if e.Namespace == opts.Namespace {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no .gir documents found under %v", opts.Cfg.GIRDirectories)
	}

	table := symtab.New()

	type loaded struct {
		mod      *model.Module
		includes []loadmodule.Include
	}
	var modules []loaded
	var skipped []string

	for _, e := range entries {
		repo, err := girxml.Parse(e.Path)
		if errors.Is(err, girxml.ErrNoNamespace) {
			// missing-namespace aborts only this module; the run continues.
			skipped = append(skipped, fmt.Sprintf("%s: %v", e.Path, err))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Path, err)
		}
		mod, includes := loadmodule.BuildModule(repo, table)
		modules = append(modules, loaded{mod: mod, includes: includes})
	}

	modelModules := make([]*model.Module, len(modules))
	includeMap := make(map[*model.Module][]loadmodule.Include, len(modules))
	for i, l := range modules {
		modelModules[i] = l.mod
		includeMap[l.mod] = l.includes
	}

	ready, unresolvedIncludes := loadmodule.Link(modelModules, includeMap)

	var allClasses []*model.Declaration
	for _, mod := range ready {
		for _, d := range mod.Decls {
			if d.Class != nil {
				allClasses = append(allClasses, d)
			}
		}
	}

	index, inheritanceDiags := inheritance.Build(table, allClasses)

	resolver := typeresolve.New(table, opts.Cfg.Environment)
	emitOpts := emit.Options{
		Table:       table,
		Index:       index,
		Resolver:    resolver,
		RootQN:      RootObjectQualifiedName,
		Overrides:   opts.Overrides,
		Environment: opts.Cfg.Environment,
		BuildType:   opts.Cfg.BuildType,
		Decompose:   opts.Cfg.Inheritance,
	}

	summary := &Summary{Diagnostics: map[string][]string{}}
	if len(skipped) > 0 {
		summary.Diagnostics["<parse>"] = skipped
	}

	if err := os.MkdirAll(opts.Cfg.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	for _, mod := range ready {
		result := emit.Emit(mod, emitOpts)
		summary.Diagnostics[result.Namespace] = result.Diagnostics

		outPath := filepath.Join(opts.Cfg.OutDir, mod.PackageName+".d.ts")
		if err := os.WriteFile(outPath, []byte(result.Source), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", outPath, err)
		}

		stubPath := filepath.Join(opts.Cfg.OutDir, mod.PackageName+".js")
		if err := os.WriteFile(stubPath, []byte(result.Stub), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", stubPath, err)
		}
		summary.ModulesEmitted++
	}

	for mod, err := range unresolvedIncludes {
		summary.Diagnostics[mod.Namespace] = append(summary.Diagnostics[mod.Namespace], err.Error())
	}
	for _, d := range inheritanceDiags {
		summary.Diagnostics["<inheritance>"] = append(summary.Diagnostics["<inheritance>"], d.Message)
	}
	summary.Conflicts = table.Conflicts()

	return summary, nil
}

// PrintSummary writes a human-readable report to w, the shape the
// generate and watch CLI commands both print after a run completes.
func PrintSummary(w io.Writer, s *Summary, log *diag.Diagnostics) {
	fmt.Fprintf(w, "emitted %d module(s)\n", s.ModulesEmitted)
	for _, c := range s.Conflicts {
		log.DuplicateSymbol(c.QualifiedName, c.Kept.PackageName, c.Rejected.PackageName)
	}
	for ns, msgs := range s.Diagnostics {
		for _, m := range msgs {
			fmt.Fprintf(w, "%s: %s\n", ns, m)
		}
	}
}

// ListNamespaces discovers every .gir document on the search path and
// returns the resolved namespace/version pairs, without running the rest
// of the pipeline — the list-namespaces subcommand's sole dependency.
func ListNamespaces(cfg *config.Config) ([]discover.FileEntry, error) {
	return discover.Files(cfg.GIRDirectories)
}
