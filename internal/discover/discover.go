// Package discover finds parseable .gir documents across a set of search
// directories, honoring a project-level .girignore and, when duplicate
// namespace versions turn up across directories, picking the
// highest-priority one deterministically (§3 External Interfaces: "the
// GIR_DIRECTORIES search order and .girignore exclusion rules govern
// which of several installed versions of a namespace is selected").
package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/mod/semver"
)

// FileEntry is one discovered .gir document, with its namespace/version
// pair parsed from the file's own name ("<Namespace>-<Version>.gir" is
// the on-disk convention every GIR installation follows).
type FileEntry struct {
	Path      string // absolute
	Namespace string
	Version   string
	Priority  int // index of the search directory this file was found under, lower wins ties
}

var skipDirs = map[string]struct{}{
	".git": {}, "node_modules": {}, "build": {}, "dist": {},
}

// Files walks searchDirs in order, collecting every ".gir" file not
// excluded by a .girignore found at the root of its search directory.
// Earlier directories take priority (§6): when the same namespace turns
// up under two directories, the earlier directory's copy is kept
// regardless of version; only within a single directory does a higher
// semver version win over a lower one for the same namespace.
func Files(searchDirs []string) ([]FileEntry, error) {
	var all []FileEntry

	for priority, dir := range searchDirs {
		gi := loadGirignore(dir)
		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			name := d.Name()
			if d.IsDir() {
				if path == dir {
					return nil
				}
				if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(name, ".gir") {
				return nil
			}
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return nil
			}
			if gi != nil && gi.MatchesPath(rel) {
				return nil
			}
			ns, version := parseGirFilename(name)
			if ns == "" {
				return nil
			}
			all = append(all, FileEntry{Path: path, Namespace: ns, Version: version, Priority: priority})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return selectVersions(all), nil
}

// parseGirFilename splits "<Namespace>-<Version>.gir" into its parts. A
// namespace may not itself contain a dash reliably (some do, e.g.
// "GObject-Introspection" is not real but GIR namespaces like "GstBase"
// exist without dashes) so the version is taken from the last "-" before
// ".gir", matching the convention every real GIR tree follows.
func parseGirFilename(name string) (namespace, version string) {
	base := strings.TrimSuffix(name, ".gir")
	idx := strings.LastIndex(base, "-")
	if idx < 0 {
		return "", ""
	}
	return base[:idx], base[idx+1:]
}

// selectVersions picks one entry per namespace: the lowest-priority
// (earliest) search directory wins outright; ties within the same
// directory are broken by semver.Compare on a "v"-prefixed version
// string, highest wins.
func selectVersions(entries []FileEntry) []FileEntry {
	best := map[string]FileEntry{}
	for _, e := range entries {
		current, ok := best[e.Namespace]
		if !ok {
			best[e.Namespace] = e
			continue
		}
		if e.Priority < current.Priority {
			best[e.Namespace] = e
			continue
		}
		if e.Priority > current.Priority {
			continue
		}
		if semver.Compare(canonicalize(e.Version), canonicalize(current.Version)) > 0 {
			best[e.Namespace] = e
		}
	}
	out := make([]FileEntry, 0, len(best))
	for _, e := range best {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Namespace < out[j].Namespace })
	return out
}

// canonicalize turns a GIR version ("2.0", "1") into a form
// golang.org/x/mod/semver accepts ("v2.0.0"); GIR versions are never
// full semver triples.
func canonicalize(v string) string {
	parts := strings.Split(v, ".")
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	return "v" + strings.Join(parts[:3], ".")
}

func loadGirignore(dir string) *ignore.GitIgnore {
	path := filepath.Join(dir, ".girignore")
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}
