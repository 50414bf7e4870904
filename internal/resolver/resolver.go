// Package resolver maps package names referenced by \usepackage directives
// to files on disk. It walks the project root once at construction and owns
// the resulting path index for the duration of one project build; nothing in
// this package is process-global.
package resolver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Index is the name-to-file index over one project root.
type Index struct {
	root       string
	candidates map[string][]candidate // stem -> candidate files
	resolved   map[string]string      // per-name resolution cache ("" = miss)
}

type candidate struct {
	path  string // canonical path
	depth int    // directory depth below the root
	sty   bool   // .sty is preferred over .tex
}

// New builds the index by walking root recursively. A root that does not
// exist or is not a directory is a fatal construction error.
func New(root string) (*Index, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("project root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", root)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("project root %s: %w", root, err)
	}

	ix := &Index{
		root:       absRoot,
		candidates: make(map[string][]candidate),
		resolved:   make(map[string]string),
	}

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		isSty := strings.EqualFold(ext, ".sty")
		if !isSty && !strings.EqualFold(ext, ".tex") {
			return nil
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		stem := strings.TrimSuffix(filepath.Base(path), ext)
		ix.candidates[stem] = append(ix.candidates[stem], candidate{
			path:  path,
			depth: strings.Count(rel, string(filepath.Separator)),
			sty:   isSty,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning project root %s: %w", root, err)
	}

	// Fix the precedence order up front so Resolve is a lookup:
	// .sty before .tex, then shallowest, then lexicographic path.
	for _, cands := range ix.candidates {
		sort.Slice(cands, func(i, j int) bool {
			if cands[i].sty != cands[j].sty {
				return cands[i].sty
			}
			if cands[i].depth != cands[j].depth {
				return cands[i].depth < cands[j].depth
			}
			return cands[i].path < cands[j].path
		})
	}

	return ix, nil
}

// Root returns the canonical project root.
func (ix *Index) Root() string {
	return ix.root
}

// Resolve maps a package name to the file that provides it. ok is false when
// no candidate exists; the caller records the name as an orphan. Results are
// cached per name for the lifetime of the index.
func (ix *Index) Resolve(name string) (string, bool) {
	if path, hit := ix.resolved[name]; hit {
		return path, path != ""
	}
	var path string
	if cands := ix.candidates[name]; len(cands) > 0 {
		path = cands[0].path
	}
	ix.resolved[name] = path
	return path, path != ""
}

// Candidates returns every indexed file path, sorted. Used to pick default
// entry files when the caller supplies none.
func (ix *Index) Candidates() []string {
	var paths []string
	for _, cands := range ix.candidates {
		for _, c := range cands {
			paths = append(paths, c.path)
		}
	}
	sort.Strings(paths)
	return paths
}
