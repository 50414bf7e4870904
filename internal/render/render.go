// Package render turns a completed Project into its output views: the ASCII
// dependency tree, per-file blocks and flat record listings, plus the
// structured view types used for JSON and YAML output. Rendering is a pure
// read-only pass; re-rendering an unchanged project is byte-identical.
package render

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/texkit/latidx/internal/deptree"
	"github.com/texkit/latidx/internal/indexer"
	"github.com/texkit/latidx/internal/latex"
)

const (
	cyclicMarker  = " (cyclic)"
	missingMarker = " (missing)"
	redefMarker   = " (redefinition)"
)

// names maps each file to its displayable name: the basename, or the path
// relative to the project root when two files share a basename.
type names map[*latex.File]string

func displayNames(p *indexer.Project) names {
	count := make(map[string]int)
	for _, f := range p.Files() {
		count[f.Name()]++
	}
	n := make(names, len(count))
	for _, f := range p.Files() {
		if count[f.Name()] > 1 {
			n[f] = relPath(p.Root, f.Path)
		} else {
			n[f] = f.Name()
		}
	}
	return n
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}

// Tree writes one ASCII tree per entry file. Cyclic nodes are marked rather
// than omitted, and unresolved references appear as missing leaves so that
// orphans stay visible in the output.
func Tree(w io.Writer, p *indexer.Project) error {
	n := displayNames(p)
	for _, node := range p.Forest {
		if _, err := fmt.Fprintln(w, n[node.File]); err != nil {
			return err
		}
		if err := writeEdges(w, node, "", n); err != nil {
			return err
		}
	}
	return nil
}

func writeEdges(w io.Writer, node *deptree.Node, prefix string, n names) error {
	for i, e := range node.Edges {
		last := i == len(node.Edges)-1

		label := edgeLabel(e, n)
		if _, err := fmt.Fprintf(w, "%s +-- %s\n", prefix, label); err != nil {
			return err
		}

		if e.Child == nil || len(e.Child.Edges) == 0 {
			continue
		}
		childPrefix := prefix + " |  "
		if last {
			childPrefix = prefix + "    "
		}
		if err := writeEdges(w, e.Child, childPrefix, n); err != nil {
			return err
		}
	}
	return nil
}

func edgeLabel(e deptree.Edge, n names) string {
	if e.Child == nil {
		return e.Ref.Name + missingMarker
	}
	if e.Child.Cyclic {
		return n[e.Child.File] + cyclicMarker
	}
	return n[e.Child.File]
}

// Files writes one block per distinct file, sorted by path: the path
// relative to the project root, then the usepackage and newcommand lists
// with their line numbers.
func Files(w io.Writer, p *indexer.Project) error {
	for _, f := range p.Files() {
		if _, err := fmt.Fprintf(w, "%s:\n", relPath(p.Root, f.Path)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, "  usepackages:"); err != nil {
			return err
		}
		for _, pkg := range f.Packages {
			if _, err := fmt.Fprintf(w, "    %s\n", pkg); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "  newcommands:"); err != nil {
			return err
		}
		for _, cmd := range f.Commands {
			marker := ""
			if cmd.Redefinition {
				marker = redefMarker
			}
			if _, err := fmt.Fprintf(w, "    %s%s\n", cmd, marker); err != nil {
				return err
			}
		}
	}
	return nil
}

// PackageRecords writes the flat global usepackage collection, one
// tab-separated record per line: name, owning file, line.
func PackageRecords(w io.Writer, p *indexer.Project) error {
	for _, pkg := range p.Packages {
		_, err := fmt.Fprintf(w, "%s\t%s\t%d\n", pkg.Name, relPath(p.Root, pkg.File.Path), pkg.Line)
		if err != nil {
			return err
		}
	}
	return nil
}

// CommandRecords writes the flat global newcommand collection, one
// tab-separated record per line: name, owning file, line, and a
// redefinition flag on redefining entries.
func CommandRecords(w io.Writer, p *indexer.Project) error {
	for _, cmd := range p.Commands {
		marker := ""
		if cmd.Redefinition {
			marker = "\tredefinition"
		}
		_, err := fmt.Fprintf(w, "%s\t%s\t%d%s\n", cmd.Name, relPath(p.Root, cmd.File.Path), cmd.Line, marker)
		if err != nil {
			return err
		}
	}
	return nil
}

// Orphans writes the orphan table sorted by name, each with its referencing
// occurrences.
func Orphans(w io.Writer, p *indexer.Project) error {
	for _, o := range p.Orphans() {
		if _, err := fmt.Fprintf(w, "%s:\n", o.Name); err != nil {
			return err
		}
		for _, ref := range o.Refs {
			if _, err := fmt.Fprintf(w, "  %s @ %d\n", relPath(p.Root, ref.File.Path), ref.Line); err != nil {
				return err
			}
		}
	}
	return nil
}
