// Package deptree builds the dependency forest of a LaTeX project: one tree
// per entry file, expanded depth-first along \usepackage references. The
// forest is a tree with explicit cyclic markers, not a shared-node graph:
// a file referenced from several places appears as distinct nodes, and a
// reference back into the current traversal path becomes a terminal node
// flagged cyclic instead of a back-edge.
package deptree

import (
	"github.com/texkit/latidx/internal/latex"
)

// FileSource loads and parses files by canonical path. Implementations must
// cache: a file is parsed at most once per project build regardless of how
// many times the traversal reaches it.
type FileSource interface {
	File(path string) (*latex.File, error)
}

// PackageResolver maps a package name to the file providing it.
type PackageResolver interface {
	Resolve(name string) (path string, ok bool)
}

// Node is one occurrence of a file within the dependency forest. It is owned
// solely by its parent; no back-edges are stored.
type Node struct {
	// File is the source file this node wraps.
	File *latex.File
	// Cyclic is set when the file already occurred among this node's
	// ancestors on the traversal path. A cyclic node has no edges.
	Cyclic bool
	// Edges follow the file's \usepackage directives in appearance order.
	Edges []Edge
}

// Edge is one \usepackage reference out of a node's file.
type Edge struct {
	// Ref is the originating reference.
	Ref *latex.Package
	// Child is the expanded node for the resolved file, or nil when the
	// reference did not resolve (an orphan).
	Child *Node
}

// Builder expands entry files into dependency trees.
type Builder struct {
	src FileSource
	res PackageResolver
}

// NewBuilder creates a Builder over the given file source and resolver.
func NewBuilder(src FileSource, res PackageResolver) *Builder {
	return &Builder{src: src, res: res}
}

// Build expands each entry into a tree, in order. It also returns every
// unresolved reference in encounter order, for the caller's orphan table.
// Traversal is deterministic: entry order, then directive appearance order.
func (b *Builder) Build(entries []*latex.File) ([]*Node, []*latex.Package, error) {
	var forest []*Node
	var orphans []*latex.Package
	for _, entry := range entries {
		node, err := b.expand(entry, map[string]bool{}, &orphans)
		if err != nil {
			return nil, nil, err
		}
		forest = append(forest, node)
	}
	return forest, orphans, nil
}

// expand builds the node for file. onPath holds the canonical paths of the
// file and its ancestors on the current traversal path; a resolved reference
// into that set terminates as a cyclic node instead of recursing.
func (b *Builder) expand(file *latex.File, onPath map[string]bool, orphans *[]*latex.Package) (*Node, error) {
	node := &Node{File: file}
	onPath[file.Path] = true

	for _, ref := range file.Packages {
		path, ok := b.res.Resolve(ref.Name)
		if !ok {
			*orphans = append(*orphans, ref)
			node.Edges = append(node.Edges, Edge{Ref: ref})
			continue
		}

		child, err := b.src.File(path)
		if err != nil {
			return nil, err
		}

		if onPath[path] {
			node.Edges = append(node.Edges, Edge{
				Ref:   ref,
				Child: &Node{File: child, Cyclic: true},
			})
			continue
		}

		childNode, err := b.expand(child, onPath, orphans)
		if err != nil {
			return nil, err
		}
		node.Edges = append(node.Edges, Edge{Ref: ref, Child: childNode})
	}

	delete(onPath, file.Path)
	return node, nil
}

// Walk visits the node and its descendants depth-first in edge order.
// Orphan edges (nil child) are not visited.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, e := range n.Edges {
		if e.Child != nil {
			e.Child.Walk(visit)
		}
	}
}

// Depth returns the longest chain of nodes below and including this one.
func (n *Node) Depth() int {
	max := 0
	for _, e := range n.Edges {
		if e.Child == nil {
			continue
		}
		if d := e.Child.Depth(); d > max {
			max = d
		}
	}
	return max + 1
}
