package render

import (
	"github.com/texkit/latidx/internal/deptree"
	"github.com/texkit/latidx/internal/indexer"
	"github.com/texkit/latidx/internal/latex"
)

// NodeView is the structured form of one dependency tree node.
type NodeView struct {
	Name     string      `json:"name" yaml:"name"`
	Path     string      `json:"path,omitempty" yaml:"path,omitempty"`
	Cyclic   bool        `json:"cyclic,omitempty" yaml:"cyclic,omitempty"`
	Missing  bool        `json:"missing,omitempty" yaml:"missing,omitempty"`
	Line     int         `json:"line,omitempty" yaml:"line,omitempty"`
	Children []*NodeView `json:"children,omitempty" yaml:"children,omitempty"`
}

// RefView is the structured form of one \usepackage reference.
type RefView struct {
	Name string `json:"name" yaml:"name"`
	File string `json:"file" yaml:"file"`
	Line int    `json:"line" yaml:"line"`
}

// DefView is the structured form of one macro definition.
type DefView struct {
	Name         string `json:"name" yaml:"name"`
	File         string `json:"file" yaml:"file"`
	Line         int    `json:"line" yaml:"line"`
	Redefinition bool   `json:"redefinition,omitempty" yaml:"redefinition,omitempty"`
}

// FileView is the structured form of one parsed file.
type FileView struct {
	Path     string    `json:"path" yaml:"path"`
	Kind     string    `json:"kind" yaml:"kind"`
	Packages []RefView `json:"usepackages" yaml:"usepackages"`
	Commands []DefView `json:"newcommands" yaml:"newcommands"`
}

// OrphanView is the structured form of one orphaned package name.
type OrphanView struct {
	Name string    `json:"name" yaml:"name"`
	Refs []RefView `json:"refs" yaml:"refs"`
}

// TreeView builds the structured dependency forest of a project.
func TreeView(p *indexer.Project) []*NodeView {
	views := make([]*NodeView, 0, len(p.Forest))
	for _, node := range p.Forest {
		views = append(views, nodeView(node, p.Root))
	}
	return views
}

func nodeView(n *deptree.Node, root string) *NodeView {
	v := &NodeView{
		Name:   n.File.Name(),
		Path:   relPath(root, n.File.Path),
		Cyclic: n.Cyclic,
	}
	for _, e := range n.Edges {
		if e.Child == nil {
			v.Children = append(v.Children, &NodeView{
				Name:    e.Ref.Name,
				Missing: true,
				Line:    e.Ref.Line,
			})
			continue
		}
		child := nodeView(e.Child, root)
		child.Line = e.Ref.Line
		v.Children = append(v.Children, child)
	}
	return v
}

// FilesView builds the structured file table of a project, sorted by path.
func FilesView(p *indexer.Project) []*FileView {
	views := make([]*FileView, 0, len(p.Files()))
	for _, f := range p.Files() {
		views = append(views, fileView(f, p.Root))
	}
	return views
}

func fileView(f *latex.File, root string) *FileView {
	v := &FileView{
		Path:     relPath(root, f.Path),
		Kind:     string(f.Kind),
		Packages: make([]RefView, 0, len(f.Packages)),
		Commands: make([]DefView, 0, len(f.Commands)),
	}
	for _, pkg := range f.Packages {
		v.Packages = append(v.Packages, refView(pkg, root))
	}
	for _, cmd := range f.Commands {
		v.Commands = append(v.Commands, defView(cmd, root))
	}
	return v
}

func refView(pkg *latex.Package, root string) RefView {
	return RefView{
		Name: pkg.Name,
		File: relPath(root, pkg.File.Path),
		Line: pkg.Line,
	}
}

func defView(cmd *latex.Command, root string) DefView {
	return DefView{
		Name:         cmd.Name,
		File:         relPath(root, cmd.File.Path),
		Line:         cmd.Line,
		Redefinition: cmd.Redefinition,
	}
}

// PackagesView builds the flat structured usepackage collection.
func PackagesView(p *indexer.Project) []RefView {
	views := make([]RefView, 0, len(p.Packages))
	for _, pkg := range p.Packages {
		views = append(views, refView(pkg, p.Root))
	}
	return views
}

// CommandsView builds the flat structured newcommand collection.
func CommandsView(p *indexer.Project) []DefView {
	views := make([]DefView, 0, len(p.Commands))
	for _, cmd := range p.Commands {
		views = append(views, defView(cmd, p.Root))
	}
	return views
}

// OrphansView builds the structured orphan table, sorted by name.
func OrphansView(p *indexer.Project) []*OrphanView {
	views := make([]*OrphanView, 0, len(p.Orphans()))
	for _, o := range p.Orphans() {
		v := &OrphanView{Name: o.Name, Refs: make([]RefView, 0, len(o.Refs))}
		for _, ref := range o.Refs {
			v.Refs = append(v.Refs, refView(ref, p.Root))
		}
		views = append(views, v)
	}
	return views
}
