package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/texkit/latidx/internal/cli/output"
	"github.com/texkit/latidx/internal/render"
)

// NewTreeCommand creates the tree command.
func NewTreeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Show the dependency tree of each entry file",
		Long: `Display one dependency tree per entry file, expanded along resolved
\usepackage inclusions.

A file that includes one of its own ancestors is shown once more with a
(cyclic) marker and is not expanded further. A package that resolves to
no file under the root is shown as a (missing) leaf and recorded as an
orphan.`,
		Example: `  # Tree for every .tex file under the current directory
  latidx tree

  # Tree for one entry file
  latidx tree -r ./paper -e ./paper/main.tex

  # Structured output
  latidx tree --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTree(cmd)
		},
	}
}

// treeOutput is the structured form of the tree command's output.
type treeOutput struct {
	Root    string               `json:"root" yaml:"root"`
	Trees   []*render.NodeView   `json:"trees" yaml:"trees"`
	Orphans []*render.OrphanView `json:"orphans,omitempty" yaml:"orphans,omitempty"`
}

func runTree(cmd *cobra.Command) error {
	c := NewCommandContext(cmd)
	p, err := c.buildProject()
	if err != nil {
		return err
	}

	r := c.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(treeOutput{Root: p.Root, Trees: render.TreeView(p), Orphans: render.OrphansView(p)})
	case output.ModeYAML:
		return r.YAML(treeOutput{Root: p.Root, Trees: render.TreeView(p), Orphans: render.OrphansView(p)})
	default:
		if err := render.Tree(r.Writer(), p); err != nil {
			return err
		}
		r.Muted(fmt.Sprintf("%d files, %d orphans", p.Stats.Files, p.Stats.Orphans))
		return nil
	}
}
