package commands

import (
	"github.com/spf13/cobra"

	"github.com/texkit/latidx/internal/cli/output"
	"github.com/texkit/latidx/internal/render"
)

// NewOrphansCommand creates the orphans command.
func NewOrphansCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "orphans",
		Short: "List package references that resolve to no file",
		Long: `List every package name referenced by a \usepackage directive that
resolves to no .sty or .tex file under the project root, with the files
and lines that reference it. Installed base packages (hyperref, graphicx
and the like) typically show up here.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOrphans(cmd)
		},
	}
}

// orphansOutput is the structured form of the orphans command's output.
type orphansOutput struct {
	Root    string               `json:"root" yaml:"root"`
	Orphans []*render.OrphanView `json:"orphans" yaml:"orphans"`
}

func runOrphans(cmd *cobra.Command) error {
	c := NewCommandContext(cmd)
	p, err := c.buildProject()
	if err != nil {
		return err
	}

	r := c.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(orphansOutput{Root: p.Root, Orphans: render.OrphansView(p)})
	case output.ModeYAML:
		return r.YAML(orphansOutput{Root: p.Root, Orphans: render.OrphansView(p)})
	default:
		return render.Orphans(r.Writer(), p)
	}
}
