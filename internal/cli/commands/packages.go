package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/texkit/latidx/internal/cli/output"
	"github.com/texkit/latidx/internal/indexer"
	"github.com/texkit/latidx/internal/render"
)

// NewPackagesCommand creates the packages command.
func NewPackagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "packages",
		Short: "List every package reference across the project",
		Long: `Flat dump of every \usepackage reference across all indexed files, with
the owning file and line number.

On a terminal the dump is a table; piped output is one tab-separated
record per line for structured consumption.`,
		Example: `  # All package references
  latidx packages

  # As JSON records
  latidx packages --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPackages(cmd)
		},
	}
}

// packagesOutput is the structured form of the packages command's output.
type packagesOutput struct {
	Root     string           `json:"root" yaml:"root"`
	Packages []render.RefView `json:"packages" yaml:"packages"`
}

func runPackages(cmd *cobra.Command) error {
	c := NewCommandContext(cmd)
	p, err := c.buildProject()
	if err != nil {
		return err
	}

	r := c.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(packagesOutput{Root: p.Root, Packages: render.PackagesView(p)})
	case output.ModeYAML:
		return r.YAML(packagesOutput{Root: p.Root, Packages: render.PackagesView(p)})
	default:
		if r.IsTTY() {
			return packagesTable(r, p)
		}
		return render.PackageRecords(r.Writer(), p)
	}
}

// packagesTable renders the package dump as a table for interactive use.
func packagesTable(r *output.Renderer, p *indexer.Project) error {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Package", "File", "Line"})
	for _, v := range render.PackagesView(p) {
		t.AppendRow(table.Row{v.Name, v.File, v.Line})
	}
	t.Render()
	return nil
}
