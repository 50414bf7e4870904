package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/texkit/latidx/internal/cli/output"
	"github.com/texkit/latidx/internal/indexer"
	"github.com/texkit/latidx/internal/render"
)

// NewMacrosCommand creates the macros command.
func NewMacrosCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "macros",
		Short: "List every macro defined across the project",
		Long: `Flat dump of every \newcommand definition across all indexed files,
with the owning file and line number.

On a terminal the dump is a table; piped output is one tab-separated
record per line for structured consumption.`,
		Example: `  # All macro definitions
  latidx macros

  # As JSON records
  latidx macros --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMacros(cmd)
		},
	}
}

// macrosOutput is the structured form of the macros command's output.
type macrosOutput struct {
	Root   string           `json:"root" yaml:"root"`
	Macros []render.DefView `json:"macros" yaml:"macros"`
}

func runMacros(cmd *cobra.Command) error {
	c := NewCommandContext(cmd)
	p, err := c.buildProject()
	if err != nil {
		return err
	}

	r := c.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(macrosOutput{Root: p.Root, Macros: render.CommandsView(p)})
	case output.ModeYAML:
		return r.YAML(macrosOutput{Root: p.Root, Macros: render.CommandsView(p)})
	default:
		if r.IsTTY() {
			return macrosTable(r, p)
		}
		return render.CommandRecords(r.Writer(), p)
	}
}

// macrosTable renders the macro dump as a table for interactive use.
func macrosTable(r *output.Renderer, p *indexer.Project) error {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Macro", "File", "Line", ""})
	for _, v := range render.CommandsView(p) {
		marker := ""
		if v.Redefinition {
			marker = "redefinition"
		}
		t.AppendRow(table.Row{v.Name, v.File, v.Line, marker})
	}
	t.Render()
	return nil
}
