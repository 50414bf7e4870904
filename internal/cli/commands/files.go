package commands

import (
	"github.com/spf13/cobra"

	"github.com/texkit/latidx/internal/cli/output"
	"github.com/texkit/latidx/internal/render"
)

// NewFilesCommand creates the files command.
func NewFilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List every indexed file with its declarations",
		Long: `List every distinct file reached during indexing, sorted by path, each
with its \usepackage references and \newcommand definitions and the line
they appear on. Redefinitions within a file are marked.`,
		Example: `  # All files under the current directory
  latidx files

  # As YAML
  latidx files --output yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFiles(cmd)
		},
	}
}

// filesOutput is the structured form of the files command's output.
type filesOutput struct {
	Root  string             `json:"root" yaml:"root"`
	Files []*render.FileView `json:"files" yaml:"files"`
}

func runFiles(cmd *cobra.Command) error {
	c := NewCommandContext(cmd)
	p, err := c.buildProject()
	if err != nil {
		return err
	}

	r := c.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(filesOutput{Root: p.Root, Files: render.FilesView(p)})
	case output.ModeYAML:
		return r.YAML(filesOutput{Root: p.Root, Files: render.FilesView(p)})
	default:
		return render.Files(r.Writer(), p)
	}
}
