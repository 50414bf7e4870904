// Package commands implements the latidx CLI verbs.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/texkit/latidx/internal/cli/config"
	"github.com/texkit/latidx/internal/cli/output"
	"github.com/texkit/latidx/internal/indexer"
)

// CommandContext holds the common dependencies of a command invocation.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext assembles the config, logger and renderer for a command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	logger := config.GetLogger(ctx)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// buildProject runs one full indexing pass over the configured root.
func (c *CommandContext) buildProject() (*indexer.Project, error) {
	ix, err := indexer.New(indexer.Config{
		Root:    c.Cfg.Root,
		Entries: c.Cfg.Entries,
		Logger:  c.Logger,
	})
	if err != nil {
		return nil, err
	}
	return ix.Index()
}
