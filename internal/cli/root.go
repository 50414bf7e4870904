// Package cli provides the command-line interface for latidx.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/texkit/latidx/internal/cli/commands"
	"github.com/texkit/latidx/internal/cli/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "latidx",
		Short: "latidx - LaTeX project dependency indexer",
		Long: `latidx indexes a tree of LaTeX source files, extracting \usepackage
inclusions and \newcommand macro definitions, and assembles them into a
navigable dependency structure: which files include which other files,
which macros each file defines, and which included packages resolve to
no file on disk (orphans).`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := config.NewLogger(cfg.Verbose)

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			if cfg.Verbose {
				if used := config.GetConfigFileUsed(); used != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", used)
				}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./latidx.yaml)")
	rootCmd.PersistentFlags().StringP("root", "r", config.DefaultRoot, "Project root directory to index")
	rootCmd.PersistentFlags().StringSliceP("entry", "e", nil, "Entry file (repeatable; default: every .tex file under the root)")
	rootCmd.PersistentFlags().StringP("output", "o", config.DefaultOutput, "Output format: auto, text, json, yaml")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(
		commands.NewTreeCommand(),
		commands.NewFilesCommand(),
		commands.NewMacrosCommand(),
		commands.NewPackagesCommand(),
		commands.NewOrphansCommand(),
		commands.NewVersionCommand(Version, GitCommit),
	)

	return rootCmd
}

// Execute runs the root command and reports the failure, if any, as a single
// descriptive message.
func Execute() int {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
