// Command latidx indexes LaTeX projects: it extracts \usepackage and
// \newcommand declarations from a tree of source files and renders the
// resulting dependency structure.
package main

import (
	"os"

	"github.com/texkit/latidx/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
