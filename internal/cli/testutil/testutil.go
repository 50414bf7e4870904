// Package testutil provides test helpers for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/texkit/latidx/internal/cli/output"
)

// WriteFile creates a file with parent directories under a test project.
func WriteFile(t *testing.T, root, rel, content string) string {
	t.Helper()

	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
	return path
}

// SetupTestProject creates a temporary project with the root/child/orphan
// shape: root.tex includes child (resolved) and orphan (unresolved), and
// child.sty includes itself.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	WriteFile(t, root, "root.tex", `\documentclass{article}
\usepackage{child}
\usepackage{orphan}
\newcommand{\rootcmd}{expanded}
\begin{document}
\rootcmd
\end{document}
`)
	WriteFile(t, root, "child.sty", `\usepackage{child}
\newcommand{\childcmd}[1]{#1}
`)
	return root
}

// TestRenderer wraps a Renderer with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a renderer with the given mode and TTY state,
// capturing output in buffers for inspection.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the captured stdout output.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI fails the test when s contains ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("output contains ANSI escape codes: %q", s)
	}
}
