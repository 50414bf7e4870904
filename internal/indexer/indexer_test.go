package indexer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// setupProject builds the root/child/orphan shape: root.tex includes child
// (resolved) and orphan (unresolved), child.sty includes itself.
func setupProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "root.tex", `\documentclass{article}
\usepackage{child}
\usepackage{orphan}
\newcommand{\rootcmd}{expanded}
\begin{document}
\rootcmd
\end{document}
`)
	writeFile(t, root, "child.sty", `\usepackage{child}
\newcommand{\childcmd}[1]{#1}
`)
	return root
}

func TestIndex_BasicProject(t *testing.T) {
	root := setupProject(t)

	ix, err := New(Config{Root: root, Entries: []string{filepath.Join(root, "root.tex")}})
	require.NoError(t, err)

	p, err := ix.Index()
	require.NoError(t, err)

	assert.Len(t, p.Entries, 1)
	require.Len(t, p.Forest, 1)

	tree := p.Forest[0]
	assert.Equal(t, "root.tex", tree.File.Name())
	require.Len(t, tree.Edges, 2)

	// child resolves and expands; its self-reference terminates cyclic.
	child := tree.Edges[0].Child
	require.NotNil(t, child)
	assert.Equal(t, "child.sty", child.File.Name())
	require.Len(t, child.Edges, 1)
	self := child.Edges[0].Child
	require.NotNil(t, self)
	assert.True(t, self.Cyclic)
	assert.Empty(t, self.Edges)

	// orphan keeps its edge but grows no node.
	assert.Equal(t, "orphan", tree.Edges[1].Ref.Name)
	assert.Nil(t, tree.Edges[1].Child)

	orphans := p.Orphans()
	require.Len(t, orphans, 1)
	assert.Equal(t, "orphan", orphans[0].Name)
	require.Len(t, orphans[0].Refs, 1)
	assert.Equal(t, 3, orphans[0].Refs[0].Line)
}

func TestIndex_FileTableParsesOnce(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.tex", "\\usepackage{shared}\n")
	writeFile(t, root, "b.tex", "\\usepackage{shared}\n")
	writeFile(t, root, "shared.sty", "\\newcommand{\\s}{x}\n")

	ix, err := New(Config{Root: root})
	require.NoError(t, err)
	p, err := ix.Index()
	require.NoError(t, err)

	// Two entries reference shared, yet the table holds a single parse of
	// it and both trees point at that same object.
	assert.Equal(t, 3, p.Stats.Files)
	shared, ok := p.File(filepath.Join(p.Root, "shared.sty"))
	require.True(t, ok)
	require.Len(t, p.Forest, 2)
	assert.Same(t, shared, p.Forest[0].Edges[0].Child.File)
	assert.Same(t, shared, p.Forest[1].Edges[0].Child.File)
}

func TestIndex_DefaultEntries(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.tex", "")
	writeFile(t, root, "a.tex", "")
	writeFile(t, root, "pkg.sty", "")

	ix, err := New(Config{Root: root})
	require.NoError(t, err)
	p, err := ix.Index()
	require.NoError(t, err)

	// Every .tex under the root becomes an entry, sorted; .sty files do not.
	require.Len(t, p.Entries, 2)
	assert.Equal(t, "a.tex", p.Entries[0].Name())
	assert.Equal(t, "b.tex", p.Entries[1].Name())
}

func TestIndex_NoEntries(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pkg.sty", "")

	ix, err := New(Config{Root: root})
	require.NoError(t, err)

	_, err = ix.Index()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entry files")
}

func TestIndex_MissingRoot(t *testing.T) {
	_, err := New(Config{Root: filepath.Join(t.TempDir(), "nope")})
	require.Error(t, err)
}

func TestIndex_MissingEntry(t *testing.T) {
	root := setupProject(t)

	ix, err := New(Config{Root: root, Entries: []string{filepath.Join(root, "absent.tex")}})
	require.NoError(t, err)

	_, err = ix.Index()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry file")
}

func TestIndex_UndecodableDependencyIsFatal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.tex", "\\usepackage{bad}\n")
	path := filepath.Join(root, "bad.sty")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x41}, 0o644))

	ix, err := New(Config{Root: root})
	require.NoError(t, err)

	_, err = ix.Index()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.sty")
}

func TestIndex_FlatCollections(t *testing.T) {
	root := setupProject(t)

	ix, err := New(Config{Root: root, Entries: []string{filepath.Join(root, "root.tex")}})
	require.NoError(t, err)
	p, err := ix.Index()
	require.NoError(t, err)

	// Ordered by file path, then appearance: child.sty sorts before root.tex.
	require.Len(t, p.Packages, 3)
	assert.Equal(t, "child", p.Packages[0].Name)
	assert.Equal(t, "child.sty", p.Packages[0].File.Name())
	assert.Equal(t, "child", p.Packages[1].Name)
	assert.Equal(t, "root.tex", p.Packages[1].File.Name())
	assert.Equal(t, "orphan", p.Packages[2].Name)

	require.Len(t, p.Commands, 2)
	assert.Equal(t, "childcmd", p.Commands[0].Name)
	assert.Equal(t, "rootcmd", p.Commands[1].Name)

	assert.Equal(t, 2, p.Stats.Files)
	assert.Equal(t, 3, p.Stats.PackageRefs)
	assert.Equal(t, 2, p.Stats.MacroDefs)
	assert.Equal(t, 1, p.Stats.Orphans)
}

func TestProject_Lookups(t *testing.T) {
	root := setupProject(t)

	ix, err := New(Config{Root: root, Entries: []string{filepath.Join(root, "root.tex")}})
	require.NoError(t, err)
	p, err := ix.Index()
	require.NoError(t, err)

	files := p.Files()
	require.Len(t, files, 2)
	assert.Equal(t, "child.sty", files[0].Name())
	assert.Equal(t, "root.tex", files[1].Name())

	_, ok := p.File(filepath.Join(p.Root, "root.tex"))
	assert.True(t, ok)
	_, ok = p.File(filepath.Join(p.Root, "absent.tex"))
	assert.False(t, ok)

	o, ok := p.Orphan("orphan")
	require.True(t, ok)
	assert.NotEmpty(t, o.Refs)
	_, ok = p.Orphan("child")
	assert.False(t, ok)
}
