package resolver

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("% stub\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew_RootErrors(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected an error for a nonexistent root")
	}

	file := writeFile(t, t.TempDir(), "not-a-dir.tex")
	if _, err := New(file); err == nil {
		t.Error("expected an error when the root is a regular file")
	}
}

func TestResolve_StyPreferredOverTex(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pkg.tex")
	sty := writeFile(t, root, "sub/pkg.sty")

	ix, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	got, ok := ix.Resolve("pkg")
	if !ok {
		t.Fatal("expected pkg to resolve")
	}
	// The deeper .sty still wins over the shallower .tex.
	if got != mustAbs(t, sty) {
		t.Errorf("Resolve(pkg) = %s, want %s", got, sty)
	}
}

func TestResolve_ShallowestWins(t *testing.T) {
	root := t.TempDir()
	shallow := writeFile(t, root, "pkg.sty")
	writeFile(t, root, "a/b/pkg.sty")

	ix, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	got, ok := ix.Resolve("pkg")
	if !ok || got != mustAbs(t, shallow) {
		t.Errorf("Resolve(pkg) = %s, want shallow candidate %s", got, shallow)
	}
}

func TestResolve_LexicographicTie(t *testing.T) {
	root := t.TempDir()
	first := writeFile(t, root, "alpha/pkg.sty")
	writeFile(t, root, "beta/pkg.sty")

	ix, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	got, ok := ix.Resolve("pkg")
	if !ok || got != mustAbs(t, first) {
		t.Errorf("Resolve(pkg) = %s, want lexicographically first %s", got, first)
	}
}

func TestResolve_MissAndCache(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pkg.sty")

	ix, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := ix.Resolve("nothere"); ok {
		t.Error("expected a miss for an unknown name")
	}
	// Repeated lookups hit the cache and stay stable.
	a, okA := ix.Resolve("pkg")
	b, okB := ix.Resolve("pkg")
	if !okA || !okB || a != b {
		t.Errorf("cached resolution differs: %s / %s", a, b)
	}
	if _, ok := ix.Resolve("nothere"); ok {
		t.Error("cached miss flipped to a hit")
	}
}

func TestResolve_IgnoresOtherExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pkg.bib")
	writeFile(t, root, "pkg.cls")

	ix, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := ix.Resolve("pkg"); ok {
		t.Error("only .sty and .tex files are indexed")
	}
}

func TestCandidates_SortedAndComplete(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.tex")
	writeFile(t, root, "a.tex")
	writeFile(t, root, "sub/c.sty")
	writeFile(t, root, "notes.txt")

	ix, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	paths := ix.Candidates()
	if len(paths) != 3 {
		t.Fatalf("expected 3 indexed files, got %d: %v", len(paths), paths)
	}
	for i := 1; i < len(paths); i++ {
		if paths[i-1] >= paths[i] {
			t.Errorf("candidates are not sorted: %v", paths)
		}
	}
}

func TestRoot_IsAbsolute(t *testing.T) {
	root := t.TempDir()
	ix, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(ix.Root()) {
		t.Errorf("Root() = %s, want an absolute path", ix.Root())
	}
}

func mustAbs(t *testing.T, path string) string {
	t.Helper()
	abs, err := filepath.Abs(path)
	if err != nil {
		t.Fatal(err)
	}
	return abs
}
