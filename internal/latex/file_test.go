package latex

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParse_Packages(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantNames []string
		wantLines []int
	}{
		{
			name:      "single package",
			content:   "\\usepackage{amsmath}\n",
			wantNames: []string{"amsmath"},
			wantLines: []int{1},
		},
		{
			name:      "comma separated packages share the line",
			content:   "text\n\\usepackage{a, b}\n",
			wantNames: []string{"a", "b"},
			wantLines: []int{2, 2},
		},
		{
			name:      "empty names from stray commas are dropped",
			content:   "\\usepackage{a,,b,}\n",
			wantNames: []string{"a", "b"},
			wantLines: []int{1, 1},
		},
		{
			name:      "appearance order is kept",
			content:   "\\usepackage{z}\n\\usepackage{a}\n",
			wantNames: []string{"z", "a"},
			wantLines: []int{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Parse("test.tex", tt.content)

			var names []string
			var lines []int
			for _, p := range f.Packages {
				names = append(names, p.Name)
				lines = append(lines, p.Line)
				if p.File != f {
					t.Errorf("package %s does not point back to its file", p.Name)
				}
			}
			if !reflect.DeepEqual(names, tt.wantNames) {
				t.Errorf("names = %v, want %v", names, tt.wantNames)
			}
			if !reflect.DeepEqual(lines, tt.wantLines) {
				t.Errorf("lines = %v, want %v", lines, tt.wantLines)
			}
		})
	}
}

func TestParse_Commands(t *testing.T) {
	content := `\newcommand{\rootcmd}{one}
\newcommand{\other}{two}
\renewcommand{\rootcmd}{three}
\def\legacy{ignored}
`
	f := Parse("test.tex", content)

	if len(f.Commands) != 3 {
		t.Fatalf("expected 3 commands, got %d", len(f.Commands))
	}

	first := f.Commands[0]
	if first.Name != "rootcmd" || first.Line != 1 || first.Redefinition {
		t.Errorf("first definition wrong: %+v", first)
	}
	if f.Commands[1].Name != "other" || f.Commands[1].Redefinition {
		t.Errorf("second definition wrong: %+v", f.Commands[1])
	}

	redef := f.Commands[2]
	if redef.Name != "rootcmd" || redef.Line != 3 || !redef.Redefinition {
		t.Errorf("redefinition not flagged: %+v", redef)
	}

	// Both entries for the redefined name remain.
	count := 0
	for _, c := range f.Commands {
		if c.Name == "rootcmd" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected the earlier definition to be retained, found %d entries", count)
	}
}

func TestParse_LegacyDefDiscarded(t *testing.T) {
	f := Parse("test.tex", `\def\legacy{body}`)
	if len(f.Commands) != 0 {
		t.Errorf("legacy \\def must never surface as a command, got %v", f.Commands)
	}
}

func TestParse_Deterministic(t *testing.T) {
	content := "\\usepackage{a,b}\n\\newcommand{\\x}{1}\n\\newcommand{\\x}{2}\n"
	a := Parse("same.tex", content)
	b := Parse("same.tex", content)

	if len(a.Packages) != len(b.Packages) || len(a.Commands) != len(b.Commands) {
		t.Fatalf("re-parsing unchanged text changed the result")
	}
	for i := range a.Packages {
		if a.Packages[i].Name != b.Packages[i].Name || a.Packages[i].Line != b.Packages[i].Line {
			t.Errorf("package %d differs between parses", i)
		}
	}
	for i := range a.Commands {
		if *a.Commands[i] != (Command{Name: b.Commands[i].Name, File: a.Commands[i].File,
			Line: b.Commands[i].Line, Redefinition: b.Commands[i].Redefinition}) {
			t.Errorf("command %d differs between parses", i)
		}
	}
}

func TestKindOf(t *testing.T) {
	if got := Parse("a/b/pkg.sty", "").Kind; got != StyFile {
		t.Errorf("pkg.sty kind = %s, want sty", got)
	}
	if got := Parse("main.tex", "").Kind; got != TexFile {
		t.Errorf("main.tex kind = %s, want tex", got)
	}
	if got := Parse("PKG.STY", "").Kind; got != StyFile {
		t.Errorf("extension match should ignore case, got %s", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "main.tex")
	if err := os.WriteFile(path, []byte("\\usepackage{amsmath}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(f.Packages) != 1 || f.Packages[0].Name != "amsmath" {
		t.Errorf("unexpected parse result: %+v", f.Packages)
	}
	if f.Name() != "main.tex" {
		t.Errorf("Name() = %s", f.Name())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.tex"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap the underlying cause, got %v", err)
	}
}

func TestLoad_InvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.tex")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x41}, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if decodeErr.Path != path {
		t.Errorf("error should name the offending path, got %s", decodeErr.Path)
	}
}
