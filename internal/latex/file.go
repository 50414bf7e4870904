package latex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// FileKind classifies a source file by extension.
type FileKind string

const (
	// TexFile is a LaTeX source file (.tex).
	TexFile FileKind = "tex"
	// StyFile is a style/package file (.sty).
	StyFile FileKind = "sty"
)

// File is one LaTeX source file with its extracted declarations. It is
// immutable after Parse and owned by the project's file table.
type File struct {
	// Path is the canonical path of the file.
	Path string
	// Kind is tex or sty.
	Kind FileKind
	// Content is the raw text, loaded once.
	Content string
	// Packages are the \usepackage references in appearance order.
	Packages []*Package
	// Commands are the macro definitions in appearance order.
	Commands []*Command
}

// Name returns the base name of the file.
func (f *File) Name() string {
	return filepath.Base(f.Path)
}

func (f *File) String() string {
	return f.Name()
}

// Package is one package name referenced by a \usepackage directive.
// A comma-separated directive yields one Package per name, all sharing
// the directive's line.
type Package struct {
	// Name is the referenced package name.
	Name string
	// File owns the directive. Back-reference, not an ownership edge.
	File *File
	// Line is the 1-based line of the directive.
	Line int
}

func (p *Package) String() string {
	return fmt.Sprintf("%s @ %d", p.Name, p.Line)
}

// Command is one macro defined by a \newcommand-family directive.
type Command struct {
	// Name is the macro name without the leading backslash.
	Name string
	// File owns the definition.
	File *File
	// Line is the 1-based line of the directive.
	Line int
	// Redefinition is set when an earlier directive in the same file
	// already defined the name. The earlier entry is retained; this is
	// informational, not an error.
	Redefinition bool
}

func (c *Command) String() string {
	return fmt.Sprintf("%s @ %d", c.Name, c.Line)
}

// DecodeError reports a file whose bytes are not valid UTF-8.
type DecodeError struct {
	Path string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("file %s is not valid UTF-8", e.Path)
}

// Load reads and parses one file. Read or decode failures are fatal to the
// indexing run, so they surface as errors naming the offending path.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(b) {
		return nil, &DecodeError{Path: path}
	}
	return Parse(path, string(b)), nil
}

// Parse extracts the declarations of one file's text. It is a pure function
// of the content: re-parsing unchanged text yields identical results. It
// never fails; malformed directives are skipped by the scanner and legacy
// \def forms are discarded here.
func Parse(path, content string) *File {
	f := &File{
		Path:    path,
		Kind:    kindOf(path),
		Content: content,
	}

	defined := make(map[string]bool)
	sc := NewScanner(content)
	for {
		occ, ok := sc.Next()
		if !ok {
			break
		}
		switch occ.Kind {
		case UsePackageOccurrence:
			// One directive may include several packages.
			for _, name := range strings.Split(occ.Arg, ",") {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				f.Packages = append(f.Packages, &Package{
					Name: name,
					File: f,
					Line: occ.Line,
				})
			}
		case NewCommandOccurrence:
			name := strings.TrimPrefix(strings.TrimSpace(occ.Arg), "\\")
			if name == "" {
				continue
			}
			f.Commands = append(f.Commands, &Command{
				Name:         name,
				File:         f,
				Line:         occ.Line,
				Redefinition: defined[name],
			})
			defined[name] = true
		case LegacyDefOccurrence:
			// Explicitly excluded from the macro set.
		}
	}
	return f
}

// kindOf classifies a path by extension; anything that is not a style file
// is treated as LaTeX source.
func kindOf(path string) FileKind {
	if strings.EqualFold(filepath.Ext(path), ".sty") {
		return StyFile
	}
	return TexFile
}
