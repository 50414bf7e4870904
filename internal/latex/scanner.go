// Package latex recognizes the declaration directives of LaTeX source files:
// package inclusions (\usepackage) and macro definitions (\newcommand and its
// relatives). It is not a LaTeX grammar parser; it locates the directive
// control sequences and captures their first brace-delimited argument.
package latex

import "strings"

// OccurrenceKind identifies which directive a raw occurrence came from.
type OccurrenceKind int

const (
	// UsePackageOccurrence is a \usepackage directive.
	UsePackageOccurrence OccurrenceKind = iota
	// NewCommandOccurrence is a \newcommand, \renewcommand or
	// \providecommand directive.
	NewCommandOccurrence
	// LegacyDefOccurrence is an old-style \def definition. Reported so
	// callers can count and discard them; never surfaced as a command.
	LegacyDefOccurrence
)

// String returns the directive name for the kind.
func (k OccurrenceKind) String() string {
	switch k {
	case UsePackageOccurrence:
		return "usepackage"
	case NewCommandOccurrence:
		return "newcommand"
	case LegacyDefOccurrence:
		return "def"
	default:
		return "unrecognized"
	}
}

// Occurrence is one raw directive found in a file's text.
type Occurrence struct {
	// Kind is the directive form.
	Kind OccurrenceKind
	// Arg is the trimmed text of the directive's first brace group
	// (for \def, the name of the defined control sequence).
	Arg string
	// Line is the 1-based line on which the directive starts.
	Line int
}

// Scanner produces the directive occurrences of one file's text, lazily and
// in order. A fresh Scanner over the same text restarts the sequence; no scan
// state is shared across files.
type Scanner struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
}

// NewScanner creates a Scanner for the given text.
func NewScanner(input string) *Scanner {
	s := &Scanner{input: input, line: 1}
	s.readChar()
	return s
}

// readChar advances to the next character.
func (s *Scanner) readChar() {
	if s.ch == '\n' {
		s.line++
	}
	if s.readPos >= len(s.input) {
		s.ch = 0 // NUL = end of input
	} else {
		s.ch = s.input[s.readPos]
	}
	s.pos = s.readPos
	s.readPos++
}

// peekChar returns the next character without advancing.
func (s *Scanner) peekChar() byte {
	if s.readPos >= len(s.input) {
		return 0
	}
	return s.input[s.readPos]
}

// Next returns the next directive occurrence, or ok=false at end of input.
// Malformed directives (no brace group, unbalanced braces) are skipped, never
// reported: the rest of the file is not a grammar target.
func (s *Scanner) Next() (Occurrence, bool) {
	for s.ch != 0 {
		if s.ch != '\\' {
			s.readChar()
			continue
		}
		if s.peekChar() == '\\' {
			// \\ is a line break, not a control sequence
			s.readChar()
			s.readChar()
			continue
		}

		line := s.line
		name := s.readControlWord()
		kind, ok := directiveKind(name)
		if !ok {
			continue
		}
		arg, ok := s.readArgument(kind)
		if !ok {
			continue
		}
		return Occurrence{Kind: kind, Arg: arg, Line: line}, true
	}
	return Occurrence{}, false
}

// readControlWord consumes a backslash and the letters that follow it.
func (s *Scanner) readControlWord() string {
	s.readChar() // consume the backslash
	start := s.pos
	for isLetter(s.ch) {
		s.readChar()
	}
	return s.input[start:s.pos]
}

// directiveKind maps a control word to the directive it starts, if any.
func directiveKind(name string) (OccurrenceKind, bool) {
	switch name {
	case "usepackage":
		return UsePackageOccurrence, true
	case "newcommand", "renewcommand", "providecommand":
		return NewCommandOccurrence, true
	case "def":
		return LegacyDefOccurrence, true
	default:
		return 0, false
	}
}

// readArgument captures the directive's payload. For brace-form directives
// this is the first balanced {...} group, after any [...] options blocks.
// For \def it is the control sequence being defined.
func (s *Scanner) readArgument(kind OccurrenceKind) (string, bool) {
	s.skipWhitespace()

	if kind == LegacyDefOccurrence {
		if s.ch != '\\' {
			return "", false
		}
		return s.readControlWord(), true
	}

	// Options before the mandatory group, e.g. \usepackage[utf8]{inputenc}.
	for s.ch == '[' {
		for s.ch != ']' {
			if s.ch == 0 {
				return "", false
			}
			s.readChar()
		}
		s.readChar() // consume the ]
		s.skipWhitespace()
	}

	if s.ch != '{' {
		return "", false
	}
	s.readChar() // consume the {
	start := s.pos
	depth := 1
	for depth > 0 {
		switch s.ch {
		case 0:
			return "", false // unbalanced: skip the occurrence
		case '\\':
			s.readChar() // escaped char, e.g. \{ or \}
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth == 0 {
			break
		}
		s.readChar()
	}
	arg := s.input[start:s.pos]
	s.readChar() // consume the closing }
	return strings.TrimSpace(arg), true
}

// skipWhitespace consumes spaces, tabs and newlines.
func (s *Scanner) skipWhitespace() {
	for s.ch == ' ' || s.ch == '\t' || s.ch == '\n' || s.ch == '\r' {
		s.readChar()
	}
}

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}
