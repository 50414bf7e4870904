// Package output handles CLI output rendering across modes. Terminal runs
// get styled text; piped or scripted runs get plain text, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Mode selects the output format.
type Mode string

const (
	// ModeAuto picks text, with styling only on a terminal.
	ModeAuto Mode = "auto"
	// ModeText is the human-readable text format.
	ModeText Mode = "text"
	// ModeJSON is indented JSON.
	ModeJSON Mode = "json"
	// ModeYAML is YAML.
	ModeYAML Mode = "yaml"
)

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return NewRendererWithTTY(out, errOut, isTTY, mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
// Used by tests to pin styling behavior.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		styles: newStyles(isTTY),
	}
}

// EffectiveMode resolves ModeAuto to the concrete mode in use.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode == ModeAuto {
		return ModeText
	}
	return r.mode
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Styles returns the style set for the current TTY state.
func (r *Renderer) Styles() Styles {
	return r.styles
}

// Writer returns the underlying output writer for bulk rendering.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// Println writes a line to the output.
func (r *Renderer) Println(s string) {
	fmt.Fprintln(r.out, s)
}

// Printf writes formatted text to the output.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Header writes a styled section header.
func (r *Renderer) Header(text string) {
	fmt.Fprintln(r.out, r.styles.Header.Render(text))
}

// Muted writes a de-emphasized line, typically a summary.
func (r *Renderer) Muted(text string) {
	fmt.Fprintln(r.out, r.styles.Muted.Render(text))
}

// Error writes an error line to the error output.
func (r *Renderer) Error(text string) {
	fmt.Fprintln(r.errOut, r.styles.Error.Render(text))
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as YAML.
func (r *Renderer) YAML(v any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
