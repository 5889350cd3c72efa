package upgrade

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ColorMode selects whether Printer styles its output.
type ColorMode string

const (
	// ColorAuto defers to fatih/color terminal detection.
	ColorAuto ColorMode = "auto"
	// ColorAlways forces styled output.
	ColorAlways ColorMode = "always"
	// ColorNever disables styling.
	ColorNever ColorMode = "never"
)

// ParseColorMode maps a flag or config value to a ColorMode. Empty means auto.
func ParseColorMode(raw string) (ColorMode, bool) {
	switch ColorMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ColorAuto:
		return ColorAuto, true
	case ColorAlways:
		return ColorAlways, true
	case ColorNever:
		return ColorNever, true
	default:
		return "", false
	}
}

// Printer writes operator-facing output. Write errors are sticky: the first one is kept
// and later writes become no-ops, so call sites do not need per-line checks.
type Printer struct {
	w       io.Writer
	err     error
	info    *color.Color
	comment *color.Color
	errc    *color.Color
	title   *color.Color
}

// NewPrinter returns a Printer writing to out.
func NewPrinter(out io.Writer, mode ColorMode) *Printer {
	if out == nil {
		out = io.Discard
	}
	p := &Printer{
		w:       out,
		info:    color.New(color.FgGreen),
		comment: color.New(color.FgYellow),
		errc:    color.New(color.FgRed),
		title:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.info, p.comment, p.errc, p.title} {
		switch mode {
		case ColorAlways:
			c.EnableColor()
		case ColorNever:
			c.DisableColor()
		}
	}
	return p
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Err returns the first write error, if any.
func (p *Printer) Err() error {
	return p.err
}

// Info styles s as a successful or notable value.
func (p *Printer) Info(s string) string {
	return p.info.Sprint(s)
}

// Comment styles s as a neutral, already-satisfied value.
func (p *Printer) Comment(s string) string {
	return p.comment.Sprint(s)
}

// Error styles s as an error.
func (p *Printer) Error(s string) string {
	return p.errc.Sprint(s)
}

// Printf writes a formatted line; a trailing newline is added.
func (p *Printer) Printf(format string, args ...any) {
	p.Println(fmt.Sprintf(format, args...))
}

// Println writes a line.
func (p *Printer) Println(args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, args...)
}

// Blank writes an empty line.
func (p *Printer) Blank() {
	p.Println()
}

// Title writes an underlined title block.
func (p *Printer) Title(text string) {
	p.Blank()
	p.Println(p.title.Sprint(text))
	p.Println(p.title.Sprint(strings.Repeat("=", len(text))))
	p.Blank()
}

// Section writes an underlined section header.
func (p *Printer) Section(text string) {
	p.Println(p.comment.Sprint(text))
	p.Println(p.comment.Sprint(strings.Repeat("-", len(text))))
	p.Blank()
}
