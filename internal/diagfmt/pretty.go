package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"grok/internal/diag"
	"grok/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes diagnostics in a human-readable form. Items are printed in
// bag order; call bag.Sort() first for positional order. Each diagnostic is
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with the span underlined as ^~~~ and then
// its notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		loc := location(fs, d.Primary, opts.PathMode, opts.BaseDir)
		sev := p.severity(d.Severity)
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.bold.Sprint(loc), sev.Sprint(d.Severity.String()), sev.Sprint(d.Code.ID()), d.Message)
		writeSnippet(w, fs, d.Primary, int(opts.Context), p)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), location(fs, n.Span, opts.PathMode, opts.BaseDir), n.Msg)
		}
	}
}

func location(fs *source.FileSet, sp source.Span, mode PathMode, baseDir string) string {
	f := fs.Get(sp.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(f.Path, mode, baseDir), start.Line, start.Col)
}

// writeSnippet prints the lines of sp with a caret line under the first one.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, context int, p palette) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return
	}
	first := start.Line
	if context > 0 {
		first = uint32(max(int(start.Line)-context, 1))
	}
	width := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(w, " %s %s %s\n", p.gutter.Sprintf("%*d", width, ln), p.gutter.Sprint("|"), f.GetLine(ln))
	}

	line := f.GetLine(start.Line)
	col := int(start.Col) - 1
	col = min(max(col, 0), len(line))
	pad := padding(line[:col])
	underline := 1
	if end.Line == start.Line && end.Col > start.Col {
		stop := min(int(end.Col)-1, len(line))
		underline = max(displayWidth(line[col:stop]), 1)
	} else if end.Line > start.Line {
		underline = max(displayWidth(line[col:]), 1)
	}
	marks := "^" + strings.Repeat("~", underline-1)
	fmt.Fprintf(w, " %s %s %s%s\n", strings.Repeat(" ", width), p.gutter.Sprint("|"), pad, p.caret.Sprint(marks))
}

// padding blanks out prefix column for column, keeping tabs so the caret
// lines up with the echoed line.
func padding(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		if r == '\t' {
			n++
			continue
		}
		n += runewidth.RuneWidth(r)
	}
	return n
}
