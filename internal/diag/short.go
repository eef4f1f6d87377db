package diag

import (
	"fmt"
	"sort"
	"strings"

	"grok/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShort renders diagnostics one per line as
// "severity CODE path:line:col message", sorted by position.
// Notes follow their diagnostic as "note" lines when includeNotes is set.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		rendered = append(rendered, shortFor(fs, strings.ToLower(d.Severity.String()), d.Code.ID(), d.Primary, d.Message))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			rendered = append(rendered, shortFor(fs, "note", d.Code.ID(), n.Span, n.Msg))
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		a, b := rendered[i], rendered[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	lines := make([]string, 0, len(rendered))
	for _, r := range rendered {
		lines = append(lines, fmt.Sprintf("%s %s %s:%d:%d %s", r.Severity, r.Code, r.Path, r.Line, r.Column, r.Message))
	}
	return strings.Join(lines, "\n")
}

func shortFor(fs *source.FileSet, sev, code string, sp source.Span, msg string) shortDiagnostic {
	path := "<unknown>"
	if f := fs.Get(sp.File); f != nil {
		path = f.Path
	}
	start, _ := fs.Resolve(sp)
	return shortDiagnostic{
		Severity: sev,
		Code:     code,
		Path:     path,
		Line:     start.Line,
		Column:   start.Col,
		Message:  strings.Join(strings.Fields(msg), " "),
	}
}
