package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"grok/internal/diag"
	"grok/internal/source"
)

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("fn main() {\n\tlet x = \"unterminated\n}")
	fileID := fs.AddVirtual("test.grok", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString, source.Span{File: fileID, Start: 21, End: 33}, "Unterminated string literal"))

	var buf bytes.Buffer
	opts := JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("count = %d, diagnostics = %d", output.Count, len(output.Diagnostics))
	}
	d := output.Diagnostics[0]
	tests := []struct {
		field     string
		got, want any
	}{
		{"severity", d.Severity, "ERROR"},
		{"code", d.Code, "LEX1002"},
		{"title", d.Title, "Unterminated string literal"},
		{"file", d.Location.File, "test.grok"},
		{"start_byte", d.Location.StartByte, uint32(21)},
		{"end_byte", d.Location.EndByte, uint32(33)},
		{"start_line", d.Location.StartLine, uint32(2)},
		{"start_col", d.Location.StartCol, uint32(10)},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.field, tt.got, tt.want)
		}
	}
}

func TestJSONNotesAndPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("dup.grok", []byte("fn a() { }\nfn a() { }\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.TypDuplicateDecl, source.Span{File: fileID, Start: 14, End: 15}, "'a' is already declared").
		WithNote(source.Span{File: fileID, Start: 3, End: 4}, "previous declaration of 'a' is here"))

	withNotes := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludeNotes: true})
	if n := withNotes.Diagnostics[0].Notes; len(n) != 1 || n[0].Location.StartByte != 3 {
		t.Fatalf("notes = %+v", n)
	}
	if withNotes.Diagnostics[0].Location.StartLine != 0 {
		t.Fatalf("positions included without IncludePositions")
	}

	without := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	if len(without.Diagnostics[0].Notes) != 0 {
		t.Fatalf("notes included without IncludeNotes")
	}
}

func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.grok", []byte("a b c d e"))
	bag := diag.NewBag(10)
	for i := range uint32(5) {
		bag.Add(diag.NewError(diag.TypUnboundName, source.Span{File: fileID, Start: i * 2, End: i*2 + 1}, "unbound"))
	}
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 3})
	if out.Count != 3 {
		t.Fatalf("count = %d, want 3", out.Count)
	}
}
