package diag

import (
	"testing"

	"grok/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	if !b.Add(New(SevWarning, TypMismatch, source.Span{}, "w")) {
		t.Fatal("first add dropped")
	}
	if b.HasErrors() {
		t.Fatal("warning counted as error")
	}
	b.Add(NewError(TypUnboundName, source.Span{}, "e"))
	if b.Add(NewError(TypArity, source.Span{}, "dropped")) {
		t.Fatal("add past limit must fail")
	}
	if b.Len() != 2 || !b.HasErrors() || !b.HasWarnings() {
		t.Fatalf("unexpected bag state: len=%d", b.Len())
	}
}

func TestBagSortDedup(t *testing.T) {
	b := NewBag(10)
	r := BagReporter{Bag: b}
	ReportError(r, TypMismatch, source.Span{File: 0, Start: 9, End: 10}, "late").Emit()
	ReportError(r, TypUnboundName, source.Span{File: 0, Start: 1, End: 2}, "early").Emit()
	ReportError(r, TypUnboundName, source.Span{File: 0, Start: 1, End: 2}, "early").Emit()
	b.Sort()
	b.Dedup()
	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items after dedup, got %d", len(items))
	}
	if items[0].Message != "early" || items[1].Message != "late" {
		t.Fatalf("unexpected order: %q, %q", items[0].Message, items[1].Message)
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	b := NewBag(10)
	rb := ReportError(BagReporter{Bag: b}, TypNotAFunction, source.Span{}, "x is not callable").
		WithNote(source.Span{Start: 3, End: 4}, "x declared here")
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("expected single emit, got %d", b.Len())
	}
	if len(b.Items()[0].Notes) != 1 {
		t.Fatal("note lost")
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:     "LEX1001",
		SynUnexpectedToken: "SYN2001",
		TypInfinite:        "TYP3004",
		IRUnknownTarget:    "IR4002",
		UnknownCode:        "E0000",
	}
	for c, want := range cases {
		if got := c.ID(); got != want {
			t.Fatalf("%d.ID() = %q, want %q", c, got, want)
		}
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.grok", []byte("a\nb\n"))
	diags := []Diagnostic{
		NewError(TypMismatch, source.Span{File: id, Start: 2, End: 3}, "second\nline").
			WithNote(source.Span{File: id, Start: 0, End: 1}, "see here"),
		NewError(TypUnboundName, source.Span{File: id, Start: 0, End: 1}, "first"),
	}
	got := FormatShort(diags, fs, false)
	if got != "error TYP3001 main.grok:1:1 first\nerror TYP3003 main.grok:2:1 second line" {
		t.Fatalf("unexpected short output:\n%s", got)
	}
	withNotes := FormatShort(diags, fs, true)
	if withNotes != "note TYP3003 main.grok:1:1 see here\nerror TYP3001 main.grok:1:1 first\nerror TYP3003 main.grok:2:1 second line" {
		t.Fatalf("unexpected short output with notes:\n%s", withNotes)
	}
}
