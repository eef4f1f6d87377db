package lexer_test

import (
	"testing"

	"grok/internal/diag"
	"grok/internal/lexer"
	"grok/internal/source"
	"grok/internal/token"
)

func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.grok", []byte(input))
	bag := diag.NewBag(32)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func TestLexer_Function(t *testing.T) {
	lx, bag := makeTestLexer("fn add(a: i32, b: i32) -> i32 { a + b }")
	got := kinds(lx.All())
	want := []token.Kind{
		token.KwFn, token.Ident, token.LParen,
		token.Ident, token.Colon, token.Ident, token.Comma,
		token.Ident, token.Colon, token.Ident, token.RParen,
		token.Arrow, token.Ident, token.LBrace,
		token.Ident, token.Plus, token.Ident, token.RBrace, token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestLexer_Operators(t *testing.T) {
	tests := []struct {
		src  string
		want token.Kind
	}{
		{"->", token.Arrow},
		{"&&", token.AndAnd},
		{"||", token.OrOr},
		{"==", token.EqEq},
		{"!=", token.BangEq},
		{"<=", token.LtEq},
		{">=", token.GtEq},
		{"<", token.Lt},
		{"!", token.Bang},
		{"%", token.Percent},
		{"=", token.Assign},
	}
	for _, tt := range tests {
		lx, _ := makeTestLexer(tt.src)
		tok := lx.Next()
		if tok.Kind != tt.want || tok.Text != tt.src {
			t.Fatalf("%q: got %v %q", tt.src, tok.Kind, tok.Text)
		}
	}
}

func TestLexer_Numbers(t *testing.T) {
	tests := []struct {
		src  string
		want token.Kind
	}{
		{"42", token.IntLit},
		{"1_000", token.IntLit},
		{"0xff", token.IntLit},
		{"0b1010", token.IntLit},
		{"0o17", token.IntLit},
		{"3.25", token.FloatLit},
		{"1e9", token.FloatLit},
		{"2.5E-3", token.FloatLit},
	}
	for _, tt := range tests {
		lx, bag := makeTestLexer(tt.src)
		tok := lx.Next()
		if tok.Kind != tt.want || tok.Text != tt.src {
			t.Fatalf("%q: got %v %q", tt.src, tok.Kind, tok.Text)
		}
		if bag.Len() != 0 {
			t.Fatalf("%q: unexpected diagnostics", tt.src)
		}
	}
}

func TestLexer_BadNumber(t *testing.T) {
	lx, bag := makeTestLexer("0x 1e+ 12ab")
	toks := lx.All()
	for _, tok := range toks[:3] {
		if tok.Kind != token.Invalid {
			t.Fatalf("expected Invalid, got %v %q", tok.Kind, tok.Text)
		}
	}
	if bag.Len() != 3 || bag.Items()[0].Code != diag.LexBadNumber {
		t.Fatalf("expected 3 LexBadNumber diagnostics, got %v", bag.Items())
	}
}

func TestLexer_CommentsSkipped(t *testing.T) {
	lx, bag := makeTestLexer("// line\nlet /* block /* nested */ */ x = 1; // tail")
	got := kinds(lx.All())
	want := []token.Kind{token.KwLet, token.Ident, token.Assign, token.IntLit, token.Semicolon, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestLexer_Strings(t *testing.T) {
	lx, bag := makeTestLexer(`"hi\n\"there\"" "open`)
	first := lx.Next()
	if first.Kind != token.StringLit || first.Text != `"hi\n\"there\""` {
		t.Fatalf("got %v %q", first.Kind, first.Text)
	}
	second := lx.Next()
	if second.Kind != token.Invalid {
		t.Fatalf("unterminated string should be Invalid, got %v", second.Kind)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected LexUnterminatedString, got %v", bag.Items())
	}
}

func TestLexer_UnknownChar(t *testing.T) {
	lx, bag := makeTestLexer("a $ b")
	got := kinds(lx.All())
	if got[1] != token.Invalid {
		t.Fatalf("expected Invalid for '$', got %v", got)
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("expected LexUnknownChar, got %v", bag.Items())
	}
}

func TestLexer_PeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("x y")
	if p := lx.Peek(); p.Text != "x" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "x" {
		t.Fatalf("Next after Peek = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "y" {
		t.Fatalf("second Next = %q", n.Text)
	}
}

func TestLexer_UnicodeIdent(t *testing.T) {
	lx, bag := makeTestLexer("let café = 1;")
	toks := lx.All()
	if toks[1].Kind != token.Ident || toks[1].Text != "café" {
		t.Fatalf("got %v %q", toks[1].Kind, toks[1].Text)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestCursorSpan(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("c.grok", []byte("abc"))
	c := lexer.NewCursor(fs.Get(id))
	m := c.Mark()
	c.Bump()
	c.Bump()
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 2 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	if !c.Eat('c') || !c.EOF() || c.Peek() != 0 {
		t.Fatal("cursor should reach EOF after eating 'c'")
	}
}
