package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwMut represents the 'mut' keyword.
	KwMut // mut
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwTrait represents the 'trait' keyword.
	KwTrait // trait
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false

	// IntLit is an integer literal.
	IntLit
	// FloatLit is a floating point literal.
	FloatLit
	// StringLit is a double-quoted string literal, quotes included in Text.
	StringLit

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Assign    // =
	EqEq      // ==
	Bang      // !
	BangEq    // !=
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	AndAnd    // &&
	OrOr      // ||
	Arrow     // ->
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Colon     // :
	Semicolon // ;
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	KwFn:      "fn",
	KwLet:     "let",
	KwMut:     "mut",
	KwIf:      "if",
	KwElse:    "else",
	KwWhile:   "while",
	KwReturn:  "return",
	KwStruct:  "struct",
	KwTrait:   "trait",
	KwTrue:    "true",
	KwFalse:   "false",
	IntLit:    "IntLit",
	FloatLit:  "FloatLit",
	StringLit: "StringLit",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Percent:   "%",
	Assign:    "=",
	EqEq:      "==",
	Bang:      "!",
	BangEq:    "!=",
	Lt:        "<",
	LtEq:      "<=",
	Gt:        ">",
	GtEq:      ">=",
	AndAnd:    "&&",
	OrOr:      "||",
	Arrow:     "->",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	Comma:     ",",
	Colon:     ":",
	Semicolon: ";",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
