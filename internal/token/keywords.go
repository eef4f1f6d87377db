package token

var keywords = map[string]Kind{
	"fn":     KwFn,
	"let":    KwLet,
	"mut":    KwMut,
	"if":     KwIf,
	"else":   KwElse,
	"while":  KwWhile,
	"return": KwReturn,
	"struct": KwStruct,
	"trait":  KwTrait,
	"true":   KwTrue,
	"false":  KwFalse,
}

// LookupKeyword returns the keyword kind for ident. Matching is case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
