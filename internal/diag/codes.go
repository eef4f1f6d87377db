package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadEscape                Code = 1005

	// Syntax
	SynUnexpectedToken    Code = 2001
	SynExpectSemicolon    Code = 2002
	SynUnclosedDelimiter  Code = 2003
	SynExpectIdentifier   Code = 2004
	SynExpectType         Code = 2005
	SynExpectExpression   Code = 2006
	SynNestingTooDeep     Code = 2007
	SynBadAssignTarget    Code = 2008
	SynUnexpectedTopLevel Code = 2009

	// Types
	TypUnboundName   Code = 3001
	TypNotAFunction  Code = 3002
	TypMismatch      Code = 3003
	TypInfinite      Code = 3004
	TypArity         Code = 3005
	TypDepthLimit    Code = 3006
	TypUnknownType   Code = 3007
	TypDuplicateDecl Code = 3008

	// IR
	IRDuplicateLabel  Code = 4001
	IRUnknownTarget   Code = 4002
	IRBadOperands     Code = 4003
	IREmptyFunction   Code = 4004
	IRUnknownOpcode   Code = 4005
	IRMissingFunction Code = 4006

	// Project
	ProjManifestInvalid Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	LexBadEscape:                "Unknown escape sequence",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectSemicolon:          "Expected ';'",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectType:               "Expected type",
	SynExpectExpression:         "Expected expression",
	SynNestingTooDeep:           "Nesting too deep",
	SynBadAssignTarget:          "Invalid assignment target",
	SynUnexpectedTopLevel:       "Unexpected top-level item",
	TypUnboundName:              "Unbound name",
	TypNotAFunction:             "Callee is not a function",
	TypMismatch:                 "Type mismatch",
	TypInfinite:                 "Infinite type",
	TypArity:                    "Arity mismatch",
	TypDepthLimit:               "Expression nesting limit exceeded",
	TypUnknownType:              "Unknown type",
	TypDuplicateDecl:            "Duplicate declaration",
	IRDuplicateLabel:            "Duplicate block label",
	IRUnknownTarget:             "Unknown jump target",
	IRBadOperands:               "Malformed instruction operands",
	IREmptyFunction:             "Function has no blocks",
	IRUnknownOpcode:             "Unknown opcode",
	IRMissingFunction:           "Call to unknown function",
	ProjManifestInvalid:         "Invalid grok.toml",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TYP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IR%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
