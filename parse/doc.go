// Package parse provides a small set of primitives for writing
// recursive-descent parsers over a single-pass character cursor.
//
// # Overview
//
// Every grammar element is a Parser: something that either consumes a prefix
// of the cursor and produces a value, or reports absence without consuming
// anything at all. Grammars are written by calling the combinators in
// sequence:
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Cursor    │────▶│  AcceptIf   │────▶│ Token/List/ │
//	│ Peek / Next │     │ (1 rune)    │     │ Alt/Syntax  │
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// AcceptIf is the only place the cursor is advanced. Everything else is
// built from it, which is how the all-or-nothing rule holds throughout.
//
// # Optional and mandatory elements
//
// At each call site the grammar author decides whether an element may be
// missing:
//
//	name, ok := parse.Maybe(Ident, c)  // absence is a normal outcome
//	name := parse.Require(Ident, c)    // absence is malformed input
//
// The same split exists for fixed characters (MaybeSyntax, RequireSyntax).
//
// # Tokens
//
// A Token describes a lexical class with predicates and is scanned by
// maximal munch, optionally with an escape character:
//
//	var Ident = &parse.Token[string]{
//	    Class:  "identifier",
//	    First:  unicode.IsLetter,
//	    Accept: func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) },
//	    Make:   func(s string) string { return s },
//	}
//
// Whitespace following a token or a syntax character is skipped
// automatically, so grammars never deal with it between elements.
//
// # Fatal errors
//
// Malformed input (a failed Require, an illegal escape, an exceeded safety
// margin) is not returned as a value. It panics with an *Error that only Run
// recovers:
//
//	err := parse.Run(func() {
//	    rules = parse.Require(RuleList, c)
//	})
//
// Code that embeds a grammar in a long-lived process must enter it through
// Run or Complete.
//
// # Alternation
//
// Alt chooses between exactly two alternatives by looking at one rune.
// Grammars needing more arms or deeper lookahead write their own dispatch
// instead of nesting Alt.
package parse
