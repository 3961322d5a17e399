package parse

import "unicode"

// AcceptIf consumes the next rune if pred accepts it. It reports false,
// without consuming anything, when the input is exhausted or pred rejects
// the rune.
func AcceptIf(pred func(rune) bool, c Cursor) (rune, bool) {
	ch, ok := c.Peek()
	if !ok || !pred(ch) {
		return 0, false
	}
	c.Next()
	return ch, true
}

// Whitespace consumes one or more whitespace runes. It reports false if the
// next rune is not whitespace.
func Whitespace(c Cursor) bool {
	if _, ok := AcceptIf(unicode.IsSpace, c); !ok {
		return false
	}
	SkipWhitespace(c)
	return true
}

// SkipWhitespace consumes any whitespace runes at the cursor.
func SkipWhitespace(c Cursor) {
	for {
		if _, ok := AcceptIf(unicode.IsSpace, c); !ok {
			return
		}
	}
}

// MaybeSyntax consumes ch and any whitespace following it.
func MaybeSyntax(ch rune, c Cursor) bool {
	if _, ok := AcceptIf(func(r rune) bool { return r == ch }, c); !ok {
		return false
	}
	SkipWhitespace(c)
	return true
}

// RequireSyntax is MaybeSyntax, but a missing ch is fatal.
func RequireSyntax(ch rune, c Cursor) {
	if MaybeSyntax(ch, c) {
		return
	}
	found := "EOL"
	if r, ok := c.Peek(); ok {
		found = string(r)
	}
	Fatalf(c, "parse error: expecting `%c' but found `%s'", ch, found)
}

// EndOfParse reports whether the input is exhausted.
func EndOfParse(c Cursor) bool {
	_, ok := c.Peek()
	return !ok
}
