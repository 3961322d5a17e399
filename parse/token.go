package parse

import (
	"reflect"
	"strings"
)

const (
	// DefaultMaxLen bounds the length of a token in bytes when Token.MaxLen
	// is zero.
	DefaultMaxLen = 255

	// NoEscape disables escaping for a token class.
	NoEscape rune = 0
)

// Token describes a lexical class. A *Token[T] is a Parser[T] that scans the
// longest prefix of the input belonging to the class.
//
// Escape, when not NoEscape, introduces an escape sequence: the escape rune
// is dropped and the rune after it, which must satisfy Escaped, is kept
// verbatim even if Accept would reject it.
type Token[T any] struct {
	Class   string          // name used in diagnostics
	First   func(rune) bool // nil means Accept
	Accept  func(rune) bool
	Escape  rune
	Escaped func(rune) bool // nil means nothing may be escaped
	MaxLen  int             // 0 means DefaultMaxLen
	Make    func(string) T  // nil yields the zero T
}

func (t *Token[T]) Name() string {
	if t.Class != "" {
		return t.Class
	}
	return reflect.TypeFor[T]().String()
}

// AcceptsFirst reports whether a token of this class may start with r.
func (t *Token[T]) AcceptsFirst(r rune) bool {
	if t.First != nil {
		return t.First(r)
	}
	return t.Accept(r)
}

func (t *Token[T]) escaped(r rune) bool {
	return t.Escaped != nil && t.Escaped(r)
}

func (t *Token[T]) isEscape(r rune) bool {
	return r == t.Escape
}

func (t *Token[T]) maxLen() int {
	if t.MaxLen > 0 {
		return t.MaxLen
	}
	return DefaultMaxLen
}

func (t *Token[T]) Parse(c Cursor) (T, bool) {
	var zero T
	first, ok := AcceptIf(t.AcceptsFirst, c)
	if !ok {
		return zero, false
	}

	var text strings.Builder
	text.WriteRune(first)
	for {
		if ch, ok := AcceptIf(t.Accept, c); ok {
			text.WriteRune(ch)
		} else if _, ok := t.acceptEscape(c); ok {
			ch, ok := AcceptIf(t.escaped, c)
			if !ok {
				Fatalf(c, "tokenizer: illegal escape sequence")
			}
			text.WriteRune(ch)
		} else {
			break
		}
		if text.Len() >= t.maxLen() {
			Fatalf(c, "tokenizer: exceeded safety margin")
		}
	}

	SkipWhitespace(c)
	if t.Make == nil {
		return zero, true
	}
	return t.Make(text.String()), true
}

func (t *Token[T]) acceptEscape(c Cursor) (rune, bool) {
	if t.Escape == NoEscape {
		return 0, false
	}
	return AcceptIf(t.isEscape, c)
}
