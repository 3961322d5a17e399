package parse

import "fmt"

const (
	DefaultSep   = ','
	DefaultLimit = 127
)

// ParseList parses a non-empty list of elements separated by sep, each
// separator followed by optional whitespace.
//
// A missing first element means there is no list and nothing is consumed. A
// separator must be followed by another element; a trailing separator is
// fatal. At most limit elements are accepted: a separator after the
// limit-th element is fatal.
func ParseList[T any](elem Parser[T], sep rune, limit int, c Cursor) ([]T, bool) {
	first, ok := Maybe(elem, c)
	if !ok {
		return nil, false
	}
	elems := []T{first}
	for MaybeSyntax(sep, c) {
		if len(elems) >= limit {
			Fatalf(c, "list: parsing multiple items: safety margin exceeded")
		}
		elems = append(elems, Require(elem, c))
	}
	return elems, true
}

// List is a Parser for a separated list of Elem.
type List[T any] struct {
	Elem  Parser[T]
	Sep   rune // 0 means DefaultSep
	Limit int  // 0 means DefaultLimit
}

func (l List[T]) Name() string {
	return fmt.Sprintf("list of %s", nameOf(l.Elem))
}

func (l List[T]) Parse(c Cursor) ([]T, bool) {
	sep, limit := l.Sep, l.Limit
	if sep == 0 {
		sep = DefaultSep
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	return ParseList(l.Elem, sep, limit, c)
}
