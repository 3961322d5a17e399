package parse

import "reflect"

// Parser is implemented by every grammar element.
//
// Parse either consumes a prefix of c and returns the value with true, or
// returns false having consumed nothing. It may also abort the parse with a
// fatal error (see Fatalf) when the input is malformed.
type Parser[T any] interface {
	Parse(c Cursor) (T, bool)
}

// Func adapts an ordinary function to Parser.
type Func[T any] func(c Cursor) (T, bool)

func (f Func[T]) Parse(c Cursor) (T, bool) {
	return f(c)
}

// Namer is implemented by parsers that want to be named in diagnostics.
// Parsers that do not implement it are named after the type they produce.
type Namer interface {
	Name() string
}

type named[T any] struct {
	Parser[T]
	name string
}

func (n named[T]) Name() string {
	return n.name
}

// Named attaches a diagnostic name to p.
func Named[T any](name string, p Parser[T]) Parser[T] {
	return named[T]{Parser: p, name: name}
}

// Maybe parses an optional T.
func Maybe[T any](p Parser[T], c Cursor) (T, bool) {
	return p.Parse(c)
}

// Require parses a mandatory T. Absence is fatal.
func Require[T any](p Parser[T], c Cursor) T {
	v, ok := Maybe(p, c)
	if !ok {
		Fatalf(c, "parse error: expected `%s'", nameOf(p))
	}
	return v
}

func nameOf[T any](p Parser[T]) string {
	if n, ok := p.(Namer); ok {
		return n.Name()
	}
	return reflect.TypeFor[T]().String()
}
