package parse

import "fmt"

// Either holds the outcome of Alt: Primary when IsPrimary, Fallback otherwise.
type Either[A, B any] struct {
	Primary   A
	Fallback  B
	IsPrimary bool
}

// Get returns both arms and which one is set.
func (e Either[A, B]) Get() (A, B, bool) {
	return e.Primary, e.Fallback, e.IsPrimary
}

func (e Either[A, B]) String() string {
	if e.IsPrimary {
		return fmt.Sprint(e.Primary)
	}
	return fmt.Sprint(e.Fallback)
}

// Alt chooses between two alternatives by looking at the next rune only: if
// First may start with it, First is parsed, otherwise Second is.
//
// Alt is deliberately limited to two arms. A grammar with three or more
// alternatives, or one that needs to look further than one rune, should
// dispatch explicitly rather than nest Alt.
type Alt[A, B any] struct {
	First  *Token[A]
	Second Parser[B]
}

func (a Alt[A, B]) Name() string {
	return fmt.Sprintf("%s or %s", a.First.Name(), nameOf(a.Second))
}

func (a Alt[A, B]) Parse(c Cursor) (Either[A, B], bool) {
	var e Either[A, B]
	ch, ok := c.Peek()
	if !ok {
		return e, false
	}
	if a.First.AcceptsFirst(ch) {
		e.Primary, e.IsPrimary = a.First.Parse(c)
		return e, e.IsPrimary
	}
	e.Fallback, ok = a.Second.Parse(c)
	return e, ok
}
