package parse

import (
	"errors"
	"fmt"
)

// Error is a fatal parse failure: malformed input or an exceeded safety
// margin. It is raised with panic and turned back into an error by Run.
type Error struct {
	Pos     Position
	HasPos  bool
	Message string
}

func (e *Error) Error() string {
	if !e.HasPos {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Fatalf aborts the current parse. If c implements Positioner, the error
// records where the cursor stopped.
func Fatalf(c Cursor, format string, args ...any) {
	err := &Error{Message: fmt.Sprintf(format, args...)}
	if p, ok := c.(Positioner); ok {
		err.Pos = p.Position()
		err.HasPos = true
	}
	panic(err)
}

// Run calls f and converts a fatal parse failure raised inside it into an
// error. Panics with any other value are propagated unchanged.
func Run(f func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if perr, ok := r.(*Error); ok {
			err = perr
			return
		}
		panic(r)
	}()
	f()
	return nil
}

// Complete parses a whole input as a single T. Both absence and trailing
// input are reported as errors.
func Complete[T any](p Parser[T], c Cursor) (T, error) {
	var result T
	err := Run(func() {
		result = Require(p, c)
		if ch, ok := c.Peek(); ok {
			Fatalf(c, "parse error: unexpected `%c' after `%s'", ch, nameOf(p))
		}
	})
	return result, err
}

// IsFatal reports whether err is, or wraps, a fatal parse failure.
func IsFatal(err error) bool {
	var perr *Error
	return errors.As(err, &perr)
}
