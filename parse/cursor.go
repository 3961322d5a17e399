package parse

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Cursor is a single-pass, peekable sequence of runes.
//
// Peek reports the next rune without consuming it, or false when the input is
// exhausted. Next consumes the rune Peek would report.
type Cursor interface {
	Peek() (rune, bool)
	Next()
}

// Positioner is implemented by cursors that know where they are. Fatal
// errors raised against such a cursor carry its position.
type Positioner interface {
	Position() Position
}

// Position represents a location in the input.
type Position struct {
	Filename string
	Offset   int // bytes
	Line     int // 1-based
	Column   int // 1-based, in runes
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Reader is a Cursor over a string that tracks line and column.
type Reader struct {
	input    string
	filename string
	base     int
	pos      int
	line     int
	column   int
}

// NewReader creates a cursor positioned at the start of input.
func NewReader(input, filename string) *Reader {
	return &Reader{
		input:    input,
		filename: filename,
		line:     1,
		column:   1,
	}
}

// NewReaderAt creates a cursor over input, a fragment of a larger text
// starting at start.
func NewReaderAt(input string, start Position) *Reader {
	return &Reader{
		input:    input,
		filename: start.Filename,
		base:     start.Offset,
		line:     start.Line,
		column:   start.Column,
	}
}

func (r *Reader) Peek() (rune, bool) {
	if r.pos >= len(r.input) {
		return 0, false
	}
	ch, _ := utf8.DecodeRuneInString(r.input[r.pos:])
	return ch, true
}

func (r *Reader) Next() {
	if r.pos >= len(r.input) {
		return
	}
	ch, size := utf8.DecodeRuneInString(r.input[r.pos:])
	r.pos += size
	if ch == '\n' {
		r.line++
		r.column = 1
	} else {
		r.column++
	}
}

// Position returns the position of the next unconsumed rune.
func (r *Reader) Position() Position {
	return Position{
		Filename: r.filename,
		Offset:   r.base + r.pos,
		Line:     r.line,
		Column:   r.column,
	}
}

// Rest returns the unconsumed input.
func (r *Reader) Rest() string {
	return r.input[r.pos:]
}

// RuneCursor adapts an io.RuneScanner, such as a *bufio.Reader, to Cursor.
// A read error other than io.EOF is treated as the end of input and kept in
// Err.
type RuneCursor struct {
	src    io.RuneScanner
	peeked bool
	ch     rune
	eof    bool
	Err    error
}

func NewRuneCursor(src io.RuneScanner) *RuneCursor {
	return &RuneCursor{src: src}
}

func (c *RuneCursor) Peek() (rune, bool) {
	if c.peeked {
		return c.ch, true
	}
	if c.eof {
		return 0, false
	}
	ch, _, err := c.src.ReadRune()
	if err != nil {
		c.eof = true
		if err != io.EOF {
			c.Err = err
		}
		return 0, false
	}
	c.ch = ch
	c.peeked = true
	return ch, true
}

func (c *RuneCursor) Next() {
	if !c.peeked {
		if _, ok := c.Peek(); !ok {
			return
		}
	}
	c.peeked = false
}
