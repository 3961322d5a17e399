package sudoers

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/descent/parse"
)

// ErrorList collects the parse errors of a file, one per malformed line.
type ErrorList []*parse.Error

func (errs ErrorList) Error() string {
	switch len(errs) {
	case 0:
		return "no errors"
	case 1:
		return errs[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", errs[0], len(errs)-1)
}

// ParseFile parses every line of text. Malformed lines are skipped and
// reported in the returned ErrorList; the File holds the lines that parsed.
func ParseFile(name, text string) (*File, error) {
	f := &File{Name: name}
	var errs ErrorList

	eachLine(name, text, func(body string, start parse.Position, _ bool) {
		r, comment, err := parseLine(body, start)
		switch {
		case err != nil:
			errs = append(errs, err)
		case r != nil:
			f.Rules = append(f.Rules, r)
		case comment != "":
			f.Comments = append(f.Comments, comment)
		}
	})

	if len(errs) > 0 {
		return f, errs
	}
	return f, nil
}

// ParseRule parses a single user specification. A trailing line terminator
// is allowed; any other newline is an error.
func ParseRule(text string) (*Rule, error) {
	text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return nil, &parse.Error{
			Pos:     parse.Position{Offset: i, Line: 1, Column: utf8.RuneCountInString(text[:i]) + 1},
			HasPos:  true,
			Message: "parse error: unexpected newline",
		}
	}
	r, _, err := parseLine(text, parse.Position{Line: 1, Column: 1})
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("parse rule: no user specification in %q", text)
	}
	return r, nil
}

// Format rewrites every rule of text in canonical form, keeping comment
// lines and blank lines in place. Nothing is rewritten if a line fails to
// parse.
func Format(name, text string) (string, error) {
	var sb strings.Builder
	var errs ErrorList

	eachLine(name, text, func(body string, start parse.Position, terminated bool) {
		r, comment, err := parseLine(body, start)
		switch {
		case err != nil:
			errs = append(errs, err)
		case r != nil:
			sb.WriteString(r.String())
		case strings.TrimSpace(body) != "":
			sb.WriteString("#" + comment)
		}
		if terminated {
			sb.WriteByte('\n')
		}
	})

	if len(errs) > 0 {
		return "", errs
	}
	return sb.String(), nil
}

// eachLine calls fn for every line of text without its line terminator.
func eachLine(name, text string, fn func(body string, start parse.Position, terminated bool)) {
	offset := 0
	for i, src := range strings.SplitAfter(text, "\n") {
		start := parse.Position{Filename: name, Offset: offset, Line: i + 1, Column: 1}
		offset += len(src)
		fn(strings.TrimRight(src, "\r\n"), start, strings.HasSuffix(src, "\n"))
	}
}

func parseLine(src string, start parse.Position) (*Rule, string, *parse.Error) {
	c := parse.NewReaderAt(src, start)

	var r *Rule
	var comment string
	err := parse.Run(func() {
		parse.SkipWhitespace(c)
		if parse.EndOfParse(c) {
			return
		}
		e := parse.Require[parse.Either[string, *Rule]](line, c)
		if e.IsPrimary {
			comment = e.Primary
		} else {
			r = e.Fallback
			r.Line = start.Line
		}
		if ch, ok := c.Peek(); ok {
			parse.Fatalf(c, "parse error: unexpected `%c' at end of line", ch)
		}
	})
	if err != nil {
		return nil, "", err.(*parse.Error)
	}
	return r, comment, nil
}
