package parse

import (
	"bufio"
	"errors"
	"strings"
	"testing"
	"unicode"
)

var digits = &Token[string]{
	Class:  "number",
	Accept: unicode.IsDigit,
	Make:   func(s string) string { return s },
}

var letters = &Token[string]{
	Class:  "word",
	Accept: unicode.IsLetter,
	Make:   func(s string) string { return s },
}

var quoted = &Token[string]{
	Class:   "text",
	Accept:  func(r rune) bool { return r != '"' && r != '\\' && !unicode.IsSpace(r) },
	Escape:  '\\',
	Escaped: func(rune) bool { return true },
	Make:    func(s string) string { return s },
}

func mustFatal(t *testing.T, want string, f func()) {
	t.Helper()
	err := Run(f)
	if err == nil {
		t.Fatalf("expected fatal error containing %q, got none", want)
	}
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("expected fatal error containing %q, got %q", want, err.Error())
	}
}

func TestAcceptIfDoesNotConsumeOnFailure(t *testing.T) {
	inputs := []string{"", "a", "abc", " 1", "\n"}
	for _, input := range inputs {
		r := NewReader(input, "")
		if _, ok := AcceptIf(unicode.IsDigit, r); ok {
			t.Fatalf("%q: expected rejection", input)
		}
		if r.Rest() != input {
			t.Errorf("%q: expected input untouched, got rest %q", input, r.Rest())
		}
	}
}

func TestAcceptIfConsumesOneRune(t *testing.T) {
	r := NewReader("12", "")
	ch, ok := AcceptIf(unicode.IsDigit, r)
	if !ok || ch != '1' {
		t.Fatalf("expected '1', got %q (ok=%v)", ch, ok)
	}
	if r.Rest() != "2" {
		t.Errorf("expected rest %q, got %q", "2", r.Rest())
	}
}

func TestWhitespace(t *testing.T) {
	r := NewReader("x", "")
	if Whitespace(r) {
		t.Fatal("expected no mandatory whitespace before 'x'")
	}

	r = NewReader(" \t\n x", "")
	if !Whitespace(r) {
		t.Fatal("expected mandatory whitespace to succeed")
	}
	if r.Rest() != "x" {
		t.Errorf("expected rest %q, got %q", "x", r.Rest())
	}
}

func TestSkipWhitespaceIdempotent(t *testing.T) {
	r := NewReader("  \t a b", "")
	SkipWhitespace(r)
	once := r.Rest()
	SkipWhitespace(r)
	if r.Rest() != once {
		t.Errorf("expected second skip to consume nothing, got %q after %q", r.Rest(), once)
	}
	if once != "a b" {
		t.Errorf("expected %q, got %q", "a b", once)
	}
}

func TestMaybeSyntax(t *testing.T) {
	r := NewReader(",  x", "")
	if !MaybeSyntax(',', r) {
		t.Fatal("expected ',' to be accepted")
	}
	if r.Rest() != "x" {
		t.Errorf("expected rest %q, got %q", "x", r.Rest())
	}
	if MaybeSyntax(',', r) {
		t.Fatal("expected ',' to be absent")
	}
	if r.Rest() != "x" {
		t.Errorf("expected rest %q, got %q", "x", r.Rest())
	}
}

func TestRequireSyntax(t *testing.T) {
	mustFatal(t, "parse error: expecting `=' but found `x'", func() {
		RequireSyntax('=', NewReader("x", ""))
	})
	mustFatal(t, "parse error: expecting `=' but found `EOL'", func() {
		RequireSyntax('=', NewReader("", ""))
	})
}

func TestRequire(t *testing.T) {
	r := NewReader("42", "")
	if got := Require(digits, r); got != "42" {
		t.Errorf("expected %q, got %q", "42", got)
	}
	mustFatal(t, "parse error: expected `number'", func() {
		Require(digits, NewReader("abc", ""))
	})
}

func TestRequireNamesTypeWithoutNamer(t *testing.T) {
	p := Func[int](func(Cursor) (int, bool) { return 0, false })
	mustFatal(t, "parse error: expected `int'", func() {
		Require[int](p, NewReader("", ""))
	})
	mustFatal(t, "parse error: expected `count'", func() {
		Require(Named[int]("count", p), NewReader("", ""))
	})
}

func TestTokenMaximalMunch(t *testing.T) {
	r := NewReader("123abc", "")
	got, ok := digits.Parse(r)
	if !ok {
		t.Fatal("expected a number")
	}
	if got != "123" {
		t.Errorf("expected %q, got %q", "123", got)
	}
	if r.Rest() != "abc" {
		t.Errorf("expected rest %q, got %q", "abc", r.Rest())
	}
}

func TestTokenSkipsTrailingWhitespace(t *testing.T) {
	r := NewReader("123  \n abc", "")
	digits.Parse(r)
	if r.Rest() != "abc" {
		t.Errorf("expected rest %q, got %q", "abc", r.Rest())
	}
}

func TestTokenAbsentConsumesNothing(t *testing.T) {
	r := NewReader(" 123", "")
	if _, ok := digits.Parse(r); ok {
		t.Fatal("expected no number at leading space")
	}
	if r.Rest() != " 123" {
		t.Errorf("expected input untouched, got %q", r.Rest())
	}
}

func TestTokenFirstPredicate(t *testing.T) {
	ident := &Token[string]{
		First:  unicode.IsLetter,
		Accept: func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) },
		Make:   func(s string) string { return s },
	}
	if _, ok := ident.Parse(NewReader("1ab", "")); ok {
		t.Error("expected identifier not to start with a digit")
	}
	got, ok := ident.Parse(NewReader("ab1 ", ""))
	if !ok || got != "ab1" {
		t.Errorf("expected %q, got %q (ok=%v)", "ab1", got, ok)
	}
}

func TestTokenEscape(t *testing.T) {
	r := NewReader(`a\"b\\c\ d rest`, "")
	got, ok := quoted.Parse(r)
	if !ok {
		t.Fatal("expected text token")
	}
	if got != `a"b\c d` {
		t.Errorf("expected %q, got %q", `a"b\c d`, got)
	}
	if r.Rest() != "rest" {
		t.Errorf("expected rest %q, got %q", "rest", r.Rest())
	}
}

func TestTokenIllegalEscape(t *testing.T) {
	tok := &Token[string]{
		Accept:  unicode.IsLetter,
		Escape:  '\\',
		Escaped: func(r rune) bool { return r == ',' },
		Make:    func(s string) string { return s },
	}
	got, ok := tok.Parse(NewReader(`a\,b`, ""))
	if !ok || got != "a,b" {
		t.Errorf("expected %q, got %q (ok=%v)", "a,b", got, ok)
	}
	mustFatal(t, "tokenizer: illegal escape sequence", func() {
		tok.Parse(NewReader(`a\x`, ""))
	})
	mustFatal(t, "tokenizer: illegal escape sequence", func() {
		tok.Parse(NewReader(`a\`, ""))
	})
}

func TestTokenWithoutEscapeIgnoresNUL(t *testing.T) {
	r := NewReader("ab\x00", "")
	got, ok := letters.Parse(r)
	if !ok || got != "ab" {
		t.Errorf("expected %q, got %q (ok=%v)", "ab", got, ok)
	}
	if r.Rest() != "\x00" {
		t.Errorf("expected NUL to remain, got %q", r.Rest())
	}
}

func TestTokenSafetyMarginBoundary(t *testing.T) {
	tok := &Token[string]{
		Accept: unicode.IsLetter,
		MaxLen: 4,
		Make:   func(s string) string { return s },
	}
	got, ok := tok.Parse(NewReader("abc", ""))
	if !ok || got != "abc" {
		t.Errorf("expected %q, got %q (ok=%v)", "abc", got, ok)
	}
	mustFatal(t, "tokenizer: exceeded safety margin", func() {
		tok.Parse(NewReader("abcd", ""))
	})
}

func TestTokenDefaultSafetyMargin(t *testing.T) {
	if _, ok := letters.Parse(NewReader(strings.Repeat("a", DefaultMaxLen-1), "")); !ok {
		t.Fatal("expected token one below the margin to parse")
	}
	mustFatal(t, "exceeded safety margin", func() {
		letters.Parse(NewReader(strings.Repeat("a", 10_000), ""))
	})
}

func TestTokenWithoutMake(t *testing.T) {
	arrow := &Token[struct{}]{Accept: func(r rune) bool { return r == '-' || r == '>' }}
	r := NewReader("-> x", "")
	if _, ok := arrow.Parse(r); !ok {
		t.Fatal("expected arrow")
	}
	if r.Rest() != "x" {
		t.Errorf("expected rest %q, got %q", "x", r.Rest())
	}
}

func TestAltDispatch(t *testing.T) {
	alt := Alt[string, string]{First: digits, Second: letters}

	r := NewReader("9x", "")
	e, ok := alt.Parse(r)
	if !ok || !e.IsPrimary || e.Primary != "9" {
		t.Fatalf("expected primary %q, got %+v (ok=%v)", "9", e, ok)
	}
	if r.Rest() != "x" {
		t.Errorf("expected rest %q, got %q", "x", r.Rest())
	}

	r = NewReader("x9", "")
	e, ok = alt.Parse(r)
	if !ok || e.IsPrimary || e.Fallback != "x" {
		t.Fatalf("expected fallback %q, got %+v (ok=%v)", "x", e, ok)
	}
	if r.Rest() != "9" {
		t.Errorf("expected rest %q, got %q", "9", r.Rest())
	}
}

func TestAltFailure(t *testing.T) {
	alt := Alt[string, string]{First: digits, Second: letters}
	if _, ok := alt.Parse(NewReader("", "")); ok {
		t.Error("expected failure on empty input")
	}
	r := NewReader("-", "")
	if _, ok := alt.Parse(r); ok {
		t.Error("expected failure when neither arm matches")
	}
	if r.Rest() != "-" {
		t.Errorf("expected input untouched, got %q", r.Rest())
	}
	mustFatal(t, "expected `number or word'", func() {
		Require[Either[string, string]](alt, NewReader("-", ""))
	})
}

func TestEitherGet(t *testing.T) {
	e := Either[int, string]{Fallback: "x"}
	a, b, primary := e.Get()
	if a != 0 || b != "x" || primary {
		t.Errorf("expected (0, x, false), got (%d, %s, %v)", a, b, primary)
	}
	if e.String() != "x" {
		t.Errorf("expected %q, got %q", "x", e.String())
	}
}

func TestList(t *testing.T) {
	r := NewReader("1, 2 ,3 rest", "")
	got, ok := List[string]{Elem: digits}.Parse(r)
	if !ok {
		t.Fatal("expected list")
	}
	if strings.Join(got, "|") != "1|2|3" {
		t.Errorf("expected 1|2|3, got %v", got)
	}
	if r.Rest() != "rest" {
		t.Errorf("expected rest %q, got %q", "rest", r.Rest())
	}
}

func TestListRequiresFirstElement(t *testing.T) {
	r := NewReader(",", "")
	if _, ok := (List[string]{Elem: digits}).Parse(r); ok {
		t.Fatal("expected no list before a bare separator")
	}
	if r.Rest() != "," {
		t.Errorf("expected input untouched, got %q", r.Rest())
	}
}

func TestListTrailingSeparator(t *testing.T) {
	mustFatal(t, "parse error: expected `number'", func() {
		List[string]{Elem: digits}.Parse(NewReader("1,2,", ""))
	})
}

func TestListCustomSeparator(t *testing.T) {
	r := NewReader("a:b,c", "")
	got, ok := ParseList[string](letters, ':', 10, r)
	if !ok || len(got) != 2 {
		t.Fatalf("expected 2 elements, got %v (ok=%v)", got, ok)
	}
	if r.Rest() != ",c" {
		t.Errorf("expected rest %q, got %q", ",c", r.Rest())
	}
}

func TestListSafetyMarginBoundary(t *testing.T) {
	l := List[string]{Elem: digits, Limit: 3}
	got, ok := l.Parse(NewReader("1,2,3", ""))
	if !ok || len(got) != 3 {
		t.Fatalf("expected 3 elements at the limit, got %v (ok=%v)", got, ok)
	}
	mustFatal(t, "list: parsing multiple items: safety margin exceeded", func() {
		l.Parse(NewReader("1,2,3,4", ""))
	})
}

func TestListDefaultLimit(t *testing.T) {
	input := strings.TrimSuffix(strings.Repeat("1,", DefaultLimit), ",")
	got, ok := List[string]{Elem: digits}.Parse(NewReader(input, ""))
	if !ok || len(got) != DefaultLimit {
		t.Fatalf("expected %d elements, got %d", DefaultLimit, len(got))
	}
	mustFatal(t, "safety margin exceeded", func() {
		List[string]{Elem: digits}.Parse(NewReader(input+",1", ""))
	})
}

func TestEndOfParse(t *testing.T) {
	r := NewReader("a", "")
	if EndOfParse(r) {
		t.Error("expected input remaining")
	}
	r.Next()
	if !EndOfParse(r) {
		t.Error("expected end of input")
	}
}

func TestRunRepanicsForeignValues(t *testing.T) {
	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("expected panic %q to propagate, got %v", "boom", r)
		}
	}()
	Run(func() { panic("boom") })
	t.Fatal("expected Run to re-panic")
}

func TestFatalCarriesPosition(t *testing.T) {
	err := Run(func() {
		r := NewReader("a\nb", "rules")
		r.Next()
		r.Next()
		RequireSyntax('=', r)
	})
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !perr.HasPos || perr.Pos.Line != 2 || perr.Pos.Column != 1 {
		t.Errorf("expected position 2:1, got %+v", perr.Pos)
	}
	if err.Error() != "rules:2:1: parse error: expecting `=' but found `b'" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !IsFatal(err) {
		t.Error("expected IsFatal to be true")
	}
}

func TestComplete(t *testing.T) {
	got, err := Complete[string](digits, NewReader("12 ", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "12" {
		t.Errorf("expected %q, got %q", "12", got)
	}

	_, err = Complete[string](digits, NewReader("12 x", ""))
	if err == nil || !strings.Contains(err.Error(), "unexpected `x' after `number'") {
		t.Errorf("expected trailing input error, got %v", err)
	}

	_, err = Complete[string](digits, NewReader("", ""))
	if err == nil || !strings.Contains(err.Error(), "expected `number'") {
		t.Errorf("expected missing number error, got %v", err)
	}
}

func TestRuneCursor(t *testing.T) {
	c := NewRuneCursor(bufio.NewReader(strings.NewReader("héllo, wörld")))
	got, ok := List[string]{Elem: letters}.Parse(c)
	if !ok || len(got) != 2 || got[0] != "héllo" || got[1] != "wörld" {
		t.Fatalf("expected [héllo wörld], got %v (ok=%v)", got, ok)
	}
	if !EndOfParse(c) {
		t.Error("expected end of input")
	}
	if c.Err != nil {
		t.Errorf("unexpected error %v", c.Err)
	}
}

func TestReaderPosition(t *testing.T) {
	r := NewReader("ä\nb", "f")
	r.Next()
	if p := r.Position(); p.Offset != 2 || p.Line != 1 || p.Column != 2 {
		t.Errorf("expected offset 2 at 1:2, got %+v", p)
	}
	r.Next()
	if p := r.Position(); p.Line != 2 || p.Column != 1 {
		t.Errorf("expected 2:1, got %+v", p)
	}
	if r.Position().String() != "f:2:1" {
		t.Errorf("expected %q, got %q", "f:2:1", r.Position().String())
	}
}
