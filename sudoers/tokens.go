package sudoers

import (
	"strings"
	"unicode"

	"github.com/dhamidi/descent/parse"
)

func isNameChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.'
}

func isCommandChar(r rune) bool {
	return !unicode.IsSpace(r) && r != ',' && r != '\\'
}

func isSpecial(r rune) bool {
	return strings.ContainsRune(`\,:=()# `, r)
}

func identity(s string) string {
	return s
}

var (
	username = &parse.Token[string]{
		Class:   "user name",
		Accept:  isNameChar,
		Escape:  '\\',
		Escaped: isSpecial,
		Make:    identity,
	}

	groupname = &parse.Token[string]{
		Class:   "group name",
		Accept:  isNameChar,
		Escape:  '\\',
		Escaped: isSpecial,
		Make:    identity,
	}

	hostname = &parse.Token[string]{
		Class:   "host name",
		Accept:  isNameChar,
		Escape:  '\\',
		Escaped: isSpecial,
		Make:    identity,
	}

	// Paths start with a slash; an upper case first letter names an alias
	// such as ALL.
	path = &parse.Token[string]{
		Class:   "command path",
		First:   func(r rune) bool { return r == '/' || unicode.IsUpper(r) },
		Accept:  isCommandChar,
		Escape:  '\\',
		Escaped: isSpecial,
		MaxLen:  4096,
		Make:    identity,
	}

	argument = &parse.Token[string]{
		Class:   "argument",
		First:   func(r rune) bool { return isCommandChar(r) && r != '#' },
		Accept:  isCommandChar,
		Escape:  '\\',
		Escaped: isSpecial,
		MaxLen:  4096,
		Make:    identity,
	}

	comment = &parse.Token[string]{
		Class:  "comment",
		First:  func(r rune) bool { return r == '#' },
		Accept: func(r rune) bool { return r != '\n' },
		MaxLen: 4096,
		Make: func(s string) string {
			return strings.TrimRightFunc(strings.TrimPrefix(s, "#"), unicode.IsSpace)
		},
	}
)
