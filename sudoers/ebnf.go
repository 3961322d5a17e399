package sudoers

import (
	"fmt"
	"strings"

	"golang.org/x/exp/ebnf"
)

// Start is the start production of Grammar.
const Start = "File"

// Grammar documents the accepted language in EBNF. Lexical productions
// (lower case) approximate the Unicode predicates used by the parser:
// letter and digit stand for any Unicode letter and digit, and commandchar
// for any rune except white space, "," and "\".
const Grammar = `
File      = { Line } .
Line      = comment | Rule .
Rule      = UserList HostList "=" [ RunAs ] CmndList [ comment ] .
UserList  = User { "," User } .
User      = name | "%" name .
HostList  = name { "," name } .
RunAs     = "(" UserList ")" .
CmndList  = Command { "," Command } .
Command   = path { argument } .

name        = namechar { namechar } .
namechar    = letter | digit | "_" | "-" | "." | escape .
path        = ( "/" | upper ) { commandchar | escape } .
argument    = argstart { commandchar | escape } .
argstart    = letter | digit | "/" | "-" | "+" | "." | "*" | "=" | ":" | "_" | "@" .
commandchar = argstart | "#" | "(" | ")" .
escape      = "\\" special .
special     = "\\" | "," | ":" | "=" | "(" | ")" | "#" | " " .
comment     = "#" { " " … "~" } .
letter      = "a" … "z" | upper .
upper       = "A" … "Z" .
digit       = "0" … "9" .
`

// LoadGrammar parses Grammar.
func LoadGrammar() (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse("sudoers.ebnf", strings.NewReader(Grammar))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

// VerifyGrammar checks that Grammar is well formed and that every
// production is reachable from start.
func VerifyGrammar(start string) error {
	grammar, err := LoadGrammar()
	if err != nil {
		return err
	}
	if err := ebnf.Verify(grammar, start); err != nil {
		return fmt.Errorf("verify grammar: %w", err)
	}
	return nil
}
