// Package sudoers parses a subset of the sudoers rule language:
//
//	root, %wheel  ALL, db1 = (postgres) /usr/bin/psql -U admin, /bin/ls
//
// Each non-blank line is either a comment or a user specification. The
// grammar is written entirely with package parse.
package sudoers

import "strings"

// File is a parsed sudoers file.
type File struct {
	Name     string
	Rules    []*Rule
	Comments []string
}

// Rule grants Users on Hosts the right to run Commands, optionally as one
// of the RunAs users.
type Rule struct {
	Line     int
	Users    []User
	Hosts    []string
	RunAs    []User
	Commands []Command
	Comment  string
}

// User is a user name, or a group name when Group is set.
type User struct {
	Name  string
	Group bool
}

// Command is an executable path with fixed arguments. A command without
// arguments allows any arguments.
type Command struct {
	Path string
	Args []string
}

func (u User) String() string {
	if u.Group {
		return "%" + escapeName(u.Name)
	}
	return escapeName(u.Name)
}

func (c Command) String() string {
	var sb strings.Builder
	sb.WriteString(escapeCommand(c.Path))
	for _, arg := range c.Args {
		sb.WriteByte(' ')
		sb.WriteString(escapeCommand(arg))
	}
	return sb.String()
}

// String formats the rule in canonical sudoers syntax. The result parses
// back to an equal rule.
func (r *Rule) String() string {
	var sb strings.Builder
	writeList(&sb, r.Users)
	sb.WriteByte(' ')
	for i, h := range r.Hosts {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(escapeName(h))
	}
	sb.WriteString(" = ")
	if len(r.RunAs) > 0 {
		sb.WriteByte('(')
		writeList(&sb, r.RunAs)
		sb.WriteString(") ")
	}
	writeList(&sb, r.Commands)
	if r.Comment != "" {
		sb.WriteString(" #")
		sb.WriteString(r.Comment)
	}
	return sb.String()
}

func writeList[T interface{ String() string }](sb *strings.Builder, items []T) {
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(item.String())
	}
}

func escapeName(s string) string {
	return escapeFunc(s, func(r rune) bool { return !isNameChar(r) })
}

func escapeCommand(s string) string {
	return escapeFunc(s, func(r rune) bool { return !isCommandChar(r) })
}

func escapeFunc(s string, needs func(rune) bool) string {
	if !strings.ContainsFunc(s, needs) {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		if needs(r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
