package sudoers

import (
	"github.com/dhamidi/descent/parse"
)

// maxArgs bounds the number of fixed arguments of a single command.
const maxArgs = parse.DefaultLimit

var (
	group = parse.Named[string]("group", parse.Func[string](parseGroup))

	userOrGroup = parse.Alt[string, string]{First: username, Second: group}

	user = parse.Named[User]("user", parse.Func[User](parseUser))

	userList = parse.List[User]{Elem: user}

	hostList = parse.List[string]{Elem: hostname}

	command = parse.Named[Command]("command", parse.Func[Command](parseCommand))

	commandList = parse.List[Command]{Elem: command}

	rule = parse.Named[*Rule]("user specification", parse.Func[*Rule](parseRule))

	line = parse.Alt[string, *Rule]{First: comment, Second: rule}
)

func parseGroup(c parse.Cursor) (string, bool) {
	if _, ok := parse.AcceptIf(func(r rune) bool { return r == '%' }, c); !ok {
		return "", false
	}
	return parse.Require[string](groupname, c), true
}

func parseUser(c parse.Cursor) (User, bool) {
	e, ok := parse.Maybe[parse.Either[string, string]](userOrGroup, c)
	if !ok {
		return User{}, false
	}
	name, groupName, isUser := e.Get()
	if isUser {
		return User{Name: name}, true
	}
	return User{Name: groupName, Group: true}, true
}

func parseCommand(c parse.Cursor) (Command, bool) {
	p, ok := parse.Maybe[string](path, c)
	if !ok {
		return Command{}, false
	}
	cmd := Command{Path: p}
	for {
		arg, ok := parse.Maybe[string](argument, c)
		if !ok {
			break
		}
		if len(cmd.Args) >= maxArgs {
			parse.Fatalf(c, "command: too many arguments")
		}
		cmd.Args = append(cmd.Args, arg)
	}
	return cmd, true
}

func parseRule(c parse.Cursor) (*Rule, bool) {
	users, ok := parse.Maybe[[]User](userList, c)
	if !ok {
		return nil, false
	}
	r := &Rule{Users: users}
	r.Hosts = parse.Require[[]string](hostList, c)
	parse.RequireSyntax('=', c)
	if parse.MaybeSyntax('(', c) {
		r.RunAs = parse.Require[[]User](userList, c)
		parse.RequireSyntax(')', c)
	}
	r.Commands = parse.Require[[]Command](commandList, c)
	r.Comment, _ = parse.Maybe[string](comment, c)
	return r, true
}
