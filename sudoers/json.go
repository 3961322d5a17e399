package sudoers

import (
	"encoding/json"
	"errors"
	"io"
)

type JSONEncoder struct {
	w    io.Writer
	file *File
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(file *File) error {
	e.file = file
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	if e.file == nil {
		return nil, errors.New("json: no file to encode")
	}
	data := e.buildFileData()
	return json.MarshalIndent(data, "", "  ")
}

type jsonFile struct {
	Name     string     `json:"name,omitempty"`
	Rules    []jsonRule `json:"rules"`
	Comments []string   `json:"comments,omitempty"`
}

type jsonRule struct {
	Line     int           `json:"line,omitempty"`
	Users    []jsonUser    `json:"users"`
	Hosts    []string      `json:"hosts"`
	RunAs    []jsonUser    `json:"runAs,omitempty"`
	Commands []jsonCommand `json:"commands"`
	Comment  string        `json:"comment,omitempty"`
}

type jsonUser struct {
	Name  string `json:"name"`
	Group bool   `json:"group,omitempty"`
}

type jsonCommand struct {
	Path string   `json:"path"`
	Args []string `json:"args,omitempty"`
}

func (e *JSONEncoder) buildFileData() jsonFile {
	f := e.file
	data := jsonFile{
		Name:     f.Name,
		Rules:    make([]jsonRule, 0, len(f.Rules)),
		Comments: f.Comments,
	}
	for _, r := range f.Rules {
		data.Rules = append(data.Rules, buildRuleData(r))
	}
	return data
}

func buildRuleData(r *Rule) jsonRule {
	data := jsonRule{
		Line:    r.Line,
		Users:   buildUsersData(r.Users),
		Hosts:   r.Hosts,
		RunAs:   buildUsersData(r.RunAs),
		Comment: r.Comment,
	}
	for _, c := range r.Commands {
		data.Commands = append(data.Commands, jsonCommand{Path: c.Path, Args: c.Args})
	}
	return data
}

func buildUsersData(users []User) []jsonUser {
	if len(users) == 0 {
		return nil
	}
	data := make([]jsonUser, len(users))
	for i, u := range users {
		data[i] = jsonUser{Name: u.Name, Group: u.Group}
	}
	return data
}
