// Package lsp serves sudoers parse diagnostics and formatting over the
// Language Server Protocol.
package lsp

import (
	"errors"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/dhamidi/descent/parse"
	"github.com/dhamidi/descent/sudoers"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "descent"

var log = commonlog.GetLogger("descent.lsp")

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	mu        sync.Mutex
	documents map[protocol.DocumentUri]string
}

func NewServer(version string) *Server {
	ls := &Server{
		version:   version,
		documents: make(map[protocol.DocumentUri]string),
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentFormatting: ls.textDocumentFormatting,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("client initialized", "version", ls.version)
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.update(ctx, params.TextDocument.URI, textChange.Text)
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	ls.mu.Lock()
	delete(ls.documents, uri)
	ls.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (ls *Server) textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	uri := params.TextDocument.URI
	text, ok := ls.document(uri)
	if !ok {
		return nil, nil
	}

	formatted, err := sudoers.Format(uri, text)
	if err != nil {
		log.Debugf("not formatting %s: %s", uri, err)
		return nil, nil
	}
	if formatted == text {
		return nil, nil
	}

	return []protocol.TextEdit{{
		Range:   wholeDocument(text),
		NewText: formatted,
	}}, nil
}

func (ls *Server) document(uri protocol.DocumentUri) (string, bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	text, ok := ls.documents[uri]
	return text, ok
}

func (ls *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	ls.mu.Lock()
	ls.documents[uri] = text
	ls.mu.Unlock()

	diagnostics := Diagnose(uri, text)
	log.Debugf("%s: %d diagnostics", uri, len(diagnostics))

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// Diagnose parses text and returns one diagnostic per malformed line.
func Diagnose(name, text string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	_, err := sudoers.ParseFile(name, text)
	if err == nil {
		return diagnostics
	}

	var errs sudoers.ErrorList
	if !errors.As(err, &errs) {
		return append(diagnostics, newDiagnostic(protocol.Position{}, err.Error()))
	}
	for _, e := range errs {
		diagnostics = append(diagnostics, newDiagnostic(toPosition(text, e), e.Message))
	}
	return diagnostics
}

func newDiagnostic(start protocol.Position, message string) protocol.Diagnostic {
	end := start
	end.Character++
	severity := protocol.DiagnosticSeverityError
	source := lsName
	return protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

// toPosition converts to the zero-based protocol position, with the
// character counted in UTF-16 code units from the start of the line.
func toPosition(text string, e *parse.Error) protocol.Position {
	if !e.HasPos || e.Pos.Offset > len(text) {
		return protocol.Position{}
	}
	start := strings.LastIndexByte(text[:e.Pos.Offset], '\n') + 1
	return protocol.Position{
		Line:      protocol.UInteger(e.Pos.Line - 1),
		Character: utf16Len(text[start:e.Pos.Offset]),
	}
}

func utf16Len(s string) protocol.UInteger {
	var n protocol.UInteger
	for _, r := range s {
		n += protocol.UInteger(utf16.RuneLen(r))
	}
	return n
}

func wholeDocument(text string) protocol.Range {
	line := protocol.UInteger(strings.Count(text, "\n"))
	last := text[strings.LastIndexByte(text, '\n')+1:]
	return protocol.Range{
		Start: protocol.Position{},
		End:   protocol.Position{Line: line, Character: utf16Len(last)},
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
