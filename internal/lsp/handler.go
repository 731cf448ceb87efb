package lsp

import (
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/whileabs/whileabs/internal/ast"
	"github.com/whileabs/whileabs/internal/cfg"
	"github.com/whileabs/whileabs/internal/domain"
	"github.com/whileabs/whileabs/internal/fixpoint"
	"github.com/whileabs/whileabs/internal/state"
	"github.com/whileabs/whileabs/internal/syntax"
)

// analysis is a document's last successful re-analysis: the invariant
// computed at every label, and the source position of each widening point's
// loop head, so hover can answer "what's true here".
type analysis struct {
	states fixpoint.States
	headAt map[cfg.Label]ast.Position
}

// Handler implements the LSP server for the WHILE language: re-analyzing on
// every edit with the bounded-interval domain, publishing parse diagnostics,
// and answering hover requests at loop heads with the loop's invariant.
type Handler struct {
	mu       sync.RWMutex
	analyzed map[string]*analysis
}

// NewHandler creates an empty Handler.
func NewHandler() *Handler {
	return &Handler{
		analyzed: make(map[string]*analysis),
	}
}

// Initialize responds to the client's initialize request and advertises
// which capabilities this server supports.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("whileabs-lsp Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			HoverProvider: ptrBool(true),
		},
	}, nil
}

// Initialized is called once the client has the server's capabilities.
func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("whileabs-lsp Initialized")
	return nil
}

// Shutdown handles the shutdown request.
func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("whileabs-lsp Shutdown")
	return nil
}

// TextDocumentDidOpen re-analyzes a document as soon as it's opened.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	h.reanalyze(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

// TextDocumentDidClose forgets a document's analysis.
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.analyzed, path)
	return nil
}

// TextDocumentDidChange re-runs the analyzer with the full text of every
// edit: the client syncs in TextDocumentSyncKindFull, so the latest change's
// Text is the document's entire current content.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	last := params.ContentChanges[len(params.ContentChanges)-1]
	change, ok := last.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return fmt.Errorf("whileabs-lsp: expected a full-document change event")
	}
	h.reanalyze(ctx, params.TextDocument.URI, change.Text)
	return nil
}

// TextDocumentHover returns the invariant at a loop head under the cursor,
// or nil if the cursor isn't on one.
func (h *Handler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.RLock()
	a, ok := h.analyzed[path]
	h.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	label, ok := headAtLine(a.headAt, int(params.Position.Line)+1)
	if !ok {
		return nil, nil
	}

	contents := fmt.Sprintf("invariant at this loop head:\n\n%s", a.states[label].String())
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindPlainText,
			Value: contents,
		},
	}, nil
}

func headAtLine(headAt map[cfg.Label]ast.Position, line int) (cfg.Label, bool) {
	for label, pos := range headAt {
		if pos.Line == line {
			return label, true
		}
	}
	return 0, false
}

// reanalyze parses and analyzes text, publishing either a parse-error
// diagnostic or (on success) clearing diagnostics and caching the result for
// hover. ctx may be nil (as in tests that drive the handler without a live
// client connection); the server framework itself never calls handlers that
// way.
func (h *Handler) reanalyze(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	path, err := uriToPath(uri)
	if err != nil {
		log.Printf("whileabs-lsp: invalid URI %s: %v", uri, err)
		return
	}

	stmt, err := syntax.Parse(path, text)
	if err != nil {
		h.mu.Lock()
		delete(h.analyzed, path)
		h.mu.Unlock()

		if ctx != nil {
			sendDiagnosticNotification(ctx, uri, ConvertParseError(err))
		}
		return
	}

	prog := cfg.Lower(stmt)
	d := domain.NewInterval()
	states := fixpoint.Analyze(prog, d, state.Top(), fixpoint.WideningAndNarrowing)
	headAt := cfg.WideningPositions(stmt)

	h.mu.Lock()
	h.analyzed[path] = &analysis{states: states, headAt: headAt}
	h.mu.Unlock()

	if ctx != nil {
		sendDiagnosticNotification(ctx, uri, []protocol.Diagnostic{})
	}
}

// Convert URI to platform-local file path.
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
