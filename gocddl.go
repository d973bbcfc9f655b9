package gocddl

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/golangcbor/gocddl/ast"
	"github.com/golangcbor/gocddl/parser"
	"github.com/golangcbor/gocddl/token"
	"github.com/golangcbor/gocddl/tree"
)

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item iteration logging (tokens, arena edges).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = slog.Level(-8)

// Option configures Parse and its variants.
type Option func(*parseConfig)

type parseConfig struct {
	logger *slog.Logger
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *parseConfig) { c.logger = logger }
}

// ParseError reports that a document did not parse cleanly. The AST
// returned alongside it contains every rule that survived; Diagnostics
// carries the full problem list in source order.
type ParseError struct {
	Diagnostics []token.Diagnostic
}

func (e *ParseError) Error() string {
	errs := 0
	for _, d := range e.Diagnostics {
		if d.IsError() {
			errs++
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d error(s) in CDDL document", errs)
	for _, d := range e.Diagnostics {
		if d.IsError() {
			b.WriteString("\n\t")
			b.WriteString(d.String())
		}
	}
	return b.String()
}

// Parse parses CDDL source text into an AST.
//
// The AST is returned even when err is non-nil, holding every rule
// that parsed cleanly; err is then a *ParseError carrying the
// diagnostics. Only a nil AST means nothing usable was produced.
//
// Example:
//
//	doc, err := gocddl.Parse(source,
//	    gocddl.WithLogger(slog.Default()),
//	)
func Parse(source []byte, opts ...Option) (*ast.CDDL, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	p := parser.New(source, cfg.logger)
	doc, fatal := p.ParseCDDL()

	diags := p.Diagnostics()
	hasError := fatal != nil
	for _, d := range diags {
		if d.IsError() {
			hasError = true
		}
	}
	if hasError {
		return doc, &ParseError{Diagnostics: diags}
	}
	return doc, nil
}

// ParseString parses CDDL source text from a string.
func ParseString(source string, opts ...Option) (*ast.CDDL, error) {
	return Parse([]byte(source), opts...)
}

// ParseFile parses a CDDL file from disk.
func ParseFile(path string, opts ...Option) (*ast.CDDL, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(source, opts...)
}

// BuildTree parses source text and overlays the parent index in one
// call. Fails if the document does not parse cleanly.
func BuildTree(source []byte, opts ...Option) (*ast.CDDL, *tree.Tree, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	doc, err := Parse(source, opts...)
	if err != nil {
		return doc, nil, err
	}
	t, err := tree.Build(doc, tree.WithLogger(cfg.logger))
	if err != nil {
		return doc, nil, err
	}
	return doc, t, nil
}
