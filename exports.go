// Package gocddl provides parsing and parent-indexed navigation for
// CDDL (RFC 8610) schema documents.
package gocddl

import (
	"github.com/golangcbor/gocddl/ast"
	"github.com/golangcbor/gocddl/token"
	"github.com/golangcbor/gocddl/tree"
)

// Type aliases for the public API surface. The AST lives in the ast
// subpackage, positions and diagnostics in token, navigation in tree.

// CDDL is the root node of a parsed document.
type CDDL = ast.CDDL

// Rule is a top-level type or group rule.
type Rule = ast.Rule

// TypeRule binds a name to a type expression.
type TypeRule = ast.TypeRule

// GroupRule binds a name to a group expression.
type GroupRule = ast.GroupRule

// Ident is an identifier with source location.
type Ident = ast.Ident

// Tree is the parent index over one document.
type Tree = tree.Tree

// Diagnostic is a positioned message from the lexer or parser.
type Diagnostic = token.Diagnostic

// Severity classifies diagnostics.
type Severity = token.Severity

// Span is a byte range in source text.
type Span = token.Span

// Severity levels, most severe first.
const (
	SeverityFatal   = token.SeverityFatal
	SeverityError   = token.SeverityError
	SeverityWarning = token.SeverityWarning
	SeverityInfo    = token.SeverityInfo
)
