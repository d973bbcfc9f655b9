package token

import (
	"fmt"
	"strings"
)

// Severity classifies how serious a diagnostic is.
// Lower values are more severe.
type Severity int

const (
	// SeverityFatal aborts processing immediately.
	SeverityFatal Severity = iota
	// SeverityError is a structural problem in the input.
	SeverityError
	// SeverityWarning is a recoverable or stylistic problem.
	SeverityWarning
	// SeverityInfo is purely informational.
	SeverityInfo
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	}
	return "unknown"
}

// Diagnostic is a message from the lexer or parser, positioned by span.
type Diagnostic struct {
	Severity Severity
	Code     string // stable code, e.g. "unexpected-token"
	Span     Span
	Message  string
}

// String returns "[severity] start..end: message (code)" with the span
// omitted when empty.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(d.Severity.String())
	b.WriteByte(']')
	b.WriteByte(' ')
	if !d.Span.IsEmpty() {
		fmt.Fprintf(&b, "%d..%d: ", d.Span.Start, d.Span.End)
	}
	b.WriteString(d.Message)
	if d.Code != "" {
		fmt.Fprintf(&b, " (%s)", d.Code)
	}
	return b.String()
}

// IsError returns true for error-or-worse diagnostics.
func (d Diagnostic) IsError() bool {
	return d.Severity <= SeverityError
}

// Diagnostic codes emitted by the lexer and parser. Centralizing these
// prevents silent breakage from typos in string literals.
const (
	// DiagLexError is an unlexable character sequence.
	DiagLexError = "lex-error"
	// DiagUnterminatedString is a string literal missing its closing quote.
	DiagUnterminatedString = "unterminated-string"
	// DiagInvalidEscape is a malformed escape sequence in a string literal.
	DiagInvalidEscape = "invalid-escape"
	// DiagParseError is a generic structural parse error.
	DiagParseError = "parse-error"
	// DiagUnexpectedToken is a token that does not match the required production.
	DiagUnexpectedToken = "unexpected-token"
	// DiagIllegalToken is a token that can never appear in its position.
	DiagIllegalToken = "illegal-token"
	// DiagUnrecognizedType2 is a token that starts no known type2 variant.
	DiagUnrecognizedType2 = "unrecognized-type2"
	// DiagUnimplemented is a recognized grammar path that is intentionally
	// not handled (inline group-rule bodies).
	DiagUnimplemented = "unimplemented"
	// DiagInvalidLiteral is a literal token whose payload cannot be materialized.
	DiagInvalidLiteral = "invalid-literal"
)
