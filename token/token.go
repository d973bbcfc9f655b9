// Package token provides source-text primitives shared by the lexer,
// parser, and AST: byte offsets, spans, tokens, and diagnostics.
package token

// ByteOffset is a byte position in source text.
type ByteOffset uint32

// Span represents a range in source text.
type Span struct {
	Start ByteOffset // inclusive
	End   ByteOffset // exclusive
}

// Synthetic is a span for constructs with no source position, such as
// value nodes materialized from literal tokens.
var Synthetic = Span{Start: 0, End: 0}

// NewSpan creates a new span.
func NewSpan(start, end ByteOffset) Span {
	return Span{Start: start, End: end}
}

// Len returns the length of the span in bytes.
func (s Span) Len() ByteOffset {
	return s.End - s.Start
}

// IsEmpty returns true if the span is empty.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Token is a token with kind, source span, and payloads for compound
// tokens (pre-lexed ranges and tags) and materialized literals.
type Token struct {
	Kind TokenKind
	Span Span

	// Text is the unescaped payload of TokText, TokBytes, TokHexBytes,
	// and TokB64Bytes tokens, and the operator name for TokCtlOp.
	// Escape sequences are resolved once, here, so downstream consumers
	// never re-unescape.
	Text string

	// Range is set only for TokRange.
	Range *RangeParts

	// Tag is set only for TokTag.
	Tag *TagParts
}

// NewToken creates a new token with no payload.
func NewToken(kind TokenKind, span Span) Token {
	return Token{Kind: kind, Span: span}
}

// RangeParts is the payload of a compound range token. The lexer
// recognizes "a..b" and "a...b" as a single token carrying both bounds.
type RangeParts struct {
	Lo        Token
	Hi        Token
	Inclusive bool // true for "..", false for "..."
}

// TagParts is the payload of a tag token ("#", "#major", "#6.nn").
type TagParts struct {
	Major      *uint64
	Constraint *uint64
}

// TokenKind identifies a token type.
type TokenKind int

const (
	// === Special ===

	// TokError is a lexical error.
	TokError TokenKind = iota
	// TokEOF is end of input.
	TokEOF

	// === Identifiers ===

	// TokIdent is an identifier (rule names, type names, barewords).
	TokIdent

	// === Literals ===

	// TokInt is a negative decimal, hex, or binary integer.
	TokInt
	// TokUint is an unsigned decimal, hex, or binary integer.
	TokUint
	// TokFloat is a floating point literal.
	TokFloat
	// TokText is a double-quoted text string literal.
	TokText
	// TokBytes is a UTF-8 byte string literal ('...').
	TokBytes
	// TokHexBytes is a base16 byte string literal (h'...').
	TokHexBytes
	// TokB64Bytes is a base64url byte string literal (b64'...').
	TokB64Bytes

	// === Assignment ===

	// TokAssign is '='.
	TokAssign
	// TokTypeChoiceAlt is '/=' (type choice extension).
	TokTypeChoiceAlt
	// TokGroupChoiceAlt is '//=' (group choice extension).
	TokGroupChoiceAlt

	// === Choice separators ===

	// TokTypeChoice is '/'.
	TokTypeChoice
	// TokGroupChoice is '//'.
	TokGroupChoice

	// === Brackets and delimiters ===

	// TokLAngle is '<'.
	TokLAngle
	// TokRAngle is '>'.
	TokRAngle
	// TokLParen is '('.
	TokLParen
	// TokRParen is ')'.
	TokRParen
	// TokLBrace is '{'.
	TokLBrace
	// TokRBrace is '}'.
	TokRBrace
	// TokLBracket is '['.
	TokLBracket
	// TokRBracket is ']'.
	TokRBracket

	// === Punctuation ===

	// TokComma is ','.
	TokComma
	// TokColon is ':'.
	TokColon
	// TokArrowMap is '=>'.
	TokArrowMap
	// TokCut is '^'.
	TokCut

	// === Occurrence indicators ===

	// TokOptional is '?'.
	TokOptional
	// TokAsterisk is '*'.
	TokAsterisk
	// TokPlus is '+'.
	TokPlus

	// === Operators ===

	// TokUnwrap is '~'.
	TokUnwrap
	// TokAmpersand is '&'.
	TokAmpersand

	// === Compound tokens ===

	// TokRange is a pre-lexed numeric range ("a..b" or "a...b")
	// carrying both bounds and the inclusivity flag.
	TokRange
	// TokTag is a tag prefix ("#", "#major", or "#6.nn").
	TokTag
	// TokCtlOp is a control operator name (".size", ".bits", ...).
	TokCtlOp
)

var tokenNames = map[TokenKind]string{
	TokError:          "error",
	TokEOF:            "end of input",
	TokIdent:          "identifier",
	TokInt:            "integer literal",
	TokUint:           "unsigned literal",
	TokFloat:          "float literal",
	TokText:           "text literal",
	TokBytes:          "byte string literal",
	TokHexBytes:       "hex byte string literal",
	TokB64Bytes:       "base64 byte string literal",
	TokAssign:         "'='",
	TokTypeChoiceAlt:  "'/='",
	TokGroupChoiceAlt: "'//='",
	TokTypeChoice:     "'/'",
	TokGroupChoice:    "'//'",
	TokLAngle:         "'<'",
	TokRAngle:         "'>'",
	TokLParen:         "'('",
	TokRParen:         "')'",
	TokLBrace:         "'{'",
	TokRBrace:         "'}'",
	TokLBracket:       "'['",
	TokRBracket:       "']'",
	TokComma:          "','",
	TokColon:          "':'",
	TokArrowMap:       "'=>'",
	TokCut:            "'^'",
	TokOptional:       "'?'",
	TokAsterisk:       "'*'",
	TokPlus:           "'+'",
	TokUnwrap:         "'~'",
	TokAmpersand:      "'&'",
	TokRange:          "range",
	TokTag:            "tag",
	TokCtlOp:          "control operator",
}

// String returns a human-readable name for the token kind, suitable for
// "expected X, found Y" diagnostics.
func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown token"
}

// IsLiteral returns true for value literal tokens.
func (k TokenKind) IsLiteral() bool {
	switch k {
	case TokInt, TokUint, TokFloat, TokText, TokBytes, TokHexBytes, TokB64Bytes:
		return true
	}
	return false
}

// IsAssignment returns true for rule assignment tokens.
func (k TokenKind) IsAssignment() bool {
	return k == TokAssign || k == TokTypeChoiceAlt || k == TokGroupChoiceAlt
}
