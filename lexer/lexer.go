// Package lexer provides tokenization for CDDL source text.
//
// The lexer is a pull interface: the parser consumes tokens through
// NextToken and never re-reads raw text. Numeric ranges ("0..10",
// "0...10") are recognized here as single compound tokens carrying both
// bounds and the inclusivity flag. Lexical problems are collected as
// diagnostics; the emitted TokError token tells the parser to stop.
package lexer

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/golangcbor/gocddl/internal/logging"
	"github.com/golangcbor/gocddl/token"
)

// Lexer tokenizes CDDL source text.
type Lexer struct {
	source      []byte
	pos         int
	diagnostics []token.Diagnostic
	logging.Logger
}

// New returns a Lexer that tokenizes the given source bytes.
// Pass nil for logger to disable logging.
func New(source []byte, logger *slog.Logger) *Lexer {
	l := &Lexer{
		source: source,
		Logger: logging.Logger{L: logger},
	}
	l.Log(slog.LevelDebug, "lexer initialized", slog.Int("bytes", len(source)))
	return l
}

// Diagnostics returns a copy of all collected diagnostics.
func (l *Lexer) Diagnostics() []token.Diagnostic {
	return slices.Clone(l.diagnostics)
}

// Tokenize consumes all source text and returns the token stream along
// with any diagnostics generated during lexing.
func (l *Lexer) Tokenize() ([]token.Token, []token.Diagnostic) {
	estimatedTokens := max(len(l.source)/4, 16)
	tokens := make([]token.Token, 0, estimatedTokens)
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.TokEOF {
			break
		}
	}
	l.Log(slog.LevelDebug, "tokenization complete",
		slog.Int("tokens", len(tokens)),
		slog.Int("diagnostics", len(l.diagnostics)))
	return tokens, l.diagnostics
}

func (l *Lexer) isEOF() bool {
	return l.pos >= len(l.source)
}

func (l *Lexer) peek() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	return l.source[l.pos], true
}

func (l *Lexer) peekAt(offset int) (byte, bool) {
	idx := l.pos + offset
	if idx >= len(l.source) {
		return 0, false
	}
	return l.source[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	b := l.source[l.pos]
	l.pos++
	return b, true
}

// skipWhitespaceAndComments skips spaces and ";" comments, which run to
// end of line.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		b, ok := l.peek()
		if !ok {
			return
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case ';':
			for {
				c, ok := l.peek()
				if !ok || c == '\n' {
					break
				}
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) error(code string, span token.Span, message string) {
	l.diagnostics = append(l.diagnostics, token.Diagnostic{
		Severity: token.SeverityError,
		Code:     code,
		Span:     span,
		Message:  message,
	})
}

func (l *Lexer) spanFrom(start int) token.Span {
	return token.NewSpan(token.ByteOffset(start), token.ByteOffset(l.pos))
}

func (l *Lexer) token(kind token.TokenKind, start int) token.Token {
	tok := token.NewToken(kind, l.spanFrom(start))
	l.traceToken(tok)
	return tok
}

func (l *Lexer) traceToken(tok token.Token) {
	if l.TraceEnabled() {
		l.Trace("token",
			slog.String("kind", tok.Kind.String()),
			slog.Int("start", int(tok.Span.Start)),
			slog.Int("end", int(tok.Span.End)))
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isIdentStart matches the first character of a CDDL name. "$" and "$$"
// sockets and "@"/"_" extensions are identifier characters too.
func isIdentStart(b byte) bool {
	return isAlpha(b) || b == '@' || b == '_' || b == '$'
}

func isIdentChar(b byte) bool {
	return isAlpha(b) || isDigit(b) || b == '@' || b == '_' || b == '$'
}

// NextToken advances the lexer and returns the next token.
// Returns TokEOF when all input is consumed.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	start := l.pos

	b, ok := l.peek()
	if !ok {
		return l.token(token.TokEOF, start)
	}

	switch {
	case b == 'h' || b == 'b':
		if tok, ok := l.lexPrefixedByteString(start); ok {
			return tok
		}
		return l.lexIdent(start)
	case isIdentStart(b):
		return l.lexIdent(start)
	case isDigit(b) || b == '-':
		return l.lexNumberOrRange(start)
	case b == '"':
		return l.lexTextString(start)
	case b == '\'':
		return l.lexByteString(start, token.TokBytes)
	}

	switch b {
	case '(':
		l.advance()
		return l.token(token.TokLParen, start)
	case ')':
		l.advance()
		return l.token(token.TokRParen, start)
	case '{':
		l.advance()
		return l.token(token.TokLBrace, start)
	case '}':
		l.advance()
		return l.token(token.TokRBrace, start)
	case '[':
		l.advance()
		return l.token(token.TokLBracket, start)
	case ']':
		l.advance()
		return l.token(token.TokRBracket, start)
	case '<':
		l.advance()
		return l.token(token.TokLAngle, start)
	case '>':
		l.advance()
		return l.token(token.TokRAngle, start)
	case ',':
		l.advance()
		return l.token(token.TokComma, start)
	case ':':
		l.advance()
		return l.token(token.TokColon, start)
	case '?':
		l.advance()
		return l.token(token.TokOptional, start)
	case '*':
		l.advance()
		return l.token(token.TokAsterisk, start)
	case '+':
		l.advance()
		return l.token(token.TokPlus, start)
	case '~':
		l.advance()
		return l.token(token.TokUnwrap, start)
	case '&':
		l.advance()
		return l.token(token.TokAmpersand, start)
	case '^':
		l.advance()
		return l.token(token.TokCut, start)
	case '=':
		l.advance()
		if next, ok := l.peek(); ok && next == '>' {
			l.advance()
			return l.token(token.TokArrowMap, start)
		}
		return l.token(token.TokAssign, start)
	case '/':
		return l.lexSlash(start)
	case '#':
		return l.lexTag(start)
	case '.':
		return l.lexDot(start)
	}

	l.advance()
	span := l.spanFrom(start)
	l.error(token.DiagLexError, span, fmt.Sprintf("unexpected character %q", b))
	return l.token(token.TokError, start)
}

// lexSlash distinguishes "/", "/=", "//", and "//=".
func (l *Lexer) lexSlash(start int) token.Token {
	l.advance()
	next, ok := l.peek()
	switch {
	case ok && next == '/':
		l.advance()
		if after, ok := l.peek(); ok && after == '=' {
			l.advance()
			return l.token(token.TokGroupChoiceAlt, start)
		}
		return l.token(token.TokGroupChoice, start)
	case ok && next == '=':
		l.advance()
		return l.token(token.TokTypeChoiceAlt, start)
	}
	return l.token(token.TokTypeChoice, start)
}

// lexDot handles control operators (".size") at token start. A bare "."
// or ".." here is a lexical error: ranges are only pre-lexed from
// numeric literals.
func (l *Lexer) lexDot(start int) token.Token {
	l.advance()
	if next, ok := l.peek(); ok && isIdentStart(next) {
		for {
			c, ok := l.peek()
			if !ok || !isIdentChar(c) {
				break
			}
			l.advance()
		}
		tok := l.token(token.TokCtlOp, start)
		tok.Text = string(l.source[start:l.pos])
		return tok
	}
	if next, ok := l.peek(); ok && next == '.' {
		l.advance()
		if after, ok := l.peek(); ok && after == '.' {
			l.advance()
		}
	}
	span := l.spanFrom(start)
	l.error(token.DiagLexError, span, "range operator requires numeric bounds")
	return l.token(token.TokError, start)
}

// lexTag scans "#", "#major", or "#major.constraint".
func (l *Lexer) lexTag(start int) token.Token {
	l.advance()
	next, ok := l.peek()
	if !ok || !isDigit(next) {
		return l.token(token.TokTag, start)
	}

	majorStart := l.pos
	for {
		c, ok := l.peek()
		if !ok || !isDigit(c) {
			break
		}
		l.advance()
	}
	major, err := strconv.ParseUint(string(l.source[majorStart:l.pos]), 10, 64)
	if err != nil {
		l.error(token.DiagLexError, l.spanFrom(start), "invalid tag major number")
		return l.token(token.TokError, start)
	}

	tag := &token.TagParts{Major: &major}

	if dot, ok := l.peek(); ok && dot == '.' {
		if after, ok := l.peekAt(1); ok && isDigit(after) {
			l.advance()
			constraintStart := l.pos
			for {
				c, ok := l.peek()
				if !ok || !isDigit(c) {
					break
				}
				l.advance()
			}
			constraint, err := strconv.ParseUint(string(l.source[constraintStart:l.pos]), 10, 64)
			if err != nil {
				l.error(token.DiagLexError, l.spanFrom(start), "invalid tag constraint")
				return l.token(token.TokError, start)
			}
			tag.Constraint = &constraint
		}
	}

	tok := l.token(token.TokTag, start)
	tok.Tag = tag
	return tok
}

// lexIdent scans an identifier. "-" and "." continue an identifier only
// when followed by another identifier character, so "a..b" stops before
// the range operator.
func (l *Lexer) lexIdent(start int) token.Token {
	l.advance()
	for {
		c, ok := l.peek()
		if !ok {
			break
		}
		if isIdentChar(c) {
			l.advance()
			continue
		}
		if c == '-' || c == '.' {
			if next, ok := l.peekAt(1); ok && isIdentChar(next) {
				l.advance()
				l.advance()
				continue
			}
		}
		break
	}
	return l.token(token.TokIdent, start)
}

// lexNumberOrRange scans a numeric literal, then joins it with ".." or
// "..." and a second numeric literal into a single compound range token.
func (l *Lexer) lexNumberOrRange(start int) token.Token {
	lo := l.lexNumber(start)
	if lo.Kind == token.TokError {
		return lo
	}

	dot, ok := l.peek()
	if !ok || dot != '.' {
		return lo
	}
	second, ok := l.peekAt(1)
	if !ok || second != '.' {
		return lo
	}

	l.advance()
	l.advance()
	inclusive := true
	if third, ok := l.peek(); ok && third == '.' {
		l.advance()
		inclusive = false
	}

	hiStart := l.pos
	hb, ok := l.peek()
	if !ok || (!isDigit(hb) && hb != '-') {
		span := l.spanFrom(start)
		l.error(token.DiagLexError, span, "range is missing its upper bound")
		return l.token(token.TokError, start)
	}
	hi := l.lexNumber(hiStart)
	if hi.Kind == token.TokError {
		return hi
	}

	tok := l.token(token.TokRange, start)
	tok.Range = &token.RangeParts{Lo: lo, Hi: hi, Inclusive: inclusive}
	return tok
}

// lexNumber scans one numeric literal: decimal int/uint, 0x/0b uint, or
// float with fraction and exponent. A "." begins a fraction only when a
// digit follows, so "1..2" leaves the range operator intact.
func (l *Lexer) lexNumber(start int) token.Token {
	negative := false
	if b, ok := l.peek(); ok && b == '-' {
		negative = true
		l.advance()
	}

	b, ok := l.peek()
	if !ok || !isDigit(b) {
		span := l.spanFrom(start)
		l.error(token.DiagLexError, span, "malformed numeric literal")
		return l.token(token.TokError, start)
	}

	if b == '0' {
		if next, ok := l.peekAt(1); ok && (next == 'x' || next == 'b') {
			return l.lexRadixNumber(start, next, negative)
		}
	}

	for {
		c, ok := l.peek()
		if !ok || !isDigit(c) {
			break
		}
		l.advance()
	}

	isFloat := false
	if dot, ok := l.peek(); ok && dot == '.' {
		if next, ok := l.peekAt(1); ok && isDigit(next) {
			isFloat = true
			l.advance()
			for {
				c, ok := l.peek()
				if !ok || !isDigit(c) {
					break
				}
				l.advance()
			}
		}
	}
	if e, ok := l.peek(); ok && (e == 'e' || e == 'E') {
		if tok, handled := l.lexExponent(start); handled {
			return tok
		}
		isFloat = true
	}

	switch {
	case isFloat:
		return l.token(token.TokFloat, start)
	case negative:
		return l.token(token.TokInt, start)
	}
	return l.token(token.TokUint, start)
}

// lexExponent consumes an exponent suffix. Returns handled=false when the
// exponent was consumed normally; the error token path returns handled=true.
func (l *Lexer) lexExponent(start int) (token.Token, bool) {
	l.advance() // e or E
	if sign, ok := l.peek(); ok && (sign == '+' || sign == '-') {
		l.advance()
	}
	d, ok := l.peek()
	if !ok || !isDigit(d) {
		span := l.spanFrom(start)
		l.error(token.DiagLexError, span, "malformed exponent")
		return l.token(token.TokError, start), true
	}
	for {
		c, ok := l.peek()
		if !ok || !isDigit(c) {
			break
		}
		l.advance()
	}
	return token.Token{}, false
}

// lexRadixNumber scans 0x hex or 0b binary integer literals, with an
// optional leading minus already consumed.
func (l *Lexer) lexRadixNumber(start int, radix byte, negative bool) token.Token {
	l.advance() // 0
	l.advance() // x or b

	isRadixDigit := func(c byte) bool {
		if radix == 'b' {
			return c == '0' || c == '1'
		}
		return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	}

	d, ok := l.peek()
	if !ok || !isRadixDigit(d) {
		span := l.spanFrom(start)
		l.error(token.DiagLexError, span, "malformed numeric literal")
		return l.token(token.TokError, start)
	}
	for {
		c, ok := l.peek()
		if !ok || !isRadixDigit(c) {
			break
		}
		l.advance()
	}
	if negative {
		return l.token(token.TokInt, start)
	}
	return l.token(token.TokUint, start)
}

// lexTextString scans a double-quoted text string and materializes the
// unescaped payload into the token, so downstream consumers never
// re-unescape literal text.
func (l *Lexer) lexTextString(start int) token.Token {
	l.advance() // opening quote

	var b strings.Builder
	for {
		c, ok := l.advance()
		if !ok {
			span := l.spanFrom(start)
			l.error(token.DiagUnterminatedString, span, "unterminated text string")
			break
		}
		if c == '"' {
			break
		}
		if c != '\\' {
			b.WriteByte(c)
			continue
		}

		esc, ok := l.advance()
		if !ok {
			span := l.spanFrom(start)
			l.error(token.DiagUnterminatedString, span, "unterminated text string")
			break
		}
		switch esc {
		case '"', '\\', '/':
			b.WriteByte(esc)
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			l.lexUnicodeEscape(start, &b)
		default:
			span := l.spanFrom(start)
			l.error(token.DiagInvalidEscape, span,
				fmt.Sprintf("invalid escape sequence \\%c", esc))
			b.WriteByte(esc)
		}
	}

	tok := l.token(token.TokText, start)
	tok.Text = b.String()
	return tok
}

// lexUnicodeEscape consumes the four hex digits of a \uXXXX escape and
// appends the decoded rune.
func (l *Lexer) lexUnicodeEscape(start int, b *strings.Builder) {
	hexStart := l.pos
	for i := 0; i < 4; i++ {
		c, ok := l.peek()
		if !ok || !(isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			span := l.spanFrom(start)
			l.error(token.DiagInvalidEscape, span, "invalid \\u escape")
			return
		}
		l.advance()
	}
	code, err := strconv.ParseUint(string(l.source[hexStart:l.pos]), 16, 32)
	if err != nil {
		span := l.spanFrom(start)
		l.error(token.DiagInvalidEscape, span, "invalid \\u escape")
		return
	}
	b.WriteRune(rune(code))
}

// lexPrefixedByteString recognizes h'...' and b64'...' byte strings.
// Returns ok=false when the prefix does not match, so the caller can
// fall back to identifier lexing.
func (l *Lexer) lexPrefixedByteString(start int) (token.Token, bool) {
	rest := l.source[l.pos:]
	switch {
	case len(rest) >= 2 && rest[0] == 'h' && rest[1] == '\'':
		l.advance()
		return l.lexByteString(start, token.TokHexBytes), true
	case len(rest) >= 4 && rest[0] == 'b' && rest[1] == '6' && rest[2] == '4' && rest[3] == '\'':
		l.advance()
		l.advance()
		l.advance()
		return l.lexByteString(start, token.TokB64Bytes), true
	}
	return token.Token{}, false
}

// lexByteString scans a '...' quoted byte string body. The caller has
// consumed any h/b64 prefix; the current character is the opening quote.
func (l *Lexer) lexByteString(start int, kind token.TokenKind) token.Token {
	l.advance() // opening quote

	var b strings.Builder
	for {
		c, ok := l.advance()
		if !ok {
			span := l.spanFrom(start)
			l.error(token.DiagUnterminatedString, span, "unterminated byte string")
			break
		}
		if c == '\'' {
			break
		}
		if c == '\\' {
			esc, ok := l.advance()
			if !ok {
				span := l.spanFrom(start)
				l.error(token.DiagUnterminatedString, span, "unterminated byte string")
				break
			}
			if esc != '\'' && esc != '\\' {
				b.WriteByte('\\')
			}
			b.WriteByte(esc)
			continue
		}
		b.WriteByte(c)
	}

	tok := l.token(kind, start)
	tok.Text = b.String()
	return tok
}
