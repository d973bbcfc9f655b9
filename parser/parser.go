// Package parser provides CDDL parsing into an AST.
//
// The parser is recursive descent with one token of lookahead past the
// current token. Parse errors are collected as diagnostics and the
// parser resynchronizes at the next rule boundary, so one malformed
// rule does not hide problems in the rest of the document. Only two
// conditions abort parsing outright: a lexer failure and a rule body
// that opens with a parenthesized group, which is not supported.
package parser

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/golangcbor/gocddl/ast"
	"github.com/golangcbor/gocddl/internal/logging"
	"github.com/golangcbor/gocddl/lexer"
	"github.com/golangcbor/gocddl/token"
)

// ErrFatal is returned by ParseCDDL when parsing aborted before reaching
// the end of input. The diagnostics carry the cause.
var ErrFatal = errors.New("parsing aborted")

// Parser converts CDDL source text into an AST with diagnostics.
type Parser struct {
	source      []byte
	lex         *lexer.Lexer
	buf         [2]token.Token // buf[0]=current, buf[1]=peek
	diagnostics []token.Diagnostic
	logging.Logger
}

// New returns a Parser that lexes the source and prepares for parsing.
// Pass nil for logger to disable logging.
func New(source []byte, logger *slog.Logger) *Parser {
	lex := lexer.New(source, logging.Component(logger, "lexer"))
	p := &Parser{
		source: source,
		lex:    lex,
		Logger: logging.Logger{L: logger},
	}
	p.buf[0] = lex.NextToken()
	p.buf[1] = lex.NextToken()
	p.Log(slog.LevelDebug, "parser initialized", slog.Int("bytes", len(source)))
	return p
}

// Diagnostics returns all lexer and parser diagnostics collected so
// far, merged into source order by span start.
func (p *Parser) Diagnostics() []token.Diagnostic {
	diags := append(append([]token.Diagnostic{}, p.lex.Diagnostics()...), p.diagnostics...)
	slices.SortStableFunc(diags, func(a, b token.Diagnostic) int {
		return cmp.Compare(a.Span.Start, b.Span.Start)
	})
	return diags
}

// ParseCDDL parses a complete CDDL document. Recoverable parse errors
// are collected as diagnostics and the returned AST contains every rule
// that parsed cleanly. The returned error is non-nil only when parsing
// aborted: on a lexer failure or an unsupported construct.
func (p *Parser) ParseCDDL() (*ast.CDDL, error) {
	doc := &ast.CDDL{
		Span: token.NewSpan(0, token.ByteOffset(len(p.source))),
	}

	for !p.isEOF() {
		if p.check(token.TokError) {
			p.Log(slog.LevelDebug, "aborting on lexer failure")
			return doc, fmt.Errorf("%w: lexing failed", ErrFatal)
		}

		rule, diag := p.parseRule()
		if diag != nil {
			p.recordDiagnostic(*diag)
			if diag.Severity == token.SeverityFatal {
				p.Log(slog.LevelDebug, "aborting on fatal diagnostic",
					slog.String("message", diag.Message))
				return doc, fmt.Errorf("%w: %s", ErrFatal, diag.Message)
			}
			p.recoverToRule()
			continue
		}
		doc.Rules = append(doc.Rules, rule)
		if p.TraceEnabled() {
			p.Trace("parsed rule", slog.String("name", rule.RuleName().Name))
		}
	}

	p.Log(slog.LevelDebug, "parse complete",
		slog.Int("rules", len(doc.Rules)),
		slog.Int("diagnostics", len(p.diagnostics)))
	return doc, nil
}

// === Token helpers ===

func (p *Parser) isEOF() bool {
	return p.buf[0].Kind == token.TokEOF
}

func (p *Parser) current() token.Token {
	return p.buf[0]
}

func (p *Parser) peekNext() token.Token {
	return p.buf[1]
}

func (p *Parser) advance() token.Token {
	tok := p.buf[0]
	p.buf[0] = p.buf[1]
	p.buf[1] = p.lex.NextToken()
	return tok
}

func (p *Parser) check(kind token.TokenKind) bool {
	return p.current().Kind == kind
}

func (p *Parser) expect(kind token.TokenKind) (token.Token, *token.Diagnostic) {
	if p.check(kind) {
		return p.advance(), nil
	}
	diag := p.makeErrorWithCode(token.DiagUnexpectedToken,
		fmt.Sprintf("expected %s, found %s", kind, p.current().Kind))
	return token.Token{}, &diag
}

func (p *Parser) currentSpan() token.Span {
	return p.current().Span
}

func (p *Parser) text(span token.Span) string {
	return string(p.source[span.Start:span.End])
}

func (p *Parser) makeIdent(tok token.Token) ast.Ident {
	return ast.NewIdent(p.text(tok.Span), tok.Span)
}

func (p *Parser) recordDiagnostic(diag token.Diagnostic) {
	p.diagnostics = append(p.diagnostics, diag)
}

func (p *Parser) makeError(message string) token.Diagnostic {
	return p.makeErrorWithCode(token.DiagParseError, message)
}

func (p *Parser) makeErrorWithCode(code, message string) token.Diagnostic {
	return token.Diagnostic{
		Severity: token.SeverityError,
		Code:     code,
		Span:     p.currentSpan(),
		Message:  message,
	}
}

// recoverToRule skips tokens until the next plausible rule start: an
// identifier whose following token is an assignment operator or a
// generic parameter list.
func (p *Parser) recoverToRule() {
	for !p.isEOF() && !p.check(token.TokError) {
		if p.check(token.TokIdent) {
			next := p.peekNext().Kind
			if next.IsAssignment() || next == token.TokLAngle {
				return
			}
		}
		p.advance()
	}
}

// === Rules ===

func (p *Parser) parseRule() (ast.Rule, *token.Diagnostic) {
	start := p.currentSpan().Start

	nameTok, diag := p.expect(token.TokIdent)
	if diag != nil {
		return nil, diag
	}
	name := p.makeIdent(nameTok)

	var params *ast.GenericParams
	if p.check(token.TokLAngle) {
		params, diag = p.parseGenericParams()
		if diag != nil {
			return nil, diag
		}
	}

	assign := p.current()
	if !assign.Kind.IsAssignment() {
		d := p.makeErrorWithCode(token.DiagUnexpectedToken,
			fmt.Sprintf("expected assignment after rule name %q, found %s",
				name.Name, assign.Kind))
		return nil, &d
	}
	p.advance()

	if p.check(token.TokLParen) {
		d := token.Diagnostic{
			Severity: token.SeverityFatal,
			Code:     token.DiagUnimplemented,
			Span:     p.currentSpan(),
			Message:  fmt.Sprintf("rule %q: parenthesized group bodies are not supported", name.Name),
		}
		return nil, &d
	}

	if assign.Kind == token.TokGroupChoiceAlt {
		entry, diag := p.parseGroupEntry()
		if diag != nil {
			return nil, diag
		}
		return &ast.GroupRule{
			Name:                   name,
			GenericParams:          params,
			IsGroupChoiceAlternate: true,
			Entry:                  entry,
			Span:                   token.NewSpan(start, entry.GroupEntrySpan().End),
		}, nil
	}

	value, diag := p.parseType()
	if diag != nil {
		return nil, diag
	}
	return &ast.TypeRule{
		Name:                  name,
		GenericParams:         params,
		IsTypeChoiceAlternate: assign.Kind == token.TokTypeChoiceAlt,
		Value:                 *value,
		Span:                  token.NewSpan(start, value.Span.End),
	}, nil
}

// === Generics ===

// parseGenericParams parses "<name, name, ...>". The current token is
// the opening angle bracket.
func (p *Parser) parseGenericParams() (*ast.GenericParams, *token.Diagnostic) {
	start := p.currentSpan().Start
	p.advance()

	params := &ast.GenericParams{}
	for !p.check(token.TokRAngle) {
		switch p.current().Kind {
		case token.TokIdent:
			tok := p.advance()
			params.Params = append(params.Params, ast.GenericParam{
				Name: p.makeIdent(tok),
				Span: tok.Span,
			})
		case token.TokComma:
			p.advance()
		default:
			d := p.makeErrorWithCode(token.DiagIllegalToken,
				fmt.Sprintf("illegal token %s in generic parameter list", p.current().Kind))
			return nil, &d
		}
	}

	if len(params.Params) == 0 {
		d := p.makeErrorWithCode(token.DiagUnexpectedToken,
			"generic parameter list requires at least one parameter")
		return nil, &d
	}

	close := p.advance()
	params.Span = token.NewSpan(start, close.Span.End)
	return params, nil
}

// parseGenericArgs parses "<type1, type1, ...>". The current token is
// the opening angle bracket. Arguments are full Type1 expressions, so
// literal values and ranges are accepted.
func (p *Parser) parseGenericArgs() (*ast.GenericArgs, *token.Diagnostic) {
	start := p.currentSpan().Start
	p.advance()

	args := &ast.GenericArgs{}
	for !p.check(token.TokRAngle) {
		if p.isEOF() {
			d := p.makeError("unterminated generic argument list")
			return nil, &d
		}
		argStart := p.currentSpan().Start
		t1, diag := p.parseType1()
		if diag != nil {
			return nil, diag
		}
		args.Args = append(args.Args, ast.GenericArg{
			Arg:  *t1,
			Span: token.NewSpan(argStart, t1.Span.End),
		})
		if p.check(token.TokComma) {
			p.advance()
		}
	}

	close := p.advance()
	args.Span = token.NewSpan(start, close.Span.End)
	return args, nil
}

// === Types ===

func (p *Parser) parseType() (*ast.Type, *token.Diagnostic) {
	start := p.currentSpan().Start

	t := &ast.Type{}
	t1, diag := p.parseType1()
	if diag != nil {
		return nil, diag
	}
	t.Choices = append(t.Choices, ast.TypeChoice{Type1: *t1, Span: t1.Span})

	for p.check(token.TokTypeChoice) {
		p.advance()
		t1, diag = p.parseType1()
		if diag != nil {
			return nil, diag
		}
		t.Choices = append(t.Choices, ast.TypeChoice{Type1: *t1, Span: t1.Span})
	}

	t.Span = token.NewSpan(start, t.Choices[len(t.Choices)-1].Span.End)
	return t, nil
}

func (p *Parser) parseType1() (*ast.Type1, *token.Diagnostic) {
	start := p.currentSpan().Start

	if p.check(token.TokRange) {
		return p.parseRangeType1()
	}

	t2, diag := p.parseType2()
	if diag != nil {
		return nil, diag
	}

	t1 := &ast.Type1{Type2: t2}
	if p.check(token.TokCtlOp) {
		opTok := p.advance()
		operand, diag := p.parseType2()
		if diag != nil {
			return nil, diag
		}
		t1.Operator = &ast.Operator{
			Op:    ast.CtlOp{Name: opTok.Text},
			Type2: operand,
			Span:  token.NewSpan(opTok.Span.Start, operand.Type2Span().End),
		}
	}

	end := t2.Type2Span().End
	if t1.Operator != nil {
		end = t1.Operator.Span.End
	}
	t1.Span = token.NewSpan(start, end)
	return t1, nil
}

// parseRangeType1 expands a compound range token into a Type1 whose left
// bound is the Type2 and whose right bound rides on the range operator.
func (p *Parser) parseRangeType1() (*ast.Type1, *token.Diagnostic) {
	tok := p.advance()

	lo, diag := p.literalType2(tok.Range.Lo)
	if diag != nil {
		return nil, diag
	}
	hi, diag := p.literalType2(tok.Range.Hi)
	if diag != nil {
		return nil, diag
	}

	return &ast.Type1{
		Type2: lo,
		Operator: &ast.Operator{
			Op:    ast.RangeOp{Inclusive: tok.Range.Inclusive},
			Type2: hi,
			Span:  token.NewSpan(tok.Range.Lo.Span.End, tok.Span.End),
		},
		Span: tok.Span,
	}, nil
}

func (p *Parser) parseType2() (ast.Type2, *token.Diagnostic) {
	tok := p.current()
	switch tok.Kind {
	case token.TokInt, token.TokUint, token.TokFloat,
		token.TokText, token.TokBytes, token.TokHexBytes, token.TokB64Bytes:
		p.advance()
		return p.literalType2(tok)

	case token.TokIdent:
		p.advance()
		t2 := &ast.Type2Typename{Ident: p.makeIdent(tok), Span: tok.Span}
		if p.check(token.TokLAngle) {
			args, diag := p.parseGenericArgs()
			if diag != nil {
				return nil, diag
			}
			t2.GenericArgs = args
			t2.Span = token.NewSpan(tok.Span.Start, args.Span.End)
		}
		return t2, nil

	case token.TokLParen:
		p.advance()
		inner, diag := p.parseType()
		if diag != nil {
			return nil, diag
		}
		close, diag := p.expect(token.TokRParen)
		if diag != nil {
			return nil, diag
		}
		return &ast.Type2ParenthesizedType{
			Type: *inner,
			Span: token.NewSpan(tok.Span.Start, close.Span.End),
		}, nil

	case token.TokLBrace:
		p.advance()
		group, diag := p.parseGroup(token.TokRBrace)
		if diag != nil {
			return nil, diag
		}
		close, diag := p.expect(token.TokRBrace)
		if diag != nil {
			return nil, diag
		}
		return &ast.Type2Map{
			Group: *group,
			Span:  token.NewSpan(tok.Span.Start, close.Span.End),
		}, nil

	case token.TokLBracket:
		p.advance()
		group, diag := p.parseGroup(token.TokRBracket)
		if diag != nil {
			return nil, diag
		}
		close, diag := p.expect(token.TokRBracket)
		if diag != nil {
			return nil, diag
		}
		return &ast.Type2Array{
			Group: *group,
			Span:  token.NewSpan(tok.Span.Start, close.Span.End),
		}, nil

	case token.TokUnwrap:
		p.advance()
		nameTok, diag := p.expect(token.TokIdent)
		if diag != nil {
			return nil, diag
		}
		t2 := &ast.Type2Unwrap{
			Ident: p.makeIdent(nameTok),
			Span:  token.NewSpan(tok.Span.Start, nameTok.Span.End),
		}
		if p.check(token.TokLAngle) {
			args, diag := p.parseGenericArgs()
			if diag != nil {
				return nil, diag
			}
			t2.GenericArgs = args
			t2.Span = token.NewSpan(tok.Span.Start, args.Span.End)
		}
		return t2, nil

	case token.TokAmpersand:
		return p.parseChoiceFromGroup()

	case token.TokTag:
		return p.parseTaggedData()
	}

	diag := p.makeErrorWithCode(token.DiagUnrecognizedType2,
		fmt.Sprintf("%s cannot start a type", tok.Kind))
	return nil, &diag
}

// parseChoiceFromGroup parses "&( group )" or "&groupname". The current
// token is the ampersand.
func (p *Parser) parseChoiceFromGroup() (ast.Type2, *token.Diagnostic) {
	amp := p.advance()

	if p.check(token.TokLParen) {
		p.advance()
		group, diag := p.parseGroup(token.TokRParen)
		if diag != nil {
			return nil, diag
		}
		close, diag := p.expect(token.TokRParen)
		if diag != nil {
			return nil, diag
		}
		return &ast.Type2ChoiceFromInlineGroup{
			Group: *group,
			Span:  token.NewSpan(amp.Span.Start, close.Span.End),
		}, nil
	}

	nameTok, diag := p.expect(token.TokIdent)
	if diag != nil {
		return nil, diag
	}
	t2 := &ast.Type2ChoiceFromGroup{
		Ident: p.makeIdent(nameTok),
		Span:  token.NewSpan(amp.Span.Start, nameTok.Span.End),
	}
	if p.check(token.TokLAngle) {
		args, diag := p.parseGenericArgs()
		if diag != nil {
			return nil, diag
		}
		t2.GenericArgs = args
		t2.Span = token.NewSpan(amp.Span.Start, args.Span.End)
	}
	return t2, nil
}

// parseTaggedData parses "#", "#major", and "#6.nn(type)". The current
// token is the tag.
func (p *Parser) parseTaggedData() (ast.Type2, *token.Diagnostic) {
	tok := p.advance()

	if tok.Tag == nil || tok.Tag.Major == nil {
		return &ast.Type2Any{Span: tok.Span}, nil
	}

	t2 := &ast.Type2TaggedData{
		Major: *tok.Tag.Major,
		Tag:   tok.Tag.Constraint,
		Span:  tok.Span,
	}
	if p.check(token.TokLParen) {
		p.advance()
		inner, diag := p.parseType()
		if diag != nil {
			return nil, diag
		}
		close, diag := p.expect(token.TokRParen)
		if diag != nil {
			return nil, diag
		}
		t2.Type = inner
		t2.Span = token.NewSpan(tok.Span.Start, close.Span.End)
	}
	return t2, nil
}

// === Groups ===

// parseGroup parses group choices until the given closing delimiter.
// The delimiter itself is left for the caller to consume.
func (p *Parser) parseGroup(closing token.TokenKind) (*ast.Group, *token.Diagnostic) {
	start := p.currentSpan().Start

	group := &ast.Group{}
	choice, diag := p.parseGroupChoice(closing)
	if diag != nil {
		return nil, diag
	}
	group.Choices = append(group.Choices, *choice)

	for p.check(token.TokGroupChoice) {
		p.advance()
		choice, diag = p.parseGroupChoice(closing)
		if diag != nil {
			return nil, diag
		}
		group.Choices = append(group.Choices, *choice)
	}

	group.Span = token.NewSpan(start, p.currentSpan().Start)
	return group, nil
}

func (p *Parser) parseGroupChoice(closing token.TokenKind) (*ast.GroupChoice, *token.Diagnostic) {
	start := p.currentSpan().Start

	choice := &ast.GroupChoice{}
	for !p.check(closing) && !p.check(token.TokGroupChoice) {
		if p.isEOF() {
			d := p.makeError(fmt.Sprintf("unterminated group, expected %s", closing))
			return nil, &d
		}
		entry, diag := p.parseGroupEntry()
		if diag != nil {
			return nil, diag
		}
		trailingComma := false
		if p.check(token.TokComma) {
			p.advance()
			trailingComma = true
		}
		choice.Entries = append(choice.Entries, ast.GroupChoiceEntry{
			Entry:         entry,
			TrailingComma: trailingComma,
		})
	}

	choice.Span = token.NewSpan(start, p.currentSpan().Start)
	return choice, nil
}

// entryTerminator reports whether the token kind ends a keyless group
// entry, making a lone identifier a group or type name reference.
func entryTerminator(kind token.TokenKind) bool {
	switch kind {
	case token.TokComma, token.TokRParen, token.TokRBrace, token.TokRBracket,
		token.TokRAngle, token.TokGroupChoice, token.TokEOF:
		return true
	}
	return false
}

func (p *Parser) parseGroupEntry() (ast.GroupEntry, *token.Diagnostic) {
	start := p.currentSpan().Start

	occur, diag := p.parseOccurrence()
	if diag != nil {
		return nil, diag
	}

	// Inline parenthesized group.
	if p.check(token.TokLParen) {
		p.advance()
		group, diag := p.parseGroup(token.TokRParen)
		if diag != nil {
			return nil, diag
		}
		close, diag := p.expect(token.TokRParen)
		if diag != nil {
			return nil, diag
		}
		return &ast.InlineGroupEntry{
			Occur: occur,
			Group: *group,
			Span:  token.NewSpan(start, close.Span.End),
		}, nil
	}

	// Bareword member key.
	if p.check(token.TokIdent) && p.peekNext().Kind == token.TokColon {
		nameTok := p.advance()
		p.advance()
		entryType, diag := p.parseType()
		if diag != nil {
			return nil, diag
		}
		return &ast.ValueMemberKeyEntry{
			Occur: occur,
			MemberKey: &ast.MemberKeyBareword{
				Ident: p.makeIdent(nameTok),
				Span:  nameTok.Span,
			},
			EntryType: *entryType,
			Span:      token.NewSpan(start, entryType.Span.End),
		}, nil
	}

	// Lone name reference, optionally with generic arguments.
	if p.check(token.TokIdent) {
		next := p.peekNext().Kind
		if entryTerminator(next) || next == token.TokLAngle {
			nameTok := p.advance()
			entry := &ast.TypeGroupnameEntry{
				Occur: occur,
				Name:  p.makeIdent(nameTok),
				Span:  token.NewSpan(start, nameTok.Span.End),
			}
			if p.check(token.TokLAngle) {
				args, diag := p.parseGenericArgs()
				if diag != nil {
					return nil, diag
				}
				entry.GenericArgs = args
				entry.Span = token.NewSpan(start, args.Span.End)
			}
			return entry, nil
		}
	}

	// General case: a Type1 that is either a member key (followed by
	// "=>", with optional cut, or ":" for literal values) or the start
	// of a keyless entry type.
	keyStart := p.currentSpan().Start
	t1, diag := p.parseType1()
	if diag != nil {
		return nil, diag
	}

	var memberKey ast.MemberKey
	switch {
	case p.check(token.TokCut):
		p.advance()
		if _, diag := p.expect(token.TokArrowMap); diag != nil {
			return nil, diag
		}
		memberKey = &ast.MemberKeyType1{
			Type1: *t1,
			IsCut: true,
			Span:  token.NewSpan(keyStart, t1.Span.End),
		}
	case p.check(token.TokArrowMap):
		p.advance()
		memberKey = &ast.MemberKeyType1{
			Type1: *t1,
			Span:  token.NewSpan(keyStart, t1.Span.End),
		}
	case p.check(token.TokColon):
		value, ok := ast.LiteralValue(t1.Type2)
		if !ok || t1.Operator != nil {
			d := p.makeErrorWithCode(token.DiagUnexpectedToken,
				"\":\" member keys require a literal value or bareword")
			return nil, &d
		}
		p.advance()
		memberKey = &ast.MemberKeyValue{
			Value: value,
			Span:  t1.Span,
		}
	}

	if memberKey != nil {
		entryType, diag := p.parseType()
		if diag != nil {
			return nil, diag
		}
		return &ast.ValueMemberKeyEntry{
			Occur:     occur,
			MemberKey: memberKey,
			EntryType: *entryType,
			Span:      token.NewSpan(start, entryType.Span.End),
		}, nil
	}

	// No member key: fold any further "/" alternatives into the entry
	// type and leave the key empty.
	entryType := ast.Type{
		Choices: []ast.TypeChoice{{Type1: *t1, Span: t1.Span}},
	}
	for p.check(token.TokTypeChoice) {
		p.advance()
		alt, diag := p.parseType1()
		if diag != nil {
			return nil, diag
		}
		entryType.Choices = append(entryType.Choices, ast.TypeChoice{Type1: *alt, Span: alt.Span})
	}
	entryType.Span = token.NewSpan(t1.Span.Start,
		entryType.Choices[len(entryType.Choices)-1].Span.End)

	return &ast.ValueMemberKeyEntry{
		Occur:     occur,
		EntryType: entryType,
		Span:      token.NewSpan(start, entryType.Span.End),
	}, nil
}

// === Occurrences ===

// parseOccurrence parses an optional occurrence indicator: "?", "+",
// "*", "*m", "n*", or "n*m". Returns nil when the current token does not
// begin one. A lone unsigned integer is an occurrence bound only when
// an asterisk follows, so literal member keys stay unambiguous.
func (p *Parser) parseOccurrence() (*ast.Occurrence, *token.Diagnostic) {
	start := p.currentSpan().Start

	switch p.current().Kind {
	case token.TokOptional:
		tok := p.advance()
		return &ast.Occurrence{Kind: ast.OccurOptional, Span: tok.Span}, nil

	case token.TokPlus:
		tok := p.advance()
		return &ast.Occurrence{Kind: ast.OccurOneOrMore, Span: tok.Span}, nil

	case token.TokAsterisk:
		asterisk := p.advance()
		if upper, upperTok, ok := p.occurrenceBound(); ok {
			return &ast.Occurrence{
				Kind:  ast.OccurExact,
				Upper: &upper,
				Span:  token.NewSpan(start, upperTok.Span.End),
			}, nil
		}
		return &ast.Occurrence{
			Kind: ast.OccurZeroOrMore,
			Span: asterisk.Span,
		}, nil

	case token.TokUint:
		if p.peekNext().Kind != token.TokAsterisk {
			return nil, nil
		}
		lowerTok := p.advance()
		lower, err := parseUint(p.text(lowerTok.Span))
		if err != nil {
			d := p.makeErrorWithCode(token.DiagInvalidLiteral,
				fmt.Sprintf("invalid occurrence bound %q", p.text(lowerTok.Span)))
			return nil, &d
		}
		asterisk := p.advance()
		occ := &ast.Occurrence{
			Kind:  ast.OccurExact,
			Lower: &lower,
			Span:  token.NewSpan(start, asterisk.Span.End),
		}
		if upper, upperTok, ok := p.occurrenceBound(); ok {
			occ.Upper = &upper
			occ.Span = token.NewSpan(start, upperTok.Span.End)
		}
		return occ, nil
	}

	return nil, nil
}

// occurrenceBound consumes the current token as an occurrence upper
// bound when it is an unsigned integer not itself acting as a member
// key.
func (p *Parser) occurrenceBound() (uint64, token.Token, bool) {
	if !p.check(token.TokUint) {
		return 0, token.Token{}, false
	}
	next := p.peekNext().Kind
	if next == token.TokColon || next == token.TokArrowMap {
		return 0, token.Token{}, false
	}
	tok := p.advance()
	n, err := parseUint(p.text(tok.Span))
	if err != nil {
		p.recordDiagnostic(p.makeErrorWithCode(token.DiagInvalidLiteral,
			fmt.Sprintf("invalid occurrence bound %q", p.text(tok.Span))))
		return 0, tok, false
	}
	return n, tok, true
}

// === Literals ===

// literalType2 materializes a literal token into its Type2 variant.
func (p *Parser) literalType2(tok token.Token) (ast.Type2, *token.Diagnostic) {
	switch tok.Kind {
	case token.TokUint:
		n, err := parseUint(p.text(tok.Span))
		if err != nil {
			d := p.invalidLiteral(tok, err)
			return nil, &d
		}
		return &ast.Type2UintValue{Value: n, Span: tok.Span}, nil

	case token.TokInt:
		n, err := parseInt(p.text(tok.Span))
		if err != nil {
			d := p.invalidLiteral(tok, err)
			return nil, &d
		}
		return &ast.Type2IntValue{Value: n, Span: tok.Span}, nil

	case token.TokFloat:
		f, err := strconv.ParseFloat(p.text(tok.Span), 64)
		if err != nil {
			d := p.invalidLiteral(tok, err)
			return nil, &d
		}
		return &ast.Type2FloatValue{Value: f, Span: tok.Span}, nil

	case token.TokText:
		return &ast.Type2TextValue{Value: tok.Text, Span: tok.Span}, nil

	case token.TokBytes:
		return &ast.Type2UTF8ByteString{Value: []byte(tok.Text), Span: tok.Span}, nil

	case token.TokHexBytes:
		return &ast.Type2B16ByteString{Value: []byte(tok.Text), Span: tok.Span}, nil

	case token.TokB64Bytes:
		return &ast.Type2B64ByteString{Value: []byte(tok.Text), Span: tok.Span}, nil
	}

	d := p.makeErrorWithCode(token.DiagInvalidLiteral,
		fmt.Sprintf("%s is not a literal", tok.Kind))
	return nil, &d
}

func (p *Parser) invalidLiteral(tok token.Token, err error) token.Diagnostic {
	return token.Diagnostic{
		Severity: token.SeverityError,
		Code:     token.DiagInvalidLiteral,
		Span:     tok.Span,
		Message:  fmt.Sprintf("invalid literal %q: %v", p.text(tok.Span), err),
	}
}

// parseInt parses a negative decimal, 0x hex, or 0b binary integer.
// The sign is re-attached after the radix prefix so values down to
// math.MinInt64 stay in range.
func parseInt(text string) (int64, error) {
	digits := strings.TrimPrefix(text, "-")
	switch {
	case strings.HasPrefix(digits, "0x"):
		return strconv.ParseInt("-"+digits[2:], 16, 64)
	case strings.HasPrefix(digits, "0b"):
		return strconv.ParseInt("-"+digits[2:], 2, 64)
	}
	return strconv.ParseInt(text, 10, 64)
}

// parseUint parses a decimal, 0x hex, or 0b binary unsigned literal.
func parseUint(text string) (uint64, error) {
	switch {
	case strings.HasPrefix(text, "0x"):
		return strconv.ParseUint(text[2:], 16, 64)
	case strings.HasPrefix(text, "0b"):
		return strconv.ParseUint(text[2:], 2, 64)
	}
	return strconv.ParseUint(text, 10, 64)
}
