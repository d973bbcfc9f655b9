package lexer

import (
	"testing"

	"github.com/golangcbor/gocddl/internal/testutil"
	"github.com/golangcbor/gocddl/token"
)

func tokenKinds(source string) []token.TokenKind {
	lexer := New([]byte(source), nil)
	tokens, _ := lexer.Tokenize()
	kinds := make([]token.TokenKind, len(tokens))
	for i, t := range tokens {
		kinds[i] = t.Kind
	}
	return kinds
}

func tokenTexts(source string) []string {
	lexer := New([]byte(source), nil)
	tokens, _ := lexer.Tokenize()
	var texts []string
	for _, t := range tokens {
		if t.Kind != token.TokEOF {
			texts = append(texts, source[t.Span.Start:t.Span.End])
		}
	}
	return texts
}

func singleToken(t *testing.T, source string) token.Token {
	t.Helper()
	lexer := New([]byte(source), nil)
	tokens, diags := lexer.Tokenize()
	testutil.Len(t, diags, 0, "diagnostics for %q", source)
	testutil.Len(t, tokens, 2, "tokens for %q", source)
	testutil.Equal(t, token.TokEOF, tokens[1].Kind, "trailing EOF")
	return tokens[0]
}

func TestEmptyInput(t *testing.T) {
	kinds := tokenKinds("")
	testutil.SliceEqual(t, []token.TokenKind{token.TokEOF}, kinds, "empty input")
}

func TestPunctuation(t *testing.T) {
	kinds := tokenKinds("[ ] { } ( ) < > , : ^ ? * + ~ &")
	expected := []token.TokenKind{
		token.TokLBracket, token.TokRBracket, token.TokLBrace, token.TokRBrace,
		token.TokLParen, token.TokRParen, token.TokLAngle, token.TokRAngle,
		token.TokComma, token.TokColon, token.TokCut, token.TokOptional,
		token.TokAsterisk, token.TokPlus, token.TokUnwrap, token.TokAmpersand,
		token.TokEOF,
	}
	testutil.SliceEqual(t, expected, kinds, "token kinds")
}

func TestAssignmentOperators(t *testing.T) {
	kinds := tokenKinds("= /= //= / // =>")
	expected := []token.TokenKind{
		token.TokAssign, token.TokTypeChoiceAlt, token.TokGroupChoiceAlt,
		token.TokTypeChoice, token.TokGroupChoice, token.TokArrowMap,
		token.TokEOF,
	}
	testutil.SliceEqual(t, expected, kinds, "token kinds")
}

func TestIdentifiers(t *testing.T) {
	texts := tokenTexts("myrule my-rule my.rule $socket $$plug @ext _name a1")
	expected := []string{
		"myrule", "my-rule", "my.rule", "$socket", "$$plug", "@ext", "_name", "a1",
	}
	testutil.SliceEqual(t, expected, texts, "token texts")
}

func TestIdentifierStopsBeforeRange(t *testing.T) {
	// "." continues an identifier only when an identifier character
	// follows, so a trailing range operator stays intact.
	kinds := tokenKinds("a")
	testutil.SliceEqual(t, []token.TokenKind{token.TokIdent, token.TokEOF}, kinds, "plain ident")

	texts := tokenTexts("min-type")
	testutil.SliceEqual(t, []string{"min-type"}, texts, "hyphenated ident")
}

func TestNumbers(t *testing.T) {
	kinds := tokenKinds("0 1 42 -1 -42 1.5 -1.5 10e3 1.5e-2 0x1F 0b101")
	expected := []token.TokenKind{
		token.TokUint, token.TokUint, token.TokUint,
		token.TokInt, token.TokInt,
		token.TokFloat, token.TokFloat, token.TokFloat, token.TokFloat,
		token.TokUint, token.TokUint,
		token.TokEOF,
	}
	testutil.SliceEqual(t, expected, kinds, "token kinds")
}

func TestInclusiveRange(t *testing.T) {
	tok := singleToken(t, "0..10")
	testutil.Equal(t, token.TokRange, tok.Kind, "kind")
	testutil.NotNil(t, tok.Range, "range payload")
	testutil.True(t, tok.Range.Inclusive, "inclusive")
	testutil.Equal(t, token.TokUint, tok.Range.Lo.Kind, "lower bound kind")
	testutil.Equal(t, token.TokUint, tok.Range.Hi.Kind, "upper bound kind")
}

func TestExclusiveRange(t *testing.T) {
	tok := singleToken(t, "0...10")
	testutil.Equal(t, token.TokRange, tok.Kind, "kind")
	testutil.NotNil(t, tok.Range, "range payload")
	testutil.False(t, tok.Range.Inclusive, "inclusive")
}

func TestNegativeAndFloatRanges(t *testing.T) {
	tok := singleToken(t, "-10..5")
	testutil.Equal(t, token.TokInt, tok.Range.Lo.Kind, "negative lower bound")

	tok = singleToken(t, "1.5..4.5")
	testutil.Equal(t, token.TokFloat, tok.Range.Lo.Kind, "float lower bound")
	testutil.Equal(t, token.TokFloat, tok.Range.Hi.Kind, "float upper bound")
}

func TestRangeMissingUpperBound(t *testing.T) {
	lexer := New([]byte("0.."), nil)
	tokens, diags := lexer.Tokenize()
	testutil.Equal(t, token.TokError, tokens[0].Kind, "error token")
	testutil.NotEmpty(t, diags, "diagnostics")
	testutil.Equal(t, token.DiagLexError, diags[0].Code, "diagnostic code")
}

func TestTextString(t *testing.T) {
	tok := singleToken(t, `"hello"`)
	testutil.Equal(t, token.TokText, tok.Kind, "kind")
	testutil.Equal(t, "hello", tok.Text, "payload")
}

func TestTextStringEscapes(t *testing.T) {
	tok := singleToken(t, `"a\"b\\c\nd\te"`)
	testutil.Equal(t, "a\"b\\c\nd\te", tok.Text, "unescaped payload")
}

func TestTextStringUnicodeEscape(t *testing.T) {
	tok := singleToken(t, `"é"`)
	testutil.Equal(t, "é", tok.Text, "decoded rune")
}

func TestUnterminatedString(t *testing.T) {
	lexer := New([]byte(`"open`), nil)
	_, diags := lexer.Tokenize()
	testutil.NotEmpty(t, diags, "diagnostics")
	testutil.Equal(t, token.DiagUnterminatedString, diags[0].Code, "diagnostic code")
}

func TestInvalidEscape(t *testing.T) {
	lexer := New([]byte(`"a\qb"`), nil)
	_, diags := lexer.Tokenize()
	testutil.NotEmpty(t, diags, "diagnostics")
	testutil.Equal(t, token.DiagInvalidEscape, diags[0].Code, "diagnostic code")
}

func TestByteStrings(t *testing.T) {
	tok := singleToken(t, `'raw bytes'`)
	testutil.Equal(t, token.TokBytes, tok.Kind, "utf8 kind")
	testutil.Equal(t, "raw bytes", tok.Text, "utf8 payload")

	tok = singleToken(t, `h'deadbeef'`)
	testutil.Equal(t, token.TokHexBytes, tok.Kind, "hex kind")
	testutil.Equal(t, "deadbeef", tok.Text, "hex payload")

	tok = singleToken(t, `b64'aGVsbG8'`)
	testutil.Equal(t, token.TokB64Bytes, tok.Kind, "b64 kind")
	testutil.Equal(t, "aGVsbG8", tok.Text, "b64 payload")
}

func TestHexPrefixVersusIdent(t *testing.T) {
	// "h" followed by anything other than a quote is an identifier.
	kinds := tokenKinds("hex b64url h'00'")
	expected := []token.TokenKind{
		token.TokIdent, token.TokIdent, token.TokHexBytes, token.TokEOF,
	}
	testutil.SliceEqual(t, expected, kinds, "token kinds")
}

func TestTags(t *testing.T) {
	tok := singleToken(t, "#")
	testutil.Equal(t, token.TokTag, tok.Kind, "bare tag kind")
	testutil.Nil(t, tok.Tag, "bare tag payload")

	tok = singleToken(t, "#6")
	testutil.NotNil(t, tok.Tag, "major payload")
	testutil.Equal(t, uint64(6), *tok.Tag.Major, "major")
	testutil.Nil(t, tok.Tag.Constraint, "no constraint")

	tok = singleToken(t, "#6.32")
	testutil.NotNil(t, tok.Tag.Constraint, "constraint payload")
	testutil.Equal(t, uint64(32), *tok.Tag.Constraint, "constraint")
}

func TestControlOperators(t *testing.T) {
	tok := singleToken(t, ".size")
	testutil.Equal(t, token.TokCtlOp, tok.Kind, "kind")
	testutil.Equal(t, ".size", tok.Text, "name")

	tok = singleToken(t, ".regexp")
	testutil.Equal(t, ".regexp", tok.Text, "name")
}

func TestComments(t *testing.T) {
	kinds := tokenKinds("a ; rest of line ignored\nb")
	expected := []token.TokenKind{token.TokIdent, token.TokIdent, token.TokEOF}
	testutil.SliceEqual(t, expected, kinds, "token kinds")
}

func TestUnexpectedCharacter(t *testing.T) {
	lexer := New([]byte("`"), nil)
	tokens, diags := lexer.Tokenize()
	testutil.Equal(t, token.TokError, tokens[0].Kind, "error token")
	testutil.NotEmpty(t, diags, "diagnostics")
}

func TestSpans(t *testing.T) {
	lexer := New([]byte("abc = def"), nil)
	tokens, _ := lexer.Tokenize()
	testutil.Len(t, tokens, 4, "token count")
	testutil.Equal(t, token.ByteOffset(0), tokens[0].Span.Start, "first start")
	testutil.Equal(t, token.ByteOffset(3), tokens[0].Span.End, "first end")
	testutil.Equal(t, token.ByteOffset(4), tokens[1].Span.Start, "assign start")
	testutil.Equal(t, token.ByteOffset(6), tokens[2].Span.Start, "second ident start")
	testutil.Equal(t, token.ByteOffset(9), tokens[2].Span.End, "second ident end")
}

func TestRuleShape(t *testing.T) {
	kinds := tokenKinds(`myrule = { key: tstr, ? opt => uint }`)
	expected := []token.TokenKind{
		token.TokIdent, token.TokAssign, token.TokLBrace,
		token.TokIdent, token.TokColon, token.TokIdent, token.TokComma,
		token.TokOptional, token.TokIdent, token.TokArrowMap, token.TokIdent,
		token.TokRBrace, token.TokEOF,
	}
	testutil.SliceEqual(t, expected, kinds, "token kinds")
}

func TestNegativeRadixNumbers(t *testing.T) {
	kinds := tokenKinds("-0x1F -0b101")
	expected := []token.TokenKind{token.TokInt, token.TokInt, token.TokEOF}
	testutil.SliceEqual(t, expected, kinds, "token kinds")

	texts := tokenTexts("-0x1F -0b101")
	testutil.SliceEqual(t, []string{"-0x1F", "-0b101"}, texts, "token texts")

	tok := singleToken(t, "-0x10..0x20")
	testutil.Equal(t, token.TokRange, tok.Kind, "range kind")
	testutil.Equal(t, token.TokInt, tok.Range.Lo.Kind, "negative hex lower bound")
	testutil.Equal(t, token.TokUint, tok.Range.Hi.Kind, "hex upper bound")
}
