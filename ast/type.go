package ast

import (
	"strconv"
	"strings"

	"github.com/golangcbor/gocddl/token"
)

// Type is an ordered, non-empty sequence of type choices joined by "/".
// Choice order is significant: downstream matching is earliest-first.
type Type struct {
	Choices []TypeChoice
	Span    token.Span
}

func (*Type) node() {}

// String renders the choices joined by " / ".
func (t *Type) String() string {
	var b strings.Builder
	for i := range t.Choices {
		if i > 0 {
			b.WriteString(" / ")
		}
		b.WriteString(t.Choices[i].Type1.Type2.String())
	}
	return b.String()
}

// TypeChoice wraps one Type1 alternative within a Type.
type TypeChoice struct {
	Type1 Type1
	Span  token.Span
}

func (*TypeChoice) node() {}

// Type1 is a Type2 plus an optional range or control operator.
type Type1 struct {
	Type2    Type2
	Operator *Operator
	Span     token.Span
}

func (*Type1) node() {}

// Operator is a range or control operator with its right-hand operand.
// Range operators always carry exactly two Type2 bounds: the left bound
// lives on the owning Type1, the right bound here.
type Operator struct {
	Op    RangeCtlOp
	Type2 Type2
	Span  token.Span
}

func (*Operator) node() {}

// RangeCtlOp distinguishes range operators from control operators.
type RangeCtlOp interface {
	rangeCtlOp()
}

// RangeOp is a range operator: ".." (inclusive upper bound) or "..."
// (exclusive upper bound).
type RangeOp struct {
	Inclusive bool
}

func (RangeOp) rangeCtlOp() {}

// CtlOp is a control operator such as ".size" or ".bits". Name includes
// the leading dot.
type CtlOp struct {
	Name string
}

func (CtlOp) rangeCtlOp() {}

// Type2 is the widest variant set of the grammar and the main branch
// point of the parser and visitor. The variant set is closed.
type Type2 interface {
	Node
	Type2Span() token.Span
	String() string
	type2()
}

// Type2IntValue is a negative integer literal.
type Type2IntValue struct {
	Value int64
	Span  token.Span
}

func (t *Type2IntValue) Type2Span() token.Span { return t.Span }
func (t *Type2IntValue) String() string        { return strconv.FormatInt(t.Value, 10) }
func (*Type2IntValue) node()                   {}
func (*Type2IntValue) type2()                  {}

// Type2UintValue is an unsigned integer literal.
type Type2UintValue struct {
	Value uint64
	Span  token.Span
}

func (t *Type2UintValue) Type2Span() token.Span { return t.Span }
func (t *Type2UintValue) String() string        { return strconv.FormatUint(t.Value, 10) }
func (*Type2UintValue) node()                   {}
func (*Type2UintValue) type2()                  {}

// Type2FloatValue is a floating point literal.
type Type2FloatValue struct {
	Value float64
	Span  token.Span
}

func (t *Type2FloatValue) Type2Span() token.Span { return t.Span }
func (t *Type2FloatValue) String() string        { return strconv.FormatFloat(t.Value, 'g', -1, 64) }
func (*Type2FloatValue) node()                   {}
func (*Type2FloatValue) type2()                  {}

// Type2TextValue is a text string literal. Value is stored unescaped.
type Type2TextValue struct {
	Value string
	Span  token.Span
}

func (t *Type2TextValue) Type2Span() token.Span { return t.Span }
func (t *Type2TextValue) String() string        { return strconv.Quote(t.Value) }
func (*Type2TextValue) node()                   {}
func (*Type2TextValue) type2()                  {}

// Type2UTF8ByteString is a '...' byte string literal.
type Type2UTF8ByteString struct {
	Value []byte
	Span  token.Span
}

func (t *Type2UTF8ByteString) Type2Span() token.Span { return t.Span }
func (t *Type2UTF8ByteString) String() string        { return "'" + string(t.Value) + "'" }
func (*Type2UTF8ByteString) node()                   {}
func (*Type2UTF8ByteString) type2()                  {}

// Type2B16ByteString is an h'...' byte string literal.
type Type2B16ByteString struct {
	Value []byte
	Span  token.Span
}

func (t *Type2B16ByteString) Type2Span() token.Span { return t.Span }
func (t *Type2B16ByteString) String() string        { return "h'" + string(t.Value) + "'" }
func (*Type2B16ByteString) node()                   {}
func (*Type2B16ByteString) type2()                  {}

// Type2B64ByteString is a b64'...' byte string literal.
type Type2B64ByteString struct {
	Value []byte
	Span  token.Span
}

func (t *Type2B64ByteString) Type2Span() token.Span { return t.Span }
func (t *Type2B64ByteString) String() string        { return "b64'" + string(t.Value) + "'" }
func (*Type2B64ByteString) node()                   {}
func (*Type2B64ByteString) type2()                  {}

// Type2Typename is a reference to a named type, optionally with generic
// arguments.
type Type2Typename struct {
	Ident       Ident
	GenericArgs *GenericArgs
	Span        token.Span
}

func (t *Type2Typename) Type2Span() token.Span { return t.Span }
func (*Type2Typename) node()                   {}
func (*Type2Typename) type2()                  {}

func (t *Type2Typename) String() string {
	if t.GenericArgs == nil {
		return t.Ident.Name
	}
	var b strings.Builder
	b.WriteString(t.Ident.Name)
	b.WriteByte('<')
	for i := range t.GenericArgs.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.GenericArgs.Args[i].Arg.Type2.String())
	}
	b.WriteByte('>')
	return b.String()
}

// Type2ParenthesizedType is a parenthesized type expression.
type Type2ParenthesizedType struct {
	Type Type
	Span token.Span
}

func (t *Type2ParenthesizedType) Type2Span() token.Span { return t.Span }
func (t *Type2ParenthesizedType) String() string        { return "(" + t.Type.String() + ")" }
func (*Type2ParenthesizedType) node()                   {}
func (*Type2ParenthesizedType) type2()                  {}

// Type2Map is a map composition: a group in braces.
type Type2Map struct {
	Group Group
	Span  token.Span
}

func (t *Type2Map) Type2Span() token.Span { return t.Span }
func (t *Type2Map) String() string        { return "{...}" }
func (*Type2Map) node()                   {}
func (*Type2Map) type2()                  {}

// Type2Array is an array composition: a group in square brackets.
type Type2Array struct {
	Group Group
	Span  token.Span
}

func (t *Type2Array) Type2Span() token.Span { return t.Span }
func (t *Type2Array) String() string        { return "[...]" }
func (*Type2Array) node()                   {}
func (*Type2Array) type2()                  {}

// Type2Unwrap is an unwrap reference: "~typename".
type Type2Unwrap struct {
	Ident       Ident
	GenericArgs *GenericArgs
	Span        token.Span
}

func (t *Type2Unwrap) Type2Span() token.Span { return t.Span }
func (t *Type2Unwrap) String() string        { return "~" + t.Ident.Name }
func (*Type2Unwrap) node()                   {}
func (*Type2Unwrap) type2()                  {}

// Type2ChoiceFromInlineGroup is a choice built from an inline group:
// "&( ... )".
type Type2ChoiceFromInlineGroup struct {
	Group Group
	Span  token.Span
}

func (t *Type2ChoiceFromInlineGroup) Type2Span() token.Span { return t.Span }
func (t *Type2ChoiceFromInlineGroup) String() string        { return "&(...)" }
func (*Type2ChoiceFromInlineGroup) node()                   {}
func (*Type2ChoiceFromInlineGroup) type2()                  {}

// Type2ChoiceFromGroup is a choice built from a named group:
// "&groupname".
type Type2ChoiceFromGroup struct {
	Ident       Ident
	GenericArgs *GenericArgs
	Span        token.Span
}

func (t *Type2ChoiceFromGroup) Type2Span() token.Span { return t.Span }
func (t *Type2ChoiceFromGroup) String() string        { return "&" + t.Ident.Name }
func (*Type2ChoiceFromGroup) node()                   {}
func (*Type2ChoiceFromGroup) type2()                  {}

// Type2TaggedData is a tagged value: "#major.tag(type)". Tag is the
// optional tag constraint after the dot; Type is the optional enclosed
// type expression.
type Type2TaggedData struct {
	Major uint64
	Tag   *uint64
	Type  *Type
	Span  token.Span
}

func (t *Type2TaggedData) Type2Span() token.Span { return t.Span }
func (*Type2TaggedData) node()                   {}
func (*Type2TaggedData) type2()                  {}

func (t *Type2TaggedData) String() string {
	var b strings.Builder
	b.WriteByte('#')
	b.WriteString(strconv.FormatUint(t.Major, 10))
	if t.Tag != nil {
		b.WriteByte('.')
		b.WriteString(strconv.FormatUint(*t.Tag, 10))
	}
	if t.Type != nil {
		b.WriteByte('(')
		b.WriteString(t.Type.String())
		b.WriteByte(')')
	}
	return b.String()
}

// Type2Any is the bare "#" type matching any data item.
type Type2Any struct {
	Span token.Span
}

func (t *Type2Any) Type2Span() token.Span { return t.Span }
func (t *Type2Any) String() string        { return "#" }
func (*Type2Any) node()                   {}
func (*Type2Any) type2()                  {}

// LiteralValue materializes the Value leaf carried by a literal Type2
// variant. Returns false for non-literal variants. The returned node has
// no span of its own; traversal and parent tracking treat it as the
// literal's sole child.
func LiteralValue(t2 Type2) (Value, bool) {
	switch t := t2.(type) {
	case *Type2IntValue:
		return &ValueInt{Value: t.Value}, true
	case *Type2UintValue:
		return &ValueUint{Value: t.Value}, true
	case *Type2FloatValue:
		return &ValueFloat{Value: t.Value}, true
	case *Type2TextValue:
		return &ValueText{Value: t.Value}, true
	case *Type2UTF8ByteString:
		return &ValueBytes{Encoding: EncodingUTF8, Data: t.Value}, true
	case *Type2B16ByteString:
		return &ValueBytes{Encoding: EncodingBase16, Data: t.Value}, true
	case *Type2B64ByteString:
		return &ValueBytes{Encoding: EncodingBase64, Data: t.Value}, true
	}
	return nil, false
}
