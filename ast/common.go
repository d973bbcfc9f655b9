// Package ast provides Abstract Syntax Tree types for parsed CDDL documents.
//
// Ownership is strictly top-down: parents own children by value and no
// node holds a reference to its parent. Upward navigation is provided
// separately by the tree package, which overlays a parent index without
// mutating the AST.
package ast

import (
	"fmt"
	"strconv"

	"github.com/golangcbor/gocddl/token"
)

// Node is implemented by every AST node kind that participates in
// traversal and parent tracking. The set of implementations is closed
// and versioned together with the parser.
type Node interface {
	node()
}

// Ident is an identifier with source location.
type Ident struct {
	Name string
	Span token.Span
}

// NewIdent creates a new identifier.
func NewIdent(name string, span token.Span) Ident {
	return Ident{Name: name, Span: span}
}

func (*Ident) node() {}

// String returns the identifier's name.
func (i *Ident) String() string { return i.Name }

// Value is a literal leaf value: the payload of a literal Type2 or a
// literal member key. Value nodes materialized from Type2 literals carry
// no span of their own.
type Value interface {
	Node
	fmt.Stringer
	value()
}

// ValueInt is a negative integer literal value.
type ValueInt struct {
	Value int64
}

func (*ValueInt) node()  {}
func (*ValueInt) value() {}

func (v *ValueInt) String() string { return strconv.FormatInt(v.Value, 10) }

// ValueUint is an unsigned integer literal value.
type ValueUint struct {
	Value uint64
}

func (*ValueUint) node()  {}
func (*ValueUint) value() {}

func (v *ValueUint) String() string { return strconv.FormatUint(v.Value, 10) }

// ValueFloat is a floating point literal value.
type ValueFloat struct {
	Value float64
}

func (*ValueFloat) node()  {}
func (*ValueFloat) value() {}

func (v *ValueFloat) String() string { return strconv.FormatFloat(v.Value, 'g', -1, 64) }

// ValueText is a text string literal value. The payload is stored
// unescaped, without the surrounding quotes.
type ValueText struct {
	Value string
}

func (*ValueText) node()  {}
func (*ValueText) value() {}

func (v *ValueText) String() string { return strconv.Quote(v.Value) }

// ByteStringEncoding identifies the source encoding of a byte string
// literal.
type ByteStringEncoding int

const (
	// EncodingUTF8 is a '...' byte string.
	EncodingUTF8 ByteStringEncoding = iota
	// EncodingBase16 is an h'...' byte string.
	EncodingBase16
	// EncodingBase64 is a b64'...' byte string.
	EncodingBase64
)

// ValueBytes is a byte string literal value in one of the three source
// encodings.
type ValueBytes struct {
	Encoding ByteStringEncoding
	Data     []byte
}

func (*ValueBytes) node()  {}
func (*ValueBytes) value() {}

func (v *ValueBytes) String() string {
	switch v.Encoding {
	case EncodingBase16:
		return fmt.Sprintf("h'%s'", v.Data)
	case EncodingBase64:
		return fmt.Sprintf("b64'%s'", v.Data)
	}
	return fmt.Sprintf("'%s'", v.Data)
}
