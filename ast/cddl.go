package ast

import (
	"github.com/golangcbor/gocddl/token"
)

// CDDL is the root node of a parsed document: an ordered sequence of
// rules. Order is semantically significant; rules may reference each
// other both forward and backward.
type CDDL struct {
	Rules []Rule
	Span  token.Span
}

func (*CDDL) node() {}

// Rule is a top-level named binding of an identifier to a type or group
// expression.
type Rule interface {
	Node
	RuleName() Ident
	RuleSpan() token.Span
	rule()
}

// TypeRule binds an identifier to a type expression. IsTypeChoiceAlternate
// is set for "/=" assignments that extend an existing rule's type choices.
type TypeRule struct {
	Name                  Ident
	GenericParams         *GenericParams
	IsTypeChoiceAlternate bool
	Value                 Type
	Span                  token.Span
}

func (r *TypeRule) RuleName() Ident      { return r.Name }
func (r *TypeRule) RuleSpan() token.Span { return r.Span }
func (*TypeRule) node()                  {}
func (*TypeRule) rule()                  {}

// GroupRule binds an identifier to a group expression.
// IsGroupChoiceAlternate is set for "//=" assignments that extend an
// existing rule's group choices.
type GroupRule struct {
	Name                   Ident
	GenericParams          *GenericParams
	IsGroupChoiceAlternate bool
	Entry                  GroupEntry
	Span                   token.Span
}

func (r *GroupRule) RuleName() Ident      { return r.Name }
func (r *GroupRule) RuleSpan() token.Span { return r.Span }
func (*GroupRule) node()                  {}
func (*GroupRule) rule()                  {}

// GenericParams is the parameter list declared at a parametric rule,
// e.g. "<t, v>". Contains at least one parameter.
type GenericParams struct {
	Params []GenericParam
	Span   token.Span
}

func (*GenericParams) node() {}

// GenericParam is a single generic parameter name.
type GenericParam struct {
	Name Ident
	Span token.Span
}

func (*GenericParam) node() {}

// GenericArgs is the argument list at a parametric rule's use site,
// e.g. `<"reboot", "now">`. Each argument is a full Type1 expression.
type GenericArgs struct {
	Args []GenericArg
	Span token.Span
}

func (*GenericArgs) node() {}

// GenericArg is a single generic argument.
type GenericArg struct {
	Arg  Type1
	Span token.Span
}

func (*GenericArg) node() {}
