package ast

import (
	"github.com/golangcbor/gocddl/token"
)

// Group is an ordered, non-empty sequence of group choices joined by "//".
type Group struct {
	Choices []GroupChoice
	Span    token.Span
}

func (*Group) node() {}

// GroupChoice is one alternative within a group: an ordered sequence of
// entries, each with a trailing-comma flag. Entry order and the comma
// flags are preserved for faithful re-serialization downstream.
type GroupChoice struct {
	Entries []GroupChoiceEntry
	Span    token.Span
}

func (*GroupChoice) node() {}

// GroupChoiceEntry pairs a group entry with its trailing-comma flag.
type GroupChoiceEntry struct {
	Entry         GroupEntry
	TrailingComma bool
}

// GroupEntry is a single member of a group choice, optionally prefixed
// by an occurrence indicator.
type GroupEntry interface {
	Node
	GroupEntrySpan() token.Span
	groupEntry()
}

// ValueMemberKeyEntry is a group entry with an optional member key and a
// type expression: "occur? memberkey? type".
type ValueMemberKeyEntry struct {
	Occur     *Occurrence
	MemberKey MemberKey // nil when the entry has no key
	EntryType Type
	Span      token.Span
}

func (e *ValueMemberKeyEntry) GroupEntrySpan() token.Span { return e.Span }
func (*ValueMemberKeyEntry) node()                        {}
func (*ValueMemberKeyEntry) groupEntry()                  {}

// TypeGroupnameEntry is a group entry referencing a named type or group,
// optionally with generic arguments: "occur? name genericargs?".
type TypeGroupnameEntry struct {
	Occur       *Occurrence
	Name        Ident
	GenericArgs *GenericArgs
	Span        token.Span
}

func (e *TypeGroupnameEntry) GroupEntrySpan() token.Span { return e.Span }
func (*TypeGroupnameEntry) node()                        {}
func (*TypeGroupnameEntry) groupEntry()                  {}

// InlineGroupEntry is a parenthesized group nested as a group entry:
// "occur? ( group )".
type InlineGroupEntry struct {
	Occur *Occurrence
	Group Group
	Span  token.Span
}

func (e *InlineGroupEntry) GroupEntrySpan() token.Span { return e.Span }
func (*InlineGroupEntry) node()                        {}
func (*InlineGroupEntry) groupEntry()                  {}

// OccurrenceKind identifies the repetition form of an occurrence
// indicator.
type OccurrenceKind int

const (
	// OccurOptional is "?" (zero or one).
	OccurOptional OccurrenceKind = iota
	// OccurZeroOrMore is "*".
	OccurZeroOrMore
	// OccurOneOrMore is "+".
	OccurOneOrMore
	// OccurExact is "n*m" with optional lower and upper bounds.
	OccurExact
)

// Occurrence is a repetition indicator prefixed to a group entry.
// Lower and Upper are set only for OccurExact, and either may be nil
// when the bound is open.
type Occurrence struct {
	Kind  OccurrenceKind
	Lower *uint64
	Upper *uint64
	Span  token.Span
}

func (*Occurrence) node() {}

// MemberKey is the key-position expression in a map-like group entry.
type MemberKey interface {
	Node
	MemberKeySpan() token.Span
	memberKey()
}

// MemberKeyType1 is a type-expression member key: "type1 =>", with an
// optional cut ("^ =>").
type MemberKeyType1 struct {
	Type1 Type1
	IsCut bool
	Span  token.Span
}

func (m *MemberKeyType1) MemberKeySpan() token.Span { return m.Span }
func (*MemberKeyType1) node()                       {}
func (*MemberKeyType1) memberKey()                  {}

// MemberKeyBareword is a bareword identifier member key: "name :".
type MemberKeyBareword struct {
	Ident Ident
	Span  token.Span
}

func (m *MemberKeyBareword) MemberKeySpan() token.Span { return m.Span }
func (*MemberKeyBareword) node()                       {}
func (*MemberKeyBareword) memberKey()                  {}

// MemberKeyValue is a literal value member key: `"label" :` or `1 :`.
type MemberKeyValue struct {
	Value Value
	Span  token.Span
}

func (m *MemberKeyValue) MemberKeySpan() token.Span { return m.Span }
func (*MemberKeyValue) node()                       {}
func (*MemberKeyValue) memberKey()                  {}

// MemberKeyNonMember wraps a nested group or type appearing in key
// position without acting as a member key.
type MemberKeyNonMember struct {
	NonMemberKey NonMemberKey
	Span         token.Span
}

func (m *MemberKeyNonMember) MemberKeySpan() token.Span { return m.Span }
func (*MemberKeyNonMember) node()                       {}
func (*MemberKeyNonMember) memberKey()                  {}

// NonMemberKey is the payload of a MemberKeyNonMember: a group or a type.
type NonMemberKey interface {
	Node
	nonMemberKey()
}

// NonMemberKeyGroup is a group in non-member-key position.
type NonMemberKeyGroup struct {
	Group Group
	Span  token.Span
}

func (*NonMemberKeyGroup) node()         {}
func (*NonMemberKeyGroup) nonMemberKey() {}

// NonMemberKeyType is a type in non-member-key position.
type NonMemberKeyType struct {
	Type Type
	Span token.Span
}

func (*NonMemberKeyType) node()         {}
func (*NonMemberKeyType) nonMemberKey() {}
