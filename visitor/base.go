package visitor

import (
	"github.com/golangcbor/gocddl/ast"
)

// Base is a total Visitor whose every method performs the default walk
// through the embedding visitor. Set Visitor to the outermost visitor so
// that overridden methods are dispatched during descent:
//
//	type counter struct {
//		visitor.Base
//		idents int
//	}
//
//	c := &counter{}
//	c.Visitor = c
//	err := c.VisitCDDL(doc)
type Base struct {
	Visitor Visitor
}

// self returns the dispatch target: the configured outer visitor, or the
// Base itself when none was set.
func (b *Base) self() Visitor {
	if b.Visitor != nil {
		return b.Visitor
	}
	return b
}

func (b *Base) VisitCDDL(c *ast.CDDL) error                        { return WalkCDDL(b.self(), c) }
func (b *Base) VisitRule(r ast.Rule) error                         { return WalkRule(b.self(), r) }
func (b *Base) VisitTypeRule(tr *ast.TypeRule) error               { return WalkTypeRule(b.self(), tr) }
func (b *Base) VisitGroupRule(gr *ast.GroupRule) error             { return WalkGroupRule(b.self(), gr) }
func (b *Base) VisitType(t *ast.Type) error                        { return WalkType(b.self(), t) }
func (b *Base) VisitTypeChoice(tc *ast.TypeChoice) error           { return WalkTypeChoice(b.self(), tc) }
func (b *Base) VisitType1(t1 *ast.Type1) error                     { return WalkType1(b.self(), t1) }
func (b *Base) VisitOperator(o *ast.Operator) error                { return WalkOperator(b.self(), o) }
func (b *Base) VisitType2(t2 ast.Type2) error                      { return WalkType2(b.self(), t2) }
func (b *Base) VisitGroup(g *ast.Group) error                      { return WalkGroup(b.self(), g) }
func (b *Base) VisitGroupChoice(gc *ast.GroupChoice) error         { return WalkGroupChoice(b.self(), gc) }
func (b *Base) VisitGroupEntry(e ast.GroupEntry) error             { return WalkGroupEntry(b.self(), e) }
func (b *Base) VisitValueMemberKeyEntry(e *ast.ValueMemberKeyEntry) error {
	return WalkValueMemberKeyEntry(b.self(), e)
}
func (b *Base) VisitTypeGroupnameEntry(e *ast.TypeGroupnameEntry) error {
	return WalkTypeGroupnameEntry(b.self(), e)
}
func (b *Base) VisitInlineGroupEntry(e *ast.InlineGroupEntry) error {
	return WalkInlineGroupEntry(b.self(), e)
}
func (b *Base) VisitOccurrence(o *ast.Occurrence) error            { return nil }
func (b *Base) VisitMemberKey(mk ast.MemberKey) error              { return WalkMemberKey(b.self(), mk) }
func (b *Base) VisitNonMemberKey(nmk ast.NonMemberKey) error       { return WalkNonMemberKey(b.self(), nmk) }
func (b *Base) VisitGenericParams(gp *ast.GenericParams) error     { return WalkGenericParams(b.self(), gp) }
func (b *Base) VisitGenericParam(p *ast.GenericParam) error        { return WalkGenericParam(b.self(), p) }
func (b *Base) VisitGenericArgs(ga *ast.GenericArgs) error         { return WalkGenericArgs(b.self(), ga) }
func (b *Base) VisitGenericArg(a *ast.GenericArg) error            { return WalkGenericArg(b.self(), a) }
func (b *Base) VisitIdentifier(i *ast.Ident) error                 { return nil }
func (b *Base) VisitValue(v ast.Value) error                       { return nil }
