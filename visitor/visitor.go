// Package visitor provides generic traversal over the CDDL AST.
//
// Visitor has one method per node kind. The Walk functions implement the
// default descent for each kind, visiting direct children in grammar
// order. Concrete visitors embed Base and override only the methods they
// need; unoverridden methods fall back to the default walk, so every
// node stays reachable regardless of which subset is implemented.
package visitor

import (
	"github.com/golangcbor/gocddl/ast"
)

// Visitor is the capability interface for AST traversal: one method per
// node kind, mirroring the grammar's closed variant set.
type Visitor interface {
	VisitCDDL(c *ast.CDDL) error
	VisitRule(r ast.Rule) error
	VisitTypeRule(tr *ast.TypeRule) error
	VisitGroupRule(gr *ast.GroupRule) error
	VisitType(t *ast.Type) error
	VisitTypeChoice(tc *ast.TypeChoice) error
	VisitType1(t1 *ast.Type1) error
	VisitOperator(o *ast.Operator) error
	VisitType2(t2 ast.Type2) error
	VisitGroup(g *ast.Group) error
	VisitGroupChoice(gc *ast.GroupChoice) error
	VisitGroupEntry(e ast.GroupEntry) error
	VisitValueMemberKeyEntry(e *ast.ValueMemberKeyEntry) error
	VisitTypeGroupnameEntry(e *ast.TypeGroupnameEntry) error
	VisitInlineGroupEntry(e *ast.InlineGroupEntry) error
	VisitOccurrence(o *ast.Occurrence) error
	VisitMemberKey(mk ast.MemberKey) error
	VisitNonMemberKey(nmk ast.NonMemberKey) error
	VisitGenericParams(gp *ast.GenericParams) error
	VisitGenericParam(p *ast.GenericParam) error
	VisitGenericArgs(ga *ast.GenericArgs) error
	VisitGenericArg(a *ast.GenericArg) error
	VisitIdentifier(i *ast.Ident) error
	VisitValue(v ast.Value) error
}

// WalkCDDL visits each rule of the document in order.
func WalkCDDL(v Visitor, c *ast.CDDL) error {
	for _, r := range c.Rules {
		if err := v.VisitRule(r); err != nil {
			return err
		}
	}
	return nil
}

// WalkRule dispatches to the concrete rule kind.
func WalkRule(v Visitor, r ast.Rule) error {
	switch rule := r.(type) {
	case *ast.TypeRule:
		return v.VisitTypeRule(rule)
	case *ast.GroupRule:
		return v.VisitGroupRule(rule)
	}
	return nil
}

// WalkTypeRule visits name, generic params, then the rule's type.
func WalkTypeRule(v Visitor, tr *ast.TypeRule) error {
	if err := v.VisitIdentifier(&tr.Name); err != nil {
		return err
	}
	if tr.GenericParams != nil {
		if err := v.VisitGenericParams(tr.GenericParams); err != nil {
			return err
		}
	}
	return v.VisitType(&tr.Value)
}

// WalkGroupRule visits name, generic params, then the rule's entry.
func WalkGroupRule(v Visitor, gr *ast.GroupRule) error {
	if err := v.VisitIdentifier(&gr.Name); err != nil {
		return err
	}
	if gr.GenericParams != nil {
		if err := v.VisitGenericParams(gr.GenericParams); err != nil {
			return err
		}
	}
	return v.VisitGroupEntry(gr.Entry)
}

// WalkType visits each type choice in order.
func WalkType(v Visitor, t *ast.Type) error {
	for i := range t.Choices {
		if err := v.VisitTypeChoice(&t.Choices[i]); err != nil {
			return err
		}
	}
	return nil
}

// WalkTypeChoice visits the choice's Type1.
func WalkTypeChoice(v Visitor, tc *ast.TypeChoice) error {
	return v.VisitType1(&tc.Type1)
}

// WalkType1 visits the operator (when present), then the Type2.
func WalkType1(v Visitor, t1 *ast.Type1) error {
	if t1.Operator != nil {
		if err := v.VisitOperator(t1.Operator); err != nil {
			return err
		}
	}
	return v.VisitType2(t1.Type2)
}

// WalkOperator visits the operator's right-hand Type2 operand.
func WalkOperator(v Visitor, o *ast.Operator) error {
	return v.VisitType2(o.Type2)
}

// WalkType2 descends into the children of the concrete Type2 variant.
// Literal variants have a single materialized Value child.
func WalkType2(v Visitor, t2 ast.Type2) error {
	if val, ok := ast.LiteralValue(t2); ok {
		return v.VisitValue(val)
	}
	switch t := t2.(type) {
	case *ast.Type2Typename:
		if err := v.VisitIdentifier(&t.Ident); err != nil {
			return err
		}
		if t.GenericArgs != nil {
			return v.VisitGenericArgs(t.GenericArgs)
		}
	case *ast.Type2ParenthesizedType:
		return v.VisitType(&t.Type)
	case *ast.Type2Map:
		return v.VisitGroup(&t.Group)
	case *ast.Type2Array:
		return v.VisitGroup(&t.Group)
	case *ast.Type2Unwrap:
		if err := v.VisitIdentifier(&t.Ident); err != nil {
			return err
		}
		if t.GenericArgs != nil {
			return v.VisitGenericArgs(t.GenericArgs)
		}
	case *ast.Type2ChoiceFromInlineGroup:
		return v.VisitGroup(&t.Group)
	case *ast.Type2ChoiceFromGroup:
		if err := v.VisitIdentifier(&t.Ident); err != nil {
			return err
		}
		if t.GenericArgs != nil {
			return v.VisitGenericArgs(t.GenericArgs)
		}
	case *ast.Type2TaggedData:
		if t.Type != nil {
			return v.VisitType(t.Type)
		}
	case *ast.Type2Any:
		// leaf
	}
	return nil
}

// WalkGroup visits each group choice in order.
func WalkGroup(v Visitor, g *ast.Group) error {
	for i := range g.Choices {
		if err := v.VisitGroupChoice(&g.Choices[i]); err != nil {
			return err
		}
	}
	return nil
}

// WalkGroupChoice visits each entry in order.
func WalkGroupChoice(v Visitor, gc *ast.GroupChoice) error {
	for i := range gc.Entries {
		if err := v.VisitGroupEntry(gc.Entries[i].Entry); err != nil {
			return err
		}
	}
	return nil
}

// WalkGroupEntry dispatches to the concrete entry kind.
func WalkGroupEntry(v Visitor, e ast.GroupEntry) error {
	switch entry := e.(type) {
	case *ast.ValueMemberKeyEntry:
		return v.VisitValueMemberKeyEntry(entry)
	case *ast.TypeGroupnameEntry:
		return v.VisitTypeGroupnameEntry(entry)
	case *ast.InlineGroupEntry:
		return v.VisitInlineGroupEntry(entry)
	}
	return nil
}

// WalkValueMemberKeyEntry visits occurrence, member key, then entry type.
func WalkValueMemberKeyEntry(v Visitor, e *ast.ValueMemberKeyEntry) error {
	if e.Occur != nil {
		if err := v.VisitOccurrence(e.Occur); err != nil {
			return err
		}
	}
	if e.MemberKey != nil {
		if err := v.VisitMemberKey(e.MemberKey); err != nil {
			return err
		}
	}
	return v.VisitType(&e.EntryType)
}

// WalkTypeGroupnameEntry visits occurrence, generic args, then the name.
func WalkTypeGroupnameEntry(v Visitor, e *ast.TypeGroupnameEntry) error {
	if e.Occur != nil {
		if err := v.VisitOccurrence(e.Occur); err != nil {
			return err
		}
	}
	if e.GenericArgs != nil {
		if err := v.VisitGenericArgs(e.GenericArgs); err != nil {
			return err
		}
	}
	return v.VisitIdentifier(&e.Name)
}

// WalkInlineGroupEntry visits occurrence, then the nested group.
func WalkInlineGroupEntry(v Visitor, e *ast.InlineGroupEntry) error {
	if e.Occur != nil {
		if err := v.VisitOccurrence(e.Occur); err != nil {
			return err
		}
	}
	return v.VisitGroup(&e.Group)
}

// WalkMemberKey dispatches to the concrete member key kind.
func WalkMemberKey(v Visitor, mk ast.MemberKey) error {
	switch key := mk.(type) {
	case *ast.MemberKeyType1:
		return v.VisitType1(&key.Type1)
	case *ast.MemberKeyBareword:
		return v.VisitIdentifier(&key.Ident)
	case *ast.MemberKeyValue:
		return v.VisitValue(key.Value)
	case *ast.MemberKeyNonMember:
		return v.VisitNonMemberKey(key.NonMemberKey)
	}
	return nil
}

// WalkNonMemberKey dispatches to the wrapped group or type.
func WalkNonMemberKey(v Visitor, nmk ast.NonMemberKey) error {
	switch key := nmk.(type) {
	case *ast.NonMemberKeyGroup:
		return v.VisitGroup(&key.Group)
	case *ast.NonMemberKeyType:
		return v.VisitType(&key.Type)
	}
	return nil
}

// WalkGenericParams visits each parameter in order.
func WalkGenericParams(v Visitor, gp *ast.GenericParams) error {
	for i := range gp.Params {
		if err := v.VisitGenericParam(&gp.Params[i]); err != nil {
			return err
		}
	}
	return nil
}

// WalkGenericParam visits the parameter's identifier.
func WalkGenericParam(v Visitor, p *ast.GenericParam) error {
	return v.VisitIdentifier(&p.Name)
}

// WalkGenericArgs visits each argument in order.
func WalkGenericArgs(v Visitor, ga *ast.GenericArgs) error {
	for i := range ga.Args {
		if err := v.VisitGenericArg(&ga.Args[i]); err != nil {
			return err
		}
	}
	return nil
}

// WalkGenericArg visits the argument's Type1.
func WalkGenericArg(v Visitor, a *ast.GenericArg) error {
	return v.VisitType1(&a.Arg)
}
