package tree

import (
	"log/slog"

	"github.com/golangcbor/gocddl/ast"
	"github.com/golangcbor/gocddl/internal/logging"
	"github.com/golangcbor/gocddl/visitor"
)

// parentVisitor is the Visitor that populates the arena during Build.
// Every method interns the visited node, interns and links each direct
// child in grammar order, then descends.
type parentVisitor struct {
	tree           *Tree
	failOnReparent bool
	logging.Logger
}

var _ visitor.Visitor = (*parentVisitor)(nil)

// insert interns the child, links it under parent, and traces the edge.
func (pv *parentVisitor) insert(parent int, child ast.Node) (int, error) {
	idx := pv.tree.intern(child)
	if err := pv.tree.link(parent, idx, pv.failOnReparent); err != nil {
		return 0, err
	}
	if pv.TraceEnabled() {
		pv.Trace("edge",
			slog.Int("parent", parent),
			slog.Int("child", idx))
	}
	return idx, nil
}

func (pv *parentVisitor) VisitCDDL(c *ast.CDDL) error {
	parent := pv.tree.intern(c)
	for _, rule := range c.Rules {
		if _, err := pv.insert(parent, rule); err != nil {
			return err
		}
		if err := pv.VisitRule(rule); err != nil {
			return err
		}
	}
	return nil
}

// VisitRule dispatches to the concrete rule kind. A Rule interface value
// and its concrete node are the same arena slot, so no extra edge is
// recorded here.
func (pv *parentVisitor) VisitRule(r ast.Rule) error {
	return visitor.WalkRule(pv, r)
}

func (pv *parentVisitor) VisitTypeRule(tr *ast.TypeRule) error {
	parent := pv.tree.intern(tr)

	if _, err := pv.insert(parent, &tr.Name); err != nil {
		return err
	}
	if tr.GenericParams != nil {
		if _, err := pv.insert(parent, tr.GenericParams); err != nil {
			return err
		}
		if err := pv.VisitGenericParams(tr.GenericParams); err != nil {
			return err
		}
	}
	if _, err := pv.insert(parent, &tr.Value); err != nil {
		return err
	}
	return pv.VisitType(&tr.Value)
}

func (pv *parentVisitor) VisitGroupRule(gr *ast.GroupRule) error {
	parent := pv.tree.intern(gr)

	if _, err := pv.insert(parent, &gr.Name); err != nil {
		return err
	}
	if gr.GenericParams != nil {
		if _, err := pv.insert(parent, gr.GenericParams); err != nil {
			return err
		}
		if err := pv.VisitGenericParams(gr.GenericParams); err != nil {
			return err
		}
	}
	if _, err := pv.insert(parent, gr.Entry); err != nil {
		return err
	}
	return pv.VisitGroupEntry(gr.Entry)
}

func (pv *parentVisitor) VisitType(t *ast.Type) error {
	parent := pv.tree.intern(t)
	for i := range t.Choices {
		tc := &t.Choices[i]
		if _, err := pv.insert(parent, tc); err != nil {
			return err
		}
		if err := pv.VisitTypeChoice(tc); err != nil {
			return err
		}
	}
	return nil
}

func (pv *parentVisitor) VisitTypeChoice(tc *ast.TypeChoice) error {
	parent := pv.tree.intern(tc)
	if _, err := pv.insert(parent, &tc.Type1); err != nil {
		return err
	}
	return pv.VisitType1(&tc.Type1)
}

func (pv *parentVisitor) VisitType1(t1 *ast.Type1) error {
	parent := pv.tree.intern(t1)

	if t1.Operator != nil {
		if _, err := pv.insert(parent, t1.Operator); err != nil {
			return err
		}
		if err := pv.VisitOperator(t1.Operator); err != nil {
			return err
		}
	}
	if _, err := pv.insert(parent, t1.Type2); err != nil {
		return err
	}
	return pv.VisitType2(t1.Type2)
}

func (pv *parentVisitor) VisitOperator(o *ast.Operator) error {
	parent := pv.tree.intern(o)
	if _, err := pv.insert(parent, o.Type2); err != nil {
		return err
	}
	return pv.VisitType2(o.Type2)
}

func (pv *parentVisitor) VisitType2(t2 ast.Type2) error {
	parent := pv.tree.intern(t2)

	if val, ok := ast.LiteralValue(t2); ok {
		if _, err := pv.insert(parent, val); err != nil {
			return err
		}
		return pv.VisitValue(val)
	}

	switch t := t2.(type) {
	case *ast.Type2Typename:
		if _, err := pv.insert(parent, &t.Ident); err != nil {
			return err
		}
		if t.GenericArgs != nil {
			if _, err := pv.insert(parent, t.GenericArgs); err != nil {
				return err
			}
			return pv.VisitGenericArgs(t.GenericArgs)
		}
	case *ast.Type2ParenthesizedType:
		if _, err := pv.insert(parent, &t.Type); err != nil {
			return err
		}
		return pv.VisitType(&t.Type)
	case *ast.Type2Map:
		if _, err := pv.insert(parent, &t.Group); err != nil {
			return err
		}
		return pv.VisitGroup(&t.Group)
	case *ast.Type2Array:
		if _, err := pv.insert(parent, &t.Group); err != nil {
			return err
		}
		return pv.VisitGroup(&t.Group)
	case *ast.Type2Unwrap:
		if _, err := pv.insert(parent, &t.Ident); err != nil {
			return err
		}
		if t.GenericArgs != nil {
			if _, err := pv.insert(parent, t.GenericArgs); err != nil {
				return err
			}
			return pv.VisitGenericArgs(t.GenericArgs)
		}
	case *ast.Type2ChoiceFromInlineGroup:
		if _, err := pv.insert(parent, &t.Group); err != nil {
			return err
		}
		return pv.VisitGroup(&t.Group)
	case *ast.Type2ChoiceFromGroup:
		if _, err := pv.insert(parent, &t.Ident); err != nil {
			return err
		}
		if t.GenericArgs != nil {
			if _, err := pv.insert(parent, t.GenericArgs); err != nil {
				return err
			}
			return pv.VisitGenericArgs(t.GenericArgs)
		}
	case *ast.Type2TaggedData:
		if t.Type != nil {
			if _, err := pv.insert(parent, t.Type); err != nil {
				return err
			}
			return pv.VisitType(t.Type)
		}
	case *ast.Type2Any:
		// leaf
	}
	return nil
}

func (pv *parentVisitor) VisitGroup(g *ast.Group) error {
	parent := pv.tree.intern(g)
	for i := range g.Choices {
		gc := &g.Choices[i]
		if _, err := pv.insert(parent, gc); err != nil {
			return err
		}
		if err := pv.VisitGroupChoice(gc); err != nil {
			return err
		}
	}
	return nil
}

func (pv *parentVisitor) VisitGroupChoice(gc *ast.GroupChoice) error {
	parent := pv.tree.intern(gc)
	for i := range gc.Entries {
		entry := gc.Entries[i].Entry
		if _, err := pv.insert(parent, entry); err != nil {
			return err
		}
		if err := pv.VisitGroupEntry(entry); err != nil {
			return err
		}
	}
	return nil
}

// VisitGroupEntry dispatches to the concrete entry kind; like rules, an
// entry interface value and its concrete node share one arena slot.
func (pv *parentVisitor) VisitGroupEntry(e ast.GroupEntry) error {
	return visitor.WalkGroupEntry(pv, e)
}

func (pv *parentVisitor) VisitValueMemberKeyEntry(e *ast.ValueMemberKeyEntry) error {
	parent := pv.tree.intern(e)

	if e.Occur != nil {
		if _, err := pv.insert(parent, e.Occur); err != nil {
			return err
		}
		if err := pv.VisitOccurrence(e.Occur); err != nil {
			return err
		}
	}
	if e.MemberKey != nil {
		if _, err := pv.insert(parent, e.MemberKey); err != nil {
			return err
		}
		if err := pv.VisitMemberKey(e.MemberKey); err != nil {
			return err
		}
	}
	if _, err := pv.insert(parent, &e.EntryType); err != nil {
		return err
	}
	return pv.VisitType(&e.EntryType)
}

func (pv *parentVisitor) VisitTypeGroupnameEntry(e *ast.TypeGroupnameEntry) error {
	parent := pv.tree.intern(e)

	if e.Occur != nil {
		if _, err := pv.insert(parent, e.Occur); err != nil {
			return err
		}
		if err := pv.VisitOccurrence(e.Occur); err != nil {
			return err
		}
	}
	if e.GenericArgs != nil {
		if _, err := pv.insert(parent, e.GenericArgs); err != nil {
			return err
		}
		if err := pv.VisitGenericArgs(e.GenericArgs); err != nil {
			return err
		}
	}
	if _, err := pv.insert(parent, &e.Name); err != nil {
		return err
	}
	return pv.VisitIdentifier(&e.Name)
}

func (pv *parentVisitor) VisitInlineGroupEntry(e *ast.InlineGroupEntry) error {
	parent := pv.tree.intern(e)

	if e.Occur != nil {
		if _, err := pv.insert(parent, e.Occur); err != nil {
			return err
		}
		if err := pv.VisitOccurrence(e.Occur); err != nil {
			return err
		}
	}
	if _, err := pv.insert(parent, &e.Group); err != nil {
		return err
	}
	return pv.VisitGroup(&e.Group)
}

func (pv *parentVisitor) VisitOccurrence(o *ast.Occurrence) error {
	return nil
}

func (pv *parentVisitor) VisitMemberKey(mk ast.MemberKey) error {
	parent := pv.tree.intern(mk)

	switch key := mk.(type) {
	case *ast.MemberKeyType1:
		if _, err := pv.insert(parent, &key.Type1); err != nil {
			return err
		}
		return pv.VisitType1(&key.Type1)
	case *ast.MemberKeyBareword:
		if _, err := pv.insert(parent, &key.Ident); err != nil {
			return err
		}
		return pv.VisitIdentifier(&key.Ident)
	case *ast.MemberKeyValue:
		if _, err := pv.insert(parent, key.Value); err != nil {
			return err
		}
		return pv.VisitValue(key.Value)
	case *ast.MemberKeyNonMember:
		if _, err := pv.insert(parent, key.NonMemberKey); err != nil {
			return err
		}
		return pv.VisitNonMemberKey(key.NonMemberKey)
	}
	return nil
}

func (pv *parentVisitor) VisitNonMemberKey(nmk ast.NonMemberKey) error {
	parent := pv.tree.intern(nmk)

	switch key := nmk.(type) {
	case *ast.NonMemberKeyGroup:
		if _, err := pv.insert(parent, &key.Group); err != nil {
			return err
		}
		return pv.VisitGroup(&key.Group)
	case *ast.NonMemberKeyType:
		if _, err := pv.insert(parent, &key.Type); err != nil {
			return err
		}
		return pv.VisitType(&key.Type)
	}
	return nil
}

func (pv *parentVisitor) VisitGenericParams(gp *ast.GenericParams) error {
	parent := pv.tree.intern(gp)
	for i := range gp.Params {
		p := &gp.Params[i]
		if _, err := pv.insert(parent, p); err != nil {
			return err
		}
		if err := pv.VisitGenericParam(p); err != nil {
			return err
		}
	}
	return nil
}

func (pv *parentVisitor) VisitGenericParam(p *ast.GenericParam) error {
	parent := pv.tree.intern(p)
	if _, err := pv.insert(parent, &p.Name); err != nil {
		return err
	}
	return pv.VisitIdentifier(&p.Name)
}

func (pv *parentVisitor) VisitGenericArgs(ga *ast.GenericArgs) error {
	parent := pv.tree.intern(ga)
	for i := range ga.Args {
		a := &ga.Args[i]
		if _, err := pv.insert(parent, a); err != nil {
			return err
		}
		if err := pv.VisitGenericArg(a); err != nil {
			return err
		}
	}
	return nil
}

func (pv *parentVisitor) VisitGenericArg(a *ast.GenericArg) error {
	parent := pv.tree.intern(a)
	if _, err := pv.insert(parent, &a.Arg); err != nil {
		return err
	}
	return pv.VisitType1(&a.Arg)
}

func (pv *parentVisitor) VisitIdentifier(i *ast.Ident) error {
	return nil
}

func (pv *parentVisitor) VisitValue(v ast.Value) error {
	return nil
}
