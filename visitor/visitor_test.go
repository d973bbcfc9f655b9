package visitor

import (
	"errors"
	"testing"

	"github.com/golangcbor/gocddl/ast"
	"github.com/golangcbor/gocddl/internal/testutil"
	"github.com/golangcbor/gocddl/parser"
)

func parseDoc(t *testing.T, source string) *ast.CDDL {
	t.Helper()
	p := parser.New([]byte(source), nil)
	doc, err := p.ParseCDDL()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	for _, d := range p.Diagnostics() {
		if d.IsError() {
			t.Fatalf("unexpected diagnostic: %s", d)
		}
	}
	return doc
}

// countingVisitor overrides the leaf hooks and one interior hook while
// inheriting the default descent for everything else.
type countingVisitor struct {
	Base
	idents    int
	values    int
	typeRules int
}

func newCountingVisitor() *countingVisitor {
	v := &countingVisitor{}
	v.Visitor = v
	return v
}

func (v *countingVisitor) VisitIdentifier(i *ast.Ident) error {
	v.idents++
	return nil
}

func (v *countingVisitor) VisitValue(val ast.Value) error {
	v.values++
	return nil
}

func (v *countingVisitor) VisitTypeRule(tr *ast.TypeRule) error {
	v.typeRules++
	return WalkTypeRule(v, tr)
}

func TestCountingVisitor(t *testing.T) {
	doc := parseDoc(t, `a = b
b = "test"`)

	v := newCountingVisitor()
	err := v.VisitCDDL(doc)
	testutil.True(t, err == nil, "walk error")
	testutil.Equal(t, 2, v.typeRules, "type rules")
	// Rule names a and b, plus the typename reference to b.
	testutil.Equal(t, 3, v.idents, "identifiers")
	// The "test" literal materializes one value leaf.
	testutil.Equal(t, 1, v.values, "values")
}

// orderVisitor records the type2 renderings in visit order.
type orderVisitor struct {
	Base
	seen []string
}

func newOrderVisitor() *orderVisitor {
	v := &orderVisitor{}
	v.Visitor = v
	return v
}

func (v *orderVisitor) VisitType2(t2 ast.Type2) error {
	v.seen = append(v.seen, t2.String())
	return WalkType2(v, t2)
}

func TestRangeVisitsOperatorBeforeLeftBound(t *testing.T) {
	doc := parseDoc(t, "port = 0..65535")

	v := newOrderVisitor()
	err := v.VisitCDDL(doc)
	testutil.True(t, err == nil, "walk error")
	// The range operator's bound is visited before the type1's own
	// left-hand type2.
	testutil.SliceEqual(t, []string{"65535", "0"}, v.seen, "visit order")
}

func TestTypeChoiceOrder(t *testing.T) {
	doc := parseDoc(t, "c = tchoice1 / tchoice2")

	v := newOrderVisitor()
	err := v.VisitCDDL(doc)
	testutil.True(t, err == nil, "walk error")
	testutil.SliceEqual(t, []string{"tchoice1", "tchoice2"}, v.seen, "visit order")
}

// failingVisitor aborts the walk on a matching identifier.
type failingVisitor struct {
	Base
	target  string
	visited []string
}

var errStop = errors.New("stop")

func newFailingVisitor(target string) *failingVisitor {
	v := &failingVisitor{target: target}
	v.Visitor = v
	return v
}

func (v *failingVisitor) VisitIdentifier(i *ast.Ident) error {
	v.visited = append(v.visited, i.Name)
	if i.Name == v.target {
		return errStop
	}
	return nil
}

func TestErrorStopsWalk(t *testing.T) {
	doc := parseDoc(t, "a = x\nb = y\nc = z")

	v := newFailingVisitor("y")
	err := v.VisitCDDL(doc)
	testutil.True(t, errors.Is(err, errStop), "propagated error")
	testutil.SliceEqual(t, []string{"a", "x", "b", "y"}, v.visited, "visited before stop")
}

func TestBaseVisitsEntryPieces(t *testing.T) {
	doc := parseDoc(t, `m = { ? name: tstr, 3*4 uint => any }`)

	v := newCountingVisitor()
	err := v.VisitCDDL(doc)
	testutil.True(t, err == nil, "walk error")
	// Rule name m, bareword key name, the uint key type, and the entry
	// types tstr and any.
	testutil.Equal(t, 5, v.idents, "identifiers")
}

func TestBareBaseIsANoOpWalk(t *testing.T) {
	doc := parseDoc(t, "a = { b: int, (c: tstr) }")

	var v Base
	err := v.VisitCDDL(doc)
	testutil.True(t, err == nil, "walk error")
}
