package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golangcbor/gocddl"
	"github.com/golangcbor/gocddl/ast"
	"github.com/golangcbor/gocddl/visitor"
)

const dumpUsage = `gocddl dump - print the AST of a document

Usage:
  gocddl dump [options] <file.cddl>

Options:
  -json      Output as JSON instead of an indented outline
  -compact   Minified JSON (no indentation), implies -json

Examples:
  gocddl dump schema.cddl
  gocddl dump -json schema.cddl | jq '.rules[].name'
`

func (c *cli) cmdDump(args []string) int {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, dumpUsage) }
	asJSON := fs.Bool("json", false, "output as JSON")
	compact := fs.Bool("compact", false, "minified JSON")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	files := fs.Args()
	if len(files) != 1 {
		fs.Usage()
		return exitError
	}

	doc, err := gocddl.ParseFile(files[0], c.parseOpts()...)
	if err != nil {
		printError("%v", err)
		return exitError
	}

	if *asJSON || *compact {
		out, err := marshalJSON(dumpOutput(doc), !*compact)
		if err != nil {
			printError("%v", err)
			return exitError
		}
		fmt.Println(string(out))
		return exitOK
	}

	ov := newOutlineVisitor(os.Stdout)
	if err := ov.VisitCDDL(doc); err != nil {
		printError("%v", err)
		return exitError
	}
	return exitOK
}

// outlineVisitor prints one line per structural node, indented by depth.
type outlineVisitor struct {
	visitor.Base
	out   io.Writer
	depth int
}

func newOutlineVisitor(out io.Writer) *outlineVisitor {
	v := &outlineVisitor{out: out}
	v.Visitor = v
	return v
}

func (v *outlineVisitor) line(format string, args ...any) {
	indent := strings.Repeat("  ", v.depth)
	_, _ = fmt.Fprintf(v.out, "%s%s\n", indent, fmt.Sprintf(format, args...))
}

func (v *outlineVisitor) descend(walk func() error) error {
	v.depth++
	err := walk()
	v.depth--
	return err
}

func (v *outlineVisitor) VisitTypeRule(tr *ast.TypeRule) error {
	assign := "="
	if tr.IsTypeChoiceAlternate {
		assign = "/="
	}
	v.line("typerule %s %s", tr.Name.Name, assign)
	return v.descend(func() error { return visitor.WalkTypeRule(v, tr) })
}

func (v *outlineVisitor) VisitGroupRule(gr *ast.GroupRule) error {
	v.line("grouprule %s //=", gr.Name.Name)
	return v.descend(func() error { return visitor.WalkGroupRule(v, gr) })
}

func (v *outlineVisitor) VisitType1(t1 *ast.Type1) error {
	if t1.Operator != nil {
		switch op := t1.Operator.Op.(type) {
		case ast.RangeOp:
			bound := "inclusive"
			if !op.Inclusive {
				bound = "exclusive"
			}
			v.line("range (%s)", bound)
		case ast.CtlOp:
			v.line("control %s", op.Name)
		}
		return v.descend(func() error { return visitor.WalkType1(v, t1) })
	}
	return visitor.WalkType1(v, t1)
}

func (v *outlineVisitor) VisitType2(t2 ast.Type2) error {
	switch t := t2.(type) {
	case *ast.Type2Map:
		v.line("map")
	case *ast.Type2Array:
		v.line("array")
	case *ast.Type2ChoiceFromInlineGroup:
		v.line("choice-from-group")
	case *ast.Type2ChoiceFromGroup:
		v.line("choice-from-group %s", t.Ident.Name)
	case *ast.Type2Unwrap:
		v.line("unwrap %s", t.Ident.Name)
	default:
		v.line("%s", t2.String())
	}
	return v.descend(func() error { return visitor.WalkType2(v, t2) })
}

func (v *outlineVisitor) VisitValueMemberKeyEntry(e *ast.ValueMemberKeyEntry) error {
	switch key := e.MemberKey.(type) {
	case *ast.MemberKeyBareword:
		v.line("entry %s:", key.Ident.Name)
	case *ast.MemberKeyValue:
		v.line("entry %s:", key.Value)
	case *ast.MemberKeyType1:
		cut := ""
		if key.IsCut {
			cut = " ^"
		}
		v.line("entry <type1>%s =>", cut)
	default:
		v.line("entry")
	}
	return v.descend(func() error { return visitor.WalkValueMemberKeyEntry(v, e) })
}

func (v *outlineVisitor) VisitTypeGroupnameEntry(e *ast.TypeGroupnameEntry) error {
	v.line("name %s", e.Name.Name)
	return v.descend(func() error { return visitor.WalkTypeGroupnameEntry(v, e) })
}

func (v *outlineVisitor) VisitInlineGroupEntry(e *ast.InlineGroupEntry) error {
	v.line("group")
	return v.descend(func() error { return visitor.WalkInlineGroupEntry(v, e) })
}

func (v *outlineVisitor) VisitOccurrence(o *ast.Occurrence) error {
	switch o.Kind {
	case ast.OccurOptional:
		v.line("occur ?")
	case ast.OccurZeroOrMore:
		v.line("occur *")
	case ast.OccurOneOrMore:
		v.line("occur +")
	case ast.OccurExact:
		lower, upper := "", ""
		if o.Lower != nil {
			lower = fmt.Sprintf("%d", *o.Lower)
		}
		if o.Upper != nil {
			upper = fmt.Sprintf("%d", *o.Upper)
		}
		v.line("occur %s*%s", lower, upper)
	}
	return nil
}

func (v *outlineVisitor) VisitGenericParams(gp *ast.GenericParams) error {
	names := make([]string, len(gp.Params))
	for i := range gp.Params {
		names[i] = gp.Params[i].Name.Name
	}
	v.line("params <%s>", strings.Join(names, ", "))
	return nil
}
