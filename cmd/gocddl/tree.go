package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golangcbor/gocddl"
	"github.com/golangcbor/gocddl/ast"
)

const treeUsage = `gocddl tree - build the parent index and show its statistics

Usage:
  gocddl tree [options] <file.cddl>

Options:
  -rule NAME   Show the child nodes recorded under rule NAME
`

func (c *cli) cmdTree(args []string) int {
	fs := flag.NewFlagSet("tree", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, treeUsage) }
	ruleName := fs.String("rule", "", "show children of this rule")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	files := fs.Args()
	if len(files) != 1 {
		fs.Usage()
		return exitError
	}

	source, err := os.ReadFile(files[0])
	if err != nil {
		printError("%v", err)
		return exitError
	}

	doc, index, err := gocddl.BuildTree(source, c.parseOpts()...)
	if err != nil {
		printError("%v", err)
		return exitError
	}

	fmt.Printf("%s: %d rule(s), %d indexed node(s)\n",
		files[0], len(doc.Rules), index.Len())

	if *ruleName == "" {
		return exitOK
	}

	for _, rule := range doc.Rules {
		if rule.RuleName().Name != *ruleName {
			continue
		}
		for _, child := range index.ChildNodes(rule) {
			fmt.Printf("  %s\n", describeNode(child))
		}
		return exitOK
	}

	printError("rule %q not found", *ruleName)
	return exitError
}

func describeNode(n ast.Node) string {
	switch node := n.(type) {
	case *ast.Ident:
		return fmt.Sprintf("ident %s", node.Name)
	case *ast.Type:
		return fmt.Sprintf("type %s", node)
	case *ast.GenericParams:
		return fmt.Sprintf("params (%d)", len(node.Params))
	case ast.GroupEntry:
		return "entry"
	default:
		return fmt.Sprintf("%T", n)
	}
}
