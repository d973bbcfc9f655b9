package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golangcbor/gocddl"
)

const checkUsage = `gocddl check - parse documents and report diagnostics

Usage:
  gocddl check [options] <file.cddl>...

Options:
  -q    Suppress per-file summaries, print diagnostics only
`

// cmdCheck parses each file and prints its diagnostics. Exit code is 2
// when any document has error diagnostics, 1 on I/O or usage failure.
func (c *cli) cmdCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, checkUsage) }
	quiet := fs.Bool("q", false, "suppress per-file summaries")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	files := fs.Args()
	if len(files) == 0 {
		fs.Usage()
		return exitError
	}

	opts := c.parseOpts()
	exit := exitOK
	for _, path := range files {
		doc, err := gocddl.ParseFile(path, opts...)

		var parseErr *gocddl.ParseError
		switch {
		case errors.As(err, &parseErr):
			for _, d := range parseErr.Diagnostics {
				fmt.Printf("%s: %s\n", path, d)
			}
			if exit == exitOK {
				exit = exitDiags
			}
		case err != nil:
			printError("%v", err)
			exit = exitError
			continue
		}

		if !*quiet {
			rules := 0
			if doc != nil {
				rules = len(doc.Rules)
			}
			fmt.Printf("%s: %d rule(s)\n", path, rules)
		}
	}
	return exit
}
