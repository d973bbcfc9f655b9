// Command gocddl is a CLI tool for checking, dumping, and indexing CDDL
// documents.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/golangcbor/gocddl"
)

// Exit codes.
const (
	exitOK    = 0 // success
	exitError = 1 // user error or processing failure
	exitDiags = 2 // document parsed with error diagnostics
)

const usage = `gocddl - CDDL parser and navigation tool

Usage:
  gocddl <command> [options] <file.cddl>...

Commands:
  check   Parse documents and report diagnostics
  dump    Print the AST of a document as an outline or JSON
  tree    Build the parent index and show its statistics
  version Show version

Common options:
  -v, --verbose     Enable debug logging
  -vv               Enable trace logging (implies -v)
  -h, --help        Show help

Examples:
  gocddl check schema.cddl
  gocddl dump schema.cddl
  gocddl tree -rule person schema.cddl
`

type cli struct {
	verbose  int
	helpFlag bool
}

func main() {
	os.Exit(run())
}

func run() int {
	var c cli
	args := os.Args[1:]
	var cmdArgs []string
	var cmd string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			c.helpFlag = true
		case arg == "-v" || arg == "--verbose":
			if c.verbose < 1 {
				c.verbose = 1
			}
		case arg == "-vv":
			c.verbose = 2
		default:
			if cmd == "" && len(arg) > 0 && arg[0] != '-' {
				cmd = arg
			} else {
				cmdArgs = append(cmdArgs, arg)
			}
		}
	}

	if c.helpFlag && cmd == "" {
		_, _ = fmt.Fprint(os.Stdout, usage)
		return exitOK
	}

	if cmd == "" {
		_, _ = fmt.Fprint(os.Stderr, usage)
		return exitError
	}

	switch cmd {
	case "check":
		return c.cmdCheck(cmdArgs)
	case "dump":
		return c.cmdDump(cmdArgs)
	case "tree":
		return c.cmdTree(cmdArgs)
	case "version":
		printVersion()
		return exitOK
	case "help":
		_, _ = fmt.Fprint(os.Stdout, usage)
		return exitOK
	default:
		_, _ = fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		_, _ = fmt.Fprint(os.Stderr, usage)
		return exitError
	}
}

func (c *cli) setupLogger() *slog.Logger {
	if c.verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if c.verbose >= 2 {
		level = gocddl.LevelTrace
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func (c *cli) parseOpts() []gocddl.Option {
	var opts []gocddl.Option
	if logger := c.setupLogger(); logger != nil {
		opts = append(opts, gocddl.WithLogger(logger))
	}
	return opts
}

func printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("gocddl %s\n", version)
}

func printError(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
