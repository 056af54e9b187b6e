package maincmd

import (
	"context"
	"os"

	"github.com/mna/mainer"

	"github.com/suru-lang/suru/lang/ast"
	"github.com/suru-lang/suru/lang/diag"
	"github.com/suru-lang/suru/lang/intern"
	"github.com/suru-lang/suru/lang/parser"
)

// Parse runs the parser phase over each file and prints the resulting AST
// (spec.md §6: "parse <file> prints the AST tree").
func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(stdio, c.Pos, c.Config.ParserMaxDepth(), c.Config.SortDiagnostics, args...)
}

func ParseFiles(stdio mainer.Stdio, printPos bool, maxDepth int, sortDiags bool, files ...string) error {
	printer := ast.Printer{Output: stdio.Stdout, Pos: printPos}

	var failed bool
	for _, name := range files {
		src, err := os.ReadFile(name)
		if err != nil {
			printError(stdio, err)
			failed = true
			continue
		}

		pool := intern.New(64)
		tree, perr := parser.Parse(name, src, pool, maxDepth)
		if err := printer.Print(tree); err != nil {
			printError(stdio, err)
			return err
		}
		if perr != nil {
			if bag, ok := perr.(*diag.Bag); ok && sortDiags {
				bag.Sort()
			}
			printError(stdio, perr)
			failed = true
		}
	}
	if failed {
		return errCommandFailed
	}
	return nil
}
