package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/suru-lang/suru/lang/diag"
	"github.com/suru-lang/suru/lang/intern"
	"github.com/suru-lang/suru/lang/scanner"
	"github.com/suru-lang/suru/lang/token"
)

// Lex runs the scanner phase over each file and prints the resulting
// tokens (spec.md §6: "lex <file> prints tokens").
func (c *Cmd) Lex(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return LexFiles(stdio, c.Config.SortDiagnostics, args...)
}

func LexFiles(stdio mainer.Stdio, sortDiags bool, files ...string) error {
	var failed bool
	for _, name := range files {
		src, err := os.ReadFile(name)
		if err != nil {
			printError(stdio, err)
			failed = true
			continue
		}
		if lexFile(stdio, name, src, sortDiags) {
			failed = true
		}
	}
	if failed {
		return errCommandFailed
	}
	return nil
}

func lexFile(stdio mainer.Stdio, name string, src []byte, sortDiags bool) (failed bool) {
	var bag diag.Bag
	pool := intern.New(64)

	var sc scanner.Scanner
	sc.Init(src, pool, bag.Add)

	var val token.Value
	for {
		tok := sc.Scan(&val)
		fmt.Fprintf(stdio.Stdout, "%s: %s", val.Pos, tok)
		if lit := tok.Literal(val); lit != "" {
			fmt.Fprintf(stdio.Stdout, " %s", lit)
		}
		fmt.Fprintln(stdio.Stdout)
		if tok == token.EOF {
			break
		}
	}

	if sortDiags {
		bag.Sort()
	}
	for _, d := range bag.All() {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", name, d.Error())
	}
	return bag.Len() > 0
}
