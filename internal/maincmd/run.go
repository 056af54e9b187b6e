package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
)

// Run is reserved for a future interpreter (spec.md §6: "run <file> is
// reserved for a future interpreter"). The front end implemented here
// stops at semantic analysis; there is no evaluator yet.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	fmt.Fprintln(stdio.Stderr, "run: not yet implemented, suru has no interpreter yet")
	return errCommandFailed
}
