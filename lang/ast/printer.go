package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer controls pretty-printing of a Tree's nodes, one indented line
// per node in depth-first order.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer

	// Pos, if true, prints each node's position alongside its tag.
	Pos bool
}

// Print writes a depth-indented dump of t to p.Output, one line per node:
// the tag name, its position (if p.Pos) and, for literal nodes, the raw
// token text.
func (p *Printer) Print(t *Tree) error {
	pp := &printer{w: p.Output, pos: p.Pos}
	Walk(pp, t, t.Root())
	return pp.err
}

type printer struct {
	w     io.Writer
	pos   bool
	depth int
	err   error
}

func (p *printer) Visit(t *Tree, id NodeID, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}
	p.depth++
	p.printNode(t, id, p.depth-1)
	return p
}

func (p *printer) printNode(t *Tree, id NodeID, indent int) {
	if p.err != nil {
		return
	}

	n := t.Node(id)
	label := n.Tag.String()
	if raw := t.Value(id).Raw; raw != "" {
		label += " " + quoteLabel(raw)
	}
	if t.HasFlag(id, IsPrivate) {
		label += " (private)"
	}

	format := "%s" + label
	args := []interface{}{strings.Repeat(". ", indent)}
	if p.pos {
		format += " [%s]"
		args = append(args, n.Pos)
	}
	format += "\n"

	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func quoteLabel(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "⏎")
	s = strings.ReplaceAll(s, "\n", "⏎")
	s = strings.ReplaceAll(s, "\t", "⭾")
	return s
}
