package ast

import "github.com/suru-lang/suru/lang/token"

// NodeID indexes a Node inside a Tree's node vector. The zero value is the
// root (index 0, always a Program node); NoNode marks an absent link.
type NodeID uint32

// NoNode is the sentinel for an absent first_child, next_sibling or parent
// link.
const NoNode NodeID = 1<<32 - 1

// Expr is a NodeID known to hold an expression-producing node; it documents
// intent at parser call sites and carries no runtime distinction from
// NodeID.
type Expr = NodeID

// Flags is a bit set of per-node parser flags.
type Flags uint8

// IsPrivate marks a StructInitField/StructInitMethod preceded by a leading
// '_' marker (spec.md §3, §4.3).
const IsPrivate Flags = 1 << 0

// IsSubmodule marks a ModulePath written as `.sub` rather than a bare
// name (spec.md §4.6.1: "for a submodule, strip the dot").
const IsSubmodule Flags = 1 << 1

// Node is one entry of the flat AST vector. It is fixed size: terminal
// payloads (identifier text, literal values) are stored out of line in the
// Tree's parallel values slice, indexed by the same NodeID.
type Node struct {
	Tag         Tag
	Pos         token.Pos
	Parent      NodeID
	FirstChild  NodeID
	NextSibling NodeID
	Flags       Flags
}

// Tree is a single translation unit's AST: a growable vector of Node,
// rooted at index 0, plus the out-of-line literal payloads. Nodes are only
// ever appended, never removed; after creation a node's payload, flags and
// children can still be set through SetValue, SetFlags and SetChildren.
type Tree struct {
	// Name is the source's filename, empty if not parsed from a file.
	Name string

	nodes  []Node
	values []token.Value
}

// NewTree returns a new tree for a translation unit named name, with its
// root (a Program node, index 0) already reserved so that nodes built
// bottom-up (children before parents) never displace it.
func NewTree(name string) *Tree {
	t := &Tree{Name: name}
	t.newNode(Program, token.NoPos)
	return t
}

// Root returns the id of the Program node, always index 0.
func (t *Tree) Root() NodeID { return 0 }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the node at id.
func (t *Tree) Node(id NodeID) Node { return t.nodes[id] }

// Value returns the literal payload recorded for id via SetValue, or the
// zero Value if none was set.
func (t *Tree) Value(id NodeID) token.Value { return t.values[id] }

// SetValue records tok's literal payload for node id; used for terminal
// nodes (Identifier, LiteralNumber, LiteralString, LiteralBoolean).
func (t *Tree) SetValue(id NodeID, val token.Value) { t.values[id] = val }

// SetFlags ORs f into id's flag set.
func (t *Tree) SetFlags(id NodeID, f Flags) { t.nodes[id].Flags |= f }

// HasFlag reports whether id carries every bit of f.
func (t *Tree) HasFlag(id NodeID, f Flags) bool { return t.nodes[id].Flags&f == f }

func (t *Tree) newNode(tag Tag, pos token.Pos) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		Tag:         tag,
		Pos:         pos,
		Parent:      NoNode,
		FirstChild:  NoNode,
		NextSibling: NoNode,
	})
	t.values = append(t.values, token.Value{})
	return id
}

// SetChildren wires each of children as id's child, in the given order
// (source order), replacing any children previously set on id. Used to
// attach a node's children after the node itself was created, as is
// required for the root (see NewTree).
func (t *Tree) SetChildren(id NodeID, children ...NodeID) {
	t.nodes[id].FirstChild = NoNode
	var last NodeID = NoNode
	for _, c := range children {
		t.nodes[c].Parent = id
		if last == NoNode {
			t.nodes[id].FirstChild = c
		} else {
			t.nodes[last].NextSibling = c
		}
		last = c
	}
}

// AddNode appends a new node tagged tag at position pos, wires each of
// children as its child in the given order (source order), and returns the
// new node's id. Passing no children produces a terminal node; its literal
// payload, if any, must be set separately via SetValue.
func (t *Tree) AddNode(tag Tag, pos token.Pos, children ...NodeID) NodeID {
	id := t.newNode(tag, pos)
	t.SetChildren(id, children...)
	return id
}

// Children returns id's children in source order.
func (t *Tree) Children(id NodeID) []NodeID {
	var out []NodeID
	for c := t.nodes[id].FirstChild; c != NoNode; c = t.nodes[c].NextSibling {
		out = append(out, c)
	}
	return out
}

// ChildCount returns the number of direct children of id.
func (t *Tree) ChildCount(id NodeID) int {
	n := 0
	for c := t.nodes[id].FirstChild; c != NoNode; c = t.nodes[c].NextSibling {
		n++
	}
	return n
}

// NthChild returns id's n-th child (0-indexed) and true, or NoNode and
// false if id has fewer than n+1 children.
func (t *Tree) NthChild(id NodeID, n int) (NodeID, bool) {
	i := 0
	for c := t.nodes[id].FirstChild; c != NoNode; c = t.nodes[c].NextSibling {
		if i == n {
			return c, true
		}
		i++
	}
	return NoNode, false
}
