// Package scope implements suru's symbol table and scope stack (spec.md
// §4.4): a chain of scopes with two mutability classes, immutable
// Global/Module (functions and types may not be redeclared; variables are
// constants) and mutable Function/Block (variable rebind is an idempotent
// overwrite). There are no closures in suru, so unlike the teacher's
// resolver this package never classifies a binding as free/cell — every
// lookup either resolves in the current chain or is Undefined.
package scope

import (
	"fmt"

	"github.com/suru-lang/suru/lang/ast"
	"github.com/suru-lang/suru/lang/types"
)

// Kind names what a scope was opened for, which determines its mutability.
type Kind uint8

const (
	Global Kind = iota
	Module
	Function
	Block
)

var kindNames = [...]string{
	Global:   "global",
	Module:   "module",
	Function: "function",
	Block:    "block",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return fmt.Sprintf("<invalid Kind %d>", k)
	}
	return kindNames[k]
}

// mutable reports whether a scope of this kind permits variable rebind.
func (k Kind) mutable() bool { return k == Function || k == Block }

// SymbolKind discriminates what declare bound a name to.
type SymbolKind uint8

const (
	VarSymbol SymbolKind = iota
	FuncSymbol
	TypeSymbol
	ModuleSymbol
)

// Symbol is one entry in a scope, the payload resolve returns on a hit.
type Symbol struct {
	Name string
	Kind SymbolKind
	Type types.ID
	Decl ast.NodeID
}

// scopeRecord is one arena entry. Scopes are never freed on exit: a popped
// scope's bindings become unreachable by lookup, but the record itself
// persists, so the ids returned by Enter and Current stay valid after
// exit, per spec.md §4.4 ("popped scope's
// bindings become unreachable by lookup but its records persist in the
// arena").
type scopeRecord struct {
	kind    Kind
	parent  int // index into Stack.scopes, or -1 for the outermost
	symbols map[string]Symbol
}

// Stack is suru's scope arena plus the chain of currently-open scopes.
type Stack struct {
	scopes []scopeRecord
	open   []int // indices of scopes currently pushed, outermost first
}

// NewStack returns a Stack with a single Global scope already open.
func NewStack() *Stack {
	s := &Stack{}
	s.Enter(Global)
	return s
}

// Enter pushes a new scope of kind k as a child of the current scope (or
// with no parent if this is the first scope), returning its id.
func (s *Stack) Enter(k Kind) int {
	parent := -1
	if len(s.open) > 0 {
		parent = s.open[len(s.open)-1]
	}
	id := len(s.scopes)
	s.scopes = append(s.scopes, scopeRecord{
		kind:    k,
		parent:  parent,
		symbols: make(map[string]Symbol),
	})
	s.open = append(s.open, id)
	return id
}

// Exit pops the current scope. Its bindings become unreachable by Resolve;
// the record itself is kept in the arena.
func (s *Stack) Exit() {
	s.open = s.open[:len(s.open)-1]
}

// current returns the index of the innermost open scope.
func (s *Stack) current() int {
	return s.open[len(s.open)-1]
}

// IsInMutableScope reports whether the current scope permits rebinding
// (spec.md §4.4: `is_in_mutable_scope()`).
func (s *Stack) IsInMutableScope() bool {
	return s.scopes[s.current()].kind.mutable()
}

// Declare binds name to sym in the current scope. In an immutable scope
// (Global/Module) redeclaring an existing function or type is a
// DuplicateDeclaration, reported via ok=false; variables there are
// constants, so EVERY re-declare of a VarSymbol is also rejected. In a
// mutable scope (Function/Block) any redeclare is an allowed rebind.
func (s *Stack) Declare(name string, sym Symbol) (ok bool) {
	rec := &s.scopes[s.current()]
	if _, found := rec.symbols[name]; found {
		if rec.kind.mutable() {
			rec.symbols[name] = sym
			return true
		}
		return false
	}
	rec.symbols[name] = sym
	return true
}

// DeclareEnclosing binds name to sym in the scope enclosing the current
// one (or the current scope itself if there is no parent), used by
// function declarations, once their body scope is entered, so the
// function's own name is visible for recursive calls (spec.md §4.4:
// "Function declarations place the function symbol in the enclosing
// scope before recursing into the body").
func (s *Stack) DeclareEnclosing(name string, sym Symbol) (ok bool) {
	cur := s.current()
	target := s.scopes[cur].parent
	if target == -1 {
		target = cur
	}
	rec := &s.scopes[target]
	if _, found := rec.symbols[name]; found {
		if rec.kind.mutable() {
			rec.symbols[name] = sym
			return true
		}
		return false
	}
	rec.symbols[name] = sym
	return true
}

// Resolve walks the parent chain from the current scope outward, returning
// the first matching Symbol.
func (s *Stack) Resolve(name string) (Symbol, bool) {
	for idx := s.current(); idx != -1; idx = s.scopes[idx].parent {
		if sym, ok := s.scopes[idx].symbols[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// CurrentKind returns the kind of the innermost open scope.
func (s *Stack) CurrentKind() Kind {
	return s.scopes[s.current()].kind
}

// Current returns the arena index of the innermost open scope, stable
// across Enter/Exit of unrelated sibling scopes.
func (s *Stack) Current() int {
	return s.current()
}

// DeclaredInCurrent looks up name in the current scope only, without
// walking to parents — used to distinguish a true rebind (found here) from
// shadowing (only found in an enclosing scope), which spec.md §4.4 treats
// differently: shadowing in an inner scope bypasses the rebind-must-unify
// check entirely.
func (s *Stack) DeclaredInCurrent(name string) (Symbol, bool) {
	sym, ok := s.scopes[s.current()].symbols[name]
	return sym, ok
}
