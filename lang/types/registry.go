package types

import (
	"fmt"
	"strings"

	"github.com/dolthub/swiss"
)

// Registry interns type shapes to stable ids, mints fresh unification
// variables, and resolves builtin/named type references (spec.md §4.5).
// Structural types (arrays, functions, unions, intersections) are
// content-addressed the same way lang/intern.Pool content-addresses
// strings, via a canonical key built from the shape's own fields, rather
// than a second implementation of the same dictionary idiom.
type Registry struct {
	types []Type
	byKey *swiss.Map[string, ID]
	named map[string]ID

	nextVar   int
	unknownID ID
	voidID    ID
}

// NewRegistry returns an empty registry with the builtin primitives
// pre-interned.
func NewRegistry() *Registry {
	r := &Registry{
		byKey: swiss.NewMap[string, ID](64),
		named: make(map[string]ID),
	}
	for name := range builtins {
		r.internPrimitive(Primitive(name))
	}
	r.unknownID = r.intern(Type{Kind: KindUnknown})
	r.voidID = r.intern(Type{Kind: KindVoid})
	return r
}

// UnknownID returns the single interned Unknown type, used for an
// unannotated reference that analysis could not mint a fresh variable for
// (e.g. after an earlier error already left the name unresolved).
func (r *Registry) UnknownID() ID { return r.unknownID }

// VoidID returns the single interned Void type, used for a bare `return`
// and for a function whose declared return annotation names Void.
func (r *Registry) VoidID() ID { return r.voidID }

func (r *Registry) internPrimitive(p Primitive) ID {
	key := "prim:" + string(p)
	if id, ok := r.byKey.Get(key); ok {
		return id
	}
	return r.intern(Type{Kind: KindPrimitive, Prim: p})
}

// intern appends t (if its canonical key is new) and returns its id. It is
// the single point of insertion for every Kind.
func (r *Registry) intern(t Type) ID {
	key := canonicalKey(t)
	if id, ok := r.byKey.Get(key); ok {
		return id
	}
	id := ID(len(r.types))
	r.types = append(r.types, t)
	r.byKey.Put(key, id)
	return id
}

// Intern is the public entry point (spec.md §4.5: `intern(type) → handle`)
// for any structural type built by the analyzer (array, function, struct,
// union, intersection) that is not a fresh variable.
func (r *Registry) Intern(t Type) ID { return r.intern(t) }

// FreshVar returns a fresh Var(id) with a monotonically increasing id.
// Unlike structural types, variables are never deduplicated: each call
// mints a distinct type.
func (r *Registry) FreshVar() ID {
	id := ID(len(r.types))
	r.types = append(r.types, Type{Kind: KindVar, VarID: r.nextVar})
	r.nextVar++
	return id
}

// ResolveBuiltin maps a reserved primitive name to its interned id, or
// (NoType, false) if name is not one of the builtin primitives.
func (r *Registry) ResolveBuiltin(name string) (ID, bool) {
	p, ok := builtins[name]
	if !ok {
		return NoType, false
	}
	return r.internPrimitive(p), true
}

// LookupNamed returns the type id registered under name by a prior `type`
// declaration, or (NoType, false).
func (r *Registry) LookupNamed(name string) (ID, bool) {
	id, ok := r.named[name]
	return id, ok
}

// Register records id under name, as the result of processing a `type`
// declaration (spec.md §4.5: "registration... happens in a single linear
// pass: no forward references").
func (r *Registry) Register(name string, id ID) {
	r.named[name] = id
	if int(id) < len(r.types) {
		r.types[id].Name = name
	}
}

// Get returns the Type stored at id.
func (r *Registry) Get(id ID) Type { return r.types[id] }

// Set overwrites the Type stored at id.
func (r *Registry) Set(id ID, t Type) { r.types[id] = t }

// canonicalKey builds a structural key for t so that two Types with the
// same shape intern to the same id. Var is excluded on purpose: FreshVar
// never calls intern, so a Var's key is never consulted.
func canonicalKey(t Type) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:", t.Kind)
	switch t.Kind {
	case KindPrimitive:
		b.WriteString(string(t.Prim))
	case KindArray:
		fmt.Fprintf(&b, "%d", t.Elem)
	case KindFunction:
		for _, p := range t.Params {
			fmt.Fprintf(&b, "%d,", p)
		}
		fmt.Fprintf(&b, "->%d", t.Return)
	case KindStruct:
		for _, f := range t.Fields {
			fmt.Fprintf(&b, "f:%s:%d;", f.Name, f.Type)
		}
		for _, m := range t.Methods {
			fmt.Fprintf(&b, "m:%s:%d;", m.Name, m.Type)
		}
	case KindUnion, KindIntersection:
		for _, o := range t.Operands {
			fmt.Fprintf(&b, "%d,", o)
		}
	}
	return b.String()
}
