// Package types implements suru's static type registry: interning of type
// shapes to stable ids, fresh unification variables, and Robinson
// unification with an occurs check (spec.md §4.5, §4.6.5). This is a
// compile-time structure registry, not a runtime value system — suru's
// front end never evaluates a program (spec.md §1 Non-goals).
package types

import "fmt"

// ID is a stable reference to an interned Type, valid for the life of the
// Registry that produced it.
type ID uint32

// NoType is the sentinel for "no type known yet".
const NoType ID = 1<<32 - 1

// Kind discriminates the variants of Type.
type Kind uint8

const (
	KindVar Kind = iota
	KindPrimitive
	KindArray
	KindFunction
	KindStruct
	KindUnion
	KindIntersection
	KindUnknown
	KindVoid
)

// Primitive names the builtin scalar types (spec.md §3): Number and its
// explicit width variants, String, Bool.
type Primitive string

const (
	Number Primitive = "Number"
	String Primitive = "String"
	Bool   Primitive = "Bool"
)

var builtins = map[string]Primitive{
	"Number": Number,
	"String": String,
	"Bool":   Bool,
	"i8": "i8", "i16": "i16", "i32": "i32", "i64": "i64", "i128": "i128",
	"u8": "u8", "u16": "u16", "u32": "u32", "u64": "u64", "u128": "u128",
	"f16": "f16", "f32": "f32", "f64": "f64", "f128": "f128",
}

// Field is one member of a Struct type: a name and its type id, plus
// whether it was declared private on a struct *initializer* (spec.md
// §4.6.4; type declarations themselves never mark privacy, per §4.6.1).
type Field struct {
	Name    string
	Type    ID
	Private bool
}

// Method is a named Function-typed member of a Struct.
type Method struct {
	Name    string
	Type    ID
	Private bool
}

// Type is one interned type shape. Only the fields relevant to Kind are
// meaningful; the rest are zero.
type Type struct {
	Kind Kind

	// KindVar
	VarID int

	// KindPrimitive
	Prim Primitive

	// KindArray
	Elem ID

	// KindFunction
	Params []ID
	Return ID

	// KindStruct
	Fields  []Field
	Methods []Method

	// KindUnion / KindIntersection
	Operands []ID

	// Name is the declared name, for a user `type` declaration; empty for
	// structurally-anonymous types (array/function/struct literals without
	// a declared alias).
	Name string
}

func (t Type) String() string {
	switch t.Kind {
	case KindVar:
		return fmt.Sprintf("α%d", t.VarID)
	case KindPrimitive:
		return string(t.Prim)
	case KindArray:
		return "Array"
	case KindFunction:
		return "Function"
	case KindStruct:
		return "Struct"
	case KindUnion:
		return "Union"
	case KindIntersection:
		return "Intersection"
	case KindUnknown:
		return "Unknown"
	case KindVoid:
		return "Void"
	default:
		return "?"
	}
}

// IsUnknown reports whether t stands in for an unannotated type that will
// get a fresh variable during body analysis (spec.md §4.6.1).
func (t Type) IsUnknown() bool { return t.Kind == KindUnknown }
