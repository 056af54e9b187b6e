// Package diag defines suru's diagnostic record and the append-only
// collector shared by the scanner, parser and semantic analyzer, in the
// spirit of the standard library's go/scanner.ErrorList.
package diag

import (
	"fmt"
	"sort"

	"github.com/suru-lang/suru/lang/token"
)

// Kind identifies the category of a Diagnostic. The set is closed
// (spec.md §7).
type Kind uint8

//nolint:revive
const (
	// Lexer
	UnterminatedString Kind = iota
	BadEscape
	BadNumberSuffix
	UnexpectedByte

	// Parser
	UnexpectedToken
	MaxDepthExceeded
	NestedCallDisallowed // reserved

	// Name resolution
	UndefinedVariable
	UndefinedFunction
	UndefinedTypeRef
	DuplicateDeclaration
	NotAFunction
	MultipleModules

	// Type
	TypeMismatch
	ArityMismatch
	InfiniteType
	MissingReturn
	BareReturnInTypedFunction
	ReturnOutsideFunction
	InconsistentReturns
	UndefinedType
	NonUnifiableStruct
	PrivateFieldAccess
	PrivateMethodAccess
	TryOnNonBinaryUnion
	TryReturnIncompatible
)

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) || kindNames[k] == "" {
		return "unknown diagnostic"
	}
	return kindNames[k]
}

var kindNames = [...]string{
	UnterminatedString:       "UnterminatedString",
	BadEscape:                "BadEscape",
	BadNumberSuffix:          "BadNumberSuffix",
	UnexpectedByte:           "UnexpectedByte",
	UnexpectedToken:          "UnexpectedToken",
	MaxDepthExceeded:         "MaxDepthExceeded",
	NestedCallDisallowed:     "NestedCallDisallowed",
	UndefinedVariable:        "UndefinedVariable",
	UndefinedFunction:        "UndefinedFunction",
	UndefinedTypeRef:         "UndefinedTypeRef",
	DuplicateDeclaration:     "DuplicateDeclaration",
	NotAFunction:             "NotAFunction",
	MultipleModules:          "MultipleModules",
	TypeMismatch:             "TypeMismatch",
	ArityMismatch:            "ArityMismatch",
	InfiniteType:             "InfiniteType",
	MissingReturn:            "MissingReturn",
	BareReturnInTypedFunction: "BareReturnInTypedFunction",
	ReturnOutsideFunction:    "ReturnOutsideFunction",
	InconsistentReturns:      "InconsistentReturns",
	UndefinedType:            "UndefinedType",
	NonUnifiableStruct:       "NonUnifiableStruct",
	PrivateFieldAccess:       "PrivateFieldAccess",
	PrivateMethodAccess:      "PrivateMethodAccess",
	TryOnNonBinaryUnion:      "TryOnNonBinaryUnion",
	TryReturnIncompatible:    "TryReturnIncompatible",
}

// Diagnostic is one non-fatal finding surfaced by the lexer, parser or
// analyzer: {kind, message, line, column} per spec.md §6.
type Diagnostic struct {
	Kind    Kind
	Message string
	Line    int
	Column  int
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Column, d.Kind, d.Message)
}

// Bag is an append-only diagnostic collector. It never halts analysis; the
// parser and analyzer keep recording into it and consult Err() at the end.
// Per spec.md §5's ordering guarantee, diagnostics are surfaced in
// detection order, not sorted, by default.
type Bag struct {
	list []Diagnostic
}

// Add records a diagnostic at pos with the given kind and message.
func (b *Bag) Add(kind Kind, pos token.Pos, msg string) {
	line, col := pos.LineCol()
	b.list = append(b.list, Diagnostic{Kind: kind, Message: msg, Line: line, Column: col})
}

// Addf is like Add but formats msg with args.
func (b *Bag) Addf(kind Kind, pos token.Pos, format string, args ...interface{}) {
	b.Add(kind, pos, fmt.Sprintf(format, args...))
}

// Len returns the number of diagnostics recorded.
func (b *Bag) Len() int { return len(b.list) }

// All returns the recorded diagnostics in detection order. The returned
// slice must not be mutated.
func (b *Bag) All() []Diagnostic { return b.list }

// Reset discards all recorded diagnostics.
func (b *Bag) Reset() { b.list = b.list[:0] }

// Sort orders the diagnostics by line then column. It is not called
// automatically; spec.md §5 requires detection order by default, so
// callers that want source order (e.g. a human-facing CLI report) opt in
// explicitly.
func (b *Bag) Sort() {
	sort.Slice(b.list, func(i, j int) bool {
		if b.list[i].Line != b.list[j].Line {
			return b.list[i].Line < b.list[j].Line
		}
		return b.list[i].Column < b.list[j].Column
	})
}

// Err returns nil if the bag is empty, otherwise the bag itself as an
// error (its Error method reports the first recorded diagnostic and the
// count of the remaining ones).
func (b *Bag) Err() error {
	if len(b.list) == 0 {
		return nil
	}
	return b
}

func (b *Bag) Error() string {
	switch len(b.list) {
	case 0:
		return "no errors"
	case 1:
		return b.list[0].Error()
	}
	return fmt.Sprintf("%s (and %d more diagnostics)", b.list[0].Error(), len(b.list)-1)
}
