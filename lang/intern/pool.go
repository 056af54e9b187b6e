// Package intern implements the string intern pool shared by the
// tokenizer, AST and type registry: identical byte sequences collapse to
// the same stable Handle, so that identifier and literal equality becomes
// pointer equality instead of byte comparison.
package intern

import "github.com/dolthub/swiss"

// A Handle is a stable reference to an interned string. Two handles are
// equal (==) iff they were produced by interning the same byte sequence in
// the same Pool. A Handle remains valid for the lifetime of the Pool that
// produced it; the pool never deletes entries.
type Handle struct {
	text string
}

// String returns the interned text.
func (h *Handle) String() string {
	if h == nil {
		return ""
	}
	return h.text
}

// Pool is a content-addressed dictionary mapping byte sequences to stable
// Handles. The zero value is not usable; construct with New.
type Pool struct {
	table *swiss.Map[string, *Handle]
	count int
}

// New returns an empty pool with initial capacity for at least size
// distinct strings (a hint only; the pool grows as needed).
func New(size int) *Pool {
	if size < 0 {
		size = 0
	}
	return &Pool{table: swiss.NewMap[string, *Handle](uint32(size))}
}

// Intern returns the canonical Handle for s, allocating one if this is the
// first time s has been seen by this pool.
func (p *Pool) Intern(s string) *Handle {
	if h, ok := p.table.Get(s); ok {
		return h
	}
	h := &Handle{text: s}
	p.table.Put(s, h)
	p.count++
	return h
}

// Len returns the number of distinct strings interned so far.
func (p *Pool) Len() int {
	return p.count
}
