package sema

import (
	"github.com/suru-lang/suru/lang/diag"
	"github.com/suru-lang/suru/lang/token"
	"github.com/suru-lang/suru/lang/types"
)

// returnRecord is one `return` statement seen while walking a function
// body.
type returnRecord struct {
	typ    types.ID // NoType for a bare return (isVoid set); finishReturns uses Void for it
	isVoid bool
	pos    token.Pos
}

// returnFrame tracks one function body's returns while it is being walked
// (spec.md §4.6.3). Nested function declarations get their own frame, so a
// return inside an inner function is validated against the inner
// function's return type, not the outer one's.
type returnFrame struct {
	declared     types.ID // concrete type if hasDeclared, else a fresh var standing for the inferred return type
	hasDeclared  bool
	pos          token.Pos // the function's own position, for MissingReturn
	returns      []returnRecord
}

// pushReturnFrame opens a new frame for a function/method body about to be
// walked.
func (a *Analyzer) pushReturnFrame(declared types.ID, hasDeclared bool, pos token.Pos) *returnFrame {
	f := &returnFrame{declared: declared, hasDeclared: hasDeclared, pos: pos}
	a.returnStack = append(a.returnStack, f)
	return f
}

// popReturnFrame closes and validates the current frame.
func (a *Analyzer) popReturnFrame() {
	n := len(a.returnStack)
	frame := a.returnStack[n-1]
	a.returnStack = a.returnStack[:n-1]
	a.finishReturns(frame)
}

// finishReturns implements spec.md §4.6.3's post-walk validation.
func (a *Analyzer) finishReturns(frame *returnFrame) {
	voidID := a.reg.VoidID()

	if !frame.hasDeclared {
		// Undeclared: every recorded return (bare counts as Void) is
		// constrained equal to the function's inferred-return variable.
		for _, rec := range frame.returns {
			t := rec.typ
			if rec.isVoid {
				t = voidID
			}
			a.constrain(t, frame.declared, rec.pos)
		}
		return
	}

	declaredIsVoid := frame.declared == voidID

	if len(frame.returns) == 0 {
		if !declaredIsVoid {
			a.diags.Add(diag.MissingReturn, frame.pos, "Function must have at least one return statement")
		}
		return
	}

	for _, rec := range frame.returns {
		switch {
		case rec.isVoid && !declaredIsVoid:
			a.diags.Add(diag.BareReturnInTypedFunction, rec.pos, "bare return in function with a declared return type")
		case !rec.isVoid && declaredIsVoid:
			a.diags.Add(diag.InconsistentReturns, rec.pos, "function declared to return Void must not return a value")
		case !rec.isVoid:
			a.constrain(rec.typ, frame.declared, rec.pos)
		}
	}
}

// recordReturn records one `return` statement against the innermost open
// frame, or reports ReturnOutsideFunction if there is none.
func (a *Analyzer) recordReturn(pos token.Pos, typ types.ID, isVoid bool) {
	if len(a.returnStack) == 0 {
		a.diags.Add(diag.ReturnOutsideFunction, pos, "return outside of a function body")
		return
	}
	frame := a.returnStack[len(a.returnStack)-1]
	frame.returns = append(frame.returns, returnRecord{typ: typ, isVoid: isVoid, pos: pos})
}
