package types

import "fmt"

// Substitution maps a Var's registry id to the id it has been bound to.
// Substitutions compose: resolving a variable may itself require
// resolving through one or more other bindings.
type Substitution map[ID]ID

// Resolve follows id through sub until it reaches a type that is not a
// bound Var (or a Var with no binding yet).
func (s Substitution) Resolve(r *Registry, id ID) ID {
	for {
		t := r.Get(id)
		if t.Kind != KindVar {
			return id
		}
		next, ok := s[id]
		if !ok || next == id {
			return id
		}
		id = next
	}
}

// Constraint records one equality obligation discovered during walk &
// collect, to be unified in emission order during the solve phase
// (spec.md §4.6 step 2, §5's ordering guarantee).
type Constraint struct {
	A, B ID
	// Line/Column locate the constraint's source for TypeMismatch
	// reporting; stored directly rather than as a token.Pos to keep this
	// package independent of lang/token.
	Line, Column int
}

// UnifyError is returned by Unify on a unification failure; Infinite
// distinguishes an occurs-check failure (InfiniteType) from an ordinary
// shape mismatch (TypeMismatch).
type UnifyError struct {
	Msg      string
	Infinite bool
}

func (e *UnifyError) Error() string { return e.Msg }

// Unify attempts to unify a and b under sub, returning the (possibly
// extended) substitution. It implements Robinson's algorithm over the
// Type variants listed in spec.md §4.6.5.
func Unify(r *Registry, sub Substitution, a, b ID) (Substitution, error) {
	a = sub.Resolve(r, a)
	b = sub.Resolve(r, b)
	if a == b {
		return sub, nil
	}

	ta, tb := r.Get(a), r.Get(b)

	if ta.Kind == KindUnknown || tb.Kind == KindUnknown {
		return sub, nil
	}

	if ta.Kind == KindVar {
		return bindVar(r, sub, a, b)
	}
	if tb.Kind == KindVar {
		return bindVar(r, sub, b, a)
	}

	switch {
	case ta.Kind == KindPrimitive && tb.Kind == KindPrimitive:
		if ta.Prim != tb.Prim {
			return sub, mismatch(ta, tb)
		}
		return sub, nil

	case ta.Kind == KindArray && tb.Kind == KindArray:
		return Unify(r, sub, ta.Elem, tb.Elem)

	case ta.Kind == KindFunction && tb.Kind == KindFunction:
		if len(ta.Params) != len(tb.Params) {
			return sub, mismatch(ta, tb)
		}
		var err error
		for i := range ta.Params {
			sub, err = Unify(r, sub, ta.Params[i], tb.Params[i])
			if err != nil {
				return sub, err
			}
		}
		return Unify(r, sub, ta.Return, tb.Return)

	case ta.Kind == KindStruct && tb.Kind == KindStruct:
		return unifyStructs(r, sub, ta, tb)

	case ta.Kind == KindUnion && tb.Kind == KindUnion,
		ta.Kind == KindIntersection && tb.Kind == KindIntersection:
		if len(ta.Operands) != len(tb.Operands) {
			return sub, mismatch(ta, tb)
		}
		var err error
		for i := range ta.Operands {
			sub, err = Unify(r, sub, ta.Operands[i], tb.Operands[i])
			if err != nil {
				return sub, err
			}
		}
		return sub, nil

	default:
		return sub, mismatch(ta, tb)
	}
}

// unifyStructs implements structural subtyping (spec.md §4.6.5): every
// field/method of the expected side (ta) must have a same-named,
// unifiable counterpart on the actual side (tb); extra members on tb are
// allowed.
func unifyStructs(r *Registry, sub Substitution, ta, tb Type) (Substitution, error) {
	actualFields := make(map[string]ID, len(tb.Fields))
	for _, f := range tb.Fields {
		actualFields[f.Name] = f.Type
	}
	actualMethods := make(map[string]ID, len(tb.Methods))
	for _, m := range tb.Methods {
		actualMethods[m.Name] = m.Type
	}

	var err error
	for _, f := range ta.Fields {
		got, ok := actualFields[f.Name]
		if !ok {
			return sub, &UnifyError{Msg: fmt.Sprintf("missing field %q", f.Name)}
		}
		sub, err = Unify(r, sub, f.Type, got)
		if err != nil {
			return sub, err
		}
	}
	for _, m := range ta.Methods {
		got, ok := actualMethods[m.Name]
		if !ok {
			return sub, &UnifyError{Msg: fmt.Sprintf("missing method %q", m.Name)}
		}
		sub, err = Unify(r, sub, m.Type, got)
		if err != nil {
			return sub, err
		}
	}
	return sub, nil
}

// bindVar binds variable id `v` to `t`, after an occurs check.
func bindVar(r *Registry, sub Substitution, v, t ID) (Substitution, error) {
	if occurs(r, sub, v, t) {
		return sub, &UnifyError{
			Msg:      fmt.Sprintf("type variable %s occurs in %s", r.Get(v), r.Get(t)),
			Infinite: true,
		}
	}
	out := make(Substitution, len(sub)+1)
	for k, val := range sub {
		out[k] = val
	}
	out[v] = t
	return out, nil
}

// occurs reports whether variable v appears anywhere inside t, which
// would otherwise let bindVar construct an infinite type.
func occurs(r *Registry, sub Substitution, v, t ID) bool {
	t = sub.Resolve(r, t)
	if t == v {
		return true
	}
	tt := r.Get(t)
	switch tt.Kind {
	case KindArray:
		return occurs(r, sub, v, tt.Elem)
	case KindFunction:
		for _, p := range tt.Params {
			if occurs(r, sub, v, p) {
				return true
			}
		}
		return occurs(r, sub, v, tt.Return)
	case KindUnion, KindIntersection:
		for _, o := range tt.Operands {
			if occurs(r, sub, v, o) {
				return true
			}
		}
	case KindStruct:
		for _, f := range tt.Fields {
			if occurs(r, sub, v, f.Type) {
				return true
			}
		}
		for _, m := range tt.Methods {
			if occurs(r, sub, v, m.Type) {
				return true
			}
		}
	}
	return false
}

func mismatch(a, b Type) error {
	return &UnifyError{Msg: fmt.Sprintf("cannot unify %s with %s", a, b)}
}
