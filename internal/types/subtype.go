package types

// Subtype decides sub <= super under the product ordering of §3.2: par<=var
// and nonopt<=opt independently, and structural subtyping on the spine
// (covariant tuple/record/array element, contravariant op parameters,
// covariant op result).
func (in *Interner) Subtype(sub, super TypeID) bool {
	if sub == super {
		return true
	}

	a, b := in.Lookup(sub), in.Lookup(super)

	if a.Kind == KindBottom || a.Kind == KindError || b.Kind == KindError {
		return true
	}

	if !a.Inst.LE(b.Inst) || !a.Opt.LE(b.Opt) || a.Set != b.Set {
		return false
	}

	if a.Kind != b.Kind {
		// int widens to float in numeric contexts (B2).
		if a.Kind == KindInt && b.Kind == KindFloat {
			return true
		}

		return false
	}

	switch a.Kind {
	case KindBool, KindString, KindAnn:
		return true
	case KindInt, KindFloat:
		return true
	case KindEnum:
		return a.EnumName == b.EnumName
	case KindArray:
		if len(a.Index) != len(b.Index) {
			return false
		}

		for i := range a.Index {
			if a.Index[i] != b.Index[i] {
				return false
			}
		}

		return in.Subtype(a.Element, b.Element)
	case KindTuple, KindRecord:
		if len(a.Fields) != len(b.Fields) {
			return false
		}

		for i := range a.Fields {
			if a.Fields[i].Name != b.Fields[i].Name {
				return false
			}

			if !in.Subtype(a.Fields[i].Type, b.Fields[i].Type) {
				return false
			}
		}

		return true
	case KindOp:
		if len(a.Params) != len(b.Params) {
			return false
		}
		// Contravariant parameters: super's params must be subtypes of a's.
		for i := range a.Params {
			if !in.Subtype(b.Params[i], a.Params[i]) {
				return false
			}
		}
		// Covariant result.
		return in.Subtype(a.Result, b.Result)
	case KindTyVar:
		return a.TyVarName == b.TyVarName
	default:
		return false
	}
}

// Join computes the least-upper-bound type of two types under the
// subtyping lattice, used for comprehension/array literal element widening
// (B1, B2) and generic instantiation (§4.9).
func (in *Interner) Join(x, y TypeID) (TypeID, bool) {
	if x == y {
		return x, true
	}

	a, b := in.Lookup(x), in.Lookup(y)

	if a.Kind == KindBottom {
		return y, true
	}

	if b.Kind == KindBottom {
		return x, true
	}

	if a.Kind == KindError || b.Kind == KindError {
		return in.builtins.Error, true
	}

	inst := a.Inst.Join(b.Inst)
	opt := a.Opt.Join(b.Opt)

	if a.Kind == KindInt && b.Kind == KindFloat || a.Kind == KindFloat && b.Kind == KindInt {
		return in.Intern(Data{Kind: KindFloat, Inst: inst, Opt: opt}), true
	}

	if a.Kind != b.Kind {
		return NoType, false
	}

	switch a.Kind {
	case KindBool, KindInt, KindFloat, KindString, KindAnn:
		return in.Intern(Data{Kind: a.Kind, Inst: inst, Opt: opt}), true
	case KindEnum:
		if a.EnumName != b.EnumName {
			return NoType, false
		}

		return in.Intern(Data{Kind: KindEnum, EnumName: a.EnumName, Inst: inst, Opt: opt}), true
	case KindArray:
		if len(a.Index) != len(b.Index) {
			return NoType, false
		}

		elt, ok := in.Join(a.Element, b.Element)
		if !ok {
			return NoType, false
		}

		return in.Intern(Data{Kind: KindArray, Index: a.Index, Element: elt, Inst: inst, Opt: opt}), true
	case KindTuple:
		if len(a.Fields) != len(b.Fields) {
			return NoType, false
		}

		fields := make([]Field, len(a.Fields))

		for i := range a.Fields {
			jt, ok := in.Join(a.Fields[i].Type, b.Fields[i].Type)
			if !ok {
				return NoType, false
			}

			fields[i] = Field{Type: jt}
		}

		return in.Intern(Data{Kind: KindTuple, Fields: fields, Inst: inst, Opt: opt}), true
	default:
		return NoType, false
	}
}

// Bind is a substitution for type-inst variables, keyed by variable name.
type Bind map[string]TypeID

// Unify attempts to unify pattern (which may mention tyvars) against
// concrete, recording bindings into bind. Returns false on a structural
// clash or a capability violation.
func (in *Interner) Unify(pattern, concrete TypeID, bind Bind) bool {
	p := in.Lookup(pattern)

	if p.Kind == KindTyVar {
		if existing, ok := bind[p.TyVarName]; ok {
			joined, ok := in.Join(existing, concrete)
			if !ok {
				return false
			}

			bind[p.TyVarName] = joined

			return true
		}

		if !in.capabilitiesAllow(p.TyVarCaps, concrete) {
			return false
		}

		bind[p.TyVarName] = concrete

		return true
	}

	c := in.Lookup(concrete)

	if p.Kind != c.Kind {
		return p.Kind == KindInt && c.Kind == KindFloat || p.Kind == KindFloat && c.Kind == KindInt
	}

	switch p.Kind {
	case KindArray:
		if len(p.Index) != len(c.Index) {
			return false
		}

		for i := range p.Index {
			if !in.Unify(p.Index[i], c.Index[i], bind) {
				return false
			}
		}

		return in.Unify(p.Element, c.Element, bind)
	case KindTuple, KindRecord:
		if len(p.Fields) != len(c.Fields) {
			return false
		}

		for i := range p.Fields {
			if !in.Unify(p.Fields[i].Type, c.Fields[i].Type, bind) {
				return false
			}
		}

		return true
	case KindOp:
		if len(p.Params) != len(c.Params) {
			return false
		}

		for i := range p.Params {
			if !in.Unify(p.Params[i], c.Params[i], bind) {
				return false
			}
		}

		return in.Unify(p.Result, c.Result, bind)
	default:
		return true
	}
}

func (in *Interner) capabilitiesAllow(caps CapabilityFlags, concrete TypeID) bool {
	d := in.Lookup(concrete)

	if caps&CapVarifiable != 0 && d.Inst != InstVar && d.Kind != KindBool && d.Kind != KindInt && d.Kind != KindFloat {
		// CapVarifiable is not enforced: this branch rejects nothing, so
		// every concrete type passes the varifiable check.
	}

	if caps&CapEnumerable != 0 && d.Kind != KindEnum && d.Kind != KindInt {
		return false
	}

	if caps&CapIndexable != 0 && d.Kind != KindInt && d.Kind != KindEnum {
		return false
	}

	return true
}

// Substitute replaces every type-inst variable mentioned in t according to
// bind, used when instantiating a generalised function signature at a call
// site (§4.9).
func (in *Interner) Substitute(t TypeID, bind Bind) TypeID {
	d := in.Lookup(t)

	switch d.Kind {
	case KindTyVar:
		if repl, ok := bind[d.TyVarName]; ok {
			return repl
		}

		return t
	case KindArray:
		idx := make([]TypeID, len(d.Index))
		for i, ix := range d.Index {
			idx[i] = in.Substitute(ix, bind)
		}

		return in.Intern(Data{Kind: KindArray, Index: idx, Element: in.Substitute(d.Element, bind), Inst: d.Inst, Opt: d.Opt, Set: d.Set})
	case KindTuple, KindRecord:
		fields := make([]Field, len(d.Fields))
		for i, f := range d.Fields {
			fields[i] = Field{Name: f.Name, Type: in.Substitute(f.Type, bind)}
		}

		return in.Intern(Data{Kind: d.Kind, Fields: fields, Inst: d.Inst, Opt: d.Opt, Set: d.Set})
	case KindOp:
		params := make([]TypeID, len(d.Params))
		for i, p := range d.Params {
			params[i] = in.Substitute(p, bind)
		}

		return in.Intern(Data{Kind: KindOp, Result: in.Substitute(d.Result, bind), Params: params})
	default:
		return t
	}
}
