package sema

import "github.com/shackle-rs/mzc/internal/types"

// rankOverloads implements §4.10's OVERLOAD RANKING over candidates whose
// arity already matches len(argTypes): a candidate that isn't even a valid
// subtype match per-parameter is dropped before ranking begins.
//
//  1. exact parameter-type matches win outright
//  2. otherwise, fewer coercions (par->var, nonopt->opt) wins
//  3. otherwise, a more specific generic instantiation wins — approximated
//     here by preferring fewer type-inst-variable parameters, since a full
//     unify-and-compare-instantiation-breadth tie-break belongs to the TIR
//     passes' generic-dispatch machinery (§4.14), not this coarse filter
//  4. anything still tied after (1)-(3) is ambiguous
func rankOverloads(in *types.Interner, candidates []FunctionEntry, argTypes []types.TypeID) (FunctionEntry, bool, bool) {
	viable := make([]FunctionEntry, 0, len(candidates))

	for _, cand := range candidates {
		if len(cand.Params) != len(argTypes) {
			continue
		}

		ok := true

		for i, p := range cand.Params {
			if in.Lookup(p).Kind == types.KindTyVar {
				continue
			}

			if !in.Subtype(argTypes[i], p) {
				ok = false

				break
			}
		}

		if ok {
			viable = append(viable, cand)
		}
	}

	if len(viable) == 0 {
		return FunctionEntry{}, false, false
	}

	if len(viable) == 1 {
		return viable[0], true, false
	}

	exact := filterBy(viable, func(f FunctionEntry) int {
		for i, p := range f.Params {
			if p != argTypes[i] {
				return 1
			}
		}

		return 0
	})
	if len(exact) == 1 {
		return exact[0], true, false
	}

	if len(exact) > 1 {
		viable = exact
	}

	byCoercions := rankByMin(viable, func(f FunctionEntry) int { return coercionCount(in, f.Params, argTypes) })
	if len(byCoercions) == 1 {
		return byCoercions[0], true, false
	}

	bySpecificity := rankByMin(byCoercions, func(f FunctionEntry) int { return tyVarCount(in, f.Params) })
	if len(bySpecificity) == 1 {
		return bySpecificity[0], true, false
	}

	return bySpecificity[0], true, true
}

// filterBy keeps every candidate whose key is 0 ("qualifies"); it returns
// an empty slice when none qualifies.
func filterBy(cands []FunctionEntry, key func(FunctionEntry) int) []FunctionEntry {
	out := make([]FunctionEntry, 0, len(cands))

	for _, c := range cands {
		if key(c) == 0 {
			out = append(out, c)
		}
	}

	return out
}

func rankByMin(cands []FunctionEntry, key func(FunctionEntry) int) []FunctionEntry {
	best := int(^uint(0) >> 1)

	for _, c := range cands {
		if k := key(c); k < best {
			best = k
		}
	}

	out := make([]FunctionEntry, 0, len(cands))

	for _, c := range cands {
		if key(c) == best {
			out = append(out, c)
		}
	}

	return out
}

func coercionCount(in *types.Interner, params, args []types.TypeID) int {
	n := 0

	for i, p := range params {
		pd, ad := in.Lookup(p), in.Lookup(args[i])
		if pd.Inst != ad.Inst {
			n++
		}

		if pd.Opt != ad.Opt {
			n++
		}
	}

	return n
}

func tyVarCount(in *types.Interner, params []types.TypeID) int {
	n := 0

	for _, p := range params {
		if in.Lookup(p).Kind == types.KindTyVar {
			n++
		}
	}

	return n
}
