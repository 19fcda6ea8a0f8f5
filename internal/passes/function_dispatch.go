package passes

import (
	"github.com/shackle-rs/mzc/internal/tir"
	"github.com/shackle-rs/mzc/internal/types"
)

// FunctionDispatch implements §4.14's function-dispatch pass. By the time
// this pass runs, every call site already carries a statically resolved
// Callee (sema picked the overload at typing time, §4.10) — so unlike the
// MiniZinc compiler's runtime dispatch (needed because C++ overload
// resolution for `par`/`var` pairs can stay genuinely ambiguous until
// solve time), nothing here needs to rewrite an existing call site. What
// the pass still must do is synthesise the `fun(x) = if is_fixed(x) then
// fun_par(fix(x)) else fun_var(x) endif` dispatch header itself for every
// par/var overload pair, so a consumer that only holds a value of unknown
// fixedness (a later backend, or a future pass working over a
// type-specialised generic whose fixedness was erased) has a single entry
// point to call. This is documented in DESIGN.md as the resolution of the
// pass's only real open question in this architecture.
func FunctionDispatch(ctx *Context, m *tir.Model) (*tir.Model, error) {
	type pair struct {
		parRef, varRef tir.ItemRef
		par, v         tir.Function
	}

	byName := map[string][]tir.ItemRef{}

	for _, ref := range m.Items {
		if ref.Kind != tir.ItemFunction {
			continue
		}

		fn := m.Functions.Get(ref.Index)
		byName[fn.Name] = append(byName[fn.Name], ref)
	}

	var pairs []pair

	for _, refs := range byName {
		if len(refs) < 2 {
			continue
		}

		for i := range refs {
			for j := range refs {
				if i == j {
					continue
				}

				a := m.Functions.Get(refs[i].Index)
				b := m.Functions.Get(refs[j].Index)

				if isParSpecialisationOf(ctx.Interner, a, b) {
					pairs = append(pairs, pair{parRef: refs[i], varRef: refs[j], par: a, v: b})
				}
			}
		}
	}

	out := tir.NewModel()

	for _, ref := range m.Items {
		switch ref.Kind {
		case tir.ItemAnnotation:
			out.AddAnnotation(m.Annotations.Get(ref.Index))
		case tir.ItemAssignment:
			out.AddAssignment(m.Assignments.Get(ref.Index))
		case tir.ItemConstraint:
			out.AddConstraint(m.Constraints.Get(ref.Index))
		case tir.ItemDeclaration:
			out.AddDeclaration(m.Declarations.Get(ref.Index))
		case tir.ItemEnumeration:
			out.AddEnumeration(m.Enumerations.Get(ref.Index))
		case tir.ItemFunction:
			out.AddFunction(m.Functions.Get(ref.Index))
		case tir.ItemOutput:
			out.AddOutput(m.Outputs.Get(ref.Index))
		case tir.ItemSolve:
			out.AddSolve(m.Solves.Get(ref.Index))
		case tir.ItemTypeAlias:
			out.AddTypeAlias(m.TypeAliases.Get(ref.Index))
		}
	}

	for _, p := range pairs {
		selfRef := tir.ItemRef{Kind: tir.ItemFunction, Index: uint32(out.Functions.Len() + 1)}
		newRef := out.AddFunction(buildDispatchHeader(ctx, selfRef, p.par, p.parRef, p.v, p.varRef))

		if newRef != selfRef {
			panic("passes: function-dispatch self-reference precomputation diverged")
		}
	}

	return out, nil
}

// isParSpecialisationOf reports whether par is v with at least one
// parameter narrowed from `var` to `par` inst and every other parameter
// identical (return types are not compared) —
// the shape §4.14 calls "one overload is a specialisation of another at a
// less-general inst".
func isParSpecialisationOf(in *types.Interner, par, v tir.Function) bool {
	if par.Name != v.Name || par.Name == "" {
		return false
	}

	if len(par.Params) != len(v.Params) {
		return false
	}

	sawVar := false

	for i := range par.Params {
		pp, vp := par.Params[i].Type, v.Params[i].Type

		if pp == vp {
			continue
		}

		if in.Lookup(vp).Inst == types.InstVar && in.WithInst(vp, types.InstPar) == pp {
			sawVar = true

			continue
		}

		return false
	}

	return sawVar
}

// buildDispatchHeader synthesises `name(x) = if is_fixed(x) then
// name_par(fix(x)) else name_var(x) endif`, naming the two branches with
// the well-known is_fixed/fix builtins (neither backed by a Function item
// of its own — the same open-lookup-call treatment as output-generation's
// `concat`) over ECall to the two concrete overloads directly.
func buildDispatchHeader(ctx *Context, selfRef tir.ItemRef, par tir.Function, parRef tir.ItemRef, v tir.Function, varRef tir.ItemRef) tir.Function {
	data := tir.NewItemData(v.Span)

	params := make([]tir.Param, len(v.Params))
	args := make([]tir.ExprIdx, len(v.Params))

	for i, p := range v.Params {
		params[i] = tir.Param{Type: p.Type, Name: p.Name}
		args[i] = data.Exprs.Alloc(tir.Expr{
			Kind:   tir.EIdent,
			Type:   p.Type,
			Ident:  tir.ResolvedIdentifier{Kind: tir.ResolvedLocal, Item: selfRef, Local: uint32(i)},
			Origin: tir.Introduced("function-dispatch"),
		})
	}

	isFixed := data.Exprs.Alloc(tir.Expr{
		Kind:       tir.ELookupCall,
		LookupName: "is_fixed",
		Elems:      []tir.ExprIdx{args[0]},
		Type:       ctx.Interner.Builtins().ParBool,
		Origin:     tir.Introduced("function-dispatch"),
	})

	fixedArgs := make([]tir.ExprIdx, len(args))
	copy(fixedArgs, args)
	fixedArgs[0] = data.Exprs.Alloc(tir.Expr{
		Kind:       tir.ELookupCall,
		LookupName: "fix",
		Elems:      []tir.ExprIdx{args[0]},
		Type:       ctx.Interner.WithInst(v.Params[0].Type, types.InstPar),
		Origin:     tir.Introduced("function-dispatch"),
	})

	parCall := data.Exprs.Alloc(tir.Expr{
		Kind: tir.ECall, Callee: parRef, Elems: fixedArgs, Type: par.ReturnType,
		Origin: tir.Introduced("function-dispatch"),
	})
	varCall := data.Exprs.Alloc(tir.Expr{
		Kind: tir.ECall, Callee: varRef, Elems: args, Type: v.ReturnType,
		Origin: tir.Introduced("function-dispatch"),
	})

	retType, ok := ctx.Interner.Join(par.ReturnType, v.ReturnType)
	if !ok {
		retType = v.ReturnType
	}

	body := data.Exprs.Alloc(tir.Expr{
		Kind: tir.EIfThenElse, Type: retType,
		Conds: []tir.ExprIdx{isFixed}, Thens: []tir.ExprIdx{parCall}, Else: varCall,
		Origin: tir.Introduced("function-dispatch"),
	})

	return tir.Function{
		ItemData:   data,
		FnKind:     v.FnKind,
		Name:       v.Name,
		Params:     params,
		ReturnType: retType,
		Body:       body,
	}
}
