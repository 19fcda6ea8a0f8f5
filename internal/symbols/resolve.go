package symbols

import (
	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/diag"
	"github.com/shackle-rs/mzc/internal/hir"
	"github.com/shackle-rs/mzc/internal/source"
)

// BuildGlobalScope walks model's items in source order, declaring one
// Symbol per top-level definition into a fresh Table's global scope
// (§4.8). Function names are grouped by name as overload sets; every other
// item kind reports a ScopeDuplicate* diagnostic on redeclaration. A second
// `solve` item is reported as ScopeMultipleSolveItems rather than
// overwriting the first.
func BuildGlobalScope(file source.FileID, model *hir.Model, bag *diag.Bag) *Table {
	t := NewTable()

	haveSolve := false

	for _, ref := range model.Items {
		data := model.ItemData(ref)

		switch ref.Kind {
		case hir.ItemDeclaration:
			d := model.Declarations.Get(ref.Index)
			declareUnique(t, file, bag, d.Name, SymVariable, ref, data.Span, diag.ScopeDuplicateVariable)

		case hir.ItemAssignment:
			// A bare `x = expr;` legally fills in an earlier `var T: x;`
			// declaration with no initializer, so it is not flagged here —
			// the full "two assignments to the same variable collide, the
			// first definition from the declaration if any counts" rule
			// (§4.10) needs to see whether a same-named Declaration already
			// carries its own body, which belongs to the cross-signature
			// check once both phases have run.
			a := model.Assignments.Get(ref.Index)
			t.Declare(t.Global, Symbol{Name: a.Name, Kind: SymVariable, Item: ref, Span: data.Span})

		case hir.ItemFunction:
			f := model.Functions.Get(ref.Index)
			declareOverload(t, f.Name, SymFunction, ref, data.Span)

		case hir.ItemAnnotation:
			a := model.Annotations.Get(ref.Index)
			declareOverload(t, a.Name, SymAnnotation, ref, data.Span)

		case hir.ItemEnumeration:
			e := model.Enumerations.Get(ref.Index)
			declareUnique(t, file, bag, e.Name, SymEnum, ref, data.Span, diag.ScopeDuplicateVariable)
			declareEnumCtors(t, file, bag, ref, e)

		case hir.ItemTypeAlias:
			a := model.TypeAliases.Get(ref.Index)
			declareUnique(t, file, bag, a.Name, SymTypeAlias, ref, data.Span, diag.ScopeDuplicateVariable)

		case hir.ItemSolve:
			if haveSolve {
				bag.Push(diag.Errorf(diag.ScopeMultipleSolveItems, file, data.Span,
					"a model may have only one solve item"))

				continue
			}

			haveSolve = true

		case hir.ItemConstraint, hir.ItemOutput:
			// Constraints and outputs introduce no names.
		}
	}

	checkDuplicateFunctionSignatures(t, file, model, bag)

	return t
}

func declareUnique(
	t *Table, file source.FileID, bag *diag.Bag, name string, kind SymbolKind,
	ref hir.ItemRef, span source.Span, code diag.Code,
) {
	if _, ok := t.Scope(t.Global).Names[name]; ok {
		bag.Push(diag.Errorf(code, file, span, "redefinition of \""+name+"\""))
	}

	t.Declare(t.Global, Symbol{Name: name, Kind: kind, Item: ref, Span: span})
}

func declareOverload(t *Table, name string, kind SymbolKind, ref hir.ItemRef, span source.Span) {
	t.Declare(t.Global, Symbol{Name: name, Kind: kind, Item: ref, Span: span})
}

func declareEnumCtors(t *Table, file source.FileID, bag *diag.Bag, enumRef hir.ItemRef, e hir.Enumeration) {
	for _, ctor := range e.Constructors {
		if ctor.Anon || ctor.Name == "" {
			continue
		}

		if _, ok := t.Scope(t.Global).Names[ctor.Name]; ok {
			bag.Push(diag.Errorf(diag.ScopeDuplicateEnumCtor, file, e.Span,
				"redefinition of enum constructor \""+ctor.Name+"\""))
		}

		t.Declare(t.Global, Symbol{Name: ctor.Name, Kind: SymEnumCtor, Item: enumRef, Span: e.Span})
	}
}

// checkDuplicateFunctionSignatures flags two functions sharing a name and
// an identical parameter-type signature: a legal overload set needs at
// least one differing parameter type, so an exact repeat is always a
// mistake rather than a real overload (§4.8/§4.10's overload-resolution
// contract presupposes every candidate in a set is distinguishable).
func checkDuplicateFunctionSignatures(t *Table, file source.FileID, model *hir.Model, bag *diag.Bag) {
	s := t.Scope(t.Global)

	for name, ids := range s.Names {
		if len(ids) < 2 {
			continue
		}

		seen := make(map[string]source.Span, len(ids))

		for _, id := range ids {
			sym := t.Symbol(id)
			if sym.Kind != SymFunction {
				continue
			}

			f := model.Functions.Get(sym.Item.Index)
			key := signatureKey(&f)

			if prior, dup := seen[key]; dup {
				bag.Push(diag.Errorf(diag.ScopeDuplicateFunction, file, f.Span,
					"function \""+name+"\" redeclares an identical signature (first declared at "+
						prior.String()+")"))

				continue
			}

			seen[key] = f.Span
		}
	}
}

func signatureKey(f *hir.Function) string {
	key := make([]byte, 0, 32)

	for _, p := range f.Params {
		key = append(key, typeKey(f.Types, p.Type)...)
		key = append(key, ',')
	}

	return string(key)
}

// typeKey builds a structural string key for a TypeRef, ignoring names and
// var/opt/set modifiers that don't affect overload distinguishability at
// this coarse a check (real disambiguation belongs to §4.10's ranked
// overload resolution; this is only a same-signature duplicate filter).
func typeKey(types *hir.Types, idx hir.TypeIdx) string {
	if idx == arena.NoIndex {
		return "?"
	}

	ty := types.Get(idx)

	switch ty.Kind {
	case hir.TPrimitive:
		return "p:" + ty.Primitive
	case hir.TDomain:
		return "d"
	case hir.TAny:
		return "any"
	case hir.TArray:
		k := "array["
		for _, ix := range ty.Index {
			k += typeKey(types, ix) + ";"
		}

		return k + "]" + typeKey(types, ty.Element)
	case hir.TTuple:
		k := "tuple("
		for _, f := range ty.TupleFields {
			k += typeKey(types, f) + ","
		}

		return k + ")"
	case hir.TRecord:
		k := "record("
		for _, f := range ty.RecordFields {
			k += f.Name + ":" + typeKey(types, f.Type) + ","
		}

		return k + ")"
	default:
		return "?"
	}
}
