package passes

import (
	"strconv"
	"strings"

	"github.com/shackle-rs/mzc/internal/tir"
	"github.com/shackle-rs/mzc/internal/types"
)

// NameMangle implements §4.14's name-mangle pass: every top-level function
// that shares its bare Name with at least one sibling gets a MangledName
// of the pretty-printable form `name<Ty1,Ty2,…>` plus a MangledTypes list
// recording the concrete per-parameter types that produced it — invariant
// I6, "after name mangling, every overloaded function name is unique
// within the top-level scope". A function with no same-named sibling keeps
// its bare name unmangled. Name matching in every later pass still goes by
// the original Name, never the mangled form, which exists purely for
// rendering (backend codegen, diagnostics).
func NameMangle(ctx *Context, m *tir.Model) (*tir.Model, error) {
	groups := map[string][]tir.ItemRef{}

	for _, ref := range m.Items {
		if ref.Kind != tir.ItemFunction {
			continue
		}

		fn := m.Functions.Get(ref.Index)
		groups[fn.Name] = append(groups[fn.Name], ref)
	}

	mangledOf := map[tir.ItemRef]string{}
	typesOf := map[tir.ItemRef][]types.TypeID{}
	seen := map[string]int{}

	for name, refs := range groups {
		if len(refs) == 1 {
			mangledOf[refs[0]] = name

			continue
		}

		for _, ref := range refs {
			fn := m.Functions.Get(ref.Index)

			paramTypes := make([]types.TypeID, len(fn.Params))
			names := make([]string, len(fn.Params))

			for i, p := range fn.Params {
				paramTypes[i] = p.Type
				names[i] = ctx.Interner.TypeName(p.Type)
			}

			base := name + "<" + strings.Join(names, ",") + ">"
			mangled := base

			if n := seen[base]; n > 0 {
				mangled = base + "#" + strconv.Itoa(n)
			}

			seen[base]++

			mangledOf[ref] = mangled
			typesOf[ref] = paramTypes
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
			fn := m.Functions.Get(ref.Index)
			fn.MangledName = mangledOf[ref]
			fn.MangledTypes = typesOf[ref]
			out.AddFunction(fn)
		case tir.ItemOutput:
			out.AddOutput(m.Outputs.Get(ref.Index))
		case tir.ItemSolve:
			out.AddSolve(m.Solves.Get(ref.Index))
		case tir.ItemTypeAlias:
			out.AddTypeAlias(m.TypeAliases.Get(ref.Index))
		}
	}

	return out, nil
}
