package tir

import "github.com/shackle-rs/mzc/internal/arena"

// Model is one snapshot of the TIR, produced either by lowering (internal/
// lower) or by one pass of the rewrite pipeline (internal/passes) consuming
// the previous Model and producing a fresh one (§3.6: "each pass takes
// ownership, produces a new arena-backed model").
type Model struct {
	Annotations  *arena.Arena[Annotation]
	Assignments  *arena.Arena[Assignment]
	Constraints  *arena.Arena[Constraint]
	Declarations *arena.Arena[Declaration]
	Enumerations *arena.Arena[Enumeration]
	Functions    *arena.Arena[Function]
	Outputs      *arena.Arena[Output]
	Solves       *arena.Arena[Solve]
	TypeAliases  *arena.Arena[TypeAlias]

	Items []ItemRef
}

// NewModel constructs an empty Model ready for a lowerer or pass to
// populate.
func NewModel() *Model {
	return &Model{
		Annotations:  arena.New[Annotation](8),
		Assignments:  arena.New[Assignment](16),
		Constraints:  arena.New[Constraint](32),
		Declarations: arena.New[Declaration](64),
		Enumerations: arena.New[Enumeration](8),
		Functions:    arena.New[Function](32),
		Outputs:      arena.New[Output](4),
		Solves:       arena.New[Solve](1),
		TypeAliases:  arena.New[TypeAlias](8),
	}
}

func (m *Model) AddAnnotation(a Annotation) ItemRef {
	idx := m.Annotations.Alloc(a)
	ref := ItemRef{Kind: ItemAnnotation, Index: idx}
	m.Items = append(m.Items, ref)

	return ref
}

func (m *Model) AddAssignment(a Assignment) ItemRef {
	idx := m.Assignments.Alloc(a)
	ref := ItemRef{Kind: ItemAssignment, Index: idx}
	m.Items = append(m.Items, ref)

	return ref
}

func (m *Model) AddConstraint(c Constraint) ItemRef {
	idx := m.Constraints.Alloc(c)
	ref := ItemRef{Kind: ItemConstraint, Index: idx}
	m.Items = append(m.Items, ref)

	return ref
}

func (m *Model) AddDeclaration(d Declaration) ItemRef {
	idx := m.Declarations.Alloc(d)
	ref := ItemRef{Kind: ItemDeclaration, Index: idx}
	m.Items = append(m.Items, ref)

	return ref
}

func (m *Model) AddEnumeration(e Enumeration) ItemRef {
	idx := m.Enumerations.Alloc(e)
	ref := ItemRef{Kind: ItemEnumeration, Index: idx}
	m.Items = append(m.Items, ref)

	return ref
}

func (m *Model) AddFunction(f Function) ItemRef {
	idx := m.Functions.Alloc(f)
	ref := ItemRef{Kind: ItemFunction, Index: idx}
	m.Items = append(m.Items, ref)

	return ref
}

func (m *Model) AddOutput(o Output) ItemRef {
	idx := m.Outputs.Alloc(o)
	ref := ItemRef{Kind: ItemOutput, Index: idx}
	m.Items = append(m.Items, ref)

	return ref
}

func (m *Model) AddSolve(s Solve) ItemRef {
	idx := m.Solves.Alloc(s)
	ref := ItemRef{Kind: ItemSolve, Index: idx}
	m.Items = append(m.Items, ref)

	return ref
}

func (m *Model) AddTypeAlias(t TypeAlias) ItemRef {
	idx := m.TypeAliases.Alloc(t)
	ref := ItemRef{Kind: ItemTypeAlias, Index: idx}
	m.Items = append(m.Items, ref)

	return ref
}

// RemoveItem drops ref from the source-ordered Items list; no pass in
// internal/passes calls it (inline-functions keeps the functions it
// inlines). The underlying arena slot is left as a
// tombstone — invariant I1 forbids index reuse, so nothing else may ever
// allocate into it.
func (m *Model) RemoveItem(ref ItemRef) {
	out := m.Items[:0]

	for _, it := range m.Items {
		if it != ref {
			out = append(out, it)
		}
	}

	m.Items = out
}

// ItemData returns the ItemData bundle backing ref, regardless of which
// arena it lives in.
func (m *Model) ItemData(ref ItemRef) *ItemData {
	switch ref.Kind {
	case ItemAnnotation:
		v := m.Annotations.Get(ref.Index)

		return &v.ItemData
	case ItemAssignment:
		v := m.Assignments.Get(ref.Index)

		return &v.ItemData
	case ItemConstraint:
		v := m.Constraints.Get(ref.Index)

		return &v.ItemData
	case ItemDeclaration:
		v := m.Declarations.Get(ref.Index)

		return &v.ItemData
	case ItemEnumeration:
		v := m.Enumerations.Get(ref.Index)

		return &v.ItemData
	case ItemFunction:
		v := m.Functions.Get(ref.Index)

		return &v.ItemData
	case ItemOutput:
		v := m.Outputs.Get(ref.Index)

		return &v.ItemData
	case ItemSolve:
		v := m.Solves.Get(ref.Index)

		return &v.ItemData
	case ItemTypeAlias:
		v := m.TypeAliases.Get(ref.Index)

		return &v.ItemData
	default:
		return nil
	}
}
