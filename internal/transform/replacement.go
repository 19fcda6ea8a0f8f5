package transform

import "github.com/shackle-rs/mzc/internal/tir"

// ReplacementMap tracks old-to-new tir.ItemRef mappings across one fold.
// Most passes never need to consult it: Run assigns each kept item's new
// index by appending to an empty destination arena in the same order the
// source was walked, so an item's position among same-kind items is
// stable by construction as long as every item gets carried over. The
// map only matters once a pass breaks that assumption — dropping an item
// entirely or
// splitting one item into several (type-specialise emitting a
// monomorphised copy) means a later item's new index no longer equals
// its old one, and any ResolvedIdentifier/ECall.Callee/PCall.CtorItem
// pointing at the moved item needs to follow it.
type ReplacementMap struct {
	items map[tir.ItemRef]tir.ItemRef
}

// NewReplacementMap constructs an empty map.
func NewReplacementMap() *ReplacementMap {
	return &ReplacementMap{items: make(map[tir.ItemRef]tir.ItemRef, 32)}
}

// Record notes that oldRef now lives at newRef.
func (rm *ReplacementMap) Record(oldRef, newRef tir.ItemRef) {
	rm.items[oldRef] = newRef
}

// Drop notes that oldRef has no replacement — anything still pointing at
// it after this fold is a dangling reference the pass should have
// rewritten away before dropping the item.
func (rm *ReplacementMap) Drop(oldRef tir.ItemRef) {
	delete(rm.items, oldRef)
}

// Resolve follows ref through every recorded substitution (a moved item
// may itself have been superseded by a later pass), returning the final
// target and whether ref was known at all.
func (rm *ReplacementMap) Resolve(ref tir.ItemRef) (tir.ItemRef, bool) {
	seen := make(map[tir.ItemRef]bool, 4)

	cur, ok := ref, true

	for ok {
		if seen[cur] {
			break // a cycle would mean a pass mis-recorded a self-loop; stop rather than spin
		}

		seen[cur] = true

		next, found := rm.items[cur]
		if !found {
			return cur, cur != ref
		}

		cur, ok = next, true
	}

	return cur, true
}

// RunTracked behaves like Run, additionally recording every kept item's
// old-to-new mapping in rm as it goes — the tracked counterpart a pass
// that may drop or split items should call instead of plain Run.
func RunTracked(self Folder, src *tir.Model, rm *ReplacementMap) *tir.Model {
	dst := tir.NewModel()

	for _, ref := range src.Items {
		var newRef tir.ItemRef

		switch ref.Kind {
		case tir.ItemAnnotation:
			a := src.Annotations.Get(ref.Index)
			newRef = dst.AddAnnotation(self.FoldAnnotation(self, dst, a))
		case tir.ItemAssignment:
			a := src.Assignments.Get(ref.Index)
			newRef = dst.AddAssignment(self.FoldAssignment(self, dst, a))
		case tir.ItemConstraint:
			c := src.Constraints.Get(ref.Index)
			newRef = dst.AddConstraint(self.FoldConstraint(self, dst, c))
		case tir.ItemDeclaration:
			d := src.Declarations.Get(ref.Index)
			newRef = dst.AddDeclaration(self.FoldDeclaration(self, dst, d))
		case tir.ItemEnumeration:
			e := src.Enumerations.Get(ref.Index)
			newRef = dst.AddEnumeration(self.FoldEnumeration(self, dst, e))
		case tir.ItemFunction:
			fn := src.Functions.Get(ref.Index)
			newRef = dst.AddFunction(self.FoldFunction(self, dst, fn))
		case tir.ItemOutput:
			o := src.Outputs.Get(ref.Index)
			newRef = dst.AddOutput(self.FoldOutput(self, dst, o))
		case tir.ItemSolve:
			s := src.Solves.Get(ref.Index)
			newRef = dst.AddSolve(self.FoldSolve(self, dst, s))
		case tir.ItemTypeAlias:
			t := src.TypeAliases.Get(ref.Index)
			newRef = dst.AddTypeAlias(self.FoldTypeAlias(self, dst, t))
		}

		rm.Record(ref, newRef)
	}

	return dst
}

// RemapItem follows ref through rm, falling back to ref unchanged when rm
// is nil or has no entry — the common case for a pass that never moves
// items, so call sites do not need a nil check of their own.
func RemapItem(rm *ReplacementMap, ref tir.ItemRef) tir.ItemRef {
	if rm == nil {
		return ref
	}

	resolved, ok := rm.Resolve(ref)
	if !ok {
		return ref
	}

	return resolved
}
