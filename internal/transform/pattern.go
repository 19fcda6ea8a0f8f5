package transform

import (
	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/tir"
)

// FoldPattern is Base's identity pattern copy, mirroring FoldExpr's
// structural recursion for the pattern arena.
func (Base) FoldPattern(self Folder, src, dst *tir.ItemData, idx tir.PatternIdx) tir.PatternIdx {
	if idx == arena.NoIndex {
		return arena.NoIndex
	}

	p := src.Patterns.Get(idx)

	switch p.Kind {
	case tir.PCall:
		p.CtorItem = self.Remap(self, p.CtorItem)
		p.Elems = foldPatternList(self, src, dst, p.Elems)
	case tir.PTuple:
		p.Elems = foldPatternList(self, src, dst, p.Elems)
	case tir.PRecord:
		fields := make([]tir.RecordPatternField, len(p.Fields))
		for i, f := range p.Fields {
			fields[i] = tir.RecordPatternField{Name: f.Name, Pattern: self.FoldPattern(self, src, dst, f.Pattern)}
		}

		p.Fields = fields
	}

	return dst.Patterns.Alloc(p)
}
