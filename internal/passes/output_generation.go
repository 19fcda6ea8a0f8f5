package passes

import (
	"sort"

	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/tir"
	"github.com/shackle-rs/mzc/internal/transform"
	"github.com/shackle-rs/mzc/internal/types"
)

// OutputGeneration implements §4.14's first pass: gather every `output`
// item by section, join same-section items with `concat` calls into one
// declaration named `mzn_output_<section>`, and mark every declaration
// that is a candidate for an implicit solution output — non-par, carrying
// no annotation, no user-supplied body — with Output.
func OutputGeneration(ctx *Context, m *tir.Model) (*tir.Model, error) {
	og := &outputGenFolder{ctx: ctx, bySection: map[string][]tir.ExprIdx{}}
	og.collect(m)

	out := transform.Run(og, m)

	og.emit(out)

	return out, nil
}

type outputGenFolder struct {
	transform.Base

	ctx *Context

	bySection    map[string][]tir.ExprIdx
	sectionOrder []string
	sectionData  map[string]*tir.ItemData
}

// collect walks the source model creating one shared ItemData per output
// section, in sorted section order, before Run rebuilds the model; the
// items' expressions are folded into it by FoldOutput below, and emit
// drops the Output items from the rewritten model's item list.
func (og *outputGenFolder) collect(m *tir.Model) {
	og.sectionData = map[string]*tir.ItemData{}

	for _, ref := range m.Items {
		if ref.Kind != tir.ItemOutput {
			continue
		}

		o := m.Outputs.Get(ref.Index)
		section := o.Section

		if _, ok := og.sectionData[section]; !ok {
			og.sectionOrder = append(og.sectionOrder, section)
			data := tir.NewItemData(o.Span)
			og.sectionData[section] = &data
		}
	}

	sort.Strings(og.sectionOrder)
}

// FoldOutput folds the output item's expression from its own arenas into
// the shared section ItemData with Base's FoldExpr and records the result
// for the declaration emit adds once folding finishes.
func (og *outputGenFolder) FoldOutput(self transform.Folder, dst *tir.Model, o tir.Output) tir.Output {
	data := og.sectionData[o.Section]
	folded := og.Base.FoldExpr(self, &o.ItemData, data, o.Expr)
	og.bySection[o.Section] = append(og.bySection[o.Section], folded)

	// Return the item unchanged; it is removed from dst's
	// Items list once every source item has been visited (see emit).
	return o
}

// emit appends one declaration per collected section, joining its output
// items pairwise with `concat` lookup calls, and strips the now-redundant Output items from
// the rebuilt model's item list. It also marks every declaration with no
// body, no annotation, and a non-par type as an implicit output (§4.14).
func (og *outputGenFolder) emit(out *tir.Model) {
	filtered := out.Items[:0]

	for _, ref := range out.Items {
		if ref.Kind == tir.ItemOutput {
			continue
		}

		filtered = append(filtered, ref)
	}

	out.Items = filtered

	for _, section := range og.sectionOrder {
		exprs := og.bySection[section]
		data := og.sectionData[section]

		body := exprs[0]
		for _, e := range exprs[1:] {
			// "concat" has no well-known function item of its own (it is a
			// stdlib builtin, §9.1's well-known identifier registry names
			// it but binds no Function item to it) — leave it as an open
			// lookup call the same way string-interpolation desugaring
			// does in HIR, for a backend to resolve.
			concat := data.Exprs.Alloc(tir.Expr{
				Kind:       tir.ELookupCall,
				LookupName: "concat",
				Elems:      []tir.ExprIdx{body, e},
				Origin:     tir.Introduced("output-generation"),
			})
			body = concat
		}

		name := "mzn_output_" + section
		if section == "" {
			name = "mzn_output_default"
		}

		decl := tir.Declaration{ItemData: *data, Name: name, Body: body}
		out.AddDeclaration(decl)
	}

	for _, ref := range out.Items {
		if ref.Kind != tir.ItemDeclaration {
			continue
		}

		d := out.Declarations.Get(ref.Index)
		if cand := isImplicitOutputCandidate(og.ctx.Interner, d); cand != d.Output {
			d.Output = cand
			out.Declarations.Set(ref.Index, d)
		}
	}
}

// isImplicitOutputCandidate reports whether d is eligible for the implicit
// "decision variable with no explicit output treatment" marker: a
// non-fixed (var) declaration with no right-hand side and no annotations.
func isImplicitOutputCandidate(in *types.Interner, d tir.Declaration) bool {
	if d.Body != arena.NoIndex {
		return false
	}

	if len(d.Annotations) != 0 {
		return false
	}

	return in.Lookup(d.Type).Inst == types.InstVar
}
