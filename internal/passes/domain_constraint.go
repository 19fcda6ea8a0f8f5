package passes

import (
	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/tir"
	"github.com/shackle-rs/mzc/internal/transform"
)

// DomainConstraint implements the rewrite-domains pass (§4.14): a bounded
// domain expression on a variable declaration (`var 1..n: x;`) is lifted
// into a stand-alone constraint comparing the declaration's identifier
// against the bound, leaving only set-like or structural domains on the
// declaration itself. §9.2 records this pass's position as authoritative
// only so long as it never changes a declaration's type — it never does
// here, since the declaration keeps its original Type and only its Domain
// slot and the model's item list change.
//
// This pass needs the declaration's own (freshly allocated) ItemRef to
// build the lifted constraint's self-reference, which transform.Run's
// generic per-item dispatch does not expose — so it drives the fold loop
// itself instead of through Run, reusing transform.Base only for the
// structural expr/pattern/domain copies every other item kind still needs.
func DomainConstraint(ctx *Context, m *tir.Model) (*tir.Model, error) {
	f := domainCopyFolder{}
	dst := tir.NewModel()

	for _, ref := range m.Items {
		switch ref.Kind {
		case tir.ItemDeclaration:
			d := m.Declarations.Get(ref.Index)
			if _, bound := liftDeclarationDomain(f, dst, d); bound != nil {
				dst.AddConstraint(tir.Constraint{
					ItemData: *bound.data,
					Expr:     bound.expr,
				})
			}
		case tir.ItemAnnotation:
			dst.AddAnnotation(f.FoldAnnotation(f, dst, m.Annotations.Get(ref.Index)))
		case tir.ItemAssignment:
			dst.AddAssignment(f.FoldAssignment(f, dst, m.Assignments.Get(ref.Index)))
		case tir.ItemConstraint:
			dst.AddConstraint(f.FoldConstraint(f, dst, m.Constraints.Get(ref.Index)))
		case tir.ItemEnumeration:
			dst.AddEnumeration(f.FoldEnumeration(f, dst, m.Enumerations.Get(ref.Index)))
		case tir.ItemFunction:
			dst.AddFunction(f.FoldFunction(f, dst, m.Functions.Get(ref.Index)))
		case tir.ItemOutput:
			dst.AddOutput(f.FoldOutput(f, dst, m.Outputs.Get(ref.Index)))
		case tir.ItemSolve:
			dst.AddSolve(f.FoldSolve(f, dst, m.Solves.Get(ref.Index)))
		case tir.ItemTypeAlias:
			dst.AddTypeAlias(f.FoldTypeAlias(f, dst, m.TypeAliases.Get(ref.Index)))
		}
	}

	return dst, nil
}

type domainCopyFolder struct{ transform.Base }

type liftedBound struct {
	data *tir.ItemData
	expr tir.ExprIdx
}

// liftDeclarationDomain folds d's body/annotations into a fresh ItemData,
// adds the declaration to dst, and — when d's domain was bounded — returns
// the bound expression, rewritten to compare it against a reference to the
// declaration just added, ready to become a stand-alone constraint.
func liftDeclarationDomain(f domainCopyFolder, dst *tir.Model, d tir.Declaration) (tir.ItemRef, *liftedBound) {
	src := d.ItemData
	out := tir.NewItemData(d.Span)

	hasBound := d.Domain != arena.NoIndex && src.Domains.Get(d.Domain).Kind == tir.DomBounded

	var boundExpr tir.ExprIdx
	if hasBound {
		boundExpr = f.FoldExpr(f, &src, &out, src.Domains.Get(d.Domain).Bounded)
		d.Domain = arena.NoIndex
	} else {
		d.Domain = f.FoldDomain(f, &src, &out, d.Domain)
	}

	d.Body = f.FoldExpr(f, &src, &out, d.Body)
	d.Annotations = foldExprListFor(f, &src, &out, d.Annotations)
	d.ItemData = out

	ref := dst.AddDeclaration(d)

	if !hasBound {
		return ref, nil
	}

	// The constraint is its own item with its own private arenas (I1):
	// copy the bound expression tree across from the declaration's arena
	// rather than sharing it, then build `x in bound` there.
	decl := dst.Declarations.Get(ref.Index)
	cdata := tir.NewItemData(decl.Span)
	copiedBound := f.FoldExpr(f, &decl.ItemData, &cdata, boundExpr)

	selfIdent := cdata.Exprs.Alloc(tir.Expr{
		Kind:   tir.EIdent,
		Type:   decl.Type,
		Ident:  tir.ResolvedIdentifier{Kind: tir.ResolvedDeclaration, Item: ref},
		Origin: tir.Introduced("domain-constraint"),
	})

	membership := cdata.Exprs.Alloc(tir.Expr{
		Kind:       tir.ELookupCall,
		LookupName: "in",
		Elems:      []tir.ExprIdx{selfIdent, copiedBound},
		Origin:     tir.Introduced("domain-constraint"),
	})

	return ref, &liftedBound{data: &cdata, expr: membership}
}

func foldExprListFor(self transform.Folder, src, dst *tir.ItemData, in []tir.ExprIdx) []tir.ExprIdx {
	if in == nil {
		return nil
	}

	out := make([]tir.ExprIdx, len(in))
	for i, e := range in {
		out[i] = self.FoldExpr(self, src, dst, e)
	}

	return out
}
