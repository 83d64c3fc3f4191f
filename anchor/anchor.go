// Package anchor picks the starting kind and node pair the search engine
// grows every embedding from (spec §4.3): the rarest gate kind shared by
// both the needle and haystack, so the outer loop in package search
// iterates the fewest possible design candidates.
package anchor

import (
	"github.com/nickrallison/svql-go/cellkind"
	"github.com/nickrallison/svql-go/graphindex"
	"github.com/nickrallison/svql-go/netlist"
)

// Choice is the result of anchor selection: a gate kind present in both
// indices, the needle nodes of that kind, and the haystack nodes of that
// kind.
type Choice struct {
	Kind     cellkind.Kind
	PatNodes []netlist.CellRef
	DesNodes []netlist.CellRef
}

// Choose picks, among the gate kinds present in both pIndex and dIndex, the
// one with the fewest dIndex nodes, breaking ties by cellkind.Kind.Rank()
// (declaration order), and returns
// its node lists in both indices. ok is false if the two designs share no
// gate kind at all, in which case no embedding can possibly exist.
func Choose(pIndex, dIndex *graphindex.Index) (choice Choice, ok bool) {
	best := cellkind.Kind(-1)
	bestSize := -1

	for _, k := range gateKindsInDeclarationOrder() {
		pNodes := pIndex.CellsOfKind(k)
		if len(pNodes) == 0 {
			continue
		}
		dNodes := dIndex.CellsOfKind(k)
		if len(dNodes) == 0 {
			continue
		}
		size := len(dNodes)
		if bestSize == -1 || size < bestSize || (size == bestSize && k.Rank() < best.Rank()) {
			best = k
			bestSize = size
		}
	}

	if bestSize == -1 {
		return Choice{}, false
	}

	return Choice{
		Kind:     best,
		PatNodes: pIndex.CellsOfKind(best),
		DesNodes: dIndex.CellsOfKind(best),
	}, true
}

// gateKindsInDeclarationOrder lists every kind that can appear as an
// internal graph node, in cellkind's declaration order, which is also the
// tie-break order (Kind.Rank).
func gateKindsInDeclarationOrder() []cellkind.Kind {
	return []cellkind.Kind{
		cellkind.Buf, cellkind.Not, cellkind.And, cellkind.Or, cellkind.Xor,
		cellkind.Mux, cellkind.Adc, cellkind.Aig, cellkind.Eq, cellkind.ULt,
		cellkind.SLt, cellkind.Shl, cellkind.UShr, cellkind.SShr, cellkind.XShr,
		cellkind.Mul, cellkind.UDiv, cellkind.UMod, cellkind.SDivTrunc,
		cellkind.SDivFloor, cellkind.SModTrunc, cellkind.SModFloor, cellkind.Dff,
	}
}
