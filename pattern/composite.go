package pattern

import (
	"errors"

	"github.com/nickrallison/svql-go/netlist"
)

// ErrTooFewLeaves is returned by RecurringAndTree/RecurringOrTree when fewer
// than two leaves are supplied; a recurring gate tree needs at least one
// gate to be meaningful.
var ErrTooFewLeaves = errors.New("pattern: recurring gate tree needs at least 2 leaves")

// RecurringAndTree folds leaves left-to-right into a chain of single-bit AND
// gates: ((leaves[0] & leaves[1]) & leaves[2]) & ...
//
// This mirrors the source composite's recursive RecAnd structure (an AndGate
// plus an optional nested child feeding one of its inputs), flattened to the
// chain shape that structure always takes when every layer is anchored at
// the prior layer's output.
func RecurringAndTree(b *netlist.Builder, leaves []netlist.Source) (netlist.CellID, error) {
	return recurringChain(b.AddAnd, leaves)
}

// RecurringOrTree is RecurringAndTree's OR-chain counterpart.
func RecurringOrTree(b *netlist.Builder, leaves []netlist.Source) (netlist.CellID, error) {
	return recurringChain(b.AddOr, leaves)
}

func recurringChain(addBinary func(a, bIn []netlist.Source) netlist.CellID, leaves []netlist.Source) (netlist.CellID, error) {
	if len(leaves) < 2 {
		return 0, ErrTooFewLeaves
	}
	acc := addBinary([]netlist.Source{leaves[0]}, []netlist.Source{leaves[1]})
	for _, leaf := range leaves[2:] {
		acc = addBinary([]netlist.Source{netlist.Out(acc, 0)}, []netlist.Source{leaf})
	}
	return acc, nil
}

// ChainDepth reports how many binary-gate layers a chain of the given leaf
// count produces, i.e. len(leaves)-1.
func ChainDepth(numLeaves int) int {
	if numLeaves < 2 {
		return 0
	}
	return numLeaves - 1
}
