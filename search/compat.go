package search

import (
	"github.com/nickrallison/svql-go/graphindex"
	"github.com/nickrallison/svql-go/netlist"
)

// cellsCompatible is the cheap, pre-connectivity check every candidate
// must pass before the more expensive pin-by-pin walk: same kind, and an
// arity that respects cfg.MatchLength (spec §4.5.1).
func cellsCompatible(p, d netlist.CellRef, pIndex, dIndex *graphindex.Index, cfg Config) bool {
	if p.Kind() != d.Kind() {
		return false
	}
	pLen := len(pIndex.PositionalSources(p))
	dLen := len(dIndex.PositionalSources(d))
	if cfg.MatchLength {
		return pLen == dLen
	}
	return dLen >= pLen
}
