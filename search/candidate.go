package search

import (
	"sort"

	"github.com/nickrallison/svql-go/graphindex"
	"github.com/nickrallison/svql-go/matchstate"
	"github.com/nickrallison/svql-go/netlist"
)

// frontier returns every unmapped pattern gate adjacent, by fanin or
// fanout, to at least one already-mapped pattern gate.
func frontier(pIndex *graphindex.Index, state *matchstate.State) []netlist.CellRef {
	seen := make(map[netlist.CellRef]struct{})
	var out []netlist.CellRef
	add := func(n netlist.CellRef) {
		if !n.Kind().IsGate() || state.IsMapped(n) {
			return
		}
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	for p := range state.Mapping() {
		for f := range pIndex.FaninSet(p) {
			add(f)
		}
		for _, e := range pIndex.FanoutEdges(p) {
			add(e.Sink)
		}
	}
	return out
}

// selectNext picks the next pattern gate to extend the partial mapping
// with: the frontier node whose static intersect-fanout-of-fanin pool is
// smallest (MRV), falling back to the first unmapped gate in topological
// order if the pattern graph is disconnected from the anchor (spec §4.5,
// §4.3's adjacency-preference heuristic).
func selectNext(pIndex *graphindex.Index, state *matchstate.State) netlist.CellRef {
	candidates := frontier(pIndex, state)
	if len(candidates) == 0 {
		for _, n := range pIndex.NodesTopo() {
			if n.Kind().IsGate() && !state.IsMapped(n) {
				return n
			}
		}
		return netlist.CellRef{}
	}

	best := candidates[0]
	bestScore := len(pIndex.IntersectFanoutOfFanin(best))
	for _, c := range candidates[1:] {
		score := len(pIndex.IntersectFanoutOfFanin(c))
		if score < bestScore || (score == bestScore && c.DebugIndex() < best.DebugIndex()) {
			best = c
			bestScore = score
		}
	}
	return best
}

// candidatesFor computes the design nodes eligible to extend the mapping
// at pattern node p: nodes of the same kind, not already used, reachable
// from every already-mapped neighbor of p in the expected direction.
func candidatesFor(p netlist.CellRef, pIndex, dIndex *graphindex.Index, state *matchstate.State) []netlist.CellRef {
	var pool map[netlist.CellRef]struct{}
	narrowed := false

	intersectInto := func(set map[netlist.CellRef]struct{}) {
		narrowed = true
		if pool == nil {
			pool = set
			return
		}
		next := make(map[netlist.CellRef]struct{})
		for n := range pool {
			if _, ok := set[n]; ok {
				next[n] = struct{}{}
			}
		}
		pool = next
	}

	for f := range pIndex.FaninSet(p) {
		if df, ok := state.MappedTo(f); ok {
			intersectInto(dIndex.FanoutSet(df))
		}
	}
	for _, e := range pIndex.FanoutEdges(p) {
		if ds, ok := state.MappedTo(e.Sink); ok {
			intersectInto(dIndex.FaninSet(ds))
		}
	}

	kind := p.Kind()
	var out []netlist.CellRef
	if !narrowed {
		for _, d := range dIndex.CellsOfKind(kind) {
			if !state.IsUsedDesign(d) {
				out = append(out, d)
			}
		}
	} else {
		for d := range pool {
			if d.Kind() == kind && !state.IsUsedDesign(d) {
				out = append(out, d)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DebugIndex() < out[j].DebugIndex() })
	return out
}
