package search

import (
	"github.com/nickrallison/svql-go/matchstate"
	"github.com/nickrallison/svql-go/netlist"
)

// Embedding is one complete, self-consistent subgraph match: a bijective
// mapping from every pattern gate to a distinct design gate, plus the
// boundary resolution needed to read the match back in terms of the
// pattern's named primary I/O (spec §3 Embedding, §4.5.6).
type Embedding struct {
	// CellMapping maps every pattern gate node to the design gate node it
	// was bound to.
	CellMapping map[netlist.CellRef]netlist.CellRef

	// InputByName maps a pattern input port name to the single design node
	// that uniquely drives every use of that input within this embedding.
	// A name is absent if its pattern input binds to more than one design
	// source (ambiguous) or is unused.
	InputByName map[string]netlist.CellRef

	// OutputByName maps a pattern output port name to the single design
	// node uniquely driving that output in this embedding.
	OutputByName map[string]netlist.CellRef

	// Bindings is the full set of boundary source bindings this embedding
	// committed (every external Io pattern source bit, not just the ones
	// resolvable to a single named primary I/O): spec §4.5.5's dedup
	// signature is defined over this set, not the name-resolved views
	// above. Constant pattern sources are checked pin by pin against the
	// design constant and never appear here.
	Bindings map[matchstate.PatSrcKey]matchstate.DesSrcKey
}

// Len returns the number of pattern gates mapped (the needle's gate
// count).
func (e Embedding) Len() int { return len(e.CellMapping) }
