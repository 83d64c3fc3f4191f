// Package svql is the external interface described by spec §6:
// FindSubgraphs enumerates every embedding of a needle pattern design
// inside a haystack design. Everything else in this module — netlist
// construction, graph indexing, anchor selection, backtracking — is
// implementation detail reached through this one entry point.
package svql

import (
	"github.com/nickrallison/svql-go/graphindex"
	"github.com/nickrallison/svql-go/netlist"
	"github.com/nickrallison/svql-go/search"
)

// Config, ConfigBuilder and DedupeMode are re-exported from package search
// so callers of this package never need to import it directly.
type (
	Config        = search.Config
	ConfigBuilder = search.ConfigBuilder
	DedupeMode    = search.DedupeMode
	// Embedding is one complete subgraph match.
	Embedding = search.Embedding
)

const (
	// DedupeNone is the most precise dedupe mode: boundary bindings count
	// toward the match signature.
	DedupeNone = search.None
	// DedupeGatesOnly collapses matches sharing the same mapped gate set,
	// ignoring boundary bindings (collapses commutative-input
	// automorphisms).
	DedupeGatesOnly = search.GatesOnly
)

// DefaultConfig returns the default matching configuration: exact pin
// counts, no automorphism collapsing.
func DefaultConfig() Config { return search.DefaultConfig() }

// NewConfigBuilder starts a fluent Config builder.
func NewConfigBuilder() ConfigBuilder { return search.NewConfigBuilder() }

// EmbeddingSet is the full, deduplicated result of one FindSubgraphs call.
type EmbeddingSet struct {
	Matches []Embedding
}

// Len returns the number of matches.
func (s EmbeddingSet) Len() int { return len(s.Matches) }

// IsEmpty reports whether no matches were found.
func (s EmbeddingSet) IsEmpty() bool { return len(s.Matches) == 0 }

// FindSubgraphs enumerates every embedding of needle within haystack under
// cfg. It builds a fresh graphindex.Index for each design; callers
// matching the same needle or haystack repeatedly should build and reuse
// indices directly through package graphindex (see package session for a
// cached, concurrent runner over many needle/haystack pairs).
func FindSubgraphs(needle, haystack *netlist.Design, cfg Config) EmbeddingSet {
	pIndex := graphindex.Build(needle)
	dIndex := graphindex.Build(haystack)
	return FindSubgraphsIndexed(pIndex, dIndex, cfg)
}

// FindSubgraphsIndexed runs the search directly over pre-built indices,
// skipping index construction, so a caller can amortize index construction
// across many searches against the same needle or haystack. Package session
// does the same by calling search.Run on its cached indices.
func FindSubgraphsIndexed(pIndex, dIndex *graphindex.Index, cfg Config) EmbeddingSet {
	return EmbeddingSet{Matches: search.Run(pIndex, dIndex, cfg)}
}
