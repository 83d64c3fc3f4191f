package search

import (
	"log/slog"

	"github.com/nickrallison/svql-go/anchor"
	"github.com/nickrallison/svql-go/graphindex"
	"github.com/nickrallison/svql-go/matchstate"
)

// Run executes the full subgraph isomorphism search (spec §4.5): picks a
// shared anchor kind, tries every design node of that kind as the root of
// a backtracking search, and returns every complete embedding found,
// deduplicated per cfg.Dedupe. A nil/empty result means no embedding
// exists; Run never returns an error (spec §4.5.7 — failure to find a
// match is an ordinary empty result, not an error condition).
func Run(pIndex, dIndex *graphindex.Index, cfg Config) []Embedding {
	if pIndex.GateCount() == 0 || dIndex.GateCount() == 0 {
		return nil
	}

	choice, ok := anchor.Choose(pIndex, dIndex)
	if !ok {
		slog.Debug("search: no shared gate kind between pattern and design")
		return nil
	}

	pAnchor := choice.PatNodes[0]
	for _, n := range choice.PatNodes[1:] {
		if n.DebugIndex() < pAnchor.DebugIndex() {
			pAnchor = n
		}
	}
	slog.Debug("search: anchor selected", "kind", choice.Kind.String(),
		"pattern_node", pIndex.NodeSummary(pAnchor), "design_candidates", len(choice.DesNodes))

	var results []Embedding
	for _, dAnchor := range choice.DesNodes {
		if !cellsCompatible(pAnchor, dAnchor, pIndex, dIndex, cfg) {
			continue
		}
		state := matchstate.New(pIndex.GateCount())
		ok, inserted := tryBindCandidate(pAnchor, dAnchor, pIndex, dIndex, state)
		if !ok {
			continue
		}
		state.Map(pAnchor, dAnchor)
		backtrack(pIndex, dIndex, state, cfg, &results)
		state.Unmap(pAnchor, dAnchor)
		state.BindingsRemoveKeys(inserted)
	}

	out := dedupe(results, cfg)
	slog.Debug("search: complete", "raw_matches", len(results), "deduped_matches", len(out))
	return out
}

func backtrack(pIndex, dIndex *graphindex.Index, state *matchstate.State, cfg Config, results *[]Embedding) {
	if state.Done() {
		*results = append(*results, synthesize(state, pIndex, dIndex))
		return
	}

	p := selectNext(pIndex, state)
	candidates := candidatesFor(p, pIndex, dIndex, state)
	slog.Debug("search: descend", "pattern_node", pIndex.NodeSummary(p), "candidates", len(candidates))

	for _, d := range candidates {
		if !cellsCompatible(p, d, pIndex, dIndex, cfg) {
			continue
		}
		ok, inserted := tryBindCandidate(p, d, pIndex, dIndex, state)
		if !ok {
			continue
		}
		state.Map(p, d)
		backtrack(pIndex, dIndex, state, cfg, results)
		state.Unmap(p, d)
		state.BindingsRemoveKeys(inserted)
	}
}
