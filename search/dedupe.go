package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nickrallison/svql-go/matchstate"
)

// signature renders the sorted, de-duplicated design gate indices an
// embedding maps onto, optionally widened with the full boundary-bindings
// set too (spec §4.5.5: dedup mode None distinguishes embeddings that map
// the same gate set to different external sources, which requires the
// complete Io binding set, not just the names that happen to resolve
// unambiguously to a single primary I/O).
func signature(e Embedding, mode DedupeMode) string {
	ids := make([]int, 0, len(e.CellMapping))
	for _, d := range e.CellMapping {
		ids = append(ids, d.DebugIndex())
	}
	sort.Ints(ids)
	ids = dedupInts(ids)

	var b strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&b, "g%d;", id)
	}

	if mode == None {
		tokens := make([]string, 0, len(e.Bindings))
		for pat, des := range e.Bindings {
			tokens = append(tokens, patSrcKeyToken(pat)+"="+desSrcKeyToken(des))
		}
		sort.Strings(tokens)
		for _, t := range tokens {
			b.WriteString(t)
			b.WriteByte(';')
		}
	}

	return b.String()
}

func patSrcKeyToken(k matchstate.PatSrcKey) string {
	if node, ok := k.Node(); ok {
		return fmt.Sprintf("p:g%d.%d", node.DebugIndex(), k.Bit())
	}
	cval, _ := k.Const()
	return fmt.Sprintf("p:c%d", cval)
}

func desSrcKeyToken(k matchstate.DesSrcKey) string {
	if node, ok := k.Node(); ok {
		return fmt.Sprintf("d:g%d.%d", node.DebugIndex(), k.Bit())
	}
	cval, _ := k.Const()
	return fmt.Sprintf("d:c%d", cval)
}

func dedupInts(sorted []int) []int {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// dedupe removes embeddings that share a signature under cfg.Dedupe,
// keeping the first occurrence (spec §4.5.5).
func dedupe(embeddings []Embedding, cfg Config) []Embedding {
	seen := make(map[string]struct{}, len(embeddings))
	out := make([]Embedding, 0, len(embeddings))
	for _, e := range embeddings {
		sig := signature(e, cfg.Dedupe)
		if _, ok := seen[sig]; ok {
			continue
		}
		seen[sig] = struct{}{}
		out = append(out, e)
	}
	return out
}
