package search_test

import (
	"testing"

	"github.com/nickrallison/svql-go/graphindex"
	"github.com/nickrallison/svql-go/netlist"
	"github.com/nickrallison/svql-go/search"
)

func singleAndPattern() *netlist.Design {
	b := netlist.NewBuilder("and_pattern")
	a := b.AddInput("a", 1)
	c := b.AddInput("b", 1)
	and := b.AddAnd(netlist.Bits(a, 1), netlist.Bits(c, 1))
	b.AddOutput("y", netlist.Bits(and, 1))
	return b.Build()
}

func TestRunFindsSingleAndInHaystack(t *testing.T) {
	db := netlist.NewBuilder("haystack")
	a := db.AddInput("a", 1)
	bIn := db.AddInput("b", 1)
	cIn := db.AddInput("c", 1)
	and1 := db.AddAnd(netlist.Bits(a, 1), netlist.Bits(bIn, 1))
	or1 := db.AddOr(netlist.Bits(and1, 1), netlist.Bits(cIn, 1))
	db.AddOutput("y", netlist.Bits(or1, 1))
	haystack := db.Build()

	pIndex := graphindex.Build(singleAndPattern())
	dIndex := graphindex.Build(haystack)

	results := search.Run(pIndex, dIndex, search.DefaultConfig())
	if len(results) != 1 {
		t.Fatalf("expected exactly 1 match, got %d", len(results))
	}
	if results[0].Len() != 1 {
		t.Errorf("expected a 1-gate embedding, got %d gates", results[0].Len())
	}
}

func TestRunNoMatchWhenNoSharedKind(t *testing.T) {
	db := netlist.NewBuilder("haystack")
	a := db.AddInput("a", 1)
	bIn := db.AddInput("b", 1)
	or1 := db.AddOr(netlist.Bits(a, 1), netlist.Bits(bIn, 1))
	db.AddOutput("y", netlist.Bits(or1, 1))
	haystack := db.Build()

	pIndex := graphindex.Build(singleAndPattern())
	dIndex := graphindex.Build(haystack)

	results := search.Run(pIndex, dIndex, search.DefaultConfig())
	if len(results) != 0 {
		t.Fatalf("expected 0 matches, got %d", len(results))
	}
}

// buildCommutativeHaystack wires an AND gate whose "a"/"b" inputs are
// swapped relative to the most natural pattern-to-design name alignment,
// to exercise the commutative a<->b pairing trial in matchFanin.
func buildCommutativeHaystack() *netlist.Design {
	db := netlist.NewBuilder("haystack")
	a := db.AddInput("a", 1)
	bIn := db.AddInput("b", 1)
	// swapped: design AND's "a" port receives pattern's "b" source and
	// vice versa.
	and1 := db.AddAnd(netlist.Bits(bIn, 1), netlist.Bits(a, 1))
	db.AddOutput("y", netlist.Bits(and1, 1))
	return db.Build()
}

func TestRunMatchesCommutativeSwappedInputs(t *testing.T) {
	pIndex := graphindex.Build(singleAndPattern())
	dIndex := graphindex.Build(buildCommutativeHaystack())

	results := search.Run(pIndex, dIndex, search.DefaultConfig())
	if len(results) != 1 {
		t.Fatalf("expected the swapped-input AND to still match commutatively, got %d", len(results))
	}
}

func TestRunRespectsExactLengthMismatch(t *testing.T) {
	pb := netlist.NewBuilder("pattern")
	sel := pb.AddInput("sel", 1)
	tIn := pb.AddInput("t", 1)
	fIn := pb.AddInput("f", 1)
	mux := pb.AddMux(netlist.Out(sel, 0), netlist.Bits(tIn, 1), netlist.Bits(fIn, 1))
	pb.AddOutput("y", netlist.Bits(mux, 1))
	pattern := pb.Build()

	db := netlist.NewBuilder("design")
	sel2 := db.AddInput("sel", 1)
	tIn2 := db.AddInput("t", 2)
	fIn2 := db.AddInput("f", 2)
	mux2 := db.AddMux(netlist.Out(sel2, 0), netlist.Bits(tIn2, 2), netlist.Bits(fIn2, 2))
	db.AddOutput("y", netlist.Bits(mux2, 2))
	design := db.Build()

	pIndex := graphindex.Build(pattern)
	dIndex := graphindex.Build(design)

	exact := search.Run(pIndex, dIndex, search.NewConfigBuilder().ExactLength().Build())
	if len(exact) != 0 {
		t.Errorf("expected exact-length mode to reject width mismatch, got %d matches", len(exact))
	}

	superset := search.Run(pIndex, dIndex, search.NewConfigBuilder().SupersetLength().Build())
	if len(superset) != 1 {
		t.Errorf("expected superset-length mode to accept the wider design mux, got %d matches", len(superset))
	}
}
