package netlist_test

import (
	"testing"

	"github.com/nickrallison/svql-go/cellkind"
	"github.com/nickrallison/svql-go/netlist"
)

func TestBuilderWiresAndGate(t *testing.T) {
	b := netlist.NewBuilder("and2")
	a := b.AddInput("a", 1)
	c := b.AddInput("b", 1)
	and := b.AddAnd(netlist.Bits(a, 1), netlist.Bits(c, 1))
	out := b.AddOutput("y", netlist.Bits(and, 1))
	d := b.Build()

	if d.NumCells() != 4 {
		t.Fatalf("NumCells() = %d, want 4", d.NumCells())
	}
	if d.Cell(and).Kind != cellkind.And {
		t.Errorf("expected And cell")
	}
	outCell := d.Cell(out)
	if len(outCell.Ports["in"]) != 1 {
		t.Fatalf("expected 1 output source")
	}
	src := outCell.Ports["in"][0]
	if src.IsConst || src.Driver != and {
		t.Errorf("output not wired to and gate: %+v", src)
	}
}

func TestCellRefEquality(t *testing.T) {
	b := netlist.NewBuilder("d")
	id := b.AddInput("x", 1)
	d := b.Build()

	r1 := d.Ref(id)
	r2 := d.Ref(id)
	if r1 != r2 {
		t.Errorf("expected equal CellRefs for same (design, id)")
	}

	other := netlist.NewBuilder("d2").Build()
	r3 := netlist.CellRef{Design: other, ID: id}
	if r1 == r3 {
		t.Errorf("expected different designs to produce distinct CellRefs")
	}
}

func TestPositionalSourcesFollowsPortOrder(t *testing.T) {
	b := netlist.NewBuilder("mux")
	sel := b.AddInput("sel", 1)
	tIn := b.AddInput("t", 1)
	fIn := b.AddInput("f", 1)
	mux := b.AddMux(netlist.Out(sel, 0), netlist.Bits(tIn, 1), netlist.Bits(fIn, 1))
	d := b.Build()

	srcs := d.Cell(mux).PositionalSources()
	if len(srcs) != 3 {
		t.Fatalf("expected 3 positional sources (sel,t,f), got %d", len(srcs))
	}
	if srcs[0].Driver != sel || srcs[1].Driver != tIn || srcs[2].Driver != fIn {
		t.Errorf("positional sources out of order: %+v", srcs)
	}
}

func TestConstSource(t *testing.T) {
	b := netlist.NewBuilder("const")
	out := b.AddOutput("y", []netlist.Source{netlist.Const(netlist.Trit1)})
	d := b.Build()

	src := d.Cell(out).Ports["in"][0]
	if !src.IsConst || src.Const != netlist.Trit1 {
		t.Errorf("expected const source Trit1, got %+v", src)
	}
}
