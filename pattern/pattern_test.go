package pattern_test

import (
	"strings"
	"testing"

	"github.com/nickrallison/svql-go/netlist"
	"github.com/nickrallison/svql-go/pattern"
)

func TestGateHelpersMatchBuilder(t *testing.T) {
	b := netlist.NewBuilder("gates")
	a := b.AddInput("a", 1)
	c := b.AddInput("b", 1)

	and := pattern.And(b, netlist.Bits(a, 1), netlist.Bits(c, 1))
	d := b.Build()
	if d.Cell(and).Kind.String() != "And" {
		t.Errorf("expected And cell, got %v", d.Cell(and).Kind)
	}
}

func TestRecurringAndTreeChainsLeftToRight(t *testing.T) {
	b := netlist.NewBuilder("chain")
	var leaves []netlist.Source
	for i := 0; i < 4; i++ {
		in := b.AddInput("in", 1)
		leaves = append(leaves, netlist.Out(in, 0))
	}

	top, err := pattern.RecurringAndTree(b, leaves)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := b.Build()

	if pattern.ChainDepth(len(leaves)) != 3 {
		t.Errorf("expected chain depth 3 for 4 leaves")
	}

	// Walk the chain back to the first pair, counting AND gates.
	count := 0
	cur := top
	for {
		cell := d.Cell(cur)
		if cell.Kind.String() != "And" {
			t.Fatalf("expected And along the chain, got %v", cell.Kind)
		}
		count++
		aSrc := cell.Ports["a"][0]
		if aSrc.IsConst || d.Cell(aSrc.Driver).Kind.String() != "And" {
			break
		}
		cur = aSrc.Driver
		if count > 10 {
			t.Fatal("chain walk did not terminate")
		}
	}
	if count != 3 {
		t.Errorf("expected 3 chained AND gates, got %d", count)
	}
}

func TestRecurringAndTreeRejectsTooFewLeaves(t *testing.T) {
	b := netlist.NewBuilder("chain")
	in := b.AddInput("in", 1)
	if _, err := pattern.RecurringAndTree(b, []netlist.Source{netlist.Out(in, 0)}); err != pattern.ErrTooFewLeaves {
		t.Errorf("expected ErrTooFewLeaves, got %v", err)
	}
}

func TestBuildDescriptorResolvesAndGate(t *testing.T) {
	d := &pattern.Descriptor{
		Name: "and_pattern",
		Inputs: []pattern.IOSpec{
			{Name: "a", Width: 1},
			{Name: "b", Width: 1},
		},
		Gates: []pattern.GateDesc{
			{
				Name: "g0",
				Kind: "and",
				Ports: []pattern.PortSpec{
					{Port: "a", Refs: []string{"a"}},
					{Port: "b", Refs: []string{"b"}},
				},
			},
		},
		Outputs: []pattern.OutputDesc{
			{Name: "y", Refs: []string{"g0"}},
		},
	}

	design, err := pattern.Build(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if design.NumCells() != 4 {
		t.Fatalf("expected 4 cells (2 inputs, 1 and, 1 output), got %d", design.NumCells())
	}
}

func TestBuildDescriptorRejectsForwardReference(t *testing.T) {
	d := &pattern.Descriptor{
		Name:   "bad",
		Inputs: []pattern.IOSpec{{Name: "a", Width: 1}},
		Gates: []pattern.GateDesc{
			{
				Name: "g0",
				Kind: "and",
				Ports: []pattern.PortSpec{
					{Port: "a", Refs: []string{"a"}},
					{Port: "b", Refs: []string{"not_yet_defined"}},
				},
			},
		},
	}
	if _, err := pattern.Build(d); err == nil {
		t.Fatal("expected an error for a forward/undefined reference")
	} else if !strings.Contains(err.Error(), "undefined cell") {
		t.Errorf("expected an undefined-cell error, got: %v", err)
	}
}

func TestBuildDescriptorConstRef(t *testing.T) {
	d := &pattern.Descriptor{
		Name:    "const_out",
		Outputs: []pattern.OutputDesc{{Name: "y", Refs: []string{"const1"}}},
	}
	design, err := pattern.Build(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := design.Cell(design.Ref(design.NumCells() - 1).ID)
	src := out.Ports["in"][0]
	if !src.IsConst || src.Const != netlist.Trit1 {
		t.Errorf("expected const1 source, got %+v", src)
	}
}
