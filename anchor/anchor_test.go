package anchor_test

import (
	"testing"

	"github.com/nickrallison/svql-go/anchor"
	"github.com/nickrallison/svql-go/cellkind"
	"github.com/nickrallison/svql-go/graphindex"
	"github.com/nickrallison/svql-go/netlist"
)

func TestChooseRarestSharedKind(t *testing.T) {
	pb := netlist.NewBuilder("pattern")
	pa := pb.AddInput("a", 1)
	pbIn := pb.AddInput("b", 1)
	pAnd := pb.AddAnd(netlist.Bits(pa, 1), netlist.Bits(pbIn, 1))
	pb.AddOutput("y", netlist.Bits(pAnd, 1))
	pattern := pb.Build()

	db := netlist.NewBuilder("design")
	a := db.AddInput("a", 1)
	bIn := db.AddInput("b", 1)
	cIn := db.AddInput("c", 1)
	or1 := db.AddOr(netlist.Bits(a, 1), netlist.Bits(bIn, 1))
	and1 := db.AddAnd(netlist.Bits(or1, 1), netlist.Bits(cIn, 1))
	db.AddOutput("y", netlist.Bits(and1, 1))
	design := db.Build()

	pIndex := graphindex.Build(pattern)
	dIndex := graphindex.Build(design)

	choice, ok := anchor.Choose(pIndex, dIndex)
	if !ok {
		t.Fatal("expected a shared kind")
	}
	if choice.Kind != cellkind.And {
		t.Errorf("expected And as the shared anchor kind, got %v", choice.Kind)
	}
	if len(choice.DesNodes) != 1 {
		t.Errorf("expected 1 design And node, got %d", len(choice.DesNodes))
	}
}

func TestChooseNoSharedKind(t *testing.T) {
	pb := netlist.NewBuilder("pattern")
	pa := pb.AddInput("a", 1)
	pNot := pb.AddNot(netlist.Out(pa, 0))
	pb.AddOutput("y", netlist.Bits(pNot, 1))
	pattern := pb.Build()

	db := netlist.NewBuilder("design")
	a := db.AddInput("a", 1)
	bIn := db.AddInput("b", 1)
	or1 := db.AddOr(netlist.Bits(a, 1), netlist.Bits(bIn, 1))
	db.AddOutput("y", netlist.Bits(or1, 1))
	design := db.Build()

	pIndex := graphindex.Build(pattern)
	dIndex := graphindex.Build(design)

	if _, ok := anchor.Choose(pIndex, dIndex); ok {
		t.Errorf("expected no shared kind between Not-only pattern and Or-only design")
	}
}
