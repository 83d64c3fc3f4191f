package search

import (
	"github.com/nickrallison/svql-go/cellkind"
	"github.com/nickrallison/svql-go/graphindex"
	"github.com/nickrallison/svql-go/matchstate"
	"github.com/nickrallison/svql-go/netlist"
)

// synthesize converts a complete State into the public Embedding shape
// (spec §4.5.6), resolving each pattern primary I/O name to a design node
// only when the embedding determines it uniquely.
func synthesize(state *matchstate.State, pIndex, dIndex *graphindex.Index) Embedding {
	cellMapping := make(map[netlist.CellRef]netlist.CellRef, state.Len())
	for p, d := range state.Mapping() {
		cellMapping[p] = d
	}

	inputByName := make(map[string]netlist.CellRef)
	for _, pin := range pIndex.CellsOfKind(cellkind.Input) {
		name := pin.Name()
		if name == "" {
			continue
		}
		set := make(map[netlist.CellRef]struct{})
		for bit := 0; bit < pin.Cell().NumOutputs; bit++ {
			key := matchstate.NewIoPatKey(pin, bit)
			if dk, ok := state.BindingGet(key); ok {
				if node, ok2 := dk.Node(); ok2 {
					set[node] = struct{}{}
				}
			}
		}
		if len(set) == 1 {
			for node := range set {
				inputByName[name] = node
			}
		}
	}

	outputByName := make(map[string]netlist.CellRef)
	for _, pout := range pIndex.CellsOfKind(cellkind.Output) {
		name := pout.Name()
		if name == "" {
			continue
		}
		set := make(map[netlist.CellRef]struct{})
		for _, s := range pIndex.PositionalSources(pout) {
			switch s.Kind {
			case graphindex.SrcGate:
				if dm, ok := state.MappedTo(s.Driver); ok {
					set[dm] = struct{}{}
				}
			case graphindex.SrcIo:
				key := matchstate.NewIoPatKey(s.Driver, s.Bit)
				if dk, ok := state.BindingGet(key); ok {
					if node, ok2 := dk.Node(); ok2 {
						set[node] = struct{}{}
					}
				}
			}
		}
		if len(set) == 1 {
			for node := range set {
				outputByName[name] = node
			}
		}
	}

	return Embedding{
		CellMapping:  cellMapping,
		InputByName:  inputByName,
		OutputByName: outputByName,
		Bindings:     state.Bindings(),
	}
}
