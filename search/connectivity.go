package search

import (
	"github.com/nickrallison/svql-go/graphindex"
	"github.com/nickrallison/svql-go/matchstate"
	"github.com/nickrallison/svql-go/netlist"
)

// tryBindCandidate checks whether design node d is connectivity-compatible
// with pattern node p given the bindings already committed in state, and
// if so commits every new boundary binding the check required. On failure
// it leaves state exactly as it found it (any bindings it inserted along
// the way are rolled back before returning).
//
// Two independent checks compose this (spec §4.5.2):
//   - fanin: every one of p's own input pins must correspond to a
//     compatible d input pin, given what p's pattern-side fanin sources
//     are already mapped or bound to.
//   - fanout: every already-mapped pattern sink fed by p must also be fed,
//     in design space, by d (exactly on the matching pin for
//     non-commutative sinks; on any pin for commutative ones).
func tryBindCandidate(p, d netlist.CellRef, pIndex, dIndex *graphindex.Index, state *matchstate.State) (ok bool, inserted []matchstate.PatSrcKey) {
	if !matchFanin(p, d, pIndex, dIndex, state, &inserted) {
		state.BindingsRemoveKeys(inserted)
		return false, nil
	}
	if !matchFanout(p, d, pIndex, dIndex, state) {
		state.BindingsRemoveKeys(inserted)
		return false, nil
	}
	return true, inserted
}

func matchFanin(p, d netlist.CellRef, pIndex, dIndex *graphindex.Index, state *matchstate.State, inserted *[]matchstate.PatSrcKey) bool {
	if p.Kind().HasCommutativeInputs() {
		pNamed := pIndex.NamedFanin(p)
		dNamed := dIndex.NamedFanin(d)

		if tryOrder(pNamed["a"], pNamed["b"], dNamed["a"], dNamed["b"], state, inserted) {
			return true
		}
		return tryOrder(pNamed["a"], pNamed["b"], dNamed["b"], dNamed["a"], state, inserted)
	}

	pSrcs := pIndex.PositionalSources(p)
	dSrcs := dIndex.PositionalSources(d)
	return matchSlice(pSrcs, dSrcs, state, inserted)
}

// tryOrder attempts one pairing of the commutative gate's two input ports
// against the design's two input ports. On failure it rolls back any
// bindings it inserted itself before returning false, so the caller is
// free to attempt the other pairing with a clean slate.
func tryOrder(pA, pB, dA, dB []graphindex.NodeSource, state *matchstate.State, inserted *[]matchstate.PatSrcKey) bool {
	var local []matchstate.PatSrcKey
	ok := matchSlice(pA, dA, state, &local) && matchSlice(pB, dB, state, &local)
	if !ok {
		state.BindingsRemoveKeys(local)
		return false
	}
	*inserted = append(*inserted, local...)
	return true
}

// matchSlice checks pattern sources pSrcs against design sources dSrcs
// pin-for-pin. dSrcs may be longer than pSrcs (superset arity); it may
// never be shorter.
func matchSlice(pSrcs, dSrcs []graphindex.NodeSource, state *matchstate.State, inserted *[]matchstate.PatSrcKey) bool {
	if len(dSrcs) < len(pSrcs) {
		return false
	}
	for i, ps := range pSrcs {
		if !matchOnePin(ps, dSrcs[i], state, inserted) {
			return false
		}
	}
	return true
}

func matchOnePin(pSrc, dSrc graphindex.NodeSource, state *matchstate.State, inserted *[]matchstate.PatSrcKey) bool {
	switch pSrc.Kind {
	case graphindex.SrcConst:
		return dSrc.Kind == graphindex.SrcConst && dSrc.Const == pSrc.Const

	case graphindex.SrcGate:
		if dSrc.Kind != graphindex.SrcGate {
			return false
		}
		if dMapped, ok := state.MappedTo(pSrc.Driver); ok {
			return dMapped == dSrc.Driver && dSrc.Bit == pSrc.Bit
		}
		// pSrc.Driver not mapped yet: unconstrained until that neighbor is
		// itself assigned later in the search.
		return true

	case graphindex.SrcIo:
		key := matchstate.NewIoPatKey(pSrc.Driver, pSrc.Bit)
		var desKey matchstate.DesSrcKey
		if dSrc.Kind == graphindex.SrcConst {
			desKey = matchstate.NewConstDesKey(dSrc.Const)
		} else {
			desKey = matchstate.NewNodeDesKey(dSrc.Driver, dSrc.Bit)
		}
		if existing, ok := state.BindingGet(key); ok {
			return existing == desKey
		}
		state.BindingInsert(key, desKey)
		*inserted = append(*inserted, key)
		return true

	default:
		return false
	}
}

func matchFanout(p, d netlist.CellRef, pIndex, dIndex *graphindex.Index, state *matchstate.State) bool {
	for _, e := range pIndex.FanoutEdges(p) {
		dSink, ok := state.MappedTo(e.Sink)
		if !ok {
			continue // unmapped sink: unconstrained at this stage
		}
		if e.Sink.Kind().HasCommutativeInputs() {
			if !dSinkFedOnBit(dIndex, d, dSink, e.Bit) {
				return false
			}
		} else {
			if !dSinkFedOnPinBit(dIndex, d, dSink, e.Pin, e.Bit) {
				return false
			}
		}
	}
	return true
}

// dSinkFedOnPinBit reports whether driver feeds sink's pin-th input
// specifically with output bit bit (spec §4.5.2: the driver's output bit
// must match, not just the (driver, sink) node pair).
func dSinkFedOnPinBit(dIndex *graphindex.Index, driver, sink netlist.CellRef, pin, bit int) bool {
	dSrcs := dIndex.PositionalSources(sink)
	if pin < 0 || pin >= len(dSrcs) {
		return false
	}
	dSrc := dSrcs[pin]
	return dSrc.Kind == graphindex.SrcGate && dSrc.Driver == driver && dSrc.Bit == bit
}

// dSinkFedOnBit is the commutative-sink counterpart of dSinkFedOnPinBit: it
// accepts a match on any of sink's input pins, since commutative inputs may
// be permuted, but still requires the fed bit to match.
func dSinkFedOnBit(dIndex *graphindex.Index, driver, sink netlist.CellRef, bit int) bool {
	for _, dSrc := range dIndex.PositionalSources(sink) {
		if dSrc.Kind == graphindex.SrcGate && dSrc.Driver == driver && dSrc.Bit == bit {
			return true
		}
	}
	return false
}
