// Package graphindex precomputes, once per design, every query the search
// engine needs during backtracking so that no per-candidate step in the
// hot loop re-walks the netlist (spec §4.2). An Index is built once from a
// *netlist.Design and is read-only and concurrency-safe from then on,
// aside from one lazily-filled cache (IntersectFanoutOfFanin).
package graphindex

import (
	"fmt"
	"sync"

	"github.com/nickrallison/svql-go/cellkind"
	"github.com/nickrallison/svql-go/netlist"
)

// SourceKind classifies where a pin is driven from, mirroring the
// Gate/Io/Const split spec.md's NodeSource requires.
type SourceKind int

const (
	SrcGate SourceKind = iota
	SrcIo
	SrcConst
)

// NodeSource is a classified pin source: a gate-internal driver, a
// boundary (Io) driver, or a constant.
type NodeSource struct {
	Kind   SourceKind
	Driver netlist.CellRef
	Bit    int
	Const  netlist.Trit
}

// FanoutEdge names one sink pin fed by a driver, and the driver output bit
// that pin receives (spec §4.5.2: connectivity requires the bit to line
// up, not just the node pair).
type FanoutEdge struct {
	Sink netlist.CellRef
	Pin  int
	Bit  int
}

// Index is the precomputed graph structure for one design (needle or
// haystack — both are indexed identically).
type Index struct {
	design *netlist.Design

	nodesTopo []netlist.CellRef
	byKind    map[cellkind.Kind][]netlist.CellRef

	sources map[netlist.CellRef][]NodeSource
	named   map[netlist.CellRef]map[string][]NodeSource

	fanout  map[netlist.CellRef]map[netlist.CellRef]map[int]struct{}
	reverse map[netlist.CellRef][]FanoutEdge

	inputsByName  map[string]netlist.CellRef
	outputsByName map[string]netlist.CellRef

	gateCount int

	intersectCache sync.Map // netlist.CellRef -> *onceSet
}

type onceSet struct {
	once sync.Once
	set  map[netlist.CellRef]struct{}
}

// Build computes the full index for design. Name-kind cells are excluded
// from every node-bearing structure: they are cosmetic aliases that never
// participate in matching (cellkind.Kind.IsGate is false for Name, and
// Name carries no meaningful boundary semantics either).
func Build(design *netlist.Design) *Index {
	idx := &Index{
		design:        design,
		byKind:        make(map[cellkind.Kind][]netlist.CellRef),
		sources:       make(map[netlist.CellRef][]NodeSource),
		named:         make(map[netlist.CellRef]map[string][]NodeSource),
		fanout:        make(map[netlist.CellRef]map[netlist.CellRef]map[int]struct{}),
		reverse:       make(map[netlist.CellRef][]FanoutEdge),
		inputsByName:  make(map[string]netlist.CellRef),
		outputsByName: make(map[string]netlist.CellRef),
	}

	for id := 0; id < design.NumCells(); id++ {
		ref := design.Ref(netlist.CellID(id))
		if ref.Kind() == cellkind.Name {
			continue
		}
		idx.nodesTopo = append(idx.nodesTopo, ref)
		idx.byKind[ref.Kind()] = append(idx.byKind[ref.Kind()], ref)
		if ref.Kind().IsGate() {
			idx.gateCount++
		}
		switch ref.Kind() {
		case cellkind.Input:
			idx.inputsByName[ref.Name()] = ref
		case cellkind.Output:
			idx.outputsByName[ref.Name()] = ref
		}
	}

	for _, ref := range idx.nodesTopo {
		cell := ref.Cell()
		order := cellkind.PortOrder(ref.Kind())
		named := make(map[string][]NodeSource, len(order))
		var positional []NodeSource
		for _, portName := range order {
			for _, src := range cell.Ports[portName] {
				ns := idx.classify(src)
				named[portName] = append(named[portName], ns)
				positional = append(positional, ns)
			}
		}
		idx.named[ref] = named
		idx.sources[ref] = positional
	}

	for _, sink := range idx.nodesTopo {
		for pin, src := range idx.sources[sink] {
			if src.Kind == SrcConst {
				continue
			}
			driver := src.Driver
			idx.reverse[driver] = append(idx.reverse[driver], FanoutEdge{Sink: sink, Pin: pin, Bit: src.Bit})
			m := idx.fanout[driver]
			if m == nil {
				m = make(map[netlist.CellRef]map[int]struct{})
				idx.fanout[driver] = m
			}
			pins := m[sink]
			if pins == nil {
				pins = make(map[int]struct{})
				m[sink] = pins
			}
			pins[pin] = struct{}{}
		}
	}

	return idx
}

func (idx *Index) classify(src netlist.Source) NodeSource {
	if src.IsConst {
		return NodeSource{Kind: SrcConst, Const: src.Const}
	}
	driver := idx.design.Ref(src.Driver)
	if driver.Kind().IsGate() {
		return NodeSource{Kind: SrcGate, Driver: driver, Bit: src.Bit}
	}
	return NodeSource{Kind: SrcIo, Driver: driver, Bit: src.Bit}
}

// GateCount returns the number of internal (IsGate) nodes in the design.
func (idx *Index) GateCount() int { return idx.gateCount }

// NodesTopo returns every non-Name node in construction/topological order.
func (idx *Index) NodesTopo() []netlist.CellRef { return idx.nodesTopo }

// CellsOfKind returns all nodes of exactly the given kind.
func (idx *Index) CellsOfKind(k cellkind.Kind) []netlist.CellRef {
	return idx.byKind[k]
}

// PositionalSources returns node's fan-in, flattened in canonical port
// order, each entry classified as Gate/Io/Const.
func (idx *Index) PositionalSources(node netlist.CellRef) []NodeSource {
	return idx.sources[node]
}

// NamedFanin returns node's fan-in keyed by port name.
func (idx *Index) NamedFanin(node netlist.CellRef) map[string][]NodeSource {
	return idx.named[node]
}

// InputByName looks up a primary input boundary cell by its port name.
func (idx *Index) InputByName(name string) (netlist.CellRef, bool) {
	ref, ok := idx.inputsByName[name]
	return ref, ok
}

// OutputByName looks up a primary output boundary cell by its port name.
func (idx *Index) OutputByName(name string) (netlist.CellRef, bool) {
	ref, ok := idx.outputsByName[name]
	return ref, ok
}

// NodeSummary renders a short diagnostic label for a node, e.g.
// "#4 And" or "#1 Input(clk)".
func (idx *Index) NodeSummary(node netlist.CellRef) string {
	name := node.Name()
	if name == "" {
		return fmt.Sprintf("#%d %s", node.DebugIndex(), node.Kind())
	}
	return fmt.Sprintf("#%d %s(%s)", node.DebugIndex(), node.Kind(), name)
}

// HasFanoutTo reports whether driver feeds sink on any pin.
func (idx *Index) HasFanoutTo(driver, sink netlist.CellRef) bool {
	_, ok := idx.fanout[driver][sink]
	return ok
}

// HasFanoutToPin reports whether driver feeds sink specifically at pin.
func (idx *Index) HasFanoutToPin(driver, sink netlist.CellRef, pin int) bool {
	pins, ok := idx.fanout[driver][sink]
	if !ok {
		return false
	}
	_, ok = pins[pin]
	return ok
}

// DriverOfSinkPin returns the Gate/Io driver of one sink input pin, if any.
func (idx *Index) DriverOfSinkPin(sink netlist.CellRef, pin int) (netlist.CellRef, bool) {
	srcs := idx.sources[sink]
	if pin < 0 || pin >= len(srcs) || srcs[pin].Kind == SrcConst {
		return netlist.CellRef{}, false
	}
	return srcs[pin].Driver, true
}

// FanoutEdges returns every (sink, pin) pair driven by node.
func (idx *Index) FanoutEdges(node netlist.CellRef) []FanoutEdge {
	return idx.reverse[node]
}

// FanoutSet returns the de-duplicated set of nodes node drives, regardless
// of pin.
func (idx *Index) FanoutSet(node netlist.CellRef) map[netlist.CellRef]struct{} {
	out := make(map[netlist.CellRef]struct{}, len(idx.fanout[node]))
	for sink := range idx.fanout[node] {
		out[sink] = struct{}{}
	}
	return out
}

// FaninSet returns the de-duplicated set of Gate/Io nodes that feed node.
func (idx *Index) FaninSet(node netlist.CellRef) map[netlist.CellRef]struct{} {
	srcs := idx.sources[node]
	out := make(map[netlist.CellRef]struct{}, len(srcs))
	for _, s := range srcs {
		if s.Kind != SrcConst {
			out[s.Driver] = struct{}{}
		}
	}
	return out
}

// IntersectFanoutOfFanin returns the intersection, over every fan-in node
// of `node`, of that node's fanout set. This is the candidate-narrowing
// query the search engine's MRV+adjacency heuristic relies on: a design
// node can only extend a partial match at `node` if it is reachable from
// every design node already bound to one of node's pattern fan-in
// neighbors. The result is computed lazily and cached per node using
// sync.Once so concurrent anchor-pair workers (spec §5) sharing one Index
// never recompute or race on the same entry.
func (idx *Index) IntersectFanoutOfFanin(node netlist.CellRef) map[netlist.CellRef]struct{} {
	v, _ := idx.intersectCache.LoadOrStore(node, &onceSet{})
	os := v.(*onceSet)
	os.once.Do(func() {
		os.set = idx.computeIntersectFanoutOfFanin(node)
	})
	return os.set
}

func (idx *Index) computeIntersectFanoutOfFanin(node netlist.CellRef) map[netlist.CellRef]struct{} {
	fanin := idx.FaninSet(node)
	if len(fanin) == 0 {
		return map[netlist.CellRef]struct{}{}
	}

	var acc map[netlist.CellRef]struct{}
	for f := range fanin {
		fo := idx.FanoutSet(f)
		if acc == nil {
			acc = fo
			continue
		}
		next := make(map[netlist.CellRef]struct{})
		for n := range acc {
			if _, ok := fo[n]; ok {
				next[n] = struct{}{}
			}
		}
		acc = next
	}
	return acc
}
