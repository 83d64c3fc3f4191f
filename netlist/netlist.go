// Package netlist is the in-memory design representation the matching core
// consumes. Spec §1 explicitly declines to fix how netlists are parsed from
// hardware description files; this package is the minimal concrete format
// the core actually needs (§4.2's queries), documented here as one worked
// answer rather than a normative wire format. Front ends (see package
// yosysjson) and the pattern builder (package pattern) both produce values
// of this type.
package netlist

import "github.com/nickrallison/svql-go/cellkind"

// Trit is a ternary constant value: 0, 1, or X (don't-care/unknown).
type Trit int8

const (
	Trit0 Trit = iota
	Trit1
	TritX
)

func (t Trit) String() string {
	switch t {
	case Trit0:
		return "0"
	case Trit1:
		return "1"
	default:
		return "x"
	}
}

// CellID is a dense identifier for a cell within one Design, assigned in
// construction order. Construction order is normally topological: a cell is
// wired to drivers added before it. Nothing enforces this, and a Dff may be
// wired to a driver added after it, or to its own output (package yosysjson
// schedules Dff cells that way).
type CellID uint32

// Source describes where a single pin is driven from: either a constant, or
// a specific output bit of an earlier cell in the same design. Whether that
// earlier cell turns out to be a gate or a boundary cell is a property of
// its Kind, resolved later by package graphindex (spec's NodeSource
// Gate/Io split).
type Source struct {
	IsConst bool
	Const   Trit

	Driver CellID
	Bit    int
}

// ConstSource builds a constant-driven pin source.
func ConstSource(t Trit) Source {
	return Source{IsConst: true, Const: t}
}

// CellSource builds a pin source driven by output bit `bit` of cell `id`.
func CellSource(id CellID, bit int) Source {
	return Source{Driver: id, Bit: bit}
}

// Cell is one node of the netlist: a gate, a flop, a primary I/O boundary,
// or an opaque/metadata cell.
type Cell struct {
	Kind Kind
	// Name carries the port name for Input/Output cells; empty otherwise.
	Name string
	// NumOutputs is the width, in bits, of this cell's output.
	NumOutputs int
	// Ports is the named fan-in map: port name -> ordered per-bit sources.
	// Keys and per-key lengths follow cellkind.PortOrder(Kind) and the
	// arity of that port for this particular cell.
	Ports map[string][]Source
}

// Kind is a re-export so callers of this package rarely need to import
// cellkind directly for the common case of reading a cell's kind.
type Kind = cellkind.Kind

// Kind values re-exported from cellkind, used by Builder's Add* methods.
const (
	Buf, Not, And, Or, Xor, Mux, Adc, Aig = cellkind.Buf, cellkind.Not, cellkind.And, cellkind.Or, cellkind.Xor, cellkind.Mux, cellkind.Adc, cellkind.Aig
	Eq, ULt, SLt, Shl, UShr, SShr, XShr   = cellkind.Eq, cellkind.ULt, cellkind.SLt, cellkind.Shl, cellkind.UShr, cellkind.SShr, cellkind.XShr
	Mul, UDiv, UMod, SDivTrunc, SDivFloor = cellkind.Mul, cellkind.UDiv, cellkind.UMod, cellkind.SDivTrunc, cellkind.SDivFloor
	SModTrunc, SModFloor, Dff             = cellkind.SModTrunc, cellkind.SModFloor, cellkind.Dff
	Input, Output, IoBuf                  = cellkind.Input, cellkind.Output, cellkind.IoBuf
	Name, Debug, Memory, Target, Other    = cellkind.Name, cellkind.Debug, cellkind.Memory, cellkind.Target, cellkind.Other
	Match, Assign                         = cellkind.Match, cellkind.Assign
)

// PositionalSources flattens c.Ports in the kind's canonical port order
// (cellkind.PortOrder), giving the cell-visit-order sequence of input pins
// that the graph index and search engine key off of by index.
func (c *Cell) PositionalSources() []Source {
	order := cellkind.PortOrder(c.Kind)
	if order == nil {
		return nil
	}
	var out []Source
	for _, name := range order {
		out = append(out, c.Ports[name]...)
	}
	return out
}

// Design is an immutable-once-built collection of cells. Cells are stored in
// construction (topological) order.
type Design struct {
	name  string
	cells []Cell
}

// NewDesign creates an empty, named design. Use Builder to populate it.
func NewDesign(name string) *Design {
	return &Design{name: name}
}

// Name returns the design's name (e.g. a module name), for diagnostics only.
func (d *Design) Name() string { return d.name }

// NumCells returns the number of cells in the design.
func (d *Design) NumCells() int { return len(d.cells) }

// Cell returns a pointer to the cell with the given id. Panics if id is out
// of range, matching the teacher's own fail-fast style for malformed
// construction-time input (config.DeviceBuilder.WithMemoryMode).
func (d *Design) Cell(id CellID) *Cell {
	return &d.cells[id]
}

// CellsTopo returns all cells in construction (topological) order.
func (d *Design) CellsTopo() []Cell {
	return d.cells
}

// Ref returns a stable handle to the cell with the given id.
func (d *Design) Ref(id CellID) CellRef {
	return CellRef{Design: d, ID: id}
}

// addCell appends a new cell and returns its freshly assigned id.
func (d *Design) addCell(c Cell) CellID {
	id := CellID(len(d.cells))
	d.cells = append(d.cells, c)
	return id
}

// CellRef is a stable, hashable handle to one cell in one design. Two refs
// are equal iff they name the same cell in the same design, which in Go
// falls directly out of comparing the (Design pointer, CellID) pair, so
// CellRef is usable directly as a map key.
type CellRef struct {
	Design *Design
	ID     CellID
}

// Cell dereferences the handle.
func (r CellRef) Cell() *Cell { return r.Design.Cell(r.ID) }

// Kind is shorthand for r.Cell().Kind.
func (r CellRef) Kind() Kind { return r.Cell().Kind }

// DebugIndex is a stable integer identity for the cell, unique within its
// design: its construction-order CellID.
func (r CellRef) DebugIndex() int { return int(r.ID) }

// Name is shorthand for r.Cell().Name.
func (r CellRef) Name() string { return r.Cell().Name }
