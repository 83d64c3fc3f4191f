// Package pattern is ergonomic sugar over netlist.Builder for assembling a
// needle *netlist.Design programmatically, standing in for the typed
// primitive/composite query DSL of the source this engine was distilled
// from. It adds nothing to the matching core: every helper here just calls
// through to a netlist.Builder method chosen for the requested gate kind.
package pattern

import "github.com/nickrallison/svql-go/netlist"

// And appends a bitwise AND gate to b and returns its output cell.
func And(b *netlist.Builder, a, bIn []netlist.Source) netlist.CellID {
	return b.AddAnd(a, bIn)
}

// Or appends a bitwise OR gate to b.
func Or(b *netlist.Builder, a, bIn []netlist.Source) netlist.CellID {
	return b.AddOr(a, bIn)
}

// Xor appends a bitwise XOR gate to b.
func Xor(b *netlist.Builder, a, bIn []netlist.Source) netlist.CellID {
	return b.AddXor(a, bIn)
}

// Not appends a single-bit inverter to b.
func Not(b *netlist.Builder, in netlist.Source) netlist.CellID {
	return b.AddNot(in)
}

// Buf appends a single-bit buffer to b.
func Buf(b *netlist.Builder, in netlist.Source) netlist.CellID {
	return b.AddBuf(in)
}

// Mux appends a bitwise 2:1 multiplexer to b: sel chooses t when 1, f when 0.
func Mux(b *netlist.Builder, sel netlist.Source, t, f []netlist.Source) netlist.CellID {
	return b.AddMux(sel, t, f)
}

// Dff appends a D flip-flop to b with the given control sources.
func Dff(b *netlist.Builder, d []netlist.Source, clk, en, reset, clear netlist.Source) netlist.CellID {
	return b.AddDff(d, clk, en, reset, clear)
}

// FreeRunningDff appends a D flip-flop clocked by clk with enable tied high
// and reset/clear tied low, for patterns that don't care about control pins.
func FreeRunningDff(b *netlist.Builder, d []netlist.Source, clk netlist.Source) netlist.CellID {
	return b.AddDff(d, clk, netlist.Const(netlist.Trit1), netlist.Const(netlist.Trit0), netlist.Const(netlist.Trit0))
}

// Eq appends a single-bit equality comparator to b.
func Eq(b *netlist.Builder, a, bIn []netlist.Source) netlist.CellID {
	return b.AddEq(a, bIn)
}

// ULt appends a single-bit unsigned less-than comparator to b.
func ULt(b *netlist.Builder, a, bIn []netlist.Source) netlist.CellID {
	return b.AddULt(a, bIn)
}

// SLt appends a single-bit signed less-than comparator to b.
func SLt(b *netlist.Builder, a, bIn []netlist.Source) netlist.CellID {
	return b.AddSLt(a, bIn)
}

// Adc appends an adder-with-carry-in to b.
func Adc(b *netlist.Builder, a, bIn []netlist.Source, ci netlist.Source) netlist.CellID {
	return b.AddAdc(a, bIn, ci)
}
