package netlist

// Builder accumulates cells into a Design using the teacher's chainable
// With*/Build() idiom (config.DeviceBuilder, api.DriverBuilder), adapted
// here to a mutating Add* form since a netlist under construction is
// genuinely mutable state (each Add references ids returned by earlier
// Adds) rather than the teacher's copy-on-write value builder.
type Builder struct {
	d *Design
}

// NewBuilder starts building a design with the given diagnostic name.
func NewBuilder(name string) *Builder {
	return &Builder{d: NewDesign(name)}
}

// Build finalizes and returns the constructed design. The builder must not
// be used afterward.
func (b *Builder) Build() *Design {
	return b.d
}

// Out is shorthand for CellSource(id, bit), reading bit `bit` of cell id's
// output.
func Out(id CellID, bit int) Source { return CellSource(id, bit) }

// Bits returns width consecutive output-bit sources of a multi-output cell,
// bits 0..width-1, for wiring a whole bus in one call.
func Bits(id CellID, width int) []Source {
	out := make([]Source, width)
	for i := range out {
		out[i] = CellSource(id, i)
	}
	return out
}

// Const is shorthand for ConstSource(t).
func Const(t Trit) Source { return ConstSource(t) }

func (b *Builder) add(kind Kind, name string, numOutputs int, ports map[string][]Source) CellID {
	return b.d.addCell(Cell{Kind: kind, Name: name, NumOutputs: numOutputs, Ports: ports})
}

// AddInput declares a primary input boundary cell of the given bit width.
// Input cells have no fan-in.
func (b *Builder) AddInput(name string, width int) CellID {
	return b.add(Input, name, width, nil)
}

// AddOutput declares a primary output boundary cell driven by in.
func (b *Builder) AddOutput(name string, in []Source) CellID {
	return b.add(Output, name, len(in), map[string][]Source{"in": in})
}

// AddBuf adds a single-bit buffer.
func (b *Builder) AddBuf(in Source) CellID {
	return b.add(Buf, "", 1, map[string][]Source{"in": {in}})
}

// AddNot adds a single-bit inverter.
func (b *Builder) AddNot(in Source) CellID {
	return b.add(Not, "", 1, map[string][]Source{"in": {in}})
}

func (b *Builder) addBinaryBitwise(kind Kind, a, bIn []Source) CellID {
	w := len(a)
	return b.add(kind, "", w, map[string][]Source{"a": a, "b": bIn})
}

// AddAnd adds a bitwise AND gate over equal-width buses a and b.
func (b *Builder) AddAnd(a, bIn []Source) CellID { return b.addBinaryBitwise(And, a, bIn) }

// AddOr adds a bitwise OR gate.
func (b *Builder) AddOr(a, bIn []Source) CellID { return b.addBinaryBitwise(Or, a, bIn) }

// AddXor adds a bitwise XOR gate.
func (b *Builder) AddXor(a, bIn []Source) CellID { return b.addBinaryBitwise(Xor, a, bIn) }

// AddAig adds a single-bit and-inverter-graph node: the two inputs are each
// already polarity-resolved (inversion folded into the driving Source), so
// Aig itself is a plain single-bit AND, matching the gini-style AIG
// convention of pushing inversion onto edges rather than nodes.
func (b *Builder) AddAig(a, bIn Source) CellID {
	return b.add(Aig, "", 1, map[string][]Source{"a": {a}, "b": {bIn}})
}

// AddMux adds a bitwise 2:1 multiplexer: sel chooses f (sel==0) or t (sel==1).
func (b *Builder) AddMux(sel Source, t, f []Source) CellID {
	w := len(t)
	return b.add(Mux, "", w, map[string][]Source{"sel": {sel}, "t": t, "f": f})
}

// AddAdc adds an adder-with-carry-in: a + b + ci, width equal to len(a).
func (b *Builder) AddAdc(a, bIn []Source, ci Source) CellID {
	w := len(a)
	return b.add(Adc, "", w, map[string][]Source{"a": a, "b": bIn, "ci": {ci}})
}

// AddEq adds a single-bit equality comparator over a and b.
func (b *Builder) AddEq(a, bIn []Source) CellID {
	return b.add(Eq, "", 1, map[string][]Source{"a": a, "b": bIn})
}

// AddULt adds a single-bit unsigned less-than comparator.
func (b *Builder) AddULt(a, bIn []Source) CellID {
	return b.add(ULt, "", 1, map[string][]Source{"a": a, "b": bIn})
}

// AddSLt adds a single-bit signed less-than comparator.
func (b *Builder) AddSLt(a, bIn []Source) CellID {
	return b.add(SLt, "", 1, map[string][]Source{"a": a, "b": bIn})
}

func (b *Builder) addShift(kind Kind, a, bIn []Source) CellID {
	return b.add(kind, "", len(a), map[string][]Source{"a": a, "b": bIn})
}

// AddShl adds a logical left shift of a by the amount encoded in b.
func (b *Builder) AddShl(a, bIn []Source) CellID { return b.addShift(Shl, a, bIn) }

// AddUShr adds a logical (unsigned) right shift.
func (b *Builder) AddUShr(a, bIn []Source) CellID { return b.addShift(UShr, a, bIn) }

// AddSShr adds an arithmetic (sign-extending) right shift.
func (b *Builder) AddSShr(a, bIn []Source) CellID { return b.addShift(SShr, a, bIn) }

// AddXShr adds an unbounded/funnel right shift.
func (b *Builder) AddXShr(a, bIn []Source) CellID { return b.addShift(XShr, a, bIn) }

func (b *Builder) addArith(kind Kind, a, bIn []Source) CellID {
	return b.add(kind, "", len(a), map[string][]Source{"a": a, "b": bIn})
}

// AddMul adds a multiplier.
func (b *Builder) AddMul(a, bIn []Source) CellID { return b.addArith(Mul, a, bIn) }

// AddUDiv adds an unsigned divider.
func (b *Builder) AddUDiv(a, bIn []Source) CellID { return b.addArith(UDiv, a, bIn) }

// AddUMod adds an unsigned modulo unit.
func (b *Builder) AddUMod(a, bIn []Source) CellID { return b.addArith(UMod, a, bIn) }

// AddSDivTrunc adds a signed truncating divider.
func (b *Builder) AddSDivTrunc(a, bIn []Source) CellID { return b.addArith(SDivTrunc, a, bIn) }

// AddSDivFloor adds a signed floor-dividing divider.
func (b *Builder) AddSDivFloor(a, bIn []Source) CellID { return b.addArith(SDivFloor, a, bIn) }

// AddSModTrunc adds a signed truncating modulo unit.
func (b *Builder) AddSModTrunc(a, bIn []Source) CellID { return b.addArith(SModTrunc, a, bIn) }

// AddSModFloor adds a signed floor modulo unit.
func (b *Builder) AddSModFloor(a, bIn []Source) CellID { return b.addArith(SModFloor, a, bIn) }

// AddDff adds a width-wide D flip-flop with the given clock/enable/reset/
// clear control sources.
func (b *Builder) AddDff(d []Source, clk, en, reset, clear Source) CellID {
	w := len(d)
	return b.add(Dff, "", w, map[string][]Source{
		"d": d, "clk": {clk}, "en": {en}, "reset": {reset}, "clear": {clear},
	})
}

// AddIoBuf adds a tristate I/O buffer.
func (b *Builder) AddIoBuf(output []Source, enable Source) CellID {
	return b.add(IoBuf, "", len(output), map[string][]Source{
		"output": output, "enable": {enable},
	})
}

// AddName attaches a cosmetic alias cell over in; Name cells never
// participate as graph nodes (cellkind.Kind.IsGate is false) and are
// excluded from the topological order the graph index builds.
func (b *Builder) AddName(label string, in Source) CellID {
	return b.add(Name, label, 1, map[string][]Source{"in": {in}})
}

// AddDebug attaches a debug probe over in; like Name, non-participating.
func (b *Builder) AddDebug(in Source) CellID {
	return b.add(Debug, "", 1, map[string][]Source{"in": {in}})
}

// AddMemory declares an opaque memory macro cell with no matched fan-in.
func (b *Builder) AddMemory(name string, width int) CellID {
	return b.add(Memory, name, width, nil)
}

// AddTarget declares an opaque black-box target cell.
func (b *Builder) AddTarget(name string, width int) CellID {
	return b.add(Target, name, width, nil)
}

// AddOther declares a cell of a kind the engine does not otherwise model.
func (b *Builder) AddOther(name string, width int) CellID {
	return b.add(Other, name, width, nil)
}

// AddMatch adds a pattern-only wildcard cell whose value pin must bind to
// whatever design source reaches it, without constraining the kind of the
// driver any further.
func (b *Builder) AddMatch(value []Source) CellID {
	return b.add(Match, "", len(value), map[string][]Source{"value": value})
}

// AddAssign adds a pattern-only cell that asserts value is held to a fixed
// constant pattern, independent of any design driver kind.
func (b *Builder) AddAssign(value []Source) CellID {
	return b.add(Assign, "", len(value), map[string][]Source{"value": value})
}
