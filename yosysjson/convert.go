package yosysjson

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nickrallison/svql-go/cellkind"
	"github.com/nickrallison/svql-go/netlist"
)

// plan is one pending cell, either a module input port or an internal cell,
// with its fan-in already translated to our port-name convention and its
// output bits recorded so downstream cells can resolve references to it.
type plan struct {
	key      string // "in:"+portName or "cell:"+cellName, unique within a module
	isInput  bool
	portName string
	cellName string
	kind     cellkind.Kind
	width    int                  // input width, or opaque-cell output width
	in       map[string][]Bit     // our port name -> fan-in bits
	outBits  []Bit                // this plan's own output bits, in canonical order
}

type netRef struct {
	key string
	bit int
}

// Convert resolves one module of a parsed Yosys JSON document into a
// *netlist.Design. It targets the coarse (pre-techmap) cell set Yosys
// produces after "proc; opt_clean" — word-level $and/$or/$mux/$dff/...
// cells — the same level the original adapter (svql_common/src/yosys)
// hands to prjunnamed.
func Convert(file *File, moduleName string) (*netlist.Design, error) {
	mod, ok := file.Modules[moduleName]
	if !ok {
		return nil, fmt.Errorf("yosysjson: module %q not found in document", moduleName)
	}

	plans := map[string]*plan{}
	var inputKeys []string

	for name, port := range mod.Ports {
		if port.Direction == "output" {
			continue
		}
		p := &plan{
			key:      "in:" + name,
			isInput:  true,
			portName: name,
			width:    len(port.Bits),
			outBits:  port.Bits,
		}
		plans[p.key] = p
		inputKeys = append(inputKeys, p.key)
	}
	sort.Strings(inputKeys)

	var cellKeys []string
	for name, raw := range mod.Cells {
		p, err := buildCellPlan(name, raw)
		if err != nil {
			return nil, err
		}
		plans[p.key] = p
		cellKeys = append(cellKeys, p.key)
	}
	sort.Strings(cellKeys)

	netProducer := map[int]netRef{}
	for _, key := range append(append([]string{}, inputKeys...), cellKeys...) {
		p := plans[key]
		for bit, b := range p.outBits {
			if b.IsConst {
				continue
			}
			netProducer[b.Net] = netRef{key: key, bit: bit}
		}
	}

	order, err := topoOrder(plans, inputKeys, cellKeys, netProducer)
	if err != nil {
		return nil, err
	}

	keyToID := make(map[string]netlist.CellID, len(order))
	for i, key := range order {
		keyToID[key] = netlist.CellID(i)
	}

	resolveBit := func(b Bit) (netlist.Source, error) {
		if b.IsConst {
			return netlist.Const(literalTrit(b.Literal)), nil
		}
		ref, ok := netProducer[b.Net]
		if !ok {
			return netlist.Source{}, fmt.Errorf("yosysjson: net %d has no driver", b.Net)
		}
		id, ok := keyToID[ref.key]
		if !ok {
			return netlist.Source{}, fmt.Errorf("yosysjson: internal: unscheduled producer %q", ref.key)
		}
		return netlist.Out(id, ref.bit), nil
	}
	resolveBits := func(bits []Bit) ([]netlist.Source, error) {
		out := make([]netlist.Source, len(bits))
		for i, b := range bits {
			src, err := resolveBit(b)
			if err != nil {
				return nil, err
			}
			out[i] = src
		}
		return out, nil
	}

	b := netlist.NewBuilder(moduleName)
	for _, key := range order {
		p := plans[key]
		if p.isInput {
			b.AddInput(p.portName, p.width)
			continue
		}
		if _, err := emitCell(b, p, resolveBits); err != nil {
			return nil, err
		}
	}

	var outNames []string
	for name, port := range mod.Ports {
		if port.Direction == "output" {
			outNames = append(outNames, name)
		}
	}
	sort.Strings(outNames)
	for _, name := range outNames {
		srcs, err := resolveBits(mod.Ports[name].Bits)
		if err != nil {
			return nil, fmt.Errorf("yosysjson: output %q: %w", name, err)
		}
		b.AddOutput(name, srcs)
	}

	return b.Build(), nil
}

func literalTrit(lit string) netlist.Trit {
	switch lit {
	case "1":
		return netlist.Trit1
	case "0":
		return netlist.Trit0
	default:
		return netlist.TritX
	}
}

// topoOrder schedules inputs first, then cells in an order compatible with
// combinational dependency (Kahn's algorithm). Per the core's own guidance
// on sequential feedback, a Dff cell's own fan-in never contributes to its
// indegree — it is always schedulable immediately, the same way the graph
// index treats Dff outputs as fresh sources rather than requiring its
// drivers to precede it.
func topoOrder(plans map[string]*plan, inputKeys, cellKeys []string, netProducer map[int]netRef) ([]string, error) {
	indegree := map[string]int{}
	dependents := map[string][]string{}

	for _, key := range cellKeys {
		p := plans[key]
		if p.kind == cellkind.Dff {
			continue
		}
		for _, bits := range p.in {
			for _, b := range bits {
				if b.IsConst {
					continue
				}
				ref, ok := netProducer[b.Net]
				if !ok {
					return nil, fmt.Errorf("yosysjson: cell %q: net %d has no driver", p.cellName, b.Net)
				}
				if ref.key == key || plans[ref.key].isInput {
					continue
				}
				dependents[ref.key] = append(dependents[ref.key], key)
				indegree[key]++
			}
		}
	}

	var ready []string
	for _, key := range cellKeys {
		if indegree[key] == 0 {
			ready = append(ready, key)
		}
	}
	sort.Strings(ready)

	order := append([]string{}, inputKeys...)
	scheduled := map[string]bool{}
	for len(ready) > 0 {
		sort.Strings(ready)
		key := ready[0]
		ready = ready[1:]
		if scheduled[key] {
			continue
		}
		scheduled[key] = true
		order = append(order, key)
		for _, dep := range dependents[key] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(order) != len(inputKeys)+len(cellKeys) {
		return nil, fmt.Errorf("yosysjson: combinational loop detected among %d cells", len(cellKeys)-(len(order)-len(inputKeys)))
	}
	return order, nil
}

func emitCell(b *netlist.Builder, p *plan, resolve func([]Bit) ([]netlist.Source, error)) (netlist.CellID, error) {
	one := func(port string) (netlist.Source, error) {
		srcs, err := resolve(p.in[port])
		if err != nil {
			return netlist.Source{}, err
		}
		if len(srcs) != 1 {
			return netlist.Source{}, fmt.Errorf("yosysjson: cell %q port %q expected 1 bit, got %d", p.cellName, port, len(srcs))
		}
		return srcs[0], nil
	}
	many := func(port string) ([]netlist.Source, error) {
		return resolve(p.in[port])
	}

	switch p.kind {
	case cellkind.Not:
		in, err := one("in")
		if err != nil {
			return 0, err
		}
		return b.AddNot(in), nil
	case cellkind.Buf:
		in, err := one("in")
		if err != nil {
			return 0, err
		}
		return b.AddBuf(in), nil
	case cellkind.And, cellkind.Or, cellkind.Xor, cellkind.Eq, cellkind.ULt, cellkind.SLt,
		cellkind.Mul, cellkind.UDiv, cellkind.UMod, cellkind.SDivTrunc, cellkind.SDivFloor,
		cellkind.SModTrunc, cellkind.SModFloor, cellkind.Shl, cellkind.UShr, cellkind.SShr, cellkind.XShr:
		a, err := many("a")
		if err != nil {
			return 0, err
		}
		bb, err := many("b")
		if err != nil {
			return 0, err
		}
		switch p.kind {
		case cellkind.And:
			return b.AddAnd(a, bb), nil
		case cellkind.Or:
			return b.AddOr(a, bb), nil
		case cellkind.Xor:
			return b.AddXor(a, bb), nil
		case cellkind.Eq:
			return b.AddEq(a, bb), nil
		case cellkind.ULt:
			return b.AddULt(a, bb), nil
		case cellkind.SLt:
			return b.AddSLt(a, bb), nil
		case cellkind.Mul:
			return b.AddMul(a, bb), nil
		case cellkind.UDiv:
			return b.AddUDiv(a, bb), nil
		case cellkind.UMod:
			return b.AddUMod(a, bb), nil
		case cellkind.SDivTrunc:
			return b.AddSDivTrunc(a, bb), nil
		case cellkind.SDivFloor:
			return b.AddSDivFloor(a, bb), nil
		case cellkind.SModTrunc:
			return b.AddSModTrunc(a, bb), nil
		case cellkind.SModFloor:
			return b.AddSModFloor(a, bb), nil
		case cellkind.Shl:
			return b.AddShl(a, bb), nil
		case cellkind.UShr:
			return b.AddUShr(a, bb), nil
		case cellkind.SShr:
			return b.AddSShr(a, bb), nil
		default:
			return b.AddXShr(a, bb), nil
		}
	case cellkind.Mux:
		sel, err := one("sel")
		if err != nil {
			return 0, err
		}
		t, err := many("t")
		if err != nil {
			return 0, err
		}
		f, err := many("f")
		if err != nil {
			return 0, err
		}
		return b.AddMux(sel, t, f), nil
	case cellkind.Adc:
		a, err := many("a")
		if err != nil {
			return 0, err
		}
		bb, err := many("b")
		if err != nil {
			return 0, err
		}
		ci, err := one("ci")
		if err != nil {
			return 0, err
		}
		return b.AddAdc(a, bb, ci), nil
	case cellkind.Dff:
		d, err := many("d")
		if err != nil {
			return 0, err
		}
		clk, err := one("clk")
		if err != nil {
			return 0, err
		}
		en, err := one("en")
		if err != nil {
			return 0, err
		}
		reset, err := one("reset")
		if err != nil {
			return 0, err
		}
		clear, err := one("clear")
		if err != nil {
			return 0, err
		}
		return b.AddDff(d, clk, en, reset, clear), nil
	case cellkind.IoBuf:
		output, err := many("output")
		if err != nil {
			return 0, err
		}
		enable, err := one("enable")
		if err != nil {
			return 0, err
		}
		return b.AddIoBuf(output, enable), nil
	case cellkind.Memory:
		return b.AddMemory(p.cellName, p.width), nil
	case cellkind.Target:
		return b.AddTarget(p.cellName, p.width), nil
	case cellkind.Other:
		return b.AddOther(p.cellName, p.width), nil
	default:
		return 0, fmt.Errorf("yosysjson: cell %q: unsupported kind %v", p.cellName, p.kind)
	}
}

// classification describes how a recognized Yosys cell type maps onto our
// Kind and port-name convention. in values are either a Yosys port name to
// look up in the cell's connections, or the sentinels "const0"/"const1" for
// a control pin the coarse cell type doesn't expose.
type classification struct {
	kind cellkind.Kind
	in   map[string]string
	out  string
}

func classifyCell(rawType string, params map[string]string) (classification, bool) {
	signed := params["A_SIGNED"] == "1"

	switch rawType {
	case "$not":
		return classification{cellkind.Not, map[string]string{"in": "A"}, "Y"}, true
	case "$pos", "$buf":
		return classification{cellkind.Buf, map[string]string{"in": "A"}, "Y"}, true
	case "$and":
		return classification{cellkind.And, map[string]string{"a": "A", "b": "B"}, "Y"}, true
	case "$or":
		return classification{cellkind.Or, map[string]string{"a": "A", "b": "B"}, "Y"}, true
	case "$xor":
		return classification{cellkind.Xor, map[string]string{"a": "A", "b": "B"}, "Y"}, true
	case "$mux":
		return classification{cellkind.Mux, map[string]string{"sel": "S", "t": "B", "f": "A"}, "Y"}, true
	case "$eq":
		return classification{cellkind.Eq, map[string]string{"a": "A", "b": "B"}, "Y"}, true
	case "$lt":
		if signed {
			return classification{cellkind.SLt, map[string]string{"a": "A", "b": "B"}, "Y"}, true
		}
		return classification{cellkind.ULt, map[string]string{"a": "A", "b": "B"}, "Y"}, true
	case "$add":
		return classification{cellkind.Adc, map[string]string{"a": "A", "b": "B", "ci": "const0"}, "Y"}, true
	case "$mul":
		return classification{cellkind.Mul, map[string]string{"a": "A", "b": "B"}, "Y"}, true
	case "$div":
		if signed {
			return classification{cellkind.SDivTrunc, map[string]string{"a": "A", "b": "B"}, "Y"}, true
		}
		return classification{cellkind.UDiv, map[string]string{"a": "A", "b": "B"}, "Y"}, true
	case "$mod":
		if signed {
			return classification{cellkind.SModTrunc, map[string]string{"a": "A", "b": "B"}, "Y"}, true
		}
		return classification{cellkind.UMod, map[string]string{"a": "A", "b": "B"}, "Y"}, true
	case "$divfloor":
		if signed {
			return classification{cellkind.SDivFloor, map[string]string{"a": "A", "b": "B"}, "Y"}, true
		}
		return classification{cellkind.UDiv, map[string]string{"a": "A", "b": "B"}, "Y"}, true
	case "$modfloor":
		if signed {
			return classification{cellkind.SModFloor, map[string]string{"a": "A", "b": "B"}, "Y"}, true
		}
		return classification{cellkind.UMod, map[string]string{"a": "A", "b": "B"}, "Y"}, true
	case "$shl":
		return classification{cellkind.Shl, map[string]string{"a": "A", "b": "B"}, "Y"}, true
	case "$shr":
		return classification{cellkind.UShr, map[string]string{"a": "A", "b": "B"}, "Y"}, true
	case "$sshr":
		return classification{cellkind.SShr, map[string]string{"a": "A", "b": "B"}, "Y"}, true
	case "$shiftx":
		return classification{cellkind.XShr, map[string]string{"a": "A", "b": "B"}, "Y"}, true
	case "$dff":
		return classification{cellkind.Dff, map[string]string{
			"d": "D", "clk": "CLK", "en": "const1", "reset": "const0", "clear": "const0",
		}, "Q"}, true
	case "$dffe":
		return classification{cellkind.Dff, map[string]string{
			"d": "D", "clk": "CLK", "en": "EN", "reset": "const0", "clear": "const0",
		}, "Q"}, true
	case "$adff":
		return classification{cellkind.Dff, map[string]string{
			"d": "D", "clk": "CLK", "en": "const1", "reset": "ARST", "clear": "const0",
		}, "Q"}, true
	case "$adffe":
		return classification{cellkind.Dff, map[string]string{
			"d": "D", "clk": "CLK", "en": "EN", "reset": "ARST", "clear": "const0",
		}, "Q"}, true
	case "$sdff":
		return classification{cellkind.Dff, map[string]string{
			"d": "D", "clk": "CLK", "en": "const1", "reset": "SRST", "clear": "const0",
		}, "Q"}, true
	case "$sdffe":
		return classification{cellkind.Dff, map[string]string{
			"d": "D", "clk": "CLK", "en": "EN", "reset": "SRST", "clear": "const0",
		}, "Q"}, true
	case "$tribuf":
		return classification{cellkind.IoBuf, map[string]string{"output": "A", "enable": "EN"}, "Y"}, true
	default:
		return classification{}, false
	}
}

func opaqueKind(rawType string) cellkind.Kind {
	switch {
	case strings.HasPrefix(rawType, "$mem"):
		return cellkind.Memory
	case !strings.HasPrefix(rawType, "$"):
		return cellkind.Target
	default:
		return cellkind.Other
	}
}

func buildCellPlan(name string, raw Cell) (*plan, error) {
	p := &plan{key: "cell:" + name, cellName: name}

	if cls, ok := classifyCell(raw.Type, raw.Parameters); ok {
		p.kind = cls.kind
		p.in = make(map[string][]Bit, len(cls.in))
		for ourPort, yosysPort := range cls.in {
			switch yosysPort {
			case "const0":
				p.in[ourPort] = []Bit{{IsConst: true, Literal: "0"}}
			case "const1":
				p.in[ourPort] = []Bit{{IsConst: true, Literal: "1"}}
			default:
				bits, ok := raw.Connections[yosysPort]
				if !ok {
					return nil, fmt.Errorf("yosysjson: cell %q (%s) missing port %q", name, raw.Type, yosysPort)
				}
				p.in[ourPort] = bits
			}
		}
		outBits, ok := raw.Connections[cls.out]
		if !ok {
			return nil, fmt.Errorf("yosysjson: cell %q (%s) missing output port %q", name, raw.Type, cls.out)
		}
		p.outBits = outBits
		return p, nil
	}

	p.kind = opaqueKind(raw.Type)
	var outNames []string
	for port, dir := range raw.PortDirections {
		if dir == "output" {
			outNames = append(outNames, port)
		}
	}
	sort.Strings(outNames)
	for _, port := range outNames {
		p.outBits = append(p.outBits, raw.Connections[port]...)
	}
	p.width = len(p.outBits)
	return p, nil
}
