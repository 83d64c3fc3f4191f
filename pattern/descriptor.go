package pattern

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nickrallison/svql-go/netlist"
)

// Descriptor is a YAML-loadable description of a needle pattern, named and
// composed the way the teacher loads CGRA programs from YAML
// (core/program.go): a flat document of struct-tagged fields, read with
// gopkg.in/yaml.v3 and then resolved into a concrete *netlist.Design.
type Descriptor struct {
	Name    string       `yaml:"name"`
	Inputs  []IOSpec     `yaml:"inputs"`
	Gates   []GateDesc   `yaml:"gates"`
	Outputs []OutputDesc `yaml:"outputs"`
}

// IOSpec declares a primary input of the pattern.
type IOSpec struct {
	Name  string `yaml:"name"`
	Width int    `yaml:"width"`
}

// PortSpec binds one named port of a gate to a list of source references,
// one ref per bit.
type PortSpec struct {
	Port string   `yaml:"port"`
	Refs []string `yaml:"refs"`
}

// GateDesc describes one gate in the pattern. Gates must appear in
// topological order: a ref may only name an input or an earlier gate.
type GateDesc struct {
	Name  string     `yaml:"name"`
	Kind  string     `yaml:"kind"`
	Ports []PortSpec `yaml:"ports"`
}

// OutputDesc declares a primary output driven by the listed refs.
type OutputDesc struct {
	Name string   `yaml:"name"`
	Refs []string `yaml:"refs"`
}

// LoadDescriptor reads and parses a pattern descriptor from a YAML file.
func LoadDescriptor(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pattern: reading descriptor %q: %w", path, err)
	}
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("pattern: parsing descriptor %q: %w", path, err)
	}
	return &d, nil
}

// resolver tracks named cells as a descriptor is built in order, so later
// gates/outputs can reference earlier gates'/inputs' outputs by name.
type resolver struct {
	b     *netlist.Builder
	names map[string]netlist.CellID
}

func newResolver(b *netlist.Builder) *resolver {
	return &resolver{b: b, names: make(map[string]netlist.CellID)}
}

func (r *resolver) define(name string, id netlist.CellID) error {
	if name == "" {
		return fmt.Errorf("pattern: gate/input missing a name")
	}
	if _, exists := r.names[name]; exists {
		return fmt.Errorf("pattern: duplicate cell name %q", name)
	}
	r.names[name] = id
	return nil
}

// ref resolves a single reference string: "const0"/"const1"/"constx" for a
// tied constant, "name" for bit 0 of a previously defined cell, or
// "name.bit" for a specific bit.
func (r *resolver) ref(s string) (netlist.Source, error) {
	switch s {
	case "const0":
		return netlist.Const(netlist.Trit0), nil
	case "const1":
		return netlist.Const(netlist.Trit1), nil
	case "constx":
		return netlist.Const(netlist.TritX), nil
	}

	name, bitStr, hasBit := strings.Cut(s, ".")
	bit := 0
	if hasBit {
		b, err := strconv.Atoi(bitStr)
		if err != nil {
			return netlist.Source{}, fmt.Errorf("pattern: ref %q has a non-numeric bit index: %w", s, err)
		}
		bit = b
	}
	id, ok := r.names[name]
	if !ok {
		return netlist.Source{}, fmt.Errorf("pattern: ref %q names an undefined cell (out of topological order?)", s)
	}
	return netlist.Out(id, bit), nil
}

func (r *resolver) refs(ss []string) ([]netlist.Source, error) {
	out := make([]netlist.Source, len(ss))
	for i, s := range ss {
		src, err := r.ref(s)
		if err != nil {
			return nil, err
		}
		out[i] = src
	}
	return out, nil
}

func (g GateDesc) port(name string) ([]string, bool) {
	for _, p := range g.Ports {
		if p.Port == name {
			return p.Refs, true
		}
	}
	return nil, false
}

func (g GateDesc) requirePort(name string) ([]string, error) {
	refs, ok := g.port(name)
	if !ok {
		return nil, fmt.Errorf("pattern: gate %q (%s) missing required port %q", g.Name, g.Kind, name)
	}
	return refs, nil
}

func (g GateDesc) requireSinglePort(name string) (string, error) {
	refs, err := g.requirePort(name)
	if err != nil {
		return "", err
	}
	if len(refs) != 1 {
		return "", fmt.Errorf("pattern: gate %q port %q must have exactly one ref, got %d", g.Name, name, len(refs))
	}
	return refs[0], nil
}

// Build resolves a Descriptor into a concrete *netlist.Design, in the order
// the descriptor lists inputs, then gates, then outputs.
func Build(d *Descriptor) (*netlist.Design, error) {
	b := netlist.NewBuilder(d.Name)
	r := newResolver(b)

	for _, in := range d.Inputs {
		id := b.AddInput(in.Name, in.Width)
		if err := r.define(in.Name, id); err != nil {
			return nil, err
		}
	}

	for _, g := range d.Gates {
		id, err := buildGate(b, r, g)
		if err != nil {
			return nil, err
		}
		if err := r.define(g.Name, id); err != nil {
			return nil, err
		}
	}

	for _, out := range d.Outputs {
		srcs, err := r.refs(out.Refs)
		if err != nil {
			return nil, fmt.Errorf("pattern: output %q: %w", out.Name, err)
		}
		b.AddOutput(out.Name, srcs)
	}

	return b.Build(), nil
}

func buildGate(b *netlist.Builder, r *resolver, g GateDesc) (netlist.CellID, error) {
	switch g.Kind {
	case "and", "or", "xor":
		aRefs, err := g.requirePort("a")
		if err != nil {
			return 0, err
		}
		bRefs, err := g.requirePort("b")
		if err != nil {
			return 0, err
		}
		a, err := r.refs(aRefs)
		if err != nil {
			return 0, err
		}
		bSrcs, err := r.refs(bRefs)
		if err != nil {
			return 0, err
		}
		switch g.Kind {
		case "and":
			return b.AddAnd(a, bSrcs), nil
		case "or":
			return b.AddOr(a, bSrcs), nil
		default:
			return b.AddXor(a, bSrcs), nil
		}

	case "not", "buf":
		inRef, err := g.requireSinglePort("in")
		if err != nil {
			return 0, err
		}
		in, err := r.ref(inRef)
		if err != nil {
			return 0, err
		}
		if g.Kind == "not" {
			return b.AddNot(in), nil
		}
		return b.AddBuf(in), nil

	case "aig":
		aRef, err := g.requireSinglePort("a")
		if err != nil {
			return 0, err
		}
		bRef, err := g.requireSinglePort("b")
		if err != nil {
			return 0, err
		}
		a, err := r.ref(aRef)
		if err != nil {
			return 0, err
		}
		bSrc, err := r.ref(bRef)
		if err != nil {
			return 0, err
		}
		return b.AddAig(a, bSrc), nil

	case "mux":
		selRef, err := g.requireSinglePort("sel")
		if err != nil {
			return 0, err
		}
		sel, err := r.ref(selRef)
		if err != nil {
			return 0, err
		}
		tRefs, err := g.requirePort("t")
		if err != nil {
			return 0, err
		}
		fRefs, err := g.requirePort("f")
		if err != nil {
			return 0, err
		}
		t, err := r.refs(tRefs)
		if err != nil {
			return 0, err
		}
		f, err := r.refs(fRefs)
		if err != nil {
			return 0, err
		}
		return b.AddMux(sel, t, f), nil

	case "eq", "ult", "slt":
		aRefs, err := g.requirePort("a")
		if err != nil {
			return 0, err
		}
		bRefs, err := g.requirePort("b")
		if err != nil {
			return 0, err
		}
		a, err := r.refs(aRefs)
		if err != nil {
			return 0, err
		}
		bSrcs, err := r.refs(bRefs)
		if err != nil {
			return 0, err
		}
		switch g.Kind {
		case "eq":
			return b.AddEq(a, bSrcs), nil
		case "ult":
			return b.AddULt(a, bSrcs), nil
		default:
			return b.AddSLt(a, bSrcs), nil
		}

	case "adc":
		aRefs, err := g.requirePort("a")
		if err != nil {
			return 0, err
		}
		bRefs, err := g.requirePort("b")
		if err != nil {
			return 0, err
		}
		ciRef, err := g.requireSinglePort("ci")
		if err != nil {
			return 0, err
		}
		a, err := r.refs(aRefs)
		if err != nil {
			return 0, err
		}
		bSrcs, err := r.refs(bRefs)
		if err != nil {
			return 0, err
		}
		ci, err := r.ref(ciRef)
		if err != nil {
			return 0, err
		}
		return b.AddAdc(a, bSrcs, ci), nil

	case "dff":
		dRefs, err := g.requirePort("d")
		if err != nil {
			return 0, err
		}
		clkRef, err := g.requireSinglePort("clk")
		if err != nil {
			return 0, err
		}
		d, err := r.refs(dRefs)
		if err != nil {
			return 0, err
		}
		clk, err := r.ref(clkRef)
		if err != nil {
			return 0, err
		}
		en := netlist.Const(netlist.Trit1)
		if refs, ok := g.port("en"); ok {
			if en, err = r.ref(mustOne(refs)); err != nil {
				return 0, err
			}
		}
		reset := netlist.Const(netlist.Trit0)
		if refs, ok := g.port("reset"); ok {
			if reset, err = r.ref(mustOne(refs)); err != nil {
				return 0, err
			}
		}
		clear := netlist.Const(netlist.Trit0)
		if refs, ok := g.port("clear"); ok {
			if clear, err = r.ref(mustOne(refs)); err != nil {
				return 0, err
			}
		}
		return b.AddDff(d, clk, en, reset, clear), nil

	default:
		return 0, fmt.Errorf("pattern: gate %q has unsupported kind %q", g.Name, g.Kind)
	}
}

// mustOne returns the single element of refs, or "" if refs isn't exactly
// one long; the caller's subsequent r.ref("") will surface a clear error.
func mustOne(refs []string) string {
	if len(refs) != 1 {
		return ""
	}
	return refs[0]
}
