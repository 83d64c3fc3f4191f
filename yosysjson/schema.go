// Package yosysjson decodes netlists from Yosys's `write_json` backend
// format into a *netlist.Design. This is one concrete answer to "how
// netlists get produced" for front ends (cmd/svqlfind, cmd/svqlserve,
// tests); neither svql nor search import this package directly.
//
// The adapter targets the "coarse" netlist Yosys produces after
// `proc; opt_clean` (word-level $and/$or/$mux/$dff/... cells), matching how
// prjunnamed-style front ends in the source repo consume Yosys output
// (original: svql_common/src/yosys/mod.rs, module.rs). It does not invoke
// yosys itself — that is an external-process concern out of scope for this
// module (spec's Non-goals exclude HDL ingestion as a specified contract);
// it only parses an already-produced JSON document.
package yosysjson

import "encoding/json"

// File is the top-level shape of a Yosys JSON netlist export.
type File struct {
	Creator string             `json:"creator"`
	Modules map[string]*Module `json:"modules"`
}

// Module is one design module: its boundary ports and internal cells.
type Module struct {
	Attributes map[string]json.RawMessage `json:"attributes"`
	Ports      map[string]Port            `json:"ports"`
	Cells      map[string]Cell            `json:"cells"`
}

// Port is one module boundary port.
type Port struct {
	Direction string `json:"direction"`
	Bits      []Bit  `json:"bits"`
}

// Cell is one internal cell instance.
type Cell struct {
	Type           string            `json:"type"`
	Parameters     map[string]string `json:"parameters"`
	PortDirections map[string]string `json:"port_directions"`
	Connections    map[string][]Bit  `json:"connections"`
}

// Bit is one entry of a "bits" array: either a net id, or one of the
// literal constant markers "0"/"1"/"x"/"z".
type Bit struct {
	IsConst bool
	Literal string
	Net     int
}

// UnmarshalJSON accepts both encodings Yosys uses for a single bit: a bare
// JSON number (a net id) or a JSON string ("0", "1", "x", "z").
func (b *Bit) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*b = Bit{Net: n}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*b = Bit{IsConst: true, Literal: s}
	return nil
}
