// Package matchstate holds the mutable per-branch state the search engine
// threads through backtracking: the partial pattern-to-design node mapping,
// the set of design nodes already claimed, and the boundary source
// bindings that pin external (Io/Const) pattern sources to one consistent
// design source (spec §3 Assignment/State, §4.5.3/§4.5.4).
package matchstate

import "github.com/nickrallison/svql-go/netlist"

// PatSrcKey identifies one external (non-gate) pattern source: an Io
// boundary cell output bit, or (with Bit ignored) a constant pattern
// value. Distinct const values get distinct keys via NewConstPatKey so
// that two different constant sources never collide in the bindings map.
type PatSrcKey struct {
	node    netlist.CellRef
	bit     int
	isConst bool
	cval    netlist.Trit
}

// NewIoPatKey builds the key for a pattern boundary node's output bit.
func NewIoPatKey(node netlist.CellRef, bit int) PatSrcKey {
	return PatSrcKey{node: node, bit: bit}
}

// NewConstPatKey builds the key for a constant pattern source.
func NewConstPatKey(t netlist.Trit) PatSrcKey {
	return PatSrcKey{isConst: true, cval: t}
}

// Node returns the pattern boundary node and true, or the zero value and
// false if this key names a constant.
func (k PatSrcKey) Node() (netlist.CellRef, bool) {
	if k.isConst {
		return netlist.CellRef{}, false
	}
	return k.node, true
}

// Bit returns the bound output bit.
func (k PatSrcKey) Bit() int { return k.bit }

// Const returns the constant value and true, or the zero value and false
// if this key names a node source.
func (k PatSrcKey) Const() (netlist.Trit, bool) {
	if !k.isConst {
		return 0, false
	}
	return k.cval, true
}

// DesSrcKey identifies the design-side source a PatSrcKey has been bound
// to: a gate/Io node's output bit, or a constant.
type DesSrcKey struct {
	isConst bool
	cval    netlist.Trit
	node    netlist.CellRef
	bit     int
}

// NewNodeDesKey builds a design source key naming a specific node's output
// bit (the node may be a Gate or an Io node in the design graph).
func NewNodeDesKey(node netlist.CellRef, bit int) DesSrcKey {
	return DesSrcKey{node: node, bit: bit}
}

// NewConstDesKey builds a design source key naming a constant value.
func NewConstDesKey(t netlist.Trit) DesSrcKey {
	return DesSrcKey{isConst: true, cval: t}
}

// Node returns the bound design node and true, or the zero value and false
// if this key names a constant.
func (k DesSrcKey) Node() (netlist.CellRef, bool) {
	if k.isConst {
		return netlist.CellRef{}, false
	}
	return k.node, true
}

// Bit returns the bound output bit.
func (k DesSrcKey) Bit() int { return k.bit }

// Const returns the constant value and true, or the zero value and false
// if this key names a node source.
func (k DesSrcKey) Const() (netlist.Trit, bool) {
	if !k.isConst {
		return 0, false
	}
	return k.cval, true
}

// State is one search branch's accumulated partial embedding. Zero value
// is not usable; construct with New.
type State struct {
	mapping         map[netlist.CellRef]netlist.CellRef
	usedDesign      map[netlist.CellRef]struct{}
	bindings        map[PatSrcKey]DesSrcKey
	targetGateCount int
}

// New creates an empty state that is Done once targetGateCount pattern
// gates have been mapped (the needle's full gate count).
func New(targetGateCount int) *State {
	return &State{
		mapping:         make(map[netlist.CellRef]netlist.CellRef),
		usedDesign:      make(map[netlist.CellRef]struct{}),
		bindings:        make(map[PatSrcKey]DesSrcKey),
		targetGateCount: targetGateCount,
	}
}

// IsMapped reports whether pattern node p already has a design assignment.
func (s *State) IsMapped(p netlist.CellRef) bool {
	_, ok := s.mapping[p]
	return ok
}

// MappedTo returns the design node p is mapped to, if any.
func (s *State) MappedTo(p netlist.CellRef) (netlist.CellRef, bool) {
	d, ok := s.mapping[p]
	return d, ok
}

// Mapping exposes the live pattern->design mapping. Callers must treat it
// as read-only; mutate only via Map/Unmap.
func (s *State) Mapping() map[netlist.CellRef]netlist.CellRef {
	return s.mapping
}

// IsUsedDesign reports whether design node d is already claimed by some
// mapped pattern node (spec §4.5.4 used-design exclusivity).
func (s *State) IsUsedDesign(d netlist.CellRef) bool {
	_, ok := s.usedDesign[d]
	return ok
}

// Map assigns pattern node p to design node d. p must not already be
// mapped and d must not already be used; the caller (package search) is
// responsible for checking IsMapped/IsUsedDesign first.
func (s *State) Map(p, d netlist.CellRef) {
	s.mapping[p] = d
	s.usedDesign[d] = struct{}{}
}

// Unmap reverses a prior Map(p, d) call, restoring the state for
// backtracking.
func (s *State) Unmap(p, d netlist.CellRef) {
	delete(s.mapping, p)
	delete(s.usedDesign, d)
}

// Done reports whether every pattern gate has been mapped, i.e. this
// branch holds a complete embedding.
func (s *State) Done() bool {
	return len(s.mapping) == s.targetGateCount
}

// Len returns the number of pattern gates mapped so far.
func (s *State) Len() int { return len(s.mapping) }

// BindingGet returns a previously established boundary binding, if any.
func (s *State) BindingGet(key PatSrcKey) (DesSrcKey, bool) {
	v, ok := s.bindings[key]
	return v, ok
}

// BindingInsert records a new boundary binding. Returns false without
// modifying state if key is already bound (callers must check the
// existing value is consistent before calling this, per spec §4.5.3's
// monotone binding policy).
func (s *State) BindingInsert(key PatSrcKey, val DesSrcKey) bool {
	if _, ok := s.bindings[key]; ok {
		return false
	}
	s.bindings[key] = val
	return true
}

// BindingsRemoveKeys undoes a batch of bindings inserted together for one
// candidate attempt, used when that attempt is backtracked.
func (s *State) BindingsRemoveKeys(keys []PatSrcKey) {
	for _, k := range keys {
		delete(s.bindings, k)
	}
}

// Bindings returns a snapshot copy of every boundary binding committed so
// far, safe for a caller to retain past the branch's lifetime (e.g. to
// embed in a completed Embedding) since further Map/Unmap or binding
// churn on s cannot mutate it.
func (s *State) Bindings() map[PatSrcKey]DesSrcKey {
	out := make(map[PatSrcKey]DesSrcKey, len(s.bindings))
	for k, v := range s.bindings {
		out[k] = v
	}
	return out
}
