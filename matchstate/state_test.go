package matchstate_test

import (
	"testing"

	"github.com/nickrallison/svql-go/matchstate"
	"github.com/nickrallison/svql-go/netlist"
)

func TestMapUnmap(t *testing.T) {
	d := netlist.NewDesign("d")
	p := d.Ref(0)
	target := d.Ref(1)

	s := matchstate.New(1)
	if s.IsMapped(p) || s.IsUsedDesign(target) {
		t.Fatal("fresh state should have nothing mapped")
	}

	s.Map(p, target)
	if !s.IsMapped(p) || !s.IsUsedDesign(target) {
		t.Fatal("expected p mapped and target used after Map")
	}
	if got, ok := s.MappedTo(p); !ok || got != target {
		t.Errorf("MappedTo(p) = %v, %v; want %v, true", got, ok, target)
	}
	if !s.Done() {
		t.Errorf("expected Done() true once target gate count reached")
	}

	s.Unmap(p, target)
	if s.IsMapped(p) || s.IsUsedDesign(target) {
		t.Errorf("expected unmapped state after Unmap")
	}
}

func TestBindingMonotonicity(t *testing.T) {
	d := netlist.NewDesign("d")
	io := d.Ref(0)
	des1 := d.Ref(1)
	des2 := d.Ref(2)

	s := matchstate.New(0)
	key := matchstate.NewIoPatKey(io, 0)

	if !s.BindingInsert(key, matchstate.NewNodeDesKey(des1, 0)) {
		t.Fatal("first insert should succeed")
	}
	if s.BindingInsert(key, matchstate.NewNodeDesKey(des2, 0)) {
		t.Errorf("second insert with a different value should be rejected")
	}

	got, ok := s.BindingGet(key)
	if !ok || got != matchstate.NewNodeDesKey(des1, 0) {
		t.Errorf("binding should remain the first value, got %v", got)
	}

	s.BindingsRemoveKeys([]matchstate.PatSrcKey{key})
	if _, ok := s.BindingGet(key); ok {
		t.Errorf("expected binding removed after BindingsRemoveKeys")
	}
}

func TestConstBindingKeysDistinct(t *testing.T) {
	s := matchstate.New(0)
	k0 := matchstate.NewConstPatKey(netlist.Trit0)
	k1 := matchstate.NewConstPatKey(netlist.Trit1)

	s.BindingInsert(k0, matchstate.NewConstDesKey(netlist.Trit0))
	if !s.BindingInsert(k1, matchstate.NewConstDesKey(netlist.Trit1)) {
		t.Errorf("distinct const keys must not collide")
	}
}
