package cellkind

import "testing"

func TestIsGate(t *testing.T) {
	gates := []Kind{
		Buf, Not, And, Or, Xor, Mux, Adc, Aig, Eq, ULt, SLt, Shl, UShr, SShr,
		XShr, Mul, UDiv, UMod, SDivTrunc, SDivFloor, SModTrunc, SModFloor, Dff,
	}
	for _, k := range gates {
		if !k.IsGate() {
			t.Errorf("%v: expected IsGate() true", k)
		}
	}

	nonGates := []Kind{
		Input, Output, IoBuf, Match, Assign, Target, Other, Name, Debug, Memory,
	}
	for _, k := range nonGates {
		if k.IsGate() {
			t.Errorf("%v: expected IsGate() false", k)
		}
	}
}

func TestHasCommutativeInputs(t *testing.T) {
	commutative := []Kind{And, Or, Xor, Aig}
	for _, k := range commutative {
		if !k.HasCommutativeInputs() {
			t.Errorf("%v: expected commutative", k)
		}
	}

	nonCommutative := []Kind{Not, Mux, Adc, Eq, ULt, SLt, Shl, Dff}
	for _, k := range nonCommutative {
		if k.HasCommutativeInputs() {
			t.Errorf("%v: expected non-commutative", k)
		}
	}
}

func TestStringUnknownOutOfRange(t *testing.T) {
	if got := Kind(-1).String(); got != "Unknown" {
		t.Errorf("Kind(-1).String() = %q, want Unknown", got)
	}
	if got := numKinds.String(); got != "Unknown" {
		t.Errorf("numKinds.String() = %q, want Unknown", got)
	}
}

func TestRankMatchesDeclarationOrder(t *testing.T) {
	if And.Rank() >= Or.Rank() {
		t.Errorf("expected And to rank before Or")
	}
	if Dff.Rank() <= Mul.Rank() {
		t.Errorf("expected Dff to rank after Mul")
	}
}
