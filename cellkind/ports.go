package cellkind

// PortOrder returns the canonical, ordered list of named fan-in ports for a
// kind, reproduced verbatim from the port-name convention table (spec §6).
// The order is significant for non-commutative sinks: pin i of the flattened
// positional fan-in corresponds to the i-th bit contributed by the ports in
// this order.
//
// Kinds with no fan-in (Input) or whose fan-in does not participate in
// matching (Memory, Target, Other) return nil.
func PortOrder(k Kind) []string {
	switch k {
	case Buf, Not, Output, Name, Debug:
		return []string{"in"}
	case And, Or, Xor, Eq, ULt, SLt, Mul, UDiv, UMod,
		SDivTrunc, SDivFloor, SModTrunc, SModFloor, Aig:
		return []string{"a", "b"}
	case Mux:
		return []string{"sel", "t", "f"}
	case Adc:
		return []string{"a", "b", "ci"}
	case Shl, UShr, SShr, XShr:
		return []string{"a", "b"}
	case Dff:
		return []string{"d", "clk", "en", "reset", "clear"}
	case IoBuf:
		return []string{"output", "enable"}
	case Match:
		return []string{"value"}
	case Assign:
		return []string{"value"}
	default:
		return nil
	}
}
