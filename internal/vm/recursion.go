package vm

// ReturnState snapshots the address stack and instruction pointer so a
// host-driven nested call (the evaluator's include) can run to completion
// in its own return-stack scope and then restore the caller's, as spec.md
// Section 4.6 requires ("the save/restore of the return stack is
// essential: nested includes ... must not corrupt their caller's return
// context").
type ReturnState struct {
	IP   int32
	Addr []int32
}

// SaveReturn captures the current address stack and ip.
func (m *Machine) SaveReturn() ReturnState {
	return ReturnState{IP: m.ip, Addr: append([]int32(nil), m.addr.Values()...)}
}

// ResetReturn empties the address stack, giving a nested call a fresh
// return-stack scope (spec.md Section 4.6's "zeroes rp").
func (m *Machine) ResetReturn() {
	m.addr.sp = 0
}

// RestoreReturn replaces the address stack contents and ip from a prior
// SaveReturn.
func (m *Machine) RestoreReturn(s ReturnState) {
	m.addr.sp = int32(len(s.Addr))
	copy(m.addr.cell[1:], s.Addr)
	m.ip = s.IP
}
