package vm

// MaxStringLen bounds how many bytes Extract will read before giving up on
// finding a terminator, guarding against a malformed image looping the
// host forever (spec.md Section 4.4).
const MaxStringLen = 8192

// Inject writes s into consecutive cells starting at addr, one byte per
// cell, followed by a terminating zero cell, and returns addr. An empty s
// writes only the terminator.
func (m *Machine) Inject(s []byte, addr int32) (int32, error) {
	for i, b := range s {
		if err := m.Stor(addr+int32(i), int32(b)); err != nil {
			return addr, err
		}
	}
	if err := m.Stor(addr+int32(len(s)), 0); err != nil {
		return addr, err
	}
	return addr, nil
}

// Extract reads cells starting at addr, truncating each to its low byte,
// until a zero cell or MaxStringLen bytes is reached.
func (m *Machine) Extract(addr int32) ([]byte, error) {
	var out []byte
	for i := int32(0); i < MaxStringLen; i++ {
		v, err := m.Load(addr + i)
		if err != nil {
			return out, err
		}
		if v == 0 {
			break
		}
		out = append(out, byte(v))
	}
	return out, nil
}
