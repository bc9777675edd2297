package vm

// Device is a host capability addressable by a small integer, invoked by
// the ienum/iquery/isend opcodes (spec.md Section 4.3). Implementations
// live in internal/device; the VM only knows the registry shape.
type Device interface {
	// Query returns (version, id) to be pushed onto the data stack, id
	// being the semantic device class standard devices agree on
	// (spec.md Section 6.2).
	Query() (version, id int32)

	// Invoke is called by isend. It reads any sub-selector and operands
	// it needs from m's data stack and pushes its results the same way.
	// Implementations run synchronously to completion, as spec.md
	// Section 4.3 requires.
	Invoke(m *Machine) error
}
