package vm

import (
	"fmt"
	"io"
)

// Dump writes a human-readable snapshot of the data stack, return stack,
// and instruction pointer to w. Adapted from the teacher's vmDumper
// (main.go / io.go): a post-run diagnostic aid for the -dump CLI flag,
// not something image code can observe.
func (m *Machine) Dump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "ip: %v\n", m.ip); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data stack (%v): %v\n", m.data.Depth(), m.data.Values()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "address stack (%v): %v\n", m.addr.Depth(), m.addr.Values()); err != nil {
		return err
	}
	return nil
}
