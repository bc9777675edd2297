// Package device implements the host-side capabilities reachable from
// image code through the VM's I/O dispatch protocol (spec.md Section 6.2):
// console output, keyboard input, a filesystem, a shell, scripting
// arguments, and a random number source.
package device

import (
	"github.com/ngavm/nga/internal/flushio"
	"github.com/ngavm/nga/internal/vm"
)

// Console is standard device ID 0: action pops one cell, writes it as a
// byte to the underlying writer, and flushes.
type Console struct {
	Out flushio.WriteFlusher
}

// NewConsole wraps w (which may already be a WriteFlusher) for device 0.
func NewConsole(w flushio.WriteFlusher) *Console {
	return &Console{Out: w}
}

func (c *Console) Query() (version, id int32) { return 0, 0 }

func (c *Console) Invoke(m *vm.Machine) error {
	v, err := m.Pop()
	if err != nil {
		return err
	}
	if _, err := c.Out.Write([]byte{byte(v)}); err != nil {
		return err
	}
	return c.Out.Flush()
}
