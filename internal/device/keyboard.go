package device

import (
	"bufio"
	"io"

	"github.com/ngavm/nga/internal/vm"
)

// Keyboard is standard device ID 1: action reads one byte from the
// underlying reader and pushes it, normalizing DEL (127) to BS (8). EOF is
// pushed as -1, matching getc's sentinel in the reference implementation.
type Keyboard struct {
	in *bufio.Reader
}

// NewKeyboard wraps r for device 1.
func NewKeyboard(r io.Reader) *Keyboard {
	return &Keyboard{in: bufio.NewReader(r)}
}

func (k *Keyboard) Query() (version, id int32) { return 0, 1 }

func (k *Keyboard) Invoke(m *vm.Machine) error {
	b, err := k.in.ReadByte()
	var v int32
	if err == io.EOF {
		v = -1
	} else if err != nil {
		return err
	} else {
		v = int32(b)
	}
	if v == 127 {
		v = 8
	}
	return m.Push(v)
}
