package device

import (
	"crypto/rand"
	"math/big"

	"github.com/ngavm/nga/internal/vm"
)

// maxRandomCell bounds the random draw to CellMax: the reference host's
// "non-negative 63-bit random integer" assumes a 64-bit CELL, but this
// build's cell is a signed 32-bit int32, so the draw is bounded to what a
// cell can actually represent.
var maxRandomCell = big.NewInt(int64(vm.CellMax))

// Random is standard device ID 10: action pushes a non-negative random
// integer read from the host's entropy source (spec.md Section 6.2).
type Random struct{}

// NewRandom returns a Random device drawing from crypto/rand.
func NewRandom() *Random { return &Random{} }

func (r *Random) Query() (version, id int32) { return 0, 10 }

func (r *Random) Invoke(m *vm.Machine) error {
	n, err := rand.Int(rand.Reader, maxRandomCell)
	if err != nil {
		return err
	}
	return m.Push(int32(n.Int64()))
}
