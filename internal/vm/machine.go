// Package vm implements the Nga execution engine: cell memory, the data
// and return stacks, bundle decoding, the 30-opcode instruction set, and
// the I/O dispatch protocol that bridges bytecode to host devices.
//
// The in-image Forth compiler, dictionary builder, and word definitions
// that run atop this engine are out of scope -- they are data shipped
// inside the boot image (see internal/bootimage) and are executed by the
// VM exactly as any other loaded image would be.
package vm

import (
	"context"
	"fmt"
)

// CellMin and CellMax are the sentinel bounds exposed via fetch's -4 and -5
// special addresses (spec.md Section 3).
const (
	CellMin int32 = -(1 << 31) + 1
	CellMax int32 = (1 << 31) - 2
)

// Config holds the fixed capacities a Machine is built with.
type Config struct {
	ImageSize    int32
	StackDepth   int32
	AddressDepth int32
}

// DefaultConfig matches the reference image's expectations.
var DefaultConfig = Config{
	ImageSize:    1048576,
	StackDepth:   512,
	AddressDepth: 1024,
}

// Machine is a single, independently constructible VM instance: memory,
// both stacks, the instruction pointer, and the device registry. Nothing
// about it is global, so a process may host any number of them (spec.md
// Section 9's design note on encapsulating global VM state).
type Machine struct {
	cfg Config
	mem *memory

	data *stack
	addr *stack
	ip   int32

	devices []Device

	logging
}

// Option configures a Machine at construction time, following the same
// functional-options shape used throughout this module's ambient stack.
type Option interface{ apply(*Machine) }

type optionFunc func(*Machine)

func (f optionFunc) apply(m *Machine) { f(m) }

// WithConfig overrides the default capacities.
func WithConfig(cfg Config) Option {
	return optionFunc(func(m *Machine) { m.cfg = cfg })
}

// WithLogf installs a trace callback invoked once per executed sub-opcode,
// mirroring the teacher's step-trace format.
func WithLogf(logf func(mess string, args ...interface{})) Option {
	return optionFunc(func(m *Machine) { m.logfn = logf })
}

// WithDevices registers devices in order; their index in this list is the
// device ID used by ienum/iquery/isend.
func WithDevices(devs ...Device) Option {
	return optionFunc(func(m *Machine) { m.devices = append(m.devices, devs...) })
}

// New constructs a Machine ready to have an image loaded into it.
func New(opts ...Option) *Machine {
	m := &Machine{cfg: DefaultConfig}
	for _, opt := range opts {
		opt.apply(m)
	}
	m.mem = newMemory(uint(m.cfg.ImageSize))
	m.data = newStack("data", m.cfg.StackDepth)
	m.addr = newStack("address", m.cfg.AddressDepth)
	return m
}

// LoadImage copies cells verbatim into memory starting at address 0
// (spec.md Section 6.1).
func (m *Machine) LoadImage(cells []int32) error {
	return m.mem.StorN(0, cells...)
}

// Load and Stor give host code (devices, the evaluator, the dictionary
// walker) direct access to cell memory without going through the data
// stack.
func (m *Machine) Load(addr int32) (int32, error) {
	v, err := m.mem.Load(uint(addr))
	return v, err
}

func (m *Machine) Stor(addr int32, val int32) error {
	return m.mem.Stor(uint(addr), val)
}

// Push and Pop operate on the data stack; devices use these to receive
// operands and return results per the device contracts in spec.md Section
// 6.2.
func (m *Machine) Push(v int32) error { return m.data.Push(v) }
func (m *Machine) Pop() (int32, error) {
	v, err := m.data.Pop()
	return v, err
}

// DataDepth and AddressDepth report the current stack pointers to host
// code.
func (m *Machine) DataDepth() int32    { return m.data.Depth() }
func (m *Machine) AddressDepth() int32 { return m.addr.Depth() }

// ImageSize is the configured IMAGE_SIZE bound (spec.md Section 3).
func (m *Machine) ImageSize() int32 { return m.cfg.ImageSize }

// ResolveTIB returns the text-input-buffer address to use: an image whose
// version cell (cell 4) is zero publishes it in cell 7, while any other
// image (like the embedded default, which keeps a build marker in cell 4)
// relies on a compile-time constant the caller supplies as fallback. The
// fallback is also used when cell 7 is zero (spec.md Section 9's open
// question on image-layout variants).
func (m *Machine) ResolveTIB(fallback int32) int32 {
	if version, err := m.Load(4); err != nil || version != 0 {
		return fallback
	}
	if c7, err := m.Load(7); err == nil && c7 != 0 {
		return c7
	}
	return fallback
}

// IP returns the current instruction pointer, mainly for diagnostics.
func (m *Machine) IP() int32 { return m.ip }

// Execute runs the instruction loop starting at entry until the return
// stack empties (normal termination) or ctx is cancelled. It corresponds
// to the host's execute(address) re-entry point (spec.md Section 3's
// Lifecycle paragraph): any host code, including a device handler, may
// call it recursively, but must first save and restore m.ip itself if it
// needs to resume its own position afterward (spec.md Section 5).
func (m *Machine) Execute(ctx context.Context, entry int32) (err error) {
	defer func() {
		if e := recover(); e != nil {
			if he, ok := e.(HaltError); ok {
				err = he
				return
			}
			panic(e)
		}
	}()

	if m.addr.Depth() == 0 {
		if pushErr := m.addr.Push(0); pushErr != nil {
			return pushErr
		}
	}
	m.ip = entry

	for m.ip < m.cfg.ImageSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.step()
	}
	return nil
}

// step executes one bundle: decode, validate, run the four sub-opcodes in
// order, then advances ip. If the address stack empties during the bundle,
// ip is forced to ImageSize so the Execute loop exits at the next
// iteration (spec.md Section 4.2's "return past bottom" termination).
func (m *Machine) step() {
	cell, err := m.Load(m.ip)
	m.haltif(err)

	b := decodeBundle(cell)
	if verr := b.validate(m.ip, cell); verr != nil {
		fmt.Println(verr.Error())
		m.halt(verr)
	}

	for _, op := range b {
		if op == byte(OpNop) {
			continue
		}
		m.trace(Opcode(op))
		m.dispatch(Opcode(op))
	}
	m.ip++
	if m.addr.Depth() == 0 {
		m.ip = m.cfg.ImageSize
	}
}

func (m *Machine) halt(err error) {
	panic(HaltError{err})
}

func (m *Machine) haltif(err error) {
	if err != nil {
		m.halt(err)
	}
}
