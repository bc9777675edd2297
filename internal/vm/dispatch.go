package vm

// dispatch executes a single sub-opcode. Stack underflow on drop is a
// graceful halt per spec.md Section 7: ip moves to ImageSize and Execute
// returns nil. Every other stack-discipline violation (the remaining
// opcodes all assume well-formed image code) halts through m.halt, which
// Execute recovers and returns as a HaltError wrapping the cause, rather
// than letting a Go panic escape mid-bundle.
func (m *Machine) dispatch(op Opcode) {
	switch op {
	case OpNop:
		// no-op

	case OpLit:
		m.ip++
		v, err := m.Load(m.ip)
		m.haltif(err)
		m.haltif(m.data.Push(v))

	case OpDup:
		v := m.mustPop()
		m.mustPush(v)
		m.mustPush(v)

	case OpDrop:
		if _, err := m.data.Pop(); err != nil {
			m.ip = m.cfg.ImageSize
			return
		}

	case OpSwap:
		b := m.mustPop()
		a := m.mustPop()
		m.mustPush(b)
		m.mustPush(a)

	case OpPush:
		v := m.mustPop()
		m.haltif(m.addr.Push(v))

	case OpPop:
		v, err := m.addr.Pop()
		m.haltif(err)
		m.mustPush(v)

	case OpJump:
		addr := m.mustPop()
		m.ip = addr - 1

	case OpCall:
		addr := m.mustPop()
		m.haltif(m.addr.Push(m.ip))
		m.ip = addr - 1

	case OpCCall:
		addr := m.mustPop()
		flag := m.mustPop()
		if flag != 0 {
			m.haltif(m.addr.Push(m.ip))
			m.ip = addr - 1
		}

	case OpReturn:
		ret, err := m.addr.Pop()
		m.haltif(err)
		m.ip = ret

	case OpEq:
		b, a := m.mustPop(), m.mustPop()
		m.mustPush(boolCell(a == b))
	case OpNeq:
		b, a := m.mustPop(), m.mustPop()
		m.mustPush(boolCell(a != b))
	case OpLt:
		b, a := m.mustPop(), m.mustPop()
		m.mustPush(boolCell(a < b))
	case OpGt:
		b, a := m.mustPop(), m.mustPop()
		m.mustPush(boolCell(a > b))

	case OpFetch:
		addr := m.mustPop()
		m.mustPush(m.fetch(addr))

	case OpStore:
		addr := m.mustPop()
		v := m.mustPop()
		m.haltif(m.Stor(addr, v))

	case OpAdd:
		b, a := m.mustPop(), m.mustPop()
		m.mustPush(a + b)
	case OpSub:
		b, a := m.mustPop(), m.mustPop()
		m.mustPush(a - b)
	case OpMul:
		b, a := m.mustPop(), m.mustPop()
		m.mustPush(a * b)
	case OpDivMod:
		divisor, dividend := m.mustPop(), m.mustPop()
		if divisor == 0 {
			m.halt(divideByZeroError{})
		}
		m.mustPush(dividend / divisor)
		m.mustPush(dividend % divisor)

	case OpAnd:
		b, a := m.mustPop(), m.mustPop()
		m.mustPush(a & b)
	case OpOr:
		b, a := m.mustPop(), m.mustPop()
		m.mustPush(a | b)
	case OpXor:
		b, a := m.mustPop(), m.mustPop()
		m.mustPush(a ^ b)
	case OpShift:
		n, x := m.mustPop(), m.mustPop()
		m.mustPush(shift(x, n))

	case OpZRet:
		top := m.mustPop()
		if top == 0 {
			ret, err := m.addr.Pop()
			m.haltif(err)
			m.ip = ret
		} else {
			m.mustPush(top)
		}

	case OpHalt:
		m.ip = m.cfg.ImageSize - 1

	case OpIEnum:
		m.mustPush(int32(len(m.devices)))

	case OpIQuery:
		d := m.mustPop()
		dev := m.deviceAt(d)
		version, id := dev.Query()
		m.mustPush(version)
		m.mustPush(id)

	case OpISend:
		d := m.mustPop()
		dev := m.deviceAt(d)
		m.haltif(dev.Invoke(m))

	default:
		m.halt(invalidDeviceError(op))
	}
}

// fetch resolves an address through the five introspection sentinels
// (spec.md Section 4.1's fetch row) before falling back to a plain load.
func (m *Machine) fetch(addr int32) int32 {
	switch addr {
	case -1:
		return m.data.Depth()
	case -2:
		return m.addr.Depth()
	case -3:
		return m.cfg.ImageSize
	case -4:
		return CellMin
	case -5:
		return CellMax
	default:
		v, err := m.Load(addr)
		m.haltif(err)
		return v
	}
}

// shift implements spec.md Section 4.1's shift contract. Go's native
// right-shift on a signed type is already arithmetic (sign-extending) for
// negative operands and identical to logical shift for non-negative ones,
// so both branches the spec calls out collapse to one expression.
func shift(x, n int32) int32 {
	if n < 0 {
		return x << uint32(-n)
	}
	return x >> uint32(n)
}

func (m *Machine) mustPop() int32 {
	v, err := m.data.Pop()
	m.haltif(err)
	return v
}

func (m *Machine) mustPush(v int32) {
	m.haltif(m.data.Push(v))
}

func (m *Machine) deviceAt(d int32) Device {
	if d < 0 || int(d) >= len(m.devices) {
		m.halt(invalidDeviceError(d))
	}
	return m.devices[d]
}

type divideByZeroError struct{}

func (divideByZeroError) Error() string { return "divide by zero" }
