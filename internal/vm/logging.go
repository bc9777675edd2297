package vm

import "fmt"

// logging holds an optional trace callback, invoked once per executed
// sub-opcode (nop bytes are skipped). Adapted from the teacher's step-trace
// format (internals.go's step method): the instruction pointer and opcode
// name, followed by the live return- and data-stack contents.
type logging struct {
	logfn func(mess string, args ...interface{})
}

func (m *Machine) trace(op Opcode) {
	if m.logfn == nil {
		return
	}
	m.logfn("@%v %v r:%v s:%v", m.ip, op, m.addr.Values(), m.data.Values())
}

func (log logging) logf(mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn(mess)
}
