package device

import "github.com/ngavm/nga/internal/vm"

// Scripting is standard device ID 9: argc/arg/include/name against the
// process's argument list (spec.md Section 6.2). Include is supplied as a
// callback rather than a direct dependency on the evaluator package, to
// keep devices free of a cycle back into the outer evaluation loop.
type Scripting struct {
	Args    []string
	Include func(path string) error
}

// NewScripting returns a Scripting device over args (conventionally
// os.Args, so argv[0] is the launcher itself and argv[1] the primary
// script, matching spec.md Section 6.3).
func NewScripting(args []string, include func(path string) error) *Scripting {
	return &Scripting{Args: args, Include: include}
}

func (s *Scripting) Query() (version, id int32) { return 2, 9 }

func (s *Scripting) Invoke(m *vm.Machine) error {
	sel, err := m.Pop()
	if err != nil {
		return err
	}
	switch sel {
	case 0:
		return m.Push(int32(len(s.Args) - 2))
	case 1:
		return s.arg(m)
	case 2:
		return s.include(m)
	case 3:
		return s.name(m)
	default:
		return invalidSelectorError{"scripting", sel}
	}
}

func (s *Scripting) arg(m *vm.Machine) error {
	i, err := m.Pop()
	if err != nil {
		return err
	}
	bufAddr, err := m.Pop()
	if err != nil {
		return err
	}
	idx := int(i) + 2
	var val string
	if idx >= 0 && idx < len(s.Args) {
		val = s.Args[idx]
	}
	if _, err := m.Inject([]byte(val), bufAddr); err != nil {
		return err
	}
	return m.Push(bufAddr)
}

func (s *Scripting) include(m *vm.Machine) error {
	addr, err := m.Pop()
	if err != nil {
		return err
	}
	path, err := m.Extract(addr)
	if err != nil {
		return err
	}
	if s.Include == nil {
		return nil
	}
	return s.Include(string(path))
}

func (s *Scripting) name(m *vm.Machine) error {
	bufAddr, err := m.Pop()
	if err != nil {
		return err
	}
	var val string
	if len(s.Args) > 1 {
		val = s.Args[1]
	}
	if _, err := m.Inject([]byte(val), bufAddr); err != nil {
		return err
	}
	return m.Push(bufAddr)
}
