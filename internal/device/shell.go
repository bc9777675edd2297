package device

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/ngavm/nga/internal/vm"
)

// Shell is standard device ID 8: the src,vm.c variant (system via
// argv-tokenized fork+exec, listdir) at sub-selectors 0/1, plus the rx.c
// variant's popen/pclose/chdir/getenv/putenv at sub-selectors 2..6 --
// both rx.c device-4/unix variants implemented on one device, since
// nothing in spec.md's Non-goals excludes either (spec.md Section 9).
type Shell struct {
	files *openFiles
}

// NewShell wires a Shell device against files, the same open-file table
// Filesystem uses, so popen'd pipes and opened files share one slot space
// (spec.md Section 5).
func NewShell(files *openFiles) *Shell {
	return &Shell{files: files}
}

func (s *Shell) Query() (version, id int32) { return 1, 8 }

func (s *Shell) Invoke(m *vm.Machine) error {
	sel, err := m.Pop()
	if err != nil {
		return err
	}
	switch sel {
	case 0:
		return s.system(m)
	case 1:
		return s.listdir(m)
	case 2:
		return s.openPipe(m)
	case 3:
		return s.closePipe(m)
	case 4:
		return s.chdir(m)
	case 5:
		return s.getenv(m)
	case 6:
		return s.putenv(m)
	default:
		return invalidSelectorError{"shell", sel}
	}
}

func (s *Shell) system(m *vm.Machine) error {
	cmdAddr, err := m.Pop()
	if err != nil {
		return err
	}
	cmd, err := m.Extract(cmdAddr)
	if err != nil {
		return err
	}
	args := strings.Fields(string(cmd))
	if len(args) == 0 {
		return nil
	}
	c := exec.Command(args[0], args[1:]...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	_ = c.Run()
	return nil
}

// listdir writes the newline-joined names of the directory named at
// buf_addr back into buf_addr, skipping dotfiles and subdirectories,
// matching unix_dir's
// filter in original_source/src,vm.c.
func (s *Shell) listdir(m *vm.Machine) error {
	bufAddr, err := m.Pop()
	if err != nil {
		return err
	}
	path, err := m.Extract(bufAddr)
	if err != nil {
		return err
	}
	entries, rerr := os.ReadDir(string(path))
	var names []string
	if rerr == nil {
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), ".") || e.IsDir() {
				continue
			}
			names = append(names, e.Name())
		}
	}
	if _, err := m.Inject([]byte(strings.Join(names, "\n")), bufAddr); err != nil {
		return err
	}
	return m.Push(bufAddr)
}

type pipeHandle struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
}

func (p *pipeHandle) Read(buf []byte) (int, error) {
	if p.stdout == nil {
		return 0, io.EOF
	}
	return p.stdout.Read(buf)
}

func (p *pipeHandle) Write(buf []byte) (int, error) {
	if p.stdin == nil {
		return 0, io.ErrClosedPipe
	}
	return p.stdin.Write(buf)
}

func (p *pipeHandle) Close() error {
	if p.stdin != nil {
		p.stdin.Close()
	}
	if p.stdout != nil {
		p.stdout.Close()
	}
	return p.cmd.Wait()
}

func (s *Shell) openPipe(m *vm.Machine) error {
	mode, err := m.Pop()
	if err != nil {
		return err
	}
	nameAddr, err := m.Pop()
	if err != nil {
		return err
	}
	name, err := m.Extract(nameAddr)
	if err != nil {
		return err
	}

	args := strings.Fields(string(name))
	var slot int32
	if len(args) > 0 {
		c := exec.Command(args[0], args[1:]...)
		p := &pipeHandle{cmd: c}

		var openErr error
		switch mode {
		case 0:
			p.stdout, openErr = c.StdoutPipe()
		case 1:
			p.stdin, openErr = c.StdinPipe()
		case 3:
			if p.stdin, openErr = c.StdinPipe(); openErr == nil {
				p.stdout, openErr = c.StdoutPipe()
			}
		default:
			openErr = fmt.Errorf("invalid popen mode %v", mode)
		}

		if openErr == nil {
			openErr = c.Start()
		}
		if openErr == nil {
			slot = s.files.alloc(p)
		}
	}
	return m.Push(slot)
}

func (s *Shell) closePipe(m *vm.Machine) error {
	slot, err := m.Pop()
	if err != nil {
		return err
	}
	if h := s.files.at(slot); h != nil {
		h.Close()
		s.files.release(slot)
	}
	return nil
}

func (s *Shell) chdir(m *vm.Machine) error {
	addr, err := m.Pop()
	if err != nil {
		return err
	}
	path, err := m.Extract(addr)
	if err != nil {
		return err
	}
	return os.Chdir(string(path))
}

func (s *Shell) getenv(m *vm.Machine) error {
	bufAddr, err := m.Pop()
	if err != nil {
		return err
	}
	nameAddr, err := m.Pop()
	if err != nil {
		return err
	}
	name, err := m.Extract(nameAddr)
	if err != nil {
		return err
	}
	if _, err := m.Inject([]byte(os.Getenv(string(name))), bufAddr); err != nil {
		return err
	}
	return m.Push(bufAddr)
}

func (s *Shell) putenv(m *vm.Machine) error {
	addr, err := m.Pop()
	if err != nil {
		return err
	}
	kv, err := m.Extract(addr)
	if err != nil {
		return err
	}
	parts := strings.SplitN(string(kv), "=", 2)
	if len(parts) != 2 {
		return nil
	}
	return os.Setenv(parts[0], parts[1])
}
