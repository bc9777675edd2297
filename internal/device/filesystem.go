package device

import (
	"fmt"
	"io"
	"os"

	"github.com/ngavm/nga/internal/vm"
)

// Filesystem is standard device ID 4: action pops a sub-selector and
// dispatches to one of the 9 file operations in spec.md Section 6.2,
// backed by *os.File. Its open-file table is shared with Shell, since
// pipes opened through the shell device live in the same slot space
// (spec.md Section 5).
type Filesystem struct {
	files *openFiles
}

// NewFilesystem returns a Filesystem device with a fresh open-file table.
// Pass its Files() to NewShell to share the table, as spec.md Section 5
// requires.
func NewFilesystem() *Filesystem {
	return &Filesystem{files: &openFiles{}}
}

// Files returns the shared open-file table, for wiring into Shell.
func (fs *Filesystem) Files() *openFiles { return fs.files }

func (fs *Filesystem) Query() (version, id int32) { return 0, 4 }

func (fs *Filesystem) Invoke(m *vm.Machine) error {
	sel, err := m.Pop()
	if err != nil {
		return err
	}
	switch sel {
	case 0:
		return fs.open(m)
	case 1:
		return fs.close(m)
	case 2:
		return fs.read(m)
	case 3:
		return fs.write(m)
	case 4:
		return fs.tell(m)
	case 5:
		return fs.seek(m)
	case 6:
		return fs.size(m)
	case 7:
		return fs.delete(m)
	case 8:
		return fs.flush(m)
	default:
		return invalidSelectorError{"filesystem", sel}
	}
}

func (fs *Filesystem) open(m *vm.Machine) error {
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

	f, openErr := openMode(string(name), mode)
	var slot int32
	if openErr == nil {
		slot = fs.files.alloc(f)
		if slot == 0 {
			f.Close()
		}
	}
	return m.Push(slot)
}

func openMode(name string, mode int32) (*os.File, error) {
	switch mode {
	case 0:
		return os.OpenFile(name, os.O_RDONLY, 0)
	case 1:
		return os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	case 2:
		return os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	case 3:
		return os.OpenFile(name, os.O_RDWR, 0)
	default:
		return nil, os.ErrInvalid
	}
}

func (fs *Filesystem) close(m *vm.Machine) error {
	slot, err := m.Pop()
	if err != nil {
		return err
	}
	if h := fs.files.at(slot); h != nil {
		h.Close()
		fs.files.release(slot)
	}
	return nil
}

func (fs *Filesystem) read(m *vm.Machine) error {
	slot, err := m.Pop()
	if err != nil {
		return err
	}
	h := fs.files.at(slot)
	if h == nil {
		return m.Push(0)
	}
	var buf [1]byte
	n, rerr := h.Read(buf[:])
	if n == 0 || rerr == io.EOF {
		return m.Push(0)
	}
	if rerr != nil {
		return rerr
	}
	return m.Push(int32(buf[0]))
}

func (fs *Filesystem) write(m *vm.Machine) error {
	slot, err := m.Pop()
	if err != nil {
		return err
	}
	c, err := m.Pop()
	if err != nil {
		return err
	}
	if h := fs.files.at(slot); h != nil {
		_, _ = h.Write([]byte{byte(c)})
	}
	return nil
}

type seeker interface {
	Seek(offset int64, whence int) (int64, error)
}

func (fs *Filesystem) tell(m *vm.Machine) error {
	slot, err := m.Pop()
	if err != nil {
		return err
	}
	var pos int64
	if s, ok := fs.files.at(slot).(seeker); ok {
		pos, _ = s.Seek(0, io.SeekCurrent)
	}
	return m.Push(int32(pos))
}

func (fs *Filesystem) seek(m *vm.Machine) error {
	slot, err := m.Pop()
	if err != nil {
		return err
	}
	pos, err := m.Pop()
	if err != nil {
		return err
	}
	if s, ok := fs.files.at(slot).(seeker); ok {
		_, _ = s.Seek(int64(pos), io.SeekStart)
	}
	return nil
}

func (fs *Filesystem) size(m *vm.Machine) error {
	slot, err := m.Pop()
	if err != nil {
		return err
	}
	f, ok := fs.files.at(slot).(*os.File)
	if !ok {
		return m.Push(0)
	}
	info, serr := f.Stat()
	if serr != nil || info.IsDir() {
		return m.Push(0)
	}
	return m.Push(int32(info.Size()))
}

func (fs *Filesystem) delete(m *vm.Machine) error {
	nameAddr, err := m.Pop()
	if err != nil {
		return err
	}
	name, err := m.Extract(nameAddr)
	if err != nil {
		return err
	}
	os.Remove(string(name))
	return nil
}

func (fs *Filesystem) flush(m *vm.Machine) error {
	slot, err := m.Pop()
	if err != nil {
		return err
	}
	if f, ok := fs.files.at(slot).(*os.File); ok {
		f.Sync()
	}
	return nil
}

type invalidSelectorError struct {
	device   string
	selector int32
}

func (e invalidSelectorError) Error() string {
	return fmt.Sprintf("%v: invalid sub-selector %v", e.device, e.selector)
}
