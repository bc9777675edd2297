package device

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngavm/nga/internal/flushio"
	"github.com/ngavm/nga/internal/vm"
)

func TestConsoleWritesAndFlushes(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(flushio.NewWriteFlusher(&buf))
	version, id := c.Query()
	assert.Equal(t, int32(0), version)
	assert.Equal(t, int32(0), id)

	m := vm.New()
	require.NoError(t, m.Push('A'))
	require.NoError(t, c.Invoke(m))
	assert.Equal(t, "A", buf.String())
}

func TestKeyboardEOFPushesNegativeOne(t *testing.T) {
	k := NewKeyboard(strings.NewReader(""))
	_, id := k.Query()
	assert.Equal(t, int32(1), id)

	m := vm.New()
	require.NoError(t, k.Invoke(m))
	v, err := m.Pop()
	require.NoError(t, err)
	assert.Equal(t, int32(-1), v)
}

func TestKeyboardNormalizesDelToBackspace(t *testing.T) {
	k := NewKeyboard(strings.NewReader(string([]byte{127})))
	m := vm.New()
	require.NoError(t, k.Invoke(m))
	v, err := m.Pop()
	require.NoError(t, err)
	assert.Equal(t, int32(8), v)
}

func TestFilesystemOpenWriteReadRoundTrip(t *testing.T) {
	fs := NewFilesystem()
	_, id := fs.Query()
	assert.Equal(t, int32(4), id)

	m := vm.New()
	path := filepath.Join(t.TempDir(), "roundtrip.txt")
	nameAddr, err := m.Inject([]byte(path), 500)
	require.NoError(t, err)

	// open(mode=1 write, name) -> slot
	require.NoError(t, m.Push(nameAddr))
	require.NoError(t, m.Push(1))
	require.NoError(t, m.Push(0))
	require.NoError(t, fs.Invoke(m))
	slot, err := m.Pop()
	require.NoError(t, err)
	require.NotZero(t, slot)

	// write(slot, 'h')
	require.NoError(t, m.Push('h'))
	require.NoError(t, m.Push(slot))
	require.NoError(t, m.Push(3))
	require.NoError(t, fs.Invoke(m))

	// close(slot)
	require.NoError(t, m.Push(slot))
	require.NoError(t, m.Push(1))
	require.NoError(t, fs.Invoke(m))

	// re-open for read
	require.NoError(t, m.Push(nameAddr))
	require.NoError(t, m.Push(0))
	require.NoError(t, m.Push(0))
	require.NoError(t, fs.Invoke(m))
	readSlot, err := m.Pop()
	require.NoError(t, err)
	require.NotZero(t, readSlot)

	require.NoError(t, m.Push(readSlot))
	require.NoError(t, m.Push(2))
	require.NoError(t, fs.Invoke(m))
	got, err := m.Pop()
	require.NoError(t, err)
	assert.Equal(t, int32('h'), got)
}

func TestFilesystemInvalidSelector(t *testing.T) {
	fs := NewFilesystem()
	m := vm.New()
	require.NoError(t, m.Push(99))
	err := fs.Invoke(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sub-selector")
}

func TestShellSharesFilesystemSlotTable(t *testing.T) {
	fs := NewFilesystem()
	shell := NewShell(fs.Files())
	_, id := shell.Query()
	assert.Equal(t, int32(8), id)
	assert.Same(t, fs.Files(), shell.files)
}

func TestScriptingArgs(t *testing.T) {
	included := ""
	s := NewScripting([]string{"nga", "script.nga", "a", "b"}, func(path string) error {
		included = path
		return nil
	})
	_, id := s.Query()
	assert.Equal(t, int32(9), id)

	m := vm.New()
	// selector 0: argc
	require.NoError(t, m.Push(0))
	require.NoError(t, s.Invoke(m))
	argc, err := m.Pop()
	require.NoError(t, err)
	assert.Equal(t, int32(2), argc)

	// selector 2: include
	nameAddr, err := m.Inject([]byte("boot.nga"), 600)
	require.NoError(t, err)
	require.NoError(t, m.Push(nameAddr))
	require.NoError(t, m.Push(2))
	require.NoError(t, s.Invoke(m))
	assert.Equal(t, "boot.nga", included)
}

func TestRandomPushesWithinCellRange(t *testing.T) {
	r := NewRandom()
	_, id := r.Query()
	assert.Equal(t, int32(10), id)

	m := vm.New()
	require.NoError(t, r.Invoke(m))
	v, err := m.Pop()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v, int32(0))
}
