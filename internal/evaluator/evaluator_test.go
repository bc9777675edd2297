package evaluator

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngavm/nga/internal/vm"
)

func TestFenceFiltersTokensOutsideBlocks(t *testing.T) {
	src := NewSource(bufio.NewReader(strings.NewReader("prose ignored ~~~ one two ~~~ trailing")))
	var got []string
	for {
		tok, eof := src.Next()
		if eof {
			break
		}
		got = append(got, tok)
	}
	assert.Equal(t, []string{"one", "two"}, got)
}

func TestReadTokenAppliesBackspace(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("ab\bc "))
	tok, eof := readToken(r)
	require.False(t, eof)
	assert.Equal(t, "ac", tok)
}

// packBundle mirrors the vm package's own helper; duplicated here to avoid
// depending on vm's unexported test code from a different package.
func packBundle(b0, b1, b2, b3 byte) int32 {
	return int32(b0) | int32(b1)<<8 | int32(b2)<<16 | int32(b3)<<24
}

// buildInterpretImage wires a tiny dictionary with one word, "interpret",
// whose body just drops the TIB address it's handed and returns -- enough
// for New/Evaluate to exercise the real dictionary-lookup and
// inject-then-call path end to end.
func buildInterpretImage(t *testing.T) *vm.Machine {
	t.Helper()
	m := vm.New()

	const (
		entry    = 200
		nameAddr = entry + vm.DictOffsetName // names are stored inline
		xt       = 300
	)
	require.NoError(t, m.Stor(entry+0, 0))
	require.NoError(t, m.Stor(entry+1, xt))
	require.NoError(t, m.Stor(entry+2, 0))
	addr, err := m.Inject([]byte("interpret"), nameAddr)
	require.NoError(t, err)
	require.Equal(t, int32(nameAddr), addr)
	require.NoError(t, m.Stor(2, entry))

	require.NoError(t, m.Stor(xt, packBundle(byte(vm.OpDrop), byte(vm.OpReturn), 0, 0)))
	return m
}

func TestEvaluateEmptyTokenIsNoOp(t *testing.T) {
	m := buildInterpretImage(t)
	ev, err := New(m, 1024)
	require.NoError(t, err)
	require.NoError(t, ev.Evaluate(context.Background(), ""))
}

func TestEvaluateRunsInterpretOnToken(t *testing.T) {
	m := buildInterpretImage(t)
	ev, err := New(m, 1024)
	require.NoError(t, err)
	require.NoError(t, ev.Evaluate(context.Background(), "ok"))

	got, err := m.Extract(1024)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(got))
}

func TestIncludeMissingFileIsSilentlyIgnored(t *testing.T) {
	m := buildInterpretImage(t)
	ev, err := New(m, 1024)
	require.NoError(t, err)
	assert.NoError(t, ev.Include(context.Background(), filepath.Join(t.TempDir(), "missing.nga")))
}

func TestIncludeEvaluatesFencedTokens(t *testing.T) {
	m := buildInterpretImage(t)
	ev, err := New(m, 1024)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "boot.nga")
	require.NoError(t, os.WriteFile(path, []byte("not-code ~~~ hello ~~~"), 0644))
	require.NoError(t, ev.Include(context.Background(), path))

	got, err := m.Extract(1024)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestEvaluateLineIgnoresFences(t *testing.T) {
	m := buildInterpretImage(t)
	ev, err := New(m, 1024)
	require.NoError(t, err)
	require.NoError(t, ev.EvaluateLine(context.Background(), "typed directly"))

	got, err := m.Extract(1024)
	require.NoError(t, err)
	assert.Equal(t, "directly", string(got))
}
