package vm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packBundle(b0, b1, b2, b3 byte) int32 {
	return int32(b0) | int32(b1)<<8 | int32(b2)<<16 | int32(b3)<<24
}

// scenario A: lit 42, then halt. Expected stack [42].
func TestExecuteLit(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadImage([]int32{
		packBundle(byte(OpLit), 0, 0, 0),
		42,
		packBundle(byte(OpHalt), 0, 0, 0),
	}))
	require.NoError(t, m.Execute(context.Background(), 0))
	assert.Equal(t, []int32{42}, m.data.Values())
}

// scenario D: push 7, push 3, divmod -> NOS=quotient, TOS=remainder:
// 7/3 quotient 2, remainder 1.
func TestDivMod(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadImage([]int32{
		packBundle(byte(OpLit), byte(OpLit), byte(OpDivMod), byte(OpHalt)),
		7,
		3,
	}))
	require.NoError(t, m.Execute(context.Background(), 0))
	assert.Equal(t, []int32{2, 1}, m.data.Values())
}

// scenario E: fetch -3 with no image loaded returns IMAGE_SIZE.
func TestFetchSentinels(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadImage([]int32{
		packBundle(byte(OpLit), byte(OpFetch), byte(OpHalt), 0),
		-3,
	}))
	require.NoError(t, m.Execute(context.Background(), 0))
	assert.Equal(t, []int32{m.ImageSize()}, m.data.Values())
}

// fetch -1 reports the data stack depth as it stands once the query value
// itself has been popped, i.e. with an otherwise-empty stack, push -1;
// fetch must read back 0, not -1 (spec.md Section 8 property 4).
func TestFetchDepthSentinelOnEmptyStack(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadImage([]int32{
		packBundle(byte(OpLit), byte(OpFetch), byte(OpHalt), 0),
		-1,
	}))
	require.NoError(t, m.Execute(context.Background(), 0))
	assert.Equal(t, []int32{0}, m.data.Values())
}

func TestShiftSemantics(t *testing.T) {
	assert.Equal(t, int32(-1), shift(-2, 1), "arithmetic right shift sign-extends")
	assert.Equal(t, int32(2), shift(1, -1), "negative n shifts left")
	assert.Equal(t, int32(1), shift(2, 1), "logical right shift for non-negative x")
}

func TestBundleValidation(t *testing.T) {
	b := decodeBundle(packBundle(0, 30, 0, 0))
	err := b.validate(0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opcode")
}

func TestStringBridgeRoundTrip(t *testing.T) {
	m := New()
	addr, err := m.Inject([]byte("hello"), 100)
	require.NoError(t, err)
	assert.Equal(t, int32(100), addr)
	got, err := m.Extract(100)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestDictionaryLookup(t *testing.T) {
	m := New()
	// build one entry at 200: link=0, xt=500, class=0, name "x" inline at 203
	require.NoError(t, m.Stor(200, 0))
	require.NoError(t, m.Stor(201, 500))
	require.NoError(t, m.Stor(202, 0))
	nameAddr, err := m.Inject([]byte("x"), 203)
	require.NoError(t, err)
	require.Equal(t, int32(203), nameAddr)
	require.NoError(t, m.Stor(2, 200))

	xt, err := m.XTFor("x")
	require.NoError(t, err)
	assert.Equal(t, int32(500), xt)

	xt, err = m.XTFor("y")
	require.NoError(t, err)
	assert.Equal(t, int32(0), xt)
}

// call jumps into a word and resumes at the bundle after the call once
// the word returns; halt afterward proves control actually came back.
func TestCallReturnResumesAfterCall(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadImage([]int32{
		packBundle(byte(OpLit), byte(OpCall), 0, 0),
		10,
		packBundle(byte(OpLit), byte(OpHalt), 0, 0),
		100,
	}))
	require.NoError(t, m.Stor(10, packBundle(byte(OpLit), byte(OpReturn), 0, 0)))
	require.NoError(t, m.Stor(11, 99))
	require.NoError(t, m.Execute(context.Background(), 0))
	assert.Equal(t, []int32{99, 100}, m.data.Values())
}

// a return that drains the synthetic top-level call frame back to rp==0
// ends execution the same bundle it occurs in (spec.md Section 4.2).
func TestReturnToZeroTerminates(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadImage([]int32{
		packBundle(byte(OpReturn), 0, 0, 0),
	}))
	require.NoError(t, m.Execute(context.Background(), 0))
	assert.Equal(t, int32(0), m.AddressDepth())
}

func TestStackUnderflowOnDropHalts(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadImage([]int32{
		packBundle(byte(OpDrop), 0, 0, 0),
	}))
	require.NoError(t, m.Execute(context.Background(), 0))
}
