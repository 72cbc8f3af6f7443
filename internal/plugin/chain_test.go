package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/types"
)

type stubFilter struct {
	result types.Result
	calls  int
}

func (f *stubFilter) Filter(_ *types.Message) types.Result {
	f.calls++
	return f.result
}

func TestChain_FirstHandledWins(t *testing.T) {
	c := NewChain()
	first := &stubFilter{result: types.NotHandled}
	second := &stubFilter{result: types.Handled}
	third := &stubFilter{result: types.Handled}

	require.NoError(t, c.Add("a.b", first))
	require.NoError(t, c.Add("a.b", second))
	require.NoError(t, c.Add("a.b", third))

	res := c.Dispatch(&types.Message{Interface: "a.b", Member: "X"})
	assert.Equal(t, types.Handled, res)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 0, third.calls)
}

func TestChain_ScopedByInterface(t *testing.T) {
	c := NewChain()
	f := &stubFilter{result: types.Handled}
	require.NoError(t, c.Add("a.b", f))

	res := c.Dispatch(&types.Message{Interface: "c.d", Member: "X"})
	assert.Equal(t, types.NotHandled, res)
	assert.Equal(t, 0, f.calls)
}

func TestChain_AddRemove(t *testing.T) {
	c := NewChain()
	f := &stubFilter{}
	g := &stubFilter{}

	require.NoError(t, c.Add("a.b", f))
	require.NoError(t, c.Add("c.d", g))
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"a.b", "c.d"}, c.Interfaces())

	err := c.Add("a.b", f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already installed")

	require.NoError(t, c.Remove("a.b", f))
	assert.Equal(t, []string{"c.d"}, c.Interfaces())

	err = c.Remove("a.b", f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no filter installed")

	// Same filter under a different interface is a different entry.
	err = c.Remove("a.b", g)
	assert.Error(t, err)
}

func TestChain_Empty(t *testing.T) {
	c := NewChain()
	assert.Equal(t, types.NotHandled, c.Dispatch(&types.Message{Interface: "a.b"}))
	assert.Empty(t, c.Interfaces())
}
