package fence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/testutil"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/types"
)

func TestNew(t *testing.T) {
	h := New("", &testutil.TrapRecorder{}, nil)
	assert.Equal(t, "fence", h.Name())
	assert.Equal(t, DefaultInterface, h.Interface())
}

func TestFenceNode(t *testing.T) {
	rec := &testutil.TrapRecorder{}
	bus := testutil.NewFakeBus()
	require.NoError(t, New("", rec, zap.NewNop()).Activate(bus))

	res := bus.Deliver(&types.Message{
		Interface: DefaultInterface,
		Member:    "FenceNode",
		Args:      []any{"node-b", int32(7), int32(0)},
	})

	assert.Equal(t, types.Handled, res)
	require.Len(t, rec.Traps, 1)
	assert.Equal(t, "fenceNotifyFenceNode", rec.Traps[0].Name)
	testutil.RequireBindings(t, rec.Traps[0],
		testutil.TrapID(".1.3.6.1.4.1.2312.10.0.1"),
		testutil.Str(".1.3.6.1.4.1.2312.10.1.1.0", "node-b"),
		testutil.Int(".1.3.6.1.4.1.2312.10.1.2.0", 7),
		testutil.Int(".1.3.6.1.4.1.2312.10.1.3.0", 0),
	)
}

func TestFenceNode_SameRecordTwice(t *testing.T) {
	rec := &testutil.TrapRecorder{}
	bus := testutil.NewFakeBus()
	require.NoError(t, New("", rec, zap.NewNop()).Activate(bus))

	msg := &types.Message{Interface: DefaultInterface, Member: "FenceNode", Args: []any{"node-b", int32(7), int32(1)}}
	bus.Deliver(msg)
	bus.Deliver(msg)

	require.Len(t, rec.Traps, 2)
	assert.Equal(t, rec.Traps[0], rec.Traps[1])
}

func TestFenceNode_Malformed(t *testing.T) {
	logger, logs := testutil.ObservedLogger(zapcore.WarnLevel)
	rec := &testutil.TrapRecorder{}
	bus := testutil.NewFakeBus()
	require.NoError(t, New("", rec, logger).Activate(bus))

	// fenced sends signed ids; an unsigned one is a type mismatch.
	res := bus.Deliver(&types.Message{
		Interface: DefaultInterface,
		Member:    "FenceNode",
		Args:      []any{"node-b", uint32(7), int32(0)},
	})

	assert.Equal(t, types.Handled, res)
	assert.Empty(t, rec.Traps)
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].ContextMap()["error"], `"int32"`)
}
