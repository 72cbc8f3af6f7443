package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Success(t *testing.T) {
	var (
		name   string
		id     uint32
		result int32
	)
	err := Decode([]any{"node-a", uint32(3), int32(-1)}, "sui", &name, &id, &result)
	require.NoError(t, err)
	assert.Equal(t, "node-a", name)
	assert.Equal(t, uint32(3), id)
	assert.Equal(t, int32(-1), result)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []any
		errMsg string
	}{
		{
			name:   "too few",
			args:   []any{"node-a"},
			errMsg: "expected 2 arguments, message has 1",
		},
		{
			name:   "too many",
			args:   []any{"node-a", uint32(1), "extra"},
			errMsg: "expected 2 arguments, message has 3",
		},
		{
			name:   "no conversion from int32",
			args:   []any{"node-a", int32(1)},
			errMsg: `argument 1 is specified to be of type "uint32", but is actually of type "int32"`,
		},
		{
			name:   "string slot holds number",
			args:   []any{uint32(1), uint32(1)},
			errMsg: `argument 0 is specified to be of type "string"`,
		},
		{
			name:   "nil argument",
			args:   []any{nil, uint32(1)},
			errMsg: `actually of type "nil"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s string
			var u uint32
			err := Decode(tt.args, "su", &s, &u)
			require.Error(t, err)
			var argErr *ArgError
			assert.True(t, errors.As(err, &argErr))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDecode_MismatchedDestinationsPanics(t *testing.T) {
	var s string
	assert.Panics(t, func() {
		_ = Decode([]any{"a"}, "ss", &s)
	})
}
