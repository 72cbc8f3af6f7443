package snmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMIB = OID(".1.3.6.1.4.1.99999")

var testSchema = Schema{
	Name:         "testNotice",
	Notification: testMIB.Append(0, 1),
	Objects: []Object{
		{Name: "testName", OID: testMIB.Append(1, 1, 0), Type: OctetString},
		{Name: "testID", OID: testMIB.Append(1, 2, 0), Type: Integer},
	},
}

func TestOIDAppend(t *testing.T) {
	assert.Equal(t, OID(".1.3.6.1.4.1.99999.0.1"), testMIB.Append(0, 1))
	assert.Equal(t, testMIB, testMIB.Append())
}

func TestOIDValid(t *testing.T) {
	tests := []struct {
		oid  OID
		want bool
	}{
		{".1.3.6.1", true},
		{SnmpTrapOID, true},
		{"1.3.6.1", false},
		{".", false},
		{"", false},
		{".1..3", false},
		{".1.a.3", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.oid), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.oid.Valid())
		})
	}
}

func TestEncode_Order(t *testing.T) {
	trap, err := testSchema.Encode("node-a", uint32(3))
	require.NoError(t, err)

	assert.Equal(t, "testNotice", trap.Name)
	require.Len(t, trap.Bindings, 3)

	assert.Equal(t, VarBind{OID: SnmpTrapOID, Type: ObjectIdentifier, Value: OID(".1.3.6.1.4.1.99999.0.1")}, trap.Bindings[0])
	assert.Equal(t, VarBind{OID: ".1.3.6.1.4.1.99999.1.1.0", Type: OctetString, Value: []byte("node-a")}, trap.Bindings[1])
	assert.Equal(t, VarBind{OID: ".1.3.6.1.4.1.99999.1.2.0", Type: Integer, Value: int32(3)}, trap.Bindings[2])
	assert.Equal(t, testSchema.Notification, trap.Notification())
}

func TestEncode_Uint32Reinterpreted(t *testing.T) {
	trap, err := testSchema.Encode("n", uint32(0xFFFFFFFF))
	require.NoError(t, err)
	assert.Equal(t, int32(-1), trap.Bindings[2].Value)
}

func TestEncode_ExactStringLength(t *testing.T) {
	// Embedded NULs are kept; nothing is truncated at the first zero byte.
	trap, err := testSchema.Encode("ab\x00cd", int32(1))
	require.NoError(t, err)
	assert.Len(t, trap.Bindings[1].Value, 5)
}

func TestEncode_ByteSliceCopied(t *testing.T) {
	raw := []byte("node")
	trap, err := testSchema.Encode(raw, int32(1))
	require.NoError(t, err)

	raw[0] = 'X'
	assert.Equal(t, []byte("node"), trap.Bindings[1].Value)
}

func TestEncode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		errMsg string
	}{
		{name: "too few", values: []any{"a"}, errMsg: "expected 2 values, got 1"},
		{name: "too many", values: []any{"a", int32(1), "b"}, errMsg: "expected 2 values, got 3"},
		{name: "int for string", values: []any{int32(1), int32(1)}, errMsg: "testName"},
		{name: "string for int", values: []any{"a", "b"}, errMsg: "cannot bind string as INTEGER"},
		{name: "int overflow", values: []any{"a", 1 << 40}, errMsg: "overflows"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testSchema.Encode(tt.values...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestEncode_Idempotent(t *testing.T) {
	a, err := testSchema.Encode("node-a", uint32(3))
	require.NoError(t, err)
	b, err := testSchema.Encode("node-a", uint32(3))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNotification_Missing(t *testing.T) {
	assert.Equal(t, OID(""), Trap{}.Notification())
	assert.Equal(t, OID(""), Trap{Bindings: []VarBind{{OID: ".1.2", Type: Integer, Value: int32(1)}}}.Notification())
}
