package snmp

import (
	"net"
	"testing"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestToPDUs(t *testing.T) {
	trap, err := testSchema.Encode("node-a", uint32(3))
	require.NoError(t, err)

	pdus, err := toPDUs(trap)
	require.NoError(t, err)
	require.Len(t, pdus, 3)

	assert.Equal(t, gosnmp.SnmpPDU{Name: string(SnmpTrapOID), Type: gosnmp.ObjectIdentifier, Value: ".1.3.6.1.4.1.99999.0.1"}, pdus[0])
	assert.Equal(t, gosnmp.SnmpPDU{Name: ".1.3.6.1.4.1.99999.1.1.0", Type: gosnmp.OctetString, Value: []byte("node-a")}, pdus[1])
	assert.Equal(t, gosnmp.SnmpPDU{Name: ".1.3.6.1.4.1.99999.1.2.0", Type: gosnmp.Integer, Value: 3}, pdus[2])
}

func TestToPDUs_BadValue(t *testing.T) {
	_, err := toPDUs(Trap{Bindings: []VarBind{{OID: ".1.2", Type: Integer, Value: "three"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INTEGER value is string")

	_, err = toPDUs(Trap{Bindings: []VarBind{{OID: ".1.2", Type: Type(42), Value: 1}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type")
}

func TestNewSession_RequiresTarget(t *testing.T) {
	_, err := NewSession(SessionConfig{}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target is required")
}

func TestSession_SendOverUDP(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	cfg := DefaultSessionConfig()
	cfg.Port = uint16(pc.LocalAddr().(*net.UDPAddr).Port)
	s, err := NewSession(cfg, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	trap, err := testSchema.Encode("node-a", uint32(3))
	require.NoError(t, err)
	require.NoError(t, s.Send(trap))

	buf := make([]byte, 4096)
	require.NoError(t, pc.SetReadDeadline(time.Now().Add(5*time.Second)))
	n, _, err := pc.ReadFrom(buf)
	require.NoError(t, err)

	packet, err := gosnmp.Default.SnmpDecodePacket(buf[:n])
	require.NoError(t, err)
	assert.Equal(t, gosnmp.SNMPv2Trap, packet.PDUType)
	assert.Equal(t, "public", packet.Community)

	// sysUpTime.0 first, then the trap's own bindings in order.
	require.Len(t, packet.Variables, 4)
	assert.Equal(t, ".1.3.6.1.2.1.1.3.0", packet.Variables[0].Name)
	assert.Equal(t, string(SnmpTrapOID), packet.Variables[1].Name)
	assert.Equal(t, ".1.3.6.1.4.1.99999.0.1", packet.Variables[1].Value)
	assert.Equal(t, ".1.3.6.1.4.1.99999.1.1.0", packet.Variables[2].Name)
	assert.Equal(t, []byte("node-a"), packet.Variables[2].Value)
	assert.Equal(t, ".1.3.6.1.4.1.99999.1.2.0", packet.Variables[3].Name)
	assert.Equal(t, 3, packet.Variables[3].Value)
}

func TestSession_ProcessPendingReconnects(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	cfg := DefaultSessionConfig()
	cfg.Port = uint16(pc.LocalAddr().(*net.UDPAddr).Port)
	s, err := NewSession(cfg, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	// Nothing to do while healthy.
	conn := s.client.Conn
	s.ProcessPending()
	assert.Same(t, conn, s.client.Conn)

	s.stale = true
	s.ProcessPending()
	assert.False(t, s.stale)
	assert.NotSame(t, conn, s.client.Conn)
}
