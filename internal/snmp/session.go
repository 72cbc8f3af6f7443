package snmp

import (
	"errors"
	"fmt"
	"time"

	"github.com/gosnmp/gosnmp"
	"go.uber.org/zap"
)

// SessionConfig configures the trap destination.
type SessionConfig struct {
	// Target is the trap receiver host name or address.
	Target string
	// Port is the trap receiver UDP port.
	Port uint16
	// Community is the SNMPv2c community string.
	Community string
	// Timeout bounds a single transmission.
	Timeout time.Duration
	// Retries is passed to gosnmp. Traps are unacknowledged, so this only
	// matters for socket-level write errors.
	Retries int
	// Logger receives gosnmp's own protocol trace when non-nil.
	Logger *zap.Logger
}

// DefaultSessionConfig returns the defaults for a local trap receiver.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Target:    "127.0.0.1",
		Port:      162,
		Community: "public",
		Timeout:   2 * time.Second,
		Retries:   0,
	}
}

// Session sends SNMPv2c traps with gosnmp.
//
// Send and ProcessPending are called from the daemon loop goroutine only.
type Session struct {
	client *gosnmp.GoSNMP
	logger *zap.Logger
	stale  bool
}

// NewSession opens the UDP socket towards the configured receiver.
func NewSession(cfg SessionConfig, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Target == "" {
		return nil, errors.New("snmp: target is required")
	}
	defaults := DefaultSessionConfig()
	if cfg.Port == 0 {
		cfg.Port = defaults.Port
	}
	if cfg.Community == "" {
		cfg.Community = defaults.Community
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaults.Timeout
	}

	client := &gosnmp.GoSNMP{
		Target:    cfg.Target,
		Port:      cfg.Port,
		Transport: "udp",
		Community: cfg.Community,
		Version:   gosnmp.Version2c,
		Timeout:   cfg.Timeout,
		Retries:   cfg.Retries,
		MaxOids:   gosnmp.MaxOids,
	}
	if cfg.Logger != nil {
		client.Logger = gosnmp.NewLogger(zap.NewStdLog(cfg.Logger.Named("gosnmp")))
	}

	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("snmp: connect to %s:%d: %w", cfg.Target, cfg.Port, err)
	}

	s := &Session{
		client: client,
		logger: logger.Named("snmp"),
	}
	s.logger.Info("Trap session ready",
		zap.String("target", cfg.Target),
		zap.Uint16("port", cfg.Port),
	)
	return s, nil
}

// Send transmits trap as an SNMPv2-Trap PDU. gosnmp prepends sysUpTime.0.
func (s *Session) Send(trap Trap) error {
	pdus, err := toPDUs(trap)
	if err != nil {
		return err
	}
	if _, err := s.client.SendTrap(gosnmp.SnmpTrap{Variables: pdus}); err != nil {
		s.stale = true
		return fmt.Errorf("snmp: send %s: %w", trap.Name, err)
	}
	return nil
}

// ProcessPending re-opens the socket after a failed send. ICMP errors on a
// connected UDP socket otherwise keep failing every following write.
func (s *Session) ProcessPending() {
	if !s.stale {
		return
	}
	if s.client.Conn != nil {
		_ = s.client.Conn.Close()
	}
	if err := s.client.Connect(); err != nil {
		s.logger.Warn("Failed to reopen trap socket", zap.Error(err))
		return
	}
	s.stale = false
	s.logger.Debug("Reopened trap socket")
}

// Close releases the socket.
func (s *Session) Close() error {
	if s.client.Conn == nil {
		return nil
	}
	return s.client.Conn.Close()
}

// toPDUs converts bindings to gosnmp PDUs, keeping their order.
func toPDUs(trap Trap) ([]gosnmp.SnmpPDU, error) {
	pdus := make([]gosnmp.SnmpPDU, 0, len(trap.Bindings))
	for _, vb := range trap.Bindings {
		pdu := gosnmp.SnmpPDU{Name: string(vb.OID)}
		switch vb.Type {
		case ObjectIdentifier:
			oid, ok := vb.Value.(OID)
			if !ok {
				return nil, fmt.Errorf("snmp: %s: OBJECT IDENTIFIER value is %T", vb.OID, vb.Value)
			}
			pdu.Type = gosnmp.ObjectIdentifier
			pdu.Value = string(oid)
		case Integer:
			n, ok := vb.Value.(int32)
			if !ok {
				return nil, fmt.Errorf("snmp: %s: INTEGER value is %T", vb.OID, vb.Value)
			}
			pdu.Type = gosnmp.Integer
			pdu.Value = int(n)
		case OctetString:
			b, ok := vb.Value.([]byte)
			if !ok {
				return nil, fmt.Errorf("snmp: %s: OCTET STRING value is %T", vb.OID, vb.Value)
			}
			pdu.Type = gosnmp.OctetString
			pdu.Value = b
		default:
			return nil, fmt.Errorf("snmp: %s: unsupported type %s", vb.OID, vb.Type)
		}
		pdus = append(pdus, pdu)
	}
	return pdus, nil
}
