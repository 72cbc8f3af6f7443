// Package testutil provides shared test doubles for the foghorn packages.
// Import this in test files instead of re-declaring fake sessions.
package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/plugin"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/snmp"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/types"
)

// ErrFilter is returned by FakeBus when an interface is configured to fail.
var ErrFilter = errors.New("filter installation failed")

// FakeBus is an in-memory types.BusSession backed by a plugin.Chain.
type FakeBus struct {
	Chain *plugin.Chain
	// FailAdd and FailRemove make AddFilter/RemoveFilter fail for the
	// listed interfaces.
	FailAdd    map[string]bool
	FailRemove map[string]bool
	// Matches counts installed match rules per interface.
	Matches map[string]int
}

// NewFakeBus creates an empty FakeBus.
func NewFakeBus() *FakeBus {
	return &FakeBus{
		Chain:      plugin.NewChain(),
		FailAdd:    map[string]bool{},
		FailRemove: map[string]bool{},
		Matches:    map[string]int{},
	}
}

func (b *FakeBus) AddFilter(iface string, f types.Filter) error {
	if b.FailAdd[iface] {
		return ErrFilter
	}
	if err := b.Chain.Add(iface, f); err != nil {
		return err
	}
	b.Matches[iface]++
	return nil
}

func (b *FakeBus) RemoveFilter(iface string, f types.Filter) error {
	if b.FailRemove[iface] {
		return ErrFilter
	}
	if err := b.Chain.Remove(iface, f); err != nil {
		return err
	}
	b.Matches[iface]--
	if b.Matches[iface] == 0 {
		delete(b.Matches, iface)
	}
	return nil
}

// Deliver dispatches msg through the installed filters.
func (b *FakeBus) Deliver(msg *types.Message) types.Result {
	return b.Chain.Dispatch(msg)
}

// TrapRecorder records traps passed to Emit or Send.
type TrapRecorder struct {
	Traps   []snmp.Trap
	SendErr error
	Pending int
	Closed  bool
}

func (r *TrapRecorder) Emit(trap snmp.Trap) {
	r.Traps = append(r.Traps, trap)
}

func (r *TrapRecorder) Send(trap snmp.Trap) error {
	if r.SendErr != nil {
		return r.SendErr
	}
	r.Traps = append(r.Traps, trap)
	return nil
}

func (r *TrapRecorder) ProcessPending() {
	r.Pending++
}

func (r *TrapRecorder) Close() error {
	r.Closed = true
	return nil
}

// ObservedLogger returns a logger capturing entries at level and above.
func ObservedLogger(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

// RequireBindings asserts that trap carries exactly the given bindings, in order.
func RequireBindings(t *testing.T, trap snmp.Trap, want ...snmp.VarBind) {
	t.Helper()
	require.Equal(t, want, trap.Bindings, "bindings of %s", trap.Name)
}

// Str is a convenience OCTET STRING binding for expectations.
func Str(oid snmp.OID, s string) snmp.VarBind {
	return snmp.VarBind{OID: oid, Type: snmp.OctetString, Value: []byte(s)}
}

// Int is a convenience INTEGER binding for expectations.
func Int(oid snmp.OID, n int32) snmp.VarBind {
	return snmp.VarBind{OID: oid, Type: snmp.Integer, Value: n}
}

// TrapID is the snmpTrapOID.0 binding for notification.
func TrapID(notification snmp.OID) snmp.VarBind {
	return snmp.VarBind{OID: snmp.SnmpTrapOID, Type: snmp.ObjectIdentifier, Value: notification}
}
