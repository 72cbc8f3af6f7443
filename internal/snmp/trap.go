package snmp

import "fmt"

// Type is the ASN.1 type tag of a variable binding.
type Type int

const (
	ObjectIdentifier Type = iota + 1
	Integer
	OctetString
)

func (t Type) String() string {
	switch t {
	case ObjectIdentifier:
		return "OBJECT IDENTIFIER"
	case Integer:
		return "INTEGER"
	case OctetString:
		return "OCTET STRING"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// VarBind is one (OID, type, value) triple of a trap.
//
// Value holds an OID for ObjectIdentifier, an int32 for Integer and a []byte
// for OctetString.
type VarBind struct {
	OID   OID
	Type  Type
	Value any
}

// Trap is an ordered list of variable bindings sent as one notification.
type Trap struct {
	// Name is the MIB name of the notification, used for logs and metrics.
	Name     string
	Bindings []VarBind
}

// Notification returns the value of the snmpTrapOID.0 binding, or "" if the
// trap does not start with one.
func (t Trap) Notification() OID {
	if len(t.Bindings) == 0 || t.Bindings[0].OID != SnmpTrapOID {
		return ""
	}
	oid, _ := t.Bindings[0].Value.(OID)
	return oid
}

// TrapSession transmits traps to the management station.
type TrapSession interface {
	// Send transmits the trap once.
	Send(trap Trap) error

	// ProcessPending performs periodic protocol housekeeping. It is called
	// on a fixed interval from the daemon loop and must not block for long.
	ProcessPending()

	// Close releases the session's transport.
	Close() error
}
