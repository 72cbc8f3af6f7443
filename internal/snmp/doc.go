// Package snmp builds SNMPv2 trap variable bindings and hands them to a trap
// session for transmission.
//
// # Contract
//
// A Schema is a fixed, build-time table describing one notification: its
// notification OID and the ordered list of objects bound after it.
//
//	Schema.Encode(values ...any) (Trap, error)
//	  - Bindings[0] is always snmpTrapOID.0 = Schema.Notification (OBJECT IDENTIFIER).
//	  - Bindings[1:] follow Schema.Objects in order, one per value.
//	  - INTEGER objects take int32 or uint32; uint32 is reinterpreted as a
//	    32-bit signed value.
//	  - OCTET STRING objects take string or []byte; the exact byte length is
//	    used.
//	  - Encode is pure. Arity or type mismatches return an error.
//
// The Emitter transmits a finished Trap exactly once. Failures are logged and
// counted; the trap is then discarded. There is no queue and no retry.
//
// Session implements TrapSession with gosnmp (SNMPv2c). Its ProcessPending
// method is the periodic housekeeping hook driven by the daemon loop.
package snmp
