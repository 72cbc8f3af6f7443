package snmp

import (
	"strconv"
	"strings"
)

// OID is a numeric object identifier in dotted form with a leading dot,
// e.g. ".1.3.6.1.6.3.1.1.4.1.0".
type OID string

// SnmpTrapOID is SNMPv2-MIB::snmpTrapOID.0, the first binding of every trap.
const SnmpTrapOID OID = ".1.3.6.1.6.3.1.1.4.1.0"

// Append returns o extended with the given sub-identifiers.
func (o OID) Append(sub ...uint32) OID {
	var b strings.Builder
	b.WriteString(string(o))
	for _, s := range sub {
		b.WriteByte('.')
		b.WriteString(strconv.FormatUint(uint64(s), 10))
	}
	return OID(b.String())
}

// Valid reports whether o is a non-empty dotted list of unsigned integers.
func (o OID) Valid() bool {
	s := string(o)
	if !strings.HasPrefix(s, ".") || len(s) < 2 {
		return false
	}
	for _, part := range strings.Split(s[1:], ".") {
		if _, err := strconv.ParseUint(part, 10, 32); err != nil {
			return false
		}
	}
	return true
}

func (o OID) String() string {
	return string(o)
}
