package snmp

import (
	"fmt"
	"math"
)

// Object is one scalar bound into a notification.
type Object struct {
	Name string
	OID  OID
	Type Type
}

// Schema describes the fixed binding layout of one notification type.
type Schema struct {
	// Name is the MIB name of the notification, e.g. "corosyncNoticesNodeStatus".
	Name         string
	Notification OID
	Objects      []Object
}

// Encode binds values to the schema's objects, in order, behind the
// snmpTrapOID.0 binding.
func (s Schema) Encode(values ...any) (Trap, error) {
	if len(values) != len(s.Objects) {
		return Trap{}, fmt.Errorf("%s: expected %d values, got %d", s.Name, len(s.Objects), len(values))
	}

	bindings := make([]VarBind, 0, len(s.Objects)+1)
	bindings = append(bindings, VarBind{
		OID:   SnmpTrapOID,
		Type:  ObjectIdentifier,
		Value: s.Notification,
	})

	for i, obj := range s.Objects {
		v, err := encodeValue(obj.Type, values[i])
		if err != nil {
			return Trap{}, fmt.Errorf("%s: %s: %w", s.Name, obj.Name, err)
		}
		bindings = append(bindings, VarBind{OID: obj.OID, Type: obj.Type, Value: v})
	}

	return Trap{Name: s.Name, Bindings: bindings}, nil
}

func encodeValue(t Type, v any) (any, error) {
	switch t {
	case Integer:
		switch n := v.(type) {
		case int32:
			return n, nil
		case uint32:
			// Same four bytes, read as the signed ASN.1 INTEGER.
			return int32(n), nil
		case int:
			if n < math.MinInt32 || n > math.MaxInt32 {
				return nil, fmt.Errorf("integer %d overflows 32 bits", n)
			}
			return int32(n), nil
		}
	case OctetString:
		switch s := v.(type) {
		case string:
			return []byte(s), nil
		case []byte:
			b := make([]byte, len(s))
			copy(b, s)
			return b, nil
		}
	case ObjectIdentifier:
		if oid, ok := v.(OID); ok && oid.Valid() {
			return oid, nil
		}
	}
	return nil, fmt.Errorf("cannot bind %T as %s", v, t)
}
