package rgmanager

import (
	"go.uber.org/zap"

	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/plugin"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/snmp"
)

// DefaultInterface is the D-Bus interface rgmanager publishes on.
const DefaultInterface = "com.redhat.cluster.rgmanager"

// MIB is the REDHAT-RGMANAGER-MIB root, enterprises.2312.11.
const MIB snmp.OID = ".1.3.6.1.4.1.2312.11"

// ServiceStateChangeSchema is rgmanagerServiceStateChange.
var ServiceStateChangeSchema = snmp.Schema{
	Name:         "rgmanagerServiceStateChange",
	Notification: MIB.Append(0, 1),
	Objects: []snmp.Object{
		{Name: "rgmanagerServiceName", OID: MIB.Append(1, 1, 0), Type: snmp.OctetString},
		{Name: "rgmanagerServiceState", OID: MIB.Append(1, 2, 0), Type: snmp.OctetString},
		{Name: "rgmanagerServiceFlags", OID: MIB.Append(1, 3, 0), Type: snmp.OctetString},
		{Name: "rgmanagerServiceCurrentOwner", OID: MIB.Append(1, 4, 0), Type: snmp.OctetString},
		{Name: "rgmanagerServicePreviousOwner", OID: MIB.Append(1, 5, 0), Type: snmp.OctetString},
	},
}

// ServiceStateChange is a decoded ServiceStateChange signal.
type ServiceStateChange struct {
	Name          string
	State         string
	Flags         string
	CurrentOwner  string
	PreviousOwner string
}

func (r ServiceStateChange) Trap() (snmp.Trap, error) {
	return ServiceStateChangeSchema.Encode(r.Name, r.State, r.Flags, r.CurrentOwner, r.PreviousOwner)
}

func decodeServiceStateChange(args []any) (plugin.Record, error) {
	var r ServiceStateChange
	err := plugin.Decode(args, "sssss", &r.Name, &r.State, &r.Flags, &r.CurrentOwner, &r.PreviousOwner)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// New creates the rgmanager handler. An empty iface selects DefaultInterface.
func New(iface string, emitter plugin.Emitter, logger *zap.Logger) *plugin.Plugin {
	if iface == "" {
		iface = DefaultInterface
	}
	return plugin.New("rgmanager", iface, map[string]plugin.Event{
		"ServiceStateChange": {Decode: decodeServiceStateChange},
	}, emitter, logger)
}
