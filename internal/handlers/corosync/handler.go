package corosync

import (
	"go.uber.org/zap"

	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/plugin"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/snmp"
)

// DefaultInterface is the D-Bus interface corosync publishes on.
const DefaultInterface = "com.redhat.cluster.corosync"

// MIB is the COROSYNC-MIB root, enterprises.35488.
const MIB snmp.OID = ".1.3.6.1.4.1.35488"

var (
	nodeName = snmp.Object{Name: "corosyncObjectsNodeName", OID: MIB.Append(1, 1, 0), Type: snmp.OctetString}
	nodeID   = snmp.Object{Name: "corosyncObjectsNodeID", OID: MIB.Append(1, 2, 0), Type: snmp.Integer}
)

// NodeStatusSchema is corosyncNoticesNodeStatus.
var NodeStatusSchema = snmp.Schema{
	Name:         "corosyncNoticesNodeStatus",
	Notification: MIB.Append(0, 1),
	Objects: []snmp.Object{
		nodeName,
		nodeID,
		{Name: "corosyncObjectsNodeAddress", OID: MIB.Append(1, 4, 0), Type: snmp.OctetString},
		{Name: "corosyncObjectsNodeStatus", OID: MIB.Append(1, 3, 0), Type: snmp.OctetString},
	},
}

// QuorumStatusSchema is corosyncNoticesQuorumStatus.
var QuorumStatusSchema = snmp.Schema{
	Name:         "corosyncNoticesQuorumStatus",
	Notification: MIB.Append(0, 2),
	Objects: []snmp.Object{
		nodeName,
		nodeID,
		{Name: "corosyncObjectsQuorumStatus", OID: MIB.Append(1, 21, 0), Type: snmp.OctetString},
	},
}

// AppStatusSchema is corosyncNoticesAppStatus.
var AppStatusSchema = snmp.Schema{
	Name:         "corosyncNoticesAppStatus",
	Notification: MIB.Append(0, 3),
	Objects: []snmp.Object{
		nodeName,
		nodeID,
		{Name: "corosyncObjectsAppName", OID: MIB.Append(1, 40, 0), Type: snmp.OctetString},
		{Name: "corosyncObjectsAppStatus", OID: MIB.Append(1, 41, 0), Type: snmp.OctetString},
	},
}

// NodeStateChange is a decoded NodeStateChange signal.
type NodeStateChange struct {
	NodeName string
	NodeID   uint32
	Address  string
	Status   string
}

func (r NodeStateChange) Trap() (snmp.Trap, error) {
	return NodeStatusSchema.Encode(r.NodeName, r.NodeID, r.Address, r.Status)
}

// QuorumStateChange is a decoded QuorumStateChange signal.
type QuorumStateChange struct {
	NodeName string
	NodeID   uint32
	Status   string
}

func (r QuorumStateChange) Trap() (snmp.Trap, error) {
	return QuorumStatusSchema.Encode(r.NodeName, r.NodeID, r.Status)
}

// ConnectionStateChange is a decoded ConnectionStateChange signal.
type ConnectionStateChange struct {
	NodeName string
	NodeID   uint32
	AppName  string
	Status   string
}

func (r ConnectionStateChange) Trap() (snmp.Trap, error) {
	return AppStatusSchema.Encode(r.NodeName, r.NodeID, r.AppName, r.Status)
}

func decodeNodeStateChange(args []any) (plugin.Record, error) {
	var r NodeStateChange
	if err := plugin.Decode(args, "suss", &r.NodeName, &r.NodeID, &r.Address, &r.Status); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeQuorumStateChange(args []any) (plugin.Record, error) {
	var r QuorumStateChange
	if err := plugin.Decode(args, "sus", &r.NodeName, &r.NodeID, &r.Status); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeConnectionStateChange(args []any) (plugin.Record, error) {
	var r ConnectionStateChange
	if err := plugin.Decode(args, "suss", &r.NodeName, &r.NodeID, &r.AppName, &r.Status); err != nil {
		return nil, err
	}
	return r, nil
}

// New creates the corosync handler. An empty iface selects DefaultInterface.
func New(iface string, emitter plugin.Emitter, logger *zap.Logger) *plugin.Plugin {
	if iface == "" {
		iface = DefaultInterface
	}
	return plugin.New("corosync", iface, map[string]plugin.Event{
		"NodeStateChange":       {Decode: decodeNodeStateChange},
		"QuorumStateChange":     {Decode: decodeQuorumStateChange},
		"ConnectionStateChange": {Decode: decodeConnectionStateChange},
	}, emitter, logger)
}
