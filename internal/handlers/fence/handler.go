package fence

import (
	"go.uber.org/zap"

	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/plugin"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/snmp"
)

// DefaultInterface is the D-Bus interface fenced publishes on.
const DefaultInterface = "com.redhat.cluster.fence"

// MIB is the REDHAT-FENCE-MIB root, enterprises.2312.10.
const MIB snmp.OID = ".1.3.6.1.4.1.2312.10"

// FenceNodeSchema is fenceNotifyFenceNode.
var FenceNodeSchema = snmp.Schema{
	Name:         "fenceNotifyFenceNode",
	Notification: MIB.Append(0, 1),
	Objects: []snmp.Object{
		{Name: "fenceNodeName", OID: MIB.Append(1, 1, 0), Type: snmp.OctetString},
		{Name: "fenceNodeID", OID: MIB.Append(1, 2, 0), Type: snmp.Integer},
		{Name: "fenceResult", OID: MIB.Append(1, 3, 0), Type: snmp.Integer},
	},
}

// FenceNode is a decoded FenceNode signal. Result 0 means the node was fenced.
type FenceNode struct {
	NodeName string
	NodeID   int32
	Result   int32
}

func (r FenceNode) Trap() (snmp.Trap, error) {
	return FenceNodeSchema.Encode(r.NodeName, r.NodeID, r.Result)
}

func decodeFenceNode(args []any) (plugin.Record, error) {
	var r FenceNode
	if err := plugin.Decode(args, "sii", &r.NodeName, &r.NodeID, &r.Result); err != nil {
		return nil, err
	}
	return r, nil
}

// New creates the fence handler. An empty iface selects DefaultInterface.
func New(iface string, emitter plugin.Emitter, logger *zap.Logger) *plugin.Plugin {
	if iface == "" {
		iface = DefaultInterface
	}
	return plugin.New("fence", iface, map[string]plugin.Event{
		"FenceNode": {Decode: decodeFenceNode},
	}, emitter, logger)
}
