// Package corosync relays corosync membership signals as COROSYNC-MIB traps.
//
// # Signals
//
// Interface: com.redhat.cluster.corosync (configurable)
//
//	NodeStateChange(s nodename, u nodeid, s addr, s state)
//	  → corosyncNoticesNodeStatus: NodeName, NodeID, NodeAddress, NodeStatus
//
//	QuorumStateChange(s nodename, u nodeid, s state)
//	  → corosyncNoticesQuorumStatus: NodeName, NodeID, QuorumStatus
//
//	ConnectionStateChange(s nodename, u nodeid, s name, s state)
//	  → corosyncNoticesAppStatus: NodeName, NodeID, AppName, AppStatus
//
// The binding order of each trap is fixed by COROSYNC-MIB and must not change.
package corosync
