// Package fence relays fenced results as REDHAT-FENCE-MIB traps.
//
// Interface: com.redhat.cluster.fence (configurable)
//
//	FenceNode(s nodename, i nodeid, i result)
//	  → fenceNotifyFenceNode: fenceNodeName, fenceNodeID, fenceResult
package fence
