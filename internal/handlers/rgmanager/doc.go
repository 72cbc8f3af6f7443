// Package rgmanager relays rgmanager service transitions as
// REDHAT-RGMANAGER-MIB traps.
//
// Interface: com.redhat.cluster.rgmanager (configurable)
//
//	ServiceStateChange(s name, s state, s flags, s current, s previous)
//	  → rgmanagerServiceStateChange: rgmanagerServiceName, rgmanagerServiceState,
//	    rgmanagerServiceFlags, rgmanagerServiceCurrentOwner,
//	    rgmanagerServicePreviousOwner
package rgmanager
