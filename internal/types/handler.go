package types

// Handler relays one category of bus signals as SNMP traps.
//
// Each handler owns a filter scoped to a single D-Bus interface. The lifecycle
// controller calls Activate once a bus session exists and Deactivate before the
// session is torn down.
//
// Implementations are driven from a single goroutine and need not be safe for
// concurrent use.
type Handler interface {
	// Name returns a stable identifier for this handler.
	// Used in log fields and metric labels.
	// Examples: "corosync", "fence", "rgmanager"
	Name() string

	// Activate installs the handler's filter on the session.
	//
	// Contract:
	//   - Must not assume any state from a previous session; Activate is
	//     called again after the bus reconnects.
	//   - Returns an error if the match rule or the filter cannot be added.
	Activate(session BusSession) error

	// Deactivate removes the handler's filter from the session.
	Deactivate(session BusSession) error
}

// Filter inspects an incoming message and reports whether it consumed it.
type Filter interface {
	Filter(msg *Message) Result
}

// BusSession is the part of a bus connection handlers are allowed to touch.
type BusSession interface {
	// AddFilter subscribes to signals on iface and appends f to the
	// session's filter chain.
	AddFilter(iface string, f Filter) error

	// RemoveFilter undoes AddFilter for the same iface and filter.
	RemoveFilter(iface string, f Filter) error
}
