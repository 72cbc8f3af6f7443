// Package bus connects to D-Bus with godbus and exposes the connection as a
// types.BusSession.
//
// # Contract
//
//	Dial(ctx, cfg, logger) (*Conn, error)
//	  - Connects to the system bus, or cfg.Address when set.
//	  - Requests cfg.Name without queueing; anything but primary ownership
//	    fails with ErrNotPrimaryOwner.
//
//	AddFilter / RemoveFilter
//	  - Install or remove a signal match rule for the interface on the bus
//	    daemon, then update the local filter chain.
//
//	Messages() / Disconnected()
//	  - Messages delivers every signal received, in order.
//	  - Disconnected is closed once the connection is lost or closed.
//
//	Dispatch(msg)
//	  - NameAcquired and NameLost for our own connection are logged and
//	    handled locally. Everything else runs through the filter chain.
//
// Conn is driven from a single goroutine apart from the internal signal pump.
package bus
