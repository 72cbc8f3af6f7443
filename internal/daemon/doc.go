// Package daemon runs the foghornd event loop.
//
// One goroutine owns the bus connection, the handler registry and the trap
// session. It waits on incoming signals, a one-second housekeeping tick, the
// bus disconnect notification, the reconnect timer and context cancellation,
// and runs each callback to completion before taking the next one.
//
// A lost bus connection detaches every handler and schedules a reconnect.
// Reconnect attempts never give up; the delay between them comes from a
// backoff.BackOff, constant by default.
package daemon
