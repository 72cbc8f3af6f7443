// Package registry holds the ordered set of relay handlers and runs their
// activation and deactivation against a bus session.
//
// # Contract
//
//	Register(h types.Handler) error
//	  - Appends h. Rejects the same handler twice and duplicate names.
//
//	ActivateAll(session types.BusSession)
//	  - Activates inactive handlers in registration order.
//	  - A failing handler is logged at warn level and removed; the rest continue.
//
//	DeactivateAll(session types.BusSession)
//	  - Deactivates active handlers in registration order.
//	  - A failing handler is logged at warn level and removed.
//	  - Handlers that deactivate cleanly remain registered, so
//	    ActivateAll followed by DeactivateAll leaves membership unchanged.
//
//	Detach()
//	  - Marks all handlers inactive after the bus session was lost.
//
// Every handler in the registry is either inactive or was activated
// successfully and not yet deactivated.
package registry
