package registry

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/types"
)

type entry struct {
	handler types.Handler
	active  bool
}

// Registry holds handlers in registration order and drives their lifecycle.
//
// It is not safe for concurrent use. Registration happens before the daemon
// loop starts; ActivateAll, DeactivateAll and Detach run on the loop goroutine.
type Registry struct {
	logger  *zap.Logger
	entries []*entry
}

// NewRegistry creates an empty handler registry.
// Call Register() for each handler, then ActivateAll() once a bus session exists.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{logger: logger.Named("registry")}
}

// Register appends a handler. It must not assume a live bus session.
// Only the same handler value is rejected; names are labels and may repeat.
func (r *Registry) Register(h types.Handler) error {
	for _, e := range r.entries {
		if e.handler == h {
			return fmt.Errorf("handler %q already registered", h.Name())
		}
	}
	r.entries = append(r.entries, &entry{handler: h})
	return nil
}

// Remove drops the first handler registered under name. Returns an error if
// no handler has that name.
func (r *Registry) Remove(name string) error {
	for i, e := range r.entries {
		if e.handler.Name() == name {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			r.updateGauge()
			return nil
		}
	}
	return fmt.Errorf("handler %q not registered", name)
}

// All returns the registered handlers in registration order.
func (r *Registry) All() []types.Handler {
	result := make([]types.Handler, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, e.handler)
	}
	return result
}

// Names returns the registered handler names in registration order.
func (r *Registry) Names() []string {
	result := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, e.handler.Name())
	}
	return result
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Active reports whether the first handler registered under name is
// currently activated.
func (r *Registry) Active(name string) bool {
	for _, e := range r.entries {
		if e.handler.Name() == name {
			return e.active
		}
	}
	return false
}

// ActivateAll activates every inactive handler against session, in
// registration order. A handler whose activation fails is logged and removed
// for the rest of the process lifetime; the others are still activated.
func (r *Registry) ActivateAll(session types.BusSession) {
	kept := r.entries[:0]
	for _, e := range r.entries {
		name := e.handler.Name()
		if e.active {
			kept = append(kept, e)
			continue
		}
		if err := e.handler.Activate(session); err != nil {
			r.logger.Warn("Failed to activate handler, removing it",
				zap.String("handler", name),
				zap.Error(err),
			)
			handlerActivations.WithLabelValues(name, "error").Inc()
			continue
		}
		e.active = true
		handlerActivations.WithLabelValues(name, "success").Inc()
		r.logger.Info("Activated handler", zap.String("handler", name))
		kept = append(kept, e)
	}
	r.truncate(kept)
	r.updateGauge()
}

// DeactivateAll deactivates every active handler, in registration order.
// A handler whose deactivation fails is logged and removed. Successfully
// deactivated handlers stay registered and can be activated again.
func (r *Registry) DeactivateAll(session types.BusSession) {
	kept := r.entries[:0]
	for _, e := range r.entries {
		name := e.handler.Name()
		if !e.active {
			kept = append(kept, e)
			continue
		}
		if err := e.handler.Deactivate(session); err != nil {
			r.logger.Warn("Failed to deactivate handler, removing it",
				zap.String("handler", name),
				zap.Error(err),
			)
			continue
		}
		e.active = false
		r.logger.Info("Deactivated handler", zap.String("handler", name))
		kept = append(kept, e)
	}
	r.truncate(kept)
	r.updateGauge()
}

// Detach marks every handler inactive without touching a session. Use it
// when the bus connection is gone and its filters went with it.
func (r *Registry) Detach() {
	for _, e := range r.entries {
		e.active = false
	}
	r.updateGauge()
}

// truncate replaces entries with kept, clearing the dropped tail so removed
// handlers can be collected.
func (r *Registry) truncate(kept []*entry) {
	for i := len(kept); i < len(r.entries); i++ {
		r.entries[i] = nil
	}
	r.entries = kept
}

func (r *Registry) updateGauge() {
	n := 0
	for _, e := range r.entries {
		if e.active {
			n++
		}
	}
	handlersActive.Set(float64(n))
}
