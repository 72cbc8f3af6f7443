package snmp

import (
	"time"

	"go.uber.org/zap"
)

// Emitter hands finished traps to a TrapSession. It keeps no state between
// calls.
type Emitter struct {
	session TrapSession
	logger  *zap.Logger
}

// NewEmitter creates an Emitter that transmits through session.
func NewEmitter(session TrapSession, logger *zap.Logger) *Emitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Emitter{
		session: session,
		logger:  logger.Named("emitter"),
	}
}

// Emit transmits trap once. A transmission failure is logged and the trap is
// dropped.
func (e *Emitter) Emit(trap Trap) {
	start := time.Now()
	err := e.session.Send(trap)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		trapSendTotal.WithLabelValues(trap.Name, "error").Inc()
		trapSendDuration.WithLabelValues("error").Observe(elapsed)
		e.logger.Warn("Failed to send trap",
			zap.String("trap", trap.Name),
			zap.Error(err),
		)
		return
	}

	trapSendTotal.WithLabelValues(trap.Name, "success").Inc()
	trapSendDuration.WithLabelValues("success").Observe(elapsed)
	e.logger.Debug("Sent trap",
		zap.String("trap", trap.Name),
		zap.Int("bindings", len(trap.Bindings)),
	)
}
