package plugin

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/snmp"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/types"
)

// Record is the typed content of one decoded signal.
type Record interface {
	Trap() (snmp.Trap, error)
}

// Event decodes the body of one signal member.
type Event struct {
	Decode func(args []any) (Record, error)
}

// Emitter transmits a finished trap.
type Emitter interface {
	Emit(trap snmp.Trap)
}

// Plugin relays the signals of one D-Bus interface as traps.
type Plugin struct {
	name    string
	iface   string
	events  map[string]Event
	emitter Emitter
	logger  *zap.Logger
}

// New creates a Plugin for iface. events maps member names to decoders.
func New(name, iface string, events map[string]Event, emitter Emitter, logger *zap.Logger) *Plugin {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Plugin{
		name:    name,
		iface:   iface,
		events:  events,
		emitter: emitter,
		logger:  logger.Named(name),
	}
}

func (p *Plugin) Name() string {
	return p.name
}

// Interface returns the D-Bus interface the plugin listens on.
func (p *Plugin) Interface() string {
	return p.iface
}

func (p *Plugin) Activate(session types.BusSession) error {
	if err := session.AddFilter(p.iface, p); err != nil {
		return fmt.Errorf("add filter for %s: %w", p.iface, err)
	}
	return nil
}

func (p *Plugin) Deactivate(session types.BusSession) error {
	if err := session.RemoveFilter(p.iface, p); err != nil {
		return fmt.Errorf("remove filter for %s: %w", p.iface, err)
	}
	return nil
}

// Filter relays msg if it is one of the plugin's signals.
func (p *Plugin) Filter(msg *types.Message) types.Result {
	if msg.Interface != p.iface {
		return types.NotHandled
	}
	event, ok := p.events[msg.Member]
	if !ok {
		return types.NotHandled
	}

	record, err := event.Decode(msg.Args)
	if err != nil {
		signalsTotal.WithLabelValues(p.name, msg.Member, resultDecodeError).Inc()
		p.logger.Warn("Failed to decode signal arguments",
			zap.String("signal", msg.String()),
			zap.String("sender", msg.Sender),
			zap.Error(err),
		)
		return types.Handled
	}

	trap, err := record.Trap()
	if err != nil {
		signalsTotal.WithLabelValues(p.name, msg.Member, resultEncodeError).Inc()
		p.logger.Error("Failed to encode trap",
			zap.String("signal", msg.String()),
			zap.Error(err),
		)
		return types.Handled
	}

	signalsTotal.WithLabelValues(p.name, msg.Member, resultRelayed).Inc()
	p.emitter.Emit(trap)
	return types.Handled
}
