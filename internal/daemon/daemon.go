package daemon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/registry"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/types"
)

// Bus is a live bus connection as seen by the loop.
type Bus interface {
	types.BusSession
	// Messages delivers received signals in arrival order.
	Messages() <-chan *types.Message
	// Disconnected is closed when the connection is lost.
	Disconnected() <-chan struct{}
	// Dispatch runs msg through the connection's filters.
	Dispatch(msg *types.Message) types.Result
	Close() error
}

// DialFunc opens a new bus connection.
type DialFunc func(ctx context.Context) (Bus, error)

// Housekeeper is polled on every tick. The trap session implements it.
type Housekeeper interface {
	ProcessPending()
}

// DefaultTick is the housekeeping interval.
const DefaultTick = time.Second

// Config wires the loop's collaborators.
type Config struct {
	Dial     DialFunc
	Registry *registry.Registry
	// Housekeeper may be nil.
	Housekeeper Housekeeper
	// Tick defaults to DefaultTick.
	Tick time.Duration
	// BackOff defaults to a constant DefaultReconnectDelay.
	BackOff backoff.BackOff
	// Ready, when set, is called once the first connection is up and the
	// handlers have been activated.
	Ready func()
	// Version is reported in the start line.
	Version string
	Logger  *zap.Logger
}

// Daemon is the event loop. Create with New, then call Run once.
type Daemon struct {
	dial     DialFunc
	registry *registry.Registry
	house    Housekeeper
	tick     time.Duration
	backoff  backoff.BackOff
	ready    func()
	version  string
	logger   *zap.Logger

	conn  Bus
	retry *time.Timer
}

// New creates a Daemon. Dial and Registry are required.
func New(cfg Config) (*Daemon, error) {
	if cfg.Dial == nil {
		return nil, errors.New("daemon: dial function is required")
	}
	if cfg.Registry == nil {
		return nil, errors.New("daemon: registry is required")
	}
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	if cfg.BackOff == nil {
		cfg.BackOff = NewBackOff(DefaultReconnectDelay, 0, false)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Daemon{
		dial:     cfg.Dial,
		registry: cfg.Registry,
		house:    cfg.Housekeeper,
		tick:     cfg.Tick,
		backoff:  cfg.BackOff,
		ready:    cfg.Ready,
		version:  cfg.Version,
		logger:   cfg.Logger.Named("daemon"),
	}, nil
}

// Run connects to the bus, activates the registered handlers and serves
// until ctx is cancelled. A failure of the first connection attempt is
// returned; later connection losses are retried forever. On cancellation
// the handlers are deactivated and the connection closed before Run
// returns nil.
func (d *Daemon) Run(ctx context.Context) error {
	conn, err := d.dial(ctx)
	if err != nil {
		busDialTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("connect to bus: %w", err)
	}
	busDialTotal.WithLabelValues("success").Inc()
	d.attach(conn)
	// Start and stop are logged at warn so they show at the default level.
	d.logger.Warn("foghornd started",
		zap.String("version", d.version),
		zap.Strings("handlers", d.registry.Names()),
	)
	if d.ready != nil {
		d.ready()
	}

	ticker := time.NewTicker(d.tick)
	defer ticker.Stop()

	for {
		var (
			messages     <-chan *types.Message
			disconnected <-chan struct{}
			reconnect    <-chan time.Time
		)
		if d.conn != nil {
			messages = d.conn.Messages()
			disconnected = d.conn.Disconnected()
		}
		if d.retry != nil {
			reconnect = d.retry.C
		}

		select {
		case <-ctx.Done():
			d.shutdown()
			return nil
		case msg, ok := <-messages:
			if !ok {
				d.onDisconnect()
				continue
			}
			d.conn.Dispatch(msg)
		case <-ticker.C:
			if d.house != nil {
				d.house.ProcessPending()
			}
		case <-disconnected:
			d.onDisconnect()
		case <-reconnect:
			d.retry = nil
			d.onReconnect(ctx)
		}
	}
}

func (d *Daemon) attach(conn Bus) {
	d.conn = conn
	busConnected.Set(1)
	d.registry.ActivateAll(conn)
}

func (d *Daemon) onDisconnect() {
	d.registry.Detach()
	if err := d.conn.Close(); err != nil {
		d.logger.Debug("Error closing lost bus connection", zap.Error(err))
	}
	d.conn = nil
	busConnected.Set(0)
	busReconnectsTotal.Inc()

	d.backoff.Reset()
	delay := d.schedule()
	d.logger.Warn("Lost bus connection, reconnecting", zap.Duration("delay", delay))
}

func (d *Daemon) onReconnect(ctx context.Context) {
	conn, err := d.dial(ctx)
	if err != nil {
		busDialTotal.WithLabelValues("error").Inc()
		delay := d.schedule()
		d.logger.Warn("Failed to reconnect to bus",
			zap.Error(err),
			zap.Duration("retry_in", delay),
		)
		return
	}
	busDialTotal.WithLabelValues("success").Inc()
	d.logger.Info("Reconnected to bus")
	d.attach(conn)
}

// schedule arms the reconnect timer with the next backoff delay.
func (d *Daemon) schedule() time.Duration {
	delay := d.backoff.NextBackOff()
	if delay == backoff.Stop {
		delay = DefaultReconnectDelay
	}
	d.retry = time.NewTimer(delay)
	return delay
}

func (d *Daemon) shutdown() {
	defer d.logger.Warn("foghornd stopped")
	if d.retry != nil {
		d.retry.Stop()
		d.retry = nil
	}
	if d.conn == nil {
		return
	}
	d.registry.DeactivateAll(d.conn)
	if err := d.conn.Close(); err != nil {
		d.logger.Warn("Failed to close bus connection", zap.Error(err))
	}
	d.conn = nil
	busConnected.Set(0)
}
