package bus

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"

	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/plugin"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/types"
)

// DefaultName is the well-known name foghorn owns on the bus.
const DefaultName = "org.fedorahosted.foghorn"

const busInterface = "org.freedesktop.DBus"

// ErrNotPrimaryOwner is returned when another process owns the bus name.
var ErrNotPrimaryOwner = errors.New("not primary owner of bus name")

// Config selects the bus and the name to own.
type Config struct {
	// Address is a D-Bus address; empty means the system bus.
	Address string
	// Name is the well-known name to request; empty skips the request.
	Name string
	// Buffer is the size of the signal channel.
	Buffer int
}

// DefaultConfig returns the system bus configuration.
func DefaultConfig() Config {
	return Config{
		Name:   DefaultName,
		Buffer: 64,
	}
}

// dbusConn is the subset of *dbus.Conn used by Conn.
type dbusConn interface {
	AddMatchSignal(options ...dbus.MatchOption) error
	RemoveMatchSignal(options ...dbus.MatchOption) error
	Signal(ch chan<- *dbus.Signal)
	RemoveSignal(ch chan<- *dbus.Signal)
	ReleaseName(name string) (dbus.ReleaseNameReply, error)
	Context() context.Context
	Close() error
}

// Conn is a bus session with an ordered filter chain.
type Conn struct {
	conn   dbusConn
	name   string
	chain  *plugin.Chain
	logger *zap.Logger

	signals      chan *dbus.Signal
	messages     chan *types.Message
	disconnected chan struct{}
}

// Dial connects to the bus and requests the configured name.
func Dial(ctx context.Context, cfg Config, logger *zap.Logger) (*Conn, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The connection outlives ctx: shutdown still needs it to remove
	// match rules after the daemon context is cancelled.
	var (
		conn *dbus.Conn
		err  error
	)
	opts := []dbus.ConnOption{dbus.WithSignalHandler(newSignalHandler())}
	if cfg.Address == "" {
		conn, err = dbus.ConnectSystemBus(opts...)
	} else {
		conn, err = dbus.Connect(cfg.Address, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to bus: %w", err)
	}

	if cfg.Name != "" {
		reply, err := conn.RequestName(cfg.Name, dbus.NameFlagDoNotQueue)
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("request name %s: %w", cfg.Name, err)
		}
		if reply != dbus.RequestNameReplyPrimaryOwner {
			_ = conn.Close()
			return nil, fmt.Errorf("request name %s: %w", cfg.Name, ErrNotPrimaryOwner)
		}
	}

	c := newConn(conn, cfg, logger)
	c.logger.Info("Connected to bus",
		zap.String("address", cfg.Address),
		zap.String("name", cfg.Name),
	)
	return c, nil
}

// newSignalHandler returns the handler that feeds the signal channel.
// Signals must reach pump in bus order. godbus's default handler spawns a
// goroutine per signal once the channel is full, which loses that order;
// the sequential handler queues them instead.
func newSignalHandler() dbus.SignalHandler {
	return dbus.NewSequentialSignalHandler()
}

func newConn(conn dbusConn, cfg Config, logger *zap.Logger) *Conn {
	if cfg.Buffer <= 0 {
		cfg.Buffer = DefaultConfig().Buffer
	}
	c := &Conn{
		conn:         conn,
		name:         cfg.Name,
		chain:        plugin.NewChain(),
		logger:       logger.Named("bus"),
		signals:      make(chan *dbus.Signal, cfg.Buffer),
		messages:     make(chan *types.Message),
		disconnected: make(chan struct{}),
	}
	conn.Signal(c.signals)
	go c.pump()
	return c
}

// pump converts godbus signals into messages until the connection ends.
func (c *Conn) pump() {
	defer close(c.disconnected)
	done := c.conn.Context().Done()
	for {
		select {
		case <-done:
			return
		case sig, ok := <-c.signals:
			if !ok {
				return
			}
			msg := toMessage(sig)
			if msg == nil {
				continue
			}
			select {
			case c.messages <- msg:
			case <-done:
				return
			}
		}
	}
}

// Messages returns the channel of received signals.
func (c *Conn) Messages() <-chan *types.Message {
	return c.messages
}

// Disconnected is closed when the connection is lost or closed.
func (c *Conn) Disconnected() <-chan struct{} {
	return c.disconnected
}

func (c *Conn) AddFilter(iface string, f types.Filter) error {
	if err := c.conn.AddMatchSignal(dbus.WithMatchInterface(iface)); err != nil {
		return fmt.Errorf("add match for %s: %w", iface, err)
	}
	if err := c.chain.Add(iface, f); err != nil {
		_ = c.conn.RemoveMatchSignal(dbus.WithMatchInterface(iface))
		return err
	}
	c.logger.Debug("Added filter", zap.String("interface", iface))
	return nil
}

func (c *Conn) RemoveFilter(iface string, f types.Filter) error {
	if err := c.conn.RemoveMatchSignal(dbus.WithMatchInterface(iface)); err != nil {
		return fmt.Errorf("remove match for %s: %w", iface, err)
	}
	if err := c.chain.Remove(iface, f); err != nil {
		return err
	}
	c.logger.Debug("Removed filter", zap.String("interface", iface))
	return nil
}

// Dispatch runs msg through the local filter and then the filter chain.
func (c *Conn) Dispatch(msg *types.Message) types.Result {
	if c.localFilter(msg) == types.Handled {
		return types.Handled
	}
	res := c.chain.Dispatch(msg)
	if res == types.NotHandled {
		c.logger.Debug("Ignoring signal", zap.String("signal", msg.String()))
	}
	return res
}

func (c *Conn) localFilter(msg *types.Message) types.Result {
	if msg.Interface != busInterface {
		return types.NotHandled
	}
	switch msg.Member {
	case "NameAcquired", "NameLost":
		name, _ := firstString(msg.Args)
		if name == "" {
			c.logger.Warn("Malformed bus name signal", zap.String("signal", msg.String()))
			return types.Handled
		}
		c.logger.Info(msg.Member, zap.String("name", name))
		return types.Handled
	}
	return types.NotHandled
}

// Close releases the bus name, unless the connection is already gone, and
// closes the connection.
func (c *Conn) Close() error {
	c.conn.RemoveSignal(c.signals)
	if c.name != "" && c.conn.Context().Err() == nil {
		reply, err := c.conn.ReleaseName(c.name)
		switch {
		case err != nil:
			c.logger.Warn("Failed to release bus name", zap.String("name", c.name), zap.Error(err))
		case reply != dbus.ReleaseNameReplyReleased:
			c.logger.Warn("Bus name was not released", zap.String("name", c.name), zap.Uint32("reply", uint32(reply)))
		}
	}
	return c.conn.Close()
}

// toMessage converts a godbus signal. Returns nil for signals without an
// interface-qualified name.
func toMessage(sig *dbus.Signal) *types.Message {
	if sig == nil {
		return nil
	}
	i := strings.LastIndexByte(sig.Name, '.')
	if i <= 0 || i == len(sig.Name)-1 {
		return nil
	}
	return &types.Message{
		Interface: sig.Name[:i],
		Member:    sig.Name[i+1:],
		Path:      string(sig.Path),
		Sender:    sig.Sender,
		Args:      sig.Body,
	}
}

func firstString(args []any) (string, bool) {
	if len(args) != 1 {
		return "", false
	}
	s, ok := args[0].(string)
	return s, ok
}
