// Package config loads the foghornd configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"sigs.k8s.io/yaml"

	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/bus"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/snmp"
)

// DefaultPath is read when the file exists and no --config flag is given.
const DefaultPath = "/etc/foghorn/foghorn.yaml"

const maxInterfaceLen = 255

// Config is the full daemon configuration.
type Config struct {
	Bus       BusConfig       `json:"bus"`
	SNMP      SNMPConfig      `json:"snmp"`
	Reconnect ReconnectConfig `json:"reconnect"`
	Handlers  HandlersConfig  `json:"handlers"`
	Log       LogConfig       `json:"log"`
	Metrics   MetricsConfig   `json:"metrics"`
	PIDFile   string          `json:"pidFile"`
}

// BusConfig selects the D-Bus connection.
type BusConfig struct {
	// Address overrides the system bus. Empty means the system bus.
	Address string `json:"address,omitempty"`
	Name    string `json:"name"`
}

// SNMPConfig describes the trap receiver.
type SNMPConfig struct {
	Target         string `json:"target"`
	Port           uint16 `json:"port"`
	Community      string `json:"community"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
	Retries        int    `json:"retries"`
}

// ReconnectConfig paces bus reconnect attempts.
type ReconnectConfig struct {
	DelaySeconds int `json:"delaySeconds"`
	// Exponential grows the delay after each failed attempt, up to
	// MaxDelaySeconds. The default is a fixed delay forever.
	Exponential     bool `json:"exponential"`
	MaxDelaySeconds int  `json:"maxDelaySeconds"`
}

// HandlerConfig overrides one handler.
type HandlerConfig struct {
	Disabled  bool   `json:"disabled"`
	Interface string `json:"interface,omitempty"`
}

// HandlersConfig holds per-handler overrides.
type HandlersConfig struct {
	Corosync  HandlerConfig `json:"corosync"`
	Fence     HandlerConfig `json:"fence"`
	RGManager HandlerConfig `json:"rgmanager"`
}

// LogConfig mirrors the -v flag for file-based setups.
type LogConfig struct {
	Verbose bool `json:"verbose"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	// BindAddress is the listen address; empty disables the endpoint.
	BindAddress string `json:"bindAddress,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	s := snmp.DefaultSessionConfig()
	return Config{
		Bus: BusConfig{Name: bus.DefaultName},
		SNMP: SNMPConfig{
			Target:         s.Target,
			Port:           s.Port,
			Community:      s.Community,
			TimeoutSeconds: int(s.Timeout / time.Second),
			Retries:        s.Retries,
		},
		Reconnect: ReconnectConfig{
			DelaySeconds:    10,
			MaxDelaySeconds: 300,
		},
		PIDFile: "/var/run/foghorn.pid",
	}
}

// Load reads path on top of Default. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every problem found, joined into one error.
func (c Config) Validate() error {
	var errs []error
	if c.Bus.Name != "" && !validBusName(c.Bus.Name) {
		errs = append(errs, fmt.Errorf("bus.name %q is not a valid bus name", c.Bus.Name))
	}
	if c.SNMP.Target == "" {
		errs = append(errs, errors.New("snmp.target is required"))
	}
	if c.SNMP.Community == "" {
		errs = append(errs, errors.New("snmp.community is required"))
	}
	if c.SNMP.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("snmp.timeoutSeconds must not be negative, got %d", c.SNMP.TimeoutSeconds))
	}
	if c.SNMP.Retries < 0 {
		errs = append(errs, fmt.Errorf("snmp.retries must not be negative, got %d", c.SNMP.Retries))
	}
	if c.Reconnect.DelaySeconds <= 0 {
		errs = append(errs, fmt.Errorf("reconnect.delaySeconds must be positive, got %d", c.Reconnect.DelaySeconds))
	}
	if c.Reconnect.Exponential && c.Reconnect.MaxDelaySeconds < c.Reconnect.DelaySeconds {
		errs = append(errs, fmt.Errorf("reconnect.maxDelaySeconds (%d) must be at least delaySeconds (%d)",
			c.Reconnect.MaxDelaySeconds, c.Reconnect.DelaySeconds))
	}
	for name, h := range map[string]HandlerConfig{
		"corosync":  c.Handlers.Corosync,
		"fence":     c.Handlers.Fence,
		"rgmanager": c.Handlers.RGManager,
	} {
		if h.Interface != "" && !validInterface(h.Interface) {
			errs = append(errs, fmt.Errorf("handlers.%s.interface %q is not a valid interface name", name, h.Interface))
		}
	}
	return errors.Join(errs...)
}

// Session returns the trap session settings.
func (c Config) Session() snmp.SessionConfig {
	return snmp.SessionConfig{
		Target:    c.SNMP.Target,
		Port:      c.SNMP.Port,
		Community: c.SNMP.Community,
		Timeout:   time.Duration(c.SNMP.TimeoutSeconds) * time.Second,
		Retries:   c.SNMP.Retries,
	}
}

// BusSettings returns the bus connection settings.
func (c Config) BusSettings() bus.Config {
	b := bus.DefaultConfig()
	b.Address = c.Bus.Address
	b.Name = c.Bus.Name
	return b
}

// ReconnectDelay and MaxReconnectDelay convert the reconnect settings.
func (c Config) ReconnectDelay() time.Duration {
	return time.Duration(c.Reconnect.DelaySeconds) * time.Second
}

func (c Config) MaxReconnectDelay() time.Duration {
	return time.Duration(c.Reconnect.MaxDelaySeconds) * time.Second
}

// validInterface checks the D-Bus interface name grammar: two or more
// dot-separated elements of [A-Za-z_][A-Za-z0-9_]*.
func validInterface(name string) bool {
	if len(name) > maxInterfaceLen {
		return false
	}
	parts := strings.Split(name, ".")
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts {
		if !validElement(p, false) {
			return false
		}
	}
	return true
}

// validBusName is validInterface with '-' allowed inside elements.
func validBusName(name string) bool {
	if len(name) > maxInterfaceLen || strings.HasPrefix(name, ":") {
		return false
	}
	parts := strings.Split(name, ".")
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts {
		if !validElement(p, true) {
			return false
		}
	}
	return true
}

func validElement(s string, dash bool) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case dash && r == '-':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
