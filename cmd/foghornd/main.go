// foghornd relays cluster D-Bus signals as SNMP traps.
//
// Usage:
//
//	foghornd                      # detach and log to syslog
//	foghornd -d -v                # stay in the foreground, log to stderr
//	foghornd -c /etc/foghorn/foghorn.yaml --metrics-bind-address :9102
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/bus"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/config"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/daemon"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/logging"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/pidfile"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/registry"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/snmp"
)

var version = "dev"

// options holds the parsed command line.
type options struct {
	debug       bool
	verbose     bool
	configPath  string
	pidFile     string
	metricsAddr string
	snmpTarget  string
}

func main() {
	if err := newRootCmd(&options{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "foghornd",
		Short: "Relay cluster D-Bus notifications as SNMP traps",
		Long: `foghornd listens on the system bus for corosync, fence and rgmanager
signals and re-emits each one as an SNMPv2c trap.

Unless --debug is given the daemon detaches from the terminal and logs to
syslog.`,
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := inheritedReporter()
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				report.Fail(err)
				return err
			}
			if !opts.debug && !daemonized() {
				return daemonize()
			}
			return run(cmd.Context(), opts, cfg, report)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.debug, "debug", "d", false, "Stay in the foreground and log to stderr")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug messages")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file (default "+config.DefaultPath+" when present)")
	flags.StringVar(&opts.pidFile, "pidfile", "", "Pid file path, overrides the configuration")
	flags.StringVar(&opts.metricsAddr, "metrics-bind-address", "", "Address for the Prometheus endpoint; empty disables it")
	flags.StringVar(&opts.snmpTarget, "snmp-target", "", "Trap receiver host, overrides the configuration")
	return cmd
}

// resolveConfig loads the configuration file and applies flag overrides.
func resolveConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	path := opts.configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultPath); err == nil {
			path = config.DefaultPath
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("pidfile") {
		cfg.PIDFile = opts.pidFile
	}
	if flags.Changed("metrics-bind-address") {
		cfg.Metrics.BindAddress = opts.metricsAddr
	}
	if flags.Changed("snmp-target") {
		cfg.SNMP.Target = opts.snmpTarget
	}
	if opts.verbose {
		cfg.Log.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// run contains the daemon's main logic, separated from the command for
// readability. It blocks until SIGINT or SIGTERM. Startup failures are also
// sent to report so a waiting parent can exit non-zero.
func run(parent context.Context, opts *options, cfg config.Config, report *startupReporter) error {
	if parent == nil {
		parent = context.Background()
	}
	logger, err := logging.New(logging.Options{Debug: opts.debug, Verbose: cfg.Log.Verbose})
	if err != nil {
		err = fmt.Errorf("create logger: %w", err)
		report.Fail(err)
		return err
	}
	defer logger.Sync()

	if err := serve(parent, cfg, logger, report.Ready); err != nil {
		logger.Error("Exiting", zap.Error(err))
		report.Fail(err)
		return err
	}
	return nil
}

func serve(parent context.Context, cfg config.Config, logger *zap.Logger, ready func()) error {
	if cfg.PIDFile != "" {
		pid, err := pidfile.Acquire(cfg.PIDFile)
		if err != nil {
			return err
		}
		defer func() {
			if err := pid.Release(); err != nil {
				logger.Warn("Failed to release pid file", zap.Error(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessionCfg := cfg.Session()
	if cfg.Log.Verbose {
		sessionCfg.Logger = logger
	}
	session, err := snmp.NewSession(sessionCfg, logger)
	if err != nil {
		return fmt.Errorf("open trap session: %w", err)
	}
	defer session.Close()

	reg := registry.NewRegistry(logger)
	if err := registerHandlers(reg, cfg.Handlers, snmp.NewEmitter(session, logger), logger); err != nil {
		return err
	}

	if cfg.Metrics.BindAddress != "" {
		metrics := NewMetricsServer(cfg.Metrics.BindAddress, logger)
		go func() {
			if err := metrics.Start(ctx); err != nil {
				logger.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	busCfg := cfg.BusSettings()
	d, err := daemon.New(daemon.Config{
		Dial: func(ctx context.Context) (daemon.Bus, error) {
			conn, err := bus.Dial(ctx, busCfg, logger)
			if err != nil {
				return nil, err
			}
			return conn, nil
		},
		Registry:    reg,
		Housekeeper: session,
		BackOff:     daemon.NewBackOff(cfg.ReconnectDelay(), cfg.MaxReconnectDelay(), cfg.Reconnect.Exponential),
		Ready:       ready,
		Version:     version,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	logger.Info("Connecting to bus", zap.String("snmp_target", cfg.SNMP.Target))
	if err := d.Run(ctx); err != nil {
		if errors.Is(err, bus.ErrNotPrimaryOwner) {
			return fmt.Errorf("another foghornd owns %s: %w", busCfg.Name, err)
		}
		return err
	}
	return nil
}
