// Package logging builds the daemon's zap logger.
//
// In the foreground (debug) the logger writes human-readable lines to
// stderr. Detached, it writes JSON entries to the system log with the
// syslog priority taken from the zap level.
package logging

import (
	"fmt"
	"log/syslog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultTag is the syslog identifier.
const DefaultTag = "foghorn"

// Options selects the logger flavour.
type Options struct {
	// Debug keeps the process in the foreground and logs to stderr.
	Debug bool
	// Verbose enables debug-level entries. Otherwise only warnings and
	// above are written.
	Verbose bool
	// Tag overrides DefaultTag.
	Tag string
}

// Level returns the minimum enabled level for opts.
func (o Options) Level() zapcore.Level {
	if o.Verbose {
		return zapcore.DebugLevel
	}
	return zapcore.WarnLevel
}

// New builds a logger for opts.
func New(opts Options) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(opts.Level())

	if opts.Debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = level
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
		return cfg.Build()
	}

	tag := opts.Tag
	if tag == "" {
		tag = DefaultTag
	}
	w, err := syslog.New(syslog.LOG_DAEMON|syslog.LOG_INFO, tag)
	if err != nil {
		return nil, fmt.Errorf("connect to syslog: %w", err)
	}
	return zap.New(NewSyslogCore(level, w), zap.AddCaller()), nil
}

// SyslogWriter is the part of *syslog.Writer used by the syslog core.
type SyslogWriter interface {
	Debug(m string) error
	Info(m string) error
	Warning(m string) error
	Err(m string) error
	Crit(m string) error
}

type syslogCore struct {
	zapcore.LevelEnabler
	enc zapcore.Encoder
	out SyslogWriter
}

// NewSyslogCore returns a core writing JSON entries to out. The timestamp is
// left to syslog.
func NewSyslogCore(enab zapcore.LevelEnabler, out SyslogWriter) zapcore.Core {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = ""
	return &syslogCore{
		LevelEnabler: enab,
		enc:          zapcore.NewJSONEncoder(encCfg),
		out:          out,
	}
}

func (c *syslogCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &syslogCore{
		LevelEnabler: c.LevelEnabler,
		enc:          c.enc.Clone(),
		out:          c.out,
	}
	for _, f := range fields {
		f.AddTo(clone.enc)
	}
	return clone
}

func (c *syslogCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *syslogCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	msg := strings.TrimSuffix(buf.String(), "\n")
	buf.Free()

	switch ent.Level {
	case zapcore.DebugLevel:
		return c.out.Debug(msg)
	case zapcore.InfoLevel:
		return c.out.Info(msg)
	case zapcore.WarnLevel:
		return c.out.Warning(msg)
	case zapcore.ErrorLevel:
		return c.out.Err(msg)
	default:
		return c.out.Crit(msg)
	}
}

func (c *syslogCore) Sync() error {
	return nil
}
