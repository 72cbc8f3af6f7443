package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/config"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/handlers/corosync"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/plugin"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/registry"
	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/testutil"
)

func TestRegisterHandlers_Order(t *testing.T) {
	reg := registry.NewRegistry(zap.NewNop())
	require.NoError(t, registerHandlers(reg, config.HandlersConfig{}, &testutil.TrapRecorder{}, zap.NewNop()))
	assert.Equal(t, []string{"corosync", "fence", "rgmanager"}, reg.Names())
}

func TestRegisterHandlers_Overrides(t *testing.T) {
	reg := registry.NewRegistry(zap.NewNop())
	cfg := config.HandlersConfig{
		Corosync: config.HandlerConfig{Interface: "org.example.membership"},
		Fence:    config.HandlerConfig{Disabled: true},
	}
	require.NoError(t, registerHandlers(reg, cfg, &testutil.TrapRecorder{}, zap.NewNop()))
	assert.Equal(t, []string{"corosync", "rgmanager"}, reg.Names())

	h, ok := reg.All()[0].(*plugin.Plugin)
	require.True(t, ok)
	assert.Equal(t, "org.example.membership", h.Interface())
	assert.NotEqual(t, corosync.DefaultInterface, h.Interface())
}

func TestResolveConfig_Flags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foghorn.yaml")
	require.NoError(t, os.WriteFile(path, []byte("snmp:\n  target: nms.example.com\n"), 0o600))

	opts := &options{}
	cmd := newRootCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{
		"-c", path,
		"-v",
		"--pidfile", "/tmp/foghorn-test.pid",
		"--metrics-bind-address", "127.0.0.1:9102",
	}))

	cfg, err := resolveConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, "nms.example.com", cfg.SNMP.Target)
	assert.Equal(t, "/tmp/foghorn-test.pid", cfg.PIDFile)
	assert.Equal(t, "127.0.0.1:9102", cfg.Metrics.BindAddress)
	assert.True(t, cfg.Log.Verbose)
}

func TestResolveConfig_TargetFlagWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foghorn.yaml")
	require.NoError(t, os.WriteFile(path, []byte("snmp:\n  target: nms.example.com\n"), 0o600))

	opts := &options{}
	cmd := newRootCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--snmp-target", "10.1.1.1"}))

	cfg, err := resolveConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, "10.1.1.1", cfg.SNMP.Target)
	assert.False(t, cfg.Log.Verbose)
}

func TestResolveConfig_InvalidOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foghorn.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o600))

	opts := &options{}
	cmd := newRootCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--snmp-target", ""}))

	_, err := resolveConfig(cmd, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snmp.target")
}

func TestMetricsServerRoutes(t *testing.T) {
	s := NewMetricsServer("127.0.0.1:0", zap.NewNop())
	srv := httptest.NewServer(s.routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

