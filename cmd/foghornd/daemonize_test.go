package main

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitReady(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{name: "ready", input: "ready\n"},
		{name: "ready without newline", input: "ready"},
		{name: "startup error", input: "open trap session: snmp: target is required\n", errMsg: "daemon failed to start: open trap session"},
		{name: "exited silently", input: "", errMsg: "exited before it was ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := waitReady(strings.NewReader(tt.input))
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestStartupHandshake_Failure(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	report := &startupReporter{w: w}
	report.Fail(errors.New("/var/run/foghorn.pid (pid 42): pid file is locked\nby another process"))
	report.Ready()

	err = waitReady(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pid file is locked; by another process")
}

func TestStartupHandshake_Ready(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	report := &startupReporter{w: w}
	report.Ready()
	report.Fail(errors.New("late failure"))

	assert.NoError(t, waitReady(r))
}

func TestStartupHandshake_ChildDiesSilently(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	require.NoError(t, w.Close())

	err = waitReady(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited before it was ready")
}

func TestInheritedReporter_Foreground(t *testing.T) {
	t.Setenv(envDaemonized, "")
	report := inheritedReporter()
	assert.Nil(t, report.w)

	report.Fail(errors.New("ignored"))
	report.Ready()
}

func TestDaemonized(t *testing.T) {
	t.Setenv(envDaemonized, "")
	assert.False(t, daemonized())
	t.Setenv(envDaemonized, "1")
	assert.True(t, daemonized())
}
