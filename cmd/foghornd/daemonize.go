package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
)

const (
	// envDaemonized marks the re-executed child.
	envDaemonized = "FOGHORND_DAEMONIZED"
	// readyFD is the child's end of the startup pipe, the first ExtraFiles
	// entry.
	readyFD      = 3
	readyMessage = "ready"
)

func daemonized() bool {
	return os.Getenv(envDaemonized) == "1"
}

// daemonize re-executes the binary in a new session with stdio on /dev/null
// and waits until the child reports that it is serving. A child that fails
// to start makes daemonize return its error, so the parent exits non-zero.
func daemonize() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", os.DevNull, err)
	}
	defer devNull.Close()

	r, w, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("create startup pipe: %w", err)
	}
	defer r.Close()

	child := exec.Command(exe, os.Args[1:]...)
	child.Env = append(os.Environ(), envDaemonized+"=1")
	child.Dir = "/"
	child.Stdin = devNull
	child.Stdout = devNull
	child.Stderr = devNull
	child.ExtraFiles = []*os.File{w}
	child.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	startErr := child.Start()
	// Only the child may hold the write end, or EOF never arrives.
	w.Close()
	if startErr != nil {
		return fmt.Errorf("start daemon: %w", startErr)
	}

	if err := waitReady(r); err != nil {
		// The child exits on its own after reporting; reap it if it has.
		_ = child.Wait()
		return err
	}
	return child.Process.Release()
}

// waitReady reads the child's single status line.
func waitReady(r io.Reader) error {
	line, err := bufio.NewReader(r).ReadString('\n')
	line = strings.TrimSpace(line)
	switch {
	case line == readyMessage:
		return nil
	case line != "":
		return fmt.Errorf("daemon failed to start: %s", line)
	case err != nil && !errors.Is(err, io.EOF):
		return fmt.Errorf("read daemon status: %w", err)
	default:
		return errors.New("daemon exited before it was ready")
	}
}

// startupReporter sends the child's startup outcome to the waiting parent.
// The zero value, used in the foreground, does nothing.
type startupReporter struct {
	w io.WriteCloser
}

// inheritedReporter returns a reporter on the startup pipe when running as
// the daemonized child.
func inheritedReporter() *startupReporter {
	if !daemonized() {
		return &startupReporter{}
	}
	f := os.NewFile(readyFD, "foghornd-startup")
	if f == nil {
		return &startupReporter{}
	}
	return &startupReporter{w: f}
}

// Ready reports a successful start. Later calls are no-ops.
func (s *startupReporter) Ready() {
	s.finish(readyMessage)
}

// Fail reports err as the startup failure. It is a no-op after Ready.
func (s *startupReporter) Fail(err error) {
	s.finish(strings.ReplaceAll(err.Error(), "\n", "; "))
}

func (s *startupReporter) finish(line string) {
	if s.w == nil {
		return
	}
	_, _ = io.WriteString(s.w, line+"\n")
	_ = s.w.Close()
	s.w = nil
}
