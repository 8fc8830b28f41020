// Package ptyglue spawns and owns the real pty-backed processes behind
// terminal panes. It is grounded on the teacher's own pty wrapper, widened
// to track the exit status HoldPane needs and to build re-run argv with
// alessio/shellescape instead of naive string concatenation.
package ptyglue

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/alessio/shellescape"
	"github.com/creack/pty"

	"github.com/screenmux/screenmux/internal/logging"
	"github.com/screenmux/screenmux/internal/process"
	"github.com/screenmux/screenmux/internal/screenmsg"
)

// closeTimeout is how long Close waits for cmd.Wait after requesting
// termination before giving up on a clean exit status.
const closeTimeout = 5 * time.Second

// Terminal wraps one pty-backed process: a terminal pane's backing shell.
type Terminal struct {
	mu       sync.Mutex
	ptyFile  *os.File
	cmd      *exec.Cmd
	closed   bool
	runCmd   screenmsg.RunCommand
	exitCode *int
	exited   bool
}

// Spawn starts run inside a pty sized rows x cols. When rows or cols is 0
// the pty is left at its default size until the first SetSize call.
func Spawn(run screenmsg.RunCommand, rows, cols uint16) (*Terminal, error) {
	cmd := exec.Command("sh", "-c", commandLine(run))
	cmd.Dir = run.Dir
	cmd.Env = append(os.Environ(), run.Env...)
	cmd.Env = append(cmd.Env, "TERM=xterm-256color")
	cmd.SysProcAttr = &syscall.SysProcAttr{}

	var (
		ptmx *os.File
		err  error
	)
	if rows > 0 && cols > 0 {
		ptmx, err = pty.StartWithSize(cmd, &pty.Winsize{Rows: rows, Cols: cols})
	} else {
		ptmx, err = pty.Start(cmd)
	}
	if err != nil {
		return nil, err
	}

	return &Terminal{ptyFile: ptmx, cmd: cmd, runCmd: run}, nil
}

// commandLine renders a RunCommand into a single shell line, quoting every
// argument so spaces or shell metacharacters in Args can't reinterpret the
// command the way a naive strings.Join would.
func commandLine(run screenmsg.RunCommand) string {
	if len(run.Args) == 0 {
		return run.Command
	}
	quoted := make([]string, 0, len(run.Args)+1)
	quoted = append(quoted, shellescape.Quote(run.Command))
	for _, a := range run.Args {
		quoted = append(quoted, shellescape.Quote(a))
	}
	return strings.Join(quoted, " ")
}

// RunCommand returns the command this terminal was spawned with, for
// HoldPane's "press ENTER to re-run" support.
func (t *Terminal) RunCommand() screenmsg.RunCommand {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.runCmd
}

// SetSize resizes the pty's window.
func (t *Terminal) SetSize(rows, cols uint16) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || t.ptyFile == nil {
		return nil
	}
	return pty.Setsize(t.ptyFile, &pty.Winsize{Rows: rows, Cols: cols})
}

// Write sends input bytes to the pty.
func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	closed, ptyFile := t.closed, t.ptyFile
	t.mu.Unlock()
	if closed || ptyFile == nil {
		return 0, io.ErrClosedPipe
	}
	return ptyFile.Write(p)
}

// Read pulls output bytes from the pty. It does not hold the mutex across
// the blocking syscall.
func (t *Terminal) Read(p []byte) (int, error) {
	t.mu.Lock()
	closed, ptyFile := t.closed, t.ptyFile
	t.mu.Unlock()
	if closed || ptyFile == nil {
		return 0, io.EOF
	}
	return ptyFile.Read(p)
}

// SendInterrupt writes Ctrl+C.
func (t *Terminal) SendInterrupt() error {
	_, err := t.Write([]byte{0x03})
	return err
}

// Wait blocks until the backing process exits, recording its exit code (or
// marking it as killed-by-signal when no exit code is available) for
// HoldPane to report in the pane's undertitle.
func (t *Terminal) Wait() {
	t.mu.Lock()
	cmd := t.cmd
	t.mu.Unlock()
	if cmd == nil {
		return
	}
	err := cmd.Wait()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.exited = true
	if cmd.ProcessState != nil {
		code := cmd.ProcessState.ExitCode()
		if code >= 0 {
			t.exitCode = &code
			return
		}
	}
	if err != nil {
		logging.Debug("ptyglue: process exited without a code: %v", err)
	}
}

// ExitStatus reports whether the process has exited and, if so, its exit
// code (nil when it was killed by a signal rather than exiting normally).
func (t *Terminal) ExitStatus() (exited bool, code *int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.exited, t.exitCode
}

// Close terminates the backing process group and releases the pty file.
func (t *Terminal) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	ptyFile, cmd := t.ptyFile, t.cmd
	t.ptyFile = nil
	t.mu.Unlock()

	if ptyFile != nil {
		_ = ptyFile.Close()
	}
	if cmd == nil || cmd.Process == nil {
		return nil
	}

	leaderPID := cmd.Process.Pid
	if err := process.KillProcessGroup(leaderPID, process.KillOptions{}); err != nil {
		logging.Debug("ptyglue: kill process group %d: %v", leaderPID, err)
	}

	done := make(chan struct{})
	go func() {
		t.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(closeTimeout):
		return fmt.Errorf("ptyglue: pane %d did not exit within %s", leaderPID, closeTimeout)
	}
	return nil
}

// Running reports whether the backing process is still alive.
func (t *Terminal) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.closed && !t.exited
}

// File exposes the raw pty file for select/poll-based readers.
func (t *Terminal) File() *os.File {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	return t.ptyFile
}
