package ptyglue

import (
	"testing"

	"github.com/screenmux/screenmux/internal/screenmsg"
)

func TestCommandLineNoArgs(t *testing.T) {
	got := commandLine(screenmsg.RunCommand{Command: "echo hi"})
	if got != "echo hi" {
		t.Errorf("got %q, want %q", got, "echo hi")
	}
}

func TestCommandLineQuotesArgs(t *testing.T) {
	got := commandLine(screenmsg.RunCommand{
		Command: "echo",
		Args:    []string{"hello world", "$HOME"},
	})
	want := "echo 'hello world' '$HOME'"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSpawnAndClose(t *testing.T) {
	term, err := Spawn(screenmsg.RunCommand{Command: "sleep 30"}, 24, 80)
	if err != nil {
		t.Fatalf("Spawn returned error: %v", err)
	}
	if !term.Running() {
		t.Fatal("expected terminal to be running right after spawn")
	}
	if err := term.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if term.Running() {
		t.Error("expected terminal to not be running after Close")
	}
}

func TestSpawnRecordsExitCode(t *testing.T) {
	term, err := Spawn(screenmsg.RunCommand{Command: "exit 3"}, 24, 80)
	if err != nil {
		t.Fatalf("Spawn returned error: %v", err)
	}
	term.Wait()

	exited, code := term.ExitStatus()
	if !exited {
		t.Fatal("expected process to have exited")
	}
	if code == nil || *code != 3 {
		t.Errorf("got code %v, want 3", code)
	}
	_ = term.Close()
}
