// Command screenmux launches a single-session terminal multiplexer: a
// Screen state machine, its pty-backed terminal subsystem, and one local
// Bubble Tea client wired together over in-process message buses. Layout
// follows the pack's root command (version flag, logging init, panic-safe
// goroutines, Bubble Tea program loop).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-isatty"

	"github.com/screenmux/screenmux/internal/bus"
	"github.com/screenmux/screenmux/internal/client"
	"github.com/screenmux/screenmux/internal/logging"
	"github.com/screenmux/screenmux/internal/ptysub"
	"github.com/screenmux/screenmux/internal/safego"
	"github.com/screenmux/screenmux/internal/screen"
	"github.com/screenmux/screenmux/internal/screenconfig"
	"github.com/screenmux/screenmux/internal/screenmsg"
	"github.com/screenmux/screenmux/internal/supervisor"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("screenmux %s (commit: %s)\n", version, commit)
		os.Exit(0)
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "screenmux: stdin/stdout must be a terminal")
		os.Exit(1)
	}

	home, _ := os.UserHomeDir()
	logDir := filepath.Join(home, ".screenmux", "logs")
	if err := logging.Initialize(logDir, logging.LevelDebug); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not initialize logging: %v\n", err)
	}
	defer logging.Close()
	logging.Info("starting screenmux")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sup := supervisor.New(ctx)
	sup.SetErrorHandler(func(name string, err error) {
		logging.Error("%s exited: %v", name, err)
	})
	defer sup.Stop()

	cfg := screenconfig.DefaultConfig()

	inbound := bus.New[screenmsg.Instruction](cfg.BusDepth)
	toPty := bus.New[screenmsg.PtyInstruction](cfg.BusDepth)
	toPlugin := bus.New[screenmsg.PluginInstruction](cfg.BusDepth)
	toClients := bus.New[screenmsg.ServerInstruction](cfg.BusDepth)

	senders := screen.Senders{
		Server: toClients.Sender(),
		Pty:    toPty.Sender(),
		Plugin: toPlugin.Sender(),
	}
	scr := screen.New(inbound, senders, cfg)

	pty := ptysub.New(toPty, inbound.Sender())

	sup.Start("screen", scr.Run)
	sup.Start("pty", pty.Run)
	safego.Go("plugin-drain", func() {
		for {
			if _, err := toPlugin.Recv(ctx); err != nil {
				return
			}
		}
	})

	const localClient = screenmsg.ClientID(0)
	model := client.New(ctx, localClient, inbound.Sender(), toClients)

	program := tea.NewProgram(model, tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		logging.Error("program exited: %v", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logging.Info("screenmux shutdown complete")
}
