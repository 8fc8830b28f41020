package screenmsg

// ServerInstruction is a message the Screen hands back to the server loop
// that owns client sockets: render output ready to ship, an input unblock,
// or a mode switch.
type ServerInstruction struct {
	Kind ServerKind

	Client ClientID
	Output *SerializedOutput
	Mode   ModeInfo

	// Reinject carries an instruction for the server loop to dispatch as if
	// it had arrived from the client. The Screen does not send it:
	// ConfirmPrompt dispatches its overlay's wrapped instruction itself.
	Reinject *Instruction
}

// ServerKind enumerates the messages the Screen sends upstream to the
// server loop.
type ServerKind int

const (
	ServerRender ServerKind = iota
	ServerRenderNone
	ServerUnblockInputThread
	ServerSwitchToMode
	ServerReinjectInstruction
)

// SerializedOutput is the rendered frame handed to the server loop for
// writing to client sockets, keyed by the client that should receive it.
type SerializedOutput struct {
	Bytes []byte
}

// PtyInstruction is a message the Screen sends to the pty-owning subsystem:
// spawn, resize, write, or tear down a terminal pane's backing process.
type PtyInstruction struct {
	Kind PtyKind

	Pane        PaneID
	Size        Size
	Bytes       []byte
	RunCommand  RunCommand
	ClosedPanes []PaneID
}

// PtyKind enumerates the messages the Screen sends to the pty subsystem.
type PtyKind int

const (
	PtySpawnTerminal PtyKind = iota
	PtySpawnTerminalVertically
	PtySpawnTerminalHorizontally
	PtyWriteBytes
	PtyResizePane
	PtyClosePane
	PtyCloseTab
)

// PluginInstruction is a message the Screen sends to the plugin host, used
// here only for tab bar / status bar style consumers that track TabInfo.
type PluginInstruction struct {
	PluginID *uint32
	Client   *ClientID
	Event    Event
}

// Event is a notification pushed to plugins, mirroring the subset of
// zellij's Event enum the Screen subsystem itself originates.
type Event struct {
	Kind EventKind

	Tabs   []TabInfo
	Mode   ModeInfo
	Pane   *PaneID
	Client *ClientID
}

// EventKind enumerates the plugin-facing events the Screen emits.
type EventKind int

const (
	EventTabUpdate EventKind = iota
	EventModeUpdate
	EventPaneUpdate
)
