package screenmsg

// Overlay is a transient prompt layered above panes. ConfirmPrompt
// re-dispatches InstructionOnConfirm exactly as if it had arrived from the
// client; DenyPrompt drops it.
type Overlay struct {
	Name                 string
	Prompt               string
	InstructionOnConfirm *Instruction
}

// RunCommand describes a shell command a held pane can be re-run with.
type RunCommand struct {
	Command string
	Args    []string
	Dir     string
	Env     []string
}

// ClipboardKind selects where Copy(client) sends selected text.
type ClipboardKind int

const (
	ClipboardSystem ClipboardKind = iota
	ClipboardPrimary
)

// CopyOptions configures the Copy(client) instruction's sink.
type CopyOptions struct {
	Command      string
	Clipboard    ClipboardKind
	CopyOnSelect bool
}
