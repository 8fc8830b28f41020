package screenmsg

// Instruction is the closed set of messages the Screen consumes from the
// bus. Only the payload fields a given Kind uses are meaningful; this
// mirrors a tagged union without needing a type-switch on concrete types,
// matching the instruction table in the specification's external
// interfaces section.
type Instruction struct {
	Kind Kind

	Client   ClientID
	Client2  *ClientID // secondary/optional client; not read by the Screen's dispatch (GoToTab uses Client)
	Tab      TabID
	Pane     PaneID
	Position Position
	Bytes    []byte

	Title        *string
	ShouldFloat  *bool
	Target       ClientOrTabIndex
	Layout       PaneLayoutSpec
	NewPaneIDs   []uint32
	DefaultShell *RunCommand

	Size            Size
	PixelDimensions PixelDimensions
	ColorString     string
	ColorRegisters  []ColorRegister

	Mode ModeInfo

	ExitCode   *int
	RunCommand RunCommand

	DumpPath string
	DumpFull bool

	Overlay Overlay

	TabIndex int // 1-based, as GoToTab receives it
}

// ColorRegister pairs a register index with its raw escape sequence, as
// delivered by TerminalColorRegisters.
type ColorRegister struct {
	Register int
	Sequence string
}

// PaneLayoutSpec is the minimal shape of a layout the Screen applies when
// creating a tab or new pane tree; the full tiling/layout engine lives
// outside this subsystem's scope, so this only carries what apply_layout
// needs to seed pane count and titles.
type PaneLayoutSpec struct {
	PaneTitles []string
}

// Kind enumerates every inbound instruction the Screen dispatch loop
// handles, in the same order as the specification's external interfaces
// section.
type Kind int

const (
	KindPtyBytes Kind = iota
	KindRender
	KindNewPane
	KindOpenInPlaceEditor
	KindTogglePaneEmbedOrFloating
	KindToggleFloatingPanes
	KindHorizontalSplit
	KindVerticalSplit
	KindWriteCharacter
	KindResizeLeft
	KindResizeRight
	KindResizeDown
	KindResizeUp
	KindResizeIncrease
	KindResizeDecrease
	KindSwitchFocus
	KindFocusNextPane
	KindFocusPreviousPane
	KindMoveFocusLeft
	KindMoveFocusLeftOrPreviousTab
	KindMoveFocusDown
	KindMoveFocusUp
	KindMoveFocusRight
	KindMoveFocusRightOrNextTab
	KindMovePane
	KindMovePaneUp
	KindMovePaneDown
	KindMovePaneRight
	KindMovePaneLeft
	KindExit
	KindDumpScreen
	KindEditScrollback
	KindScrollUp
	KindScrollUpAt
	KindScrollDown
	KindScrollDownAt
	KindScrollToBottom
	KindPageScrollUp
	KindPageScrollDown
	KindHalfPageScrollUp
	KindHalfPageScrollDown
	KindClearScroll
	KindCloseFocusedPane
	KindToggleActiveTerminalFullscreen
	KindTogglePaneFrames
	KindSetSelectable
	KindClosePane
	KindHoldPane
	KindUpdatePaneName
	KindUndoRenamePane
	KindNewTab
	KindSwitchTabNext
	KindSwitchTabPrev
	KindToggleActiveSyncTab
	KindCloseTab
	KindGoToTab
	KindToggleTab
	KindUpdateTabName
	KindUndoRenameTab
	KindTerminalResize
	KindTerminalPixelDimensions
	KindTerminalBackgroundColor
	KindTerminalForegroundColor
	KindTerminalColorRegisters
	KindChangeMode
	KindChangeModeForAllClients
	KindLeftClick
	KindRightClick
	KindMiddleClick
	KindLeftMouseRelease
	KindRightMouseRelease
	KindMiddleMouseRelease
	KindMouseHoldLeft
	KindMouseHoldRight
	KindMouseHoldMiddle
	KindCopy
	KindAddClient
	KindRemoveClient
	KindAddOverlay
	KindRemoveOverlay
	KindConfirmPrompt
	KindDenyPrompt
	KindUpdateSearch
	KindSearchDown
	KindSearchUp
	KindSearchToggleCaseSensitivity
	KindSearchToggleWholeWord
	KindSearchToggleWrap
)

// String names a Kind for log/error context chains.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

var kindNames = map[Kind]string{
	KindPtyBytes:                       "PtyBytes",
	KindRender:                         "Render",
	KindNewPane:                        "NewPane",
	KindOpenInPlaceEditor:              "OpenInPlaceEditor",
	KindTogglePaneEmbedOrFloating:      "TogglePaneEmbedOrFloating",
	KindToggleFloatingPanes:            "ToggleFloatingPanes",
	KindHorizontalSplit:                "HorizontalSplit",
	KindVerticalSplit:                  "VerticalSplit",
	KindWriteCharacter:                 "WriteCharacter",
	KindResizeLeft:                     "ResizeLeft",
	KindResizeRight:                    "ResizeRight",
	KindResizeDown:                     "ResizeDown",
	KindResizeUp:                       "ResizeUp",
	KindResizeIncrease:                 "ResizeIncrease",
	KindResizeDecrease:                 "ResizeDecrease",
	KindSwitchFocus:                    "SwitchFocus",
	KindFocusNextPane:                  "FocusNextPane",
	KindFocusPreviousPane:              "FocusPreviousPane",
	KindMoveFocusLeft:                  "MoveFocusLeft",
	KindMoveFocusLeftOrPreviousTab:     "MoveFocusLeftOrPreviousTab",
	KindMoveFocusDown:                  "MoveFocusDown",
	KindMoveFocusUp:                    "MoveFocusUp",
	KindMoveFocusRight:                 "MoveFocusRight",
	KindMoveFocusRightOrNextTab:        "MoveFocusRightOrNextTab",
	KindMovePane:                       "MovePane",
	KindMovePaneUp:                     "MovePaneUp",
	KindMovePaneDown:                   "MovePaneDown",
	KindMovePaneRight:                  "MovePaneRight",
	KindMovePaneLeft:                   "MovePaneLeft",
	KindExit:                           "Exit",
	KindDumpScreen:                     "DumpScreen",
	KindEditScrollback:                 "EditScrollback",
	KindScrollUp:                       "ScrollUp",
	KindScrollUpAt:                     "ScrollUpAt",
	KindScrollDown:                     "ScrollDown",
	KindScrollDownAt:                   "ScrollDownAt",
	KindScrollToBottom:                 "ScrollToBottom",
	KindPageScrollUp:                   "PageScrollUp",
	KindPageScrollDown:                 "PageScrollDown",
	KindHalfPageScrollUp:               "HalfPageScrollUp",
	KindHalfPageScrollDown:             "HalfPageScrollDown",
	KindClearScroll:                    "ClearScroll",
	KindCloseFocusedPane:               "CloseFocusedPane",
	KindToggleActiveTerminalFullscreen: "ToggleActiveTerminalFullscreen",
	KindTogglePaneFrames:               "TogglePaneFrames",
	KindSetSelectable:                  "SetSelectable",
	KindClosePane:                      "ClosePane",
	KindHoldPane:                       "HoldPane",
	KindUpdatePaneName:                 "UpdatePaneName",
	KindUndoRenamePane:                 "UndoRenamePane",
	KindNewTab:                         "NewTab",
	KindSwitchTabNext:                  "SwitchTabNext",
	KindSwitchTabPrev:                  "SwitchTabPrev",
	KindToggleActiveSyncTab:            "ToggleActiveSyncTab",
	KindCloseTab:                       "CloseTab",
	KindGoToTab:                        "GoToTab",
	KindToggleTab:                      "ToggleTab",
	KindUpdateTabName:                  "UpdateTabName",
	KindUndoRenameTab:                  "UndoRenameTab",
	KindTerminalResize:                 "TerminalResize",
	KindTerminalPixelDimensions:        "TerminalPixelDimensions",
	KindTerminalBackgroundColor:        "TerminalBackgroundColor",
	KindTerminalForegroundColor:        "TerminalForegroundColor",
	KindTerminalColorRegisters:         "TerminalColorRegisters",
	KindChangeMode:                     "ChangeMode",
	KindChangeModeForAllClients:        "ChangeModeForAllClients",
	KindLeftClick:                      "LeftClick",
	KindRightClick:                     "RightClick",
	KindMiddleClick:                    "MiddleClick",
	KindLeftMouseRelease:               "LeftMouseRelease",
	KindRightMouseRelease:              "RightMouseRelease",
	KindMiddleMouseRelease:             "MiddleMouseRelease",
	KindMouseHoldLeft:                  "MouseHoldLeft",
	KindMouseHoldRight:                 "MouseHoldRight",
	KindMouseHoldMiddle:                "MouseHoldMiddle",
	KindCopy:                           "Copy",
	KindAddClient:                      "AddClient",
	KindRemoveClient:                   "RemoveClient",
	KindAddOverlay:                     "AddOverlay",
	KindRemoveOverlay:                  "RemoveOverlay",
	KindConfirmPrompt:                  "ConfirmPrompt",
	KindDenyPrompt:                     "DenyPrompt",
	KindUpdateSearch:                   "UpdateSearch",
	KindSearchDown:                     "SearchDown",
	KindSearchUp:                       "SearchUp",
	KindSearchToggleCaseSensitivity:    "SearchToggleCaseSensitivity",
	KindSearchToggleWholeWord:          "SearchToggleWholeWord",
	KindSearchToggleWrap:               "SearchToggleWrap",
}
