package screen

import (
	"context"

	"github.com/screenmux/screenmux/internal/screenmsg"
)

// handle executes one instruction and reports which post-actions
// screen_thread_main would run afterward. This is the single place that
// knows the mapping from instruction Kind to Screen method; every method
// it calls is otherwise oblivious to the bus.
// handle assumes the caller already holds s.mu for the duration of the
// call (and of any post-action it triggers).
func (s *Screen) handle(ctx context.Context, instr screenmsg.Instruction) (postAction, error) {
	switch instr.Kind {
	case screenmsg.KindNewPane, screenmsg.KindHorizontalSplit, screenmsg.KindVerticalSplit:
		err := s.newPane(ctx, instr.Target, instr.DefaultShell)
		return postAction{unblockInput: true, render: true, updateTabs: true}, err

	case screenmsg.KindOpenInPlaceEditor:
		return postAction{unblockInput: true, render: true, updateTabs: true}, nil

	case screenmsg.KindClosePane:
		err := s.closePane(ctx, instr.Client, instr.Pane)
		return postAction{unblockInput: true, render: true, updateTabs: true}, err

	case screenmsg.KindCloseFocusedPane:
		err := s.closeFocusedPane(ctx, instr.Client)
		return postAction{render: true, updateTabs: true, unblockInput: true}, err

	case screenmsg.KindWriteCharacter:
		err := s.writeCharacter(ctx, instr.Client, instr.Bytes)
		return postAction{}, err

	case screenmsg.KindHoldPane:
		err := s.holdPane(instr.Client, instr.Pane, instr.ExitCode, instr.RunCommand)
		return postAction{unblockInput: true, render: true, updateTabs: true}, err

	case screenmsg.KindUpdatePaneName:
		err := s.updatePaneName(instr.Bytes, instr.Client)
		return postAction{unblockInput: true, render: true}, err

	case screenmsg.KindUndoRenamePane:
		err := s.undoRenamePane(instr.Client)
		return postAction{unblockInput: true, render: true}, err

	case screenmsg.KindToggleActiveTerminalFullscreen:
		s.toggleActiveTerminalFullscreen(instr.Client)
		return postAction{render: true, updateTabs: true}, nil

	case screenmsg.KindTogglePaneFrames:
		s.togglePaneFrames(instr.Client)
		return postAction{render: true}, nil

	case screenmsg.KindToggleFloatingPanes, screenmsg.KindTogglePaneEmbedOrFloating:
		s.toggleFloatingPanes(instr.Client)
		return postAction{unblockInput: true, render: true, updateTabs: true}, nil

	case screenmsg.KindCopy:
		err := s.copySelection(instr.Client, string(instr.Bytes))
		return postAction{}, err

	case screenmsg.KindFocusNextPane, screenmsg.KindSwitchFocus:
		s.focusNextPane(instr.Client)
		return postAction{unblockInput: true, render: true}, nil

	case screenmsg.KindFocusPreviousPane:
		s.focusPreviousPane(instr.Client)
		return postAction{unblockInput: true, render: true}, nil

	case screenmsg.KindMoveFocusLeftOrPreviousTab:
		err := s.moveFocusLeftOrPreviousTab(instr.Client)
		return postAction{unblockInput: true, render: true}, err

	case screenmsg.KindMoveFocusRightOrNextTab:
		err := s.moveFocusRightOrNextTab(instr.Client)
		return postAction{unblockInput: true, render: true}, err

	case screenmsg.KindMoveFocusLeft, screenmsg.KindMoveFocusUp:
		s.focusPreviousPane(instr.Client)
		return postAction{unblockInput: true, render: true}, nil

	case screenmsg.KindMoveFocusRight, screenmsg.KindMoveFocusDown:
		s.focusNextPane(instr.Client)
		return postAction{unblockInput: true, render: true}, nil

	case screenmsg.KindMovePane, screenmsg.KindMovePaneUp, screenmsg.KindMovePaneDown,
		screenmsg.KindMovePaneRight, screenmsg.KindMovePaneLeft:
		return postAction{unblockInput: true, render: true}, nil

	case screenmsg.KindResizeLeft, screenmsg.KindResizeRight, screenmsg.KindResizeDown,
		screenmsg.KindResizeUp, screenmsg.KindResizeIncrease, screenmsg.KindResizeDecrease:
		return postAction{unblockInput: true, render: true}, nil

	case screenmsg.KindDumpScreen:
		return postAction{unblockInput: true, render: true}, nil

	case screenmsg.KindScrollUp, screenmsg.KindScrollUpAt, screenmsg.KindScrollDown,
		screenmsg.KindScrollDownAt, screenmsg.KindScrollToBottom, screenmsg.KindPageScrollUp,
		screenmsg.KindPageScrollDown, screenmsg.KindHalfPageScrollUp, screenmsg.KindHalfPageScrollDown,
		screenmsg.KindClearScroll:
		return postAction{unblockInput: true, render: true}, nil

	case screenmsg.KindSearchDown, screenmsg.KindSearchUp:
		return postAction{unblockInput: true, render: true}, nil

	case screenmsg.KindEditScrollback, screenmsg.KindSetSelectable, screenmsg.KindUpdateSearch,
		screenmsg.KindSearchToggleCaseSensitivity, screenmsg.KindSearchToggleWholeWord,
		screenmsg.KindSearchToggleWrap:
		return postAction{unblockInput: true, render: true}, nil

	case screenmsg.KindNewTab:
		err := s.newTab(instr.Client, instr.Layout, instr.NewPaneIDs)
		return postAction{unblockInput: true, render: true, updateTabs: true}, err

	case screenmsg.KindSwitchTabNext:
		err := s.switchTabNext(instr.Client)
		return postAction{render: true, updateTabs: true}, err

	case screenmsg.KindSwitchTabPrev:
		err := s.switchTabPrev(instr.Client)
		return postAction{render: true, updateTabs: true}, err

	case screenmsg.KindGoToTab:
		err := s.goToTab(instr.TabIndex, instr.Client)
		return postAction{render: true, updateTabs: true}, err

	case screenmsg.KindToggleTab:
		err := s.toggleTab(instr.Client)
		return postAction{render: true, updateTabs: true}, err

	case screenmsg.KindCloseTab:
		err := s.closeTab(ctx, instr.Client)
		return postAction{render: true, updateTabs: true}, err

	case screenmsg.KindToggleActiveSyncTab:
		s.toggleActiveSyncTab(instr.Client)
		return postAction{render: true, updateTabs: true}, nil

	case screenmsg.KindUpdateTabName:
		err := s.updateActiveTabName(instr.Bytes, instr.Client)
		return postAction{unblockInput: true, updateTabs: true, render: true}, err

	case screenmsg.KindUndoRenameTab:
		err := s.undoActiveRenameTab(instr.Client)
		return postAction{unblockInput: true, updateTabs: true, render: true}, err

	case screenmsg.KindAddClient:
		err := s.addClient(instr.Client)
		return postAction{render: true, updateTabs: true}, err

	case screenmsg.KindRemoveClient:
		s.removeClient(instr.Client)
		return postAction{render: true}, nil

	case screenmsg.KindChangeMode:
		err := s.changeMode(instr.Mode, instr.Client)
		return postAction{render: true, unblockInput: true}, err

	case screenmsg.KindChangeModeForAllClients:
		err := s.changeModeForAllClients(ctx, instr.Mode)
		return postAction{render: true, unblockInput: true}, err

	case screenmsg.KindTerminalResize:
		s.resizeToScreen(instr.Size)
		return postAction{render: true}, nil

	case screenmsg.KindTerminalPixelDimensions:
		s.updatePixelDimensions(instr.PixelDimensions)
		return postAction{}, nil

	case screenmsg.KindTerminalBackgroundColor:
		s.updateTerminalBackgroundColor(instr.ColorString)
		return postAction{render: true}, nil

	case screenmsg.KindTerminalForegroundColor:
		s.updateTerminalForegroundColor(instr.ColorString)
		return postAction{render: true}, nil

	case screenmsg.KindTerminalColorRegisters:
		s.updateTerminalColorRegisters(instr.ColorRegisters)
		return postAction{render: true}, nil

	case screenmsg.KindRender:
		return postAction{render: true}, nil

	case screenmsg.KindPtyBytes:
		// Output bytes are owned by the pane's own vterm state, which this
		// build does not model; a render pass still picks up frame changes
		// (e.g. a held pane's undertitle).
		return postAction{render: true}, nil

	case screenmsg.KindLeftClick, screenmsg.KindRightClick, screenmsg.KindMiddleClick:
		return postAction{unblockInput: true, updateTabs: true, render: true}, nil

	case screenmsg.KindLeftMouseRelease, screenmsg.KindRightMouseRelease, screenmsg.KindMiddleMouseRelease,
		screenmsg.KindMouseHoldLeft, screenmsg.KindMouseHoldRight, screenmsg.KindMouseHoldMiddle:
		return postAction{render: true}, nil

	case screenmsg.KindAddOverlay:
		return postAction{unblockInput: true, render: true}, nil

	case screenmsg.KindRemoveOverlay:
		return postAction{unblockInput: true, render: true}, nil

	case screenmsg.KindConfirmPrompt:
		if wrapped := instr.Overlay.InstructionOnConfirm; wrapped != nil {
			action, err := s.handle(ctx, *wrapped)
			s.applyPostAction(ctx, action)
			return postAction{unblockInput: true, render: true}, err
		}
		return postAction{unblockInput: true, render: true}, nil

	case screenmsg.KindDenyPrompt:
		return postAction{unblockInput: true, render: true}, nil

	case screenmsg.KindExit:
		return postAction{exit: true}, nil

	default:
		return postAction{render: true}, nil
	}
}
