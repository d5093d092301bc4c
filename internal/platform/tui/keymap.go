package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-portfolio/internal/core"
	"github.com/vovakirdan/tui-portfolio/internal/input"
)

// KeyMapper translates Bubble Tea key messages to actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action while the game has focus.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit
	case "ctrl+s":
		return core.ActionSnapshot
	case "ctrl+y":
		return core.ActionCopy
	}

	// Movement keys share one table with the web front end.
	switch input.ControlForKey(key) {
	case input.ControlLeft:
		return core.ActionLeft
	case input.ControlRight:
		return core.ActionRight
	case input.ControlJump:
		return core.ActionJump
	}

	switch key {
	case "enter":
		return core.ActionConfirm
	case "esc", "backspace":
		return core.ActionBack
	case "c", "/":
		return core.ActionChat
	case "m":
		return core.ActionSound
	case "r":
		return core.ActionRestart
	}

	return core.ActionNone
}

// MapChatKey translates a key while the chat input has focus. Only keys
// that never type text are mapped; everything else goes to the input.
func (km *KeyMapper) MapChatKey(msg tea.KeyMsg) core.Action {
	switch msg.String() {
	case "ctrl+c":
		return core.ActionQuit
	case "esc":
		return core.ActionBack
	case "enter":
		return core.ActionConfirm
	case "ctrl+y":
		return core.ActionCopy
	}
	return core.ActionNone
}
