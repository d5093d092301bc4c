package core

// Action is a semantic intent abstracted from physical key presses.
// Movement actions feed the input normalizer; the rest drive the
// presentation layer.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A
	ActionRight          // Right arrow, D
	ActionJump           // Up arrow, W, Space
	ActionConfirm        // Enter
	ActionBack           // Esc - close the open panel
	ActionChat           // C, / - open the assistant
	ActionSound          // M - toggle sound
	ActionCopy           // Ctrl+Y - copy to clipboard
	ActionSnapshot       // Ctrl+S - save a PNG snapshot
	ActionRestart        // R - back to the start
	ActionQuit           // Q, Ctrl+C
)

var actionNames = map[Action]string{
	ActionNone:     "None",
	ActionLeft:     "Left",
	ActionRight:    "Right",
	ActionJump:     "Jump",
	ActionConfirm:  "Confirm",
	ActionBack:     "Back",
	ActionChat:     "Chat",
	ActionSound:    "Sound",
	ActionCopy:     "Copy",
	ActionSnapshot: "Snapshot",
	ActionRestart:  "Restart",
	ActionQuit:     "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// IsMovement reports whether the action moves the character.
func (a Action) IsMovement() bool {
	return a == ActionLeft || a == ActionRight || a == ActionJump
}

// InputFrame holds the actions triggered during one frame.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
