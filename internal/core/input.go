package core

// Action represents a semantic input action, abstracted from physical keys
// and swipes. Both keyboard and gesture paths produce the same actions.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A - change lane left
	ActionRight          // Right arrow, D - change lane right
	ActionJump           // Space, Up, W - jump
	ActionDuck           // Down, S - duck
	ActionUp             // Menu navigation up
	ActionDown           // Menu navigation down
	ActionConfirm        // Enter - confirm selection
	ActionBack           // B, Escape - return to menu
	ActionRestart        // R - restart after the run ended
	ActionQuit           // Q, Ctrl+C - exit
	ActionPause          // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionDuck:
		return "Duck"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered between two frames, in order.
// Order matters for the runner: two Left presses in one frame move two lanes.
type InputFrame struct {
	actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{actions: make([]Action, 0, 4)}
}

// Set appends an action to this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.actions = append(f.actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, x := range f.actions {
		if x == a {
			return true
		}
	}
	return false
}

// Actions returns the triggered actions in arrival order.
func (f InputFrame) Actions() []Action {
	return f.actions
}

// Len returns the number of queued actions.
func (f InputFrame) Len() int {
	return len(f.actions)
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	f.actions = f.actions[:0]
}

// Swipe converts a touch gesture delta into an action. The dominant axis
// decides between a lane change and a vertical action; deltas at or below
// threshold on the dominant axis produce ActionNone. Positive dy points down.
func Swipe(dx, dy, threshold float64) Action {
	if AbsF(dx) > AbsF(dy) {
		switch {
		case dx > threshold:
			return ActionRight
		case dx < -threshold:
			return ActionLeft
		}
		return ActionNone
	}
	switch {
	case dy < -threshold:
		return ActionJump
	case dy > threshold:
		return ActionDuck
	}
	return ActionNone
}
