package runner

import "fmt"

// RunState is the top-level mode of the simulation.
type RunState int

const (
	StateSelect    RunState = iota // Awaiting character choice
	StatePlaying                   // Simulation active
	StateExploding                 // Lives exhausted, explosion window running
	StateGameOver                  // Run lost
	StateWin                       // All categories collected and finish reached
)

func (s RunState) String() string {
	switch s {
	case StateSelect:
		return "select"
	case StatePlaying:
		return "playing"
	case StateExploding:
		return "exploding"
	case StateGameOver:
		return "gameover"
	case StateWin:
		return "win"
	default:
		return fmt.Sprintf("RunState(%d)", int(s))
	}
}

// Ended reports whether the run reached a terminal outcome.
func (s RunState) Ended() bool {
	return s == StateGameOver || s == StateWin
}

// transitions lists every valid edge. Restart and ReturnToMenu are the only
// edges leaving a terminal state.
var transitions = map[RunState][]RunState{
	StateSelect:    {StatePlaying},
	StatePlaying:   {StateExploding, StateWin, StatePlaying, StateSelect},
	StateExploding: {StateGameOver, StatePlaying, StateSelect},
	StateGameOver:  {StatePlaying, StateSelect},
	StateWin:       {StatePlaying, StateSelect},
}

// CanTransition reports whether the machine allows from → to.
func CanTransition(from, to RunState) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// machine holds the current state and enforces the transition table.
type machine struct {
	state RunState
}

func (m *machine) to(next RunState) error {
	if !CanTransition(m.state, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.state, next)
	}
	m.state = next
	return nil
}
