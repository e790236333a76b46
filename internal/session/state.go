package session

// State is the quiz session's rendering lifecycle.
type State int

const (
	// Idle: no panel shown, no question held.
	Idle State = iota
	// Showing: question visible, countdown running, selections accepted.
	Showing
	// Answered: resolved by selection or expiry; further input ignored.
	Answered
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Showing:
		return "showing"
	case Answered:
		return "answered"
	default:
		return "unknown"
	}
}
