package dialog

// State is the caller-echoed conversation state. The machine keeps no session
// memory of its own besides the per-username failure counter, so every turn
// must carry the state back in.
type State string

const (
	StateInitial        State = "initial"
	StateAwaitingChoice State = "awaiting_choice"
	StateAwaitingStory  State = "awaiting_story"
	StateComplete       State = "complete"
	StateInvalidRepeat  State = "invalid_repeat"
)

// ParseState maps a caller-supplied string onto a known state. Anything
// unrecognized is treated as a fresh conversation.
func ParseState(s string) State {
	switch State(s) {
	case StateAwaitingChoice, StateAwaitingStory, StateComplete, StateInvalidRepeat:
		return State(s)
	default:
		return StateInitial
	}
}
