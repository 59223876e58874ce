package playback

// State is the lifecycle state of a playback session.
//
// Transitions:
//
//	Idle → Loading → Ready → Playing ⇄ Paused → Ended
//	Loading → Error (catalog failure with nothing cached; Retry re-enters Loading)
type State int

// Session states.
const (
	StateIdle State = iota
	StateLoading
	StateReady
	StatePlaying
	StatePaused
	StateEnded
	StateError
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Direction selects the advance target relative to the current chapter.
type Direction int

// Advance directions.
const (
	Next Direction = iota
	Previous
)
