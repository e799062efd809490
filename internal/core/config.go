package core

// GameState represents the current state of a run as seen by the platform.
type GameState struct {
	Score    int  // Current score, floored
	Combo    int  // Near-miss combo counter
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the run is paused
}

// Event is something notable that happened during one step.
// Platforms use events for sound and visual feedback only.
type Event int

const (
	EventJump Event = iota + 1
	EventNearMiss
	EventScore
	EventCrash
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventJump:
		return "jump"
	case EventNearMiss:
		return "near-miss"
	case EventScore:
		return "score"
	case EventCrash:
		return "crash"
	default:
		return "unknown"
	}
}

// StepResult is returned after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the step produced the given event.
func (r StepResult) Has(e Event) bool {
	for _, ev := range r.Events {
		if ev == e {
			return true
		}
	}
	return false
}
