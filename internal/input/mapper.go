// Package input turns raw host events into jump intents.
// Hosts (terminal, desktop window) translate their native events into Event
// values; the Mapper decides whether an event is a jump and whether the host
// should stop it from reaching anything else.
package input

// Kind identifies the source of a raw event.
type Kind int

const (
	KindKey Kind = iota
	KindPointerDown
	KindTouchStart
)

// String returns the event kind name.
func (k Kind) String() string {
	switch k {
	case KindKey:
		return "key"
	case KindPointerDown:
		return "pointerdown"
	case KindTouchStart:
		return "touchstart"
	default:
		return "unknown"
	}
}

// Button identifies a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Key names understood by the mapper. Hosts normalize to these.
const (
	KeySpace = "space"
	KeyUp    = "up"
)

// Event is a host-neutral input event.
type Event struct {
	Kind   Kind
	Key    string // normalized key name for KindKey
	Button Button // pointer button for KindPointerDown
	// OverControl is set when the event targets an interactive control
	// such as a button; those events never become jumps.
	OverControl bool
}

// Decision is the mapper's verdict on one event.
type Decision struct {
	Jump bool
}

// Mapper maps events to decisions. It holds no state between events and
// applies no cooldown; double jumps are stopped by the physics guard.
type Mapper struct{}

// NewMapper creates a mapper.
func NewMapper() Mapper {
	return Mapper{}
}

// Map classifies a single event.
func (Mapper) Map(ev Event) Decision {
	if ev.OverControl {
		return Decision{}
	}

	switch ev.Kind {
	case KindKey:
		switch ev.Key {
		case KeySpace:
			return Decision{Jump: true}
		case KeyUp:
			return Decision{Jump: true}
		}
	case KindPointerDown:
		// Only the primary button jumps
		if ev.Button == ButtonLeft {
			return Decision{Jump: true}
		}
	case KindTouchStart:
		return Decision{Jump: true}
	}

	return Decision{}
}
