package dom

// Event types understood by the guard.
const (
	EventClick = "click"
)

// Phase selects when a listener runs during dispatch.
type Phase int

const (
	// PhaseCapture listeners run first, before any bubble listener.
	PhaseCapture Phase = iota
	// PhaseBubble listeners run after capture unless propagation was stopped.
	PhaseBubble
)

func (p Phase) String() string {
	switch p {
	case PhaseCapture:
		return "capture"
	case PhaseBubble:
		return "bubble"
	default:
		return "unknown"
	}
}

// Event is the record delivered to listeners. Flags only ever go from false
// to true.
type Event struct {
	Type   string
	Target Element

	defaultPrevented   bool
	propagationStopped bool
	immediateStopped   bool
}

// NewEvent returns an event of type typ aimed at target.
func NewEvent(typ string, target Element) *Event {
	return &Event{Type: typ, Target: target}
}

// PreventDefault cancels the default action, here the navigation.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// StopPropagation keeps the event from reaching later phases.
func (e *Event) StopPropagation() { e.propagationStopped = true }

// StopImmediatePropagation also skips the remaining listeners of the
// current phase.
func (e *Event) StopImmediatePropagation() {
	e.propagationStopped = true
	e.immediateStopped = true
}

func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

func (e *Event) PropagationStopped() bool { return e.propagationStopped }
