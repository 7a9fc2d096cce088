package dom

import (
	"context"
	"sync"
)

// Listener receives events. It returns true when it handled the event.
type Listener interface {
	HandleEvent(ctx context.Context, ev *Event) bool
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(ctx context.Context, ev *Event) bool

func (f ListenerFunc) HandleEvent(ctx context.Context, ev *Event) bool { return f(ctx, ev) }

type registration struct {
	id       uint64
	listener Listener
}

type listenerKey struct {
	typ   string
	phase Phase
}

// Dispatcher delivers events to registered listeners. It is safe for
// concurrent use; a dispatch sees the listeners registered when it started.
type Dispatcher struct {
	mu        sync.RWMutex
	nextID    uint64
	listeners map[listenerKey][]registration
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: map[listenerKey][]registration{}}
}

// Register adds l for events of type typ in phase and returns a function
// removing it again. Calling the returned function more than once is a no-op.
func (d *Dispatcher) Register(typ string, phase Phase, l Listener) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := d.nextID
	key := listenerKey{typ: typ, phase: phase}
	d.listeners[key] = append(d.listeners[key], registration{id: id, listener: l})

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()

		regs := d.listeners[key]
		for i, r := range regs {
			if r.id == id {
				d.listeners[key] = append(regs[:i:i], regs[i+1:]...)

				return
			}
		}
	}
}

// Dispatch runs the capture listeners for ev.Type, then the bubble listeners
// unless propagation was stopped. It reports whether any listener handled
// the event.
func (d *Dispatcher) Dispatch(ctx context.Context, ev *Event) bool {
	handled := false
	for _, phase := range []Phase{PhaseCapture, PhaseBubble} {
		if ev.propagationStopped {
			break
		}
		for _, r := range d.snapshot(ev.Type, phase) {
			if r.listener.HandleEvent(ctx, ev) {
				handled = true
			}
			if ev.immediateStopped {
				break
			}
		}
	}

	return handled
}

func (d *Dispatcher) snapshot(typ string, phase Phase) []registration {
	d.mu.RLock()
	defer d.mu.RUnlock()

	regs := d.listeners[listenerKey{typ: typ, phase: phase}]
	out := make([]registration, len(regs))
	copy(out, regs)

	return out
}
