// Package intercept attaches the navigation guard to the two places
// navigation can start: the window opener and document clicks.
package intercept

import (
	"context"
	"fmt"
	"linkguard/internal/guard"
	"linkguard/pkg/dom"
	"linkguard/pkg/logger"
	"linkguard/pkg/navigator"

	"go.uber.org/zap"
)

// GuardedOpener delegates to the wrapped Opener unless the guard blocks the
// target, in which case it returns the null handle.
type GuardedOpener struct {
	guard guard.Guard
	next  navigator.Opener
}

var _ navigator.Opener = (*GuardedOpener)(nil)

// NewGuardedOpener wraps next with g.
func NewGuardedOpener(g guard.Guard, next navigator.Opener) *GuardedOpener {
	return &GuardedOpener{guard: g, next: next}
}

// Open returns (nil, nil) for blocked targets without calling the wrapped
// opener. Errors of the wrapped opener are wrapped and returned.
func (o *GuardedOpener) Open(ctx context.Context, req navigator.Request) (*navigator.Window, error) {
	if req.URL != "" {
		if d := o.guard.Evaluate(ctx, req.URL); d.Blocked {
			logger.Info(ctx, "window open suppressed",
				zap.String("url", req.URL),
				zap.String("rule", string(d.Rule)))

			return nil, nil //nolint: nilnil
		}
	}

	w, err := o.next.Open(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("could not open window: %w", err)
	}

	return w, nil
}

// ClickListener cancels clicks on anchors whose href the guard blocks.
type ClickListener struct {
	guard guard.Guard
}

var _ dom.Listener = (*ClickListener)(nil)

// NewClickListener returns a ClickListener backed by g.
func NewClickListener(g guard.Guard) *ClickListener {
	return &ClickListener{guard: g}
}

// HandleEvent looks for the closest a[href] around the click target. When
// its href is blocked the default action is prevented, propagation is
// stopped and the event is reported as handled.
func (l *ClickListener) HandleEvent(ctx context.Context, ev *dom.Event) bool {
	if ev.Type != dom.EventClick {
		return false
	}

	link := dom.Closest(ev.Target, "a", "href")
	if link == nil {
		return false
	}
	href, _ := link.Attr("href")
	if href == "" {
		return false
	}

	d := l.guard.Evaluate(ctx, href)
	if !d.Blocked {
		return false
	}

	ev.PreventDefault()
	ev.StopPropagation()
	logger.Info(ctx, "link click suppressed",
		zap.String("href", href),
		zap.String("rule", string(d.Rule)))

	return true
}

// Install registers the click listener in the capture phase of d and
// returns the guarded replacement for next. Call it once at start-up and
// hand the returned Opener to everything that opens windows.
func Install(d *dom.Dispatcher, g guard.Guard, next navigator.Opener) navigator.Opener {
	d.Register(dom.EventClick, dom.PhaseCapture, NewClickListener(g))

	return NewGuardedOpener(g, next)
}
