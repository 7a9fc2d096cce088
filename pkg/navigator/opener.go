// Package navigator models the "open new window" primitive as an explicit,
// injectable interface so that callers can wrap it instead of patching it.
package navigator

import (
	"context"
	"fmt"
	"linkguard/pkg/serrors"
	"net/url"
	"time"
)

// Request describes a navigation to open.
type Request struct {
	URL      string
	Target   string
	Features string
}

// Window is the handle of an opened navigation. A nil *Window is the null
// handle returned when nothing was opened.
type Window struct {
	URL      string
	Target   string
	OpenedAt time.Time
}

// Opener opens navigations.
//
//go:generate mockgen -package mocknavigator -source=opener.go -destination=mock/mocknavigator.go *
type Opener interface {
	Open(ctx context.Context, req Request) (*Window, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context, req Request) (*Window, error)

func (f OpenerFunc) Open(ctx context.Context, req Request) (*Window, error) {
	return f(ctx, req)
}

// RedirectOpener is the server-side primitive: it resolves the request URL
// against Origin and returns a window describing where to redirect. Only
// http(s) targets with a host can be opened.
type RedirectOpener struct {
	Origin *url.URL
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewRedirectOpener parses origin and returns a RedirectOpener for it.
func NewRedirectOpener(origin string) (*RedirectOpener, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid origin")
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "origin must be absolute, got %q", origin)
	}

	return &RedirectOpener{Origin: &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}}, nil
}

func (o *RedirectOpener) Open(_ context.Context, req Request) (*Window, error) {
	ref, err := url.Parse(req.URL)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "could not parse navigation URL")
	}

	u := o.Origin.ResolveReference(ref)
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "unsupported navigation target %q", req.URL)
	}

	target := req.Target
	if target == "" {
		target = "_blank"
	}

	now := time.Now
	if o.Now != nil {
		now = o.Now
	}

	return &Window{
		URL:      u.String(),
		Target:   target,
		OpenedAt: now(),
	}, nil
}

func (w *Window) String() string {
	if w == nil {
		return "<null window>"
	}

	return fmt.Sprintf("%s (%s)", w.URL, w.Target)
}
