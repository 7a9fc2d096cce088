package intercept_test

import (
	"context"
	"errors"
	"linkguard/internal/guard"
	"linkguard/internal/intercept"
	"linkguard/pkg/dom"
	"linkguard/pkg/domain"
	"linkguard/pkg/navigator"
	"testing"

	mockguard "linkguard/internal/guard/mock"
	mocknavigator "linkguard/pkg/navigator/mock"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newGuard(t *testing.T) guard.Guard {
	t.Helper()

	g, err := guard.New(guard.Options{Origin: "https://hospicare.io", Policy: guard.DefaultPolicy()})
	require.NoError(t, err)

	return g
}

func TestGuardedOpener_BlockedReturnsNullHandle(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocknavigator.NewMockOpener(ctrl)
	// no EXPECT: the wrapped opener must never be called

	o := intercept.NewGuardedOpener(newGuard(t), next)

	for _, u := range []string{"https://github.com/org/repo", "https://thingsboard.io", "/docs/intro"} {
		w, err := o.Open(context.Background(), navigator.Request{URL: u, Target: "_blank"})
		require.NoError(t, err)
		require.Nil(t, w, "blocked %q must yield the null handle", u)
	}
}

func TestGuardedOpener_AllowedDelegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocknavigator.NewMockOpener(ctrl)

	req := navigator.Request{URL: "https://example.com/", Target: "_blank", Features: "noopener"}
	want := &navigator.Window{URL: "https://example.com/", Target: "_blank"}
	next.EXPECT().Open(gomock.Any(), req).Return(want, nil)

	w, err := intercept.NewGuardedOpener(newGuard(t), next).Open(context.Background(), req)
	require.NoError(t, err)
	require.Same(t, want, w)
}

func TestGuardedOpener_UnparseableFailsOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocknavigator.NewMockOpener(ctrl)

	req := navigator.Request{URL: "http://exa mple.com"}
	next.EXPECT().Open(gomock.Any(), req).Return(nil, nil)

	w, err := intercept.NewGuardedOpener(newGuard(t), next).Open(context.Background(), req)
	require.NoError(t, err)
	require.Nil(t, w)
}

func TestGuardedOpener_EmptyURLSkipsGuard(t *testing.T) {
	ctrl := gomock.NewController(t)
	g := mockguard.NewMockGuard(ctrl)
	next := mocknavigator.NewMockOpener(ctrl)

	blank := &navigator.Window{URL: "about:blank"}
	next.EXPECT().Open(gomock.Any(), navigator.Request{}).Return(blank, nil)

	w, err := intercept.NewGuardedOpener(g, next).Open(context.Background(), navigator.Request{})
	require.NoError(t, err)
	require.Same(t, blank, w)
}

func TestGuardedOpener_WrapsOpenerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocknavigator.NewMockOpener(ctrl)

	boom := errors.New("popup blocked by user agent")
	next.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, boom)

	_, err := intercept.NewGuardedOpener(newGuard(t), next).Open(context.Background(),
		navigator.Request{URL: "https://example.com"})
	require.ErrorIs(t, err, boom)
}

const page = `<html><body>
  <a id="blocked" href="https://github.com/org/repo"><span><img id="blocked-icon" src="gh.svg"></span></a>
  <a id="allowed" href="https://example.com/"><span><img id="allowed-icon" src="ex.svg"></span></a>
  <a id="product-docs" href="/docs/getting-started">Docs</a>
  <a id="product-app" href="/app/home">Home</a>
  <a id="empty" href="">Empty</a>
  <a id="no-href">Nothing</a>
  <p id="para">text</p>
</body></html>`

func TestClickListener_Dispatch(t *testing.T) {
	cases := []struct {
		target  string
		blocked bool
	}{
		{target: "blocked-icon", blocked: true},
		{target: "blocked", blocked: true},
		{target: "product-docs", blocked: true},
		{target: "allowed-icon", blocked: false},
		{target: "allowed", blocked: false},
		{target: "product-app", blocked: false},
		{target: "empty", blocked: false},
		{target: "no-href", blocked: false},
		{target: "para", blocked: false},
	}

	doc := dom.MustParse(page)

	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			d := dom.NewDispatcher()
			ctrl := gomock.NewController(t)
			opener := intercept.Install(d, newGuard(t), mocknavigator.NewMockOpener(ctrl))
			require.NotNil(t, opener)

			bubbled := false
			d.Register(dom.EventClick, dom.PhaseBubble, dom.ListenerFunc(func(context.Context, *dom.Event) bool {
				bubbled = true

				return false
			}))

			ev := dom.NewEvent(dom.EventClick, doc.GetElementByID(tc.target))
			handled := d.Dispatch(context.Background(), ev)

			require.Equal(t, tc.blocked, handled)
			require.Equal(t, tc.blocked, ev.DefaultPrevented())
			require.Equal(t, tc.blocked, ev.PropagationStopped())
			require.Equal(t, !tc.blocked, bubbled, "later listeners must only see allowed clicks")
		})
	}
}

func TestClickListener_IgnoresNonClickAndNonAnchors(t *testing.T) {
	ctrl := gomock.NewController(t)
	g := mockguard.NewMockGuard(ctrl)
	// no EXPECT: the guard must not be consulted

	doc := dom.MustParse(page)
	l := intercept.NewClickListener(g)

	require.False(t, l.HandleEvent(context.Background(), dom.NewEvent("keydown", doc.GetElementByID("blocked"))))
	require.False(t, l.HandleEvent(context.Background(), dom.NewEvent(dom.EventClick, doc.GetElementByID("para"))))
	require.False(t, l.HandleEvent(context.Background(), dom.NewEvent(dom.EventClick, nil)))
}

func TestClickListener_UsesDecision(t *testing.T) {
	ctrl := gomock.NewController(t)
	g := mockguard.NewMockGuard(ctrl)
	g.EXPECT().Evaluate(gomock.Any(), "https://example.com/").
		Return(domain.Decision{Candidate: "https://example.com/", Blocked: true, Rule: domain.RuleSourceHost})

	doc := dom.MustParse(page)
	ev := dom.NewEvent(dom.EventClick, doc.GetElementByID("allowed-icon"))

	require.True(t, intercept.NewClickListener(g).HandleEvent(context.Background(), ev))
	require.True(t, ev.DefaultPrevented())
}
