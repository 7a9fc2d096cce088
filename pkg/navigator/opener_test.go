package navigator_test

import (
	"context"
	"linkguard/pkg/navigator"
	"linkguard/pkg/serrors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRedirectOpener_Open(t *testing.T) {
	o, err := navigator.NewRedirectOpener("https://hospicare.io/app/home?tab=1")
	require.NoError(t, err)
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	o.Now = func() time.Time { return fixed }

	cases := []struct {
		name   string
		req    navigator.Request
		url    string
		target string
	}{
		{name: "absolute", req: navigator.Request{URL: "https://example.com/a"}, url: "https://example.com/a", target: "_blank"},
		{name: "relative", req: navigator.Request{URL: "app/devices", Target: "_self"}, url: "https://hospicare.io/app/devices", target: "_self"},
		{name: "root relative", req: navigator.Request{URL: "/app/x?y=1#z"}, url: "https://hospicare.io/app/x?y=1#z", target: "_blank"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, err := o.Open(context.Background(), tc.req)
			require.NoError(t, err)
			require.Equal(t, tc.url, w.URL)
			require.Equal(t, tc.target, w.Target)
			require.Equal(t, fixed, w.OpenedAt)
		})
	}
}

func TestRedirectOpener_InvalidURL(t *testing.T) {
	o, err := navigator.NewRedirectOpener("https://hospicare.io")
	require.NoError(t, err)

	for _, u := range []string{"http://exa mple.com", "javascript:alert(1)", "mailto:dev@hospicare.io", "https:///x"} {
		w, err := o.Open(context.Background(), navigator.Request{URL: u})
		require.Nil(t, w, u)
		require.ErrorIs(t, err, serrors.ErrBadRequest, u)
	}
}

func TestNewRedirectOpener_InvalidOrigin(t *testing.T) {
	_, err := navigator.NewRedirectOpener("/relative")
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	_, err = navigator.NewRedirectOpener("http://exa mple.com")
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestOpenerFunc(t *testing.T) {
	var got navigator.Request
	f := navigator.OpenerFunc(func(_ context.Context, req navigator.Request) (*navigator.Window, error) {
		got = req

		return nil, nil
	})

	w, err := f.Open(context.Background(), navigator.Request{URL: "/x", Target: "t", Features: "noopener"})
	require.NoError(t, err)
	require.Nil(t, w)
	require.Equal(t, navigator.Request{URL: "/x", Target: "t", Features: "noopener"}, got)
}

func TestWindowString(t *testing.T) {
	var w *navigator.Window
	require.Equal(t, "<null window>", w.String())
	require.Equal(t, "https://example.com (_blank)", (&navigator.Window{URL: "https://example.com", Target: "_blank"}).String())
}
