package audit_test

import (
	"linkguard/internal/audit"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
		ok   bool
	}{
		{name: "lowercase scheme and host; add root path", in: "HTTPS://GitHub.COM", out: "https://github.com/", ok: true},
		{name: "remove default http port", in: "http://github.com:80/org", out: "http://github.com/org", ok: true},
		{name: "remove default https port", in: "https://github.com:443/", out: "https://github.com/", ok: true},
		{name: "keep non-default port", in: "http://localhost:8080/docs", out: "http://localhost:8080/docs", ok: true},
		{name: "clean path and drop trailing slash", in: "https://hospicare.io//docs/./a/../b/", out: "https://hospicare.io/docs/b", ok: true},
		{name: "sort query keys and values", in: "https://github.com/search?q=b&p=2&q=a", out: "https://github.com/search?p=2&q=a&q=b", ok: true},
		{name: "remove fragment", in: "https://thingsboard.io/docs/#install", out: "https://thingsboard.io/docs", ok: true},
		{name: "ipv6 default port dropped", in: "https://[2001:db8::1]:443/a", out: "https://[2001:db8::1]/a", ok: true},
		{name: "ipv6 non-default port kept", in: "http://[2001:db8::1]:8080/a", out: "http://[2001:db8::1]:8080/a", ok: true},
		{name: "invalid url returns error", in: "http://exa mple.com", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := audit.NormalizeURL(tc.in)
			if !tc.ok {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.out, got)
		})
	}
}
