package audit_test

import (
	"context"
	"errors"
	"linkguard/internal/audit"
	"linkguard/internal/guard"
	"linkguard/pkg/domain"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

func newGuard(t *testing.T) guard.Guard {
	t.Helper()

	g, err := guard.New(guard.Options{Origin: "https://hospicare.io", Policy: guard.DefaultPolicy()})
	require.NoError(t, err)

	return g
}

func TestAudit(t *testing.T) {
	const doc = `<html><body>
<a href="https://github.com/org/repo">repo</a>
<a href="https://GitHub.com/org/repo/#readme">repo again</a>
<a href="/docs/intro">docs</a>
<a href="/app/home">app</a>
<a href="https://example.com">elsewhere</a>
<a name="top">no href</a>
<a href="http://exa mple.com">broken</a>
<p><a href="https://thingsboard.io"><span>tb</span></a>
</body></html>`

	r, err := audit.Audit(context.Background(), strings.NewReader(doc), newGuard(t))
	require.NoError(t, err)

	require.Equal(t, 7, r.Anchors)
	require.Equal(t, 4, r.Blocked)
	require.Len(t, r.Findings, 3)

	gh := r.Findings[0]
	require.Equal(t, "https://github.com/org/repo", gh.Key)
	require.Equal(t, 2, gh.Occurrences)
	require.Equal(t, []string{"https://github.com/org/repo", "https://GitHub.com/org/repo/#readme"}, gh.Hrefs)
	require.Equal(t, domain.RuleSourceHost, gh.Decision.Rule)

	require.Equal(t, "https://hospicare.io/docs/intro", r.Findings[1].Key)
	require.Equal(t, domain.RuleProductDocs, r.Findings[1].Decision.Rule)

	require.Equal(t, "https://thingsboard.io/", r.Findings[2].Key)
	require.Equal(t, domain.RuleDocsDomain, r.Findings[2].Decision.Rule)
}

func TestAudit_NoAnchors(t *testing.T) {
	r, err := audit.Audit(context.Background(), strings.NewReader("<p>nothing here"), newGuard(t))
	require.NoError(t, err)
	require.Zero(t, r.Anchors)
	require.NotNil(t, r.Findings)
	require.Empty(t, r.Findings)
}

func TestAudit_ReadError(t *testing.T) {
	boom := errors.New("disk gone")
	_, err := audit.Audit(context.Background(), iotest.ErrReader(boom), newGuard(t))
	require.ErrorIs(t, err, boom)
}
