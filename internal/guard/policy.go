package guard

import (
	"linkguard/pkg/domain"
	"linkguard/pkg/serrors"
	"strings"
)

// Policy lists what the guard blocks. Matching is done on the lower-cased
// ASCII hostname and the resolved path.
type Policy struct {
	// DocsDomains block any host containing one of them as a substring.
	DocsDomains []string
	// SourceHosts block the host itself and every subdomain of it.
	SourceHosts []string
	// ProductHosts block the exact host, but only under DocsPathPrefix.
	ProductHosts []string
	// DocsPathPrefix is compared as a raw prefix, so "/docs" also matches "/docsearch".
	DocsPathPrefix string
	// FailMode decides the outcome for candidates that cannot be resolved.
	FailMode domain.FailMode
}

// DefaultPolicy returns the policy the product ships with.
func DefaultPolicy() Policy {
	return Policy{
		DocsDomains:    []string{"thingsboard.io"},
		SourceHosts:    []string{"github.com"},
		ProductHosts:   []string{"hospicare.io"},
		DocsPathPrefix: "/docs",
		FailMode:       domain.FailOpen,
	}
}

// ParseFailMode converts a configuration value to a FailMode. The empty
// string selects FailOpen.
func ParseFailMode(s string) (domain.FailMode, error) {
	switch domain.FailMode(strings.ToUpper(strings.TrimSpace(s))) {
	case "", domain.FailOpen:
		return domain.FailOpen, nil
	case domain.FailClosed:
		return domain.FailClosed, nil
	default:
		return "", serrors.With(serrors.ErrBadRequest, "unknown fail mode %q", s)
	}
}

// normalized returns a copy of p with host entries trimmed, lower-cased and
// stripped of a trailing dot. Empty entries are dropped so they can never
// match every host. An empty DocsPathPrefix is rejected while product hosts
// are configured, since it would block every page of those hosts.
func (p Policy) normalized() (Policy, error) {
	mode, err := ParseFailMode(string(p.FailMode))
	if err != nil {
		return Policy{}, err
	}

	out := Policy{
		DocsDomains:    normalizeHosts(p.DocsDomains),
		SourceHosts:    normalizeHosts(p.SourceHosts),
		ProductHosts:   normalizeHosts(p.ProductHosts),
		DocsPathPrefix: strings.TrimSpace(p.DocsPathPrefix),
		FailMode:       mode,
	}
	if len(out.ProductHosts) > 0 && out.DocsPathPrefix == "" {
		return Policy{}, serrors.With(serrors.ErrBadRequest, "docs path prefix is required with product hosts")
	}

	return out, nil
}

func normalizeHosts(in []string) []string {
	out := make([]string, 0, len(in))
	for _, h := range in {
		h = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(h)), ".")
		if h != "" {
			out = append(out, h)
		}
	}

	return out
}

// match returns the first rule host and paths trigger. Any of paths
// matching the docs prefix is enough.
func (p Policy) match(host string, paths ...string) domain.Rule {
	for _, d := range p.DocsDomains {
		if strings.Contains(host, d) {
			return domain.RuleDocsDomain
		}
	}

	for _, s := range p.SourceHosts {
		if host == s || strings.HasSuffix(host, "."+s) {
			return domain.RuleSourceHost
		}
	}

	for _, h := range p.ProductHosts {
		if host != h {
			continue
		}
		for _, path := range paths {
			if strings.HasPrefix(path, p.DocsPathPrefix) {
				return domain.RuleProductDocs
			}
		}
	}

	return domain.RuleNone
}
