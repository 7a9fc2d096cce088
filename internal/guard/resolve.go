package guard

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/go-faster/errors"
	"golang.org/x/net/idna"
)

var errEmptyHost = errors.New("empty host")

// specialSchemes are the schemes a browser parses with an authority, which
// changes how backslashes and missing slashes are read.
var specialSchemes = map[string]bool{ //nolint: gochecknoglobals
	"http":  true,
	"https": true,
	"ws":    true,
	"wss":   true,
	"ftp":   true,
	"file":  true,
}

var stripNewlines = strings.NewReplacer("\t", "", "\n", "", "\r", "") //nolint: gochecknoglobals

// resolve parses candidate against origin and returns the resolved URL with
// its matching host. It reproduces the browser parser only where Go's
// net/url would otherwise read a navigation target differently.
func resolve(origin *url.URL, candidate string) (*url.URL, string, error) {
	s := stripNewlines.Replace(strings.TrimFunc(candidate, func(r rune) bool { return r <= ' ' }))

	scheme := schemeOf(s)
	if scheme == "" || specialSchemes[scheme] {
		s = decodeHost(slashBackslashes(s), scheme)
	}
	s = escapeStrayPercents(s, scheme)

	ref, err := url.Parse(s)
	if err != nil {
		return nil, "", errors.Wrap(err, "parse URL")
	}

	// "https:host" and "https:/host" have no authority for net/url.
	if specialSchemes[ref.Scheme] && ref.Scheme != "file" && ref.Host == "" {
		rest := s[len(ref.Scheme)+1:]
		if ref.Scheme == origin.Scheme && !strings.HasPrefix(rest, "//") {
			ref, err = url.Parse(rest)
		} else {
			ref, err = url.Parse(ref.Scheme + "://" + strings.TrimLeft(rest, "/"))
		}
		if err != nil {
			return nil, "", errors.Wrap(err, "parse URL")
		}
	}

	u := origin.ResolveReference(ref)

	host, err := asciiHost(u.Hostname())
	if err != nil {
		return nil, "", err
	}
	if host == "" && specialSchemes[u.Scheme] && u.Scheme != "file" {
		return nil, "", errEmptyHost
	}

	return u, host, nil
}

// schemeOf returns the lower-cased scheme of s, or "" when s is relative.
func schemeOf(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		case i > 0 && c == ':':
			return strings.ToLower(s[:i])
		default:
			return ""
		}
	}

	return ""
}

// slashBackslashes turns backslashes into slashes up to the query or fragment.
func slashBackslashes(s string) string {
	end := strings.IndexAny(s, "?#")
	if end < 0 {
		end = len(s)
	}

	return strings.ReplaceAll(s[:end], `\`, "/") + s[end:]
}

// hostRange returns the bounds of the host in s, userinfo excluded. ok is
// false when s has no authority.
func hostRange(s, scheme string) (start, end int, ok bool) {
	switch {
	case scheme != "" && strings.HasPrefix(s[len(scheme)+1:], "//"):
		start = len(scheme) + 3
	case scheme == "" && strings.HasPrefix(s, "//"):
		start = 2
	default:
		return 0, 0, false
	}

	end = len(s)
	if i := strings.IndexAny(s[start:], "/?#"); i >= 0 {
		end = start + i
	}
	start += strings.LastIndex(s[start:end], "@") + 1

	return start, end, true
}

// decodeHost percent-decodes the host part of the authority. net/url rejects
// escaped ASCII in hosts while browsers decode it. A host that would decode
// to a delimiter is left alone.
func decodeHost(s, scheme string) string {
	start, end, ok := hostRange(s, scheme)
	if !ok || !strings.Contains(s[start:end], "%") {
		return s
	}

	decoded, err := url.PathUnescape(s[start:end])
	if err != nil || strings.ContainsAny(decoded, `/?#@\`) {
		return s
	}

	return s[:start] + decoded + s[end:]
}

// escapeStrayPercents rewrites every "%" not followed by two hex digits as
// "%25", outside the host. Browsers keep such percents literally where
// net/url fails the whole parse.
func escapeStrayPercents(s, scheme string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	start, end, ok := hostRange(s, scheme)
	if !ok {
		start, end = len(s), len(s)
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && (i < start || i >= end) && !isEscape(s[i:]) {
			b.WriteString("%25")

			continue
		}
		b.WriteByte(s[i])
	}

	return b.String()
}

func isEscape(s string) bool {
	return len(s) >= 3 && isHex(s[1]) && isHex(s[2])
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// asciiHost lower-cases host, drops a trailing dot and converts IDNs to
// punycode.
func asciiHost(host string) (string, error) {
	host = strings.TrimSuffix(strings.ToLower(host), ".")

	for i := 0; i < len(host); i++ {
		if host[i] >= utf8.RuneSelf {
			ascii, err := idna.Lookup.ToASCII(host)
			if err != nil {
				return "", errors.Wrapf(err, "convert host %q to ASCII", host)
			}

			return strings.TrimSuffix(strings.ToLower(ascii), "."), nil
		}
	}

	return host, nil
}
