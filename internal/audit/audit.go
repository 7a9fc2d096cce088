// Package audit scans HTML documents for anchors the guard would block.
package audit

import (
	"context"
	"fmt"
	"io"
	"linkguard/internal/guard"
	"linkguard/pkg/dom"
	"linkguard/pkg/domain"
	"linkguard/pkg/logger"

	"go.uber.org/zap"
)

// Finding is one blocked link target, possibly referenced several times.
type Finding struct {
	// Key is the normalized resolved URL findings are grouped by.
	Key string `json:"key"`
	// Decision is the decision for the first occurrence.
	Decision domain.Decision `json:"decision"`
	// Hrefs are the distinct raw href values that resolved to Key.
	Hrefs []string `json:"hrefs"`
	// Occurrences counts anchors pointing at Key.
	Occurrences int `json:"occurrences"`
}

// Report is the result of auditing one document.
type Report struct {
	// Anchors is the number of a[href] elements found.
	Anchors int `json:"anchors"`
	// Blocked is the number of anchors the guard blocks.
	Blocked int `json:"blocked"`
	// Findings groups blocked anchors by target, in document order.
	Findings []Finding `json:"findings"`
}

// Audit parses the HTML read from r and evaluates every a[href] with g.
func Audit(ctx context.Context, r io.Reader, g guard.Guard) (Report, error) {
	doc, err := dom.Parse(r)
	if err != nil {
		return Report{}, fmt.Errorf("could not read document: %w", err)
	}

	report := Report{Findings: []Finding{}}
	index := map[string]int{}

	for _, a := range doc.ElementsByTagName("a") {
		href, ok := a.Attr("href")
		if !ok {
			continue
		}
		report.Anchors++

		d := g.Evaluate(ctx, href)
		if !d.Blocked {
			continue
		}
		report.Blocked++

		key := href
		if d.URL != "" {
			if n, err := NormalizeURL(d.URL); err == nil {
				key = n
			}
		}

		i, seen := index[key]
		if !seen {
			i = len(report.Findings)
			index[key] = i
			report.Findings = append(report.Findings, Finding{Key: key, Decision: d})
		}
		f := &report.Findings[i]
		f.Occurrences++
		if !contains(f.Hrefs, href) {
			f.Hrefs = append(f.Hrefs, href)
		}
	}

	logger.Debug(ctx, "document audited",
		zap.Int("anchors", report.Anchors),
		zap.Int("blocked", report.Blocked),
		zap.Int("findings", len(report.Findings)))

	return report, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}
