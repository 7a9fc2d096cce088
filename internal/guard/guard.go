// Package guard decides whether navigation to a candidate URL must be
// suppressed. The decision is a pure function of the candidate, the document
// origin and the configured Policy.
package guard

import (
	"context"
	"fmt"
	"linkguard/internal/config"
	"linkguard/pkg/domain"
	"linkguard/pkg/logger"
	"linkguard/pkg/serrors"
	"net/url"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// Guard is the navigation guard service. Implementations are safe for
// concurrent use and never fail a decision.
//
//go:generate mockgen -package mockguard -source=guard.go -destination=mock/mockguard.go *
type Guard interface {
	// IsBlocked reports whether navigation to candidate must be suppressed.
	IsBlocked(candidate string) bool
	// Evaluate returns the full decision for candidate.
	Evaluate(ctx context.Context, candidate string) domain.Decision
}

// Options configure a Guard.
type Options struct {
	// Origin is the absolute http(s) origin relative candidates resolve against.
	// Any path, query or fragment is dropped.
	Origin string
	// Policy is the blocking policy.
	Policy Policy
	// MeterProvider records decision counts. A no-op provider is used when nil.
	MeterProvider metric.MeterProvider
	// TracerProvider traces evaluations. A no-op provider is used when nil.
	TracerProvider trace.TracerProvider
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config, mp metric.MeterProvider) (Options, error) {
	mode, err := ParseFailMode(cfg.Guard.FailMode)
	if err != nil {
		return Options{}, fmt.Errorf("invalid guard config: %w", err)
	}

	return Options{
		Origin: cfg.Guard.Origin,
		Policy: Policy{
			DocsDomains:    cfg.Guard.DocsDomains,
			SourceHosts:    cfg.Guard.SourceHosts,
			ProductHosts:   cfg.Guard.ProductHosts,
			DocsPathPrefix: cfg.Guard.DocsPathPrefix,
			FailMode:       mode,
		},
		MeterProvider: mp,
	}, nil
}

type guard struct {
	origin    *url.URL
	policy    Policy
	decisions metric.Int64Counter
	tracer    trace.Tracer
}

// New validates opts and returns a Guard. Only construction can fail: an
// origin that is not an absolute http(s) URL or an unknown fail mode is a
// bad request.
func New(opts Options) (Guard, error) {
	origin, err := url.Parse(opts.Origin)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid origin")
	}
	if (origin.Scheme != "http" && origin.Scheme != "https") || origin.Host == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "origin must be an absolute http(s) URL, got %q", opts.Origin)
	}
	origin = &url.URL{Scheme: origin.Scheme, Host: origin.Host, Path: "/"}

	policy, err := opts.Policy.normalized()
	if err != nil {
		return nil, err
	}

	mp := opts.MeterProvider
	if mp == nil {
		mp = noop.NewMeterProvider()
	}
	decisions, err := mp.Meter("linkguard/internal/guard").Int64Counter(
		"linkguard.guard.decisions",
		metric.WithDescription("Navigation decisions by rule and outcome."),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create decisions counter: %w", err)
	}

	tp := opts.TracerProvider
	if tp == nil {
		tp = tracenoop.NewTracerProvider()
	}

	return &guard{
		origin:    origin,
		policy:    policy,
		decisions: decisions,
		tracer:    tp.Tracer("linkguard/internal/guard"),
	}, nil
}

func (g *guard) IsBlocked(candidate string) bool {
	return g.Evaluate(context.Background(), candidate).Blocked
}

func (g *guard) Evaluate(ctx context.Context, candidate string) domain.Decision {
	ctx, span := g.tracer.Start(ctx, "guard.Evaluate")
	defer span.End()

	d := domain.Decision{Candidate: candidate, Rule: domain.RuleNone}

	u, host, err := resolve(g.origin, candidate)
	if err != nil {
		span.RecordError(err)
		d.Rule = domain.RuleUnparseable
		d.Blocked = g.policy.FailMode == domain.FailClosed
		logger.Debug(ctx, "could not resolve navigation candidate",
			zap.String("candidate", candidate),
			zap.Bool("blocked", d.Blocked),
			zap.Error(err))
	} else {
		d.URL = u.String()
		d.Host = host
		// the escaped form is what a browser exposes; the decoded form catches
		// prefixes hidden behind percent-encoding.
		d.Rule = g.policy.match(host, u.EscapedPath(), u.Path)
		d.Blocked = d.Rule != domain.RuleNone
		if d.Blocked {
			logger.Debug(ctx, "navigation blocked",
				zap.String("url", d.URL),
				zap.String("rule", string(d.Rule)))
		}
	}

	attrs := []attribute.KeyValue{
		attribute.String("rule", string(d.Rule)),
		attribute.Bool("blocked", d.Blocked),
	}
	span.SetAttributes(append(attrs, attribute.String("host", d.Host))...)
	g.decisions.Add(ctx, 1, metric.WithAttributes(attrs...))

	return d
}
