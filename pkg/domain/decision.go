package domain

// Rule names the policy rule that produced a decision.
type Rule string

const (
	// RuleNone means no blocking rule matched and navigation is allowed.
	RuleNone Rule = "NONE"
	// RuleDocsDomain means the host contains a public documentation domain.
	RuleDocsDomain Rule = "DOCS_DOMAIN"
	// RuleSourceHost means the host is a source-hosting domain or one of its subdomains.
	RuleSourceHost Rule = "SOURCE_HOST"
	// RuleProductDocs means the host is the product domain and the path is under the docs prefix.
	RuleProductDocs Rule = "PRODUCT_DOCS"
	// RuleUnparseable means the candidate could not be resolved to a URL.
	// Whether it is blocked depends on the configured FailMode.
	RuleUnparseable Rule = "UNPARSEABLE"
)

// FailMode decides what happens to candidates that cannot be parsed.
type FailMode string

const (
	// FailOpen allows navigation on parse failure.
	FailOpen FailMode = "OPEN"
	// FailClosed blocks navigation on parse failure.
	FailClosed FailMode = "CLOSED"
)

// Decision is the outcome of evaluating a single candidate URL.
type Decision struct {
	// Candidate is the raw input as received.
	Candidate string `json:"candidate"`
	// URL is the candidate resolved against the document origin; empty when unparseable.
	URL string `json:"url,omitempty"`
	// Host is the lower-cased, ASCII hostname used for matching.
	Host string `json:"host,omitempty"`
	// Blocked reports whether navigation must be suppressed.
	Blocked bool `json:"blocked"`
	// Rule is the rule that produced the decision.
	Rule Rule `json:"rule"`
}
