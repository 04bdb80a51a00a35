package linkcheck

import "context"

//go:generate mockgen -source=prober.go -destination=../mocks/linkcheck_mocks.go -package=mocks

// Verdict is the outcome of a probe
type Verdict string

const (
	Alive Verdict = "alive"
	Dead  Verdict = "dead"
)

// Result describes a single probe
type Result struct {
	Verdict    Verdict `json:"verdict"`
	Rule       string  `json:"rule,omitempty"`
	Reason     string  `json:"reason"`
	StatusCode int     `json:"status_code,omitempty"`
	FinalURL   string  `json:"final_url,omitempty"`
}

// IsAlive reports whether the link was classified alive
func (r Result) IsAlive() bool {
	return r.Verdict == Alive
}

// Prober classifies a link
type Prober interface {
	Probe(ctx context.Context, rawURL string) Result
}
