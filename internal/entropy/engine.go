package entropy

import (
	"strings"
	"time"

	"github.com/quietline/sanitize/internal/fingerprint"
	"github.com/quietline/sanitize/internal/redact"
)

// RuleName is the fixed rule_name reported on every RedactionMatch this
// engine produces, since there is no rule document to name the match after.
const RuleName = "high_entropy_token"

// DefaultMinLength and DefaultThreshold match the teacher's own
// feature-hash heuristics in spirit: long enough to rule out short words,
// high enough to rule out ordinary prose (English text sits well under 4.5
// bits/char; base64/hex secrets routinely exceed 5).
const (
	DefaultMinLength = 20
	DefaultThreshold = 4.5
)

// nearMissBand widens the candidate window below Threshold so borderline
// tokens (a secret whose entropy dipped slightly on a later run, a
// truncated copy of one flagged before) still get a cross-run lookup
// instead of being ignored outright.
const nearMissBand = 0.5

// seenBeforeDistance is the vec0 L2-distance cutoff under which a
// candidate token is considered a repeat of a previously recorded finding.
// FeatureHash vectors are unit-normalized, so identical tokens score 0 and
// unrelated ones typically score well above this.
const seenBeforeDistance = 0.1

// Engine implements redact.Engine by flagging high-entropy whitespace-
// delimited tokens instead of consulting a rule document. It ignores the
// CompiledRuleSet argument entirely — the pluggable-engine design note in
// spec.md §4.7 anticipates exactly this.
type Engine struct {
	MinLength   int
	Threshold   float64
	Placeholder string

	// Store, if non-nil, persists every retained finding's feature hash and
	// consults it for near-miss tokens that fall just under Threshold but
	// closely match something flagged on a previous run.
	Store *fingerprint.Store
}

// New returns an Engine configured with the given sensitivity. Zero values
// fall back to DefaultMinLength/DefaultThreshold/"[HIGH_ENTROPY_REDACTED]".
func New(minLength int, threshold float64, placeholder string) *Engine {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if placeholder == "" {
		placeholder = "[HIGH_ENTROPY_REDACTED]"
	}
	return &Engine{MinLength: minLength, Threshold: threshold, Placeholder: placeholder}
}

// Sanitize implements redact.Engine. The ruleset argument is accepted only
// to satisfy the interface; this engine never consults it.
func (e *Engine) Sanitize(input []byte, _ *redact.CompiledRuleSet) (string, []redact.RedactionMatch, error) {
	stripped := redact.StripAnsi(string(input))

	tokens := e.findTokens(stripped)

	var out strings.Builder
	matches := make([]redact.RedactionMatch, 0, len(tokens))
	cursor := 0
	for _, t := range tokens {
		out.WriteString(stripped[cursor:t.start])
		out.WriteString(e.Placeholder)
		matches = append(matches, redact.RedactionMatch{
			RuleName:  RuleName,
			Original:  t.token,
			Sanitized: e.Placeholder,
			Start:     t.start,
			End:       t.end,
		})
		cursor = t.end

		if e.Store != nil {
			_, _ = e.Store.Record(RuleName, t.token, time.Now())
		}
	}
	out.WriteString(stripped[cursor:])

	return out.String(), matches, nil
}

// findTokens applies the entropy threshold to every candidate token, then,
// when a Store is configured, promotes near-miss tokens (entropy within
// nearMissBand of Threshold) that match a prior finding within
// seenBeforeDistance.
func (e *Engine) findTokens(stripped string) []tokenMatch {
	candidates := findCandidateTokens(stripped, e.MinLength)

	var found []tokenMatch
	for _, c := range candidates {
		if c.entropy >= e.Threshold {
			found = append(found, c.tokenMatch)
			continue
		}
		if e.Store == nil || c.entropy < e.Threshold-nearMissBand {
			continue
		}
		if e.seenBefore(c.token) {
			found = append(found, c.tokenMatch)
		}
	}
	return found
}

func (e *Engine) seenBefore(token string) bool {
	neighbors, err := e.Store.Search(token, 1)
	if err != nil || len(neighbors) == 0 {
		return false
	}
	return neighbors[0].Distance <= seenBeforeDistance
}

var _ redact.Engine = (*Engine)(nil)
