package redact

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
)

// MaxPatternLength bounds the source pattern text accepted by the
// compiler, guarding against pathological input before it ever reaches
// regexp.Compile.
const MaxPatternLength = 4096

// maxCompiledPatternLength approximates the "compiled-size ceiling" spec.md
// §4.3 calls for. Go's regexp package (RE2) does not expose the size of its
// compiled program, unlike some backtracking engines that report byte-code
// size directly; the pattern's own source length is used as a conservative
// proxy, since RE2's program size grows with source length and contains no
// unbounded repetition-count blowup the way backtracking engines can.
const maxCompiledPatternLength = 10 * 1024 * 1024

// Validator is a pure, stateless post-match check.
type Validator func(matched string) bool

// CompiledRule binds a compiled matcher to its rule's retained metadata.
type CompiledRule struct {
	Name                   string
	Matcher                *regexp.Regexp
	ReplaceWith            string
	OptIn                  bool
	ProgrammaticValidation bool
	Validator              Validator // nil if none registered under Name
}

// CompiledRuleSet is an ordered sequence of CompiledRules. Order is the
// order RuleComposer emitted them in, which fixes the tie-break used by the
// resolver (see resolver.go).
type CompiledRuleSet struct {
	Rules []*CompiledRule
}

// Fingerprint returns a stable digest of the active rule set: every rule
// name and its compiled pattern source, in Rules order. Callers that
// memoize sanitize() output by content hash (internal/cache) mix this in
// so a config reload that changes the active rules invalidates stale cache
// entries implicitly, instead of serving output compiled under a rule set
// that no longer applies.
func (rs *CompiledRuleSet) Fingerprint() string {
	h := sha256.New()
	for _, r := range rs.Rules {
		h.Write([]byte(r.Name))
		h.Write([]byte{0})
		h.Write([]byte(r.Matcher.String()))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// CompileRules compiles each active Rule into a CompiledRule, honoring
// Multiline and DotMatchesNewLine via Go's inline (?m)/(?s) flags. A rule
// whose pattern fails to compile, exceeds the length caps, or can match an
// empty string is dropped with a warning; it never prevents the remaining
// rules from being usable.
func CompileRules(active []Rule, registry map[string]Validator, warner Warner) *CompiledRuleSet {
	if warner == nil {
		warner = NopWarner{}
	}

	compiled := make([]*CompiledRule, 0, len(active))
	for _, r := range active {
		if len(r.Pattern) > MaxPatternLength {
			warner.Warn(WarnPatternCompilation, "pattern exceeds maximum length, rule dropped", map[string]any{"name": r.Name, "length": len(r.Pattern)})
			continue
		}

		src := inlineFlags(r) + r.Pattern
		re, err := regexp.Compile(src)
		if err != nil {
			warner.Warn(WarnPatternCompilation, "pattern failed to compile, rule dropped", map[string]any{"name": r.Name, "error": err.Error()})
			continue
		}

		if len(re.String()) > maxCompiledPatternLength {
			warner.Warn(WarnPatternCompilation, "pattern exceeds compiled-size ceiling, rule dropped", map[string]any{"name": r.Name})
			continue
		}

		if matchesEmptyString(re) {
			warner.Warn(WarnPatternCompilation, "pattern can match an empty string, rule dropped", map[string]any{"name": r.Name})
			continue
		}

		cr := &CompiledRule{
			Name:                   r.Name,
			Matcher:                re,
			ReplaceWith:            r.ReplaceWith,
			OptIn:                  r.OptIn,
			ProgrammaticValidation: r.ProgrammaticValidation,
		}
		if r.ProgrammaticValidation {
			// A missing validator is silent (ValidatorMissing, spec.md §7):
			// the match is simply treated as approved downstream.
			cr.Validator = registry[r.Name]
		}
		compiled = append(compiled, cr)
	}

	return &CompiledRuleSet{Rules: compiled}
}

func inlineFlags(r Rule) string {
	flags := ""
	if r.Multiline {
		flags += "m"
	}
	if r.DotMatchesNewLine {
		flags += "s"
	}
	if flags == "" {
		return ""
	}
	return "(?" + flags + ")"
}

// matchesEmptyString rejects patterns able to match a zero-length
// substring, per the compile-time policy spec.md §9 recommends for the
// open question on empty-match patterns.
func matchesEmptyString(re *regexp.Regexp) bool {
	return re.MatchString("")
}
