// Package redact implements the sanitization engine: rule ingestion,
// composition, compilation, and the matching pipeline that turns raw input
// bytes into sanitized output plus a structured match record.
package redact

import "sort"

// Rule is a named, declarative redaction directive as parsed from a rule
// document, before compilation.
type Rule struct {
	Name                   string `yaml:"name"`
	Pattern                string `yaml:"pattern"`
	ReplaceWith            string `yaml:"replace_with"`
	Description            string `yaml:"description,omitempty"`
	Multiline              bool   `yaml:"multiline"`
	DotMatchesNewLine      bool   `yaml:"dot_matches_new_line"`
	OptIn                  bool   `yaml:"opt_in"`
	ProgrammaticValidation bool   `yaml:"programmatic_validation"`
}

// RedactionMatch is a single retained detection, referring to offsets in the
// ANSI-stripped input.
type RedactionMatch struct {
	RuleName  string
	Original  string
	Sanitized string
	Start     int
	End       int
}

// RuleSample bundles a rule's retained count with bounded, first-seen-order
// unique sample sets.
type RuleSample struct {
	Count            int
	OriginalSamples  []string
	SanitizedSamples []string
}

// RedactionSummary maps rule name to its aggregated samples. Serialization
// must walk keys in lexicographic order (see SortedRuleNames).
type RedactionSummary map[string]*RuleSample

// SortedRuleNames returns the summary's keys in lexicographic order, the
// canonical order for any serialized form.
func (s RedactionSummary) SortedRuleNames() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
