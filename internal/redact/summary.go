package redact

// DefaultSampleCap is the default bound on unique original/sanitized
// samples retained per rule in a RedactionSummary.
const DefaultSampleCap = 5

// BuildSummary aggregates a retained match list into a RedactionSummary.
// Samples are accumulated into an insertion-ordered, deduplicated set
// bounded by sampleCap; entries are keyed by rule name so serialization can
// walk them in lexicographic order via RedactionSummary.SortedRuleNames.
func BuildSummary(matches []RedactionMatch, sampleCap int) RedactionSummary {
	if sampleCap <= 0 {
		sampleCap = DefaultSampleCap
	}

	summary := make(RedactionSummary)
	originalSeen := make(map[string]map[string]bool)
	sanitizedSeen := make(map[string]map[string]bool)

	for _, m := range matches {
		entry, ok := summary[m.RuleName]
		if !ok {
			entry = &RuleSample{}
			summary[m.RuleName] = entry
			originalSeen[m.RuleName] = make(map[string]bool)
			sanitizedSeen[m.RuleName] = make(map[string]bool)
		}
		entry.Count++

		if !originalSeen[m.RuleName][m.Original] && len(entry.OriginalSamples) < sampleCap {
			originalSeen[m.RuleName][m.Original] = true
			entry.OriginalSamples = append(entry.OriginalSamples, m.Original)
		}
		if !sanitizedSeen[m.RuleName][m.Sanitized] && len(entry.SanitizedSamples) < sampleCap {
			sanitizedSeen[m.RuleName][m.Sanitized] = true
			entry.SanitizedSamples = append(entry.SanitizedSamples, m.Sanitized)
		}
	}

	return summary
}

// MergeSummaries folds per-rule counts as sums and unions sample sets under
// sampleCap, preserving first-seen order across the sequence of summaries
// given. This backs the line-buffered streaming mode (spec.md §9): each
// line's summary is folded into a running total.
func MergeSummaries(sampleCap int, summaries ...RedactionSummary) RedactionSummary {
	if sampleCap <= 0 {
		sampleCap = DefaultSampleCap
	}

	merged := make(RedactionSummary)
	originalSeen := make(map[string]map[string]bool)
	sanitizedSeen := make(map[string]map[string]bool)

	for _, s := range summaries {
		for _, name := range s.SortedRuleNames() {
			src := s[name]
			dst, ok := merged[name]
			if !ok {
				dst = &RuleSample{}
				merged[name] = dst
				originalSeen[name] = make(map[string]bool)
				sanitizedSeen[name] = make(map[string]bool)
			}
			dst.Count += src.Count

			for _, sample := range src.OriginalSamples {
				if !originalSeen[name][sample] && len(dst.OriginalSamples) < sampleCap {
					originalSeen[name][sample] = true
					dst.OriginalSamples = append(dst.OriginalSamples, sample)
				}
			}
			for _, sample := range src.SanitizedSamples {
				if !sanitizedSeen[name][sample] && len(dst.SanitizedSamples) < sampleCap {
					sanitizedSeen[name][sample] = true
					dst.SanitizedSamples = append(dst.SanitizedSamples, sample)
				}
			}
		}
	}

	return merged
}
