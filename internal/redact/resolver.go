package redact

import "sort"

// applyValidators drops candidate matches that fail their rule's
// programmatic validator. A validator panic is a bug in the validator, not
// in the engine: it is recovered and downgraded to a rejected match plus a
// warning (spec.md §7 ValidatorFault), so one faulty validator can never
// take down the whole sanitize call.
func applyValidators(candidates []candidateMatch, input string, warner Warner) []candidateMatch {
	if warner == nil {
		warner = NopWarner{}
	}

	kept := make([]candidateMatch, 0, len(candidates))
	for _, c := range candidates {
		if !c.rule.ProgrammaticValidation || c.rule.Validator == nil {
			kept = append(kept, c)
			continue
		}

		if runValidator(c.rule.Validator, input[c.start:c.end], warner, c.rule.Name) {
			kept = append(kept, c)
		}
	}
	return kept
}

func runValidator(v Validator, matched string, warner Warner, ruleName string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			warner.Warn(WarnValidatorFault, "validator panicked, match rejected", map[string]any{"name": ruleName, "panic": r})
			ok = false
		}
	}()
	return v(matched)
}

// resolveOverlaps reduces possibly-overlapping candidate matches to a
// non-overlapping, deterministically ordered sequence:
//  1. sort by start ascending, then end descending (longer wins ties), then
//     by rule declaration order;
//  2. walk in that order, accepting a match if its start is at or after the
//     previous accepted match's end.
func resolveOverlaps(candidates []candidateMatch) []candidateMatch {
	sorted := make([]candidateMatch, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.start != b.start {
			return a.start < b.start
		}
		if a.end != b.end {
			return a.end > b.end
		}
		return a.ruleOrder < b.ruleOrder
	})

	retained := make([]candidateMatch, 0, len(sorted))
	lastEnd := -1
	for _, c := range sorted {
		if c.start >= lastEnd {
			retained = append(retained, c)
			lastEnd = c.end
		}
	}
	return retained
}
