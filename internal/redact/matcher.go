package redact

// candidateMatch is an intermediate match before validation/resolution: a
// single rule's regex match plus everything the replacer needs to expand
// its capture groups later.
type candidateMatch struct {
	rule      *CompiledRule
	ruleOrder int
	start     int
	end       int
	groups    []int // raw FindSubmatchIndex-style group offsets, relative to input
}

// findMatches runs every CompiledRule over input in declared order,
// collecting each rule's own non-overlapping matches (a single regex never
// returns overlapping matches against one input).
func findMatches(input string, ruleset *CompiledRuleSet) []candidateMatch {
	var candidates []candidateMatch
	for i, rule := range ruleset.Rules {
		locs := rule.Matcher.FindAllSubmatchIndex([]byte(input), -1)
		for _, loc := range locs {
			candidates = append(candidates, candidateMatch{
				rule:      rule,
				ruleOrder: i,
				start:     loc[0],
				end:       loc[1],
				groups:    loc,
			})
		}
	}
	return candidates
}
