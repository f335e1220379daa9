package redact

import "strings"

// replace walks the retained match list in ascending start order, emitting
// the untouched run of input before each match, then the match's expanded
// replacement, then advancing past the match. Capture-group expansion
// reuses regexp's own ExpandString so `$0`..`$n` and `$$` follow the
// matcher's standard semantics rather than a hand-rolled convention.
func replace(input string, retained []candidateMatch) (string, []RedactionMatch) {
	var out strings.Builder
	matches := make([]RedactionMatch, 0, len(retained))

	cursor := 0
	for _, c := range retained {
		out.WriteString(input[cursor:c.start])

		original := input[c.start:c.end]
		expanded := c.rule.Matcher.ExpandString(nil, c.rule.ReplaceWith, input, c.groups)
		sanitized := string(expanded)

		out.WriteString(sanitized)
		matches = append(matches, RedactionMatch{
			RuleName:  c.rule.Name,
			Original:  original,
			Sanitized: sanitized,
			Start:     c.start,
			End:       c.end,
		})
		cursor = c.end
	}
	out.WriteString(input[cursor:])

	return out.String(), matches
}
