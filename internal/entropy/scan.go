// Package entropy implements an alternative sanitization Engine that flags
// high-entropy substrings (API keys, random tokens, session IDs) without
// consulting any rule document, per the pluggable-engine design note in
// spec.md §4.7/§9.
package entropy

import (
	"math"
	"regexp"
)

// tokenPattern finds runs of non-whitespace characters at least minLength
// long; each run is a candidate for entropy scoring.
var tokenPattern = regexp.MustCompile(`\S+`)

// shannonEntropy computes the Shannon entropy, in bits per character, of s.
func shannonEntropy(s string) float64 {
	if len(s) == 0 {
		return 0
	}

	counts := make(map[rune]int)
	total := 0
	for _, r := range s {
		counts[r]++
		total++
	}

	var entropy float64
	for _, count := range counts {
		p := float64(count) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// findCandidateTokens scans input for whitespace-delimited tokens at least
// minLength long and scores each one's Shannon entropy, without applying
// any threshold. Used where the caller wants to consult a fingerprint
// store for tokens that fall just short of the threshold on their own.
func findCandidateTokens(input string, minLength int) []scoredToken {
	var found []scoredToken
	for _, loc := range tokenPattern.FindAllStringIndex(input, -1) {
		start, end := loc[0], loc[1]
		token := input[start:end]
		if len(token) < minLength {
			continue
		}
		found = append(found, scoredToken{
			tokenMatch: tokenMatch{start: start, end: end, token: token},
			entropy:    shannonEntropy(token),
		})
	}
	return found
}

type tokenMatch struct {
	start int
	end   int
	token string
}

type scoredToken struct {
	tokenMatch
	entropy float64
}
