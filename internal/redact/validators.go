package redact

import "strings"

// defaultValidators is the process-wide, read-only registry of
// programmatic validators. It is closed to user-rule extension: rule
// documents can only reference validators by reusing one of these reserved
// names, never define new ones.
var defaultValidators = map[string]Validator{
	"us_ssn":  validateUSSSN,
	"uk_nino": validateUKNINO,
}

// NewValidatorRegistry returns a fresh copy of the default, process-wide
// validator registry. CompileRules accepts the registry as a parameter
// rather than reading a package global directly, so callers can substitute
// a reduced or test registry without touching shared state.
func NewValidatorRegistry() map[string]Validator {
	reg := make(map[string]Validator, len(defaultValidators))
	for k, v := range defaultValidators {
		reg[k] = v
	}
	return reg
}

// validateUSSSN implements the area/group/serial checks spec.md §4.5 names:
// rejects area codes 000, 666, or any starting with 9; rejects group code
// 00; rejects serial 0000. Operates on the raw matched text (expected shape
// AAA-GG-SSSS), ignoring any separators.
func validateUSSSN(matched string) bool {
	digits := onlyDigits(matched)
	if len(digits) != 9 {
		return false
	}
	area, group, serial := digits[0:3], digits[3:5], digits[5:9]

	if area == "000" || area == "666" || area[0] == '9' {
		return false
	}
	if group == "00" {
		return false
	}
	if serial == "0000" {
		return false
	}
	return true
}

// invalidNinoPrefixes are rejected outright regardless of character class
// checks, per spec.md §4.5.
var invalidNinoPrefixes = map[string]bool{
	"BG": true, "GB": true, "NK": true, "KN": true,
	"TN": true, "NT": true, "ZZ": true,
}

// ninoFirstLetterExcluded and ninoSecondLetterExcluded supplement the
// spec's generic "allowed alphabet" wording with the character-class rule
// the original source material enforces.
var ninoFirstLetterExcluded = "DFIQUV"
var ninoSecondLetterExcluded = "DFIOQUV"

// validateUKNINO implements the UK National Insurance number validator
// spec.md §4.5 names: rejects a closed prefix list, requires prefix letters
// drawn from the allowed alphabet, six digit middle characters, and a
// suffix of A-D. Operates on the raw matched text (expected shape
// LLDDDDDDL), ignoring whitespace.
func validateUKNINO(matched string) bool {
	nino := strings.ToUpper(strings.ReplaceAll(matched, " ", ""))
	if len(nino) != 9 {
		return false
	}

	prefix := nino[0:2]
	middle := nino[2:8]
	suffix := nino[8:9]

	if invalidNinoPrefixes[prefix] {
		return false
	}
	if strings.ContainsAny(prefix[0:1], ninoFirstLetterExcluded) {
		return false
	}
	if strings.ContainsAny(prefix[1:2], ninoSecondLetterExcluded) {
		return false
	}
	if !isAllDigits(middle) {
		return false
	}
	if !strings.Contains("ABCD", suffix) {
		return false
	}
	return true
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
