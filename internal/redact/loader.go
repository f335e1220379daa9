package redact

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ruleDocument is the on-disk shape: a top-level list under the key "rules".
type ruleDocument struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules parses a declarative rule document into an ordered sequence of
// Rule records, preserving document order. source is a label used only in
// error messages (a file path, "embedded defaults", etc).
//
// Boolean fields absent from the document default to false, which is also
// Go's zero value for bool, so no explicit defaulting pass is required.
func LoadRules(doc []byte, source string) ([]Rule, error) {
	var parsed ruleDocument
	if err := yaml.Unmarshal(doc, &parsed); err != nil {
		return nil, &MalformedDocumentError{Source: source, Err: err}
	}

	seen := make(map[string]bool, len(parsed.Rules))
	for i, r := range parsed.Rules {
		if r.Name == "" {
			return nil, &SchemaViolationError{Source: source, Rule: fmt.Sprintf("#%d", i), Reason: "missing required field \"name\""}
		}
		if r.Pattern == "" {
			return nil, &SchemaViolationError{Source: source, Rule: r.Name, Reason: "missing required field \"pattern\""}
		}
		if r.ReplaceWith == "" {
			return nil, &SchemaViolationError{Source: source, Rule: r.Name, Reason: "missing required field \"replace_with\""}
		}
		if seen[r.Name] {
			return nil, &SchemaViolationError{Source: source, Rule: r.Name, Reason: "duplicate name within document"}
		}
		seen[r.Name] = true
	}

	return parsed.Rules, nil
}
