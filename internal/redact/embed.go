package redact

import _ "embed"

// DefaultRulesYAML is the default rule document, bound at build time. It is
// never read from an arbitrary filesystem path at runtime; only an explicit
// user overlay is.
//
//go:embed rules_default.yaml
var DefaultRulesYAML []byte
