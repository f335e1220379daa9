package redact

// Engine is the single-operation abstraction spec.md §4.7 calls for:
// sanitize(input, ruleset) -> (output, matches). Alternative engines (an
// entropy-based detector, say) are free to ignore the rule set's regex
// semantics entirely, provided they still return non-overlapping
// RedactionMatches whose offsets refer to the ANSI-stripped input so that
// resolver/replacer semantics compose with whatever called them.
type Engine interface {
	Sanitize(input []byte, ruleset *CompiledRuleSet) (output string, matches []RedactionMatch, err error)
}

// RegexEngine is the default Engine: the ANSI-strip, match, validate,
// resolve, replace pipeline spec.md §4 describes.
type RegexEngine struct {
	Warner Warner
}

// NewRegexEngine returns a RegexEngine. A nil warner is replaced with a
// no-op at call time.
func NewRegexEngine(warner Warner) *RegexEngine {
	return &RegexEngine{Warner: warner}
}

// Sanitize implements Engine. It is single-threaded, CPU-bound, and
// deterministic: the same input and ruleset always produce the same output
// and the same ordered match sequence (spec.md §5).
func (e *RegexEngine) Sanitize(input []byte, ruleset *CompiledRuleSet) (string, []RedactionMatch, error) {
	warner := e.Warner
	if warner == nil {
		warner = NopWarner{}
	}

	stripped := StripAnsi(string(input))

	candidates := findMatches(stripped, ruleset)
	validated := applyValidators(candidates, stripped, warner)
	retained := resolveOverlaps(validated)

	output, matches := replace(stripped, retained)
	return output, matches, nil
}

// Compile is the in-process "compile" operation spec.md §6a names: it
// loads, composes, and compiles a rule set from its sources in one call.
// defaultDoc is required; userDoc may be nil/empty when there is no user
// overlay.
func Compile(defaultDoc, userDoc []byte, enable, disable []string, selector ActiveSetSelector, registry map[string]Validator, warner Warner) (*CompiledRuleSet, error) {
	defaults, err := LoadRules(defaultDoc, "embedded defaults")
	if err != nil {
		return nil, err
	}

	var user []Rule
	if len(userDoc) > 0 {
		user, err = LoadRules(userDoc, "user rule overlay")
		if err != nil {
			return nil, err
		}
	}

	if registry == nil {
		registry = NewValidatorRegistry()
	}

	active := ComposeRules(defaults, user, enable, disable, selector, warner)
	return CompileRules(active, registry, warner), nil
}

// ComposeStatus loads and merges default+user rule documents the same way
// Compile does, but stops after composition and returns every merged rule
// annotated with its active state, for introspection commands (`rules
// list`) that need the full rule set rather than only what gets compiled.
func ComposeStatus(defaultDoc, userDoc []byte, enable, disable []string, selector ActiveSetSelector, warner Warner) ([]RuleStatus, error) {
	defaults, err := LoadRules(defaultDoc, "embedded defaults")
	if err != nil {
		return nil, err
	}

	var user []Rule
	if len(userDoc) > 0 {
		user, err = LoadRules(userDoc, "user rule overlay")
		if err != nil {
			return nil, err
		}
	}

	return ComposeRulesStatus(defaults, user, enable, disable, selector, warner), nil
}
