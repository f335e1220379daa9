package redact

// ActiveSetSelector chooses between the "default" posture (opt-in rules
// stay inactive unless explicitly enabled) and "strict" (every rule, opt-in
// included, is active).
type ActiveSetSelector string

const (
	ActiveSetDefault ActiveSetSelector = "default"
	ActiveSetStrict  ActiveSetSelector = "strict"
)

// RuleStatus annotates a merged Rule with whether the composer's filter
// left it active, so introspection commands can show the full rule set
// (including inactive/disabled rules and their descriptions) rather than
// only what RuleCompiler goes on to compile.
type RuleStatus struct {
	Rule   Rule
	Active bool
}

// ComposeRules merges the default rule set with an optional user overlay and
// applies the enable/disable/opt-in filter, producing the ordered sequence
// of Rules that RuleCompiler will attempt to compile.
//
// Merge: a user rule with the same name as a default rule wholly replaces
// it, in the default's original position. User-only rules are appended
// after, in their document order.
//
// Filter, applied after merging:
//   - candidate-active if opt_in=false, or opt_in=true and (name ∈ enable or
//     selector is strict).
//   - active if candidate-active and name ∉ disable.
//
// disable takes precedence over enable. Unknown names in either list are
// warned about, never rejected.
func ComposeRules(defaults, user []Rule, enable, disable []string, selector ActiveSetSelector, warner Warner) []Rule {
	statuses := ComposeRulesStatus(defaults, user, enable, disable, selector, warner)
	active := make([]Rule, 0, len(statuses))
	for _, s := range statuses {
		if s.Active {
			active = append(active, s.Rule)
		}
	}
	return active
}

// ComposeRulesStatus performs the same merge and filter as ComposeRules, but
// returns every merged rule (active and inactive alike) annotated with its
// computed active state, for commands that need to show the whole rule set.
func ComposeRulesStatus(defaults, user []Rule, enable, disable []string, selector ActiveSetSelector, warner Warner) []RuleStatus {
	if warner == nil {
		warner = NopWarner{}
	}

	merged := mergeRules(defaults, user)

	enableSet := toSet(enable)
	disableSet := toSet(disable)
	known := make(map[string]bool, len(merged))
	for _, r := range merged {
		known[r.Name] = true
	}
	for name := range enableSet {
		if !known[name] {
			warner.Warn(WarnUnknownRuleName, "enable list references unknown rule", map[string]any{"name": name})
		}
	}
	for name := range disableSet {
		if !known[name] {
			warner.Warn(WarnUnknownRuleName, "disable list references unknown rule", map[string]any{"name": name})
		}
	}

	statuses := make([]RuleStatus, 0, len(merged))
	for _, r := range merged {
		candidate := !r.OptIn || enableSet[r.Name] || selector == ActiveSetStrict
		active := candidate && !disableSet[r.Name]
		statuses = append(statuses, RuleStatus{Rule: r, Active: active})
	}
	return statuses
}

func mergeRules(defaults, user []Rule) []Rule {
	userByName := make(map[string]Rule, len(user))
	for _, r := range user {
		userByName[r.Name] = r
	}

	merged := make([]Rule, 0, len(defaults)+len(user))
	seen := make(map[string]bool, len(defaults))
	for _, d := range defaults {
		if override, ok := userByName[d.Name]; ok {
			merged = append(merged, override)
		} else {
			merged = append(merged, d)
		}
		seen[d.Name] = true
	}
	for _, u := range user {
		if !seen[u.Name] {
			merged = append(merged, u)
			seen[u.Name] = true
		}
	}
	return merged
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
