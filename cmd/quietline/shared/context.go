// Package shared holds the context passed to all CLI commands.
package shared

import (
	"fmt"
	"os"

	"github.com/quietline/sanitize/internal/config"
	"github.com/quietline/sanitize/internal/logger"
	"github.com/quietline/sanitize/internal/redact"
)

// Context carries global CLI state resolved once by the root command and
// shared by every subcommand.
type Context struct {
	// ConfigPath overrides the configuration file location.
	ConfigPath string

	Config *config.Config
	Logger *logger.Logger
}

// BuildRuleset compiles the active rule set from the configured user rules
// overlay (if any) plus the embedded defaults, applying the configured
// active-set selector and enable/disable lists.
func (c *Context) BuildRuleset() (*redact.CompiledRuleSet, error) {
	var userDoc []byte
	if path := c.Config.Rules.UserRulesPath; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read user rules: %w", err)
		}
		userDoc = data
	}

	selector := redact.ActiveSetDefault
	if c.Config.Rules.ActiveSet == "strict" {
		selector = redact.ActiveSetStrict
	}

	warner := warnerAdapter{logger: c.Logger}
	return redact.Compile(
		redact.DefaultRulesYAML,
		userDoc,
		c.Config.Rules.Enable,
		c.Config.Rules.Disable,
		selector,
		redact.NewValidatorRegistry(),
		warner,
	)
}

// BuildRuleStatus composes the same default+user rule sources BuildRuleset
// does, but returns every merged rule (active and inactive) annotated with
// its computed active state, for the `rules list` introspection command.
func (c *Context) BuildRuleStatus() ([]redact.RuleStatus, error) {
	var userDoc []byte
	if path := c.Config.Rules.UserRulesPath; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read user rules: %w", err)
		}
		userDoc = data
	}

	selector := redact.ActiveSetDefault
	if c.Config.Rules.ActiveSet == "strict" {
		selector = redact.ActiveSetStrict
	}

	warner := warnerAdapter{logger: c.Logger}
	return redact.ComposeStatus(
		redact.DefaultRulesYAML,
		userDoc,
		c.Config.Rules.Enable,
		c.Config.Rules.Disable,
		selector,
		warner,
	)
}

type warnerAdapter struct {
	logger *logger.Logger
}

func (w warnerAdapter) Warn(kind, message string, fields map[string]any) {
	if w.logger == nil {
		return
	}
	w.logger.Sugar().Warnw(message, "kind", kind, "fields", fields)
}
