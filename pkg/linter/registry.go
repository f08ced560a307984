package linter

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/platinummonkey/declint/pkg/decl"
	"github.com/platinummonkey/declint/pkg/observability"
	"github.com/platinummonkey/declint/pkg/protocols"
)

// ErrUnknownRule is returned when a configuration names a rule that is not registered
var ErrUnknownRule = errors.New("unknown rule")

// Rule interface that all lint rules must implement
type Rule interface {
	Name() string
	Type() ViolationType
	Description() string
	Check(file *decl.File, ctx *LintContext) []Violation
}

// ParameterizedRule is a rule evaluated against an ordered list of thresholds
type ParameterizedRule interface {
	Rule
	Parameters() []RuleParameter
}

// LintContext provides context during rule checking
type LintContext struct {
	Context  context.Context
	FilePath string
	Config   *Config
	Logger   *observability.Logger

	// Protocols holds the per-run protocol lookup state shared by every file of a run.
	Protocols *protocols.Session
}

// Ctx returns the context of the check, never nil
func (c *LintContext) Ctx() context.Context {
	if c == nil || c.Context == nil {
		return context.Background()
	}
	return c.Context
}

// Session returns the protocol lookup state, or nil
func (c *LintContext) Session() *protocols.Session {
	if c == nil {
		return nil
	}
	return c.Protocols
}

// RuleRegistry manages available lint rules
type RuleRegistry struct {
	rules map[string]Rule
}

// NewRuleRegistry creates a new rule registry
func NewRuleRegistry() *RuleRegistry {
	return &RuleRegistry{
		rules: make(map[string]Rule),
	}
}

// Register adds a rule to the registry, replacing any rule with the same name
func (r *RuleRegistry) Register(rule Rule) {
	r.rules[rule.Name()] = rule
}

// GetRule retrieves a rule by name
func (r *RuleRegistry) GetRule(name string) (Rule, bool) {
	rule, ok := r.rules[name]
	return rule, ok
}

// GetAllRules returns all registered rules ordered by name
func (r *RuleRegistry) GetAllRules() []Rule {
	rules := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Name() < rules[j].Name() })
	return rules
}

// GetEnabledRules returns the rules enabled by config, ordered by name. When only_rules
// is set, it alone decides; otherwise every rule not in disabled_rules runs.
func (r *RuleRegistry) GetEnabledRules(config *Config) []Rule {
	all := r.GetAllRules()
	if config == nil {
		return all
	}

	only := toSet(config.OnlyRules)
	disabled := toSet(config.DisabledRules)

	enabled := make([]Rule, 0, len(all))
	for _, rule := range all {
		if len(only) > 0 {
			if only[rule.Name()] {
				enabled = append(enabled, rule)
			}
			continue
		}
		if !disabled[rule.Name()] {
			enabled = append(enabled, rule)
		}
	}
	return enabled
}

// GetRulesByType returns the rules producing a specific violation type
func (r *RuleRegistry) GetRulesByType(t ViolationType) []Rule {
	rules := make([]Rule, 0)
	for _, rule := range r.GetAllRules() {
		if rule.Type() == t {
			rules = append(rules, rule)
		}
	}
	return rules
}

// CheckNames returns ErrUnknownRule for the first configured rule name that is not
// registered.
func (r *RuleRegistry) CheckNames(config *Config) error {
	if config == nil {
		return nil
	}
	for _, names := range [][]string{config.DisabledRules, config.OnlyRules} {
		for _, name := range names {
			if _, ok := r.rules[name]; !ok {
				return fmt.Errorf("%w: %s", ErrUnknownRule, name)
			}
		}
	}
	return nil
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
