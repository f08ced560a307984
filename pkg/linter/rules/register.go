package rules

import (
	"github.com/platinummonkey/declint/pkg/decl"
	"github.com/platinummonkey/declint/pkg/linter"
	"github.com/platinummonkey/declint/pkg/observability"
	"github.com/platinummonkey/declint/pkg/protocols"
)

// Registry interface for registering rules
type Registry interface {
	Register(rule linter.Rule)
}

// Options configure the built-in rules
type Options struct {
	Config *linter.Config
	// Parser reads the files the protocol cache points at. Nil disables protocol member
	// exclusion.
	Parser decl.Parser
	Logger *observability.Logger
}

// DefaultRules constructs every built-in rule. Parameterized rules take their parameters
// from the configuration when it overrides them. The protocol cache is loaded here, once.
func DefaultRules(opts Options) ([]linter.Rule, error) {
	config := opts.Config
	if config == nil {
		config = linter.DefaultConfig()
	}

	patterns := append(append([]string(nil), DefaultBlacklistPatterns...), config.DocumentationComments.Blacklist...)
	blacklist, err := NewBlacklist(patterns)
	if err != nil {
		return nil, err
	}

	cache := protocols.LoadCache(config.DocumentationComments.CachePath, opts.Logger)
	resolver := protocols.NewResolver(cache, opts.Parser)

	return []linter.Rule{
		NewDocumentationCommentRule(blacklist, resolver),
		NewObjcIdentifierRule(),
		NewTypeNameMaxLengthRule(config.TypeNameMaxLength...),
		NewTypeNameMinLengthRule(config.TypeNameMinLength...),
		NewVariableNameMaxLengthRule(config.VariableNameMaxLength...),
		NewVariableNameMinLengthRule(config.VariableNameMinLength...),
	}, nil
}

// RegisterDefaultRules registers all built-in lint rules
func RegisterDefaultRules(registry Registry, opts Options) error {
	rules, err := DefaultRules(opts)
	if err != nil {
		return err
	}
	for _, rule := range rules {
		registry.Register(rule)
	}
	return nil
}
