package rules

import (
	"github.com/platinummonkey/declint/pkg/decl"
	"github.com/platinummonkey/declint/pkg/linter"
)

// BaseRule provides common functionality for rules
type BaseRule struct {
	RuleName        string
	RuleType        linter.ViolationType
	RuleDescription string
}

func (r *BaseRule) Name() string               { return r.RuleName }
func (r *BaseRule) Type() linter.ViolationType { return r.RuleType }
func (r *BaseRule) Description() string        { return r.RuleDescription }

func (r *BaseRule) violation(severity linter.Severity, loc decl.Location, reason string) linter.Violation {
	return linter.Violation{
		Rule:     r.RuleName,
		Type:     r.RuleType,
		Severity: severity,
		Location: loc,
		Reason:   reason,
	}
}
