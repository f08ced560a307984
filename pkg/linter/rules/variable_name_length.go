package rules

import (
	"github.com/platinummonkey/declint/pkg/decl"
	"github.com/platinummonkey/declint/pkg/linter"
)

var variableKinds = decl.NewKindSet(
	decl.KindVarClass,
	decl.KindVarGlobal,
	decl.KindVarInstance,
	decl.KindVarLocal,
	decl.KindVarParameter,
	decl.KindVarStatic,
)

// NewVariableNameMinLengthRule creates a rule requiring variable names of a minimum length
func NewVariableNameMinLengthRule(params ...linter.RuleParameter) linter.ParameterizedRule {
	if len(params) == 0 {
		params = []linter.RuleParameter{{Severity: linter.SeverityWarning, Value: 3}}
	}
	return &nameLengthRule{
		BaseRule: BaseRule{
			RuleName:        "variable_name_min_length",
			RuleType:        linter.TypeNameFormat,
			RuleDescription: "Variable name should not be too short",
		},
		noun:       "Variable",
		kinds:      variableKinds,
		bound:      atLeast,
		parameters: params,
	}
}

// NewVariableNameMaxLengthRule creates a rule limiting the length of variable names
func NewVariableNameMaxLengthRule(params ...linter.RuleParameter) linter.ParameterizedRule {
	if len(params) == 0 {
		params = []linter.RuleParameter{{Severity: linter.SeverityWarning, Value: 40}}
	}
	return &nameLengthRule{
		BaseRule: BaseRule{
			RuleName:        "variable_name_max_length",
			RuleType:        linter.TypeNameFormat,
			RuleDescription: "Variable name should not be too long",
		},
		noun:       "Variable",
		kinds:      variableKinds,
		bound:      noLongerThan,
		parameters: params,
	}
}
