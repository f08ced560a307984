package rules

import (
	"github.com/platinummonkey/declint/pkg/decl"
	"github.com/platinummonkey/declint/pkg/linter"
)

var typeKinds = decl.NewKindSet(
	decl.KindClass,
	decl.KindStruct,
	decl.KindTypealias,
	decl.KindEnum,
	decl.KindEnumCase,
)

// NewTypeNameMinLengthRule creates a rule requiring type names of a minimum length
func NewTypeNameMinLengthRule(params ...linter.RuleParameter) linter.ParameterizedRule {
	if len(params) == 0 {
		params = []linter.RuleParameter{{Severity: linter.SeverityWarning, Value: 3}}
	}
	return &nameLengthRule{
		BaseRule: BaseRule{
			RuleName:        "type_name_min_length",
			RuleType:        linter.TypeNameFormat,
			RuleDescription: "Type name should not be too short",
		},
		noun:       "Type",
		kinds:      typeKinds,
		bound:      atLeast,
		parameters: params,
	}
}

// NewTypeNameMaxLengthRule creates a rule limiting the length of type names
func NewTypeNameMaxLengthRule(params ...linter.RuleParameter) linter.ParameterizedRule {
	if len(params) == 0 {
		params = []linter.RuleParameter{{Severity: linter.SeverityWarning, Value: 40}}
	}
	return &nameLengthRule{
		BaseRule: BaseRule{
			RuleName:        "type_name_max_length",
			RuleType:        linter.TypeNameFormat,
			RuleDescription: "Type name should not be too long",
		},
		noun:       "Type",
		kinds:      typeKinds,
		bound:      noLongerThan,
		parameters: params,
	}
}
