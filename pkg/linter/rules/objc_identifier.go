package rules

import (
	"regexp"

	"github.com/platinummonkey/declint/pkg/decl"
	"github.com/platinummonkey/declint/pkg/linter"
)

var objcAttributeRegex = regexp.MustCompile(`(^[^\s]+\s+@objc|@objc[^\n_])`)

// ObjcIdentifierRule requires @objc to stand on its own line
type ObjcIdentifierRule struct {
	BaseRule
}

// NewObjcIdentifierRule creates a new objc identifier rule
func NewObjcIdentifierRule() *ObjcIdentifierRule {
	return &ObjcIdentifierRule{
		BaseRule: BaseRule{
			RuleName:        "objc_identifier",
			RuleType:        linter.TypeObjcIdentifier,
			RuleDescription: "@objc should be on its own line",
		},
	}
}

func (r *ObjcIdentifierRule) Check(file *decl.File, ctx *linter.LintContext) []linter.Violation {
	violations := make([]linter.Violation, 0)
	if file == nil || len(file.Contents) == 0 {
		return violations
	}

	for _, match := range objcAttributeRegex.FindAllIndex(file.Contents, -1) {
		violations = append(violations, r.violation(linter.SeverityWarning, file.Location(match[0]), r.RuleDescription))
	}
	return violations
}
