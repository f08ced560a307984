package rules

import (
	"fmt"

	"github.com/platinummonkey/declint/pkg/decl"
	"github.com/platinummonkey/declint/pkg/linter"
	"github.com/rivo/uniseg"
)

// bound decides whether a measured length fails a threshold
type bound struct {
	fails  func(length, threshold int) bool
	phrase string
}

var (
	atLeast      = bound{fails: func(l, t int) bool { return l < t }, phrase: "should be at least"}
	noLongerThan = bound{fails: func(l, t int) bool { return l > t }, phrase: "should be no longer than"}
)

// nameLengthRule checks the length of declaration names of the target kinds against every
// configured parameter
type nameLengthRule struct {
	BaseRule
	noun       string
	kinds      decl.KindSet
	bound      bound
	parameters []linter.RuleParameter
}

func (r *nameLengthRule) Parameters() []linter.RuleParameter {
	return append([]linter.RuleParameter(nil), r.parameters...)
}

func (r *nameLengthRule) Check(file *decl.File, ctx *linter.LintContext) []linter.Violation {
	violations := make([]linter.Violation, 0)
	if file == nil {
		return violations
	}

	file.Root.Walk(func(node *decl.Node) {
		if !r.kinds.Contains(node.Kind) || !node.HasName() || !node.HasOffset() {
			return
		}

		name := node.NameStrippingLeadingUnderscoreIfPrivate()
		length := uniseg.GraphemeClusterCount(name)
		for _, p := range r.parameters {
			if !r.bound.fails(length, p.Value) {
				continue
			}
			reason := fmt.Sprintf("%s name %s %d characters in length: '%s', currently %d characters",
				r.noun, r.bound.phrase, p.Value, name, length)
			violations = append(violations, r.violation(p.Severity, file.Location(node.Offset), reason))
		}
	})

	return violations
}
