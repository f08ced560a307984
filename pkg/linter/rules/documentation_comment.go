package rules

import (
	"strings"

	"github.com/platinummonkey/declint/pkg/decl"
	"github.com/platinummonkey/declint/pkg/linter"
	"github.com/platinummonkey/declint/pkg/protocols"
)

const documentationReason = "Needs documentation comment"

var (
	topLevelCommentableKinds = decl.NewKindSet(
		decl.KindClass,
		decl.KindEnum,
		decl.KindStruct,
		decl.KindExtension,
		decl.KindProtocol,
		decl.KindVarGlobal,
		decl.KindFunctionFree,
		decl.KindTypealias,
	)

	// Documented through their members only
	memberOnlyKinds = decl.NewKindSet(
		decl.KindClass,
		decl.KindStruct,
		decl.KindExtension,
	)

	memberCommentableKinds = decl.NewKindSet(
		decl.KindVarInstance,
		decl.KindVarStatic,
		decl.KindVarClass,
		decl.KindFunctionMethodClass,
		decl.KindFunctionMethodInstance,
		decl.KindFunctionMethodStatic,
		decl.KindFunctionSubscript,
		decl.KindTypealias,
	)
)

// DocumentationCommentRule requires documentation on public and internal declarations and
// their members. Members a type implements for a cached protocol inherit the protocol's
// documentation.
type DocumentationCommentRule struct {
	BaseRule
	blacklist *Blacklist
	resolver  *protocols.Resolver
}

// NewDocumentationCommentRule creates the rule. The resolver may be nil, in which case no
// protocol members are excluded.
func NewDocumentationCommentRule(blacklist *Blacklist, resolver *protocols.Resolver) *DocumentationCommentRule {
	if resolver == nil {
		resolver = protocols.NewResolver(nil, nil)
	}
	return &DocumentationCommentRule{
		BaseRule: BaseRule{
			RuleName:        "documentation_comments",
			RuleType:        linter.TypeDocumentationComment,
			RuleDescription: "Public and internal declarations should be documented",
		},
		blacklist: blacklist,
		resolver:  resolver,
	}
}

func (r *DocumentationCommentRule) Check(file *decl.File, ctx *linter.LintContext) []linter.Violation {
	violations := make([]linter.Violation, 0)
	if file == nil || file.Root == nil {
		return violations
	}

	for _, d := range file.Root.Children {
		if d == nil || !topLevelCommentableKinds.Contains(d.Kind) {
			continue
		}
		// Extensions add members to types declared elsewhere, so their own
		// accessibility does not gate inspection.
		if !d.Accessibility.NeedsDocumentation() && d.Kind != decl.KindExtension {
			continue
		}
		if r.blacklist.MatchesAny(d.InheritedTypes) {
			continue
		}

		excluded := r.excludedMembers(d, ctx)

		if !memberOnlyKinds.Contains(d.Kind) && !d.Attributes.Has(decl.AttributeHasDocComment) && d.HasOffset() {
			violations = append(violations, r.needsComment(file, d))
		}

		for _, m := range d.Children {
			if m == nil || !m.Accessibility.NeedsDocumentation() {
				continue
			}
			if m.HasOffset() && shouldComment(m, excluded) {
				violations = append(violations, r.needsComment(file, m))
			}
		}
	}

	return violations
}

func (r *DocumentationCommentRule) excludedMembers(d *decl.Node, ctx *linter.LintContext) protocols.MemberSet {
	excluded := protocols.MemberSet{}
	for _, name := range d.InheritedTypes {
		excluded.Add(r.resolver.Members(ctx.Ctx(), name, ctx.Session())...)
	}
	return excluded
}

func (r *DocumentationCommentRule) needsComment(file *decl.File, n *decl.Node) linter.Violation {
	return r.violation(linter.SeverityWarning, file.Location(n.Offset), documentationReason)
}

func shouldComment(m *decl.Node, excluded protocols.MemberSet) bool {
	if !memberCommentableKinds.Contains(m.Kind) {
		return false
	}
	if strings.HasPrefix(m.Name, "init") || m.Name == "deinit" || m.Name == "hashValue" {
		return false
	}
	if m.Attributes.Has(decl.AttributeHasDocComment) ||
		m.Attributes.Has(decl.AttributeIsOverride) ||
		m.Attributes.Has(decl.AttributeIsIBOutlet) {
		return false
	}
	return !excluded.Contains(protocols.MemberOf(m))
}
