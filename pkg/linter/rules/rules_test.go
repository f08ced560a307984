package rules

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/platinummonkey/declint/pkg/decl"
	"github.com/platinummonkey/declint/pkg/linter"
	"github.com/platinummonkey/declint/pkg/protocols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeParser struct {
	mu     sync.Mutex
	files  map[string]*decl.File
	parses int
}

func (p *fakeParser) Parse(ctx context.Context, path string) (*decl.File, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.parses++
	if f, ok := p.files[path]; ok {
		return f, nil
	}
	return nil, errors.New("unparsable")
}

func node(kind decl.Kind, name string, access decl.Accessibility, offset int, children ...*decl.Node) *decl.Node {
	return &decl.Node{Kind: kind, Name: name, Accessibility: access, Offset: offset, Children: children}
}

func documented(n *decl.Node) *decl.Node {
	n.Attributes.Add(decl.AttributeHasDocComment)
	return n
}

func inherits(n *decl.Node, names ...string) *decl.Node {
	n.InheritedTypes = names
	return n
}

func fileOf(children ...*decl.Node) *decl.File {
	return decl.NewFile("Test.swift", nil, &decl.Node{Children: children})
}

func offsets(violations []linter.Violation) []int {
	out := make([]int, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Location.Offset)
	}
	return out
}

func lintContext(session *protocols.Session) *linter.LintContext {
	return &linter.LintContext{Context: context.Background(), FilePath: "Test.swift", Protocols: session}
}

func TestBlacklist(t *testing.T) {
	b := MustBlacklist(DefaultBlacklistPatterns)

	tests := []struct {
		names []string
		want  bool
	}{
		{[]string{"UITableViewDelegate"}, true},
		{[]string{"UICollectionViewDataSourcePrefetching"}, true},
		{[]string{"Equatable", "CLLocationManagerDelegate"}, true},
		{[]string{"UISearchResultsUpdating"}, true},
		{[]string{"UIÉcranDelegate"}, true},
		{[]string{"UIVue2DataSourceÄnderung"}, true},
		{[]string{"MyUITableViewDelegate"}, false},
		{[]string{"CLLocationManagerDelegateProxy"}, false},
		{[]string{"Greeter"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.names, ","), func(t *testing.T) {
			assert.Equal(t, tt.want, b.MatchesAny(tt.names))
		})
	}

	// Unanchored patterns match substrings
	assert.True(t, MustBlacklist([]string{"Delegate"}).MatchesAny([]string{"MyDelegateThing"}))

	var nilBlacklist *Blacklist
	assert.False(t, nilBlacklist.MatchesAny([]string{"UITableViewDelegate"}))
}

func TestNewBlacklist_Malformed(t *testing.T) {
	_, err := NewBlacklist([]string{"^Good$", "(unclosed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(unclosed")

	assert.Panics(t, func() { MustBlacklist([]string{"[z-a]"}) })
}

func TestVariableNameMinLengthRule(t *testing.T) {
	tests := []struct {
		name   string
		access decl.Accessibility
		params []linter.RuleParameter
		want   []linter.Severity
	}{
		{"ab", decl.AccessibilityInternal, nil, []linter.Severity{linter.SeverityWarning}},
		{"abc", decl.AccessibilityInternal, nil, nil},
		{"ab", decl.AccessibilityInternal, []linter.RuleParameter{
			{Severity: linter.SeverityWarning, Value: 3},
			{Severity: linter.SeverityError, Value: 5},
		}, []linter.Severity{linter.SeverityWarning, linter.SeverityError}},
		{"abcd", decl.AccessibilityInternal, []linter.RuleParameter{
			{Severity: linter.SeverityWarning, Value: 3},
			{Severity: linter.SeverityError, Value: 5},
		}, []linter.Severity{linter.SeverityError}},
		{"_ab", decl.AccessibilityPrivate, nil, []linter.Severity{linter.SeverityWarning}},
		{"_ab", decl.AccessibilityPublic, nil, nil},
		{"🇺🇸🇺🇸🇺🇸", decl.AccessibilityInternal, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.access.String(), func(t *testing.T) {
			rule := NewVariableNameMinLengthRule(tt.params...)
			file := fileOf(node(decl.KindVarGlobal, tt.name, tt.access, 4))

			violations := rule.Check(file, lintContext(nil))
			require.Len(t, violations, len(tt.want))
			for i, v := range violations {
				assert.Equal(t, tt.want[i], v.Severity)
				assert.Equal(t, 4, v.Location.Offset)
				assert.Equal(t, "variable_name_min_length", v.Rule)
				assert.Equal(t, linter.TypeNameFormat, v.Type)
			}
		})
	}
}

func TestVariableNameMinLengthRule_Reason(t *testing.T) {
	rule := NewVariableNameMinLengthRule()
	violations := rule.Check(fileOf(node(decl.KindVarLocal, "ab", decl.AccessibilityUnspecified, 0)), lintContext(nil))

	require.Len(t, violations, 1)
	assert.Equal(t, "Variable name should be at least 3 characters in length: 'ab', currently 2 characters", violations[0].Reason)
}

func TestNameLengthRules_TargetKinds(t *testing.T) {
	file := fileOf(
		node(decl.KindClass, "AB", decl.AccessibilityPublic, 0,
			node(decl.KindVarInstance, "x", decl.AccessibilityInternal, 10),
			node(decl.KindFunctionMethodInstance, "f()", decl.AccessibilityInternal, 20,
				node(decl.KindVarParameter, "y", decl.AccessibilityUnspecified, 25)),
		),
		node(decl.KindEnum, "E", decl.AccessibilityInternal, 40,
			node(decl.KindEnumCase, "a", decl.AccessibilityInternal, 45)),
		node(decl.KindProtocol, "P", decl.AccessibilityInternal, 60),
	)

	vars := NewVariableNameMinLengthRule().Check(file, lintContext(nil))
	assert.Equal(t, []int{10, 25}, offsets(vars))

	types := NewTypeNameMinLengthRule().Check(file, lintContext(nil))
	// Pre-order: a node's own violation precedes its children's
	assert.Equal(t, []int{0, 40, 45}, offsets(types))
	assert.Equal(t, "Type name should be at least 3 characters in length: 'AB', currently 2 characters", types[0].Reason)
}

func TestNameMaxLengthRules(t *testing.T) {
	long := strings.Repeat("a", 41)
	file := fileOf(
		node(decl.KindStruct, long, decl.AccessibilityPublic, 0,
			node(decl.KindVarStatic, strings.Repeat("b", 40), decl.AccessibilityPublic, 5),
			node(decl.KindVarStatic, long, decl.AccessibilityPublic, 9)),
	)

	types := NewTypeNameMaxLengthRule().Check(file, lintContext(nil))
	require.Len(t, types, 1)
	assert.Equal(t, 0, types[0].Location.Offset)
	assert.Equal(t, "Type name should be no longer than 40 characters in length: '"+long+"', currently 41 characters", types[0].Reason)

	vars := NewVariableNameMaxLengthRule(linter.RuleParameter{Severity: linter.SeverityError, Value: 40}).Check(file, lintContext(nil))
	require.Len(t, vars, 1)
	assert.Equal(t, 9, vars[0].Location.Offset)
	assert.Equal(t, linter.SeverityError, vars[0].Severity)
}

func TestNameLengthRule_Parameters(t *testing.T) {
	rule := NewTypeNameMinLengthRule()
	assert.Equal(t, []linter.RuleParameter{{Severity: linter.SeverityWarning, Value: 3}}, rule.Parameters())

	// Callers cannot mutate the rule's parameters
	params := rule.Parameters()
	params[0].Value = 100
	assert.Equal(t, 3, rule.Parameters()[0].Value)

	assert.Empty(t, rule.Check(nil, nil))
}

func TestNameLengthRules_MissingFields(t *testing.T) {
	root, err := decl.ParseStructure([]byte(`{"key.substructure": [
  {"key.kind": "source.lang.swift.decl.var.local"},
  {"key.kind": "source.lang.swift.decl.var.local", "key.name": "ab"},
  {"key.kind": "source.lang.swift.decl.class", "key.offset": 12},
  {"key.kind": "source.lang.swift.decl.var.local", "key.name": "xy", "key.offset": 30}
]}`))
	require.NoError(t, err)
	file := decl.NewFile("a.swift", nil, root)

	vars := NewVariableNameMinLengthRule().Check(file, lintContext(nil))
	assert.Equal(t, []int{30}, offsets(vars))

	assert.Empty(t, NewTypeNameMinLengthRule().Check(file, lintContext(nil)))
}

func TestObjcIdentifierRule(t *testing.T) {
	rule := NewObjcIdentifierRule()

	tests := []struct {
		contents string
		want     []int
	}{
		{"    @objc\n", nil},
		{"let foo: @objc_block () -> Void = {", nil},
		{"    private @objc func", []int{12}},
		{"@objc func", []int{0}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.contents, func(t *testing.T) {
			file := decl.NewFile("Test.swift", []byte(tt.contents), nil)
			violations := rule.Check(file, lintContext(nil))
			assert.Equal(t, len(tt.want), len(violations))
			if len(tt.want) > 0 {
				assert.Equal(t, tt.want, offsets(violations))
				assert.Equal(t, "@objc should be on its own line", violations[0].Reason)
				assert.Equal(t, linter.SeverityWarning, violations[0].Severity)
			}
		})
	}
}
