package decl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const greeterStructure = `{
  "key.offset": 0,
  "key.length": 64,
  "key.substructure": [
    {
      "key.kind": "source.lang.swift.decl.protocol",
      "key.name": "Greeter",
      "key.accessibility": "source.lang.swift.accessibility.public",
      "key.offset": 7,
      "key.attributes": [
        {"key.attribute": "source.decl.attribute.__raw_doc_comment"},
        {"key.attribute": "source.decl.attribute.objc"}
      ],
      "key.inheritedtypes": [{"key.name": "AnyObject"}],
      "key.substructure": [
        {
          "key.kind": "source.lang.swift.decl.function.method.instance",
          "key.name": "greet()",
          "key.accessibility": "source.lang.swift.accessibility.public",
          "key.offset": 32
        },
        "not-an-object"
      ]
    },
    {
      "key.kind": "source.lang.swift.decl.somethingnew",
      "key.name": "Mystery",
      "key.offset": 50
    }
  ]
}`

func TestParseStructure(t *testing.T) {
	root, err := ParseStructure([]byte(greeterStructure))
	require.NoError(t, err)
	require.Len(t, root.Children, 2)

	proto := root.Children[0]
	assert.Equal(t, KindProtocol, proto.Kind)
	assert.Equal(t, "Greeter", proto.Name)
	assert.Equal(t, AccessibilityPublic, proto.Accessibility)
	assert.Equal(t, 7, proto.Offset)
	assert.True(t, proto.Attributes.Has(AttributeHasDocComment))
	assert.False(t, proto.Attributes.Has(AttributeIsOverride))
	assert.Equal(t, []string{"source.decl.attribute.objc"}, proto.Attributes.Other)
	assert.Equal(t, []string{"AnyObject"}, proto.InheritedTypes)

	// The string element inside key.substructure is skipped
	require.Len(t, proto.Children, 1)
	assert.Equal(t, KindFunctionMethodInstance, proto.Children[0].Kind)
	assert.Equal(t, "greet()", proto.Children[0].Name)

	assert.Equal(t, KindUnknown, root.Children[1].Kind)
	assert.Equal(t, AccessibilityUnspecified, root.Children[1].Accessibility)
}

func TestParseStructure_MissingFields(t *testing.T) {
	root, err := ParseStructure([]byte(`{"key.substructure": [
  {"key.kind": "source.lang.swift.decl.var.local"},
  {"key.kind": "source.lang.swift.decl.var.local", "key.name": "x", "key.offset": 0}
]}`))
	require.NoError(t, err)
	require.Len(t, root.Children, 2)

	assert.False(t, root.HasOffset())
	assert.False(t, root.Children[0].HasName())
	assert.False(t, root.Children[0].HasOffset())
	assert.Equal(t, NoOffset, root.Children[0].Offset)

	assert.True(t, root.Children[1].HasName())
	assert.True(t, root.Children[1].HasOffset())
	assert.Equal(t, 0, root.Children[1].Offset)
}

func TestParseStructure_Errors(t *testing.T) {
	_, err := ParseStructure([]byte("   \n"))
	assert.ErrorIs(t, err, ErrEmptyStructure)

	_, err = ParseStructure([]byte(`{"key.substructure": [`))
	assert.Error(t, err)
}

func TestRawTagMapping(t *testing.T) {
	tests := []struct {
		tag  string
		kind Kind
	}{
		{"source.lang.swift.decl.class", KindClass},
		{"source.lang.swift.decl.enumelement", KindEnumCase},
		{"source.lang.swift.decl.var.parameter", KindVarParameter},
		{"source.lang.swift.decl.function.subscript", KindFunctionSubscript},
		{"source.lang.swift.decl.enumcase", KindUnknown},
		{"", KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindFromRaw(tt.tag))
		})
	}

	assert.Equal(t, AccessibilityFilePrivate, AccessibilityFromRaw("source.lang.swift.accessibility.fileprivate"))
	assert.Equal(t, AttributeIsIBOutlet, AttributeFromRaw("source.decl.attribute.iboutlet"))
	assert.Equal(t, AttributeOther, AttributeFromRaw("source.decl.attribute.final"))
}

func TestAccessibility(t *testing.T) {
	assert.True(t, AccessibilityPublic.NeedsDocumentation())
	assert.True(t, AccessibilityInternal.NeedsDocumentation())
	assert.False(t, AccessibilityPrivate.NeedsDocumentation())
	assert.False(t, AccessibilityFilePrivate.NeedsDocumentation())
	assert.False(t, AccessibilityUnspecified.NeedsDocumentation())
}

func TestNameStrippingLeadingUnderscoreIfPrivate(t *testing.T) {
	tests := []struct {
		name   string
		access Accessibility
		want   string
	}{
		{"_id", AccessibilityPrivate, "id"},
		{"_id", AccessibilityFilePrivate, "id"},
		{"_id", AccessibilityPublic, "_id"},
		{"__id", AccessibilityPrivate, "_id"},
		{"id", AccessibilityPrivate, "id"},
		{"", AccessibilityPrivate, ""},
	}
	for _, tt := range tests {
		n := &Node{Name: tt.name, Accessibility: tt.access}
		assert.Equal(t, tt.want, n.NameStrippingLeadingUnderscoreIfPrivate(), "%q %s", tt.name, tt.access)
	}
}

func TestWalk_PreOrder(t *testing.T) {
	root := &Node{Children: []*Node{
		{Name: "A", Children: []*Node{
			{Name: "A1", Children: []*Node{{Name: "A1a"}}},
			{Name: "A2"},
		}},
		nil,
		{Name: "B"},
	}}

	var names []string
	root.Walk(func(n *Node) { names = append(names, n.Name) })

	assert.Equal(t, []string{"A", "A1", "A1a", "A2", "B"}, names)
}

func TestChildrenOfKind(t *testing.T) {
	root := &Node{Children: []*Node{
		{Name: "P", Kind: KindProtocol},
		{Name: "C", Kind: KindClass},
		{Name: "Q", Kind: KindProtocol},
	}}
	got := root.ChildrenOfKind(KindProtocol)
	require.Len(t, got, 2)
	assert.Equal(t, "P", got[0].Name)
	assert.Equal(t, "Q", got[1].Name)

	var nilNode *Node
	assert.Nil(t, nilNode.ChildrenOfKind(KindProtocol))
}

func TestFileLocation(t *testing.T) {
	f := NewFile("Foo.swift", []byte("// doc\npublic class Foo {\n  var foo: String\n}\n"), nil)

	assert.Equal(t, Location{File: "Foo.swift", Line: 1, Character: 1, Offset: 0}, f.Location(0))
	assert.Equal(t, Location{File: "Foo.swift", Line: 2, Character: 1, Offset: 7}, f.Location(7))
	assert.Equal(t, Location{File: "Foo.swift", Line: 3, Character: 3, Offset: 28}, f.Location(28))

	noContents := NewFile("Bar.swift", nil, nil)
	loc := noContents.Location(12)
	assert.False(t, loc.HasLine())
	assert.Equal(t, Location{File: "Bar.swift", Offset: 12}, loc)

	assert.NotNil(t, noContents.Root)
}

func TestStructureFileParser(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "Greeter.swift")
	require.NoError(t, os.WriteFile(source, []byte("public protocol Greeter {}\n"), 0644))
	require.NoError(t, os.WriteFile(source+DefaultStructureSuffix, []byte(greeterStructure), 0644))

	parser := NewStructureFileParser("")

	t.Run("source path", func(t *testing.T) {
		file, err := parser.Parse(context.Background(), source)
		require.NoError(t, err)
		assert.Equal(t, source, file.Path)
		assert.NotEmpty(t, file.Contents)
		assert.Len(t, file.Root.Children, 2)
	})

	t.Run("structure path", func(t *testing.T) {
		file, err := parser.Parse(context.Background(), source+DefaultStructureSuffix)
		require.NoError(t, err)
		assert.Equal(t, source, file.Path)
		assert.NotEmpty(t, file.Contents)
	})

	t.Run("missing structure", func(t *testing.T) {
		_, err := parser.Parse(context.Background(), filepath.Join(dir, "Missing.swift"))
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := parser.Parse(ctx, source)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewCommandParser(t *testing.T) {
	p := NewCommandParser(nil)
	assert.Equal(t, "sourcekitten", p.Name)
	assert.Equal(t, []string{"structure", "--file"}, p.Args)

	p = NewCommandParser([]string{"my-tool", "dump"})
	assert.Equal(t, "my-tool", p.Name)
	assert.Equal(t, []string{"dump"}, p.Args)

	_, err := p.Parse(context.Background(), filepath.Join(t.TempDir(), "missing.swift"))
	assert.Error(t, err)
}
