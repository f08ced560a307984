package decl

// Kind represents the category of a declaration
type Kind int

const (
	KindUnknown Kind = iota
	KindClass
	KindStruct
	KindEnum
	KindEnumCase
	KindProtocol
	KindExtension
	KindTypealias
	KindVarGlobal
	KindVarInstance
	KindVarStatic
	KindVarClass
	KindVarLocal
	KindVarParameter
	KindFunctionFree
	KindFunctionMethodInstance
	KindFunctionMethodStatic
	KindFunctionMethodClass
	KindFunctionSubscript
)

var kindNames = map[Kind]string{
	KindUnknown:                "unknown",
	KindClass:                  "class",
	KindStruct:                 "struct",
	KindEnum:                   "enum",
	KindEnumCase:               "enumcase",
	KindProtocol:               "protocol",
	KindExtension:              "extension",
	KindTypealias:              "typealias",
	KindVarGlobal:              "var.global",
	KindVarInstance:            "var.instance",
	KindVarStatic:              "var.static",
	KindVarClass:               "var.class",
	KindVarLocal:               "var.local",
	KindVarParameter:           "var.parameter",
	KindFunctionFree:           "function.free",
	KindFunctionMethodInstance: "function.method.instance",
	KindFunctionMethodStatic:   "function.method.static",
	KindFunctionMethodClass:    "function.method.class",
	KindFunctionSubscript:      "function.subscript",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[KindUnknown]
}

// KindSet is a fixed set of declaration kinds
type KindSet map[Kind]bool

// NewKindSet builds a set from the given kinds
func NewKindSet(kinds ...Kind) KindSet {
	s := make(KindSet, len(kinds))
	for _, k := range kinds {
		s[k] = true
	}
	return s
}

// Contains reports whether k is in the set
func (s KindSet) Contains(k Kind) bool {
	return s[k]
}

// Accessibility is the visibility scope of a declaration
type Accessibility int

const (
	AccessibilityUnspecified Accessibility = iota
	AccessibilityPublic
	AccessibilityInternal
	AccessibilityPrivate
	AccessibilityFilePrivate
)

func (a Accessibility) String() string {
	switch a {
	case AccessibilityPublic:
		return "public"
	case AccessibilityInternal:
		return "internal"
	case AccessibilityPrivate:
		return "private"
	case AccessibilityFilePrivate:
		return "fileprivate"
	default:
		return "unspecified"
	}
}

// NeedsDocumentation reports whether declarations in this scope are expected to carry
// documentation. Only public and internal scopes do.
func (a Accessibility) NeedsDocumentation() bool {
	return a == AccessibilityPublic || a == AccessibilityInternal
}

// IsPrivate reports whether the scope is private or fileprivate
func (a Accessibility) IsPrivate() bool {
	return a == AccessibilityPrivate || a == AccessibilityFilePrivate
}

// Attribute is a declaration attribute tag
type Attribute int

const (
	AttributeOther Attribute = iota
	AttributeHasDocComment
	AttributeIsOverride
	AttributeIsIBOutlet
)

// Attributes holds the recognized attribute flags of a declaration plus any opaque tags
// the adapter did not recognize.
type Attributes struct {
	flags uint8
	Other []string
}

// NewAttributes creates an attribute set from recognized tags
func NewAttributes(attrs ...Attribute) Attributes {
	var a Attributes
	for _, attr := range attrs {
		a.Add(attr)
	}
	return a
}

// Add sets a recognized attribute. AttributeOther is ignored; use AddOther.
func (a *Attributes) Add(attr Attribute) {
	if attr == AttributeOther {
		return
	}
	a.flags |= 1 << uint(attr)
}

// AddOther records an opaque attribute tag
func (a *Attributes) AddOther(tag string) {
	a.Other = append(a.Other, tag)
}

// Has reports whether a recognized attribute is set
func (a Attributes) Has(attr Attribute) bool {
	if attr == AttributeOther {
		return len(a.Other) > 0
	}
	return a.flags&(1<<uint(attr)) != 0
}

// NoOffset marks a node whose structure carried no offset
const NoOffset = -1

// Node is a single declaration in a file's declaration tree. An empty Name means the
// structure carried no name.
type Node struct {
	Kind           Kind
	Name           string
	Accessibility  Accessibility
	Attributes     Attributes
	InheritedTypes []string
	Offset         int
	Children       []*Node
}

// HasName reports whether the declaration is named
func (n *Node) HasName() bool {
	return n.Name != ""
}

// HasOffset reports whether the declaration has a position in the file
func (n *Node) HasOffset() bool {
	return n.Offset >= 0
}

// NameStrippingLeadingUnderscoreIfPrivate returns the name without a single leading
// underscore when the declaration is private.
func (n *Node) NameStrippingLeadingUnderscoreIfPrivate() string {
	if n.Accessibility.IsPrivate() && len(n.Name) > 0 && n.Name[0] == '_' {
		return n.Name[1:]
	}
	return n.Name
}

// Walk visits every descendant of n depth-first, pre-order, in source order. The node
// itself is not visited.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		fn(child)
		child.Walk(fn)
	}
}

// ChildrenOfKind returns the direct children with the given kind
func (n *Node) ChildrenOfKind(kind Kind) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, child := range n.Children {
		if child != nil && child.Kind == kind {
			out = append(out, child)
		}
	}
	return out
}
