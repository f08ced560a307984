package decl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyStructure is returned when a structure document has no content
var ErrEmptyStructure = errors.New("empty structure document")

const (
	kindPrefix          = "source.lang.swift.decl."
	accessibilityPrefix = "source.lang.swift.accessibility."

	attrDocComment = "source.decl.attribute.__raw_doc_comment"
	attrOverride   = "source.decl.attribute.override"
	attrIBOutlet   = "source.decl.attribute.iboutlet"
)

var rawKinds = map[string]Kind{
	kindPrefix + "class":                    KindClass,
	kindPrefix + "struct":                   KindStruct,
	kindPrefix + "enum":                     KindEnum,
	kindPrefix + "enumelement":              KindEnumCase,
	kindPrefix + "protocol":                 KindProtocol,
	kindPrefix + "extension":                KindExtension,
	kindPrefix + "typealias":                KindTypealias,
	kindPrefix + "var.global":               KindVarGlobal,
	kindPrefix + "var.instance":             KindVarInstance,
	kindPrefix + "var.static":               KindVarStatic,
	kindPrefix + "var.class":                KindVarClass,
	kindPrefix + "var.local":                KindVarLocal,
	kindPrefix + "var.parameter":            KindVarParameter,
	kindPrefix + "function.free":            KindFunctionFree,
	kindPrefix + "function.method.instance": KindFunctionMethodInstance,
	kindPrefix + "function.method.static":   KindFunctionMethodStatic,
	kindPrefix + "function.method.class":    KindFunctionMethodClass,
	kindPrefix + "function.subscript":       KindFunctionSubscript,
}

var rawAccessibility = map[string]Accessibility{
	accessibilityPrefix + "public":      AccessibilityPublic,
	accessibilityPrefix + "internal":    AccessibilityInternal,
	accessibilityPrefix + "private":     AccessibilityPrivate,
	accessibilityPrefix + "fileprivate": AccessibilityFilePrivate,
}

// KindFromRaw maps a raw structure kind tag to a Kind. Unrecognized tags map to
// KindUnknown.
func KindFromRaw(tag string) Kind {
	return rawKinds[tag]
}

// AccessibilityFromRaw maps a raw accessibility tag to an Accessibility
func AccessibilityFromRaw(tag string) Accessibility {
	return rawAccessibility[tag]
}

// AttributeFromRaw maps a raw attribute tag to an Attribute
func AttributeFromRaw(tag string) Attribute {
	switch tag {
	case attrDocComment:
		return AttributeHasDocComment
	case attrOverride:
		return AttributeIsOverride
	case attrIBOutlet:
		return AttributeIsIBOutlet
	default:
		return AttributeOther
	}
}

type rawAttribute struct {
	Attribute string `json:"key.attribute"`
}

type rawInheritedType struct {
	Name string `json:"key.name"`
}

type rawNode struct {
	Kind           string             `json:"key.kind"`
	Name           string             `json:"key.name"`
	Accessibility  string             `json:"key.accessibility"`
	Attributes     []rawAttribute     `json:"key.attributes"`
	InheritedTypes []rawInheritedType `json:"key.inheritedtypes"`
	Offset         *int               `json:"key.offset"`
	Substructure   []json.RawMessage  `json:"key.substructure"`
}

// ParseStructure decodes a structure JSON document into a declaration tree. Elements of
// key.substructure that are not objects of the expected shape are skipped.
func ParseStructure(data []byte) (*Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyStructure
	}

	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode structure: %w", err)
	}

	return raw.toNode(), nil
}

func (r *rawNode) toNode() *Node {
	n := &Node{
		Kind:          KindFromRaw(r.Kind),
		Name:          r.Name,
		Accessibility: AccessibilityFromRaw(r.Accessibility),
		Offset:        NoOffset,
	}
	if r.Offset != nil {
		n.Offset = *r.Offset
	}

	for _, attr := range r.Attributes {
		if a := AttributeFromRaw(attr.Attribute); a != AttributeOther {
			n.Attributes.Add(a)
		} else if attr.Attribute != "" {
			n.Attributes.AddOther(attr.Attribute)
		}
	}

	for _, inherited := range r.InheritedTypes {
		if inherited.Name != "" {
			n.InheritedTypes = append(n.InheritedTypes, inherited.Name)
		}
	}

	for _, msg := range r.Substructure {
		var child rawNode
		if err := json.Unmarshal(msg, &child); err != nil {
			continue
		}
		n.Children = append(n.Children, child.toNode())
	}

	return n
}
