package protocols

import "github.com/platinummonkey/declint/pkg/decl"

// Member is the signature of a declaration inside a protocol
type Member struct {
	Name string
	Kind decl.Kind
}

// MemberOf returns the member signature of a declaration
func MemberOf(n *decl.Node) Member {
	return Member{Name: n.Name, Kind: n.Kind}
}

// MemberSet is a set of protocol members
type MemberSet map[Member]struct{}

// Add inserts members into the set
func (s MemberSet) Add(members ...Member) {
	for _, m := range members {
		s[m] = struct{}{}
	}
}

// Contains reports whether m is in the set
func (s MemberSet) Contains(m Member) bool {
	_, ok := s[m]
	return ok
}

// MembersOfFile collects the immediate children of every top-level protocol in the tree
func MembersOfFile(root *decl.Node) []Member {
	var members []Member
	for _, proto := range root.ChildrenOfKind(decl.KindProtocol) {
		for _, child := range proto.Children {
			if child == nil {
				continue
			}
			members = append(members, MemberOf(child))
		}
	}
	return members
}
