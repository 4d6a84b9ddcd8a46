// Package model contains the tree model shared by the list and the reconciler
package model

import (
	"cmp"
	"slices"
)

// Node represents a single node in the tree.
//
// Children == nil marks a leaf. A non-nil, empty Children slice marks an
// expandable branch that currently has no children.
type Node[ID comparable] struct {
	ID         ID          `json:"id"`
	Name       string      `json:"name"`
	OrderIndex int         `json:"orderIndex"`
	Children   []*Node[ID] `json:"children"`
}

// NewLeaf creates a leaf node
func NewLeaf[ID comparable](id ID, name string, orderIndex int) *Node[ID] {
	return &Node[ID]{ID: id, Name: name, OrderIndex: orderIndex}
}

// NewBranch creates a branch node and numbers its children 1..n
func NewBranch[ID comparable](id ID, name string, orderIndex int, children ...*Node[ID]) *Node[ID] {
	n := &Node[ID]{ID: id, Name: name, OrderIndex: orderIndex, Children: make([]*Node[ID], 0, len(children))}
	n.Children = append(n.Children, children...)
	Renumber(n.Children)
	return n
}

// IsLeaf returns true if the node has no children field at all
func (n *Node[ID]) IsLeaf() bool {
	return n.Children == nil
}

// IsEmptyBranch returns true if the node is expandable but has no children
func (n *Node[ID]) IsEmptyBranch() bool {
	return n.Children != nil && len(n.Children) == 0
}

// AcceptsChildren returns true if a drop onto this node makes the dropped
// node its first child rather than its sibling
func (n *Node[ID]) AcceptsChildren() bool {
	return len(n.Children) == 0
}

// FlatNode is a node of the visible sequence together with its depth
type FlatNode[ID comparable] struct {
	Node  *Node[ID]
	Level int
}

// Set is a set of node ids
type Set[ID comparable] map[ID]struct{}

// NewSet creates a set holding ids
func NewSet[ID comparable](ids ...ID) Set[ID] {
	s := make(Set[ID], len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set
func (s Set[ID]) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

// Add adds ids to the set
func (s Set[ID]) Add(ids ...ID) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Delete removes ids from the set
func (s Set[ID]) Delete(ids ...ID) {
	for _, id := range ids {
		delete(s, id)
	}
}

// Clone returns a copy of the set
func (s Set[ID]) Clone() Set[ID] {
	out := make(Set[ID], len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Renumber sets OrderIndex of every sibling to its position + 1
func Renumber[ID comparable](siblings []*Node[ID]) {
	for i, n := range siblings {
		n.OrderIndex = i + 1
	}
}

// Walk visits every node in depth-first pre-order, ignoring expansion.
// Returning false from fn skips the node's subtree.
func Walk[ID comparable](roots []*Node[ID], fn func(n *Node[ID], parent *Node[ID], level int) bool) {
	var visit func(nodes []*Node[ID], parent *Node[ID], level int)
	visit = func(nodes []*Node[ID], parent *Node[ID], level int) {
		for _, n := range ordered(nodes) {
			if fn(n, parent, level) {
				visit(n.Children, n, level+1)
			}
		}
	}
	visit(roots, nil, 0)
}

// AllIDs returns the ids of every node in depth-first pre-order
func AllIDs[ID comparable](roots []*Node[ID]) []ID {
	var ids []ID
	Walk(roots, func(n *Node[ID], _ *Node[ID], _ int) bool {
		ids = append(ids, n.ID)
		return true
	})
	return ids
}

// ExpandAll returns a set containing every node that has a children field
func ExpandAll[ID comparable](roots []*Node[ID]) Set[ID] {
	s := make(Set[ID])
	Walk(roots, func(n *Node[ID], _ *Node[ID], _ int) bool {
		if !n.IsLeaf() {
			s.Add(n.ID)
		}
		return true
	})
	return s
}

// Clone returns a deep copy of the tree
func Clone[ID comparable](roots []*Node[ID]) []*Node[ID] {
	if roots == nil {
		return nil
	}
	out := make([]*Node[ID], 0, len(roots))
	for _, n := range roots {
		c := &Node[ID]{ID: n.ID, Name: n.Name, OrderIndex: n.OrderIndex}
		if n.Children != nil {
			c.Children = Clone(n.Children)
		}
		out = append(out, c)
	}
	return out
}

// Equal compares two trees structurally, including the leaf/empty-branch
// distinction
func Equal[ID comparable](a, b []*Node[ID]) bool {
	if len(a) != len(b) || (a == nil) != (b == nil) {
		return false
	}
	for i := range a {
		x, y := a[i], b[i]
		if x.ID != y.ID || x.Name != y.Name || x.OrderIndex != y.OrderIndex {
			return false
		}
		if !Equal(x.Children, y.Children) {
			return false
		}
	}
	return true
}

// ordered returns nodes sorted by OrderIndex. The input is returned as is when
// it is already sorted, which is the normal case.
func ordered[ID comparable](nodes []*Node[ID]) []*Node[ID] {
	byOrder := func(a, b *Node[ID]) int { return cmp.Compare(a.OrderIndex, b.OrderIndex) }
	if slices.IsSortedFunc(nodes, byOrder) {
		return nodes
	}
	sorted := slices.Clone(nodes)
	slices.SortStableFunc(sorted, byOrder)
	return sorted
}
