package model

import (
	"errors"
	"fmt"
)

// ErrInconsistent is returned by Validate when the maps drift from the tree
var ErrInconsistent = errors.New("tree and index are inconsistent")

// Index holds the lookup tables kept next to the tree: child id to parent id
// (absent means root) and id to the current node instance.
type Index[ID comparable] struct {
	Parents map[ID]ID
	Nodes   map[ID]*Node[ID]
}

// BuildIndex derives both lookup tables from the tree
func BuildIndex[ID comparable](roots []*Node[ID]) Index[ID] {
	idx := Index[ID]{
		Parents: make(map[ID]ID),
		Nodes:   make(map[ID]*Node[ID]),
	}
	Walk(roots, func(n *Node[ID], parent *Node[ID], _ int) bool {
		idx.Nodes[n.ID] = n
		if parent != nil {
			idx.Parents[n.ID] = parent.ID
		}
		return true
	})
	return idx
}

// Parent returns the parent id of id and whether it has one
func (idx Index[ID]) Parent(id ID) (ID, bool) {
	p, ok := idx.Parents[id]
	return p, ok
}

// Ancestors returns the chain of parent ids of id, nearest first
func (idx Index[ID]) Ancestors(id ID) []ID {
	var chain []ID
	seen := make(map[ID]struct{})
	cur, ok := idx.Parents[id]
	for ok {
		if _, loop := seen[cur]; loop {
			break
		}
		seen[cur] = struct{}{}
		chain = append(chain, cur)
		cur, ok = idx.Parents[cur]
	}
	return chain
}

// Validate checks that the index matches the tree exactly: every node is
// registered with its own instance, every parent entry matches the nesting,
// no id appears twice, and siblings are numbered 1..n.
func Validate[ID comparable](roots []*Node[ID], idx Index[ID]) error {
	seen := make(map[ID]struct{})
	var errs []error

	checkSiblings := func(parent string, siblings []*Node[ID]) {
		for i, n := range siblings {
			if n.OrderIndex != i+1 {
				errs = append(errs, fmt.Errorf("%w: %v under %s has orderIndex %d at position %d",
					ErrInconsistent, n.ID, parent, n.OrderIndex, i+1))
			}
		}
	}
	checkSiblings("root", roots)

	var visit func(nodes []*Node[ID], parent *Node[ID])
	visit = func(nodes []*Node[ID], parent *Node[ID]) {
		for _, n := range nodes {
			if _, dup := seen[n.ID]; dup {
				errs = append(errs, fmt.Errorf("%w: duplicate node %v", ErrInconsistent, n.ID))
				continue
			}
			seen[n.ID] = struct{}{}

			if idx.Nodes[n.ID] != n {
				errs = append(errs, fmt.Errorf("%w: node map entry for %v is stale", ErrInconsistent, n.ID))
			}
			p, hasParent := idx.Parents[n.ID]
			switch {
			case parent == nil && hasParent:
				errs = append(errs, fmt.Errorf("%w: root %v has parent entry %v", ErrInconsistent, n.ID, p))
			case parent != nil && (!hasParent || p != parent.ID):
				errs = append(errs, fmt.Errorf("%w: %v should have parent %v", ErrInconsistent, n.ID, parent.ID))
			}

			checkSiblings(fmt.Sprint(n.ID), n.Children)
			visit(n.Children, n)
		}
	}
	visit(roots, nil)

	if len(idx.Nodes) != len(seen) {
		errs = append(errs, fmt.Errorf("%w: node map has %d entries, tree has %d nodes",
			ErrInconsistent, len(idx.Nodes), len(seen)))
	}
	for child := range idx.Parents {
		if _, ok := seen[child]; !ok {
			errs = append(errs, fmt.Errorf("%w: parent entry for unknown node %v", ErrInconsistent, child))
		}
	}

	return errors.Join(errs...)
}
