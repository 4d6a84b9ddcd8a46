// Package reorder maps a finished drag in the visible sequence back onto the
// nested tree.
package reorder

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/davecgh/go-spew/spew"
	"github.com/pstuifzand/tui-dragtree/internal/model"
)

var (
	// ErrIndexOutOfRange is returned when from or to is not a row of the visible sequence
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrUnknownNode is returned when a row is missing from the index
	ErrUnknownNode = errors.New("node not in index")
)

// Reason explains the outcome of a reconcile
type Reason int

const (
	Moved          Reason = iota
	SamePosition          // dropped back onto itself
	IntoDescendant        // dropped inside its own subtree
)

func (r Reason) String() string {
	switch r {
	case Moved:
		return "moved"
	case SamePosition:
		return "same position"
	case IntoDescendant:
		return "into descendant"
	default:
		return "unknown"
	}
}

// Result is the outcome of Reconcile. When Changed is false, Roots and Index
// describe the unchanged input.
type Result[ID comparable] struct {
	Roots   []*model.Node[ID]
	Index   model.Index[ID]
	Changed bool
	Reason  Reason

	// OldIndex is the moved node's position among its old siblings and
	// NewIndex its position among its new siblings, both 0-based
	OldIndex int
	NewIndex int
}

// Reconciler applies finished drags to the tree
type Reconciler[ID comparable] struct {
	logger *slog.Logger

	// Debug validates every result against its index and logs any drift
	Debug bool
}

// New creates a Reconciler. A nil logger uses slog.Default().
func New[ID comparable](logger *slog.Logger) *Reconciler[ID] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler[ID]{logger: logger}
}

// Reconcile moves the row at from to the slot claimed by the row at to.
//
// Dropping onto a row without children makes the dragged node that row's
// first child. Dropping onto any other row places the dragged node before it
// among the target's siblings. The input tree and index are not modified;
// a changed result carries a freshly built tree and index.
func (r *Reconciler[ID]) Reconcile(flat []model.FlatNode[ID], from, to int, idx model.Index[ID]) (Result[ID], error) {
	if from < 0 || from >= len(flat) || to < 0 || to >= len(flat) {
		return Result[ID]{}, fmt.Errorf("%w: from=%d to=%d len=%d", ErrIndexOutOfRange, from, to, len(flat))
	}

	dragged := idx.Nodes[flat[from].Node.ID]
	target := idx.Nodes[flat[to].Node.ID]
	if dragged == nil || target == nil {
		return Result[ID]{}, fmt.Errorf("%w: %v -> %v", ErrUnknownNode, flat[from].Node.ID, flat[to].Node.ID)
	}

	roots := rootsOf(flat, idx)
	unchanged := func(reason Reason) Result[ID] {
		return Result[ID]{Roots: roots, Index: idx, Reason: reason, OldIndex: -1, NewIndex: -1}
	}

	if from == to {
		return unchanged(SamePosition), nil
	}

	into := target.AcceptsChildren()
	var toParent ID
	hasToParent := true
	if into {
		toParent = target.ID
	} else {
		toParent, hasToParent = idx.Parents[target.ID]
	}

	if hasToParent && (toParent == dragged.ID || slices.Contains(idx.Ancestors(toParent), dragged.ID)) {
		r.logger.Debug("drop rejected: target is inside the dragged subtree",
			"node", dragged.ID, "target", target.ID, "from", from, "to", to)
		return unchanged(IntoDescendant), nil
	}

	fromParent, hasFromParent := idx.Parents[dragged.ID]
	sameParent := hasFromParent == hasToParent && (!hasToParent || fromParent == toParent)

	oldList := r.siblings(roots, idx, fromParent, hasFromParent)
	oldPos := locate(oldList, dragged)
	if oldPos < 0 {
		return Result[ID]{}, fmt.Errorf("%w: %v is not among its parent's children", ErrUnknownNode, dragged.ID)
	}

	newPos := 0
	if !into {
		newPos = locate(r.siblings(roots, idx, toParent, hasToParent), target)
		if newPos < 0 {
			return Result[ID]{}, fmt.Errorf("%w: %v is not among its parent's children", ErrUnknownNode, target.ID)
		}
	}

	// Removing the dragged node first shifts everything after it up by one
	insertAt := newPos
	if sameParent && oldPos < newPos {
		insertAt = max(newPos-1, 0)
	}

	order := make(map[ID]int)
	oldList = slices.Delete(oldList, oldPos, oldPos+1)
	for i, id := range oldList {
		order[id] = i + 1
	}

	newList := oldList
	if !sameParent {
		newList = r.siblings(roots, idx, toParent, hasToParent)
	}
	insertAt = min(insertAt, len(newList))
	newList = slices.Insert(newList, insertAt, dragged.ID)
	for i, id := range newList {
		order[id] = i + 1
	}

	parents := maps.Clone(idx.Parents)
	if parents == nil {
		parents = make(map[ID]ID)
	}
	if hasToParent {
		parents[dragged.ID] = toParent
	} else {
		delete(parents, dragged.ID)
	}

	var branch []ID
	if into {
		branch = append(branch, target.ID)
	}
	newRoots, newIdx := rebuild(roots, idx, parents, order, branch)

	if r.Debug {
		if err := model.Validate(newRoots, newIdx); err != nil {
			r.logger.Error("reconcile produced an inconsistent tree",
				"error", err, "parents", spew.Sdump(newIdx.Parents))
		}
	}

	r.logger.Debug("node moved",
		"node", dragged.ID, "oldIndex", oldPos, "newIndex", insertAt, "into", into)

	return Result[ID]{
		Roots:    newRoots,
		Index:    newIdx,
		Changed:  true,
		Reason:   Moved,
		OldIndex: oldPos,
		NewIndex: insertAt,
	}, nil
}

// siblings returns the ids of the children of parent, or of the roots when
// hasParent is false, ordered by OrderIndex. The slice is a fresh copy.
func (r *Reconciler[ID]) siblings(roots []*model.Node[ID], idx model.Index[ID], parent ID, hasParent bool) []ID {
	list := roots
	if hasParent {
		if p := idx.Nodes[parent]; p != nil {
			list = p.Children
		} else {
			list = nil
		}
	}
	sorted := slices.Clone(list)
	slices.SortStableFunc(sorted, func(a, b *model.Node[ID]) int { return cmp.Compare(a.OrderIndex, b.OrderIndex) })

	ids := make([]ID, len(sorted))
	for i, n := range sorted {
		ids[i] = n.ID
	}
	return ids
}

// locate finds n in list by its OrderIndex, falling back to a scan when the
// numbering disagrees with the list
func locate[ID comparable](list []ID, n *model.Node[ID]) int {
	if pos := n.OrderIndex - 1; pos >= 0 && pos < len(list) && list[pos] == n.ID {
		return pos
	}
	return slices.Index(list, n.ID)
}
