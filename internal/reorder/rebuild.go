package reorder

import (
	"cmp"
	"slices"

	"github.com/pstuifzand/tui-dragtree/internal/model"
)

// Reconstruct rebuilds the nested tree from the visible sequence and the
// index without applying any change. Only the level-0 rows of flat are used
// as entry points; hidden descendants are reached through the node map.
func Reconstruct[ID comparable](flat []model.FlatNode[ID], idx model.Index[ID]) ([]*model.Node[ID], model.Index[ID]) {
	return rebuild(rootsOf(flat, idx), idx, idx.Parents, nil, nil)
}

// rootsOf returns the current instances of the root rows of flat
func rootsOf[ID comparable](flat []model.FlatNode[ID], idx model.Index[ID]) []*model.Node[ID] {
	var roots []*model.Node[ID]
	for _, fn := range flat {
		if _, ok := idx.Parents[fn.Node.ID]; ok {
			continue
		}
		n := idx.Nodes[fn.Node.ID]
		if n == nil {
			n = fn.Node
		}
		roots = append(roots, n)
	}
	return roots
}

// rebuild creates a fresh tree from the parent table. Every node of the old
// tree is visited so collapsed subtrees survive. order overrides OrderIndex for
// the ids it holds; branch lists ids that must get a children field even when
// they end up without children.
func rebuild[ID comparable](
	oldRoots []*model.Node[ID],
	idx model.Index[ID],
	parents map[ID]ID,
	order map[ID]int,
	branch []ID,
) ([]*model.Node[ID], model.Index[ID]) {
	orderOf := func(id ID) int {
		if o, ok := order[id]; ok {
			return o
		}
		if n := idx.Nodes[id]; n != nil {
			return n.OrderIndex
		}
		return 0
	}
	byOrder := func(a, b ID) int { return cmp.Compare(orderOf(a), orderOf(b)) }

	var rootIDs []ID
	children := make(map[ID][]ID)
	old := make(map[ID]*model.Node[ID])
	model.Walk(oldRoots, func(n *model.Node[ID], _ *model.Node[ID], _ int) bool {
		if cur := idx.Nodes[n.ID]; cur != nil {
			n = cur
		}
		old[n.ID] = n
		if p, ok := parents[n.ID]; ok {
			children[p] = append(children[p], n.ID)
		} else {
			rootIDs = append(rootIDs, n.ID)
		}
		return true
	})

	out := model.Index[ID]{
		Parents: make(map[ID]ID, len(parents)),
		Nodes:   make(map[ID]*model.Node[ID], len(old)),
	}

	var build func(ids []ID, parent *model.Node[ID]) []*model.Node[ID]
	build = func(ids []ID, parent *model.Node[ID]) []*model.Node[ID] {
		slices.SortStableFunc(ids, byOrder)
		nodes := make([]*model.Node[ID], 0, len(ids))
		for i, id := range ids {
			prev := old[id]
			n := &model.Node[ID]{ID: id, Name: prev.Name, OrderIndex: i + 1}
			kids := children[id]
			if len(kids) > 0 || prev.Children != nil || slices.Contains(branch, id) {
				n.Children = build(kids, n)
			}
			out.Nodes[id] = n
			if parent != nil {
				out.Parents[id] = parent.ID
			}
			nodes = append(nodes, n)
		}
		return nodes
	}

	roots := build(rootIDs, nil)
	return roots, out
}
