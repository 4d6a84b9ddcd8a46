// Package sample generates trees for demos and benchmarks
package sample

import (
	"math/rand/v2"
	"strconv"

	"github.com/pstuifzand/tui-dragtree/internal/model"
)

// Params shapes a generated tree
type Params struct {
	Roots       int
	MaxLevel    int
	MaxChildren int
}

// Generate builds a tree with dotted ids: roots are "1", "2", ..., the
// children of "2" are "2.1", "2.2", .... Every node above MaxLevel gets between
// one and MaxChildren children; nodes on MaxLevel are leaves.
func Generate(r *rand.Rand, p Params) []*model.Node[string] {
	roots := make([]*model.Node[string], 0, p.Roots)
	for i := 1; i <= p.Roots; i++ {
		roots = append(roots, generateNode(r, p, "", i, 1))
	}
	return roots
}

func generateNode(r *rand.Rand, p Params, parentID string, index, level int) *model.Node[string] {
	id := strconv.Itoa(index)
	if parentID != "" {
		id = parentID + "." + id
	}
	n := model.NewLeaf(id, "Node "+id, index)

	if level < p.MaxLevel && p.MaxChildren > 0 {
		count := r.IntN(p.MaxChildren) + 1
		n.Children = make([]*model.Node[string], 0, count)
		for i := 1; i <= count; i++ {
			n.Children = append(n.Children, generateNode(r, p, id, i, level+1))
		}
	}
	return n
}

// Count returns the number of nodes in the tree
func Count(roots []*model.Node[string]) int {
	count := 0
	model.Walk(roots, func(*model.Node[string], *model.Node[string], int) bool {
		count++
		return true
	})
	return count
}

// NewRand returns a generator seeded with seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
