package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pstuifzand/tui-dragtree/internal/model"
)

// rankMatches returns the ids of nodes whose name fuzzy-matches query, best
// match first
func (a *App) rankMatches(query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	var ids, names []string
	model.Walk(a.tree.List().Roots(), func(n *model.Node[string], _ *model.Node[string], _ int) bool {
		ids = append(ids, n.ID)
		names = append(names, n.Name)
		return true
	})

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	matches := make([]string, len(ranks))
	for i, r := range ranks {
		matches[i] = ids[r.OriginalIndex]
	}
	return matches
}

// reveal expands the ancestors of every node matching query and selects the
// best match
func (a *App) reveal(query string) {
	matches := a.rankMatches(query)
	if len(matches) == 0 {
		a.SetStatus(fmt.Sprintf("No match for %q", query))
		return
	}

	l := a.tree.List()
	index := l.Index()
	var expand []string
	for _, id := range matches {
		expand = append(expand, index.Ancestors(id)...)
	}
	l.Expand(expand...)
	a.tree.SelectID(matches[0])
	a.SetStatus(fmt.Sprintf("%d matches for %q", len(matches), query))
}
