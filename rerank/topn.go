package rerank

import (
	"context"
	"sort"

	"github.com/glowteam/glowrec/core"
	"github.com/glowteam/glowrec/pipeline"
)

// TopN 按最终分稳定降序排序并截断到前 N 个。
// N <= 0 时只排序不截断。通常作为重排链的最后一个节点。
type TopN struct {
	N int
}

func (n *TopN) Name() string        { return "rerank.topn" }
func (n *TopN) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopN) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.ScoredItem,
) ([]*core.ScoredItem, error) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	if n.N > 0 && len(items) > n.N {
		items = items[:n.N]
	}
	return items, nil
}
