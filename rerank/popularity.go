package rerank

import (
	"context"

	"github.com/glowteam/glowrec/core"
	"github.com/glowteam/glowrec/pipeline"
)

// PopularityBoost 按全量日志统计每个商品的全局交互频次，
// 用最大频次归一化后乘权重做加法加成：score += normalized * Weight。
// 空日志时分母兜底为 1。
type PopularityBoost struct {
	Weight float64 // 热度权重，来自当次请求的权重快照
}

func (n *PopularityBoost) Name() string        { return "rerank.popularity" }
func (n *PopularityBoost) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *PopularityBoost) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.ScoredItem,
) ([]*core.ScoredItem, error) {
	if len(items) == 0 || rctx == nil || n.Weight == 0 {
		return items, nil
	}

	counts := make(map[core.ProductID]int, len(rctx.Interactions))
	max := 1 // 空日志兜底
	for _, ev := range rctx.Interactions {
		counts[ev.ProductID]++
		if counts[ev.ProductID] > max {
			max = counts[ev.ProductID]
		}
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		it.Score += float64(counts[it.ProductID]) / float64(max) * n.Weight
	}
	return items, nil
}
