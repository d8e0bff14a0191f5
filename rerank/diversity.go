// Package rerank 提供混合引擎合并结果上的重排节点：
// 多样性惩罚、热度加成、排序截断。
package rerank

import (
	"context"

	"github.com/glowteam/glowrec/core"
	"github.com/glowteam/glowrec/pipeline"
)

// 惩罚系数与阈值的默认值。
const (
	DefaultSameBrandPenalty       = 0.7
	DefaultSimilarConcernsPenalty = 0.8
	DefaultOverlapThreshold       = 0.6
)

// DiversityPenalty 对与用户历史过于相似的候选做乘法降权：
//   - 品牌已在历史中出现 → 乘 SameBrand
//   - 候选肤况与历史肤况并集的重叠比例超过 OverlapThreshold → 乘 SimilarConcerns
//
// 重叠比例 = |候选肤况 ∩ 历史肤况| / max(|候选肤况|, 1)。
type DiversityPenalty struct {
	SameBrand        float64 // <= 0 取默认 0.7
	SimilarConcerns  float64 // <= 0 取默认 0.8
	OverlapThreshold float64 // <= 0 取默认 0.6
}

func (n *DiversityPenalty) Name() string        { return "rerank.diversity" }
func (n *DiversityPenalty) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *DiversityPenalty) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.ScoredItem,
) ([]*core.ScoredItem, error) {
	if len(items) == 0 || rctx == nil {
		return items, nil
	}

	brands := rctx.HistoryBrands()
	concerns := rctx.HistoryConcerns()

	for _, it := range items {
		if it == nil || it.Product == nil {
			continue
		}
		diversity := 1.0
		if it.Product.Brand != "" && brands[it.Product.Brand] {
			diversity *= n.sameBrand()
		}
		if overlapRatio(it.Product.SkinConcerns, concerns) > n.overlapThreshold() {
			diversity *= n.similarConcerns()
		}
		it.Score *= diversity
	}
	return items, nil
}

func (n *DiversityPenalty) sameBrand() float64 {
	if n.SameBrand <= 0 {
		return DefaultSameBrandPenalty
	}
	return n.SameBrand
}

func (n *DiversityPenalty) similarConcerns() float64 {
	if n.SimilarConcerns <= 0 {
		return DefaultSimilarConcernsPenalty
	}
	return n.SimilarConcerns
}

func (n *DiversityPenalty) overlapThreshold() float64 {
	if n.OverlapThreshold <= 0 {
		return DefaultOverlapThreshold
	}
	return n.OverlapThreshold
}

func overlapRatio(candidate []core.SkinConcern, history map[core.SkinConcern]bool) float64 {
	inter := 0
	for _, c := range candidate {
		if history[c] {
			inter++
		}
	}
	denom := len(candidate)
	if denom < 1 {
		denom = 1
	}
	return float64(inter) / float64(denom)
}
