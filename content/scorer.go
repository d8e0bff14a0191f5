// Package content 实现基于内容的打分引擎：
// 商品与用户共享同一布局的特征向量，按余弦相似度排序并生成可读解释。
package content

import (
	"context"
	"sort"
	"strings"

	"github.com/glowteam/glowrec/core"
	"github.com/glowteam/glowrec/pkg/vectormath"
)

// Scorer 是内容引擎。确定性、无副作用，从不修改输入。
type Scorer struct {
	Vec *Vectorizer
}

// NewScorer 创建内容引擎。
func NewScorer(vec *Vectorizer) *Scorer {
	if vec == nil {
		vec = NewVectorizer(nil, PriceTiers{})
	}
	return &Scorer{Vec: vec}
}

func (s *Scorer) Name() string { return "engine.content" }

// Recommend 对目录逐品打分：用户向量只算一次，逐品余弦相似，
// 按分数稳定降序（同分保持目录原序），截断到 limit。
func (s *Scorer) Recommend(
	profile *core.UserProfile,
	products []*core.Product,
	history []*core.Product,
	limit int,
) []*core.ScoredItem {
	if profile == nil || len(products) == 0 {
		return nil
	}

	userVec := s.Vec.UserVector(profile, history)

	out := make([]*core.ScoredItem, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		it := core.NewScoredItem(p.ID)
		it.Product = p
		it.Score = vectormath.CosineSimilarity(userVec, s.Vec.ProductVector(p))
		it.Reasons = explanationReasons(profile, p)
		it.Explanation = strings.Join(it.Reasons, "; ")
		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Score 实现 hybrid.Engine。
func (s *Scorer) Score(
	_ context.Context,
	rctx *core.RecommendContext,
	products []*core.Product,
	limit int,
) ([]*core.ScoredItem, error) {
	if rctx == nil || rctx.Profile == nil {
		return nil, nil
	}
	return s.Recommend(rctx.Profile, products, rctx.History, limit), nil
}

// explanationReasons 生成解释片段，按固定顺序拼接：
// 肤质匹配、肤况交集、可持续偏好。全不命中时为空列表，不视为错误。
func explanationReasons(profile *core.UserProfile, p *core.Product) []string {
	var reasons []string

	if p.HasSkinType(profile.SkinType) {
		reasons = append(reasons, "Perfect for "+string(profile.SkinType)+" skin")
	}

	var shared []string
	for _, c := range profile.SkinConcerns {
		if p.HasConcern(c) {
			shared = append(shared, string(c))
		}
	}
	if len(shared) > 0 {
		reasons = append(reasons, "Addresses your "+strings.Join(shared, ", ")+" concerns")
	}

	if p.Sustainable && profile.Sustainability {
		reasons = append(reasons, "Matches your sustainability preference")
	}
	return reasons
}
