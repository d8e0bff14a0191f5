// Package hybrid 把内容引擎与协同引擎的产出合并成一份最终榜单：
// 并发取数、按商品合并打分、多样性惩罚、热度加成、排序截断，
// 以及由外部精度指标驱动的在线权重再平衡。
package hybrid

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/glowteam/glowrec/core"
	"github.com/glowteam/glowrec/pipeline"
	"github.com/glowteam/glowrec/rerank"
)

const (
	// DefaultLimit 是未指定 limit 时的返回条数。
	DefaultLimit = 10

	// DefaultLimitMultiplier 是引擎内部超取倍数：每个引擎先取
	// limit * multiplier 个候选，留给重排足够的调整空间。
	DefaultLimitMultiplier = 2
)

// Engine 是混合层眼中的打分引擎。两个实现：content.Scorer 与 collab.Scorer。
// 测试可以用桩实现注入故障。
type Engine interface {
	Name() string
	Score(
		ctx context.Context,
		rctx *core.RecommendContext,
		products []*core.Product,
		limit int,
	) ([]*core.ScoredItem, error)
}

// Options 是单次请求的可选项。
type Options struct {
	// Limit 最终返回条数，<= 0 取 DefaultLimit。
	Limit int

	// IncludeExplanations 是否带回解释与原因标签，nil 视为 true。
	IncludeExplanations *bool
}

func (o Options) limit() int {
	if o.Limit > 0 {
		return o.Limit
	}
	return DefaultLimit
}

func (o Options) includeExplanations() bool {
	return o.IncludeExplanations == nil || *o.IncludeExplanations
}

// EngineReport 记录一次混合调用里每个引擎的产出与被降级的错误。
// 引擎内部错误不会中断混合（降级为空结果），但也不静默吞掉：
// 编排层拿着 report 决定是否记日志/告警。
type EngineReport struct {
	ContentCount int
	CollabCount  int
	ContentErr   error
	CollabErr    error
}

// Degraded 返回是否有引擎被降级。
func (r *EngineReport) Degraded() bool {
	return r.ContentErr != nil || r.CollabErr != nil
}

// Blender 持有两个引擎、共享权重与重排配置。
// Recommend 并发安全：只读取权重快照；唯一的写入方是 UpdateWeights。
type Blender struct {
	Content Engine
	Collab  Engine
	Weights *Weights

	// LimitMultiplier 引擎超取倍数，<= 0 取默认 2。
	LimitMultiplier int

	// 多样性惩罚配置（零值取 rerank 包默认）。
	SameBrandPenalty        float64
	SimilarConcernsPenalty  float64
	ConcernOverlapThreshold float64

	// ExtraNodes 追加在热度加成之后、截断之前的自定义重排节点，
	// 可由配置文件经 NodeFactory 构建。
	ExtraNodes []pipeline.Node
}

// NewBlender 组装混合引擎。weights 为 nil 时使用默认初始权重。
func NewBlender(content, collab Engine, weights *Weights) *Blender {
	if weights == nil {
		weights = NewWeights(EngineWeights{})
	}
	return &Blender{Content: content, Collab: collab, Weights: weights}
}

// Recommend 生成最终榜单。
//
// 失败口径：画像缺失或目录为空 → 空结果，不报错；单引擎内部错误 →
// 该引擎降级为空，另一个引擎照常参与；两个引擎都空 →
// core.ErrNoRecommendations，这是核心唯一对外的失败。
func (b *Blender) Recommend(
	ctx context.Context,
	userID string,
	profile *core.UserProfile,
	products []*core.Product,
	interactions []core.InteractionEvent,
	opts Options,
) ([]*core.ScoredItem, *EngineReport, error) {
	report := &EngineReport{}
	if profile == nil || len(products) == 0 {
		return []*core.ScoredItem{}, report, nil
	}

	catalog := core.IndexByID(products)
	rctx := &core.RecommendContext{
		UserID:       userID,
		Profile:      profile,
		History:      resolveHistory(userID, interactions, catalog),
		Interactions: interactions,
	}

	weights := b.Weights.Snapshot()
	fetch := opts.limit() * b.multiplier()

	// 两个引擎并发执行；任一失败只降级自己，不影响对方。
	var contentItems, collabItems []*core.ScoredItem
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		items, err := b.Content.Score(egCtx, rctx, products, fetch)
		if err != nil {
			report.ContentErr = err
			return nil
		}
		contentItems = items
		return nil
	})
	eg.Go(func() error {
		items, err := b.Collab.Score(egCtx, rctx, products, fetch)
		if err != nil {
			report.CollabErr = err
			return nil
		}
		collabItems = items
		return nil
	})
	_ = eg.Wait() // goroutine 从不返回错误，错误都进了 report

	report.ContentCount = len(contentItems)
	report.CollabCount = len(collabItems)
	if len(contentItems) == 0 && len(collabItems) == 0 {
		return nil, report, core.ErrNoRecommendations
	}

	combined := b.combine(contentItems, collabItems, catalog, weights)

	nodes := []pipeline.Node{
		&rerank.DiversityPenalty{
			SameBrand:        b.SameBrandPenalty,
			SimilarConcerns:  b.SimilarConcernsPenalty,
			OverlapThreshold: b.ConcernOverlapThreshold,
		},
		&rerank.PopularityBoost{Weight: weights.Popularity},
	}
	nodes = append(nodes, b.ExtraNodes...)
	nodes = append(nodes, &rerank.TopN{N: opts.limit()})

	out, err := (&pipeline.Pipeline{Nodes: nodes}).Run(ctx, rctx, combined)
	if err != nil {
		return nil, report, err
	}

	if !opts.includeExplanations() {
		for _, it := range out {
			it.Explanation = ""
			it.Reasons = nil
		}
	}
	return out, report, nil
}

// UpdateWeights 是 EngineWeights 的唯一写入口：按外部精度指标做一步
// 爬山调整，相对并发的 Recommend 读是原子的。
func (b *Blender) UpdateWeights(m PrecisionMetrics) EngineWeights {
	return b.Weights.Rebalance(m)
}

// combine 把两个引擎的结果按商品合并：
// 单引擎命中的商品另一侧记 0；双引擎命中的累加两侧贡献并合并原因。
// combinedScore = content*W_content + collab*W_collab；
// confidence = (min(content, collab) + coverage) / 2，
// coverage 每个给出非零分的引擎贡献 0.5。
func (b *Blender) combine(
	contentItems, collabItems []*core.ScoredItem,
	catalog map[core.ProductID]*core.Product,
	w EngineWeights,
) []*core.ScoredItem {
	type pair struct {
		content float64
		collab  float64
		item    *core.ScoredItem
	}
	merged := make(map[core.ProductID]*pair, len(contentItems)+len(collabItems))
	order := make([]core.ProductID, 0, len(contentItems)+len(collabItems))

	for _, src := range contentItems {
		if src == nil {
			continue
		}
		it := core.NewScoredItem(src.ProductID)
		it.Product = src.Product
		it.Explanation = src.Explanation
		it.Reasons = src.Reasons
		it.AddReason(contentReasonTag)
		merged[src.ProductID] = &pair{content: src.Score, item: it}
		order = append(order, src.ProductID)
	}
	for _, src := range collabItems {
		if src == nil {
			continue
		}
		if p, ok := merged[src.ProductID]; ok {
			p.collab = src.Score
			p.item.AddReason(collabReasonTag)
			continue
		}
		// 协同侧可能只知道 id：按目录补齐，补不齐的静默丢弃
		product := src.Product
		if product == nil {
			product = catalog[src.ProductID]
		}
		if product == nil {
			continue
		}
		it := core.NewScoredItem(src.ProductID)
		it.Product = product
		it.Reasons = src.Reasons
		it.AddReason(collabReasonTag)
		merged[src.ProductID] = &pair{collab: src.Score, item: it}
		order = append(order, src.ProductID)
	}

	out := make([]*core.ScoredItem, 0, len(order))
	for _, id := range order {
		p := merged[id]
		p.item.Score = p.content*w.Content + p.collab*w.Collaborative
		p.item.Confidence = confidence(p.content, p.collab)
		out = append(out, p.item)
	}
	return out
}

// 合并阶段附加的引擎原因标签。
const (
	contentReasonTag = "Content-based matching"
	collabReasonTag  = "Similar user preferences"
)

func confidence(contentScore, collabScore float64) float64 {
	agreement := contentScore
	if collabScore < agreement {
		agreement = collabScore
	}
	var coverage float64
	if contentScore > 0 {
		coverage += 0.5
	}
	if collabScore > 0 {
		coverage += 0.5
	}
	return (agreement + coverage) / 2
}

func (b *Blender) multiplier() int {
	if b.LimitMultiplier > 0 {
		return b.LimitMultiplier
	}
	return DefaultLimitMultiplier
}

// resolveHistory 把用户的交互商品解析为目录子集：
// 匹配不到目录的 id 静默丢弃；同一商品只保留一次，顺序取首次交互序。
func resolveHistory(
	userID string,
	interactions []core.InteractionEvent,
	catalog map[core.ProductID]*core.Product,
) []*core.Product {
	seen := make(map[core.ProductID]bool)
	var history []*core.Product
	for _, ev := range interactions {
		if ev.UserID != userID || seen[ev.ProductID] {
			continue
		}
		seen[ev.ProductID] = true
		if p, ok := catalog[ev.ProductID]; ok {
			history = append(history, p)
		}
	}
	return history
}
