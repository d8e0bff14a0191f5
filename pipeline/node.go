package pipeline

import (
	"context"

	"github.com/glowteam/glowrec/core"
)

// Kind 标记 Node 所处的阶段，便于观测与编排。
type Kind string

const (
	KindScore       Kind = "score"       // 打分阶段：引擎产出候选分
	KindFilter      Kind = "filter"      // 过滤阶段：剔除不合格候选
	KindReRank      Kind = "rerank"      // 重排阶段：多样性惩罚/热度加成/截断
	KindPostProcess Kind = "postprocess" // 后处理阶段：解释修饰等
)

// Node 是推荐链路的最小可组合单元。
// 统一 "输入 items -> 输出 items" 的形态，重排、截断、修饰都是同一种操作。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.ScoredItem,
	) ([]*core.ScoredItem, error)
}
