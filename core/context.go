package core

// RecommendContext 承载一次请求的用户/历史/日志信息，贯穿引擎与重排节点透传。
// 所有字段都是编排层预先取好的内存快照；链路内部不做任何 I/O。
type RecommendContext struct {
	UserID  string
	Profile *UserProfile

	// History 是用户交互过的商品（目录子集，按目录解析后的结果）。
	History []*Product

	// Users 是协同过滤可见的用户列表（含画像，可缺）。
	// 为空时协同引擎会从日志自行推出用户集合，画像项记 0。
	Users []User

	// Interactions 是全量行为日志（未过滤，引擎自行按用户/类型筛选）。
	Interactions []InteractionEvent

	// Params 请求级参数，供规则过滤等扩展使用。
	Params map[string]any
}

// HistoryBrands 返回历史商品的品牌集合。
func (rctx *RecommendContext) HistoryBrands() map[string]bool {
	out := make(map[string]bool, len(rctx.History))
	for _, p := range rctx.History {
		if p != nil && p.Brand != "" {
			out[p.Brand] = true
		}
	}
	return out
}

// HistoryConcerns 返回历史商品肤况诉求的并集。
func (rctx *RecommendContext) HistoryConcerns() map[SkinConcern]bool {
	out := make(map[SkinConcern]bool)
	for _, p := range rctx.History {
		if p == nil {
			continue
		}
		for _, c := range p.SkinConcerns {
			out[c] = true
		}
	}
	return out
}
