package core

import "github.com/glowteam/glowrec/pkg/utils"

// ScoredItem 是推荐链路中的统一承载结构：商品引用、分数、置信度与解释。
// 每次请求新建，从不落盘。
type ScoredItem struct {
	ProductID ProductID // 合并时的唯一键
	Product   *Product  // 引擎可能只知道 id，合并阶段按目录补齐；补不齐即丢弃

	Score      float64
	Confidence float64 // 0-1，两个引擎的一致性/覆盖度

	Explanation string   // 人类可读解释，可为空
	Reasons     []string // 结构化原因标签，可为空
}

// NewScoredItem 创建一个仅含 id 的条目。
func NewScoredItem(id ProductID) *ScoredItem {
	return &ScoredItem{ProductID: id}
}

// AddReason 追加原因标签，保序去重。
func (it *ScoredItem) AddReason(tags ...string) {
	it.Reasons = utils.MergeReasons(it.Reasons, tags)
}
