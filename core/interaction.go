package core

import "time"

// InteractionType 是用户行为类型。
type InteractionType string

const (
	InteractionView     InteractionType = "view"
	InteractionClick    InteractionType = "click"
	InteractionPurchase InteractionType = "purchase"
	InteractionFavorite InteractionType = "favorite"
	InteractionReview   InteractionType = "review"
	InteractionSearch   InteractionType = "search"
)

// 行为的隐式权重：没有显式评分时，用行为强度近似偏好。
// 购买 > 收藏 > 评价 > 点击 > 浏览 > 搜索。
var implicitWeights = map[InteractionType]float64{
	InteractionPurchase: 5.0,
	InteractionFavorite: 4.0,
	InteractionReview:   3.0,
	InteractionClick:    2.0,
	InteractionView:     1.0,
	InteractionSearch:   0.5,
}

// ImplicitWeight 返回行为类型的隐式偏好权重，未知类型记 0。
func (t InteractionType) ImplicitWeight() float64 {
	return implicitWeights[t]
}

// Valid 检查行为类型是否在枚举内。
func (t InteractionType) Valid() bool {
	_, ok := implicitWeights[t]
	return ok
}

// InteractionEvent 是追加写入的行为日志条目。引擎只读，从不修改。
// 同一 (user, product) 允许多条事件，计算隐式偏好时全部计入、不去重。
type InteractionEvent struct {
	UserID    string          `json:"user_id"`
	ProductID ProductID       `json:"product_id"`
	Type      InteractionType `json:"type"`
	Rating    *float64        `json:"rating,omitempty"`     // 1-5，仅 review/purchase 有意义
	TimeSpent *float64        `json:"time_spent,omitempty"` // 秒，>= 0
	Timestamp time.Time       `json:"timestamp"`
}

// PreferenceScore 返回事件的偏好分：有显式评分用评分，否则用隐式权重。
func (e *InteractionEvent) PreferenceScore() float64 {
	if e.Rating != nil {
		return *e.Rating
	}
	return e.Type.ImplicitWeight()
}

// Validate 在边界层校验事件。
func (e *InteractionEvent) Validate() error {
	if e.UserID == "" || e.ProductID == "" {
		return NewDomainError(ModuleInteraction, ErrorCodeInvalidInput, "user id and product id are required")
	}
	if !e.Type.Valid() {
		return NewDomainError(ModuleInteraction, ErrorCodeInvalidInput, "unknown interaction type "+string(e.Type))
	}
	if e.Rating != nil && (*e.Rating < 1 || *e.Rating > 5) {
		return NewDomainError(ModuleInteraction, ErrorCodeInvalidInput, "rating out of range")
	}
	if e.TimeSpent != nil && *e.TimeSpent < 0 {
		return NewDomainError(ModuleInteraction, ErrorCodeInvalidInput, "negative time spent")
	}
	return nil
}

// PartitionByUser 把全量日志按用户切分，保持原始顺序。
func PartitionByUser(events []InteractionEvent) map[string][]InteractionEvent {
	out := make(map[string][]InteractionEvent)
	for _, ev := range events {
		out[ev.UserID] = append(out[ev.UserID], ev)
	}
	return out
}

// PreferenceByProduct 把一个用户的事件折叠为 product -> 偏好分。
// 多条事件累加（不去重），这是隐式权重的约定口径。
func PreferenceByProduct(events []InteractionEvent) map[ProductID]float64 {
	out := make(map[ProductID]float64, len(events))
	for _, ev := range events {
		out[ev.ProductID] += ev.PreferenceScore()
	}
	return out
}
