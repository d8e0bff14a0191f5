package content

import (
	"strings"

	"github.com/glowteam/glowrec/core"
)

// 价格档位的阶梯值。档位边界可配，阶梯值固定。
const (
	tierBudget  = 0.2
	tierLow     = 0.5
	tierMedium  = 0.7
	tierPremium = 1.0
)

// 历史为空时的兜底默认值。
const (
	DefaultAvgPrice  = 50.0
	DefaultAvgRating = 3.5
)

// PriceTiers 是价格档位边界（低/中/高）。
type PriceTiers struct {
	Low    float64 `yaml:"low"`
	Medium float64 `yaml:"medium"`
	High   float64 `yaml:"high"`
}

// IngredientWeight 是被追踪成分及其重要性权重（0-1）。
// 切片顺序是向量布局的一部分，配置加载后不可重排。
type IngredientWeight struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
}

// Vectorizer 把商品与用户映射到同一布局的定长特征向量：
//
//	[肤质 one-hot（枚举序）] + [肤况 one-hot（枚举序）] +
//	[价格档位] + [评分/5] + [可持续 0/1] + [逐成分权重（配置序）]
//
// 商品向量与用户向量必须共享这份布局，余弦相似度才有意义，
// 这是内容引擎的核心不变量。
type Vectorizer struct {
	Ingredients []IngredientWeight
	Tiers       PriceTiers

	// 用户历史为空时的兜底均价/均分（0 值用包级默认补齐）。
	AvgPrice  float64
	AvgRating float64
}

// NewVectorizer 创建向量构建器，零值字段补默认。
func NewVectorizer(ingredients []IngredientWeight, tiers PriceTiers) *Vectorizer {
	v := &Vectorizer{Ingredients: ingredients, Tiers: tiers}
	v.applyDefaults()
	return v
}

func (v *Vectorizer) applyDefaults() {
	if v.Tiers.Low <= 0 {
		v.Tiers.Low = 20
	}
	if v.Tiers.Medium <= 0 {
		v.Tiers.Medium = 50
	}
	if v.Tiers.High <= 0 {
		v.Tiers.High = 100
	}
	if v.AvgPrice <= 0 {
		v.AvgPrice = DefaultAvgPrice
	}
	if v.AvgRating <= 0 {
		v.AvgRating = DefaultAvgRating
	}
}

// Dim 返回向量维度。固定配置下商品向量与用户向量长度恒等于 Dim。
func (v *Vectorizer) Dim() int {
	return len(core.SkinTypes) + len(core.SkinConcerns) + 3 + len(v.Ingredients)
}

// ProductVector 构建商品特征向量。
func (v *Vectorizer) ProductVector(p *core.Product) []float64 {
	vec := make([]float64, 0, v.Dim())

	for _, st := range core.SkinTypes {
		vec = append(vec, boolToFloat(p.HasSkinType(st)))
	}
	for _, sc := range core.SkinConcerns {
		vec = append(vec, boolToFloat(p.HasConcern(sc)))
	}

	vec = append(vec, v.priceTier(p.Price))
	vec = append(vec, p.Rating/5.0)
	vec = append(vec, boolToFloat(p.Sustainable))

	for _, ing := range v.Ingredients {
		if containsIngredient(p.Ingredients, ing.Name) {
			vec = append(vec, ing.Weight)
		} else {
			vec = append(vec, 0)
		}
	}
	return vec
}

// UserVector 从画像 + 历史构建用户偏好向量，布局与 ProductVector 完全一致。
// 历史为空时价格/评分用配置兜底值，成分占比记 0。
func (v *Vectorizer) UserVector(profile *core.UserProfile, history []*core.Product) []float64 {
	vec := make([]float64, 0, v.Dim())

	for _, st := range core.SkinTypes {
		vec = append(vec, boolToFloat(profile.SkinType == st))
	}
	for _, sc := range core.SkinConcerns {
		vec = append(vec, boolToFloat(profile.HasConcern(sc)))
	}

	avgPrice, avgRating := v.historyAverages(history)
	vec = append(vec, v.priceTier(avgPrice))
	vec = append(vec, avgRating/5.0)
	vec = append(vec, boolToFloat(profile.Sustainability))

	// 逐成分：含该成分的历史商品占比。分母用 max(len,1) 防除零。
	denom := float64(len(history))
	if denom < 1 {
		denom = 1
	}
	for _, ing := range v.Ingredients {
		count := 0
		for _, p := range history {
			if p != nil && containsIngredient(p.Ingredients, ing.Name) {
				count++
			}
		}
		vec = append(vec, float64(count)/denom)
	}
	return vec
}

func (v *Vectorizer) historyAverages(history []*core.Product) (avgPrice, avgRating float64) {
	if len(history) == 0 {
		return v.AvgPrice, v.AvgRating
	}
	var sumPrice, sumRating float64
	for _, p := range history {
		if p == nil {
			continue
		}
		sumPrice += p.Price
		sumRating += p.Rating
	}
	n := float64(len(history))
	return sumPrice / n, sumRating / n
}

// priceTier 把价格映射到阶梯标量：< Low → 0.2，< Medium → 0.5，< High → 0.7，否则 1.0。
func (v *Vectorizer) priceTier(price float64) float64 {
	switch {
	case price < v.Tiers.Low:
		return tierBudget
	case price < v.Tiers.Medium:
		return tierLow
	case price < v.Tiers.High:
		return tierMedium
	default:
		return tierPremium
	}
}

// containsIngredient 大小写不敏感的子串匹配：成分表任一条目包含目标成分名即命中。
func containsIngredient(list []string, name string) bool {
	needle := strings.ToLower(name)
	for _, ing := range list {
		if strings.Contains(strings.ToLower(ing), needle) {
			return true
		}
	}
	return false
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
