// Package core 定义推荐域的基础类型：商品、画像、交互事件、打分条目与存储接口。
package core

// ProductID 是商品的唯一标识，全库统一用它做合并与去重的键。
type ProductID string

// SkinType 是肤质枚举。
type SkinType string

const (
	SkinTypeOily        SkinType = "oily"
	SkinTypeDry         SkinType = "dry"
	SkinTypeCombination SkinType = "combination"
	SkinTypeNormal      SkinType = "normal"
	SkinTypeSensitive   SkinType = "sensitive"
)

// SkinTypes 是全部肤质的固定顺序列表，特征向量的 one-hot 布局依赖该顺序。
var SkinTypes = []SkinType{
	SkinTypeOily,
	SkinTypeDry,
	SkinTypeCombination,
	SkinTypeNormal,
	SkinTypeSensitive,
}

// Valid 检查肤质取值是否合法。
func (t SkinType) Valid() bool {
	for _, st := range SkinTypes {
		if t == st {
			return true
		}
	}
	return false
}

// SkinConcern 是肤况诉求枚举。
type SkinConcern string

const (
	ConcernAcne              SkinConcern = "acne"
	ConcernAging             SkinConcern = "aging"
	ConcernDryness           SkinConcern = "dryness"
	ConcernSensitivity       SkinConcern = "sensitivity"
	ConcernHyperpigmentation SkinConcern = "hyperpigmentation"
	ConcernRedness           SkinConcern = "redness"
)

// SkinConcerns 是全部肤况诉求的固定顺序列表，特征向量的 one-hot 布局依赖该顺序。
var SkinConcerns = []SkinConcern{
	ConcernAcne,
	ConcernAging,
	ConcernDryness,
	ConcernSensitivity,
	ConcernHyperpigmentation,
	ConcernRedness,
}

// Valid 检查肤况取值是否合法。
func (c SkinConcern) Valid() bool {
	for _, sc := range SkinConcerns {
		if c == sc {
			return true
		}
	}
	return false
}

// Product 是商品目录条目。
type Product struct {
	ID           ProductID     `json:"id"`
	Name         string        `json:"name"`
	Brand        string        `json:"brand"`
	Price        float64       `json:"price"`
	Rating       float64       `json:"rating"` // 0..5
	Ingredients  []string      `json:"ingredients"`
	SkinTypes    []SkinType    `json:"skin_types"`
	SkinConcerns []SkinConcern `json:"skin_concerns"`
	Sustainable  bool          `json:"sustainable"`
}

// HasSkinType 检查商品是否适配指定肤质。
func (p *Product) HasSkinType(t SkinType) bool {
	for _, st := range p.SkinTypes {
		if st == t {
			return true
		}
	}
	return false
}

// HasConcern 检查商品是否针对指定肤况。
func (p *Product) HasConcern(c SkinConcern) bool {
	for _, sc := range p.SkinConcerns {
		if sc == c {
			return true
		}
	}
	return false
}

// Validate 做边界层校验：ID 必填，价格与评分在合法区间，枚举取值合法。
func (p *Product) Validate() error {
	if p == nil || p.ID == "" {
		return NewDomainError(ModuleCatalog, ErrorCodeInvalidInput, "product id is required")
	}
	if p.Price < 0 {
		return NewDomainError(ModuleCatalog, ErrorCodeInvalidInput, "product price must be non-negative")
	}
	if p.Rating < 0 || p.Rating > 5 {
		return NewDomainError(ModuleCatalog, ErrorCodeInvalidInput, "product rating must be in [0, 5]")
	}
	for _, st := range p.SkinTypes {
		if !st.Valid() {
			return NewDomainError(ModuleCatalog, ErrorCodeInvalidInput, "unknown skin type "+string(st))
		}
	}
	for _, sc := range p.SkinConcerns {
		if !sc.Valid() {
			return NewDomainError(ModuleCatalog, ErrorCodeInvalidInput, "unknown skin concern "+string(sc))
		}
	}
	return nil
}

// IndexByID 按 ID 建立商品索引，nil 商品被跳过。
func IndexByID(products []*Product) map[ProductID]*Product {
	out := make(map[ProductID]*Product, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		out[p.ID] = p
	}
	return out
}
