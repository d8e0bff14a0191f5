package core

// UserProfile 是用户的护肤画像。
//
// 由用户自己创建/更新；对推荐引擎只读。
// SkinType 必填；SkinConcerns 可选；Sustainability 默认 false。
type UserProfile struct {
	UserID         string        `json:"user_id"`
	SkinType       SkinType      `json:"skin_type"`
	SkinConcerns   []SkinConcern `json:"skin_concerns"`
	Sustainability bool          `json:"sustainability"` // 是否偏好可持续商品
}

// NewUserProfile 创建一个新画像。
func NewUserProfile(userID string, skinType SkinType) *UserProfile {
	return &UserProfile{
		UserID:       userID,
		SkinType:     skinType,
		SkinConcerns: make([]SkinConcern, 0),
	}
}

// HasConcern 检查画像是否声明了某肤况诉求。
func (p *UserProfile) HasConcern(c SkinConcern) bool {
	for _, sc := range p.SkinConcerns {
		if sc == c {
			return true
		}
	}
	return false
}

// Validate 在边界层校验画像。
func (p *UserProfile) Validate() error {
	if p.UserID == "" {
		return NewDomainError(ModuleProfile, ErrorCodeInvalidInput, "user id is required")
	}
	if !p.SkinType.Valid() {
		return NewDomainError(ModuleProfile, ErrorCodeInvalidInput, "unknown skin type "+string(p.SkinType))
	}
	for _, sc := range p.SkinConcerns {
		if !sc.Valid() {
			return NewDomainError(ModuleProfile, ErrorCodeInvalidInput, "unknown skin concern "+string(sc))
		}
	}
	return nil
}

// User 是协同过滤视角下的用户：id + 可能缺失的画像。
// 画像缺失时相似度的画像项记 0，不视为错误。
type User struct {
	ID      string
	Profile *UserProfile
}
