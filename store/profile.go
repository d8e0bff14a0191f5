package store

import (
	"context"
	"encoding/json"

	"github.com/glowteam/glowrec/core"
)

// ProfileAdapter 是基于 core.Store 的用户画像存储。
//
// key 布局：
//
//	画像：{prefix}:profile:{userID}
type ProfileAdapter struct {
	store  core.Store
	prefix string
}

// NewProfileAdapter 创建用户画像适配器。prefix 为空时使用 DefaultKeyPrefix。
func NewProfileAdapter(s core.Store, prefix string) *ProfileAdapter {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &ProfileAdapter{store: s, prefix: prefix}
}

func (a *ProfileAdapter) key(userID string) string {
	return a.prefix + ":profile:" + userID
}

// GetProfile 读取用户画像，不存在时返回存储层 NOT_FOUND。
func (a *ProfileAdapter) GetProfile(ctx context.Context, userID string) (*core.UserProfile, error) {
	data, err := a.store.Get(ctx, a.key(userID))
	if err != nil {
		return nil, err
	}
	var p core.UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// PutProfile 写入用户画像。
func (a *ProfileAdapter) PutProfile(ctx context.Context, p *core.UserProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, a.key(p.UserID), data)
}

var _ core.ProfileStore = (*ProfileAdapter)(nil)
