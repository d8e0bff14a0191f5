package filter

import (
	"context"

	"github.com/glowteam/glowrec/core"
)

// BlacklistFilter 过滤掉已下架或被运营拉黑的商品。
type BlacklistFilter struct {
	// ProductIDs 是内存中的黑名单商品 ID 列表
	ProductIDs []core.ProductID

	// Store 用于从存储中读取黑名单（可选）
	Store BlacklistStore

	// Key 是 Store 中的黑名单 key（可选）
	Key string
}

// BlacklistStore 是黑名单存储接口。
type BlacklistStore interface {
	// GetBlacklist 获取黑名单商品 ID 列表
	GetBlacklist(ctx context.Context, key string) ([]core.ProductID, error)
}

// NewBlacklistFilter 创建一个黑名单过滤器。
func NewBlacklistFilter(ids []core.ProductID, store BlacklistStore, key string) *BlacklistFilter {
	return &BlacklistFilter{
		ProductIDs: ids,
		Store:      store,
		Key:        key,
	}
}

func (f *BlacklistFilter) Name() string {
	return "filter.blacklist"
}

func (f *BlacklistFilter) ShouldFilter(
	ctx context.Context,
	_ *core.UserProfile,
	p *core.Product,
) (bool, error) {
	if p == nil {
		return true, nil
	}

	for _, id := range f.ProductIDs {
		if p.ID == id {
			return true, nil
		}
	}

	if f.Store != nil && f.Key != "" {
		blacklist, err := f.Store.GetBlacklist(ctx, f.Key)
		if err == nil {
			for _, id := range blacklist {
				if p.ID == id {
					return true, nil
				}
			}
		}
	}

	return false, nil
}

var _ Filter = (*BlacklistFilter)(nil)
