// Package filter 在打分之前裁剪候选商品集，如下架黑名单、运营规则。
package filter

import (
	"context"

	"github.com/glowteam/glowrec/core"
)

// Filter 是候选过滤器的抽象接口，用于判断一个商品是否应该被过滤掉。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断商品是否应该被过滤
	ShouldFilter(ctx context.Context, profile *core.UserProfile, p *core.Product) (bool, error)
}

// Chain 按顺序组合多个过滤器。任何一个过滤器命中，该商品即被移除。
type Chain struct {
	Filters []Filter
}

// Apply 返回过滤后的候选集。
// 单个过滤器出错时保留该商品并继续，宁可多推不可漏推。
func (c *Chain) Apply(
	ctx context.Context,
	profile *core.UserProfile,
	products []*core.Product,
) []*core.Product {
	if c == nil || len(c.Filters) == 0 || len(products) == 0 {
		return products
	}

	out := make([]*core.Product, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		drop := false
		for _, f := range c.Filters {
			ok, err := f.ShouldFilter(ctx, profile, p)
			if err != nil {
				continue
			}
			if ok {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, p)
		}
	}
	return out
}
