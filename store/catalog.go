package store

import (
	"context"
	"encoding/json"

	"github.com/glowteam/glowrec/core"
)

// DefaultKeyPrefix 是所有实体 key 的默认前缀。
const DefaultKeyPrefix = "glowrec"

// CatalogAdapter 是基于 core.Store 的商品目录存储。
//
// key 布局：
//
//	商品：{prefix}:product:{productID}
//	商品 ID 索引：{prefix}:products
type CatalogAdapter struct {
	store  core.Store
	prefix string
}

// NewCatalogAdapter 创建商品目录适配器。prefix 为空时使用 DefaultKeyPrefix。
func NewCatalogAdapter(s core.Store, prefix string) *CatalogAdapter {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &CatalogAdapter{store: s, prefix: prefix}
}

func (a *CatalogAdapter) productKey(id core.ProductID) string {
	return a.prefix + ":product:" + string(id)
}

func (a *CatalogAdapter) indexKey() string {
	return a.prefix + ":products"
}

// GetProduct 按 ID 读取商品，不存在时返回存储层 NOT_FOUND。
func (a *CatalogAdapter) GetProduct(ctx context.Context, id core.ProductID) (*core.Product, error) {
	data, err := a.store.Get(ctx, a.productKey(id))
	if err != nil {
		return nil, err
	}
	var p core.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// PutProduct 写入商品并维护 ID 索引。
func (a *CatalogAdapter) PutProduct(ctx context.Context, p *core.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := a.store.Set(ctx, a.productKey(p.ID), data); err != nil {
		return err
	}

	ids, err := a.listIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == p.ID {
			return nil
		}
	}
	ids = append(ids, p.ID)
	return a.saveIDs(ctx, ids)
}

// ListProducts 按索引顺序返回全部商品。索引中缺失的条目被跳过。
func (a *CatalogAdapter) ListProducts(ctx context.Context) ([]*core.Product, error) {
	ids, err := a.listIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, a.productKey(id))
	}
	kvs, err := a.store.BatchGet(ctx, keys)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Product, 0, len(ids))
	for i := range ids {
		data, ok := kvs[keys[i]]
		if !ok {
			continue
		}
		var p core.Product
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, nil
}

func (a *CatalogAdapter) listIDs(ctx context.Context) ([]core.ProductID, error) {
	data, err := a.store.Get(ctx, a.indexKey())
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var ids []core.ProductID
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (a *CatalogAdapter) saveIDs(ctx context.Context, ids []core.ProductID) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, a.indexKey(), data)
}

var _ core.CatalogStore = (*CatalogAdapter)(nil)
