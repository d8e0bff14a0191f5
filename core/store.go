package core

import "context"

// 注意：接口定义在 core 包，实现在 store 包（memory / redis + 实体适配器）。

// Store 是底层 KV 存储抽象。key 不存在时返回 ErrStoreNotFound。
type Store interface {
	Name() string
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl ...int) error
	Delete(ctx context.Context, key string) error
	BatchGet(ctx context.Context, keys []string) (map[string][]byte, error)
	BatchSet(ctx context.Context, kvs map[string][]byte, ttl ...int) error
	Close() error
}

// CatalogStore 提供商品目录快照。
type CatalogStore interface {
	ListProducts(ctx context.Context) ([]*Product, error)
	GetProduct(ctx context.Context, id ProductID) (*Product, error)
	PutProduct(ctx context.Context, p *Product) error
}

// ProfileStore 提供用户画像。
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)
	PutProfile(ctx context.Context, p *UserProfile) error
}

// InteractionStore 提供追加写入的行为日志。
type InteractionStore interface {
	Append(ctx context.Context, ev InteractionEvent) error
	ListAll(ctx context.Context) ([]InteractionEvent, error)
	ListByUser(ctx context.Context, userID string) ([]InteractionEvent, error)
}
