package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/glowteam/glowrec/core"
)

// InteractionAdapter 是基于 core.Store 的交互日志存储。
//
// key 布局：
//
//	用户事件列表：{prefix}:events:{userID}
//	用户 ID 索引：{prefix}:event_users
//
// Append 是读改写操作，用互斥锁保证单进程内的原子性。
// 跨进程并发写需要带事务的存储后端。
type InteractionAdapter struct {
	mu     sync.Mutex
	store  core.Store
	prefix string
}

// NewInteractionAdapter 创建交互日志适配器。prefix 为空时使用 DefaultKeyPrefix。
func NewInteractionAdapter(s core.Store, prefix string) *InteractionAdapter {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &InteractionAdapter{store: s, prefix: prefix}
}

func (a *InteractionAdapter) eventsKey(userID string) string {
	return a.prefix + ":events:" + userID
}

func (a *InteractionAdapter) usersKey() string {
	return a.prefix + ":event_users"
}

// Append 追加一条交互事件。
func (a *InteractionAdapter) Append(ctx context.Context, ev core.InteractionEvent) error {
	if err := ev.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	events, err := a.listUser(ctx, ev.UserID)
	if err != nil {
		return err
	}
	events = append(events, ev)
	data, err := json.Marshal(events)
	if err != nil {
		return err
	}
	if err := a.store.Set(ctx, a.eventsKey(ev.UserID), data); err != nil {
		return err
	}

	users, err := a.listUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u == ev.UserID {
			return nil
		}
	}
	users = append(users, ev.UserID)
	return a.saveUsers(ctx, users)
}

// ListByUser 返回指定用户的全部事件，无事件时返回空序列。
func (a *InteractionAdapter) ListByUser(ctx context.Context, userID string) ([]core.InteractionEvent, error) {
	return a.listUser(ctx, userID)
}

// ListAll 返回所有用户的事件，按用户首次写入顺序拼接。
func (a *InteractionAdapter) ListAll(ctx context.Context) ([]core.InteractionEvent, error) {
	users, err := a.listUsers(ctx)
	if err != nil {
		return nil, err
	}
	var out []core.InteractionEvent
	for _, u := range users {
		events, err := a.listUser(ctx, u)
		if err != nil {
			return nil, err
		}
		out = append(out, events...)
	}
	return out, nil
}

func (a *InteractionAdapter) listUser(ctx context.Context, userID string) ([]core.InteractionEvent, error) {
	data, err := a.store.Get(ctx, a.eventsKey(userID))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var events []core.InteractionEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (a *InteractionAdapter) listUsers(ctx context.Context) ([]string, error) {
	data, err := a.store.Get(ctx, a.usersKey())
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var users []string
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (a *InteractionAdapter) saveUsers(ctx context.Context, users []string) error {
	data, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, a.usersKey(), data)
}

var _ core.InteractionStore = (*InteractionAdapter)(nil)
