package store

import (
	"context"
	"testing"
	"time"

	"github.com/glowteam/glowrec/core"
)

func TestMemoryStoreBasicOps(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	if _, err := ms.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("Get(missing) error = %v, want store NOT_FOUND", err)
	}

	if err := ms.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := ms.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Errorf("Get(k) = %q, %v", got, err)
	}

	if err := ms.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := ms.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Errorf("Get(deleted) error = %v, want store NOT_FOUND", err)
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	if err := ms.Set(ctx, "short", []byte("v"), 1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := ms.Get(ctx, "short"); err != nil {
		t.Fatalf("Get() before expiry error = %v", err)
	}

	// 直接把过期时间改到过去，避免真实 sleep
	ms.mu.Lock()
	past := time.Now().Add(-time.Second)
	ms.data["short"].ttl = &past
	ms.mu.Unlock()

	if _, err := ms.Get(ctx, "short"); !core.IsStoreNotFound(err) {
		t.Errorf("Get() after expiry error = %v, want store NOT_FOUND", err)
	}
}

func TestMemoryStoreBatch(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	kvs := map[string][]byte{"a": []byte("1"), "b": []byte("2")}
	if err := ms.BatchSet(ctx, kvs); err != nil {
		t.Fatalf("BatchSet() error = %v", err)
	}
	got, err := ms.BatchGet(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("BatchGet() error = %v", err)
	}
	if len(got) != 2 || string(got["a"]) != "1" || string(got["b"]) != "2" {
		t.Errorf("BatchGet() = %v", got)
	}
}

func TestCatalogAdapterRoundTrip(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()
	cat := NewCatalogAdapter(ms, "")

	if _, err := cat.GetProduct(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("GetProduct(missing) error = %v, want store NOT_FOUND", err)
	}

	products := []*core.Product{
		{ID: "serum", Name: "Hydra Serum", Brand: "GlowLab", Price: 45, Rating: 4.5,
			SkinTypes: []core.SkinType{core.SkinTypeDry}},
		{ID: "toner", Name: "Calm Toner", Brand: "DermaPure", Price: 18, Rating: 4.0},
	}
	for _, p := range products {
		if err := cat.PutProduct(ctx, p); err != nil {
			t.Fatalf("PutProduct(%s) error = %v", p.ID, err)
		}
	}
	// 重复写入不重复索引
	if err := cat.PutProduct(ctx, products[0]); err != nil {
		t.Fatalf("PutProduct(dup) error = %v", err)
	}

	got, err := cat.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "serum" || got[1].ID != "toner" {
		t.Fatalf("ListProducts() order = %v, want insertion order", got)
	}
	if got[0].Brand != "GlowLab" || !got[0].HasSkinType(core.SkinTypeDry) {
		t.Errorf("round-tripped product = %+v", got[0])
	}

	if err := cat.PutProduct(ctx, &core.Product{ID: ""}); !core.IsInvalidInput(err) {
		t.Errorf("PutProduct(invalid) error = %v, want INVALID_INPUT", err)
	}
}

func TestProfileAdapterRoundTrip(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()
	profiles := NewProfileAdapter(ms, "")

	p := core.NewUserProfile("alice", core.SkinTypeSensitive)
	p.SkinConcerns = []core.SkinConcern{core.ConcernRedness}
	p.Sustainability = true
	if err := profiles.PutProfile(ctx, p); err != nil {
		t.Fatalf("PutProfile() error = %v", err)
	}

	got, err := profiles.GetProfile(ctx, "alice")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got.SkinType != core.SkinTypeSensitive || !got.Sustainability || !got.HasConcern(core.ConcernRedness) {
		t.Errorf("round-tripped profile = %+v", got)
	}

	if _, err := profiles.GetProfile(ctx, "nobody"); !core.IsStoreNotFound(err) {
		t.Errorf("GetProfile(nobody) error = %v, want store NOT_FOUND", err)
	}
}

func TestInteractionAdapterAppendAndList(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()
	log := NewInteractionAdapter(ms, "")

	events := []core.InteractionEvent{
		{UserID: "alice", ProductID: "serum", Type: core.InteractionView},
		{UserID: "alice", ProductID: "serum", Type: core.InteractionPurchase},
		{UserID: "bob", ProductID: "toner", Type: core.InteractionClick},
	}
	for _, ev := range events {
		if err := log.Append(ctx, ev); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	alice, err := log.ListByUser(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(alice) != 2 || alice[0].Type != core.InteractionView || alice[1].Type != core.InteractionPurchase {
		t.Errorf("alice events = %+v, want append order", alice)
	}

	if got, _ := log.ListByUser(ctx, "nobody"); len(got) != 0 {
		t.Errorf("ListByUser(nobody) = %v, want empty", got)
	}

	all, err := log.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListAll() = %d events, want 3", len(all))
	}

	bad := core.InteractionEvent{UserID: "alice", ProductID: "x", Type: "teleport"}
	if err := log.Append(ctx, bad); !core.IsInvalidInput(err) {
		t.Errorf("Append(invalid) error = %v, want INVALID_INPUT", err)
	}
}
