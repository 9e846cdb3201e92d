package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hupe1980/agentville/clock"
	"github.com/hupe1980/agentville/world"
)

var _ world.Store = (*InMemoryStore)(nil)

func testState(id, name string) *world.State {
	return &world.State{
		ID:        id,
		Config:    world.Config{Name: name, GridWidth: 10, GridHeight: 10},
		Time:      clock.Time{Day: 2, Hour: 9, Minute: 30},
		Log:       []string{"something happened"},
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC),
	}
}

func TestInMemoryStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	if err := s.Save(ctx, "w1", testState("w1", "Littlefield")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx, "w1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Config.Name != "Littlefield" {
		t.Errorf("got name %q, want Littlefield", got.Config.Name)
	}
	if got.Time.Day != 2 || got.Time.Hour != 9 {
		t.Errorf("time did not round-trip: %+v", got.Time)
	}
}

func TestInMemoryStoreLoadIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	if err := s.Save(ctx, "w1", testState("w1", "Littlefield")); err != nil {
		t.Fatalf("save: %v", err)
	}

	first, _ := s.Load(ctx, "w1")
	first.Config.Name = "mutated"
	first.Log[0] = "mutated"

	second, _ := s.Load(ctx, "w1")
	if second.Config.Name != "Littlefield" || second.Log[0] != "something happened" {
		t.Error("loads must not share state with earlier loads")
	}
}

func TestInMemoryStoreSaveIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	state := testState("w1", "Littlefield")
	if err := s.Save(ctx, "w1", state); err != nil {
		t.Fatalf("save: %v", err)
	}

	state.Config.Name = "mutated after save"

	got, _ := s.Load(ctx, "w1")
	if got.Config.Name != "Littlefield" {
		t.Error("mutating the caller's state after save must not affect the store")
	}
}

func TestInMemoryStoreNotFound(t *testing.T) {
	s := NewInMemoryStore()
	_, err := s.Load(context.Background(), "missing")
	if !errors.Is(err, world.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInMemoryStoreNilState(t *testing.T) {
	s := NewInMemoryStore()
	if err := s.Save(context.Background(), "w1", nil); err == nil {
		t.Error("nil state must be rejected")
	}
}

func TestInMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	s.Save(ctx, "w1", testState("w1", "Littlefield"))

	existed, err := s.Delete(ctx, "w1")
	if err != nil || !existed {
		t.Fatalf("delete: existed=%v err=%v", existed, err)
	}
	existed, err = s.Delete(ctx, "w1")
	if err != nil || existed {
		t.Errorf("second delete: existed=%v err=%v", existed, err)
	}
	if ok, _ := s.Exists(ctx, "w1"); ok {
		t.Error("deleted world still exists")
	}
}

func TestInMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	s.Save(ctx, "w2", testState("w2", "Beta"))
	s.Save(ctx, "w1", testState("w1", "Alpha"))

	metas, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(metas))
	}
	if metas[0].ID != "w1" || metas[1].ID != "w2" {
		t.Errorf("expected id-sorted listing, got %v", metas)
	}
	if metas[0].Name != "Alpha" {
		t.Errorf("metadata name not carried: %v", metas[0])
	}
}

func TestInMemoryStoreExists(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	if ok, _ := s.Exists(ctx, "w1"); ok {
		t.Error("empty store should report nothing")
	}
	s.Save(ctx, "w1", testState("w1", "Littlefield"))
	if ok, _ := s.Exists(ctx, "w1"); !ok {
		t.Error("saved world should exist")
	}
}
