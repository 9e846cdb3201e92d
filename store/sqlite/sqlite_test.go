package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hupe1980/agentville/clock"
	"github.com/hupe1980/agentville/world"
)

var _ world.Store = (*Store)(nil)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "worlds.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testState(id, name string, updated time.Time) *world.State {
	return &world.State{
		ID:        id,
		Config:    world.Config{Name: name, GridWidth: 10, GridHeight: 10},
		Time:      clock.Time{Day: 2, Hour: 9, Minute: 30},
		Log:       []string{"something happened"},
		CreatedAt: updated.Add(-time.Hour),
		UpdatedAt: updated,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)

	if err := s.Save(ctx, "w1", testState("w1", "Littlefield", now)); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx, "w1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Config.Name != "Littlefield" {
		t.Errorf("got name %q, want Littlefield", got.Config.Name)
	}
	if got.Time.Day != 2 || got.Time.Minute != 30 {
		t.Errorf("time did not round-trip: %+v", got.Time)
	}
	if len(got.Log) != 1 || got.Log[0] != "something happened" {
		t.Errorf("log did not round-trip: %v", got.Log)
	}
}

func TestStoreUpsert(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)

	if err := s.Save(ctx, "w1", testState("w1", "Before", now)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, "w1", testState("w1", "After", now.Add(time.Hour))); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := s.Load(ctx, "w1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Config.Name != "After" {
		t.Errorf("upsert did not replace the state: %q", got.Config.Name)
	}
	metas, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(metas) != 1 {
		t.Fatalf("expected a single row after upsert, got %d", len(metas))
	}
}

func TestStoreNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load(context.Background(), "missing")
	if !errors.Is(err, world.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreNilState(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(context.Background(), "w1", nil); err == nil {
		t.Error("nil state must be rejected")
	}
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)
	s.Save(ctx, "w1", testState("w1", "Littlefield", now))

	existed, err := s.Delete(ctx, "w1")
	if err != nil || !existed {
		t.Fatalf("delete: existed=%v err=%v", existed, err)
	}
	existed, err = s.Delete(ctx, "w1")
	if err != nil || existed {
		t.Errorf("second delete: existed=%v err=%v", existed, err)
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)

	s.Save(ctx, "older", testState("older", "Older", base))
	s.Save(ctx, "newer", testState("newer", "Newer", base.Add(time.Hour)))

	metas, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(metas))
	}
	if metas[0].ID != "newer" || metas[1].ID != "older" {
		t.Errorf("expected newest first, got %v", metas)
	}
	if !metas[0].UpdatedAt.Equal(base.Add(time.Hour)) {
		t.Errorf("updated_at did not round-trip: %v", metas[0].UpdatedAt)
	}
}

func TestStoreExists(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if ok, err := s.Exists(ctx, "w1"); err != nil || ok {
		t.Errorf("empty store: ok=%v err=%v", ok, err)
	}
	s.Save(ctx, "w1", testState("w1", "Littlefield", time.Now().UTC()))
	if ok, err := s.Exists(ctx, "w1"); err != nil || !ok {
		t.Errorf("after save: ok=%v err=%v", ok, err)
	}
}
