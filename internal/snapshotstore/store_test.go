package snapshotstore_test

import (
	"path/filepath"
	"testing"

	"github.com/luhouxiang/chartcore/internal/chartengine"
	"github.com/luhouxiang/chartcore/internal/snapshotstore"
)

func TestPutGetDeleteRoundTrip(t *testing.T) {
	store, err := snapshotstore.Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	if err := store.Put("session-1", "snapshot", 1, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	rec, found, err := store.Get("session-1", "snapshot")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatalf("Get() found = false, want true")
	}
	if string(rec.Payload) != `{"a":1}` {
		t.Fatalf("rec.Payload = %s, want {\"a\":1}", rec.Payload)
	}

	if err := store.Put("session-1", "snapshot", 1, []byte(`{"a":2}`)); err != nil {
		t.Fatalf("Put() overwrite error = %v", err)
	}
	rec, _, err = store.Get("session-1", "snapshot")
	if err != nil {
		t.Fatalf("Get() after overwrite error = %v", err)
	}
	if string(rec.Payload) != `{"a":2}` {
		t.Fatalf("rec.Payload after overwrite = %s, want {\"a\":2}", rec.Payload)
	}

	deleted, err := store.Delete("session-1", "snapshot")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !deleted {
		t.Fatalf("Delete() = false, want true")
	}
	if _, found, err := store.Get("session-1", "snapshot"); err != nil || found {
		t.Fatalf("Get() after delete = (found=%v, err=%v), want (false, nil)", found, err)
	}
}

func TestEngineSnapshotRoundTrip(t *testing.T) {
	store, err := snapshotstore.Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	e, err := chartengine.New(chartengine.DefaultConfig())
	if err != nil {
		t.Fatalf("chartengine.New() error = %v", err)
	}
	e.PanTimeVisibleByDelta(5)

	if err := store.PutEngineSnapshot("engine-1", e); err != nil {
		t.Fatalf("PutEngineSnapshot() error = %v", err)
	}
	restored, found, err := store.GetEngineSnapshot("engine-1")
	if err != nil {
		t.Fatalf("GetEngineSnapshot() error = %v", err)
	}
	if !found {
		t.Fatalf("GetEngineSnapshot() found = false, want true")
	}
	wantStart, wantEnd := e.VisibleTimeRange()
	gotStart, gotEnd := restored.VisibleTimeRange()
	if gotStart != wantStart || gotEnd != wantEnd {
		t.Fatalf("restored visible range = (%v,%v), want (%v,%v)", gotStart, gotEnd, wantStart, wantEnd)
	}
}

func TestListScopesOrdersByRecency(t *testing.T) {
	store, err := snapshotstore.Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	if err := store.Put("a", "snapshot", 1, []byte(`{}`)); err != nil {
		t.Fatalf("Put(a) error = %v", err)
	}
	if err := store.Put("b", "snapshot", 1, []byte(`{}`)); err != nil {
		t.Fatalf("Put(b) error = %v", err)
	}
	scopes, err := store.ListScopes("snapshot")
	if err != nil {
		t.Fatalf("ListScopes() error = %v", err)
	}
	if len(scopes) != 2 {
		t.Fatalf("len(scopes) = %d, want 2", len(scopes))
	}
}
