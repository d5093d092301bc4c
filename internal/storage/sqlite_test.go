package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-portfolio/internal/world"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	if _, err := Open(""); err == nil {
		t.Error("Open(\"\") should fail")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Session: "alice", Source: "ssh", Score: 2, Boxes: []world.BoxID{world.BoxAbout, world.BoxEducation}, Jumps: 5, MaxX: 900, Duration: 40 * time.Second},
		{Session: "local", Source: "tui", Score: 6, Boxes: world.Order[:], Jumps: 14, MaxX: 3100, Duration: 3 * time.Minute},
		{Session: "alice", Source: "ssh", Score: 6, Boxes: world.Order[:], Jumps: 9, MaxX: 3100, Duration: 2 * time.Minute},
		{Session: "web-1", Source: "web", Score: 0},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns(2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("TopRuns(2) returned %d runs", len(top))
	}
	if top[0].Score != 6 || top[0].Duration != 2*time.Minute {
		t.Errorf("top run = %+v, expected the faster 6-box run", top[0])
	}
	if !reflect.DeepEqual(top[0].Boxes, world.Order[:]) {
		t.Errorf("Boxes = %v, expected %v", top[0].Boxes, world.Order)
	}

	recent, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 4 || recent[0].Session != "web-1" {
		t.Errorf("RecentRuns() = %d runs, first %q", len(recent), recent[0].Session)
	}
	if recent[0].Boxes != nil {
		t.Errorf("empty boxes = %v, expected nil", recent[0].Boxes)
	}

	alice, err := store.SessionRuns("alice", 0)
	if err != nil {
		t.Fatalf("SessionRuns() failed: %v", err)
	}
	if len(alice) != 2 {
		t.Errorf("SessionRuns(alice) = %d runs, expected 2", len(alice))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() on empty store failed: %v", err)
	}
	if empty.Runs != 0 || empty.BestScore != 0 {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveRun(Run{Session: "a", Source: "tui", Score: 1, Boxes: []world.BoxID{world.BoxAbout}})
	store.SaveRun(Run{Session: "b", Source: "tui", Score: 3, Boxes: []world.BoxID{world.BoxAbout, world.BoxSkills, world.BoxAbout}})

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.BestScore != 3 || stats.AvgScore != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.BoxCounts[world.BoxAbout] != 2 || stats.BoxCounts[world.BoxSkills] != 1 {
		t.Errorf("BoxCounts = %v", stats.BoxCounts)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun(Run{Session: "a", Source: "tui", Score: 1})

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, err := store.RecentRuns(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("RecentRuns() after clear = %d runs", len(runs))
	}
}

func TestBoxesRoundTrip(t *testing.T) {
	ids := []world.BoxID{world.BoxContact, world.BoxAbout}
	if got := decodeBoxes(encodeBoxes(ids)); !reflect.DeepEqual(got, ids) {
		t.Errorf("decodeBoxes(encodeBoxes()) = %v", got)
	}
	if got := encodeBoxes([]world.BoxID{world.BoxNone, world.BoxSkills}); got != "skills" {
		t.Errorf("encodeBoxes() = %q, expected invalid ids dropped", got)
	}
}
