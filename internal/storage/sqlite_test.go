package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/runner"
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

func mustSave(t *testing.T, store *Store, r RunRecord) int64 {
	t.Helper()
	id, err := store.SaveRun(r)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, RunRecord{Character: "office", Outcome: OutcomeGameOver, Score: 100})
	mustSave(t, store, RunRecord{Character: "office", Outcome: OutcomeGameOver, Score: 50})
	mustSave(t, store, RunRecord{
		Character:  "office",
		Player:     "alice",
		Outcome:    OutcomeWin,
		Score:      420,
		Distance:   812.5,
		Benefits:   8,
		Categories: []string{"legal", "strike"},
		Duration:   95 * time.Second,
	})
	mustSave(t, store, RunRecord{Character: "factory", Outcome: OutcomeGameOver, Score: 500})

	runs, err := store.TopRuns("office", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 office runs, got %d", len(runs))
	}
	if runs[0].Score != 420 || runs[1].Score != 100 || runs[2].Score != 50 {
		t.Errorf("Runs not sorted by score: %+v", runs)
	}

	best := runs[0]
	if !best.Won() || best.Player != "alice" || best.Benefits != 8 || best.Distance != 812.5 {
		t.Errorf("Run fields not preserved: %+v", best)
	}
	if !reflect.DeepEqual(best.Categories, []string{"legal", "strike"}) {
		t.Errorf("Categories = %v", best.Categories)
	}
	if best.Duration != 95*time.Second {
		t.Errorf("Duration = %v, expected 95s", best.Duration)
	}
	if runs[1].Player != "local" {
		t.Errorf("Default player = %q, expected local", runs[1].Player)
	}
	if runs[1].Categories != nil {
		t.Errorf("Empty categories should load as nil, got %v", runs[1].Categories)
	}

	all, err := store.TopRuns("", 10)
	if err != nil {
		t.Fatalf("TopRuns(all) failed: %v", err)
	}
	if len(all) != 4 || all[0].Character != "factory" {
		t.Errorf("Expected 4 runs led by factory, got %+v", all)
	}
}

func TestStoreRejectsRunWithoutCharacter(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(RunRecord{Score: 10}); err == nil {
		t.Error("SaveRun() should reject a run without character")
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 5; i++ {
		mustSave(t, store, RunRecord{Character: "office", Outcome: OutcomeGameOver, Score: (i + 1) * 100})
	}

	runs, err := store.TopRuns("office", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Score != 500 || runs[1].Score != 400 || runs[2].Score != 300 {
		t.Errorf("Runs not in expected order: %+v", runs)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)
	first := mustSave(t, store, RunRecord{Character: "office", Outcome: OutcomeGameOver, Score: 300})
	last := mustSave(t, store, RunRecord{Character: "factory", Outcome: OutcomeGameOver, Score: 10})

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != last || runs[1].ID != first {
		t.Errorf("RecentRuns() order wrong: %+v", runs)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("office")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for no runs, got %d", high)
	}

	mustSave(t, store, RunRecord{Character: "office", Outcome: OutcomeGameOver, Score: 100})
	mustSave(t, store, RunRecord{Character: "office", Outcome: OutcomeGameOver, Score: 300})
	mustSave(t, store, RunRecord{Character: "factory", Outcome: OutcomeGameOver, Score: 700})

	if high, _ = store.HighScore("office"); high != 300 {
		t.Errorf("Expected office high score of 300, got %d", high)
	}
	if high, _ = store.HighScore(""); high != 700 {
		t.Errorf("Expected overall high score of 700, got %d", high)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)
	mustSave(t, store, RunRecord{Character: "office", Outcome: OutcomeGameOver, Score: 100})
	mustSave(t, store, RunRecord{Character: "factory", Outcome: OutcomeGameOver, Score: 300})

	if err := store.ClearRuns("office"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	if runs, _ := store.TopRuns("office", 10); len(runs) != 0 {
		t.Errorf("Expected 0 office runs after clear, got %d", len(runs))
	}
	if runs, _ := store.TopRuns("factory", 10); len(runs) != 1 {
		t.Error("Factory runs should not be affected by clearing office")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("office")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	mustSave(t, store, RunRecord{Character: "office", Outcome: OutcomeWin, Score: 400, Distance: 900})
	mustSave(t, store, RunRecord{Character: "office", Outcome: OutcomeGameOver, Score: 200, Distance: 300})
	mustSave(t, store, RunRecord{Character: "factory", Outcome: OutcomeGameOver, Score: 50})

	st, err := store.Stats("office")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 2 || st.Wins != 1 || st.HighScore != 400 || st.AvgScore != 300 || st.BestDistance != 900 {
		t.Errorf("Unexpected stats: %+v", st)
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 || all["factory"].Runs != 1 || all["office"].Wins != 1 {
		t.Errorf("Unexpected AllStats(): %+v", all)
	}
}

func TestRecordFromSummary(t *testing.T) {
	rec := RecordFromSummary(runner.Summary{
		Theme:             "factory",
		Outcome:           runner.StateWin,
		Score:             330,
		Distance:          512,
		BenefitsCollected: 4,
		Categories:        []config.Category{{ID: "legal"}, {ID: "death"}},
		Duration:          time.Minute,
	}, "bob")

	want := RunRecord{
		Character:  "factory",
		Player:     "bob",
		Outcome:    OutcomeWin,
		Score:      330,
		Distance:   512,
		Benefits:   4,
		Categories: []string{"legal", "death"},
		Duration:   time.Minute,
	}
	if !reflect.DeepEqual(rec, want) {
		t.Errorf("RecordFromSummary() = %+v, expected %+v", rec, want)
	}

	lost := RecordFromSummary(runner.Summary{Theme: "office", Outcome: runner.StateGameOver}, "")
	if lost.Won() || lost.Outcome != OutcomeGameOver {
		t.Errorf("Expected a lost run, got %+v", lost)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
