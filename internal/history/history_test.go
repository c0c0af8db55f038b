package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/matheuskafuri/hotwatch/internal/trend"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func dataset(titles ...string) trend.Dataset {
	var ds trend.Dataset
	for i, title := range titles {
		ds.Records = append(ds.Records, trend.Record{
			Rank:         i + 1,
			Title:        title,
			DisplayScore: "100",
			NumericScore: int64(100 * (len(titles) - i)),
			Link:         "https://s.weibo.com/weibo?q=" + title,
		})
	}
	return ds
}

func TestSaveAndSnapshots(t *testing.T) {
	s, _ := testStore(t)
	now := time.Now()

	if _, err := s.Save(now.Add(-2*time.Minute), dataset("a", "b")); err != nil {
		t.Fatalf("save: %v", err)
	}
	id, err := s.Save(now.Add(-1*time.Minute), dataset("b", "a", "c"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("expected uuid snapshot id, got %q", id)
	}

	got, err := s.Snapshots(QueryOpts{})
	if err != nil {
		t.Fatalf("snapshots: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(got))
	}
	// Newest first
	if got[0].ID != id || got[0].Count != 3 {
		t.Errorf("unexpected newest snapshot: %+v", got[0])
	}
}

func TestSnapshotsSince(t *testing.T) {
	s, _ := testStore(t)
	now := time.Now()
	s.Save(now.Add(-48*time.Hour), dataset("old"))
	s.Save(now.Add(-1*time.Hour), dataset("new"))

	got, err := s.Snapshots(QueryOpts{Since: now.Add(-3 * time.Hour)})
	if err != nil {
		t.Fatalf("snapshots: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 snapshot within 3h, got %d", len(got))
	}
}

func TestSaveEmptyDataset(t *testing.T) {
	s, _ := testStore(t)
	if _, err := s.Save(time.Now(), trend.Dataset{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, _ := s.Snapshots(QueryOpts{})
	if len(got) != 1 || got[0].Count != 0 {
		t.Errorf("expected one empty snapshot, got %+v", got)
	}
}

func TestTrajectory(t *testing.T) {
	s, _ := testStore(t)
	now := time.Now()
	s.Save(now.Add(-3*time.Minute), dataset("x", "target"))
	s.Save(now.Add(-2*time.Minute), dataset("other"))
	s.Save(now.Add(-1*time.Minute), dataset("target", "x"))

	points, err := s.Trajectory("target", QueryOpts{})
	if err != nil {
		t.Fatalf("trajectory: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	// Oldest first
	if points[0].Rank != 2 || points[1].Rank != 1 {
		t.Errorf("unexpected ranks: %d then %d", points[0].Rank, points[1].Rank)
	}
	if !points[0].FetchedAt.Before(points[1].FetchedAt) {
		t.Error("expected points ordered by fetch time")
	}

	none, err := s.Trajectory("missing", QueryOpts{})
	if err != nil {
		t.Fatalf("trajectory: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no points, got %d", len(none))
	}
}

func TestPrune(t *testing.T) {
	s, _ := testStore(t)
	now := time.Now()
	s.Save(now.Add(-10*24*time.Hour), dataset("old"))
	s.Save(now.Add(-1*time.Hour), dataset("new"))

	n, err := s.Prune(7 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 pruned snapshot, got %d", n)
	}

	// Records of pruned snapshots go with them
	points, _ := s.Trajectory("old", QueryOpts{})
	if len(points) != 0 {
		t.Errorf("expected records of pruned snapshot removed, got %d", len(points))
	}

	n, err = s.Prune(7 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("second prune: %v", err)
	}
	if n != 0 {
		t.Errorf("expected nothing to prune, got %d", n)
	}
}

func TestStats(t *testing.T) {
	s, path := testStore(t)
	s.Save(time.Now(), dataset("a", "b", "c"))

	snaps, records, size, err := s.Stats(path)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if snaps != 1 || records != 3 {
		t.Errorf("expected 1 snapshot / 3 records, got %d / %d", snaps, records)
	}
	if size <= 0 {
		t.Errorf("expected positive db size, got %d", size)
	}
}
