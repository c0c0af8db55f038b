package history

import "time"

// Snapshot is one archived fetch cycle.
type Snapshot struct {
	ID        string
	FetchedAt time.Time
	Count     int
}

// Point is where a title stood in one snapshot.
type Point struct {
	SnapshotID   string
	FetchedAt    time.Time
	Rank         int
	DisplayScore string
	NumericScore int64
}

type QueryOpts struct {
	Since time.Time
	Limit int
}
