package board

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/matheuskafuri/hotwatch/internal/cache"
	"github.com/matheuskafuri/hotwatch/internal/export"
	"github.com/matheuskafuri/hotwatch/internal/trend"
)

// State tells the presentation layer which of the distinct outcomes it is showing.
type State int

const (
	// Fresh data from a successful fetch within the ttl.
	Fresh State = iota
	// Stale data from an earlier fetch; the latest refresh failed.
	Stale
	// Empty means the fetch succeeded but the page listed no entries.
	Empty
	// Unavailable means the fetch failed and there is nothing earlier to show.
	Unavailable
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	case Empty:
		return "empty"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// View is what a caller renders: a (possibly filtered) dataset and its provenance.
type View struct {
	Dataset   trend.Dataset
	Keyword   string
	FetchedAt time.Time
	State     State
	Err       error
}

// Archiver receives every freshly loaded dataset.
type Archiver interface {
	Save(fetchedAt time.Time, ds trend.Dataset) (string, error)
}

// Service is the inbound boundary: refresh, query and export.
type Service struct {
	cache *cache.Cache
	now   func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(c *cache.Cache, opts ...Option) *Service {
	s := &Service{cache: c, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Archived wraps load so each successful result is also saved to a. Archive
// failures are logged and never fail the load.
func Archived(load cache.Loader, a Archiver, now func() time.Time) cache.Loader {
	if a == nil {
		return load
	}
	return func(ctx context.Context) (trend.Dataset, error) {
		ds, err := load(ctx)
		if err != nil {
			return ds, err
		}
		if id, err := a.Save(now(), ds); err != nil {
			slog.WarnContext(ctx, "archiving snapshot failed", "err", err)
		} else {
			slog.DebugContext(ctx, "archived snapshot", "id", id, "records", ds.Len())
		}
		return ds, nil
	}
}

// Refresh returns the current dataset. forced discards the cached one first.
// On failure the returned view still carries the last good data, if any.
func (s *Service) Refresh(ctx context.Context, forced bool) (View, error) {
	if forced {
		s.cache.Invalidate()
	}
	return s.Query(ctx, "")
}

// Query returns the cached dataset filtered by keyword, loading it if needed.
func (s *Service) Query(ctx context.Context, keyword string) (View, error) {
	e, err := s.cache.Get(ctx, s.now())
	if err != nil {
		slog.ErrorContext(ctx, "refresh failed", "err", err)
		last, ok := s.cache.Last()
		if !ok {
			return View{Keyword: keyword, State: Unavailable, Err: err}, err
		}
		return View{
			Dataset:   trend.Filter(last.Dataset, keyword),
			Keyword:   keyword,
			FetchedAt: last.FetchedAt,
			State:     Stale,
			Err:       err,
		}, err
	}

	state := Fresh
	if e.Dataset.Empty() {
		state = Empty
	}
	return View{
		Dataset:   trend.Filter(e.Dataset, keyword),
		Keyword:   keyword,
		FetchedAt: e.FetchedAt,
		State:     state,
	}, nil
}

// ExportCSV writes ds as a BOM-prefixed CSV.
func (s *Service) ExportCSV(w io.Writer, ds trend.Dataset) error {
	return export.WriteCSV(w, ds)
}

// TTL is how long a fetched dataset is served before refetching.
func (s *Service) TTL() time.Duration {
	return s.cache.TTL()
}
