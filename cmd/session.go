package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/matheuskafuri/hotwatch/internal/board"
	"github.com/matheuskafuri/hotwatch/internal/cache"
	"github.com/matheuskafuri/hotwatch/internal/config"
	"github.com/matheuskafuri/hotwatch/internal/fetch"
	"github.com/matheuskafuri/hotwatch/internal/history"
	"github.com/matheuskafuri/hotwatch/internal/logging"
	"github.com/matheuskafuri/hotwatch/internal/trend"
)

// session is everything a command needs to serve the board.
type session struct {
	cfg     *config.Config
	svc     *board.Service
	closers []io.Closer
}

// openSession loads config, installs logging and wires the pipeline behind
// the cache. logToFile keeps log output off a terminal the caller draws on.
func openSession(logToFile bool) (*session, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logCloser, err := logging.Setup(cfg.Log, logToFile)
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}
	s := &session{cfg: cfg, closers: []io.Closer{logCloser}}

	client := fetch.New(fetch.WithTimeout(cfg.RequestTimeoutDuration()))
	pipeline := trend.NewPipeline(client, trend.Source{
		URL:     cfg.Source.URL,
		Origin:  cfg.Source.Origin,
		Headers: cfg.Headers(),
	})

	var archiver board.Archiver
	if cfg.History.Enabled {
		store, err := history.Open(config.HistoryPath())
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("opening history: %w", err)
		}
		s.closers = append(s.closers, store)
		archiver = store
	}

	load := board.Archived(pipeline.Run, archiver, time.Now)
	s.svc = board.New(cache.New(cfg.CacheKey(), cfg.CacheTTLDuration(), load))

	slog.Debug("session ready",
		"url", cfg.Source.URL,
		"ttl", cfg.CacheTTLDuration(),
		"history", cfg.History.Enabled,
	)
	return s, nil
}

// view queries the board, bypassing the cache when forced.
func (s *session) view(ctx context.Context, keyword string, forced bool) (board.View, error) {
	if !forced {
		return s.svc.Query(ctx, keyword)
	}
	v, err := s.svc.Refresh(ctx, true)
	if keyword != "" {
		v.Dataset = trend.Filter(v.Dataset, keyword)
		v.Keyword = keyword
	}
	return v, err
}

func (s *session) Close() {
	// Close in reverse so the log file outlives the rest.
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i].Close()
	}
}
