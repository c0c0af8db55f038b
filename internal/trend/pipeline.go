package trend

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/matheuskafuri/hotwatch/internal/extract"
	"github.com/matheuskafuri/hotwatch/internal/fetch"
	"github.com/matheuskafuri/hotwatch/internal/score"
)

// Source is the page the pipeline reads and the origin its links resolve against.
type Source struct {
	URL     string
	Origin  string
	Headers map[string]string
}

// Pipeline runs one fetch, extract, normalize and rank cycle.
type Pipeline struct {
	fetcher fetch.Fetcher
	source  Source
}

func NewPipeline(f fetch.Fetcher, src Source) *Pipeline {
	return &Pipeline{fetcher: f, source: src}
}

// Run returns the ranked dataset for the source. A transport failure is
// returned as an error, never as an empty dataset.
func (p *Pipeline) Run(ctx context.Context) (Dataset, error) {
	body, err := p.fetcher.Fetch(ctx, fetch.Request{URL: p.source.URL, Headers: p.source.Headers})
	if err != nil {
		return Dataset{}, fmt.Errorf("fetching source: %w", err)
	}

	entries, err := extract.Extract(bytes.NewReader(body), p.source.Origin)
	if err != nil {
		return Dataset{}, fmt.Errorf("extracting entries: %w", err)
	}

	ds := Build(entries)
	for _, r := range ds.Records {
		if r.Kind == score.Marker {
			slog.WarnContext(ctx, "score has no digits, ranking as zero", "title", r.Title, "score", r.DisplayScore)
		}
	}
	if ds.Empty() {
		slog.InfoContext(ctx, "source returned no entries", "url", p.source.URL, "bytes", len(body))
	} else {
		slog.DebugContext(ctx, "pipeline complete", "entries", len(entries), "records", ds.Len(), "anomalies", ds.Anomalies)
	}
	return ds, nil
}
