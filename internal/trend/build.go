package trend

import (
	"cmp"
	"slices"
	"strings"

	"github.com/matheuskafuri/hotwatch/internal/extract"
	"github.com/matheuskafuri/hotwatch/internal/score"
)

// Build normalizes entries and sorts them by numeric score, highest first.
// Entries whose title is empty or only whitespace are dropped; kept titles
// and scores are not trimmed. Equal scores keep extraction order.
func Build(entries []extract.Entry) Dataset {
	ds := Dataset{Records: make([]Record, 0, len(entries))}
	for _, e := range entries {
		if strings.TrimSpace(e.Title) == "" {
			continue
		}
		r := score.Normalize(e.RawScore, e.HasScore)
		if r.Anomalous() {
			ds.Anomalies++
		}
		ds.Records = append(ds.Records, Record{
			Title:        e.Title,
			DisplayScore: r.Display,
			NumericScore: r.Numeric,
			Label:        r.Label,
			Kind:         r.Kind,
			Link:         e.Link,
		})
	}

	slices.SortStableFunc(ds.Records, func(a, b Record) int {
		return cmp.Compare(b.NumericScore, a.NumericScore)
	})
	for i := range ds.Records {
		ds.Records[i].Rank = i + 1
	}
	return ds
}
