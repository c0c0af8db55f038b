package score

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// PinnedLabel is shown in place of a score for entries the page pins without one.
const PinnedLabel = "pinned"

// Kind describes which shape of score fragment an entry carried.
type Kind int

const (
	// Pinned entries have no score fragment at all.
	Pinned Kind = iota
	// Scored fragments are a bare number.
	Scored
	// Labeled fragments carry a category tag before the number, e.g. "电视剧 88888".
	Labeled
	// Marker fragments hold text with no digits, e.g. "爆".
	Marker
)

func (k Kind) String() string {
	switch k {
	case Pinned:
		return "pinned"
	case Scored:
		return "scored"
	case Labeled:
		return "labeled"
	case Marker:
		return "marker"
	default:
		return "unknown"
	}
}

// Result is the normalized form of one raw score fragment.
type Result struct {
	Display string
	Numeric int64
	Kind    Kind
	Label   string
}

// Anomalous reports whether the fragment was present but had nothing to sort by.
func (r Result) Anomalous() bool {
	return r.Kind == Marker
}

var digitRun = regexp.MustCompile(`[0-9]+`)

// Normalize converts a raw score fragment into a display string and a sort key.
// present is false when the entry had no score element.
//
// Only the first run of digits is used; anything after it is ignored.
func Normalize(raw string, present bool) Result {
	if !present {
		return Result{Display: PinnedLabel, Kind: Pinned}
	}

	loc := digitRun.FindStringIndex(raw)
	if loc == nil {
		return Result{Display: raw, Kind: Marker}
	}

	r := Result{
		Display: raw,
		Numeric: parseRun(raw[loc[0]:loc[1]]),
		Kind:    Scored,
	}
	if label := strings.TrimSpace(raw[:loc[0]]); label != "" {
		r.Kind = Labeled
		r.Label = label
	}
	return r
}

// parseRun parses a run of ASCII digits, saturating at math.MaxInt64.
func parseRun(run string) int64 {
	n, err := strconv.ParseInt(run, 10, 64)
	if err != nil {
		return math.MaxInt64
	}
	return n
}
