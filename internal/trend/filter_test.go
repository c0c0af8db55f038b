package trend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheuskafuri/hotwatch/internal/extract"
)

func sample() Dataset {
	return Build([]extract.Entry{
		scored("A", "电视剧 88888"),
		scored("B", "12"),
		pinned("C"),
		scored("Bob", "7"),
		scored("bobcat", "3"),
	})
}

func TestFilterEmptyKeyword(t *testing.T) {
	ds := sample()
	assert.Equal(t, ds, Filter(ds, ""))
}

func TestFilterExample(t *testing.T) {
	ds := Build([]extract.Entry{scored("A", "电视剧 88888"), scored("B", "12"), pinned("C")})
	got := Filter(ds, "B")
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "B", got.Records[0].Title)
	assert.Equal(t, int64(12), got.Records[0].NumericScore)
}

func TestFilterIsCaseSensitiveSubsequence(t *testing.T) {
	ds := sample()
	got := Filter(ds, "B")

	var titles []string
	for _, r := range got.Records {
		assert.True(t, strings.Contains(r.Title, "B"))
		titles = append(titles, r.Title)
	}
	assert.Equal(t, []string{"B", "Bob"}, titles)

	// Every result keeps the rank it had in the full dataset.
	assert.Equal(t, 2, got.Records[0].Rank)
	assert.Equal(t, 3, got.Records[1].Rank)
}

func TestFilterNoMatch(t *testing.T) {
	got := Filter(sample(), "zzz")
	assert.True(t, got.Empty())
}
