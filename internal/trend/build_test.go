package trend

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheuskafuri/hotwatch/internal/extract"
	"github.com/matheuskafuri/hotwatch/internal/score"
)

func scored(title, raw string) extract.Entry {
	return extract.Entry{Title: title, RawScore: raw, HasScore: true, Link: "https://s.weibo.com/" + title}
}

func pinned(title string) extract.Entry {
	return extract.Entry{Title: title, Link: "https://s.weibo.com/" + title}
}

func TestBuildExample(t *testing.T) {
	ds := Build([]extract.Entry{
		scored("A", "电视剧 88888"),
		scored("B", "12"),
		pinned("C"),
	})

	want := []Record{
		{Rank: 1, Title: "A", DisplayScore: "电视剧 88888", NumericScore: 88888, Label: "电视剧", Kind: score.Labeled, Link: "https://s.weibo.com/A"},
		{Rank: 2, Title: "B", DisplayScore: "12", NumericScore: 12, Kind: score.Scored, Link: "https://s.weibo.com/B"},
		{Rank: 3, Title: "C", DisplayScore: "pinned", NumericScore: 0, Kind: score.Pinned, Link: "https://s.weibo.com/C"},
	}
	if diff := cmp.Diff(want, ds.Records); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
	assert.Zero(t, ds.Anomalies)
}

func TestBuildSortsDescending(t *testing.T) {
	ds := Build([]extract.Entry{
		scored("low", "5"),
		pinned("top"),
		scored("high", "500"),
		scored("mid", "综艺 50"),
	})

	var titles []string
	for i, r := range ds.Records {
		titles = append(titles, r.Title)
		if i > 0 {
			assert.GreaterOrEqual(t, ds.Records[i-1].NumericScore, r.NumericScore)
		}
	}
	assert.Equal(t, []string{"high", "mid", "low", "top"}, titles)
}

func TestBuildIsStable(t *testing.T) {
	ds := Build([]extract.Entry{
		pinned("p1"),
		scored("x", "10"),
		scored("m1", "爆"),
		pinned("p2"),
		scored("y", "10"),
		scored("m2", "新"),
	})

	var titles []string
	for _, r := range ds.Records {
		titles = append(titles, r.Title)
	}
	assert.Equal(t, []string{"x", "y", "p1", "m1", "p2", "m2"}, titles)
	assert.Equal(t, 2, ds.Anomalies)
}

func TestBuildSkipsUntitled(t *testing.T) {
	ds := Build([]extract.Entry{
		{Title: "", RawScore: "100", HasScore: true},
		{Title: " \n\t", RawScore: "100", HasScore: true},
		scored("kept", "1"),
	})
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "kept", ds.Records[0].Title)
	assert.Equal(t, 1, ds.Records[0].Rank)
}

func TestBuildKeepsDuplicates(t *testing.T) {
	ds := Build([]extract.Entry{scored("same", "2"), scored("same", "3")})
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, "3", ds.Records[0].DisplayScore)
	assert.Equal(t, "2", ds.Records[1].DisplayScore)
}

func TestBuildEmpty(t *testing.T) {
	ds := Build(nil)
	assert.True(t, ds.Empty())
	assert.NotNil(t, ds.Records)
}

func TestTopAndLeader(t *testing.T) {
	ds := Build([]extract.Entry{scored("a", "3"), scored("b", "2"), scored("c", "1")})

	assert.Equal(t, 2, ds.Top(2).Len())
	assert.Equal(t, 3, ds.Top(0).Len())
	assert.Equal(t, 3, ds.Top(10).Len())

	leader, ok := ds.Leader()
	require.True(t, ok)
	assert.Equal(t, "a", leader.Title)

	_, ok = Dataset{}.Leader()
	assert.False(t, ok)
}
