package trend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheuskafuri/hotwatch/internal/fetch"
)

type stubFetcher struct {
	body []byte
	err  error
	reqs []fetch.Request
}

func (s *stubFetcher) Fetch(_ context.Context, req fetch.Request) ([]byte, error) {
	s.reqs = append(s.reqs, req)
	return s.body, s.err
}

const hotPage = `<table>
<tr><td class="td-02"><a href="/weibo?q=pin">置顶</a></td></tr>
<tr><td class="td-02"><a href="/weibo?q=b">B</a><span>12</span></td></tr>
<tr><td class="td-02"><a href="/weibo?q=a">A</a><span>电视剧 88888</span></td></tr>
<tr><td class="td-02"><a href="/weibo?q=h">H</a><span>爆</span></td></tr>
</table>`

func testSource() Source {
	return Source{
		URL:     "https://s.weibo.com/top/summary?cate=realtimehot",
		Origin:  "https://s.weibo.com",
		Headers: map[string]string{"User-Agent": "test"},
	}
}

func TestPipelineRun(t *testing.T) {
	f := &stubFetcher{body: []byte(hotPage)}
	ds, err := NewPipeline(f, testSource()).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, f.reqs, 1)
	assert.Equal(t, testSource().URL, f.reqs[0].URL)
	assert.Equal(t, "test", f.reqs[0].Header("User-Agent"))

	require.Equal(t, 4, ds.Len())
	assert.Equal(t, "A", ds.Records[0].Title)
	assert.Equal(t, "https://s.weibo.com/weibo?q=a", ds.Records[0].Link)
	assert.Equal(t, "B", ds.Records[1].Title)
	assert.Equal(t, "置顶", ds.Records[2].Title)
	assert.Equal(t, "pinned", ds.Records[2].DisplayScore)
	assert.Equal(t, "爆", ds.Records[3].DisplayScore)
	assert.Equal(t, 1, ds.Anomalies)
}

func TestPipelineTransportFailure(t *testing.T) {
	f := &stubFetcher{err: &fetch.TransportError{URL: "x", StatusCode: 502}}
	ds, err := NewPipeline(f, testSource()).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, fetch.ErrTransport)
	assert.True(t, ds.Empty())
}

func TestPipelineZeroEntriesIsNotAnError(t *testing.T) {
	f := &stubFetcher{body: []byte(`<html><body>Sina Visitor System</body></html>`)}
	ds, err := NewPipeline(f, testSource()).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, ds.Empty())
}

func TestPipelineKeepsScoreTextVerbatim(t *testing.T) {
	f := &stubFetcher{body: []byte(`<table><tr><td class="td-02"><a href="/t"> 标题 </a><span> 剧集 352541</span></td></tr></table>`)}
	ds, err := NewPipeline(f, testSource()).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())

	r := ds.Records[0]
	assert.Equal(t, " 标题 ", r.Title)
	assert.Equal(t, " 剧集 352541", r.DisplayScore)
	assert.Equal(t, int64(352541), r.NumericScore)
	assert.Equal(t, "剧集", r.Label)
}
