package evidence

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agripulse/internal/evidence/corpusstore"
)

type stubSearcher struct {
	items      []Item
	err        error
	delay      time.Duration
	configured bool
	calls      int32
}

func (s *stubSearcher) Configured() bool { return s.configured }

func (s *stubSearcher) Search(ctx context.Context, query string) ([]Item, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.items, s.err
}

func webItem(title string) Item {
	return Item{SourceKind: SourceWeb, Title: title, Snippet: title}
}

func corpusRecord(content string, age time.Duration) corpusstore.Record {
	return corpusstore.Record{
		ID: content, Content: content, Author: "u/x", Source: "reddit",
		Timestamp: time.Now().Add(-age),
	}
}

func TestRetrieveMergesCorpusThenWeb(t *testing.T) {
	web := &stubSearcher{
		configured: true,
		items:      []Item{webItem("web-1"), webItem("web-2")},
	}
	corpus := corpusstore.NewMemoryStore([]corpusstore.Record{
		corpusRecord("rice price chatter", time.Hour),
		corpusRecord("rice harvest photos", 2*time.Hour),
	})
	c := NewCoordinator(web, corpus)

	set := c.Retrieve(context.Background(), "rice price trend")
	require.Equal(t, 4, set.Len())
	assert.Equal(t, SourceCorpus, set.Items[0].SourceKind)
	assert.Equal(t, SourceCorpus, set.Items[1].SourceKind)
	assert.Equal(t, SourceWeb, set.Items[2].SourceKind)
	assert.Equal(t, "web-1", set.Items[2].Title)
}

func TestRetrieveAbsorbsBothSourceFailures(t *testing.T) {
	web := &stubSearcher{configured: true, err: errors.New("upstream 500")}
	c := NewCoordinator(web, failingStore{})

	set := c.Retrieve(context.Background(), "rice price trend")
	assert.Zero(t, set.Len())
}

func TestRetrieveSkipsUnconfiguredWeb(t *testing.T) {
	web := &stubSearcher{configured: false, items: []Item{webItem("nope")}}
	c := NewCoordinator(web, corpusstore.NewMemoryStore(nil))

	set := c.Retrieve(context.Background(), "rice price trend")
	assert.Zero(t, set.Len())
	assert.Zero(t, atomic.LoadInt32(&web.calls))
}

func TestRetrieveSlowSourceDoesNotBlockTheOther(t *testing.T) {
	web := &stubSearcher{configured: true, delay: time.Minute, items: []Item{webItem("late")}}
	corpus := corpusstore.NewMemoryStore([]corpusstore.Record{
		corpusRecord("rice spot rates", time.Hour),
	})
	c := NewCoordinator(web, corpus)
	c.WebTimeout = 20 * time.Millisecond

	start := time.Now()
	set := c.Retrieve(context.Background(), "rice price trend")
	assert.Less(t, time.Since(start), 5*time.Second)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, SourceCorpus, set.Items[0].SourceKind)
}

func TestRetrieveCancelledYieldsNothing(t *testing.T) {
	web := &stubSearcher{configured: true, items: []Item{webItem("x")}}
	c := NewCoordinator(web, corpusstore.NewMemoryStore(nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	set := c.Retrieve(ctx, "rice price trend")
	assert.Zero(t, set.Len())
}

func TestCorpusTermsFor(t *testing.T) {
	assert.Equal(t, []string{"rice", "price", "trend"}, CorpusTermsFor("Rice price trend?"))
	// Short tokens are stopword-filtered.
	assert.Equal(t, []string{"wheat"}, CorpusTermsFor("is the wheat up"))
	assert.Empty(t, CorpusTermsFor("is it up"))
}

type failingStore struct{}

func (failingStore) FindRecent(ctx context.Context, terms []string, limit int) ([]corpusstore.Record, error) {
	return nil, errors.New("connection refused")
}
func (failingStore) Close() error { return nil }

func TestCachedWebSearchHitsOnce(t *testing.T) {
	web := &stubSearcher{configured: true, items: []Item{webItem("cached")}}
	cached, err := NewCachedWebSearch(web, 8)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		items, err := cached.Search(context.Background(), "rice price trend")
		require.NoError(t, err)
		require.Len(t, items, 1)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&web.calls))
}

func TestSearchQueryFor(t *testing.T) {
	assert.Equal(t, "rice price trend", SearchQueryFor("rice price trend"))
	assert.Equal(t, "onion shortage"+domainSuffix, SearchQueryFor("onion shortage"))
}
