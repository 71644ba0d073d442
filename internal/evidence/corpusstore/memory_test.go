package corpusstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(id, content string, keywords []string, age time.Duration) Record {
	return Record{
		ID:        id,
		Content:   content,
		Author:    "u/farmhand",
		Source:    "reddit",
		Timestamp: time.Now().Add(-age),
		Keywords:  keywords,
	}
}

func TestFindRecentMatchesContentAndKeywords(t *testing.T) {
	s := NewMemoryStore([]Record{
		post("1", "Rice prices up 12% at the mandi this week", nil, time.Hour),
		post("2", "Tractor maintenance thread", []string{"machinery"}, 2*time.Hour),
		post("3", "Monsoon outlook discussion", []string{"rice", "weather"}, 3*time.Hour),
	})

	got, err := s.FindRecent(context.Background(), []string{"rice"}, 8)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Most recent first.
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestFindRecentCaseInsensitiveAndLimited(t *testing.T) {
	s := NewMemoryStore(nil)
	for i := 0; i < 12; i++ {
		s.Add(post("p", "WHEAT harvest updates", nil, time.Duration(i)*time.Minute))
	}
	got, err := s.FindRecent(context.Background(), []string{"wheat"}, 8)
	require.NoError(t, err)
	assert.Len(t, got, 8)
}

func TestFindRecentEmptyTerms(t *testing.T) {
	s := NewMemoryStore([]Record{post("1", "anything", nil, time.Hour)})
	got, err := s.FindRecent(context.Background(), nil, 8)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindRecentHonorsCancelledContext(t *testing.T) {
	s := NewMemoryStore([]Record{post("1", "rice", nil, time.Hour)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.FindRecent(ctx, []string{"rice"}, 8)
	assert.Error(t, err)
}
