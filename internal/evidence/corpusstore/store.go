// Package corpusstore reads the dashboard's social-post corpus. The store
// is owned by the ingestion pipeline; the agent only ever queries it.
package corpusstore

import (
	"context"
	"strings"
	"time"
)

// Record mirrors one analyzed social-media post.
type Record struct {
	ID             string
	Content        string
	Author         string
	Source         string // platform: reddit, news, youtube
	URL            string
	Timestamp      time.Time
	SentimentScore float64
	Category       string
	Keywords       []string
}

// Store is the read-only corpus contract.
type Store interface {
	// FindRecent returns up to limit records whose content or keywords
	// contain any of the given terms (case-insensitive), most recent first.
	FindRecent(ctx context.Context, terms []string, limit int) ([]Record, error)
	Close() error
}

func matchesAny(r Record, loweredTerms []string) bool {
	content := strings.ToLower(r.Content)
	for _, term := range loweredTerms {
		if strings.Contains(content, term) {
			return true
		}
		for _, kw := range r.Keywords {
			if strings.Contains(strings.ToLower(kw), term) {
				return true
			}
		}
	}
	return false
}
