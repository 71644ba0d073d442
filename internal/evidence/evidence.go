// Package evidence gathers grounding material for a query from the web
// search API and the social-post corpus.
package evidence

import "time"

// SourceKind identifies where an item came from.
type SourceKind string

const (
	SourceWeb    SourceKind = "web"
	SourceCorpus SourceKind = "corpus"
)

// Item is one normalized evidence unit regardless of origin.
type Item struct {
	SourceKind  SourceKind
	Title       string
	Snippet     string
	OriginURL   string
	PublishedAt time.Time
	RawScore    float64
}

// Set holds merged evidence in prompt order: corpus items first, then web
// items, each source keeping its own internal order.
type Set struct {
	Items []Item
}

// Len reports how many items ground the answer.
func (s Set) Len() int { return len(s.Items) }

// maxExcerptLen bounds each snippet before it reaches the prompt so a
// handful of long posts cannot blow up the payload.
const maxExcerptLen = 280

func truncateExcerpt(s string) string {
	if len(s) <= maxExcerptLen {
		return s
	}
	r := []rune(s)
	if len(r) <= maxExcerptLen {
		return s
	}
	return string(r[:maxExcerptLen]) + "..."
}
