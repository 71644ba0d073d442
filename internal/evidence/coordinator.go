package evidence

import (
	"context"
	"log"
	"strings"
	"time"

	"agripulse/internal/evidence/corpusstore"
)

const (
	corpusResultCap = 8
	minTermLen      = 4
)

// Coordinator fans a domain query out to both evidence sources at once and
// merges whatever comes back. A failing or slow source degrades to zero
// items; it never sinks the request.
type Coordinator struct {
	Web           WebSearcher
	Corpus        corpusstore.Store
	WebTimeout    time.Duration
	CorpusTimeout time.Duration
}

func NewCoordinator(web WebSearcher, corpus corpusstore.Store) *Coordinator {
	return &Coordinator{
		Web:           web,
		Corpus:        corpus,
		WebTimeout:    10 * time.Second,
		CorpusTimeout: 5 * time.Second,
	}
}

// CorpusTermsFor tokenizes a query for corpus matching, dropping short
// stopword-length terms.
func CorpusTermsFor(query string) []string {
	var terms []string
	for _, f := range strings.Fields(strings.ToLower(query)) {
		f = strings.Trim(f, `.,!?"'()`)
		if len([]rune(f)) >= minTermLen {
			terms = append(terms, f)
		}
	}
	return terms
}

// Retrieve returns merged evidence in corpus-then-web order. The merge
// order is fixed by source, never by which call finished first.
func (c *Coordinator) Retrieve(ctx context.Context, query string) Set {
	webCh := make(chan []Item, 1)
	corpusCh := make(chan []Item, 1)

	go func() {
		webCh <- c.searchWeb(ctx, query)
	}()
	go func() {
		corpusCh <- c.searchCorpus(ctx, query)
	}()

	corpusItems := <-corpusCh
	webItems := <-webCh

	if ctx.Err() != nil {
		return Set{}
	}
	return Set{Items: append(corpusItems, webItems...)}
}

func (c *Coordinator) searchWeb(ctx context.Context, query string) []Item {
	if c.Web == nil || !c.Web.Configured() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, c.WebTimeout)
	defer cancel()

	items, err := c.Web.Search(ctx, query)
	if err != nil {
		log.Printf("websearch degraded: %v", err)
		return nil
	}
	return items
}

func (c *Coordinator) searchCorpus(ctx context.Context, query string) []Item {
	if c.Corpus == nil {
		return nil
	}
	terms := CorpusTermsFor(query)
	if len(terms) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, c.CorpusTimeout)
	defer cancel()

	records, err := c.Corpus.FindRecent(ctx, terms, corpusResultCap)
	if err != nil {
		log.Printf("corpus retrieval degraded: %v", err)
		return nil
	}

	items := make([]Item, 0, len(records))
	for _, r := range records {
		items = append(items, Item{
			SourceKind:  SourceCorpus,
			Title:       r.Source + " post by " + r.Author,
			Snippet:     truncateExcerpt(r.Content),
			OriginURL:   r.URL,
			PublishedAt: r.Timestamp,
			RawScore:    r.SentimentScore,
		})
	}
	return items
}
