package evidence

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// WebSearcher is the web-search collaborator contract.
type WebSearcher interface {
	Search(ctx context.Context, query string) ([]Item, error)
	// Configured reports whether the adapter holds credentials. An
	// unconfigured adapter contributes zero items without network I/O.
	Configured() bool
}

// GoogleSearch calls the Google Custom Search JSON API.
type GoogleSearch struct {
	http    *http.Client
	apiKey  string
	cx      string
	baseURL string
}

const webResultCap = 4

// priceLike detects queries that already carry market framing, in which
// case the domain suffix is dropped to keep results specific.
var priceLike = regexp.MustCompile(`(?i)\b(price|market|rate|cost|mandi|msp)\b`)

const domainSuffix = " agriculture market price"

func NewGoogleSearch(apiKey, cx string) *GoogleSearch {
	return &GoogleSearch{
		http:    &http.Client{Timeout: 15 * time.Second},
		apiKey:  apiKey,
		cx:      cx,
		baseURL: "https://www.googleapis.com/customsearch/v1",
	}
}

func (g *GoogleSearch) Configured() bool { return g.apiKey != "" && g.cx != "" }

// SearchQueryFor returns the query string actually sent upstream.
func SearchQueryFor(query string) string {
	if priceLike.MatchString(query) {
		return query
	}
	return query + domainSuffix
}

type googleSearchResp struct {
	Items []struct {
		Title       string `json:"title"`
		Snippet     string `json:"snippet"`
		Link        string `json:"link"`
		DisplayLink string `json:"displayLink"`
	} `json:"items"`
}

func (g *GoogleSearch) Search(ctx context.Context, query string) ([]Item, error) {
	if !g.Configured() {
		return nil, errors.New("websearch: missing GOOGLE_API_KEY or GOOGLE_CX")
	}

	q := url.Values{}
	q.Set("key", g.apiKey)
	q.Set("cx", g.cx)
	q.Set("q", SearchQueryFor(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("websearch: unexpected status " + resp.Status)
	}

	var out googleSearchResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	items := make([]Item, 0, webResultCap)
	for i, it := range out.Items {
		if i >= webResultCap {
			break
		}
		items = append(items, Item{
			SourceKind:  SourceWeb,
			Title:       it.Title,
			Snippet:     truncateExcerpt(it.Snippet),
			OriginURL:   it.Link,
			PublishedAt: time.Now(),
			RawScore:    1 - float64(i)/float64(webResultCap),
		})
	}
	return items, nil
}

// CachedWebSearch fronts a WebSearcher with an LRU keyed by the upstream
// query string. Search traffic repeats heavily during market hours.
type CachedWebSearch struct {
	next  WebSearcher
	cache *lru.Cache[string, []Item]
}

func NewCachedWebSearch(next WebSearcher, size int) (*CachedWebSearch, error) {
	if size <= 0 {
		size = 256
	}
	c, err := lru.New[string, []Item](size)
	if err != nil {
		return nil, err
	}
	return &CachedWebSearch{next: next, cache: c}, nil
}

func (c *CachedWebSearch) Configured() bool { return c.next.Configured() }

func (c *CachedWebSearch) Search(ctx context.Context, query string) ([]Item, error) {
	key := SearchQueryFor(query)
	if items, ok := c.cache.Get(key); ok {
		return items, nil
	}
	items, err := c.next.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, items)
	return items, nil
}
