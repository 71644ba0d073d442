package corpusstore

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps records in memory. Used in tests and as the fallback
// when no corpus DSN is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
}

func NewMemoryStore(records []Record) *MemoryStore {
	return &MemoryStore{records: append([]Record(nil), records...)}
}

func (s *MemoryStore) Close() error { return nil }

// Add appends a record. Test helper; the agent itself never writes.
func (s *MemoryStore) Add(r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
}

func (s *MemoryStore) FindRecent(ctx context.Context, terms []string, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(terms) == 0 || limit <= 0 {
		return nil, nil
	}
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			lowered = append(lowered, t)
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Record
	for _, r := range s.records {
		if matchesAny(r, lowered) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
