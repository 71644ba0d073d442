package corpusstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore queries the posts table the ingestion pipeline writes to.
// The underlying pool is shared by every concurrent request.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, fmt.Errorf("open corpus db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping corpus db: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }

const findRecentQuery = `
SELECT id, content, author, source, url, ts, sentiment_score, category, keywords
FROM posts
WHERE content ILIKE ANY($1) OR EXISTS (
    SELECT 1 FROM unnest(keywords) kw WHERE kw ILIKE ANY($1)
)
ORDER BY ts DESC
LIMIT $2`

func (s *PostgresStore) FindRecent(ctx context.Context, terms []string, limit int) ([]Record, error) {
	if len(terms) == 0 || limit <= 0 {
		return nil, nil
	}
	patterns := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		patterns = append(patterns, "%"+t+"%")
	}
	if len(patterns) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, findRecentQuery, pgTextArray(patterns), limit)
	if err != nil {
		return nil, fmt.Errorf("query corpus: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var keywords string
		if err := rows.Scan(&r.ID, &r.Content, &r.Author, &r.Source, &r.URL,
			&r.Timestamp, &r.SentimentScore, &r.Category, &keywords); err != nil {
			return nil, fmt.Errorf("scan corpus row: %w", err)
		}
		r.Keywords = parsePgTextArray(keywords)
		out = append(out, r)
	}
	return out, rows.Err()
}

// pgTextArray renders a []string as a text[] literal. The pgx stdlib driver
// accepts array literals for ANY($1) parameters.
func pgTextArray(vals []string) string {
	quoted := make([]string, len(vals))
	for i, v := range vals {
		v = strings.ReplaceAll(v, `\`, `\\`)
		v = strings.ReplaceAll(v, `"`, `\"`)
		quoted[i] = `"` + v + `"`
	}
	return "{" + strings.Join(quoted, ",") + "}"
}

func parsePgTextArray(raw string) []string {
	raw = strings.TrimPrefix(raw, "{")
	raw = strings.TrimSuffix(raw, "}")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, `"`)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
