// Package docstore fetches extracted document text dropped into object
// storage by the dashboard's parse-document pipeline.
package docstore

import "context"

// Store resolves a document key to already-extracted plain text.
type Store interface {
	Fetch(ctx context.Context, key string) (string, error)
}
