package vectordb

import "context"

type Document struct {
	ID      string
	Content string
	Meta    map[string]any
}

type Match struct {
	Document
	Score float64
}

type SearchQuery struct {
	Text string
	TopK int
}

type IndexConfig struct {
	Dimensions     int
	DistanceMetric string
}

// Client stores documents alongside their embedding vectors and answers
// nearest-neighbor searches. Embeddings come from an injected
// jinakit.Embedder; the store never computes them itself.
type Client interface {
	EnsureIndex(ctx context.Context, config IndexConfig) error
	Upsert(ctx context.Context, doc Document) error
	UpsertBatch(ctx context.Context, docs []Document) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query SearchQuery) ([]Match, error)
}
