package store

import (
	"context"

	"github.com/OFFIS-RIT/greenlens/pkg/common"
)

// DefaultCollection is the collection report chunks are stored in unless
// configured otherwise.
const DefaultCollection = "esg_reports"

// DocumentStore persists report chunks and answers similarity queries over
// them. The audit pipeline only reads; ingestion writes.
type DocumentStore interface {
	SimilaritySearch(ctx context.Context, query string, k int) ([]common.Document, error)
	AddDocuments(ctx context.Context, docs []common.Document) error
}

// Embedder turns text into a vector. ai.Client satisfies it.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error)
}
