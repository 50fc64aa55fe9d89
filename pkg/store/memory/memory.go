package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/OFFIS-RIT/greenlens/pkg/common"
	"github.com/OFFIS-RIT/greenlens/pkg/store"
)

type entry struct {
	doc    common.Document
	vector []float32
	norm   float64
}

// Store is an in-process document store ranking by cosine similarity. It is
// intended for local runs and tests.
type Store struct {
	embedder store.Embedder

	mu      sync.RWMutex
	entries []entry
}

func New(embedder store.Embedder) *Store {
	return &Store{embedder: embedder}
}

// AddDocuments embeds docs and appends them in order.
func (s *Store) AddDocuments(ctx context.Context, docs []common.Document) error {
	inputs := make([][]byte, len(docs))
	for i, d := range docs {
		inputs[i] = []byte(d.Content)
	}
	vectors, err := store.GenerateEmbeddings(ctx, s.embedder, inputs)
	if err != nil {
		return fmt.Errorf("embed documents: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range docs {
		s.entries = append(s.entries, entry{doc: d, vector: vectors[i], norm: norm(vectors[i])})
	}
	return nil
}

// SimilaritySearch returns up to k documents ordered by descending similarity.
// Ties keep insertion order.
func (s *Store) SimilaritySearch(ctx context.Context, query string, k int) ([]common.Document, error) {
	if k <= 0 {
		return nil, nil
	}
	q, err := s.embedder.GenerateEmbedding(ctx, []byte(query))
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	qNorm := norm(q)

	type scored struct {
		idx   int
		score float64
	}

	s.mu.RLock()
	ranked := make([]scored, len(s.entries))
	for i, e := range s.entries {
		ranked[i] = scored{idx: i, score: cosine(q, qNorm, e.vector, e.norm)}
	}
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].score > ranked[b].score })

	n := min(k, len(ranked))
	out := make([]common.Document, n)
	for i := range n {
		out[i] = s.entries[ranked[i].idx].doc
	}
	s.mu.RUnlock()

	return out, nil
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

func cosine(a []float32, aNorm float64, b []float32, bNorm float64) float64 {
	if aNorm == 0 || bNorm == 0 {
		return 0
	}
	var dot float64
	for i := 0; i < len(a) && i < len(b); i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (aNorm * bNorm)
}
