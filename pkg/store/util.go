package store

import (
	"context"
	"fmt"

	"github.com/OFFIS-RIT/greenlens/pkg/ai"
	"golang.org/x/sync/errgroup"
)

// ChunkRange calls fn for consecutive [start,end) windows of at most chunkSize.
func ChunkRange(total, chunkSize int, fn func(start, end int) error) error {
	if total <= 0 {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = total
	}
	for start := 0; start < total; start += chunkSize {
		end := min(start+chunkSize, total)
		if err := fn(start, end); err != nil {
			return err
		}
	}
	return nil
}

// GenerateEmbeddings embeds all inputs, using a single batch request when the
// embedder supports it and bounded parallel single requests otherwise.
func GenerateEmbeddings(ctx context.Context, embedder Embedder, inputs [][]byte) ([][]float32, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder is nil")
	}
	if len(inputs) == 0 {
		return nil, nil
	}
	if b, ok := embedder.(ai.BatchEmbedder); ok {
		return b.GenerateEmbeddings(ctx, inputs)
	}

	out := make([][]float32, len(inputs))

	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(8)
	for i := range inputs {
		eg.Go(func() error {
			emb, err := embedder.GenerateEmbedding(ectx, inputs[i])
			if err != nil {
				return err
			}
			out[i] = emb
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
