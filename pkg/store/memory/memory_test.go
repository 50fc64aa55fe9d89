package memory

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/OFFIS-RIT/greenlens/pkg/common"
)

var vocabulary = []string{"emissions", "water", "diversity", "packaging", "renewable"}

// keywordEmbedder maps text to a vector of keyword counts.
type keywordEmbedder struct{}

func (keywordEmbedder) GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error) {
	text := strings.ToLower(string(input))
	vec := make([]float32, len(vocabulary))
	for i, w := range vocabulary {
		vec[i] = float32(strings.Count(text, w))
	}
	return vec, nil
}

func TestSimilaritySearch_RanksByCosine(t *testing.T) {
	s := New(keywordEmbedder{})
	docs := []common.Document{
		{Content: "Water withdrawal reduced; water recycling expanded.", Metadata: common.DocumentMetadata{Source: "a.pdf", Page: common.Page(1)}},
		{Content: "Scope 1 emissions down 20%. Emissions target for 2030.", Metadata: common.DocumentMetadata{Source: "a.pdf", Page: common.Page(2)}},
		{Content: "Board diversity at 40%.", Metadata: common.DocumentMetadata{Source: "a.pdf", Page: common.Page(3)}},
	}
	if err := s.AddDocuments(context.Background(), docs); err != nil {
		t.Fatalf("AddDocuments() error = %v", err)
	}

	got, err := s.SimilaritySearch(context.Background(), "emissions", 2)
	if err != nil {
		t.Fatalf("SimilaritySearch() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Metadata.Page.Number != 2 {
		t.Fatalf("expected emissions page first, got %+v", got[0])
	}
}

func TestSimilaritySearch_KLargerThanStore(t *testing.T) {
	s := New(keywordEmbedder{})
	_ = s.AddDocuments(context.Background(), []common.Document{{Content: "water"}})

	got, err := s.SimilaritySearch(context.Background(), "water", 5)
	if err != nil {
		t.Fatalf("SimilaritySearch() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New(keywordEmbedder{})
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.AddDocuments(context.Background(), []common.Document{{Content: vocabulary[i%len(vocabulary)]}})
		}()
		go func() {
			defer wg.Done()
			_, _ = s.SimilaritySearch(context.Background(), "water", 3)
		}()
	}
	wg.Wait()
	docs, err := s.SimilaritySearch(context.Background(), "water", 100)
	if err != nil {
		t.Fatalf("SimilaritySearch() error = %v", err)
	}
	if len(docs) != 20 {
		t.Fatalf("expected 20 documents, got %d", len(docs))
	}
}
