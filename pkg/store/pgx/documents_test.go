package pgx

import (
	"context"
	"testing"

	"github.com/OFFIS-RIT/greenlens/pkg/common"
)

type noopEmbedder struct{}

func (noopEmbedder) GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error) {
	return []float32{1}, nil
}

func TestToDocument(t *testing.T) {
	page := int32(12)
	doc := toDocument("Scope 1 emissions fell 20%.", "acme-2023.pdf", &page)
	if doc.Metadata.Page.String() != "12" || doc.Metadata.Source != "acme-2023.pdf" {
		t.Fatalf("unexpected document %+v", doc)
	}

	doc = toDocument("text", "acme.pdf", nil)
	if doc.Metadata.Page.Valid {
		t.Fatalf("expected unknown page, got %v", doc.Metadata.Page)
	}
}

func TestPageParam(t *testing.T) {
	if pageParam(common.PageRef{}) != nil {
		t.Fatal("expected nil for unknown page")
	}
	if got := pageParam(common.Page(3)); got == nil || *got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
}

func TestNewDocumentDBStoreWithConnection_Validates(t *testing.T) {
	if _, err := NewDocumentDBStoreWithConnection(nil, noopEmbedder{}); err == nil {
		t.Fatal("expected error for nil connection")
	}
}
