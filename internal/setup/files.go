package setup

import (
	"context"
	"strings"

	"github.com/OFFIS-RIT/greenlens/internal/storage"
	"github.com/OFFIS-RIT/greenlens/internal/util"
	"github.com/OFFIS-RIT/greenlens/pkg/ingest"
	"github.com/OFFIS-RIT/greenlens/pkg/loader"
	lio "github.com/OFFIS-RIT/greenlens/pkg/loader/io"
	"github.com/OFFIS-RIT/greenlens/pkg/loader/pdf"
	ls3 "github.com/OFFIS-RIT/greenlens/pkg/loader/s3"
	"github.com/OFFIS-RIT/greenlens/pkg/store"
)

// ReportFiles lists the PDF reports in a local folder or below an
// s3://bucket/prefix.
func ReportFiles(ctx context.Context, source string) ([]loader.ReportFile, error) {
	if !strings.HasPrefix(source, "s3://") {
		return lio.NewIOFileLoader().ListReports(source)
	}

	bucket, prefix, err := storage.ParseURI(source)
	if err != nil {
		return nil, err
	}
	client, err := storage.NewS3Client(ctx)
	if err != nil {
		return nil, err
	}
	keys, err := storage.ListFilesWithPrefix(ctx, client, bucket, prefix)
	if err != nil {
		return nil, err
	}
	return ls3.NewS3FileLoaderWithClient(bucket, client).Files(keys), nil
}

// NewIngester creates an ingester extracting pages with pdftotext. Chunk
// size and overlap come from INGEST_CHUNK_SIZE and INGEST_CHUNK_OVERLAP.
func NewIngester(docs store.DocumentStore) *ingest.Ingester {
	size, overlap := chunking()
	return ingest.NewIngester(pdf.NewPDFLoader(), docs, ingest.WithChunking(size, overlap))
}

func chunking() (int, int) {
	size := int(util.GetEnvNumeric("INGEST_CHUNK_SIZE", ingest.DefaultChunkSize))
	overlap := int(util.GetEnvNumeric("INGEST_CHUNK_OVERLAP", ingest.DefaultChunkOverlap))
	return size, overlap
}
