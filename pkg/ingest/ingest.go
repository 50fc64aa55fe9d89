package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/OFFIS-RIT/greenlens/pkg/common"
	"github.com/OFFIS-RIT/greenlens/pkg/loader"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"
	"github.com/OFFIS-RIT/greenlens/pkg/store"

	"github.com/tmc/langchaingo/textsplitter"
	"golang.org/x/sync/errgroup"
)

// Ingester loads reports page by page, splits every page into chunks and
// adds them to a document store tagged with file name and page number.
type Ingester struct {
	pages    loader.PageLoader
	docs     store.DocumentStore
	splitter textsplitter.TextSplitter
	parallel int
}

type Option func(*Ingester)

// WithChunking sets chunk size and overlap in runes.
func WithChunking(size, overlap int) Option {
	return func(i *Ingester) {
		i.splitter = NewSplitter(size, overlap)
	}
}

// WithParallelFiles sets how many files are processed at once.
func WithParallelFiles(n int) Option {
	return func(i *Ingester) {
		if n > 0 {
			i.parallel = n
		}
	}
}

func NewIngester(pages loader.PageLoader, docs store.DocumentStore, opts ...Option) *Ingester {
	i := &Ingester{
		pages:    pages,
		docs:     docs,
		splitter: NewSplitter(DefaultChunkSize, DefaultChunkOverlap),
		parallel: 2,
	}
	for _, o := range opts {
		o(i)
	}
	return i
}

// Stats summarizes an ingestion.
type Stats struct {
	Files  int `json:"files"`
	Failed int `json:"failed"`
	Chunks int `json:"chunks"`
}

// Chunks splits the pages of file into documents.
func (i *Ingester) Chunks(ctx context.Context, file loader.ReportFile) ([]common.Document, error) {
	pages, err := i.pages.GetPages(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", file.FilePath, err)
	}

	source := file.Source()
	var docs []common.Document
	for _, p := range pages {
		chunks, err := i.splitter.SplitText(p.Text)
		if err != nil {
			return nil, fmt.Errorf("split %s page %d: %w", file.FilePath, p.Number, err)
		}
		for _, chunk := range chunks {
			docs = append(docs, common.Document{
				Content: chunk,
				Metadata: common.DocumentMetadata{
					Source: source,
					Page:   common.Page(p.Number),
				},
			})
		}
	}
	return docs, nil
}

// IngestFile adds the chunks of one file and returns how many were stored.
func (i *Ingester) IngestFile(ctx context.Context, file loader.ReportFile) (int, error) {
	docs, err := i.Chunks(ctx, file)
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		logger.Warn("[Ingest] No text extracted", "file", file.FilePath)
		return 0, nil
	}
	if err := i.docs.AddDocuments(ctx, docs); err != nil {
		return 0, fmt.Errorf("store %s: %w", file.FilePath, err)
	}
	return len(docs), nil
}

// Ingest processes all files. A failing file does not stop the others; all
// failures are returned joined.
func (i *Ingester) Ingest(ctx context.Context, files []loader.ReportFile) (Stats, error) {
	start := time.Now()

	var (
		mu    sync.Mutex
		stats = Stats{Files: len(files)}
		errs  []error
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(i.parallel)
	for _, f := range files {
		g.Go(func() error {
			logger.Info("[Ingest] Ingesting report", "file", f.FilePath)
			n, err := i.IngestFile(gCtx, f)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Error("[Ingest] Failed to ingest report", "file", f.FilePath, "err", err)
				stats.Failed++
				errs = append(errs, err)
				return nil
			}
			stats.Chunks += n
			logger.Info("[Ingest] Added chunks", "file", f.Source(), "chunks", n)
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("[Ingest] Ingestion complete",
		"files", stats.Files, "failed", stats.Failed, "chunks", stats.Chunks, "duration", time.Since(start))
	return stats, errors.Join(errs...)
}
