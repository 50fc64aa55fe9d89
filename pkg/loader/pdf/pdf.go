package pdf

import (
	"context"
	"sync"

	"github.com/OFFIS-RIT/greenlens/pkg/loader"

	"golang.org/x/sync/singleflight"
)

// PDFLoader extracts the pages of PDF reports fetched through another
// FileLoader.
type PDFLoader struct {
	extract func(ctx context.Context, input []byte) (string, error)

	cache   map[string][]loader.Page
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewPDFLoader creates a loader backed by pdftotext.
func NewPDFLoader() *PDFLoader {
	return &PDFLoader{
		extract: extractText,
		cache:   make(map[string][]loader.Page),
	}
}

// GetPages returns the pages of file, numbered from 1.
func (l *PDFLoader) GetPages(ctx context.Context, file loader.ReportFile) ([]loader.Page, error) {
	key := loader.CacheKey(file)

	l.cacheMu.RLock()
	if cached, ok := l.cache[key]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(key, func() (any, error) {
		content, err := file.GetBytes(ctx)
		if err != nil {
			return nil, err
		}

		text, err := l.extract(ctx, content)
		if err != nil {
			return nil, err
		}
		pages := loader.SplitPages(text)

		l.cacheMu.Lock()
		l.cache[key] = pages
		l.cacheMu.Unlock()

		return pages, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]loader.Page), nil
}
