package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/OFFIS-RIT/greenlens/pkg/loader"
)

type staticLoader map[string]string

func (s staticLoader) GetFileBytes(ctx context.Context, file loader.ReportFile) ([]byte, error) {
	content, ok := s[file.FilePath]
	if !ok {
		return nil, errors.New("not found")
	}
	return []byte(content), nil
}

func TestPDFLoader_GetPages(t *testing.T) {
	calls := 0
	l := NewPDFLoader()
	l.extract = func(ctx context.Context, input []byte) (string, error) {
		calls++
		return string(input), nil
	}

	file := loader.ReportFile{FilePath: "acme.pdf", Loader: staticLoader{"acme.pdf": "Page one\fPage two\f"}}
	for range 2 {
		pages, err := l.GetPages(context.Background(), file)
		if err != nil {
			t.Fatalf("GetPages() error = %v", err)
		}
		if len(pages) != 2 || pages[1].Number != 2 || pages[1].Text != "Page two" {
			t.Fatalf("unexpected pages %+v", pages)
		}
	}
	if calls != 1 {
		t.Fatalf("expected a single extraction, got %d", calls)
	}
}

func TestPDFLoader_LoaderError(t *testing.T) {
	l := NewPDFLoader()
	file := loader.ReportFile{FilePath: "missing.pdf", Loader: staticLoader{}}
	if _, err := l.GetPages(context.Background(), file); err == nil {
		t.Fatal("expected error")
	}
}
