package loader

import (
	"context"
	"path"
	"strings"
)

// ReportFile is a sustainability report that can be split into pages for
// ingestion. The raw content is retrieved via the associated FileLoader.
type ReportFile struct {
	ID       string
	FilePath string
	Loader   FileLoader
}

// Source returns the file name used as the source tag of every chunk.
func (f ReportFile) Source() string {
	return path.Base(strings.ReplaceAll(f.FilePath, "\\", "/"))
}

// GetBytes retrieves the raw content of the file using its Loader.
func (f ReportFile) GetBytes(ctx context.Context) ([]byte, error) {
	return f.Loader.GetFileBytes(ctx, f)
}

// FileLoader loads the raw bytes of a ReportFile. Implementations may load
// files from disk, cloud storage, or other sources.
type FileLoader interface {
	GetFileBytes(ctx context.Context, file ReportFile) ([]byte, error)
}

// Page is the extracted text of one report page. Number is 1-based.
type Page struct {
	Number int
	Text   string
}

// PageLoader turns a ReportFile into its pages of text.
type PageLoader interface {
	GetPages(ctx context.Context, file ReportFile) ([]Page, error)
}

// IsPDF reports whether name has a .pdf extension, ignoring case.
func IsPDF(name string) bool {
	return strings.EqualFold(path.Ext(name), ".pdf")
}
