package loader

import (
	"regexp"
	"strings"
)

var reNewlines = regexp.MustCompile(`\n{3,}`)

func CacheKey(file ReportFile) string {
	if file.ID != "" {
		return file.ID + ":" + file.FilePath
	}
	return file.FilePath
}

// SplitPages splits pdftotext output on form feeds. A trailing empty page
// produced by the final page break is dropped; blank pages in between keep
// their number.
func SplitPages(text string) []Page {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\f")
	if len(parts) > 1 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}

	pages := make([]Page, 0, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(reNewlines.ReplaceAllString(p, "\n\n"))
		pages = append(pages, Page{Number: i + 1, Text: p})
	}
	return pages
}
