package ingest

import (
	"unicode/utf8"

	"github.com/tmc/langchaingo/textsplitter"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 100
)

// DefaultSeparators are tried in order, from paragraph to character level.
var DefaultSeparators = []string{"\n\n", "\n", " ", ""}

// NewSplitter returns a recursive splitter over DefaultSeparators. Pieces are
// merged back up to chunkSize runes with up to chunkOverlap runes carried
// into the next chunk. Separators stay attached to the start of the
// following piece.
func NewSplitter(chunkSize, chunkOverlap int) textsplitter.RecursiveCharacter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = 0
	}
	return textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
		textsplitter.WithSeparators(DefaultSeparators),
		textsplitter.WithKeepSeparator(true),
		textsplitter.WithLenFunc(utf8.RuneCountInString),
	)
}
