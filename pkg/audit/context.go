package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/greenlens/pkg/ai"
	"github.com/OFFIS-RIT/greenlens/pkg/common"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"
)

// PrepareContext condenses the retrieved chunks into excerpts likely to hold
// measurable claims. Without documents the context is empty and the model is
// not called.
func (a *Auditor) PrepareContext(ctx context.Context, s State) (State, error) {
	if len(s.RetrievedDocs) == 0 {
		logger.Warn("[Audit] No documents retrieved, using empty context", "company", s.CompanyName)
		return s.WithContext(""), nil
	}

	prompt := fmt.Sprintf(ai.ContextExcerptPrompt, s.CompanyName, renderDocuments(s.RetrievedDocs))
	res, err := ai.Invoke[ai.ThemesResponse](ctx, a.llm, prompt, a.opts.GenerateOptions...)
	if err != nil {
		return s, fmt.Errorf("prepare context: %w", err)
	}

	logger.Debug("[Audit] Prepared context", "excerpts", len(res.Themes))
	return s.WithContext(strings.Join(res.Themes, "\n")), nil
}

func renderDocuments(docs []common.Document) string {
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		parts = append(parts, fmt.Sprintf("[Source: %s, Page: %s]\n%s",
			d.Metadata.SourceOrUnknown(), d.Metadata.Page, d.Content))
	}
	return strings.Join(parts, "\n\n")
}
