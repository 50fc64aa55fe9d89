package audit

import (
	"context"
	"fmt"

	"github.com/OFFIS-RIT/greenlens/pkg/ai"
	"github.com/OFFIS-RIT/greenlens/pkg/common"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"
)

// RetrieveDocs asks the model for search topics and collects the report
// chunks closest to each topic. Chunks with identical content collapse into
// one entry at the position of their first occurrence, carrying the metadata
// of their last occurrence.
func (a *Auditor) RetrieveDocs(ctx context.Context, s State) (State, error) {
	logger.Info("[Audit] LLM-guided retrieval", "company", s.CompanyName)

	prompt := fmt.Sprintf(ai.TopicSuggestionPrompt, s.CompanyName)
	res, err := ai.Invoke[ai.SearchQueriesResponse](ctx, a.llm, prompt, a.opts.GenerateOptions...)
	if err != nil {
		return s, fmt.Errorf("suggest topics: %w", err)
	}
	logger.Debug("[Audit] Suggested topics", "topics", res.Queries)

	all := make([]common.Document, 0, len(res.Queries)*a.opts.TopicK)
	for _, topic := range res.Queries {
		docs, err := a.docs.SimilaritySearch(ctx, topic, a.opts.TopicK)
		if err != nil {
			return s, fmt.Errorf("similarity search for %q: %w", topic, err)
		}
		all = append(all, docs...)
	}

	unique := dedupeDocuments(all)
	logger.Info("[Audit] Retrieved unique documents", "raw", len(all), "unique", len(unique))

	return s.WithRetrievedDocs(unique), nil
}

func dedupeDocuments(docs []common.Document) []common.Document {
	index := make(map[string]int, len(docs))
	out := make([]common.Document, 0, len(docs))
	for _, d := range docs {
		if i, ok := index[d.Content]; ok {
			out[i] = d
			continue
		}
		index[d.Content] = len(out)
		out = append(out, d)
	}
	return out
}
