package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/greenlens/pkg/ai"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"
)

// GenerateSearchQueries asks for one web query per claim, in claim order. A
// count mismatch is logged and tolerated; evidence retrieval pairs claims and
// queries up to the shorter list.
func (a *Auditor) GenerateSearchQueries(ctx context.Context, s State) (State, error) {
	if len(s.Claims) == 0 {
		logger.Warn("[Audit] No claims extracted, skipping query generation", "company", s.CompanyName)
		return s.WithSearchQueries(nil), nil
	}

	bullets := make([]string, 0, len(s.Claims))
	for _, c := range s.Claims {
		bullets = append(bullets, "- "+c.Text)
	}
	domain := companyDomainStem(s.CompanyName)
	prompt := fmt.Sprintf(ai.SearchQueriesPrompt, strings.Join(bullets, "\n"), domain, domain)

	res, err := ai.Invoke[ai.SearchQueriesResponse](ctx, a.llm, prompt, a.opts.GenerateOptions...)
	if err != nil {
		return s, fmt.Errorf("generate search queries: %w", err)
	}

	if len(res.Queries) != len(s.Claims) {
		logger.Warn("[Audit] Search query count does not match claim count",
			"claims", len(s.Claims), "queries", len(res.Queries))
	}
	logger.Info("[Audit] Generated search queries", "queries", len(res.Queries))
	return s.WithSearchQueries(res.Queries), nil
}

// companyDomainStem lowercases the company name and drops whitespace, so
// "Acme Corp" becomes "acmecorp".
func companyDomainStem(company string) string {
	return strings.Join(strings.Fields(strings.ToLower(company)), "")
}
