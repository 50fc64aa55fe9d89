package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/greenlens/pkg/common"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"
)

const (
	weightReport = 3
	weightOther  = 2
	weightFailed = 0
)

// RetrieveEvidence searches the web once per claim/query pair. A failed
// search adds a single zero-weight item with a note and does not affect the
// other claims.
func (a *Auditor) RetrieveEvidence(ctx context.Context, s State) (State, error) {
	pairs := min(len(s.Claims), len(s.SearchQueries))
	evidence := make([]common.EvidenceItem, 0, pairs)

	for i := range pairs {
		claim, query := s.Claims[i], s.SearchQueries[i]
		logger.Debug("[Audit] Searching evidence", "claim_id", claim.ID, "query", query)

		results, err := a.web.Search(ctx, query)
		if err != nil {
			logger.Warn("[Audit] Evidence retrieval failed", "claim_id", claim.ID, "err", err)
			evidence = append(evidence, common.EvidenceItem{
				ClaimID:   claim.ID,
				ClaimText: claim.Text,
				Weight:    weightFailed,
				Note:      fmt.Sprintf("Evidence retrieval failed: %v", err),
			})
			continue
		}

		for _, r := range results {
			evidence = append(evidence, common.EvidenceItem{
				ClaimID:   claim.ID,
				ClaimText: claim.Text,
				Snippet:   r.Snippet,
				Source:    r.Link,
				Weight:    sourceWeight(r.Link),
			})
		}
	}

	logger.Info("[Audit] Collected evidence", "items", len(evidence))
	return s.WithEvidence(evidence), nil
}

func sourceWeight(link string) int {
	if strings.Contains(link, "report") {
		return weightReport
	}
	return weightOther
}
