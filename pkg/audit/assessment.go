package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/greenlens/internal/util"
	"github.com/OFFIS-RIT/greenlens/pkg/ai"
	"github.com/OFFIS-RIT/greenlens/pkg/common"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"
)

const summaryClaimRunes = 100

// GenerateFinalAssessment scores the report and asks the model for a short
// narrative. The score is always the deterministic one; when the model fails
// the summary carries the error instead. An empty report leaves the state
// unchanged.
func (a *Auditor) GenerateFinalAssessment(ctx context.Context, s State) (State, error) {
	if len(s.FinalReport) == 0 {
		logger.Warn("[Audit] Empty report, skipping final assessment", "company", s.CompanyName)
		return s, nil
	}

	score := PreliminaryScore(s.FinalReport)
	logger.Info("[Audit] Preliminary greenwash score", "score", score)

	prompt := fmt.Sprintf(ai.AssessmentPrompt, s.CompanyName, score, renderReportSummary(s.FinalReport))
	res, err := ai.Invoke[ai.FinalAssessmentResponse](ctx, a.llm, prompt, a.opts.GenerateOptions...)
	if err != nil {
		logger.Warn("[Audit] Assessment narrative failed", "err", err)
		return s.WithFinalAssessment(common.FinalAssessment{
			GreenwashScore: score,
			Summary:        fmt.Sprintf("Error: %v", err),
		}), nil
	}

	if res.GreenwashScore != score {
		logger.Debug("[Audit] Model proposed a different score", "model", res.GreenwashScore, "score", score)
	}
	return s.WithFinalAssessment(common.FinalAssessment{
		GreenwashScore: score,
		Summary:        res.Summary,
	}), nil
}

func renderReportSummary(report []common.ClaimVerdict) string {
	lines := make([]string, 0, len(report))
	for _, v := range report {
		lines = append(lines, fmt.Sprintf("- Claim: \"%s\"\n  - Verdict: %s\n  - Analysis: %s",
			util.TruncateRunes(v.Claim, summaryClaimRunes, "")+"...", v.Status, v.Synthesis))
	}
	return strings.Join(lines, "\n")
}
