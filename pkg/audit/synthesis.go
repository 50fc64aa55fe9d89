package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/greenlens/pkg/ai"
	"github.com/OFFIS-RIT/greenlens/pkg/common"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"
)

// NoEvidenceSynthesis is the synthesis of a claim that had no evidence.
const NoEvidenceSynthesis = "No external evidence was retrieved to support or contradict this claim."

// SynthesizeFindings produces one verdict per claim in claim order. Claims
// without evidence are Unsubstantiated without asking the model; a failed
// model call marks only that claim as Error.
func (a *Auditor) SynthesizeFindings(ctx context.Context, s State) (State, error) {
	report := make([]common.ClaimVerdict, 0, len(s.Claims))

	for _, claim := range s.Claims {
		matched := a.evidenceFor(claim, s.Evidence)
		if len(matched) == 0 {
			report = append(report, common.ClaimVerdict{
				ClaimID:   claim.ID,
				Claim:     claim.Text,
				Synthesis: NoEvidenceSynthesis,
				Status:    common.StatusUnsubstantiated,
			})
			continue
		}

		prompt := fmt.Sprintf(ai.VerdictPrompt, claim.Text, renderEvidence(matched))
		res, err := ai.Invoke[ai.ClaimVerdictResponse](ctx, a.llm, prompt, a.opts.GenerateOptions...)
		if err != nil {
			logger.Warn("[Audit] Claim synthesis failed", "claim_id", claim.ID, "err", err)
			report = append(report, common.ClaimVerdict{
				ClaimID:   claim.ID,
				Claim:     claim.Text,
				Synthesis: fmt.Sprintf("Error during analysis: %v", err),
				Status:    common.StatusError,
			})
			continue
		}

		report = append(report, common.ClaimVerdict{
			ClaimID:   claim.ID,
			Claim:     claim.Text,
			Synthesis: res.Synthesis,
			Status:    common.VerdictStatus(res.Status),
		})
	}

	logger.Info("[Audit] Synthesized findings", "verdicts", len(report))
	return s.WithFinalReport(report), nil
}

func (a *Auditor) evidenceFor(claim common.Claim, evidence []common.EvidenceItem) []common.EvidenceItem {
	out := make([]common.EvidenceItem, 0)
	for _, ev := range evidence {
		if a.opts.MatchEvidenceByID {
			if ev.ClaimID == claim.ID {
				out = append(out, ev)
			}
			continue
		}
		if ev.ClaimText == claim.Text {
			out = append(out, ev)
		}
	}
	return out
}

func renderEvidence(evidence []common.EvidenceItem) string {
	parts := make([]string, 0, len(evidence))
	for _, ev := range evidence {
		parts = append(parts, fmt.Sprintf("[Source: %s]\n%s", ev.Source, ev.Snippet))
	}
	return strings.Join(parts, "\n\n")
}
