package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/greenlens/pkg/ai"
	"github.com/OFFIS-RIT/greenlens/pkg/common"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"
)

// ExtractClaims asks for measurable claims restricted to the themes and
// assigns IDs c1..cn in extraction order.
func (a *Auditor) ExtractClaims(ctx context.Context, s State) (State, error) {
	prompt := fmt.Sprintf(ai.ClaimsPrompt, s.CompanyName, strings.Join(s.Themes, ", "), s.Context)
	res, err := ai.Invoke[ai.ClaimsResponse](ctx, a.llm, prompt, a.opts.GenerateOptions...)
	if err != nil {
		return s, fmt.Errorf("extract claims: %w", err)
	}

	extracted := res.Claims
	if len(extracted) > a.opts.MaxClaims {
		extracted = extracted[:a.opts.MaxClaims]
	}

	claims := make([]common.Claim, 0, len(extracted))
	for i, c := range extracted {
		claims = append(claims, common.Claim{
			ID:        fmt.Sprintf("c%d", i+1),
			Text:      c.Text,
			Reference: c.Reference,
		})
	}

	logger.Info("[Audit] Extracted claims", "claims", len(claims))
	return s.WithClaims(claims), nil
}
