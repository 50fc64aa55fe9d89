package audit

import (
	"context"
	"fmt"

	"github.com/OFFIS-RIT/greenlens/pkg/ai"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"
)

// ExtractThemes asks for the most significant ESG themes in model rank order.
// The model is called even for an empty context.
func (a *Auditor) ExtractThemes(ctx context.Context, s State) (State, error) {
	prompt := fmt.Sprintf(ai.ThemesPrompt, s.CompanyName, s.Context)
	res, err := ai.Invoke[ai.ThemesResponse](ctx, a.llm, prompt, a.opts.GenerateOptions...)
	if err != nil {
		return s, fmt.Errorf("extract themes: %w", err)
	}

	themes := res.Themes
	if len(themes) > a.opts.MaxThemes {
		themes = themes[:a.opts.MaxThemes]
	}
	logger.Info("[Audit] Identified themes", "themes", themes)
	return s.WithThemes(themes), nil
}
