package audit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/OFFIS-RIT/greenlens/pkg/ai"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"
)

const (
	StageRetrieveDocs            = "retrieve_docs"
	StagePrepareContext          = "prepare_context"
	StageExtractThemes           = "largest_themes"
	StageExtractClaims           = "extract_claims"
	StageGenerateSearchQueries   = "generate_search_queries"
	StageRetrieveEvidence        = "retrieve_evidence"
	StageSynthesizeFindings      = "synthesize_findings"
	StageGenerateFinalAssessment = "generate_final_assessment"
)

var (
	ErrEmptyCompanyName = errors.New("company name is empty")
	ErrStateRegression  = errors.New("stage removed a previously populated field")
)

// StageFunc transforms a State. It returns the input state together with a
// non-nil error when the stage cannot complete.
type StageFunc func(ctx context.Context, s State) (State, error)

type Stage struct {
	Name string
	Run  StageFunc
}

// StageError reports the stage that aborted a run.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageReport describes a completed stage.
type StageReport struct {
	Stage    string
	Index    int
	Duration time.Duration
	State    State
}

// Observer is called after every completed stage, on the goroutine running
// the pipeline.
type Observer func(ctx context.Context, r StageReport)

// Pipeline applies its stages in order with no branching.
type Pipeline struct {
	stages    []Stage
	observers []Observer
	metrics   interface{ GetMetrics() ai.ModelMetrics }
}

func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Observe registers o and returns the pipeline.
func (p *Pipeline) Observe(o Observer) *Pipeline {
	if o != nil {
		p.observers = append(p.observers, o)
	}
	return p
}

// StageNames returns the stage names in execution order.
func (p *Pipeline) StageNames() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name
	}
	return names
}

// Run executes every stage for companyName. On failure the state reached
// before the failing stage is returned with a *StageError.
//
// Example:
//
//	state, err := auditor.Pipeline().Run(ctx, "Acme Corp")
//	if err != nil {
//		var stageErr *audit.StageError
//		if errors.As(err, &stageErr) {
//			log.Printf("failed in %s", stageErr.Stage)
//		}
//		return err
//	}
//	fmt.Println(state.FinalAssessment.GreenwashScore)
func (p *Pipeline) Run(ctx context.Context, companyName string) (State, error) {
	companyName = strings.TrimSpace(companyName)
	state := NewState(companyName)
	if companyName == "" {
		return state, ErrEmptyCompanyName
	}

	start := time.Now()
	logger.Info("[Audit] Starting run", "company", companyName, "stages", len(p.stages))

	for i, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return state, &StageError{Stage: stage.Name, Err: err}
		}

		stageStart := time.Now()
		logger.Debug("[Audit] Stage started", "stage", stage.Name)

		next, err := stage.Run(ctx, state)
		if err != nil {
			logger.Error("[Audit] Stage failed", "stage", stage.Name, "err", err)
			return state, &StageError{Stage: stage.Name, Err: err}
		}
		if err := checkAppendOnly(state, next); err != nil {
			return state, &StageError{Stage: stage.Name, Err: err}
		}
		state = next

		duration := time.Since(stageStart)
		logger.Debug("[Audit] Stage finished", "stage", stage.Name, "duration", duration)
		for _, o := range p.observers {
			o(ctx, StageReport{Stage: stage.Name, Index: i, Duration: duration, State: state})
		}
	}

	logger.Info("[Audit] Run finished", "company", companyName, "duration", time.Since(start))
	if p.metrics != nil {
		m := p.metrics.GetMetrics()
		logger.Info("AI Metrics",
			"requests", m.Requests,
			"input_tokens", m.InputTokens,
			"output_tokens", m.OutputTokens,
			"total_tokens", m.TotalTokens,
			"duration_ms", m.DurationMs,
			"tokens_per_second", m.TokenPerSecond,
		)
	}
	return state, nil
}

func checkAppendOnly(prev, next State) error {
	if next.CompanyName != prev.CompanyName {
		return fmt.Errorf("%w: company_name", ErrStateRegression)
	}
	lost := prev.Present() &^ next.Present()
	if lost == 0 {
		return nil
	}
	names := make([]string, 0)
	for f := FieldRetrievedDocs; f <= FieldFinalAssessment; f <<= 1 {
		if lost&f != 0 {
			names = append(names, f.String())
		}
	}
	return fmt.Errorf("%w: %s", ErrStateRegression, strings.Join(names, ", "))
}
