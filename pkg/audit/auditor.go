package audit

import (
	"errors"

	"github.com/OFFIS-RIT/greenlens/pkg/ai"
	"github.com/OFFIS-RIT/greenlens/pkg/search"
	"github.com/OFFIS-RIT/greenlens/pkg/store"
)

const (
	defaultTopicK    = 5
	defaultMaxThemes = 5
	defaultMaxClaims = 5
)

// Options tune the stage functions. The zero value is not valid; use the
// defaults applied by NewAuditor.
type Options struct {
	// TopicK is the number of chunks fetched per suggested topic.
	TopicK    int
	MaxThemes int
	MaxClaims int

	// MatchEvidenceByID binds evidence to claims by claim ID instead of by
	// exact claim text.
	MatchEvidenceByID bool

	// GenerateOptions are passed to every model call.
	GenerateOptions []ai.GenerateOption
}

type Option func(*Options)

func WithTopicK(k int) Option {
	return func(o *Options) {
		if k > 0 {
			o.TopicK = k
		}
	}
}

func WithMatchEvidenceByID(enabled bool) Option {
	return func(o *Options) {
		o.MatchEvidenceByID = enabled
	}
}

func WithGenerateOptions(opts ...ai.GenerateOption) Option {
	return func(o *Options) {
		o.GenerateOptions = append(o.GenerateOptions, opts...)
	}
}

// Auditor holds the collaborators the stages talk to. It has no per-run
// state and may be shared by concurrent runs.
type Auditor struct {
	llm  ai.Client
	docs store.DocumentStore
	web  search.Client
	opts Options
}

func NewAuditor(llm ai.Client, docs store.DocumentStore, web search.Client, opts ...Option) (*Auditor, error) {
	if llm == nil {
		return nil, errors.New("language model client is nil")
	}
	if docs == nil {
		return nil, errors.New("document store is nil")
	}
	if web == nil {
		return nil, errors.New("search client is nil")
	}

	o := Options{
		TopicK:    defaultTopicK,
		MaxThemes: defaultMaxThemes,
		MaxClaims: defaultMaxClaims,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}

	return &Auditor{llm: llm, docs: docs, web: web, opts: o}, nil
}

// Pipeline returns the eight audit stages in execution order.
func (a *Auditor) Pipeline() *Pipeline {
	p := NewPipeline(
		Stage{Name: StageRetrieveDocs, Run: a.RetrieveDocs},
		Stage{Name: StagePrepareContext, Run: a.PrepareContext},
		Stage{Name: StageExtractThemes, Run: a.ExtractThemes},
		Stage{Name: StageExtractClaims, Run: a.ExtractClaims},
		Stage{Name: StageGenerateSearchQueries, Run: a.GenerateSearchQueries},
		Stage{Name: StageRetrieveEvidence, Run: a.RetrieveEvidence},
		Stage{Name: StageSynthesizeFindings, Run: a.SynthesizeFindings},
		Stage{Name: StageGenerateFinalAssessment, Run: a.GenerateFinalAssessment},
	)
	p.metrics = a.llm
	return p
}
