package audit

import (
	"encoding/json"

	"github.com/OFFIS-RIT/greenlens/pkg/common"
)

// Field identifies one output field of a State.
type Field uint16

const (
	FieldRetrievedDocs Field = 1 << iota
	FieldContext
	FieldThemes
	FieldClaims
	FieldSearchQueries
	FieldEvidence
	FieldFinalReport
	FieldFinalAssessment
)

var fieldNames = map[Field]string{
	FieldRetrievedDocs:   "retrieved_docs",
	FieldContext:         "context",
	FieldThemes:          "themes",
	FieldClaims:          "claims",
	FieldSearchQueries:   "search_queries",
	FieldEvidence:        "evidence",
	FieldFinalReport:     "final_report",
	FieldFinalAssessment: "final_assessment",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return "unknown"
}

// State is the record threaded through the pipeline. Every stage receives a
// copy and returns a new value with its own output field set; the With*
// methods copy their input so a State never shares backing arrays with the
// caller or with an earlier State.
//
// Fields are absent until their producing stage ran. Has distinguishes an
// absent field from an empty one.
type State struct {
	CompanyName     string
	RetrievedDocs   []common.Document
	Context         string
	Themes          []string
	Claims          []common.Claim
	SearchQueries   []string
	Evidence        []common.EvidenceItem
	FinalReport     []common.ClaimVerdict
	FinalAssessment *common.FinalAssessment

	present Field
}

// NewState returns the initial state of a run.
func NewState(companyName string) State {
	return State{CompanyName: companyName}
}

// Has reports whether f has been produced.
func (s State) Has(f Field) bool {
	return s.present&f == f
}

// Present returns the set of produced fields.
func (s State) Present() Field {
	return s.present
}

func (s State) WithRetrievedDocs(docs []common.Document) State {
	s.RetrievedDocs = cloneSlice(docs)
	s.present |= FieldRetrievedDocs
	return s
}

func (s State) WithContext(context string) State {
	s.Context = context
	s.present |= FieldContext
	return s
}

func (s State) WithThemes(themes []string) State {
	s.Themes = cloneSlice(themes)
	s.present |= FieldThemes
	return s
}

func (s State) WithClaims(claims []common.Claim) State {
	s.Claims = cloneSlice(claims)
	s.present |= FieldClaims
	return s
}

func (s State) WithSearchQueries(queries []string) State {
	s.SearchQueries = cloneSlice(queries)
	s.present |= FieldSearchQueries
	return s
}

func (s State) WithEvidence(evidence []common.EvidenceItem) State {
	s.Evidence = cloneSlice(evidence)
	s.present |= FieldEvidence
	return s
}

func (s State) WithFinalReport(report []common.ClaimVerdict) State {
	s.FinalReport = cloneSlice(report)
	s.present |= FieldFinalReport
	return s
}

func (s State) WithFinalAssessment(a common.FinalAssessment) State {
	s.FinalAssessment = &a
	s.present |= FieldFinalAssessment
	return s
}

// cloneSlice copies in. The result is never nil so empty outputs encode as [].
func cloneSlice[T any](in []T) []T {
	return append(make([]T, 0, len(in)), in...)
}

type stateJSON struct {
	CompanyName     string                  `json:"company_name"`
	RetrievedDocs   *[]common.Document      `json:"retrieved_docs,omitempty"`
	Context         *string                 `json:"context,omitempty"`
	Themes          *[]string               `json:"themes,omitempty"`
	Claims          *[]common.Claim         `json:"claims,omitempty"`
	SearchQueries   *[]string               `json:"search_queries,omitempty"`
	Evidence        *[]common.EvidenceItem  `json:"evidence,omitempty"`
	FinalReport     *[]common.ClaimVerdict  `json:"final_report,omitempty"`
	FinalAssessment *common.FinalAssessment `json:"final_assessment,omitempty"`
}

// MarshalJSON encodes the company name and every produced field. Absent
// fields are omitted, empty ones are kept.
func (s State) MarshalJSON() ([]byte, error) {
	out := stateJSON{CompanyName: s.CompanyName}
	if s.Has(FieldRetrievedDocs) {
		out.RetrievedDocs = &s.RetrievedDocs
	}
	if s.Has(FieldContext) {
		out.Context = &s.Context
	}
	if s.Has(FieldThemes) {
		out.Themes = &s.Themes
	}
	if s.Has(FieldClaims) {
		out.Claims = &s.Claims
	}
	if s.Has(FieldSearchQueries) {
		out.SearchQueries = &s.SearchQueries
	}
	if s.Has(FieldEvidence) {
		out.Evidence = &s.Evidence
	}
	if s.Has(FieldFinalReport) {
		out.FinalReport = &s.FinalReport
	}
	if s.Has(FieldFinalAssessment) {
		out.FinalAssessment = s.FinalAssessment
	}
	return json.Marshal(out)
}

func (s *State) UnmarshalJSON(data []byte) error {
	var in stateJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	next := NewState(in.CompanyName)
	if in.RetrievedDocs != nil {
		next = next.WithRetrievedDocs(*in.RetrievedDocs)
	}
	if in.Context != nil {
		next = next.WithContext(*in.Context)
	}
	if in.Themes != nil {
		next = next.WithThemes(*in.Themes)
	}
	if in.Claims != nil {
		next = next.WithClaims(*in.Claims)
	}
	if in.SearchQueries != nil {
		next = next.WithSearchQueries(*in.SearchQueries)
	}
	if in.Evidence != nil {
		next = next.WithEvidence(*in.Evidence)
	}
	if in.FinalReport != nil {
		next = next.WithFinalReport(*in.FinalReport)
	}
	if in.FinalAssessment != nil {
		next = next.WithFinalAssessment(*in.FinalAssessment)
	}
	*s = next
	return nil
}
