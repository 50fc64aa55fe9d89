package common

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Document is a chunk of a sustainability report as returned by the
// document store. It is treated as immutable once retrieved.
type Document struct {
	Content  string           `json:"page_content"`
	Metadata DocumentMetadata `json:"metadata"`
}

// DocumentMetadata carries the provenance of a Document.
type DocumentMetadata struct {
	Source string  `json:"source"`
	Page   PageRef `json:"page"`
}

// SourceOrUnknown returns the source tag, falling back to "unknown".
func (m DocumentMetadata) SourceOrUnknown() string {
	if m.Source == "" {
		return "unknown"
	}
	return m.Source
}

// PageRef is an optional page number. The zero value means the page is
// unknown and renders as "N/A".
type PageRef struct {
	Number int
	Valid  bool
}

// Page returns a known page reference.
func Page(n int) PageRef {
	return PageRef{Number: n, Valid: true}
}

func (p PageRef) String() string {
	if !p.Valid {
		return "N/A"
	}
	return strconv.Itoa(p.Number)
}

func (p PageRef) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte(`"N/A"`), nil
	}
	return []byte(strconv.Itoa(p.Number)), nil
}

func (p *PageRef) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Page(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("page must be a number or string: %w", err)
	}
	if n, err := strconv.Atoi(s); err == nil {
		*p = Page(n)
		return nil
	}
	*p = PageRef{}
	return nil
}

// Claim is a single measurable, falsifiable ESG statement extracted from a
// report. ID is assigned at extraction time and stays stable for the run.
type Claim struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Reference string `json:"reference"`
}

// EvidenceItem is one web search result collected for a claim.
//
// Weight is a coarse credibility score: 3 when the source link mentions a
// report, 2 for any other result and 0 when retrieval failed, in which case
// Note explains the failure.
type EvidenceItem struct {
	ClaimID   string `json:"claim_id"`
	ClaimText string `json:"claim_text"`
	Snippet   string `json:"snippet"`
	Source    string `json:"source"`
	Weight    int    `json:"weight"`
	Note      string `json:"note,omitempty"`
}

// VerdictStatus classifies a claim after weighing its evidence.
type VerdictStatus string

const (
	StatusVerified        VerdictStatus = "Verified"
	StatusContradicted    VerdictStatus = "Contradicted"
	StatusUnsubstantiated VerdictStatus = "Unsubstantiated"
	StatusError           VerdictStatus = "Error"
)

// ClaimVerdict is the synthesized outcome for one claim.
type ClaimVerdict struct {
	ClaimID   string        `json:"claim_id"`
	Claim     string        `json:"claim"`
	Synthesis string        `json:"synthesis"`
	Status    VerdictStatus `json:"status"`
}

// FinalAssessment is the aggregate result of an audit run.
type FinalAssessment struct {
	GreenwashScore int    `json:"greenwash_score"`
	Summary        string `json:"summary"`
}
