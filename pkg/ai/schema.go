package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator"
)

// SchemaTag names one of the fixed response shapes a model may be asked for.
type SchemaTag string

const (
	TagThemes          SchemaTag = "ThemesResponse"
	TagClaims          SchemaTag = "ClaimsResponse"
	TagSearchQueries   SchemaTag = "SearchQueriesResponse"
	TagClaimVerdict    SchemaTag = "ClaimVerdict"
	TagFinalAssessment SchemaTag = "FinalAssessment"
)

// ErrMalformedOutput is wrapped by adapters when the model answered but the
// answer could not be decoded into the requested shape.
var ErrMalformedOutput = errors.New("malformed model output")

// SchemaError reports a model response that does not conform to the
// requested schema, either because it could not be decoded or because it
// failed validation.
type SchemaError struct {
	Tag SchemaTag
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid %s response: %v", e.Tag, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Schema is the closed set of structured responses. Only the types in this
// file implement it.
type Schema interface {
	SchemaTag() SchemaTag
	SchemaDescription() string
	isSchema()
}

// ThemesResponse is a ranked list of strings. It is used both for ESG themes
// and for the excerpt fragments of the context preparation step.
type ThemesResponse struct {
	Themes []string `json:"themes" jsonschema:"description=Top ESG themes identified in the report"`
}

// ExtractedClaim is a claim as produced by the model, before an ID is assigned.
type ExtractedClaim struct {
	Text      string `json:"text" jsonschema:"description=The ESG claim" validate:"required"`
	Reference string `json:"reference" jsonschema:"description=The source of the claim"`
}

type ClaimsResponse struct {
	Claims []ExtractedClaim `json:"claims" jsonschema:"description=A list of extracted ESG claims with references" validate:"dive"`
}

type SearchQueriesResponse struct {
	Queries []string `json:"queries" jsonschema:"description=Search queries for each claim"`
}

type ClaimVerdictResponse struct {
	Claim     string `json:"claim"`
	Synthesis string `json:"synthesis" validate:"required"`
	Status    string `json:"status" jsonschema:"enum=Verified,enum=Contradicted,enum=Unsubstantiated,enum=Error" validate:"required,oneof=Verified Contradicted Unsubstantiated Error"`
}

type FinalAssessmentResponse struct {
	GreenwashScore int    `json:"greenwash_score" jsonschema:"minimum=0,maximum=10"`
	Summary        string `json:"summary" validate:"required"`
}

func (ThemesResponse) SchemaTag() SchemaTag          { return TagThemes }
func (ClaimsResponse) SchemaTag() SchemaTag          { return TagClaims }
func (SearchQueriesResponse) SchemaTag() SchemaTag   { return TagSearchQueries }
func (ClaimVerdictResponse) SchemaTag() SchemaTag    { return TagClaimVerdict }
func (FinalAssessmentResponse) SchemaTag() SchemaTag { return TagFinalAssessment }

func (ThemesResponse) SchemaDescription() string { return "Ranked list of ESG themes or excerpts" }
func (ClaimsResponse) SchemaDescription() string { return "Measurable ESG claims with references" }
func (SearchQueriesResponse) SchemaDescription() string {
	return "Web search queries in input order"
}
func (ClaimVerdictResponse) SchemaDescription() string { return "Verdict for a single ESG claim" }
func (FinalAssessmentResponse) SchemaDescription() string {
	return "Greenwash score and short summary"
}

func (ThemesResponse) isSchema()          {}
func (ClaimsResponse) isSchema()          {}
func (SearchQueriesResponse) isSchema()   {}
func (ClaimVerdictResponse) isSchema()    {}
func (FinalAssessmentResponse) isSchema() {}

var validate = validator.New()

// Validate checks a decoded response against its validation tags.
func Validate(s Schema) error {
	if err := validate.Struct(s); err != nil {
		return &SchemaError{Tag: s.SchemaTag(), Err: err}
	}
	return nil
}

// DecodeStructured decodes raw model output into out. Decoding failures wrap
// ErrMalformedOutput so callers can tell them apart from transport errors.
func DecodeStructured(content string, out any) error {
	if content == "" {
		return fmt.Errorf("%w: empty response", ErrMalformedOutput)
	}
	if err := UnmarshalFlexible(content, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	return nil
}

// Invoke asks the model for a response of shape T and validates it.
// Malformed or invalid output is returned as a *SchemaError; the zero value of
// T is never returned together with a nil error for such output.
//
// Example:
//
//	res, err := ai.Invoke[ai.ThemesResponse](ctx, client, prompt)
//	if err != nil {
//		return err
//	}
//	fmt.Println(res.Themes)
func Invoke[T Schema](ctx context.Context, client Client, prompt string, opts ...GenerateOption) (T, error) {
	var out T
	tag := out.SchemaTag()

	err := client.GenerateCompletionWithFormat(ctx, string(tag), out.SchemaDescription(), prompt, &out, opts...)
	if err != nil {
		var zero T
		if errors.Is(err, ErrMalformedOutput) {
			return zero, &SchemaError{Tag: tag, Err: err}
		}
		return zero, fmt.Errorf("%s request failed: %w", tag, err)
	}
	if err := Validate(out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
