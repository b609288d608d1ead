package handler

import (
	"precheck/internal/validation"
	"precheck/internal/validation/service"
)

// CaseResponse is the HTTP response for POST /v1/validation/cases. Valid
// covers the case and every defendant; Problems holds case-level problems only.
type CaseResponse struct {
	CaseID     string               `json:"case_id"`
	Valid      bool                 `json:"valid"`
	Problems   []validation.Problem `json:"problems"`
	Prosecutor *ProsecutorResponse  `json:"prosecutor,omitempty"`
	Defendants []DefendantResponse  `json:"defendants"`
}

type ProsecutorResponse struct {
	ID        string `json:"id"`
	OUCode    string `json:"ou_code"`
	ShortName string `json:"short_name"`
	FullName  string `json:"full_name"`
}

// DefendantResponse is one defendant's outcome, and the HTTP response for
// POST /v1/validation/defendants.
type DefendantResponse struct {
	DefendantID string               `json:"defendant_id"`
	Valid       bool                 `json:"valid"`
	Problems    []validation.Problem `json:"problems"`
	Resolved    ResolvedResponse     `json:"resolved"`
}

// ResolvedResponse lists the reference entries a defendant pass matched.
type ResolvedResponse struct {
	Nationality           string            `json:"nationality,omitempty"`
	AdditionalNationality string            `json:"additional_nationality,omitempty"`
	ObservedEthnicity     string            `json:"observed_ethnicity,omitempty"`
	SelfDefinedEthnicity  string            `json:"self_defined_ethnicity,omitempty"`
	BailStatus            string            `json:"bail_status,omitempty"`
	OffenderCode          string            `json:"offender_code,omitempty"`
	HearingType           string            `json:"hearing_type,omitempty"`
	CourtCentre           string            `json:"court_centre,omitempty"`
	Courtroom             string            `json:"courtroom,omitempty"`
	OffenceLocations      map[string]string `json:"offence_locations,omitempty"`
}

// DocumentResponse is the HTTP response for POST /v1/validation/documents.
type DocumentResponse struct {
	DocumentID        string               `json:"document_id"`
	Valid             bool                 `json:"valid"`
	Problems          []validation.Problem `json:"problems"`
	DocumentCategory  string               `json:"document_category,omitempty"`
	DocumentType      string               `json:"document_type,omitempty"`
	ValidDefendantIDs map[string]string    `json:"valid_defendant_ids"`
}

// FromCaseResult converts a service result to an HTTP response.
func FromCaseResult(r *service.CaseResult) *CaseResponse {
	out := &CaseResponse{
		CaseID:     r.CaseID.String(),
		Valid:      r.Valid(),
		Problems:   problems(r.Case),
		Defendants: make([]DefendantResponse, 0, len(r.Defendants)),
	}
	if p := r.Prosecutor; p != nil {
		out.Prosecutor = &ProsecutorResponse{
			ID:        p.ID.String(),
			OUCode:    p.OUCode,
			ShortName: p.ShortName,
			FullName:  p.FullName,
		}
	}
	for i := range r.Defendants {
		out.Defendants = append(out.Defendants, *FromDefendantResult(&r.Defendants[i]))
	}
	return out
}

// FromDefendantResult converts a service result to an HTTP response.
func FromDefendantResult(r *service.DefendantResult) *DefendantResponse {
	return &DefendantResponse{
		DefendantID: r.DefendantID.String(),
		Valid:       r.Result.Valid(),
		Problems:    problems(r.Result),
		Resolved:    fromResolved(r.Resolved),
	}
}

// FromDocumentResult converts a service result to an HTTP response.
func FromDocumentResult(r *service.DocumentResult) *DocumentResponse {
	out := &DocumentResponse{
		DocumentID:        r.DocumentID.String(),
		Valid:             r.Result.Valid(),
		Problems:          problems(r.Result),
		DocumentCategory:  r.DocumentCategory,
		ValidDefendantIDs: make(map[string]string, len(r.ValidDefendantIDs)),
	}
	if r.DocumentType != nil {
		out.DocumentType = r.DocumentType.DocumentType
	}
	for key, defendantID := range r.ValidDefendantIDs {
		out.ValidDefendantIDs[key] = defendantID.String()
	}
	return out
}

func fromResolved(r validation.Resolved) ResolvedResponse {
	out := ResolvedResponse{}
	if r.Nationality != nil {
		out.Nationality = r.Nationality.IsoCode
	}
	if r.AdditionalNationality != nil {
		out.AdditionalNationality = r.AdditionalNationality.IsoCode
	}
	if r.ObservedEthnicity != nil {
		out.ObservedEthnicity = r.ObservedEthnicity.Code
	}
	if r.SelfDefinedEthnicity != nil {
		out.SelfDefinedEthnicity = r.SelfDefinedEthnicity.Code
	}
	if r.BailStatus != nil {
		out.BailStatus = r.BailStatus.StatusCode
	}
	if r.OffenderCode != nil {
		out.OffenderCode = r.OffenderCode.Code
	}
	if r.HearingType != nil {
		out.HearingType = r.HearingType.Code
	}
	if r.CourtCentre != nil {
		out.CourtCentre = r.CourtCentre.OUCode
	}
	if r.Courtroom != nil {
		out.Courtroom = r.Courtroom.Name
	}
	if len(r.OffenceLocations) > 0 {
		out.OffenceLocations = make(map[string]string, len(r.OffenceLocations))
		for offenceID, location := range r.OffenceLocations {
			out.OffenceLocations[offenceID.String()] = location
		}
	}
	return out
}

// problems never returns nil so the field always encodes as a list.
func problems(r validation.ValidationResult) []validation.Problem {
	if p := r.Problems(); p != nil {
		return p
	}
	return []validation.Problem{}
}
