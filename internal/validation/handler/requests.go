package handler

import (
	"strings"

	"precheck/internal/validation"
	"precheck/internal/validation/models"
	"precheck/internal/validation/service"
	id "precheck/pkg/domain"
	dErrors "precheck/pkg/domain-errors"
)

const maxDefendants = 500

// CaseRequest is the body for POST /v1/validation/cases.
//
// Only the shape is checked here, plus the ISO format of dates the rules
// compare. Missing or malformed business fields are reported as problems by
// the rules, not rejected. The charge date stays free-form because the rules
// report an unparseable one.
type CaseRequest struct {
	Case       CaseDetailsRequest `json:"case"`
	Defendants []DefendantRequest `json:"defendants" validate:"dive"`
	Flags      FlagsRequest       `json:"flags"`
}

// DefendantRequest is the body for POST /v1/validation/defendants, and one
// entry of a case submission.
type DefendantRequest struct {
	ID                           id.DefendantID       `json:"id"`
	ProsecutorDefendantReference string               `json:"prosecutor_defendant_reference" validate:"max=64"`
	CPSDefendantID               string               `json:"cps_defendant_id" validate:"max=64"`
	ASN                          string               `json:"asn" validate:"max=32"`
	PNCID                        string               `json:"pnc_id" validate:"max=32"`
	CRONumber                    string               `json:"cro_number" validate:"max=32"`
	BailStatus                   string               `json:"bail_status" validate:"max=8"`
	OffenderCode                 string               `json:"offender_code" validate:"max=8"`
	Individual                   *IndividualRequest   `json:"individual,omitempty"`
	Organisation                 *OrganisationRequest `json:"organisation,omitempty"`
	Offences                     []OffenceRequest     `json:"offences" validate:"max=200,dive"`
	InitialHearing               *HearingRequest      `json:"initial_hearing,omitempty"`
}

// SingleDefendantRequest carries the case a lone defendant is added to.
type SingleDefendantRequest struct {
	Case      CaseDetailsRequest `json:"case"`
	Defendant DefendantRequest   `json:"defendant"`
	Flags     FlagsRequest       `json:"flags"`
}

type CaseDetailsRequest struct {
	CaseID           id.CaseID        `json:"case_id"`
	URN              string           `json:"urn" validate:"max=64"`
	InitiationCode   string           `json:"initiation_code" validate:"max=8"`
	ProsecutorOUCode string           `json:"prosecutor_ou_code" validate:"max=16"`
	ProsecutorID     *id.ProsecutorID `json:"prosecutor_id,omitempty"`
	Channel          string           `json:"channel" validate:"max=16"`
	MigrationSource  string           `json:"migration_source" validate:"max=64"`
}

type FlagsRequest struct {
	MCC                   bool `json:"mcc"`
	MCCWithListNewHearing bool `json:"mcc_with_list_new_hearing"`
	InactiveMigratedCase  bool `json:"inactive_migrated_case"`
}

type IndividualRequest struct {
	Forename              string                 `json:"forename" validate:"max=128"`
	MiddleName            string                 `json:"middle_name" validate:"max=128"`
	Surname               string                 `json:"surname" validate:"max=128"`
	DateOfBirth           string                 `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Nationality           string                 `json:"nationality" validate:"max=16"`
	AdditionalNationality string                 `json:"additional_nationality" validate:"max=16"`
	ObservedEthnicity     string                 `json:"observed_ethnicity" validate:"max=16"`
	SelfDefinedEthnicity  string                 `json:"self_defined_ethnicity" validate:"max=16"`
	Address               *AddressRequest        `json:"address,omitempty"`
	Contact               *ContactRequest        `json:"contact,omitempty"`
	ParentGuardian        *ParentGuardianRequest `json:"parent_guardian,omitempty"`
}

type OrganisationRequest struct {
	Name    string          `json:"name" validate:"max=256"`
	Address *AddressRequest `json:"address,omitempty"`
	Contact *ContactRequest `json:"contact,omitempty"`
}

type AddressRequest struct {
	Address1 string `json:"address1" validate:"max=256"`
	Address2 string `json:"address2" validate:"max=256"`
	Address3 string `json:"address3" validate:"max=256"`
	Postcode string `json:"postcode" validate:"max=16"`
}

type ContactRequest struct {
	PrimaryEmail   string `json:"primary_email" validate:"max=320"`
	SecondaryEmail string `json:"secondary_email" validate:"max=320"`
	Home           string `json:"home" validate:"max=32"`
	Mobile         string `json:"mobile" validate:"max=32"`
}

type ParentGuardianRequest struct {
	Forename string          `json:"forename" validate:"max=128"`
	Surname  string          `json:"surname" validate:"max=128"`
	Address  *AddressRequest `json:"address,omitempty"`
}

type OffenceRequest struct {
	ID                  id.OffenceID    `json:"id"`
	OffenceCode         string          `json:"offence_code" validate:"max=16"`
	Sequence            int             `json:"sequence" validate:"min=0"`
	CommittedDate       string          `json:"committed_date" validate:"omitempty,datetime=2006-01-02"`
	CommittedEndDate    string          `json:"committed_end_date" validate:"omitempty,datetime=2006-01-02"`
	ChargeDate          string          `json:"charge_date" validate:"max=32"`
	Location            string          `json:"location" validate:"max=256"`
	ConvictingCourtCode string          `json:"convicting_court_code" validate:"max=16"`
	ConvictionDate      string          `json:"conviction_date" validate:"omitempty,datetime=2006-01-02"`
	Plea                *PleaRequest    `json:"plea,omitempty"`
	Verdict             *VerdictRequest `json:"verdict,omitempty"`
}

type PleaRequest struct {
	Value    string `json:"value" validate:"max=32"`
	PleaDate string `json:"plea_date" validate:"omitempty,datetime=2006-01-02"`
}

type VerdictRequest struct {
	Type        string `json:"type" validate:"max=64"`
	VerdictDate string `json:"verdict_date" validate:"omitempty,datetime=2006-01-02"`
}

type HearingRequest struct {
	DateOfHearing        string `json:"date_of_hearing" validate:"omitempty,datetime=2006-01-02"`
	CourtHearingLocation string `json:"court_hearing_location" validate:"max=16"`
	Courtroom            string `json:"courtroom" validate:"max=64"`
	HearingTypeCode      string `json:"hearing_type_code" validate:"max=8"`
}

// DocumentRequest is the body for POST /v1/validation/documents.
type DocumentRequest struct {
	CaseID                  id.CaseID          `json:"case_id"`
	DocumentID              id.DocumentID      `json:"document_id"`
	Unbundled               bool               `json:"unbundled"`
	Defendants              []SubjectRequest   `json:"defendants" validate:"max=500,dive"`
	ProsecutorDefendantID   string             `json:"prosecutor_defendant_id" validate:"max=64"`
	CaseDefendants          []DefendantRequest `json:"case_defendants" validate:"max=500,dive"`
	DocumentType            string             `json:"document_type" validate:"max=128"`
	DocumentCategory        string             `json:"document_category" validate:"max=64"`
	HasApplication          bool               `json:"has_application"`
	CourtApplicationSubject string             `json:"court_application_subject" validate:"max=64"`
	ProsecutionCaseSubject  string             `json:"prosecution_case_subject" validate:"max=64"`
	MaterialContentType     string             `json:"material_content_type" validate:"max=128"`
	MatchPolicy             string             `json:"match_policy" validate:"max=16"`
}

// SubjectRequest names the defendant a document is about.
type SubjectRequest struct {
	CPSDefendantID        string                    `json:"cps_defendant_id" validate:"max=64"`
	ProsecutorDefendantID string                    `json:"prosecutor_defendant_id" validate:"max=64"`
	ASN                   string                    `json:"asn" validate:"max=32"`
	Individual            *SubjectIndividualRequest `json:"individual,omitempty"`
	OrganisationName      string                    `json:"organisation_name" validate:"max=256"`
}

type SubjectIndividualRequest struct {
	Forename    string `json:"forename" validate:"max=128"`
	Surname     string `json:"surname" validate:"max=128"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

// Validate implements httputil.Validatable.
func (r *CaseRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Defendants) > maxDefendants {
		return dErrors.New(dErrors.CodeValidation, "too many defendants")
	}
	if err := r.Case.validate(); err != nil {
		return err
	}
	seen := make(map[id.DefendantID]struct{}, len(r.Defendants))
	for i := range r.Defendants {
		d := &r.Defendants[i]
		if d.ID.IsNil() {
			d.ID = id.NewDefendantID()
		}
		if _, dup := seen[d.ID]; dup {
			return dErrors.New(dErrors.CodeValidation, "defendant ids must be unique: "+d.ID.String())
		}
		seen[d.ID] = struct{}{}
		d.normalize()
	}
	return nil
}

// Validate implements httputil.Validatable.
func (r *SingleDefendantRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if err := r.Case.validate(); err != nil {
		return err
	}
	if r.Defendant.ID.IsNil() {
		r.Defendant.ID = id.NewDefendantID()
	}
	r.Defendant.normalize()
	return nil
}

// Validate implements httputil.Validatable.
func (r *DocumentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.DocumentID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "document_id is required")
	}
	r.MatchPolicy = strings.TrimSpace(r.MatchPolicy)
	r.MaterialContentType = strings.TrimSpace(r.MaterialContentType)
	for i := range r.CaseDefendants {
		r.CaseDefendants[i].normalize()
	}
	return nil
}

func (c *CaseDetailsRequest) validate() error {
	if c.CaseID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "case.case_id is required")
	}
	c.URN = strings.TrimSpace(c.URN)
	c.ProsecutorOUCode = strings.TrimSpace(c.ProsecutorOUCode)
	c.Channel = strings.ToUpper(strings.TrimSpace(c.Channel))
	return nil
}

func (d *DefendantRequest) normalize() {
	for i := range d.Offences {
		if d.Offences[i].ID.IsNil() {
			d.Offences[i].ID = id.NewOffenceID()
		}
	}
}

// ToSubmission converts the request for the service.
func (r *CaseRequest) ToSubmission() service.CaseSubmission {
	defendants := make([]models.Defendant, len(r.Defendants))
	for i, d := range r.Defendants {
		defendants[i] = d.toModel()
	}
	return service.CaseSubmission{
		Case:       r.Case.toModel(),
		Defendants: defendants,
		Flags:      r.Flags.toFlags(),
	}
}

// ToSubmission converts the request for the service.
func (r *SingleDefendantRequest) ToSubmission() service.DefendantSubmission {
	return service.DefendantSubmission{
		Case:      r.Case.toModel(),
		Defendant: r.Defendant.toModel(),
		Flags:     r.Flags.toFlags(),
	}
}

// ToSubmission converts the request for the service.
func (r *DocumentRequest) ToSubmission() service.DocumentSubmission {
	subjects := make([]validation.DefendantSubject, len(r.Defendants))
	for i, s := range r.Defendants {
		subjects[i] = validation.DefendantSubject{
			CPSDefendantID:        s.CPSDefendantID,
			ProsecutorDefendantID: s.ProsecutorDefendantID,
			ASN:                   s.ASN,
			OrganisationName:      s.OrganisationName,
		}
		if s.Individual != nil {
			subjects[i].Individual = &validation.SubjectIndividual{
				Forename:    s.Individual.Forename,
				Surname:     s.Individual.Surname,
				DateOfBirth: s.Individual.DateOfBirth,
			}
		}
	}
	caseDefendants := make([]models.Defendant, len(r.CaseDefendants))
	for i, d := range r.CaseDefendants {
		caseDefendants[i] = d.toModel()
	}
	return service.DocumentSubmission{
		CaseID:                  r.CaseID,
		DocumentID:              r.DocumentID,
		Unbundled:               r.Unbundled,
		Defendants:              subjects,
		ProsecutorDefendantID:   r.ProsecutorDefendantID,
		CaseDefendants:          caseDefendants,
		DocumentType:            r.DocumentType,
		DocumentCategory:        r.DocumentCategory,
		HasApplication:          r.HasApplication,
		CourtApplicationSubject: r.CourtApplicationSubject,
		ProsecutionCaseSubject:  r.ProsecutionCaseSubject,
		MaterialContentType:     r.MaterialContentType,
		MatchPolicy:             r.MatchPolicy,
	}
}

func (c CaseDetailsRequest) toModel() models.CaseDetails {
	return models.CaseDetails{
		CaseID:           c.CaseID,
		URN:              c.URN,
		InitiationCode:   c.InitiationCode,
		ProsecutorOUCode: c.ProsecutorOUCode,
		ProsecutorID:     c.ProsecutorID,
		Channel:          c.Channel,
		MigrationSource:  c.MigrationSource,
	}
}

func (f FlagsRequest) toFlags() validation.Flags {
	return validation.Flags{
		MCC:                   f.MCC,
		MCCWithListNewHearing: f.MCCWithListNewHearing,
		InactiveMigratedCase:  f.InactiveMigratedCase,
	}
}

func (d DefendantRequest) toModel() models.Defendant {
	out := models.Defendant{
		ID:                           d.ID,
		ProsecutorDefendantReference: d.ProsecutorDefendantReference,
		CPSDefendantID:               d.CPSDefendantID,
		ASN:                          d.ASN,
		PNCID:                        d.PNCID,
		CRONumber:                    d.CRONumber,
		BailStatus:                   d.BailStatus,
		OffenderCode:                 d.OffenderCode,
	}
	if i := d.Individual; i != nil {
		out.Individual = &models.Individual{
			Forename:              i.Forename,
			MiddleName:            i.MiddleName,
			Surname:               i.Surname,
			DateOfBirth:           i.DateOfBirth,
			Nationality:           i.Nationality,
			AdditionalNationality: i.AdditionalNationality,
			ObservedEthnicity:     i.ObservedEthnicity,
			SelfDefinedEthnicity:  i.SelfDefinedEthnicity,
			Address:               i.Address.toModel(),
			Contact:               i.Contact.toModel(),
		}
		if pg := i.ParentGuardian; pg != nil {
			out.Individual.ParentGuardian = &models.ParentGuardian{
				Forename: pg.Forename,
				Surname:  pg.Surname,
				Address:  pg.Address.toModel(),
			}
		}
	}
	if o := d.Organisation; o != nil {
		out.Organisation = &models.Organisation{
			Name:    o.Name,
			Address: o.Address.toModel(),
			Contact: o.Contact.toModel(),
		}
	}
	for _, o := range d.Offences {
		out.Offences = append(out.Offences, o.toModel())
	}
	if h := d.InitialHearing; h != nil {
		out.InitialHearing = &models.InitialHearing{
			DateOfHearing:        h.DateOfHearing,
			CourtHearingLocation: h.CourtHearingLocation,
			Courtroom:            h.Courtroom,
			HearingTypeCode:      h.HearingTypeCode,
		}
	}
	return out
}

func (o OffenceRequest) toModel() models.Offence {
	out := models.Offence{
		ID:                  o.ID,
		OffenceCode:         o.OffenceCode,
		Sequence:            o.Sequence,
		CommittedDate:       o.CommittedDate,
		CommittedEndDate:    o.CommittedEndDate,
		ChargeDate:          o.ChargeDate,
		Location:            o.Location,
		ConvictingCourtCode: o.ConvictingCourtCode,
		ConvictionDate:      o.ConvictionDate,
	}
	if o.Plea != nil {
		out.Plea = &models.Plea{Value: o.Plea.Value, PleaDate: o.Plea.PleaDate}
	}
	if o.Verdict != nil {
		out.Verdict = &models.Verdict{Type: o.Verdict.Type, VerdictDate: o.Verdict.VerdictDate}
	}
	return out
}

func (a *AddressRequest) toModel() *models.Address {
	if a == nil {
		return nil
	}
	return &models.Address{
		Address1: a.Address1,
		Address2: a.Address2,
		Address3: a.Address3,
		Postcode: a.Postcode,
	}
}

func (c *ContactRequest) toModel() *models.Contact {
	if c == nil {
		return nil
	}
	return &models.Contact{
		PrimaryEmail:   c.PrimaryEmail,
		SecondaryEmail: c.SecondaryEmail,
		Home:           c.Home,
		Mobile:         c.Mobile,
	}
}
