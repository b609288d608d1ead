package ports

//go:generate mockgen -source=referencedata.go -destination=mocks/mock_referencedata.go -package=mocks ReferenceDataGateway

import (
	"context"

	id "precheck/pkg/domain"
)

// ReferenceDataGateway defines the read-only reference data lookups the
// validation rules depend on. Implementations live outside the engine
// (in-memory catalogue, HTTP client, Postgres tables).
//
// An empty list or a nil entry is a normal "no match" outcome, never an error.
// Errors are reserved for infrastructure failures.
type ReferenceDataGateway interface {
	CountryNationalities(ctx context.Context) ([]CountryNationality, error)
	BailStatuses(ctx context.Context) ([]BailStatus, error)
	ObservedEthnicities(ctx context.Context) ([]Ethnicity, error)
	SelfDefinedEthnicities(ctx context.Context) ([]Ethnicity, error)
	OffenderCodes(ctx context.Context) ([]OffenderCode, error)
	HearingTypes(ctx context.Context) ([]HearingType, error)

	// OrganisationUnits returns the organisation units registered under an OU code.
	OrganisationUnits(ctx context.Context, ouCode string) ([]OrganisationUnit, error)

	// OrganisationUnitWithCourtrooms returns a court centre and its rooms, or nil.
	OrganisationUnitWithCourtrooms(ctx context.Context, ouCode string) (*CourtCentre, error)

	DocumentTypeAccess(ctx context.Context) ([]DocumentTypeAccess, error)
	ProsecutorByOUCode(ctx context.Context, ouCode string) (*Prosecutor, error)
	ProsecutorByID(ctx context.Context, prosecutorID id.ProsecutorID) (*Prosecutor, error)
}

// CountryNationality is a country entry. Submissions may carry either the
// ISO code or the numeric CJS code.
type CountryNationality struct {
	ID          string `json:"id" yaml:"id"`
	IsoCode     string `json:"isoCode" yaml:"iso_code"`
	CJSCode     string `json:"cjsCode" yaml:"cjs_code"`
	Nationality string `json:"nationality" yaml:"nationality"`
	CountryName string `json:"countryName" yaml:"country_name"`
}

// Ethnicity is an observed or self-defined ethnicity entry.
type Ethnicity struct {
	ID          string `json:"id" yaml:"id"`
	Code        string `json:"code" yaml:"code"`
	CJSCode     string `json:"cjsCode" yaml:"cjs_code"`
	Description string `json:"description" yaml:"description"`
	Sequence    int    `json:"seqNum" yaml:"sequence"`
}

// BailStatus is a remand/bail status entry.
type BailStatus struct {
	ID          string `json:"id" yaml:"id"`
	StatusCode  string `json:"statusCode" yaml:"status_code"`
	Description string `json:"statusDescription" yaml:"description"`
	Sequence    int    `json:"seqNum" yaml:"sequence"`
	ValidFrom   string `json:"validFrom" yaml:"valid_from"`
}

// OffenderCode classifies the defendant as offender.
type OffenderCode struct {
	ID          string `json:"id" yaml:"id"`
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
	ValidFrom   string `json:"validFrom" yaml:"valid_from"`
}

// HearingType is a listing hearing type.
type HearingType struct {
	ID          string `json:"id" yaml:"id"`
	Code        string `json:"hearingCode" yaml:"code"`
	Description string `json:"hearingDescription" yaml:"description"`
	Sequence    int    `json:"seqNum" yaml:"sequence"`
}

// OrganisationUnit is a court or prosecuting organisation unit.
type OrganisationUnit struct {
	ID       string `json:"id" yaml:"id"`
	OUCode   string `json:"oucode" yaml:"ou_code"`
	Name     string `json:"oucodeL3Name" yaml:"name"`
	Address1 string `json:"address1" yaml:"address1"`
	Postcode string `json:"postcode" yaml:"postcode"`
}

// Courtroom is a room within a court centre.
type Courtroom struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"courtroomName" yaml:"name"`
}

// CourtCentre is an organisation unit together with its courtrooms.
type CourtCentre struct {
	OrganisationUnit `yaml:",inline"`
	Courtrooms       []Courtroom `json:"courtrooms" yaml:"courtrooms"`
}

// DocumentTypeAccess describes an uploadable document type and the category
// it is filed under. ApplicationType marks types that belong under
// "Applications" when the submission carries a court application.
type DocumentTypeAccess struct {
	ID               string `json:"id" yaml:"id"`
	DocumentType     string `json:"section" yaml:"document_type"`
	DocumentCategory string `json:"documentCategory" yaml:"document_category"`
	ApplicationType  bool   `json:"applicationType" yaml:"application_type"`
	Sequence         int    `json:"seqNum" yaml:"sequence"`
	ValidFrom        string `json:"validFrom" yaml:"valid_from"`
	ValidTo          string `json:"validTo" yaml:"valid_to"`
}

// Prosecutor is a prosecuting authority.
type Prosecutor struct {
	ID        id.ProsecutorID `json:"id" yaml:"id"`
	OUCode    string          `json:"oucode" yaml:"ou_code"`
	ShortName string          `json:"shortName" yaml:"short_name"`
	FullName  string          `json:"fullName" yaml:"full_name"`
}
