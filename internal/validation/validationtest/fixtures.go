package validationtest

import (
	"context"
	"time"

	"github.com/google/uuid"

	"precheck/internal/validation"
	"precheck/internal/validation/models"
	"precheck/internal/validation/ports"
	id "precheck/pkg/domain"
	"precheck/pkg/requestcontext"
)

// Now is the request clock every fixture context runs under.
var Now = time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)

// Today is Now as an ISO date.
const Today = "2026-03-14"

// Fixed identifiers so expected problems can be spelled out in tests.
var (
	CaseID         = id.CaseID(uuid.MustParse("6f1d7c2a-3b4e-4f5a-9c8d-1e2f3a4b5c6d"))
	DefendantID    = id.DefendantID(uuid.MustParse("0c5b1f3e-8a7d-4c6b-9e2f-7a1b2c3d4e5f"))
	OffenceID      = id.OffenceID(uuid.MustParse("9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"))
	DocumentID     = id.DocumentID(uuid.MustParse("2b3c4d5e-6f7a-4b8c-9d0e-1f2a3b4c5d6e"))
	ProsecutorUUID = id.ProsecutorID(uuid.MustParse("7e6d5c4b-3a29-4817-8f6e-5d4c3b2a1908"))
)

// Context returns a context whose request clock is Now.
func Context() context.Context {
	return requestcontext.WithTime(context.Background(), Now)
}

// Nationalities returns GBR (CJS 126589) and FRA (CJS 125901).
func Nationalities() []ports.CountryNationality {
	return []ports.CountryNationality{
		{ID: "b2a1e0c4-0001-4000-8000-000000000001", IsoCode: "GBR", CJSCode: "126589", Nationality: "British", CountryName: "United Kingdom"},
		{ID: "b2a1e0c4-0001-4000-8000-000000000002", IsoCode: "FRA", CJSCode: "125901", Nationality: "French", CountryName: "France"},
	}
}

func ObservedEthnicities() []ports.Ethnicity {
	return []ports.Ethnicity{
		{ID: "c3b2a1d0-0002-4000-8000-000000000001", Code: "W1", CJSCode: "1", Description: "White - North European", Sequence: 10},
		{ID: "c3b2a1d0-0002-4000-8000-000000000002", Code: "A1", CJSCode: "4", Description: "Asian", Sequence: 40},
	}
}

func SelfDefinedEthnicities() []ports.Ethnicity {
	return []ports.Ethnicity{
		{ID: "d4c3b2a1-0003-4000-8000-000000000001", Code: "W1", CJSCode: "11", Description: "White - British", Sequence: 10},
		{ID: "d4c3b2a1-0003-4000-8000-000000000002", Code: "M2", CJSCode: "32", Description: "Mixed - White and Black African", Sequence: 60},
	}
}

func BailStatuses() []ports.BailStatus {
	return []ports.BailStatus{
		{ID: "e5d4c3b2-0004-4000-8000-000000000001", StatusCode: "U", Description: "Unconditional bail", Sequence: 1, ValidFrom: "2015-01-01"},
		{ID: "e5d4c3b2-0004-4000-8000-000000000002", StatusCode: "C", Description: "Remanded into custody", Sequence: 2, ValidFrom: "2015-01-01"},
	}
}

func OffenderCodes() []ports.OffenderCode {
	return []ports.OffenderCode{
		{ID: "f6e5d4c3-0005-4000-8000-000000000001", Code: "PPO", Description: "Prolific and priority offender", ValidFrom: "2015-01-01"},
	}
}

func HearingTypes() []ports.HearingType {
	return []ports.HearingType{
		{ID: "a7f6e5d4-0006-4000-8000-000000000001", Code: "FHG", Description: "First hearing", Sequence: 1},
		{ID: "a7f6e5d4-0006-4000-8000-000000000002", Code: "PTP", Description: "Plea and trial preparation", Sequence: 2},
	}
}

// LavenderHill is the court centre B01LY00 with two courtrooms.
func LavenderHill() ports.CourtCentre {
	return ports.CourtCentre{
		OrganisationUnit: ports.OrganisationUnit{
			ID:       "b8a7f6e5-0007-4000-8000-000000000001",
			OUCode:   "B01LY00",
			Name:     "Lavender Hill Magistrates' Court",
			Address1: "176A Lavender Hill",
			Postcode: "SW11 1JU",
		},
		Courtrooms: []ports.Courtroom{
			{ID: "c9b8a7f6-0008-4000-8000-000000000001", Name: "Courtroom 01"},
			{ID: "c9b8a7f6-0008-4000-8000-000000000002", Name: "Courtroom 02"},
		},
	}
}

// CPS is the prosecutor registered under OU code GAFTL00.
func CPS() ports.Prosecutor {
	return ports.Prosecutor{
		ID:        ProsecutorUUID,
		OUCode:    "GAFTL00",
		ShortName: "CPS",
		FullName:  "Crown Prosecution Service",
	}
}

// DocumentTypes returns case level, defendant level and application-capable types.
func DocumentTypes() []ports.DocumentTypeAccess {
	return []ports.DocumentTypeAccess{
		{ID: "d0c9b8a7-0009-4000-8000-000000000001", DocumentType: "Case Summary", DocumentCategory: validation.CategoryCaseLevel, Sequence: 10, ValidFrom: "2019-01-01"},
		{ID: "d0c9b8a7-0009-4000-8000-000000000002", DocumentType: "Witness Statement", DocumentCategory: validation.CategoryDefendantLevel, Sequence: 20, ValidFrom: "2019-01-01"},
		{ID: "d0c9b8a7-0009-4000-8000-000000000003", DocumentType: "Applications", DocumentCategory: validation.CategoryCaseLevel, ApplicationType: true, Sequence: 30, ValidFrom: "2019-01-01"},
		{ID: "d0c9b8a7-0009-4000-8000-000000000004", DocumentType: "Retired Form", DocumentCategory: validation.CategoryCaseLevel, Sequence: 40, ValidFrom: "2010-01-01", ValidTo: "2018-12-31"},
	}
}

// ChargeCase returns case details for a charge-initiated case.
func ChargeCase() models.CaseDetails {
	return models.CaseDetails{
		CaseID:           CaseID,
		URN:              "TFL4359536",
		InitiationCode:   models.InitiationCharge,
		ProsecutorOUCode: "GAFTL00",
		Channel:          models.ChannelSPI,
	}
}

// SummonsCase returns case details for a summons-initiated case.
func SummonsCase() models.CaseDetails {
	c := ChargeCase()
	c.InitiationCode = models.InitiationSummons
	return c
}

// Offence returns a valid offence committed before Today.
func Offence() models.Offence {
	return models.Offence{
		ID:            OffenceID,
		OffenceCode:   "TH68001",
		Sequence:      1,
		CommittedDate: "2025-11-01",
		ChargeDate:    "2025-11-03",
	}
}

// IndividualDefendant returns a fully populated defendant that passes every rule.
func IndividualDefendant() models.Defendant {
	return models.Defendant{
		ID:                           DefendantID,
		ProsecutorDefendantReference: "TFL-DEF-001",
		CPSDefendantID:               "CPS-1001",
		ASN:                          "2500000000000000001A",
		PNCID:                        "2019/0123456B",
		CRONumber:                    "123456.19A",
		BailStatus:                   "U",
		OffenderCode:                 "PPO",
		Individual: &models.Individual{
			Forename:              "John",
			Surname:               "Doe",
			DateOfBirth:           "2000-01-01",
			Nationality:           "GBR",
			AdditionalNationality: "FRA",
			ObservedEthnicity:     "W1",
			SelfDefinedEthnicity:  "W1",
			Address: &models.Address{
				Address1: "1 High Street",
				Address2: "Croydon",
				Postcode: "CR0 2QX",
			},
			Contact: &models.Contact{
				PrimaryEmail:   "john.doe@example.com",
				SecondaryEmail: "j.doe@example.org",
			},
		},
		Offences: []models.Offence{Offence()},
		InitialHearing: &models.InitialHearing{
			DateOfHearing:        "2026-04-01",
			CourtHearingLocation: "B01LY00",
			Courtroom:            "Courtroom 01",
			HearingTypeCode:      "FHG",
		},
	}
}

// OrganisationDefendant returns a corporate defendant that passes every rule.
func OrganisationDefendant() models.Defendant {
	d := IndividualDefendant()
	d.Individual = nil
	d.PNCID = ""
	d.CRONumber = ""
	d.Organisation = &models.Organisation{
		Name:    "Acme Haulage Ltd",
		Address: &models.Address{Address1: "Unit 4", Postcode: "SW11 1JU"},
		Contact: &models.Contact{PrimaryEmail: "legal@acme-haulage.co.uk"},
	}
	return d
}

// DefendantContext wraps d in a fresh pass context on a charge case.
func DefendantContext(d models.Defendant) *validation.DefendantContext {
	return validation.NewDefendantContext(d, ChargeCase(), validation.Flags{})
}

// CaseDefendant returns a case defendant known by cpsID with the given personal details.
func CaseDefendant(cpsID, forename, surname, dob string) models.Defendant {
	return models.Defendant{
		ID:             id.NewDefendantID(),
		CPSDefendantID: cpsID,
		Individual: &models.Individual{
			Forename:    forename,
			Surname:     surname,
			DateOfBirth: dob,
		},
	}
}

// DocumentContext returns a defendant level document naming subjects against caseDefendants.
func DocumentContext(caseDefendants []models.Defendant, subjects ...validation.DefendantSubject) *validation.CaseDocumentContext {
	return &validation.CaseDocumentContext{
		DocumentID:          DocumentID,
		Defendants:          subjects,
		CaseDefendants:      caseDefendants,
		DocumentType:        "Witness Statement",
		DocumentCategory:    validation.CategoryDefendantLevel,
		MaterialContentType: "application/pdf",
		Cache:               validation.NewReferenceDataCache(),
	}
}
