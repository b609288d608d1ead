package document

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"

	"precheck/internal/validation"
	"precheck/internal/validation/models"
	"precheck/internal/validation/validationtest"
	id "precheck/pkg/domain"
)

type DocumentRulesSuite struct {
	suite.Suite
	ctx context.Context
	gw  *validationtest.FakeGateway
}

func TestDocumentRulesSuite(t *testing.T) {
	suite.Run(t, new(DocumentRulesSuite))
}

func (s *DocumentRulesSuite) SetupTest() {
	s.ctx = validationtest.Context()
	s.gw = validationtest.NewFakeGateway()
}

func (s *DocumentRulesSuite) run(rule validation.Rule[*validation.CaseDocumentContext], dc *validation.CaseDocumentContext) validation.ValidationResult {
	res, err := rule.Validate(s.ctx, dc, s.gw)
	s.Require().NoError(err)
	return res
}

func (s *DocumentRulesSuite) assertProblems(want []validation.Problem, got validation.ValidationResult) {
	if diff := cmp.Diff(want, got.Problems()); diff != "" {
		s.Failf("unexpected problems", "(-want +got):\n%s", diff)
	}
}

func johnDoe() validation.DefendantSubject {
	return validation.DefendantSubject{
		CPSDefendantID: "CPS-1001",
		Individual: &validation.SubjectIndividual{
			Forename:    "John",
			Surname:     "Doe",
			DateOfBirth: "2000-01-01",
		},
	}
}

// duplicatedCase returns two case defendants with identical personal details
// and one without personal details.
func duplicatedCase() []models.Defendant {
	return []models.Defendant{
		validationtest.CaseDefendant("CPS-1001", "John", "Doe", "2000-01-01"),
		validationtest.CaseDefendant("CPS-1002", "John", "Doe", "2000-01-01"),
		{ID: id.NewDefendantID(), ProsecutorDefendantReference: "TFL-DEF-009"},
	}
}

// =============================================================================
// File and Document Type Tests
// =============================================================================

func (s *DocumentRulesSuite) TestFileType() {
	s.Run("invalid file type", func() {
		dc := validationtest.DocumentContext(nil)
		dc.MaterialContentType = "invalid_file_type"
		s.assertProblems([]validation.Problem{{
			Code:   validation.CodeInvalidFileType,
			Values: []validation.FieldValue{{Key: "materialContentType", Value: "invalid_file_type"}},
		}}, s.run(FileTypeRule{}, dc))
	})

	s.Run("pdf", func() {
		s.True(s.run(FileTypeRule{}, validationtest.DocumentContext(nil)).Valid())
	})

	s.Run("absent content type", func() {
		dc := validationtest.DocumentContext(nil)
		dc.MaterialContentType = ""
		s.True(s.run(FileTypeRule{}, dc).Valid())
	})
}

func (s *DocumentRulesSuite) TestDocumentType() {
	s.Run("fills an empty category from the catalogue", func() {
		dc := validationtest.DocumentContext(nil)
		dc.DocumentType = "case summary"
		dc.DocumentCategory = ""
		s.True(s.run(DocumentTypeRule{}, dc).Valid())
		s.Equal(validation.CategoryCaseLevel, dc.DocumentCategory)
		s.Equal("Case Summary", dc.ResolvedDocumentType.DocumentType)
	})

	s.Run("keeps a submitted category", func() {
		dc := validationtest.DocumentContext(nil)
		dc.DocumentType = "Case Summary"
		s.True(s.run(DocumentTypeRule{}, dc).Valid())
		s.Equal(validation.CategoryDefendantLevel, dc.DocumentCategory)
	})

	s.Run("application type moves the document to Applications", func() {
		dc := validationtest.DocumentContext(nil)
		dc.DocumentType = "Applications"
		dc.HasApplication = true
		s.True(s.run(DocumentTypeRule{}, dc).Valid())
		s.Equal(validation.CategoryApplications, dc.DocumentCategory)
		s.Equal(validation.CategoryApplications, dc.ResolvedDocumentType.DocumentCategory)

		cached, err := dc.ReferenceData().DocumentTypeAccess(s.ctx, s.gw)
		s.Require().NoError(err)
		s.Equal(validation.CategoryCaseLevel, cached[2].DocumentCategory, "catalogue entry is not re-tagged")
	})

	s.Run("application type without an application", func() {
		dc := validationtest.DocumentContext(nil)
		dc.DocumentType = "Applications"
		dc.DocumentCategory = ""
		s.True(s.run(DocumentTypeRule{}, dc).Valid())
		s.Equal(validation.CategoryCaseLevel, dc.DocumentCategory)
	})

	s.Run("by id", func() {
		dc := validationtest.DocumentContext(nil)
		dc.DocumentType = validationtest.DocumentTypes()[1].ID
		s.True(s.run(DocumentTypeRule{}, dc).Valid())
		s.Equal("Witness Statement", dc.ResolvedDocumentType.DocumentType)
	})

	s.Run("unknown and expired types", func() {
		for _, raw := range []string{"Shopping List", "Retired Form", ""} {
			dc := validationtest.DocumentContext(nil)
			dc.DocumentType = raw
			s.assertProblems([]validation.Problem{
				validation.NewProblem(validation.CodeInvalidDocumentType, raw),
			}, s.run(DocumentTypeRule{}, dc))
			s.Nil(dc.ResolvedDocumentType)
		}
	})

	s.Run("idempotent", func() {
		dc := validationtest.DocumentContext(nil)
		dc.DocumentType = "Applications"
		dc.HasApplication = true
		first := s.run(DocumentTypeRule{}, dc)
		resolved := *dc.ResolvedDocumentType
		second := s.run(DocumentTypeRule{}, dc)
		s.True(first.Equal(second))
		s.Equal(resolved, *dc.ResolvedDocumentType)
		s.Equal(validation.CategoryApplications, dc.DocumentCategory)
	})
}

func (s *DocumentRulesSuite) TestSubjectRequirements() {
	s.Run("application without court application", func() {
		dc := validationtest.DocumentContext(nil)
		dc.DocumentCategory = validation.CategoryApplications
		s.assertProblems([]validation.Problem{
			validation.NewProblem(validation.CodeCourtApplicationRequired, ""),
		}, s.run(CourtApplicationRequiredRule{}, dc))

		dc.CourtApplicationSubject = id.NewApplicationID().String()
		s.True(s.run(CourtApplicationRequiredRule{}, dc).Valid())
	})

	s.Run("case level without case subject", func() {
		dc := validationtest.DocumentContext(nil)
		dc.DocumentCategory = validation.CategoryCaseLevel
		s.assertProblems([]validation.Problem{
			validation.NewProblem(validation.CodeProsecutionCaseSubjectRequired, ""),
		}, s.run(ProsecutionCaseSubjectRequiredRule{}, dc))
	})

	s.Run("other categories are not checked", func() {
		dc := validationtest.DocumentContext(nil)
		s.True(s.run(CourtApplicationRequiredRule{}, dc).Valid())
		s.True(s.run(ProsecutionCaseSubjectRequiredRule{}, dc).Valid())
	})
}

// =============================================================================
// Defendant Matching Tests
// =============================================================================

func (s *DocumentRulesSuite) TestDuplicateDefendants() {
	s.Run("v2 raises one duplicate with the subject id", func() {
		dc := validationtest.DocumentContext(duplicatedCase(), johnDoe())
		s.assertProblems([]validation.Problem{
			validation.NewProblem(validation.CodeDuplicateDefendant, "CPS-1001"),
		}, s.run(DefendantMatchRuleV2{}, dc))
		s.Empty(dc.ValidDefendantIDs)
	})

	s.Run("base tolerates duplicates", func() {
		caseDefs := duplicatedCase()
		dc := validationtest.DocumentContext(caseDefs, johnDoe())
		s.True(s.run(DefendantMatchRule{}, dc).Valid())
		s.Equal(map[string]id.DefendantID{"CPS-1001": caseDefs[0].ID}, dc.ValidDefendantIDs)
	})

	s.Run("pending reports every duplicated case defendant", func() {
		caseDefs := duplicatedCase()
		dc := validationtest.DocumentContext(caseDefs, johnDoe())
		s.assertProblems([]validation.Problem{
			validation.NewProblem(validation.CodeDuplicateDefendant, "CPS-1001").With(validation.FieldCaseDefendantID, caseDefs[0].ID.String()),
			validation.NewProblem(validation.CodeDuplicateDefendant, "CPS-1001").With(validation.FieldCaseDefendantID, caseDefs[1].ID.String()),
		}, s.run(PendingDefendantMatchRuleV2{}, dc))
	})
}

func (s *DocumentRulesSuite) TestUnmatchedDefendant() {
	caseDefs := []models.Defendant{validationtest.CaseDefendant("CPS-2001", "Mary", "Major", "1990-05-05")}

	s.Run("base accepts", func() {
		dc := validationtest.DocumentContext(caseDefs, johnDoe())
		s.True(s.run(DefendantMatchRule{}, dc).Valid())
		s.Empty(dc.ValidDefendantIDs)
	})

	s.Run("v2 requires a known defendant", func() {
		dc := validationtest.DocumentContext(caseDefs, johnDoe())
		s.assertProblems([]validation.Problem{
			validation.NewProblem(validation.CodeDefendantIDRequired, "CPS-1001"),
		}, s.run(DefendantMatchRuleV2{}, dc))
	})

	s.Run("pending reports the defendant as on common platform", func() {
		dc := validationtest.DocumentContext(caseDefs, johnDoe())
		s.assertProblems([]validation.Problem{
			validation.NewProblem(validation.CodeDefendantOnCP, "CPS-1001"),
		}, s.run(PendingDefendantMatchRuleV2{}, dc))
	})
}

func (s *DocumentRulesSuite) TestMatchingKeys() {
	s.Run("equal asn overrides a failed name match", func() {
		caseDef := validationtest.CaseDefendant("CPS-1001", "Jon", "Doe", "2000-01-01")
		caseDef.ASN = "2500000000000000001A"
		subject := johnDoe()
		subject.ASN = "2500000000000000001a"

		dc := validationtest.DocumentContext([]models.Defendant{caseDef}, subject)
		s.True(s.run(DefendantMatchRuleV2{}, dc).Valid())
		s.Equal(caseDef.ID, dc.ValidDefendantIDs["CPS-1001"])
	})

	s.Run("bare asn", func() {
		caseDef := models.Defendant{ID: id.NewDefendantID(), ASN: "2500000000000000001A"}
		dc := validationtest.DocumentContext([]models.Defendant{caseDef}, validation.DefendantSubject{ASN: "2500000000000000001A"})
		s.True(s.run(DefendantMatchRuleV2{}, dc).Valid())
		s.Equal(caseDef.ID, dc.ValidDefendantIDs["2500000000000000001A"])
	})

	s.Run("organisation by name", func() {
		caseDef := models.Defendant{ID: id.NewDefendantID(), Organisation: &models.Organisation{Name: "Acme Haulage Ltd"}}
		subject := validation.DefendantSubject{ProsecutorDefendantID: "TFL-ORG-1", OrganisationName: "ACME HAULAGE LTD "}
		dc := validationtest.DocumentContext([]models.Defendant{caseDef}, subject)
		s.True(s.run(DefendantMatchRuleV2{}, dc).Valid())
		s.Equal(caseDef.ID, dc.ValidDefendantIDs["TFL-ORG-1"])
	})

	s.Run("prosecutor id when neither side has personal details", func() {
		caseDefs := duplicatedCase()
		dc := validationtest.DocumentContext(caseDefs)
		dc.ProsecutorDefendantID = "TFL-DEF-009"
		s.True(s.run(DefendantMatchRuleV2{}, dc).Valid())
		s.Equal(caseDefs[2].ID, dc.ValidDefendantIDs["TFL-DEF-009"])
	})

	s.Run("personal details on one side only never match", func() {
		caseDefs := []models.Defendant{{ID: id.NewDefendantID(), CPSDefendantID: "CPS-1001"}}
		dc := validationtest.DocumentContext(caseDefs, johnDoe())
		s.True(s.run(DefendantMatchRuleV2{}, dc).Has(validation.CodeDefendantIDRequired))
	})

	s.Run("subject without identifier or asn", func() {
		subject := validation.DefendantSubject{Individual: johnDoe().Individual}
		for _, rule := range []validation.Rule[*validation.CaseDocumentContext]{DefendantMatchRule{}, DefendantMatchRuleV2{}, PendingDefendantMatchRuleV2{}} {
			dc := validationtest.DocumentContext(duplicatedCase(), subject)
			s.assertProblems([]validation.Problem{
				validation.NewProblem(validation.CodeDefendantIDRequired, ""),
			}, s.run(rule, dc))
		}
	})

	s.Run("no subjects at all", func() {
		dc := validationtest.DocumentContext(duplicatedCase())
		s.assertProblems([]validation.Problem{
			validation.NewProblem(validation.CodeDefendantIDRequired, ""),
		}, s.run(DefendantMatchRuleV2{}, dc))
	})
}

func (s *DocumentRulesSuite) TestMatchingScope() {
	s.Run("other categories are not matched", func() {
		dc := validationtest.DocumentContext(duplicatedCase(), johnDoe())
		dc.DocumentCategory = validation.CategoryCaseLevel
		for _, rule := range []validation.Rule[*validation.CaseDocumentContext]{DefendantMatchRule{}, DefendantMatchRuleV2{}, PendingDefendantMatchRuleV2{}} {
			s.True(s.run(rule, dc).Valid())
		}
		s.Empty(dc.ValidDefendantIDs)
	})

	s.Run("a recorded identifier is reused", func() {
		known := id.NewDefendantID()
		dc := validationtest.DocumentContext(duplicatedCase(), johnDoe())
		dc.RecordDefendant("CPS-1001", known)
		s.True(s.run(DefendantMatchRuleV2{}, dc).Valid())
		s.Equal(known, dc.ValidDefendantIDs["CPS-1001"])
	})

	s.Run("matching twice is idempotent", func() {
		caseDefs := []models.Defendant{validationtest.CaseDefendant("CPS-1001", "John", "Doe", "2000-01-01")}
		dc := validationtest.DocumentContext(caseDefs, johnDoe())
		first := s.run(DefendantMatchRuleV2{}, dc)
		second := s.run(DefendantMatchRuleV2{}, dc)
		s.True(first.Equal(second))
		s.Equal(map[string]id.DefendantID{"CPS-1001": caseDefs[0].ID}, dc.ValidDefendantIDs)
	})
}

func (s *DocumentRulesSuite) TestContract() {
	rules := map[string]validation.Rule[*validation.CaseDocumentContext]{
		"document type":     DocumentTypeRule{},
		"file type":         FileTypeRule{},
		"court application": CourtApplicationRequiredRule{},
		"case subject":      ProsecutionCaseSubjectRequiredRule{},
		"match":             DefendantMatchRule{},
		"match v2":          DefendantMatchRuleV2{},
		"pending match v2":  PendingDefendantMatchRuleV2{},
	}
	for name, rule := range rules {
		s.Run(name, func() {
			_, err := rule.Validate(s.ctx, nil, s.gw)
			s.ErrorIs(err, validation.ErrNilSubject)
			_, err = rule.Validate(s.ctx, validationtest.DocumentContext(nil), nil)
			s.ErrorIs(err, validation.ErrNilGateway)
		})
	}
}
