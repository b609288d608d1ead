package chains

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"precheck/internal/validation"
	"precheck/internal/validation/models"
	"precheck/internal/validation/validationtest"
	dErrors "precheck/pkg/domain-errors"
)

func TestParseMatchPolicy(t *testing.T) {
	tests := []struct {
		in   string
		want MatchPolicy
	}{
		{"", MatchV2},
		{"base", MatchBase},
		{" V2 ", MatchV2},
		{"Pending", MatchPending},
	}
	for _, tt := range tests {
		got, err := ParseMatchPolicy(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseMatchPolicy("strict")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestDefendantChainSelection(t *testing.T) {
	charge := Defendant(models.InitiationCharge).Names()
	summons := Defendant(models.InitiationSummons).Names()
	application := Defendant(models.InitiationApplication).Names()
	unknown := Defendant("Z").Names()

	assert.Contains(t, charge, "charge_date")
	assert.Contains(t, charge, "bail_status")
	assert.NotContains(t, summons, "charge_date")
	assert.NotContains(t, summons, "bail_status")
	assert.Contains(t, summons, "court_hearing_location")
	assert.NotContains(t, application, "date_of_hearing")
	assert.NotContains(t, application, "offence_location")
	assert.Equal(t, summons, unknown)

	loc := indexOf(charge, "court_hearing_location")
	assert.Less(t, loc, indexOf(charge, "courtroom"))
	assert.Less(t, loc, indexOf(charge, "offence_location"))
}

func TestDocumentChainOrder(t *testing.T) {
	for _, policy := range []MatchPolicy{MatchBase, MatchV2, MatchPending} {
		names := Document(policy).Names()
		assert.Equal(t, "document_type", names[0], policy)
		assert.Len(t, names, 5)
	}
	assert.Equal(t, "pending_defendant_match_v2", Document(MatchPending).Names()[4])
	assert.Equal(t, "defendant_match", Document(MatchBase).Names()[4])
}

func TestDefendantChain(t *testing.T) {
	ctx := validationtest.Context()

	t.Run("valid defendant", func(t *testing.T) {
		res, err := Defendant(models.InitiationCharge).Run(ctx, validationtest.DefendantContext(validationtest.IndividualDefendant()), validationtest.NewFakeGateway())
		require.NoError(t, err)
		assert.True(t, res.Valid(), "%v", res.Problems())
	})

	t.Run("croydon postcode with letter O", func(t *testing.T) {
		d := validationtest.IndividualDefendant()
		d.Individual.Address.Postcode = "CRO 2QX"
		res, err := Defendant(models.InitiationCharge).Run(ctx, validationtest.DefendantContext(d), validationtest.NewFakeGateway())
		require.NoError(t, err)

		want := []validation.Problem{{
			Code:   validation.CodeInvalidDefendantPostcode,
			Values: []validation.FieldValue{{Key: "address_postcode", Value: "CRO 2QX"}},
		}}
		if diff := cmp.Diff(want, res.Problems()); diff != "" {
			t.Errorf("problems (-want +got):\n%s", diff)
		}
	})

	t.Run("problems follow rule order", func(t *testing.T) {
		d := validationtest.IndividualDefendant()
		d.Individual.DateOfBirth = "2030-01-01"
		d.Individual.Nationality = "XYZ"
		d.Offences[0].ChargeDate = ""
		res, err := Defendant(models.InitiationCharge).Run(ctx, validationtest.DefendantContext(d), validationtest.NewFakeGateway())
		require.NoError(t, err)
		assert.Equal(t, []validation.ProblemCode{
			validation.CodeDefendantDOBInFuture,
			validation.CodeInvalidNationality,
			validation.CodeInvalidChargeDate,
		}, res.Codes())
	})

	t.Run("each reference data category is fetched at most once", func(t *testing.T) {
		gw := validationtest.NewFakeGateway()
		dc := validationtest.DefendantContext(validationtest.IndividualDefendant())
		chain := Defendant(models.InitiationCharge)
		for range 3 {
			_, err := chain.Run(ctx, dc, gw)
			require.NoError(t, err)
		}
		for _, method := range []string{
			"CountryNationalities", "ObservedEthnicities", "SelfDefinedEthnicities", "BailStatuses",
			"OffenderCodes", "HearingTypes", "OrganisationUnitWithCourtrooms", "OrganisationUnits",
		} {
			assert.LessOrEqual(t, gw.Calls(method), 1, method)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		d := validationtest.IndividualDefendant()
		d.Individual.Address.Postcode = "CRO 2QX"
		d.InitialHearing.Courtroom = "Courtroom 99"
		dc := validationtest.DefendantContext(d)
		gw := validationtest.NewFakeGateway()
		first, err := Defendant(models.InitiationCharge).Run(ctx, dc, gw)
		require.NoError(t, err)
		second, err := Defendant(models.InitiationCharge).Run(ctx, dc, gw)
		require.NoError(t, err)
		assert.True(t, first.Equal(second))
		assert.Equal(t, 2, first.Len())
	})

	t.Run("gateway failure aborts without a partial result", func(t *testing.T) {
		gw := validationtest.NewFakeGateway()
		gw.Err = assert.AnError
		d := validationtest.IndividualDefendant()
		d.Individual.DateOfBirth = "2030-01-01"
		res, err := Defendant(models.InitiationCharge).Run(ctx, validationtest.DefendantContext(d), gw)
		require.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "rule nationality")
		assert.Zero(t, res.Len())
	})
}

func TestDocumentChain(t *testing.T) {
	ctx := validationtest.Context()

	t.Run("application document needs a court application", func(t *testing.T) {
		dc := validationtest.DocumentContext(nil)
		dc.DocumentType = "Applications"
		dc.DocumentCategory = validation.CategoryCaseLevel
		dc.HasApplication = true
		dc.ProsecutionCaseSubject = validationtest.CaseID.String()

		res, err := Document(MatchV2).Run(ctx, dc, validationtest.NewFakeGateway())
		require.NoError(t, err)
		assert.Equal(t, []validation.ProblemCode{validation.CodeCourtApplicationRequired}, res.Codes())
		assert.Equal(t, validation.CategoryApplications, dc.DocumentCategory)
	})

	t.Run("defendant level document resolves its defendant", func(t *testing.T) {
		caseDef := validationtest.CaseDefendant("CPS-1001", "John", "Doe", "2000-01-01")
		dc := validationtest.DocumentContext([]models.Defendant{caseDef}, validation.DefendantSubject{
			CPSDefendantID: "CPS-1001",
			Individual:     &validation.SubjectIndividual{Forename: "John", Surname: "Doe", DateOfBirth: "2000-01-01"},
		})

		res, err := Document(MatchV2).Run(ctx, dc, validationtest.NewFakeGateway())
		require.NoError(t, err)
		assert.True(t, res.Valid(), "%v", res.Problems())
		assert.Equal(t, caseDef.ID, dc.ValidDefendantIDs["CPS-1001"])
	})

	t.Run("invalid file type", func(t *testing.T) {
		dc := validationtest.DocumentContext(nil)
		dc.ProsecutorDefendantID = "TFL-DEF-001"
		dc.CaseDefendants = []models.Defendant{{ID: validationtest.DefendantID, ProsecutorDefendantReference: "TFL-DEF-001"}}
		dc.MaterialContentType = "invalid_file_type"

		res, err := Document(MatchV2).Run(ctx, dc, validationtest.NewFakeGateway())
		require.NoError(t, err)
		assert.Equal(t, []validation.Problem{validation.NewProblem(validation.CodeInvalidFileType, "invalid_file_type")}, res.Problems())
	})
}

func TestCaseChain(t *testing.T) {
	details := validationtest.ChargeCase()
	details.InitiationCode = "X"
	details.ProsecutorOUCode = "ZZZZZ00"
	res, err := Case().Run(validationtest.Context(), validation.NewCaseContext(details), validationtest.NewFakeGateway())
	require.NoError(t, err)
	assert.Equal(t, []validation.ProblemCode{
		validation.CodeInvalidInitiationCode,
		validation.CodeProsecutorOUCodeNotRecognised,
	}, res.Codes())
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
