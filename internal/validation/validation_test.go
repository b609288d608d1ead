package validation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"precheck/internal/validation"
	"precheck/internal/validation/ports"
	"precheck/internal/validation/validationtest"
	"precheck/pkg/requestcontext"
)

// =============================================================================
// Problem and Result
// =============================================================================

func TestProblem(t *testing.T) {
	p := validation.NewProblem(validation.CodeInvalidChargeDate, "2030-01-01")

	t.Run("first value uses the canonical field", func(t *testing.T) {
		require.Len(t, p.Values, 1)
		assert.Equal(t, validation.FieldChargeDate, p.Values[0].Key)
	})

	t.Run("With copies", func(t *testing.T) {
		withOffence := p.With(validation.FieldOffenceID, "o-1")
		assert.Len(t, p.Values, 1)
		assert.Len(t, withOffence.Values, 2)
		v, ok := withOffence.Value(validation.FieldOffenceID)
		assert.True(t, ok)
		assert.Equal(t, "o-1", v)
		assert.False(t, p.Equal(withOffence))
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "INVALID_CHARGE_DATE[charge_date=2030-01-01]", p.String())
	})
}

func TestCodesHaveFields(t *testing.T) {
	for _, code := range []validation.ProblemCode{
		validation.CodeDefendantDOBInFuture,
		validation.CodeInvalidFileType,
		validation.CodeDuplicateDefendant,
		validation.CodeProsecutorIDNotRecognised,
	} {
		assert.True(t, code.Known(), code)
		assert.NotEmpty(t, code.Field(), code)
	}
	assert.Equal(t, validation.FieldName("materialContentType"), validation.CodeInvalidFileType.Field())
	assert.False(t, validation.ProblemCode("NOT_A_CODE").Known())
}

func TestValidationResult(t *testing.T) {
	a := validation.NewProblem(validation.CodeInvalidPNCID, "x")
	b := validation.NewProblem(validation.CodeInvalidCRONumber, "y")

	t.Run("zero value is valid", func(t *testing.T) {
		var r validation.ValidationResult
		assert.True(t, r.Valid())
		assert.Nil(t, r.Problems())
		assert.True(t, r.Equal(validation.Pass()))
	})

	t.Run("concat keeps order and inputs", func(t *testing.T) {
		left := validation.Fail(a)
		right := validation.Fail(b)
		joined := left.Concat(right)
		assert.Equal(t, []validation.ProblemCode{validation.CodeInvalidPNCID, validation.CodeInvalidCRONumber}, joined.Codes())
		assert.Equal(t, 1, left.Len())
		assert.True(t, joined.Has(validation.CodeInvalidCRONumber))
	})

	t.Run("problems are copied out", func(t *testing.T) {
		r := validation.Fail(a)
		ps := r.Problems()
		ps[0] = b
		assert.True(t, r.Has(validation.CodeInvalidPNCID))
	})
}

// =============================================================================
// Chain
// =============================================================================

type ChainSuite struct {
	suite.Suite
	ctx context.Context
	gw  *validationtest.FakeGateway
}

func TestChainSuite(t *testing.T) {
	suite.Run(t, new(ChainSuite))
}

func (s *ChainSuite) SetupTest() {
	s.ctx = validationtest.Context()
	s.gw = validationtest.NewFakeGateway()
}

func fixed(problems ...validation.Problem) validation.Rule[*validation.DefendantContext] {
	return validation.RuleFunc[*validation.DefendantContext](func(_ context.Context, _ *validation.DefendantContext, _ ports.ReferenceDataGateway) (validation.ValidationResult, error) {
		return validation.Fail(problems...), nil
	})
}

func (s *ChainSuite) TestRun() {
	p1 := validation.NewProblem(validation.CodeInvalidPNCID, "1")
	p2 := validation.NewProblem(validation.CodeInvalidCRONumber, "2")

	s.Run("concatenates in rule order and skips nil rules", func() {
		chain := validation.NewChain(
			validation.Named("first", fixed(p1)),
			validation.Named[*validation.DefendantContext]("nil", nil),
			validation.Named("second", fixed(p2)),
		)
		s.Equal([]string{"first", "second"}, chain.Names())

		res, err := chain.Run(s.ctx, validationtest.DefendantContext(validationtest.IndividualDefendant()), s.gw)
		s.Require().NoError(err)
		s.Equal([]validation.Problem{p1, p2}, res.Problems())
	})

	s.Run("rule error aborts", func() {
		boom := errors.New("boom")
		calledAfter := false
		chain := validation.NewChain(
			validation.Named("first", fixed(p1)),
			validation.Named[*validation.DefendantContext]("failing", validation.RuleFunc[*validation.DefendantContext](
				func(context.Context, *validation.DefendantContext, ports.ReferenceDataGateway) (validation.ValidationResult, error) {
					return validation.ValidationResult{}, boom
				})),
			validation.Named[*validation.DefendantContext]("after", validation.RuleFunc[*validation.DefendantContext](
				func(context.Context, *validation.DefendantContext, ports.ReferenceDataGateway) (validation.ValidationResult, error) {
					calledAfter = true
					return validation.Pass(), nil
				})),
		)

		res, err := chain.Run(s.ctx, validationtest.DefendantContext(validationtest.IndividualDefendant()), s.gw)
		s.ErrorIs(err, boom)
		s.Contains(err.Error(), "rule failing")
		s.True(res.Valid())
		s.False(calledAfter)
	})

	s.Run("contract violations", func() {
		chain := validation.NewChain(validation.Named("first", fixed(p1)))
		_, err := chain.Run(s.ctx, nil, s.gw)
		s.ErrorIs(err, validation.ErrNilSubject)
		_, err = chain.Run(s.ctx, validationtest.DefendantContext(validationtest.IndividualDefendant()), nil)
		s.ErrorIs(err, validation.ErrNilGateway)
	})
}

// =============================================================================
// Reference Data Cache
// =============================================================================

func TestReferenceDataCache(t *testing.T) {
	ctx := validationtest.Context()

	t.Run("fetches each category once", func(t *testing.T) {
		gw := validationtest.NewFakeGateway()
		cache := validation.NewReferenceDataCache()
		for range 3 {
			_, err := cache.CountryNationalities(ctx, gw)
			require.NoError(t, err)
			_, err = cache.DocumentTypeAccess(ctx, gw)
			require.NoError(t, err)
		}
		assert.Equal(t, 1, gw.Calls("CountryNationalities"))
		assert.Equal(t, 1, gw.Calls("DocumentTypeAccess"))
	})

	t.Run("keyed categories cache per key, including misses", func(t *testing.T) {
		gw := validationtest.NewFakeGateway()
		cache := validation.NewReferenceDataCache()
		for _, ou := range []string{"B01LY00", "Z99ZZ00", "B01LY00", "Z99ZZ00"} {
			_, err := cache.CourtCentre(ctx, gw, ou)
			require.NoError(t, err)
		}
		assert.Equal(t, 2, gw.Calls("OrganisationUnitWithCourtrooms"))
	})

	t.Run("failures are not cached", func(t *testing.T) {
		gw := validationtest.NewFakeGateway()
		gw.Err = errors.New("timeout")
		cache := validation.NewReferenceDataCache()
		_, err := cache.BailStatuses(ctx, gw)
		require.ErrorIs(t, err, gw.Err)
		assert.Contains(t, err.Error(), "fetch bail statuses")

		gw.Err = nil
		statuses, err := cache.BailStatuses(ctx, gw)
		require.NoError(t, err)
		assert.Len(t, statuses, 2)
		assert.Equal(t, 2, gw.Calls("BailStatuses"))
	})

	t.Run("offence locations", func(t *testing.T) {
		var r validation.Resolved
		r.SetOffenceLocation(validationtest.OffenceID, "Lavender Hill")
		assert.Equal(t, "Lavender Hill", r.OffenceLocations[validationtest.OffenceID])
	})
}

// =============================================================================
// Dates
// =============================================================================

func TestDates(t *testing.T) {
	ctx := validationtest.Context()

	_, ok := validation.ParseDate("14/03/2026")
	assert.False(t, ok)
	_, ok = validation.ParseDate(" 2026-03-14 ")
	assert.True(t, ok)

	assert.False(t, validation.InFuture(ctx, validationtest.Today))
	assert.True(t, validation.InFuture(ctx, "2026-03-15"))
	assert.False(t, validation.InFuture(ctx, "not a date"))

	late := requestcontext.WithTime(context.Background(), validationtest.Now.Add(13*time.Hour))
	assert.Equal(t, "2026-03-14", validation.Today(late).Format(validation.DateLayout))
}

// =============================================================================
// Document Context
// =============================================================================

func TestCaseDocumentContext(t *testing.T) {
	t.Run("bare prosecutor defendant id is a subject", func(t *testing.T) {
		dc := validationtest.DocumentContext(nil)
		assert.Empty(t, dc.Subjects())
		dc.ProsecutorDefendantID = "TFL-DEF-001"
		assert.Equal(t, []validation.DefendantSubject{{ProsecutorDefendantID: "TFL-DEF-001"}}, dc.Subjects())
	})

	t.Run("subject keys", func(t *testing.T) {
		assert.Equal(t, "CPS-1", validation.DefendantSubject{CPSDefendantID: "CPS-1", ProsecutorDefendantID: "P-1"}.Key())
		assert.Equal(t, "P-1", validation.DefendantSubject{ProsecutorDefendantID: " P-1 "}.Key())
		assert.Equal(t, "ASN-1", validation.DefendantSubject{ASN: "ASN-1"}.Key())
	})

	t.Run("empty keys are not recorded", func(t *testing.T) {
		dc := validationtest.DocumentContext(nil)
		dc.RecordDefendant("", validationtest.DefendantID)
		assert.Empty(t, dc.ValidDefendantIDs)
	})

	t.Run("category comparison ignores case", func(t *testing.T) {
		dc := validationtest.DocumentContext(nil)
		dc.DocumentCategory = "defendant LEVEL"
		assert.True(t, dc.InCategory(validation.CategoryDefendantLevel))
	})
}
