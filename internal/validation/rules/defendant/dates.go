package defendant

import (
	"context"
	"strings"

	"precheck/internal/validation"
	"precheck/internal/validation/models"
	"precheck/internal/validation/ports"
)

// ChargeDateNotProvided is reported in place of a missing charge date.
const ChargeDateNotProvided = "Charge date not provided"

func offenceProblem(code validation.ProblemCode, value string, o models.Offence) validation.Problem {
	return validation.NewProblem(code, value).With(validation.FieldOffenceID, o.ID.String())
}

// DateOfBirthRule rejects a date of birth after today. Today itself is valid.
type DateOfBirthRule struct{}

func (DateOfBirthRule) Validate(ctx context.Context, dc *validation.DefendantContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	ind := dc.Defendant.Individual
	if ind == nil {
		return validation.Pass(), nil
	}
	if validation.InFuture(ctx, ind.DateOfBirth) {
		return validation.Fail(validation.NewProblem(validation.CodeDefendantDOBInFuture, strings.TrimSpace(ind.DateOfBirth))), nil
	}
	return validation.Pass(), nil
}

// ChargeDateRule checks every offence's charge date. On a charge-initiated
// case the date is mandatory unless the case is an inactive migrated case.
// A malformed date is reported with its raw value.
type ChargeDateRule struct{}

func (ChargeDateRule) Validate(ctx context.Context, dc *validation.DefendantContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	required := dc.IsChargeFlow() && !dc.Flags.InactiveMigratedCase
	today := validation.Today(ctx)

	var problems []validation.Problem
	for _, o := range dc.Defendant.Offences {
		raw := strings.TrimSpace(o.ChargeDate)
		if raw == "" {
			if required {
				problems = append(problems, offenceProblem(validation.CodeInvalidChargeDate, ChargeDateNotProvided, o))
			}
			continue
		}
		d, ok := validation.ParseDate(raw)
		if !ok || d.After(today) {
			problems = append(problems, offenceProblem(validation.CodeInvalidChargeDate, raw, o))
		}
	}
	return validation.Fail(problems...), nil
}

// OffenceCommittedDateRule rejects committed dates after today.
type OffenceCommittedDateRule struct{}

func (OffenceCommittedDateRule) Validate(ctx context.Context, dc *validation.DefendantContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	var problems []validation.Problem
	for _, o := range dc.Defendant.Offences {
		if validation.InFuture(ctx, o.CommittedDate) {
			problems = append(problems, offenceProblem(validation.CodeOffenceCommittedDateInFuture, strings.TrimSpace(o.CommittedDate), o))
		}
	}
	return validation.Fail(problems...), nil
}

// OffenceEndDateRule rejects a committed end date earlier than the committed date.
type OffenceEndDateRule struct{}

func (OffenceEndDateRule) Validate(_ context.Context, dc *validation.DefendantContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	var problems []validation.Problem
	for _, o := range dc.Defendant.Offences {
		start, okStart := validation.ParseDate(o.CommittedDate)
		end, okEnd := validation.ParseDate(o.CommittedEndDate)
		if !okStart || !okEnd || !end.Before(start) {
			continue
		}
		problems = append(problems, offenceProblem(validation.CodeOffenceEndDateBeforeStartDate, strings.TrimSpace(o.CommittedEndDate), o).
			With(validation.FieldOffenceCommittedDate, strings.TrimSpace(o.CommittedDate)))
	}
	return validation.Fail(problems...), nil
}

// DateOfHearingRule rejects a first hearing listed before an offence was
// committed, one problem per offence. Deferred for list-new-hearing submissions.
type DateOfHearingRule struct{}

func (DateOfHearingRule) Validate(_ context.Context, dc *validation.DefendantContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	if dc.Flags.MCCWithListNewHearing {
		return validation.Pass(), nil
	}
	hearing := dc.Defendant.InitialHearing
	if hearing == nil {
		return validation.Pass(), nil
	}
	hearingDate, ok := validation.ParseDate(hearing.DateOfHearing)
	if !ok {
		return validation.Pass(), nil
	}

	var problems []validation.Problem
	for _, o := range dc.Defendant.Offences {
		committed, ok := validation.ParseDate(o.CommittedDate)
		if !ok || !hearingDate.Before(committed) {
			continue
		}
		problems = append(problems, offenceProblem(validation.CodeDateOfHearingBeforeCommittedDate, strings.TrimSpace(hearing.DateOfHearing), o).
			With(validation.FieldOffenceCommittedDate, strings.TrimSpace(o.CommittedDate)))
	}
	return validation.Fail(problems...), nil
}

// VerdictDateRule rejects a verdict dated after today. An offence without a verdict is valid.
type VerdictDateRule struct{}

func (VerdictDateRule) Validate(ctx context.Context, dc *validation.DefendantContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	var problems []validation.Problem
	for _, o := range dc.Defendant.Offences {
		if o.Verdict == nil {
			continue
		}
		if validation.InFuture(ctx, o.Verdict.VerdictDate) {
			problems = append(problems, offenceProblem(validation.CodeVerdictDateInFuture, strings.TrimSpace(o.Verdict.VerdictDate), o))
		}
	}
	return validation.Fail(problems...), nil
}

// ConvictionDateRule rejects a conviction dated after today.
type ConvictionDateRule struct{}

func (ConvictionDateRule) Validate(ctx context.Context, dc *validation.DefendantContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	var problems []validation.Problem
	for _, o := range dc.Defendant.Offences {
		if validation.InFuture(ctx, o.ConvictionDate) {
			problems = append(problems, offenceProblem(validation.CodeConvictionDateInFuture, strings.TrimSpace(o.ConvictionDate), o))
		}
	}
	return validation.Fail(problems...), nil
}
