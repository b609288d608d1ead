package defendant

import (
	"context"
	"strings"

	"precheck/internal/validation"
	"precheck/internal/validation/ports"
)

// match returns the first entry one of whose codes equals raw, ignoring case.
func match[T any](entries []T, raw string, codes func(T) []string) *T {
	for i := range entries {
		for _, code := range codes(entries[i]) {
			if code != "" && strings.EqualFold(code, raw) {
				e := entries[i]
				return &e
			}
		}
	}
	return nil
}

func nationalityCodes(n ports.CountryNationality) []string { return []string{n.IsoCode, n.CJSCode} }
func ethnicityCodes(e ports.Ethnicity) []string            { return []string{e.Code, e.CJSCode} }
func bailStatusCodes(b ports.BailStatus) []string          { return []string{b.StatusCode, b.ID} }
func offenderCodeCodes(o ports.OffenderCode) []string      { return []string{o.Code} }
func hearingTypeCodes(h ports.HearingType) []string        { return []string{h.Code, h.ID} }

// NationalityRule accepts an ISO or CJS nationality code.
type NationalityRule struct{}

func (NationalityRule) Validate(ctx context.Context, dc *validation.DefendantContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	if dc.Defendant.Individual == nil {
		return validation.Pass(), nil
	}
	raw := strings.TrimSpace(dc.Defendant.Individual.Nationality)
	if raw == "" {
		return validation.Pass(), nil
	}
	entries, err := dc.ReferenceData().CountryNationalities(ctx, gw)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	found := match(entries, raw, nationalityCodes)
	if found == nil {
		return validation.Fail(validation.NewProblem(validation.CodeInvalidNationality, raw)), nil
	}
	dc.ReferenceData().Resolved.Nationality = found
	return validation.Pass(), nil
}

// AdditionalNationalityRule checks the second nationality against the same list.
type AdditionalNationalityRule struct{}

func (AdditionalNationalityRule) Validate(ctx context.Context, dc *validation.DefendantContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	if dc.Defendant.Individual == nil {
		return validation.Pass(), nil
	}
	raw := strings.TrimSpace(dc.Defendant.Individual.AdditionalNationality)
	if raw == "" {
		return validation.Pass(), nil
	}
	entries, err := dc.ReferenceData().CountryNationalities(ctx, gw)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	found := match(entries, raw, nationalityCodes)
	if found == nil {
		return validation.Fail(validation.NewProblem(validation.CodeInvalidAdditionalNationality, raw)), nil
	}
	dc.ReferenceData().Resolved.AdditionalNationality = found
	return validation.Pass(), nil
}

// ObservedEthnicityRule accepts the ethnicity code or its CJS code.
type ObservedEthnicityRule struct{}

func (ObservedEthnicityRule) Validate(ctx context.Context, dc *validation.DefendantContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	if dc.Defendant.Individual == nil {
		return validation.Pass(), nil
	}
	raw := strings.TrimSpace(dc.Defendant.Individual.ObservedEthnicity)
	if raw == "" {
		return validation.Pass(), nil
	}
	entries, err := dc.ReferenceData().ObservedEthnicities(ctx, gw)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	found := match(entries, raw, ethnicityCodes)
	if found == nil {
		return validation.Fail(validation.NewProblem(validation.CodeInvalidObservedEthnicity, raw)), nil
	}
	dc.ReferenceData().Resolved.ObservedEthnicity = found
	return validation.Pass(), nil
}

type SelfDefinedEthnicityRule struct{}

func (SelfDefinedEthnicityRule) Validate(ctx context.Context, dc *validation.DefendantContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	if dc.Defendant.Individual == nil {
		return validation.Pass(), nil
	}
	raw := strings.TrimSpace(dc.Defendant.Individual.SelfDefinedEthnicity)
	if raw == "" {
		return validation.Pass(), nil
	}
	entries, err := dc.ReferenceData().SelfDefinedEthnicities(ctx, gw)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	found := match(entries, raw, ethnicityCodes)
	if found == nil {
		return validation.Fail(validation.NewProblem(validation.CodeInvalidSelfDefinedEthnicity, raw)), nil
	}
	dc.ReferenceData().Resolved.SelfDefinedEthnicity = found
	return validation.Pass(), nil
}

// BailStatusRule accepts a bail status code or reference id.
type BailStatusRule struct{}

func (BailStatusRule) Validate(ctx context.Context, dc *validation.DefendantContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	raw := strings.TrimSpace(dc.Defendant.BailStatus)
	if raw == "" {
		return validation.Pass(), nil
	}
	entries, err := dc.ReferenceData().BailStatuses(ctx, gw)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	found := match(entries, raw, bailStatusCodes)
	if found == nil {
		return validation.Fail(validation.NewProblem(validation.CodeInvalidBailStatus, raw)), nil
	}
	dc.ReferenceData().Resolved.BailStatus = found
	return validation.Pass(), nil
}

type OffenderCodeRule struct{}

func (OffenderCodeRule) Validate(ctx context.Context, dc *validation.DefendantContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	raw := strings.TrimSpace(dc.Defendant.OffenderCode)
	if raw == "" {
		return validation.Pass(), nil
	}
	entries, err := dc.ReferenceData().OffenderCodes(ctx, gw)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	found := match(entries, raw, offenderCodeCodes)
	if found == nil {
		return validation.Fail(validation.NewProblem(validation.CodeInvalidOffenderCode, raw)), nil
	}
	dc.ReferenceData().Resolved.OffenderCode = found
	return validation.Pass(), nil
}
