package defendant

import (
	"context"
	"strings"

	"precheck/internal/validation"
	"precheck/internal/validation/ports"
	"precheck/internal/validation/rules/formats"
)

// formatRule checks one optional free-text field with a pure predicate.
// An empty value is valid.
func formatRule(code validation.ProblemCode, field func(*validation.DefendantContext) string, valid func(string) bool) validation.RuleFunc[*validation.DefendantContext] {
	return func(_ context.Context, dc *validation.DefendantContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
		if err := validation.Require(dc, gw); err != nil {
			return validation.ValidationResult{}, err
		}
		raw := strings.TrimSpace(field(dc))
		if raw == "" || valid(raw) {
			return validation.Pass(), nil
		}
		return validation.Fail(validation.NewProblem(code, raw)), nil
	}
}

// DefendantPostcodeRule checks the postcode on the defendant's own address.
func DefendantPostcodeRule() validation.Rule[*validation.DefendantContext] {
	return formatRule(validation.CodeInvalidDefendantPostcode, func(dc *validation.DefendantContext) string {
		if addr := dc.Defendant.Address(); addr != nil {
			return addr.Postcode
		}
		return ""
	}, formats.Postcode)
}

// ParentGuardianPostcodeRule checks the parent or guardian's postcode on a youth defendant.
func ParentGuardianPostcodeRule() validation.Rule[*validation.DefendantContext] {
	return formatRule(validation.CodeInvalidParentGuardianPostcode, func(dc *validation.DefendantContext) string {
		ind := dc.Defendant.Individual
		if ind == nil || ind.ParentGuardian == nil || ind.ParentGuardian.Address == nil {
			return ""
		}
		return ind.ParentGuardian.Address.Postcode
	}, formats.Postcode)
}

func PNCIDRule() validation.Rule[*validation.DefendantContext] {
	return formatRule(validation.CodeInvalidPNCID, func(dc *validation.DefendantContext) string {
		return dc.Defendant.PNCID
	}, formats.PNCID)
}

func CRONumberRule() validation.Rule[*validation.DefendantContext] {
	return formatRule(validation.CodeInvalidCRONumber, func(dc *validation.DefendantContext) string {
		return dc.Defendant.CRONumber
	}, formats.CRONumber)
}

// PrimaryEmailRule checks the primary contact email.
func PrimaryEmailRule() validation.Rule[*validation.DefendantContext] {
	return formatRule(validation.CodeInvalidEmailAddress, func(dc *validation.DefendantContext) string {
		if c := dc.Defendant.Contact(); c != nil {
			return c.PrimaryEmail
		}
		return ""
	}, formats.Email)
}

// SecondaryEmailRule checks the secondary contact email.
func SecondaryEmailRule() validation.Rule[*validation.DefendantContext] {
	return formatRule(validation.CodeInvalidSecondaryEmailAddress, func(dc *validation.DefendantContext) string {
		if c := dc.Defendant.Contact(); c != nil {
			return c.SecondaryEmail
		}
		return ""
	}, formats.Email)
}
