// Package prosecution holds the case-level rules, run once per case before
// any defendant pass.
package prosecution

import (
	"context"
	"strings"

	"precheck/internal/validation"
	"precheck/internal/validation/models"
	"precheck/internal/validation/ports"
)

var initiationCodes = map[string]struct{}{
	models.InitiationCharge:        {},
	models.InitiationSummons:       {},
	models.InitiationRequisition:   {},
	models.InitiationSingleJustice: {},
	models.InitiationApplication:   {},
	models.InitiationOther:         {},
}

// ValidInitiationCode reports whether code is a recognised initiation code.
// Codes are case sensitive.
func ValidInitiationCode(code string) bool {
	_, ok := initiationCodes[code]
	return ok
}

type InitiationCodeRule struct{}

func (InitiationCodeRule) Validate(_ context.Context, cc *validation.CaseContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(cc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	code := cc.CaseDetails.InitiationCode
	if ValidInitiationCode(code) {
		return validation.Pass(), nil
	}
	return validation.Fail(validation.NewProblem(validation.CodeInvalidInitiationCode, code)), nil
}

// ProsecutorRule resolves the prosecuting authority. An explicit prosecutor
// id takes precedence over the OU code.
type ProsecutorRule struct{}

func (ProsecutorRule) Validate(ctx context.Context, cc *validation.CaseContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(cc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	cache := cc.ReferenceData()

	if pid := cc.CaseDetails.ProsecutorID; pid != nil && !pid.IsNil() {
		p, err := cache.ProsecutorByID(ctx, gw, *pid)
		if err != nil {
			return validation.ValidationResult{}, err
		}
		if p == nil {
			return validation.Fail(validation.NewProblem(validation.CodeProsecutorIDNotRecognised, pid.String())), nil
		}
		cache.Resolved.Prosecutor = p
		return validation.Pass(), nil
	}

	ou := strings.TrimSpace(cc.CaseDetails.ProsecutorOUCode)
	if ou == "" {
		return validation.Fail(validation.NewProblem(validation.CodeProsecutorOUCodeNotRecognised, "")), nil
	}
	p, err := cache.ProsecutorByOUCode(ctx, gw, ou)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	if p == nil {
		return validation.Fail(validation.NewProblem(validation.CodeProsecutorOUCodeNotRecognised, ou)), nil
	}
	cache.Resolved.Prosecutor = p
	return validation.Pass(), nil
}
