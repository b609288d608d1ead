// Package defendant holds the rules run once per defendant of a submission.
package defendant

import (
	"context"
	"strings"

	"precheck/internal/validation"
	"precheck/internal/validation/models"
	"precheck/internal/validation/ports"
)

// DetailsRequiredRule requires either personal or organisation details.
type DetailsRequiredRule struct{}

func (DetailsRequiredRule) Validate(_ context.Context, dc *validation.DefendantContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	if dc.Defendant.Individual != nil || dc.Defendant.Organisation != nil {
		return validation.Pass(), nil
	}
	return validation.Fail(validation.NewProblem(validation.CodeDefendantDetailsRequired, dc.Defendant.ID.String())), nil
}

// ConvictingCourtCodeRule requires a convicting court code on every offence
// pleaded GUILTY or INDICATED_GUILTY, whatever the channel.
type ConvictingCourtCodeRule struct{}

func (ConvictingCourtCodeRule) Validate(_ context.Context, dc *validation.DefendantContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	var problems []validation.Problem
	for _, o := range dc.Defendant.Offences {
		if !guiltyPlea(o.Plea) || strings.TrimSpace(o.ConvictingCourtCode) != "" {
			continue
		}
		problems = append(problems, offenceProblem(validation.CodeConvictingCourtCodeRequired, "", o))
	}
	return validation.Fail(problems...), nil
}

func guiltyPlea(p *models.Plea) bool {
	if p == nil {
		return false
	}
	switch strings.ToUpper(strings.TrimSpace(p.Value)) {
	case models.PleaGuilty, models.PleaIndicatedGuilty:
		return true
	}
	return false
}
