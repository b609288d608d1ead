package defendant

import (
	"context"
	"strings"

	"precheck/internal/validation"
	"precheck/internal/validation/ports"
)

// HearingTypeRule accepts a hearing type code or reference id.
type HearingTypeRule struct{}

func (HearingTypeRule) Validate(ctx context.Context, dc *validation.DefendantContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	if dc.Flags.MCCWithListNewHearing || dc.Defendant.InitialHearing == nil {
		return validation.Pass(), nil
	}
	raw := strings.TrimSpace(dc.Defendant.InitialHearing.HearingTypeCode)
	if raw == "" {
		return validation.Pass(), nil
	}
	entries, err := dc.ReferenceData().HearingTypes(ctx, gw)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	found := match(entries, raw, hearingTypeCodes)
	if found == nil {
		return validation.Fail(validation.NewProblem(validation.CodeInvalidHearingType, raw)), nil
	}
	dc.ReferenceData().Resolved.HearingType = found
	return validation.Pass(), nil
}

// CourtHearingLocationRule requires the hearing OU code to name a known court
// centre. Inactive migrated cases keep whatever location they were migrated with.
type CourtHearingLocationRule struct{}

func (CourtHearingLocationRule) Validate(ctx context.Context, dc *validation.DefendantContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	if dc.Flags.MCCWithListNewHearing || dc.Flags.InactiveMigratedCase || dc.Defendant.InitialHearing == nil {
		return validation.Pass(), nil
	}
	raw := strings.TrimSpace(dc.Defendant.InitialHearing.CourtHearingLocation)
	if raw == "" {
		return validation.Pass(), nil
	}
	centre, err := dc.ReferenceData().CourtCentre(ctx, gw, raw)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	if centre == nil {
		return validation.Fail(validation.NewProblem(validation.CodeCourtHearingLocationInvalid, raw)), nil
	}
	dc.ReferenceData().Resolved.CourtCentre = centre
	return validation.Pass(), nil
}

// CourtroomRule requires the courtroom to belong to the hearing's court
// centre, by name or id. An unknown centre is left to CourtHearingLocationRule.
type CourtroomRule struct{}

func (CourtroomRule) Validate(ctx context.Context, dc *validation.DefendantContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	hearing := dc.Defendant.InitialHearing
	if dc.Flags.MCCWithListNewHearing || hearing == nil {
		return validation.Pass(), nil
	}
	room := strings.TrimSpace(hearing.Courtroom)
	location := strings.TrimSpace(hearing.CourtHearingLocation)
	if room == "" || location == "" {
		return validation.Pass(), nil
	}
	centre, err := dc.ReferenceData().CourtCentre(ctx, gw, location)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	if centre == nil {
		return validation.Pass(), nil
	}
	for i := range centre.Courtrooms {
		c := centre.Courtrooms[i]
		if strings.EqualFold(c.Name, room) || c.ID == room {
			dc.ReferenceData().Resolved.Courtroom = &c
			return validation.Pass(), nil
		}
	}
	return validation.Fail(validation.NewProblem(validation.CodeCourtroomInvalid, room)), nil
}

// OffenceLocationRule gives every offence without a location the name of the
// hearing's court centre. It never fails.
type OffenceLocationRule struct{}

func (OffenceLocationRule) Validate(ctx context.Context, dc *validation.DefendantContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	hearing := dc.Defendant.InitialHearing
	if dc.Flags.MCCWithListNewHearing || hearing == nil {
		return validation.Pass(), nil
	}
	ou := strings.TrimSpace(hearing.CourtHearingLocation)
	if ou == "" {
		return validation.Pass(), nil
	}

	var missing bool
	for _, o := range dc.Defendant.Offences {
		if strings.TrimSpace(o.Location) == "" {
			missing = true
			break
		}
	}
	if !missing {
		return validation.Pass(), nil
	}

	name, err := courtName(ctx, dc, gw, ou)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	if name == "" {
		return validation.Pass(), nil
	}
	resolved := &dc.ReferenceData().Resolved
	for _, o := range dc.Defendant.Offences {
		if strings.TrimSpace(o.Location) == "" {
			resolved.SetOffenceLocation(o.ID, name)
		}
	}
	return validation.Pass(), nil
}

func courtName(ctx context.Context, dc *validation.DefendantContext, gw ports.ReferenceDataGateway, ou string) (string, error) {
	if centre := dc.ReferenceData().Resolved.CourtCentre; centre != nil && strings.EqualFold(centre.OUCode, ou) {
		return centre.Name, nil
	}
	units, err := dc.ReferenceData().OrganisationUnits(ctx, gw, ou)
	if err != nil {
		return "", err
	}
	if len(units) == 0 {
		return "", nil
	}
	return units[0].Name, nil
}
