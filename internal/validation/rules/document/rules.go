// Package document holds the rules run against a submitted document and its material.
package document

import (
	"context"
	"strings"
	"time"

	"precheck/internal/validation"
	"precheck/internal/validation/ports"
	"precheck/internal/validation/rules/formats"
)

// DocumentTypeRule resolves the submitted document type against the access
// catalogue, by name or id, among entries valid today. An application type on
// a document that carries an application moves the document to the
// Applications category; otherwise an empty category is filled from the entry.
type DocumentTypeRule struct{}

func (DocumentTypeRule) Validate(ctx context.Context, dc *validation.CaseDocumentContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	raw := strings.TrimSpace(dc.DocumentType)
	if raw == "" {
		return validation.Fail(validation.NewProblem(validation.CodeInvalidDocumentType, raw)), nil
	}
	entries, err := dc.ReferenceData().DocumentTypeAccess(ctx, gw)
	if err != nil {
		return validation.ValidationResult{}, err
	}

	today := validation.Today(ctx)
	var found *ports.DocumentTypeAccess
	for i := range entries {
		e := entries[i]
		if !activeOn(e, today) {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(e.DocumentType), raw) || e.ID == raw {
			found = &e
			break
		}
	}
	if found == nil {
		return validation.Fail(validation.NewProblem(validation.CodeInvalidDocumentType, raw)), nil
	}

	switch {
	case found.ApplicationType && dc.HasApplication:
		found.DocumentCategory = validation.CategoryApplications
		dc.DocumentCategory = validation.CategoryApplications
	case strings.TrimSpace(dc.DocumentCategory) == "":
		dc.DocumentCategory = found.DocumentCategory
	}
	dc.ResolvedDocumentType = found
	return validation.Pass(), nil
}

// activeOn reports whether the entry's validity window covers day. Missing
// bounds are open.
func activeOn(e ports.DocumentTypeAccess, day time.Time) bool {
	if from, ok := validation.ParseDate(e.ValidFrom); ok && day.Before(from) {
		return false
	}
	if to, ok := validation.ParseDate(e.ValidTo); ok && day.After(to) {
		return false
	}
	return true
}

// FileTypeRule checks the material content type against the upload allow-list.
type FileTypeRule struct{}

func (FileTypeRule) Validate(_ context.Context, dc *validation.CaseDocumentContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	raw := strings.TrimSpace(dc.MaterialContentType)
	if raw == "" || formats.MaterialType(raw) {
		return validation.Pass(), nil
	}
	return validation.Fail(validation.NewProblem(validation.CodeInvalidFileType, raw)), nil
}

// CourtApplicationRequiredRule requires an Applications document to name the
// court application it belongs to.
type CourtApplicationRequiredRule struct{}

func (CourtApplicationRequiredRule) Validate(_ context.Context, dc *validation.CaseDocumentContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	if !dc.InCategory(validation.CategoryApplications) || strings.TrimSpace(dc.CourtApplicationSubject) != "" {
		return validation.Pass(), nil
	}
	return validation.Fail(validation.NewProblem(validation.CodeCourtApplicationRequired, "")), nil
}

// ProsecutionCaseSubjectRequiredRule requires a Case level document to name its case.
type ProsecutionCaseSubjectRequiredRule struct{}

func (ProsecutionCaseSubjectRequiredRule) Validate(_ context.Context, dc *validation.CaseDocumentContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	if !dc.InCategory(validation.CategoryCaseLevel) || strings.TrimSpace(dc.ProsecutionCaseSubject) != "" {
		return validation.Pass(), nil
	}
	return validation.Fail(validation.NewProblem(validation.CodeProsecutionCaseSubjectRequired, "")), nil
}

// defendantSubjects returns the subjects to match, or ok=false when the rule
// does not apply to the document.
func defendantSubjects(dc *validation.CaseDocumentContext) (subjects []validation.DefendantSubject, ok bool) {
	if !dc.InCategory(validation.CategoryDefendantLevel) {
		return nil, false
	}
	return dc.Subjects(), true
}

func idRequired(value string) validation.Problem {
	return validation.NewProblem(validation.CodeDefendantIDRequired, value)
}

// DefendantMatchRule is the lenient matcher: a subject that matches no case
// defendant is accepted, and duplicates resolve to the first case defendant.
type DefendantMatchRule struct{}

func (DefendantMatchRule) Validate(_ context.Context, dc *validation.CaseDocumentContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	subjects, ok := defendantSubjects(dc)
	if !ok {
		return validation.Pass(), nil
	}
	if len(subjects) == 0 {
		return validation.Fail(idRequired("")), nil
	}

	var problems []validation.Problem
	for _, subject := range subjects {
		r := resolve(dc, subject)
		switch {
		case r.missing:
			problems = append(problems, idRequired(""))
		case r.recorded, len(r.matches) == 0:
		default:
			dc.RecordDefendant(r.key, r.matches[0].ID)
		}
	}
	return validation.Fail(problems...), nil
}

// DefendantMatchRuleV2 rejects subjects that match no case defendant, and
// reports one DUPLICATE_DEFENDANT when a subject matches several.
type DefendantMatchRuleV2 struct{}

func (DefendantMatchRuleV2) Validate(_ context.Context, dc *validation.CaseDocumentContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	subjects, ok := defendantSubjects(dc)
	if !ok {
		return validation.Pass(), nil
	}
	if len(subjects) == 0 {
		return validation.Fail(idRequired("")), nil
	}

	var problems []validation.Problem
	for _, subject := range subjects {
		r := resolve(dc, subject)
		switch {
		case r.missing:
			problems = append(problems, idRequired(""))
		case r.recorded:
		case len(r.matches) == 0:
			problems = append(problems, idRequired(r.key))
		case len(r.matches) > 1:
			problems = append(problems, validation.NewProblem(validation.CodeDuplicateDefendant, r.key))
		default:
			dc.RecordDefendant(r.key, r.matches[0].ID)
		}
	}
	return validation.Fail(problems...), nil
}

// PendingDefendantMatchRuleV2 is used for submissions against cases still
// pending on Common Platform. An unmatched subject is reported as
// DEFENDANT_ON_CP, and every duplicated case defendant is reported separately.
type PendingDefendantMatchRuleV2 struct{}

func (PendingDefendantMatchRuleV2) Validate(_ context.Context, dc *validation.CaseDocumentContext, gw ports.ReferenceDataGateway) (validation.ValidationResult, error) {
	if err := validation.Require(dc, gw); err != nil {
		return validation.ValidationResult{}, err
	}
	subjects, ok := defendantSubjects(dc)
	if !ok {
		return validation.Pass(), nil
	}
	if len(subjects) == 0 {
		return validation.Fail(idRequired("")), nil
	}

	var problems []validation.Problem
	for _, subject := range subjects {
		r := resolve(dc, subject)
		switch {
		case r.missing:
			problems = append(problems, idRequired(""))
		case r.recorded:
		case len(r.matches) == 0:
			problems = append(problems, validation.NewProblem(validation.CodeDefendantOnCP, r.key))
		case len(r.matches) > 1:
			for _, d := range r.matches {
				problems = append(problems, validation.NewProblem(validation.CodeDuplicateDefendant, r.key).
					With(validation.FieldCaseDefendantID, d.ID.String()))
			}
		default:
			dc.RecordDefendant(r.key, r.matches[0].ID)
		}
	}
	return validation.Fail(problems...), nil
}
