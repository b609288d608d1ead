// Package chains selects the ordered rule list a subject runs through.
package chains

import (
	"fmt"
	"strings"

	"precheck/internal/validation"
	"precheck/internal/validation/models"
	"precheck/internal/validation/rules/defendant"
	"precheck/internal/validation/rules/document"
	"precheck/internal/validation/rules/prosecution"
	dErrors "precheck/pkg/domain-errors"
)

// MatchPolicy picks the defendant matching variant for document submissions.
type MatchPolicy string

const (
	MatchBase    MatchPolicy = "base"
	MatchV2      MatchPolicy = "v2"
	MatchPending MatchPolicy = "pending"
)

// ParseMatchPolicy parses a policy name. Empty input selects MatchV2.
func ParseMatchPolicy(s string) (MatchPolicy, error) {
	switch p := MatchPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return MatchV2, nil
	case MatchBase, MatchV2, MatchPending:
		return p, nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("unknown match policy %q", s))
	}
}

type (
	caseRule      = validation.NamedRule[*validation.CaseContext]
	defendantRule = validation.NamedRule[*validation.DefendantContext]
	documentRule  = validation.NamedRule[*validation.CaseDocumentContext]
)

// Case returns the rules run once per case.
func Case() *validation.Chain[*validation.CaseContext] {
	return validation.NewChain(
		caseRule{Name: "initiation_code", Rule: prosecution.InitiationCodeRule{}},
		caseRule{Name: "prosecutor", Rule: prosecution.ProsecutorRule{}},
	)
}

func personRules() []defendantRule {
	return []defendantRule{
		{Name: "defendant_details", Rule: defendant.DetailsRequiredRule{}},
		{Name: "date_of_birth", Rule: defendant.DateOfBirthRule{}},
		{Name: "nationality", Rule: defendant.NationalityRule{}},
		{Name: "additional_nationality", Rule: defendant.AdditionalNationalityRule{}},
		{Name: "observed_ethnicity", Rule: defendant.ObservedEthnicityRule{}},
		{Name: "self_defined_ethnicity", Rule: defendant.SelfDefinedEthnicityRule{}},
		{Name: "defendant_postcode", Rule: defendant.DefendantPostcodeRule()},
		{Name: "parent_guardian_postcode", Rule: defendant.ParentGuardianPostcodeRule()},
		{Name: "pnc_id", Rule: defendant.PNCIDRule()},
		{Name: "cro_number", Rule: defendant.CRONumberRule()},
		{Name: "primary_email", Rule: defendant.PrimaryEmailRule()},
		{Name: "secondary_email", Rule: defendant.SecondaryEmailRule()},
		{Name: "offender_code", Rule: defendant.OffenderCodeRule{}},
	}
}

func offenceRules() []defendantRule {
	return []defendantRule{
		{Name: "offence_committed_date", Rule: defendant.OffenceCommittedDateRule{}},
		{Name: "offence_end_date", Rule: defendant.OffenceEndDateRule{}},
		{Name: "convicting_court_code", Rule: defendant.ConvictingCourtCodeRule{}},
		{Name: "verdict_date", Rule: defendant.VerdictDateRule{}},
		{Name: "conviction_date", Rule: defendant.ConvictionDateRule{}},
	}
}

// hearingRules resolve the court centre before the courtroom and offence
// location rules read it.
func hearingRules() []defendantRule {
	return []defendantRule{
		{Name: "date_of_hearing", Rule: defendant.DateOfHearingRule{}},
		{Name: "hearing_type", Rule: defendant.HearingTypeRule{}},
		{Name: "court_hearing_location", Rule: defendant.CourtHearingLocationRule{}},
		{Name: "courtroom", Rule: defendant.CourtroomRule{}},
		{Name: "offence_location", Rule: defendant.OffenceLocationRule{}},
	}
}

func chargeRules() []defendantRule {
	return []defendantRule{
		{Name: "charge_date", Rule: defendant.ChargeDateRule{}},
		{Name: "bail_status", Rule: defendant.BailStatusRule{}},
	}
}

// Defendant returns the per-defendant chain for a case initiation code.
// Charge cases add the charge date and bail checks; applications carry no
// offence hearing, so the hearing rules are left out. Any other code gets
// the common set.
func Defendant(initiationCode string) *validation.Chain[*validation.DefendantContext] {
	rules := append(personRules(), offenceRules()...)
	switch initiationCode {
	case models.InitiationCharge:
		rules = append(rules, chargeRules()...)
		rules = append(rules, hearingRules()...)
	case models.InitiationApplication:
	default:
		rules = append(rules, hearingRules()...)
	}
	return validation.NewChain(rules...)
}

// Document returns the document chain. Document type resolution runs first
// because it may move the document to the Applications category.
func Document(policy MatchPolicy) *validation.Chain[*validation.CaseDocumentContext] {
	return validation.NewChain(
		documentRule{Name: "document_type", Rule: document.DocumentTypeRule{}},
		documentRule{Name: "file_type", Rule: document.FileTypeRule{}},
		documentRule{Name: "court_application_required", Rule: document.CourtApplicationRequiredRule{}},
		documentRule{Name: "prosecution_case_subject_required", Rule: document.ProsecutionCaseSubjectRequiredRule{}},
		matchRule(policy),
	)
}

func matchRule(policy MatchPolicy) documentRule {
	switch policy {
	case MatchBase:
		return documentRule{Name: "defendant_match", Rule: document.DefendantMatchRule{}}
	case MatchPending:
		return documentRule{Name: "pending_defendant_match_v2", Rule: document.PendingDefendantMatchRuleV2{}}
	default:
		return documentRule{Name: "defendant_match_v2", Rule: document.DefendantMatchRuleV2{}}
	}
}
