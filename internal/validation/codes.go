package validation

// ProblemCode names a distinct validation failure.
type ProblemCode string

// Problem codes by level.
const (
	// Defendant level.
	CodeDefendantDOBInFuture          ProblemCode = "DEFENDANT_DOB_IN_FUTURE"
	CodeDefendantDetailsRequired      ProblemCode = "DEFENDANT_DETAILS_REQUIRED"
	CodeInvalidNationality            ProblemCode = "INVALID_NATIONALITY"
	CodeInvalidAdditionalNationality  ProblemCode = "INVALID_ADDITIONAL_NATIONALITY"
	CodeInvalidObservedEthnicity      ProblemCode = "INVALID_OBSERVED_ETHNICITY"
	CodeInvalidSelfDefinedEthnicity   ProblemCode = "INVALID_SELF_DEFINED_ETHNICITY"
	CodeInvalidBailStatus             ProblemCode = "INVALID_BAIL_STATUS"
	CodeInvalidOffenderCode           ProblemCode = "INVALID_OFFENDER_CODE"
	CodeInvalidHearingType            ProblemCode = "INVALID_HEARING_TYPE"
	CodeCourtHearingLocationInvalid   ProblemCode = "COURT_HEARING_LOCATION_OUCODE_INVALID"
	CodeCourtroomInvalid              ProblemCode = "COURT_HEARING_COURTROOM_INVALID"
	CodeInvalidDefendantPostcode      ProblemCode = "INVALID_DEFENDANT_POST_CODE"
	CodeInvalidParentGuardianPostcode ProblemCode = "INVALID_PARENT_GUARDIAN_POST_CODE"
	CodeInvalidPNCID                  ProblemCode = "INVALID_PNC_ID"
	CodeInvalidCRONumber              ProblemCode = "INVALID_CRO_NUMBER"
	CodeInvalidEmailAddress           ProblemCode = "INVALID_EMAIL_ADDRESS"
	CodeInvalidSecondaryEmailAddress  ProblemCode = "INVALID_SECONDARY_EMAIL_ADDRESS"

	// Offence level.
	CodeInvalidChargeDate                ProblemCode = "INVALID_CHARGE_DATE"
	CodeOffenceCommittedDateInFuture     ProblemCode = "OFFENCE_COMMITTED_DATE_IN_FUTURE"
	CodeOffenceEndDateBeforeStartDate    ProblemCode = "OFFENCE_COMMITTED_END_DATE_BEFORE_START_DATE"
	CodeDateOfHearingBeforeCommittedDate ProblemCode = "DATE_OF_HEARING_EARLIER_THAN_OFFENCE_COMMITTED_DATE"
	CodeConvictingCourtCodeRequired      ProblemCode = "CONVICTING_COURT_CODE_REQUIRED"
	CodeVerdictDateInFuture              ProblemCode = "VERDICT_DATE_IN_FUTURE"
	CodeConvictionDateInFuture           ProblemCode = "CONVICTION_DATE_IN_FUTURE"

	// Case level.
	CodeInvalidInitiationCode         ProblemCode = "INVALID_INITIATION_CODE"
	CodeProsecutorOUCodeNotRecognised ProblemCode = "PROSECUTOR_OUCODE_NOT_RECOGNISED"
	CodeProsecutorIDNotRecognised     ProblemCode = "PROSECUTOR_ID_NOT_RECOGNISED"

	// Document level.
	CodeInvalidFileType                ProblemCode = "INVALID_FILE_TYPE"
	CodeInvalidDocumentType            ProblemCode = "INVALID_DOCUMENT_TYPE"
	CodeDefendantIDRequired            ProblemCode = "DEFENDANT_ID_REQUIRED"
	CodeDefendantOnCP                  ProblemCode = "DEFENDANT_ON_CP"
	CodeDuplicateDefendant             ProblemCode = "DUPLICATE_DEFENDANT"
	CodeCourtApplicationRequired       ProblemCode = "COURT_APPLICATION_REQUIRED"
	CodeProsecutionCaseSubjectRequired ProblemCode = "PROSECUTION_CASE_SUBJECT_REQUIRED"
)

// Field keys. A key may be shared by several codes.
const (
	FieldDefendantDateOfBirth           FieldName = "defendant_date_of_birth"
	FieldDefendantID                    FieldName = "defendant_id"
	FieldChargeDate                     FieldName = "charge_date"
	FieldOffenceCommittedDate           FieldName = "offence_committed_date"
	FieldOffenceCommittedEndDate        FieldName = "offence_committed_end_date"
	FieldDateOfHearing                  FieldName = "date_of_hearing"
	FieldConvictingCourtCode            FieldName = "convicting_court_code"
	FieldVerdictDate                    FieldName = "verdict_date"
	FieldConvictionDate                 FieldName = "conviction_date"
	FieldDefendantNationality           FieldName = "defendant_nationality"
	FieldDefendantAdditionalNationality FieldName = "defendant_additional_nationality"
	FieldObservedEthnicity              FieldName = "observed_ethnicity"
	FieldSelfDefinedEthnicity           FieldName = "self_defined_ethnicity"
	FieldBailStatus                     FieldName = "bail_status"
	FieldOffenderCode                   FieldName = "offender_code"
	FieldHearingType                    FieldName = "hearing_type"
	FieldCourtHearingLocation           FieldName = "court_hearing_location"
	FieldCourtroom                      FieldName = "courtroom"
	FieldAddressPostcode                FieldName = "address_postcode"
	FieldParentGuardianPostcode         FieldName = "parent_guardian_postcode"
	FieldPNCID                          FieldName = "pnc_id"
	FieldCRONumber                      FieldName = "cro_number"
	FieldPrimaryEmail                   FieldName = "primary_email"
	FieldSecondaryEmail                 FieldName = "secondary_email"
	FieldInitiationCode                 FieldName = "initiation_code"
	FieldProsecutorOUCode               FieldName = "prosecutor_ou_code"
	FieldProsecutorID                   FieldName = "prosecutor_id"
	FieldMaterialContentType            FieldName = "materialContentType"
	FieldDocumentType                   FieldName = "document_type"
	FieldDefendant                      FieldName = "defendant"
	FieldCourtApplicationID             FieldName = "court_application_id"
	FieldProsecutionCaseSubject         FieldName = "prosecution_case_subject"

	// Context keys, never a code's canonical field.
	FieldOffenceID       FieldName = "offence_id"
	FieldCaseDefendantID FieldName = "case_defendant_id"
)

var codeFields = map[ProblemCode]FieldName{
	CodeDefendantDOBInFuture:          FieldDefendantDateOfBirth,
	CodeDefendantDetailsRequired:      FieldDefendantID,
	CodeInvalidNationality:            FieldDefendantNationality,
	CodeInvalidAdditionalNationality:  FieldDefendantAdditionalNationality,
	CodeInvalidObservedEthnicity:      FieldObservedEthnicity,
	CodeInvalidSelfDefinedEthnicity:   FieldSelfDefinedEthnicity,
	CodeInvalidBailStatus:             FieldBailStatus,
	CodeInvalidOffenderCode:           FieldOffenderCode,
	CodeInvalidHearingType:            FieldHearingType,
	CodeCourtHearingLocationInvalid:   FieldCourtHearingLocation,
	CodeCourtroomInvalid:              FieldCourtroom,
	CodeInvalidDefendantPostcode:      FieldAddressPostcode,
	CodeInvalidParentGuardianPostcode: FieldParentGuardianPostcode,
	CodeInvalidPNCID:                  FieldPNCID,
	CodeInvalidCRONumber:              FieldCRONumber,
	CodeInvalidEmailAddress:           FieldPrimaryEmail,
	CodeInvalidSecondaryEmailAddress:  FieldSecondaryEmail,

	CodeInvalidChargeDate:                FieldChargeDate,
	CodeOffenceCommittedDateInFuture:     FieldOffenceCommittedDate,
	CodeOffenceEndDateBeforeStartDate:    FieldOffenceCommittedEndDate,
	CodeDateOfHearingBeforeCommittedDate: FieldDateOfHearing,
	CodeConvictingCourtCodeRequired:      FieldConvictingCourtCode,
	CodeVerdictDateInFuture:              FieldVerdictDate,
	CodeConvictionDateInFuture:           FieldConvictionDate,

	CodeInvalidInitiationCode:         FieldInitiationCode,
	CodeProsecutorOUCodeNotRecognised: FieldProsecutorOUCode,
	CodeProsecutorIDNotRecognised:     FieldProsecutorID,

	CodeInvalidFileType:                FieldMaterialContentType,
	CodeInvalidDocumentType:            FieldDocumentType,
	CodeDefendantIDRequired:            FieldDefendantID,
	CodeDefendantOnCP:                  FieldDefendant,
	CodeDuplicateDefendant:             FieldDefendant,
	CodeCourtApplicationRequired:       FieldCourtApplicationID,
	CodeProsecutionCaseSubjectRequired: FieldProsecutionCaseSubject,
}

// Field returns the canonical field key paired with the code.
func (c ProblemCode) Field() FieldName {
	return codeFields[c]
}

// Known reports whether c is a member of the closed code set.
func (c ProblemCode) Known() bool {
	_, ok := codeFields[c]
	return ok
}
