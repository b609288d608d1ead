// Package models holds the already-fetched domain data a validation pass
// inspects. Values are plain structs built with named-field literals; rules
// never mutate them.
package models

import (
	id "precheck/pkg/domain"
)

// Initiation codes as submitted on the case.
const (
	InitiationCharge        = "C"
	InitiationSummons       = "S"
	InitiationRequisition   = "Q"
	InitiationSingleJustice = "J"
	InitiationApplication   = "A"
	InitiationOther         = "O"
)

// Plea values that make a convicting court code mandatory.
const (
	PleaGuilty          = "GUILTY"
	PleaIndicatedGuilty = "INDICATED_GUILTY"
	PleaNotGuilty       = "NOT_GUILTY"
)

// Channels a submission can arrive through.
const (
	ChannelSPI  = "SPI"
	ChannelCPPI = "CPPI"
	ChannelMCC  = "MCC"
)

// CaseDetails is the case-level metadata shared by every defendant on a case.
type CaseDetails struct {
	CaseID           id.CaseID
	URN              string
	InitiationCode   string
	ProsecutorOUCode string
	ProsecutorID     *id.ProsecutorID
	Channel          string
	MigrationSource  string
}

// Defendant is a defendant as submitted, or as already known on the case.
type Defendant struct {
	ID                           id.DefendantID
	ProsecutorDefendantReference string
	CPSDefendantID               string
	ASN                          string
	PNCID                        string
	CRONumber                    string
	BailStatus                   string
	OffenderCode                 string
	Individual                   *Individual
	Organisation                 *Organisation
	Offences                     []Offence
	InitialHearing               *InitialHearing
}

// Individual carries personal details for a person defendant.
type Individual struct {
	Forename              string
	MiddleName            string
	Surname               string
	DateOfBirth           string
	Nationality           string
	AdditionalNationality string
	ObservedEthnicity     string
	SelfDefinedEthnicity  string
	Address               *Address
	Contact               *Contact
	ParentGuardian        *ParentGuardian
}

// Organisation carries details for a corporate defendant.
type Organisation struct {
	Name    string
	Address *Address
	Contact *Contact
}

// Address is a postal address; only the postcode is validated.
type Address struct {
	Address1 string
	Address2 string
	Address3 string
	Postcode string
}

// Contact holds contact channels.
type Contact struct {
	PrimaryEmail   string
	SecondaryEmail string
	Home           string
	Mobile         string
}

// ParentGuardian is recorded for youth defendants.
type ParentGuardian struct {
	Forename string
	Surname  string
	Address  *Address
}

// Offence is a single charge on a defendant.
type Offence struct {
	ID                  id.OffenceID
	OffenceCode         string
	Sequence            int
	CommittedDate       string
	CommittedEndDate    string
	ChargeDate          string
	Location            string
	ConvictingCourtCode string
	ConvictionDate      string
	Plea                *Plea
	Verdict             *Verdict
}

// Plea is the defendant's plea on an offence.
type Plea struct {
	Value    string
	PleaDate string
}

// Verdict is a recorded verdict on an offence.
type Verdict struct {
	Type        string
	VerdictDate string
}

// InitialHearing is the first listing requested for the defendant.
type InitialHearing struct {
	DateOfHearing        string
	CourtHearingLocation string
	Courtroom            string
	HearingTypeCode      string
}

// HasIndividual reports whether personal details are attached.
func (d Defendant) HasIndividual() bool {
	return d.Individual != nil
}

// Address returns the defendant's postal address, whichever kind of defendant it is.
func (d Defendant) Address() *Address {
	switch {
	case d.Individual != nil:
		return d.Individual.Address
	case d.Organisation != nil:
		return d.Organisation.Address
	}
	return nil
}

// Contact returns the defendant's contact details, whichever kind of defendant it is.
func (d Defendant) Contact() *Contact {
	switch {
	case d.Individual != nil:
		return d.Individual.Contact
	case d.Organisation != nil:
		return d.Organisation.Contact
	}
	return nil
}
