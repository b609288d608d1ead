package validation

import (
	"precheck/internal/validation/models"
)

// Flags carry the situational switches a defendant pass runs under.
type Flags struct {
	// MCC marks a magistrates' court case submitted through the MCC channel.
	MCC bool
	// MCCWithListNewHearing defers hearing checks to the listing stage;
	// InitialHearing may be absent.
	MCCWithListNewHearing bool
	// InactiveMigratedCase relaxes charge and court location checks.
	InactiveMigratedCase bool
}

// DefendantContext is the subject of a defendant pass. It is created per
// defendant per pass and never shared between passes.
type DefendantContext struct {
	Defendant       models.Defendant
	CaseDetails     models.CaseDetails
	Cache           *ReferenceDataCache
	Flags           Flags
	Channel         string
	MigrationSource string
}

// NewDefendantContext builds a context with a fresh cache. Channel and
// migration source are taken from the case.
func NewDefendantContext(defendant models.Defendant, caseDetails models.CaseDetails, flags Flags) *DefendantContext {
	return &DefendantContext{
		Defendant:       defendant,
		CaseDetails:     caseDetails,
		Cache:           NewReferenceDataCache(),
		Flags:           flags,
		Channel:         caseDetails.Channel,
		MigrationSource: caseDetails.MigrationSource,
	}
}

func (c *DefendantContext) Kind() SubjectKind { return KindDefendant }

func (c *DefendantContext) present() bool { return c != nil }

// ReferenceData returns the pass cache, creating it on first use.
func (c *DefendantContext) ReferenceData() *ReferenceDataCache {
	if c.Cache == nil {
		c.Cache = NewReferenceDataCache()
	}
	return c.Cache
}

// IsChargeFlow reports whether the case was initiated by charge.
func (c *DefendantContext) IsChargeFlow() bool {
	return c.CaseDetails.InitiationCode == models.InitiationCharge
}

// CaseContext is the subject of the case-level rules, which run once per case.
type CaseContext struct {
	CaseDetails models.CaseDetails
	Cache       *ReferenceDataCache
}

// NewCaseContext builds a case context with a fresh cache.
func NewCaseContext(caseDetails models.CaseDetails) *CaseContext {
	return &CaseContext{CaseDetails: caseDetails, Cache: NewReferenceDataCache()}
}

func (c *CaseContext) Kind() SubjectKind { return KindCase }

func (c *CaseContext) present() bool { return c != nil }

// ReferenceData returns the pass cache, creating it on first use.
func (c *CaseContext) ReferenceData() *ReferenceDataCache {
	if c.Cache == nil {
		c.Cache = NewReferenceDataCache()
	}
	return c.Cache
}
