package validation

import (
	"context"
	"fmt"

	"precheck/internal/validation/ports"
	id "precheck/pkg/domain"
)

// ReferenceDataCache holds reference data fetched during one validation pass.
// Each category (and each key of a keyed category) is fetched from the
// gateway at most once; later rules read the stored value. Failed fetches are
// not stored. The cache is owned by a single pass and is not safe for
// concurrent use.
type ReferenceDataCache struct {
	nationalities slot[[]ports.CountryNationality]
	bailStatuses  slot[[]ports.BailStatus]
	observed      slot[[]ports.Ethnicity]
	selfDefined   slot[[]ports.Ethnicity]
	offenderCodes slot[[]ports.OffenderCode]
	hearingTypes  slot[[]ports.HearingType]
	documentTypes slot[[]ports.DocumentTypeAccess]

	organisationUnits map[string][]ports.OrganisationUnit
	courtCentres      map[string]*ports.CourtCentre
	prosecutorsByOU   map[string]*ports.Prosecutor
	prosecutorsByID   map[id.ProsecutorID]*ports.Prosecutor

	// Resolved holds the full reference entries enrichment rules matched.
	Resolved Resolved
}

// Resolved is the enrichment written back by rules once a submitted code matched.
type Resolved struct {
	Nationality           *ports.CountryNationality
	AdditionalNationality *ports.CountryNationality
	ObservedEthnicity     *ports.Ethnicity
	SelfDefinedEthnicity  *ports.Ethnicity
	BailStatus            *ports.BailStatus
	OffenderCode          *ports.OffenderCode
	HearingType           *ports.HearingType
	CourtCentre           *ports.CourtCentre
	Courtroom             *ports.Courtroom
	Prosecutor            *ports.Prosecutor
	OffenceLocations      map[id.OffenceID]string
}

// SetOffenceLocation records the default location given to an offence.
func (r *Resolved) SetOffenceLocation(offenceID id.OffenceID, location string) {
	if r.OffenceLocations == nil {
		r.OffenceLocations = make(map[id.OffenceID]string)
	}
	r.OffenceLocations[offenceID] = location
}

// NewReferenceDataCache returns an empty cache for one pass.
func NewReferenceDataCache() *ReferenceDataCache {
	return &ReferenceDataCache{}
}

type slot[T any] struct {
	value  T
	loaded bool
}

func (s *slot[T]) get(ctx context.Context, category string, fetch func(context.Context) (T, error)) (T, error) {
	if s.loaded {
		return s.value, nil
	}
	v, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("fetch %s: %w", category, err)
	}
	s.value = v
	s.loaded = true
	return v, nil
}

func keyed[K comparable, V any](ctx context.Context, m *map[K]V, key K, category string, fetch func(context.Context, K) (V, error)) (V, error) {
	if v, ok := (*m)[key]; ok {
		return v, nil
	}
	v, err := fetch(ctx, key)
	if err != nil {
		var zero V
		return zero, fmt.Errorf("fetch %s: %w", category, err)
	}
	if *m == nil {
		*m = make(map[K]V)
	}
	(*m)[key] = v
	return v, nil
}

func (c *ReferenceDataCache) CountryNationalities(ctx context.Context, gw ports.ReferenceDataGateway) ([]ports.CountryNationality, error) {
	return c.nationalities.get(ctx, "country nationalities", gw.CountryNationalities)
}

func (c *ReferenceDataCache) BailStatuses(ctx context.Context, gw ports.ReferenceDataGateway) ([]ports.BailStatus, error) {
	return c.bailStatuses.get(ctx, "bail statuses", gw.BailStatuses)
}

func (c *ReferenceDataCache) ObservedEthnicities(ctx context.Context, gw ports.ReferenceDataGateway) ([]ports.Ethnicity, error) {
	return c.observed.get(ctx, "observed ethnicities", gw.ObservedEthnicities)
}

func (c *ReferenceDataCache) SelfDefinedEthnicities(ctx context.Context, gw ports.ReferenceDataGateway) ([]ports.Ethnicity, error) {
	return c.selfDefined.get(ctx, "self defined ethnicities", gw.SelfDefinedEthnicities)
}

func (c *ReferenceDataCache) OffenderCodes(ctx context.Context, gw ports.ReferenceDataGateway) ([]ports.OffenderCode, error) {
	return c.offenderCodes.get(ctx, "offender codes", gw.OffenderCodes)
}

func (c *ReferenceDataCache) HearingTypes(ctx context.Context, gw ports.ReferenceDataGateway) ([]ports.HearingType, error) {
	return c.hearingTypes.get(ctx, "hearing types", gw.HearingTypes)
}

func (c *ReferenceDataCache) DocumentTypeAccess(ctx context.Context, gw ports.ReferenceDataGateway) ([]ports.DocumentTypeAccess, error) {
	return c.documentTypes.get(ctx, "document type access", gw.DocumentTypeAccess)
}

// OrganisationUnits is keyed by OU code.
func (c *ReferenceDataCache) OrganisationUnits(ctx context.Context, gw ports.ReferenceDataGateway, ouCode string) ([]ports.OrganisationUnit, error) {
	return keyed(ctx, &c.organisationUnits, ouCode, "organisation units", gw.OrganisationUnits)
}

// CourtCentre is keyed by OU code. A nil centre means the code is unknown.
func (c *ReferenceDataCache) CourtCentre(ctx context.Context, gw ports.ReferenceDataGateway, ouCode string) (*ports.CourtCentre, error) {
	return keyed(ctx, &c.courtCentres, ouCode, "court centre", gw.OrganisationUnitWithCourtrooms)
}

func (c *ReferenceDataCache) ProsecutorByOUCode(ctx context.Context, gw ports.ReferenceDataGateway, ouCode string) (*ports.Prosecutor, error) {
	return keyed(ctx, &c.prosecutorsByOU, ouCode, "prosecutor by ou code", gw.ProsecutorByOUCode)
}

func (c *ReferenceDataCache) ProsecutorByID(ctx context.Context, gw ports.ReferenceDataGateway, prosecutorID id.ProsecutorID) (*ports.Prosecutor, error) {
	return keyed(ctx, &c.prosecutorsByID, prosecutorID, "prosecutor by id", gw.ProsecutorByID)
}
