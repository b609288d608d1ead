package referencedata

import (
	"context"
	"sync"

	"precheck/internal/validation/ports"
	id "precheck/pkg/domain"
)

// InMemoryGateway serves reference data from a Catalogue. The catalogue can
// be swapped at runtime with Replace; readers see either the old or the new
// snapshot, never a mix.
type InMemoryGateway struct {
	mu   sync.RWMutex
	snap *snapshot
}

type snapshot struct {
	catalogue     *Catalogue
	units         map[string][]ports.OrganisationUnit
	centres       map[string]ports.CourtCentre
	prosecutorsOU map[string]ports.Prosecutor
	prosecutorsID map[id.ProsecutorID]ports.Prosecutor
}

// NewInMemoryGateway indexes catalogue for lookups.
func NewInMemoryGateway(catalogue *Catalogue) *InMemoryGateway {
	return &InMemoryGateway{snap: index(catalogue)}
}

// Replace swaps in a new catalogue.
func (g *InMemoryGateway) Replace(catalogue *Catalogue) {
	s := index(catalogue)
	g.mu.Lock()
	g.snap = s
	g.mu.Unlock()
}

// Catalogue returns the catalogue currently served.
func (g *InMemoryGateway) Catalogue() *Catalogue {
	return g.current().catalogue
}

func (g *InMemoryGateway) current() *snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snap
}

func index(c *Catalogue) *snapshot {
	if c == nil {
		c = &Catalogue{}
	}
	s := &snapshot{
		catalogue:     c,
		units:         make(map[string][]ports.OrganisationUnit),
		centres:       make(map[string]ports.CourtCentre, len(c.CourtCentres)),
		prosecutorsOU: make(map[string]ports.Prosecutor, len(c.Prosecutors)),
		prosecutorsID: make(map[id.ProsecutorID]ports.Prosecutor, len(c.Prosecutors)),
	}
	for _, u := range c.OrganisationUnits {
		key := normalizeOU(u.OUCode)
		s.units[key] = append(s.units[key], u)
	}
	for _, centre := range c.CourtCentres {
		key := normalizeOU(centre.OUCode)
		s.centres[key] = centre
		if _, listed := s.units[key]; !listed {
			s.units[key] = []ports.OrganisationUnit{centre.OrganisationUnit}
		}
	}
	for _, p := range c.Prosecutors {
		if key := normalizeOU(p.OUCode); key != "" {
			s.prosecutorsOU[key] = p
		}
		s.prosecutorsID[p.ID] = p
	}
	return s
}

func (g *InMemoryGateway) CountryNationalities(_ context.Context) ([]ports.CountryNationality, error) {
	return clone(g.current().catalogue.CountryNationalities), nil
}

func (g *InMemoryGateway) BailStatuses(_ context.Context) ([]ports.BailStatus, error) {
	return clone(g.current().catalogue.BailStatuses), nil
}

func (g *InMemoryGateway) ObservedEthnicities(_ context.Context) ([]ports.Ethnicity, error) {
	return clone(g.current().catalogue.ObservedEthnicities), nil
}

func (g *InMemoryGateway) SelfDefinedEthnicities(_ context.Context) ([]ports.Ethnicity, error) {
	return clone(g.current().catalogue.SelfDefinedEthnicities), nil
}

func (g *InMemoryGateway) OffenderCodes(_ context.Context) ([]ports.OffenderCode, error) {
	return clone(g.current().catalogue.OffenderCodes), nil
}

func (g *InMemoryGateway) HearingTypes(_ context.Context) ([]ports.HearingType, error) {
	return clone(g.current().catalogue.HearingTypes), nil
}

func (g *InMemoryGateway) DocumentTypeAccess(_ context.Context) ([]ports.DocumentTypeAccess, error) {
	return clone(g.current().catalogue.DocumentTypes), nil
}

func (g *InMemoryGateway) OrganisationUnits(_ context.Context, ouCode string) ([]ports.OrganisationUnit, error) {
	return clone(g.current().units[normalizeOU(ouCode)]), nil
}

func (g *InMemoryGateway) OrganisationUnitWithCourtrooms(_ context.Context, ouCode string) (*ports.CourtCentre, error) {
	centre, ok := g.current().centres[normalizeOU(ouCode)]
	if !ok {
		return nil, nil
	}
	centre.Courtrooms = clone(centre.Courtrooms)
	return &centre, nil
}

func (g *InMemoryGateway) ProsecutorByOUCode(_ context.Context, ouCode string) (*ports.Prosecutor, error) {
	p, ok := g.current().prosecutorsOU[normalizeOU(ouCode)]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (g *InMemoryGateway) ProsecutorByID(_ context.Context, prosecutorID id.ProsecutorID) (*ports.Prosecutor, error) {
	p, ok := g.current().prosecutorsID[prosecutorID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// clone returns a copy so callers cannot mutate the served catalogue.
func clone[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
