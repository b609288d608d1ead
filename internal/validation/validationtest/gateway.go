// Package validationtest provides fixtures and a call-counting fake gateway
// for rule and chain tests.
package validationtest

import (
	"context"
	"strings"
	"sync"

	"precheck/internal/validation/ports"
	id "precheck/pkg/domain"
)

// FakeGateway serves reference data from its fields and counts calls per method.
// Set Err to make every call fail.
type FakeGateway struct {
	Nationalities    []ports.CountryNationality
	BailStatusList   []ports.BailStatus
	Observed         []ports.Ethnicity
	SelfDefined      []ports.Ethnicity
	OffenderCodeList []ports.OffenderCode
	HearingTypeList  []ports.HearingType
	DocumentTypes    []ports.DocumentTypeAccess
	OrgUnits         map[string][]ports.OrganisationUnit
	CourtCentres     map[string]*ports.CourtCentre
	Prosecutors      []ports.Prosecutor
	Err              error

	mu    sync.Mutex
	calls map[string]int
}

// NewFakeGateway returns a gateway seeded with the standard fixtures.
func NewFakeGateway() *FakeGateway {
	centre := LavenderHill()
	return &FakeGateway{
		Nationalities:    Nationalities(),
		BailStatusList:   BailStatuses(),
		Observed:         ObservedEthnicities(),
		SelfDefined:      SelfDefinedEthnicities(),
		OffenderCodeList: OffenderCodes(),
		HearingTypeList:  HearingTypes(),
		DocumentTypes:    DocumentTypes(),
		OrgUnits: map[string][]ports.OrganisationUnit{
			centre.OUCode: {centre.OrganisationUnit},
		},
		CourtCentres: map[string]*ports.CourtCentre{
			centre.OUCode: &centre,
		},
		Prosecutors: []ports.Prosecutor{CPS()},
	}
}

// Calls returns how often method was invoked.
func (g *FakeGateway) Calls(method string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[method]
}

// TotalCalls returns the number of gateway invocations across all methods.
func (g *FakeGateway) TotalCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	total := 0
	for _, n := range g.calls {
		total += n
	}
	return total
}

func (g *FakeGateway) record(method string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.calls == nil {
		g.calls = make(map[string]int)
	}
	g.calls[method]++
	return g.Err
}

func (g *FakeGateway) CountryNationalities(_ context.Context) ([]ports.CountryNationality, error) {
	if err := g.record("CountryNationalities"); err != nil {
		return nil, err
	}
	return g.Nationalities, nil
}

func (g *FakeGateway) BailStatuses(_ context.Context) ([]ports.BailStatus, error) {
	if err := g.record("BailStatuses"); err != nil {
		return nil, err
	}
	return g.BailStatusList, nil
}

func (g *FakeGateway) ObservedEthnicities(_ context.Context) ([]ports.Ethnicity, error) {
	if err := g.record("ObservedEthnicities"); err != nil {
		return nil, err
	}
	return g.Observed, nil
}

func (g *FakeGateway) SelfDefinedEthnicities(_ context.Context) ([]ports.Ethnicity, error) {
	if err := g.record("SelfDefinedEthnicities"); err != nil {
		return nil, err
	}
	return g.SelfDefined, nil
}

func (g *FakeGateway) OffenderCodes(_ context.Context) ([]ports.OffenderCode, error) {
	if err := g.record("OffenderCodes"); err != nil {
		return nil, err
	}
	return g.OffenderCodeList, nil
}

func (g *FakeGateway) HearingTypes(_ context.Context) ([]ports.HearingType, error) {
	if err := g.record("HearingTypes"); err != nil {
		return nil, err
	}
	return g.HearingTypeList, nil
}

func (g *FakeGateway) OrganisationUnits(_ context.Context, ouCode string) ([]ports.OrganisationUnit, error) {
	if err := g.record("OrganisationUnits"); err != nil {
		return nil, err
	}
	return g.OrgUnits[ouCode], nil
}

func (g *FakeGateway) OrganisationUnitWithCourtrooms(_ context.Context, ouCode string) (*ports.CourtCentre, error) {
	if err := g.record("OrganisationUnitWithCourtrooms"); err != nil {
		return nil, err
	}
	return g.CourtCentres[ouCode], nil
}

func (g *FakeGateway) DocumentTypeAccess(_ context.Context) ([]ports.DocumentTypeAccess, error) {
	if err := g.record("DocumentTypeAccess"); err != nil {
		return nil, err
	}
	return g.DocumentTypes, nil
}

func (g *FakeGateway) ProsecutorByOUCode(_ context.Context, ouCode string) (*ports.Prosecutor, error) {
	if err := g.record("ProsecutorByOUCode"); err != nil {
		return nil, err
	}
	for i := range g.Prosecutors {
		if strings.EqualFold(g.Prosecutors[i].OUCode, ouCode) {
			p := g.Prosecutors[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (g *FakeGateway) ProsecutorByID(_ context.Context, prosecutorID id.ProsecutorID) (*ports.Prosecutor, error) {
	if err := g.record("ProsecutorByID"); err != nil {
		return nil, err
	}
	for i := range g.Prosecutors {
		if g.Prosecutors[i].ID == prosecutorID {
			p := g.Prosecutors[i]
			return &p, nil
		}
	}
	return nil, nil
}
