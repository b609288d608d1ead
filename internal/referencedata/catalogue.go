// Package referencedata implements the reference data gateway the validation
// rules read through, over a bundled catalogue or an external source.
package referencedata

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"precheck/internal/validation/ports"
	"precheck/pkg/platform/sentinel"
)

//go:embed seed/catalogue.yaml
var defaultCatalogue []byte

// Catalogue is a complete reference data snapshot. It seeds the in-memory
// gateway and the Postgres tables.
type Catalogue struct {
	CountryNationalities   []ports.CountryNationality `yaml:"country_nationalities"`
	BailStatuses           []ports.BailStatus         `yaml:"bail_statuses"`
	ObservedEthnicities    []ports.Ethnicity          `yaml:"observed_ethnicities"`
	SelfDefinedEthnicities []ports.Ethnicity          `yaml:"self_defined_ethnicities"`
	OffenderCodes          []ports.OffenderCode       `yaml:"offender_codes"`
	HearingTypes           []ports.HearingType        `yaml:"hearing_types"`
	OrganisationUnits      []ports.OrganisationUnit   `yaml:"organisation_units"`
	CourtCentres           []ports.CourtCentre        `yaml:"court_centres"`
	DocumentTypes          []ports.DocumentTypeAccess `yaml:"document_types"`
	Prosecutors            []ports.Prosecutor         `yaml:"prosecutors"`
}

// ParseCatalogue decodes a YAML catalogue. Unknown keys are rejected so a
// misspelt section does not silently load as empty.
func ParseCatalogue(r io.Reader) (*Catalogue, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalogue
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return &c, nil
		}
		return nil, fmt.Errorf("decode catalogue: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCatalogue reads a YAML catalogue from path.
func LoadCatalogue(path string) (*Catalogue, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("catalogue %s: %w", path, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open catalogue: %w", err)
	}
	defer f.Close()
	return ParseCatalogue(f)
}

// DefaultCatalogue returns the catalogue bundled with the binary. It holds a
// small but consistent data set for local runs.
func DefaultCatalogue() *Catalogue {
	c, err := ParseCatalogue(bytes.NewReader(defaultCatalogue))
	if err != nil {
		panic(fmt.Sprintf("bundled catalogue is invalid: %v", err))
	}
	return c
}

// Validate checks the keys lookups depend on are present and unique.
func (c *Catalogue) Validate() error {
	var errs []error

	seenCentres := make(map[string]struct{}, len(c.CourtCentres))
	for i, centre := range c.CourtCentres {
		key := normalizeOU(centre.OUCode)
		if key == "" {
			errs = append(errs, fmt.Errorf("court_centres[%d]: ou_code is required", i))
			continue
		}
		if _, dup := seenCentres[key]; dup {
			errs = append(errs, fmt.Errorf("court_centres[%d]: duplicate ou_code %s", i, centre.OUCode))
		}
		seenCentres[key] = struct{}{}
	}

	seenProsecutors := make(map[string]struct{}, len(c.Prosecutors))
	for i, p := range c.Prosecutors {
		if p.ID.IsNil() {
			errs = append(errs, fmt.Errorf("prosecutors[%d]: id is required", i))
		}
		key := normalizeOU(p.OUCode)
		if key == "" {
			continue
		}
		if _, dup := seenProsecutors[key]; dup {
			errs = append(errs, fmt.Errorf("prosecutors[%d]: duplicate ou_code %s", i, p.OUCode))
		}
		seenProsecutors[key] = struct{}{}
	}

	for i, u := range c.OrganisationUnits {
		if normalizeOU(u.OUCode) == "" {
			errs = append(errs, fmt.Errorf("organisation_units[%d]: ou_code is required", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid catalogue: %w", errors.Join(errs...))
	}
	return nil
}

func normalizeOU(ou string) string {
	return strings.ToUpper(strings.TrimSpace(ou))
}
