package document

import (
	"strings"

	"precheck/internal/validation"
	"precheck/internal/validation/models"
)

// resolution is the outcome of matching one subject against the case defendants.
type resolution struct {
	key string
	// missing is set when the subject carries neither an identifier nor an ASN.
	missing bool
	// recorded is set when the key was already resolved earlier in the pass.
	recorded bool
	matches  []models.Defendant
}

// resolve matches subject against the case defendants. Identifier matches are
// tried first; ASN equality is the fallback when no identifier match exists.
func resolve(dc *validation.CaseDocumentContext, subject validation.DefendantSubject) resolution {
	key := subject.Key()
	if key == "" {
		return resolution{missing: true}
	}
	if _, ok := dc.ResolvedDefendant(key); ok {
		return resolution{key: key, recorded: true}
	}

	var matches []models.Defendant
	switch {
	case subject.IsOrganisation():
		for _, d := range dc.CaseDefendants {
			if matchesOrganisation(subject, d) {
				matches = append(matches, d)
			}
		}
	case subject.Identifier() != "":
		for _, d := range dc.CaseDefendants {
			if matchesIndividual(subject, d) {
				matches = append(matches, d)
			}
		}
	}

	if len(matches) == 0 {
		if asn := strings.TrimSpace(subject.ASN); asn != "" {
			for _, d := range dc.CaseDefendants {
				if strings.EqualFold(strings.TrimSpace(d.ASN), asn) {
					matches = append(matches, d)
				}
			}
		}
	}
	return resolution{key: key, matches: matches}
}

func matchesOrganisation(subject validation.DefendantSubject, d models.Defendant) bool {
	if d.Organisation == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(d.Organisation.Name), strings.TrimSpace(subject.OrganisationName))
}

// matchesIndividual compares personal details when both sides carry them, and
// identifiers when neither does.
func matchesIndividual(subject validation.DefendantSubject, d models.Defendant) bool {
	switch {
	case subject.Individual != nil && d.Individual != nil:
		s, c := subject.Individual, d.Individual
		return strings.EqualFold(strings.TrimSpace(s.Forename), strings.TrimSpace(c.Forename)) &&
			strings.EqualFold(strings.TrimSpace(s.Surname), strings.TrimSpace(c.Surname)) &&
			strings.TrimSpace(s.DateOfBirth) == strings.TrimSpace(c.DateOfBirth)
	case subject.Individual == nil && d.Individual == nil:
		ident := subject.Identifier()
		return ident == strings.TrimSpace(d.CPSDefendantID) || ident == strings.TrimSpace(d.ProsecutorDefendantReference)
	}
	return false
}
