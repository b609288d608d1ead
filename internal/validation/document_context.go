package validation

import (
	"strings"

	"precheck/internal/validation/models"
	"precheck/internal/validation/ports"
	id "precheck/pkg/domain"
)

// Document categories as filed on the case.
const (
	CategoryCaseLevel      = "Case level"
	CategoryDefendantLevel = "Defendant level"
	CategoryApplications   = "Applications"
)

// SubjectIndividual carries the personal details a CPS person subject is matched on.
type SubjectIndividual struct {
	Forename    string
	Surname     string
	DateOfBirth string
}

// DefendantSubject identifies the defendant a document is about, as supplied
// by the submitting party. Exactly one shape is expected: a CPS person, a
// CPS or prosecutor organisation, a bare prosecutor defendant id, or a bare ASN.
type DefendantSubject struct {
	CPSDefendantID        string
	ProsecutorDefendantID string
	ASN                   string
	Individual            *SubjectIndividual
	OrganisationName      string
}

// Identifier returns the CPS id if present, else the prosecutor defendant id.
func (s DefendantSubject) Identifier() string {
	if v := strings.TrimSpace(s.CPSDefendantID); v != "" {
		return v
	}
	return strings.TrimSpace(s.ProsecutorDefendantID)
}

// Key returns the ValidDefendantIDs key for the subject: its identifier, or the bare ASN.
func (s DefendantSubject) Key() string {
	if v := s.Identifier(); v != "" {
		return v
	}
	return strings.TrimSpace(s.ASN)
}

// IsOrganisation reports whether the subject is matched by organisation name.
func (s DefendantSubject) IsOrganisation() bool {
	return strings.TrimSpace(s.OrganisationName) != ""
}

// CaseDocumentContext is the subject of a document pass. DocumentCategory,
// ResolvedDocumentType and ValidDefendantIDs are the only fields rules write.
type CaseDocumentContext struct {
	DocumentID              id.DocumentID
	Unbundled               bool
	Defendants              []DefendantSubject
	ProsecutorDefendantID   string
	CaseDefendants          []models.Defendant
	DocumentType            string
	DocumentCategory        string
	HasApplication          bool
	CourtApplicationSubject string
	ProsecutionCaseSubject  string
	MaterialContentType     string
	ValidDefendantIDs       map[string]id.DefendantID
	ResolvedDocumentType    *ports.DocumentTypeAccess
	Cache                   *ReferenceDataCache
}

func (c *CaseDocumentContext) Kind() SubjectKind { return KindDocument }

func (c *CaseDocumentContext) present() bool { return c != nil }

// ReferenceData returns the pass cache, creating it on first use.
func (c *CaseDocumentContext) ReferenceData() *ReferenceDataCache {
	if c.Cache == nil {
		c.Cache = NewReferenceDataCache()
	}
	return c.Cache
}

// InCategory reports whether the document is currently filed under category.
func (c *CaseDocumentContext) InCategory(category string) bool {
	return strings.EqualFold(strings.TrimSpace(c.DocumentCategory), category)
}

// Subjects returns the defendant subjects named by the document. A bare
// prosecutor defendant id on the document counts as one subject.
func (c *CaseDocumentContext) Subjects() []DefendantSubject {
	if len(c.Defendants) > 0 {
		return c.Defendants
	}
	if strings.TrimSpace(c.ProsecutorDefendantID) != "" {
		return []DefendantSubject{{ProsecutorDefendantID: c.ProsecutorDefendantID}}
	}
	return nil
}

// ResolvedDefendant returns the defendant id previously recorded for key.
func (c *CaseDocumentContext) ResolvedDefendant(key string) (id.DefendantID, bool) {
	v, ok := c.ValidDefendantIDs[key]
	return v, ok
}

// RecordDefendant records the defendant a subject key resolved to.
func (c *CaseDocumentContext) RecordDefendant(key string, defendantID id.DefendantID) {
	if key == "" {
		return
	}
	if c.ValidDefendantIDs == nil {
		c.ValidDefendantIDs = make(map[string]id.DefendantID)
	}
	c.ValidDefendantIDs[key] = defendantID
}
