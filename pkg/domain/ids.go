package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "precheck/pkg/domain-errors"
)

// Typed identifiers keep case, defendant and document ids from being mixed up
// at compile time. All of them are UUIDs issued by the case system.
type (
	CaseID        uuid.UUID
	DefendantID   uuid.UUID
	OffenceID     uuid.UUID
	DocumentID    uuid.UUID
	ApplicationID uuid.UUID
	ProsecutorID  uuid.UUID
)

func (id CaseID) String() string        { return uuid.UUID(id).String() }
func (id DefendantID) String() string   { return uuid.UUID(id).String() }
func (id OffenceID) String() string     { return uuid.UUID(id).String() }
func (id DocumentID) String() string    { return uuid.UUID(id).String() }
func (id ApplicationID) String() string { return uuid.UUID(id).String() }
func (id ProsecutorID) String() string  { return uuid.UUID(id).String() }

func (id CaseID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id DefendantID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id OffenceID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id DocumentID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id ApplicationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ProsecutorID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

func (id CaseID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id DefendantID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id OffenceID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id DocumentID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id ApplicationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id ProsecutorID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }

// UnmarshalText lets ids decode straight from JSON and YAML documents.
func (id *CaseID) UnmarshalText(b []byte) error        { return unmarshalID((*uuid.UUID)(id), b) }
func (id *DefendantID) UnmarshalText(b []byte) error   { return unmarshalID((*uuid.UUID)(id), b) }
func (id *OffenceID) UnmarshalText(b []byte) error     { return unmarshalID((*uuid.UUID)(id), b) }
func (id *DocumentID) UnmarshalText(b []byte) error    { return unmarshalID((*uuid.UUID)(id), b) }
func (id *ApplicationID) UnmarshalText(b []byte) error { return unmarshalID((*uuid.UUID)(id), b) }
func (id *ProsecutorID) UnmarshalText(b []byte) error  { return unmarshalID((*uuid.UUID)(id), b) }

func unmarshalID(dst *uuid.UUID, b []byte) error {
	if len(b) == 0 {
		*dst = uuid.Nil
		return nil
	}
	if len(b) > maxIDLength {
		return dErrors.New(dErrors.CodeInvalidInput, "id is too long")
	}
	parsed, err := uuid.ParseBytes(b)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid id")
	}
	*dst = parsed
	return nil
}

func NewDefendantID() DefendantID     { return DefendantID(uuid.New()) }
func NewOffenceID() OffenceID         { return OffenceID(uuid.New()) }
func NewCaseID() CaseID               { return CaseID(uuid.New()) }
func NewDocumentID() DocumentID       { return DocumentID(uuid.New()) }
func NewApplicationID() ApplicationID { return ApplicationID(uuid.New()) }
func NewProsecutorID() ProsecutorID   { return ProsecutorID(uuid.New()) }

// maxIDLength bounds input before it reaches the uuid parser.
const maxIDLength = 64

func parseUUID(kind, s string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	if len(s) > maxIDLength {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is too long")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" must not be nil")
	}
	return parsed, nil
}

func ParseCaseID(s string) (CaseID, error) {
	u, err := parseUUID("case_id", s)
	return CaseID(u), err
}

func ParseDefendantID(s string) (DefendantID, error) {
	u, err := parseUUID("defendant_id", s)
	return DefendantID(u), err
}

func ParseOffenceID(s string) (OffenceID, error) {
	u, err := parseUUID("offence_id", s)
	return OffenceID(u), err
}

func ParseDocumentID(s string) (DocumentID, error) {
	u, err := parseUUID("document_id", s)
	return DocumentID(u), err
}

func ParseApplicationID(s string) (ApplicationID, error) {
	u, err := parseUUID("application_id", s)
	return ApplicationID(u), err
}

func ParseProsecutorID(s string) (ProsecutorID, error) {
	u, err := parseUUID("prosecutor_id", s)
	return ProsecutorID(u), err
}
