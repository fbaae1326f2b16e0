package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "hmis/pkg/domain-errors"
)

// Typed identifiers keep client, household, and membership keys from being
// mixed up at compile time.
type (
	ProjectID    uuid.UUID
	ClientID     uuid.UUID
	HouseholdID  uuid.UUID
	MemberID     uuid.UUID
	AssessmentID uuid.UUID
)

func NewProjectID() ProjectID       { return ProjectID(uuid.New()) }
func NewClientID() ClientID         { return ClientID(uuid.New()) }
func NewHouseholdID() HouseholdID   { return HouseholdID(uuid.New()) }
func NewMemberID() MemberID         { return MemberID(uuid.New()) }
func NewAssessmentID() AssessmentID { return AssessmentID(uuid.New()) }

func (id ProjectID) String() string    { return uuid.UUID(id).String() }
func (id ClientID) String() string     { return uuid.UUID(id).String() }
func (id HouseholdID) String() string  { return uuid.UUID(id).String() }
func (id MemberID) String() string     { return uuid.UUID(id).String() }
func (id AssessmentID) String() string { return uuid.UUID(id).String() }

func (id ProjectID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id ClientID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id HouseholdID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id MemberID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id AssessmentID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func ParseProjectID(s string) (ProjectID, error) {
	u, err := parseUUID(s, "project")
	return ProjectID(u), err
}

func ParseClientID(s string) (ClientID, error) {
	u, err := parseUUID(s, "client")
	return ClientID(u), err
}

func ParseHouseholdID(s string) (HouseholdID, error) {
	u, err := parseUUID(s, "household")
	return HouseholdID(u), err
}

func ParseMemberID(s string) (MemberID, error) {
	u, err := parseUUID(s, "member")
	return MemberID(u), err
}

func ParseAssessmentID(s string) (AssessmentID, error) {
	u, err := parseUUID(s, "assessment")
	return AssessmentID(u), err
}

// parseUUID rejects empty, malformed, and nil UUIDs.
func parseUUID(s, kind string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+kind+" id")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id cannot be nil")
	}
	return u, nil
}
