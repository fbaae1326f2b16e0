package models

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"hmis/internal/hud"
	id "hmis/pkg/domain"
)

// Household groups the clients enrolled together in one project.
type Household struct {
	ID        id.HouseholdID
	ProjectID id.ProjectID
	CreatedAt time.Time
}

// HouseholdMember is one client's enrollment in a household. Identity for
// re-imports is (client, project name, entry date).
type HouseholdMember struct {
	ID           id.MemberID
	ClientID     id.ClientID
	HouseholdID  id.HouseholdID
	Relationship hud.Code
	EntryDate    time.Time
	ExitDate     time.Time
	// Present is false for clients who never showed up.
	Present   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsHead reports whether the member is the head of household.
func (m *HouseholdMember) IsHead() bool {
	return m.Relationship == hud.RelSelf
}

// MarkNoShow records that the client never arrived.
func (m *HouseholdMember) MarkNoShow(now time.Time) {
	m.Present = false
	m.UpdatedAt = now
}

// EnrollmentStatus is derived from the member's dates and presence.
type EnrollmentStatus string

const (
	StatusPending  EnrollmentStatus = "pending"
	StatusEnrolled EnrollmentStatus = "enrolled"
	StatusExited   EnrollmentStatus = "exited"
)

// Status: no entry date is pending, an exit date or a no-show is exited,
// anything else is enrolled.
func (m *HouseholdMember) Status() EnrollmentStatus {
	switch {
	case !m.Present:
		return StatusExited
	case m.EntryDate.IsZero():
		return StatusPending
	case !m.ExitDate.IsZero():
		return StatusExited
	default:
		return StatusEnrolled
	}
}

// HouseholdStatus aggregates member statuses: pending if any present member is
// pending, else enrolled if any is enrolled, else exited.
func HouseholdStatus(members []*HouseholdMember) EnrollmentStatus {
	status := StatusExited
	for _, m := range members {
		if !m.Present {
			continue
		}
		switch m.Status() {
		case StatusPending:
			return StatusPending
		case StatusEnrolled:
			status = StatusEnrolled
		}
	}
	return status
}

// SortMembers orders members head first, then by relationship code, with
// unset relationships last.
func SortMembers(members []*HouseholdMember) {
	rank := func(c hud.Code) int {
		if c == hud.Blank {
			return int(^uint(0) >> 1)
		}
		return int(c)
	}
	slices.SortStableFunc(members, func(a, b *HouseholdMember) int {
		return cmp.Compare(rank(a.Relationship), rank(b.Relationship))
	})
}

// JoinCodes renders a multi-valued field the way exports write it.
func JoinCodes(codes []hud.Code) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = c.String()
	}
	return strings.Join(parts, ";")
}
