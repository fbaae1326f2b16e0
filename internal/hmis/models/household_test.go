package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hmis/internal/hud"
)

func TestMemberStatus(t *testing.T) {
	entry := time.Date(2016, 1, 4, 0, 0, 0, 0, time.UTC)
	exit := entry.AddDate(0, 3, 0)

	cases := []struct {
		name   string
		member HouseholdMember
		want   EnrollmentStatus
	}{
		{"no entry date", HouseholdMember{Present: true}, StatusPending},
		{"entered", HouseholdMember{Present: true, EntryDate: entry}, StatusEnrolled},
		{"exited", HouseholdMember{Present: true, EntryDate: entry, ExitDate: exit}, StatusExited},
		{"no show", HouseholdMember{Present: false, EntryDate: entry}, StatusExited},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.member.Status())
		})
	}
}

func TestHouseholdStatus(t *testing.T) {
	entry := time.Date(2016, 1, 4, 0, 0, 0, 0, time.UTC)
	enrolled := &HouseholdMember{Present: true, EntryDate: entry}
	pending := &HouseholdMember{Present: true}
	exited := &HouseholdMember{Present: true, EntryDate: entry, ExitDate: entry.AddDate(0, 1, 0)}
	noShow := &HouseholdMember{Present: false}

	assert.Equal(t, StatusPending, HouseholdStatus([]*HouseholdMember{enrolled, pending}))
	assert.Equal(t, StatusEnrolled, HouseholdStatus([]*HouseholdMember{exited, enrolled}))
	assert.Equal(t, StatusExited, HouseholdStatus([]*HouseholdMember{exited, noShow}))
	assert.Equal(t, StatusExited, HouseholdStatus(nil))
}

func TestSortMembers(t *testing.T) {
	child := &HouseholdMember{Relationship: hud.RelChild}
	head := &HouseholdMember{Relationship: hud.RelSelf}
	unknown := &HouseholdMember{Relationship: hud.Blank}
	spouse := &HouseholdMember{Relationship: hud.RelSpouse}

	members := []*HouseholdMember{unknown, child, spouse, head}
	SortMembers(members)
	assert.Equal(t, []*HouseholdMember{head, child, spouse, unknown}, members)
	assert.True(t, members[0].IsHead())
}

func TestJoinCodes(t *testing.T) {
	assert.Equal(t, "5;3", JoinCodes([]hud.Code{5, 3}))
	assert.Equal(t, "", JoinCodes(nil))
}
