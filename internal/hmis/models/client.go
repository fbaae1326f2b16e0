package models

import (
	"fmt"
	"slices"
	"time"

	"hmis/internal/hud"
	id "hmis/pkg/domain"
)

// Project is a program clients enroll in. Name is the natural key.
type Project struct {
	ID        id.ProjectID
	Name      string
	CreatedAt time.Time
}

// Client is one person. Identity for matching is the SSN, else first name,
// last name and date of birth together.
//
// Invariants:
//   - SSN is "" or 1-9 digits
//   - coded fields are never silently downgraded (see Merge)
type Client struct {
	ID            id.ClientID
	First         string
	Middle        string
	Last          string
	Suffix        string
	DOB           time.Time
	SSN           string
	Gender        hud.Code
	Ethnicity     hud.Code
	VeteranStatus hud.Code
	Race          []hud.Code
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ClientFields is the incoming, already-normalized data for a client row.
type ClientFields struct {
	First         string
	Middle        string
	Last          string
	Suffix        string
	DOB           time.Time
	SSN           string
	Gender        hud.Code
	Ethnicity     hud.Code
	VeteranStatus hud.Code
	Race          []hud.Code
}

// NewClient builds a client from its first row.
func NewClient(clientID id.ClientID, f ClientFields, now time.Time) *Client {
	return &Client{
		ID:            clientID,
		First:         f.First,
		Middle:        f.Middle,
		Last:          f.Last,
		Suffix:        f.Suffix,
		DOB:           f.DOB,
		SSN:           f.SSN,
		Gender:        f.Gender,
		Ethnicity:     f.Ethnicity,
		VeteranStatus: f.VeteranStatus,
		Race:          slices.Clone(f.Race),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// HasSSN reports whether the client has a usable SSN.
func (c *Client) HasSSN() bool {
	return c.SSN != ""
}

// FieldConflict records an incoming value that disagreed with a set stored
// value. The stored value is kept.
type FieldConflict struct {
	Field    string
	Stored   string
	Incoming string
}

func (f FieldConflict) String() string {
	return fmt.Sprintf("%s: %q -> %q", f.Field, f.Stored, f.Incoming)
}

// Merge folds incoming data into c. A field takes the incoming value only when
// the stored one is unset; any other disagreement is reported and the stored
// value stays.
func (c *Client) Merge(f ClientFields, now time.Time) (changed bool, conflicts []FieldConflict) {
	str := func(name string, stored *string, incoming string) {
		switch {
		case *stored == incoming || incoming == "":
		case *stored == "":
			*stored = incoming
			changed = true
		default:
			conflicts = append(conflicts, FieldConflict{Field: name, Stored: *stored, Incoming: incoming})
		}
	}
	code := func(name string, stored *hud.Code, incoming hud.Code) {
		switch {
		case *stored == incoming || incoming.IsUnset():
		case stored.IsUnset():
			*stored = incoming
			changed = true
		default:
			conflicts = append(conflicts, FieldConflict{Field: name, Stored: stored.String(), Incoming: incoming.String()})
		}
	}

	str("first", &c.First, f.First)
	str("middle", &c.Middle, f.Middle)
	str("last", &c.Last, f.Last)
	str("suffix", &c.Suffix, f.Suffix)
	str("ssn", &c.SSN, f.SSN)

	switch {
	case c.DOB.Equal(f.DOB) || f.DOB.IsZero():
	case c.DOB.IsZero():
		c.DOB = f.DOB
		changed = true
	default:
		conflicts = append(conflicts, FieldConflict{Field: "dob", Stored: c.DOB.Format(time.DateOnly), Incoming: f.DOB.Format(time.DateOnly)})
	}

	code("gender", &c.Gender, f.Gender)
	code("ethnicity", &c.Ethnicity, f.Ethnicity)
	code("veteran_status", &c.VeteranStatus, f.VeteranStatus)

	switch {
	case sameCodes(c.Race, f.Race) || raceUnset(f.Race):
	case raceUnset(c.Race):
		c.Race = slices.Clone(f.Race)
		changed = true
	default:
		conflicts = append(conflicts, FieldConflict{Field: "race", Stored: JoinCodes(c.Race), Incoming: JoinCodes(f.Race)})
	}

	if changed {
		c.UpdatedAt = now
	}
	return changed, conflicts
}

// raceUnset reports whether no code in the set is an answer. An empty set is unset.
func raceUnset(codes []hud.Code) bool {
	for _, c := range codes {
		if !c.IsUnset() {
			return false
		}
	}
	return true
}

func sameCodes(a, b []hud.Code) bool {
	if len(a) != len(b) {
		return false
	}
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}
