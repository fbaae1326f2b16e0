// Package memory is an in-process HMIS store. Transactions snapshot the whole
// data set and restore it when the callback fails.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"hmis/internal/hmis/models"
	id "hmis/pkg/domain"
	dErrors "hmis/pkg/domain-errors"
	"hmis/pkg/platform/sentinel"
)

type data struct {
	projects    []models.Project
	clients     []models.Client
	households  []models.Household
	members     []models.HouseholdMember
	assessments []models.Assessment
}

func (d *data) clone() *data {
	c := &data{
		projects:    slices.Clone(d.projects),
		clients:     slices.Clone(d.clients),
		households:  slices.Clone(d.households),
		members:     slices.Clone(d.members),
		assessments: slices.Clone(d.assessments),
	}
	for i := range c.clients {
		c.clients[i].Race = slices.Clone(c.clients[i].Race)
	}
	return c
}

// Store keeps every entity in insertion order.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	d    *data
}

func New() *Store {
	return &Store{d: &data{}}
}

// RunInTx serializes transactions. When fn fails every change it made is
// discarded.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.d.clone()
	s.mu.RUnlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.d = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) CreateProject(_ context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.d.projects {
		if existing.Name == p.Name {
			return fmt.Errorf("project %q: %w", p.Name, sentinel.ErrConflict)
		}
	}
	s.d.projects = append(s.d.projects, *p)
	return nil
}

func (s *Store) FindProjectByName(_ context.Context, name string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.d.projects {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *Store) FindProject(_ context.Context, projectID id.ProjectID) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.d.projects {
		if p.ID == projectID {
			return &p, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *Store) ListProjects(_ context.Context) ([]*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Project, len(s.d.projects))
	for i := range s.d.projects {
		p := s.d.projects[i]
		out[i] = &p
	}
	return out, nil
}

func (s *Store) CreateClient(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.ContainsFunc(s.d.clients, func(existing models.Client) bool { return existing.ID == c.ID }) {
		return fmt.Errorf("client %s: %w", c.ID, sentinel.ErrConflict)
	}
	s.d.clients = append(s.d.clients, copyClient(c))
	return nil
}

func (s *Store) UpdateClient(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.d.clients {
		if s.d.clients[i].ID == c.ID {
			s.d.clients[i] = copyClient(c)
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func (s *Store) FindClientsBySSN(_ context.Context, ssn string) ([]*models.Client, error) {
	return s.findClients(func(c *models.Client) bool { return c.SSN == ssn }), nil
}

func (s *Store) FindClientsByNameAndDOB(_ context.Context, first, last string, dob time.Time) ([]*models.Client, error) {
	return s.findClients(func(c *models.Client) bool {
		return c.First == first && c.Last == last && c.DOB.Equal(dob)
	}), nil
}

func (s *Store) ListClients(_ context.Context) ([]*models.Client, error) {
	return s.findClients(func(*models.Client) bool { return true }), nil
}

func (s *Store) findClients(match func(*models.Client) bool) []*models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Client
	for i := range s.d.clients {
		if match(&s.d.clients[i]) {
			c := copyClient(&s.d.clients[i])
			out = append(out, &c)
		}
	}
	return out
}

func copyClient(c *models.Client) models.Client {
	out := *c
	out.Race = slices.Clone(c.Race)
	return out
}

func (s *Store) CreateHousehold(_ context.Context, h *models.Household) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.households = append(s.d.households, *h)
	return nil
}

func (s *Store) ListHouseholds(_ context.Context) ([]*models.Household, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Household, len(s.d.households))
	for i := range s.d.households {
		h := s.d.households[i]
		out[i] = &h
	}
	return out, nil
}

func (s *Store) CreateMember(_ context.Context, m *models.HouseholdMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.members = append(s.d.members, *m)
	return nil
}

func (s *Store) UpdateMember(_ context.Context, m *models.HouseholdMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.d.members {
		if s.d.members[i].ID == m.ID {
			s.d.members[i] = *m
			return nil
		}
	}
	return sentinel.ErrNotFound
}

// FindMember returns the client's membership in the named project that
// started on entryDate.
func (s *Store) FindMember(_ context.Context, clientID id.ClientID, projectName string, entryDate time.Time) (*models.HouseholdMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.d.members {
		if m.ClientID != clientID || !m.EntryDate.Equal(entryDate) {
			continue
		}
		if s.projectNameOf(m.HouseholdID) == projectName {
			return &m, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// FindLatestMemberBySSN returns the most recent membership on or before
// onOrBefore held by a client with the given SSN. Ties go to the newest row.
// Memberships without an entry date, or a zero onOrBefore, never match.
func (s *Store) FindLatestMemberBySSN(_ context.Context, ssn string, onOrBefore time.Time) (*models.HouseholdMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if onOrBefore.IsZero() {
		return nil, sentinel.ErrNotFound
	}
	var found *models.HouseholdMember
	for i := range s.d.members {
		m := s.d.members[i]
		if m.EntryDate.IsZero() || m.EntryDate.After(onOrBefore) || s.ssnOf(m.ClientID) != ssn {
			continue
		}
		if found == nil || !m.EntryDate.Before(found.EntryDate) {
			found = &m
		}
	}
	if found == nil {
		return nil, sentinel.ErrNotFound
	}
	return found, nil
}

// ListMembersByHousehold returns the household's members, head first.
func (s *Store) ListMembersByHousehold(_ context.Context, householdID id.HouseholdID) ([]*models.HouseholdMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.HouseholdMember
	for _, m := range s.d.members {
		if m.HouseholdID == householdID {
			out = append(out, &m)
		}
	}
	models.SortMembers(out)
	return out, nil
}

func (s *Store) projectNameOf(householdID id.HouseholdID) string {
	for _, h := range s.d.households {
		if h.ID != householdID {
			continue
		}
		for _, p := range s.d.projects {
			if p.ID == h.ProjectID {
				return p.Name
			}
		}
	}
	return ""
}

func (s *Store) ssnOf(clientID id.ClientID) string {
	for _, c := range s.d.clients {
		if c.ID == clientID {
			return c.SSN
		}
	}
	return ""
}

func (s *Store) CreateAssessment(_ context.Context, a *models.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.d.assessments {
		if existing.MemberID == a.MemberID && existing.Kind == a.Kind && existing.Date.Equal(a.Date) {
			return fmt.Errorf("%s assessment for %s: %w", a.Kind, a.MemberID, sentinel.ErrConflict)
		}
	}
	s.d.assessments = append(s.d.assessments, *a)
	return nil
}

func (s *Store) FindAssessment(_ context.Context, memberID id.MemberID, kind models.AssessmentKind, date time.Time) (*models.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.d.assessments {
		if a.MemberID == memberID && a.Kind == kind && a.Date.Equal(date) {
			return &a, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// ListAssessments returns assessments of kind ordered by member, then date.
func (s *Store) ListAssessments(_ context.Context, kind models.AssessmentKind) ([]*models.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Assessment
	for _, a := range s.d.assessments {
		if a.Kind == kind {
			out = append(out, &a)
		}
	}
	slices.SortStableFunc(out, func(a, b *models.Assessment) int {
		return cmp.Or(
			strings.Compare(a.MemberID.String(), b.MemberID.String()),
			a.Date.Compare(b.Date),
		)
	})
	return out, nil
}
