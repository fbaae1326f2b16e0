package service

import (
	"context"
	"errors"
	"strings"

	"hmis/internal/hmis/models"
	"hmis/internal/hud"
	id "hmis/pkg/domain"
	dErrors "hmis/pkg/domain-errors"
	"hmis/pkg/platform/sentinel"
)

// resolveMembership reuses the client's membership for the row's program and
// entry date, or creates one. Heads start a new household; dependents join
// their head's.
func (s *session) resolveMembership(ctx context.Context, rc *rowContext) error {
	projectName := strings.TrimSpace(rc.row.Get(ColProgramName))
	existing, err := s.store.FindMember(ctx, rc.client.ID, projectName, rc.entryDate)
	switch {
	case err == nil:
		rc.member = existing
		s.report.MembersReused++
		return nil
	case !errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up membership")
	}

	var householdID id.HouseholdID
	if rc.relationship == hud.RelSelf {
		h, err := s.createHousehold(ctx, projectName)
		if err != nil {
			return err
		}
		householdID = h.ID
	} else {
		head, err := s.headOfHousehold(ctx, rc)
		if err != nil {
			return err
		}
		householdID = head.HouseholdID
	}

	now := s.now()
	m := &models.HouseholdMember{
		ID:           id.NewMemberID(),
		ClientID:     rc.client.ID,
		HouseholdID:  householdID,
		Relationship: rc.relationship,
		EntryDate:    rc.entryDate,
		ExitDate:     rc.exitDate,
		Present:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateMember(ctx, m); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create membership")
	}
	s.report.MembersCreated++
	s.logger.DebugContext(ctx, "created membership",
		"line", rc.row.Line, "member_id", m.ID, "household_id", householdID)
	rc.member = m
	return nil
}

// createHousehold always makes a new household; heads sharing a program and
// entry date are still separate households.
func (s *session) createHousehold(ctx context.Context, projectName string) (*models.Household, error) {
	project, err := s.project(ctx, projectName)
	if err != nil {
		return nil, err
	}
	h := &models.Household{ID: id.NewHouseholdID(), ProjectID: project.ID, CreatedAt: s.now()}
	if err := s.store.CreateHousehold(ctx, h); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create household")
	}
	s.report.HouseholdsCreated++
	return h, nil
}

// headOfHousehold finds a dependent's head: by the row's head-of-household
// SSN when given, otherwise the remembered anchor, which must share the
// dependent's entry date. A dependent without an entry date has no head.
func (s *session) headOfHousehold(ctx context.Context, rc *rowContext) (*models.HouseholdMember, error) {
	if rc.entryDate.IsZero() {
		return nil, dErrors.New(dErrors.CodeMissingHoH,
			"dependent has no program start date to link to a head of household")
	}
	headSSN, err := s.normalizer.ParseSSN(ctx, rc.row.Get(ColHeadSSN))
	if err != nil {
		return nil, err
	}
	if headSSN != "" {
		head, err := s.store.FindLatestMemberBySSN(ctx, headSSN, rc.entryDate)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeMissingHoH,
				"no head of household with SSN %s entered on or before %s", headSSN, models.FormatDate(rc.entryDate))
		}
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up head of household")
		}
		return head, nil
	}
	if s.anchor == nil {
		return nil, dErrors.New(dErrors.CodeMissingHoH,
			"head of household SSN is blank and no head of household without an SSN precedes this row")
	}
	if !s.anchor.entryDate.Equal(rc.entryDate) {
		return nil, dErrors.Newf(dErrors.CodeMissingHoH,
			"preceding head of household entered on %s, this row on %s",
			models.FormatDate(s.anchor.entryDate), models.FormatDate(rc.entryDate))
	}
	return s.anchor.member, nil
}

// project gets or creates a project by name.
func (s *session) project(ctx context.Context, name string) (*models.Project, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "program name is required")
	}
	p, err := s.store.FindProjectByName(ctx, name)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up project")
	}
	p = &models.Project{ID: id.NewProjectID(), Name: name, CreatedAt: s.now()}
	if err := s.store.CreateProject(ctx, p); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create project")
	}
	s.report.ProjectsCreated++
	s.logger.DebugContext(ctx, "created project", "project_id", p.ID, "name", name)
	return p, nil
}
