package service

import (
	"context"
	"time"

	"hmis/internal/hmis/models"
	id "hmis/pkg/domain"
)

type ProjectStore interface {
	CreateProject(ctx context.Context, p *models.Project) error
	FindProjectByName(ctx context.Context, name string) (*models.Project, error)
}

type ClientStore interface {
	CreateClient(ctx context.Context, c *models.Client) error
	UpdateClient(ctx context.Context, c *models.Client) error
	FindClientsBySSN(ctx context.Context, ssn string) ([]*models.Client, error)
	FindClientsByNameAndDOB(ctx context.Context, first, last string, dob time.Time) ([]*models.Client, error)
}

type HouseholdStore interface {
	CreateHousehold(ctx context.Context, h *models.Household) error
}

type MemberStore interface {
	CreateMember(ctx context.Context, m *models.HouseholdMember) error
	UpdateMember(ctx context.Context, m *models.HouseholdMember) error
	FindMember(ctx context.Context, clientID id.ClientID, projectName string, entryDate time.Time) (*models.HouseholdMember, error)
	FindLatestMemberBySSN(ctx context.Context, ssn string, onOrBefore time.Time) (*models.HouseholdMember, error)
}

type AssessmentStore interface {
	CreateAssessment(ctx context.Context, a *models.Assessment) error
	FindAssessment(ctx context.Context, memberID id.MemberID, kind models.AssessmentKind, date time.Time) (*models.Assessment, error)
}

// Store is everything a load reads and writes.
type Store interface {
	ProjectStore
	ClientStore
	HouseholdStore
	MemberStore
	AssessmentStore
}

// StoreTx runs fn in one transaction. Stores called with the context passed
// to fn take part in it.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
