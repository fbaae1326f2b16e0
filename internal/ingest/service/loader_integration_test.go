//go:build integration

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"hmis/internal/hmis/models"
	"hmis/internal/hmis/store/postgres"
	dErrors "hmis/pkg/domain-errors"
	"hmis/pkg/testutil/containers"
)

type PostgresLoaderSuite struct {
	suite.Suite
	ctx    context.Context
	pg     *containers.PostgresContainer
	store  *postgres.Store
	loader *Loader
}

func TestPostgresLoaderSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresLoaderSuite))
}

func (s *PostgresLoaderSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = postgres.NewPostgres(s.pg.DB)
	s.Require().NoError(s.store.Migrate(s.ctx))
	loader, err := New(s.store, s.store)
	s.Require().NoError(err)
	s.loader = loader
}

func (s *PostgresLoaderSuite) SetupTest() {
	err := s.pg.TruncateTables(s.ctx, "assessments", "household_members", "households", "clients", "projects")
	s.Require().NoError(err)
}

func (s *PostgresLoaderSuite) TestReloadIsIdempotent() {
	rows := []row{head("Ann", "Doe", ""), child("Tim", ""), head("Jane", "Roe", "123-45-6789"), child("Sue", "123456789")}

	first, err := s.loader.Load(s.ctx, table(s.T(), rows...), LoadOptions{})
	s.Require().NoError(err)
	s.Equal(4, first.ClientsCreated)
	s.Equal(2, first.HouseholdsCreated)

	second, err := s.loader.Load(s.ctx, table(s.T(), rows...), LoadOptions{})
	s.Require().NoError(err)
	s.Equal(0, second.ClientsCreated)
	s.Equal(4, second.MembersReused)
	s.Equal(0, second.TotalAssessments())

	households, err := s.store.ListHouseholds(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(households, 2)
	var members int
	for _, h := range households {
		list, err := s.store.ListMembersByHousehold(s.ctx, h.ID)
		s.Require().NoError(err)
		s.True(list[0].IsHead())
		members += len(list)
	}
	s.Equal(4, members)
}

func (s *PostgresLoaderSuite) TestFailedLoadRollsBack() {
	_, err := s.loader.Load(s.ctx, table(s.T(), head("Jane", "Doe", "123456789"), child("Tim", "")), LoadOptions{})
	s.True(dErrors.HasCode(err, dErrors.CodeMissingHoH))

	clients, err := s.store.ListClients(s.ctx)
	s.Require().NoError(err)
	s.Empty(clients)
	entries, err := s.store.ListAssessments(s.ctx, models.KindEntry)
	s.Require().NoError(err)
	s.Empty(entries)
}
