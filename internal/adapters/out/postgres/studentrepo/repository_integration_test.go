package studentrepo_test

import (
	"context"
	"testing"

	"bookdesk/internal/adapters/out/postgres/pgtest"
	"bookdesk/internal/adapters/out/postgres/studentrepo"
	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/student"
	"bookdesk/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type StudentRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *studentrepo.GormStudentRepository
}

func (suite *StudentRepositoryIntegrationTestSuite) SetupSuite() {
	suite.pg = pgtest.Start(context.Background(), suite.T())
}

func (suite *StudentRepositoryIntegrationTestSuite) SetupTest() {
	suite.pg.Truncate(suite.T())
	suite.repository = studentrepo.NewGormStudentRepository(suite.pg.DB)
}

func (suite *StudentRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.pg.Terminate(suite.T())
}

func (suite *StudentRepositoryIntegrationTestSuite) TestUpsertBySeatID_ReimportKeepsID() {
	ctx := context.Background()
	first, err := student.NewStudent(kernel.NewUUID(), "Ali", "09-2025-001", 1)
	suite.Require().NoError(err)

	id, err := suite.repository.UpsertBySeatID(ctx, first)
	suite.Require().NoError(err)
	suite.True(id.IsEqual(first.ID()))

	moved, err := student.NewStudent(kernel.NewUUID(), "Ali Hassan", "09-2025-001", 2)
	suite.Require().NoError(err)
	id, err = suite.repository.UpsertBySeatID(ctx, moved)
	suite.Require().NoError(err)
	suite.True(id.IsEqual(first.ID()), "existing seat keeps its id")

	stored, err := suite.repository.Get(ctx, first.ID())
	suite.Require().NoError(err)
	suite.Equal("Ali Hassan", stored.Name())
	suite.Equal(2, stored.ClassID())
}

func (suite *StudentRepositoryIntegrationTestSuite) TestCountExisting() {
	ctx := context.Background()
	a := suite.pg.SeedStudent(suite.T(), "A", 1)
	b := suite.pg.SeedStudent(suite.T(), "B", 1)

	n, err := suite.repository.CountExisting(ctx, []kernel.UUID{a.ID(), b.ID(), kernel.NewUUID()})
	suite.Require().NoError(err)
	suite.EqualValues(2, n)

	n, err = suite.repository.CountExisting(ctx, nil)
	suite.Require().NoError(err)
	suite.Zero(n)
}

func (suite *StudentRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestStudentRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(StudentRepositoryIntegrationTestSuite))
}
