package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/carsapp/cars/internal/domain/car"
	ierr "github.com/carsapp/cars/internal/errors"
	"github.com/carsapp/cars/internal/logger"
	"github.com/carsapp/cars/internal/postgres"
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
)

var columns = []string{"id", "brand", "registration", "country", "status", "created_at", "updated_at"}

type CarRepositorySuite struct {
	suite.Suite
	ctx   context.Context
	mock  sqlmock.Sqlmock
	repo  *carRepository
	clock time.Time
}

func TestCarRepository(t *testing.T) {
	suite.Run(t, new(CarRepositorySuite))
}

func (s *CarRepositorySuite) SetupTest() {
	db, mock, err := sqlmock.New()
	s.Require().NoError(err)

	s.ctx = context.Background()
	s.mock = mock
	s.clock = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	repo := NewCarRepository(postgres.NewDBFromSQLX(sqlx.NewDb(db, "sqlmock"), logger.NewNopLogger()), logger.NewNopLogger())
	s.repo = repo.(*carRepository)
	s.repo.now = func() time.Time { return s.clock }
}

func (s *CarRepositorySuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *CarRepositorySuite) registration() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (s *CarRepositorySuite) TestCreateStampsAndAssignsID() {
	c := car.New("BMW", s.registration(), "Spain")

	s.mock.ExpectQuery(`INSERT INTO cars`).
		WithArgs("BMW", sqlmock.AnyArg(), "Spain", false, s.clock, s.clock).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	s.Require().NoError(s.repo.Create(s.ctx, c))
	s.Equal(int64(7), c.ID)
	s.Equal(s.clock, c.CreatedAt.Time)
	s.Equal(c.CreatedAt, c.UpdatedAt)
}

func (s *CarRepositorySuite) TestCreateMarksDatabaseErrors() {
	s.mock.ExpectQuery(`INSERT INTO cars`).WillReturnError(errors.New("connection reset"))

	err := s.repo.Create(s.ctx, car.New("BMW", s.registration(), "Spain"))
	s.Error(err)
	s.True(ierr.IsDatabase(err))
}

func (s *CarRepositorySuite) TestFind() {
	s.mock.ExpectQuery(`SELECT (.+) FROM cars WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(3), "BMW", s.registration(), "Spain", true, s.clock, s.clock))

	c, err := s.repo.Find(s.ctx, 3)
	s.Require().NoError(err)
	s.Require().NotNil(c)
	s.Equal(int64(3), c.ID)
	s.Equal("BMW", c.Brand)
	s.True(c.Status)
	s.Equal(s.registration(), c.Registration.Time)
}

func (s *CarRepositorySuite) TestFindMissingIsNotAnError() {
	s.mock.ExpectQuery(`SELECT (.+) FROM cars WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	c, err := s.repo.Find(s.ctx, 99)
	s.NoError(err)
	s.Nil(c)
}

func (s *CarRepositorySuite) TestFindAllEmpty() {
	s.mock.ExpectQuery(`SELECT (.+) FROM cars ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(columns))

	cars, err := s.repo.FindAll(s.ctx)
	s.Require().NoError(err)
	s.NotNil(cars)
	s.Empty(cars)
}

func (s *CarRepositorySuite) TestFindByStatus() {
	s.mock.ExpectQuery(`SELECT (.+) FROM cars WHERE status = \$1`).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), "BMW", s.registration(), "Spain", false, s.clock, s.clock).
			AddRow(int64(2), "Audi", s.registration(), "France", false, s.clock, s.clock))

	cars, err := s.repo.FindByStatus(s.ctx, false)
	s.Require().NoError(err)
	s.Len(cars, 2)
	s.Equal("Audi", cars[1].Brand)
}

func (s *CarRepositorySuite) TestUpdateReadsBackCreatedAt() {
	created := s.clock.Add(-time.Hour)
	c := car.New("Audi", s.registration(), "Spain")
	c.ID = 5

	s.mock.ExpectQuery(`UPDATE cars SET`).
		WithArgs("Audi", sqlmock.AnyArg(), "Spain", false, s.clock, int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "created_at", "updated_at"}).AddRow(false, created, s.clock))

	s.Require().NoError(s.repo.Update(s.ctx, c))
	s.Equal(created, c.CreatedAt.Time)
	s.Equal(s.clock, c.UpdatedAt.Time)
}

func (s *CarRepositorySuite) TestUpdateKeepsStoredActiveStatus() {
	c := car.New("Audi", s.registration(), "Spain")
	c.ID = 5

	s.mock.ExpectQuery(`UPDATE cars SET .*status = cars\.status OR \$4`).
		WithArgs("Audi", sqlmock.AnyArg(), "Spain", false, s.clock, int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "created_at", "updated_at"}).AddRow(true, s.clock, s.clock))

	s.Require().NoError(s.repo.Update(s.ctx, c))
	s.True(c.Status)
}

func (s *CarRepositorySuite) TestActivateWritesStatusOnly() {
	s.mock.ExpectExec(`UPDATE cars SET\s+status = TRUE,\s+updated_at = GREATEST\(\$1, created_at\)\s+WHERE id = \$2 AND status = FALSE`).
		WithArgs(s.clock, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	activated, err := s.repo.Activate(s.ctx, 3)
	s.Require().NoError(err)
	s.True(activated)
}

func (s *CarRepositorySuite) TestActivateAlreadyActive() {
	s.mock.ExpectExec(`UPDATE cars SET`).
		WithArgs(s.clock, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	activated, err := s.repo.Activate(s.ctx, 3)
	s.Require().NoError(err)
	s.False(activated)
}

func (s *CarRepositorySuite) TestActivateMarksDatabaseErrors() {
	s.mock.ExpectExec(`UPDATE cars SET`).WillReturnError(errors.New("connection reset"))

	_, err := s.repo.Activate(s.ctx, 3)
	s.True(ierr.IsDatabase(err))
}

func (s *CarRepositorySuite) TestUpdateMissingRow() {
	c := car.New("Audi", s.registration(), "Spain")
	c.ID = 5

	s.mock.ExpectQuery(`UPDATE cars SET`).WillReturnError(sql.ErrNoRows)

	err := s.repo.Update(s.ctx, c)
	s.True(ierr.IsNotFound(err))
}

func (s *CarRepositorySuite) TestDelete() {
	c := &car.Car{ID: 4}

	s.mock.ExpectExec(`DELETE FROM cars WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(s.repo.Delete(s.ctx, c))
}

func (s *CarRepositorySuite) TestDeleteMissingRow() {
	s.mock.ExpectExec(`DELETE FROM cars`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.repo.Delete(s.ctx, &car.Car{ID: 4})
	s.True(ierr.IsNotFound(err))
}
