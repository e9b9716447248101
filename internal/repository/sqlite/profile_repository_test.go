package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/repository"
	"github.com/vytor/ncertflash/internal/repository/sqlite"
	"github.com/vytor/ncertflash/internal/testutil"
)

type ProfileRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ProfileRepository
}

func (s *ProfileRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProfileRepository(s.db)
}

func (s *ProfileRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProfileRepositorySuite) TestCreateGetList() {
	ctx := context.Background()

	p, err := s.repo.Create(ctx, models.Profile{Username: "ravi", FullName: "Ravi Kumar", Role: models.RoleTeacher, ClassLevel: 8})
	s.Require().NoError(err)
	s.Assert().Greater(p.ID, int64(0))
	s.Assert().True(p.IsTeacher())

	got, err := s.repo.Get(ctx, p.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("Ravi Kumar", got.FullName)
	s.Assert().Equal(8, got.ClassLevel)

	byName, err := s.repo.GetByUsername(ctx, "ravi")
	s.Require().NoError(err)
	s.Require().NotNil(byName)
	s.Assert().Equal(p.ID, byName.ID)

	_, err = s.repo.Create(ctx, models.Profile{Username: "meera", Role: models.RoleStudent, ClassLevel: 6})
	s.Require().NoError(err)

	all, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Assert().Len(all, 2)
}

func (s *ProfileRepositorySuite) TestCreate_DuplicateUsername() {
	ctx := context.Background()
	_, err := s.repo.Create(ctx, models.Profile{Username: "ravi", Role: models.RoleStudent, ClassLevel: 6})
	s.Require().NoError(err)

	_, err = s.repo.Create(ctx, models.Profile{Username: "ravi", Role: models.RoleStudent, ClassLevel: 6})
	s.Assert().ErrorIs(err, repository.ErrDuplicate)
}

func (s *ProfileRepositorySuite) TestGet_NotFound() {
	p, err := s.repo.Get(context.Background(), 999)
	s.Require().NoError(err)
	s.Assert().Nil(p)
}

func (s *ProfileRepositorySuite) TestDelete_CascadesFlashcards() {
	ctx := context.Background()
	p, err := s.repo.Create(ctx, models.Profile{Username: "ravi", Role: models.RoleStudent, ClassLevel: 6})
	s.Require().NoError(err)

	cards := sqlite.NewFlashcardRepository(s.db)
	_, err = cards.Insert(ctx, models.Flashcard{ProfileID: p.ID, Front: "f", Back: "b", Subject: "Science", Chapter: "Custom", Difficulty: "medium", EaseFactor: 2.5, NextReview: baseTime})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(ctx, p.ID))

	var n int
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM flashcards`).Scan(&n))
	s.Assert().Zero(n)

	s.Assert().ErrorIs(s.repo.Delete(ctx, p.ID), repository.ErrNotFound)
}

func TestProfileRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProfileRepositorySuite))
}
