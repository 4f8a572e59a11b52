//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"coursehub/internal/enrollment/store"
	"coursehub/pkg/platform/sentinel"
	"coursehub/pkg/testutil/containers"
)

// LedgerContractSuite runs the same assertions against any Ledger backend.
type LedgerContractSuite struct {
	suite.Suite
	ledger store.Ledger
}

func (s *LedgerContractSuite) TestAddCourse() {
	ctx := context.Background()

	s.Require().NoError(s.ledger.AddCourse(ctx, "owner-1", "go-101"))
	s.ErrorIs(s.ledger.AddCourse(ctx, "owner-1", "go-101"), sentinel.ErrDuplicate)

	// The same course for a different owner is not a duplicate.
	s.NoError(s.ledger.AddCourse(ctx, "owner-2", "go-101"))
}

func (s *LedgerContractSuite) TestAddCoursesIsIdempotent() {
	ctx := context.Background()

	s.Require().NoError(s.ledger.AddCourses(ctx, "owner-3", []string{"go-101", "sql-201"}))
	s.Require().NoError(s.ledger.AddCourses(ctx, "owner-3", []string{"sql-201", "http-301"}))

	courses, err := s.ledger.ListCourses(ctx, "owner-3")
	s.Require().NoError(err)
	s.Equal([]string{"go-101", "http-301", "sql-201"}, courses)
}

func (s *LedgerContractSuite) TestQueries() {
	ctx := context.Background()

	courses, err := s.ledger.ListCourses(ctx, "unknown-owner")
	s.Require().NoError(err)
	s.Empty(courses)

	enrolled, err := s.ledger.IsEnrolled(ctx, "unknown-owner", "go-101")
	s.Require().NoError(err)
	s.False(enrolled)

	s.Require().NoError(s.ledger.AddCourse(ctx, "owner-4", "go-101"))

	enrolled, err = s.ledger.IsEnrolled(ctx, "owner-4", "go-101")
	s.Require().NoError(err)
	s.True(enrolled)
}

type PostgresLedgerSuite struct {
	LedgerContractSuite
	pg *containers.PostgresContainer
}

func TestPostgresLedgerSuite(t *testing.T) {
	suite.Run(t, new(PostgresLedgerSuite))
}

func (s *PostgresLedgerSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())

	_, err := s.pg.Pool.Exec(context.Background(), store.Schema)
	s.Require().NoError(err)
}

func (s *PostgresLedgerSuite) SetupTest() {
	_, err := s.pg.Pool.Exec(context.Background(), "TRUNCATE enrollments")
	s.Require().NoError(err)
	s.ledger = store.NewPostgres(s.pg.Pool)
}

type RedisLedgerSuite struct {
	LedgerContractSuite
	redis *containers.RedisContainer
}

func TestRedisLedgerSuite(t *testing.T) {
	suite.Run(t, new(RedisLedgerSuite))
}

func (s *RedisLedgerSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
}

func (s *RedisLedgerSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	s.ledger = store.NewRedis(s.redis.Client)
}
