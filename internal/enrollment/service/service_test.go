package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	catalog "coursehub/internal/catalog/models"
	"coursehub/internal/enrollment/store"
	dErrors "coursehub/pkg/domain-errors"
)

// fakeResolver serves course lookups from a fixed map, standing in for the
// catalog service.
type fakeResolver struct {
	courses map[string]*catalog.Course
}

func (f *fakeResolver) FindCourseByID(ctx context.Context, id string) (*catalog.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "course not found")
	}
	return course, nil
}

func (f *fakeResolver) FindCoursesByIDs(ctx context.Context, ids []string) ([]*catalog.Course, error) {
	var found []*catalog.Course
	for _, id := range ids {
		if course, ok := f.courses[id]; ok {
			found = append(found, course)
		}
	}
	return found, nil
}

type EnrollmentServiceSuite struct {
	suite.Suite
	ledger  *store.InMemoryLedger
	service *Service
}

func TestEnrollmentServiceSuite(t *testing.T) {
	suite.Run(t, new(EnrollmentServiceSuite))
}

func (s *EnrollmentServiceSuite) SetupTest() {
	s.ledger = store.NewMemory()
	resolver := &fakeResolver{courses: map[string]*catalog.Course{
		"go-101":   {ID: "go-101", Title: "Go Fundamentals"},
		"sql-201":  {ID: "sql-201", Title: "Advanced SQL"},
		"http-301": {ID: "http-301", Title: "HTTP Internals"},
	}}

	var err error
	s.service, err = New(s.ledger, resolver)
	s.Require().NoError(err)
}

func (s *EnrollmentServiceSuite) TestNew() {
	s.Run("nil ledger returns error", func() {
		_, err := New(nil, &fakeResolver{})
		s.Error(err)
		s.Contains(err.Error(), "ledger is required")
	})

	s.Run("nil resolver returns error", func() {
		_, err := New(s.ledger, nil)
		s.Error(err)
		s.Contains(err.Error(), "resolver is required")
	})
}

func (s *EnrollmentServiceSuite) TestBulkEnroll() {
	ctx := context.Background()

	s.Run("enrolls all requested courses", func() {
		err := s.service.BulkEnroll(ctx, "owner-1", []string{"go-101", "sql-201"})
		s.Require().NoError(err)

		enrolled, err := s.service.ListEnrolled(ctx, "owner-1")
		s.Require().NoError(err)
		s.Equal([]string{"go-101", "sql-201"}, enrolled)
	})

	s.Run("repeated and overlapping calls are idempotent per id", func() {
		s.Require().NoError(s.service.BulkEnroll(ctx, "owner-2", []string{"go-101", "sql-201"}))
		s.Require().NoError(s.service.BulkEnroll(ctx, "owner-2", []string{"sql-201", "http-301"}))
		s.Require().NoError(s.service.BulkEnroll(ctx, "owner-2", []string{"go-101", "go-101"}))

		enrolled, err := s.service.ListEnrolled(ctx, "owner-2")
		s.Require().NoError(err)
		s.Equal([]string{"go-101", "http-301", "sql-201"}, enrolled)
	})

	s.Run("empty course list is rejected", func() {
		err := s.service.BulkEnroll(ctx, "owner-3", nil)
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeBadRequest))
	})

	s.Run("all-or-nothing when any course is missing", func() {
		err := s.service.BulkEnroll(ctx, "owner-4", []string{"go-101", "no-such-course"})
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
		s.Contains(err.Error(), "some courses were not found")

		enrolled, err := s.service.ListEnrolled(ctx, "owner-4")
		s.Require().NoError(err)
		s.Empty(enrolled)
	})

	s.Run("missing owner id is rejected", func() {
		err := s.service.BulkEnroll(ctx, "", []string{"go-101"})
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeBadRequest))
	})
}

func (s *EnrollmentServiceSuite) TestEnrollOne() {
	ctx := context.Background()

	s.Run("first enrollment succeeds and returns the course", func() {
		course, err := s.service.EnrollOne(ctx, "owner-1", "go-101")
		s.Require().NoError(err)
		s.Equal("Go Fundamentals", course.Title)

		enrolled, err := s.service.IsEnrolled(ctx, "owner-1", "go-101")
		s.Require().NoError(err)
		s.True(enrolled)
	})

	s.Run("second enrollment fails and leaves the ledger unchanged", func() {
		_, err := s.service.EnrollOne(ctx, "owner-2", "go-101")
		s.Require().NoError(err)

		_, err = s.service.EnrollOne(ctx, "owner-2", "go-101")
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeAlreadyEnrolled))

		enrolled, err := s.service.ListEnrolled(ctx, "owner-2")
		s.Require().NoError(err)
		s.Equal([]string{"go-101"}, enrolled)
	})

	s.Run("unknown course is not found", func() {
		_, err := s.service.EnrollOne(ctx, "owner-3", "no-such-course")
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeNotFound))

		enrolled, err := s.service.ListEnrolled(ctx, "owner-3")
		s.Require().NoError(err)
		s.Empty(enrolled)
	})

	s.Run("missing course id is rejected", func() {
		_, err := s.service.EnrollOne(ctx, "owner-3", "")
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeBadRequest))
	})
}

func (s *EnrollmentServiceSuite) TestQueries() {
	ctx := context.Background()

	s.Run("owner with no record lists empty, not an error", func() {
		enrolled, err := s.service.ListEnrolled(ctx, "never-enrolled")
		s.Require().NoError(err)
		s.Empty(enrolled)
	})

	s.Run("isEnrolled is false for owner with no record", func() {
		enrolled, err := s.service.IsEnrolled(ctx, "never-enrolled", "go-101")
		s.Require().NoError(err)
		s.False(enrolled)
	})

	s.Run("populated listing resolves course records", func() {
		s.Require().NoError(s.service.BulkEnroll(ctx, "owner-5", []string{"go-101", "sql-201"}))

		courses, err := s.service.ListEnrolledCourses(ctx, "owner-5")
		s.Require().NoError(err)
		s.Len(courses, 2)
		titles := []string{courses[0].Title, courses[1].Title}
		s.ElementsMatch([]string{"Go Fundamentals", "Advanced SQL"}, titles)
	})

	s.Run("populated listing is empty for owner with no record", func() {
		courses, err := s.service.ListEnrolledCourses(ctx, "never-enrolled")
		s.Require().NoError(err)
		s.Empty(courses)
	})
}
