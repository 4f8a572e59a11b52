package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	dErrors "coursehub/pkg/domain-errors"
)

type TokenServiceSuite struct {
	suite.Suite
	service *Service
}

func TestTokenServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceSuite))
}

func (s *TokenServiceSuite) SetupTest() {
	svc, err := New("test-signing-key", time.Hour)
	s.Require().NoError(err)
	s.service = svc
}

func TestNewRejectsEmptySigningKey(t *testing.T) {
	_, err := New("", time.Hour)
	require.Error(t, err)
	require.True(t, dErrors.Is(err, dErrors.CodeInternal))
}

func (s *TokenServiceSuite) TestIssueAndVerifyRoundTrip() {
	signed, err := s.service.Issue("abc", "a@x.com")
	s.Require().NoError(err)
	s.NotEmpty(signed)

	identity, err := s.service.Verify(signed)
	s.Require().NoError(err)
	s.Equal("abc", identity.SubjectID)
	s.Equal("a@x.com", identity.Email)
}

func (s *TokenServiceSuite) TestVerifyFailures() {
	s.Run("garbage token is unauthorized", func() {
		_, err := s.service.Verify("not-a-token")
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeUnauthorized))
	})

	s.Run("token signed with another key is unauthorized", func() {
		other, err := New("completely-different-key", time.Hour)
		s.Require().NoError(err)
		signed, err := other.Issue("abc", "a@x.com")
		s.Require().NoError(err)

		_, err = s.service.Verify(signed)
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeUnauthorized))
	})

	s.Run("expired token is unauthorized with the same message", func() {
		now := time.Now()
		svc, err := New("test-signing-key", time.Hour, WithClock(func() time.Time { return now }))
		s.Require().NoError(err)

		signed, err := svc.Issue("abc", "a@x.com")
		s.Require().NoError(err)

		// Jump past expiry.
		now = now.Add(2 * time.Hour)
		_, err = svc.Verify(signed)
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeUnauthorized))
		s.Contains(err.Error(), "invalid or expired token")
	})
}
