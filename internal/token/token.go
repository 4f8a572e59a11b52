// Package token issues and verifies the signed identity tokens that
// authenticate every enrollment call.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "coursehub/pkg/domain-errors"
)

// Identity is the verified payload of a token: who the subject is. The
// subject doubles as the enrollment ledger owner key.
type Identity struct {
	SubjectID string
	Email     string
}

// Claims is the on-the-wire JWT claim set.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service signs and verifies identity tokens with a server-held HMAC secret.
type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
	now        func() time.Time
}

// Option adjusts optional Service behavior.
type Option func(*Service)

// WithClock overrides the time source; tests use it to cross expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New builds a token Service. An empty signing key is a configuration fault
// and is rejected here so it cannot surface per-request.
func New(signingKey string, ttl time.Duration, opts ...Option) (*Service, error) {
	if signingKey == "" {
		return nil, dErrors.New(dErrors.CodeInternal, "token signing key is not configured")
	}
	s := &Service{
		signingKey: []byte(signingKey),
		issuer:     "coursehub",
		ttl:        ttl,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue produces a signed token for the subject, expiring after the
// configured TTL.
func (s *Service) Issue(subjectID, email string) (string, error) {
	now := s.now()
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})

	signed, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not sign token")
	}
	return signed, nil
}

// Verify parses and validates a token. Malformed, wrong-key, and expired
// tokens all come back as the same unauthorized error; callers must not be
// able to distinguish them.
func (s *Service) Verify(tokenString string) (*Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.now))

	// One opaque failure for malformed, wrong key, and expired alike.
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token")
	}
	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token")
	}

	return &Identity{SubjectID: claims.Subject, Email: claims.Email}, nil
}
