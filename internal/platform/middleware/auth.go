package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"coursehub/internal/token"
	dErrors "coursehub/pkg/domain-errors"
	"coursehub/pkg/platform/httputil"
)

// TokenVerifier is the slice of the token service the middleware needs.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Identity, error)
}

type contextKeySubjectID struct{}
type contextKeyEmail struct{}

var (
	ContextKeySubjectID = contextKeySubjectID{}
	ContextKeyEmail     = contextKeyEmail{}
)

// GetSubjectID retrieves the authenticated subject ID from the context.
func GetSubjectID(ctx context.Context) string {
	subjectID, ok := ctx.Value(ContextKeySubjectID).(string)
	if !ok {
		return ""
	}
	return subjectID
}

// GetEmail retrieves the authenticated email from the context.
func GetEmail(ctx context.Context) string {
	email, ok := ctx.Value(ContextKeyEmail).(string)
	if !ok {
		return ""
	}
	return email
}

// RequireAuth rejects requests without a valid bearer token and stashes the
// verified identity in the request context. Verification failures are not
// differentiated for the caller beyond "invalid or expired".
func RequireAuth(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")

			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", GetRequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token"))
				return
			}

			ctx = context.WithValue(ctx, ContextKeySubjectID, identity.SubjectID)
			ctx = context.WithValue(ctx, ContextKeyEmail, identity.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
