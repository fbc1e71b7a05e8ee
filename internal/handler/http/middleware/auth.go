package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/jwtauth/v5"
	"github.com/motorph/payroll-backend-go/internal/domain/auth"
	"github.com/motorph/payroll-backend-go/internal/domain/user"
	"github.com/motorph/payroll-backend-go/internal/handler/http/response"
	"github.com/motorph/payroll-backend-go/internal/pkg/jwt"
)

// Identity is the caller described by a verified access token.
type Identity struct {
	Username string
	Role     user.Role
	WorkerID *int
}

func (i Identity) IsAdmin() bool {
	return i.Role == user.RoleAdmin
}

// AuthRequired rejects requests without a valid, unrevoked access token.
// jwtauth.Verifier must run first.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims[jwt.ClaimType].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// IdentityFromContext reads the caller from the verified token claims.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, auth.ErrInvalidToken
	}

	username, _ := claims[jwt.ClaimUsername].(string)
	role, ok := claims[jwt.ClaimRole].(string)
	if !ok || username == "" {
		return Identity{}, auth.ErrInvalidToken
	}

	id := Identity{Username: username, Role: user.Role(role)}
	if workerID, ok := claimInt(claims[jwt.ClaimWorkerID]); ok {
		id.WorkerID = &workerID
	}
	return id, nil
}

// claimInt accepts the numeric shapes a JSON claim may decode into.
func claimInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	}
	return 0, false
}
