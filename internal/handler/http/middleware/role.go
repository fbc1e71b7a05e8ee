package middleware

import (
	"fmt"
	"net/http"

	"github.com/motorph/payroll-backend-go/internal/domain/auth"
	"github.com/motorph/payroll-backend-go/internal/domain/user"
	"github.com/motorph/payroll-backend-go/internal/handler/http/response"
)

// RequireWorker requires a token linked to a worker record
func RequireWorker(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := IdentityFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if id.WorkerID == nil {
			response.HandleError(w, auth.ErrAccountNotLinked)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := IdentityFromContext(r.Context())
			if err != nil {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			if !user.HasPermission(id.Role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, id.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
