package middleware

import (
	"net/http"

	"hospital-management-api/internal/domain/access"
	"hospital-management-api/pkg/response"
)

// Authorize applies the coarse role gate for res/op before the handler reads
// the body, so a denied caller gets 403 whatever the payload or target.
// It must run after Authenticate.
func Authorize(matrix *access.Matrix, res access.Resource, op access.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActorFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			if err := matrix.Authorize(actor, res, op); err != nil {
				response.FromError(w, nil, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
