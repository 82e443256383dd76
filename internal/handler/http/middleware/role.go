package middleware

import (
	"net/http"

	"github.com/nominalab/asistencia-backend/internal/domain/user"
	"github.com/nominalab/asistencia-backend/internal/handler/http/response"
)

// RequireValidator gates catalog and employee management to rrhh and admin
// callers. Attendance routes do their own scoping inside the service, where
// empleado callers keep read access to their own rows.
func RequireValidator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := Caller(r.Context())
		if !ok || !caller.CanValidate() {
			response.HandleError(w, user.ErrValidatorRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
