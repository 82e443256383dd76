package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/nominalab/asistencia-backend/internal/domain/auth"
	"github.com/nominalab/asistencia-backend/internal/domain/user"
	"github.com/nominalab/asistencia-backend/internal/handler/http/response"
)

type callerKey struct{}

// AuthRequired rejects requests without a valid access token and stores the
// caller's identity in the request context. Services receive that identity
// as an explicit argument; nothing below the handler layer reads claims.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
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

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			caller, err := callerFromClaims(claims)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), callerKey{}, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

func callerFromClaims(claims map[string]interface{}) (user.CallerContext, error) {
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.CallerContext{}, auth.ErrInvalidToken
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return user.CallerContext{}, auth.ErrInvalidToken
	}
	role, err := user.ParseRole(roleStr)
	if err != nil {
		return user.CallerContext{}, err
	}

	caller := user.CallerContext{UserID: userID, Role: role}
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		caller.EmployeeID = &employeeID
	}
	return caller, nil
}

// Caller returns the identity stored by AuthRequired.
func Caller(ctx context.Context) (user.CallerContext, bool) {
	caller, ok := ctx.Value(callerKey{}).(user.CallerContext)
	return caller, ok
}
