package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nominalab/asistencia-backend/internal/domain/auth"
	"github.com/nominalab/asistencia-backend/internal/domain/user"
)

func TestCallerFromClaims(t *testing.T) {
	claims := map[string]interface{}{
		"user_id":     "usr-1",
		"role":        "rrhh",
		"employee_id": "emp-1",
	}

	caller, err := callerFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", caller.UserID)
	assert.Equal(t, user.RoleRRHH, caller.Role)
	require.NotNil(t, caller.EmployeeID)
	assert.Equal(t, "emp-1", *caller.EmployeeID)
}

func TestCallerFromClaimsWithoutEmployeeIdentity(t *testing.T) {
	caller, err := callerFromClaims(map[string]interface{}{
		"user_id": "usr-1",
		"role":    "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, caller.Role)
	assert.Nil(t, caller.EmployeeID)
}

func TestCallerFromClaimsRejectsUnknownRole(t *testing.T) {
	_, err := callerFromClaims(map[string]interface{}{
		"user_id": "usr-1",
		"role":    "gerente",
	})
	assert.ErrorIs(t, err, user.ErrUnknownRole)
}

func TestCallerFromClaimsRejectsMissingClaims(t *testing.T) {
	cases := []map[string]interface{}{
		{"role": "rrhh"},
		{"user_id": "", "role": "rrhh"},
		{"user_id": "usr-1"},
	}
	for _, claims := range cases {
		_, err := callerFromClaims(claims)
		assert.ErrorIs(t, err, auth.ErrInvalidToken, "claims %v", claims)
	}
}
