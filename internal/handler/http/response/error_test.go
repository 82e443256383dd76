package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nominalab/asistencia-backend/internal/domain/attendance"
	"github.com/nominalab/asistencia-backend/internal/domain/user"
	"github.com/nominalab/asistencia-backend/internal/pkg/dateparse"
)

func TestHandleErrorStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validator required", user.ErrValidatorRequired, http.StatusForbidden},
		{"own records only", user.ErrOwnRecordsOnly, http.StatusForbidden},
		{"caller not employee", user.ErrCallerNotEmployee, http.StatusForbidden},
		{"unknown role", user.ErrUnknownRole, http.StatusForbidden},
		{"attendance not found", attendance.ErrAttendanceNotFound, http.StatusNotFound},
		{"duplicate attendance", attendance.ErrAttendanceExists, http.StatusConflict},
		{"invalid status", attendance.ErrInvalidStatus, http.StatusUnprocessableEntity},
		{"unparseable date", dateparse.ErrUnparseableDate, http.StatusUnprocessableEntity},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, c.err)
			assert.Equal(t, c.want, rec.Code)
		})
	}
}
