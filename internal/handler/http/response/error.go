package response

import (
	"errors"
	"net/http"

	"github.com/nominalab/asistencia-backend/internal/domain/attendance"
	"github.com/nominalab/asistencia-backend/internal/domain/auth"
	"github.com/nominalab/asistencia-backend/internal/domain/employee"
	"github.com/nominalab/asistencia-backend/internal/domain/schedule"
	"github.com/nominalab/asistencia-backend/internal/domain/user"
	"github.com/nominalab/asistencia-backend/internal/pkg/dateparse"
	"github.com/nominalab/asistencia-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrUserInactive):
		Forbidden(w, "User account is deactivated")
	case errors.Is(err, user.ErrValidatorRequired):
		Forbidden(w, "RRHH or admin role required")
	case errors.Is(err, user.ErrOwnRecordsOnly):
		Forbidden(w, "Employees may only access their own records")
	case errors.Is(err, user.ErrCallerNotEmployee):
		Forbidden(w, "Caller has no employee identity")
	case errors.Is(err, user.ErrUnknownRole):
		Forbidden(w, "Unknown role")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Employee
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Conflict(w, "Employee is deactivated")

	// Schedule
	case errors.Is(err, schedule.ErrWorkScheduleNotFound):
		NotFound(w, "Work schedule not found")
	case errors.Is(err, schedule.ErrWorkScheduleNameExists):
		Conflict(w, "Work schedule name already exists")
	case errors.Is(err, schedule.ErrDuplicateDayOfWeek):
		UnprocessableEntity(w, "Duplicate day of week in schedule")
	case errors.Is(err, schedule.ErrInvalidDayOfWeek):
		UnprocessableEntity(w, "Day of week must be between 1 (Sunday) and 7 (Saturday)")
	case errors.Is(err, schedule.ErrNoScheduleAssigned):
		NotFound(w, "Employee has no assigned work schedule")
	case errors.Is(err, schedule.ErrAssignmentNotFound):
		NotFound(w, "Schedule assignment not found")

	// Attendance
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceExists):
		Conflict(w, "Attendance record already exists for this employee and date")
	case errors.Is(err, attendance.ErrInvalidStatus):
		UnprocessableEntity(w, "Status must be Pendiente or Confirmada")
	case errors.Is(err, attendance.ErrEmptyImportFile):
		BadRequest(w, "Import file has no usable rows", nil)

	// Date parsing
	case errors.Is(err, dateparse.ErrUnparseableDate):
		UnprocessableEntity(w, "Date could not be interpreted")
	case errors.Is(err, dateparse.ErrUnparseableTime):
		UnprocessableEntity(w, "Time must be HH:MM or HH:MM:SS")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
