package attendance

import (
	"github.com/nominalab/asistencia-backend/internal/pkg/dateparse"
	"github.com/nominalab/asistencia-backend/internal/pkg/validator"
)

// Filter selects attendance rows for listing and batch enrichment. A
// date-range query can return many rows per employee, which is why
// enrichment bounds schedule lookups by distinct employee, not by row.
type Filter struct {
	EmployeeID *string
	DateFrom   *dateparse.Date
	DateTo     *dateparse.Date
	Status     *string
	Page       int
	Limit      int
}

// CreateAttendanceRequest is a manual punch entry. Date is deliberately
// untyped: manual entry, filters and imports feed ISO strings, locale
// strings, serial numbers or epoch timestamps, and the normalizer decides.
type CreateAttendanceRequest struct {
	EmployeeID  string  `json:"employee_id"`
	Date        any     `json:"date"`
	Entrada     *string `json:"entrada,omitempty"`
	Salida      *string `json:"salida,omitempty"`
	Observation string  `json:"observation,omitempty"`
}

func (r CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	if r.Date == nil {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date is required"})
	}
	if r.Entrada != nil {
		if _, err := dateparse.ParseTimeOfDay(*r.Entrada); err != nil {
			errs = append(errs, validator.ValidationError{Field: "entrada", Message: "must be HH:MM or HH:MM:SS"})
		}
	}
	if r.Salida != nil {
		if _, err := dateparse.ParseTimeOfDay(*r.Salida); err != nil {
			errs = append(errs, validator.ValidationError{Field: "salida", Message: "must be HH:MM or HH:MM:SS"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateAttendanceRequest is a correction edit. It can change entrada,
// salida and observation but never the confirmation status: an edited
// Confirmada record stays Confirmada unless explicitly unconfirmed.
type UpdateAttendanceRequest struct {
	ID          string  `json:"-"`
	Entrada     *string `json:"entrada,omitempty"`
	Salida      *string `json:"salida,omitempty"`
	Observation *string `json:"observation,omitempty"`
	ClearTimes  bool    `json:"clear_times,omitempty"`
}

func (r UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "must be a valid UUID"})
	}
	if r.Entrada != nil {
		if _, err := dateparse.ParseTimeOfDay(*r.Entrada); err != nil {
			errs = append(errs, validator.ValidationError{Field: "entrada", Message: "must be HH:MM or HH:MM:SS"})
		}
	}
	if r.Salida != nil {
		if _, err := dateparse.ParseTimeOfDay(*r.Salida); err != nil {
			errs = append(errs, validator.ValidationError{Field: "salida", Message: "must be HH:MM or HH:MM:SS"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

func (r SetStatusRequest) Validate() error {
	if !validator.IsInSlice(r.Status, StatusValues) {
		return ErrInvalidStatus
	}
	return nil
}

// ReconciliationResponse mirrors Reconciliation on the wire. Nil flags mean
// "cannot evaluate" and render as a dash, never as a false "No".
type ReconciliationResponse struct {
	Applies         bool    `json:"applies"`
	ExpectedEntrada *string `json:"expected_entrada,omitempty"`
	ExpectedSalida  *string `json:"expected_salida,omitempty"`
	IsLate          *bool   `json:"is_late"`
	IsAbsent        *bool   `json:"is_absent"`
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	Entrada      *string `json:"entrada"`
	Salida       *string `json:"salida"`
	Observation  string  `json:"observation,omitempty"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`

	Reconciliation ReconciliationResponse `json:"reconciliation"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// ImportRowIssue explains one skipped import row to the caller; rejected
// rows surface here instead of silently disappearing.
type ImportRowIssue struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportSummary struct {
	Inserted int              `json:"inserted"`
	Updated  int              `json:"updated"`
	Skipped  int              `json:"skipped"`
	Issues   []ImportRowIssue `json:"issues,omitempty"`
}
