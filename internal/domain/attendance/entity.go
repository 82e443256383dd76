package attendance

import (
	"time"

	"github.com/nominalab/asistencia-backend/internal/pkg/dateparse"
)

// Confirmation statuses. Pendiente is the initial status for manual entry,
// import and materialized absences; Confirmada is set by a human validator
// and can be reversed.
const (
	StatusPendiente  = "Pendiente"
	StatusConfirmada = "Confirmada"
)

var StatusValues = []string{StatusPendiente, StatusConfirmada}

// Attendance is one employee's punch record for one calendar date. Entrada
// nil means no punch was recorded at all. Records are created once per
// (employee, date) pair and are corrected or superseded, never deleted.
type Attendance struct {
	ID          string
	EmployeeID  string
	Date        dateparse.Date
	Entrada     *dateparse.TimeOfDay
	Salida      *dateparse.TimeOfDay
	Observation string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined for display
	EmployeeName *string
	EmployeeCode *string
}

// Reconciliation is the derived comparison of a punch against the schedule
// slot for its day. It is computed fresh on every read and never persisted,
// so later catalog changes are always reflected.
//
// Applies=false means the day could not be evaluated (no active slot or no
// expected times); IsLate and IsAbsent are then nil, which renders as "—",
// never as a false "No".
type Reconciliation struct {
	Applies         bool
	ExpectedEntrada *dateparse.TimeOfDay
	ExpectedSalida  *dateparse.TimeOfDay
	IsLate          *bool
	IsAbsent        *bool
}
