package schedule

import (
	"time"

	"github.com/nominalab/asistencia-backend/internal/pkg/dateparse"
)

// WorkSchedule is one catalog entry: a named weekly pattern of up to seven
// day templates that employees can be assigned to.
type WorkSchedule struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	Days []DayTemplate
}

// DayTemplate is one weekly slot of a work schedule. DayOfWeek runs 1=Sunday
// through 7=Saturday. Entrada/Salida may be nil for days without an expected
// shift. Salida numerically earlier than Entrada is a valid overnight shift.
type DayTemplate struct {
	ID             string
	WorkScheduleID string
	DayOfWeek      int
	Entrada        *dateparse.TimeOfDay
	Salida         *dateparse.TimeOfDay
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Assignment links an employee to their currently assigned work schedule.
// An employee has at most one current assignment.
type Assignment struct {
	ID             string
	EmployeeID     string
	WorkScheduleID string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CatalogEntry is the resolved weekly template for one employee, as consumed
// by reconciliation. An entry with no days means the employee has no usable
// schedule, so every day evaluates as "cannot evaluate".
type CatalogEntry struct {
	ScheduleID string
	Days       []DayTemplate
}

// EmptyEntry is what gets cached for employees whose schedule cannot be
// resolved, so a failing lookup is not retried for every row of a batch.
func EmptyEntry() CatalogEntry {
	return CatalogEntry{}
}

// Day returns the template for the given day-of-week slot, if present.
func (e CatalogEntry) Day(dayOfWeek int) (DayTemplate, bool) {
	for _, d := range e.Days {
		if d.DayOfWeek == dayOfWeek {
			return d, true
		}
	}
	return DayTemplate{}, false
}
