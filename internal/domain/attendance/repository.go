package attendance

import (
	"context"

	"github.com/nominalab/asistencia-backend/internal/pkg/dateparse"
)

type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil when no record exists for the pair.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date dateparse.Date) (*Attendance, error)

	// List returns rows matching the filter in (date, employee code) order,
	// plus the unpaginated total.
	List(ctx context.Context, filter Filter) ([]Attendance, int64, error)

	// Update persists a correction edit (entrada/salida/observation). It
	// never touches Status; SetStatus is the only status mutation path.
	Update(ctx context.Context, att Attendance) error

	SetStatus(ctx context.Context, id string, status string) (Attendance, error)

	// Upsert inserts the punch or, when the (employee, date) pair already
	// has a row, updates its entrada/salida/observation. Reports whether a
	// new row was inserted. Used by bulk import.
	Upsert(ctx context.Context, att Attendance) (inserted bool, err error)
}
