package schedule

import (
	"context"
)

// WorkScheduleRepository holds the schedule catalog.
type WorkScheduleRepository interface {
	Create(ctx context.Context, ws WorkSchedule) (WorkSchedule, error)
	GetByID(ctx context.Context, id string) (WorkSchedule, error)
	List(ctx context.Context, filter WorkScheduleFilter) ([]WorkSchedule, int64, error)
	Update(ctx context.Context, req UpdateWorkScheduleRequest) (WorkSchedule, error)
	Deactivate(ctx context.Context, id string) error
}

// AssignmentRepository is the Schedule Catalog collaborator the resolver
// fetches through: it maps an employee to their currently assigned weekly
// template.
type AssignmentRepository interface {
	// GetAssignedEntry returns the employee's current catalog entry.
	// Returns ErrNoScheduleAssigned when the employee has no assignment or
	// the assigned schedule is inactive.
	GetAssignedEntry(ctx context.Context, employeeID string) (CatalogEntry, error)

	Assign(ctx context.Context, employeeID, workScheduleID string) (Assignment, error)
	Unassign(ctx context.Context, employeeID string) error

	// EmployeesWithActiveDay lists active employees whose assigned schedule
	// has an active template for the given day-of-week slot. Used by the
	// nightly absence materializer.
	EmployeesWithActiveDay(ctx context.Context, dayOfWeek int) ([]string, error)
}
