package schedule

import "context"

type ScheduleService interface {
	Create(ctx context.Context, req CreateWorkScheduleRequest) (WorkScheduleResponse, error)
	Get(ctx context.Context, id string) (WorkScheduleResponse, error)
	List(ctx context.Context, filter WorkScheduleFilter) (ListWorkScheduleResponse, error)
	Update(ctx context.Context, req UpdateWorkScheduleRequest) (WorkScheduleResponse, error)
	Deactivate(ctx context.Context, id string) error

	Assign(ctx context.Context, employeeID string, req AssignScheduleRequest) error
	Unassign(ctx context.Context, employeeID string) error
	GetEmployeeSchedule(ctx context.Context, employeeID string) (EmployeeScheduleResponse, error)
}
