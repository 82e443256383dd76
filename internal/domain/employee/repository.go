package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	Update(ctx context.Context, e Employee) error
	Deactivate(ctx context.Context, id string) error

	// CodesToIDs maps employee codes to ids for active employees only.
	// Unknown codes are simply absent from the result; the bulk importer
	// uses the gap to skip rows instead of failing them.
	CodesToIDs(ctx context.Context, codes []string) (map[string]string, error)
}
