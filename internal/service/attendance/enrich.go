package attendance

import (
	"context"
	"sync"

	"github.com/nominalab/asistencia-backend/internal/domain/attendance"
	scheduleService "github.com/nominalab/asistencia-backend/internal/service/schedule"
)

// enrichedPunch pairs a stored punch with its ephemeral reconciliation.
type enrichedPunch struct {
	Punch  attendance.Attendance
	Result attendance.Reconciliation
}

// enrich runs the two-phase batch pipeline: resolve every distinct
// employee's template first (concurrently, coalesced by the resolver), then
// reconcile each row against the prefetched entry. This bounds schedule
// lookups by distinct employee rather than by row, and a date-range query
// returns many rows per employee. Input order is preserved.
//
// A failed template fetch degrades that employee's rows to applies=false;
// the rows still reach the reviewer, flagged as unknown, instead of
// disappearing from the batch.
func (a *AttendanceServiceImpl) enrich(ctx context.Context, rows []attendance.Attendance) []enrichedPunch {
	resolver := scheduleService.NewResolver(a.assignments, a.logger)

	distinct := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		distinct[row.EmployeeID] = struct{}{}
	}

	var wg sync.WaitGroup
	for employeeID := range distinct {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			resolver.Template(ctx, id)
		}(employeeID)
	}
	wg.Wait()

	out := make([]enrichedPunch, 0, len(rows))
	for _, row := range rows {
		entry := resolver.Template(ctx, row.EmployeeID)
		out = append(out, enrichedPunch{
			Punch:  row,
			Result: attendance.Reconcile(row.Date, row.Entrada, entry, a.toleranceMinutes),
		})
	}
	return out
}

// reconcileOne enriches a single record outside a batch.
func (a *AttendanceServiceImpl) reconcileOne(ctx context.Context, att attendance.Attendance) attendance.Reconciliation {
	enriched := a.enrich(ctx, []attendance.Attendance{att})
	return enriched[0].Result
}
