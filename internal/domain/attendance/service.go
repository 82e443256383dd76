package attendance

import (
	"context"
	"io"

	"github.com/nominalab/asistencia-backend/internal/domain/user"
	"github.com/nominalab/asistencia-backend/internal/pkg/dateparse"
)

type AttendanceService interface {
	// List runs the batch enrichment pipeline: every returned row carries a
	// freshly computed reconciliation against the current schedule catalog.
	List(ctx context.Context, caller user.CallerContext, filter Filter) (ListAttendanceResponse, error)

	Create(ctx context.Context, caller user.CallerContext, req CreateAttendanceRequest) (AttendanceResponse, error)
	Get(ctx context.Context, caller user.CallerContext, id string) (AttendanceResponse, error)
	Update(ctx context.Context, caller user.CallerContext, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// SetStatus is the confirmation workflow: Pendiente⇄Confirmada, both
	// directions idempotent.
	SetStatus(ctx context.Context, caller user.CallerContext, id string, req SetStatusRequest) (AttendanceResponse, error)

	// Import reads an .xlsx upload of punches. Rows with unparseable dates
	// or unknown employee codes are skipped and counted, never fatal.
	Import(ctx context.Context, caller user.CallerContext, file io.Reader) (ImportSummary, error)

	// MaterializeAbsences creates Pendiente no-punch records for every
	// active employee scheduled on the given date who has no record yet.
	MaterializeAbsences(ctx context.Context, date dateparse.Date) (int, error)
}
