package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/nominalab/asistencia-backend/internal/domain/attendance"
	"github.com/nominalab/asistencia-backend/internal/pkg/dateparse"
)

// RegisterAbsenceMaterializer schedules the nightly job that creates
// Pendiente no-punch records for yesterday, so absences show up on the
// validation screen without anyone having to notice a missing row.
func RegisterAbsenceMaterializer(s *Scheduler, svc attendance.AttendanceService, spec string) error {
	return s.AddJob("absence-materializer", spec, 10*time.Minute, func(ctx context.Context) error {
		yesterday, err := dateparse.FromTime(time.Now().UTC().AddDate(0, 0, -1))
		if err != nil {
			return fmt.Errorf("resolve yesterday: %w", err)
		}
		created, err := svc.MaterializeAbsences(ctx, yesterday)
		if err != nil {
			return fmt.Errorf("materialize absences for %s: %w", yesterday, err)
		}
		s.logger.Info("absences materialized", "date", yesterday.String(), "created", created)
		return nil
	})
}
