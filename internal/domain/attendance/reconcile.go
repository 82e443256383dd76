package attendance

import (
	"github.com/nominalab/asistencia-backend/internal/domain/schedule"
	"github.com/nominalab/asistencia-backend/internal/pkg/dateparse"
)

// Reconcile compares the actual entrada punched on date against the catalog
// entry's slot for that day of week. Pure function; times are compared at
// minute granularity and the tolerance is inclusive (exactly
// expected+tolerance is on time).
//
// Overnight shifts (salida numerically earlier than entrada) are valid: only
// the entrada comparison and punch presence matter here, never a derived
// shift duration.
func Reconcile(date dateparse.Date, actualEntrada *dateparse.TimeOfDay, entry schedule.CatalogEntry, toleranceMinutes int) Reconciliation {
	day, ok := entry.Day(date.Weekday())
	if !ok || !day.Active || day.Entrada == nil || day.Salida == nil {
		return Reconciliation{Applies: false}
	}

	isAbsent := actualEntrada == nil
	isLate := false
	if !isAbsent {
		isLate = actualEntrada.Minutes() > day.Entrada.Minutes()+toleranceMinutes
	}

	return Reconciliation{
		Applies:         true,
		ExpectedEntrada: day.Entrada,
		ExpectedSalida:  day.Salida,
		IsLate:          &isLate,
		IsAbsent:        &isAbsent,
	}
}
