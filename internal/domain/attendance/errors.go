package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")

	// ErrAttendanceExists guards the one-record-per-(employee, date) rule
	// on manual entry. Bulk import updates the existing row instead.
	ErrAttendanceExists = errors.New("attendance record already exists for this employee and date")

	// ErrInvalidStatus is for status values outside Pendiente/Confirmada.
	// There is no invalid-transition error: both transitions are idempotent.
	ErrInvalidStatus = errors.New("status must be Pendiente or Confirmada")

	ErrEmptyImportFile = errors.New("import file has no data rows")
)
