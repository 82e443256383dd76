package attendance

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nominalab/asistencia-backend/internal/domain/attendance"
	"github.com/nominalab/asistencia-backend/internal/domain/employee"
	"github.com/nominalab/asistencia-backend/internal/domain/user"
)

func buildImportFile(t *testing.T, header []string, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, h))
	}
	for r, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImportInsertsUpdatesAndSkips(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo()
	empRepo.add(employee.Employee{ID: "emp-1", Code: "E001", FirstName: "Ana", Active: true})
	empRepo.add(employee.Employee{ID: "emp-2", Code: "E002", FirstName: "Luis", Active: true})
	svc := newTestService(attRepo, empRepo, newFakeAssignmentRepo())
	ctx := context.Background()

	// emp-2 already has a row for the serial date 45293 (2024-01-02); the
	// import should update it in place rather than insert a duplicate.
	_, err := attRepo.Create(ctx, attendance.Attendance{
		EmployeeID: "emp-2",
		Date:       mustDate(t, "2024-01-02"),
		Status:     attendance.StatusPendiente,
	})
	require.NoError(t, err)

	buf := buildImportFile(t,
		[]string{"Codigo", "Fecha", "Entrada", "Salida", "Observacion"},
		[][]any{
			{"E001", "2024-01-02", "08:05", "17:00", ""},
			{"E002", 45293, "08:30", "17:10", "sin marcador"}, // raw serial cell
			{"X999", "2024-01-02", "08:00", "17:00", ""},      // unknown code
			{"E001", "not-a-date", "08:00", "17:00", ""},
		},
	)

	summary, err := svc.Import(ctx, rrhhCaller, buf)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Inserted)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 2, summary.Skipped)
	require.Len(t, summary.Issues, 2)
	assert.Equal(t, 4, summary.Issues[0].Row)
	assert.Contains(t, summary.Issues[0].Reason, "X999")
	assert.Equal(t, 5, summary.Issues[1].Row)
	assert.Contains(t, summary.Issues[1].Reason, "date")

	row, err := attRepo.GetByEmployeeAndDate(ctx, "emp-2", mustDate(t, "2024-01-02"))
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "08:30:00", row.Entrada.String())
	assert.Equal(t, "sin marcador", row.Observation)
}

func TestImportRequiresValidatorRole(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), newFakeEmployeeRepo(), newFakeAssignmentRepo())

	buf := buildImportFile(t, []string{"codigo", "fecha"}, [][]any{{"E001", "2024-01-02"}})
	_, err := svc.Import(context.Background(), empleadoCaller("emp-1"), buf)
	assert.ErrorIs(t, err, user.ErrValidatorRequired)
}

func TestImportRejectsHeaderOnlyFile(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), newFakeEmployeeRepo(), newFakeAssignmentRepo())

	buf := buildImportFile(t, []string{"codigo", "fecha"}, nil)
	_, err := svc.Import(context.Background(), rrhhCaller, buf)
	assert.ErrorIs(t, err, attendance.ErrEmptyImportFile)
}

func TestImportRejectsMissingDateColumn(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), newFakeEmployeeRepo(), newFakeAssignmentRepo())

	buf := buildImportFile(t, []string{"codigo", "entrada"}, [][]any{{"E001", "08:00"}})
	_, err := svc.Import(context.Background(), rrhhCaller, buf)
	assert.ErrorIs(t, err, attendance.ErrEmptyImportFile)
}
