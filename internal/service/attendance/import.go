package attendance

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nominalab/asistencia-backend/internal/domain/attendance"
	"github.com/nominalab/asistencia-backend/internal/domain/user"
	"github.com/nominalab/asistencia-backend/internal/pkg/dateparse"
)

// Recognized import column headers (case-insensitive, Spanish or English).
var importColumns = map[string]string{
	"codigo":       "code",
	"código":       "code",
	"code":         "code",
	"fecha":        "date",
	"date":         "date",
	"entrada":      "entrada",
	"hora_entrada": "entrada",
	"salida":       "salida",
	"hora_salida":  "salida",
	"observacion":  "observation",
	"observación":  "observation",
	"observation":  "observation",
}

// Import implements attendance.AttendanceService. It reads the first
// worksheet of an .xlsx upload; date cells may be ISO strings, locale
// strings or raw spreadsheet serials — all go through the normalizer. Rows
// with an unknown employee code or an unparseable date are skipped and
// counted, never fatal: the summary tells the operator exactly what was
// dropped.
func (a *AttendanceServiceImpl) Import(ctx context.Context, caller user.CallerContext, file io.Reader) (attendance.ImportSummary, error) {
	if !caller.CanValidate() {
		return attendance.ImportSummary{}, user.ErrValidatorRequired
	}

	f, err := excelize.OpenReader(file)
	if err != nil {
		return attendance.ImportSummary{}, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return attendance.ImportSummary{}, attendance.ErrEmptyImportFile
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return attendance.ImportSummary{}, fmt.Errorf("failed to read worksheet: %w", err)
	}
	if len(rows) < 2 {
		return attendance.ImportSummary{}, attendance.ErrEmptyImportFile
	}

	cols := mapHeader(rows[0])
	if _, ok := cols["code"]; !ok {
		return attendance.ImportSummary{}, fmt.Errorf("%w: missing employee code column", attendance.ErrEmptyImportFile)
	}
	if _, ok := cols["date"]; !ok {
		return attendance.ImportSummary{}, fmt.Errorf("%w: missing date column", attendance.ErrEmptyImportFile)
	}

	// One code lookup for the whole file; unknown codes are simply absent.
	codes := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if code := cellValue(row, cols["code"]); code != "" {
			codes = append(codes, code)
		}
	}
	codeToID, err := a.EmployeeRepository.CodesToIDs(ctx, codes)
	if err != nil {
		return attendance.ImportSummary{}, fmt.Errorf("failed to resolve employee codes: %w", err)
	}

	var summary attendance.ImportSummary
	skip := func(rowNum int, reason string) {
		summary.Skipped++
		summary.Issues = append(summary.Issues, attendance.ImportRowIssue{Row: rowNum, Reason: reason})
	}

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		code := cellValue(row, cols["code"])
		if code == "" {
			skip(rowNum, "empty employee code")
			continue
		}
		employeeID, ok := codeToID[code]
		if !ok {
			skip(rowNum, fmt.Sprintf("unknown employee code %q", code))
			continue
		}

		date, err := dateparse.NormalizeString(cellValue(row, cols["date"]))
		if err != nil {
			skip(rowNum, fmt.Sprintf("unparseable date %q", cellValue(row, cols["date"])))
			continue
		}

		att := attendance.Attendance{
			EmployeeID: employeeID,
			Date:       date,
			Status:     attendance.StatusPendiente,
		}
		if col, ok := cols["entrada"]; ok {
			if att.Entrada, err = parseImportTime(cellValue(row, col)); err != nil {
				skip(rowNum, fmt.Sprintf("unparseable entrada %q", cellValue(row, col)))
				continue
			}
		}
		if col, ok := cols["salida"]; ok {
			if att.Salida, err = parseImportTime(cellValue(row, col)); err != nil {
				skip(rowNum, fmt.Sprintf("unparseable salida %q", cellValue(row, col)))
				continue
			}
		}
		if col, ok := cols["observation"]; ok {
			att.Observation = cellValue(row, col)
		}

		inserted, err := a.AttendanceRepository.Upsert(ctx, att)
		if err != nil {
			return summary, fmt.Errorf("failed to upsert row %d: %w", rowNum, err)
		}
		if inserted {
			summary.Inserted++
		} else {
			summary.Updated++
		}
	}

	a.logger.Info("attendance import finished",
		"inserted", summary.Inserted, "updated", summary.Updated, "skipped", summary.Skipped)
	return summary, nil
}

func mapHeader(header []string) map[string]int {
	cols := make(map[string]int)
	for idx, h := range header {
		if canonical, ok := importColumns[strings.ToLower(strings.TrimSpace(h))]; ok {
			cols[canonical] = idx
		}
	}
	return cols
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseImportTime(s string) (*dateparse.TimeOfDay, error) {
	if s == "" {
		return nil, nil
	}
	t, err := dateparse.ParseTimeOfDay(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
