package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/nominalab/asistencia-backend/internal/domain/attendance"
	"github.com/nominalab/asistencia-backend/internal/pkg/database"
	"github.com/nominalab/asistencia-backend/internal/pkg/dateparse"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.entrada, a.salida, a.observation, a.status,
	a.created_at, a.updated_at,
	e.code, trim(e.first_name || ' ' || e.last_name)
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var (
		att     attendance.Attendance
		day     time.Time
		entrada pgtype.Time
		salida  pgtype.Time
	)
	err := row.Scan(
		&att.ID, &att.EmployeeID, &day, &entrada, &salida, &att.Observation, &att.Status,
		&att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeCode, &att.EmployeeName,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if att.Date, err = dateparse.FromTime(day); err != nil {
		return attendance.Attendance{}, fmt.Errorf("invalid stored date: %w", err)
	}
	att.Entrada = timeOfDay(entrada)
	att.Salida = timeOfDay(salida)
	return att, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAtt attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (employee_id, date, entrada, salida, observation, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		newAtt.EmployeeID,
		newAtt.Date.Time(),
		timeColumn(newAtt.Entrada),
		timeColumn(newAtt.Salida),
		newAtt.Observation,
		newAtt.Status,
	).Scan(&newAtt.ID, &newAtt.CreatedAt, &newAtt.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return newAtt, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`
	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date dateparse.Date) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date = $2
	`
	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date.Time()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return &att, nil
}

// List implements attendance.AttendanceRepository. Results are ordered by
// date then employee code so batches enrich in a stable order.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	addCondition := func(cond string, val interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argPos))
		args = append(args, val)
		argPos++
	}

	if filter.EmployeeID != nil {
		addCondition("a.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.Status != nil {
		addCondition("a.status = $%d", *filter.Status)
	}
	if filter.DateFrom != nil {
		addCondition("a.date >= $%d", filter.DateFrom.Time())
	}
	if filter.DateTo != nil {
		addCondition("a.date <= $%d", filter.DateTo.Time())
	}
	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendances a WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE ` + where + `
		ORDER BY a.date, e.code
		LIMIT $` + fmt.Sprint(argPos) + ` OFFSET $` + fmt.Sprint(argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return attendances, total, nil
}

// Update implements attendance.AttendanceRepository. It writes correction
// fields only; status changes go through SetStatus.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET entrada = $2, salida = $3, observation = $4, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, att.ID, timeColumn(att.Entrada), timeColumn(att.Salida), att.Observation)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// SetStatus implements attendance.AttendanceRepository.
func (a *attendanceRepository) SetStatus(ctx context.Context, id string, status string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to set attendance status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a.GetByID(ctx, id)
}

// Upsert implements attendance.AttendanceRepository. The import pipeline
// relies on the (employee_id, date) unique constraint: a second file for the
// same day corrects times in place instead of duplicating rows. Status is
// never overwritten on conflict, so confirmed records stay confirmed.
func (a *attendanceRepository) Upsert(ctx context.Context, att attendance.Attendance) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (employee_id, date, entrada, salida, observation, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, date) DO UPDATE
		SET entrada = EXCLUDED.entrada,
		    salida = EXCLUDED.salida,
		    observation = EXCLUDED.observation,
		    updated_at = NOW()
		RETURNING (xmax = 0)
	`
	var inserted bool
	err := q.QueryRow(ctx, query,
		att.EmployeeID,
		att.Date.Time(),
		timeColumn(att.Entrada),
		timeColumn(att.Salida),
		att.Observation,
		att.Status,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("failed to upsert attendance: %w", err)
	}
	return inserted, nil
}
