package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/nominalab/asistencia-backend/internal/domain/schedule"
	"github.com/nominalab/asistencia-backend/internal/pkg/database"
)

type assignmentRepository struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) schedule.AssignmentRepository {
	return &assignmentRepository{db: db}
}

// GetAssignedEntry implements schedule.AssignmentRepository. An assignment
// pointing at a deactivated schedule resolves the same as no assignment.
func (r *assignmentRepository) GetAssignedEntry(ctx context.Context, employeeID string) (schedule.CatalogEntry, error) {
	q := GetQuerier(ctx, r.db)

	var scheduleID string
	query := `
		SELECT ws.id
		FROM schedule_assignments sa
		JOIN work_schedules ws ON ws.id = sa.work_schedule_id
		WHERE sa.employee_id = $1 AND ws.active
	`
	if err := q.QueryRow(ctx, query, employeeID).Scan(&scheduleID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.CatalogEntry{}, schedule.ErrNoScheduleAssigned
		}
		return schedule.CatalogEntry{}, fmt.Errorf("failed to resolve schedule assignment: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT id, work_schedule_id, day_of_week, entrada, salida, active, created_at, updated_at
		FROM work_schedule_days
		WHERE work_schedule_id = $1
		ORDER BY day_of_week
	`, scheduleID)
	if err != nil {
		return schedule.CatalogEntry{}, fmt.Errorf("failed to load assigned day templates: %w", err)
	}
	defer rows.Close()

	entry := schedule.CatalogEntry{ScheduleID: scheduleID}
	for rows.Next() {
		var (
			d       schedule.DayTemplate
			entrada pgtype.Time
			salida  pgtype.Time
		)
		if err := rows.Scan(&d.ID, &d.WorkScheduleID, &d.DayOfWeek, &entrada, &salida,
			&d.Active, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return schedule.CatalogEntry{}, fmt.Errorf("failed to scan day template: %w", err)
		}
		d.Entrada = timeOfDay(entrada)
		d.Salida = timeOfDay(salida)
		entry.Days = append(entry.Days, d)
	}
	if err := rows.Err(); err != nil {
		return schedule.CatalogEntry{}, fmt.Errorf("failed to iterate day templates: %w", err)
	}
	return entry, nil
}

// Assign implements schedule.AssignmentRepository. An employee has at most
// one current assignment, so assigning replaces any previous one.
func (r *assignmentRepository) Assign(ctx context.Context, employeeID, workScheduleID string) (schedule.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO schedule_assignments (employee_id, work_schedule_id)
		VALUES ($1, $2)
		ON CONFLICT (employee_id) DO UPDATE
		SET work_schedule_id = EXCLUDED.work_schedule_id, updated_at = NOW()
		RETURNING id, employee_id, work_schedule_id, created_at, updated_at
	`
	var a schedule.Assignment
	err := q.QueryRow(ctx, query, employeeID, workScheduleID).
		Scan(&a.ID, &a.EmployeeID, &a.WorkScheduleID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return schedule.Assignment{}, fmt.Errorf("failed to assign schedule: %w", err)
	}
	return a, nil
}

// Unassign implements schedule.AssignmentRepository.
func (r *assignmentRepository) Unassign(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM schedule_assignments WHERE employee_id = $1`, employeeID)
	if err != nil {
		return fmt.Errorf("failed to unassign schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrAssignmentNotFound
	}
	return nil
}

// EmployeesWithActiveDay implements schedule.AssignmentRepository. Only days
// with both expected times count: a slot without times can never produce an
// absence.
func (r *assignmentRepository) EmployeesWithActiveDay(ctx context.Context, dayOfWeek int) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT sa.employee_id
		FROM schedule_assignments sa
		JOIN employees e ON e.id = sa.employee_id AND e.active
		JOIN work_schedules ws ON ws.id = sa.work_schedule_id AND ws.active
		JOIN work_schedule_days d ON d.work_schedule_id = ws.id
		WHERE d.day_of_week = $1
		  AND d.active
		  AND d.entrada IS NOT NULL
		  AND d.salida IS NOT NULL
		ORDER BY sa.employee_id
	`
	rows, err := q.Query(ctx, query, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled employees: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scheduled employees: %w", err)
	}
	return ids, nil
}
