package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/nominalab/asistencia-backend/internal/domain/schedule"
	"github.com/nominalab/asistencia-backend/internal/pkg/database"
	"github.com/nominalab/asistencia-backend/internal/pkg/dateparse"
)

type workScheduleRepository struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) schedule.WorkScheduleRepository {
	return &workScheduleRepository{db: db}
}

// Create implements schedule.WorkScheduleRepository. The schedule row and
// its day templates are written in one transaction.
func (r *workScheduleRepository) Create(ctx context.Context, ws schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		query := `
			INSERT INTO work_schedules (name, active)
			VALUES ($1, $2)
			RETURNING id, created_at, updated_at
		`
		if err := q.QueryRow(txCtx, query, ws.Name, ws.Active).
			Scan(&ws.ID, &ws.CreatedAt, &ws.UpdatedAt); err != nil {
			if isUniqueViolation(err) {
				return schedule.ErrWorkScheduleNameExists
			}
			return fmt.Errorf("failed to create work schedule: %w", err)
		}

		days, err := r.insertDays(txCtx, ws.ID, ws.Days)
		if err != nil {
			return err
		}
		ws.Days = days
		return nil
	})
	if err != nil {
		return schedule.WorkSchedule{}, err
	}
	return ws, nil
}

func (r *workScheduleRepository) insertDays(ctx context.Context, scheduleID string, days []schedule.DayTemplate) ([]schedule.DayTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_schedule_days (work_schedule_id, day_of_week, entrada, salida, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	out := make([]schedule.DayTemplate, 0, len(days))
	for _, d := range days {
		d.WorkScheduleID = scheduleID
		err := q.QueryRow(ctx, query,
			scheduleID, d.DayOfWeek, timeColumn(d.Entrada), timeColumn(d.Salida), d.Active,
		).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, schedule.ErrDuplicateDayOfWeek
			}
			return nil, fmt.Errorf("failed to create day template: %w", err)
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *workScheduleRepository) loadDays(ctx context.Context, scheduleIDs []string) (map[string][]schedule.DayTemplate, error) {
	out := make(map[string][]schedule.DayTemplate, len(scheduleIDs))
	if len(scheduleIDs) == 0 {
		return out, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, work_schedule_id, day_of_week, entrada, salida, active, created_at, updated_at
		FROM work_schedule_days
		WHERE work_schedule_id = ANY($1)
		ORDER BY work_schedule_id, day_of_week
	`
	rows, err := q.Query(ctx, query, scheduleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load day templates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			d       schedule.DayTemplate
			entrada pgtype.Time
			salida  pgtype.Time
		)
		if err := rows.Scan(&d.ID, &d.WorkScheduleID, &d.DayOfWeek, &entrada, &salida,
			&d.Active, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan day template: %w", err)
		}
		d.Entrada = timeOfDay(entrada)
		d.Salida = timeOfDay(salida)
		out[d.WorkScheduleID] = append(out[d.WorkScheduleID], d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate day templates: %w", err)
	}
	return out, nil
}

// GetByID implements schedule.WorkScheduleRepository.
func (r *workScheduleRepository) GetByID(ctx context.Context, id string) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	var ws schedule.WorkSchedule
	query := `SELECT id, name, active, created_at, updated_at FROM work_schedules WHERE id = $1`
	err := q.QueryRow(ctx, query, id).Scan(&ws.ID, &ws.Name, &ws.Active, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrWorkScheduleNotFound
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get work schedule: %w", err)
	}

	daysByID, err := r.loadDays(ctx, []string{ws.ID})
	if err != nil {
		return schedule.WorkSchedule{}, err
	}
	ws.Days = daysByID[ws.ID]
	return ws, nil
}

// List implements schedule.WorkScheduleRepository.
func (r *workScheduleRepository) List(ctx context.Context, filter schedule.WorkScheduleFilter) ([]schedule.WorkSchedule, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argPos))
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", argPos))
		args = append(args, *filter.Active)
		argPos++
	}
	where := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM work_schedules WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count work schedules: %w", err)
	}

	query := `SELECT id, name, active, created_at, updated_at FROM work_schedules WHERE ` + where +
		` ORDER BY name LIMIT $` + fmt.Sprint(argPos) + ` OFFSET $` + fmt.Sprint(argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list work schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.WorkSchedule
	ids := []string{}
	for rows.Next() {
		var ws schedule.WorkSchedule
		if err := rows.Scan(&ws.ID, &ws.Name, &ws.Active, &ws.CreatedAt, &ws.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan work schedule: %w", err)
		}
		schedules = append(schedules, ws)
		ids = append(ids, ws.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate work schedules: %w", err)
	}

	daysByID, err := r.loadDays(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range schedules {
		schedules[i].Days = daysByID[schedules[i].ID]
	}
	return schedules, total, nil
}

// Update implements schedule.WorkScheduleRepository. When the request
// carries day templates the whole weekly pattern is replaced.
func (r *workScheduleRepository) Update(ctx context.Context, req schedule.UpdateWorkScheduleRequest) (schedule.WorkSchedule, error) {
	var updated schedule.WorkSchedule
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		sets := []string{"updated_at = NOW()"}
		args := []interface{}{req.ID}
		argPos := 2
		if req.Name != nil {
			sets = append(sets, fmt.Sprintf("name = $%d", argPos))
			args = append(args, *req.Name)
			argPos++
		}
		if req.Active != nil {
			sets = append(sets, fmt.Sprintf("active = $%d", argPos))
			args = append(args, *req.Active)
			argPos++
		}

		query := `UPDATE work_schedules SET ` + strings.Join(sets, ", ") + ` WHERE id = $1`
		tag, err := q.Exec(txCtx, query, args...)
		if err != nil {
			if isUniqueViolation(err) {
				return schedule.ErrWorkScheduleNameExists
			}
			return fmt.Errorf("failed to update work schedule: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return schedule.ErrWorkScheduleNotFound
		}

		if len(req.Days) > 0 {
			if _, err := q.Exec(txCtx, `DELETE FROM work_schedule_days WHERE work_schedule_id = $1`, req.ID); err != nil {
				return fmt.Errorf("failed to replace day templates: %w", err)
			}
			days := make([]schedule.DayTemplate, 0, len(req.Days))
			for _, d := range req.Days {
				day := schedule.DayTemplate{DayOfWeek: d.DayOfWeek, Active: d.Active}
				if d.Entrada != nil {
					if t, err := dateparse.ParseTimeOfDay(*d.Entrada); err == nil {
						day.Entrada = &t
					}
				}
				if d.Salida != nil {
					if t, err := dateparse.ParseTimeOfDay(*d.Salida); err == nil {
						day.Salida = &t
					}
				}
				days = append(days, day)
			}
			if _, err := r.insertDays(txCtx, req.ID, days); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return schedule.WorkSchedule{}, err
	}

	updated, err = r.GetByID(ctx, req.ID)
	if err != nil {
		return schedule.WorkSchedule{}, err
	}
	return updated, nil
}
// Deactivate implements schedule.WorkScheduleRepository. Rows are never
// deleted; a deactivated schedule stays resolvable for historical records.
func (r *workScheduleRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE work_schedules SET active = false, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate work schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrWorkScheduleNotFound
	}
	return nil
}
