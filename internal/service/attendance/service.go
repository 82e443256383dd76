package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/nominalab/asistencia-backend/internal/domain/attendance"
	"github.com/nominalab/asistencia-backend/internal/domain/employee"
	"github.com/nominalab/asistencia-backend/internal/domain/schedule"
	"github.com/nominalab/asistencia-backend/internal/domain/user"
	"github.com/nominalab/asistencia-backend/internal/pkg/database"
	"github.com/nominalab/asistencia-backend/internal/pkg/dateparse"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	employee.EmployeeRepository
	assignments      schedule.AssignmentRepository
	logger           *slog.Logger
	toleranceMinutes int
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	assignmentRepo schedule.AssignmentRepository,
	logger *slog.Logger,
	toleranceMinutes int,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		assignments:          assignmentRepo,
		logger:               logger,
		toleranceMinutes:     toleranceMinutes,
	}
}

// scopeFilter restricts empleado callers to their own rows. Admin and RRHH
// see everything.
func scopeFilter(caller user.CallerContext, filter attendance.Filter) (attendance.Filter, error) {
	if caller.CanViewAll() {
		return filter, nil
	}
	if caller.EmployeeID == nil {
		return filter, user.ErrCallerNotEmployee
	}
	if filter.EmployeeID != nil && *filter.EmployeeID != *caller.EmployeeID {
		return filter, user.ErrOwnRecordsOnly
	}
	filter.EmployeeID = caller.EmployeeID
	return filter, nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, caller user.CallerContext, filter attendance.Filter) (attendance.ListAttendanceResponse, error) {
	filter, err := scopeFilter(caller, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 31
	}

	rows, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	enriched := a.enrich(ctx, rows)

	responses := make([]attendance.AttendanceResponse, 0, len(enriched))
	for _, e := range enriched {
		responses = append(responses, mapToResponse(e.Punch, e.Result))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Attendances: responses,
	}, nil
}

// Create implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Create(ctx context.Context, caller user.CallerContext, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !caller.CanValidate() {
		// Self-service entry is allowed only for the caller's own record.
		if caller.EmployeeID == nil || *caller.EmployeeID != req.EmployeeID {
			return attendance.AttendanceResponse{}, user.ErrOwnRecordsOnly
		}
	}

	date, err := dateparse.Normalize(req.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.Active {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeInactive
	}

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceExists
	}

	att := attendance.Attendance{
		EmployeeID:  req.EmployeeID,
		Date:        date,
		Observation: req.Observation,
		Status:      attendance.StatusPendiente,
	}
	if att.Entrada, err = parseOptionalTime(req.Entrada); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if att.Salida, err = parseOptionalTime(req.Salida); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	created, err := a.AttendanceRepository.Create(ctx, att)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return mapToResponse(created, a.reconcileOne(ctx, created)), nil
}

// Get implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Get(ctx context.Context, caller user.CallerContext, id string) (attendance.AttendanceResponse, error) {
	att, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if !caller.CanViewAll() {
		if caller.EmployeeID == nil || *caller.EmployeeID != att.EmployeeID {
			return attendance.AttendanceResponse{}, user.ErrOwnRecordsOnly
		}
	}
	return mapToResponse(att, a.reconcileOne(ctx, att)), nil
}

// Update implements attendance.AttendanceService. This is the correction
// edit: entrada/salida/observation only. Status is untouched, so an edited
// Confirmada record stays Confirmada unless explicitly unconfirmed.
func (a *AttendanceServiceImpl) Update(ctx context.Context, caller user.CallerContext, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !caller.CanValidate() {
		return attendance.AttendanceResponse{}, user.ErrValidatorRequired
	}

	att, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if req.ClearTimes {
		att.Entrada = nil
		att.Salida = nil
	}
	if req.Entrada != nil {
		if att.Entrada, err = parseOptionalTime(req.Entrada); err != nil {
			return attendance.AttendanceResponse{}, err
		}
	}
	if req.Salida != nil {
		if att.Salida, err = parseOptionalTime(req.Salida); err != nil {
			return attendance.AttendanceResponse{}, err
		}
	}
	if req.Observation != nil {
		att.Observation = *req.Observation
	}

	if err := a.AttendanceRepository.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	updated, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get updated attendance: %w", err)
	}
	return mapToResponse(updated, a.reconcileOne(ctx, updated)), nil
}

// SetStatus implements attendance.AttendanceService. Both transitions are
// idempotent: confirming a Confirmada record (or unconfirming a Pendiente
// one) is a no-op, not an error.
func (a *AttendanceServiceImpl) SetStatus(ctx context.Context, caller user.CallerContext, id string, req attendance.SetStatusRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !caller.CanValidate() {
		return attendance.AttendanceResponse{}, user.ErrValidatorRequired
	}

	att, err := a.AttendanceRepository.SetStatus(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to set attendance status: %w", err)
	}
	return mapToResponse(att, a.reconcileOne(ctx, att)), nil
}

// MaterializeAbsences implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MaterializeAbsences(ctx context.Context, date dateparse.Date) (int, error) {
	employeeIDs, err := a.assignments.EmployeesWithActiveDay(ctx, date.Weekday())
	if err != nil {
		return 0, fmt.Errorf("failed to list scheduled employees: %w", err)
	}

	created := 0
	for _, id := range employeeIDs {
		existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, id, date)
		if err != nil {
			return created, fmt.Errorf("failed to check attendance for employee %s: %w", id, err)
		}
		if existing != nil {
			continue
		}
		_, err = a.AttendanceRepository.Create(ctx, attendance.Attendance{
			EmployeeID: id,
			Date:       date,
			Status:     attendance.StatusPendiente,
		})
		if err != nil {
			return created, fmt.Errorf("failed to create absence record for employee %s: %w", id, err)
		}
		created++
	}
	return created, nil
}

func parseOptionalTime(s *string) (*dateparse.TimeOfDay, error) {
	if s == nil {
		return nil, nil
	}
	t, err := dateparse.ParseTimeOfDay(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func timeOfDayPtrToString(t *dateparse.TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}

func mapToResponse(att attendance.Attendance, rec attendance.Reconciliation) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:           att.ID,
		EmployeeID:   att.EmployeeID,
		EmployeeCode: att.EmployeeCode,
		EmployeeName: att.EmployeeName,
		Date:         att.Date.String(),
		Entrada:      timeOfDayPtrToString(att.Entrada),
		Salida:       timeOfDayPtrToString(att.Salida),
		Observation:  att.Observation,
		Status:       att.Status,
		CreatedAt:    att.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    att.UpdatedAt.Format("2006-01-02 15:04:05"),
		Reconciliation: attendance.ReconciliationResponse{
			Applies:         rec.Applies,
			ExpectedEntrada: timeOfDayPtrToString(rec.ExpectedEntrada),
			ExpectedSalida:  timeOfDayPtrToString(rec.ExpectedSalida),
			IsLate:          rec.IsLate,
			IsAbsent:        rec.IsAbsent,
		},
	}
}
