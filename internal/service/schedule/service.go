package schedule

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/nominalab/asistencia-backend/internal/domain/employee"
	"github.com/nominalab/asistencia-backend/internal/domain/schedule"
	"github.com/nominalab/asistencia-backend/internal/pkg/database"
	"github.com/nominalab/asistencia-backend/internal/pkg/dateparse"
)

type ScheduleServiceImpl struct {
	db *database.DB
	schedule.WorkScheduleRepository
	schedule.AssignmentRepository
	employee.EmployeeRepository
}

func NewScheduleService(
	db *database.DB,
	workScheduleRepo schedule.WorkScheduleRepository,
	assignmentRepo schedule.AssignmentRepository,
	employeeRepo employee.EmployeeRepository,
) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		db:                     db,
		WorkScheduleRepository: workScheduleRepo,
		AssignmentRepository:   assignmentRepo,
		EmployeeRepository:     employeeRepo,
	}
}

// Create implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Create(ctx context.Context, req schedule.CreateWorkScheduleRequest) (schedule.WorkScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.WorkScheduleResponse{}, err
	}

	ws := schedule.WorkSchedule{
		Name:   req.Name,
		Active: true,
		Days:   daysFromRequest(req.Days),
	}

	created, err := s.WorkScheduleRepository.Create(ctx, ws)
	if err != nil {
		if errors.Is(err, schedule.ErrWorkScheduleNameExists) {
			return schedule.WorkScheduleResponse{}, err
		}
		return schedule.WorkScheduleResponse{}, fmt.Errorf("failed to create work schedule: %w", err)
	}
	return mapWorkScheduleToResponse(created), nil
}

// Get implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Get(ctx context.Context, id string) (schedule.WorkScheduleResponse, error) {
	ws, err := s.WorkScheduleRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, schedule.ErrWorkScheduleNotFound) {
			return schedule.WorkScheduleResponse{}, err
		}
		return schedule.WorkScheduleResponse{}, fmt.Errorf("failed to get work schedule: %w", err)
	}
	return mapWorkScheduleToResponse(ws), nil
}

// List implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) List(ctx context.Context, filter schedule.WorkScheduleFilter) (schedule.ListWorkScheduleResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	schedules, total, err := s.WorkScheduleRepository.List(ctx, filter)
	if err != nil {
		return schedule.ListWorkScheduleResponse{}, fmt.Errorf("failed to list work schedules: %w", err)
	}

	responses := make([]schedule.WorkScheduleResponse, 0, len(schedules))
	for _, ws := range schedules {
		responses = append(responses, mapWorkScheduleToResponse(ws))
	}

	return schedule.ListWorkScheduleResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Schedules:  responses,
	}, nil
}

// Update implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Update(ctx context.Context, req schedule.UpdateWorkScheduleRequest) (schedule.WorkScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.WorkScheduleResponse{}, err
	}

	updated, err := s.WorkScheduleRepository.Update(ctx, req)
	if err != nil {
		if errors.Is(err, schedule.ErrWorkScheduleNotFound) {
			return schedule.WorkScheduleResponse{}, err
		}
		return schedule.WorkScheduleResponse{}, fmt.Errorf("failed to update work schedule: %w", err)
	}
	return mapWorkScheduleToResponse(updated), nil
}

// Deactivate implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Deactivate(ctx context.Context, id string) error {
	if err := s.WorkScheduleRepository.Deactivate(ctx, id); err != nil {
		if errors.Is(err, schedule.ErrWorkScheduleNotFound) {
			return err
		}
		return fmt.Errorf("failed to deactivate work schedule: %w", err)
	}
	return nil
}

// Assign implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Assign(ctx context.Context, employeeID string, req schedule.AssignScheduleRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return err
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}
	if _, err := s.WorkScheduleRepository.GetByID(ctx, req.WorkScheduleID); err != nil {
		if errors.Is(err, schedule.ErrWorkScheduleNotFound) {
			return err
		}
		return fmt.Errorf("failed to get work schedule: %w", err)
	}

	if _, err := s.AssignmentRepository.Assign(ctx, employeeID, req.WorkScheduleID); err != nil {
		return fmt.Errorf("failed to assign schedule: %w", err)
	}
	return nil
}

// Unassign implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Unassign(ctx context.Context, employeeID string) error {
	if err := s.AssignmentRepository.Unassign(ctx, employeeID); err != nil {
		if errors.Is(err, schedule.ErrAssignmentNotFound) {
			return err
		}
		return fmt.Errorf("failed to unassign schedule: %w", err)
	}
	return nil
}

// GetEmployeeSchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetEmployeeSchedule(ctx context.Context, employeeID string) (schedule.EmployeeScheduleResponse, error) {
	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return schedule.EmployeeScheduleResponse{}, err
		}
		return schedule.EmployeeScheduleResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	entry, err := s.AssignmentRepository.GetAssignedEntry(ctx, employeeID)
	if err != nil {
		if errors.Is(err, schedule.ErrNoScheduleAssigned) {
			return schedule.EmployeeScheduleResponse{}, err
		}
		return schedule.EmployeeScheduleResponse{}, fmt.Errorf("failed to get assigned schedule: %w", err)
	}

	days := make([]schedule.DayTemplateResponse, 0, len(entry.Days))
	for _, d := range entry.Days {
		days = append(days, mapDayToResponse(d))
	}
	return schedule.EmployeeScheduleResponse{
		EmployeeID: employeeID,
		ScheduleID: entry.ScheduleID,
		Days:       days,
	}, nil
}

func daysFromRequest(reqs []schedule.DayTemplateRequest) []schedule.DayTemplate {
	days := make([]schedule.DayTemplate, 0, len(reqs))
	for _, d := range reqs {
		day := schedule.DayTemplate{
			DayOfWeek: d.DayOfWeek,
			Active:    d.Active,
		}
		// Already validated; parse errors cannot occur here.
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
	return days
}

func mapDayToResponse(d schedule.DayTemplate) schedule.DayTemplateResponse {
	resp := schedule.DayTemplateResponse{
		DayOfWeek: d.DayOfWeek,
		Active:    d.Active,
	}
	if d.Entrada != nil {
		s := d.Entrada.String()
		resp.Entrada = &s
	}
	if d.Salida != nil {
		s := d.Salida.String()
		resp.Salida = &s
	}
	return resp
}

func mapWorkScheduleToResponse(ws schedule.WorkSchedule) schedule.WorkScheduleResponse {
	days := make([]schedule.DayTemplateResponse, 0, len(ws.Days))
	for _, d := range ws.Days {
		days = append(days, mapDayToResponse(d))
	}
	return schedule.WorkScheduleResponse{
		ID:        ws.ID,
		Name:      ws.Name,
		Active:    ws.Active,
		Days:      days,
		CreatedAt: ws.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: ws.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
