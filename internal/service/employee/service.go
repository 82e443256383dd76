package employee

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/nominalab/asistencia-backend/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
}

func NewEmployeeService(employeeRepository employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepository,
	}
}

// Create implements employee.EmployeeService.
func (e *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := e.EmployeeRepository.GetByCode(ctx, req.Code); err == nil {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee code: %w", err)
	}

	created, err := e.EmployeeRepository.Create(ctx, employee.Employee{
		Code:      req.Code,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Position:  req.Position,
		Active:    true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return mapToResponse(created), nil
}

// Get implements employee.EmployeeService.
func (e *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := e.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapToResponse(emp), nil
}

// List implements employee.EmployeeService.
func (e *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	employees, total, err := e.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	resp := employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Employees:  make([]employee.EmployeeResponse, 0, len(employees)),
	}
	for _, emp := range employees {
		resp.Employees = append(resp.Employees, mapToResponse(emp))
	}
	return resp, nil
}

// Update implements employee.EmployeeService.
func (e *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := e.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FirstName != nil {
		emp.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		emp.LastName = *req.LastName
	}
	if req.Email != nil {
		emp.Email = req.Email
	}
	if req.Position != nil {
		emp.Position = req.Position
	}

	if err := e.EmployeeRepository.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}
	emp.UpdatedAt = time.Now()
	return mapToResponse(emp), nil
}

// Deactivate implements employee.EmployeeService.
func (e *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	if _, err := e.EmployeeRepository.GetByID(ctx, id); err != nil {
		return err
	}
	return e.EmployeeRepository.Deactivate(ctx, id)
}

func mapToResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:        e.ID,
		Code:      e.Code,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Position:  e.Position,
		Active:    e.Active,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
		UpdatedAt: e.UpdatedAt.Format(time.RFC3339),
	}
}
