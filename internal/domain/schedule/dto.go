package schedule

import (
	"github.com/nominalab/asistencia-backend/internal/pkg/dateparse"
	"github.com/nominalab/asistencia-backend/internal/pkg/validator"
)

type DayTemplateRequest struct {
	DayOfWeek int     `json:"day_of_week"`
	Entrada   *string `json:"entrada,omitempty"`
	Salida    *string `json:"salida,omitempty"`
	Active    bool    `json:"active"`
}

type CreateWorkScheduleRequest struct {
	Name string               `json:"name"`
	Days []DayTemplateRequest `json:"days"`
}

func (r CreateWorkScheduleRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	seen := map[int]bool{}
	for _, d := range r.Days {
		if d.DayOfWeek < 1 || d.DayOfWeek > 7 {
			errs = append(errs, validator.ValidationError{Field: "days.day_of_week", Message: "must be between 1 (Sunday) and 7 (Saturday)"})
			continue
		}
		if seen[d.DayOfWeek] {
			errs = append(errs, validator.ValidationError{Field: "days.day_of_week", Message: "duplicate day of week"})
		}
		seen[d.DayOfWeek] = true
		if d.Entrada != nil {
			if _, err := dateparse.ParseTimeOfDay(*d.Entrada); err != nil {
				errs = append(errs, validator.ValidationError{Field: "days.entrada", Message: "must be HH:MM or HH:MM:SS"})
			}
		}
		if d.Salida != nil {
			if _, err := dateparse.ParseTimeOfDay(*d.Salida); err != nil {
				errs = append(errs, validator.ValidationError{Field: "days.salida", Message: "must be HH:MM or HH:MM:SS"})
			}
		}
		// No entrada/salida ordering check: salida before entrada is a
		// valid overnight shift.
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateWorkScheduleRequest struct {
	ID     string               `json:"-"`
	Name   *string              `json:"name,omitempty"`
	Active *bool                `json:"active,omitempty"`
	Days   []DayTemplateRequest `json:"days,omitempty"`
}

func (r UpdateWorkScheduleRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "must be a valid UUID"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name cannot be empty"})
	}
	if len(errs) > 0 {
		return errs
	}
	if len(r.Days) > 0 {
		probe := CreateWorkScheduleRequest{Name: "probe", Days: r.Days}
		return probe.Validate()
	}
	return nil
}

type WorkScheduleFilter struct {
	Search *string
	Active *bool
	Page   int
	Limit  int
}

type AssignScheduleRequest struct {
	WorkScheduleID string `json:"work_schedule_id"`
}

func (r AssignScheduleRequest) Validate() error {
	if !validator.IsValidUUID(r.WorkScheduleID) {
		return validator.ValidationErrors{{Field: "work_schedule_id", Message: "must be a valid UUID"}}
	}
	return nil
}

type DayTemplateResponse struct {
	DayOfWeek int     `json:"day_of_week"`
	Entrada   *string `json:"entrada,omitempty"`
	Salida    *string `json:"salida,omitempty"`
	Active    bool    `json:"active"`
}

type WorkScheduleResponse struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Active    bool                  `json:"active"`
	Days      []DayTemplateResponse `json:"days"`
	CreatedAt string                `json:"created_at"`
	UpdatedAt string                `json:"updated_at"`
}

type ListWorkScheduleResponse struct {
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
	Schedules  []WorkScheduleResponse `json:"schedules"`
}

// EmployeeScheduleResponse is the resolved catalog entry for one employee,
// as served by GET /employees/{id}/schedule.
type EmployeeScheduleResponse struct {
	EmployeeID string                `json:"employee_id"`
	ScheduleID string                `json:"schedule_id,omitempty"`
	Days       []DayTemplateResponse `json:"days"`
}
