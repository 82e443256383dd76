package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nominalab/asistencia-backend/internal/domain/schedule"
	"github.com/nominalab/asistencia-backend/internal/handler/http/response"
)

type ScheduleHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	Unassign(w http.ResponseWriter, r *http.Request)
	GetEmployeeSchedule(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// Create implements ScheduleHandler.
func (h *scheduleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateWorkScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Work schedule created", result)
}

// Get implements ScheduleHandler.
func (h *scheduleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// List implements ScheduleHandler.
func (h *scheduleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := schedule.WorkScheduleFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}
	if search := r.URL.Query().Get("search"); search != "" {
		filter.Search = &search
	}
	if activeStr := r.URL.Query().Get("active"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			response.BadRequest(w, "Invalid 'active' filter", nil)
			return
		}
		filter.Active = &active
	}

	result, err := h.scheduleService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Update implements ScheduleHandler.
func (h *scheduleHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req schedule.UpdateWorkScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.scheduleService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Deactivate implements ScheduleHandler.
func (h *scheduleHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduleService.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, nil)
}

// Assign implements ScheduleHandler.
func (h *scheduleHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req schedule.AssignScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.scheduleService.Assign(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, nil)
}

// Unassign implements ScheduleHandler.
func (h *scheduleHandlerImpl) Unassign(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduleService.Unassign(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, nil)
}

// GetEmployeeSchedule implements ScheduleHandler.
func (h *scheduleHandlerImpl) GetEmployeeSchedule(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.GetEmployeeSchedule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
