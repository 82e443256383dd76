package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nominalab/asistencia-backend/internal/domain/attendance"
	"github.com/nominalab/asistencia-backend/internal/handler/http/middleware"
	"github.com/nominalab/asistencia-backend/internal/handler/http/response"
	"github.com/nominalab/asistencia-backend/internal/pkg/dateparse"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	SetStatus(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.Caller(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing caller identity")
		return
	}

	filter := attendance.Filter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 0),
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if from := r.URL.Query().Get("date_from"); from != "" {
		d, err := dateparse.NormalizeString(from)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		filter.DateFrom = &d
	}
	if to := r.URL.Query().Get("date_to"); to != "" {
		d, err := dateparse.NormalizeString(to)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		filter.DateTo = &d
	}

	result, err := h.attendanceService.List(r.Context(), caller, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Create implements AttendanceHandler.
func (h *attendanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.Caller(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing caller identity")
		return
	}

	var req attendance.CreateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Create(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Attendance recorded", result)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.Caller(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing caller identity")
		return
	}

	result, err := h.attendanceService.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.Caller(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing caller identity")
		return
	}

	var req attendance.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.Update(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// SetStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) SetStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.Caller(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing caller identity")
		return
	}

	var req attendance.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.SetStatus(r.Context(), caller, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Import implements AttendanceHandler. Expects a multipart upload with the
// spreadsheet in the 'file' field.
func (h *attendanceHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.Caller(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing caller identity")
		return
	}

	// Max 10MB
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Field 'file' is required", nil)
		return
	}
	defer file.Close()

	result, err := h.attendanceService.Import(r.Context(), caller, file)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
