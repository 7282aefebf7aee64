package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/attendance"
	"github.com/spti-payroll/attendance-backend-go/internal/handler/http/response"
	attendanceservice "github.com/spti-payroll/attendance-backend-go/internal/service/attendance"
)

type AttendanceHandler interface {
	ListLogs(w http.ResponseWriter, r *http.Request)
	CreateLog(w http.ResponseWriter, r *http.Request)
	UpdateLog(w http.ResponseWriter, r *http.Request)
	DeleteLog(w http.ResponseWriter, r *http.Request)
	BulkDeleteLogs(w http.ResponseWriter, r *http.Request)
	Recompute(w http.ResponseWriter, r *http.Request)
	ListSummaries(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService *attendanceservice.Service
}

// ListLogs implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListLogs(w http.ResponseWriter, r *http.Request) {
	filter := attendance.LogFilter{
		EmployeeID: queryParam(r, "employee_id"),
		StartDate:  queryParam(r, "start_date"),
		EndDate:    queryParam(r, "end_date"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}

	result, err := h.attendanceService.ListLogs(r.Context(), filter)
	if err != nil {
		slog.Error("ListLogs service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Logs, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages(result.TotalCount, result.Limit),
	})
}

// CreateLog implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CreateLog(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateLogRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateLog decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.attendanceService.CreateLog(r.Context(), req)
	if err != nil {
		slog.Error("CreateLog service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance log created", created)
}

// UpdateLog implements AttendanceHandler.
func (h *AttendanceHandlerImpl) UpdateLog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req attendance.UpdateLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateLog decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.attendanceService.UpdateLog(r.Context(), id, req)
	if err != nil {
		slog.Error("UpdateLog service error", "error", err, "log_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance log updated", updated)
}

// DeleteLog implements AttendanceHandler.
func (h *AttendanceHandlerImpl) DeleteLog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.attendanceService.DeleteLog(r.Context(), id); err != nil {
		slog.Error("DeleteLog service error", "error", err, "log_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance log deleted", nil)
}

// BulkDeleteLogs implements AttendanceHandler.
func (h *AttendanceHandlerImpl) BulkDeleteLogs(w http.ResponseWriter, r *http.Request) {
	var req attendance.BulkDeleteLogsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("BulkDeleteLogs decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	deleted, err := h.attendanceService.BulkDeleteLogs(r.Context(), req)
	if err != nil {
		slog.Error("BulkDeleteLogs service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance logs deleted", map[string]int64{"deleted": deleted})
}

// Recompute implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecomputeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Recompute decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	days, err := h.attendanceService.RecomputeRange(r.Context(), req)
	if err != nil {
		slog.Error("Recompute service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Recompute completed", map[string]int{"days_recomputed": days})
}

// ListSummaries implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListSummaries(w http.ResponseWriter, r *http.Request) {
	filter := attendance.SummaryFilter{
		EmployeeID: queryParam(r, "employee_id"),
		StartDate:  queryParam(r, "start_date"),
		EndDate:    queryParam(r, "end_date"),
		ShiftID:    queryParam(r, "shift_id"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}

	result, err := h.attendanceService.ListSummaries(r.Context(), filter)
	if err != nil {
		slog.Error("ListSummaries service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Summaries, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages(result.TotalCount, result.Limit),
	})
}

func queryParam(r *http.Request, name string) *string {
	if v := r.URL.Query().Get(name); v != "" {
		return &v
	}
	return nil
}

func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}

func totalPages(totalItems int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := totalItems / int64(limit)
	if totalItems%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}

func NewAttendanceHandler(attendanceService *attendanceservice.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}
