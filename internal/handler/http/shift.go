package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/shift"
	"github.com/spti-payroll/attendance-backend-go/internal/handler/http/response"
	shiftservice "github.com/spti-payroll/attendance-backend-go/internal/service/shift"
)

type ShiftHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	GetWorkSettings(w http.ResponseWriter, r *http.Request)
	UpdateWorkSettings(w http.ResponseWriter, r *http.Request)
}

type ShiftHandlerImpl struct {
	shiftService *shiftservice.Service
}

// List implements ShiftHandler.
func (h *ShiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	shifts, err := h.shiftService.ListShifts(r.Context(), activeOnly)
	if err != nil {
		slog.Error("List shifts service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, shifts)
}

// Create implements ShiftHandler.
func (h *ShiftHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.shiftService.CreateShift(r.Context(), req)
	if err != nil {
		slog.Error("Create shift service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift created", created)
}

// Update implements ShiftHandler.
func (h *ShiftHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req shift.UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.shiftService.UpdateShift(r.Context(), id, req)
	if err != nil {
		slog.Error("Update shift service error", "error", err, "shift_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift updated", updated)
}

// Delete implements ShiftHandler.
func (h *ShiftHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.shiftService.DeleteShift(r.Context(), id); err != nil {
		slog.Error("Delete shift service error", "error", err, "shift_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted", nil)
}

// GetWorkSettings implements ShiftHandler.
func (h *ShiftHandlerImpl) GetWorkSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.shiftService.GetWorkSettings(r.Context())
	if err != nil {
		slog.Error("Get work settings service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, settings)
}

// UpdateWorkSettings implements ShiftHandler.
func (h *ShiftHandlerImpl) UpdateWorkSettings(w http.ResponseWriter, r *http.Request) {
	var req shift.UpdateWorkSettingsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update work settings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.shiftService.UpdateWorkSettings(r.Context(), req)
	if err != nil {
		slog.Error("Update work settings service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work settings updated", updated)
}

func NewShiftHandler(shiftService *shiftservice.Service) ShiftHandler {
	return &ShiftHandlerImpl{shiftService: shiftService}
}
