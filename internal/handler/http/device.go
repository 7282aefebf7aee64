package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/spti-payroll/attendance-backend-go/internal/domain/attendance"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/employee"
	"github.com/spti-payroll/attendance-backend-go/internal/handler/http/response"
	ingestservice "github.com/spti-payroll/attendance-backend-go/internal/service/ingest"
)

// DeviceHandler receives uploads from the biometric device collector.
type DeviceHandler interface {
	IngestPunches(w http.ResponseWriter, r *http.Request)
	SyncUsers(w http.ResponseWriter, r *http.Request)
}

type DeviceHandlerImpl struct {
	ingestService *ingestservice.Service
}

// IngestPunches implements DeviceHandler.
func (h *DeviceHandlerImpl) IngestPunches(w http.ResponseWriter, r *http.Request) {
	var req attendance.IngestBatchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("IngestPunches decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	report, err := h.ingestService.ProcessBatch(r.Context(), req)
	if err != nil {
		slog.Error("IngestPunches service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punch batch processed", report)
}

// SyncUsers implements DeviceHandler.
func (h *DeviceHandlerImpl) SyncUsers(w http.ResponseWriter, r *http.Request) {
	var users []employee.DeviceUser

	if err := json.NewDecoder(r.Body).Decode(&users); err != nil {
		slog.Error("SyncUsers decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if len(users) == 0 {
		response.BadRequest(w, "User list is empty", nil)
		return
	}

	synced, err := h.ingestService.SyncRoster(r.Context(), users)
	if err != nil {
		slog.Error("SyncUsers service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Device users synced", map[string]int{"synced": synced})
}

func NewDeviceHandler(ingestService *ingestservice.Service) DeviceHandler {
	return &DeviceHandlerImpl{ingestService: ingestService}
}
