package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spti-payroll/attendance-backend-go/internal/domain/report"
	"github.com/spti-payroll/attendance-backend-go/internal/handler/http/response"
	reportservice "github.com/spti-payroll/attendance-backend-go/internal/service/report"
)

type ReportHandler interface {
	Monthly(w http.ResponseWriter, r *http.Request)
	ExportMonthly(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService *reportservice.Service
}

// Monthly implements ReportHandler.
func (h *ReportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	req := monthlyRequest(r)

	monthly, err := h.reportService.Monthly(r.Context(), req)
	if err != nil {
		slog.Error("Monthly report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, monthly)
}

// ExportMonthly implements ReportHandler.
func (h *ReportHandlerImpl) ExportMonthly(w http.ResponseWriter, r *http.Request) {
	req := monthlyRequest(r)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance-%04d-%02d.xlsx", req.Year, req.Month)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.reportService.ExportExcel(r.Context(), req, w); err != nil {
		slog.Error("Export monthly report service error", "error", err)
		return
	}
}

func monthlyRequest(r *http.Request) *report.MonthlyReportRequest {
	return &report.MonthlyReportRequest{
		Year:  queryInt(r, "year"),
		Month: queryInt(r, "month"),
	}
}

func NewReportHandler(reportService *reportservice.Service) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}
