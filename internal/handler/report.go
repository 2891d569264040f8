package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/arriendo/lease-engine/internal/service"
	"github.com/arriendo/lease-engine/pkg/response"
)

type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// MonthlyIncome defaults to the current month when year/month are omitted.
func (h *ReportHandler) MonthlyIncome(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())

	query := r.URL.Query()
	if raw := query.Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "year must be an integer")
			return
		}
		year = parsed
	}
	if raw := query.Get("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "month must be an integer")
			return
		}
		month = parsed
	}

	report, err := h.reports.MonthlyIncome(r.Context(), year, month)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, report)
}

func (h *ReportHandler) AnnualIncome(w http.ResponseWriter, r *http.Request) {
	year := time.Now().UTC().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "year must be an integer")
			return
		}
		year = parsed
	}

	report, err := h.reports.AnnualIncome(r.Context(), year)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, report)
}
