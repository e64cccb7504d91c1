package api

import (
	"errors"
	"net/http"

	"interview-practice/internal/storage"
)

type ReportListResponse struct {
	SessionIDs []string `json:"session_ids"`
}

func (h *Handler) listReports(w http.ResponseWriter, r *http.Request) {
	ids, err := h.reports.ListReports()
	if err != nil {
		h.logger.Error("failed to list reports", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if ids == nil {
		ids = []string{}
	}

	respondJSON(w, http.StatusOK, ReportListResponse{SessionIDs: ids})
}

func (h *Handler) getReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.LoadReport(r.PathValue("session_id"))
	if errors.Is(err, storage.ErrReportNotFound) {
		respondError(w, http.StatusNotFound, "report not found")
		return
	}
	if errors.Is(err, storage.ErrInvalidID) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("failed to load report", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, report)
}
