package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"interview-practice/internal/interviewer"
	"interview-practice/internal/session"
	"interview-practice/internal/storage"
)

// maxBodyBytes ограничивает размер тела запроса
const maxBodyBytes = 1 << 20

// Reports — архив итоговых отчетов, доступный только для чтения
type Reports interface {
	LoadReport(sessionID string) (*storage.Report, error)
	ListReports() ([]string, error)
}

// Handler хранит зависимости HTTP-обработчиков
type Handler struct {
	svc     *interviewer.Service
	reports Reports
	logger  *slog.Logger
}

// NewHandler создает обработчик. reports может быть nil, тогда маршруты /reports не регистрируются.
func NewHandler(svc *interviewer.Service, reports Reports, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		svc:     svc,
		reports: reports,
		logger:  logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON читает тело запроса; при ошибке сам пишет 400 и возвращает false
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// handleServiceError переводит ошибку сервиса в HTTP-ответ.
// Возвращает true, если ошибка была обработана.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == nil {
		return false
	}

	var gwErr *interviewer.GatewayError
	switch {
	case errors.Is(err, session.ErrNotFound):
		respondError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, session.ErrState):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &gwErr):
		h.logger.Error("model gateway failed", "path", r.URL.Path, "op", gwErr.Op, "attempts", gwErr.Attempts, "error", gwErr.Wrapped)
		respondError(w, http.StatusBadGateway, "model call failed")
	default:
		h.logger.Error("request failed", "path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
