package api

import "net/http"

// RegisterRoutes регистрирует маршруты интервью, служебные маршруты и, если есть архив, маршруты отчетов
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("POST /start", h.start)
	mux.HandleFunc("POST /next_question/{session_id}", h.nextQuestion)
	mux.HandleFunc("POST /submit_answer/{session_id}", h.submitAnswer)
	mux.HandleFunc("POST /end/{session_id}", h.end)

	mux.HandleFunc("GET /session/{session_id}", h.getSession)
	mux.HandleFunc("DELETE /session/{session_id}", h.deleteSession)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /metrics", h.metrics)

	if h.reports != nil {
		mux.HandleFunc("GET /reports", h.listReports)
		mux.HandleFunc("GET /reports/{session_id}", h.getReport)
	}
}
