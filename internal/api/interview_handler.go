package api

import (
	"net/http"
	"strings"
)

type StartRequest struct {
	Role       string `json:"role"`
	Difficulty string `json:"difficulty"`
}

type StartResponse struct {
	SessionID string `json:"session_id"`
}

type QuestionResponse struct {
	Question string `json:"question"`
}

type AnswerRequest struct {
	Text           string `json:"text"`
	FollowupAnswer bool   `json:"followup_answer"`
}

type FeedbackResponse struct {
	Feedback any `json:"feedback"`
}

func (h *Handler) start(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Role) == "" || strings.TrimSpace(req.Difficulty) == "" {
		respondError(w, http.StatusBadRequest, "role and difficulty are required")
		return
	}

	id, err := h.svc.Start(req.Role, req.Difficulty)
	if h.handleServiceError(w, r, err) {
		return
	}

	respondJSON(w, http.StatusOK, StartResponse{SessionID: id})
}

func (h *Handler) nextQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.svc.NextQuestion(r.Context(), r.PathValue("session_id"))
	if h.handleServiceError(w, r, err) {
		return
	}

	respondJSON(w, http.StatusOK, QuestionResponse{Question: q})
}

func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	result, err := h.svc.SubmitAnswer(r.Context(), r.PathValue("session_id"), req.Text, req.FollowupAnswer)
	if h.handleServiceError(w, r, err) {
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) end(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.svc.End(r.Context(), r.PathValue("session_id"))
	if h.handleServiceError(w, r, err) {
		return
	}

	respondJSON(w, http.StatusOK, FeedbackResponse{Feedback: feedback})
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Session(r.PathValue("session_id"))
	if h.handleServiceError(w, r, err) {
		return
	}

	respondJSON(w, http.StatusOK, view)
}

func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	if h.handleServiceError(w, r, h.svc.Delete(r.PathValue("session_id"))) {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Metrics().GetSnapshot())
}
