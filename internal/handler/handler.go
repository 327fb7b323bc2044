package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/casablanca-dev/cashflow-api/internal/answer"
	"github.com/casablanca-dev/cashflow-api/internal/service"
)

type Handler struct {
	svc      *service.Service
	answerer answer.Answerer
}

func NewHandler(svc *service.Service, answerer answer.Answerer) *Handler {
	return &Handler{svc: svc, answerer: answerer}
}

// Health reports service liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Cash Flow Forecast API",
	})
}

// GetForecast returns the full ordered projection
func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GetAll())
}

// GetBalance returns the projected balance for a date key path segment
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	point, err := h.svc.GetBalance(mux.Vars(r)["date"])
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, point)
}

// GetLowPoint returns the minimum projected balance and its date
func (h *Handler) GetLowPoint(w http.ResponseWriter, r *http.Request) {
	point, err := h.svc.GetLowPoint()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, point)
}

type askRequest struct {
	Question string `json:"question"`
}

// Ask answers a free-text question about the forecast
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	text, err := h.answerer.Answer(r.Context(), req.Question)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid input")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": text})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
