package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/casablanca-dev/cashflow-api/internal/middleware"
)

// NewRouter wires middleware and routes. Router middleware only runs on
// matched routes, so the OPTIONS catch-all is what lets browser
// preflight requests reach the CORS middleware; the handler body itself
// never runs for them.
func NewRouter(h *Handler, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID(), middleware.Logging(log), middleware.CORS())
	r.HandleFunc("/", h.Health).Methods("GET")
	r.HandleFunc("/forecast", h.GetForecast).Methods("GET")
	r.HandleFunc("/balance/{date}", h.GetBalance).Methods("GET")
	r.HandleFunc("/low-point", h.GetLowPoint).Methods("GET")
	r.HandleFunc("/ask", h.Ask).Methods("POST")
	r.PathPrefix("/").Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	return r
}
