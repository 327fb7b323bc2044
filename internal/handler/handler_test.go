package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casablanca-dev/cashflow-api/internal/answer"
	"github.com/casablanca-dev/cashflow-api/internal/models"
	"github.com/casablanca-dev/cashflow-api/internal/service"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	forecast := &models.Forecast{
		Year:           2026,
		CurrentBalance: decimal.NewFromInt(245000),
		Points: []models.ForecastPoint{
			{Date: "jan15", Balance: decimal.NewFromInt(500)},
			{Date: "jan20", Balance: decimal.NewFromInt(-200)},
			{Date: "jan25", Balance: decimal.NewFromInt(800)},
		},
	}
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	svc, err := service.NewService(forecast, log)
	require.NoError(t, err)
	return NewHandler(svc, answer.NewRules(svc, nil, log))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
}

func TestGetForecast(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.GetForecast(rec, httptest.NewRequest("GET", "/forecast", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var points []models.ForecastPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
	require.Len(t, points, 3)
	assert.Equal(t, "jan15", points[0].Date)
	assert.Equal(t, "jan25", points[2].Date)
}

func TestGetBalance(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("GET", "/balance/jan20", nil)
	req = mux.SetURLVars(req, map[string]string{"date": "jan20"})
	rec := httptest.NewRecorder()
	h.GetBalance(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "jan20", body["date"])
	assert.Equal(t, "-200", body["balance"])
}

func TestGetBalance_NotFound(t *testing.T) {
	h := newTestHandler(t)

	for _, token := range []string{"feb01", "garbage"} {
		req := httptest.NewRequest("GET", "/balance/"+token, nil)
		req = mux.SetURLVars(req, map[string]string{"date": token})
		rec := httptest.NewRecorder()
		h.GetBalance(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code, "token %q", token)
		body := decodeBody(t, rec)
		assert.Equal(t, "not found", body["error"])
	}
}

func TestGetLowPoint(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.GetLowPoint(rec, httptest.NewRequest("GET", "/low-point", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "jan20", body["date"])
	assert.Equal(t, "-200", body["balance"])
}

func TestAsk(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/ask", strings.NewReader(`{"question":"What is the current balance?"}`))
	h.Ask(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	answer, ok := body["answer"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, answer)
}

func TestAsk_InvalidInput(t *testing.T) {
	h := newTestHandler(t)

	cases := []string{
		`{"question":""}`,
		`{"question":"   "}`,
		`{}`,
		`not json`,
		``,
	}
	for _, payload := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/ask", strings.NewReader(payload))
		h.Ask(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "payload %q", payload)
		body := decodeBody(t, rec)
		assert.Equal(t, "invalid input", body["error"])
	}
}

func TestRouter_Preflight(t *testing.T) {
	h := newTestHandler(t)
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	router := NewRouter(h, log)

	// browser preflight for a cross-origin POST /ask
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/ask", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestRouter_Endpoints(t *testing.T) {
	h := newTestHandler(t)
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	router := NewRouter(h, log)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/balance/jan20", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/balance/feb01", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/ask", strings.NewReader(`{"question":"low point?"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

type failingAnswerer struct{}

func (failingAnswerer) Answer(ctx context.Context, question string) (string, error) {
	return "", context.DeadlineExceeded
}

func TestAsk_AnswererFailure(t *testing.T) {
	h := newTestHandler(t)
	h.answerer = failingAnswerer{}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/ask", strings.NewReader(`{"question":"anything"}`))
	h.Ask(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
