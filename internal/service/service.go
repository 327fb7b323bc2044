package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/casablanca-dev/cashflow-api/internal/datekey"
	"github.com/casablanca-dev/cashflow-api/internal/models"
)

var (
	// ErrNotFound indicates a date key that does not parse or has no projection
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates a malformed or missing request field
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyDataset indicates a forecast with no points; fatal at startup
	ErrEmptyDataset = errors.New("empty dataset")
)

// Service holds the forecast dataset and serves read-only queries over it.
// Safe for concurrent use: nothing is mutated after NewService returns.
type Service struct {
	forecast *models.Forecast
	byKey    map[string]models.ForecastPoint
	lowPoint models.ForecastPoint
	log      *logrus.Logger
}

// NewService validates the dataset, builds the date index, and computes
// the low point. Returns ErrEmptyDataset for a forecast with no points;
// malformed, duplicate, or out-of-order date keys are also rejected.
func NewService(forecast *models.Forecast, log *logrus.Logger) (*Service, error) {
	if forecast == nil || len(forecast.Points) == 0 {
		return nil, ErrEmptyDataset
	}

	s := &Service{
		forecast: forecast,
		byKey:    make(map[string]models.ForecastPoint, len(forecast.Points)),
		log:      log,
	}

	var prevDate time.Time
	var lowDate time.Time
	for i, point := range forecast.Points {
		date, err := datekey.Parse(point.Date, forecast.Year)
		if err != nil {
			return nil, fmt.Errorf("invalid forecast point %d: %w", i, err)
		}
		key := datekey.Format(date)
		if _, exists := s.byKey[key]; exists {
			return nil, fmt.Errorf("duplicate forecast date: %s", key)
		}
		if i > 0 && !date.After(prevDate) {
			return nil, fmt.Errorf("forecast dates not ascending at %s", key)
		}
		s.byKey[key] = point
		prevDate = date

		// strict comparison keeps the earliest date among equal minimums
		if i == 0 || point.Balance.LessThan(s.lowPoint.Balance) {
			s.lowPoint = point
			lowDate = date
		}
	}

	log.Infof("Forecast loaded: %d points, low point %s", len(forecast.Points), datekey.Display(lowDate))
	return s, nil
}

// GetAll returns the full ordered forecast. Never fails once loaded.
func (s *Service) GetAll() []models.ForecastPoint {
	return s.forecast.Points
}

// GetBalance resolves a date key and returns the matching point.
func (s *Service) GetBalance(token string) (models.ForecastPoint, error) {
	date, err := datekey.Parse(token, s.forecast.Year)
	if err != nil {
		return models.ForecastPoint{}, fmt.Errorf("%w: %s", ErrNotFound, token)
	}
	point, ok := s.byKey[datekey.Format(date)]
	if !ok {
		return models.ForecastPoint{}, fmt.Errorf("%w: no projection for %s", ErrNotFound, token)
	}
	return point, nil
}

// GetLowPoint returns the point with the minimum projected balance.
func (s *Service) GetLowPoint() (models.ForecastPoint, error) {
	if len(s.forecast.Points) == 0 {
		return models.ForecastPoint{}, ErrEmptyDataset
	}
	return s.lowPoint, nil
}

// Forecast exposes the underlying dataset for read-only consumers
// such as the question answerer.
func (s *Service) Forecast() *models.Forecast {
	return s.forecast
}
