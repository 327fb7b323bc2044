package main

import (
	"fmt"
	"net/http"
	"time"

	"database/sql"

	"github.com/casablanca-dev/cashflow-api/internal/answer"
	"github.com/casablanca-dev/cashflow-api/internal/config"
	"github.com/casablanca-dev/cashflow-api/internal/datekey"
	"github.com/casablanca-dev/cashflow-api/internal/handler"
	"github.com/casablanca-dev/cashflow-api/internal/integrations/treasury"
	"github.com/casablanca-dev/cashflow-api/internal/models"
	"github.com/casablanca-dev/cashflow-api/internal/repository"
	"github.com/casablanca-dev/cashflow-api/internal/service"
	"github.com/casablanca-dev/cashflow-api/internal/utils/email"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load the forecast dataset
	var forecast *models.Forecast
	switch {
	case cfg.DBConn != "":
		db, err := sql.Open("postgres", cfg.DBConn)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}
		repo := repository.NewRepository(db)
		forecast, err = repo.LoadForecast()
		if err != nil {
			logger.Fatalf("Failed to load forecast from database: %v", err)
		}
	case cfg.ForecastFile != "":
		forecast, err = repository.LoadFile(cfg.ForecastFile)
		if err != nil {
			logger.Fatalf("Failed to load forecast file: %v", err)
		}
	default:
		forecast = repository.Defaults()
	}

	// Initialize layers
	svc, err := service.NewService(forecast, logger)
	if err != nil {
		logger.Fatalf("Invalid forecast dataset: %v", err)
	}
	var feed answer.BalanceFeed
	if cfg.FeedURL != "" {
		feed = treasury.NewClient(cfg, logger)
	}
	answerer := answer.NewRules(svc, feed, logger)
	h := handler.NewHandler(svc, answerer)

	// Setup router
	r := handler.NewRouter(h, logger)

	// Schedule low-point alerts
	if cfg.AlertEmail != "" {
		sender := email.NewSender(cfg, logger)
		threshold, _ := decimal.NewFromString(cfg.AlertThreshold)
		c := cron.New()
		_, err := c.AddFunc(cfg.AlertSchedule, func() {
			low, err := svc.GetLowPoint()
			if err != nil {
				logger.Errorf("Failed to compute low point for alert: %v", err)
				return
			}
			date, err := datekey.Parse(low.Date, svc.Forecast().Year)
			if err != nil {
				logger.Errorf("Failed to parse low point date for alert: %v", err)
				return
			}
			if err := sender.CheckLowPoint(cfg.AlertEmail, datekey.Display(date), low.Balance, threshold); err != nil {
				logger.Errorf("Failed to send low point alert: %v", err)
			}
		})
		if err != nil {
			logger.Fatalf("Invalid alert schedule %q: %v", cfg.AlertSchedule, err)
		}
		c.Start()
		defer c.Stop()
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
