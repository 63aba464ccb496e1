package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"car-finance/config"
	httpLayer "car-finance/http"
	"car-finance/repository"
	"car-finance/service"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the financing estimate HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			cfg, err := config.Load(envFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return serve(cfg, config.NewLogger(cfg.LogLevel))
		},
	}
}

type app struct {
	handler  http.Handler
	sessions *service.SessionManager
	limiter  *httpLayer.RateLimiter
	closers  []func() error
}

func (a *app) Close() {
	a.sessions.Stop()
	a.limiter.Stop()
	for _, c := range a.closers {
		_ = c()
	}
}

func buildApp(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*app, error) {
	a := &app{}

	var cache repository.CacheRepository = repository.NewMemoryCache()
	if cfg.RedisAddr != "" {
		rc := repository.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			_ = rc.Close()
			return nil, err
		}
		cache = rc
		a.closers = append(a.closers, rc.Close)
		logger.Infof("Profile cache backed by Redis at %s", cfg.RedisAddr)
	}

	var predictor service.Predictor
	var profiles httpLayer.ProfileLoader
	if cfg.PredictionURL != "" {
		backend := service.NewBackendClient(cfg.PredictionURL, cfg.PredictionTimeout, logger)
		predictor = backend
		profiles = service.NewProfileCache(backend, cache, cfg.ProfileTTL, logger)
	} else {
		logger.Warn("PREDICTION_URL not set, serving local estimates only")
	}

	risk := service.NewHeuristicRiskModel()
	estimator := service.NewEstimator(predictor, risk, cfg.PredictionTimeout, cfg.ReferenceYear, logger)
	a.sessions = service.NewSessionManager(estimator, cfg.DebounceDelay, cfg.SessionIdleTTL, logger)
	a.limiter = httpLayer.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow)

	a.handler = httpLayer.NewRouter(httpLayer.Handlers{
		Estimate:    httpLayer.NewEstimateHandler(estimator, a.sessions, profiles, logger),
		Term:        httpLayer.NewTermRecommendationHandler(service.NewTermRecommendationService(risk, logger), logger),
		DownPayment: httpLayer.NewDownPaymentHandler(service.NewDownPaymentService(cfg.ReferenceYear), logger),
	}, a.limiter, cfg.JWTSecret, logger)

	return a, nil
}

func serve(cfg *config.Config, logger *logrus.Logger) error {
	a, err := buildApp(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      a.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
		logger.Info("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Error during server shutdown")
	}

	logger.Info("Server exited")
	return nil
}
