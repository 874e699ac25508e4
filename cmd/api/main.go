// Package main is the entry point for the praca API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/onnwee/praca/internal/api"
	"github.com/onnwee/praca/internal/config"
	"github.com/onnwee/praca/internal/facility"
	"github.com/onnwee/praca/internal/health"
	"github.com/onnwee/praca/internal/interaction"
	"github.com/onnwee/praca/internal/middleware"
	"github.com/onnwee/praca/internal/purge"
	"github.com/onnwee/praca/internal/question"
	"github.com/onnwee/praca/internal/store"
	"github.com/onnwee/praca/internal/totem"
	"github.com/onnwee/praca/internal/tracing"
	"github.com/onnwee/praca/internal/user"
)

const serviceName = "praca-api"

func main() {
	configPath := flag.String("config", "", "path to an optional YAML config file")
	help := flag.Bool("help", false, "display help message")
	flag.Parse()

	if *help {
		fmt.Println("Praca API Server")
		fmt.Println()
		fmt.Println("Usage: api [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	cfg, errs := config.Load(*configPath)
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
		}
		os.Exit(1)
	}

	logger := middleware.NewLogger(cfg.Env)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", "config", cfg.LogSummary())

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := store.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Error("failed to disconnect from mongodb", "error", err)
		}
	}()
	logger.Info("connected to mongodb", "database", cfg.MongoDBName)

	tracerProvider, err := tracing.NewProvider(tracing.Config{
		ServiceName:  serviceName,
		Enabled:      cfg.TracingEnabled,
		Environment:  cfg.Env,
		ExporterType: cfg.TracingExporterType,
		OTLPEndpoint: cfg.TracingOTLPEndpoint,
		SamplingRate: cfg.TracingSamplingRate,
		InsecureMode: cfg.TracingInsecure,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down tracer provider", "error", err)
		}
	}()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	httpMetrics := middleware.NewMetrics()
	interactionMetrics := interaction.NewMetrics()
	facilityMetrics := facility.NewMetrics()
	for _, register := range []func(prometheus.Registerer) error{
		httpMetrics.Register,
		interactionMetrics.Register,
		facilityMetrics.Register,
	} {
		if err := register(registry); err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	// Repositories
	totemRepo := totem.NewMongoRepository(db.Collection(store.CollectionTotems))
	questionRepo := question.NewMongoRepository(db.Collection(store.CollectionQuestions))
	interactionRepo := interaction.NewMongoRepository(db.Collection(store.CollectionInteractions))
	userRepo := user.NewMongoRepository(db.Collection(store.CollectionUsers))
	facilityRepo := facility.NewMongoRepository(db.Collection(store.CollectionFacilities))

	// Services
	interactions := interaction.NewService(interactionRepo, interactionMetrics)
	questions := question.NewService(questionRepo, interactions, logger)
	totems := totem.NewService(totemRepo)
	users := user.NewService(userRepo, logger)
	facilities := facility.NewService(facilityRepo, logger, facilityMetrics)
	purgeService := purge.NewService(map[string]purge.Wiper{
		"usuarios":   userRepo,
		"totens":     totemRepo,
		"perguntas":  questionRepo,
		"interacoes": interactionRepo,
		"servicos":   facilityRepo,
	}, logger)

	router := api.NewRouter(api.Handlers{
		Totems:       api.NewTotemHandlers(totems, facilities, cfg.DefaultRadiusKM),
		Questions:    api.NewQuestionHandlers(questions, interactions),
		Interactions: api.NewInteractionHandlers(interactions, users, cfg.VotePoints),
		Users:        api.NewUserHandlers(users),
		Facilities:   api.NewFacilityHandlers(facilities, cfg.DefaultRadiusKM),
		Admin:        api.NewAdminHandlers(purgeService),
		Health:       api.NewHealthHandlers(health.NewMongoChecker(client)),
		Metrics:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	// Middleware chain, innermost first.
	var handler http.Handler = router
	if tracerProvider.IsEnabled() {
		handler = middleware.Tracing(serviceName)(handler)
	}
	handler = middleware.HTTPMetrics(httpMetrics)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "port", cfg.Port, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
