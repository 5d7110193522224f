package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-ServiceScheduler/internal/api/handlers"
	addScheduleHandler "github.com/m04kA/SMC-ServiceScheduler/internal/api/handlers/add_employee_schedule"
	autoAssignHandler "github.com/m04kA/SMC-ServiceScheduler/internal/api/handlers/auto_assign_technician"
	getDateScheduleHandler "github.com/m04kA/SMC-ServiceScheduler/internal/api/handlers/get_date_schedule"
	getScheduleHandler "github.com/m04kA/SMC-ServiceScheduler/internal/api/handlers/get_employee_schedule"
	patchDateScheduleHandler "github.com/m04kA/SMC-ServiceScheduler/internal/api/handlers/patch_date_schedule"
	updateScheduleHandler "github.com/m04kA/SMC-ServiceScheduler/internal/api/handlers/update_employee_schedule"
	validateAppointmentHandler "github.com/m04kA/SMC-ServiceScheduler/internal/api/handlers/validate_appointment"
	"github.com/m04kA/SMC-ServiceScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-ServiceScheduler/internal/config"
	appointmentRepo "github.com/m04kA/SMC-ServiceScheduler/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/SMC-ServiceScheduler/internal/infra/storage/availability"
	cellarRepo "github.com/m04kA/SMC-ServiceScheduler/internal/infra/storage/cellar"
	employeeRepo "github.com/m04kA/SMC-ServiceScheduler/internal/infra/storage/employee"
	jobRepo "github.com/m04kA/SMC-ServiceScheduler/internal/infra/storage/job"
	"github.com/m04kA/SMC-ServiceScheduler/internal/service/bookingrules"
	"github.com/m04kA/SMC-ServiceScheduler/internal/service/matcher"
	"github.com/m04kA/SMC-ServiceScheduler/internal/service/schedules"
	autoAssignUC "github.com/m04kA/SMC-ServiceScheduler/internal/usecase/auto_assign_technician"
	validateBookingUC "github.com/m04kA/SMC-ServiceScheduler/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-ServiceScheduler/internal/worker"
	"github.com/m04kA/SMC-ServiceScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-ServiceScheduler/pkg/logger"
	"github.com/m04kA/SMC-ServiceScheduler/pkg/metrics"
	"github.com/m04kA/SMC-ServiceScheduler/pkg/txmanager"
)

const defaultConfigPath = "config.toml"

func main() {
	// .env is optional; SMC_* variables may also come from the environment directly
	envErr := godotenv.Load()

	configPath := defaultConfigPath
	if p := os.Getenv("SMC_CONFIG_PATH"); p != "" {
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ServiceScheduler...")
	log.Info("Configuration loaded from %s", configPath)
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.Warn("Failed to read .env: %v", envErr)
	}

	grid, err := cfg.Scheduling.SlotGrid()
	if err != nil {
		log.Fatal("Invalid scheduling config: %v", err)
	}
	log.Info("Slot grid: anchors=%v, bookable=%v, timezone=%s", grid.Anchors, grid.BookableAnchors, grid.Location)

	// nil interfaces, not nil pointers, when metrics are off
	var (
		metricsCollector *metrics.Metrics
		dbCollector      dbmetrics.Collector
		ruleMetrics      validateBookingUC.Metrics
	)
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbCollector = metricsCollector
		ruleMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, dbCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	employeeRepository := employeeRepo.NewRepository(wrappedDB)
	jobRepository := jobRepo.NewRepository(wrappedDB)
	cellarRepository := cellarRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)

	matcherSvc := matcher.NewService(availabilityRepository, grid)
	rulesSvc := bookingrules.NewService(
		employeeRepository,
		appointmentRepository,
		cellarRepository,
		matcherSvc,
		grid,
		log,
	)
	schedulesSvc := schedules.NewService(
		employeeRepository,
		availabilityRepository,
		appointmentRepository,
		matcherSvc,
		txMgr,
		grid,
		log,
	)

	validateBookingUseCase := validateBookingUC.NewUseCase(
		jobRepository,
		rulesSvc,
		txMgr,
		ruleMetrics,
		log,
	)
	autoAssignUseCase := autoAssignUC.NewUseCase(
		jobRepository,
		employeeRepository,
		matcherSvc,
		rulesSvc,
		log,
	)

	getSchedule := getScheduleHandler.NewHandler(schedulesSvc, log)
	addSchedule := addScheduleHandler.NewHandler(schedulesSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(schedulesSvc, log)
	getDateSchedule := getDateScheduleHandler.NewHandler(schedulesSvc, log)
	patchDateSchedule := patchDateScheduleHandler.NewHandler(schedulesSvc, log)
	validateAppointment := validateAppointmentHandler.NewHandler(validateBookingUseCase, log)
	autoAssign := autoAssignHandler.NewHandler(autoAssignUseCase, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := wrappedDB.PingContext(ctx); err != nil {
			log.Warn("GET /healthz - database unreachable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (X-User-ID required)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Schedules ---
	protected.HandleFunc("/employees/{employeeId}/schedule", getSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/employees/{employeeId}/schedule", addSchedule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/employees/{employeeId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/employees/{employeeId}/schedule/{date}", getDateSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/employees/{employeeId}/schedule/{date}", patchDateSchedule.Handle).Methods(http.MethodPatch)

	// --- Appointments (called by the booking orchestrator) ---
	protected.HandleFunc("/appointments/validate", validateAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/auto-assign", autoAssign.Handle).Methods(http.MethodPost)

	var cleanupScheduler interface{ Stop() context.Context }
	if cfg.Cleanup.Enabled {
		cleanup := worker.NewOverrideCleanup(availabilityRepository, grid, cfg.Cleanup.RetentionDays, log)
		scheduler, err := cleanup.Schedule(cfg.Cleanup.Schedule)
		if err != nil {
			log.Fatal("Failed to schedule override cleanup: %v", err)
		}
		cleanupScheduler = scheduler
		log.Info("Override cleanup scheduled (%s, retention %d days)", cfg.Cleanup.Schedule, cfg.Cleanup.RetentionDays)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if cleanupScheduler != nil {
		select {
		case <-cleanupScheduler.Stop().Done():
		case <-shutdownCtx.Done():
			log.Warn("Override cleanup still running at shutdown")
		}
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	close(stopMetricsCh)
	log.Info("Server stopped gracefully")
}
