package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminBookingsHandler "github.com/jnails/salon-booking-service/internal/api/handlers/admin_bookings"
	adminPaymentsHandler "github.com/jnails/salon-booking-service/internal/api/handlers/admin_payments"
	adminServicesHandler "github.com/jnails/salon-booking-service/internal/api/handlers/admin_services"
	adminTimeslotsHandler "github.com/jnails/salon-booking-service/internal/api/handlers/admin_timeslots"
	cancelBookingHandler "github.com/jnails/salon-booking-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/jnails/salon-booking-service/internal/api/handlers/create_booking"
	getAvailableDatesHandler "github.com/jnails/salon-booking-service/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/jnails/salon-booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/jnails/salon-booking-service/internal/api/handlers/get_booking"
	getServicesHandler "github.com/jnails/salon-booking-service/internal/api/handlers/get_services"
	reportsHandler "github.com/jnails/salon-booking-service/internal/api/handlers/reports"
	"github.com/jnails/salon-booking-service/internal/api/middleware"
	"github.com/jnails/salon-booking-service/internal/config"
	bookingRepo "github.com/jnails/salon-booking-service/internal/infra/storage/booking"
	paymentRepo "github.com/jnails/salon-booking-service/internal/infra/storage/payment"
	catalogRepo "github.com/jnails/salon-booking-service/internal/infra/storage/service"
	timeslotRepo "github.com/jnails/salon-booking-service/internal/infra/storage/timeslot"
	availabilityService "github.com/jnails/salon-booking-service/internal/service/availability"
	bookingsService "github.com/jnails/salon-booking-service/internal/service/bookings"
	paymentsService "github.com/jnails/salon-booking-service/internal/service/payments"
	reportsService "github.com/jnails/salon-booking-service/internal/service/reports"
	catalogService "github.com/jnails/salon-booking-service/internal/service/servicecatalog"
	timeslotsService "github.com/jnails/salon-booking-service/internal/service/timeslots"
	createBookingUC "github.com/jnails/salon-booking-service/internal/usecase/create_booking"
	getAvailableDatesUC "github.com/jnails/salon-booking-service/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/jnails/salon-booking-service/internal/usecase/get_available_slots"
	"github.com/jnails/salon-booking-service/pkg/dbmetrics"
	"github.com/jnails/salon-booking-service/pkg/logger"
	"github.com/jnails/salon-booking-service/pkg/metrics"
	"github.com/jnails/salon-booking-service/pkg/simpletxmanager"
	"github.com/jnails/salon-booking-service/pkg/txmanager"
)

// systemClock is the production clock handed to every service.
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func main() {
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting salon-booking-service...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
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

	// Transaction manager interface shared by services and use cases.
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}

	var (
		slotRepository    *timeslotRepo.Repository
		bookingRepository *bookingRepo.Repository
		paymentRepository *paymentRepo.Repository
		serviceRepository *catalogRepo.Repository
		txMgr             TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = timeslotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		serviceRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = timeslotRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		serviceRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	clock := systemClock{}

	availabilityCfg := availabilityService.Config{
		StartHour:           cfg.Booking.StartHour,
		EndHour:             cfg.Booking.EndHour,
		SlotDurationMinutes: cfg.Booking.SlotDurationMinutes,
		MinNoticeHours:      cfg.Booking.MinNoticeHours,
		MaxAdvanceMonths:    cfg.Booking.MaxAdvanceMonths,
		ClosedWeekday:       time.Weekday(cfg.Booking.ClosedWeekday),
		AvailableDatesCount: cfg.Booking.AvailableDatesCount,
	}
	timeslotsCfg := timeslotsService.Config{
		StartHour:           cfg.Booking.StartHour,
		EndHour:             cfg.Booking.EndHour,
		SlotDurationMinutes: cfg.Booking.SlotDurationMinutes,
		ClosedWeekday:       time.Weekday(cfg.Booking.ClosedWeekday),
	}

	availabilitySvc := availabilityService.NewService(slotRepository, clock, availabilityCfg, log)
	timeslotsSvc := timeslotsService.NewService(slotRepository, txMgr, timeslotsCfg, log)
	bookingsSvc := bookingsService.NewService(bookingRepository, paymentRepository, availabilitySvc, txMgr, clock, log)
	paymentsSvc := paymentsService.NewService(paymentRepository, bookingRepository, txMgr, clock, log)
	catalogSvc := catalogService.NewService(serviceRepository, bookingRepository, log)
	reportsSvc := reportsService.NewService(bookingRepository, slotRepository, clock, log)

	createBookingUseCase := createBookingUC.NewUseCase(bookingRepository, catalogSvc, availabilitySvc, paymentsSvc, txMgr, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(availabilitySvc, catalogSvc, log)
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(availabilitySvc, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingsSvc, log)

	adminBookings := adminBookingsHandler.NewHandler(bookingsSvc, log)
	adminTimeslots := adminTimeslotsHandler.NewHandler(timeslotsSvc, log)
	adminPayments := adminPaymentsHandler.NewHandler(paymentsSvc, clock, log)
	adminServices := adminServicesHandler.NewHandler(catalogSvc, log)
	adminReports := reportsHandler.NewHandler(reportsSvc, clock, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes: the client-facing booking flow.
	api.HandleFunc("/availability/dates", getAvailableDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{reference}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{reference}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// Admin routes: the back office, behind the admin key.
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Key, log))

	admin.HandleFunc("/bookings", adminBookings.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/status", adminBookings.HandleUpdateStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{id}", adminBookings.HandleDelete).Methods(http.MethodDelete)

	admin.HandleFunc("/timeslots", adminTimeslots.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/timeslots/generate", adminTimeslots.HandleGenerate).Methods(http.MethodPost)
	admin.HandleFunc("/timeslots/bulk", adminTimeslots.HandleBulkUpdate).Methods(http.MethodPost)
	admin.HandleFunc("/timeslots/{id}", adminTimeslots.HandleUpdate).Methods(http.MethodPatch)
	admin.HandleFunc("/timeslots/{id}", adminTimeslots.HandleDelete).Methods(http.MethodDelete)

	admin.HandleFunc("/payments", adminPayments.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/payments", adminPayments.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/payments/{id}", adminPayments.HandleGet).Methods(http.MethodGet)
	admin.HandleFunc("/payments/{id}/status", adminPayments.HandleUpdateStatus).Methods(http.MethodPost)

	admin.HandleFunc("/services", adminServices.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/services", adminServices.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/services/{id}", adminServices.HandleUpdate).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id}", adminServices.HandleDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/services/{id}/deactivate", adminServices.HandleDeactivate).Methods(http.MethodPost)

	admin.HandleFunc("/reports/summary", adminReports.HandleSummary).Methods(http.MethodGet)
	admin.HandleFunc("/reports/clients", adminReports.HandleTopClients).Methods(http.MethodGet)

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

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
