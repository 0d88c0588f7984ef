package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salon-booking/config"
	deliveryHttp "salon-booking/internal/delivery/http"
	"salon-booking/internal/delivery/http/handler"
	"salon-booking/internal/delivery/http/middleware"
	domainRepo "salon-booking/internal/domain/repository"
	"salon-booking/internal/infrastructure/cache"
	"salon-booking/internal/infrastructure/database"
	"salon-booking/internal/metrics"
	"salon-booking/internal/repository"
	"salon-booking/internal/service"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gorm.io/gorm"
)

const loadTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	SQLite      *sql.DB
	RedisClient *redis.Client
	Store       *service.BookingStore
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	app.Log = setupLogger(cfg.App.LogLevel)
	app.Log.Info("Configuration loaded successfully")

	// Open the appointment slot backend
	slotRepo, err := app.openSlotRepository()
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Log.Infof("Appointment slot %q stored with %s driver", cfg.Storage.SlotKey, cfg.Storage.Driver)

	catalogRepo, err := repository.NewCatalogRepository(cfg.Catalog)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to build service catalog: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	bookingMetrics := metrics.NewBookingMetrics(registry)

	// Load the appointment list once; it is then owned by the store
	app.Store = service.NewBookingStore(slotRepo, cfg.Storage.SlotKey, app.Log, bookingMetrics)
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	appointments := app.Store.Load(ctx)
	cancel()
	app.Log.Infof("Booking store ready: %d appointments (%s)", len(appointments), app.Store.LoadState())

	app.Server = initializeServer(cfg, app.Log, app.Store, catalogRepo, bookingMetrics, registry)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}

// openSlotRepository connects the configured storage driver
func (app *App) openSlotRepository() (domainRepo.SlotRepository, error) {
	cfg := app.Config
	switch cfg.Storage.Driver {
	case config.StorageDriverSQLite:
		db, err := database.NewSQLiteConnection(cfg.Storage.SQLitePath, app.Log)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		app.SQLite = db
		return repository.NewSQLiteSlotRepository(db), nil

	case config.StorageDriverRedis:
		client, err := cache.NewRedisClient(cfg.Redis, app.Log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = client
		return repository.NewRedisSlotRepository(client), nil

	case config.StorageDriverPostgres:
		db, err := database.NewPostgresConnection(cfg.DB, app.Log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = db
		return repository.NewPostgresSlotRepository(db), nil

	default:
		return repository.NewFileSlotRepository(afero.NewOsFs(), cfg.Storage.FileDir), nil
	}
}

// initializeServer creates and configures the HTTP server
func initializeServer(
	cfg *config.Config,
	log *logrus.Logger,
	store *service.BookingStore,
	catalogRepo domainRepo.CatalogRepository,
	bookingMetrics *metrics.BookingMetrics,
	registry *prometheus.Registry,
) *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize services
	auditService := service.NewAuditService(log)

	// Initialize usecases
	bookingUsecase := usecase.NewBookingUsecase(
		log,
		store,
		catalogRepo,
		customValidator,
		auditService,
		bookingMetrics,
		usecase.BookingSettings{
			CurrencyPrefix: cfg.Booking.CurrencyPrefix,
			CloseDelay:     cfg.Booking.CloseDelay,
			MessageTimeout: cfg.Booking.MessageTimeout,
		},
		time.Now,
	)

	// Initialize handlers
	bookingHandler := handler.NewBookingHandler(bookingUsecase, log)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSAllowOrigin)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		bookingHandler,
		corsMiddleware,
		loggingMiddleware,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	app.Shutdown(ctx)
}

// Shutdown stops the HTTP server and closes the backends. The slot is not
// written here: every booking and cancellation is persisted when it happens,
// and a slot that failed to load must keep its stored records.
func (app *App) Shutdown(ctx context.Context) {
	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	if app.Store != nil {
		app.Log.Infof("Booking store closed with %d appointments (load state %s)",
			len(app.Store.Appointments()), app.Store.LoadState())
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, sqlite, redis)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.SQLite != nil {
		app.SQLite.Close()
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
