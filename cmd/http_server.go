package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mentorhub/mentorhub/internal"
	"github.com/mentorhub/mentorhub/internal/auth"
	authpg "github.com/mentorhub/mentorhub/internal/auth/postgres"
	"github.com/mentorhub/mentorhub/internal/core/events"
	"github.com/mentorhub/mentorhub/internal/mentors"
	mentorspg "github.com/mentorhub/mentorhub/internal/mentors/postgres"
	"github.com/mentorhub/mentorhub/internal/roles"
	rolespg "github.com/mentorhub/mentorhub/internal/roles/postgres"
	"github.com/mentorhub/mentorhub/internal/transport/middleware"
	"github.com/mentorhub/mentorhub/internal/transport/rest"
	"github.com/mentorhub/mentorhub/internal/transport/swagger"
	"github.com/mentorhub/mentorhub/pkg/logger"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := swagger.ValidateSpec(context.Background(), "./api/openapi.yml"); err != nil {
		deps.Logger.Error("openapi spec invalid", "error", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	deps.Router.Use(chiMiddleware.RequestID)
	deps.Router.Use(middleware.RequestID)
	deps.Router.Use(middleware.LoggingMiddleware(deps.Logger))

	bus := events.NewEventBus(deps.Logger)
	registerAuditSubscribers(bus, deps.Logger)

	rolesRepo := rolespg.NewRolesRepository(deps.GormDB)
	rolesService := roles.NewService(rolesRepo, bus, deps.Logger)
	rolesHandler := roles.NewHandler(rolesService)

	tokenGen := auth.NewJWTTokenGenerator(
		deps.Config.Security.AccessTokenSecret,
		deps.Config.Security.RefreshTokenSecret,
		deps.Config.Security.AccessTokenDuration,
		deps.Config.Security.RefreshTokenDuration,
	)
	authRepo := authpg.NewRepository(deps.GormDB)
	authService := auth.NewService(authRepo, tokenGen, deps.Config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService, rolesService)

	mentorsRepo := mentorspg.NewMentorsRepository(deps.GormDB)
	mentorsService := mentors.NewService(mentorsRepo, deps.Logger)
	mentorsHandler := mentors.NewHandler(mentorsService)

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, authHandler, rolesHandler, mentorsHandler, deps.Logger)
}

// registerAuditSubscribers writes an audit line for every role mutation.
func registerAuditSubscribers(bus *events.EventBus, log *slog.Logger) {
	audit := func(ctx context.Context, event events.Event) error {
		log.Info("audit: role change",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload(),
		)
		return nil
	}

	bus.Subscribe(roles.EventTypeRoleAssigned, audit)
	bus.Subscribe(roles.EventTypeRolesRemoved, audit)
	bus.Subscribe(roles.EventTypeAdminCreated, audit)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"), config.Observability.Logging.Level)
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm shares the pgx connection pool opened above
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: log,
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB opens the pgx-backed connection pool used by both the ORM and the
// readiness probe.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return dbConn, nil
}
