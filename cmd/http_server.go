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

	"github.com/mohspitality/hospitality-management/internal"
	"github.com/mohspitality/hospitality-management/internal/auth"
	authpg "github.com/mohspitality/hospitality-management/internal/auth/postgres"
	"github.com/mohspitality/hospitality-management/internal/core/events"
	"github.com/mohspitality/hospitality-management/internal/department"
	departmentpg "github.com/mohspitality/hospitality-management/internal/department/postgres"
	"github.com/mohspitality/hospitality-management/internal/mailer"
	"github.com/mohspitality/hospitality-management/internal/nopost"
	nopostpg "github.com/mohspitality/hospitality-management/internal/nopost/postgres"
	"github.com/mohspitality/hospitality-management/internal/outlet"
	outletpg "github.com/mohspitality/hospitality-management/internal/outlet/postgres"
	"github.com/mohspitality/hospitality-management/internal/profile"
	profilepg "github.com/mohspitality/hospitality-management/internal/profile/postgres"
	"github.com/mohspitality/hospitality-management/internal/qrcode"
	qrcodepg "github.com/mohspitality/hospitality-management/internal/qrcode/postgres"
	"github.com/mohspitality/hospitality-management/internal/rbac"
	rbacpg "github.com/mohspitality/hospitality-management/internal/rbac/postgres"
	"github.com/mohspitality/hospitality-management/internal/transport/rest"
	"github.com/mohspitality/hospitality-management/internal/user"
	userpg "github.com/mohspitality/hospitality-management/internal/user/postgres"
	"github.com/mohspitality/hospitality-management/pkg/logger"

	"github.com/go-chi/chi"
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

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

// setupRoutes wires repositories, services and handlers and registers every
// route. The permission catalog is reconciled here so the server never
// accepts a request before all permissions exist.
func setupRoutes(deps *Dependencies) error {
	cfg := deps.Config
	log := deps.Logger

	eventBus := events.NewEventBus(log)
	authorizer := auth.NewAuthorizer(log)
	rbacAuthz := auth.NewRBACAuthorization(authorizer, log)

	mail := mailer.New(cfg.Mail, log)
	mailer.NewEventHandler(mail, log).RegisterEventHandlers(eventBus)

	authRepo := authpg.NewRepository(deps.GormDB)
	rbacRepo := rbacpg.NewRepository(deps.GormDB)
	userRepo := userpg.NewUserRepository(deps.GormDB)
	departmentRepo := departmentpg.NewDepartmentRepository(deps.GormDB)
	outletRepo := outletpg.NewOutletRepository(deps.GormDB)
	nopostRepo := nopostpg.NewNoPostListRepository(deps.GormDB)
	profileRepo := profilepg.NewProfileRepository(deps.GormDB)
	qrcodeRepo := qrcodepg.NewQRCodeRepository(deps.GormDB)

	catalog := rbac.NewCatalog(rbacRepo, log)
	if _, err := catalog.Reconcile(context.Background()); err != nil {
		return fmt.Errorf("reconcile permission catalog: %w", err)
	}

	tokenGen := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.AccessTokenDuration)
	authService := auth.NewService(authRepo, tokenGen, eventBus, log,
		cfg.Security.BCryptCost, cfg.Security.RefreshTokenDuration, cfg.Security.PasswordResetDuration)
	rbacService := rbac.NewService(rbacRepo, catalog, authorizer, log)
	userService := user.NewService(userRepo, authorizer, eventBus, cfg.Security.BCryptCost, log)
	departmentService := department.NewService(departmentRepo, authorizer, log)
	outletService := outlet.NewService(outletRepo, authorizer, log)
	nopostService := nopost.NewService(nopostRepo, authorizer, log)
	profileService := profile.NewService(profileRepo, authorizer, log)
	qrcodeService := qrcode.NewService(qrcodeRepo, qrcode.NewPNGRenderer(), authorizer, cfg.QRCode.BaseURL, log)

	handlers := rest.Handlers{
		Auth:       auth.NewHandler(authService),
		User:       user.NewHandler(userService),
		RBAC:       rbac.NewHandler(rbacService),
		Department: department.NewHandler(departmentService),
		Outlet:     outlet.NewHandler(outletService),
		NoPost:     nopost.NewHandler(nopostService),
		Profile:    profile.NewHandler(profileService),
		QRCode:     qrcode.NewHandler(qrcodeService),
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, handlers, rbacAuthz, log)
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// JSON logs signal a deployed environment.
	logEnv := "development"
	if config.Observability.Logging.Format == "json" {
		logEnv = "production"
	}
	logger.Init(logEnv)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	router := chi.NewRouter()

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		GormDB: gormDB,
		Router: router,
	}, nil
}

// initDB initializes the database connection
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

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the already-open pgx pool so both share one
// set of connections.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm over existing pool: %w", err)
	}
	return gormDB, nil
}
