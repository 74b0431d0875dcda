package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/campus-election/internal/app/controllers"
	appMigrations "github.com/yigit/campus-election/internal/app/migrations"
	appRepos "github.com/yigit/campus-election/internal/app/repositories"
	"github.com/yigit/campus-election/internal/app/repositories/memory"
	appRoutes "github.com/yigit/campus-election/internal/app/routes"
	"github.com/yigit/campus-election/internal/app/scheduler"
	appServices "github.com/yigit/campus-election/internal/app/services"
	"github.com/yigit/campus-election/internal/config"
	"github.com/yigit/campus-election/internal/db"
	appMiddleware "github.com/yigit/campus-election/internal/middleware"
	pkgAuth "github.com/yigit/campus-election/internal/pkg/auth"
	"github.com/yigit/campus-election/internal/pkg/helpers"
	"github.com/yigit/campus-election/internal/pkg/logger"
	"github.com/yigit/campus-election/internal/pkg/websocket"
	"github.com/yigit/campus-election/internal/seed"
)

// ConfigPathEnv overrides the default configuration file location
const ConfigPathEnv = "CONFIG_PATH"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store              appRepos.Store
	ElectionService    appServices.ElectionService
	BallotService      appServices.BallotService
	ResultService      appServices.ResultService
	ElectionController *appControllers.ElectionController
	BallotController   *appControllers.BallotController
	ResultController   *appControllers.ResultController
	AuthMiddleware     *appMiddleware.AuthMiddleware
	JWTService         *pkgAuth.JWTService
	Hub                *websocket.Hub
	WSHandler          *websocket.Handler
	Scheduler          *scheduler.ExpiryScheduler
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv(ConfigPathEnv)
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured store. For PostgreSQL it connects, runs migrations
// and returns the database so the caller can close it.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (appRepos.Store, *db.PostgresDB, error) {
	var store appRepos.Store
	var database *db.PostgresDB

	if cfg.IsMemoryStore() {
		lgr.Warn().Msg("Using in-memory store (tests and demos only), data is lost on restart")
		store = memory.NewStore()
	} else {
		lgr.Info().Msg("Establishing database connection...")
		var err error
		database, err = db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		lgr.Info().Str("dir", cfg.Server.MigrationsDir).Msg("Running database migrations...")
		migrator := appMigrations.NewMigrator(database.Pool, lgr)
		if err := migrator.MigrateFromDirectory(ctx, cfg.Server.MigrationsDir); err != nil {
			database.Close()
			lgr.Error().Err(err).Msg("Database migration error")
			return nil, nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")

		store = appRepos.NewPostgresStore(database)
	}

	if cfg.Server.SeedCatalog {
		if err := seed.CreateDefaultData(ctx, store, lgr); err != nil {
			// Seeding is best effort
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return store, database, nil
}

// BuildDependencies initializes services, the expiry scheduler, the results hub and controllers.
func BuildDependencies(cfg *config.Config, store appRepos.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Store: store, Logger: lgr}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Hub = websocket.NewHub(lgr.With().Str("component", "results_hub").Logger())

	deps.ResultService = appServices.NewResultService(store, time.Now)
	publisher := appServices.NewLiveResultsPublisher(deps.ResultService, deps.Hub, lgr)

	deps.ElectionService = appServices.NewElectionService(store, time.Now, lgr)
	deps.ElectionService.SetResultsPublisher(publisher)

	deps.BallotService = appServices.NewBallotService(store, appServices.BallotConfig{
		MaxSelections: cfg.Voting.MaxSelections,
		AllowPartial:  cfg.Voting.AllowPartial,
	}, publisher, lgr)

	deps.Scheduler = scheduler.NewExpiryScheduler(store, deps.ElectionService, scheduler.Config{
		SweepInterval: helpers.ParseDuration(cfg.Scheduler.SweepInterval, scheduler.DefaultSweepInterval),
		EndTimeout:    helpers.ParseDuration(cfg.Scheduler.EndTimeout, scheduler.DefaultEndTimeout),
	}, lgr)
	deps.ElectionService.SetExpiryWatcher(deps.Scheduler)

	deps.WSHandler = websocket.NewHandler(deps.Hub, func(ctx context.Context, electionID int64) (interface{}, error) {
		return deps.ResultService.GetResults(ctx, electionID)
	}, lgr.With().Str("component", "results_ws").Logger())

	deps.ElectionController = appControllers.NewElectionController(deps.ElectionService)
	deps.BallotController = appControllers.NewBallotController(deps.BallotService)
	deps.ResultController = appControllers.NewResultController(deps.ResultService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr), appMiddleware.Recovery(lgr))

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.ElectionController,
		deps.BallotController,
		deps.ResultController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	return router
}
