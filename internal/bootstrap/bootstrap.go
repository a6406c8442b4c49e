package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/unihire/unihire/internal/app/controllers"
	appRepos "github.com/unihire/unihire/internal/app/repositories"
	appRoutes "github.com/unihire/unihire/internal/app/routes"
	appServices "github.com/unihire/unihire/internal/app/services"
	"github.com/unihire/unihire/internal/config"
	"github.com/unihire/unihire/internal/kvstore"
	appMiddleware "github.com/unihire/unihire/internal/middleware"
	pkgAuth "github.com/unihire/unihire/internal/pkg/auth"
	"github.com/unihire/unihire/internal/pkg/logger"
	"github.com/unihire/unihire/internal/provider"
	"github.com/unihire/unihire/internal/seed"
	"github.com/unihire/unihire/internal/session"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	SessionProvider        provider.SessionProvider
	AuthService            *appServices.AuthService
	ProfileService         *appServices.ProfileService
	NotificationService    *appServices.NotificationService
	JobOffersService       *appServices.JobOffersService
	SessionManager         *session.Manager
	AuthController         *appControllers.AuthController
	StudentController      *appControllers.StudentController
	ProfileController      *appControllers.ProfileController
	JobOfferController     *appControllers.JobOfferController
	NotificationController *appControllers.NotificationController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
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

// SetupStore builds the key-value store backend selected by configuration.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (kvstore.Store, error) {
	switch strings.ToLower(cfg.Store.Backend) {
	case "", "memory":
		lgr.Info().Msg("Using in-memory store backend")
		return kvstore.NewMemoryStore(), nil
	case "redis":
		store, err := kvstore.NewRedisStore(ctx, kvstore.RedisConfig{
			Addr:      cfg.Store.RedisAddr,
			Password:  cfg.Store.RedisPass,
			DB:        cfg.Store.RedisDB,
			KeyPrefix: cfg.Store.KeyPrefix,
		})
		if err != nil {
			lgr.Error().Err(err).Str("addr", cfg.Store.RedisAddr).Msg("Failed to connect to Redis")
			return nil, err
		}
		lgr.Info().Str("addr", cfg.Store.RedisAddr).Msg("Using Redis store backend")
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// BuildDependencies initializes repositories, services, the session manager
// and controllers on top of the given store.
func BuildDependencies(cfg *config.Config, store kvstore.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(store)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenExp(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.SessionProvider = provider.NewHTTPProvider(provider.HTTPConfig{
		BaseURL: cfg.Provider.BaseURL,
		APIKey:  cfg.Provider.APIKey,
		Timeout: cfg.ProviderTimeout(),
	}, lgr)

	mockDelay := cfg.MockDelay()
	deps.AuthService = appServices.NewAuthService(deps.Repos, deps.JWTService, cfg.Auth.StudentEmailDomain, mockDelay, lgr)
	deps.ProfileService = appServices.NewProfileService(deps.Repos, mockDelay, lgr)
	deps.NotificationService = appServices.NewNotificationService(deps.Repos, lgr)
	deps.JobOffersService = appServices.NewJobOffersService(deps.Repos, deps.NotificationService, mockDelay, lgr)

	deps.SessionManager = session.NewManager(
		deps.SessionProvider,
		store,
		deps.AuthService,
		deps.ProfileService,
		session.NewLogNotifier(lgr),
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.SessionManager, deps.AuthService, deps.SessionProvider, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.ProfileService, lgr)
	deps.ProfileController = appControllers.NewProfileController(deps.SessionManager, deps.ProfileService, lgr)
	deps.JobOfferController = appControllers.NewJobOfferController(deps.JobOffersService, lgr)
	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService, lgr)

	return deps, nil
}

// SeedStore populates demo data when enabled by configuration.
func SeedStore(ctx context.Context, cfg *config.Config, store kvstore.Store, deps *Dependencies, lgr zerolog.Logger) {
	if !cfg.Mock.Seed {
		return
	}
	if err := seed.Run(ctx, store, deps.Repos, lgr); err != nil {
		// Seeding is a convenience; a failure should not stop the server.
		lgr.Error().Err(err).Msg("Failed to seed demo data, proceeding anyway...")
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.ProfileController,
		deps.JobOfferController,
		deps.NotificationController,
		deps.AuthMiddleware,
	)

	return router
}
