package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"employee-system/internal/controllers"
	"employee-system/internal/repositories"
	"employee-system/internal/services"
	"employee-system/pkg/config"
	"employee-system/pkg/eventbus"
	"employee-system/pkg/filestorage"
	"employee-system/pkg/mailer"
	"employee-system/pkg/middleware"
	"employee-system/pkg/service"
	"employee-system/pkg/validation"
)

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	bus *eventbus.Bus,
	validator *validation.CustomValidator,
	cfg *config.Config,
	logger *zap.Logger,
) {
	logger.Info("InitRouter: registering routes")

	// --- 0. Shared components ---
	api := e.Group("/api")
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, logger)
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Server.UploadDir)
	if err != nil {
		logger.Fatal("failed to create file storage", zap.Error(err))
	}
	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	mail := mailer.New(cfg.SMTP, logger)

	// --- 1. Repositories ---
	employeeRepo := repositories.NewEmployeeRepository(dbConn, logger)
	statsRepo := repositories.NewEmployeeStatsRepository(dbConn, logger)
	messageRepo := repositories.NewBirthdayMessageRepository(dbConn, logger)
	seenRepo := repositories.NewBirthdaySeenRepository(dbConn, logger)
	intercomRepo := repositories.NewIntercomRepository(dbConn, logger)
	requestRepo := repositories.NewEmployeeRequestRepository(dbConn, logger)
	stateRepo := repositories.NewRequestStateRepository(dbConn, logger)

	// --- 2. Services ---
	employeeService := services.NewEmployeeService(employeeRepo, txManager, cacheRepo, fileStorage, bus, logger)
	statsService := services.NewEmployeeStatsService(statsRepo, cacheRepo, cfg.Cache.StatsTTL, logger)
	authService := services.NewAuthService(employeeRepo, cacheRepo, jwtSvc, cfg.Auth, logger)
	otpService := services.NewOTPService(employeeRepo, cacheRepo, mail, cfg.Auth, logger)
	birthdayService := services.NewBirthdayService(employeeRepo, statsRepo, messageRepo, seenRepo, txManager, logger)
	intercomService := services.NewIntercomService(intercomRepo, employeeRepo, txManager, logger)
	requestService := services.NewEmployeeRequestService(requestRepo, stateRepo, employeeRepo, logger)
	employeeImport := services.NewEmployeeImportService(employeeService, validator, bus, cfg.Import, logger)
	intercomImport := services.NewIntercomImportService(intercomService, logger)

	// --- 3. Controllers ---
	authCtrl := controllers.NewAuthController(authService, otpService, employeeService, logger)
	employeeCtrl := controllers.NewEmployeeController(employeeService, employeeImport, logger)
	statsCtrl := controllers.NewStatsController(statsService, logger)
	birthdayCtrl := controllers.NewBirthdayController(birthdayService, logger)
	requestCtrl := controllers.NewEmployeeRequestController(requestService, logger)
	intercomCtrl := controllers.NewIntercomController(intercomService, intercomImport, logger)

	// --- 4. Routers ---
	var protected []echo.MiddlewareFunc
	if cfg.Auth.Required {
		protected = append(protected, authMW.Auth)
	}
	secureGroup := api.Group("", protected...)

	runAuthRouter(api, authCtrl)
	runBirthdayRouter(secureGroup, birthdayCtrl)
	runEmployeeRouter(secureGroup, employeeCtrl, statsCtrl)
	runEmployeeRequestRouter(secureGroup, requestCtrl)
	runIntercomRouter(secureGroup, intercomCtrl)

	logger.Info("InitRouter: routes registered", zap.Bool("authRequired", cfg.Auth.Required))
}
