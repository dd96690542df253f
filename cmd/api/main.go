package main

import (
	"log"

	_ "taxengine/docs" // swagger docs
	"taxengine/internal/cache"
	"taxengine/internal/config"
	"taxengine/internal/database"
	"taxengine/internal/handler"
	"taxengine/internal/repository"
	"taxengine/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Tax Obligation Engine API
// @version         1.0
// @description     Determines which Colombian tax obligations apply to a declared SMB profile for a given fiscal year.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log.Println("Connecting to Database...")
	db, err := database.NewConnection(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("CRITICAL: Database connection failed: %v", err)
	}
	log.Println("Connected to Database successfully.")

	thresholdCache := cache.NewThresholdCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	fiscalYearRepo := repository.NewFiscalYearRepository(db)
	thresholdRepo := repository.NewThresholdRepository(db)
	obligationRepo := repository.NewObligationRepository(db)
	ruleRepo := repository.NewRuleRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)

	userService := service.NewUserService(userRepo)
	auditService := service.NewAuditService(db)
	adminService := service.NewAdminService(fiscalYearRepo, thresholdRepo, ruleRepo, auditRepo, thresholdCache)
	profileService := service.NewProfileService(profileRepo, auditRepo)
	obligationService := service.NewObligationService(obligationRepo, auditRepo)
	calendarService := service.NewCalendarService(calendarRepo)
	evaluationService := service.NewEvaluationService(
		profileRepo, fiscalYearRepo, ruleRepo, thresholdRepo, obligationRepo,
		evaluationRepo, calendarRepo, auditRepo, thresholdCache,
	)

	userHandler := handler.NewUserHandler(userService)
	auditHandler := handler.NewAuditHandler(auditService)
	adminHandler := handler.NewAdminHandler(adminService)
	profileHandler := handler.NewProfileHandler(profileService)
	obligationHandler := handler.NewObligationHandler(obligationService)
	calendarHandler := handler.NewCalendarHandler(calendarService)
	evaluationHandler := handler.NewEvaluationHandler(evaluationService)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"http://localhost:5173",
		"http://127.0.0.1:5173",
		cfg.FrontendURL,
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP", "message": "Server is healthy"})
	})

	api := router.Group("/api")

	userHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))
	adminHandler.RegisterRoutes(api)
	profileHandler.RegisterRoutes(api)
	obligationHandler.RegisterRoutes(api)
	calendarHandler.RegisterRoutes(api)
	evaluationHandler.RegisterRoutes(api)

	log.Printf("Server is starting and listening on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
