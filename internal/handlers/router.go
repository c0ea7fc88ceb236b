package handlers

import (
	"time"

	"github.com/SAP-F-2025/exam-service/internal/auth"
	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/services"
	"github.com/SAP-F-2025/exam-service/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	authHandler    *AuthHandler
	catalogHandler *CatalogHandler
	staffHandler   *StaffHandler
	studentHandler *StudentHandler
	tokens         *auth.TokenManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens *auth.TokenManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Auth(), logger),
		catalogHandler: NewCatalogHandler(serviceManager.Subject(), logger),
		staffHandler:   NewStaffHandler(serviceManager, logger),
		studentHandler: NewStudentHandler(serviceManager, logger),
		tokens:         tokens,
	}
}

// NewRouter builds the engine with the shared middleware stack and every route.
func NewRouter(hm *HandlerManager, logger utils.Logger, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(utils.ContextLogger(logger))
	router.Use(cors.New(corsConfig(allowedOrigins)))

	hm.SetupRoutes(router)
	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
		config.AllowCredentials = true
	}
	return config
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// Public routes
		api.GET("/health", HealthCheck)
		api.GET("/departments", hm.catalogHandler.ListDepartments)
		api.GET("/units", hm.catalogHandler.ListUnits)
		api.POST("/student/register", hm.authHandler.RegisterStudent)
		api.POST("/staff/register", hm.authHandler.RegisterStaff)
		api.POST("/login", hm.authHandler.Login)

		authenticated := api.Group("", auth.Middleware(hm.tokens))
		authenticated.GET("/subjects", hm.catalogHandler.ListSubjects)

		// Staff routes
		staff := authenticated.Group("/staff", auth.RequireRole(models.RoleStaff))
		{
			staff.POST("/subjects", hm.staffHandler.CreateSubject)
			staff.POST("/questions", hm.staffHandler.CreateQuestion)
			staff.GET("/questions", hm.staffHandler.ListQuestions)
			staff.POST("/tests", hm.staffHandler.CreateTest)
			staff.GET("/tests", hm.staffHandler.ListTests)
			staff.GET("/test-results/:test_id", hm.staffHandler.TestResults)
			staff.GET("/test-results/:test_id/export", hm.staffHandler.ExportTestResults)
			staff.GET("/test-insights/:test_id", hm.staffHandler.TestInsights)
			staff.GET("/live-status/:test_id", hm.staffHandler.LiveStatus)
		}

		// Student routes
		student := authenticated.Group("/student", auth.RequireRole(models.RoleStudent))
		{
			student.GET("/available-tests", hm.studentHandler.AvailableTests)
			student.GET("/results/:attempt_id", hm.studentHandler.AttemptResult)
			student.GET("/test-insights/:attempt_id", hm.studentHandler.AttemptInsights)
		}

		// Test-taking routes
		test := authenticated.Group("/test", auth.RequireRole(models.RoleStudent))
		{
			test.GET("/:id/questions", hm.studentHandler.TestQuestions)
			test.POST("/:id/progress", hm.studentHandler.UpdateProgress)
			test.POST("/submit", hm.studentHandler.SubmitTest)
		}
	}
}
