package routes

import (
	"fmt"

	"scheduler-backend/config"
	"scheduler-backend/controllers"
	"scheduler-backend/services"
	"scheduler-backend/utils"
	"scheduler-backend/views"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const loginPath = "/login"

// Deps is what the router needs from main. Now may be nil.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Now    utils.Clock
}

func SetupRouter(deps Deps) (*gin.Engine, error) {
	cfg := deps.Config
	utils.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(config.RequestID())
	r.Use(config.PerformanceLogger(cfg.SlowRequestThreshold()))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", config.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", config.RequestIDHeader},
		AllowCredentials: true,
	}))

	tmpl, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	reminderService := services.NewReminderService(deps.DB)
	reminderController := controllers.NewReminderController(reminderService)
	calendarController := controllers.NewCalendarController(reminderService, deps.Now)
	pageController := controllers.NewPageController(reminderService, deps.Now, cfg.Auth.Enabled())
	dashboardController := controllers.NewDashboardController(reminderService, deps.Now)
	authController := controllers.NewAuthController(cfg.Auth)

	r.GET("/health", controllers.Health(deps.DB))

	auth := r.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}
	r.GET(loginPath, authController.LoginPage)
	r.POST(loginPath, authController.LoginForm)
	r.GET("/logout", authController.Logout)

	protected := r.Group("")
	if cfg.Auth.Enabled() {
		protected.Use(utils.AuthMiddleware(cfg.Auth.JWTSecret, loginPath))
	}

	api := protected.Group("/api")
	{
		api.GET("/schedules", reminderController.GetReminders)
		api.GET("/schedules/:id", reminderController.GetReminder)
		api.POST("/schedule/add", reminderController.CreateReminder)
		api.PUT("/schedule/edit/:id", reminderController.UpdateReminder)
		api.DELETE("/schedules/:id", reminderController.DeleteReminder)

		api.GET("/calendar", calendarController.GetCalendar)
		api.GET("/calendar.ics", calendarController.ExportICS)

		// Dashboard routes
		api.GET("/dashboard", dashboardController.GetDashboardOverview)
	}

	// Server-rendered UI
	protected.GET("/", pageController.Index)
	reminders := protected.Group("/reminders")
	{
		reminders.POST("", pageController.CreateReminder)
		reminders.POST("/:id", pageController.UpdateReminder)
		reminders.POST("/:id/delete", pageController.DeleteReminder)
	}

	return r, nil
}
