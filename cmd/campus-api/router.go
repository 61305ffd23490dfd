package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/ur-campus-api/api/swagger"
	"github.com/noah-isme/ur-campus-api/internal/handler"
	"github.com/noah-isme/ur-campus-api/internal/middleware"
	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/service"
	"github.com/noah-isme/ur-campus-api/pkg/config"
	"github.com/noah-isme/ur-campus-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/ur-campus-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/ur-campus-api/pkg/middleware/requestid"
)

func newRouter(cfg *config.Config, logr *zap.Logger, app *application) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(corsmiddleware.Options{AllowedOrigins: cfg.CORS.AllowedOrigins, MaxAge: cfg.CORS.MaxAge}))
	r.Use(middleware.Metrics(app.metrics))

	metricsHandler := handler.NewMetricsHandler(app.metrics, app.checks)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	adminAndStaff := middleware.RequireRoles(models.RoleAdmin, models.RoleStaff)
	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.Audit(logr, action, resource)
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta())
	api.Use(middleware.Session(app.auth))

	authHandler := handler.NewAuthHandler(app.auth)
	navigationHandler := handler.NewNavigationHandler()
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/register", authHandler.Register)
	api.GET("/auth/session", authHandler.Session)
	api.GET("/navigation/resolve", navigationHandler.Resolve)

	secured := api.Group("")
	secured.Use(middleware.JWT())
	secured.Use(middleware.InvalidateCache(app.cache, service.DashboardCachePattern, service.AnalyticsCachePattern))

	secured.POST("/auth/logout", authHandler.Logout)
	secured.POST("/auth/change-password", audit("change_password", "user"), authHandler.ChangePassword)
	secured.GET("/navigation", navigationHandler.Menu)

	dashboardHandler := handler.NewDashboardHandler(app.dashboard)
	secured.GET("/dashboard", dashboardHandler.Get)

	announcementHandler := handler.NewAnnouncementHandler(app.announce)
	secured.GET("/announcements", announcementHandler.List)

	facilityHandler := handler.NewFacilityHandler(app.facilities)
	facilities := secured.Group("/facilities")
	facilities.GET("", facilityHandler.List)
	facilities.GET("/:id", facilityHandler.Get)
	facilities.POST("", adminOnly, audit("create", "facility"), facilityHandler.Create)
	facilities.PUT("/:id", adminOnly, audit("update", "facility"), facilityHandler.Update)
	facilities.DELETE("/:id", adminOnly, audit("delete", "facility"), facilityHandler.Delete)
	facilities.POST("/:id/assignments", adminOnly, audit("assign", "facility"), facilityHandler.Assign)
	facilities.DELETE("/:id/assignments/:staffId", adminOnly, audit("unassign", "facility"), facilityHandler.Unassign)

	feedbackHandler := handler.NewFeedbackHandler(app.feedback, app.facilities)
	feedback := secured.Group("/feedback")
	feedback.GET("", feedbackHandler.List)
	feedback.GET("/mine", feedbackHandler.Mine)
	feedback.POST("", audit("create", "feedback"), feedbackHandler.Create)
	feedback.GET("/:id", feedbackHandler.Get)
	feedback.PATCH("/:id/status", adminAndStaff, audit("update_status", "feedback"), feedbackHandler.UpdateStatus)
	feedback.POST("/:id/comments", audit("comment", "feedback"), feedbackHandler.AddComment)

	recommendationHandler := handler.NewRecommendationHandler(app.recs, app.facilities)
	recommendations := secured.Group("/recommendations", adminAndStaff)
	recommendations.GET("", recommendationHandler.List)
	recommendations.GET("/:id", recommendationHandler.Get)
	recommendations.PATCH("/:id/status", audit("review", "recommendation"), recommendationHandler.Review)
	recommendations.POST("/:id/comments", audit("comment", "recommendation"), recommendationHandler.AddComment)

	predictionHandler := handler.NewPredictionHandler(app.predictions)
	predictions := secured.Group("/predictions", adminAndStaff)
	predictions.GET("", predictionHandler.List)
	predictions.POST("/generate", audit("generate", "prediction"), predictionHandler.Generate)
	predictions.POST("/population", audit("generate", "prediction"), predictionHandler.Population)
	predictions.POST("/apply-dataset", audit("apply_dataset", "prediction"), predictionHandler.ApplyDataset)
	predictions.GET("/datasets", predictionHandler.Datasets)
	predictions.GET("/models", predictionHandler.Models)
	predictions.POST("/models", audit("save_model", "prediction"), predictionHandler.SaveModel)

	reportHandler := handler.NewReportHandler(app.reports, app.facilities)
	// Download links are signed, so the token alone authorises the request.
	api.GET("/reports/download/:token", reportHandler.Download)
	reports := secured.Group("/reports", adminAndStaff)
	reports.GET("", reportHandler.List)
	reports.POST("", audit("generate", "report"), reportHandler.Generate)
	reports.GET("/:id", reportHandler.Get)
	reports.DELETE("/:id", audit("delete", "report"), reportHandler.Delete)

	analyticsHandler := handler.NewAnalyticsHandler(app.analytics)
	analytics := secured.Group("/analytics", adminOnly)
	analytics.GET("/overview", analyticsHandler.Overview)
	analytics.GET("/utilization", analyticsHandler.Utilization)
	analytics.GET("/feedback", analyticsHandler.Feedback)
	analytics.GET("/ai-effectiveness", analyticsHandler.AIEffectiveness)

	userHandler := handler.NewUserHandler(app.users)
	users := secured.Group("/users")
	users.GET("", adminOnly, userHandler.List)
	users.GET("/pending", adminOnly, userHandler.Pending)
	users.GET("/:id", middleware.RBAC(string(models.RoleAdmin), middleware.Self), userHandler.Get)
	users.POST("", adminOnly, audit("create", "user"), userHandler.Create)
	users.PUT("/:id", adminOnly, audit("update", "user"), userHandler.Update)
	users.DELETE("/:id", adminOnly, audit("delete", "user"), userHandler.Delete)
	users.POST("/:id/approve", adminOnly, audit("approve", "user"), userHandler.Approve)
	users.POST("/:id/reject", adminOnly, audit("reject", "user"), userHandler.Reject)
	users.POST("/:id/toggle-status", adminOnly, audit("toggle_status", "user"), userHandler.ToggleStatus)
	users.PUT("/:id/password", adminOnly, audit("reset_password", "user"), userHandler.ResetPassword)

	return r
}
