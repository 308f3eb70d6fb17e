package main

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/TeamSoftLion/crm/internal/config"
	"github.com/TeamSoftLion/crm/internal/handlers"
	"github.com/TeamSoftLion/crm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Staff routes
		staff := v1.Group("")
		staff.Use(middleware.Auth(cfg.JWTSecret))
		staff.Use(middleware.RequireRole(middleware.RoleAdmin, middleware.RoleManager))
		{
			enrollments := staff.Group("/enrollments")
			{
				enrollments.GET("", h.Enrollment.Index)
				enrollments.POST("", h.Enrollment.Create)
				enrollments.POST("/transfer", h.Enrollment.Transfer)
				enrollments.GET("/:enrollment_id", h.Enrollment.Show)
				enrollments.PATCH("/:enrollment_id", h.Enrollment.Update)
			}

			finance := staff.Group("/finance")
			{
				finance.POST("/charges", h.Finance.ComputeCharge)
				finance.POST("/payments", h.Finance.RecordPayment)
				finance.POST("/expenses", h.Finance.RecordExpense)
				finance.POST("/discount", h.Finance.ApplyDiscount)
				finance.GET("/groups/:group_id/charges", h.Finance.GroupCharges)
				finance.GET("/debtors", h.Finance.Debtors)
				finance.GET("/students/:student_id/summary", h.Finance.StudentSummary)
				finance.GET("/students/:student_id/history", h.Finance.StudentHistory)
				finance.GET("/students/:student_id/statement", h.Finance.StudentStatement)
				finance.GET("/balance", h.Finance.Balance)
				finance.GET("/overview", h.Finance.Overview)
			}

			staff.GET("/audits", h.Audit.Index)
			staff.GET("/jobs/status", h.Job.Status)

			// Admin-only routes
			admin := staff.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.DELETE("/enrollments/:enrollment_id", h.Enrollment.Delete)
				admin.POST("/finance/reconcile", h.Finance.Reconcile)
			}
		}
	}

	return router
}
