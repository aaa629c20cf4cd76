package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orderbot-backend/internal/shared/middleware"
	"orderbot-backend/pkg/container"
)

func setupRouter(c *container.Container) *gin.Engine {
	if c.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
	)

	router.GET("/health", func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "up",
			"version": c.Config.App.Version,
		})
	})

	webhook := newWebhookHandler(c)
	router.POST("/telegram/webhook", webhook.Handle)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", c.AuthHandler.Login)

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
		{
			admin.GET("/categories", c.CategoryHandler.List)
			admin.POST("/categories", c.CategoryHandler.Create)
			admin.GET("/categories/:id", c.CategoryHandler.Get)
			admin.PUT("/categories/:id", c.CategoryHandler.Update)
			admin.PATCH("/categories/:id/active", c.CategoryHandler.SetActive)

			admin.GET("/products", c.ProductHandler.List)
			admin.POST("/products", c.ProductHandler.Create)
			admin.GET("/products/:id", c.ProductHandler.Get)
			admin.PUT("/products/:id", c.ProductHandler.Update)
			admin.PATCH("/products/:id/active", c.ProductHandler.SetActive)
			admin.POST("/products/:id/image", c.ProductHandler.UploadImage)

			admin.GET("/orders", c.OrderHandler.List)
			admin.GET("/orders/daily-totals", c.OrderHandler.DailyTotals)
			admin.GET("/orders/:id", c.OrderHandler.Get)
			admin.PATCH("/orders/:id/status", c.OrderHandler.UpdateStatus)

			admin.GET("/customers", c.CustomerHandler.List)

			admin.GET("/analytics", c.OrderHandler.Analytics)
		}
	}

	return router
}
