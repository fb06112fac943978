package main

import (
	"github.com/gin-gonic/gin"
	"learnpath.backend/internal/interfaces/http/handlers"
	"learnpath.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler        *handlers.AuthHandler
	catalogHandler     *handlers.CatalogHandler
	enrollmentHandler  *handlers.EnrollmentHandler
	profileHandler     *handlers.ProfileHandler
	authMiddleware     gin.HandlerFunc
	optionalAuth       gin.HandlerFunc
	idempotencyHandler gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.Use(middleware.NoStore())
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/logout", d.authHandler.Logout)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
		}

		catalog := v1.Group("/catalog")
		{
			catalog.GET("/:type", d.catalogHandler.List)
			catalog.GET("/:type/:slug", d.catalogHandler.Get)
			catalog.POST("/:type", d.idempotencyHandler, d.catalogHandler.Create)
			catalog.PUT("/:type/:slug", d.authMiddleware, d.catalogHandler.Update)
		}

		enrollments := v1.Group("/enrollments")
		enrollments.Use(middleware.NoStore())
		{
			enrollments.POST("", d.optionalAuth, d.idempotencyHandler, d.enrollmentHandler.Submit)
			enrollments.GET("", d.authMiddleware, d.enrollmentHandler.ListMine)
		}

		// optional auth so a malformed body is reported before a missing caller
		profile := v1.Group("/profile")
		profile.Use(middleware.NoStore())
		{
			profile.POST("", d.optionalAuth, d.profileHandler.Save)
			profile.GET("", d.authMiddleware, d.profileHandler.Get)
		}
	}
}
