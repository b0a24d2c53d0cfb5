// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"keeper/internal/delivery/api/middleware"
	"keeper/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	OAuthHandler   *handler.OAuthHandler
	NoteHandler    *handler.NoteHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	oauthHandler   *handler.OAuthHandler
	noteHandler    *handler.NoteHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		oauthHandler:   params.OAuthHandler,
		noteHandler:    params.NoteHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	api.GET("/health", handler.HealthCheck)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	}

	oauthGroup := api.Group("/oauth")
	{
		oauthGroup.GET("/:provider", r.oauthHandler.Begin)
		oauthGroup.GET("/:provider/callback", r.oauthHandler.Callback)
	}

	notesGroup := api.Group("/notes")
	notesGroup.Use(r.authMiddleware.Authenticate)
	{
		notesGroup.GET("", r.noteHandler.List)
		notesGroup.POST("", r.noteHandler.Create)
		notesGroup.PUT("/:id", r.noteHandler.Update)
		notesGroup.DELETE("/:id", r.noteHandler.Delete)
	}
}
