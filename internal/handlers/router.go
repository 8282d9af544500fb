package handlers

import (
	"songvault/internal/app"
	"songvault/internal/handlers/middleware"
	"songvault/internal/types"
	"songvault/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	renderer   types.Renderer
	log        logger.Logger
	router     fiber.Router
}

func newHandler(app app.App, router fiber.Router, file string) Handler {
	return Handler{
		middleware: app.Middleware,
		renderer:   app.Renderer,
		log:        logger.New("handlers").File(file),
		router:     router,
	}
}

func Router(router fiber.Router, app *app.App) error {
	api := router.Group("/api")
	api.Use(app.Middleware.TraceID())

	HealthHandler(api, app.Config)
	NewAuthHandler(*app, api).Register()
	NewSongHandler(*app, api).Register()
	NewAlbumHandler(*app, api).Register()
	NewCatalogHandler(*app, api).Register()
	NewAdminHandler(*app, api).Register()

	return nil
}
