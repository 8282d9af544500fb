package handlers

import (
	"songvault/config"

	"github.com/gofiber/fiber/v2"
)

func HealthHandler(router fiber.Router, config config.Config) {
	router.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "index api"})
	})

	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"version": config.GeneralVersion,
			"service": "songvault_api",
		})
	})
}
