package rest

import (
	"github.com/gofiber/fiber/v2"

	coreconfig "github.com/socialcraft/content-agent/core/config"
	"github.com/socialcraft/content-agent/pkg/utils"
)

type App struct{}

func InitRestApp(app fiber.Router) App {
	handler := App{}

	group := app.Group("/api/app")
	group.Get("/version", handler.GetVersion)
	group.Get("/settings", handler.GetSettings)

	return handler
}

func (h *App) GetVersion(c *fiber.Ctx) error {
	version := ""
	if coreconfig.Global != nil {
		version = coreconfig.Global.App.Version
	}
	return c.JSON(fiber.Map{
		"version": version,
	})
}

func (h *App) GetSettings(c *fiber.Ctx) error {
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Settings retrieved",
		Results: coreconfig.GetAllSettings(),
	})
}
