package rest

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/socialcraft/content-agent/agent/application"
	"github.com/socialcraft/content-agent/pkg/utils"
)

type Agent struct {
	Scheduler *application.Scheduler
}

func InitRestAgent(app fiber.Router, scheduler *application.Scheduler) Agent {
	handler := Agent{Scheduler: scheduler}

	group := app.Group("/api/agent")
	group.Post("/start", handler.Start)
	group.Post("/stop", handler.Stop)
	group.Post("/execute", handler.ExecuteNow)
	group.Get("/status", handler.GetStatus)

	return handler
}

func (h *Agent) Start(c *fiber.Ctx) error {
	// The scheduling loop outlives the request.
	h.Scheduler.Start(context.Background())

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Execution agent started",
		Results: h.Scheduler.GetStatus(),
	})
}

func (h *Agent) Stop(c *fiber.Ctx) error {
	h.Scheduler.Stop()

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Execution agent stopped",
		Results: h.Scheduler.GetStatus(),
	})
}

func (h *Agent) ExecuteNow(c *fiber.Ctx) error {
	results := h.Scheduler.ExecuteNow(c.UserContext())

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Execution cycle completed",
		Results: results,
	})
}

func (h *Agent) GetStatus(c *fiber.Ctx) error {
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Agent status retrieved",
		Results: h.Scheduler.GetStatus(),
	})
}
