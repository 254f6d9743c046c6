package rest

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/socialcraft/content-agent/agent/domain"
	pkgError "github.com/socialcraft/content-agent/pkg/error"
	"github.com/socialcraft/content-agent/pkg/utils"
	"github.com/socialcraft/content-agent/usecase"
	"github.com/socialcraft/content-agent/validations"
)

type Plan struct {
	Service *usecase.PlanUsecase
}

func InitRestPlan(app fiber.Router, service *usecase.PlanUsecase) Plan {
	handler := Plan{Service: service}

	group := app.Group("/api/plans")
	group.Get("/", handler.List)
	group.Get("/:id", handler.Get)
	group.Post("/:id/approve", handler.Approve)

	return handler
}

func (h *Plan) List(c *fiber.Ctx) error {
	var raw []string
	if filter := strings.TrimSpace(c.Query("status")); filter != "" {
		raw = strings.Split(filter, ",")
	}

	statuses, err := validations.ValidatePlanStatuses(c.UserContext(), raw)
	utils.PanicIfNeeded(err)

	plans, err := h.Service.List(c.UserContext(), statuses)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Plans retrieved",
		Results: plans,
	})
}

// panicPlanError maps store errors onto their REST-facing types before
// handing them to the recovery middleware.
func panicPlanError(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, domain.ErrPlanNotFound) {
		panic(pkgError.NotFoundError(err.Error()))
	}
	utils.PanicIfNeeded(err)
}

func (h *Plan) Get(c *fiber.Ctx) error {
	plan, err := h.Service.Get(c.UserContext(), c.Params("id"))
	panicPlanError(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Plan retrieved",
		Results: plan,
	})
}

func (h *Plan) Approve(c *fiber.Ctx) error {
	// An empty body approves every pending post.
	var request validations.ApprovePlanRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&request); err != nil {
			utils.PanicIfNeeded(pkgError.ValidationError("invalid request body: " + err.Error()))
		}
	}

	plan, err := h.Service.Approve(c.UserContext(), c.Params("id"), request)
	panicPlanError(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Plan approved",
		Results: plan,
	})
}
