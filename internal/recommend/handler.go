package recommend

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
	log      *zap.Logger
}

func NewHandler(s *Service, log *zap.Logger) *Handler {
	return &Handler{service: s, validate: validator.New(), log: log}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/recommend", h.postRecommend)
	app.Get("/recommend", h.getRecommend)
}

func (h *Handler) postRecommend(c *fiber.Ctx) error {
	trip := new(TripRequest)
	if err := c.BodyParser(trip); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error",
			"issues":  fiber.Map{"body": err.Error()},
		})
	}

	if issues := trip.Issues(h.validate); len(issues) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error",
			"issues":  issues,
		})
	}

	items, err := h.service.Recommend(c.UserContext(), *trip)
	if err != nil {
		h.log.Error("recommend failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
			"detail":  err.Error(),
		})
	}
	return c.JSON(items)
}

func (h *Handler) getRecommend(c *fiber.Ctx) error {
	return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{"message": "Use POST with the wizard state"})
}
