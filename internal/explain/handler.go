package explain

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s, validate: validator.New()}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/explain", h.postExplain)
	app.Get("/explain", h.getExplain)
}

func (h *Handler) postExplain(c *fiber.Ctx) error {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error",
			"issues":  fiber.Map{"body": err.Error()},
		})
	}

	if issues := h.requestIssues(req); len(issues) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error",
			"issues":  issues,
		})
	}

	resp := h.service.Explain(c.UserContext(), *req)
	return c.JSON(resp)
}

func (h *Handler) getExplain(c *fiber.Ctx) error {
	return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{"message": "Use POST"})
}

// requestIssues collects all validation problems at once, in the same
// field → message shape the recommend endpoint uses.
func (h *Handler) requestIssues(req *Request) map[string]string {
	issues := map[string]string{}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				issues[fe.Namespace()] = fe.Tag()
			}
		} else {
			issues["request"] = err.Error()
		}
	}

	if req.GroupAge.Min > req.GroupAge.Max {
		issues["groupAge"] = "min must be <= max"
	}
	if req.Dates != nil {
		start, errStart := time.Parse(time.RFC3339, req.Dates.Start)
		end, errEnd := time.Parse(time.RFC3339, req.Dates.End)
		switch {
		case errStart != nil || errEnd != nil:
			issues["dates"] = "dates must be RFC3339 timestamps"
		case start.After(end):
			issues["dates.end"] = "start must be before or equal to end"
		}
	}
	return issues
}
