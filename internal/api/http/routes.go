package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/nvegesna/planmyday/internal/common"
	"github.com/nvegesna/planmyday/internal/mailer"
	"github.com/nvegesna/planmyday/internal/planner"
	"github.com/nvegesna/planmyday/internal/session"
)

var validate = validator.New()

// ErrorHandler renders handler errors as the JSON envelope clients expect.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// PlanRunner launches a stored plan run in the background.
type PlanRunner interface {
	Launch(id string)
}

// PlanMailer delivers a finished plan to a recipient.
type PlanMailer interface {
	SendPlan(recipient, name string, result *planner.Result) error
}

// Deps bundles everything the HTTP handlers need.
type Deps struct {
	Store  *session.MemoryStore
	Runner PlanRunner
	Mailer PlanMailer
	Logger *slog.Logger
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	api := app.Group("/api")

	api.Post("/plans", func(c *fiber.Ctx) error {
		var req planner.Request
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		req.Date = common.NormalizeDate(req.Date, time.Now())
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		run := deps.Store.Create(req)
		deps.Runner.Launch(run.ID)
		deps.Logger.Info("plan run accepted", "run_id", run.ID, "location", req.Location, "date", req.Date)

		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"id":     run.ID,
			"status": run.Status,
		})
	})

	api.Get("/plans/:id", func(c *fiber.Ctx) error {
		run, err := deps.Store.Get(c.Params("id"))
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no plan run for requested id")
			}
			return err
		}
		return c.JSON(run)
	})

	api.Post("/plans/:id/regenerate", func(c *fiber.Ctx) error {
		var body struct {
			Feedback string `json:"feedback"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		feedback := strings.TrimSpace(body.Feedback)
		if feedback == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Please describe what you'd like to change before I try again.")
		}

		id := c.Params("id")
		if _, err := deps.Store.RestartWithFeedback(id, feedback); err != nil {
			switch {
			case errors.Is(err, session.ErrNotFound):
				return fiber.NewError(fiber.StatusNotFound, "no plan run for requested id")
			case errors.Is(err, session.ErrActive):
				return fiber.NewError(fiber.StatusConflict, "plan run is still in progress")
			}
			return err
		}

		deps.Runner.Launch(id)
		deps.Logger.Info("plan run regeneration accepted", "run_id", id)

		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"id":     id,
			"status": session.StatusPending,
		})
	})

	api.Post("/plans/:id/email", func(c *fiber.Ctx) error {
		var body struct {
			Recipient string `json:"recipient"`
		}
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
			}
		}

		run, err := deps.Store.Get(c.Params("id"))
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no plan run for requested id")
			}
			return err
		}
		if run.Status != session.StatusCompleted || run.Result == nil {
			return fiber.NewError(fiber.StatusConflict, "plan run has not produced a finished plan yet")
		}

		recipient := strings.TrimSpace(body.Recipient)
		if recipient == "" {
			recipient = run.Payload.Email
		}
		if recipient == "" {
			return fiber.NewError(fiber.StatusBadRequest, "recipient email is required")
		}

		name := mailer.RecipientName(run.Result.Persona)
		if err := deps.Mailer.SendPlan(recipient, name, run.Result); err != nil {
			if errors.Is(err, mailer.ErrNotConfigured) {
				return fiber.NewError(fiber.StatusServiceUnavailable, "email delivery is not configured")
			}
			return err
		}
		deps.Logger.Info("plan emailed", "run_id", run.ID, "recipient", recipient)

		return c.JSON(fiber.Map{
			"message": fmt.Sprintf("Sent to %s!", recipient),
		})
	})

	api.Post("/chat", func(c *fiber.Ctx) error {
		var body struct {
			Message string `json:"message"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		message := strings.TrimSpace(body.Message)
		if message == "" {
			return c.JSON(fiber.Map{"reply": planner.Greeting})
		}
		return c.JSON(fiber.Map{"reply": planner.CompanionReply(message)})
	})
}
