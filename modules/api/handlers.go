package api

import (
	"errors"
	"time"

	"github.com/example/bfhl-service/events"
	"github.com/gofiber/fiber/v2"
)

// setupRoutes configures all HTTP routes.
func (m *Module) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)
	app.Post("/bfhl", m.bfhlHandler)
	app.Get("/bfhl/stats", m.statsHandler)
}

// healthHandler handles GET /health.
func (m *Module) healthHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{
		IsSuccess:     true,
		OfficialEmail: m.officialEmail,
	})
}

// bfhlHandler handles POST /bfhl.
func (m *Module) bfhlHandler(c *fiber.Ctx) error {
	start := time.Now()
	outcome := m.dispatcher.Dispatch(c.UserContext(), c.Body())
	m.publishDispatched(dispatchedEvent(outcome, requestID(c), start))

	if !outcome.Success() {
		// Clients get only the root message; the cause stays in the log.
		m.logger.Debug("bfhl request failed",
			"operation", string(outcome.Operation),
			"status", outcome.Status,
			"error", outcome.Err,
			"cause", errors.Unwrap(outcome.Err),
			"request_id", requestID(c))
		return c.Status(outcome.Status).JSON(m.failure(outcome.Err.Error()))
	}
	return c.Status(outcome.Status).JSON(Envelope{
		IsSuccess:     true,
		OfficialEmail: m.officialEmail,
		Data:          outcome.Data,
	})
}

// statsHandler handles GET /bfhl/stats.
func (m *Module) statsHandler(c *fiber.Ctx) error {
	summary, err := m.statsPort.GetStats(c.UserContext())
	if err != nil {
		m.logger.Error("Failed to load dispatch stats", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(m.failure(err.Error()))
	}
	return c.JSON(Envelope{
		IsSuccess:     true,
		OfficialEmail: m.officialEmail,
		Data:          summary,
	})
}

func (m *Module) failure(msg string) Envelope {
	return Envelope{
		IsSuccess:     false,
		OfficialEmail: m.officialEmail,
		Error:         msg,
	}
}

// errorHandler renders Fiber errors (unknown routes, panics) in the response envelope.
func (m *Module) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	return c.Status(code).JSON(m.failure(message))
}

func dispatchedEvent(outcome Outcome, requestID string, start time.Time) events.OperationDispatchedEvent {
	return events.OperationDispatchedEvent{
		Operation:    string(outcome.Operation),
		Success:      outcome.Success(),
		Status:       outcome.Status,
		DurationMs:   float64(time.Since(start).Microseconds()) / 1000,
		RequestID:    requestID,
		DispatchedAt: start,
	}
}

// publishDispatched is best-effort; a missing bus or publish error never fails the request.
func (m *Module) publishDispatched(event events.OperationDispatchedEvent) {
	if m.eventBus == nil {
		return
	}
	if err := events.OperationDispatchedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish OperationDispatched event", "error", err)
	}
}
