// Package api serves the HTTP endpoints with Fiber.
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/example/bfhl-service/config"
	"github.com/example/bfhl-service/events"
	"github.com/example/bfhl-service/modules/ai"
	"github.com/example/bfhl-service/modules/analytics"
	"github.com/example/bfhl-service/modules/numbers"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

// Module is the driving adapter exposing /health, /bfhl and /bfhl/stats.
type Module struct {
	app           *fiber.App
	dispatcher    *Dispatcher
	numbersPort   numbers.NumbersPort
	aiPort        ai.AIPort
	statsPort     analytics.StatsPort
	eventBus      mono.EventBus
	officialEmail string
	addr          string
	corsOrigins   string
	strict        bool
	callTimeout   time.Duration
	startTime     time.Time
	logger        types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.DependentModule       = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates the api module from the service configuration.
func NewModule(cfg config.Config, logger types.Logger) *Module {
	return &Module{
		officialEmail: cfg.OfficialEmail,
		addr:          cfg.Addr(),
		corsOrigins:   cfg.CORSOrigins,
		strict:        cfg.StrictValidation,
		callTimeout:   cfg.ServiceCallTimeout,
		logger:        logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"numbers", "ai", "analytics"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "numbers":
		m.numbersPort = numbers.NewNumbersAdapter(container)
	case "ai":
		m.aiPort = ai.NewAIAdapter(container)
	case "analytics":
		m.statsPort = analytics.NewStatsAdapter(container)
	}
}

// SetEventBus receives the event bus used to publish dispatch events.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.OperationDispatchedV1.ToBase(),
	}
}

// newApp builds the Fiber app with middleware and routes.
func (m *Module) newApp() *fiber.App {
	m.dispatcher = NewDispatcher(m.numbersPort, m.aiPort, m.strict, m.callTimeout)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          m.errorHandler,
	})
	m.useMiddleware(app)
	m.setupRoutes(app)
	return app
}

// Start builds the HTTP server and begins listening.
func (m *Module) Start(ctx context.Context) error {
	if m.numbersPort == nil {
		return fmt.Errorf("numbersPort dependency not set")
	}
	if m.aiPort == nil {
		return fmt.Errorf("aiPort dependency not set")
	}
	if m.statsPort == nil {
		return fmt.Errorf("statsPort dependency not set")
	}
	if m.eventBus == nil {
		m.logger.Warn("eventBus not set, dispatch events will not be published")
	}

	m.app = m.newApp()

	// Give the listener a moment to fail on startup errors such as a busy port.
	errChan := make(chan error, 1)
	go func() {
		if err := m.app.Listen(m.addr); err != nil {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("failed to start HTTP server: %w", err)
	case <-time.After(100 * time.Millisecond):
		m.startTime = time.Now()
		m.logger.Info("HTTP server started",
			"addr", m.addr,
			"strict_validation", m.strict,
			"service_call_timeout", m.callTimeout)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop waits for in-flight requests and shuts the server down.
func (m *Module) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	m.logger.Info("Shutting down HTTP server")
	if err := m.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	m.logger.Info("HTTP server stopped")
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.startTime.IsZero() {
		return mono.HealthStatus{
			Healthy: false,
			Message: "HTTP server not started",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"addr":              m.addr,
			"strict_validation": m.strict,
			"uptime":            time.Since(m.startTime).Round(time.Second).String(),
		},
	}
}
