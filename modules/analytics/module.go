// Package analytics counts dispatch results published by the api module.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/bfhl-service/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// ServiceGetStats is the request-reply service registered by the analytics module.
const ServiceGetStats = "get-stats"

// StatsRequest is the (empty) request for get-stats.
type StatsRequest struct{}

// StatsPort is the interface other modules use to read dispatch statistics.
type StatsPort interface {
	GetStats(ctx context.Context) (*Summary, error)
}

// Module consumes OperationDispatched events and serves the aggregated counts.
type Module struct {
	store  *Store
	logger types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.EventConsumerModule   = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
)

// NewModule creates a new analytics module.
func NewModule(logger types.Logger) *Module {
	return &Module{
		store:  NewStore(),
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "analytics"
}

// RegisterEventConsumers subscribes to OperationDispatched events.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(
		registry, events.OperationDispatchedV1, m.handleOperationDispatched, m,
	); err != nil {
		return fmt.Errorf("failed to register OperationDispatched consumer: %w", err)
	}
	m.logger.Info("Registered event consumers", "events", []string{"OperationDispatched.v1"})
	return nil
}

// RegisterServices registers the get-stats service.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceGetStats, json.Unmarshal, json.Marshal, m.getStats,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGetStats, err)
	}
	m.logger.Info("Registered analytics services", "services", []string{ServiceGetStats})
	return nil
}

func (m *Module) handleOperationDispatched(_ context.Context, event events.OperationDispatchedEvent, _ *mono.Msg) error {
	m.store.Record(event.Operation, event.Success, event.Status, event.DurationMs, event.DispatchedAt)
	m.logger.Debug("Recorded dispatch",
		"operation", event.Operation,
		"status", event.Status,
		"request_id", event.RequestID)
	return nil
}

func (m *Module) getStats(_ context.Context, _ StatsRequest, _ *mono.Msg) (Summary, error) {
	return m.store.Summary(), nil
}

// Start initializes the analytics module.
func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Analytics module started")
	return nil
}

// Stop shuts down the analytics module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Analytics module stopped")
	return nil
}
