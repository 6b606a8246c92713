// Package numbers exposes the number-theory operations as request-reply services.
package numbers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Module provides the fibonacci, prime, lcm and hcf services.
type Module struct {
	logger types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
)

// NewModule creates a new numbers module.
func NewModule(logger types.Logger) *Module {
	return &Module{logger: logger}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "numbers"
}

// RegisterServices registers the request-reply services.
// They are reachable as services.numbers.<name>.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceFibonacci, json.Unmarshal, json.Marshal, m.fibonacci,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceFibonacci, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServicePrime, json.Unmarshal, json.Marshal, m.prime,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServicePrime, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceLCM, json.Unmarshal, json.Marshal, m.lcm,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceLCM, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceHCF, json.Unmarshal, json.Marshal, m.hcf,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceHCF, err)
	}

	m.logger.Info("Registered numbers services",
		"services", []string{ServiceFibonacci, ServicePrime, ServiceLCM, ServiceHCF})
	return nil
}

// Start initializes the numbers module.
func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Numbers module started")
	return nil
}

// Stop shuts down the numbers module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Numbers module stopped")
	return nil
}
