// Package ai forwards questions to Gemini and reduces each reply to one word.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/bfhl-service/domain/operation"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/middleware/requestid"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Module provides the ask service.
type Module struct {
	apiKey    string
	model     string
	cache     AnswerCache
	gen       Generator
	gemini    *GeminiGenerator
	forwarder *Forwarder
	logger    types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates an ai module for the given Gemini credentials.
// cache may be nil.
func NewModule(apiKey, model string, cache AnswerCache, logger types.Logger) *Module {
	return &Module{
		apiKey: apiKey,
		model:  model,
		cache:  cache,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "ai"
}

// RegisterServices registers the ask service.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceAsk, json.Unmarshal, json.Marshal, m.ask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceAsk, err)
	}
	m.logger.Info("Registered ai services", "services", []string{ServiceAsk})
	return nil
}

// Start creates the Gemini client. Without an API key the module still starts
// and every ask fails with ErrNotConfigured.
func (m *Module) Start(ctx context.Context) error {
	if m.gen == nil {
		gemini, err := NewGeminiGenerator(ctx, m.apiKey, m.model)
		switch {
		case errors.Is(err, ErrNotConfigured):
			m.logger.Warn("Gemini API key not set, AI requests will fail")
			m.gen = unconfiguredGenerator{}
		case err != nil:
			return err
		default:
			m.gemini = gemini
			m.gen = gemini
		}
	}
	m.forwarder = NewForwarder(m.gen, m.cache, m.logger)
	m.logger.Info("AI module started", "model", m.model, "cache", m.cache != nil)
	return nil
}

// Stop closes the Gemini client.
func (m *Module) Stop(_ context.Context) error {
	if m.gemini != nil {
		if err := m.gemini.Close(); err != nil {
			return fmt.Errorf("failed to close gemini client: %w", err)
		}
	}
	m.logger.Info("AI module stopped")
	return nil
}

// Health reports whether the module can reach a model.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.forwarder == nil {
		return mono.HealthStatus{Healthy: false, Message: "not started"}
	}
	if _, ok := m.gen.(unconfiguredGenerator); ok {
		return mono.HealthStatus{
			Healthy: false,
			Message: ErrNotConfigured.Error(),
			Details: map[string]any{"model": m.model},
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"model": m.model,
			"cache": m.cache != nil,
		},
	}
}

// ask handles the ai.ask service request.
// Invalid questions and model failures are reported in the response, so the
// caller sees the root message rather than the transport's error wrapping.
func (m *Module) ask(ctx context.Context, req AskRequest, _ *mono.Msg) (AskResponse, error) {
	answer, cached, err := m.forwarder.Ask(ctx, req.Question)
	if err != nil {
		var inputErr *operation.InputError
		if errors.As(err, &inputErr) {
			return AskResponse{Error: inputErr.Message}, nil
		}
		m.logger.Error("AI request failed",
			"error", err,
			"request_id", requestid.GetRequestID(ctx))
		var upstreamErr *operation.UpstreamError
		if errors.As(err, &upstreamErr) {
			return AskResponse{Error: upstreamErr.Message, Upstream: true}, nil
		}
		return AskResponse{}, err
	}
	return AskResponse{Answer: answer, Cached: cached}, nil
}
