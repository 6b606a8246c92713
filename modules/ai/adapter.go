package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/bfhl-service/domain/operation"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// aiAdapter wraps ServiceContainer for type-safe cross-module communication.
type aiAdapter struct {
	container mono.ServiceContainer
}

// NewAIAdapter creates a new adapter for the ai services.
func NewAIAdapter(container mono.ServiceContainer) AIPort {
	if container == nil {
		panic("ai adapter requires non-nil ServiceContainer")
	}
	return &aiAdapter{container: container}
}

// Ask calls the ask service.
func (a *aiAdapter) Ask(ctx context.Context, question string) (string, error) {
	req := AskRequest{Question: question}
	var resp AskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceAsk,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return "", operation.NewUpstreamError(fmt.Sprintf("%s service call failed", ServiceAsk), err)
	}
	if resp.Upstream {
		return "", operation.NewUpstreamError(resp.Error, nil)
	}
	if resp.Error != "" {
		return "", operation.NewInputError(resp.Error)
	}
	return resp.Answer, nil
}
