package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// statsAdapter implements StatsPort using the service container.
type statsAdapter struct {
	container mono.ServiceContainer
}

// NewStatsAdapter creates a new adapter for the analytics services.
func NewStatsAdapter(container mono.ServiceContainer) StatsPort {
	if container == nil {
		panic("analytics adapter requires non-nil ServiceContainer")
	}
	return &statsAdapter{container: container}
}

// GetStats retrieves the dispatch summary.
func (a *statsAdapter) GetStats(ctx context.Context) (*Summary, error) {
	req := StatsRequest{}
	var resp Summary
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceGetStats,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceGetStats, err)
	}
	return &resp, nil
}
